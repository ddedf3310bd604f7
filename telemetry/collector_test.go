package telemetry

import (
	"testing"
)

func TestCollectorCountsAndEvents(t *testing.T) {
	c := NewCollector()
	c.RecordBirth(3, 10, 4)
	c.RecordDeath(3, 5, "starvation")
	c.RecordDeath(3, 6, "toxin")
	c.RecordEPSpend(3, "ToxinBResistance", 60)
	c.RecordEPMilestone(3, "population_50", 75)
	c.RecordWorldEvent(3, "acid_rain")

	out := c.DrainTurn()
	if out.Births != 1 || out.Deaths != 2 {
		t.Errorf("births/deaths = %d/%d, want 1/2", out.Births, out.Deaths)
	}
	if out.DeathsStarvation != 1 || out.DeathsToxin != 1 {
		t.Errorf("death causes = %d starvation, %d toxin, want 1/1", out.DeathsStarvation, out.DeathsToxin)
	}
	if out.EPSpent != 60 || out.EPEarned != 75 {
		t.Errorf("EP spent/earned = %g/%g, want 60/75", out.EPSpent, out.EPEarned)
	}
	if len(out.Events) != 6 {
		t.Fatalf("len(Events) = %d, want 6", len(out.Events))
	}
	for _, ev := range out.Events {
		if ev.Turn != 3 {
			t.Errorf("event %v carries turn %d, want 3", ev.Type, ev.Turn)
		}
	}
}

func TestCollectorDrainResets(t *testing.T) {
	c := NewCollector()
	c.RecordBirth(1, 2, 1)
	c.DrainTurn()

	out := c.DrainTurn()
	if out.Births != 0 || len(out.Events) != 0 {
		t.Errorf("second drain = %+v, want empty", out)
	}
}

func TestEventTypeStrings(t *testing.T) {
	cases := []struct {
		typ  EventType
		want string
	}{
		{EventBirth, "birth"},
		{EventDeath, "death"},
		{EventEPSpend, "ep_spend"},
		{EventEPMilestone, "ep_milestone"},
		{EventWorldEvent, "world_event"},
		{EventType(99), "unknown"},
	}
	for _, tc := range cases {
		if got := tc.typ.String(); got != tc.want {
			t.Errorf("EventType(%d).String() = %q, want %q", tc.typ, got, tc.want)
		}
	}
}
