package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"github.com/pthm-cable/primordia/config"
)

// RunMeta identifies one simulation run.
type RunMeta struct {
	RunID     string    `json:"run_id"`
	Seed      int64     `json:"seed"`
	StartedAt time.Time `json:"started_at"`
}

// OutputManager handles structured experiment output: per-turn CSV, the
// effective config, and run metadata.
type OutputManager struct {
	dir       string
	meta      RunMeta
	statsFile *os.File

	// Track if headers have been written
	statsHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string, seed int64) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{
		dir: dir,
		meta: RunMeta{
			RunID:     uuid.NewString(),
			Seed:      seed,
			StartedAt: time.Now().UTC(),
		},
	}

	f, err := os.Create(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating telemetry.csv: %w", err)
	}
	om.statsFile = f

	if err := om.writeMeta(); err != nil {
		f.Close()
		return nil, err
	}

	return om, nil
}

// writeMeta saves run.json.
func (om *OutputManager) writeMeta() error {
	data, err := json.MarshalIndent(om.meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling run metadata: %w", err)
	}
	path := filepath.Join(om.dir, "run.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing run.json: %w", err)
	}
	return nil
}

// RunID returns the unique identifier for this run.
func (om *OutputManager) RunID() string {
	if om == nil {
		return ""
	}
	return om.meta.RunID
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTurnStats appends a turn stats record to telemetry.csv.
func (om *OutputManager) WriteTurnStats(stats TurnStats) error {
	if om == nil {
		return nil
	}

	records := []TurnStats{stats}

	if !om.statsHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.statsFile); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		om.statsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.statsFile); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
	}

	return nil
}

// WriteReport saves the final turn report as JSON, for the narrator consumer.
func (om *OutputManager) WriteReport(report TurnReport) error {
	if om == nil {
		return nil
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	name := fmt.Sprintf("report_%d.json", report.Turn)
	if err := os.WriteFile(filepath.Join(om.dir, name), data, 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil || om.statsFile == nil {
		return nil
	}
	return om.statsFile.Close()
}
