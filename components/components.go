// Package components defines ECS components for the simulation.
package components

import "github.com/pthm-cable/primordia/genome"

// Position is an organism's integer cell coordinates, always in
// [0, W) x [0, H).
type Position struct {
	X, Y int
}

// Vitals tracks an organism's life state. An organism is removed from the
// world in the same turn Alive flips false.
type Vitals struct {
	Energy float64
	Health float64
	Age    int32 // turns survived
	Alive  bool
}

// Heredity bundles identity and the organism's own genome. The genome is an
// immutable value; replacing it (never editing it) is the only way it changes.
type Heredity struct {
	ID       uint64
	ParentID uint64 // zero for founders
	Genome   genome.Genome
}
