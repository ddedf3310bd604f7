package telemetry

import (
	"github.com/pthm-cable/primordia/genome"
)

// OrganismState is one organism's observable state inside a snapshot.
type OrganismState struct {
	ID     uint64        `json:"id"`
	X      int           `json:"x"`
	Y      int           `json:"y"`
	Energy float64       `json:"energy"`
	Health float64       `json:"health"`
	Age    int32         `json:"age"`
	Genome genome.Genome `json:"-"`

	// GeneValues mirrors Genome for serialization, in genome.Gene order.
	GeneValues [genome.GeneCount]float64 `json:"genes"`
}

// LineageStats aggregates the lineage at the end of a turn.
type LineageStats struct {
	Population int     `json:"population"`
	EP         float64 `json:"ep"`
	Births     int     `json:"births"`
	Deaths     int     `json:"deaths"`

	// MeanGenes holds the per-gene mean over living organisms, Gene order.
	MeanGenes [genome.GeneCount]float64 `json:"mean_genes"`

	BaseGenome genome.Genome             `json:"-"`
	BaseGenes  [genome.GeneCount]float64 `json:"base_genes"`
}

// Snapshot is the immutable view of one completed turn handed to external
// consumers. Field slices are deep copies; nothing aliases engine buffers.
type Snapshot struct {
	Turn   int32 `json:"turn"`
	Width  int   `json:"width"`
	Height int   `json:"height"`

	Nutrient []float64 `json:"nutrient"` // row-major, length Width*Height
	Toxin    []float64 `json:"toxin"`

	Organisms []OrganismState `json:"organisms"` // ascending ID
	Lineage   LineageStats    `json:"lineage"`
	Events    []Event         `json:"events"`

	ActiveWorldEvent string `json:"active_world_event"`
	Extinct          bool   `json:"extinct"`
}

// NutrientAt reads a nutrient cell from the snapshot copy.
func (s *Snapshot) NutrientAt(x, y int) float64 {
	return s.Nutrient[y*s.Width+x]
}

// ToxinAt reads a toxin cell from the snapshot copy.
func (s *Snapshot) ToxinAt(x, y int) float64 {
	return s.Toxin[y*s.Width+x]
}
