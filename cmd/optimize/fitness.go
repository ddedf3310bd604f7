package main

import (
	"errors"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/primordia/config"
	"github.com/pthm-cable/primordia/sim"
	"github.com/pthm-cable/primordia/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTurns   int32
	seeds      []int64
	baseConfig *config.Config

	// Best run tracking
	mu          sync.Mutex
	bestFitness float64
	bestRun     *telemetry.TurnStats
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTurns int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTurns:    maxTurns,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// BestRunStats returns the final turn stats from the best evaluation so far.
func (fe *FitnessEvaluator) BestRunStats() *telemetry.TurnStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestRun
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// Functional extinction: a lineage that stays below minViablePop for
// extinctionGraceTurns consecutive turns no longer counts as surviving.
const (
	minViablePop         = 3
	extinctionGraceTurns = 50
)

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	survivalTurns int32
	quality       float64
	finalStats    telemetry.TurnStats
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negative survival turns, weighted by population stability:
// longer, steadier runs score lower (better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	// Run all seeds in parallel; each run has its own engine and RNG.
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSeed(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var fitnessSum, qualitySum float64
	var best seedResult
	for _, r := range results {
		fitnessSum += -float64(r.survivalTurns) * (1 + 0.2*r.quality)
		qualitySum += r.quality
		if r.survivalTurns > best.survivalTurns {
			best = r
		}
	}
	fitness := fitnessSum / float64(len(results))
	quality := qualitySum / float64(len(results))

	fe.mu.Lock()
	fe.lastQuality = quality
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
		stats := best.finalStats
		fe.bestRun = &stats
	}
	fe.mu.Unlock()

	return fitness
}

// runSeed runs one simulation to extinction or the turn cap.
func (fe *FitnessEvaluator) runSeed(cfg *config.Config, seed int64) seedResult {
	engine, err := sim.NewEngine(cfg, seed)
	if err != nil {
		return seedResult{}
	}

	popHistory := make([]float64, 0, fe.maxTurns)
	lowStreak := 0

	for engine.Turn() < fe.maxTurns {
		snap, err := engine.Step()
		if err != nil {
			if !errors.Is(err, sim.ErrExtinct) {
				return seedResult{}
			}
			break
		}

		pop := len(snap.Organisms)
		popHistory = append(popHistory, float64(pop))

		if snap.Extinct {
			break
		}
		if pop < minViablePop {
			lowStreak++
			if lowStreak >= extinctionGraceTurns {
				break
			}
		} else {
			lowStreak = 0
		}
	}

	return seedResult{
		survivalTurns: int32(len(popHistory)),
		quality:       stability(popHistory),
		finalStats:    engine.LastStats(),
	}
}

// stability scores a population trace in [0, 1]: 1 is a flat healthy
// population, 0 is wild swings or near-zero counts.
func stability(pop []float64) float64 {
	if len(pop) < 2 {
		return 0
	}
	mean, std := stat.MeanStdDev(pop, nil)
	if mean <= 0 {
		return 0
	}
	return mean / (mean + std*2)
}

// copyConfig returns a mutable copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	c := *fe.baseConfig
	return &c
}
