// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package qrm implements the Quantum Resistance Monitor: a weighted risk
// model over the 12-category threat taxonomy, with era-dependent severity
// multipliers, a normalized score, and a four-state recommendation.
package qrm

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/luxfi/log"
)

// ErrInvariantBroken marks a bug (e.g. category weights not summing to
// 1.0), never a runtime condition. Construction panics on this rather than
// returning it, per the crash-only policy for invariant violations.
var ErrInvariantBroken = errors.New("invariant broken")

// Monitor is the Quantum Resistance Monitor.
type Monitor struct {
	log log.Logger
	cfg Config

	mu      sync.RWMutex
	history []Indicator // fixed-capacity ring, FIFO-by-age eviction
	next    int
	size    int
	era     Era
}

// New constructs a Monitor. It panics if the category weight table does
// not sum to 1.0 — that is a build-time bug (InvariantBroken), not a
// recoverable runtime condition.
func New(logger log.Logger, cfg Config) *Monitor {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	if sum := WeightSum(); math.Abs(sum-1.0) > 1e-9 {
		panic(ErrInvariantBroken)
	}
	return &Monitor{
		log:     logger,
		cfg:     cfg,
		history: make([]Indicator, cfg.HistoryCapacity),
		era:     PreQuantum,
	}
}

// Ingest appends an indicator to history. The ring is bounded;
// overflow discards the oldest entry.
func (m *Monitor) Ingest(ind Indicator) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.history[m.next] = ind
	m.next = (m.next + 1) % len(m.history)
	if m.size < len(m.history) {
		m.size++
	}
}

// SetEra overrides the inferred era. Normally called by the protocol-stack
// controller, not by operators directly.
func (m *Monitor) SetEra(era Era) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.era = era
}

// Era returns the current era.
func (m *Monitor) Era() Era {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.era
}

// recentIndicatorsLocked returns the N most recently ingested indicators, most
// recent first, under the read lock held by the caller.
func (m *Monitor) recentIndicatorsLocked() []Indicator {
	n := m.cfg.ScoringWindow
	if n > m.size {
		n = m.size
	}
	out := make([]Indicator, 0, n)
	idx := m.next - 1
	if idx < 0 {
		idx += len(m.history)
	}
	for i := 0; i < n; i++ {
		out = append(out, m.history[idx])
		idx--
		if idx < 0 {
			idx += len(m.history)
		}
	}
	return out
}

// Assess returns a full RiskAssessment computed over the recent-window
// indicators, the current era, and the threshold config. Pure function of
// call-time state.
//
// The aggregate is a weight-normalized average over categories that have
// at least one indicator in the window, not over all 12 categories: a
// category with zero indicators contributes neither score nor weight, so
// a burst confined to one or two categories is not diluted by the
// silence of the other ten.
func (m *Monitor) Assess() RiskAssessment {
	m.mu.RLock()
	recent := m.recentIndicatorsLocked()
	era := m.era
	m.mu.RUnlock()

	byCategory := make(map[Category][]Indicator, len(AllCategories))
	for _, ind := range recent {
		byCategory[ind.Category] = append(byCategory[ind.Category], ind)
	}

	breakdown := make([]CategoryBreakdown, 0, len(AllCategories))
	var weightedSum, weightTotal float64
	for _, c := range AllCategories {
		inds := byCategory[c]
		catScore := categoryScore(c, inds, era)
		if len(inds) > 0 {
			weightedSum += catScore * Weight(c)
			weightTotal += Weight(c)
		}
		breakdown = append(breakdown, CategoryBreakdown{
			Category:       c,
			Score:          uint64(math.Round(catScore)),
			IndicatorCount: len(inds),
		})
	}

	score := 0.0
	if weightTotal > 0 {
		score = weightedSum / weightTotal
	}
	score = math.Round(score)
	if score < 0 {
		score = 0
	}
	if score > 10000 {
		score = 10000
	}
	finalScore := uint64(score)

	return RiskAssessment{
		Score:            finalScore,
		Recommendation:   recommendationFor(finalScore, m.cfg),
		Breakdown:        breakdown,
		ActiveIndicators: len(recent),
		Era:              era,
		Timestamp:        time.Now(),
	}
}

// categoryScore aggregates a category's indicators:
// Σ severity·confidence·era_multiplier / Σ confidence, scaled to [0,10000].
// An empty category scores 0.
func categoryScore(c Category, inds []Indicator, era Era) float64 {
	if len(inds) == 0 {
		return 0
	}
	mult := EraMultiplier(c, era)
	var num, den float64
	for _, ind := range inds {
		num += ind.Severity * ind.Confidence * mult
		den += ind.Confidence
	}
	if den == 0 {
		return 0
	}
	score := (num / den) * 10000
	if score < 0 {
		score = 0
	}
	if score > 10000 {
		score = 10000
	}
	return score
}

// recommendationFor is the pure function of score and the two thresholds.
func recommendationFor(score uint64, cfg Config) Recommendation {
	switch {
	case score >= cfg.RiskThresholdEmergency:
		return EmergencyRotation
	case score >= cfg.RiskThresholdScheduled:
		return ScheduleRotation
	case score >= cfg.RiskThresholdScheduled/2:
		return MonitorClosely
	default:
		return Continue
	}
}
