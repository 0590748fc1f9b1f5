// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package picker selects physical qubits from a processor profile and
// calibration snapshot to minimize a strategy-weighted cost function.
package picker

import (
	"errors"
	"sort"

	"github.com/Halo-Labs-xyz/qAegis/internal/oracle/profile"
)

// ErrNoFeasibleMapping is returned when logical connectivity constraints
// cannot be satisfied by any assignment onto the processor's physical
// connectivity graph.
var ErrNoFeasibleMapping = errors.New("no feasible qubit mapping")

// Strategy selects how physical-qubit cost is weighted.
type Strategy uint8

const (
	MinimizeSingleQubitError Strategy = iota
	MinimizeTwoQubitError
	MinimizeReadoutError
	MaximizeCoherence
	Balanced
	Custom
)

// CustomWeights parameterizes Strategy == Custom.
type CustomWeights struct {
	W1Q, W2Q, WRO, WCoh float64
}

// QubitErrorData is the per-qubit / per-pair calibration snapshot.
type QubitErrorData struct {
	SingleQubitError map[int]float64
	ReadoutError     map[int]float64
	T1, T2           map[int]float64 // seconds, used for coherence scoring
	TwoQubitError    map[[2]int]float64
}

// Result is the picker's output.
type Result struct {
	SelectedPhysical    []int
	LogicalToPhysical   map[int]int
	EstimatedFidelity   float64
	Avoid               []int
}

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func cost(q int, cal QubitErrorData, strat Strategy, custom CustomWeights) float64 {
	e1 := cal.SingleQubitError[q]
	ro := cal.ReadoutError[q]
	// e2 is the mean two-qubit error over calibrated pairs that include q.
	var e2 float64
	var pairs int
	for pair, err := range cal.TwoQubitError {
		if pair[0] == q || pair[1] == q {
			e2 += err
			pairs++
		}
	}
	if pairs > 0 {
		e2 /= float64(pairs)
	}
	coh := 1.0
	if t1, ok := cal.T1[q]; ok && t1 > 0 {
		coh = 1.0 / t1
	}
	switch strat {
	case MinimizeSingleQubitError:
		return e1
	case MinimizeTwoQubitError:
		return e2
	case MinimizeReadoutError:
		return ro
	case MaximizeCoherence:
		return coh
	case Balanced:
		return e1 + ro + coh
	case Custom:
		return custom.W1Q*e1 + custom.W2Q*e2 + custom.WRO*ro + custom.WCoh*coh
	default:
		return e1
	}
}

// Pick selects k physical qubits from p using cal, honoring any logical
// connectivity constraints (pairs of logical indices that must be adjacent
// after mapping). Returns ErrNoFeasibleMapping if the constraints cannot be
// satisfied on p's connectivity graph.
func Pick(p profile.Profile, cal QubitErrorData, k int, strat Strategy, custom CustomWeights, logicalEdges [][2]int) (Result, error) {
	candidates := make([]int, p.QubitCount)
	for i := range candidates {
		candidates[i] = i
	}
	sort.Slice(candidates, func(i, j int) bool {
		return cost(candidates[i], cal, strat, custom) < cost(candidates[j], cal, strat, custom)
	})

	if len(logicalEdges) == 0 {
		selected := candidates[:min(k, len(candidates))]
		mapping := make(map[int]int, len(selected))
		for i, q := range selected {
			mapping[i] = q
		}
		return finalize(p, cal, selected, mapping), nil
	}

	adjacency := make(map[int]map[int]bool)
	for _, e := range p.Connectivity {
		if adjacency[e.A] == nil {
			adjacency[e.A] = map[int]bool{}
		}
		if adjacency[e.B] == nil {
			adjacency[e.B] = map[int]bool{}
		}
		adjacency[e.A][e.B] = true
		adjacency[e.B][e.A] = true
	}

	mapping, selected, ok := mapWithConstraints(candidates, adjacency, k, logicalEdges)
	if !ok {
		return Result{}, ErrNoFeasibleMapping
	}
	return finalize(p, cal, selected, mapping), nil
}

// mapWithConstraints greedily assigns logical qubits to the lowest-cost
// physical candidates, backtracking when an edge constraint is violated.
func mapWithConstraints(candidates []int, adjacency map[int]map[int]bool, k int, edges [][2]int) (map[int]int, []int, bool) {
	mapping := make(map[int]int)
	used := make(map[int]bool)

	var assign func(logical int) bool
	assign = func(logical int) bool {
		if logical == k {
			return true
		}
		for _, phys := range candidates {
			if used[phys] {
				continue
			}
			if !satisfiesEdges(logical, phys, mapping, adjacency, edges) {
				continue
			}
			mapping[logical] = phys
			used[phys] = true
			if assign(logical + 1) {
				return true
			}
			delete(mapping, logical)
			delete(used, phys)
		}
		return false
	}

	if !assign(0) {
		return nil, nil, false
	}

	selected := make([]int, k)
	for l := 0; l < k; l++ {
		selected[l] = mapping[l]
	}
	return mapping, selected, true
}

func satisfiesEdges(logical, phys int, mapping map[int]int, adjacency map[int]map[int]bool, edges [][2]int) bool {
	for _, e := range edges {
		var other, thisLogical int
		if e[0] == logical {
			other, thisLogical = e[1], e[0]
		} else if e[1] == logical {
			other, thisLogical = e[0], e[1]
		} else {
			continue
		}
		_ = thisLogical
		otherPhys, assigned := mapping[other]
		if !assigned {
			continue
		}
		if adjacency[phys] == nil || !adjacency[phys][otherPhys] {
			return false
		}
	}
	return true
}

// finalize computes estimated fidelity = ∏(1-ε1q) over selected qubits ·
// ∏(1-ε2q) over selected pairs present in connectivity · ∏(1-ε_ro).
func finalize(p profile.Profile, cal QubitErrorData, selected []int, mapping map[int]int) Result {
	fidelity := 1.0
	selectedSet := make(map[int]bool, len(selected))
	for _, q := range selected {
		selectedSet[q] = true
		fidelity *= 1 - cal.SingleQubitError[q]
		fidelity *= 1 - cal.ReadoutError[q]
	}
	for _, e := range p.Connectivity {
		if selectedSet[e.A] && selectedSet[e.B] {
			if err, ok := cal.TwoQubitError[pairKey(e.A, e.B)]; ok {
				fidelity *= 1 - err
			} else {
				fidelity *= 1 - p.TwoQubitError
			}
		}
	}

	avoid := make([]int, 0)
	for i := 0; i < p.QubitCount; i++ {
		if !selectedSet[i] {
			avoid = append(avoid, i)
		}
	}

	return Result{
		SelectedPhysical:  selected,
		LogicalToPhysical: mapping,
		EstimatedFidelity: fidelity,
		Avoid:             avoid,
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
