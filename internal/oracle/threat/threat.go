// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package threat implements the Grover and Shor resource estimators that
// synthesize quantum-attack-feasibility indicators from a processor
// profile.
package threat

import (
	"math"

	"github.com/Halo-Labs-xyz/qAegis/internal/oracle/profile"
)

const secondsPerYear = 365.25 * 24 * 3600

// Level classifies how imminent an attack is.
type Level int

const (
	Theoretical Level = iota
	LongTerm
	MediumTerm
	NearTerm
	Imminent
)

func (l Level) String() string {
	switch l {
	case Imminent:
		return "imminent"
	case NearTerm:
		return "near-term"
	case MediumTerm:
		return "medium-term"
	case LongTerm:
		return "long-term"
	default:
		return "theoretical"
	}
}

// classify applies the unified time+capacity threat-level rule shared by
// both estimators: Imminent requires the attack to both fit in the target
// processor and complete in under a year; otherwise the classification
// degrades purely on elapsed time.
func classify(physicalQubits, processorQubits int, timeYears float64) Level {
	fits := physicalQubits <= processorQubits
	switch {
	case fits && timeYears < 1:
		return Imminent
	case timeYears < 5:
		return NearTerm
	case timeYears < 10:
		return MediumTerm
	case timeYears < 100:
		return LongTerm
	default:
		return Theoretical
	}
}

// codeDistanceForErrorRate picks a surface-code distance from the
// processor's two-qubit error rate: noisier hardware needs a larger
// distance to suppress the logical error rate to a workable level.
func codeDistanceForErrorRate(twoQubitError float64) int {
	switch {
	case twoQubitError <= 0.004:
		return 25
	case twoQubitError <= 0.007:
		return 27
	default:
		return 29
	}
}

// Estimate is the common shape returned by both estimators.
type Estimate struct {
	Target          string
	LogicalQubits   int
	PhysicalQubits  int
	TimeYears       float64
	Level           Level
}

// GroverTarget names a symmetric primitive targeted by Grover's algorithm,
// with its key/output size n in bits.
type GroverTarget struct {
	Name string
	Bits int
}

// GroverTargets is the fixed set of symmetric primitives assessed.
var GroverTargets = []GroverTarget{
	{"AES-128", 128},
	{"AES-256", 256},
	{"SHA-256-preimage", 256},
	{"Keccak-256-preimage", 256},
}

// GroverOverheadFactor is the default logical-qubit overhead multiplier
// (overhead = GroverOverheadFactor * n).
const GroverOverheadFactor = 2

// GroverCodeDistance is the default surface-code distance for Grover
// estimates (d=25 -> factor 625 physical qubits per logical qubit).
const GroverCodeDistance = 25

// EstimateGrover computes the Grover resource estimate for target against p.
func EstimateGrover(target GroverTarget, p profile.Profile) Estimate {
	n := float64(target.Bits)
	iterations := math.Ceil((math.Pi / 4) * math.Sqrt(math.Pow(2, n)))

	logical := target.Bits + GroverOverheadFactor*target.Bits
	physical := logical * GroverCodeDistance * GroverCodeDistance

	totalGates := iterations
	timeYears := (totalGates * p.GateTime.Seconds()) / secondsPerYear

	return Estimate{
		Target:         target.Name,
		LogicalQubits:  logical,
		PhysicalQubits: physical,
		TimeYears:      timeYears,
		Level:          classify(physical, p.QubitCount, timeYears),
	}
}

// ShorTargetKind distinguishes the logical/t-gate-count formula family.
type ShorTargetKind uint8

const (
	ShorRSA ShorTargetKind = iota
	ShorECC
)

// ShorTarget names an asymmetric primitive targeted by Shor's algorithm.
type ShorTarget struct {
	Name string
	Bits int
	Kind ShorTargetKind
}

// ShorTargets is the fixed set of asymmetric primitives assessed.
var ShorTargets = []ShorTarget{
	{"RSA-2048", 2048, ShorRSA},
	{"RSA-4096", 4096, ShorRSA},
	{"ECDSA-256", 256, ShorECC},
	{"BLS12-381", 381, ShorECC},
}

// MagicStateOverhead is the default multiplier converting raw T-gate count
// into wall-clock time, accounting for magic-state distillation.
const MagicStateOverhead = 15

// EstimateShor computes the Shor resource estimate for target against p.
// time_hours follows target; TimeYears is derived by converting hours to
// years for the common Level classification.
func EstimateShor(target ShorTarget, p profile.Profile) (est Estimate, timeHours float64) {
	n := float64(target.Bits)

	var logical int
	var tGates float64
	switch target.Kind {
	case ShorRSA:
		logical = int(2*n + 5)
		tGates = math.Pow(n, 3)
	case ShorECC:
		logical = int(6*n + 10)
		tGates = 100 * math.Pow(n, 3)
	}

	d := codeDistanceForErrorRate(p.TwoQubitError)
	physical := logical * d * d

	timeHours = tGates * p.GateTime.Seconds() * MagicStateOverhead / 3600
	timeYears := timeHours / (24 * 365.25)

	return Estimate{
		Target:         target.Name,
		LogicalQubits:  logical,
		PhysicalQubits: physical,
		TimeYears:      timeYears,
		Level:          classify(physical, p.QubitCount, timeYears),
	}, timeHours
}

// Severity maps an estimate's time horizon to [0,1] via
// clamp(1 - log10(time_years)/log10(horizon_years), 0, 1).
func Severity(timeYears, horizonYears float64) float64 {
	if timeYears <= 0 {
		return 1
	}
	v := 1 - math.Log10(timeYears)/math.Log10(horizonYears)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
