// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package circuit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBellStateMeasuresOnlyZeroAndThreeBasis(t *testing.T) {
	require := require.New(t)

	c := NewCircuit(2)
	c.Append(Gate{Kind: GateH, Qubits: []int{0}})
	c.Append(Gate{Kind: GateCNOT, Qubits: []int{0, 1}})

	sim := NewSimulator(NoiseModel{}, 2000)
	hist, err := sim.Run(c)
	require.NoError(err)

	for outcome := range hist {
		require.True(outcome == 0 || outcome == 3, "unexpected basis state %d", outcome)
	}
}

func TestXGateFlipsBasisState(t *testing.T) {
	require := require.New(t)

	c := NewCircuit(1)
	c.Append(Gate{Kind: GateX, Qubits: []int{0}})

	sim := NewSimulator(NoiseModel{}, 500)
	hist, err := sim.Run(c)
	require.NoError(err)
	require.InDelta(1.0, hist[1], 1e-9)
}

func TestTooManyQubitsRejected(t *testing.T) {
	c := NewCircuit(MaxQubits + 1)
	sim := NewSimulator(NoiseModel{}, 100)
	_, err := sim.Run(c)
	require.ErrorIs(t, err, ErrTooManyQubits)
}
