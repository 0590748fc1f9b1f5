// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package picker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Halo-Labs-xyz/qAegis/internal/oracle/profile"
)

func calibrationFor(p profile.Profile) QubitErrorData {
	cal := QubitErrorData{
		SingleQubitError: map[int]float64{},
		ReadoutError:     map[int]float64{},
		T1:               map[int]float64{},
		T2:               map[int]float64{},
		TwoQubitError:    map[[2]int]float64{},
	}
	for i := 0; i < p.QubitCount; i++ {
		cal.SingleQubitError[i] = p.SingleQubitError
		cal.ReadoutError[i] = p.ReadoutError
		cal.T1[i] = p.T1.Seconds()
		cal.T2[i] = p.T2.Seconds()
	}
	return cal
}

func TestPickWithoutConstraintsReturnsKQubits(t *testing.T) {
	require := require.New(t)
	p := profile.Rainbow()
	cal := calibrationFor(p)

	res, err := Pick(p, cal, 5, MinimizeSingleQubitError, CustomWeights{}, nil)
	require.NoError(err)
	require.Len(res.SelectedPhysical, 5)
	require.Greater(res.EstimatedFidelity, 0.0)
	require.LessOrEqual(res.EstimatedFidelity, 1.0)
}

func TestPickHonorsConnectivityConstraints(t *testing.T) {
	require := require.New(t)
	p := profile.Rainbow()
	cal := calibrationFor(p)

	res, err := Pick(p, cal, 2, Balanced, CustomWeights{}, [][2]int{{0, 1}})
	require.NoError(err)

	a, b := res.LogicalToPhysical[0], res.LogicalToPhysical[1]
	found := false
	for _, e := range p.Connectivity {
		if (e.A == a && e.B == b) || (e.A == b && e.B == a) {
			found = true
			break
		}
	}
	require.True(found)
}

func TestPickFailsOnImpossibleConstraints(t *testing.T) {
	p := profile.Rainbow()
	cal := calibrationFor(p)

	// A 4-clique of logical qubits cannot map onto a grid's nearest-
	// neighbor connectivity, which has no 4-cliques.
	logicalEdges := [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}

	_, err := Pick(p, cal, 4, Balanced, CustomWeights{}, logicalEdges)
	require.ErrorIs(t, err, ErrNoFeasibleMapping)
}
