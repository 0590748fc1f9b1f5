// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package threat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Halo-Labs-xyz/qAegis/internal/oracle/profile"
)

func TestEstimateGroverIsDeterministicPerTarget(t *testing.T) {
	require := require.New(t)
	p := profile.WillowPink()

	est1 := EstimateGrover(GroverTargets[0], p)
	est2 := EstimateGrover(GroverTargets[0], p)
	require.Equal(est1, est2)
	require.Equal(128+2*128, est1.LogicalQubits)
	require.Equal(est1.LogicalQubits*GroverCodeDistance*GroverCodeDistance, est1.PhysicalQubits)
}

func TestEstimateShorRSALargerThanECCLogicalQubitsByFormula(t *testing.T) {
	require := require.New(t)
	p := profile.WillowPink()

	rsa, _ := EstimateShor(ShorTarget{"RSA-2048", 2048, ShorRSA}, p)
	ecc, _ := EstimateShor(ShorTarget{"ECDSA-256", 256, ShorECC}, p)

	require.Equal(2*2048+5, rsa.LogicalQubits)
	require.Equal(6*256+10, ecc.LogicalQubits)
}

func TestSeverityClampedToUnitInterval(t *testing.T) {
	require := require.New(t)
	require.Equal(1.0, Severity(0.0001, horizonYearsForTest))
	require.LessOrEqual(Severity(1000, horizonYearsForTest), 1.0)
	require.GreaterOrEqual(Severity(1000, horizonYearsForTest), 0.0)
}

const horizonYearsForTest = 100

func TestClassifyRequiresBothFitAndTimeForImminent(t *testing.T) {
	require := require.New(t)
	require.Equal(Imminent, classify(10, 100, 0.5))
	require.Equal(NearTerm, classify(1000, 100, 0.5))
	require.Equal(Theoretical, classify(10, 100, 1000))
}
