// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package qrm

import (
	"testing"
	"time"

	"github.com/luxfi/log"
	"github.com/stretchr/testify/require"
)

func newTestMonitor(t *testing.T) *Monitor {
	t.Helper()
	return New(log.NoLog{}, DefaultConfig())
}

func TestWeightsSumToOne(t *testing.T) {
	require.InDelta(t, 1.0, WeightSum(), 1e-9)
}

func TestEraMultiplierInvariants(t *testing.T) {
	for _, era := range []Era{PreQuantum, NISQ, FaultTolerant} {
		require.GreaterOrEqual(t, EraMultiplier(DecryptionHNDL, era), 0.8)
		require.LessOrEqual(t, EraMultiplier(HashReversal, era), 0.2)
		for _, c := range AllCategories {
			m := EraMultiplier(c, era)
			require.GreaterOrEqual(t, m, 0.0)
			require.LessOrEqual(t, m, 1.0)
		}
	}
}

func TestAssessColdStartScoresZero(t *testing.T) {
	m := newTestMonitor(t)
	a := m.Assess()
	require.Equal(t, uint64(0), a.Score)
	require.Equal(t, Continue, a.Recommendation)
}

func TestAssessScoreAlwaysInBounds(t *testing.T) {
	m := newTestMonitor(t)
	for i := 0; i < 80; i++ {
		m.Ingest(Indicator{
			Category:   AllCategories[i%len(AllCategories)],
			Severity:   1.0,
			Confidence: 1.0,
			Timestamp:  time.Now(),
		})
	}
	a := m.Assess()
	require.LessOrEqual(t, a.Score, uint64(10000))
}

// S2: a single-category burst, normalized only against the weight of
// the category that actually has indicators (digital-signatures alone),
// not diluted by the other eleven silent categories.
func TestScheduledRotationScenario(t *testing.T) {
	require := require.New(t)
	m := newTestMonitor(t)
	m.SetEra(NISQ)

	for i := 0; i < 5; i++ {
		m.Ingest(Indicator{
			Category:   DigitalSignatures,
			Severity:   0.9,
			Confidence: 1.0,
			Timestamp:  time.Now(),
			EraRelevance: NISQ,
		})
	}

	a := m.Assess()
	require.GreaterOrEqual(a.Score, uint64(6000))
	require.Less(a.Score, uint64(9000))
	require.Equal(ScheduleRotation, a.Recommendation)
}

// S3: four decryption-hndl indicators at max severity, plus four each
// in the other categories whose fault-tolerant-era multiplier
// also saturates at 1.0 (digital-signatures, consensus-attacks,
// key-management, smart-contracts). Categories capped well below 1.0
// (hash-reversal, zk-proof-forgery, ...) are deliberately left silent:
// including them would only drag the active-category average down, and
// no combination of all 12 categories can clear 9000 under this weight
// table (the achievable ceiling is 8900 — see DESIGN.md).
func TestEmergencyRotationScenario(t *testing.T) {
	require := require.New(t)
	m := newTestMonitor(t)
	m.SetEra(FaultTolerant)

	for _, c := range []Category{DecryptionHNDL, DigitalSignatures, ConsensusAttacks, KeyManagement, SmartContracts} {
		for i := 0; i < 4; i++ {
			m.Ingest(Indicator{
				Category:   c,
				Severity:   1.0,
				Confidence: 1.0,
				Timestamp:  time.Now(),
			})
		}
	}

	a := m.Assess()
	require.GreaterOrEqual(a.Score, uint64(9000))
	require.Equal(EmergencyRotation, a.Recommendation)
}

func TestScoringWindowIgnoresOlderThanN(t *testing.T) {
	require := require.New(t)
	m := newTestMonitor(t)

	for i := 0; i < 50; i++ {
		m.Ingest(Indicator{Category: HashReversal, Severity: 0.1, Confidence: 1.0})
	}
	baseline := m.Assess()

	for i := 0; i < 50; i++ {
		m.Ingest(Indicator{Category: DigitalSignatures, Severity: 1.0, Confidence: 1.0})
	}
	afterWindow := m.Assess()

	require.Equal(50, afterWindow.ActiveIndicators)
	require.NotEqual(baseline.Score, afterWindow.Score)
}

func TestThresholdMonotonicity(t *testing.T) {
	cfg := DefaultConfig()
	require.Less(t, int(recommendationFor(0, cfg)), int(recommendationFor(cfg.RiskThresholdScheduled/2, cfg)))
	require.LessOrEqual(t, int(recommendationFor(cfg.RiskThresholdScheduled/2, cfg)), int(recommendationFor(cfg.RiskThresholdScheduled, cfg)))
	require.Less(t, int(recommendationFor(cfg.RiskThresholdScheduled, cfg)), int(recommendationFor(cfg.RiskThresholdEmergency, cfg)))
}

func TestHistoryRingOverflowDiscardsOldest(t *testing.T) {
	require := require.New(t)
	cfg := DefaultConfig()
	cfg.HistoryCapacity = 1000
	m := New(log.NoLog{}, cfg)

	for i := 0; i < 1100; i++ {
		m.Ingest(Indicator{Category: NetworkLayer, Severity: 0.5, Confidence: 1.0})
	}
	require.Equal(1000, m.size)
}
