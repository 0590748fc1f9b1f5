// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"
	"github.com/stretchr/testify/require"

	"github.com/Halo-Labs-xyz/qAegis/internal/adapters"
	"github.com/Halo-Labs-xyz/qAegis/internal/apqc"
	apqcconfig "github.com/Halo-Labs-xyz/qAegis/internal/apqc/config"
	"github.com/Halo-Labs-xyz/qAegis/internal/metrics"
	"github.com/Halo-Labs-xyz/qAegis/internal/oracle"
	"github.com/Halo-Labs-xyz/qAegis/internal/qrm"
	"github.com/Halo-Labs-xyz/qAegis/internal/sequencer"
	sequencerconfig "github.com/Halo-Labs-xyz/qAegis/internal/sequencer/config"
)

type failingRedundancy struct{}

func (failingRedundancy) Attest(_ context.Context, _ [32]byte, _ string, _ string) ([]byte, error) {
	return nil, errors.New("redundancy quote timed out")
}

func newTestController(t *testing.T) *Controller {
	t.Helper()
	require := require.New(t)

	o, err := oracle.New(log.NoLog{}, oracle.DefaultConfig())
	require.NoError(err)
	monitor := qrm.New(log.NoLog{}, qrm.DefaultConfig())
	pqc, err := apqc.New(log.NoLog{}, apqcconfig.DefaultConfig())
	require.NoError(err)

	tee := adapters.NewInMemoryTEE("test-enclave")
	chain := adapters.NewInMemoryChain(1)
	seq, err := sequencer.New(log.NoLog{}, sequencerconfig.DefaultConfig(), tee, chain, nil, "test-enclave")
	require.NoError(err)

	m, err := metrics.New(metric.NewRegistry())
	require.NoError(err)

	return New(log.NoLog{}, DefaultConfig(), o, monitor, pqc, seq, m)
}

func TestTickWithEmptyMempoolReturnsNoBatch(t *testing.T) {
	require := require.New(t)
	c := newTestController(t)

	result, err := c.Tick(context.Background(), 0)
	require.NoError(err)
	require.Nil(result.Batch)
	// Block 0 is on the assessment cadence, so the oracle's near-term Shor
	// estimates move the era to NISQ and lift the score to 4000.
	require.Equal(qrm.MonitorClosely, result.Assessment.Recommendation)
}

func TestTickAssemblesBatchWhenTransactionsPresent(t *testing.T) {
	require := require.New(t)
	c := newTestController(t)

	require.NoError(c.seq.SubmitEncrypted(sequencer.EncryptedTransaction{
		ID:          ids.GenerateTestID(),
		Ciphertext:  []byte("payload"),
		SubmittedAt: time.Now(),
	}))

	result, err := c.Tick(context.Background(), 1)
	require.NoError(err)
	require.NotNil(result.Batch)
	require.Len(result.Batch.Transactions, 1)
}

func TestTickRunsAssessmentOnlyOnInterval(t *testing.T) {
	require := require.New(t)
	c := newTestController(t)
	c.cfg.AssessmentIntervalBlocks = 10

	_, err := c.Tick(context.Background(), 3)
	require.NoError(err)
	firstCount := c.monitor.Assess().ActiveIndicators

	_, err = c.Tick(context.Background(), 4)
	require.NoError(err)
	require.Equal(firstCount, c.monitor.Assess().ActiveIndicators)

	_, err = c.Tick(context.Background(), 10)
	require.NoError(err)
	require.Greater(c.monitor.Assess().ActiveIndicators, 0)
}

func TestTickIngestsRedundancyUnavailableIndicatorOnDowngrade(t *testing.T) {
	require := require.New(t)

	o, err := oracle.New(log.NoLog{}, oracle.DefaultConfig())
	require.NoError(err)
	monitor := qrm.New(log.NoLog{}, qrm.DefaultConfig())
	pqc, err := apqc.New(log.NoLog{}, apqcconfig.DefaultConfig())
	require.NoError(err)

	tee := adapters.NewInMemoryTEE("test-enclave")
	chain := adapters.NewInMemoryChain(1)
	seq, err := sequencer.New(log.NoLog{}, sequencerconfig.DefaultConfig(), tee, chain, failingRedundancy{}, "test-enclave")
	require.NoError(err)
	seq.SetRedundancyEnabled(true, "worker-1", "enclave-2")

	m, err := metrics.New(metric.NewRegistry())
	require.NoError(err)

	c := New(log.NoLog{}, DefaultConfig(), o, monitor, pqc, seq, m)
	require.NoError(c.seq.SubmitEncrypted(sequencer.EncryptedTransaction{
		ID:          ids.GenerateTestID(),
		Ciphertext:  []byte("payload"),
		SubmittedAt: time.Now(),
	}))

	result, err := c.Tick(context.Background(), 1)
	require.NoError(err)
	require.NotNil(result.Batch)
	require.True(result.Batch.Attestation.RedundancyDowngraded)

	a := monitor.Assess()
	var found bool
	for _, b := range a.Breakdown {
		if b.Category == qrm.MigrationAgility && b.IndicatorCount > 0 {
			found = true
		}
	}
	require.True(found)
}

func TestTickStagesRotationOnScheduleRecommendation(t *testing.T) {
	require := require.New(t)
	c := newTestController(t)
	c.monitor.SetEra(qrm.NISQ)

	for i := 0; i < 50; i++ {
		c.monitor.Ingest(qrm.Indicator{
			Category:   qrm.DigitalSignatures,
			Severity:   0.95,
			Confidence: 1.0,
			Timestamp:  time.Now(),
		})
	}

	result, err := c.Tick(context.Background(), 1)
	require.NoError(err)
	require.Equal(qrm.ScheduleRotation, result.Assessment.Recommendation)
	require.True(result.RotationStaged)
	pending, _ := c.pqc.RotationStatus()
	require.True(pending)
}
