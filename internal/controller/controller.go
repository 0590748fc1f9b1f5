// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package controller binds the QVM oracle, QRM, APQC, and Sequencer
// components into the protocol-stack's control loop.
package controller

import (
	"context"
	"time"

	"github.com/luxfi/log"

	"github.com/Halo-Labs-xyz/qAegis/internal/apqc"
	"github.com/Halo-Labs-xyz/qAegis/internal/metrics"
	"github.com/Halo-Labs-xyz/qAegis/internal/oracle"
	"github.com/Halo-Labs-xyz/qAegis/internal/qrm"
	"github.com/Halo-Labs-xyz/qAegis/internal/sequencer"
)

// Config carries the control loop's own scheduling parameters,
// independent of any single component's configuration.
type Config struct {
	AssessmentIntervalBlocks uint64
	BatchIntervalBlocks      uint64
}

// DefaultConfig mirrors the oracle's default assessment cadence and
// assembles a batch on every block.
func DefaultConfig() Config {
	return Config{AssessmentIntervalBlocks: 100, BatchIntervalBlocks: 1}
}

// Controller runs the seven-step control tick described in the
// protocol-stack specification, wiring QVM -> QRM -> APQC -> Sequencer.
type Controller struct {
	log log.Logger
	cfg Config

	oracle  *oracle.Oracle
	monitor *qrm.Monitor
	pqc     *apqc.APQC
	seq     *sequencer.Sequencer
	metrics *metrics.Metrics
}

// New constructs a Controller over already-initialized components.
func New(logger log.Logger, cfg Config, o *oracle.Oracle, monitor *qrm.Monitor, pqc *apqc.APQC, seq *sequencer.Sequencer, m *metrics.Metrics) *Controller {
	return &Controller{log: logger, cfg: cfg, oracle: o, monitor: monitor, pqc: pqc, seq: seq, metrics: m}
}

// TickResult summarizes what the tick did, for logging and tests.
type TickResult struct {
	Assessment      qrm.RiskAssessment
	RotationStaged  bool
	RotationExecuted bool
	EmergencyFired  bool
	Batch           *sequencer.QuantumResistantBatch
}

// Tick runs one control-tick iteration at the given block height. chain
// is consulted only indirectly, through the sequencer's own
// ChainCollaborator; this signature takes currentBlock explicitly so
// the controller itself has no chain dependency.
func (c *Controller) Tick(ctx context.Context, currentBlock uint64) (TickResult, error) {
	now := time.Now()
	c.metrics.IncTick()

	// 1. Trigger QVM assess_and_update on the assessment cadence.
	if c.cfg.AssessmentIntervalBlocks > 0 && currentBlock%c.cfg.AssessmentIntervalBlocks == 0 {
		c.oracle.AssessAndUpdate(c.monitor, now)
	}

	// 2. Call QRM assess().
	assessment := c.monitor.Assess()
	c.metrics.IncAssessment()
	c.metrics.SetRiskScore(assessment.Score)
	c.metrics.SetEra(int(assessment.Era))

	result := TickResult{Assessment: assessment}

	// 3. Schedule rotation if recommended and none already pending.
	pending, _ := c.pqc.RotationStatus()
	if assessment.Recommendation == qrm.ScheduleRotation && !pending {
		if err := c.pqc.StageRotation(currentBlock); err != nil {
			return result, err
		}
		c.metrics.IncRotationStaged()
		result.RotationStaged = true
	}

	// 4. Emergency rotation bypasses the grace period entirely.
	if assessment.Recommendation == qrm.EmergencyRotation {
		if err := c.pqc.EmergencyRotation(true); err != nil {
			return result, err
		}
		c.metrics.IncEmergencyRotation()
		result.EmergencyFired = true
	}

	// 5. Execute any rotation whose grace period has elapsed.
	executed, err := c.pqc.ExecuteRotation(currentBlock)
	if err != nil {
		return result, err
	}
	if executed {
		c.metrics.IncRotationExecuted()
		result.RotationExecuted = true
	}

	// 6. Forward the assessment into the sequencer's intelligence input;
	// CreateQuantumBatch takes it directly as an argument (step 7), so
	// there is nothing further to stage here beyond observing mempool
	// depth for metrics.
	c.metrics.SetMempoolLength(c.seq.PendingCount())

	// 7. Assemble and emit a batch if one is due.
	if c.cfg.BatchIntervalBlocks == 0 || currentBlock%c.cfg.BatchIntervalBlocks == 0 {
		batch, err := c.seq.CreateQuantumBatch(ctx, c.pqc, assessment, now)
		if err != nil {
			return result, err
		}
		if batch == nil || len(batch.Transactions) == 0 {
			c.metrics.IncBatchEmpty()
		} else {
			c.metrics.IncBatchEmitted()
		}
		if batch != nil {
			c.metrics.AddDeadLetters(len(batch.DeadLettered))
			if batch.Attestation.RedundancyDowngraded {
				c.monitor.Ingest(qrm.Indicator{
					Category:    qrm.MigrationAgility,
					SubCategory: "redundancy_unavailable",
					Severity:    0.3,
					Confidence:  1.0,
					Timestamp:   now,
					Description: "redundancy attestation unavailable; batch emitted on primary attestation only",
				})
			}
		}
		result.Batch = batch
	}

	return result, nil
}
