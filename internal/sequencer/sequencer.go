// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sequencer

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/luxfi/log"

	"github.com/Halo-Labs-xyz/qAegis/internal/apqc"
	sequencerconfig "github.com/Halo-Labs-xyz/qAegis/internal/sequencer/config"
	"github.com/Halo-Labs-xyz/qAegis/internal/qrm"
)

// Sequencer is the TEE-backed batch assembler. It owns the mempool, the
// asset registry, and the migration tracker; it calls out to an APQC
// instance for signing and to a TEEPlatform/ChainCollaborator/optional
// RedundancyCollaborator for attestation and submission.
type Sequencer struct {
	log log.Logger
	cfg sequencerconfig.Config

	mu    sync.RWMutex
	mode  OrderingMode
	mempool *Mempool
	assets  *AssetRegistry
	migration *migrationTracker

	redundancyEnabled bool
	redundancyWorker  string
	redundancyEnclave string

	tee   TEEPlatform
	chain ChainCollaborator
	redundancy RedundancyCollaborator
	enclaveID  string
}

// New constructs a Sequencer bound to the given TEE platform and chain
// collaborator. redundancy may be nil; it is only consulted when
// SetRedundancyEnabled(true, ...) has been called.
func New(logger log.Logger, cfg sequencerconfig.Config, tee TEEPlatform, chain ChainCollaborator, redundancy RedundancyCollaborator, enclaveID string) (*Sequencer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Sequencer{
		log:       logger,
		cfg:       cfg,
		mode:      OrderingMode(cfg.IntelligenceMode),
		mempool:   NewMempool(cfg.MempoolCapacity, logger),
		assets:    NewAssetRegistry(),
		migration: newMigrationTracker(),
		tee:       tee,
		chain:     chain,
		redundancy: redundancy,
		enclaveID: enclaveID,
	}, nil
}

// SubmitEncrypted appends an encrypted transaction to the mempool.
func (s *Sequencer) SubmitEncrypted(tx EncryptedTransaction) error {
	return s.mempool.Submit(tx)
}

// RegisterAsset inserts or replaces an asset's protection record.
func (s *Sequencer) RegisterAsset(rec AssetProtectionRecord) {
	s.assets.Register(rec)
}

// SetOrdering changes the active intelligence-ordering mode.
func (s *Sequencer) SetOrdering(mode OrderingMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

// Ordering returns the active intelligence-ordering mode.
func (s *Sequencer) Ordering() OrderingMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetRedundancyEnabled toggles the redundancy cross-check. The
// redundancy collaborator itself is read-only: it independently attests
// over the primary's canonical bytes but never assembles its own batch.
func (s *Sequencer) SetRedundancyEnabled(enabled bool, workerID, enclaveID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.redundancyEnabled = enabled
	s.redundancyWorker = workerID
	s.redundancyEnclave = enclaveID
}

// StartMigration transitions the registry Idle -> Migrating, snapshotting
// all assets. Fails with ErrMigrationAlreadyActive if one is underway.
func (s *Sequencer) StartMigration(currentBlock uint64) (*MigrationCheckpoint, error) {
	return s.migration.Start(s.assets, currentBlock)
}

// CompleteMigration transitions Migrating -> Idle, marking migrated
// assets Active again. cp must match the currently active checkpoint.
func (s *Sequencer) CompleteMigration(cp *MigrationCheckpoint) error {
	return s.migration.Complete(s.assets, cp)
}

// RollbackMigration transitions Migrating -> Idle, restoring the
// pre-migration asset snapshot. Every queued mempool transaction with
// RequiresMigration set is discarded, whenever it was submitted; the
// discard is not limited to transactions submitted after cp.StartBlock.
func (s *Sequencer) RollbackMigration(cp *MigrationCheckpoint) error {
	if err := s.migration.Rollback(s.assets, cp); err != nil {
		return err
	}
	s.discardMigrationWindowTransactions(cp.StartBlock)
	return nil
}

func (s *Sequencer) discardMigrationWindowTransactions(startBlock uint64) {
	drained := s.mempool.Drain(s.mempool.Count())
	keep := make([]EncryptedTransaction, 0, len(drained))
	for _, tx := range drained {
		if tx.RequiresMigration {
			continue
		}
		keep = append(keep, tx)
	}
	s.mempool.Requeue(keep)
}

// CreateQuantumBatch runs the full nine-step batch-assembly algorithm.
// It returns (nil, nil) if zero transactions are eligible after draining
// and policy filtering — that is not an error, just an empty tick. now is
// supplied by the caller at tick granularity (not time.Now() taken here)
// so that re-running assembly over identical drained input at the same
// block and tick produces bit-identical canonical bytes.
func (s *Sequencer) CreateQuantumBatch(ctx context.Context, pqc *apqc.APQC, assessment qrm.RiskAssessment, now time.Time) (*QuantumResistantBatch, error) {
	batchSize := s.cfg.BatchSizeMax

	drained := s.mempool.Drain(batchSize)
	if len(drained) == 0 {
		return nil, nil
	}

	decrypted, deadLetters := s.decryptStage(ctx, drained)
	surviving, policyDeadLetters := s.policyFilterStage(decrypted)
	deadLetters = append(deadLetters, policyDeadLetters...)

	if len(surviving) == 0 {
		for _, dl := range deadLetters {
			s.log.Warn("transaction dead-lettered with no surviving batch", "id", dl.ID, "reason", dl.Reason)
		}
		return nil, nil
	}

	s.mu.RLock()
	mode := s.mode
	s.mu.RUnlock()

	cp := s.migration.Current()
	orderBatch(surviving, mode, s.assets, cp != nil)

	blockNumber, err := s.chain.CurrentBlockNumber(ctx)
	if err != nil {
		s.mempool.Requeue(drained)
		return nil, fmt.Errorf("sequencer: current block number: %w", err)
	}

	canonical := canonicalBytes(blockNumber, now.Unix(), surviving)

	sig, err := pqc.SignDual(canonical, apqc.CombinerAND)
	if err != nil {
		s.mempool.Requeue(drained)
		return nil, fmt.Errorf("sequencer: sign_dual: %w", err)
	}

	reportData := sha256.Sum256(canonical)
	quote, err := s.tee.GetQuote(ctx, reportData)
	if err != nil {
		s.mempool.Requeue(drained)
		return nil, fmt.Errorf("sequencer: get_quote: %w", err)
	}

	att := Attestation{ReportData: reportData, Quote: quote, EnclaveID: s.enclaveID, Verified: true}

	s.mu.RLock()
	redundancyEnabled := s.redundancyEnabled
	redundancyWorker := s.redundancyWorker
	redundancyEnclave := s.redundancyEnclave
	s.mu.RUnlock()

	if redundancyEnabled && s.redundancy != nil {
		redQuote, err := s.redundancy.Attest(ctx, reportData, redundancyWorker, redundancyEnclave)
		if err != nil {
			s.log.Warn("redundancy attestation failed", "error", err)
			att.RedundancyDowngraded = true
		} else {
			att.RedundancyQuote = redQuote
			att.RedundancyEnclave = redundancyEnclave
			att.RedundancyMatched = true
		}
	}

	wireSig := &DualSignatureBytes{
		MLDSASignature:  sig.MLDSASignature,
		SLHDSASignature: sig.SLHDSASignature,
		AlgorithmSetTag: sig.AlgorithmSetTag,
	}
	if err := s.chain.SubmitBatch(ctx, canonical, wireSig); err != nil {
		s.mempool.Requeue(drained)
		return nil, fmt.Errorf("sequencer: submit_batch: %w", err)
	}

	batch := &QuantumResistantBatch{
		BlockNumber:  blockNumber,
		Timestamp:    now,
		Mode:         mode,
		Transactions: surviving,
		DeadLettered: deadLetters,
		Canonical:    canonical,
		Signature:    sig,
		PublicKeys:   pqc.PublicKeys(),
		Attestation:  att,
		Checkpoint:   cp,
		RiskEra:      assessment.Era,
	}
	batch.ID = batchID(canonical)

	return batch, nil
}

// decryptStage unseals every drained transaction; malformed ciphertexts
// are dead-lettered rather than aborting the batch.
func (s *Sequencer) decryptStage(ctx context.Context, drained []EncryptedTransaction) ([]DecryptedTransaction, []DeadLetter) {
	decrypted := make([]DecryptedTransaction, 0, len(drained))
	var deadLetters []DeadLetter

	for _, tx := range drained {
		plaintext, err := s.tee.Unseal(ctx, tx.Ciphertext)
		if err != nil {
			deadLetters = append(deadLetters, DeadLetter{ID: tx.ID, Reason: fmt.Errorf("%w: %v", ErrDecryptionFailed, err)})
			continue
		}
		decrypted = append(decrypted, DecryptedTransaction{
			ID:                tx.ID,
			Plaintext:         plaintext,
			AssetID:           tx.AssetID,
			RiskLevel:         tx.RiskLevel,
			RequiresPQC:       tx.RequiresPQC,
			RequiresMigration: tx.RequiresMigration,
			SubmittedAt:       tx.SubmittedAt,
		})
	}
	return decrypted, deadLetters
}

// policyFilterStage evaluates each decrypted transaction's asset policy,
// rejecting those that fail to the dead-letter log.
func (s *Sequencer) policyFilterStage(decrypted []DecryptedTransaction) ([]DecryptedTransaction, []DeadLetter) {
	surviving := make([]DecryptedTransaction, 0, len(decrypted))
	var deadLetters []DeadLetter

	for _, tx := range decrypted {
		rec := s.assets.Get(tx.AssetID)
		if rec.Tier == TierRequiresPQC && !tx.RequiresPQC {
			deadLetters = append(deadLetters, DeadLetter{ID: tx.ID, Reason: fmt.Errorf("%w: requires_pqc unmet", ErrPolicyRejected)})
			continue
		}
		if rec.PolicyActive && tx.RiskLevel < rec.RiskThreshold {
			deadLetters = append(deadLetters, DeadLetter{ID: tx.ID, Reason: fmt.Errorf("%w: risk_level below policy threshold", ErrPolicyRejected)})
			continue
		}
		surviving = append(surviving, tx)
	}
	return surviving, deadLetters
}

// PendingCount returns the number of transactions currently queued.
func (s *Sequencer) PendingCount() int {
	return s.mempool.Count()
}
