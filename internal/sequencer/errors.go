// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sequencer

import "errors"

var (
	// ErrMempoolFull is returned by Submit when the encrypted mempool is
	// at capacity.
	ErrMempoolFull = errors.New("sequencer: mempool full")

	// ErrUnknownTransaction names a transaction ID not present in the
	// mempool. No sequencer operation returns it.
	ErrUnknownTransaction = errors.New("sequencer: unknown transaction")

	// ErrPolicyRejected dead-letters a transaction that fails its asset's
	// access policy (missing required PQC signature, or risk level below
	// the policy's threshold).
	ErrPolicyRejected = errors.New("sequencer: access policy rejected transaction")

	// ErrDecryptionFailed dead-letters a transaction the TEE could not
	// unseal.
	ErrDecryptionFailed = errors.New("sequencer: decryption failed")

	// ErrMigrationAlreadyActive is returned by StartMigration when a
	// migration is already in progress.
	ErrMigrationAlreadyActive = errors.New("sequencer: migration already active")

	// ErrNoActiveMigration is returned by CompleteMigration or
	// RollbackMigration when no migration is in progress.
	ErrNoActiveMigration = errors.New("sequencer: no active migration")

	// ErrBatchTooSmall names a batch below the configured minimum size. No
	// sequencer operation returns it: CreateQuantumBatch emits any non-empty
	// set of surviving transactions regardless of BatchSizeMin.
	ErrBatchTooSmall = errors.New("sequencer: insufficient transactions for a batch")

	// ErrRedundancyMismatch names a redundancy-worker attestation that
	// diverged from the primary enclave's report data. No sequencer
	// operation returns it; CreateQuantumBatch does not compare the two
	// quotes.
	ErrRedundancyMismatch = errors.New("sequencer: redundancy attestation mismatch")
)
