// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package sequencer implements the TEE-backed batch sequencer: an
// encrypted mempool, asset-protection policy, intelligence-aware
// ordering, migration checkpointing, and dual-signed-plus-attested
// batch emission.
package sequencer

import (
	"time"

	"github.com/luxfi/ids"

	"github.com/Halo-Labs-xyz/qAegis/internal/apqc"
	"github.com/Halo-Labs-xyz/qAegis/internal/qrm"
)

// EncryptedTransaction is a client submission still sealed for the TEE.
// AssetID, RiskLevel, RequiresPQC and RequiresMigration are routing
// metadata supplied in clear at submission time (as in Shutter/Fairblock
// style encrypted mempools); only Ciphertext's payload is sealed, and it
// is unsealed exclusively inside the TEE boundary during batch assembly.
type EncryptedTransaction struct {
	ID                ids.ID
	Ciphertext        []byte
	AssetID           string
	RiskLevel         uint64
	RequiresPQC       bool
	RequiresMigration bool
	SubmittedAt       time.Time
}

// DecryptedTransaction is an EncryptedTransaction after TEE-local
// unsealing, carrying the attributes the policy and ordering stages
// read. AssetID, RiskLevel, RequiresPQC, RequiresMigration and
// SubmittedAt are copied unchanged from the EncryptedTransaction's clear
// routing metadata.
type DecryptedTransaction struct {
	ID                ids.ID
	Plaintext         []byte
	AssetID           string
	RiskLevel         uint64
	RequiresPQC       bool
	RequiresMigration bool
	SubmittedAt       time.Time
}

// ProtectionTier is the ordered asset-protection priority: RequiresTEE
// ranks ahead of RequiresPQC, which ranks ahead of Neither.
type ProtectionTier int

const (
	TierNeither ProtectionTier = iota
	TierRequiresPQC
	TierRequiresTEE
)

// AssetState tracks whether an asset is under an active migration.
type AssetState int

const (
	AssetActive AssetState = iota
	AssetMigrating
)

// AssetProtectionRecord binds an asset identifier to its protection
// policy. RiskThreshold, when PolicyActive, rejects any transaction
// whose RiskLevel falls below it.
type AssetProtectionRecord struct {
	AssetID       string
	Tier          ProtectionTier
	PolicyActive  bool
	RiskThreshold uint64
	State         AssetState
}

// MigrationCheckpoint snapshots the asset registry at the moment a
// migration starts, so Rollback can restore it exactly.
type MigrationCheckpoint struct {
	CheckpointID  ids.ID
	StartBlock    uint64
	AssetSnapshots map[string]AssetProtectionRecord
}

// Attestation is the TEE quote binding a batch's canonical bytes to the
// enclave that produced it, plus an optional redundancy cross-check.
type Attestation struct {
	ReportData           [32]byte
	Quote                []byte
	EnclaveID            string
	RedundancyQuote      []byte
	RedundancyEnclave    string
	RedundancyMatched    bool
	RedundancyDowngraded bool
	Verified             bool
}

// DeadLetter records a transaction excluded from a batch along with why.
type DeadLetter struct {
	ID     ids.ID
	Reason error
}

// QuantumResistantBatch is the final emitted unit: an ordered set of
// transactions, dual-signed over the canonical encoding, carrying a TEE
// attestation and (if a migration is in progress) its checkpoint.
type QuantumResistantBatch struct {
	ID           ids.ID
	BlockNumber  uint64
	Timestamp    time.Time
	Mode         OrderingMode
	Transactions []DecryptedTransaction
	DeadLettered []DeadLetter
	Canonical    []byte
	Signature    *apqc.DualSignature
	PublicKeys   apqc.PublicKeys
	Attestation  Attestation
	Checkpoint   *MigrationCheckpoint
	RiskEra      qrm.Era
}
