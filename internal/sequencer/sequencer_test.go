// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sequencer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/stretchr/testify/require"

	"github.com/Halo-Labs-xyz/qAegis/internal/apqc"
	apqcconfig "github.com/Halo-Labs-xyz/qAegis/internal/apqc/config"
	"github.com/Halo-Labs-xyz/qAegis/internal/qrm"
	sequencerconfig "github.com/Halo-Labs-xyz/qAegis/internal/sequencer/config"
)

type fakeTEE struct {
	failUnseal map[ids.ID]bool
}

func (f *fakeTEE) Unseal(_ context.Context, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 {
		return nil, errors.New("empty ciphertext")
	}
	return ciphertext, nil
}

func (f *fakeTEE) GetQuote(_ context.Context, reportData [32]byte) ([]byte, error) {
	q := make([]byte, 32)
	copy(q, reportData[:])
	return q, nil
}

func (f *fakeTEE) VerifyQuote(_ context.Context, quote []byte) (bool, error) {
	return len(quote) == 32, nil
}

type fakeChain struct {
	block uint64
}

func (c *fakeChain) SubmitBatch(_ context.Context, _ []byte, _ *DualSignatureBytes) error {
	return nil
}

func (c *fakeChain) CurrentBlockNumber(_ context.Context) (uint64, error) {
	return c.block, nil
}

type fakeRedundancy struct{}

func (fakeRedundancy) Attest(_ context.Context, reportData [32]byte, _ string, _ string) ([]byte, error) {
	q := make([]byte, 32)
	copy(q, reportData[:])
	return q, nil
}

type failingRedundancy struct{}

func (failingRedundancy) Attest(_ context.Context, _ [32]byte, _ string, _ string) ([]byte, error) {
	return nil, errors.New("redundancy quote timed out")
}

func newTestSequencer(t *testing.T) (*Sequencer, *apqc.APQC) {
	t.Helper()
	require := require.New(t)

	pqc, err := apqc.New(log.NoLog{}, apqcconfig.DefaultConfig())
	require.NoError(err)

	cfg := sequencerconfig.DefaultConfig()
	s, err := New(log.NoLog{}, cfg, &fakeTEE{}, &fakeChain{}, fakeRedundancy{}, "enclave-1")
	require.NoError(err)
	return s, pqc
}

func submit(t *testing.T, s *Sequencer, assetID string, risk uint64, requiresPQC, requiresMigration bool, at time.Time) ids.ID {
	t.Helper()
	id := ids.GenerateTestID()
	err := s.SubmitEncrypted(EncryptedTransaction{
		ID:                id,
		Ciphertext:        []byte("payload-" + id.String()),
		AssetID:           assetID,
		RiskLevel:         risk,
		RequiresPQC:       requiresPQC,
		RequiresMigration: requiresMigration,
		SubmittedAt:       at,
	})
	require.NoError(t, err)
	return id
}

// S1: cold-start batch assembly with no assets registered, default
// Hybrid ordering, and an empty risk assessment.
func TestColdStartBatchAssembly(t *testing.T) {
	require := require.New(t)
	s, pqc := newTestSequencer(t)

	base := time.Now()
	submit(t, s, "asset-a", 0, false, false, base)
	submit(t, s, "asset-a", 0, false, false, base.Add(time.Millisecond))
	submit(t, s, "asset-a", 0, false, false, base.Add(2*time.Millisecond))

	batch, err := s.CreateQuantumBatch(context.Background(), pqc, qrm.RiskAssessment{Recommendation: qrm.Continue}, time.Now())
	require.NoError(err)
	require.NotNil(batch)
	require.Len(batch.Transactions, 3)
	require.Empty(batch.DeadLettered)
	require.NotNil(batch.Signature)
	require.True(batch.Attestation.Verified)

	pubs := pqc.PublicKeys()
	res, err := pqc.VerifyDual(batch.Canonical, batch.Signature, pubs, apqc.CombinerAND)
	require.NoError(err)
	require.True(res.Valid)
}

// S4: an asset requiring PQC rejects a transaction that did not assert
// RequiresPQC, dead-lettering it rather than failing the whole batch.
func TestPolicyRejectsTransactionMissingRequiredPQC(t *testing.T) {
	require := require.New(t)
	s, pqc := newTestSequencer(t)

	s.RegisterAsset(AssetProtectionRecord{AssetID: "vault", Tier: TierRequiresPQC})

	base := time.Now()
	goodID := submit(t, s, "vault", 0, true, false, base)
	badID := submit(t, s, "vault", 0, false, false, base.Add(time.Millisecond))

	batch, err := s.CreateQuantumBatch(context.Background(), pqc, qrm.RiskAssessment{}, time.Now())
	require.NoError(err)
	require.NotNil(batch)
	require.Len(batch.Transactions, 1)
	require.Equal(goodID, batch.Transactions[0].ID)
	require.Len(batch.DeadLettered, 1)
	require.Equal(badID, batch.DeadLettered[0].ID)
	require.ErrorIs(batch.DeadLettered[0].Reason, ErrPolicyRejected)
}

// When every drained transaction is rejected by policy, CreateQuantumBatch
// returns (nil, nil) rather than an empty, unsigned batch.
func TestCreateQuantumBatchReturnsNilWhenNothingSurvivesPolicy(t *testing.T) {
	require := require.New(t)
	s, pqc := newTestSequencer(t)

	s.RegisterAsset(AssetProtectionRecord{AssetID: "vault", Tier: TierRequiresPQC})
	submit(t, s, "vault", 0, false, false, time.Now())

	batch, err := s.CreateQuantumBatch(context.Background(), pqc, qrm.RiskAssessment{}, time.Now())
	require.NoError(err)
	require.Nil(batch)
}

// CreateQuantumBatch over identical drained input at the same block and
// tick produces bit-identical canonical bytes, since the caller threads
// the same now through rather than each call sampling time.Now() itself.
func TestCreateQuantumBatchCanonicalBytesReproducibleForSameTick(t *testing.T) {
	require := require.New(t)
	s, pqc := newTestSequencer(t)
	tick := time.Now()

	submit(t, s, "a", 0, false, false, tick)
	batch, err := s.CreateQuantumBatch(context.Background(), pqc, qrm.RiskAssessment{}, tick)
	require.NoError(err)
	require.NotNil(batch)

	want := canonicalBytes(batch.BlockNumber, tick.Unix(), batch.Transactions)
	require.Equal(want, batch.Canonical)
}

// When redundancy is enabled but the cross-check attestation fails, the
// batch still emits on the primary attestation alone and flags the
// downgrade for the caller to surface as a QRM indicator.
func TestCreateQuantumBatchFlagsRedundancyDowngradeOnFailure(t *testing.T) {
	require := require.New(t)
	s, pqc := newTestSequencer(t)
	s.SetRedundancyEnabled(true, "worker-1", "enclave-2")
	s.redundancy = failingRedundancy{}

	submit(t, s, "a", 0, false, false, time.Now())
	batch, err := s.CreateQuantumBatch(context.Background(), pqc, qrm.RiskAssessment{}, time.Now())
	require.NoError(err)
	require.NotNil(batch)
	require.True(batch.Attestation.RedundancyDowngraded)
	require.False(batch.Attestation.RedundancyMatched)
}

// S5: migration round trip. A batch assembled during Migrating carries
// the active checkpoint; completion clears it and a post-completion
// batch omits it.
func TestMigrationRoundTrip(t *testing.T) {
	require := require.New(t)
	s, pqc := newTestSequencer(t)

	s.RegisterAsset(AssetProtectionRecord{AssetID: "bridge-asset", Tier: TierNeither})

	cp, err := s.StartMigration(10)
	require.NoError(err)
	require.Equal(AssetMigrating, s.assets.Get("bridge-asset").State)

	base := time.Now()
	submit(t, s, "bridge-asset", 0, false, true, base)

	batch, err := s.CreateQuantumBatch(context.Background(), pqc, qrm.RiskAssessment{}, time.Now())
	require.NoError(err)
	require.NotNil(batch)
	require.NotNil(batch.Checkpoint)
	require.Equal(cp.CheckpointID, batch.Checkpoint.CheckpointID)

	require.NoError(s.CompleteMigration(cp))
	require.Equal(AssetActive, s.assets.Get("bridge-asset").State)

	submit(t, s, "bridge-asset", 0, false, false, base.Add(time.Millisecond))
	batch2, err := s.CreateQuantumBatch(context.Background(), pqc, qrm.RiskAssessment{}, time.Now())
	require.NoError(err)
	require.NotNil(batch2)
	require.Nil(batch2.Checkpoint)
}

// Rollback discards in-flight migration-window transactions and
// restores the pre-migration asset snapshot.
func TestMigrationRollbackDiscardsWindowTransactions(t *testing.T) {
	require := require.New(t)
	s, _ := newTestSequencer(t)

	s.RegisterAsset(AssetProtectionRecord{AssetID: "bridge-asset", Tier: TierRequiresTEE})
	cp, err := s.StartMigration(5)
	require.NoError(err)

	base := time.Now()
	migratingID := submit(t, s, "bridge-asset", 0, false, true, base)
	ordinaryID := submit(t, s, "bridge-asset", 0, false, false, base.Add(time.Millisecond))

	require.NoError(s.RollbackMigration(cp))
	require.Equal(TierRequiresTEE, s.assets.Get("bridge-asset").Tier)

	_ = migratingID
	drained := s.mempool.Drain(s.mempool.Count())
	require.Len(drained, 1)
	require.Equal(ordinaryID, drained[0].ID)
}

func TestRiskAwareOrderingDescendingWithTimestampTiebreak(t *testing.T) {
	require := require.New(t)
	s, pqc := newTestSequencer(t)
	s.SetOrdering(RiskAware)

	base := time.Now()
	lowID := submit(t, s, "a", 10, false, false, base)
	highID := submit(t, s, "a", 90, false, false, base.Add(time.Millisecond))
	tieID := submit(t, s, "a", 90, false, false, base.Add(2*time.Millisecond))

	batch, err := s.CreateQuantumBatch(context.Background(), pqc, qrm.RiskAssessment{}, time.Now())
	require.NoError(err)
	require.Len(batch.Transactions, 3)
	require.Equal(highID, batch.Transactions[0].ID)
	require.Equal(tieID, batch.Transactions[1].ID)
	require.Equal(lowID, batch.Transactions[2].ID)
}

func TestOrderingIsDeterministicAcrossRuns(t *testing.T) {
	require := require.New(t)

	assets := NewAssetRegistry()
	assets.Register(AssetProtectionRecord{AssetID: "a", Tier: TierRequiresTEE})
	assets.Register(AssetProtectionRecord{AssetID: "b", Tier: TierNeither})

	base := time.Now()
	build := func() []DecryptedTransaction {
		return []DecryptedTransaction{
			{ID: ids.GenerateTestID(), AssetID: "b", RiskLevel: 50, SubmittedAt: base},
			{ID: ids.GenerateTestID(), AssetID: "a", RiskLevel: 10, SubmittedAt: base.Add(time.Millisecond)},
			{ID: ids.GenerateTestID(), AssetID: "a", RiskLevel: 90, SubmittedAt: base.Add(2 * time.Millisecond)},
		}
	}

	txsA := build()
	txsB := make([]DecryptedTransaction, len(txsA))
	copy(txsB, txsA)

	orderBatch(txsA, Hybrid, assets, false)
	orderBatch(txsB, Hybrid, assets, false)

	for i := range txsA {
		require.Equal(txsA[i].ID, txsB[i].ID)
	}
	require.Equal(TierRequiresTEE, assets.Get(txsA[0].AssetID).Tier)
}

func TestMempoolFullRejectsSubmission(t *testing.T) {
	require := require.New(t)
	cfg := sequencerconfig.DefaultConfig()
	cfg.MempoolCapacity = 1
	s, err := New(log.NoLog{}, cfg, &fakeTEE{}, &fakeChain{}, nil, "enclave-1")
	require.NoError(err)

	require.NoError(s.SubmitEncrypted(EncryptedTransaction{ID: ids.GenerateTestID(), Ciphertext: []byte("x"), SubmittedAt: time.Now()}))
	err = s.SubmitEncrypted(EncryptedTransaction{ID: ids.GenerateTestID(), Ciphertext: []byte("y"), SubmittedAt: time.Now()})
	require.ErrorIs(err, ErrMempoolFull)
}
