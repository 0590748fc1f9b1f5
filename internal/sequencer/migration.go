// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sequencer

import (
	"sync"

	"github.com/luxfi/ids"
)

// migrationTracker owns the single in-flight MigrationCheckpoint, if
// any. Only one migration may be active at a time; Start on an
// already-active tracker fails rather than queuing.
type migrationTracker struct {
	mu       sync.RWMutex
	active   *MigrationCheckpoint
	sequence uint64
}

func newMigrationTracker() *migrationTracker {
	return &migrationTracker{}
}

// Start transitions Idle -> Migrating, snapshotting every currently
// Active asset into the new checkpoint and flipping the registry's
// asset states to Migrating.
func (t *migrationTracker) Start(assets *AssetRegistry, startBlock uint64) (*MigrationCheckpoint, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active != nil {
		return nil, ErrMigrationAlreadyActive
	}

	t.sequence++
	cpID, _ := ids.ToID(binarySequence(t.sequence, startBlock))

	cp := &MigrationCheckpoint{
		CheckpointID:   cpID,
		StartBlock:     startBlock,
		AssetSnapshots: assets.snapshot(),
	}
	assets.setAllState(AssetMigrating)

	t.active = cp
	cp2 := *cp
	return &cp2, nil
}

// Complete transitions Migrating -> Idle, accepting only a checkpoint
// matching the currently active one, and flips migrating assets back to
// Active.
func (t *migrationTracker) Complete(assets *AssetRegistry, cp *MigrationCheckpoint) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		return ErrNoActiveMigration
	}
	if cp == nil || cp.CheckpointID != t.active.CheckpointID {
		return ErrNoActiveMigration
	}

	assets.setAllState(AssetActive)
	t.active = nil
	return nil
}

// Rollback transitions Migrating -> Idle, restoring the asset registry
// from the checkpoint's snapshot. Transactions submitted during the
// migrating window with RequiresMigration set are the caller's
// (sequencer's) responsibility to discard from the mempool.
func (t *migrationTracker) Rollback(assets *AssetRegistry, cp *MigrationCheckpoint) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == nil {
		return ErrNoActiveMigration
	}
	if cp == nil || cp.CheckpointID != t.active.CheckpointID {
		return ErrNoActiveMigration
	}

	assets.restore(t.active.AssetSnapshots)
	t.active = nil
	return nil
}

// Current returns the active checkpoint, or nil if Idle. The returned
// value is a defensive copy so batch assembly may attach it to a batch
// without racing a concurrent Complete/Rollback.
func (t *migrationTracker) Current() *MigrationCheckpoint {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.active == nil {
		return nil
	}
	cp := *t.active
	return &cp
}

// binarySequence deterministically seeds a checkpoint ID from the
// tracker's monotonic sequence number and the starting block, avoiding
// any dependency on wall-clock time or randomness.
func binarySequence(sequence, startBlock uint64) []byte {
	b := make([]byte, 16)
	for i := 0; i < 8; i++ {
		b[i] = byte(sequence >> (8 * (7 - i)))
		b[8+i] = byte(startBlock >> (8 * (7 - i)))
	}
	return b
}
