// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sequencer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMigrationTrackerRejectsConcurrentStart(t *testing.T) {
	require := require.New(t)
	assets := NewAssetRegistry()
	tr := newMigrationTracker()

	_, err := tr.Start(assets, 1)
	require.NoError(err)

	_, err = tr.Start(assets, 2)
	require.ErrorIs(err, ErrMigrationAlreadyActive)
}

func TestMigrationTrackerCompleteRequiresMatchingCheckpoint(t *testing.T) {
	require := require.New(t)
	assets := NewAssetRegistry()
	tr := newMigrationTracker()

	assets.Register(AssetProtectionRecord{AssetID: "a", State: AssetActive})
	cp, err := tr.Start(assets, 1)
	require.NoError(err)
	require.Equal(AssetMigrating, assets.Get("a").State)

	stale := &MigrationCheckpoint{CheckpointID: cp.CheckpointID}
	stale.CheckpointID[0] ^= 0xFF
	err = tr.Complete(assets, stale)
	require.ErrorIs(err, ErrNoActiveMigration)

	require.NoError(tr.Complete(assets, cp))
	require.Equal(AssetActive, assets.Get("a").State)
	require.Nil(tr.Current())
}

func TestMigrationTrackerRollbackRestoresSnapshot(t *testing.T) {
	require := require.New(t)
	assets := NewAssetRegistry()
	tr := newMigrationTracker()

	assets.Register(AssetProtectionRecord{AssetID: "a", Tier: TierRequiresTEE, State: AssetActive})
	cp, err := tr.Start(assets, 1)
	require.NoError(err)

	assets.Register(AssetProtectionRecord{AssetID: "a", Tier: TierNeither, State: AssetMigrating})

	require.NoError(tr.Rollback(assets, cp))
	require.Equal(TierRequiresTEE, assets.Get("a").Tier)
	require.Equal(AssetActive, assets.Get("a").State)
}
