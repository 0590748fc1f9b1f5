// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sequencer

import "sort"

// OrderingMode is the active intelligence-ordering policy.
type OrderingMode int

const (
	RiskAware OrderingMode = iota
	AssetProtection
	MigrationAware
	Hybrid
)

func (m OrderingMode) String() string {
	switch m {
	case RiskAware:
		return "RiskAware"
	case AssetProtection:
		return "AssetProtection"
	case MigrationAware:
		return "MigrationAware"
	case Hybrid:
		return "Hybrid"
	default:
		return "unknown"
	}
}

// orderBatch sorts txs in place according to mode. The sort is always
// stable and every comparator bottoms out in submit-timestamp ascending,
// so identical inputs always produce identical output order regardless
// of which worker computes it.
func orderBatch(txs []DecryptedTransaction, mode OrderingMode, assets *AssetRegistry, migrating bool) {
	tierOf := func(tx DecryptedTransaction) ProtectionTier {
		return assets.Get(tx.AssetID).Tier
	}

	switch mode {
	case RiskAware:
		sort.SliceStable(txs, func(i, j int) bool {
			return lessRiskAware(txs[i], txs[j])
		})
	case AssetProtection:
		sort.SliceStable(txs, func(i, j int) bool {
			ti, tj := tierOf(txs[i]), tierOf(txs[j])
			if ti != tj {
				return ti > tj
			}
			return lessRiskAware(txs[i], txs[j])
		})
	case MigrationAware:
		sort.SliceStable(txs, func(i, j int) bool {
			if !migrating {
				return lessRiskAware(txs[i], txs[j])
			}
			mi, mj := txs[i].RequiresMigration, txs[j].RequiresMigration
			if mi != mj {
				return mi
			}
			if mi && mj {
				return txs[i].SubmittedAt.Before(txs[j].SubmittedAt)
			}
			return lessRiskAware(txs[i], txs[j])
		})
	case Hybrid:
		sort.SliceStable(txs, func(i, j int) bool {
			mi, mj := migrating && txs[i].RequiresMigration, migrating && txs[j].RequiresMigration
			if mi != mj {
				return mi
			}
			ti, tj := tierOf(txs[i]), tierOf(txs[j])
			if ti != tj {
				return ti > tj
			}
			return lessRiskAware(txs[i], txs[j])
		})
	}
}

// lessRiskAware is the RiskAware comparator: descending risk level,
// tiebreak on ascending submit timestamp. Every other mode falls back to
// this once its own keys are exhausted.
func lessRiskAware(a, b DecryptedTransaction) bool {
	if a.RiskLevel != b.RiskLevel {
		return a.RiskLevel > b.RiskLevel
	}
	return a.SubmittedAt.Before(b.SubmittedAt)
}
