// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package qrm

// Category is one of the 12 closed threat-taxonomy tags.
type Category string

const (
	DigitalSignatures Category = "digital-signatures"
	ZKProofForgery    Category = "zk-proof-forgery"
	DecryptionHNDL    Category = "decryption-hndl"
	HashReversal      Category = "hash-reversal"
	ConsensusAttacks  Category = "consensus-attacks"
	CrossChainBridge  Category = "cross-chain-bridge"
	NetworkLayer      Category = "network-layer"
	KeyManagement     Category = "key-management"
	MEVOrdering       Category = "mev-ordering"
	SmartContracts    Category = "smart-contracts"
	SideChannel       Category = "side-channel"
	MigrationAgility  Category = "migration-agility"
)

// AllCategories is the closed enumeration in a stable order.
var AllCategories = []Category{
	DigitalSignatures,
	ZKProofForgery,
	DecryptionHNDL,
	HashReversal,
	ConsensusAttacks,
	CrossChainBridge,
	NetworkLayer,
	KeyManagement,
	MEVOrdering,
	SmartContracts,
	SideChannel,
	MigrationAgility,
}

// categoryWeight is the static weight in [0,1]; the 12 values sum to
// exactly 1.0. The "1.0 layout" is normative per the governing design
// notes — an earlier layout summing to ~0.95 is not reproduced here.
var categoryWeight = map[Category]float64{
	DigitalSignatures: 0.12,
	ZKProofForgery:    0.10,
	DecryptionHNDL:    0.12,
	HashReversal:      0.04,
	ConsensusAttacks:  0.10,
	CrossChainBridge:  0.08,
	NetworkLayer:      0.06,
	KeyManagement:     0.10,
	MEVOrdering:       0.08,
	SmartContracts:    0.08,
	SideChannel:       0.06,
	MigrationAgility:  0.06,
}

// eraMultiplier gives each category's severity multiplier per Era. Two
// invariants bind this table: DecryptionHNDL never drops below 0.8 (the
// harvest-now-decrypt-later threat is already live pre-quantum), and
// HashReversal never exceeds 0.2 (Grover's algorithm gives only a quadratic
// speedup against hash preimage search).
//
// HashReversal's pre-quantum/nisq/fault-tolerant multiplier is fixed at a
// flat 0.15 here; an earlier layout used a flat 0.3, which violates the
// ceiling and is not reproduced.
var eraMultiplier = map[Category][3]float64{
	// index 0 = pre-quantum, 1 = nisq, 2 = fault-tolerant
	DigitalSignatures: {0.30, 0.70, 1.00},
	ZKProofForgery:    {0.20, 0.50, 0.90},
	DecryptionHNDL:    {0.80, 0.90, 1.00},
	HashReversal:      {0.15, 0.15, 0.15},
	ConsensusAttacks:  {0.20, 0.60, 1.00},
	CrossChainBridge:  {0.30, 0.60, 0.90},
	NetworkLayer:      {0.20, 0.40, 0.70},
	KeyManagement:     {0.30, 0.70, 1.00},
	MEVOrdering:       {0.40, 0.60, 0.80},
	SmartContracts:    {0.30, 0.60, 1.00},
	SideChannel:       {0.30, 0.50, 0.70},
	MigrationAgility:  {0.50, 0.70, 0.90},
}

// Weight returns the static weight for c.
func Weight(c Category) float64 {
	return categoryWeight[c]
}

// EraMultiplier returns the severity multiplier for c at era.
func EraMultiplier(c Category, era Era) float64 {
	row := eraMultiplier[c]
	return row[era]
}

// WeightSum returns the sum of all category weights, used to validate the
// Σweight = 1.0 invariant.
func WeightSum() float64 {
	var sum float64
	for _, c := range AllCategories {
		sum += categoryWeight[c]
	}
	return sum
}
