// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config contains the foundational parameters of the TEE Sequencer.
package config

// IntelligenceMode selects the batch-ordering policy.
type IntelligenceMode uint8

const (
	RiskAware IntelligenceMode = iota
	AssetProtection
	MigrationAware
	Hybrid
)

// QuoteType names the TEE attestation quote format.
type QuoteType uint8

const (
	QuoteTDX QuoteType = iota
	QuoteSEV
	QuoteSGX
)

// Config contains all the foundational parameters of the sequencer.
type Config struct {
	MempoolCapacity    int
	BatchSizeMin       int
	BatchSizeMax       int
	IntelligenceMode   IntelligenceMode
	RedundancyEnabled  bool
	RedundancyWorkerID string
	RedundancyEnclaveID string
	RedundancyRequired bool
	QuoteType          QuoteType
}

// DefaultConfig returns a Config with spec-default values.
func DefaultConfig() Config {
	return Config{
		MempoolCapacity:  10000,
		BatchSizeMin:     10,
		BatchSizeMax:     50,
		IntelligenceMode: Hybrid,
		QuoteType:        QuoteTDX,
	}
}

// Validate corrects out-of-range values rather than failing construction.
func (c *Config) Validate() error {
	if c.MempoolCapacity <= 0 {
		c.MempoolCapacity = 10000
	}
	if c.BatchSizeMin <= 0 {
		c.BatchSizeMin = 10
	}
	if c.BatchSizeMax < c.BatchSizeMin {
		c.BatchSizeMax = 50
	}
	return nil
}
