// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config contains the foundational parameters of the Adaptive PQC layer.
package config

// Config contains all the foundational parameters of the APQC signer/verifier.
type Config struct {
	// RotationGraceBlocks is the number of blocks between stage_rotation and
	// execute_rotation becoming eligible.
	RotationGraceBlocks uint64

	// RiskThresholdScheduled is the ScheduleRotation risk threshold carried
	// in the APQC configuration. The QRM recommendation reads its own
	// qrm.Config threshold, not this field.
	RiskThresholdScheduled uint64

	// RiskThresholdEmergency is the EmergencyRotation risk threshold carried
	// in the APQC configuration. The QRM recommendation reads its own
	// qrm.Config threshold, not this field.
	RiskThresholdEmergency uint64

	// AlgorithmSetTag is the human-readable algorithm-set identifier attached
	// to every dual signature and publication.
	AlgorithmSetTag string

	// SigCacheSize is defaulted and validated here; no signature cache in
	// APQC reads it.
	SigCacheSize int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		RotationGraceBlocks:    1000,
		RiskThresholdScheduled: 6000,
		RiskThresholdEmergency: 9000,
		AlgorithmSetTag:        "ML-DSA-87 + SLH-DSA-256s",
		SigCacheSize:           4096,
	}
}

// Validate corrects out-of-range values to their defaults rather than
// failing construction.
func (c *Config) Validate() error {
	if c.RotationGraceBlocks == 0 {
		c.RotationGraceBlocks = 1000
	}
	if c.RiskThresholdScheduled == 0 {
		c.RiskThresholdScheduled = 6000
	}
	if c.RiskThresholdEmergency == 0 || c.RiskThresholdEmergency <= c.RiskThresholdScheduled {
		c.RiskThresholdEmergency = 9000
	}
	if c.AlgorithmSetTag == "" {
		c.AlgorithmSetTag = "ML-DSA-87 + SLH-DSA-256s"
	}
	if c.SigCacheSize <= 0 {
		c.SigCacheSize = 4096
	}
	return nil
}
