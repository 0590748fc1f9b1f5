// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package qrm

// Config contains the foundational parameters of the Quantum Resistance
// Monitor.
type Config struct {
	// HistoryCapacity bounds the indicator ring; overflow discards the
	// oldest entry. MUST be >= 1000.
	HistoryCapacity int
	// ScoringWindow is N, the count of most-recent indicators considered
	// by Assess.
	ScoringWindow int
	// RiskThresholdScheduled triggers ScheduleRotation.
	RiskThresholdScheduled uint64
	// RiskThresholdEmergency triggers EmergencyRotation.
	RiskThresholdEmergency uint64
}

// DefaultConfig returns a Config with spec-default values.
func DefaultConfig() Config {
	return Config{
		HistoryCapacity:        1000,
		ScoringWindow:          50,
		RiskThresholdScheduled: 6000,
		RiskThresholdEmergency: 9000,
	}
}

// Validate corrects out-of-range values rather than failing construction.
func (c *Config) Validate() error {
	if c.HistoryCapacity < 1000 {
		c.HistoryCapacity = 1000
	}
	if c.ScoringWindow <= 0 {
		c.ScoringWindow = 50
	}
	if c.RiskThresholdScheduled == 0 {
		c.RiskThresholdScheduled = 6000
	}
	if c.RiskThresholdEmergency == 0 || c.RiskThresholdEmergency <= c.RiskThresholdScheduled {
		c.RiskThresholdEmergency = 9000
	}
	return nil
}
