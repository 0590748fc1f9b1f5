// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package qrm

import "time"

// Era is the ordered quantum-capability regime.
type Era int

const (
	PreQuantum Era = iota
	NISQ
	FaultTolerant
)

// String implements fmt.Stringer.
func (e Era) String() string {
	switch e {
	case PreQuantum:
		return "pre-quantum"
	case NISQ:
		return "nisq"
	case FaultTolerant:
		return "fault-tolerant"
	default:
		return "unknown"
	}
}

// Recommendation is the pure function of score and the two thresholds,
// ordered Continue < MonitorClosely < ScheduleRotation < EmergencyRotation.
type Recommendation int

const (
	Continue Recommendation = iota
	MonitorClosely
	ScheduleRotation
	EmergencyRotation
)

func (r Recommendation) String() string {
	switch r {
	case Continue:
		return "Continue"
	case MonitorClosely:
		return "MonitorClosely"
	case ScheduleRotation:
		return "ScheduleRotation"
	case EmergencyRotation:
		return "EmergencyRotation"
	default:
		return "unknown"
	}
}

// Indicator is an append-only threat observation.
type Indicator struct {
	Category      Category
	SubCategory   string
	Severity      float64
	Confidence    float64
	Source        string
	Timestamp     time.Time
	Description   string
	EraRelevance  Era
	References    []string
}

// CategoryBreakdown is one row of a RiskAssessment's per-category vector.
type CategoryBreakdown struct {
	Category        Category
	Score           uint64
	IndicatorCount  int
}

// RiskAssessment is the full output of Assess().
type RiskAssessment struct {
	Score           uint64
	Recommendation  Recommendation
	Breakdown       []CategoryBreakdown
	ActiveIndicators int
	Era             Era
	Timestamp       time.Time
}
