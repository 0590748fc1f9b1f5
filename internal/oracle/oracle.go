// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package oracle implements the Quantum Virtual Machine (QVM) oracle: the
// processor-profile-driven Grover/Shor threat estimators and the periodic
// assessment cycle that feeds indicators back into the Quantum Resistance
// Monitor and drives era auto-transition.
package oracle

import (
	"time"

	"github.com/luxfi/log"

	"github.com/Halo-Labs-xyz/qAegis/internal/oracle/profile"
	"github.com/Halo-Labs-xyz/qAegis/internal/oracle/threat"
	"github.com/Halo-Labs-xyz/qAegis/internal/qrm"
)

// horizonYears bounds the severity formula's logarithmic scale; it matches
// the LongTerm/Theoretical boundary used by threat.classify.
const horizonYears = 100

// Config contains the foundational parameters of the QVM oracle.
type Config struct {
	ProcessorProfile        string
	AssessmentIntervalBlocks uint64
	SimulationRepetitions   int
	ApplyNoise              bool
	AutoEraTransition       bool
}

// DefaultConfig returns spec-default values.
func DefaultConfig() Config {
	return Config{
		ProcessorProfile:         "willow_pink",
		AssessmentIntervalBlocks: 100,
		SimulationRepetitions:    3000,
		ApplyNoise:               true,
		AutoEraTransition:        true,
	}
}

// Validate corrects out-of-range values rather than failing construction.
func (c *Config) Validate() error {
	if c.ProcessorProfile == "" {
		c.ProcessorProfile = "willow_pink"
	}
	if c.AssessmentIntervalBlocks == 0 {
		c.AssessmentIntervalBlocks = 100
	}
	if c.SimulationRepetitions <= 0 {
		c.SimulationRepetitions = 3000
	}
	return nil
}

// Oracle binds the estimators to a processor profile and runs the
// periodic assessment cycle against a QRM instance.
type Oracle struct {
	log     log.Logger
	cfg     Config
	profile profile.Profile
}

// New constructs an Oracle.
func New(logger log.Logger, cfg Config) (*Oracle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Oracle{log: logger, cfg: cfg, profile: profile.ByName(cfg.ProcessorProfile)}, nil
}

// Profile returns the processor profile the oracle is bound to.
func (o *Oracle) Profile() profile.Profile { return o.profile }

// levelScore maps a threat level to a 0-10000 composite-risk contribution.
func levelScore(l threat.Level) uint64 {
	switch l {
	case threat.Imminent:
		return 10000
	case threat.NearTerm:
		return 7500
	case threat.MediumTerm:
		return 5000
	case threat.LongTerm:
		return 2500
	default:
		return 0
	}
}

func eraRelevanceForLevel(l threat.Level) qrm.Era {
	switch l {
	case threat.Imminent:
		return qrm.FaultTolerant
	case threat.NearTerm, threat.MediumTerm:
		return qrm.NISQ
	default:
		return qrm.PreQuantum
	}
}

// groverCategory assigns a taxonomy category to a Grover target.
func groverCategory(target string) qrm.Category {
	switch target {
	case "SHA-256-preimage", "Keccak-256-preimage":
		return qrm.HashReversal
	default:
		return qrm.KeyManagement
	}
}

// shorCategory assigns a taxonomy category to a Shor target.
func shorCategory(target string) qrm.Category {
	if target == "BLS12-381" {
		return qrm.ConsensusAttacks
	}
	return qrm.DigitalSignatures
}

// confidenceForProfile derives a processor-dependent confidence constant:
// lower single-qubit error yields higher confidence in the estimate.
func confidenceForProfile(p profile.Profile) float64 {
	c := 1 - p.SingleQubitError*10
	if c < 0.5 {
		c = 0.5
	}
	if c > 0.99 {
		c = 0.99
	}
	return c
}

// AssessAndUpdate runs both estimators for all targets, emits one threat
// indicator per target into monitor, and — if auto-era-transition is
// enabled — advances monitor's era based on the composite risk
// (max_shor_score*70 + max_grover_score*30)/100. Era transitions are
// monotonic: this never downgrades.
func (o *Oracle) AssessAndUpdate(monitor *qrm.Monitor, now time.Time) {
	confidence := confidenceForProfile(o.profile)

	var maxGroverScore, maxShorScore uint64

	for _, target := range threat.GroverTargets {
		est := threat.EstimateGrover(target, o.profile)
		severity := threat.Severity(est.TimeYears, horizonYears)
		monitor.Ingest(qrm.Indicator{
			Category:     groverCategory(target.Name),
			SubCategory:  target.Name,
			Severity:     severity,
			Confidence:   confidence,
			Source:       "qvm-oracle-grover",
			Timestamp:    now,
			Description:  "Grover resource estimate for " + target.Name,
			EraRelevance: eraRelevanceForLevel(est.Level),
		})
		if s := levelScore(est.Level); s > maxGroverScore {
			maxGroverScore = s
		}
	}

	for _, target := range threat.ShorTargets {
		est, _ := threat.EstimateShor(target, o.profile)
		severity := threat.Severity(est.TimeYears, horizonYears)
		monitor.Ingest(qrm.Indicator{
			Category:     shorCategory(target.Name),
			SubCategory:  target.Name,
			Severity:     severity,
			Confidence:   confidence,
			Source:       "qvm-oracle-shor",
			Timestamp:    now,
			Description:  "Shor resource estimate for " + target.Name,
			EraRelevance: eraRelevanceForLevel(est.Level),
		})
		if s := levelScore(est.Level); s > maxShorScore {
			maxShorScore = s
		}
	}

	if !o.cfg.AutoEraTransition {
		return
	}

	composite := (maxShorScore*70 + maxGroverScore*30) / 100
	current := monitor.Era()
	var next qrm.Era
	switch {
	case composite > 7000:
		next = qrm.FaultTolerant
	case composite > 4000:
		next = qrm.NISQ
	default:
		next = current
	}
	if next > current {
		o.log.Info("era auto-transition", "from", current.String(), "to", next.String(), "compositeRisk", composite)
		monitor.SetEra(next)
	}
}
