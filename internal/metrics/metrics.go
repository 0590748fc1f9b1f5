// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics wires the protocol-stack controller's control loop to
// luxfi/metric-backed Prometheus collectors.
package metrics

import "github.com/luxfi/metric"

// Metrics is the set of counters and gauges the controller updates on
// every control tick.
type Metrics struct {
	ticksTotal         metric.Counter
	assessmentsRun     metric.Counter
	rotationsStaged    metric.Counter
	rotationsExecuted  metric.Counter
	emergencyRotations metric.Counter
	batchesEmitted     metric.Counter
	batchesEmpty       metric.Counter
	deadLettersTotal   metric.Counter

	riskScore  metric.Gauge
	mempoolLen metric.Gauge
	era        metric.Gauge
}

// New constructs and registers the controller's metrics against the
// given registerer.
func New(registerer metric.Registerer) (*Metrics, error) {
	m := &Metrics{
		ticksTotal: metric.NewCounter(metric.CounterOpts{
			Name: "qaegis_control_ticks_total",
			Help: "Total number of protocol-stack control ticks processed",
		}),
		assessmentsRun: metric.NewCounter(metric.CounterOpts{
			Name: "qaegis_risk_assessments_total",
			Help: "Total number of QRM risk assessments run",
		}),
		rotationsStaged: metric.NewCounter(metric.CounterOpts{
			Name: "qaegis_rotations_staged_total",
			Help: "Total number of APQC rotations staged",
		}),
		rotationsExecuted: metric.NewCounter(metric.CounterOpts{
			Name: "qaegis_rotations_executed_total",
			Help: "Total number of APQC rotations executed",
		}),
		emergencyRotations: metric.NewCounter(metric.CounterOpts{
			Name: "qaegis_emergency_rotations_total",
			Help: "Total number of APQC emergency rotations triggered",
		}),
		batchesEmitted: metric.NewCounter(metric.CounterOpts{
			Name: "qaegis_batches_emitted_total",
			Help: "Total number of quantum-resistant batches emitted",
		}),
		batchesEmpty: metric.NewCounter(metric.CounterOpts{
			Name: "qaegis_batches_empty_total",
			Help: "Total number of control ticks where no batch was eligible",
		}),
		deadLettersTotal: metric.NewCounter(metric.CounterOpts{
			Name: "qaegis_dead_letters_total",
			Help: "Total number of transactions dead-lettered during batch assembly",
		}),
		riskScore: metric.NewGauge(metric.GaugeOpts{
			Name: "qaegis_risk_score",
			Help: "Most recent QRM risk score (0-10000)",
		}),
		mempoolLen: metric.NewGauge(metric.GaugeOpts{
			Name: "qaegis_mempool_length",
			Help: "Number of transactions currently queued in the sequencer mempool",
		}),
		era: metric.NewGauge(metric.GaugeOpts{
			Name: "qaegis_era",
			Help: "Current quantum-capability era (0=pre-quantum, 1=nisq, 2=fault-tolerant)",
		}),
	}

	counters := []metric.Counter{
		m.ticksTotal, m.assessmentsRun, m.rotationsStaged, m.rotationsExecuted,
		m.emergencyRotations, m.batchesEmitted, m.batchesEmpty, m.deadLettersTotal,
	}
	for _, c := range counters {
		if err := registerer.Register(metric.AsCollector(c)); err != nil {
			return nil, err
		}
	}
	gauges := []metric.Gauge{m.riskScore, m.mempoolLen, m.era}
	for _, g := range gauges {
		if err := registerer.Register(metric.AsCollector(g)); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) IncTick()              { m.ticksTotal.Inc() }
func (m *Metrics) IncAssessment()        { m.assessmentsRun.Inc() }
func (m *Metrics) IncRotationStaged()    { m.rotationsStaged.Inc() }
func (m *Metrics) IncRotationExecuted()  { m.rotationsExecuted.Inc() }
func (m *Metrics) IncEmergencyRotation() { m.emergencyRotations.Inc() }
func (m *Metrics) IncBatchEmitted()      { m.batchesEmitted.Inc() }
func (m *Metrics) IncBatchEmpty()        { m.batchesEmpty.Inc() }

func (m *Metrics) AddDeadLetters(n int) {
	if n <= 0 {
		return
	}
	m.deadLettersTotal.Add(float64(n))
}

func (m *Metrics) SetRiskScore(score uint64)  { m.riskScore.Set(float64(score)) }
func (m *Metrics) SetMempoolLength(n int)     { m.mempoolLen.Set(float64(n)) }
func (m *Metrics) SetEra(era int)             { m.era.Set(float64(era)) }
