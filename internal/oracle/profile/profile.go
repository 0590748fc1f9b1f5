// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package profile describes named quantum-processor profiles used by the
// circuit simulator and the Grover/Shor threat oracles.
package profile

import "time"

// Edge is an undirected physical-qubit connectivity edge.
type Edge struct {
	A, B int
}

// Profile describes a quantum processor at design level.
type Profile struct {
	Name             string
	QubitCount       int
	TwoQubitError    float64
	SingleQubitError float64
	ReadoutError     float64
	T1               time.Duration
	T2               time.Duration
	GateTime         time.Duration
	Connectivity     []Edge
}

// gridConnectivity builds a simple rectangular nearest-neighbor grid large
// enough to hold n qubits, used where the source processor's exact
// topology is not material to the estimators that consume it.
func gridConnectivity(n int) []Edge {
	cols := 1
	for cols*cols < n {
		cols++
	}
	var edges []Edge
	for i := 0; i < n; i++ {
		if (i+1)%cols != 0 && i+1 < n {
			edges = append(edges, Edge{i, i + 1})
		}
		if i+cols < n {
			edges = append(edges, Edge{i, i + cols})
		}
	}
	return edges
}

// WillowPink is a 105-qubit superconducting profile with Willow-class
// two-qubit error rates.
func WillowPink() Profile {
	return Profile{
		Name:             "willow_pink",
		QubitCount:       105,
		TwoQubitError:    0.0034,
		SingleQubitError: 0.00025,
		ReadoutError:     0.005,
		T1:               70 * time.Microsecond,
		T2:               60 * time.Microsecond,
		GateTime:         25 * time.Nanosecond,
		Connectivity:     gridConnectivity(105),
	}
}

// Weber is a 72-qubit profile.
func Weber() Profile {
	return Profile{
		Name:             "weber",
		QubitCount:       72,
		TwoQubitError:    0.006,
		SingleQubitError: 0.001,
		ReadoutError:     0.01,
		T1:               25 * time.Microsecond,
		T2:               20 * time.Microsecond,
		GateTime:         25 * time.Nanosecond,
		Connectivity:     gridConnectivity(72),
	}
}

// Rainbow is a 53-qubit profile.
func Rainbow() Profile {
	return Profile{
		Name:             "rainbow",
		QubitCount:       53,
		TwoQubitError:    0.009,
		SingleQubitError: 0.002,
		ReadoutError:     0.02,
		T1:               20 * time.Microsecond,
		T2:               15 * time.Microsecond,
		GateTime:         25 * time.Nanosecond,
		Connectivity:     gridConnectivity(53),
	}
}

// ByName resolves a configured processor_profile string to a Profile.
// Unknown names fall back to WillowPink.
func ByName(name string) Profile {
	switch name {
	case "weber":
		return Weber()
	case "rainbow":
		return Rainbow()
	default:
		return WillowPink()
	}
}
