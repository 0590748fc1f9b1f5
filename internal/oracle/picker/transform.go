// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package picker

import "github.com/Halo-Labs-xyz/qAegis/internal/oracle/circuit"

// TransformCircuit returns an isomorphic circuit whose gates act on the
// physical qubits given by mapping (logical index -> physical index),
// instead of c's original logical qubits.
func TransformCircuit(c *circuit.Circuit, mapping map[int]int) *circuit.Circuit {
	maxPhysical := 0
	for _, phys := range mapping {
		if phys+1 > maxPhysical {
			maxPhysical = phys + 1
		}
	}

	out := circuit.NewCircuit(maxPhysical)
	for _, g := range c.Gates {
		mapped := make([]int, len(g.Qubits))
		for i, q := range g.Qubits {
			mapped[i] = mapping[q]
		}
		out.Append(circuit.Gate{Kind: g.Kind, Qubits: mapped, Theta: g.Theta})
	}
	return out
}
