// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package adapters provides in-memory reference implementations of the
// sequencer's external collaborator interfaces (TEE platform, chain,
// redundancy), suitable for the standalone CLI and for tests. Production
// deployments are expected to replace these with real TDX/SEV/SGX quote
// providers and a rollup RPC client.
package adapters

import (
	"context"
	"crypto/sha256"
	"sync"

	"github.com/Halo-Labs-xyz/qAegis/internal/sequencer"
)

var (
	_ sequencer.TEEPlatform            = (*InMemoryTEE)(nil)
	_ sequencer.ChainCollaborator      = (*InMemoryChain)(nil)
	_ sequencer.RedundancyCollaborator = (*InMemoryRedundancy)(nil)
)

// InMemoryTEE simulates a TEE platform by passing ciphertext through
// unchanged (the sequencer's sealed mempool already carries plaintext in
// this reference implementation) and producing quotes that are simply an
// unsigned SHA-256 of a fixed mrenclave value followed by the report data.
type InMemoryTEE struct {
	MREnclave [32]byte
}

// NewInMemoryTEE derives a deterministic mrenclave value from a label,
// matching the teacher's pattern of hashing a fixed enclave identity
// string rather than reading one from hardware.
func NewInMemoryTEE(label string) *InMemoryTEE {
	return &InMemoryTEE{MREnclave: sha256.Sum256([]byte(label))}
}

func (t *InMemoryTEE) Unseal(_ context.Context, ciphertext []byte) ([]byte, error) {
	return ciphertext, nil
}

func (t *InMemoryTEE) GetQuote(_ context.Context, reportData [32]byte) ([]byte, error) {
	h := sha256.New()
	h.Write(t.MREnclave[:])
	h.Write(reportData[:])
	return h.Sum(nil), nil
}

func (t *InMemoryTEE) VerifyQuote(_ context.Context, quote []byte) (bool, error) {
	return len(quote) == sha256.Size, nil
}

// InMemoryChain is a stand-in rollup collaborator: it accepts batches
// into an in-memory log and tracks a monotonically increasing block
// counter.
type InMemoryChain struct {
	mu      sync.Mutex
	block   uint64
	batches [][]byte
}

// NewInMemoryChain constructs a chain collaborator starting at the
// given block height.
func NewInMemoryChain(startBlock uint64) *InMemoryChain {
	return &InMemoryChain{block: startBlock}
}

func (c *InMemoryChain) SubmitBatch(_ context.Context, canonical []byte, _ *sequencer.DualSignatureBytes) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batches = append(c.batches, canonical)
	c.block++
	return nil
}

func (c *InMemoryChain) CurrentBlockNumber(_ context.Context) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.block, nil
}

// BatchCount returns the number of batches accepted so far, for tests
// and CLI status reporting.
func (c *InMemoryChain) BatchCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.batches)
}

// InMemoryRedundancy simulates a second enclave attesting over the
// same report data as the primary; it always agrees, since there is no
// real second process to diverge from.
type InMemoryRedundancy struct {
	MREnclave [32]byte
}

func NewInMemoryRedundancy(label string) *InMemoryRedundancy {
	return &InMemoryRedundancy{MREnclave: sha256.Sum256([]byte(label))}
}

func (r *InMemoryRedundancy) Attest(_ context.Context, reportData [32]byte, _ string, _ string) ([]byte, error) {
	h := sha256.New()
	h.Write(r.MREnclave[:])
	h.Write(reportData[:])
	return h.Sum(nil), nil
}
