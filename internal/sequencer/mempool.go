// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sequencer

import (
	"sync"
	"time"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"
)

// Mempool is the bounded pool of encrypted, not-yet-batched
// transactions. Plaintext never lives here; decryption happens only
// inside CreateQuantumBatch's TEE-local draining step.
type Mempool struct {
	mu       sync.RWMutex
	pending  map[ids.ID]EncryptedTransaction
	queue    []ids.ID
	capacity int
	log      log.Logger
}

// NewMempool constructs an empty Mempool with the given capacity.
func NewMempool(capacity int, logger log.Logger) *Mempool {
	return &Mempool{
		pending:  make(map[ids.ID]EncryptedTransaction, capacity),
		queue:    make([]ids.ID, 0, capacity),
		capacity: capacity,
		log:      logger,
	}
}

// Submit admits an encrypted transaction. Returns ErrMempoolFull once
// capacity is reached; the caller is expected to surface that to the
// submitter rather than silently drop older entries.
func (m *Mempool) Submit(tx EncryptedTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.pending) >= m.capacity {
		return ErrMempoolFull
	}
	if _, exists := m.pending[tx.ID]; exists {
		return nil
	}

	m.pending[tx.ID] = tx
	m.queue = append(m.queue, tx.ID)
	return nil
}

// Drain removes and returns up to n transactions in FIFO submission
// order, leaving any remainder in the pool.
func (m *Mempool) Drain(n int) []EncryptedTransaction {
	m.mu.Lock()
	defer m.mu.Unlock()

	if n > len(m.queue) {
		n = len(m.queue)
	}
	taken := make([]EncryptedTransaction, 0, n)
	for i := 0; i < n; i++ {
		id := m.queue[i]
		taken = append(taken, m.pending[id])
		delete(m.pending, id)
	}
	m.queue = m.queue[n:]
	return taken
}

// Requeue returns transactions to the front of the queue, preserving
// their relative order. Used when a batch assembly step fails after
// draining and the transactions must not be lost.
func (m *Mempool) Requeue(txs []EncryptedTransaction) {
	if len(txs) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	front := make([]ids.ID, 0, len(txs))
	for _, tx := range txs {
		if _, exists := m.pending[tx.ID]; exists {
			continue
		}
		m.pending[tx.ID] = tx
		front = append(front, tx.ID)
	}
	m.queue = append(front, m.queue...)
}

// Count returns the number of transactions currently pending.
func (m *Mempool) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.queue)
}

// OldestSubmittedAt returns the submission time of the oldest queued
// transaction, or false when the pool is empty. Nothing in this
// repository calls it.
func (m *Mempool) OldestSubmittedAt() (time.Time, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.queue) == 0 {
		return time.Time{}, false
	}
	return m.pending[m.queue[0]].SubmittedAt, true
}
