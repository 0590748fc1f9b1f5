// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sequencer

import (
	"encoding/binary"

	"github.com/luxfi/ids"
)

// canonicalBytes produces the deterministic, order-dependent encoding of
// a batch's ordered transactions. Two callers presented with the same
// ordered slice always produce bit-identical output; this is what gets
// dual-signed and what the TEE attestation's report data binds to.
func canonicalBytes(height uint64, ts int64, txs []DecryptedTransaction) []byte {
	size := 8 + 8 + 4
	for _, tx := range txs {
		size += 32 + 4 + len(tx.Plaintext)
	}

	buf := make([]byte, 0, size)

	heightBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(heightBytes, height)
	buf = append(buf, heightBytes...)

	tsBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(tsBytes, uint64(ts))
	buf = append(buf, tsBytes...)

	countBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(countBytes, uint32(len(txs)))
	buf = append(buf, countBytes...)

	for _, tx := range txs {
		buf = append(buf, tx.ID[:]...)
		lenBytes := make([]byte, 4)
		binary.BigEndian.PutUint32(lenBytes, uint32(len(tx.Plaintext)))
		buf = append(buf, lenBytes...)
		buf = append(buf, tx.Plaintext...)
	}

	return buf
}

// batchID derives the content-addressed ID of a batch from its
// canonical bytes, matching the teacher's ids.ToID(data) convention.
func batchID(canonical []byte) ids.ID {
	id, _ := ids.ToID(canonical)
	return id
}
