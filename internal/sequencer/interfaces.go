// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package sequencer

import "context"

// ChainCollaborator is the rollup/chain-side boundary: it accepts
// finished batches and reports the current block height.
type ChainCollaborator interface {
	SubmitBatch(ctx context.Context, canonical []byte, sig *DualSignatureBytes) error
	CurrentBlockNumber(ctx context.Context) (uint64, error)
}

// DualSignatureBytes is the wire form of a dual signature, decoupled
// from the apqc package so ChainCollaborator implementations need not
// import it.
type DualSignatureBytes struct {
	MLDSASignature  []byte
	SLHDSASignature []byte
	AlgorithmSetTag string
}

// TEEPlatform is the trusted-execution boundary: sealing/unsealing
// client payloads and producing attestation quotes over report data.
type TEEPlatform interface {
	Unseal(ctx context.Context, ciphertext []byte) ([]byte, error)
	GetQuote(ctx context.Context, reportData [32]byte) ([]byte, error)
	VerifyQuote(ctx context.Context, quote []byte) (bool, error)
}

// RedundancyCollaborator is an optional second enclave that
// independently attests over the primary's canonical bytes, without
// independently assembling batches.
type RedundancyCollaborator interface {
	Attest(ctx context.Context, reportData [32]byte, workerID, enclaveID string) ([]byte, error)
}
