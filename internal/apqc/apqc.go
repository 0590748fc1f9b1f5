// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package apqc implements the Adaptive Post-Quantum Cryptography layer:
// custody of the dual PQC keypairs plus the legacy ECDSA component, dual-
// and hybrid-signature production, and the staged rotation protocol.
package apqc

import (
	"fmt"
	"sync"

	"github.com/luxfi/log"
	"golang.org/x/sync/errgroup"

	"github.com/Halo-Labs-xyz/qAegis/internal/apqc/config"
)

// Combiner selects how a DualSignature is verified.
type Combiner uint8

const (
	// CombinerAND requires both PQC components to verify; used for
	// security-critical paths.
	CombinerAND Combiner = iota
	// CombinerOR accepts either PQC component; used during grace-overlap
	// windows for availability.
	CombinerOR
)

// DualSignature is the {ML-DSA-87, SLH-DSA-256s} pair over identical
// message bytes.
type DualSignature struct {
	MLDSASignature  []byte
	SLHDSASignature []byte
	AlgorithmSetTag string
	TimingMS        int64
}

// HybridSignature is the {ECDSA, ML-DSA-87, SLH-DSA-256s} triple over
// identical message bytes, for legacy-verifier compatibility.
type HybridSignature struct {
	ECDSASignature  []byte
	MLDSASignature  []byte
	SLHDSASignature []byte
}

// PublicKeys is the byte-form public-key bundle for external registration.
type PublicKeys struct {
	MLDSA  []byte
	SLHDSA []byte
	ECDSA  []byte
}

// VerificationResult reports which dual-signature components verified.
type VerificationResult struct {
	Valid       bool
	MLDSAValid  bool
	SLHDSAValid bool
}

type keyset struct {
	mldsa  *mldsaKeyPair
	slhdsa *slhdsaKeyPair
}

// APQC is the Adaptive PQC layer. It owns all secret-key material; other
// components obtain signatures through this API, never a key handle.
type APQC struct {
	log log.Logger
	cfg config.Config

	mu sync.RWMutex

	active  keyset
	ecdsa   *ecdsaKeyPair
	pending *keyset

	rotationPending  bool
	rotationEffective uint64
}

// New constructs an APQC instance with fresh active keys (equivalent to an
// implicit generate() at construction time).
func New(logger log.Logger, cfg config.Config) (*APQC, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &APQC{log: logger, cfg: cfg}
	if err := a.Generate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Generate produces fresh active ML-DSA, SLH-DSA and ECDSA keypairs,
// clears any pending rotation, and resets rotation-pending to false.
func (a *APQC) Generate() error {
	mld, err := generateMLDSAKeyPair()
	if err != nil {
		return err
	}
	slh, err := generateSLHDSAKeyPair()
	if err != nil {
		return err
	}
	ec, err := generateECDSAKeyPair()
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.active = keyset{mldsa: mld, slhdsa: slh}
	a.ecdsa = ec
	a.pending = nil
	a.rotationPending = false
	a.rotationEffective = 0

	a.log.Info("apqc keys generated", "algorithmSet", a.cfg.AlgorithmSetTag)
	return nil
}

// SignDual returns a dual signature over message using the active keys.
// Both PQC signatures are always produced; combiner affects only
// downstream verification. The two signs run on separate goroutines via
// errgroup since they share no mutable state; correctness does not depend
// on this parallelism.
func (a *APQC) SignDual(message []byte, combiner Combiner) (*DualSignature, error) {
	a.mu.RLock()
	mld := a.active.mldsa
	slh := a.active.slhdsa
	tag := a.cfg.AlgorithmSetTag
	a.mu.RUnlock()

	start := nowMillis()

	var mldSig, slhSig []byte
	g := new(errgroup.Group)
	g.Go(func() error {
		sig, err := mld.sign(message)
		if err != nil {
			return fmt.Errorf("%w: mldsa: %v", ErrSigningFailure, err)
		}
		mldSig = sig
		return nil
	})
	g.Go(func() error {
		sig, err := slh.sign(message)
		if err != nil {
			return fmt.Errorf("%w: slhdsa: %v", ErrSigningFailure, err)
		}
		slhSig = sig
		return nil
	})
	if err := g.Wait(); err != nil {
		// No partial result is ever returned.
		return nil, err
	}

	_ = combiner // combiner only governs verify_dual; recorded for caller symmetry.

	return &DualSignature{
		MLDSASignature:  mldSig,
		SLHDSASignature: slhSig,
		AlgorithmSetTag: tag,
		TimingMS:        nowMillis() - start,
	}, nil
}

// SignHybrid returns the {ECDSA, ML-DSA, SLH-DSA} triple over message,
// using the active keys.
func (a *APQC) SignHybrid(message []byte) (*HybridSignature, error) {
	a.mu.RLock()
	mld := a.active.mldsa
	slh := a.active.slhdsa
	ec := a.ecdsa
	a.mu.RUnlock()

	ecSig, err := ec.sign(message)
	if err != nil {
		return nil, fmt.Errorf("%w: ecdsa: %v", ErrSigningFailure, err)
	}
	mldSig, err := mld.sign(message)
	if err != nil {
		return nil, fmt.Errorf("%w: mldsa: %v", ErrSigningFailure, err)
	}
	slhSig, err := slh.sign(message)
	if err != nil {
		return nil, fmt.Errorf("%w: slhdsa: %v", ErrSigningFailure, err)
	}

	return &HybridSignature{
		ECDSASignature:  ecSig,
		MLDSASignature:  mldSig,
		SLHDSASignature: slhSig,
	}, nil
}

// VerifyDual verifies a dual signature against the given public keys under
// the requested combiner. It checks only the keys passed in pubs; the
// grace-overlap fallback to pending keys during PendingRotation is done by
// VerifyDualEither.
func (a *APQC) VerifyDual(message []byte, sig *DualSignature, pubs PublicKeys, combiner Combiner) (VerificationResult, error) {
	if len(sig.MLDSASignature) != mldsaSignatureSize() || len(pubs.MLDSA) != mldsaPublicKeySize() {
		return VerificationResult{}, fmt.Errorf("%w: mldsa size mismatch", ErrMalformedSignature)
	}
	if len(sig.SLHDSASignature) != slhdsaSignatureSize() || len(pubs.SLHDSA) != slhdsaPublicKeySize() {
		return VerificationResult{}, fmt.Errorf("%w: slhdsa size mismatch", ErrMalformedSignature)
	}

	mldOK, err := mldsaVerify(pubs.MLDSA, message, sig.MLDSASignature)
	if err != nil {
		return VerificationResult{}, err
	}
	slhOK, err := slhdsaVerify(pubs.SLHDSA, message, sig.SLHDSASignature)
	if err != nil {
		return VerificationResult{}, err
	}

	var valid bool
	switch combiner {
	case CombinerAND:
		valid = mldOK && slhOK
	case CombinerOR:
		valid = mldOK || slhOK
	}

	return VerificationResult{Valid: valid, MLDSAValid: mldOK, SLHDSAValid: slhOK}, nil
}

// StageRotation writes pending keys, marks rotation-pending, and records
// the effective block as currentBlock + grace period. Fails with
// ErrRotationInProgress if a rotation is already pending.
func (a *APQC) StageRotation(currentBlock uint64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.rotationPending {
		return ErrRotationInProgress
	}

	mld, err := generateMLDSAKeyPair()
	if err != nil {
		return err
	}
	slh, err := generateSLHDSAKeyPair()
	if err != nil {
		return err
	}

	a.pending = &keyset{mldsa: mld, slhdsa: slh}
	a.rotationPending = true
	a.rotationEffective = currentBlock + a.cfg.RotationGraceBlocks

	a.log.Info("rotation staged", "effectiveBlock", a.rotationEffective)
	return nil
}

// ExecuteRotation swaps pending into active if a rotation is pending and
// currentBlock has reached the effective block. Returns whether a swap
// occurred. StageRotation and ExecuteRotation form a critical section: no
// SignDual call ever observes a half-swapped state.
func (a *APQC) ExecuteRotation(currentBlock uint64) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.rotationPending || currentBlock < a.rotationEffective {
		return false, nil
	}

	a.active = *a.pending
	a.pending = nil
	a.rotationPending = false
	a.rotationEffective = 0

	a.log.Info("rotation executed", "block", currentBlock, "algorithmSet", a.cfg.AlgorithmSetTag)
	return true, nil
}

// EmergencyRotation bypasses the grace period entirely, overwriting active
// keys immediately and discarding any pending state. Callers MUST have
// already asserted risk >= risk_threshold_emergency before calling this.
func (a *APQC) EmergencyRotation(asserted bool) error {
	if !asserted {
		return fmt.Errorf("%w: emergency rotation requires caller-asserted risk >= threshold", ErrInvariantBroken)
	}

	mld, err := generateMLDSAKeyPair()
	if err != nil {
		return err
	}
	slh, err := generateSLHDSAKeyPair()
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.active = keyset{mldsa: mld, slhdsa: slh}
	a.pending = nil
	a.rotationPending = false
	a.rotationEffective = 0

	a.log.Warn("emergency rotation executed", "algorithmSet", a.cfg.AlgorithmSetTag)
	return nil
}

// PublicKeys returns the current active public keys for external
// registration; staged keys are returned by PendingPublicKeys. Secret keys have no accessor anywhere in
// this package.
func (a *APQC) PublicKeys() PublicKeys {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return PublicKeys{
		MLDSA:  a.active.mldsa.publicKeyBytes(),
		SLHDSA: a.active.slhdsa.publicKeyBytes(),
		ECDSA:  a.ecdsa.publicKeyBytes(),
	}
}

// PendingPublicKeys returns the staged public keys, or false if no
// rotation is pending. Used by VerifyDualEither's grace-overlap acceptance.
func (a *APQC) PendingPublicKeys() (PublicKeys, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if !a.rotationPending {
		return PublicKeys{}, false
	}
	return PublicKeys{
		MLDSA:  a.pending.mldsa.publicKeyBytes(),
		SLHDSA: a.pending.slhdsa.publicKeyBytes(),
		ECDSA:  a.ecdsa.publicKeyBytes(),
	}, true
}

// RotationStatus reports whether a rotation is pending and, if so, its
// effective block.
func (a *APQC) RotationStatus() (pending bool, effectiveBlock uint64) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.rotationPending, a.rotationEffective
}

// AlgorithmSetTag returns the human-readable algorithm-set identifier.
func (a *APQC) AlgorithmSetTag() string {
	return a.cfg.AlgorithmSetTag
}

// VerifyDualEither verifies against active keys, then (if rotation is
// pending, under either combiner) against pending keys, satisfying the
// grace-overlap requirement for availability paths such as the sequencer's
// attestation cross-check.
func (a *APQC) VerifyDualEither(message []byte, sig *DualSignature, combiner Combiner) (VerificationResult, error) {
	activePubs := a.PublicKeys()
	res, err := a.VerifyDual(message, sig, activePubs, combiner)
	if err != nil {
		return VerificationResult{}, err
	}
	if res.Valid {
		return res, nil
	}

	if pendingPubs, ok := a.PendingPublicKeys(); ok {
		pendingRes, err := a.VerifyDual(message, sig, pendingPubs, combiner)
		if err != nil {
			return VerificationResult{}, err
		}
		if pendingRes.Valid {
			return pendingRes, nil
		}
	}

	return res, nil
}
