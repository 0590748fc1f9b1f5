// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package apqc

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"github.com/luxfi/crypto/mlkem"
)

// KEM is the key-encapsulation-mechanism interface APQC exposes for future
// hybrid key exchange. Per the governing design, this is deliberately a
// stub: the interface and NIST size contracts are specified, but no
// concrete parameter set is mandated beyond what the contract requires, and
// neither HybridEncapsulate nor MLKEMStub is wired into sign_dual, sign_hybrid, or
// any rotation path. Callers that need confidentiality today must use a
// collaborator-supplied channel; this type exists so that wiring, when it
// happens, has a stable seam.
type KEM interface {
	// Encapsulate returns a fresh ciphertext and the shared secret it carries.
	Encapsulate(publicKey []byte) (ciphertext, sharedSecret []byte, err error)
	// Decapsulate recovers the shared secret from a ciphertext.
	Decapsulate(ciphertext []byte) (sharedSecret []byte, err error)
	// PublicKeySize and CiphertextSize report the NIST size contract for
	// the concrete parameter set in use.
	PublicKeySize() int
	CiphertextSize() int
}

// MLKEMStub wraps github.com/luxfi/crypto/mlkem at the ML-KEM-768 parameter
// set, satisfying KEM. It is never invoked by APQC's signing or rotation
// operations; it exists only so a future hybrid-KEM feature has a concrete
// starting point grounded in the same crypto package dual-signing already
// depends on.
type MLKEMStub struct {
	priv *mlkem.PrivateKey
	pub  *mlkem.PublicKey
}

// NewMLKEMStub generates a fresh ML-KEM-768 key pair.
func NewMLKEMStub() (*MLKEMStub, error) {
	pub, priv, err := mlkem.GenerateKey(mlkem.MLKEM768)
	if err != nil {
		return nil, fmt.Errorf("generate ML-KEM-768 key: %w", err)
	}
	return &MLKEMStub{priv: priv, pub: pub}, nil
}

// Encapsulate implements KEM.
func (m *MLKEMStub) Encapsulate(publicKey []byte) ([]byte, []byte, error) {
	pub, err := mlkem.PublicKeyFromBytes(publicKey, mlkem.MLKEM768)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid ML-KEM-768 public key: %w", err)
	}
	ct, ss, err := pub.Encapsulate(rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("ML-KEM-768 encapsulate: %w", err)
	}
	return ct, ss, nil
}

// Decapsulate implements KEM.
func (m *MLKEMStub) Decapsulate(ciphertext []byte) ([]byte, error) {
	ss, err := m.priv.Decapsulate(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("ML-KEM-768 decapsulate: %w", err)
	}
	return ss, nil
}

// PublicKeySize implements KEM.
func (m *MLKEMStub) PublicKeySize() int { return mlkem.GetPublicKeySize(mlkem.MLKEM768) }

// CiphertextSize implements KEM.
func (m *MLKEMStub) CiphertextSize() int { return mlkem.GetCiphertextSize(mlkem.MLKEM768) }

// PublicKey exposes the stub's public key bytes.
func (m *MLKEMStub) PublicKey() []byte { return m.pub.Bytes() }

// HybridEncapsulate combines two independent KEMs by concatenating their
// shared secrets and hashing the result, as original_source's
// encapsulate_hybrid does for ML-KEM + HQC. Both ciphertexts are returned
// so a caller can carry them alongside the combined secret. No APQC
// operation and no test in this package calls it, per the Non-goal on the
// KEM layer.
func HybridEncapsulate(primary, secondary KEM, primaryPub, secondaryPub []byte) (ct1, ct2, combined []byte, err error) {
	ct1, ss1, err := primary.Encapsulate(primaryPub)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("primary encapsulate: %w", err)
	}
	ct2, ss2, err := secondary.Encapsulate(secondaryPub)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("secondary encapsulate: %w", err)
	}
	h := sha256.New()
	h.Write(ss1)
	h.Write(ss2)
	return ct1, ct2, h.Sum(nil), nil
}
