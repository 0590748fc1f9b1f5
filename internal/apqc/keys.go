// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package apqc

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/luxfi/crypto/mldsa"
	"github.com/luxfi/crypto/slhdsa"
)

// mldsaMode and slhdsaMode fix the dual-signature algorithm pair this core
// offers: ML-DSA-87 (NIST level 5) and SLH-DSA-256s (small-signature,
// slow-sign variant at the 256-bit security floor).
const (
	mldsaMode  = mldsa.MLDSA87
	slhdsaMode = slhdsa.SHA2_256s
)

// mldsaKeyPair wraps an ML-DSA-87 key pair.
type mldsaKeyPair struct {
	priv *mldsa.PrivateKey
	pub  *mldsa.PublicKey
}

func generateMLDSAKeyPair() (*mldsaKeyPair, error) {
	priv, err := mldsa.GenerateKey(rand.Reader, mldsaMode)
	if err != nil {
		return nil, fmt.Errorf("generate ML-DSA-87 key: %w", err)
	}
	return &mldsaKeyPair{priv: priv, pub: priv.PublicKey}, nil
}

func (k *mldsaKeyPair) sign(message []byte) ([]byte, error) {
	sig, err := k.priv.Sign(rand.Reader, message, nil)
	if err != nil {
		return nil, fmt.Errorf("ML-DSA-87 sign: %w", err)
	}
	return sig, nil
}

func (k *mldsaKeyPair) publicKeyBytes() []byte {
	return k.pub.Bytes()
}

func mldsaVerify(pubBytes, message, sig []byte) (bool, error) {
	pub, err := mldsa.PublicKeyFromBytes(pubBytes, mldsaMode)
	if err != nil {
		return false, fmt.Errorf("%w: invalid ML-DSA-87 public key: %v", ErrMalformedSignature, err)
	}
	return pub.VerifySignature(message, sig), nil
}

func mldsaSignatureSize() int { return mldsa.GetSignatureSize(mldsaMode) }
func mldsaPublicKeySize() int { return mldsa.GetPublicKeySize(mldsaMode) }

// slhdsaKeyPair wraps an SLH-DSA-256s key pair.
type slhdsaKeyPair struct {
	priv *slhdsa.PrivateKey
	pub  *slhdsa.PublicKey
}

func generateSLHDSAKeyPair() (*slhdsaKeyPair, error) {
	priv, err := slhdsa.GenerateKey(rand.Reader, slhdsaMode)
	if err != nil {
		return nil, fmt.Errorf("generate SLH-DSA-256s key: %w", err)
	}
	return &slhdsaKeyPair{priv: priv, pub: priv.PublicKey}, nil
}

func (k *slhdsaKeyPair) sign(message []byte) ([]byte, error) {
	sig, err := k.priv.Sign(rand.Reader, message, nil)
	if err != nil {
		return nil, fmt.Errorf("SLH-DSA-256s sign: %w", err)
	}
	return sig, nil
}

func (k *slhdsaKeyPair) publicKeyBytes() []byte {
	return k.pub.Bytes()
}

func slhdsaVerify(pubBytes, message, sig []byte) (bool, error) {
	pub, err := slhdsa.PublicKeyFromBytes(pubBytes, slhdsaMode)
	if err != nil {
		return false, fmt.Errorf("%w: invalid SLH-DSA-256s public key: %v", ErrMalformedSignature, err)
	}
	return pub.Verify(message, sig, nil), nil
}

func slhdsaSignatureSize() int { return slhdsa.GetSignatureSize(slhdsaMode) }
func slhdsaPublicKeySize() int { return slhdsa.GetPublicKeySize(slhdsaMode) }

// ecdsaKeyPair wraps the legacy-verifier ECDSA-secp256k1 component of a
// hybrid signature. Only 64-byte raw R||S signatures and 33-byte compressed
// public keys cross any boundary.
type ecdsaKeyPair struct {
	priv *secp256k1.PrivateKey
	pub  *secp256k1.PublicKey
}

func generateECDSAKeyPair() (*ecdsaKeyPair, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate ECDSA-secp256k1 key: %w", err)
	}
	return &ecdsaKeyPair{priv: priv, pub: priv.PubKey()}, nil
}

func (k *ecdsaKeyPair) sign(message []byte) ([]byte, error) {
	hash := sha256.Sum256(message)
	sig := ecdsa.Sign(k.priv, hash[:])
	rVal := sig.R()
	sVal := sig.S()
	r := rVal.Bytes()
	s := sVal.Bytes()
	out := make([]byte, 64)
	copy(out[0:32], r[:])
	copy(out[32:64], s[:])
	return out, nil
}

func (k *ecdsaKeyPair) publicKeyBytes() []byte {
	return k.pub.SerializeCompressed()
}

func ecdsaVerify(pubBytes, message, sig []byte) (bool, error) {
	if len(sig) != ecdsaSignatureSize {
		return false, fmt.Errorf("%w: ECDSA signature has %d bytes, want %d", ErrMalformedSignature, len(sig), ecdsaSignatureSize)
	}
	if len(pubBytes) != ecdsaPublicKeySizeBytes {
		return false, fmt.Errorf("%w: ECDSA public key has %d bytes, want %d", ErrMalformedSignature, len(pubBytes), ecdsaPublicKeySizeBytes)
	}
	pub, err := secp256k1.ParsePubKey(pubBytes)
	if err != nil {
		return false, fmt.Errorf("%w: invalid ECDSA public key: %v", ErrMalformedSignature, err)
	}
	var r, s secp256k1.ModNScalar
	if r.SetByteSlice(sig[0:32]) {
		return false, fmt.Errorf("%w: ECDSA signature R overflows", ErrMalformedSignature)
	}
	if s.SetByteSlice(sig[32:64]) {
		return false, fmt.Errorf("%w: ECDSA signature S overflows", ErrMalformedSignature)
	}
	hash := sha256.Sum256(message)
	parsed := ecdsa.NewSignature(&r, &s)
	return parsed.Verify(hash[:], pub), nil
}

const (
	ecdsaPublicKeySizeBytes = 33
	ecdsaSignatureSize      = 64
)
