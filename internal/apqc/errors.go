// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package apqc

import "errors"

var (
	// ErrRotationInProgress is returned by stage_rotation when a rotation is
	// already pending.
	ErrRotationInProgress = errors.New("rotation already in progress")
	// ErrNoPendingRotation names the absence of a staged rotation. No APQC
	// operation returns it: ExecuteRotation reports that case as (false, nil).
	ErrNoPendingRotation = errors.New("no pending rotation")
	// ErrMalformedSignature is returned when a signature or public key does
	// not match its algorithm's size contract.
	ErrMalformedSignature = errors.New("malformed signature")
	// ErrSigningFailure wraps an internal signer fault (which component failed).
	ErrSigningFailure = errors.New("signing failure")
	// ErrInvariantBroken marks a bug, not a runtime condition. Callers that
	// detect this MUST crash rather than recover.
	ErrInvariantBroken = errors.New("invariant broken")
)
