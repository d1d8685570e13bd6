// Copyright (c) 2026 The betchain developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package provider

import "errors"

var (
	// ErrConnectionFailed indicates the gateway could not reach the ledger service.
	ErrConnectionFailed = errors.New("provider: connection failed")

	// ErrInvalidResponse indicates the gateway response could not be decoded.
	ErrInvalidResponse = errors.New("provider: invalid response")

	// ErrUnknownInput indicates a plan references an output the ledger does not hold.
	ErrUnknownInput = errors.New("provider: unknown input")

	// ErrValueNotConserved indicates a plan's native value does not balance.
	ErrValueNotConserved = errors.New("provider: native value not conserved")

	// ErrAssetNotCovered indicates a plan's outputs or burns exceed its inputs and mints.
	ErrAssetNotCovered = errors.New("provider: asset quantity not covered by inputs and mints")

	// ErrPotExhausted indicates a plan draws more from a game pot than it holds.
	ErrPotExhausted = errors.New("provider: pot draw exceeds pooled stake")

	// ErrNoInputs indicates a plan has no inputs.
	ErrNoInputs = errors.New("provider: plan has no inputs")
)
