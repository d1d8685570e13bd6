// Copyright (c) 2026 The betchain developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package protocol

import "errors"

var (
	// ErrInvalidNetwork indicates the network name is not recognized.
	ErrInvalidNetwork = errors.New("protocol: invalid network (must be \"mainnet\", \"testnet\", or \"emulator\")")

	// ErrEmptyScriptAddress indicates the pooled-stake script address is missing.
	ErrEmptyScriptAddress = errors.New("protocol: script address must not be empty")

	// ErrEmptyTreasuryAddress indicates the treasury address is missing.
	ErrEmptyTreasuryAddress = errors.New("protocol: treasury address must not be empty")

	// ErrEmptyPolicyID indicates a minting policy id is missing.
	ErrEmptyPolicyID = errors.New("protocol: minting policy id must not be empty")

	// ErrZeroMinOutput indicates the minimum output value is zero.
	ErrZeroMinOutput = errors.New("protocol: minimum output value must be positive")

	// ErrZeroTokenScale indicates the bet-token scale factor is zero.
	ErrZeroTokenScale = errors.New("protocol: token scale must be positive")

	// ErrNoPurchaseTiers indicates the purchase tier table is empty.
	ErrNoPurchaseTiers = errors.New("protocol: purchase tier table must not be empty")

	// ErrBadInputCap indicates the per-transaction input cap is not positive.
	ErrBadInputCap = errors.New("protocol: max transaction inputs must be positive")

	// ErrBadReferralPercent indicates the referral percentage is outside [0,100].
	ErrBadReferralPercent = errors.New("protocol: referral percent must be within [0,100]")
)

// ValidateParams checks that all protocol parameters are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateParams(p Params) error {
	if p.Network != "mainnet" && p.Network != "testnet" && p.Network != "emulator" {
		return ErrInvalidNetwork
	}
	if p.ScriptAddress == "" {
		return ErrEmptyScriptAddress
	}
	if p.TreasuryAddress == "" {
		return ErrEmptyTreasuryAddress
	}
	for _, id := range []string{p.BetPolicyID, p.UtilityPolicyID, p.ReferralPolicyID, p.OraclePolicyID} {
		if id == "" {
			return ErrEmptyPolicyID
		}
	}
	if p.MinOutputValue == 0 {
		return ErrZeroMinOutput
	}
	if p.TokenScale == 0 {
		return ErrZeroTokenScale
	}
	if len(p.PurchaseTiers) == 0 {
		return ErrNoPurchaseTiers
	}
	if p.MaxTxInputs <= 0 {
		return ErrBadInputCap
	}
	if p.ReferralPercent.IsNegative() || p.ReferralPercent.GreaterThan(hundred) {
		return ErrBadReferralPercent
	}
	return nil
}
