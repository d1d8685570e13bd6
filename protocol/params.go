// Copyright (c) 2026 The betchain developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package protocol

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseTier maps a minimum contribution to a utility-token mint rate
// (token units per native minor unit). Tiers are ordered ascending by
// MinContribution; the highest tier at or below the contribution applies.
type PurchaseTier struct {
	MinContribution uint64
	Rate            decimal.Decimal
}

// Params is the immutable protocol configuration passed into every entry
// point. Nothing in the core reads process-wide state.
type Params struct {
	Network string // "mainnet", "testnet", or "emulator"

	// Script and treasury addresses.
	ScriptAddress   string // pooled-stake script
	TreasuryAddress string // protocol treasury

	// Minting policies.
	BetPolicyID       string
	UtilityPolicyID   string
	UtilityTokenName  string
	ReferralPolicyID  string
	ReferralTokenName string
	OraclePolicyID    string
	OracleTokenName   string

	// Ledger limits.
	MinOutputValue uint64 // smallest native value an output may carry
	DustThreshold  uint64 // outputs below this are skipped by selection
	FeeReserve     uint64 // native minor units reserved per transaction
	MaxTxInputs    int    // per-transaction input cap

	// Betting rules.
	TokenScale    uint64        // bet-token units minted per staked minor unit
	MinBetStake   uint64        // floor; smaller stakes are rejected
	MinPurchase   uint64        // floor for utility-token purchases
	MaxBetHorizon time.Duration // furthest acceptable kickoff
	PlanTTL       time.Duration // validity window when no kickoff bounds it

	// Token purchase economics.
	PurchaseTiers   []PurchaseTier
	ReferralPercent decimal.Decimal // share of a referred contribution, in percent
}

// UtilityUnit returns the asset unit of the protocol's utility token.
func (p Params) UtilityUnit() string {
	return AssetUnit(p.UtilityPolicyID, p.UtilityTokenName)
}

// ReferralUnit returns the asset unit of the referral-bonus token.
func (p Params) ReferralUnit() string {
	return AssetUnit(p.ReferralPolicyID, p.ReferralTokenName)
}

// OracleUnit returns the asset unit of the oracle operator token.
func (p Params) OracleUnit() string {
	return AssetUnit(p.OraclePolicyID, p.OracleTokenName)
}

// BetUnit returns the asset unit of the bet-outcome token for a game and
// predicted outcome.
func (p Params) BetUnit(gameID int64, outcome GameOutcome) string {
	return AssetUnit(p.BetPolicyID, BetTokenName(gameID, outcome))
}

// TierRate returns the mint rate for a contribution, or a zero decimal if
// no tier applies.
func (p Params) TierRate(contribution uint64) decimal.Decimal {
	rate := decimal.Zero
	for _, t := range p.PurchaseTiers {
		if contribution >= t.MinContribution {
			rate = t.Rate
		}
	}
	return rate
}

// defaultTiers is the standard three-tier purchase table: the base rate,
// a 5% bonus from 100 units, and a 10% bonus from 1000 units.
func defaultTiers() []PurchaseTier {
	return []PurchaseTier{
		{MinContribution: 0, Rate: decimal.NewFromInt(100)},
		{MinContribution: 100_000_000, Rate: decimal.NewFromInt(105)},
		{MinContribution: 1_000_000_000, Rate: decimal.NewFromInt(110)},
	}
}

// TestnetParams returns the protocol configuration for the public testnet.
func TestnetParams() Params {
	return Params{
		Network:           "testnet",
		ScriptAddress:     "addr_test1wq0dchcn5kjkrpylm3cklynmf6dkc4rjqchtsgcsg0z4l3gwyw5mj",
		TreasuryAddress:   "addr_test1vz7e6nkqjgmpzq3avdknmvlre2mlggxjqkhsv3xg9cw4tlcvks9cf",
		BetPolicyID:       "9d3c7ea41c0bd1587832cbb8b2a878bbfa8b76324fb0634e2c88a35d",
		UtilityPolicyID:   "5e3a2b44cc12e6c8741e03bb0f6e9d738c06d1f4ab520a8d9e017c62",
		UtilityTokenName:  "BCU",
		ReferralPolicyID:  "1f40aa1992307dd10c58e2b38a0de41c3c03a86831a33dd67e66c24b",
		ReferralTokenName: "BCREF",
		OraclePolicyID:    "c4810258be85713f08eb0e2a18c0f5ad7b2c024da2ad49ec40ee118a",
		OracleTokenName:   "BCORA",
		MinOutputValue:    1_000_000,
		DustThreshold:     1_500_000,
		FeeReserve:        400_000,
		MaxTxInputs:       30,
		TokenScale:        1,
		MinBetStake:       2_000_000,
		MinPurchase:       5_000_000,
		MaxBetHorizon:     90 * 24 * time.Hour,
		PlanTTL:           2 * time.Hour,
		PurchaseTiers:     defaultTiers(),
		ReferralPercent:   decimal.NewFromInt(5),
	}
}

// MainnetParams returns the protocol configuration for mainnet.
func MainnetParams() Params {
	p := TestnetParams()
	p.Network = "mainnet"
	p.ScriptAddress = "addr1w9k8cku30d5ysfxkg2lzmxqs06r8xm0yvhw2t4g0y8l35ysjq4n8e"
	p.TreasuryAddress = "addr1v8fet8gavr6elqt6q50skkjf025zthqu6vr56l5k39sp9aqlvz2g4"
	p.BetPolicyID = "7a2d1c8f604e9b3ad1f27c44e88d12035731a9fb882c5db0417e6a9c"
	p.UtilityPolicyID = "e8b4750c9a3de1b2f5c0136ead7729d84a6f08d3b21c947e5508afd1"
	p.ReferralPolicyID = "3bc97fd0216a8e44d90cf135b7e2a6c8105dd43f9a027e861b34c05e"
	p.OraclePolicyID = "88e01f2bc6d6345a19c7d02e4bb53a7f0cd1984eaa365cf2d0be726d"
	return p
}
