// Copyright (c) 2026 The betchain developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package protocol

import "time"

// GameOutcome is the predicted or settled result of a game.
type GameOutcome string

const (
	OutcomeTie  GameOutcome = "Tie"
	OutcomeHome GameOutcome = "Home"
	OutcomeAway GameOutcome = "Away"
)

// ValidOutcome reports whether o is one of the three defined outcomes.
func ValidOutcome(o GameOutcome) bool {
	switch o {
	case OutcomeTie, OutcomeHome, OutcomeAway:
		return true
	}
	return false
}

// PlaceBetRequest asks to lock a stake on a predicted game outcome.
// Requests are immutable once constructed and consumed by a single
// orchestration run.
type PlaceBetRequest struct {
	Actor     string      // bettor's address
	GameID    int64       // positive game identifier
	GameLabel string      // human label, e.g. "Sharks vs Jets"
	Outcome   GameOutcome // predicted outcome
	Stake     uint64      // native minor units

	// Optional secondary stake currency, locked atomically with the
	// native stake. Both fields are zero when unused.
	SecondaryUnit  string
	SecondaryStake uint64

	Kickoff time.Time // game start; bets close here
}

// PurchaseTokenRequest asks to mint utility tokens for a contribution.
type PurchaseTokenRequest struct {
	Actor        string
	Contribution uint64 // native minor units
	Referral     string // optional referrer address; empty = no referral
}

// RedeemBetRequest asks to burn held bet tokens and collect the payout
// for a settled game.
type RedeemBetRequest struct {
	Actor     string
	GameID    int64
	GameLabel string
	Predicted GameOutcome // outcome encoded in the held bet tokens
	Stake     uint64      // original stake backing the held tokens

	// CloseOracle burns the actor's oracle token, finalizing record
	// closure. Only meaningful for the oracle operator.
	CloseOracle bool
}
