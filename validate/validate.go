// Copyright (c) 2026 The betchain developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package validate rejects malformed or out-of-policy operation requests
// before any ledger interaction is attempted. Checks are pure: the same
// request and clock always produce the same outcome, and nothing here
// touches the provider.
package validate

import (
	"fmt"
	"time"

	"github.com/betchainorg/libbetchain-go/protocol"
	"github.com/betchainorg/libbetchain-go/result"
)

// rule is one named check over a request. ok is a pure predicate; got
// renders the offending value when the predicate fails.
type rule struct {
	field   string
	want    string
	suggest string
	ok      func() bool
	got     func() string
}

// firstFailure runs rules in order and converts the first violation into
// a structured INVALID_INPUT failure naming the field, the offending
// value, and the expected format.
func firstFailure(rules []rule) *result.Failure {
	for _, r := range rules {
		if r.ok() {
			continue
		}
		return result.Failf(result.CodeInvalidInput, "invalid %s", r.field).
			WithContext("field", r.field).
			WithContext("got", r.got()).
			WithContext("want", r.want).
			WithSuggestions(r.suggest)
	}
	return nil
}

// PlaceBet checks a bet-placement request against protocol policy.
// now is the submission clock, passed explicitly so validation stays
// deterministic and idempotent.
func PlaceBet(req protocol.PlaceBetRequest, p protocol.Params, now time.Time) *result.Failure {
	stakeGot := func() string { return fmt.Sprintf("%d", req.Stake) }
	return firstFailure([]rule{
		{
			field:   "actor",
			want:    "non-empty ledger address",
			suggest: "supply the bettor's address",
			ok:      func() bool { return req.Actor != "" },
			got:     func() string { return "\"\"" },
		},
		{
			field:   "gameId",
			want:    "positive integer",
			suggest: "use the game id published by the oracle",
			ok:      func() bool { return req.GameID > 0 },
			got:     func() string { return fmt.Sprintf("%d", req.GameID) },
		},
		{
			field:   "outcome",
			want:    "one of Tie, Home, Away",
			suggest: "pick one of the three defined outcome tags",
			ok:      func() bool { return protocol.ValidOutcome(req.Outcome) },
			got:     func() string { return string(req.Outcome) },
		},
		{
			field:   "stake",
			want:    "positive amount in minor units",
			suggest: "stake at least 1 minor unit",
			ok:      func() bool { return req.Stake > 0 },
			got:     stakeGot,
		},
		{
			field:   "stake",
			want:    fmt.Sprintf("at least %d minor units", p.MinBetStake),
			suggest: fmt.Sprintf("raise the stake to the protocol minimum of %d", p.MinBetStake),
			ok:      func() bool { return req.Stake >= p.MinBetStake },
			got:     stakeGot,
		},
		{
			field:   "secondaryStake",
			want:    "unit and amount set together",
			suggest: "set both SecondaryUnit and SecondaryStake, or neither",
			ok: func() bool {
				return (req.SecondaryUnit == "") == (req.SecondaryStake == 0)
			},
			got: func() string {
				return fmt.Sprintf("unit=%q amount=%d", req.SecondaryUnit, req.SecondaryStake)
			},
		},
		{
			field:   "kickoff",
			want:    "posix timestamp strictly in the future",
			suggest: "bets close at kickoff; pick an upcoming game",
			ok:      func() bool { return req.Kickoff.After(now) },
			got:     func() string { return fmt.Sprintf("%d", req.Kickoff.Unix()) },
		},
		{
			field:   "kickoff",
			want:    fmt.Sprintf("within %s of submission", p.MaxBetHorizon),
			suggest: "the game is too far out; wait until it enters the betting horizon",
			ok:      func() bool { return !req.Kickoff.After(now.Add(p.MaxBetHorizon)) },
			got:     func() string { return fmt.Sprintf("%d", req.Kickoff.Unix()) },
		},
	})
}

// PurchaseToken checks a utility-token purchase request.
func PurchaseToken(req protocol.PurchaseTokenRequest, p protocol.Params) *result.Failure {
	contribGot := func() string { return fmt.Sprintf("%d", req.Contribution) }
	return firstFailure([]rule{
		{
			field:   "actor",
			want:    "non-empty ledger address",
			suggest: "supply the purchaser's address",
			ok:      func() bool { return req.Actor != "" },
			got:     func() string { return "\"\"" },
		},
		{
			field:   "contribution",
			want:    "positive amount in minor units",
			suggest: "contribute at least 1 minor unit",
			ok:      func() bool { return req.Contribution > 0 },
			got:     contribGot,
		},
		{
			field:   "contribution",
			want:    fmt.Sprintf("at least %d minor units", p.MinPurchase),
			suggest: fmt.Sprintf("raise the contribution to the protocol minimum of %d", p.MinPurchase),
			ok:      func() bool { return req.Contribution >= p.MinPurchase },
			got:     contribGot,
		},
		{
			field:   "referral",
			want:    "an address other than the purchaser's",
			suggest: "remove the referral or use a different referrer address",
			ok:      func() bool { return req.Referral == "" || req.Referral != req.Actor },
			got:     func() string { return req.Referral },
		},
	})
}

// RedeemBet checks a redemption request.
func RedeemBet(req protocol.RedeemBetRequest, p protocol.Params) *result.Failure {
	return firstFailure([]rule{
		{
			field:   "actor",
			want:    "non-empty ledger address",
			suggest: "supply the redeemer's address",
			ok:      func() bool { return req.Actor != "" },
			got:     func() string { return "\"\"" },
		},
		{
			field:   "gameId",
			want:    "positive integer",
			suggest: "use the game id encoded in the held bet tokens",
			ok:      func() bool { return req.GameID > 0 },
			got:     func() string { return fmt.Sprintf("%d", req.GameID) },
		},
		{
			field:   "predicted",
			want:    "one of Tie, Home, Away",
			suggest: "use the outcome tag encoded in the held bet tokens",
			ok:      func() bool { return protocol.ValidOutcome(req.Predicted) },
			got:     func() string { return string(req.Predicted) },
		},
		{
			field:   "stake",
			want:    "positive amount in minor units",
			suggest: "declare the original stake backing the held tokens",
			ok:      func() bool { return req.Stake > 0 },
			got:     func() string { return fmt.Sprintf("%d", req.Stake) },
		},
	})
}
