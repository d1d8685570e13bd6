// Copyright (c) 2026 The betchain developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package oracle checks redemption requests against the on-chain oracle
// record for a game and derives the payout multiplier. Verification is
// pure: the record is fetched once by the caller and never re-read.
package oracle

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/betchainorg/libbetchain-go/protocol"
	"github.com/betchainorg/libbetchain-go/result"
)

// Verification is the outcome of checking an oracle record for a
// redemption. A prediction that missed the settled outcome is not an
// error: Eligible is false and the multiplier is zero, routing the
// operation to a no-payout redemption.
type Verification struct {
	Record     *protocol.OracleRecord
	Eligible   bool            // predicted outcome matches the settled one
	Multiplier decimal.Decimal // payout per staked minor unit; zero when ineligible
	Refund     bool            // degenerate pool: settled with zero winnings
}

// Verify checks the oracle record against the actor's held bet tokens.
//
// record may be nil when the provider found no record for the game. The
// bet-token policy linkage must match betPolicyID; a mismatch is a data
// integrity problem and is fatal.
func Verify(record *protocol.OracleRecord, gameID int64, predicted protocol.GameOutcome, betPolicyID string) result.Result[*Verification] {
	if record == nil || record.GameID != gameID {
		return result.Err[*Verification](
			result.Failf(result.CodeGameNotFound, "no oracle record for game %d", gameID).
				WithContext("gameId", fmt.Sprintf("%d", gameID)).
				WithSuggestions("verify the game id against the oracle's published games"))
	}
	if !record.Settled {
		return result.Err[*Verification](
			result.Failf(result.CodeOracleNotSettled, "game %d has no settled outcome yet", gameID).
				WithContext("gameId", fmt.Sprintf("%d", gameID)).
				WithSuggestions("wait for the oracle to publish the game result before redeeming"))
	}
	if record.PolicyID != betPolicyID {
		return result.Err[*Verification](
			result.Failf(result.CodePolicyMismatch,
				"oracle record authorizes policy %s, bet tokens carry policy %s",
				record.PolicyID, betPolicyID).
				WithContext("recordPolicy", record.PolicyID).
				WithContext("tokenPolicy", betPolicyID).
				WithSuggestions("the record and token linkage disagree; report this to the protocol operators"))
	}

	v := &Verification{Record: record}
	if record.Outcome != predicted {
		return result.Ok(v)
	}
	v.Eligible = true
	v.Multiplier, v.Refund = Multiplier(record)
	return result.Ok(v)
}

// Multiplier derives the payout multiplier from a settled record:
// totalPot / totalWinnings, applied to each winning stake.
//
// Degenerate pool (settled outcome but zero recorded winnings): the
// protocol refunds stakes in full rather than carrying the pot over, so
// the multiplier is exactly 1 and Refund is reported true.
func Multiplier(record *protocol.OracleRecord) (m decimal.Decimal, refund bool) {
	if record.TotalWinnings == 0 {
		return decimal.NewFromInt(1), true
	}
	return decimal.NewFromUint64(record.TotalPot).Div(decimal.NewFromUint64(record.TotalWinnings)), false
}
