// Copyright (c) 2026 The betchain developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package protocol

import "time"

// OracleRecord is the on-chain published outcome and pool statistics for
// one game. Once a record reports a settled outcome it is treated as
// immutable for the remainder of an orchestration run; the record is
// fetched once and never re-read mid-transaction.
type OracleRecord struct {
	GameID        int64       `json:"game_id"`
	Settled       bool        `json:"settled"`
	Outcome       GameOutcome `json:"outcome,omitempty"` // empty while pending
	PolicyID      string      `json:"policy_id"`         // bet-token policy this record authorizes
	TotalPot      uint64      `json:"total_pot"`         // pooled stake, native minor units
	TotalWinnings uint64      `json:"total_winnings"`    // stake placed on the settled outcome
	SettledAt     time.Time   `json:"settled_at,omitempty"`
}
