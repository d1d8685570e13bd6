// Copyright (c) 2026 The betchain developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package engine

import (
	"github.com/shopspring/decimal"

	"github.com/betchainorg/libbetchain-go/protocol"
	"github.com/betchainorg/libbetchain-go/selector"
)

// OperationOutcome is the terminal record of a successful orchestration
// run. It is created only after the provider has returned a transaction
// identifier; no partially-populated outcome ever escapes the engine.
type OperationOutcome struct {
	TxID    string
	Summary string
	Deltas  []protocol.TokenDelta

	// Non-fatal anomalies accumulated across the run: dust skipped,
	// sub-minimum change folded into the fee, missed predictions.
	Warnings []string

	Selection *selector.Selection
	Validity  protocol.ValidityInterval

	// Redemption detail. Zero values unless the run was a redemption.
	Payout     uint64
	Multiplier decimal.Decimal

	// Purchase detail. Nil unless a referral address was supplied.
	Distribution *protocol.AdaDistribution
}
