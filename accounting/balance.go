// Copyright (c) 2026 The betchain developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package accounting

import (
	"fmt"

	"github.com/betchainorg/libbetchain-go/result"
)

// Balance verifies native-currency conservation for an accounted entry
// against the selector's gathered inputs, and returns the effective fee:
//
//	totalInput + PotDraw == sum(outputs) + change + PotDeposit + fee
//
// The effective fee is the declared reserve plus any sub-minimum change
// the selector folded in. Anything else is a fatal ACCOUNTING_ERROR.
func Balance(e *Entry, totalInput, change, minOutputValue uint64) (uint64, *result.Failure) {
	available := totalInput + e.PotDraw
	spent := e.PotDeposit + change
	for _, out := range e.Outputs {
		spent += out.Value.Coin()
	}

	if available < spent+e.Fee {
		return 0, result.Failf(result.CodeAccountingError,
			"native value does not balance: inputs %d + pot draw %d cannot cover outputs %d and fee %d",
			totalInput, e.PotDraw, spent, e.Fee).
			WithContext("available", fmt.Sprintf("%d", available)).
			WithContext("spent", fmt.Sprintf("%d", spent))
	}

	fee := available - spent
	if fee-e.Fee >= minOutputValue {
		// A residual this large should have been change; treating it as
		// fee would silently burn spendable value.
		return 0, result.Failf(result.CodeAccountingError,
			"unaccounted residual %d exceeds the minimum output value", fee-e.Fee).
			WithContext("residual", fmt.Sprintf("%d", fee-e.Fee))
	}
	return fee, nil
}
