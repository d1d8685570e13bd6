// Copyright (c) 2026 The betchain developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package protocol holds the shared data model of the betting protocol:
// network parameters, multi-asset values, spendable outputs, operation
// requests, oracle records, and transaction plans. Everything here is a
// plain value; nothing owns external state.
package protocol

import "fmt"

// NativeUnit is the asset unit of the ledger's native currency, always
// present in a Value. Quantities are exact integer minor units.
const NativeUnit = "lovelace"

// AssetUnit builds the unit string for a policy-scoped asset.
func AssetUnit(policyID, assetName string) string {
	return policyID + "." + assetName
}

// BetTokenName encodes a game id and predicted outcome into the asset
// name of a bet-outcome token.
func BetTokenName(gameID int64, outcome GameOutcome) string {
	return fmt.Sprintf("bet_%d_%s", gameID, outcome)
}

// Value maps asset units to quantities. The native unit may be absent,
// in which case its quantity is zero.
type Value map[string]uint64

// Coin returns the native-currency quantity.
func (v Value) Coin() uint64 { return v[NativeUnit] }

// Get returns the quantity of the given unit.
func (v Value) Get(unit string) uint64 { return v[unit] }

// Clone returns an independent copy.
func (v Value) Clone() Value {
	out := make(Value, len(v))
	for unit, qty := range v {
		out[unit] = qty
	}
	return out
}

// Add accumulates other into v and returns v.
func (v Value) Add(other Value) Value {
	for unit, qty := range other {
		v[unit] += qty
	}
	return v
}

// NewValue builds a Value holding only native currency.
func NewValue(coin uint64) Value {
	return Value{NativeUnit: coin}
}
