// Copyright (c) 2026 The betchain developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package protocol

import "time"

// TokenDelta is a signed mint (positive) or burn (negative) of one asset
// class within a transaction.
type TokenDelta struct {
	Unit     string `json:"unit"`
	Quantity int64  `json:"quantity"`
}

// ValidityInterval is the time window during which a constructed
// transaction is acceptable to the ledger. A zero bound is open.
type ValidityInterval struct {
	NotBefore time.Time `json:"not_before,omitempty"`
	NotAfter  time.Time `json:"not_after,omitempty"`
}

// TxOutput is one output of a planned transaction.
type TxOutput struct {
	Address string `json:"address"`
	Value   Value  `json:"value"`
}

// TxPlan describes a transaction for the ledger provider to construct,
// sign, and submit. The plan is chain-agnostic: encoding, witness
// assembly, and script attachment are the provider's concern.
//
// Native-currency conservation over a plan:
//
//	sum(inputs) + PotDraw == sum(outputs) + PotDeposit + Fee
//
// PotDeposit and PotDraw move native currency into and out of the game's
// pooled stake held at the protocol script; the provider resolves them to
// concrete script inputs/outputs.
type TxPlan struct {
	Inputs     []OutputRef      `json:"inputs"`
	Outputs    []TxOutput       `json:"outputs"`
	Mints      []TokenDelta     `json:"mints,omitempty"`
	Fee        uint64           `json:"fee"`
	Validity   ValidityInterval `json:"validity"`
	GameID     int64            `json:"game_id,omitempty"`
	PotDeposit uint64           `json:"pot_deposit,omitempty"`
	PotDraw    uint64           `json:"pot_draw,omitempty"`
}
