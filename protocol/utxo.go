// Copyright (c) 2026 The betchain developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package protocol

import "fmt"

// OutputRef identifies a ledger output by producing transaction and index.
type OutputRef struct {
	TxID  string `json:"txid"`
	Index uint32 `json:"index"`
}

// String renders the reference as "txid#index".
func (r OutputRef) String() string {
	return fmt.Sprintf("%s#%d", r.TxID, r.Index)
}

// UTXO is a spendable ledger output. Instances belong to the point-in-time
// snapshot returned by the ledger provider; the core only reads them.
type UTXO struct {
	TxID    string `json:"txid"`
	Index   uint32 `json:"index"`
	Address string `json:"address"`
	Value   Value  `json:"value"`
}

// Ref returns the output's identifier.
func (u *UTXO) Ref() OutputRef {
	return OutputRef{TxID: u.TxID, Index: u.Index}
}

// Coin returns the output's native-currency quantity.
func (u *UTXO) Coin() uint64 { return u.Value.Coin() }
