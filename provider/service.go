// Copyright (c) 2026 The betchain developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package provider defines the ledger-provider capability the
// orchestration core consumes, together with three backends: a
// function-field mock for tests, a persistent in-process emulator, and
// an HTTP gateway client for a remote ledger service. The caller picks
// the backend; the core never inspects which one it was given.
package provider

import (
	"context"

	"github.com/betchainorg/libbetchain-go/protocol"
)

// LedgerService is the capability interface over the external ledger.
// Every method is a suspension point; the core performs no other I/O.
type LedgerService interface {
	// ListSpendable returns the point-in-time spendable snapshot for an
	// address. The core treats it as immutable for one orchestration run.
	ListSpendable(ctx context.Context, address string) ([]*protocol.UTXO, error)

	// OracleRecord returns the published record for a game, or (nil, nil)
	// when the oracle has published nothing for that game id.
	OracleRecord(ctx context.Context, gameID int64) (*protocol.OracleRecord, error)

	// SubmitPlan constructs, signs, and submits a transaction from the
	// plan and returns the ledger's transaction identifier. Retries, if
	// any, are the provider's concern, never the core's.
	SubmitPlan(ctx context.Context, plan *protocol.TxPlan) (string, error)
}
