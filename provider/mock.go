// Copyright (c) 2026 The betchain developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package provider

import (
	"context"

	"github.com/betchainorg/libbetchain-go/protocol"
)

// MockLedgerService is a test double for LedgerService. All function
// fields must be set before the corresponding method is called.
type MockLedgerService struct {
	ListSpendableFn func(ctx context.Context, address string) ([]*protocol.UTXO, error)
	OracleRecordFn  func(ctx context.Context, gameID int64) (*protocol.OracleRecord, error)
	SubmitPlanFn    func(ctx context.Context, plan *protocol.TxPlan) (string, error)
}

func (m *MockLedgerService) ListSpendable(ctx context.Context, address string) ([]*protocol.UTXO, error) {
	return m.ListSpendableFn(ctx, address)
}

func (m *MockLedgerService) OracleRecord(ctx context.Context, gameID int64) (*protocol.OracleRecord, error) {
	return m.OracleRecordFn(ctx, gameID)
}

func (m *MockLedgerService) SubmitPlan(ctx context.Context, plan *protocol.TxPlan) (string, error) {
	return m.SubmitPlanFn(ctx, plan)
}
