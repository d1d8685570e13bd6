// Copyright (c) 2026 The betchain developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betchainorg/libbetchain-go/protocol"
	"github.com/betchainorg/libbetchain-go/provider"
	"github.com/betchainorg/libbetchain-go/result"
)

// Full bet lifecycle against the persistent emulator: fund the bettor,
// place a bet, settle the game, redeem the winnings, then buy utility
// tokens with the proceeds. Every plan passes the emulator's
// conservation checks and the pot balances to zero at the end.
func TestBetLifecycleAgainstEmulator(t *testing.T) {
	ctx := context.Background()
	p := protocol.TestnetParams()

	emu, err := provider.OpenEmulator(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	defer emu.Close()

	e, err := New(p, emu, WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)

	_, err = emu.Fund(ctx, actor, protocol.NewValue(20_000_000))
	require.NoError(t, err)

	// Place: 10M stake on Home for game 42.
	res := e.PlaceBet(ctx, protocol.PlaceBetRequest{
		Actor:     actor,
		GameID:    42,
		GameLabel: "Final",
		Outcome:   protocol.OutcomeHome,
		Stake:     10_000_000,
		Kickoff:   testNow.Add(24 * time.Hour),
	})
	require.True(t, res.IsSuccess(), "place: %v", res.Failure())
	assert.NotEmpty(t, res.Value().TxID)

	pot, err := emu.Pot(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000_000), pot)

	// The snapshot now carries the change output and the token carrier.
	snapshot, err := emu.ListSpendable(ctx, actor)
	require.NoError(t, err)
	betUnit := p.BetUnit(42, protocol.OutcomeHome)
	var tokensHeld, coinHeld uint64
	for _, u := range snapshot {
		tokensHeld += u.Value.Get(betUnit)
		coinHeld += u.Value.Coin()
	}
	assert.Equal(t, uint64(10_000_000), tokensHeld)
	assert.Equal(t, uint64(9_600_000), coinHeld, "20M funded less 10M pot deposit and 0.4M fee")

	// Settle with the whole pot owed to Home stakes: multiplier 1.
	require.NoError(t, emu.SettleGame(ctx, 42, protocol.OutcomeHome, 10_000_000, p.BetPolicyID, testNow))

	res = e.RedeemBet(ctx, protocol.RedeemBetRequest{
		Actor:     actor,
		GameID:    42,
		GameLabel: "Final",
		Predicted: protocol.OutcomeHome,
		Stake:     10_000_000,
	})
	require.True(t, res.IsSuccess(), "redeem: %v", res.Failure())
	out := res.Value()
	assert.Equal(t, uint64(10_000_000), out.Payout)
	assert.True(t, out.Multiplier.IsPositive())

	pot, err = emu.Pot(ctx, 42)
	require.NoError(t, err)
	assert.Zero(t, pot, "redemption drains the pot")

	// The bet tokens are gone from the ledger entirely.
	snapshot, err = emu.ListSpendable(ctx, actor)
	require.NoError(t, err)
	for _, u := range snapshot {
		assert.Zero(t, u.Value.Get(betUnit), "bet tokens must be burned, output %s", u.Ref())
	}

	// Purchase utility tokens with the proceeds.
	res = e.PurchaseToken(ctx, protocol.PurchaseTokenRequest{
		Actor:        actor,
		Contribution: 5_000_000,
	})
	require.True(t, res.IsSuccess(), "purchase: %v", res.Failure())

	snapshot, err = emu.ListSpendable(ctx, actor)
	require.NoError(t, err)
	var utility uint64
	for _, u := range snapshot {
		utility += u.Value.Get(p.UtilityUnit())
	}
	assert.Positive(t, utility)
}

// A plan that tries to draw more than the pot holds must be rejected by
// the emulator, and the engine reports it as a transaction failure.
func TestRedeemRejectedWhenPotExhausted(t *testing.T) {
	ctx := context.Background()
	p := protocol.TestnetParams()

	emu, err := provider.OpenEmulator(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	defer emu.Close()

	e, err := New(p, emu, WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)

	_, err = emu.Fund(ctx, actor, protocol.NewValue(20_000_000))
	require.NoError(t, err)

	res := e.PlaceBet(ctx, protocol.PlaceBetRequest{
		Actor:   actor,
		GameID:  9,
		Outcome: protocol.OutcomeAway,
		Stake:   10_000_000,
		Kickoff: testNow.Add(24 * time.Hour),
	})
	require.True(t, res.IsSuccess(), "place: %v", res.Failure())

	// An inflated record claims a pot the ledger does not hold.
	require.NoError(t, emu.SetOracleRecord(ctx, &protocol.OracleRecord{
		GameID:        9,
		Settled:       true,
		Outcome:       protocol.OutcomeAway,
		PolicyID:      p.BetPolicyID,
		TotalPot:      50_000_000,
		TotalWinnings: 10_000_000,
		SettledAt:     testNow,
	}))

	res = e.RedeemBet(ctx, protocol.RedeemBetRequest{
		Actor:     actor,
		GameID:    9,
		Predicted: protocol.OutcomeAway,
		Stake:     10_000_000,
	})
	require.True(t, res.IsFailure())
	f := res.Failure()
	assert.Equal(t, result.CodeTransactionFailed, f.Code)
	assert.Equal(t, string(StageBuilding), f.Context["stage"])
}
