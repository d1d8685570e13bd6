// Copyright (c) 2026 The betchain developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package selector

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betchainorg/libbetchain-go/protocol"
	"github.com/betchainorg/libbetchain-go/result"
)

// testCfg mirrors the worked examples: dust threshold 10, minimum output
// 10, no fee reserve.
var testCfg = Config{
	DustThreshold:  10,
	MinOutputValue: 10,
	FeeReserve:     0,
	MaxInputs:      30,
}

func makeSet(coins ...uint64) []*protocol.UTXO {
	utxos := make([]*protocol.UTXO, len(coins))
	for i, c := range coins {
		utxos[i] = &protocol.UTXO{
			TxID:    fmt.Sprintf("%064x", i+1),
			Index:   0,
			Address: "addr_test1_actor",
			Value:   protocol.NewValue(c),
		}
	}
	return utxos
}

func coinsOf(t *testing.T, utxos []*protocol.UTXO, refs []protocol.OutputRef) []uint64 {
	t.Helper()
	byRef := make(map[protocol.OutputRef]uint64)
	for _, u := range utxos {
		byRef[u.Ref()] = u.Coin()
	}
	out := make([]uint64, len(refs))
	for i, r := range refs {
		c, ok := byRef[r]
		require.True(t, ok, "selected unknown ref %s", r)
		out[i] = c
	}
	return out
}

func TestSelectOptimalTightMatch(t *testing.T) {
	utxos := makeSet(100, 50, 30, 5)

	res := Select(utxos, 120, testCfg)
	require.True(t, res.IsSuccess(), "failure: %v", res.Failure())
	sel := res.Value()

	assert.Equal(t, StrategyOptimal, sel.Strategy)
	assert.ElementsMatch(t, []uint64{100, 30}, coinsOf(t, utxos, sel.Inputs))
	assert.Equal(t, uint64(130), sel.TotalInput)
	assert.Equal(t, uint64(10), sel.Change)
	assert.Equal(t, 1, sel.DustSkipped)
	assert.True(t, sel.Efficiency.Equal(decimal.NewFromUint64(120).Div(decimal.NewFromUint64(130))),
		"efficiency = target/totalInput, got %s", sel.Efficiency)
}

func TestSelectGreedyWhenNoTightMatch(t *testing.T) {
	utxos := makeSet(100, 50, 30, 5)

	res := Select(utxos, 170, testCfg)
	require.True(t, res.IsSuccess(), "failure: %v", res.Failure())
	sel := res.Value()

	assert.Equal(t, StrategyGreedy, sel.Strategy)
	assert.ElementsMatch(t, []uint64{100, 50, 30}, coinsOf(t, utxos, sel.Inputs))
	assert.Equal(t, uint64(180), sel.TotalInput)
	assert.Equal(t, uint64(10), sel.Change)
}

func TestSelectInsufficientFunds(t *testing.T) {
	utxos := makeSet(50, 30)

	res := Select(utxos, 120, testCfg)
	require.True(t, res.IsFailure())
	f := res.Failure()
	assert.Equal(t, result.CodeInsufficientFunds, f.Code)
	assert.Equal(t, "80", f.Context["available"])
	assert.Equal(t, "120", f.Context["required"])
	assert.NotEmpty(t, f.Suggestions)
}

func TestSelectChangeNeverSubMinimum(t *testing.T) {
	utxos := makeSet(100, 50, 30)

	// Greedy picks 100+50+30 = 180 against 175; residual 5 is below the
	// minimum output and must be folded into the fee, not left as change.
	res := Select(utxos, 175, testCfg)
	require.True(t, res.IsSuccess())
	sel := res.Value()
	assert.Zero(t, sel.Change)
	assert.NotEmpty(t, sel.Warnings)
}

func TestSelectInvariants(t *testing.T) {
	sets := [][]uint64{
		{100, 50, 30, 5},
		{1000},
		{60, 60, 60, 60},
		{500, 400, 12, 11, 10},
	}
	targets := []uint64{11, 59, 60, 100, 119, 120, 121, 200, 239}

	for _, coins := range sets {
		for _, target := range targets {
			utxos := makeSet(coins...)
			res := Select(utxos, target, testCfg)
			if res.IsFailure() {
				continue
			}
			sel := res.Value()
			assert.GreaterOrEqual(t, sel.TotalInput, sel.Target,
				"set %v target %d", coins, target)
			if sel.Change != 0 {
				assert.GreaterOrEqual(t, sel.Change, testCfg.MinOutputValue,
					"set %v target %d", coins, target)
			}
			assert.Equal(t, sel.TotalInput, sumRefs(t, utxos, sel.Inputs))
		}
	}
}

func sumRefs(t *testing.T, utxos []*protocol.UTXO, refs []protocol.OutputRef) uint64 {
	var sum uint64
	for _, c := range coinsOf(t, utxos, refs) {
		sum += c
	}
	return sum
}

func TestSelectDustReadmittedAsLastResort(t *testing.T) {
	// Non-dust total 100 cannot cover 104; with the two dust outputs the
	// target is reachable, so FALLBACK re-admits them.
	utxos := makeSet(100, 5, 4)

	res := Select(utxos, 104, testCfg)
	require.True(t, res.IsSuccess(), "failure: %v", res.Failure())
	sel := res.Value()

	assert.Equal(t, StrategyFallback, sel.Strategy)
	assert.Equal(t, uint64(105), sel.TotalInput)
	assert.Equal(t, 1, sel.DustSkipped, "the unused dust output still counts as skipped")
}

func TestSelectTooManyInputs(t *testing.T) {
	coins := make([]uint64, 12)
	for i := range coins {
		coins[i] = 20
	}
	utxos := makeSet(coins...)

	cfg := testCfg
	cfg.MaxInputs = 4

	res := Select(utxos, 200, cfg)
	require.True(t, res.IsFailure())
	assert.Equal(t, result.CodeTooManyInputs, res.Failure().Code)
}

func TestSelectDoesNotMutateSnapshot(t *testing.T) {
	utxos := makeSet(30, 100, 5, 50)
	before := make([]uint64, len(utxos))
	for i, u := range utxos {
		before[i] = u.Coin()
	}

	_ = Select(utxos, 120, testCfg)

	for i, u := range utxos {
		assert.Equal(t, before[i], u.Coin())
	}
}

func TestSelectForAssets(t *testing.T) {
	tokenUnit := "9d3c.bet_7_Home"

	utxos := makeSet(100, 50, 30, 5)
	// The 30-coin output also carries the bet tokens.
	utxos[2].Value[tokenUnit] = 500

	res := SelectForAssets(utxos, 100, protocol.Value{tokenUnit: 500}, testCfg)
	require.True(t, res.IsSuccess(), "failure: %v", res.Failure())
	sel := res.Value()

	assert.Contains(t, coinsOf(t, utxos, sel.Inputs), uint64(30),
		"the token-holding output must be forced into the selection")
	assert.GreaterOrEqual(t, sel.TotalInput, sel.Target)
}

func TestSelectForAssetsMissingTokens(t *testing.T) {
	tokenUnit := "9d3c.bet_7_Home"
	utxos := makeSet(100, 50)
	utxos[1].Value[tokenUnit] = 200

	res := SelectForAssets(utxos, 10, protocol.Value{tokenUnit: 500}, testCfg)
	require.True(t, res.IsFailure())
	f := res.Failure()
	assert.Equal(t, result.CodeInsufficientFunds, f.Code)
	assert.Equal(t, tokenUnit, f.Context["unit"])
	assert.Equal(t, "200", f.Context["held"])
}

func TestSelectForAssetsForcedCoinCoversTarget(t *testing.T) {
	tokenUnit := "9d3c.bet_7_Home"
	utxos := makeSet(100, 50)
	utxos[0].Value[tokenUnit] = 500

	res := SelectForAssets(utxos, 80, protocol.Value{tokenUnit: 500}, testCfg)
	require.True(t, res.IsSuccess())
	sel := res.Value()
	assert.Len(t, sel.Inputs, 1)
	assert.Equal(t, uint64(100), sel.TotalInput)
	assert.Equal(t, uint64(20), sel.Change)
}
