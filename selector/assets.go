// Copyright (c) 2026 The betchain developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package selector

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/betchainorg/libbetchain-go/protocol"
	"github.com/betchainorg/libbetchain-go/result"
)

// SelectForAssets picks outputs covering both a native target and a
// vector of per-asset targets. Outputs holding the required assets are
// forced into the selection first (largest holding first); the remaining
// native shortfall, if any, is covered by the ordinary strategy chain
// over the rest of the snapshot.
func SelectForAssets(utxos []*protocol.UTXO, target uint64, assets protocol.Value, cfg Config) result.Result[*Selection] {
	forced, rest, fail := forceAssetHolders(utxos, assets)
	if fail != nil {
		return result.Err[*Selection](fail)
	}
	if len(forced) > cfg.MaxInputs {
		return result.Err[*Selection](
			result.Failf(result.CodeTooManyInputs,
				"covering the asset targets requires more than %d inputs", cfg.MaxInputs).
				WithContext("maxInputs", fmt.Sprintf("%d", cfg.MaxInputs)).
				WithSuggestions("consolidate token-holding outputs first"))
	}

	required := target + cfg.FeeReserve
	forcedCoin := totalCoin(forced)

	if forcedCoin >= required {
		sel := &picked{inputs: forced, total: forcedCoin, strategy: StrategyOptimal}
		return finalize(sel, target, required, 0, cfg)
	}

	// Cover the native shortfall from the rest of the snapshot. The fee
	// reserve is already part of required, so the inner run carries none.
	shortfall := required - forcedCoin
	inner := cfg
	inner.FeeReserve = 0
	inner.MaxInputs = cfg.MaxInputs - len(forced)

	res := Select(rest, shortfall, inner)
	if res.IsFailure() {
		return res
	}
	topUp := res.Value()

	sel := &Selection{
		Target:      target,
		Inputs:      append(refsOf(forced), topUp.Inputs...),
		TotalInput:  forcedCoin + topUp.TotalInput,
		Change:      topUp.Change,
		Strategy:    topUp.Strategy,
		DustSkipped: topUp.DustSkipped,
		Warnings:    topUp.Warnings,
	}
	sel.Efficiency = decimal.NewFromUint64(target).Div(decimal.NewFromUint64(sel.TotalInput))
	return result.Ok(sel)
}

// forceAssetHolders picks, per required asset unit, the largest holders
// until the quantity is covered. Returns the forced outputs and the
// remainder of the snapshot.
func forceAssetHolders(utxos []*protocol.UTXO, assets protocol.Value) (forced, rest []*protocol.UTXO, fail *result.Failure) {
	taken := make(map[protocol.OutputRef]bool)

	units := make([]string, 0, len(assets))
	for unit := range assets {
		if unit != protocol.NativeUnit && assets[unit] > 0 {
			units = append(units, unit)
		}
	}
	sort.Strings(units)

	for _, unit := range units {
		needed := assets[unit]

		holders := make([]*protocol.UTXO, 0)
		for _, u := range utxos {
			if u.Value.Get(unit) > 0 {
				holders = append(holders, u)
			}
		}
		sort.SliceStable(holders, func(i, j int) bool {
			return holders[i].Value.Get(unit) > holders[j].Value.Get(unit)
		})

		var covered uint64
		for _, h := range holders {
			if taken[h.Ref()] {
				covered += h.Value.Get(unit)
				continue
			}
			if covered >= needed {
				break
			}
			taken[h.Ref()] = true
			forced = append(forced, h)
			covered += h.Value.Get(unit)
		}
		if covered < needed {
			return nil, nil, result.Failf(result.CodeInsufficientFunds,
				"held %d of asset %s, need %d", covered, unit, needed).
				WithContext("unit", unit).
				WithContext("held", fmt.Sprintf("%d", covered)).
				WithContext("needed", fmt.Sprintf("%d", needed)).
				WithSuggestions("verify the tokens for this operation are held by the actor's address")
		}
	}

	for _, u := range utxos {
		if !taken[u.Ref()] {
			rest = append(rest, u)
		}
	}
	return forced, rest, nil
}

func refsOf(utxos []*protocol.UTXO) []protocol.OutputRef {
	refs := make([]protocol.OutputRef, len(utxos))
	for i, u := range utxos {
		refs[i] = u.Ref()
	}
	return refs
}
