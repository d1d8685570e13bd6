// Copyright (c) 2026 The betchain developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package selector chooses a subset of spendable outputs that covers a
// target value with minimal waste. Strategies are tried in order:
// OPTIMAL (bounded smallest-cardinality search for a tight match), GREEDY
// (largest-first accumulation), and FALLBACK (dust re-admission when the
// target is otherwise unreachable). The selector never mutates the
// snapshot it is given and never retries; callers may retry with relaxed
// constraints.
package selector

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/betchainorg/libbetchain-go/protocol"
	"github.com/betchainorg/libbetchain-go/result"
)

// Strategy names the selection algorithm that produced a Selection.
type Strategy string

const (
	StrategyOptimal  Strategy = "OPTIMAL"
	StrategyGreedy   Strategy = "GREEDY"
	StrategyFallback Strategy = "FALLBACK"
)

// optimalWindow bounds the OPTIMAL search to the top-K outputs by value,
// keeping its running time constant regardless of snapshot size.
const optimalWindow = 12

// Config carries the selection limits drawn from protocol parameters.
type Config struct {
	DustThreshold  uint64 // outputs below this are excluded from candidacy
	MinOutputValue uint64 // smallest change worth producing; also the tight-match slack bound
	FeeReserve     uint64 // native minor units reserved for the network fee
	MaxInputs      int    // per-transaction input cap
}

// FromParams derives a Config from protocol parameters.
func FromParams(p protocol.Params) Config {
	return Config{
		DustThreshold:  p.DustThreshold,
		MinOutputValue: p.MinOutputValue,
		FeeReserve:     p.FeeReserve,
		MaxInputs:      p.MaxTxInputs,
	}
}

// Selection is the outcome of a successful selection run.
//
// Invariants: TotalInput >= Target, and Change is either zero or at least
// Config.MinOutputValue. Sub-minimum residuals are folded into the fee
// and reported as a warning, never left as an unspendable output.
type Selection struct {
	Target      uint64
	Inputs      []protocol.OutputRef
	TotalInput  uint64
	Change      uint64
	Efficiency  decimal.Decimal // Target / TotalInput, in [0,1]; observability only
	Strategy    Strategy
	DustSkipped int
	Warnings    []string
}

// Select picks outputs covering target plus the configured fee reserve.
func Select(utxos []*protocol.UTXO, target uint64, cfg Config) result.Result[*Selection] {
	required := target + cfg.FeeReserve

	candidates, dust := splitDust(utxos, cfg.DustThreshold)
	sortByCoinDesc(candidates)

	if sel := selectOptimal(candidates, required, cfg); sel != nil {
		return finalize(sel, target, required, len(dust), cfg)
	}

	sel, fail := selectGreedy(candidates, required, cfg, StrategyGreedy)
	if fail != nil {
		return result.Err[*Selection](fail)
	}
	if sel != nil {
		return finalize(sel, target, required, len(dust), cfg)
	}

	// Candidates alone cannot reach the target. Re-admit dust as a last
	// resort; largest-first ordering keeps dust at the tail.
	all := make([]*protocol.UTXO, 0, len(candidates)+len(dust))
	all = append(all, candidates...)
	all = append(all, dust...)
	sortByCoinDesc(all)

	sel, fail = selectGreedy(all, required, cfg, StrategyFallback)
	if fail != nil {
		return result.Err[*Selection](fail)
	}
	if sel == nil {
		available := totalCoin(all)
		return result.Err[*Selection](
			result.Failf(result.CodeInsufficientFunds,
				"spendable total %d cannot cover %d", available, required).
				WithContext("available", fmt.Sprintf("%d", available)).
				WithContext("required", fmt.Sprintf("%d", required)).
				WithSuggestions(
					"reduce the operation amount",
					"fund the address with additional outputs",
				))
	}
	dustSkipped := len(dust) - dustUsed(sel, dust)
	return finalize(sel, target, required, dustSkipped, cfg)
}

// picked is an in-progress selection before change and efficiency are
// computed.
type picked struct {
	inputs   []*protocol.UTXO
	total    uint64
	strategy Strategy
}

// selectOptimal searches singles and pairs within the top-K window for
// the smallest subset whose slack over required stays within the
// tight-match bound. Returns nil when no tight match exists.
func selectOptimal(candidates []*protocol.UTXO, required uint64, cfg Config) *picked {
	window := candidates
	if len(window) > optimalWindow {
		window = window[:optimalWindow]
	}

	// Smallest cardinality first: a covering single beats any pair.
	var best *picked
	for _, u := range window {
		if u.Coin() < required {
			continue
		}
		if best == nil || u.Coin() < best.total {
			best = &picked{inputs: []*protocol.UTXO{u}, total: u.Coin(), strategy: StrategyOptimal}
		}
	}
	if best != nil && best.total-required <= cfg.MinOutputValue {
		return best
	}

	best = nil
	for i := 0; i < len(window); i++ {
		for j := i + 1; j < len(window); j++ {
			total := window[i].Coin() + window[j].Coin()
			if total < required {
				continue
			}
			if best == nil || total < best.total {
				best = &picked{
					inputs:   []*protocol.UTXO{window[i], window[j]},
					total:    total,
					strategy: StrategyOptimal,
				}
			}
		}
	}
	if best != nil && best.total-required <= cfg.MinOutputValue {
		return best
	}
	return nil
}

// selectGreedy accumulates outputs largest-first until required is met,
// stopping as soon as the threshold is crossed. Returns (nil, nil) when
// the pool cannot reach required, and a TOO_MANY_INPUTS failure when
// covering it would exceed the input cap.
func selectGreedy(pool []*protocol.UTXO, required uint64, cfg Config, strategy Strategy) (*picked, *result.Failure) {
	if totalCoin(pool) < required {
		return nil, nil
	}
	sel := &picked{strategy: strategy}
	for _, u := range pool {
		if len(sel.inputs) == cfg.MaxInputs {
			return nil, result.Failf(result.CodeTooManyInputs,
				"covering %d requires more than %d inputs", required, cfg.MaxInputs).
				WithContext("maxInputs", fmt.Sprintf("%d", cfg.MaxInputs)).
				WithSuggestions(
					"consolidate small outputs into larger ones first",
					"split the operation into smaller amounts",
				)
		}
		sel.inputs = append(sel.inputs, u)
		sel.total += u.Coin()
		if sel.total >= required {
			return sel, nil
		}
	}
	return nil, nil
}

// finalize computes change, folds sub-minimum residuals into the fee,
// and assembles the Selection.
func finalize(sel *picked, target, required uint64, dustSkipped int, cfg Config) result.Result[*Selection] {
	change := sel.total - required
	var warnings []string
	if dustSkipped > 0 {
		warnings = append(warnings, fmt.Sprintf("%d dust output(s) below %d skipped", dustSkipped, cfg.DustThreshold))
	}
	if change > 0 && change < cfg.MinOutputValue {
		warnings = append(warnings, fmt.Sprintf("change %d below minimum output %d; folded into fee", change, cfg.MinOutputValue))
		change = 0
	}

	refs := make([]protocol.OutputRef, len(sel.inputs))
	for i, u := range sel.inputs {
		refs[i] = u.Ref()
	}

	efficiency := decimal.NewFromInt(1)
	if sel.total > 0 {
		efficiency = decimal.NewFromUint64(target).Div(decimal.NewFromUint64(sel.total))
	}

	return result.Ok(&Selection{
		Target:      target,
		Inputs:      refs,
		TotalInput:  sel.total,
		Change:      change,
		Efficiency:  efficiency,
		Strategy:    sel.strategy,
		DustSkipped: dustSkipped,
		Warnings:    warnings,
	})
}

func splitDust(utxos []*protocol.UTXO, threshold uint64) (candidates, dust []*protocol.UTXO) {
	for _, u := range utxos {
		if u.Coin() < threshold {
			dust = append(dust, u)
		} else {
			candidates = append(candidates, u)
		}
	}
	return candidates, dust
}

func sortByCoinDesc(utxos []*protocol.UTXO) {
	sort.SliceStable(utxos, func(i, j int) bool {
		return utxos[i].Coin() > utxos[j].Coin()
	})
}

func totalCoin(utxos []*protocol.UTXO) uint64 {
	var sum uint64
	for _, u := range utxos {
		sum += u.Coin()
	}
	return sum
}

func dustUsed(sel *picked, dust []*protocol.UTXO) int {
	inSel := make(map[protocol.OutputRef]bool, len(sel.inputs))
	for _, u := range sel.inputs {
		inSel[u.Ref()] = true
	}
	used := 0
	for _, d := range dust {
		if inSel[d.Ref()] {
			used++
		}
	}
	return used
}
