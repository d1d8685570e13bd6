// Copyright (c) 2026 The betchain developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package engine is the transaction orchestrator: it sequences
// validation, UTXO selection, oracle verification, token accounting, and
// delegation to the ledger provider, and assembles the terminal
// operation outcome. The state machine is strictly forward-progressing;
// a failure in any stage terminates the run with the stage attached as
// context, and nothing is retried inside the core.
package engine

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/betchainorg/libbetchain-go/accounting"
	"github.com/betchainorg/libbetchain-go/metrics"
	"github.com/betchainorg/libbetchain-go/protocol"
	"github.com/betchainorg/libbetchain-go/provider"
	"github.com/betchainorg/libbetchain-go/result"
	"github.com/betchainorg/libbetchain-go/selector"
)

// Stage names the orchestrator state a failure occurred in. It is
// attached to failures as run context and never rewrites the underlying
// failure code. Planning is the pure delta/target derivation that runs
// before selection; Accounting is the balance work after it.
type Stage string

const (
	StageValidating      Stage = "Validating"
	StagePlanning        Stage = "Planning"
	StageSelecting       Stage = "Selecting"
	StageVerifyingOracle Stage = "VerifyingOracle"
	StageAccounting      Stage = "Accounting"
	StageBuilding        Stage = "Building"
	StageSubmitted       Stage = "Submitted"
)

// Engine orchestrates operations against a ledger provider. It holds no
// mutable state; runs for different requests are independent and may
// execute concurrently.
type Engine struct {
	params protocol.Params
	ledger provider.LedgerService
	log    *zap.Logger
	met    *metrics.Metrics
	clock  func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a logger; the default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithMetrics attaches prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.met = m }
}

// WithClock overrides the submission clock. Tests use this to pin
// validation of kickoff times.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// New builds an Engine over validated protocol parameters.
func New(params protocol.Params, ledger provider.LedgerService, opts ...Option) (*Engine, error) {
	if err := protocol.ValidateParams(params); err != nil {
		return nil, err
	}
	e := &Engine{
		params: params,
		ledger: ledger,
		log:    zap.NewNop(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// failAt attaches the run stage to a failure and records it.
func (e *Engine) failAt(stage Stage, op string, f *result.Failure) result.Result[*OperationOutcome] {
	f.WithContext("stage", string(stage))
	e.met.Failure(string(f.Code))
	e.met.OperationDone(op, false)
	e.log.Warn("operation failed",
		zap.String("operation", op),
		zap.String("stage", string(stage)),
		zap.String("code", string(f.Code)),
		zap.String("message", f.Message))
	return result.Err[*OperationOutcome](f)
}

// providerFailure wraps a provider error into the TRANSACTION_FAILED
// code without reinterpreting it.
func providerFailure(err error) *result.Failure {
	return result.Failf(result.CodeTransactionFailed, "ledger provider: %v", err).
		WithSuggestions("check provider connectivity and resubmit the operation")
}

// snapshot fetches the actor's spendable outputs once per run.
func (e *Engine) snapshot(ctx context.Context, actor string) ([]*protocol.UTXO, error) {
	return e.ledger.ListSpendable(ctx, actor)
}

// buildAndSubmit assembles the transaction plan from an accounted entry
// and a selection, hands it to the provider, and returns the txid. The
// context is checked once on entry; after construction begins the
// operation runs to completion as reported by the provider, since a
// submitted transaction cannot be un-submitted.
func (e *Engine) buildAndSubmit(
	ctx context.Context,
	entry *accounting.Entry,
	sel *selector.Selection,
	snapshot []*protocol.UTXO,
	actor string,
	gameID int64,
	validity protocol.ValidityInterval,
) (string, *result.Failure) {
	if err := ctx.Err(); err != nil {
		return "", result.Failf(result.CodeTransactionFailed, "operation abandoned before building: %v", err)
	}

	fee, fail := accounting.Balance(entry, sel.TotalInput, sel.Change, e.params.MinOutputValue)
	if fail != nil {
		return "", fail
	}

	outputs := make([]protocol.TxOutput, 0, len(entry.Outputs)+1)
	for _, out := range entry.Outputs {
		outputs = append(outputs, protocol.TxOutput{Address: out.Address, Value: out.Value.Clone()})
	}
	if sel.Change > 0 {
		outputs = append(outputs, protocol.TxOutput{Address: actor, Value: protocol.NewValue(sel.Change)})
	}

	if fail := attachResidue(outputs, entry, sel, snapshot, actor); fail != nil {
		return "", fail
	}

	plan := &protocol.TxPlan{
		Inputs:     sel.Inputs,
		Outputs:    outputs,
		Mints:      entry.Deltas,
		Fee:        fee,
		Validity:   validity,
		GameID:     gameID,
		PotDeposit: entry.PotDeposit,
		PotDraw:    entry.PotDraw,
	}

	start := time.Now()
	txid, err := e.ledger.SubmitPlan(ctx, plan)
	e.met.ObserveSubmit(time.Since(start))
	if err != nil {
		return "", providerFailure(err)
	}
	return txid, nil
}

// attachResidue returns non-native assets entering the transaction
// (selected inputs plus mints) that are neither burned nor already
// placed into an output. The residue
// goes onto the change output when present, otherwise onto the first
// output addressed to the actor; with nowhere to put it the plan would
// destroy held tokens, which is a fatal accounting problem.
func attachResidue(
	outputs []protocol.TxOutput,
	entry *accounting.Entry,
	sel *selector.Selection,
	snapshot []*protocol.UTXO,
	actor string,
) *result.Failure {
	byRef := make(map[protocol.OutputRef]*protocol.UTXO, len(snapshot))
	for _, u := range snapshot {
		byRef[u.Ref()] = u
	}

	residue := make(protocol.Value)
	for _, ref := range sel.Inputs {
		if u := byRef[ref]; u != nil {
			for unit, qty := range u.Value {
				if unit != protocol.NativeUnit {
					residue[unit] += qty
				}
			}
		}
	}
	for _, d := range entry.Deltas {
		if d.Quantity >= 0 {
			residue[d.Unit] += uint64(d.Quantity)
			continue
		}
		burn := uint64(-d.Quantity)
		if burn >= residue[d.Unit] {
			delete(residue, d.Unit)
		} else {
			residue[d.Unit] -= burn
		}
	}
	for _, out := range outputs {
		for unit, qty := range out.Value {
			if unit == protocol.NativeUnit {
				continue
			}
			if held, ok := residue[unit]; ok {
				if qty >= held {
					delete(residue, unit)
				} else {
					residue[unit] = held - qty
				}
			}
		}
	}
	for unit, qty := range residue {
		if qty == 0 {
			delete(residue, unit)
		}
	}
	if len(residue) == 0 {
		return nil
	}

	for i := len(outputs) - 1; i >= 0; i-- {
		if outputs[i].Address == actor {
			outputs[i].Value.Add(residue)
			return nil
		}
	}
	return result.Failf(result.CodeAccountingError,
		"selected inputs carry %d unrelated asset class(es) with no output to return them", len(residue)).
		WithSuggestions("consolidate token-holding outputs before running this operation")
}

// buildStage maps a buildAndSubmit failure to the stage it belongs to:
// balance and residue problems are accounting failures, everything else
// happened while building or submitting.
func buildStage(f *result.Failure) Stage {
	if f.Code == result.CodeAccountingError {
		return StageAccounting
	}
	return StageBuilding
}

// done finishes a successful run.
func (e *Engine) done(op string, out *OperationOutcome, strategy selector.Strategy) result.Result[*OperationOutcome] {
	e.met.Strategy(string(strategy))
	e.met.OperationDone(op, true)
	e.log.Info("operation complete",
		zap.String("operation", op),
		zap.String("stage", string(StageSubmitted)),
		zap.String("txid", out.TxID),
		zap.String("summary", out.Summary))
	return result.Ok(out)
}

// mergeWarnings concatenates warning lists, dropping empties.
func mergeWarnings(lists ...[]string) []string {
	var all []string
	for _, l := range lists {
		all = append(all, l...)
	}
	return all
}

// overflows reports whether stake cannot be scaled into a token
// quantity.
func overflows(stake, scale uint64) bool {
	return scale != 0 && stake > math.MaxUint64/scale
}
