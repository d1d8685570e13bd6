// Copyright (c) 2026 The betchain developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package engine

import (
	"context"
	"fmt"

	"github.com/betchainorg/libbetchain-go/accounting"
	"github.com/betchainorg/libbetchain-go/oracle"
	"github.com/betchainorg/libbetchain-go/protocol"
	"github.com/betchainorg/libbetchain-go/result"
	"github.com/betchainorg/libbetchain-go/selector"
	"github.com/betchainorg/libbetchain-go/validate"
)

const (
	opPlaceBet      = "place_bet"
	opPurchaseToken = "purchase_token"
	opRedeemBet     = "redeem_bet"
)

// PlaceBet validates, funds, accounts, and submits a bet placement. The
// stake moves into the game pot and bet-outcome tokens scaled to the
// stake are minted to the actor. The transaction is valid from
// submission until the game's kickoff.
func (e *Engine) PlaceBet(ctx context.Context, req protocol.PlaceBetRequest) result.Result[*OperationOutcome] {
	now := e.clock()

	if f := validate.PlaceBet(req, e.params, now); f != nil {
		return e.failAt(StageValidating, opPlaceBet, f)
	}

	entry, f := accounting.PlaceBet(e.params, req).Unpack()
	if f != nil {
		return e.failAt(StagePlanning, opPlaceBet, f)
	}

	snapshot, err := e.snapshot(ctx, req.Actor)
	if err != nil {
		return e.failAt(StageSelecting, opPlaceBet, providerFailure(err))
	}
	cfg := selector.FromParams(e.params)
	var selRes result.Result[*selector.Selection]
	if len(entry.AssetNeeds) > 0 {
		selRes = selector.SelectForAssets(snapshot, entry.Target, entry.AssetNeeds, cfg)
	} else {
		selRes = selector.Select(snapshot, entry.Target, cfg)
	}
	sel, f := selRes.Unpack()
	if f != nil {
		return e.failAt(StageSelecting, opPlaceBet, f)
	}

	validity := protocol.ValidityInterval{NotBefore: now, NotAfter: req.Kickoff}
	txid, f := e.buildAndSubmit(ctx, entry, sel, snapshot, req.Actor, req.GameID, validity)
	if f != nil {
		return e.failAt(buildStage(f), opPlaceBet, f)
	}

	return e.done(opPlaceBet, &OperationOutcome{
		TxID: txid,
		Summary: fmt.Sprintf("placed %d on %s for game %d (%s); minted %d bet token(s)",
			req.Stake, req.Outcome, req.GameID, req.GameLabel, entry.Deltas[0].Quantity),
		Deltas:    entry.Deltas,
		Warnings:  mergeWarnings(sel.Warnings, entry.Warnings),
		Selection: sel,
		Validity:  validity,
	}, sel.Strategy)
}

// PurchaseToken validates, funds, accounts, and submits a utility-token
// purchase, including the referral split when a referrer was named.
func (e *Engine) PurchaseToken(ctx context.Context, req protocol.PurchaseTokenRequest) result.Result[*OperationOutcome] {
	now := e.clock()

	if f := validate.PurchaseToken(req, e.params); f != nil {
		return e.failAt(StageValidating, opPurchaseToken, f)
	}

	entry, f := accounting.PurchaseToken(e.params, req).Unpack()
	if f != nil {
		return e.failAt(StagePlanning, opPurchaseToken, f)
	}

	snapshot, err := e.snapshot(ctx, req.Actor)
	if err != nil {
		return e.failAt(StageSelecting, opPurchaseToken, providerFailure(err))
	}
	sel, f := selector.Select(snapshot, entry.Target, selector.FromParams(e.params)).Unpack()
	if f != nil {
		return e.failAt(StageSelecting, opPurchaseToken, f)
	}

	validity := protocol.ValidityInterval{NotBefore: now, NotAfter: now.Add(e.params.PlanTTL)}
	txid, f := e.buildAndSubmit(ctx, entry, sel, snapshot, req.Actor, 0, validity)
	if f != nil {
		return e.failAt(buildStage(f), opPurchaseToken, f)
	}

	summary := fmt.Sprintf("purchased %d utility token(s) for %d", entry.Deltas[0].Quantity, req.Contribution)
	if req.Referral != "" {
		summary += fmt.Sprintf(" with referral to %s", req.Referral)
	}
	return e.done(opPurchaseToken, &OperationOutcome{
		TxID:         txid,
		Summary:      summary,
		Deltas:       entry.Deltas,
		Warnings:     mergeWarnings(sel.Warnings, entry.Warnings),
		Selection:    sel,
		Validity:     validity,
		Distribution: entry.Distribution,
	}, sel.Strategy)
}

// RedeemBet validates, funds, verifies the oracle record, accounts, and
// submits a redemption. The held bet tokens for the game are burned in
// every case; a winning prediction draws stake×multiplier from the pot,
// a missed one completes as a no-payout redemption.
func (e *Engine) RedeemBet(ctx context.Context, req protocol.RedeemBetRequest) result.Result[*OperationOutcome] {
	now := e.clock()

	if f := validate.RedeemBet(req, e.params); f != nil {
		return e.failAt(StageValidating, opRedeemBet, f)
	}
	if overflows(req.Stake, e.params.TokenScale) {
		return e.failAt(StagePlanning, opRedeemBet,
			result.Failf(result.CodeAccountingError,
				"stake %d overflows the bet-token scale %d", req.Stake, e.params.TokenScale))
	}

	betUnit := e.params.BetUnit(req.GameID, req.Predicted)
	needs := protocol.Value{betUnit: req.Stake * e.params.TokenScale}
	if req.CloseOracle {
		needs[e.params.OracleUnit()] = 1
	}

	snapshot, err := e.snapshot(ctx, req.Actor)
	if err != nil {
		return e.failAt(StageSelecting, opRedeemBet, providerFailure(err))
	}
	sel, f := selector.SelectForAssets(snapshot, 0, needs, selector.FromParams(e.params)).Unpack()
	if f != nil {
		return e.failAt(StageSelecting, opRedeemBet, f)
	}

	record, err := e.ledger.OracleRecord(ctx, req.GameID)
	if err != nil {
		return e.failAt(StageVerifyingOracle, opRedeemBet, providerFailure(err))
	}
	ver, f := oracle.Verify(record, req.GameID, req.Predicted, e.params.BetPolicyID).Unpack()
	if f != nil {
		return e.failAt(StageVerifyingOracle, opRedeemBet, f)
	}

	held := heldQuantity(snapshot, sel.Inputs, betUnit)
	entry, f := accounting.RedeemBet(e.params, req, ver, held).Unpack()
	if f != nil {
		return e.failAt(StageAccounting, opRedeemBet, f)
	}

	validity := protocol.ValidityInterval{NotBefore: ver.Record.SettledAt, NotAfter: now.Add(e.params.PlanTTL)}
	if validity.NotBefore.IsZero() {
		validity.NotBefore = now
	}
	txid, f := e.buildAndSubmit(ctx, entry, sel, snapshot, req.Actor, req.GameID, validity)
	if f != nil {
		return e.failAt(buildStage(f), opRedeemBet, f)
	}

	var summary string
	if entry.Payout > 0 {
		summary = fmt.Sprintf("redeemed game %d (%s): payout %d at multiplier %s",
			req.GameID, req.GameLabel, entry.Payout, entry.Multiplier)
	} else {
		summary = fmt.Sprintf("redeemed game %d (%s): prediction %s missed settled outcome %s; tokens burned, no payout",
			req.GameID, req.GameLabel, req.Predicted, ver.Record.Outcome)
	}
	return e.done(opRedeemBet, &OperationOutcome{
		TxID:       txid,
		Summary:    summary,
		Deltas:     entry.Deltas,
		Warnings:   mergeWarnings(sel.Warnings, entry.Warnings),
		Selection:  sel,
		Validity:   validity,
		Payout:     entry.Payout,
		Multiplier: entry.Multiplier,
	}, sel.Strategy)
}

// heldQuantity sums an asset across the selected inputs: the quantity
// the actor provably brings into the transaction.
func heldQuantity(snapshot []*protocol.UTXO, inputs []protocol.OutputRef, unit string) uint64 {
	byRef := make(map[protocol.OutputRef]*protocol.UTXO, len(snapshot))
	for _, u := range snapshot {
		byRef[u.Ref()] = u
	}
	var held uint64
	for _, ref := range inputs {
		if u := byRef[ref]; u != nil {
			held += u.Value.Get(unit)
		}
	}
	return held
}
