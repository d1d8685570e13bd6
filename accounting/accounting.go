// Copyright (c) 2026 The betchain developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package accounting computes the exact per-asset mint/burn deltas and
// output layout for each operation. Everything here is pure arithmetic
// over minor units; a result that does not balance to zero is a fatal
// ACCOUNTING_ERROR, never silently absorbed into fees.
package accounting

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/betchainorg/libbetchain-go/oracle"
	"github.com/betchainorg/libbetchain-go/protocol"
	"github.com/betchainorg/libbetchain-go/result"
)

// Entry is the accounting of one operation before transaction
// construction: what gets minted and burned, the outputs to produce,
// and what the selector must gather to fund it.
type Entry struct {
	Deltas  []protocol.TokenDelta
	Outputs []protocol.TxOutput
	Fee     uint64 // declared network fee reserve

	// Pot movements, native minor units.
	PotDeposit uint64
	PotDraw    uint64

	// Funding requirements for the selector. Target is the native value
	// the inputs must cover in addition to the fee; AssetNeeds lists
	// non-native quantities the inputs must provably hold.
	Target     uint64
	AssetNeeds protocol.Value

	// Redemption detail.
	Payout     uint64
	Multiplier decimal.Decimal

	// Purchase detail. Nil unless a referral address was supplied.
	Distribution *protocol.AdaDistribution

	Warnings []string
}

// PlaceBet accounts a bet placement: the stake moves into the game pot
// and stake×scale bet-outcome tokens are minted to the bettor. A
// secondary stake currency, when present, is locked to the protocol
// script in the same transaction.
func PlaceBet(p protocol.Params, req protocol.PlaceBetRequest) result.Result[*Entry] {
	if p.TokenScale != 0 && req.Stake > math.MaxInt64/p.TokenScale {
		return result.Err[*Entry](result.Failf(result.CodeAccountingError,
			"stake %d overflows the bet-token scale %d", req.Stake, p.TokenScale))
	}
	mint := int64(req.Stake * p.TokenScale)
	betUnit := p.BetUnit(req.GameID, req.Outcome)

	e := &Entry{
		Deltas: []protocol.TokenDelta{{Unit: betUnit, Quantity: mint}},
		Outputs: []protocol.TxOutput{{
			Address: req.Actor,
			Value:   protocol.Value{protocol.NativeUnit: p.MinOutputValue, betUnit: uint64(mint)},
		}},
		Fee:        p.FeeReserve,
		PotDeposit: req.Stake,
		Target:     req.Stake + p.MinOutputValue,
	}

	if req.SecondaryUnit != "" {
		// Locked atomically with the native stake: one more output to
		// the script, carrying the secondary asset on a minimum-value
		// native base.
		e.Outputs = append(e.Outputs, protocol.TxOutput{
			Address: p.ScriptAddress,
			Value: protocol.Value{
				protocol.NativeUnit: p.MinOutputValue,
				req.SecondaryUnit:   req.SecondaryStake,
			},
		})
		e.Target += p.MinOutputValue
		e.AssetNeeds = protocol.Value{req.SecondaryUnit: req.SecondaryStake}
	}

	return result.Ok(e)
}

// PurchaseToken accounts a utility-token purchase: tokens are minted at
// the tier rate for the contribution, and a referred purchase splits the
// contribution between protocol treasury and referrer with an explicit
// distribution breakdown.
func PurchaseToken(p protocol.Params, req protocol.PurchaseTokenRequest) result.Result[*Entry] {
	rate := p.TierRate(req.Contribution)
	minted := decimal.NewFromUint64(req.Contribution).Mul(rate).Floor()
	if !minted.IsPositive() || minted.GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return result.Err[*Entry](result.Failf(result.CodeAccountingError,
			"contribution %d at rate %s mints no representable token quantity", req.Contribution, rate))
	}
	tokenQty := minted.IntPart()

	e := &Entry{
		Deltas: []protocol.TokenDelta{{Unit: p.UtilityUnit(), Quantity: tokenQty}},
		Outputs: []protocol.TxOutput{{
			Address: req.Actor,
			Value:   protocol.Value{protocol.NativeUnit: p.MinOutputValue, p.UtilityUnit(): uint64(tokenQty)},
		}},
		Fee:    p.FeeReserve,
		Target: req.Contribution + p.MinOutputValue,
	}

	if req.Referral == "" {
		e.Outputs = append(e.Outputs, protocol.TxOutput{
			Address: p.TreasuryAddress,
			Value:   protocol.NewValue(req.Contribution),
		})
		return result.Ok(e)
	}

	refShare := decimal.NewFromUint64(req.Contribution).
		Mul(p.ReferralPercent).
		Div(decimal.NewFromInt(100)).
		Floor().
		IntPart()
	toReferrer := uint64(refShare)
	if toReferrer < p.MinOutputValue {
		e.Warnings = append(e.Warnings, fmt.Sprintf(
			"referral bonus %d below recommended minimum %d; raised to the minimum output value",
			toReferrer, p.MinOutputValue))
		toReferrer = p.MinOutputValue
	}
	if toReferrer >= req.Contribution {
		return result.Err[*Entry](result.Failf(result.CodeAccountingError,
			"referral share %d consumes the whole contribution %d", toReferrer, req.Contribution))
	}
	toProtocol := req.Contribution - toReferrer
	if toProtocol < p.MinOutputValue {
		return result.Err[*Entry](result.Failf(result.CodeAccountingError,
			"protocol share %d below minimum output value %d", toProtocol, p.MinOutputValue))
	}

	e.Distribution = &protocol.AdaDistribution{
		Total:           req.Contribution,
		ToProtocol:      toProtocol,
		ToReferrer:      toReferrer,
		ReferralPercent: p.ReferralPercent,
	}
	e.Deltas = append(e.Deltas, protocol.TokenDelta{Unit: p.ReferralUnit(), Quantity: 1})
	e.Outputs = append(e.Outputs,
		protocol.TxOutput{
			Address: p.TreasuryAddress,
			Value:   protocol.NewValue(toProtocol),
		},
		protocol.TxOutput{
			Address: req.Referral,
			Value:   protocol.Value{protocol.NativeUnit: toReferrer, p.ReferralUnit(): 1},
		},
	)
	return result.Ok(e)
}

// RedeemBet accounts a redemption against a verified oracle record. The
// held bet tokens for the settled game are burned in every case; a
// winning prediction additionally draws stake×multiplier from the pot.
// held is the bet-token quantity provably present in the actor's
// spendable snapshot.
func RedeemBet(p protocol.Params, req protocol.RedeemBetRequest, v *oracle.Verification, held uint64) result.Result[*Entry] {
	if p.TokenScale != 0 && req.Stake > math.MaxUint64/p.TokenScale {
		return result.Err[*Entry](result.Failf(result.CodeAccountingError,
			"stake %d overflows the bet-token scale %d", req.Stake, p.TokenScale))
	}
	burn := req.Stake * p.TokenScale
	if burn > held {
		return result.Err[*Entry](result.Failf(result.CodeAccountingError,
			"cannot burn %d bet tokens; inputs provably hold only %d", burn, held).
			WithContext("held", fmt.Sprintf("%d", held)).
			WithContext("burn", fmt.Sprintf("%d", burn)))
	}
	if burn > math.MaxInt64 {
		return result.Err[*Entry](result.Failf(result.CodeAccountingError,
			"burn quantity %d is not representable", burn))
	}

	betUnit := p.BetUnit(req.GameID, req.Predicted)
	e := &Entry{
		Deltas:     []protocol.TokenDelta{{Unit: betUnit, Quantity: -int64(burn)}},
		Fee:        p.FeeReserve,
		AssetNeeds: protocol.Value{betUnit: burn},
		Multiplier: v.Multiplier,
	}
	if req.CloseOracle {
		e.Deltas = append(e.Deltas, protocol.TokenDelta{Unit: p.OracleUnit(), Quantity: -1})
		e.AssetNeeds[p.OracleUnit()] = 1
	}

	if !v.Eligible {
		e.Warnings = append(e.Warnings, fmt.Sprintf(
			"prediction %s did not match settled outcome %s; no payout",
			req.Predicted, v.Record.Outcome))
		return result.Ok(e)
	}

	payout := decimal.NewFromUint64(req.Stake).Mul(v.Multiplier).Floor()
	if !payout.IsPositive() || payout.GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return result.Err[*Entry](result.Failf(result.CodeAccountingError,
			"payout for stake %d at multiplier %s is not representable", req.Stake, v.Multiplier))
	}
	e.Payout = uint64(payout.IntPart())
	e.PotDraw = e.Payout
	e.Outputs = append(e.Outputs, protocol.TxOutput{
		Address: req.Actor,
		Value:   protocol.NewValue(e.Payout),
	})
	if v.Refund {
		e.Warnings = append(e.Warnings, "no recorded winners for the settled outcome; stake refunded in full")
	}
	return result.Ok(e)
}
