// Copyright (c) 2026 The betchain developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betchainorg/libbetchain-go/protocol"
	"github.com/betchainorg/libbetchain-go/result"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func validPlaceBet() protocol.PlaceBetRequest {
	return protocol.PlaceBetRequest{
		Actor:     "addr_test1_actor",
		GameID:    7,
		GameLabel: "Sharks vs Jets",
		Outcome:   protocol.OutcomeHome,
		Stake:     5_000_000,
		Kickoff:   now.Add(48 * time.Hour),
	}
}

func TestPlaceBetValid(t *testing.T) {
	assert.Nil(t, PlaceBet(validPlaceBet(), protocol.TestnetParams(), now))
}

func TestPlaceBetViolations(t *testing.T) {
	p := protocol.TestnetParams()

	cases := []struct {
		name   string
		mutate func(*protocol.PlaceBetRequest)
		field  string
	}{
		{"empty actor", func(r *protocol.PlaceBetRequest) { r.Actor = "" }, "actor"},
		{"zero game id", func(r *protocol.PlaceBetRequest) { r.GameID = 0 }, "gameId"},
		{"negative game id", func(r *protocol.PlaceBetRequest) { r.GameID = -3 }, "gameId"},
		{"bad outcome", func(r *protocol.PlaceBetRequest) { r.Outcome = "Draw" }, "outcome"},
		{"zero stake", func(r *protocol.PlaceBetRequest) { r.Stake = 0 }, "stake"},
		{"below minimum stake", func(r *protocol.PlaceBetRequest) { r.Stake = p.MinBetStake - 1 }, "stake"},
		{"secondary unit without amount", func(r *protocol.PlaceBetRequest) { r.SecondaryUnit = "aa.tok" }, "secondaryStake"},
		{"secondary amount without unit", func(r *protocol.PlaceBetRequest) { r.SecondaryStake = 10 }, "secondaryStake"},
		{"kickoff in the past", func(r *protocol.PlaceBetRequest) { r.Kickoff = now.Add(-time.Minute) }, "kickoff"},
		{"kickoff at submission time", func(r *protocol.PlaceBetRequest) { r.Kickoff = now }, "kickoff"},
		{"kickoff beyond horizon", func(r *protocol.PlaceBetRequest) { r.Kickoff = now.Add(p.MaxBetHorizon + time.Hour) }, "kickoff"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validPlaceBet()
			tc.mutate(&req)
			f := PlaceBet(req, p, now)
			require.NotNil(t, f)
			assert.Equal(t, result.CodeInvalidInput, f.Code)
			assert.Equal(t, tc.field, f.Context["field"])
			assert.NotEmpty(t, f.Context["got"])
			assert.NotEmpty(t, f.Context["want"])
			assert.NotEmpty(t, f.Suggestions)
		})
	}
}

func TestPlaceBetIdempotent(t *testing.T) {
	req := validPlaceBet()
	req.Stake = 0
	p := protocol.TestnetParams()

	first := PlaceBet(req, p, now)
	second := PlaceBet(req, p, now)
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, first.Context, second.Context)
	assert.Equal(t, first.Suggestions, second.Suggestions)
}

func TestPurchaseToken(t *testing.T) {
	p := protocol.TestnetParams()
	req := protocol.PurchaseTokenRequest{Actor: "addr1", Contribution: p.MinPurchase}

	assert.Nil(t, PurchaseToken(req, p))

	req.Contribution = 0
	f := PurchaseToken(req, p)
	require.NotNil(t, f)
	assert.Equal(t, "contribution", f.Context["field"])

	req.Contribution = p.MinPurchase - 1
	f = PurchaseToken(req, p)
	require.NotNil(t, f)
	assert.Equal(t, "contribution", f.Context["field"])

	req.Contribution = p.MinPurchase
	req.Referral = "addr1" // self-referral
	f = PurchaseToken(req, p)
	require.NotNil(t, f)
	assert.Equal(t, "referral", f.Context["field"])

	req.Referral = "addr2"
	assert.Nil(t, PurchaseToken(req, p))
}

func TestRedeemBet(t *testing.T) {
	p := protocol.TestnetParams()
	req := protocol.RedeemBetRequest{
		Actor:     "addr1",
		GameID:    7,
		Predicted: protocol.OutcomeAway,
		Stake:     5_000_000,
	}

	assert.Nil(t, RedeemBet(req, p))

	bad := req
	bad.GameID = 0
	f := RedeemBet(bad, p)
	require.NotNil(t, f)
	assert.Equal(t, "gameId", f.Context["field"])

	bad = req
	bad.Predicted = ""
	f = RedeemBet(bad, p)
	require.NotNil(t, f)
	assert.Equal(t, "predicted", f.Context["field"])

	bad = req
	bad.Stake = 0
	f = RedeemBet(bad, p)
	require.NotNil(t, f)
	assert.Equal(t, "stake", f.Context["field"])
}
