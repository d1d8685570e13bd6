// Copyright (c) 2026 The betchain developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betchainorg/libbetchain-go/protocol"
)

func TestGatewayListSpendable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/utxos/list", r.URL.Path)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "addr_a", body["address"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"utxos": []*protocol.UTXO{
				{TxID: "aa", Index: 0, Address: "addr_a", Value: protocol.NewValue(5)},
			},
		})
	}))
	defer srv.Close()

	g := NewGateway(GatewayConfig{BaseURL: srv.URL, APIKey: "secret"})
	utxos, err := g.ListSpendable(context.Background(), "addr_a")
	require.NoError(t, err)
	require.Len(t, utxos, 1)
	assert.Equal(t, uint64(5), utxos[0].Coin())
}

func TestGatewayOracleRecordNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"found": false})
	}))
	defer srv.Close()

	g := NewGateway(GatewayConfig{BaseURL: srv.URL})
	rec, err := g.OracleRecord(context.Background(), 9)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestGatewaySubmitPlan(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/tx/submit", r.URL.Path)
		var plan protocol.TxPlan
		require.NoError(t, json.NewDecoder(r.Body).Decode(&plan))
		require.Equal(t, uint64(400_000), plan.Fee)
		_ = json.NewEncoder(w).Encode(map[string]string{"txid": "deadbeef"})
	}))
	defer srv.Close()

	g := NewGateway(GatewayConfig{BaseURL: srv.URL})
	txid, err := g.SubmitPlan(context.Background(), &protocol.TxPlan{Fee: 400_000})
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", txid)
}

func TestGatewayServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(apiError{Code: "SCRIPT_FAILURE", Message: "validator rejected redemption"})
	}))
	defer srv.Close()

	g := NewGateway(GatewayConfig{BaseURL: srv.URL})
	_, err := g.SubmitPlan(context.Background(), &protocol.TxPlan{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validator rejected redemption")
}

func TestGatewayConnectionFailure(t *testing.T) {
	g := NewGateway(GatewayConfig{BaseURL: "http://127.0.0.1:1"})
	_, err := g.ListSpendable(context.Background(), "addr_a")
	assert.ErrorIs(t, err, ErrConnectionFailed)
}

func TestGatewayInvalidResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	g := NewGateway(GatewayConfig{BaseURL: srv.URL})
	_, err := g.ListSpendable(context.Background(), "addr_a")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
