// Copyright (c) 2026 The betchain developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/betchainorg/libbetchain-go/protocol"
)

// GatewayConfig configures the HTTP gateway client.
type GatewayConfig struct {
	BaseURL string
	APIKey  string        // sent as Authorization: Bearer when non-empty
	Timeout time.Duration // zero means 30s
}

// Gateway is an HTTP client for a remote ledger service that owns wallet
// signing, transaction encoding, and submission. It maintains a
// connection pool for efficient reuse.
type Gateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewGateway creates a gateway client from the given configuration.
func NewGateway(cfg GatewayConfig) *Gateway {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Gateway{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
	}
}

// apiError is the error body returned by the gateway service.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// do sends a JSON POST to path and decodes the response into result.
// It returns ErrConnectionFailed if the request fails in transit and
// ErrInvalidResponse if the body cannot be decoded. Service-level errors
// are returned as plain errors with the server's message.
func (g *Gateway) do(ctx context.Context, path string, body, result any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("provider: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("provider: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: read body: %w", ErrInvalidResponse, err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("provider: gateway %s: %s", apiErr.Code, apiErr.Message)
		}
		return fmt.Errorf("provider: gateway returned status %d", resp.StatusCode)
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return nil
}

// ListSpendable implements LedgerService.
func (g *Gateway) ListSpendable(ctx context.Context, address string) ([]*protocol.UTXO, error) {
	var out struct {
		UTXOs []*protocol.UTXO `json:"utxos"`
	}
	err := g.do(ctx, "/v1/utxos/list", map[string]string{"address": address}, &out)
	if err != nil {
		return nil, err
	}
	return out.UTXOs, nil
}

// OracleRecord implements LedgerService. A 404-style "not found" from
// the service is mapped to (nil, nil).
func (g *Gateway) OracleRecord(ctx context.Context, gameID int64) (*protocol.OracleRecord, error) {
	var out struct {
		Found  bool                   `json:"found"`
		Record *protocol.OracleRecord `json:"record"`
	}
	err := g.do(ctx, "/v1/oracle/record", map[string]int64{"game_id": gameID}, &out)
	if err != nil {
		return nil, err
	}
	if !out.Found {
		return nil, nil
	}
	return out.Record, nil
}

// SubmitPlan implements LedgerService.
func (g *Gateway) SubmitPlan(ctx context.Context, plan *protocol.TxPlan) (string, error) {
	var out struct {
		TxID string `json:"txid"`
	}
	if err := g.do(ctx, "/v1/tx/submit", plan, &out); err != nil {
		return "", err
	}
	if out.TxID == "" {
		return "", fmt.Errorf("%w: submit returned no txid", ErrInvalidResponse)
	}
	return out.TxID, nil
}
