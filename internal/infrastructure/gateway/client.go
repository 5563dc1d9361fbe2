package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Navin9820/super-app-QA-sub013/internal/domain/port"
	"github.com/Navin9820/super-app-QA-sub013/pkg/money"
)

// Compile-time interface check.
var _ port.GatewayClient = (*Client)(nil)

// Client talks to the external payment processor's REST API. All calls are
// bounded by the configured timeout; a timeout or 5xx maps to
// ErrGatewayUnavailable and a 4xx to ErrGatewayRejected so the coordinator
// never has to inspect HTTP details.
type Client struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
}

type Config struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	Timeout   time.Duration
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type createIntentRequest struct {
	Amount   int64             `json:"amount"` // minor units
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type createIntentResponse struct {
	ID string `json:"id"`
}

type gatewayError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateIntent reserves the amount at the gateway and returns the
// gateway-assigned intent id.
func (c *Client) CreateIntent(ctx context.Context, amount money.Money, orderRef uuid.UUID, metadata map[string]string) (string, error) {
	body, err := json.Marshal(createIntentRequest{
		Amount:   amount.MinorUnits(),
		Currency: amount.Currency().Code(),
		Receipt:  orderRef.String(),
		Notes:    metadata,
	})
	if err != nil {
		return "", fmt.Errorf("marshal intent request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build intent request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", port.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", port.ErrGatewayUnavailable, err)
	}

	switch {
	case resp.StatusCode >= 500:
		return "", fmt.Errorf("%w: gateway returned %d", port.ErrGatewayUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		var gwErr gatewayError
		if err := json.Unmarshal(respBody, &gwErr); err == nil && gwErr.Error.Description != "" {
			return "", fmt.Errorf("%w: %s (%s)", port.ErrGatewayRejected, gwErr.Error.Description, gwErr.Error.Code)
		}
		return "", fmt.Errorf("%w: gateway returned %d", port.ErrGatewayRejected, resp.StatusCode)
	}

	var out createIntentResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", port.ErrGatewayUnavailable, err)
	}
	if out.ID == "" {
		return "", fmt.Errorf("%w: gateway response missing intent id", port.ErrGatewayUnavailable)
	}

	return out.ID, nil
}
