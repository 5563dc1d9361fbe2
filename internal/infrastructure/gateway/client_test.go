package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Navin9820/super-app-QA-sub013/internal/domain/port"
	"github.com/Navin9820/super-app-QA-sub013/internal/infrastructure/gateway"
	"github.com/Navin9820/super-app-QA-sub013/pkg/money"
)

func testAmount(t *testing.T) money.Money {
	t.Helper()
	amount, err := money.FromMinorUnits(29900, "INR")
	require.NoError(t, err)
	return amount
}

func TestClient_CreateIntent(t *testing.T) {
	orderRef := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key_test", user)
		assert.Equal(t, "secret_test", pass)

		var body struct {
			Amount   int64             `json:"amount"`
			Currency string            `json:"currency"`
			Receipt  string            `json:"receipt"`
			Notes    map[string]string `json:"notes"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(29900), body.Amount)
		assert.Equal(t, "INR", body.Currency)
		assert.Equal(t, orderRef.String(), body.Receipt)
		assert.Equal(t, "FOOD", body.Notes["order_domain"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "int_abc123"})
	}))
	defer srv.Close()

	c := gateway.NewClient(gateway.Config{
		BaseURL:   srv.URL,
		KeyID:     "key_test",
		KeySecret: "secret_test",
	})

	intentID, err := c.CreateIntent(context.Background(), testAmount(t), orderRef, map[string]string{
		"order_domain": "FOOD",
	})

	require.NoError(t, err)
	assert.Equal(t, "int_abc123", intentID)
}

func TestClient_CreateIntent_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "internal error", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := gateway.NewClient(gateway.Config{BaseURL: srv.URL})

	_, err := c.CreateIntent(context.Background(), testAmount(t), uuid.New(), nil)

	assert.ErrorIs(t, err, port.ErrGatewayUnavailable)
}

func TestClient_CreateIntent_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"amount exceeds maximum"}}`))
	}))
	defer srv.Close()

	c := gateway.NewClient(gateway.Config{BaseURL: srv.URL})

	_, err := c.CreateIntent(context.Background(), testAmount(t), uuid.New(), nil)

	require.ErrorIs(t, err, port.ErrGatewayRejected)
	assert.Contains(t, err.Error(), "amount exceeds maximum")
}

func TestClient_CreateIntent_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	c := gateway.NewClient(gateway.Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})

	_, err := c.CreateIntent(context.Background(), testAmount(t), uuid.New(), nil)

	assert.ErrorIs(t, err, port.ErrGatewayUnavailable)
}

func TestClient_CreateIntent_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":""}`))
	}))
	defer srv.Close()

	c := gateway.NewClient(gateway.Config{BaseURL: srv.URL})

	_, err := c.CreateIntent(context.Background(), testAmount(t), uuid.New(), nil)

	assert.ErrorIs(t, err, port.ErrGatewayUnavailable)
}
