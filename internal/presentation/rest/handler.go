package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Navin9820/super-app-QA-sub013/internal/application/dto"
	"github.com/Navin9820/super-app-QA-sub013/internal/application/usecase"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/port"
)

// PaymentHandler exposes the payment use cases over HTTP. The confirm
// endpoint and the webhook endpoint both run the same ConfirmPayment use
// case; the webhook merely adds event-type routing on top.
type PaymentHandler struct {
	createIntent   *usecase.CreateIntent
	confirmPayment *usecase.ConfirmPayment
	failPayment    *usecase.FailPayment
	refundPayment  *usecase.RefundPayment
	getPayment     *usecase.GetPayment
	listPayments   *usecase.ListPayments
	logger         *slog.Logger
}

func NewPaymentHandler(
	createIntent *usecase.CreateIntent,
	confirmPayment *usecase.ConfirmPayment,
	failPayment *usecase.FailPayment,
	refundPayment *usecase.RefundPayment,
	getPayment *usecase.GetPayment,
	listPayments *usecase.ListPayments,
	logger *slog.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		createIntent:   createIntent,
		confirmPayment: confirmPayment,
		failPayment:    failPayment,
		refundPayment:  refundPayment,
		getPayment:     getPayment,
		listPayments:   listPayments,
		logger:         logger,
	}
}

type createIntentBody struct {
	OwnerID     uuid.UUID `json:"owner_id"`
	OrderRef    uuid.UUID `json:"order_ref"`
	OrderDomain string    `json:"order_domain"`
	AmountMinor int64     `json:"amount_minor"`
	Currency    string    `json:"currency"`
	Method      string    `json:"method"`
}

func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var body createIntentBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.createIntent.Execute(r.Context(), dto.CreateIntentRequest{
		OwnerID:     body.OwnerID,
		OrderRef:    body.OrderRef,
		OrderDomain: body.OrderDomain,
		AmountMinor: body.AmountMinor,
		Currency:    body.Currency,
		Method:      body.Method,
	})
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

type confirmBody struct {
	IntentID  string `json:"intent_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

// Confirm handles the client-side "I completed payment" verify call.
func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var body confirmBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.confirmPayment.Execute(r.Context(), dto.ConfirmPaymentRequest{
		GatewayIntentID:  body.IntentID,
		GatewayPaymentID: body.PaymentID,
		Signature:        body.Signature,
	})
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

type webhookBody struct {
	Event     string `json:"event"`
	IntentID  string `json:"intent_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
	Reason    string `json:"reason,omitempty"`
}

// Webhook handles the gateway's asynchronous notifications. Capture events
// run the exact same confirm logic as the client verify call.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var body webhookBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch body.Event {
	case "payment.captured":
		resp, err := h.confirmPayment.Execute(r.Context(), dto.ConfirmPaymentRequest{
			GatewayIntentID:  body.IntentID,
			GatewayPaymentID: body.PaymentID,
			Signature:        body.Signature,
		})
		if err != nil {
			h.writeUsecaseError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	case "payment.failed":
		resp, err := h.failPayment.Execute(r.Context(), dto.FailPaymentRequest{
			GatewayIntentID:  body.IntentID,
			GatewayPaymentID: body.PaymentID,
			Signature:        body.Signature,
			Reason:           body.Reason,
		})
		if err != nil {
			h.writeUsecaseError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	default:
		writeError(w, http.StatusBadRequest, "unrecognized event type")
	}
}

type refundBody struct {
	Reason string `json:"reason"`
}

func (h *PaymentHandler) Refund(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid payment id")
		return
	}

	var body refundBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.refundPayment.Execute(r.Context(), dto.RefundPaymentRequest{
		PaymentID: id,
		Reason:    body.Reason,
	})
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid payment id")
		return
	}

	resp, err := h.getPayment.Execute(r.Context(), id)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(r.URL.Query().Get("owner_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "owner_id query parameter is required")
		return
	}

	resp, err := h.listPayments.Execute(r.Context(), dto.ListPaymentsRequest{
		OwnerID:  ownerID,
		PageSize: queryInt(r, "page_size"),
		Offset:   queryInt(r, "offset"),
	})
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// writeUsecaseError maps the error taxonomy onto HTTP statuses. A bad
// signature deliberately reads like "not confirmed yet" to the caller; the
// tampering detail stays in the server logs.
func (h *PaymentHandler) writeUsecaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, port.ErrInvalidSignature):
		writeError(w, http.StatusBadRequest, "payment not confirmed")
	case errors.Is(err, port.ErrUnknownIntent),
		errors.Is(err, port.ErrRecordNotFound),
		errors.Is(err, port.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, port.ErrDuplicateIntent):
		writeError(w, http.StatusConflict, "payment already exists for this intent")
	case errors.Is(err, port.ErrUnknownOrderDomain):
		writeError(w, http.StatusBadRequest, "unrecognized order domain")
	case errors.Is(err, port.ErrGatewayRejected):
		writeError(w, http.StatusUnprocessableEntity, "payment gateway rejected the request")
	case errors.Is(err, port.ErrGatewayUnavailable):
		writeError(w, http.StatusServiceUnavailable, "payment gateway unavailable, please retry")
	case errors.Is(err, port.ErrOrderUpdateFailed):
		// Payment is captured; the order side lags and the sweep will repair
		// it. Non-2xx so the gateway redelivers (absorbed as a duplicate).
		writeError(w, http.StatusInternalServerError, "payment captured, order update pending")
	default:
		h.logger.Error("unhandled request error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func queryInt(r *http.Request, name string) int {
	if v := r.URL.Query().Get(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
