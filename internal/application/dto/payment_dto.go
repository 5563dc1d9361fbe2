package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Navin9820/super-app-QA-sub013/internal/domain/model"
)

// CreateIntentRequest is the input DTO for creating a payment intent.
type CreateIntentRequest struct {
	OwnerID     uuid.UUID
	OrderRef    uuid.UUID
	OrderDomain string
	AmountMinor int64
	Currency    string
	Method      string
}

// ConfirmPaymentRequest is the input DTO for confirming a payment. It is the
// same for the client-initiated verify call and the gateway webhook.
type ConfirmPaymentRequest struct {
	GatewayIntentID  string
	GatewayPaymentID string
	Signature        string
}

// FailPaymentRequest is the input DTO for a gateway payment-failed callback.
type FailPaymentRequest struct {
	GatewayIntentID  string
	GatewayPaymentID string
	Signature        string
	Reason           string
}

// RefundPaymentRequest is the input DTO for refunding a captured payment.
type RefundPaymentRequest struct {
	PaymentID uuid.UUID
	Reason    string
}

// ListPaymentsRequest is the input DTO for listing an account's payments.
type ListPaymentsRequest struct {
	OwnerID  uuid.UUID
	PageSize int
	Offset   int
}

// ListPaymentsResponse is the output DTO for listing payments.
type ListPaymentsResponse struct {
	Payments   []PaymentRecordResponse
	TotalCount int
}

// PaymentRecordResponse is the output DTO for a payment record.
type PaymentRecordResponse struct {
	ID               uuid.UUID  `json:"id"`
	OwnerID          uuid.UUID  `json:"owner_id"`
	OrderRef         uuid.UUID  `json:"order_ref"`
	OrderDomain      string     `json:"order_domain"`
	GatewayIntentID  string     `json:"gateway_intent_id"`
	GatewayPaymentID string     `json:"gateway_payment_id,omitempty"`
	AmountMinor      int64      `json:"amount_minor"`
	Currency         string     `json:"currency"`
	Method           string     `json:"method"`
	Status           string     `json:"status"`
	FailureReason    string     `json:"failure_reason,omitempty"`
	CapturedAt       *time.Time `json:"captured_at,omitempty"`
	OrderSyncedAt    *time.Time `json:"order_synced_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// FromRecord maps a domain payment record to its response DTO.
func FromRecord(rec model.PaymentRecord) PaymentRecordResponse {
	return PaymentRecordResponse{
		ID:               rec.ID(),
		OwnerID:          rec.OwnerID(),
		OrderRef:         rec.OrderRef(),
		OrderDomain:      rec.OrderDomain().String(),
		GatewayIntentID:  rec.GatewayIntentID(),
		GatewayPaymentID: rec.GatewayPaymentID(),
		AmountMinor:      rec.Amount().MinorUnits(),
		Currency:         rec.Amount().Currency().Code(),
		Method:           rec.Method().String(),
		Status:           rec.Status().String(),
		FailureReason:    rec.FailureReason(),
		CapturedAt:       rec.CapturedAt(),
		OrderSyncedAt:    rec.OrderSyncedAt(),
		CreatedAt:        rec.CreatedAt(),
		UpdatedAt:        rec.UpdatedAt(),
	}
}
