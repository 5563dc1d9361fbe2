package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/Navin9820/super-app-QA-sub013/pkg/events"
)

const AggregateTypePaymentRecord = "PaymentRecord"

// PaymentIntentCreated is emitted when a new payment intent is registered.
type PaymentIntentCreated struct {
	events.BaseEvent
	PaymentID       uuid.UUID `json:"payment_id"`
	OwnerID         uuid.UUID `json:"owner_id"`
	OrderRef        uuid.UUID `json:"order_ref"`
	OrderDomain     string    `json:"order_domain"`
	GatewayIntentID string    `json:"gateway_intent_id"`
	AmountMinor     int64     `json:"amount_minor"`
	Currency        string    `json:"currency"`
	Method          string    `json:"method"`
}

func NewPaymentIntentCreated(paymentID, ownerID, orderRef uuid.UUID, orderDomain, gatewayIntentID string, amountMinor int64, currency, method string) PaymentIntentCreated {
	payload, _ := json.Marshal(struct {
		PaymentID       uuid.UUID `json:"payment_id"`
		OwnerID         uuid.UUID `json:"owner_id"`
		OrderRef        uuid.UUID `json:"order_ref"`
		OrderDomain     string    `json:"order_domain"`
		GatewayIntentID string    `json:"gateway_intent_id"`
		AmountMinor     int64     `json:"amount_minor"`
		Currency        string    `json:"currency"`
		Method          string    `json:"method"`
	}{paymentID, ownerID, orderRef, orderDomain, gatewayIntentID, amountMinor, currency, method})

	return PaymentIntentCreated{
		BaseEvent:       events.NewBaseEvent("payment.intent.created", paymentID, AggregateTypePaymentRecord, payload),
		PaymentID:       paymentID,
		OwnerID:         ownerID,
		OrderRef:        orderRef,
		OrderDomain:     orderDomain,
		GatewayIntentID: gatewayIntentID,
		AmountMinor:     amountMinor,
		Currency:        currency,
		Method:          method,
	}
}

// PaymentCaptured is emitted exactly once, by the confirmation call that wins
// the pending-to-captured race.
type PaymentCaptured struct {
	events.BaseEvent
	PaymentID        uuid.UUID `json:"payment_id"`
	OrderRef         uuid.UUID `json:"order_ref"`
	OrderDomain      string    `json:"order_domain"`
	GatewayIntentID  string    `json:"gateway_intent_id"`
	GatewayPaymentID string    `json:"gateway_payment_id"`
	CapturedAt       time.Time `json:"captured_at"`
}

func NewPaymentCaptured(paymentID, orderRef uuid.UUID, orderDomain, gatewayIntentID, gatewayPaymentID string, capturedAt time.Time) PaymentCaptured {
	payload, _ := json.Marshal(struct {
		PaymentID        uuid.UUID `json:"payment_id"`
		OrderRef         uuid.UUID `json:"order_ref"`
		OrderDomain      string    `json:"order_domain"`
		GatewayIntentID  string    `json:"gateway_intent_id"`
		GatewayPaymentID string    `json:"gateway_payment_id"`
		CapturedAt       time.Time `json:"captured_at"`
	}{paymentID, orderRef, orderDomain, gatewayIntentID, gatewayPaymentID, capturedAt})

	return PaymentCaptured{
		BaseEvent:        events.NewBaseEvent("payment.captured", paymentID, AggregateTypePaymentRecord, payload),
		PaymentID:        paymentID,
		OrderRef:         orderRef,
		OrderDomain:      orderDomain,
		GatewayIntentID:  gatewayIntentID,
		GatewayPaymentID: gatewayPaymentID,
		CapturedAt:       capturedAt,
	}
}

// PaymentFailed is emitted when a pending payment is reported failed by the gateway.
type PaymentFailed struct {
	events.BaseEvent
	PaymentID       uuid.UUID `json:"payment_id"`
	GatewayIntentID string    `json:"gateway_intent_id"`
	FailureReason   string    `json:"failure_reason"`
}

func NewPaymentFailed(paymentID uuid.UUID, gatewayIntentID, reason string) PaymentFailed {
	payload, _ := json.Marshal(struct {
		PaymentID       uuid.UUID `json:"payment_id"`
		GatewayIntentID string    `json:"gateway_intent_id"`
		FailureReason   string    `json:"failure_reason"`
	}{paymentID, gatewayIntentID, reason})

	return PaymentFailed{
		BaseEvent:       events.NewBaseEvent("payment.failed", paymentID, AggregateTypePaymentRecord, payload),
		PaymentID:       paymentID,
		GatewayIntentID: gatewayIntentID,
		FailureReason:   reason,
	}
}

// PaymentRefunded is emitted when a captured payment is refunded.
type PaymentRefunded struct {
	events.BaseEvent
	PaymentID       uuid.UUID `json:"payment_id"`
	GatewayIntentID string    `json:"gateway_intent_id"`
	Reason          string    `json:"reason"`
}

func NewPaymentRefunded(paymentID uuid.UUID, gatewayIntentID, reason string) PaymentRefunded {
	payload, _ := json.Marshal(struct {
		PaymentID       uuid.UUID `json:"payment_id"`
		GatewayIntentID string    `json:"gateway_intent_id"`
		Reason          string    `json:"reason"`
	}{paymentID, gatewayIntentID, reason})

	return PaymentRefunded{
		BaseEvent:       events.NewBaseEvent("payment.refunded", paymentID, AggregateTypePaymentRecord, payload),
		PaymentID:       paymentID,
		GatewayIntentID: gatewayIntentID,
		Reason:          reason,
	}
}
