package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Navin9820/super-app-QA-sub013/internal/domain/event"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/valueobject"
	"github.com/Navin9820/super-app-QA-sub013/pkg/events"
	"github.com/Navin9820/super-app-QA-sub013/pkg/money"
)

// PaymentRecord is the root aggregate for the payment bounded context.
// It tracks one payment attempt against the external gateway, from intent
// creation through capture (or failure) and refund. A record is never
// deleted; terminal records remain as the audit trail.
type PaymentRecord struct {
	id               uuid.UUID
	ownerID          uuid.UUID
	orderRef         uuid.UUID
	orderDomain      valueobject.OrderDomain
	gatewayIntentID  string
	gatewayPaymentID string // empty until capture
	amount           money.Money
	method           valueobject.PaymentMethod
	status           valueobject.PaymentStatus
	failureReason    string
	capturedAt       *time.Time
	orderSyncedAt    *time.Time // when the order-side mark-paid was applied
	version          int
	createdAt        time.Time
	updatedAt        time.Time
	domainEvents     []events.DomainEvent
}

// NewPaymentRecord creates a new payment record in PENDING status for a
// gateway intent that was just created.
func NewPaymentRecord(
	ownerID uuid.UUID,
	orderRef uuid.UUID,
	orderDomain valueobject.OrderDomain,
	amount money.Money,
	method valueobject.PaymentMethod,
	gatewayIntentID string,
) (PaymentRecord, error) {
	if ownerID == uuid.Nil {
		return PaymentRecord{}, fmt.Errorf("owner ID is required")
	}
	if orderRef == uuid.Nil {
		return PaymentRecord{}, fmt.Errorf("order reference is required")
	}
	if orderDomain.IsZero() {
		return PaymentRecord{}, fmt.Errorf("order domain is required")
	}
	if !amount.IsPositive() {
		return PaymentRecord{}, fmt.Errorf("amount must be positive, got: %s", amount.String())
	}
	if method.IsZero() {
		return PaymentRecord{}, fmt.Errorf("payment method is required")
	}
	if gatewayIntentID == "" {
		return PaymentRecord{}, fmt.Errorf("gateway intent ID is required")
	}

	now := time.Now().UTC()
	id := uuid.New()

	rec := PaymentRecord{
		id:              id,
		ownerID:         ownerID,
		orderRef:        orderRef,
		orderDomain:     orderDomain,
		gatewayIntentID: gatewayIntentID,
		amount:          amount,
		method:          method,
		status:          valueobject.PaymentStatusPending,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}

	rec.domainEvents = append(rec.domainEvents,
		event.NewPaymentIntentCreated(
			id, ownerID, orderRef, orderDomain.String(), gatewayIntentID,
			amount.MinorUnits(), amount.Currency().Code(), method.String(),
		),
	)

	return rec, nil
}

// Reconstruct recreates a PaymentRecord from persistence (no validation, no events).
func Reconstruct(
	id, ownerID, orderRef uuid.UUID,
	orderDomain valueobject.OrderDomain,
	gatewayIntentID, gatewayPaymentID string,
	amount money.Money,
	method valueobject.PaymentMethod,
	status valueobject.PaymentStatus,
	failureReason string,
	capturedAt, orderSyncedAt *time.Time,
	version int,
	createdAt, updatedAt time.Time,
) PaymentRecord {
	return PaymentRecord{
		id:               id,
		ownerID:          ownerID,
		orderRef:         orderRef,
		orderDomain:      orderDomain,
		gatewayIntentID:  gatewayIntentID,
		gatewayPaymentID: gatewayPaymentID,
		amount:           amount,
		method:           method,
		status:           status,
		failureReason:    failureReason,
		capturedAt:       capturedAt,
		orderSyncedAt:    orderSyncedAt,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// Capture transitions the record from PENDING to CAPTURED (immutable - returns new copy).
// The storage layer's conditional write decides which caller's copy is actually applied.
func (pr PaymentRecord) Capture(gatewayPaymentID string, now time.Time) (PaymentRecord, error) {
	if gatewayPaymentID == "" {
		return PaymentRecord{}, fmt.Errorf("gateway payment ID is required")
	}
	if pr.status != valueobject.PaymentStatusPending {
		return PaymentRecord{}, fmt.Errorf("can only capture from PENDING status, current: %s", pr.status.String())
	}

	updated := pr
	updated.status = valueobject.PaymentStatusCaptured
	updated.gatewayPaymentID = gatewayPaymentID
	updated.capturedAt = &now
	updated.updatedAt = now
	updated.version++
	updated.domainEvents = append([]events.DomainEvent{}, pr.domainEvents...)
	updated.domainEvents = append(updated.domainEvents,
		event.NewPaymentCaptured(pr.id, pr.orderRef, pr.orderDomain.String(), pr.gatewayIntentID, gatewayPaymentID, now),
	)
	return updated, nil
}

// Fail transitions the record from PENDING to FAILED (immutable - returns new copy).
func (pr PaymentRecord) Fail(reason string, now time.Time) (PaymentRecord, error) {
	if pr.status != valueobject.PaymentStatusPending {
		return PaymentRecord{}, fmt.Errorf("can only fail from PENDING status, current: %s", pr.status.String())
	}

	updated := pr
	updated.status = valueobject.PaymentStatusFailed
	updated.failureReason = reason
	updated.updatedAt = now
	updated.version++
	updated.domainEvents = append([]events.DomainEvent{}, pr.domainEvents...)
	updated.domainEvents = append(updated.domainEvents,
		event.NewPaymentFailed(pr.id, pr.gatewayIntentID, reason),
	)
	return updated, nil
}

// Refund transitions the record from CAPTURED to REFUNDED (immutable - returns new copy).
func (pr PaymentRecord) Refund(reason string, now time.Time) (PaymentRecord, error) {
	if pr.status != valueobject.PaymentStatusCaptured {
		return PaymentRecord{}, fmt.Errorf("can only refund from CAPTURED status, current: %s", pr.status.String())
	}

	updated := pr
	updated.status = valueobject.PaymentStatusRefunded
	updated.failureReason = reason
	updated.updatedAt = now
	updated.version++
	updated.domainEvents = append([]events.DomainEvent{}, pr.domainEvents...)
	updated.domainEvents = append(updated.domainEvents,
		event.NewPaymentRefunded(pr.id, pr.gatewayIntentID, reason),
	)
	return updated, nil
}

// MarkOrderSynced records that the order-side mark-paid has been applied for
// this capture (immutable - returns new copy). The reconciliation sweep picks
// up captured records where this has not happened yet.
func (pr PaymentRecord) MarkOrderSynced(now time.Time) (PaymentRecord, error) {
	if pr.status != valueobject.PaymentStatusCaptured && pr.status != valueobject.PaymentStatusRefunded {
		return PaymentRecord{}, fmt.Errorf("can only mark order synced after capture, current: %s", pr.status.String())
	}
	if pr.orderSyncedAt != nil {
		return pr, nil
	}

	updated := pr
	updated.orderSyncedAt = &now
	updated.updatedAt = now
	updated.version++
	updated.domainEvents = append([]events.DomainEvent{}, pr.domainEvents...)
	return updated, nil
}

// Accessors

func (pr PaymentRecord) ID() uuid.UUID                          { return pr.id }
func (pr PaymentRecord) OwnerID() uuid.UUID                     { return pr.ownerID }
func (pr PaymentRecord) OrderRef() uuid.UUID                    { return pr.orderRef }
func (pr PaymentRecord) OrderDomain() valueobject.OrderDomain   { return pr.orderDomain }
func (pr PaymentRecord) GatewayIntentID() string                { return pr.gatewayIntentID }
func (pr PaymentRecord) GatewayPaymentID() string               { return pr.gatewayPaymentID }
func (pr PaymentRecord) Amount() money.Money                    { return pr.amount }
func (pr PaymentRecord) Method() valueobject.PaymentMethod      { return pr.method }
func (pr PaymentRecord) Status() valueobject.PaymentStatus      { return pr.status }
func (pr PaymentRecord) FailureReason() string                  { return pr.failureReason }
func (pr PaymentRecord) CapturedAt() *time.Time                 { return pr.capturedAt }
func (pr PaymentRecord) OrderSyncedAt() *time.Time              { return pr.orderSyncedAt }
func (pr PaymentRecord) Version() int                           { return pr.version }
func (pr PaymentRecord) CreatedAt() time.Time                   { return pr.createdAt }
func (pr PaymentRecord) UpdatedAt() time.Time                   { return pr.updatedAt }
func (pr PaymentRecord) DomainEvents() []events.DomainEvent     { return pr.domainEvents }

// ClearDomainEvents returns the collected domain events and a new PaymentRecord
// with events cleared.
func (pr PaymentRecord) ClearDomainEvents() ([]events.DomainEvent, PaymentRecord) {
	evts := pr.domainEvents
	pr.domainEvents = nil
	return evts, pr
}
