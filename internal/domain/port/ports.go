package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Navin9820/super-app-QA-sub013/internal/domain/model"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/valueobject"
	"github.com/Navin9820/super-app-QA-sub013/pkg/events"
	"github.com/Navin9820/super-app-QA-sub013/pkg/money"
)

// PaymentRecordRepository defines persistence operations for payment records.
type PaymentRecordRepository interface {
	// Create persists a new payment record. Returns ErrDuplicateIntent if a
	// record already exists for the same gateway intent id.
	Create(ctx context.Context, rec model.PaymentRecord) error

	// FindByID retrieves a payment record by its unique identifier.
	// Returns ErrRecordNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (model.PaymentRecord, error)

	// FindByIntentID retrieves a payment record by gateway intent id.
	// Returns ErrUnknownIntent when absent.
	FindByIntentID(ctx context.Context, gatewayIntentID string) (model.PaymentRecord, error)

	// UpdateIfStatus writes rec only if the stored record's status still equals
	// expected (a conditional update at the storage layer). It reports whether
	// the write applied; false means another caller transitioned the record
	// first. This is the single arbiter of the capture race.
	UpdateIfStatus(ctx context.Context, rec model.PaymentRecord, expected valueobject.PaymentStatus) (bool, error)

	// ListByOwner returns payment records for an account with pagination.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]model.PaymentRecord, int, error)

	// ListUnsyncedCaptured returns captured records whose order-side mark-paid
	// has not been recorded, captured before the cutoff. Used by the
	// reconciliation sweep.
	ListUnsyncedCaptured(ctx context.Context, capturedBefore time.Time, limit int) ([]model.PaymentRecord, error)
}

// GatewayClient is the port to the external payment processor.
type GatewayClient interface {
	// CreateIntent reserves a payment at the gateway and returns its
	// gateway-assigned intent id. Transport failures and 5xx map to
	// ErrGatewayUnavailable, 4xx to ErrGatewayRejected.
	CreateIntent(ctx context.Context, amount money.Money, orderRef uuid.UUID, metadata map[string]string) (string, error)
}

// OrderAdapter knows how to mark one vertical's order aggregate as paid.
// MarkPaid must be idempotent: marking an already-paid order is a no-op,
// not an error.
type OrderAdapter interface {
	Domain() valueobject.OrderDomain
	MarkPaid(ctx context.Context, orderRef uuid.UUID) error
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, events ...events.DomainEvent) error
}

// PaymentCache is a read-through cache for serialized payment lookups.
// Implementations may be absent; use cases treat a nil cache as a miss on
// every read.
type PaymentCache interface {
	Get(ctx context.Context, id uuid.UUID) ([]byte, bool, error)
	Set(ctx context.Context, id uuid.UUID, payload []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, id uuid.UUID) error
}
