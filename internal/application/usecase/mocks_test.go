package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/Navin9820/super-app-QA-sub013/internal/domain/model"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/port"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/service"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/valueobject"
	"github.com/Navin9820/super-app-QA-sub013/pkg/events"
	"github.com/Navin9820/super-app-QA-sub013/pkg/money"
	"github.com/Navin9820/super-app-QA-sub013/pkg/observability"
)

// mockPaymentRepo is an in-memory PaymentRecordRepository. Its default
// behavior mirrors the postgres implementation, including the conditional
// status-guarded update, so race-oriented tests exercise the same arbiter
// the production store provides. Individual methods can be overridden with
// closures for error injection.
type mockPaymentRepo struct {
	mu      sync.Mutex
	records map[string]model.PaymentRecord // keyed by gateway intent id

	createFn               func(ctx context.Context, rec model.PaymentRecord) error
	findByIDFn             func(ctx context.Context, id uuid.UUID) (model.PaymentRecord, error)
	findByIntentIDFn       func(ctx context.Context, gatewayIntentID string) (model.PaymentRecord, error)
	updateIfStatusFn       func(ctx context.Context, rec model.PaymentRecord, expected valueobject.PaymentStatus) (bool, error)
	listByOwnerFn          func(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]model.PaymentRecord, int, error)
	listUnsyncedCapturedFn func(ctx context.Context, capturedBefore time.Time, limit int) ([]model.PaymentRecord, error)
}

var _ port.PaymentRecordRepository = (*mockPaymentRepo)(nil)

func newMockPaymentRepo() *mockPaymentRepo {
	return &mockPaymentRepo{records: make(map[string]model.PaymentRecord)}
}

func (m *mockPaymentRepo) seed(rec model.PaymentRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[rec.GatewayIntentID()] = rec
}

func (m *mockPaymentRepo) get(gatewayIntentID string) (model.PaymentRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[gatewayIntentID]
	return rec, ok
}

func (m *mockPaymentRepo) Create(ctx context.Context, rec model.PaymentRecord) error {
	if m.createFn != nil {
		return m.createFn(ctx, rec)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.records[rec.GatewayIntentID()]; exists {
		return port.ErrDuplicateIntent
	}
	m.records[rec.GatewayIntentID()] = rec
	return nil
}

func (m *mockPaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (model.PaymentRecord, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.records {
		if rec.ID() == id {
			return rec, nil
		}
	}
	return model.PaymentRecord{}, port.ErrRecordNotFound
}

func (m *mockPaymentRepo) FindByIntentID(ctx context.Context, gatewayIntentID string) (model.PaymentRecord, error) {
	if m.findByIntentIDFn != nil {
		return m.findByIntentIDFn(ctx, gatewayIntentID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[gatewayIntentID]
	if !ok {
		return model.PaymentRecord{}, port.ErrUnknownIntent
	}
	return rec, nil
}

func (m *mockPaymentRepo) UpdateIfStatus(ctx context.Context, rec model.PaymentRecord, expected valueobject.PaymentStatus) (bool, error) {
	if m.updateIfStatusFn != nil {
		return m.updateIfStatusFn(ctx, rec, expected)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.records[rec.GatewayIntentID()]
	if !ok || current.Status() != expected {
		return false, nil
	}
	m.records[rec.GatewayIntentID()] = rec
	return true, nil
}

func (m *mockPaymentRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]model.PaymentRecord, int, error) {
	if m.listByOwnerFn != nil {
		return m.listByOwnerFn(ctx, ownerID, limit, offset)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var owned []model.PaymentRecord
	for _, rec := range m.records {
		if rec.OwnerID() == ownerID {
			owned = append(owned, rec)
		}
	}
	total := len(owned)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return owned[offset:end], total, nil
}

func (m *mockPaymentRepo) ListUnsyncedCaptured(ctx context.Context, capturedBefore time.Time, limit int) ([]model.PaymentRecord, error) {
	if m.listUnsyncedCapturedFn != nil {
		return m.listUnsyncedCapturedFn(ctx, capturedBefore, limit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.PaymentRecord
	for _, rec := range m.records {
		if rec.Status() != valueobject.PaymentStatusCaptured || rec.OrderSyncedAt() != nil {
			continue
		}
		if rec.CapturedAt() == nil || !rec.CapturedAt().Before(capturedBefore) {
			continue
		}
		out = append(out, rec)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type mockGatewayClient struct {
	createIntentFn func(ctx context.Context, amount money.Money, orderRef uuid.UUID, metadata map[string]string) (string, error)

	mu    sync.Mutex
	calls int
}

var _ port.GatewayClient = (*mockGatewayClient)(nil)

func (m *mockGatewayClient) CreateIntent(ctx context.Context, amount money.Money, orderRef uuid.UUID, metadata map[string]string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.createIntentFn != nil {
		return m.createIntentFn(ctx, amount, orderRef, metadata)
	}
	return "int_mock_1", nil
}

func (m *mockGatewayClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockOrderAdapter struct {
	domain     valueobject.OrderDomain
	markPaidFn func(ctx context.Context, orderRef uuid.UUID) error

	mu    sync.Mutex
	calls []uuid.UUID
}

var _ port.OrderAdapter = (*mockOrderAdapter)(nil)

func (m *mockOrderAdapter) Domain() valueobject.OrderDomain { return m.domain }

func (m *mockOrderAdapter) MarkPaid(ctx context.Context, orderRef uuid.UUID) error {
	m.mu.Lock()
	m.calls = append(m.calls, orderRef)
	m.mu.Unlock()
	if m.markPaidFn != nil {
		return m.markPaidFn(ctx, orderRef)
	}
	return nil
}

func (m *mockOrderAdapter) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

type mockEventPublisher struct {
	publishFn func(ctx context.Context, topic string, evts ...events.DomainEvent) error

	mu        sync.Mutex
	published []events.DomainEvent
}

var _ port.EventPublisher = (*mockEventPublisher)(nil)

func (m *mockEventPublisher) Publish(ctx context.Context, topic string, evts ...events.DomainEvent) error {
	if m.publishFn != nil {
		return m.publishFn(ctx, topic, evts...)
	}
	m.mu.Lock()
	m.published = append(m.published, evts...)
	m.mu.Unlock()
	return nil
}

func (m *mockEventPublisher) publishedTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, 0, len(m.published))
	for _, evt := range m.published {
		types = append(types, evt.EventType())
	}
	return types
}

type mockPaymentCache struct {
	getFn        func(ctx context.Context, id uuid.UUID) ([]byte, bool, error)
	setFn        func(ctx context.Context, id uuid.UUID, payload []byte, ttl time.Duration) error
	invalidateFn func(ctx context.Context, id uuid.UUID) error

	mu    sync.Mutex
	store map[uuid.UUID][]byte
}

var _ port.PaymentCache = (*mockPaymentCache)(nil)

func newMockPaymentCache() *mockPaymentCache {
	return &mockPaymentCache{store: make(map[uuid.UUID][]byte)}
}

func (m *mockPaymentCache) Get(ctx context.Context, id uuid.UUID) ([]byte, bool, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	payload, ok := m.store[id]
	return payload, ok, nil
}

func (m *mockPaymentCache) Set(ctx context.Context, id uuid.UUID, payload []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, id, payload, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[id] = payload
	return nil
}

func (m *mockPaymentCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	if m.invalidateFn != nil {
		return m.invalidateFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, id)
	return nil
}

var testWebhookSecret = []byte("test-webhook-secret")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMetrics() *observability.Metrics {
	return observability.NewMetrics(prometheus.NewRegistry())
}

func testVerifier() *service.SignatureVerifier {
	return service.NewSignatureVerifier(testWebhookSecret)
}

// newPendingRecord builds a PENDING record for the given intent id with the
// intent-created event cleared, the shape a repository read would return.
func newPendingRecord(t *testing.T, intentID string, domain valueobject.OrderDomain) model.PaymentRecord {
	t.Helper()

	amount, err := money.FromMinorUnits(29900, "INR")
	require.NoError(t, err)

	rec, err := model.NewPaymentRecord(
		uuid.New(), uuid.New(), domain, amount, valueobject.MethodUPI, intentID,
	)
	require.NoError(t, err)

	_, rec = rec.ClearDomainEvents()
	return rec
}
