package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Navin9820/super-app-QA-sub013/internal/domain/model"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/port"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/valueobject"
	"github.com/Navin9820/super-app-QA-sub013/pkg/money"
	pgpkg "github.com/Navin9820/super-app-QA-sub013/pkg/postgres"
)

const uniqueViolation = "23505"

// Compile-time interface check.
var _ port.PaymentRecordRepository = (*PaymentRecordRepo)(nil)

// PaymentRecordRepo implements PaymentRecordRepository using PostgreSQL.
// The status-guarded UPDATE in UpdateIfStatus is the compare-and-swap
// primitive the coordinator relies on for race safety.
type PaymentRecordRepo struct {
	pool *pgxpool.Pool
}

func NewPaymentRecordRepo(pool *pgxpool.Pool) *PaymentRecordRepo {
	return &PaymentRecordRepo{pool: pool}
}

func (r *PaymentRecordRepo) Create(ctx context.Context, rec model.PaymentRecord) error {
	return pgpkg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO payment_records (
				id, owner_id, order_ref, order_domain,
				gateway_intent_id, gateway_payment_id,
				amount_minor, currency, method, status,
				failure_reason, captured_at, order_synced_at,
				version, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		`,
			rec.ID(), rec.OwnerID(), rec.OrderRef(), rec.OrderDomain().String(),
			rec.GatewayIntentID(), rec.GatewayPaymentID(),
			rec.Amount().MinorUnits(), rec.Amount().Currency().Code(), rec.Method().String(), rec.Status().String(),
			rec.FailureReason(), rec.CapturedAt(), rec.OrderSyncedAt(),
			rec.Version(), rec.CreatedAt(), rec.UpdatedAt(),
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return fmt.Errorf("%w: %s", port.ErrDuplicateIntent, rec.GatewayIntentID())
			}
			return fmt.Errorf("insert payment record: %w", err)
		}

		return insertOutbox(ctx, tx, rec)
	})
}

// UpdateIfStatus writes the record's mutable fields only when the stored
// status still equals expected. The row count tells the caller whether this
// write won; on a lost race nothing is written, including outbox events.
func (r *PaymentRecordRepo) UpdateIfStatus(ctx context.Context, rec model.PaymentRecord, expected valueobject.PaymentStatus) (bool, error) {
	var applied bool

	err := pgpkg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE payment_records SET
				status = $1,
				gateway_payment_id = $2,
				failure_reason = $3,
				captured_at = $4,
				order_synced_at = $5,
				version = $6,
				updated_at = $7
			WHERE gateway_intent_id = $8 AND status = $9
		`,
			rec.Status().String(),
			rec.GatewayPaymentID(),
			rec.FailureReason(),
			rec.CapturedAt(),
			rec.OrderSyncedAt(),
			rec.Version(),
			rec.UpdatedAt(),
			rec.GatewayIntentID(),
			expected.String(),
		)
		if err != nil {
			return fmt.Errorf("conditional update: %w", err)
		}

		applied = tag.RowsAffected() == 1
		if !applied {
			return nil
		}

		return insertOutbox(ctx, tx, rec)
	})
	if err != nil {
		return false, err
	}

	return applied, nil
}

func (r *PaymentRecordRepo) FindByID(ctx context.Context, id uuid.UUID) (model.PaymentRecord, error) {
	rec, err := r.findOne(ctx, `WHERE id = $1`, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.PaymentRecord{}, fmt.Errorf("%w: %s", port.ErrRecordNotFound, id)
	}
	return rec, err
}

func (r *PaymentRecordRepo) FindByIntentID(ctx context.Context, gatewayIntentID string) (model.PaymentRecord, error) {
	rec, err := r.findOne(ctx, `WHERE gateway_intent_id = $1`, gatewayIntentID)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.PaymentRecord{}, fmt.Errorf("%w: %s", port.ErrUnknownIntent, gatewayIntentID)
	}
	return rec, err
}

const selectColumns = `
	SELECT id, owner_id, order_ref, order_domain,
		gateway_intent_id, gateway_payment_id,
		amount_minor, currency, method, status,
		failure_reason, captured_at, order_synced_at,
		version, created_at, updated_at
	FROM payment_records
`

func (r *PaymentRecordRepo) findOne(ctx context.Context, where string, arg any) (model.PaymentRecord, error) {
	row := r.pool.QueryRow(ctx, selectColumns+where, arg)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.PaymentRecord{}, err
		}
		return model.PaymentRecord{}, fmt.Errorf("query payment record: %w", err)
	}
	return rec, nil
}

func (r *PaymentRecordRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]model.PaymentRecord, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM payment_records WHERE owner_id = $1
	`, ownerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count payment records: %w", err)
	}

	rows, err := r.pool.Query(ctx, selectColumns+`
		WHERE owner_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`, ownerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query payment records: %w", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *PaymentRecordRepo) ListUnsyncedCaptured(ctx context.Context, capturedBefore time.Time, limit int) ([]model.PaymentRecord, error) {
	rows, err := r.pool.Query(ctx, selectColumns+`
		WHERE status = $1 AND order_synced_at IS NULL AND captured_at < $2
		ORDER BY captured_at
		LIMIT $3
	`, valueobject.PaymentStatusCaptured.String(), capturedBefore, limit)
	if err != nil {
		return nil, fmt.Errorf("query unsynced captures: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows pgx.Rows) ([]model.PaymentRecord, error) {
	var records []model.PaymentRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment records: %w", err)
	}
	return records, nil
}

func scanRecord(row pgx.Row) (model.PaymentRecord, error) {
	var (
		id, ownerID, orderRef          uuid.UUID
		domainStr, intentID, paymentID string
		amountMinor                    int64
		currency, methodStr, statusStr string
		failureReason                  string
		capturedAt, orderSyncedAt      *time.Time
		version                        int
		createdAt, updatedAt           time.Time
	)

	if err := row.Scan(
		&id, &ownerID, &orderRef, &domainStr,
		&intentID, &paymentID,
		&amountMinor, &currency, &methodStr, &statusStr,
		&failureReason, &capturedAt, &orderSyncedAt,
		&version, &createdAt, &updatedAt,
	); err != nil {
		return model.PaymentRecord{}, err
	}

	domain, _ := valueobject.NewOrderDomain(domainStr)
	method, _ := valueobject.NewPaymentMethod(methodStr)
	status, _ := valueobject.NewPaymentStatus(statusStr)
	amount, _ := money.FromMinorUnits(amountMinor, currency)

	return model.Reconstruct(
		id, ownerID, orderRef, domain,
		intentID, paymentID,
		amount, method, status,
		failureReason, capturedAt, orderSyncedAt,
		version, createdAt, updatedAt,
	), nil
}

func insertOutbox(ctx context.Context, tx pgx.Tx, rec model.PaymentRecord) error {
	for _, evt := range rec.DomainEvents() {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal outbox event: %w", err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO outbox (id, aggregate_id, aggregate_type, event_type, payload, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING
		`, evt.EventID(), evt.AggregateID(), evt.AggregateType(), evt.EventType(), payload, evt.OccurredAt()); err != nil {
			return fmt.Errorf("insert outbox event: %w", err)
		}
	}
	return nil
}
