package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Navin9820/super-app-QA-sub013/internal/domain/model"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/port"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/valueobject"
	"github.com/Navin9820/super-app-QA-sub013/internal/infrastructure/postgres"
	"github.com/Navin9820/super-app-QA-sub013/pkg/money"
	"github.com/Navin9820/super-app-QA-sub013/pkg/testutil"
)

func setupRepo(t *testing.T) (*postgres.PaymentRecordRepo, context.Context) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	t.Cleanup(func() { pc.Cleanup(t) })
	pc.RunMigrations(t, "migrations")

	return postgres.NewPaymentRecordRepo(pc.Pool), ctx
}

func newRecord(t *testing.T, intentID string) model.PaymentRecord {
	t.Helper()
	amount, err := money.FromMinorUnits(29900, "INR")
	require.NoError(t, err)
	rec, err := model.NewPaymentRecord(
		uuid.New(), uuid.New(), valueobject.DomainRetail, amount, valueobject.MethodUPI, intentID,
	)
	require.NoError(t, err)
	return rec
}

func TestPaymentRecordRepo_CreateAndFind(t *testing.T) {
	repo, ctx := setupRepo(t)

	rec := newRecord(t, "int_create_1")
	require.NoError(t, repo.Create(ctx, rec))

	byIntent, err := repo.FindByIntentID(ctx, "int_create_1")
	require.NoError(t, err)
	assert.Equal(t, rec.ID(), byIntent.ID())
	assert.Equal(t, valueobject.PaymentStatusPending, byIntent.Status())
	assert.Equal(t, int64(29900), byIntent.Amount().MinorUnits())

	byID, err := repo.FindByID(ctx, rec.ID())
	require.NoError(t, err)
	assert.Equal(t, "int_create_1", byID.GatewayIntentID())
}

func TestPaymentRecordRepo_DuplicateIntent(t *testing.T) {
	repo, ctx := setupRepo(t)

	require.NoError(t, repo.Create(ctx, newRecord(t, "int_dup")))

	err := repo.Create(ctx, newRecord(t, "int_dup"))
	assert.ErrorIs(t, err, port.ErrDuplicateIntent)
}

func TestPaymentRecordRepo_FindMisses(t *testing.T) {
	repo, ctx := setupRepo(t)

	_, err := repo.FindByIntentID(ctx, "int_ghost")
	assert.ErrorIs(t, err, port.ErrUnknownIntent)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, port.ErrRecordNotFound)
}

func TestPaymentRecordRepo_UpdateIfStatus(t *testing.T) {
	repo, ctx := setupRepo(t)

	rec := newRecord(t, "int_cas")
	require.NoError(t, repo.Create(ctx, rec))

	captured, err := rec.Capture("pay_1", time.Now().UTC())
	require.NoError(t, err)

	applied, err := repo.UpdateIfStatus(ctx, captured, valueobject.PaymentStatusPending)
	require.NoError(t, err)
	assert.True(t, applied)

	// The guard now misses: the stored status is CAPTURED, not PENDING.
	applied, err = repo.UpdateIfStatus(ctx, captured, valueobject.PaymentStatusPending)
	require.NoError(t, err)
	assert.False(t, applied)

	saved, err := repo.FindByIntentID(ctx, "int_cas")
	require.NoError(t, err)
	assert.Equal(t, valueobject.PaymentStatusCaptured, saved.Status())
	assert.Equal(t, "pay_1", saved.GatewayPaymentID())
	assert.NotNil(t, saved.CapturedAt())
}

func TestPaymentRecordRepo_ConcurrentConditionalUpdates(t *testing.T) {
	repo, ctx := setupRepo(t)

	rec := newRecord(t, "int_race")
	require.NoError(t, repo.Create(ctx, rec))

	const writers = 8
	var wg sync.WaitGroup
	wins := make(chan bool, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			captured, err := rec.Capture("pay_race", time.Now().UTC())
			if err != nil {
				return
			}
			applied, err := repo.UpdateIfStatus(ctx, captured, valueobject.PaymentStatusPending)
			if err != nil {
				t.Error(err)
				return
			}
			wins <- applied
		}()
	}
	wg.Wait()
	close(wins)

	applied := 0
	for won := range wins {
		if won {
			applied++
		}
	}
	assert.Equal(t, 1, applied, "exactly one concurrent capture must win")
}

func TestPaymentRecordRepo_ListByOwner(t *testing.T) {
	repo, ctx := setupRepo(t)

	amount, err := money.FromMinorUnits(5000, "INR")
	require.NoError(t, err)

	owner := uuid.New()
	for _, intentID := range []string{"int_own_1", "int_own_2", "int_own_3"} {
		rec, err := model.NewPaymentRecord(
			owner, uuid.New(), valueobject.DomainFood, amount, valueobject.MethodCard, intentID,
		)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, rec))
	}
	require.NoError(t, repo.Create(ctx, newRecord(t, "int_other")))

	records, total, err := repo.ListByOwner(ctx, owner, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, records, 2)

	records, total, err = repo.ListByOwner(ctx, owner, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, records, 1)
}

func TestPaymentRecordRepo_ListUnsyncedCaptured(t *testing.T) {
	repo, ctx := setupRepo(t)

	past := time.Now().UTC().Add(-10 * time.Minute)

	stale := newRecord(t, "int_unsynced")
	require.NoError(t, repo.Create(ctx, stale))
	captured, err := stale.Capture("pay_1", past)
	require.NoError(t, err)
	applied, err := repo.UpdateIfStatus(ctx, captured, valueobject.PaymentStatusPending)
	require.NoError(t, err)
	require.True(t, applied)

	fresh := newRecord(t, "int_recent")
	require.NoError(t, repo.Create(ctx, fresh))
	recentCapture, err := fresh.Capture("pay_2", time.Now().UTC())
	require.NoError(t, err)
	applied, err = repo.UpdateIfStatus(ctx, recentCapture, valueobject.PaymentStatusPending)
	require.NoError(t, err)
	require.True(t, applied)

	pending := newRecord(t, "int_still_pending")
	require.NoError(t, repo.Create(ctx, pending))

	cutoff := time.Now().UTC().Add(-2 * time.Minute)
	unsynced, err := repo.ListUnsyncedCaptured(ctx, cutoff, 50)
	require.NoError(t, err)

	require.Len(t, unsynced, 1)
	assert.Equal(t, "int_unsynced", unsynced[0].GatewayIntentID())

	// Marking it synced removes it from the next sweep's view.
	synced, err := unsynced[0].MarkOrderSynced(time.Now().UTC())
	require.NoError(t, err)
	applied, err = repo.UpdateIfStatus(ctx, synced, valueobject.PaymentStatusCaptured)
	require.NoError(t, err)
	require.True(t, applied)

	unsynced, err = repo.ListUnsyncedCaptured(ctx, cutoff, 50)
	require.NoError(t, err)
	assert.Empty(t, unsynced)
}
