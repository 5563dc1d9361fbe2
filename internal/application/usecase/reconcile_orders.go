package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Navin9820/super-app-QA-sub013/internal/domain/port"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/service"
	"github.com/Navin9820/super-app-QA-sub013/pkg/observability"
)

// ReconcileOrders is the out-of-band repair sweep for the one asymmetric
// failure the confirm flow accepts: a committed capture whose order-side
// mark-paid did not land. It re-dispatches mark-paid for captured records
// that were never recorded as synced. Adapters are idempotent, so re-marking
// an order that was in fact updated is harmless.
type ReconcileOrders struct {
	paymentRepo port.PaymentRecordRepository
	dispatcher  *service.OrderDispatcher
	metrics     *observability.Metrics
	logger      *slog.Logger

	gracePeriod time.Duration
	batchSize   int
}

func NewReconcileOrders(
	paymentRepo port.PaymentRecordRepository,
	dispatcher *service.OrderDispatcher,
	metrics *observability.Metrics,
	logger *slog.Logger,
	gracePeriod time.Duration,
	batchSize int,
) *ReconcileOrders {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &ReconcileOrders{
		paymentRepo: paymentRepo,
		dispatcher:  dispatcher,
		metrics:     metrics,
		logger:      logger,
		gracePeriod: gracePeriod,
		batchSize:   batchSize,
	}
}

// Execute runs one sweep pass and returns how many records were repaired.
func (uc *ReconcileOrders) Execute(ctx context.Context) (int, error) {
	cutoff := time.Now().UTC().Add(-uc.gracePeriod)

	records, err := uc.paymentRepo.ListUnsyncedCaptured(ctx, cutoff, uc.batchSize)
	if err != nil {
		return 0, fmt.Errorf("list unsynced captures: %w", err)
	}

	repaired := 0
	for _, rec := range records {
		uc.metrics.SweepRetries.Inc()

		if err := uc.dispatcher.MarkPaid(ctx, rec.OrderDomain(), rec.OrderRef()); err != nil {
			uc.logger.Error("sweep mark-paid retry failed",
				"payment_id", rec.ID(),
				"order_domain", rec.OrderDomain().String(),
				"order_ref", rec.OrderRef(),
				"error", err,
			)
			continue
		}

		synced, err := rec.MarkOrderSynced(time.Now().UTC())
		if err != nil {
			continue
		}
		_, synced = synced.ClearDomainEvents()

		if _, err := uc.paymentRepo.UpdateIfStatus(ctx, synced, rec.Status()); err != nil {
			uc.logger.Warn("sweep failed to persist synced flag",
				"payment_id", rec.ID(), "error", err)
			continue
		}

		repaired++
		uc.logger.Info("sweep repaired order payment state",
			"payment_id", rec.ID(),
			"order_domain", rec.OrderDomain().String(),
			"order_ref", rec.OrderRef(),
		)
	}

	return repaired, nil
}

// Run executes the sweep on the given interval until ctx is cancelled.
func (uc *ReconcileOrders) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := uc.Execute(ctx); err != nil {
				uc.logger.Error("reconciliation sweep failed", "error", err)
			}
		}
	}
}
