package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Navin9820/super-app-QA-sub013/internal/application/dto"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/port"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/service"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/valueobject"
	"github.com/Navin9820/super-app-QA-sub013/pkg/observability"
)

// ConfirmPayment applies a gateway capture callback to the matching payment
// record, exactly once. Both callers of the confirm endpoint -- the client's
// "I completed payment" verify and the gateway's asynchronous webhook -- run
// this same use case and may race for the same intent; the repository's
// status-guarded update is the sole arbiter of which call captures.
//
// The losing call sees the record already terminal and returns it unchanged
// with no error: duplicate webhook delivery is not an error condition.
type ConfirmPayment struct {
	paymentRepo port.PaymentRecordRepository
	verifier    *service.SignatureVerifier
	dispatcher  *service.OrderDispatcher
	publisher   port.EventPublisher
	cache       port.PaymentCache // optional, may be nil
	metrics     *observability.Metrics
	logger      *slog.Logger
}

func NewConfirmPayment(
	paymentRepo port.PaymentRecordRepository,
	verifier *service.SignatureVerifier,
	dispatcher *service.OrderDispatcher,
	publisher port.EventPublisher,
	cache port.PaymentCache,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *ConfirmPayment {
	return &ConfirmPayment{
		paymentRepo: paymentRepo,
		verifier:    verifier,
		dispatcher:  dispatcher,
		publisher:   publisher,
		cache:       cache,
		metrics:     metrics,
		logger:      logger,
	}
}

func (uc *ConfirmPayment) Execute(ctx context.Context, req dto.ConfirmPaymentRequest) (dto.PaymentRecordResponse, error) {
	// Authenticity first: nothing is read or written on a bad signature.
	if !uc.verifier.Verify(req.GatewayIntentID, req.GatewayPaymentID, req.Signature) {
		uc.metrics.SignatureFailures.Inc()
		uc.logger.Warn("callback signature verification failed, possible tampering",
			"intent_id", req.GatewayIntentID,
			"gateway_payment_id", req.GatewayPaymentID,
		)
		return dto.PaymentRecordResponse{}, port.ErrInvalidSignature
	}

	rec, err := uc.paymentRepo.FindByIntentID(ctx, req.GatewayIntentID)
	if err != nil {
		if errors.Is(err, port.ErrUnknownIntent) {
			return dto.PaymentRecordResponse{}, fmt.Errorf("%w: %s", port.ErrUnknownIntent, req.GatewayIntentID)
		}
		return dto.PaymentRecordResponse{}, fmt.Errorf("load payment record: %w", err)
	}

	now := time.Now().UTC()

	captured, err := rec.Capture(req.GatewayPaymentID, now)
	if err != nil {
		// Already captured, failed, or refunded: benign duplicate.
		uc.metrics.DuplicateDeliveries.Inc()
		uc.logger.Info("duplicate confirmation absorbed",
			"intent_id", req.GatewayIntentID,
			"status", rec.Status().String(),
		)
		return dto.FromRecord(rec), nil
	}

	applied, err := uc.paymentRepo.UpdateIfStatus(ctx, captured, valueobject.PaymentStatusPending)
	if err != nil {
		return dto.PaymentRecordResponse{}, fmt.Errorf("apply capture: %w", err)
	}
	if !applied {
		// A concurrent confirmation won between our read and write. Reload and
		// report whatever state the winner left behind.
		uc.metrics.DuplicateDeliveries.Inc()
		current, findErr := uc.paymentRepo.FindByIntentID(ctx, req.GatewayIntentID)
		if findErr != nil {
			return dto.PaymentRecordResponse{}, fmt.Errorf("reload after lost capture race: %w", findErr)
		}
		uc.logger.Info("concurrent confirmation lost capture race",
			"intent_id", req.GatewayIntentID,
			"status", current.Status().String(),
		)
		return dto.FromRecord(current), nil
	}

	// This call won the race: the capture is committed and everything below
	// happens exactly once per intent.
	uc.metrics.PaymentsCaptured.Inc()
	uc.invalidateCache(ctx, captured.ID())

	if evts := captured.DomainEvents(); len(evts) > 0 {
		if err := uc.publisher.Publish(ctx, TopicPayments, evts...); err != nil {
			uc.logger.Warn("publish capture events failed",
				"intent_id", req.GatewayIntentID, "error", err)
		}
	}

	if err := uc.dispatcher.MarkPaid(ctx, captured.OrderDomain(), captured.OrderRef()); err != nil {
		// The capture is a committed financial fact and is not rolled back for
		// an order-side failure. The sweep retries the mark-paid later.
		uc.metrics.OrderUpdateFailures.Inc()
		uc.logger.Error("order update failed after capture",
			"intent_id", req.GatewayIntentID,
			"order_domain", captured.OrderDomain().String(),
			"order_ref", captured.OrderRef(),
			"error", err,
		)
		return dto.FromRecord(captured), fmt.Errorf("%w: %w", port.ErrOrderUpdateFailed, err)
	}

	if synced, syncErr := captured.MarkOrderSynced(now); syncErr == nil {
		_, synced = synced.ClearDomainEvents() // capture events were already published
		if _, saveErr := uc.paymentRepo.UpdateIfStatus(ctx, synced, valueobject.PaymentStatusCaptured); saveErr != nil {
			// Not fatal: adapters are idempotent, the sweep re-marks safely.
			uc.logger.Warn("persist order-synced flag failed",
				"intent_id", req.GatewayIntentID, "error", saveErr)
		} else {
			captured = synced
		}
	}

	uc.logger.Info("payment captured",
		"payment_id", captured.ID(),
		"intent_id", req.GatewayIntentID,
		"gateway_payment_id", req.GatewayPaymentID,
		"order_domain", captured.OrderDomain().String(),
	)

	return dto.FromRecord(captured), nil
}

// invalidateCache drops the cached read model for a record after capture.
// Best effort: a stale cache entry expires on its own TTL.
func (uc *ConfirmPayment) invalidateCache(ctx context.Context, id uuid.UUID) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, id); err != nil {
		uc.logger.Warn("cache invalidation failed", "payment_id", id, "error", err)
	}
}
