package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Navin9820/super-app-QA-sub013/internal/application/dto"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/port"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/service"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/valueobject"
	"github.com/Navin9820/super-app-QA-sub013/pkg/observability"
)

// FailPayment applies a gateway payment-failed callback: a signature-gated,
// status-guarded PENDING -> FAILED transition. Duplicate deliveries and
// failed callbacks arriving after a capture are absorbed without error, the
// same way ConfirmPayment absorbs duplicate captures.
type FailPayment struct {
	paymentRepo port.PaymentRecordRepository
	verifier    *service.SignatureVerifier
	publisher   port.EventPublisher
	metrics     *observability.Metrics
	logger      *slog.Logger
}

func NewFailPayment(
	paymentRepo port.PaymentRecordRepository,
	verifier *service.SignatureVerifier,
	publisher port.EventPublisher,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *FailPayment {
	return &FailPayment{
		paymentRepo: paymentRepo,
		verifier:    verifier,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
	}
}

func (uc *FailPayment) Execute(ctx context.Context, req dto.FailPaymentRequest) (dto.PaymentRecordResponse, error) {
	if !uc.verifier.Verify(req.GatewayIntentID, req.GatewayPaymentID, req.Signature) {
		uc.metrics.SignatureFailures.Inc()
		uc.logger.Warn("failure callback signature verification failed",
			"intent_id", req.GatewayIntentID)
		return dto.PaymentRecordResponse{}, port.ErrInvalidSignature
	}

	rec, err := uc.paymentRepo.FindByIntentID(ctx, req.GatewayIntentID)
	if err != nil {
		if errors.Is(err, port.ErrUnknownIntent) {
			return dto.PaymentRecordResponse{}, fmt.Errorf("%w: %s", port.ErrUnknownIntent, req.GatewayIntentID)
		}
		return dto.PaymentRecordResponse{}, fmt.Errorf("load payment record: %w", err)
	}

	failed, err := rec.Fail(req.Reason, time.Now().UTC())
	if err != nil {
		// Already terminal, or already captured: the capture wins.
		uc.metrics.DuplicateDeliveries.Inc()
		return dto.FromRecord(rec), nil
	}

	applied, err := uc.paymentRepo.UpdateIfStatus(ctx, failed, valueobject.PaymentStatusPending)
	if err != nil {
		return dto.PaymentRecordResponse{}, fmt.Errorf("apply failure: %w", err)
	}
	if !applied {
		uc.metrics.DuplicateDeliveries.Inc()
		current, findErr := uc.paymentRepo.FindByIntentID(ctx, req.GatewayIntentID)
		if findErr != nil {
			return dto.PaymentRecordResponse{}, fmt.Errorf("reload after lost failure race: %w", findErr)
		}
		return dto.FromRecord(current), nil
	}

	if evts := failed.DomainEvents(); len(evts) > 0 {
		if err := uc.publisher.Publish(ctx, TopicPayments, evts...); err != nil {
			uc.logger.Warn("publish failure events failed",
				"intent_id", req.GatewayIntentID, "error", err)
		}
	}

	uc.logger.Info("payment marked failed",
		"payment_id", failed.ID(),
		"intent_id", req.GatewayIntentID,
		"reason", req.Reason,
	)

	return dto.FromRecord(failed), nil
}
