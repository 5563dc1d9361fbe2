package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Navin9820/super-app-QA-sub013/internal/application/dto"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/port"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/valueobject"
)

// RefundPayment transitions a captured payment to REFUNDED. Refund is the
// only legal transition out of CAPTURED; any other starting status is
// rejected.
type RefundPayment struct {
	paymentRepo port.PaymentRecordRepository
	publisher   port.EventPublisher
	cache       port.PaymentCache // optional, may be nil
	logger      *slog.Logger
}

func NewRefundPayment(
	paymentRepo port.PaymentRecordRepository,
	publisher port.EventPublisher,
	cache port.PaymentCache,
	logger *slog.Logger,
) *RefundPayment {
	return &RefundPayment{
		paymentRepo: paymentRepo,
		publisher:   publisher,
		cache:       cache,
		logger:      logger,
	}
}

func (uc *RefundPayment) Execute(ctx context.Context, req dto.RefundPaymentRequest) (dto.PaymentRecordResponse, error) {
	rec, err := uc.paymentRepo.FindByID(ctx, req.PaymentID)
	if err != nil {
		return dto.PaymentRecordResponse{}, fmt.Errorf("load payment record: %w", err)
	}

	refunded, err := rec.Refund(req.Reason, time.Now().UTC())
	if err != nil {
		return dto.PaymentRecordResponse{}, fmt.Errorf("refund payment %s: %w", req.PaymentID, err)
	}

	applied, err := uc.paymentRepo.UpdateIfStatus(ctx, refunded, valueobject.PaymentStatusCaptured)
	if err != nil {
		return dto.PaymentRecordResponse{}, fmt.Errorf("apply refund: %w", err)
	}
	if !applied {
		return dto.PaymentRecordResponse{}, fmt.Errorf("refund payment %s: record is no longer CAPTURED", req.PaymentID)
	}

	if uc.cache != nil {
		if cerr := uc.cache.Invalidate(ctx, rec.ID()); cerr != nil {
			uc.logger.Warn("cache invalidation failed", "payment_id", rec.ID(), "error", cerr)
		}
	}

	if evts := refunded.DomainEvents(); len(evts) > 0 {
		if err := uc.publisher.Publish(ctx, TopicPayments, evts...); err != nil {
			uc.logger.Warn("publish refund events failed",
				"payment_id", req.PaymentID, "error", err)
		}
	}

	uc.logger.Info("payment refunded",
		"payment_id", req.PaymentID,
		"reason", req.Reason,
	)

	return dto.FromRecord(refunded), nil
}
