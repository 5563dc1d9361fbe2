package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Navin9820/super-app-QA-sub013/internal/application/dto"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/port"
)

const paymentCacheTTL = 30 * time.Second

// GetPayment retrieves a single payment record, read-through an optional
// cache. Cache failures degrade to repository reads.
type GetPayment struct {
	paymentRepo port.PaymentRecordRepository
	cache       port.PaymentCache // optional, may be nil
	logger      *slog.Logger
}

func NewGetPayment(paymentRepo port.PaymentRecordRepository, cache port.PaymentCache, logger *slog.Logger) *GetPayment {
	return &GetPayment{paymentRepo: paymentRepo, cache: cache, logger: logger}
}

func (uc *GetPayment) Execute(ctx context.Context, id uuid.UUID) (dto.PaymentRecordResponse, error) {
	if uc.cache != nil {
		if payload, ok, err := uc.cache.Get(ctx, id); err != nil {
			uc.logger.Warn("payment cache read failed", "payment_id", id, "error", err)
		} else if ok {
			var resp dto.PaymentRecordResponse
			if err := json.Unmarshal(payload, &resp); err == nil {
				return resp, nil
			}
		}
	}

	rec, err := uc.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return dto.PaymentRecordResponse{}, fmt.Errorf("find payment %s: %w", id, err)
	}

	resp := dto.FromRecord(rec)

	if uc.cache != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := uc.cache.Set(ctx, id, payload, paymentCacheTTL); err != nil {
				uc.logger.Warn("payment cache write failed", "payment_id", id, "error", err)
			}
		}
	}

	return resp, nil
}
