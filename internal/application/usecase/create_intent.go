package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Navin9820/super-app-QA-sub013/internal/application/dto"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/model"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/port"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/service"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/valueobject"
	"github.com/Navin9820/super-app-QA-sub013/pkg/money"
	"github.com/Navin9820/super-app-QA-sub013/pkg/observability"
)

// TopicPayments is the Kafka topic carrying payment domain events.
const TopicPayments = "superapp.payments"

// CreateIntent creates a gateway payment intent and the local PENDING record
// tracking it. Input is validated before the gateway is called, so an
// unrecognized domain never reaches the gateway; a gateway timeout leaves no
// local record behind.
type CreateIntent struct {
	paymentRepo port.PaymentRecordRepository
	gateway     port.GatewayClient
	dispatcher  *service.OrderDispatcher
	publisher   port.EventPublisher
	metrics     *observability.Metrics
	logger      *slog.Logger
}

func NewCreateIntent(
	paymentRepo port.PaymentRecordRepository,
	gateway port.GatewayClient,
	dispatcher *service.OrderDispatcher,
	publisher port.EventPublisher,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *CreateIntent {
	return &CreateIntent{
		paymentRepo: paymentRepo,
		gateway:     gateway,
		dispatcher:  dispatcher,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
	}
}

func (uc *CreateIntent) Execute(ctx context.Context, req dto.CreateIntentRequest) (dto.PaymentRecordResponse, error) {
	domain, err := valueobject.NewOrderDomain(req.OrderDomain)
	if err != nil {
		return dto.PaymentRecordResponse{}, fmt.Errorf("%w: %q", port.ErrUnknownOrderDomain, req.OrderDomain)
	}
	if !uc.dispatcher.Supports(domain) {
		return dto.PaymentRecordResponse{}, fmt.Errorf("%w: %s has no registered adapter", port.ErrUnknownOrderDomain, domain)
	}

	method, err := valueobject.NewPaymentMethod(req.Method)
	if err != nil {
		return dto.PaymentRecordResponse{}, fmt.Errorf("invalid payment method: %w", err)
	}

	amount, err := money.FromMinorUnits(req.AmountMinor, req.Currency)
	if err != nil {
		return dto.PaymentRecordResponse{}, fmt.Errorf("invalid amount: %w", err)
	}
	if !amount.IsPositive() {
		return dto.PaymentRecordResponse{}, fmt.Errorf("invalid amount: must be positive, got %d", req.AmountMinor)
	}

	intentID, err := uc.gateway.CreateIntent(ctx, amount, req.OrderRef, map[string]string{
		"order_domain": domain.String(),
		"owner_id":     req.OwnerID.String(),
	})
	if err != nil {
		return dto.PaymentRecordResponse{}, fmt.Errorf("create gateway intent: %w", err)
	}

	rec, err := model.NewPaymentRecord(req.OwnerID, req.OrderRef, domain, amount, method, intentID)
	if err != nil {
		return dto.PaymentRecordResponse{}, fmt.Errorf("failed to create payment record: %w", err)
	}

	if err := uc.paymentRepo.Create(ctx, rec); err != nil {
		return dto.PaymentRecordResponse{}, fmt.Errorf("failed to save payment record: %w", err)
	}
	uc.metrics.IntentsCreated.Inc()

	if evts := rec.DomainEvents(); len(evts) > 0 {
		if err := uc.publisher.Publish(ctx, TopicPayments, evts...); err != nil {
			// The record is committed and outboxed; a broker hiccup is not
			// a reason to tell the payer their intent failed.
			uc.logger.Warn("publish intent events failed",
				"intent_id", intentID, "error", err)
		}
	}

	uc.logger.Info("payment intent created",
		"payment_id", rec.ID(),
		"intent_id", intentID,
		"order_domain", domain.String(),
		"amount", amount.String(),
	)

	return dto.FromRecord(rec), nil
}
