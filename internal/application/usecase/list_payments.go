package usecase

import (
	"context"
	"fmt"

	"github.com/Navin9820/super-app-QA-sub013/internal/application/dto"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/port"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListPayments returns an account's payment records with pagination.
type ListPayments struct {
	paymentRepo port.PaymentRecordRepository
}

func NewListPayments(paymentRepo port.PaymentRecordRepository) *ListPayments {
	return &ListPayments{paymentRepo: paymentRepo}
}

func (uc *ListPayments) Execute(ctx context.Context, req dto.ListPaymentsRequest) (dto.ListPaymentsResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	records, total, err := uc.paymentRepo.ListByOwner(ctx, req.OwnerID, pageSize, offset)
	if err != nil {
		return dto.ListPaymentsResponse{}, fmt.Errorf("list payments for owner %s: %w", req.OwnerID, err)
	}

	resp := dto.ListPaymentsResponse{
		Payments:   make([]dto.PaymentRecordResponse, 0, len(records)),
		TotalCount: total,
	}
	for _, rec := range records {
		resp.Payments = append(resp.Payments, dto.FromRecord(rec))
	}

	return resp, nil
}
