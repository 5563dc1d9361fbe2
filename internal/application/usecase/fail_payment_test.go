package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Navin9820/super-app-QA-sub013/internal/application/dto"
	"github.com/Navin9820/super-app-QA-sub013/internal/application/usecase"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/port"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/valueobject"
)

func signedFailRequest(intentID, paymentID, reason string) dto.FailPaymentRequest {
	return dto.FailPaymentRequest{
		GatewayIntentID:  intentID,
		GatewayPaymentID: paymentID,
		Signature:        testVerifier().Sign(intentID, paymentID),
		Reason:           reason,
	}
}

func TestFailPayment_MarksFailed(t *testing.T) {
	repo := newMockPaymentRepo()
	publisher := &mockEventPublisher{}
	repo.seed(newPendingRecord(t, "int_1", valueobject.DomainFood))

	uc := usecase.NewFailPayment(repo, testVerifier(), publisher, testMetrics(), testLogger())

	resp, err := uc.Execute(context.Background(), signedFailRequest("int_1", "pay_1", "insufficient funds"))

	require.NoError(t, err)
	assert.Equal(t, "FAILED", resp.Status)
	assert.Equal(t, "insufficient funds", resp.FailureReason)

	saved, ok := repo.get("int_1")
	require.True(t, ok)
	assert.Equal(t, valueobject.PaymentStatusFailed, saved.Status())

	assert.Equal(t, []string{"payment.failed"}, publisher.publishedTypes())
}

func TestFailPayment_InvalidSignature(t *testing.T) {
	repo := newMockPaymentRepo()
	repo.seed(newPendingRecord(t, "int_1", valueobject.DomainFood))

	uc := usecase.NewFailPayment(repo, testVerifier(), &mockEventPublisher{}, testMetrics(), testLogger())

	req := signedFailRequest("int_1", "pay_1", "declined")
	req.Signature = "deadbeef"

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, port.ErrInvalidSignature)
	saved, _ := repo.get("int_1")
	assert.Equal(t, valueobject.PaymentStatusPending, saved.Status())
}

func TestFailPayment_UnknownIntent(t *testing.T) {
	uc := usecase.NewFailPayment(newMockPaymentRepo(), testVerifier(), &mockEventPublisher{}, testMetrics(), testLogger())

	_, err := uc.Execute(context.Background(), signedFailRequest("int_ghost", "pay_1", "declined"))

	assert.ErrorIs(t, err, port.ErrUnknownIntent)
}

func TestFailPayment_CaptureWinsOverLateFailure(t *testing.T) {
	repo := newMockPaymentRepo()
	publisher := &mockEventPublisher{}

	rec := newPendingRecord(t, "int_1", valueobject.DomainHotel)
	captured, err := rec.Capture("pay_1", time.Now().UTC())
	require.NoError(t, err)
	_, captured = captured.ClearDomainEvents()
	repo.seed(captured)

	uc := usecase.NewFailPayment(repo, testVerifier(), publisher, testMetrics(), testLogger())

	// A failure callback arriving after the capture committed is absorbed.
	resp, err := uc.Execute(context.Background(), signedFailRequest("int_1", "pay_1", "timeout"))

	require.NoError(t, err)
	assert.Equal(t, "CAPTURED", resp.Status)
	assert.Empty(t, publisher.publishedTypes())

	saved, _ := repo.get("int_1")
	assert.Equal(t, valueobject.PaymentStatusCaptured, saved.Status())
}

func TestFailPayment_DuplicateFailureAbsorbed(t *testing.T) {
	repo := newMockPaymentRepo()
	publisher := &mockEventPublisher{}
	repo.seed(newPendingRecord(t, "int_1", valueobject.DomainTaxi))

	uc := usecase.NewFailPayment(repo, testVerifier(), publisher, testMetrics(), testLogger())
	req := signedFailRequest("int_1", "pay_1", "cancelled by payer")

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "FAILED", resp.Status)
	assert.Equal(t, []string{"payment.failed"}, publisher.publishedTypes())
}
