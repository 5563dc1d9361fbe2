package valueobject

import "fmt"

// PaymentStatus represents the lifecycle state of a payment record.
// Transitions are forward-only: PENDING -> {CAPTURED, FAILED} and
// CAPTURED -> REFUNDED; every other edge is illegal.
type PaymentStatus struct {
	value string
}

var (
	PaymentStatusPending  = PaymentStatus{"PENDING"}
	PaymentStatusCaptured = PaymentStatus{"CAPTURED"}
	PaymentStatusFailed   = PaymentStatus{"FAILED"}
	PaymentStatusRefunded = PaymentStatus{"REFUNDED"}
)

var validStatuses = map[string]PaymentStatus{
	"PENDING":  PaymentStatusPending,
	"CAPTURED": PaymentStatusCaptured,
	"FAILED":   PaymentStatusFailed,
	"REFUNDED": PaymentStatusRefunded,
}

// NewPaymentStatus validates and creates a PaymentStatus from a string.
func NewPaymentStatus(s string) (PaymentStatus, error) {
	if status, ok := validStatuses[s]; ok {
		return status, nil
	}
	return PaymentStatus{}, fmt.Errorf("invalid payment status: %q", s)
}

// String returns the string representation of the payment status.
func (s PaymentStatus) String() string {
	return s.value
}

// CanTransitionTo reports whether the state machine permits moving from s to next.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch s {
	case PaymentStatusPending:
		return next == PaymentStatusCaptured || next == PaymentStatusFailed
	case PaymentStatusCaptured:
		return next == PaymentStatusRefunded
	default:
		return false
	}
}

// IsTerminal returns true if no further transition is possible.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusFailed || s == PaymentStatusRefunded
}

// IsZero returns true if the payment status is uninitialized.
func (s PaymentStatus) IsZero() bool {
	return s.value == ""
}
