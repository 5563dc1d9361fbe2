package valueobject

import "fmt"

// PaymentMethod is the instrument used to pay.
type PaymentMethod struct {
	value string
}

var (
	MethodCOD        = PaymentMethod{"COD"}
	MethodCard       = PaymentMethod{"CARD"}
	MethodWallet     = PaymentMethod{"WALLET"}
	MethodNetBanking = PaymentMethod{"NETBANKING"}
	MethodUPI        = PaymentMethod{"UPI"}
)

var validMethods = map[string]PaymentMethod{
	"COD":        MethodCOD,
	"CARD":       MethodCard,
	"WALLET":     MethodWallet,
	"NETBANKING": MethodNetBanking,
	"UPI":        MethodUPI,
}

// NewPaymentMethod validates and creates a PaymentMethod from a string.
func NewPaymentMethod(s string) (PaymentMethod, error) {
	if m, ok := validMethods[s]; ok {
		return m, nil
	}
	return PaymentMethod{}, fmt.Errorf("invalid payment method: %q", s)
}

// String returns the string representation of the payment method.
func (m PaymentMethod) String() string {
	return m.value
}

// IsZero returns true if the payment method is uninitialized.
func (m PaymentMethod) IsZero() bool {
	return m.value == ""
}
