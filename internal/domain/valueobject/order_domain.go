package valueobject

import "fmt"

// OrderDomain identifies which business vertical a payment belongs to.
// The dispatcher uses it to route the mark-paid side effect to the
// correct order aggregate.
type OrderDomain struct {
	value string
}

var (
	DomainRetail  = OrderDomain{"RETAIL"}
	DomainGrocery = OrderDomain{"GROCERY"}
	DomainFood    = OrderDomain{"FOOD"}
	DomainHotel   = OrderDomain{"HOTEL"}
	DomainTaxi    = OrderDomain{"TAXI"}
	DomainPorter  = OrderDomain{"PORTER"}
)

var validDomains = map[string]OrderDomain{
	"RETAIL":  DomainRetail,
	"GROCERY": DomainGrocery,
	"FOOD":    DomainFood,
	"HOTEL":   DomainHotel,
	"TAXI":    DomainTaxi,
	"PORTER":  DomainPorter,
}

// NewOrderDomain validates and creates an OrderDomain from a string.
func NewOrderDomain(s string) (OrderDomain, error) {
	if d, ok := validDomains[s]; ok {
		return d, nil
	}
	return OrderDomain{}, fmt.Errorf("invalid order domain: %q", s)
}

// String returns the string representation of the order domain.
func (d OrderDomain) String() string {
	return d.value
}

// IsZero returns true if the order domain is uninitialized.
func (d OrderDomain) IsZero() bool {
	return d.value == ""
}

// AllOrderDomains returns every recognized order domain.
func AllOrderDomains() []OrderDomain {
	return []OrderDomain{DomainRetail, DomainGrocery, DomainFood, DomainHotel, DomainTaxi, DomainPorter}
}
