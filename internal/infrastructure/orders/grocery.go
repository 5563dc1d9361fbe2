package orders

import (
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/port"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/valueobject"
	pgpkg "github.com/Navin9820/super-app-QA-sub013/pkg/postgres"
)

var _ port.OrderAdapter = (*GroceryAdapter)(nil)

// GroceryAdapter marks grocery orders as paid and confirmed.
type GroceryAdapter struct {
	pgAdapter
}

func NewGroceryAdapter(q pgpkg.Querier) *GroceryAdapter {
	return &GroceryAdapter{pgAdapter{
		q:               q,
		domain:          valueobject.DomainGrocery,
		table:           "grocery_orders",
		confirmedStatus: "confirmed",
	}}
}
