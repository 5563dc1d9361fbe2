package orders

import (
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/port"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/valueobject"
	pgpkg "github.com/Navin9820/super-app-QA-sub013/pkg/postgres"
)

var _ port.OrderAdapter = (*FoodAdapter)(nil)

// FoodAdapter marks food-delivery orders as paid. Food orders move to the
// kitchen queue once payment lands, hence the "preparing" confirmed status.
type FoodAdapter struct {
	pgAdapter
}

func NewFoodAdapter(q pgpkg.Querier) *FoodAdapter {
	return &FoodAdapter{pgAdapter{
		q:               q,
		domain:          valueobject.DomainFood,
		table:           "food_orders",
		confirmedStatus: "preparing",
	}}
}
