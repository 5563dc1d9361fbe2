package orders

import (
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/port"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/valueobject"
	pgpkg "github.com/Navin9820/super-app-QA-sub013/pkg/postgres"
)

var _ port.OrderAdapter = (*RetailAdapter)(nil)

// RetailAdapter marks retail orders as paid and confirmed.
type RetailAdapter struct {
	pgAdapter
}

func NewRetailAdapter(q pgpkg.Querier) *RetailAdapter {
	return &RetailAdapter{pgAdapter{
		q:               q,
		domain:          valueobject.DomainRetail,
		table:           "retail_orders",
		confirmedStatus: "confirmed",
	}}
}
