package orders

import (
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/port"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/valueobject"
	pgpkg "github.com/Navin9820/super-app-QA-sub013/pkg/postgres"
)

var _ port.OrderAdapter = (*TaxiAdapter)(nil)

// TaxiAdapter marks taxi rides as paid. Rides are paid after completion, so
// payment moves them to "completed".
type TaxiAdapter struct {
	pgAdapter
}

func NewTaxiAdapter(q pgpkg.Querier) *TaxiAdapter {
	return &TaxiAdapter{pgAdapter{
		q:               q,
		domain:          valueobject.DomainTaxi,
		table:           "taxi_rides",
		confirmedStatus: "completed",
	}}
}
