package orders

import (
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/port"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/valueobject"
	pgpkg "github.com/Navin9820/super-app-QA-sub013/pkg/postgres"
)

var _ port.OrderAdapter = (*PorterAdapter)(nil)

// PorterAdapter marks porter (goods courier) bookings as paid and booked.
type PorterAdapter struct {
	pgAdapter
}

func NewPorterAdapter(q pgpkg.Querier) *PorterAdapter {
	return &PorterAdapter{pgAdapter{
		q:               q,
		domain:          valueobject.DomainPorter,
		table:           "porter_bookings",
		confirmedStatus: "booked",
	}}
}
