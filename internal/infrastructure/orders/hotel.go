package orders

import (
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/port"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/valueobject"
	pgpkg "github.com/Navin9820/super-app-QA-sub013/pkg/postgres"
)

var _ port.OrderAdapter = (*HotelAdapter)(nil)

// HotelAdapter marks hotel bookings as paid and booked.
type HotelAdapter struct {
	pgAdapter
}

func NewHotelAdapter(q pgpkg.Querier) *HotelAdapter {
	return &HotelAdapter{pgAdapter{
		q:               q,
		domain:          valueobject.DomainHotel,
		table:           "hotel_bookings",
		confirmedStatus: "booked",
	}}
}
