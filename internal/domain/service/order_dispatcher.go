package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Navin9820/super-app-QA-sub013/internal/domain/port"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/valueobject"
)

// OrderDispatcher routes the mark-paid side effect to the adapter for the
// payment's order domain. The registry is fixed at construction; an
// unregistered domain fails with ErrUnknownOrderDomain rather than silently
// no-oping.
type OrderDispatcher struct {
	adapters map[valueobject.OrderDomain]port.OrderAdapter
}

// NewOrderDispatcher builds a dispatcher from the given adapters, keyed by
// each adapter's declared domain.
func NewOrderDispatcher(adapters ...port.OrderAdapter) *OrderDispatcher {
	table := make(map[valueobject.OrderDomain]port.OrderAdapter, len(adapters))
	for _, a := range adapters {
		table[a.Domain()] = a
	}
	return &OrderDispatcher{adapters: table}
}

// Supports reports whether an adapter is registered for the domain.
func (d *OrderDispatcher) Supports(domain valueobject.OrderDomain) bool {
	_, ok := d.adapters[domain]
	return ok
}

// MarkPaid flips the referenced order to its paid state through the adapter
// registered for the domain.
func (d *OrderDispatcher) MarkPaid(ctx context.Context, domain valueobject.OrderDomain, orderRef uuid.UUID) error {
	adapter, ok := d.adapters[domain]
	if !ok {
		return fmt.Errorf("%w: %s", port.ErrUnknownOrderDomain, domain.String())
	}
	if err := adapter.MarkPaid(ctx, orderRef); err != nil {
		return fmt.Errorf("mark paid for %s order %s: %w", domain.String(), orderRef, err)
	}
	return nil
}
