package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Navin9820/super-app-QA-sub013/internal/domain/port"
	"github.com/Navin9820/super-app-QA-sub013/internal/domain/valueobject"
	pgpkg "github.com/Navin9820/super-app-QA-sub013/pkg/postgres"
)

// pgAdapter marks one vertical's orders as paid in its own table. Each
// vertical keeps its own table shape and confirmed-status vocabulary; only
// the columns touched here are shared.
//
// MarkPaid is idempotent by construction: the UPDATE is filtered on
// payment_status <> 'paid', so re-marking an already-paid order changes
// nothing and returns nil. The coordinator's conditional capture is the
// primary duplicate defense; this is the adapter-level backstop.
type pgAdapter struct {
	q               pgpkg.Querier
	domain          valueobject.OrderDomain
	table           string
	confirmedStatus string
}

func (a *pgAdapter) Domain() valueobject.OrderDomain {
	return a.domain
}

func (a *pgAdapter) MarkPaid(ctx context.Context, orderRef uuid.UUID) error {
	tag, err := a.q.Exec(ctx,
		`UPDATE `+a.table+`
		 SET status = $1, payment_status = 'paid', updated_at = now()
		 WHERE id = $2 AND payment_status <> 'paid'`,
		a.confirmedStatus, orderRef,
	)
	if err != nil {
		return fmt.Errorf("update %s: %w", a.table, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	// Nothing updated: either the order is already paid (fine) or it does
	// not exist (surfaced for reconciliation).
	var exists bool
	if err := a.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM `+a.table+` WHERE id = $1)`, orderRef,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check %s existence: %w", a.table, err)
	}
	if !exists {
		return fmt.Errorf("%w: %s %s", port.ErrOrderNotFound, a.domain.String(), orderRef)
	}
	return nil
}
