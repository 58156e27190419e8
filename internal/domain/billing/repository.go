package billing

import (
	"context"
	"time"
)

// Repository defines persistence operations for bills and bill items.
// The billing service is the sole writer: no other component creates
// bill or bill item rows.
type Repository interface {
	// Create inserts a bill header and fills in its row id.
	Create(ctx context.Context, bill *Bill) error

	// SaveItems inserts the bill's item rows.
	SaveItems(ctx context.Context, billID int64, items []BillItem) error

	// GetByID retrieves a bill header by row id.
	// Returns apperror.CodeNotFound when the id does not exist.
	GetByID(ctx context.Context, billID int64) (*Bill, error)

	// GetItems retrieves a bill's items joined with the item catalog,
	// ordered by item name.
	GetItems(ctx context.Context, billID int64) ([]BillItem, error)

	// ListByDateRange retrieves bill headers whose creation date falls in
	// the inclusive calendar-day range [from, to], newest first.
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*Bill, error)

	// ClearAll removes all bills and their items together. Administrative
	// bulk clear only.
	ClearAll(ctx context.Context) error
}

// NumberGenerator produces the next bill number for a commit happening at
// the given instant. Implementations live in pkg/numerator.
type NumberGenerator interface {
	Next(ctx context.Context, at time.Time) (string, error)
}
