package catalog

import "context"

// Repository defines persistence operations for catalog items.
// The PostgreSQL implementation lives in infrastructure/storage/postgres.
type Repository interface {
	// FindByCode retrieves an item by its unique code.
	// Returns apperror.CodeItemNotFound when no item has that code.
	FindByCode(ctx context.Context, code string) (*Item, error)

	// FindByBarcode retrieves an item by its barcode.
	FindByBarcode(ctx context.Context, barcode string) (*Item, error)

	// GetByID retrieves an item by row id.
	GetByID(ctx context.Context, itemID int64) (*Item, error)

	// List retrieves all items ordered by name.
	List(ctx context.Context) ([]*Item, error)

	// Create inserts a new item and fills in its row id.
	Create(ctx context.Context, item *Item) error

	// Update replaces an existing item's attributes.
	Update(ctx context.Context, item *Item) error

	// Delete removes an item.
	Delete(ctx context.Context, itemID int64) error
}
