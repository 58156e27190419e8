package cart

import (
	"context"

	"droppos/internal/core/apperror"
	"droppos/internal/domain/catalog"
)

// Lookup resolves item codes and barcodes against the catalog.
// Satisfied by catalog.Service.
type Lookup interface {
	FindByCode(ctx context.Context, code string) (*catalog.Item, error)
	FindByBarcode(ctx context.Context, barcode string) (*catalog.Item, error)
}

// Service applies catalog lookups to cart mutations. The cart itself never
// talks to storage; this service is the only path between the two.
type Service struct {
	lookup Lookup
}

// NewService creates a new cart service.
func NewService(lookup Lookup) *Service {
	return &Service{lookup: lookup}
}

// AddItem resolves code and merges qty of the item into the cart.
// The catalog is never modified.
func (s *Service) AddItem(ctx context.Context, c *Cart, code string, qty int64) error {
	if qty <= 0 {
		return apperror.NewInvalidQuantity(qty)
	}

	item, err := s.lookup.FindByCode(ctx, code)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewItemNotFound(code)
		}
		return err
	}

	return c.Add(item, qty)
}

// AddScanned handles the barcode/scanner input path: one unit of the scanned
// item. Scanned input is matched against barcodes first and falls back to
// item codes, since labels may carry either.
func (s *Service) AddScanned(ctx context.Context, c *Cart, code string) error {
	item, err := s.lookup.FindByBarcode(ctx, code)
	if err != nil {
		if !apperror.IsNotFound(err) {
			return err
		}
		item, err = s.lookup.FindByCode(ctx, code)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewItemNotFound(code)
			}
			return err
		}
	}

	return c.Add(item, 1)
}
