package catalog

import (
	"context"

	"droppos/pkg/logger"
)

// Service provides catalog lookup and management operations.
type Service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// FindByCode resolves an item code to its catalog entry.
func (s *Service) FindByCode(ctx context.Context, code string) (*Item, error) {
	return s.repo.FindByCode(ctx, code)
}

// FindByBarcode resolves a scanned barcode to its catalog entry.
func (s *Service) FindByBarcode(ctx context.Context, barcode string) (*Item, error) {
	return s.repo.FindByBarcode(ctx, barcode)
}

// GetByID retrieves an item by row id.
func (s *Service) GetByID(ctx context.Context, itemID int64) (*Item, error) {
	return s.repo.GetByID(ctx, itemID)
}

// List returns all items ordered by name.
func (s *Service) List(ctx context.Context) ([]*Item, error) {
	return s.repo.List(ctx)
}

// Create validates and persists a new item.
func (s *Service) Create(ctx context.Context, item *Item) error {
	if err := item.Validate(ctx); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return err
	}

	logger.Info(ctx, "item created",
		"id", item.ID,
		"code", item.Code)

	return nil
}

// Update validates and persists changes to an existing item.
// Open carts keep their price snapshots; only future adds see the new price.
func (s *Service) Update(ctx context.Context, item *Item) error {
	if err := item.Validate(ctx); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return err
	}

	logger.Info(ctx, "item updated",
		"id", item.ID,
		"code", item.Code)

	return nil
}

// Delete removes an item from the catalog. Items already sold are protected
// by the bill line foreign key and surface a conflict instead of deleting.
func (s *Service) Delete(ctx context.Context, itemID int64) error {
	if err := s.repo.Delete(ctx, itemID); err != nil {
		return err
	}

	logger.Info(ctx, "item deleted", "id", itemID)
	return nil
}
