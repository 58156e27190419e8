package shop

import (
	"context"

	"droppos/pkg/logger"
)

// Repository defines persistence for shop info and settings.
type Repository interface {
	// GetInfo retrieves the shop identity row.
	GetInfo(ctx context.Context) (*Info, error)

	// UpdateInfo replaces the shop identity.
	UpdateInfo(ctx context.Context, info *Info) error

	// GetSetting retrieves one setting value.
	// Returns apperror.CodeNotFound when the key does not exist.
	GetSetting(ctx context.Context, key string) (string, error)

	// SetSetting inserts or replaces one setting value.
	SetSetting(ctx context.Context, key, value string) error
}

// Service provides shop info and settings operations.
type Service struct {
	repo Repository
}

// NewService creates a new shop service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetInfo returns the shop identity.
func (s *Service) GetInfo(ctx context.Context) (*Info, error) {
	return s.repo.GetInfo(ctx)
}

// UpdateInfo validates and persists the shop identity.
func (s *Service) UpdateInfo(ctx context.Context, info *Info) error {
	if err := info.Validate(ctx); err != nil {
		return err
	}

	if err := s.repo.UpdateInfo(ctx, info); err != nil {
		return err
	}

	logger.Info(ctx, "shop info updated", "name", info.Name)
	return nil
}

// GetSetting returns one setting value.
func (s *Service) GetSetting(ctx context.Context, key string) (string, error) {
	return s.repo.GetSetting(ctx, key)
}

// SetSetting stores one setting value.
func (s *Service) SetSetting(ctx context.Context, key, value string) error {
	return s.repo.SetSetting(ctx, key, value)
}
