// Package shop_repo provides the PostgreSQL implementation of the shop info
// and settings repository.
package shop_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"droppos/internal/core/apperror"
	"droppos/internal/domain/shop"
	"droppos/internal/infrastructure/storage/postgres"
)

const (
	shopInfoTable = "shop_info"
	settingsTable = "settings"
)

// Compile-time check that ShopRepo implements shop.Repository.
var _ shop.Repository = (*ShopRepo)(nil)

// ShopRepo implements shop.Repository.
type ShopRepo struct {
	txm *postgres.TxManager
}

// NewShopRepo creates a new shop repository.
func NewShopRepo(txm *postgres.TxManager) *ShopRepo {
	return &ShopRepo{txm: txm}
}

// Builder returns a new squirrel builder.
func (r *ShopRepo) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// GetInfo retrieves the shop identity row.
func (r *ShopRepo) GetInfo(ctx context.Context) (*shop.Info, error) {
	q := r.Builder().
		Select("id", "shop_name", "tagline", "address", "phone", "email", "updated_at").
		From(shopInfoTable).
		OrderBy("id").
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var info shop.Info
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &info, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("shop info", nil)
		}
		return nil, fmt.Errorf("get shop info: %w", err)
	}
	return &info, nil
}

// UpdateInfo replaces the shop identity. The shop is a single row; the first
// update creates it.
func (r *ShopRepo) UpdateInfo(ctx context.Context, info *shop.Info) error {
	querier := r.txm.GetQuerier(ctx)
	_, err := querier.Exec(ctx, `
        INSERT INTO shop_info (id, shop_name, tagline, address, phone, email)
        VALUES (1, $1, $2, $3, $4, $5)
        ON CONFLICT (id) DO UPDATE
            SET shop_name  = EXCLUDED.shop_name,
                tagline    = EXCLUDED.tagline,
                address    = EXCLUDED.address,
                phone      = EXCLUDED.phone,
                email      = EXCLUDED.email,
                updated_at = NOW()
	`, info.Name, info.Tagline, info.Address, info.Phone, info.Email)
	if err != nil {
		return fmt.Errorf("update shop info: %w", err)
	}
	info.ID = 1
	return nil
}

// GetSetting retrieves one setting value.
func (r *ShopRepo) GetSetting(ctx context.Context, key string) (string, error) {
	q := r.Builder().
		Select("setting_value").
		From(settingsTable).
		Where(squirrel.Eq{"setting_key": key})

	sql, args, err := q.ToSql()
	if err != nil {
		return "", fmt.Errorf("build query: %w", err)
	}

	var value string
	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperror.NewNotFound("setting", key)
		}
		return "", fmt.Errorf("get setting: %w", err)
	}
	return value, nil
}

// SetSetting inserts or replaces one setting value.
func (r *ShopRepo) SetSetting(ctx context.Context, key, value string) error {
	querier := r.txm.GetQuerier(ctx)
	_, err := querier.Exec(ctx, `
        INSERT INTO settings (setting_key, setting_value)
        VALUES ($1, $2)
        ON CONFLICT (setting_key) DO UPDATE
            SET setting_value = EXCLUDED.setting_value,
                updated_at = NOW()
	`, key, value)
	if err != nil {
		return fmt.Errorf("set setting: %w", err)
	}
	return nil
}
