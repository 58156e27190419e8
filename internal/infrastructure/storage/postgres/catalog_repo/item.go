// Package catalog_repo provides the PostgreSQL implementation of the item
// catalog repository.
package catalog_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"droppos/internal/core/apperror"
	"droppos/internal/domain/catalog"
	"droppos/internal/infrastructure/storage/postgres"
)

const itemsTable = "items"

var itemColumns = []string{
	"id", "item_code", "item_name", "price",
	"barcode", "qr_code_path", "created_at", "updated_at",
}

// Compile-time check that ItemRepo implements catalog.Repository.
var _ catalog.Repository = (*ItemRepo)(nil)

// ItemRepo implements catalog.Repository.
type ItemRepo struct {
	txm *postgres.TxManager
}

// NewItemRepo creates a new item repository.
func NewItemRepo(txm *postgres.TxManager) *ItemRepo {
	return &ItemRepo{txm: txm}
}

// Builder returns a new squirrel builder.
func (r *ItemRepo) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *ItemRepo) baseSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(itemColumns...).
		From(itemsTable)
}

func (r *ItemRepo) findOne(ctx context.Context, q squirrel.SelectBuilder, notFoundID any) (*catalog.Item, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var item catalog.Item
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &item, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("item", notFoundID)
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &item, nil
}

// FindByCode retrieves an item by its unique code.
func (r *ItemRepo) FindByCode(ctx context.Context, code string) (*catalog.Item, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"item_code": code}).
		Limit(1)
	return r.findOne(ctx, q, code)
}

// FindByBarcode retrieves an item by its barcode.
func (r *ItemRepo) FindByBarcode(ctx context.Context, barcode string) (*catalog.Item, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"barcode": barcode}).
		Limit(1)
	return r.findOne(ctx, q, barcode)
}

// GetByID retrieves an item by row id.
func (r *ItemRepo) GetByID(ctx context.Context, itemID int64) (*catalog.Item, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": itemID})
	return r.findOne(ctx, q, itemID)
}

// List retrieves all items ordered by name.
func (r *ItemRepo) List(ctx context.Context) ([]*catalog.Item, error) {
	q := r.baseSelect().OrderBy("item_name ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	items := make([]*catalog.Item, 0)
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// Create inserts a new item and fills in its row id and timestamps.
func (r *ItemRepo) Create(ctx context.Context, item *catalog.Item) error {
	q := r.Builder().
		Insert(itemsTable).
		Columns("item_code", "item_name", "price", "barcode", "qr_code_path").
		Values(item.Code, item.Name, item.Price, item.Barcode, item.QRCodePath).
		Suffix("RETURNING id, created_at, updated_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return apperror.NewDuplicate("item", "item_code", item.Code)
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// Update replaces an existing item's attributes.
func (r *ItemRepo) Update(ctx context.Context, item *catalog.Item) error {
	q := r.Builder().
		Update(itemsTable).
		Set("item_code", item.Code).
		Set("item_name", item.Name).
		Set("price", item.Price).
		Set("barcode", item.Barcode).
		Set("qr_code_path", item.QRCodePath).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": item.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.NewDuplicate("item", "item_code", item.Code)
		}
		return fmt.Errorf("update item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("item", item.ID)
	}
	return nil
}

// Delete removes an item. Items referenced by committed bill lines cannot be
// deleted; the foreign key violation surfaces as a conflict.
func (r *ItemRepo) Delete(ctx context.Context, itemID int64) error {
	q := r.Builder().
		Delete(itemsTable).
		Where(squirrel.Eq{"id": itemID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperror.NewConflict("item is referenced by existing bills").
				WithDetail("itemId", itemID)
		}
		return fmt.Errorf("delete item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("item", itemID)
	}
	return nil
}

// isUniqueViolation reports a PostgreSQL unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isForeignKeyViolation reports a PostgreSQL foreign key constraint violation.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
