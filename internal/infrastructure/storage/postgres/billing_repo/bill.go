// Package billing_repo provides the PostgreSQL implementation of the bill
// repository. All writes run through the transaction manager so the bill
// commit's header + item rows land in one atomic unit.
package billing_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"droppos/internal/core/apperror"
	"droppos/internal/domain/billing"
	"droppos/internal/infrastructure/storage/postgres"
)

const (
	billsTable     = "bills"
	billItemsTable = "bill_items"
	itemsTable     = "items"
)

var billColumns = []string{
	"id", "bill_number", "total_amount",
	"payment_method", "staff_username", "created_at",
}

// Compile-time check that BillRepo implements billing.Repository.
var _ billing.Repository = (*BillRepo)(nil)

// BillRepo implements billing.Repository.
type BillRepo struct {
	txm *postgres.TxManager
}

// NewBillRepo creates a new bill repository.
func NewBillRepo(txm *postgres.TxManager) *BillRepo {
	return &BillRepo{txm: txm}
}

// Builder returns a new squirrel builder.
func (r *BillRepo) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *BillRepo) baseSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(billColumns...).
		From(billsTable)
}

// Create inserts a bill header and fills in its row id.
func (r *BillRepo) Create(ctx context.Context, bill *billing.Bill) error {
	q := r.Builder().
		Insert(billsTable).
		Columns("bill_number", "total_amount", "payment_method", "staff_username", "created_at").
		Values(bill.Number, bill.TotalAmount, bill.PaymentMethod, bill.StaffUsername, bill.CreatedAt).
		Suffix("RETURNING id")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, args...).Scan(&bill.ID); err != nil {
		return fmt.Errorf("insert bill: %w", err)
	}
	return nil
}

// SaveItems inserts the bill's item rows in one statement.
func (r *BillRepo) SaveItems(ctx context.Context, billID int64, items []billing.BillItem) error {
	if len(items) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(billItemsTable).
		Columns("bill_id", "item_id", "quantity", "unit_price", "total_price")

	for _, item := range items {
		q = q.Values(billID, item.ItemID, item.Quantity, item.UnitPrice, item.TotalPrice)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert items: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert bill items: %w", err)
	}
	return nil
}

// GetByID retrieves a bill header by row id.
func (r *BillRepo) GetByID(ctx context.Context, billID int64) (*billing.Bill, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": billID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var bill billing.Bill
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &bill, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("bill", billID)
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return &bill, nil
}

// GetItems retrieves a bill's items joined with the item catalog, ordered by
// item name.
func (r *BillRepo) GetItems(ctx context.Context, billID int64) ([]billing.BillItem, error) {
	q := r.Builder().
		Select(
			"bi.id", "bi.bill_id", "bi.item_id", "bi.quantity",
			"bi.unit_price", "bi.total_price",
			"i.item_code", "i.item_name",
		).
		From(billItemsTable + " bi").
		Join(itemsTable + " i ON bi.item_id = i.id").
		Where(squirrel.Eq{"bi.bill_id": billID}).
		OrderBy("i.item_name")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	items := make([]billing.BillItem, 0)
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("get bill items: %w", err)
	}
	return items, nil
}

// ListByDateRange retrieves bill headers created within the inclusive
// calendar-day range [from, to], newest first. The comparison is by calendar
// date in the database session timezone, matching the local-time semantics
// of bill numbering.
func (r *BillRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]*billing.Bill, error) {
	q := r.baseSelect().
		Where(squirrel.Expr("created_at::date >= ?::date", dateArg(from))).
		Where(squirrel.Expr("created_at::date <= ?::date", dateArg(to))).
		OrderBy("created_at DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	bills := make([]*billing.Bill, 0)
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &bills, sql, args...); err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	return bills, nil
}

// ClearAll removes all bills; item rows cascade with their parent bill.
func (r *BillRepo) ClearAll(ctx context.Context) error {
	querier := r.txm.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, "DELETE FROM "+billsTable); err != nil {
		return fmt.Errorf("clear bills: %w", err)
	}
	return nil
}

func dateArg(t time.Time) string {
	return t.Format("2006-01-02")
}
