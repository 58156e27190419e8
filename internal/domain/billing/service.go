package billing

import (
	"context"
	"fmt"
	"time"

	"droppos/internal/core/apperror"
	"droppos/internal/core/clock"
	"droppos/internal/core/tx"
	"droppos/internal/domain/cart"
	"droppos/pkg/logger"
)

// Service provides the billing transaction core: Commit turns a cart
// snapshot into a durable bill, the Get operations read committed bills
// back. Commit is the sole writer of bill and bill item rows.
type Service struct {
	repo    Repository
	numbers NumberGenerator
	txm     tx.ReadOnlyManager
	clk     clock.Clock
}

// NewService creates a new billing service.
func NewService(repo Repository, numbers NumberGenerator, txm tx.ReadOnlyManager, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.System{}
	}
	return &Service{
		repo:    repo,
		numbers: numbers,
		txm:     txm,
		clk:     clk,
	}
}

// Commit atomically persists one bill header plus one item row per cart
// line. The total is computed from the cart at commit time; the timestamp is
// the commit-time system clock. The bill number is allocated inside the same
// transaction as the header insert, so a rollback releases nothing visible.
//
// The cart is never mutated here. The caller clears it only after observing
// a successful commit, so a failed commit leaves the operator free to retry.
func (s *Service) Commit(ctx context.Context, c *cart.Cart, paymentMethod, staffUsername string) (*Bill, error) {
	if c == nil || c.IsEmpty() {
		return nil, apperror.NewEmptyCart()
	}

	method, err := ParsePaymentMethod(paymentMethod)
	if err != nil {
		return nil, err
	}

	if staffUsername == "" {
		return nil, apperror.NewValidation("staff username is required").
			WithDetail("field", "staffUsername")
	}

	now := s.clk.Now()
	lines := c.Lines()

	bill := &Bill{
		TotalAmount:   c.Total(),
		PaymentMethod: method,
		StaffUsername: staffUsername,
		CreatedAt:     now,
	}

	err = s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		number, err := s.numbers.Next(ctx, now)
		if err != nil {
			return fmt.Errorf("generate bill number: %w", err)
		}
		bill.Number = number

		if err := s.repo.Create(ctx, bill); err != nil {
			return fmt.Errorf("create bill: %w", err)
		}

		items := make([]BillItem, 0, len(lines))
		for _, line := range lines {
			items = append(items, BillItem{
				BillID:     bill.ID,
				ItemID:     line.ItemID,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
				TotalPrice: line.TotalPrice,
				ItemCode:   line.ItemCode,
				ItemName:   line.ItemName,
			})
		}

		if err := s.repo.SaveItems(ctx, bill.ID, items); err != nil {
			return fmt.Errorf("save bill items: %w", err)
		}

		bill.Items = items
		return nil
	})

	if err != nil {
		return nil, apperror.NewCommitFailed(err)
	}

	logger.Info(ctx, "bill committed",
		"id", bill.ID,
		"number", bill.Number,
		"total", bill.TotalAmount,
		"paymentMethod", bill.PaymentMethod,
		"lines", len(bill.Items))

	return bill, nil
}

// GetByDateRange returns bill headers created within the inclusive calendar
// day range [from, to], newest first. No matches (including an inverted
// range) yields an empty slice, not an error.
func (s *Service) GetByDateRange(ctx context.Context, from, to time.Time) ([]*Bill, error) {
	var bills []*Bill
	err := s.txm.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		bills, err = s.repo.ListByDateRange(ctx, from, to)
		return err
	})
	return bills, err
}

// GetDetails returns the bill header joined with its items, ordered by item
// name. A missing id surfaces as a not-found error, which callers treat as
// normal control flow. Header and items are read in one read-only
// transaction so the view cannot straddle a concurrent bulk clear.
func (s *Service) GetDetails(ctx context.Context, billID int64) (*Bill, error) {
	var bill *Bill
	err := s.txm.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		bill, err = s.repo.GetByID(ctx, billID)
		if err != nil {
			return err
		}

		items, err := s.repo.GetItems(ctx, billID)
		if err != nil {
			return fmt.Errorf("get bill items: %w", err)
		}
		bill.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// ClearAll removes every bill together with its items in one transaction.
// Administrative use only.
func (s *Service) ClearAll(ctx context.Context) error {
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.ClearAll(ctx)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "all bills cleared")
	return nil
}
