package billing

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"droppos/internal/core/apperror"
	"droppos/internal/core/clock"
	"droppos/internal/core/types"
	"droppos/internal/domain/cart"
	"droppos/internal/domain/catalog"
)

// fakeTxManager runs the function directly and records whether a rollback
// happened (fn returned an error).
type fakeTxManager struct {
	calls      int
	rolledBack bool
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if err := fn(ctx); err != nil {
		m.rolledBack = true
		return err
	}
	return nil
}

func (m *fakeTxManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeRepo stores bills in memory. Failure modes are injected per method.
type fakeRepo struct {
	bills      []*Bill
	items      map[int64][]BillItem
	nextID     int64
	createErr  error
	saveErr    error
	savedItems int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[int64][]BillItem)}
}

func (r *fakeRepo) Create(ctx context.Context, bill *Bill) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	bill.ID = r.nextID
	r.bills = append(r.bills, bill)
	return nil
}

func (r *fakeRepo) SaveItems(ctx context.Context, billID int64, items []BillItem) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.items[billID] = items
	r.savedItems += len(items)
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, billID int64) (*Bill, error) {
	for _, b := range r.bills {
		if b.ID == billID {
			header := *b
			header.Items = nil
			return &header, nil
		}
	}
	return nil, apperror.NewNotFound("bill", billID)
}

func (r *fakeRepo) GetItems(ctx context.Context, billID int64) ([]BillItem, error) {
	return r.items[billID], nil
}

func (r *fakeRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]*Bill, error) {
	const layout = "2006-01-02"
	out := make([]*Bill, 0)
	for _, b := range r.bills {
		day := b.CreatedAt.Format(layout)
		if day >= from.Format(layout) && day <= to.Format(layout) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepo) ClearAll(ctx context.Context) error {
	r.bills = nil
	r.items = make(map[int64][]BillItem)
	return nil
}

// fakeNumbers allocates sequential numbers. calls counts allocations so tests
// can assert nothing was consumed on validation failures.
type fakeNumbers struct {
	seq   int64
	calls int
	err   error
}

func (n *fakeNumbers) Next(ctx context.Context, at time.Time) (string, error) {
	n.calls++
	if n.err != nil {
		return "", n.err
	}
	n.seq++
	return fmt.Sprintf("BILL%s%04d", at.Format("20060102"), n.seq), nil
}

func testCart(t *testing.T) *cart.Cart {
	t.Helper()
	c := cart.New()
	shirt := &catalog.Item{ID: 1, Code: "TSH001", Name: "Cotton T-Shirt", Price: types.MustMoney("100.00")}
	jeans := &catalog.Item{ID: 2, Code: "JNS001", Name: "Slim Fit Jeans", Price: types.MustMoney("250.00")}
	if err := c.Add(shirt, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := c.Add(jeans, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	return c
}

func TestCommit(t *testing.T) {
	repo := newFakeRepo()
	numbers := &fakeNumbers{}
	txm := &fakeTxManager{}
	now := time.Date(2025, 3, 14, 10, 30, 0, 0, time.Local)
	svc := NewService(repo, numbers, txm, clock.Fixed{T: now})

	bill, err := svc.Commit(context.Background(), testCart(t), "cash", "priya")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bill.Number != "BILL202503140001" {
		t.Errorf("expected BILL202503140001, got %s", bill.Number)
	}
	if got := bill.TotalAmount.StringFixed(2); got != "450.00" {
		t.Errorf("expected total 450.00, got %s", got)
	}
	if !bill.CreatedAt.Equal(now) {
		t.Errorf("expected commit-time clock, got %v", bill.CreatedAt)
	}
	if len(bill.Items) != 2 {
		t.Fatalf("expected 2 item rows, got %d", len(bill.Items))
	}
	if bill.Items[0].BillID != bill.ID {
		t.Errorf("item rows must reference the bill header")
	}
	if repo.savedItems != 2 {
		t.Errorf("expected 2 rows persisted, got %d", repo.savedItems)
	}
	if txm.calls != 1 {
		t.Errorf("expected exactly one transaction, got %d", txm.calls)
	}
}

func TestCommit_EmptyCart(t *testing.T) {
	repo := newFakeRepo()
	numbers := &fakeNumbers{}
	txm := &fakeTxManager{}
	svc := NewService(repo, numbers, txm, nil)

	for _, c := range []*cart.Cart{nil, cart.New()} {
		_, err := svc.Commit(context.Background(), c, "cash", "priya")
		appErr, ok := apperror.AsAppError(err)
		if !ok || appErr.Code != apperror.CodeEmptyCart {
			t.Errorf("expected EMPTY_CART, got %v", err)
		}
	}

	if txm.calls != 0 || numbers.calls != 0 {
		t.Error("empty cart must be rejected before any transaction or number allocation")
	}
}

func TestCommit_InvalidPaymentMethod(t *testing.T) {
	repo := newFakeRepo()
	numbers := &fakeNumbers{}
	txm := &fakeTxManager{}
	svc := NewService(repo, numbers, txm, nil)

	_, err := svc.Commit(context.Background(), testCart(t), "bitcoin", "priya")
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeInvalidPaymentMethod {
		t.Fatalf("expected INVALID_PAYMENT_METHOD, got %v", err)
	}
	if txm.calls != 0 || len(repo.bills) != 0 {
		t.Error("invalid payment method must not touch storage")
	}
}

func TestCommit_MissingStaff(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeNumbers{}, &fakeTxManager{}, nil)

	_, err := svc.Commit(context.Background(), testCart(t), "upi", "")
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestCommit_ItemInsertFailureRollsBack(t *testing.T) {
	repo := newFakeRepo()
	repo.saveErr = errors.New("disk full")
	numbers := &fakeNumbers{}
	txm := &fakeTxManager{}
	svc := NewService(repo, numbers, txm, nil)

	_, err := svc.Commit(context.Background(), testCart(t), "card", "priya")
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeCommitFailed {
		t.Fatalf("expected COMMIT_FAILED, got %v", err)
	}
	if !errors.Is(err, repo.saveErr) {
		t.Error("commit failure must wrap the underlying cause")
	}
	if !txm.rolledBack {
		t.Error("failed item insert must roll back the transaction")
	}
}

func TestCommit_NumberGenerationFailure(t *testing.T) {
	repo := newFakeRepo()
	numbers := &fakeNumbers{err: errors.New("sequence unavailable")}
	txm := &fakeTxManager{}
	svc := NewService(repo, numbers, txm, nil)

	_, err := svc.Commit(context.Background(), testCart(t), "cash", "priya")
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeCommitFailed {
		t.Fatalf("expected COMMIT_FAILED, got %v", err)
	}
	if len(repo.bills) != 0 {
		t.Error("no header may survive a failed number allocation")
	}
}

func TestCommit_DoesNotMutateCart(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeNumbers{}, &fakeTxManager{}, nil)
	c := testCart(t)

	if _, err := svc.Commit(context.Background(), c, "cash", "priya"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 2 {
		t.Error("commit must leave the cart to the caller")
	}
}

func TestGetDetails(t *testing.T) {
	repo := newFakeRepo()
	txm := &fakeTxManager{}
	now := time.Date(2025, 3, 14, 10, 30, 0, 0, time.Local)
	svc := NewService(repo, &fakeNumbers{}, txm, clock.Fixed{T: now})

	committed, err := svc.Commit(context.Background(), testCart(t), "upi", "priya")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bill, err := svc.GetDetails(context.Background(), committed.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bill.Number != committed.Number {
		t.Errorf("expected number %s, got %s", committed.Number, bill.Number)
	}
	if len(bill.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(bill.Items))
	}

	// the header total must equal the sum of its item totals
	sum := types.Zero()
	for _, item := range bill.Items {
		sum = sum.Add(item.TotalPrice)
	}
	if !sum.Equal(bill.TotalAmount) {
		t.Errorf("item totals sum to %s, header says %s", sum.StringFixed(2), bill.TotalAmount.StringFixed(2))
	}
}

func TestGetByDateRange(t *testing.T) {
	repo := newFakeRepo()
	txm := &fakeTxManager{}
	committed := time.Date(2025, 3, 14, 10, 30, 0, 0, time.Local)
	svc := NewService(repo, &fakeNumbers{}, txm, clock.Fixed{T: committed})

	bill, err := svc.Commit(context.Background(), testCart(t), "cash", "priya")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)

	// a single-day range covering the commit date includes the bill
	bills, err := svc.GetByDateRange(context.Background(), day, day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bills) != 1 || bills[0].Number != bill.Number {
		t.Fatalf("expected the committed bill in its own day range, got %+v", bills)
	}

	// a range entirely after the commit date excludes it
	later := day.AddDate(0, 0, 1)
	bills, err = svc.GetByDateRange(context.Background(), later, later.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bills) != 0 {
		t.Errorf("expected no bills outside the commit date, got %d", len(bills))
	}

	// no match yields an empty slice, not an error
	earlier := day.AddDate(0, 0, -30)
	bills, err = svc.GetByDateRange(context.Background(), earlier, earlier)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bills == nil || len(bills) != 0 {
		t.Errorf("expected empty slice for no matches, got %v", bills)
	}

	// an inverted range matches nothing rather than failing
	bills, err = svc.GetByDateRange(context.Background(), day.AddDate(0, 0, 1), day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bills) != 0 {
		t.Errorf("expected empty result for inverted range, got %d bills", len(bills))
	}
}

func TestGetDetails_NotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeNumbers{}, &fakeTxManager{}, nil)

	_, err := svc.GetDetails(context.Background(), 9999)
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestClearAll(t *testing.T) {
	repo := newFakeRepo()
	txm := &fakeTxManager{}
	svc := NewService(repo, &fakeNumbers{}, txm, nil)

	if _, err := svc.Commit(context.Background(), testCart(t), "cash", "priya"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.ClearAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.bills) != 0 {
		t.Error("expected all bills removed")
	}
	if txm.calls != 2 {
		t.Errorf("clear must run in its own transaction, got %d calls", txm.calls)
	}
}

func TestParsePaymentMethod(t *testing.T) {
	for _, valid := range []string{"cash", "upi", "card"} {
		if _, err := ParsePaymentMethod(valid); err != nil {
			t.Errorf("%s: unexpected error %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "CASH", "bitcoin", "credit"} {
		_, err := ParsePaymentMethod(invalid)
		appErr, ok := apperror.AsAppError(err)
		if !ok || appErr.Code != apperror.CodeInvalidPaymentMethod {
			t.Errorf("%q: expected INVALID_PAYMENT_METHOD, got %v", invalid, err)
		}
	}
}
