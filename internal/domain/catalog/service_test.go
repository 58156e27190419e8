package catalog

import (
	"context"
	"testing"

	"droppos/internal/core/apperror"
	"droppos/internal/core/types"
)

// memRepo is an in-memory Repository for service tests.
type memRepo struct {
	items  map[int64]*Item
	nextID int64
}

func newMemRepo() *memRepo {
	return &memRepo{items: make(map[int64]*Item)}
}

func (r *memRepo) FindByCode(ctx context.Context, code string) (*Item, error) {
	for _, item := range r.items {
		if item.Code == code {
			return item, nil
		}
	}
	return nil, apperror.NewItemNotFound(code)
}

func (r *memRepo) FindByBarcode(ctx context.Context, barcode string) (*Item, error) {
	for _, item := range r.items {
		if item.Barcode != nil && *item.Barcode == barcode {
			return item, nil
		}
	}
	return nil, apperror.NewNotFound("item", barcode)
}

func (r *memRepo) GetByID(ctx context.Context, itemID int64) (*Item, error) {
	if item, ok := r.items[itemID]; ok {
		return item, nil
	}
	return nil, apperror.NewNotFound("item", itemID)
}

func (r *memRepo) List(ctx context.Context) ([]*Item, error) {
	out := make([]*Item, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

func (r *memRepo) Create(ctx context.Context, item *Item) error {
	for _, existing := range r.items {
		if existing.Code == item.Code {
			return apperror.NewDuplicate("item", "item_code", item.Code)
		}
	}
	r.nextID++
	item.ID = r.nextID
	r.items[item.ID] = item
	return nil
}

func (r *memRepo) Update(ctx context.Context, item *Item) error {
	if _, ok := r.items[item.ID]; !ok {
		return apperror.NewNotFound("item", item.ID)
	}
	r.items[item.ID] = item
	return nil
}

func (r *memRepo) Delete(ctx context.Context, itemID int64) error {
	if _, ok := r.items[itemID]; !ok {
		return apperror.NewNotFound("item", itemID)
	}
	delete(r.items, itemID)
	return nil
}

var _ Repository = (*memRepo)(nil)

func TestCreateAndFindByCode(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	item := &Item{Code: "TSH001", Name: "Cotton T-Shirt", Price: types.MustMoney("299.00")}
	if err := svc.Create(ctx, item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ID == 0 {
		t.Error("expected row id to be filled in")
	}

	found, err := svc.FindByCode(ctx, "TSH001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Name != "Cotton T-Shirt" {
		t.Errorf("unexpected item: %+v", found)
	}
}

func TestFindByCode_Unknown(t *testing.T) {
	svc := NewService(newMemRepo())

	_, err := svc.FindByCode(context.Background(), "NOPE")
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFindByBarcode(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	barcode := "8901234567890"
	item := &Item{Code: "TSH001", Name: "Cotton T-Shirt", Price: types.MustMoney("299.00"), Barcode: &barcode}
	if err := svc.Create(ctx, item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := svc.FindByBarcode(ctx, barcode)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Code != "TSH001" {
		t.Errorf("unexpected item: %+v", found)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	tests := []struct {
		name string
		item *Item
	}{
		{"missing code", &Item{Name: "X", Price: types.MustMoney("1.00")}},
		{"missing name", &Item{Code: "X1", Price: types.MustMoney("1.00")}},
		{"zero price", &Item{Code: "X1", Name: "X", Price: types.Zero()}},
		{"negative price", &Item{Code: "X1", Name: "X", Price: types.MustMoney("-5.00")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Create(ctx, tt.item)
			appErr, ok := apperror.AsAppError(err)
			if !ok || appErr.Code != apperror.CodeValidation {
				t.Fatalf("expected VALIDATION_ERROR, got %v", err)
			}
		})
	}
}

func TestCreate_DuplicateCode(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	first := &Item{Code: "TSH001", Name: "Cotton T-Shirt", Price: types.MustMoney("299.00")}
	if err := svc.Create(ctx, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := svc.Create(ctx, &Item{Code: "TSH001", Name: "Other", Price: types.MustMoney("1.00")})
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeDuplicate {
		t.Fatalf("expected DUPLICATE_ENTRY, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	ctx := context.Background()

	item := &Item{Code: "TSH001", Name: "Cotton T-Shirt", Price: types.MustMoney("299.00")}
	if err := svc.Create(ctx, item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated := &Item{ID: item.ID, Code: "TSH001", Name: "Premium T-Shirt", Price: types.MustMoney("349.00")}
	if err := svc.Update(ctx, updated); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Premium T-Shirt" || got.Price.StringFixed(2) != "349.00" {
		t.Errorf("update not applied: %+v", got)
	}
}

func TestDelete(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	item := &Item{Code: "TSH001", Name: "Cotton T-Shirt", Price: types.MustMoney("299.00")}
	if err := svc.Create(ctx, item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Delete(ctx, item.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GetByID(ctx, item.ID); !apperror.IsNotFound(err) {
		t.Errorf("expected item gone, got %v", err)
	}
	if err := svc.Delete(ctx, item.ID); !apperror.IsNotFound(err) {
		t.Errorf("expected double delete to report not found, got %v", err)
	}
}
