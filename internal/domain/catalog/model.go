// Package catalog provides the item catalog: the persistent store of sellable
// items the billing core resolves codes and barcodes against.
package catalog

import (
	"context"
	"time"

	"droppos/internal/core/apperror"
	"droppos/internal/core/types"
)

// Item is a sellable catalog entry. Items are created and updated by catalog
// management and only ever read by the billing core; carts and bills copy the
// price at the moment of add, so later catalog edits never reach them.
type Item struct {
	// ID is the durable row id.
	ID int64 `db:"id" json:"id"`

	// Code is the unique human-entered item code.
	Code string `db:"item_code" json:"itemCode"`

	// Name is the display name printed on receipts.
	Name string `db:"item_name" json:"itemName"`

	// Price is the current unit price.
	Price types.Money `db:"price" json:"price"`

	// Barcode is the scannable code, when the item is labelled.
	Barcode *string `db:"barcode" json:"barcode,omitempty"`

	// QRCodePath references the generated label image, if any.
	QRCodePath *string `db:"qr_code_path" json:"qrCodePath,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Validate implements basic invariants before persistence.
func (i *Item) Validate(ctx context.Context) error {
	if i.Code == "" {
		return apperror.NewValidation("item code is required").
			WithDetail("field", "itemCode")
	}
	if i.Name == "" {
		return apperror.NewValidation("item name is required").
			WithDetail("field", "itemName")
	}
	if !i.Price.IsPositive() {
		return apperror.NewValidation("price must be positive").
			WithDetail("field", "price")
	}
	return nil
}
