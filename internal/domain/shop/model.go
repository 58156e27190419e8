// Package shop provides shop identity and application settings: the header
// block printed on receipts and small key/value configuration.
package shop

import (
	"context"
	"time"

	"droppos/internal/core/apperror"
)

// Info is the shop identity printed on every receipt.
type Info struct {
	ID      int64   `db:"id" json:"id"`
	Name    string  `db:"shop_name" json:"shopName"`
	Tagline string  `db:"tagline" json:"tagline"`
	Address string  `db:"address" json:"address"`
	Phone   *string `db:"phone" json:"phone,omitempty"`
	Email   *string `db:"email" json:"email,omitempty"`

	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Validate implements basic invariants before persistence.
func (i *Info) Validate(ctx context.Context) error {
	if i.Name == "" {
		return apperror.NewValidation("shop name is required").
			WithDetail("field", "shopName")
	}
	if i.Address == "" {
		return apperror.NewValidation("address is required").
			WithDetail("field", "address")
	}
	return nil
}
