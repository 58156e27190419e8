// Package billing provides the billing transaction core: committing a cart
// as an immutable bill and reading committed bills back.
package billing

import (
	"time"

	"droppos/internal/core/apperror"
	"droppos/internal/core/types"
)

// PaymentMethod is the fixed set of accepted payment methods.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentUPI  PaymentMethod = "upi"
	PaymentCard PaymentMethod = "card"
)

// ParsePaymentMethod validates a raw payment method string.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentUPI, PaymentCard:
		return PaymentMethod(s), nil
	}
	return "", apperror.NewInvalidPaymentMethod(s)
}

// Bill is an immutable record of one completed sale. Once created it is
// never updated or partially amended; the only way a bill disappears is the
// administrative bulk clear, which removes bills and their items together.
type Bill struct {
	// ID is the durable row id.
	ID int64 `db:"id" json:"id"`

	// Number is the generated, globally unique bill number
	// (BILL<YYYYMMDD><NNNN>).
	Number string `db:"bill_number" json:"billNumber"`

	// TotalAmount equals the sum of the bill's item totals, captured from
	// the cart at commit time.
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`

	PaymentMethod PaymentMethod `db:"payment_method" json:"paymentMethod"`
	StaffUsername string        `db:"staff_username" json:"staffUsername"`

	// CreatedAt is the commit-time system clock, never client-supplied.
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	// Items is populated by detail retrieval, ordered by item name.
	Items []BillItem `db:"-" json:"items,omitempty"`
}

// BillItem is one line of a committed bill. Unit price is a durable copy
// decoupled from the live catalog.
type BillItem struct {
	ID       int64 `db:"id" json:"id"`
	BillID   int64 `db:"bill_id" json:"billId"`
	ItemID   int64 `db:"item_id" json:"itemId"`
	Quantity int64 `db:"quantity" json:"quantity"`

	UnitPrice  types.Money `db:"unit_price" json:"unitPrice"`
	TotalPrice types.Money `db:"total_price" json:"totalPrice"`

	// Joined from the item catalog on detail retrieval.
	ItemCode string `db:"item_code" json:"itemCode"`
	ItemName string `db:"item_name" json:"itemName"`
}
