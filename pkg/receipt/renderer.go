// Package receipt renders committed bills into printable documents and
// dispatches them. Rendering and printing sit downstream of the billing
// core: their failures are reported to the operator but never affect
// committed billing state.
package receipt

import (
	"context"
	"fmt"
	"strings"

	"droppos/internal/domain/billing"
	"droppos/internal/domain/shop"
)

// Document is an opaque rendered receipt, ready for a printer.
type Document struct {
	BillNumber  string
	ContentType string
	Content     []byte
}

// Renderer turns a bill with items into a printable document.
type Renderer interface {
	Render(ctx context.Context, bill *billing.Bill, info *shop.Info) (*Document, error)
}

// Printer dispatches a rendered document to the shop printer.
type Printer interface {
	Print(ctx context.Context, doc *Document) error
}

const receiptWidth = 40

// TextRenderer renders a fixed-width plain-text receipt suitable for
// thermal printers.
type TextRenderer struct{}

// NewTextRenderer creates a plain-text receipt renderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// Render produces the receipt document for a committed bill.
func (r *TextRenderer) Render(ctx context.Context, bill *billing.Bill, info *shop.Info) (*Document, error) {
	if bill == nil {
		return nil, fmt.Errorf("nil bill")
	}

	var b strings.Builder

	if info != nil {
		b.WriteString(center(info.Name))
		if info.Tagline != "" {
			b.WriteString(center(info.Tagline))
		}
		b.WriteString(center(info.Address))
		if info.Phone != nil && *info.Phone != "" {
			b.WriteString(center("Ph: " + *info.Phone))
		}
	}
	b.WriteString(rule())

	b.WriteString(fmt.Sprintf("Bill No : %s\n", bill.Number))
	b.WriteString(fmt.Sprintf("Date    : %s\n", bill.CreatedAt.Format("02-01-2006 15:04:05")))
	b.WriteString(fmt.Sprintf("Staff   : %s\n", bill.StaffUsername))
	b.WriteString(rule())

	b.WriteString(fmt.Sprintf("%-20s %4s %6s %7s\n", "Item", "Qty", "Rate", "Total"))
	for _, item := range bill.Items {
		b.WriteString(fmt.Sprintf("%-20s %4d %6s %7s\n",
			clip(item.ItemName, 20),
			item.Quantity,
			item.UnitPrice.StringFixed(2),
			item.TotalPrice.StringFixed(2)))
	}
	b.WriteString(rule())

	b.WriteString(fmt.Sprintf("%-27s %12s\n", "TOTAL", bill.TotalAmount.StringFixed(2)))
	b.WriteString(fmt.Sprintf("%-27s %12s\n", "PAYMENT", strings.ToUpper(string(bill.PaymentMethod))))
	b.WriteString(rule())
	b.WriteString(center("Thank you, visit again!"))

	return &Document{
		BillNumber:  bill.Number,
		ContentType: "text/plain",
		Content:     []byte(b.String()),
	}, nil
}

func rule() string {
	return strings.Repeat("-", receiptWidth) + "\n"
}

func center(s string) string {
	s = clip(s, receiptWidth)
	pad := (receiptWidth - len(s)) / 2
	return strings.Repeat(" ", pad) + s + "\n"
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
