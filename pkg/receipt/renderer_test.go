package receipt

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"droppos/internal/core/types"
	"droppos/internal/domain/billing"
	"droppos/internal/domain/shop"
)

func testBill() *billing.Bill {
	return &billing.Bill{
		ID:            7,
		Number:        "BILL202503140001",
		TotalAmount:   types.MustMoney("450.00"),
		PaymentMethod: billing.PaymentCash,
		StaffUsername: "priya",
		CreatedAt:     time.Date(2025, 3, 14, 10, 30, 15, 0, time.Local),
		Items: []billing.BillItem{
			{ItemName: "Cotton T-Shirt", Quantity: 2, UnitPrice: types.MustMoney("100.00"), TotalPrice: types.MustMoney("200.00")},
			{ItemName: "Slim Fit Jeans", Quantity: 1, UnitPrice: types.MustMoney("250.00"), TotalPrice: types.MustMoney("250.00")},
		},
	}
}

func TestRender(t *testing.T) {
	phone := "+91 487 2334455"
	info := &shop.Info{
		Name:    "DROP",
		Tagline: "DRESS FOR LESS",
		Address: "Kuriachira, Thrissur, Kerala",
		Phone:   &phone,
	}

	doc, err := NewTextRenderer().Render(context.Background(), testBill(), info)
	require.NoError(t, err)

	assert.Equal(t, "BILL202503140001", doc.BillNumber)
	assert.Equal(t, "text/plain", doc.ContentType)

	text := string(doc.Content)
	assert.Contains(t, text, "DROP")
	assert.Contains(t, text, "DRESS FOR LESS")
	assert.Contains(t, text, "Ph: +91 487 2334455")
	assert.Contains(t, text, "Bill No : BILL202503140001")
	assert.Contains(t, text, "Date    : 14-03-2025 10:30:15")
	assert.Contains(t, text, "Staff   : priya")
	assert.Contains(t, text, "Cotton T-Shirt")
	assert.Contains(t, text, "450.00")
	assert.Contains(t, text, "CASH")
}

func TestRender_NoShopInfo(t *testing.T) {
	doc, err := NewTextRenderer().Render(context.Background(), testBill(), nil)
	require.NoError(t, err)

	text := string(doc.Content)
	assert.Contains(t, text, "BILL202503140001")
	assert.NotContains(t, text, "DROP")
}

func TestRender_NilBill(t *testing.T) {
	_, err := NewTextRenderer().Render(context.Background(), nil, nil)
	assert.Error(t, err)
}

func TestRender_LongItemNameClipped(t *testing.T) {
	bill := testBill()
	bill.Items[0].ItemName = "An Extremely Long Product Name That Cannot Fit"

	doc, err := NewTextRenderer().Render(context.Background(), bill, nil)
	require.NoError(t, err)

	for _, line := range strings.Split(string(doc.Content), "\n") {
		assert.LessOrEqual(t, len(line), receiptWidth, "line overflows receipt width: %q", line)
	}
}
