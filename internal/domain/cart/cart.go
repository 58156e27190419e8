// Package cart provides the session-local staging area of items before a
// sale is committed. A cart is mutable, lives in memory only, and is owned
// by exactly one billing session.
package cart

import (
	"droppos/internal/core/apperror"
	"droppos/internal/core/types"
	"droppos/internal/domain/catalog"
)

// Line is one item-and-quantity entry in a cart. Name and unit price are
// copied from the catalog at the time of add; later catalog edits must not
// retroactively change an open cart.
type Line struct {
	ItemID     int64       `json:"itemId"`
	ItemCode   string      `json:"itemCode"`
	ItemName   string      `json:"itemName"`
	Quantity   int64       `json:"quantity"`
	UnitPrice  types.Money `json:"unitPrice"`
	TotalPrice types.Money `json:"totalPrice"`
}

// Cart holds an ordered sequence of lines. Insertion order is significant
// for display. At most one line exists per item identity: adding an item
// already present merges into the existing line.
type Cart struct {
	lines []Line
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{lines: make([]Line, 0)}
}

// Add merges qty of the given catalog item into the cart. If a line for the
// item already exists its quantity grows and its total is recomputed,
// otherwise a new line is appended capturing the item's current name and
// price.
func (c *Cart) Add(item *catalog.Item, qty int64) error {
	if qty <= 0 {
		return apperror.NewInvalidQuantity(qty)
	}

	for i := range c.lines {
		if c.lines[i].ItemID == item.ID {
			c.lines[i].Quantity += qty
			c.lines[i].TotalPrice = c.lines[i].UnitPrice.Mul(types.NewMoneyFromInt(c.lines[i].Quantity))
			return nil
		}
	}

	c.lines = append(c.lines, Line{
		ItemID:     item.ID,
		ItemCode:   item.Code,
		ItemName:   item.Name,
		Quantity:   qty,
		UnitPrice:  item.Price,
		TotalPrice: item.Price.Mul(types.NewMoneyFromInt(qty)),
	})
	return nil
}

// RemoveLine deletes the line at the given zero-based index.
func (c *Cart) RemoveLine(index int) error {
	if index < 0 || index >= len(c.lines) {
		return apperror.NewIndexOutOfRange(index, len(c.lines))
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return nil
}

// Clear empties all lines unconditionally.
func (c *Cart) Clear() {
	c.lines = c.lines[:0]
}

// Total returns the sum of all line totals; zero for an empty cart.
func (c *Cart) Total() types.Money {
	total := types.Zero()
	for _, l := range c.lines {
		total = total.Add(l.TotalPrice)
	}
	return total
}

// Lines returns a copy of the lines in insertion order. Mutating the
// returned slice does not affect the cart.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// TotalQuantity returns the sum of quantities across all lines.
func (c *Cart) TotalQuantity() int64 {
	var qty int64
	for _, l := range c.lines {
		qty += l.Quantity
	}
	return qty
}
