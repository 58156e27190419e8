// Package dto provides Data Transfer Objects for API requests/responses.
package dto

// --- Common ---

// IDResponse returns a created entity's id.
type IDResponse struct {
	ID any `json:"id"`
}

// SuccessResponse reports a completed operation.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// --- Catalog ---

// CreateItemRequest creates a catalog item.
type CreateItemRequest struct {
	ItemCode   string  `json:"itemCode" binding:"required"`
	ItemName   string  `json:"itemName" binding:"required"`
	Price      string  `json:"price" binding:"required"`
	Barcode    *string `json:"barcode,omitempty"`
	QRCodePath *string `json:"qrCodePath,omitempty"`
}

// UpdateItemRequest updates a catalog item.
type UpdateItemRequest struct {
	ItemCode   string  `json:"itemCode" binding:"required"`
	ItemName   string  `json:"itemName" binding:"required"`
	Price      string  `json:"price" binding:"required"`
	Barcode    *string `json:"barcode,omitempty"`
	QRCodePath *string `json:"qrCodePath,omitempty"`
}

// --- Sessions ---

// OpenSessionRequest opens a billing session for an operator.
type OpenSessionRequest struct {
	StaffUsername string `json:"staffUsername" binding:"required"`
}

// AddItemRequest adds an item to the session's cart.
type AddItemRequest struct {
	ItemCode string `json:"itemCode" binding:"required"`
	Quantity int64  `json:"quantity"`
}

// ScanRequest feeds raw barcode scanner input into the session.
type ScanRequest struct {
	Input string `json:"input" binding:"required"`
}

// CheckoutRequest commits the session's cart as a bill.
type CheckoutRequest struct {
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

// --- Shop ---

// UpdateShopInfoRequest updates the shop identity.
type UpdateShopInfoRequest struct {
	ShopName string  `json:"shopName" binding:"required"`
	Tagline  string  `json:"tagline"`
	Address  string  `json:"address" binding:"required"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// SetSettingRequest stores one setting value.
type SetSettingRequest struct {
	Value string `json:"value" binding:"required"`
}
