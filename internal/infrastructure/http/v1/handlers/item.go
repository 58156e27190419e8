package handlers

import (
	"github.com/gin-gonic/gin"

	"droppos/internal/core/apperror"
	"droppos/internal/core/types"
	"droppos/internal/domain/catalog"
	"droppos/internal/infrastructure/http/v1/dto"
)

// ItemHandler provides HTTP handlers for the item catalog.
type ItemHandler struct {
	*BaseHandler
	service *catalog.Service
}

// NewItemHandler creates a new item handler.
func NewItemHandler(base *BaseHandler, service *catalog.Service) *ItemHandler {
	return &ItemHandler{BaseHandler: base, service: service}
}

// List handles GET /items.
func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}

// GetByCode handles GET /items/:code.
func (h *ItemHandler) GetByCode(c *gin.Context) {
	item, err := h.service.FindByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, item)
}

// GetByBarcode handles GET /items/barcode/:barcode.
func (h *ItemHandler) GetByBarcode(c *gin.Context) {
	item, err := h.service.FindByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, item)
}

// Create handles POST /items.
func (h *ItemHandler) Create(c *gin.Context) {
	var req dto.CreateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	price, err := types.NewMoneyFromString(req.Price)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid price").WithDetail("price", req.Price))
		return
	}

	item := &catalog.Item{
		Code:       req.ItemCode,
		Name:       req.ItemName,
		Price:      price,
		Barcode:    req.Barcode,
		QRCodePath: req.QRCodePath,
	}

	if err := h.service.Create(c.Request.Context(), item); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, item.ID)
}

// Update handles PUT /items/:id.
func (h *ItemHandler) Update(c *gin.Context) {
	itemID, ok := h.ParseInt64Param(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	price, err := types.NewMoneyFromString(req.Price)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid price").WithDetail("price", req.Price))
		return
	}

	item := &catalog.Item{
		ID:         itemID,
		Code:       req.ItemCode,
		Name:       req.ItemName,
		Price:      price,
		Barcode:    req.Barcode,
		QRCodePath: req.QRCodePath,
	}

	if err := h.service.Update(c.Request.Context(), item); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, item)
}

// Delete handles DELETE /items/:id.
func (h *ItemHandler) Delete(c *gin.Context) {
	itemID, ok := h.ParseInt64Param(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), itemID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
