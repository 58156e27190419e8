package handlers

import (
	"github.com/gin-gonic/gin"

	"droppos/internal/domain/shop"
	"droppos/internal/infrastructure/http/v1/dto"
)

// ShopHandler provides HTTP handlers for shop identity and settings.
type ShopHandler struct {
	*BaseHandler
	service *shop.Service
}

// NewShopHandler creates a new shop handler.
func NewShopHandler(base *BaseHandler, service *shop.Service) *ShopHandler {
	return &ShopHandler{BaseHandler: base, service: service}
}

// GetInfo handles GET /shop.
func (h *ShopHandler) GetInfo(c *gin.Context) {
	info, err := h.service.GetInfo(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, info)
}

// UpdateInfo handles PUT /shop.
func (h *ShopHandler) UpdateInfo(c *gin.Context) {
	var req dto.UpdateShopInfoRequest
	if !h.BindJSON(c, &req) {
		return
	}

	info := &shop.Info{
		Name:    req.ShopName,
		Tagline: req.Tagline,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	}

	if err := h.service.UpdateInfo(c.Request.Context(), info); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, info)
}

// GetSetting handles GET /settings/:key.
func (h *ShopHandler) GetSetting(c *gin.Context) {
	key := c.Param("key")
	value, err := h.service.GetSetting(c.Request.Context(), key)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"key": key, "value": value})
}

// SetSetting handles PUT /settings/:key.
func (h *ShopHandler) SetSetting(c *gin.Context) {
	var req dto.SetSettingRequest
	if !h.BindJSON(c, &req) {
		return
	}

	key := c.Param("key")
	if err := h.service.SetSetting(c.Request.Context(), key, req.Value); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"key": key, "value": req.Value})
}
