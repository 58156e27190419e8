package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"droppos/internal/core/apperror"
	"droppos/internal/domain/billing"
	"droppos/internal/domain/cart"
	"droppos/internal/domain/shop"
	"droppos/internal/infrastructure/http/v1/dto"
	"droppos/pkg/logger"
	"droppos/pkg/receipt"
)

// SessionHandler provides HTTP handlers for billing sessions: cart
// manipulation and checkout.
type SessionHandler struct {
	*BaseHandler
	registry *cart.Registry
	billing  *billing.Service
	shop     *shop.Service
	renderer receipt.Renderer
	printer  receipt.Printer
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(
	base *BaseHandler,
	registry *cart.Registry,
	billingService *billing.Service,
	shopService *shop.Service,
	renderer receipt.Renderer,
	printer receipt.Printer,
) *SessionHandler {
	return &SessionHandler{
		BaseHandler: base,
		registry:    registry,
		billing:     billingService,
		shop:        shopService,
		renderer:    renderer,
		printer:     printer,
	}
}

// Open handles POST /sessions.
func (h *SessionHandler) Open(c *gin.Context) {
	var req dto.OpenSessionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	s := h.registry.Open(req.StaffUsername)
	h.Created(c, s.ID)
}

// Get handles GET /sessions/:id and returns the current cart view.
func (h *SessionHandler) Get(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	h.OK(c, s.CartView())
}

// AddItem handles POST /sessions/:id/items.
func (h *SessionHandler) AddItem(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req dto.AddItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}

	if err := s.AddItem(c.Request.Context(), req.ItemCode, qty); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, s.CartView())
}

// Scan handles POST /sessions/:id/scan. Raw scanner input is buffered; the
// cart update happens once the debounce window closes, so the response
// reflects the cart as of receipt of the fragment.
func (h *SessionHandler) Scan(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req dto.ScanRequest
	if !h.BindJSON(c, &req) {
		return
	}

	s.ScanInput(req.Input)
	h.OK(c, s.CartView())
}

// RemoveLine handles DELETE /sessions/:id/lines/:index.
func (h *SessionHandler) RemoveLine(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid index").WithDetail("index", c.Param("index")))
		return
	}

	if err := s.RemoveLine(index); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, s.CartView())
}

// ClearCart handles DELETE /sessions/:id/lines.
func (h *SessionHandler) ClearCart(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.Clear()
	h.OK(c, s.CartView())
}

// Checkout handles POST /sessions/:id/checkout. The cart snapshot is
// committed as a bill; the live cart is cleared only after the commit
// succeeds. Receipt rendering and printing run after the commit and never
// fail the request.
func (h *SessionHandler) Checkout(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req dto.CheckoutRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	bill, err := h.billing.Commit(ctx, s.Snapshot(), req.PaymentMethod, s.StaffUsername)
	if err != nil {
		h.Error(c, err)
		return
	}
	s.Clear()

	h.printReceipt(ctx, bill)
	h.OK(c, bill)
}

// Close handles DELETE /sessions/:id.
func (h *SessionHandler) Close(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	if err := h.registry.Close(id); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// printReceipt renders and dispatches the receipt best-effort. The bill is
// already durable; a printing failure must not surface as a checkout error.
func (h *SessionHandler) printReceipt(ctx context.Context, bill *billing.Bill) {
	if h.renderer == nil || h.printer == nil {
		return
	}

	info, err := h.shop.GetInfo(ctx)
	if err != nil {
		logger.Warn(ctx, "shop info unavailable for receipt", "bill", bill.Number, "error", err)
		info = nil
	}

	doc, err := h.renderer.Render(ctx, bill, info)
	if err != nil {
		logger.Error(ctx, "receipt render failed", "bill", bill.Number, "error", err)
		return
	}

	if err := h.printer.Print(ctx, doc); err != nil {
		logger.Error(ctx, "receipt print failed", "bill", bill.Number, "error", err)
	}
}

// session resolves the :id path parameter to an open session.
func (h *SessionHandler) session(c *gin.Context) (*cart.Session, bool) {
	id, ok := h.sessionID(c)
	if !ok {
		return nil, false
	}

	s, err := h.registry.Get(id)
	if err != nil {
		h.Error(c, err)
		return nil, false
	}
	return s, true
}

func (h *SessionHandler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid session id").WithDetail("id", c.Param("id")))
		return uuid.Nil, false
	}
	return id, true
}
