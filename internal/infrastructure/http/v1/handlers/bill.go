package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"droppos/internal/core/apperror"
	"droppos/internal/core/clock"
	"droppos/internal/domain/billing"
)

const dateLayout = "2006-01-02"

// BillHandler provides HTTP handlers for committed bills.
type BillHandler struct {
	*BaseHandler
	service *billing.Service
	clk     clock.Clock
}

// NewBillHandler creates a new bill handler.
func NewBillHandler(base *BaseHandler, service *billing.Service, clk clock.Clock) *BillHandler {
	if clk == nil {
		clk = clock.System{}
	}
	return &BillHandler{BaseHandler: base, service: service, clk: clk}
}

// List handles GET /bills?from=YYYY-MM-DD&to=YYYY-MM-DD. Both bounds are
// inclusive calendar days in server-local time; omitted bounds default to
// today. An inverted range matches nothing and returns an empty list.
func (h *BillHandler) List(c *gin.Context) {
	today := h.clk.Now()

	from, ok := h.parseDate(c, "from", today)
	if !ok {
		return
	}
	to, ok := h.parseDate(c, "to", today)
	if !ok {
		return
	}

	bills, err := h.service.GetByDateRange(c.Request.Context(), from, to)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, bills)
}

// Get handles GET /bills/:id and returns the header with its items.
func (h *BillHandler) Get(c *gin.Context) {
	billID, ok := h.ParseInt64Param(c, "id")
	if !ok {
		return
	}

	bill, err := h.service.GetDetails(c.Request.Context(), billID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, bill)
}

// ClearAll handles DELETE /bills. Administrative reset of all billing
// history.
func (h *BillHandler) ClearAll(c *gin.Context) {
	if err := h.service.ClearAll(c.Request.Context()); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "all bills cleared")
}

func (h *BillHandler) parseDate(c *gin.Context, key string, fallback time.Time) (time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, true
	}

	t, err := time.ParseInLocation(dateLayout, raw, fallback.Location())
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid "+key+" date, want YYYY-MM-DD").WithDetail(key, raw))
		return time.Time{}, false
	}
	return t, true
}
