package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pantrylens/kitchen/internal/domain"
)

// ListPantry returns the pantry annotated with each item's freshness
func (h *Handler) ListPantry(c *gin.Context) {
	items, err := h.svc.Reconciliation.PantryView(c.Request.Context(), h.now())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreatePantryItem adds an ingredient to the pantry
func (h *Handler) CreatePantryItem(c *gin.Context) {
	var in domain.PantryItemCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		h.invalid(c, "body", err)
		return
	}
	item, err := h.svc.Reconciliation.CreatePantryItem(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// UpdatePantryItem edits quantity, unit or expiration of a pantry item
func (h *Handler) UpdatePantryItem(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	var in domain.PantryItemUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		h.invalid(c, "body", err)
		return
	}
	item, err := h.svc.Reconciliation.UpdatePantryItem(c.Request.Context(), id, in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeletePantryItem removes a pantry item without restocking it
func (h *Handler) DeletePantryItem(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	if _, err := h.svc.Reconciliation.ConsumeOnly(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type consumeRequest struct {
	Restock bool `form:"restock" json:"restock"`
}

// ConsumePantryItem removes a pantry item and, when restock is set, puts it back on
// the shopping list. A failed restock after a successful removal answers 207.
func (h *Handler) ConsumePantryItem(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	var req consumeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.invalid(c, "restock", err)
		return
	}
	result, err := h.svc.Reconciliation.Consume(c.Request.Context(), id, req.Restock)
	h.respond(c, http.StatusOK, result, err)
}
