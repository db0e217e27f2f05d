package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pantrylens/kitchen/internal/domain"
)

type shoppingListQuery struct {
	OnlyPending bool `form:"only_pending"`
}

// ListShopping returns the shopping list
func (h *Handler) ListShopping(c *gin.Context) {
	var q shoppingListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.invalid(c, "only_pending", err)
		return
	}
	items, err := h.svc.Reconciliation.ShoppingList(c.Request.Context(), q.OnlyPending)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateShoppingItem adds a line to the shopping list
func (h *Handler) CreateShoppingItem(c *gin.Context) {
	var in domain.ShoppingListItemCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		h.invalid(c, "body", err)
		return
	}
	item, err := h.svc.Reconciliation.CreateShoppingItem(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// DeleteShoppingItem removes a line from the shopping list
func (h *Handler) DeleteShoppingItem(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	if err := h.svc.Reconciliation.DeleteShoppingItem(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type setDoneRequest struct {
	IsDone *bool `json:"is_done" binding:"required"`
}

// SetShoppingDone marks a shopping-list line done or pending. The response carries
// the pantry prefill offered when an item is marked done.
func (h *Handler) SetShoppingDone(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	var req setDoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalid(c, "is_done", err)
		return
	}
	result, err := h.svc.Reconciliation.SetDone(c.Request.Context(), id, *req.IsDone)
	if err != nil {
		if result != nil && result.Reverted {
			c.JSON(http.StatusBadGateway, gin.H{"result": result, "error": err.Error()})
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// PurchaseToPantry stores a bought item in the pantry. A duplicate ingredient is
// reported with 409 and the conflict message, nothing else is changed.
func (h *Handler) PurchaseToPantry(c *gin.Context) {
	var in domain.PantryItemCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		h.invalid(c, "body", err)
		return
	}
	result, err := h.svc.Reconciliation.PurchaseToPantry(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if result.Conflict {
		c.JSON(http.StatusConflict, result)
		return
	}
	c.JSON(http.StatusCreated, result)
}
