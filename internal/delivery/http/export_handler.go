package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pantrylens/kitchen/internal/domain"
	"github.com/pantrylens/kitchen/internal/export"
)

// ExportShoppingList downloads the shopping list as a spreadsheet
func (h *Handler) ExportShoppingList(c *gin.Context) {
	items, err := h.svc.Reconciliation.ShoppingList(c.Request.Context(), false)
	if err != nil {
		h.respondError(c, err)
		return
	}
	data, err := export.ShoppingList(items)
	if err != nil {
		h.respondError(c, fmt.Errorf("rendering shopping list: %w", err))
		return
	}
	h.attachment(c, "shopping-list", data)
}

// ExportPantry downloads the pantry with its freshness as a spreadsheet
func (h *Handler) ExportPantry(c *gin.Context) {
	views, err := h.svc.Reconciliation.PantryView(c.Request.Context(), h.now())
	if err != nil {
		h.respondError(c, err)
		return
	}
	items := make([]domain.PantryItem, 0, len(views))
	for _, v := range views {
		items = append(items, v.PantryItem)
	}
	data, err := export.PantryReport(items, h.now())
	if err != nil {
		h.respondError(c, fmt.Errorf("rendering pantry report: %w", err))
		return
	}
	h.attachment(c, "pantry", data)
}

func (h *Handler) attachment(c *gin.Context, name string, data []byte) {
	filename := fmt.Sprintf("%s-%s.xlsx", name, h.now().Format(domain.DateLayout))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, export.ContentType, data)
}
