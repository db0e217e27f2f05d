package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pantrylens/kitchen/internal/domain"
)

// LogRecipe records servings of a recipe in the food log
func (h *Handler) LogRecipe(c *gin.Context) {
	var in domain.RecipeLogCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		h.invalid(c, "body", err)
		return
	}
	entry, err := h.svc.Nutrition.LogRecipe(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// LogIngredient records a quantity of a single ingredient in the food log
func (h *Handler) LogIngredient(c *gin.Context) {
	var in domain.IngredientLogCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		h.invalid(c, "body", err)
		return
	}
	entry, err := h.svc.Nutrition.LogIngredient(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// DailySummary returns the log entries of a date with locally computed totals
func (h *Handler) DailySummary(c *gin.Context) {
	date, err := h.dateQuery(c, "date")
	if err != nil {
		h.respondError(c, err)
		return
	}
	summary, err := h.svc.Nutrition.DailySummary(c.Request.Context(), date)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// DeleteLogEntry removes a log entry and returns the recomputed summary of the date
func (h *Handler) DeleteLogEntry(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	date, err := h.dateQuery(c, "date")
	if err != nil {
		h.respondError(c, err)
		return
	}
	summary, err := h.svc.Nutrition.DeleteEntry(c.Request.Context(), id, date)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetProfile returns the diet profile
func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.svc.Profile.Get(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile changes the diet type, intolerances or name
func (h *Handler) UpdateProfile(c *gin.Context) {
	var in domain.ProfileUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		h.invalid(c, "body", err)
		return
	}
	profile, err := h.svc.Profile.Update(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
