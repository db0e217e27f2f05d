package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pantrylens/kitchen/internal/domain"
)

// ListRecipes returns one page of recipes with their profile compatibility
func (h *Handler) ListRecipes(c *gin.Context) {
	var q domain.RecipeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.invalid(c, "query", err)
		return
	}
	page, err := h.svc.Recipes.List(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetRecipe returns a recipe with availability recomputed against the current pantry
func (h *Handler) GetRecipe(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	recipe, err := h.svc.Recipes.Detail(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

type addMissingRequest struct {
	IncludePartiallyAvailable bool `json:"include_partially_available"`
}

// AddMissingToShoppingList queues every unavailable ingredient of a recipe
func (h *Handler) AddMissingToShoppingList(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	var req addMissingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.invalid(c, "body", err)
			return
		}
	}
	result, err := h.svc.Reconciliation.AddMissing(c.Request.Context(), id, req.IncludePartiallyAvailable)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type addIngredientRequest struct {
	IngredientID int64 `json:"ingredient_id" binding:"required,gt=0"`
}

// AddIngredientToShoppingList queues a single recipe ingredient
func (h *Handler) AddIngredientToShoppingList(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	var req addIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalid(c, "ingredient_id", err)
		return
	}
	added, err := h.svc.Reconciliation.AddIngredient(c.Request.Context(), id, req.IngredientID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, added)
}

type expiringQuery struct {
	Days  int `form:"days" binding:"gte=0"`
	Limit int `form:"limit" binding:"gte=0,lte=100"`
}

// ExpiringRecommendations ranks recipes by the pantry ingredients about to expire
func (h *Handler) ExpiringRecommendations(c *gin.Context) {
	var q expiringQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.invalid(c, "query", err)
		return
	}
	recs, err := h.svc.Recommendations.Expiring(c.Request.Context(), h.now(), q.Days, q.Limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

type searchQuery struct {
	Q string `form:"q"`
}

// SearchIngredients looks ingredients up by name. Short queries return an empty list.
func (h *Handler) SearchIngredients(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.invalid(c, "q", err)
		return
	}
	results, err := h.svc.Search.Search(c.Request.Context(), q.Q)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}
