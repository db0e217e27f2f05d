package kitchenapi

import (
	"encoding/json"
	"testing"

	"github.com/pantrylens/kitchen/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeMacros(t *testing.T) {
	tests := []struct {
		name     string
		raw      map[string]interface{}
		expected domain.Macros
	}{
		{
			name:     "canonical keys",
			raw:      map[string]interface{}{"calories": 120.0, "protein": 5.0, "carbohydrates": 20.0, "fat": 2.5},
			expected: domain.Macros{Calories: 120, Protein: 5, Carbs: 20, Fat: 2.5},
		},
		{
			name:     "alternate keys",
			raw:      map[string]interface{}{"kcal": 90.0, "carbs": 11.0},
			expected: domain.Macros{Calories: 90, Carbs: 11},
		},
		{
			name:     "zero canonical falls through to alternate",
			raw:      map[string]interface{}{"calories": 0.0, "kcal": 75.0},
			expected: domain.Macros{Calories: 75},
		},
		{
			name:     "strings and json numbers",
			raw:      map[string]interface{}{"calories": " 42.5 ", "protein": json.Number("3")},
			expected: domain.Macros{Calories: 42.5, Protein: 3},
		},
		{
			name:     "nulls and junk are zero",
			raw:      map[string]interface{}{"calories": nil, "fat": "n/a", "protein": true},
			expected: domain.Macros{},
		},
		{
			name:     "nil map",
			raw:      nil,
			expected: domain.Macros{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeMacros(tt.raw))
		})
	}
}

func TestToRecipe(t *testing.T) {
	servings := 4
	amount := 2.0
	unit := "pcs"
	missing := 1.0

	r := toRecipe(recipeWire{
		ID:       8,
		Title:    "Omelette",
		Servings: &servings,
		Ingredients: []ingredientWire{
			{ID: 1, Name: "egg", Amount: &amount, Unit: &unit, IsAvailable: false, MissingQuantity: &missing},
			{ID: 2, Name: "salt", IsAvailable: true},
		},
	})

	assert.Equal(t, 4, r.Servings)
	assert.Equal(t, 1, r.MissingCount)
	assert.Equal(t, []string{}, r.Diets)
	assert.Equal(t, []string{}, r.IntoleranceWarnings)
	assert.Equal(t, 2.0, r.Ingredients[0].Amount)
	assert.Equal(t, "pcs", r.Ingredients[0].Unit)
	assert.Equal(t, "", r.Ingredients[1].Unit)
}

func TestToLogEntry(t *testing.T) {
	title := "Soup"
	e := toLogEntry(logEntryWire{ID: 3, Type: "recipe", RecipeTitle: &title, Macros: map[string]interface{}{"kcal": 250}})

	assert.Equal(t, domain.LogTypeRecipe, e.Type)
	assert.Equal(t, "Soup", e.RecipeTitle)
	assert.Equal(t, 250.0, e.Macros.Calories)
	assert.Empty(t, e.IngredientName)
}
