package kitchenapi

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/pantrylens/kitchen/internal/domain"
)

// Accepted source keys for each macro, in lookup order. The kitchen API stores
// nutrition as loosely keyed JSON, so this is the only place alternate names exist.
var (
	caloriesKeys = []string{"calories", "kcal"}
	proteinKeys  = []string{"protein"}
	carbsKeys    = []string{"carbohydrates", "carbs"}
	fatKeys      = []string{"fat"}
)

// NormalizeMacros converts a raw nutrition object into the canonical macro record.
// Missing, null and non-numeric values count as 0.
func NormalizeMacros(raw map[string]interface{}) domain.Macros {
	return domain.Macros{
		Calories: firstNumber(raw, caloriesKeys),
		Protein:  firstNumber(raw, proteinKeys),
		Carbs:    firstNumber(raw, carbsKeys),
		Fat:      firstNumber(raw, fatKeys),
	}
}

// firstNumber returns the first non-zero numeric value among keys
func firstNumber(raw map[string]interface{}, keys []string) float64 {
	for _, key := range keys {
		if v := toFloat(raw[key]); v != 0 {
			return v
		}
	}
	return 0
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, _ := n.Float64()
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// recipeWire is a recipe as the kitchen API returns it
type recipeWire struct {
	ID                   int64                  `json:"id"`
	Title                string                 `json:"title"`
	Servings             *int                   `json:"servings"`
	ImageURL             *string                `json:"image_url"`
	Summary              *string                `json:"summary"`
	Instructions         *string                `json:"instructions"`
	Diets                []string               `json:"diets"`
	Intolerances         []string               `json:"intolerances"`
	IntoleranceWarnings  []string               `json:"intolerance_warnings"`
	IsCompatibleWithUser *bool                  `json:"is_compatible_with_user"`
	Nutrition            map[string]interface{} `json:"nutrition_totals_per_serving"`
	Ingredients          []ingredientWire       `json:"ingredients"`
}

type ingredientWire struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	CanonicalName   string   `json:"canonical_name"`
	Amount          *float64 `json:"amount"`
	Unit            *string  `json:"unit"`
	IsAvailable     bool     `json:"is_available"`
	PantryQuantity  *float64 `json:"pantry_quantity"`
	PantryUnit      *string  `json:"pantry_unit"`
	MissingQuantity *float64 `json:"missing_quantity"`
}

type recipePageWire struct {
	Recipes       []recipeWire `json:"recipes"`
	TotalFiltered int          `json:"total_filtered"`
}

type recommendationWire struct {
	ID                       int64                       `json:"id"`
	Title                    string                      `json:"title"`
	ImageURL                 *string                     `json:"image_url"`
	Servings                 *int                        `json:"servings"`
	Nutrition                map[string]interface{}      `json:"nutrition_totals_per_serving"`
	ExpiringIngredientsCount int                         `json:"expiring_ingredients_count"`
	TotalIngredientsCount    int                         `json:"total_ingredients_count"`
	CoverageRatio            float64                     `json:"coverage_ratio"`
	ExpiringIngredients      []domain.ExpiringIngredient `json:"expiring_ingredients"`
}

type logEntryWire struct {
	ID             int64                  `json:"id"`
	Type           string                 `json:"type"`
	RecipeID       *int64                 `json:"recipe_id"`
	RecipeTitle    *string                `json:"recipe_title"`
	IngredientID   *int64                 `json:"ingredient_id"`
	IngredientName *string                `json:"ingredient_name_es"`
	Quantity       float64                `json:"quantity"`
	Unit           string                 `json:"unit"`
	LoggedAt       time.Time              `json:"logged_at"`
	Macros         map[string]interface{} `json:"macros"`
}

type dailySummaryWire struct {
	Date    string                 `json:"date"`
	Totals  map[string]interface{} `json:"totals"`
	Entries []logEntryWire         `json:"entries"`
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func toRecipe(w recipeWire) domain.Recipe {
	r := domain.Recipe{
		ID:                   w.ID,
		Title:                w.Title,
		ImageURL:             str(w.ImageURL),
		Summary:              str(w.Summary),
		Instructions:         str(w.Instructions),
		Diets:                w.Diets,
		IntoleranceTags:      w.Intolerances,
		IntoleranceWarnings:  w.IntoleranceWarnings,
		IsCompatibleWithUser: w.IsCompatibleWithUser,
		NutritionPerServing:  NormalizeMacros(w.Nutrition),
	}
	if w.Servings != nil {
		r.Servings = *w.Servings
	}
	if r.Diets == nil {
		r.Diets = []string{}
	}
	if r.IntoleranceWarnings == nil {
		r.IntoleranceWarnings = []string{}
	}
	for _, iw := range w.Ingredients {
		ing := domain.RecipeIngredient{
			ID:              iw.ID,
			Name:            iw.Name,
			CanonicalName:   iw.CanonicalName,
			Unit:            str(iw.Unit),
			IsAvailable:     iw.IsAvailable,
			PantryQuantity:  iw.PantryQuantity,
			PantryUnit:      str(iw.PantryUnit),
			MissingQuantity: iw.MissingQuantity,
		}
		if iw.Amount != nil {
			ing.Amount = *iw.Amount
		}
		if !ing.IsAvailable {
			r.MissingCount++
		}
		r.Ingredients = append(r.Ingredients, ing)
	}
	return r
}

func toRecommendation(w recommendationWire) domain.Recommendation {
	rec := domain.Recommendation{
		RecipeID:                 w.ID,
		Title:                    w.Title,
		ImageURL:                 str(w.ImageURL),
		NutritionPerServing:      NormalizeMacros(w.Nutrition),
		ExpiringIngredientsCount: w.ExpiringIngredientsCount,
		TotalIngredientsCount:    w.TotalIngredientsCount,
		CoverageRatio:            w.CoverageRatio,
		ExpiringIngredients:      w.ExpiringIngredients,
	}
	if w.Servings != nil {
		rec.Servings = *w.Servings
	}
	return rec
}

func toLogEntry(w logEntryWire) domain.LogEntry {
	return domain.LogEntry{
		ID:             w.ID,
		Type:           domain.LogType(w.Type),
		RecipeID:       w.RecipeID,
		RecipeTitle:    str(w.RecipeTitle),
		IngredientID:   w.IngredientID,
		IngredientName: str(w.IngredientName),
		Quantity:       w.Quantity,
		Unit:           w.Unit,
		LoggedAt:       w.LoggedAt,
		Macros:         NormalizeMacros(w.Macros),
	}
}
