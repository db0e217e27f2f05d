package domain

import "time"

// Macros is the canonical macronutrient record used throughout the engine
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`  // grams
	Carbs    float64 `json:"carbs"`    // grams
	Fat      float64 `json:"fat"`      // grams
}

// LogType distinguishes recipe and ingredient log entries
type LogType string

const (
	LogTypeRecipe     LogType = "recipe"
	LogTypeIngredient LogType = "ingredient"
)

// LogEntry is one immutable food log record
type LogEntry struct {
	ID             int64     `json:"id"`
	Type           LogType   `json:"type"`
	RecipeID       *int64    `json:"recipe_id,omitempty"`
	RecipeTitle    string    `json:"recipe_title,omitempty"`
	IngredientID   *int64    `json:"ingredient_id,omitempty"`
	IngredientName string    `json:"ingredient_name_es,omitempty"`
	Quantity       float64   `json:"quantity"`
	Unit           string    `json:"unit"`
	LoggedAt       time.Time `json:"logged_at"`
	Macros         Macros    `json:"macros"`
}

// DailySummary aggregates the log entries of one calendar date
type DailySummary struct {
	Date    string     `json:"date"` // YYYY-MM-DD
	Totals  Macros     `json:"totals"`
	Entries []LogEntry `json:"entries"`
}

// RecipeLogCreate logs servings of a recipe
type RecipeLogCreate struct {
	RecipeID int64      `json:"recipe_id" validate:"required,gt=0"`
	Servings float64    `json:"servings" validate:"gt=0"`
	LoggedAt *time.Time `json:"logged_at,omitempty"`
}

// IngredientLogCreate logs a raw quantity of an ingredient
type IngredientLogCreate struct {
	IngredientID int64      `json:"ingredient_id" validate:"required,gt=0"`
	Quantity     float64    `json:"quantity" validate:"gt=0"`
	Unit         string     `json:"unit" validate:"required"`
	LoggedAt     *time.Time `json:"logged_at,omitempty"`
}

// DateLayout is the calendar date format used for filtering and summaries
const DateLayout = "2006-01-02"
