package domain

// Recipe is a read-only recipe owned by the kitchen API
type Recipe struct {
	ID                   int64              `json:"id"`
	Title                string             `json:"title"`
	Servings             int                `json:"servings"`
	ImageURL             string             `json:"image_url,omitempty"`
	Summary              string             `json:"summary,omitempty"`
	Instructions         string             `json:"instructions,omitempty"`
	Diets                []string           `json:"diets"`
	IntoleranceTags      []string           `json:"intolerance_tags,omitempty"`
	IntoleranceWarnings  []string           `json:"intolerance_warnings"`
	IsCompatibleWithUser *bool              `json:"is_compatible_with_user,omitempty"`
	NutritionPerServing  Macros             `json:"nutrition_totals_per_serving"`
	Ingredients          []RecipeIngredient `json:"ingredients,omitempty"`
	MissingCount         int                `json:"missing_count"`
}

// RecipeIngredient is one ingredient requirement of a recipe, with its pantry availability
type RecipeIngredient struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	CanonicalName   string   `json:"canonical_name,omitempty"`
	Amount          float64  `json:"amount"`
	Unit            string   `json:"unit"`
	IsAvailable     bool     `json:"is_available"`
	PantryQuantity  *float64 `json:"pantry_quantity,omitempty"`
	PantryUnit      string   `json:"pantry_unit,omitempty"`
	MissingQuantity *float64 `json:"missing_quantity,omitempty"`
}

// RecipeQuery filters and pages the recipe listing
type RecipeQuery struct {
	Skip                int      `form:"skip" validate:"gte=0"`
	Limit               int      `form:"limit" validate:"gte=0,lte=100"`
	DietType            string   `form:"diet_type"`
	ExcludeIntolerances []string `form:"exclude_intolerances"`
	UseUserProfile      bool     `form:"use_user_profile"`
}

// RecipePage is one page of the filtered recipe listing
type RecipePage struct {
	Recipes       []Recipe `json:"recipes"`
	TotalFiltered int      `json:"total_filtered"`
}

// ExpiringIngredient is a pantry ingredient inside the expiry window used by a recipe
type ExpiringIngredient struct {
	IngredientID    int64  `json:"ingredient_id"`
	IngredientName  string `json:"ingredient_name_es"`
	ExpiresAt       string `json:"expires_at"`
	DaysUntilExpiry int    `json:"days_until_expiry"`
}

// Recommendation is a recipe ranked by how many expiring pantry ingredients it consumes
type Recommendation struct {
	RecipeID                 int64                `json:"id"`
	Title                    string               `json:"title"`
	ImageURL                 string               `json:"image_url,omitempty"`
	Servings                 int                  `json:"servings,omitempty"`
	NutritionPerServing      Macros               `json:"nutrition_totals_per_serving"`
	ExpiringIngredientsCount int                  `json:"expiring_ingredients_count"`
	TotalIngredientsCount    int                  `json:"total_ingredients_count"`
	CoverageRatio            float64              `json:"coverage_ratio"`
	ExpiringIngredients      []ExpiringIngredient `json:"expiring_ingredients"`
}

// IngredientSearchResult is one hit of the free-text ingredient search
type IngredientSearchResult struct {
	IngredientID          int64  `json:"ingredient_id"`
	Name                  string `json:"name_es"`
	Category              string `json:"category,omitempty"`
	IsTranslationVerified *bool  `json:"is_translation_verified,omitempty"`
}
