package domain

import (
	"context"
	"time"
)

// CacheRepository stores JSON-encodable values under a TTL.
// Get decodes the stored value into dst and returns ErrCacheMiss when absent or expired.
type CacheRepository interface {
	Get(ctx context.Context, key string, dst interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// PantryAPI is the kitchen API surface for pantry items.
// Create returns ErrConflict when the ingredient is already in the pantry.
type PantryAPI interface {
	ListPantry(ctx context.Context) ([]PantryItem, error)
	GetPantryItem(ctx context.Context, id int64) (*PantryItem, error)
	CreatePantryItem(ctx context.Context, in PantryItemCreate) (*PantryItem, error)
	UpdatePantryItem(ctx context.Context, id int64, in PantryItemUpdate) (*PantryItem, error)
	DeletePantryItem(ctx context.Context, id int64) error
}

// IngredientAPI is the kitchen API free-text ingredient search
type IngredientAPI interface {
	SearchIngredients(ctx context.Context, query string, limit int) ([]IngredientSearchResult, error)
}

// ShoppingListAPI is the kitchen API surface for the shopping list
type ShoppingListAPI interface {
	ListShopping(ctx context.Context, onlyPending bool) ([]ShoppingListItem, error)
	CreateShoppingItem(ctx context.Context, in ShoppingListItemCreate) (*ShoppingListItem, error)
	UpdateShoppingItem(ctx context.Context, id int64, in ShoppingListItemUpdate) (*ShoppingListItem, error)
	DeleteShoppingItem(ctx context.Context, id int64) error
}

// RecipeAPI is the kitchen API surface for the recipe corpus
type RecipeAPI interface {
	ListRecipes(ctx context.Context, q RecipeQuery) (*RecipePage, error)
	GetRecipe(ctx context.Context, id int64) (*Recipe, error)
	AddMissingToShoppingList(ctx context.Context, recipeID int64, includePartiallyAvailable bool) ([]AddedItem, error)
	AddIngredientToShoppingList(ctx context.Context, recipeID, ingredientID int64) (*AddedItem, error)
	ExpiringRecommendations(ctx context.Context, days, limit int) ([]Recommendation, error)
}

// LogAPI is the kitchen API surface for the food log
type LogAPI interface {
	LogRecipe(ctx context.Context, in RecipeLogCreate) (*LogEntry, error)
	LogIngredient(ctx context.Context, in IngredientLogCreate) (*LogEntry, error)
	DailySummary(ctx context.Context, date time.Time) (*DailySummary, error)
	DeleteLogEntry(ctx context.Context, id int64) error
}

// ProfileAPI is the kitchen API surface for the user profile
type ProfileAPI interface {
	GetProfile(ctx context.Context) (*Profile, error)
	UpdateProfile(ctx context.Context, in ProfileUpdate) (*Profile, error)
}

// KitchenAPI is the whole remote collaborator
type KitchenAPI interface {
	PantryAPI
	IngredientAPI
	ShoppingListAPI
	RecipeAPI
	LogAPI
	ProfileAPI
}
