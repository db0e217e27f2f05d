package kitchenapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pantrylens/kitchen/internal/domain"
)

// Operation names used for logging, metrics and status mapping
const (
	opPantryList       = "pantry.list"
	opPantryGet        = "pantry.get"
	opPantryCreate     = "pantry.create"
	opPantryUpdate     = "pantry.update"
	opPantryDelete     = "pantry.delete"
	opIngredientSearch = "ingredients.search"
	opShoppingList     = "shopping.list"
	opShoppingCreate   = "shopping.create"
	opShoppingUpdate   = "shopping.update"
	opShoppingDelete   = "shopping.delete"
	opRecipeList       = "recipes.list"
	opRecipeGet        = "recipes.get"
	opRecipeAddMissing = "recipes.add_missing"
	opRecipeAddOne     = "recipes.add_ingredient"
	opRecipeExpiring   = "recipes.expiring"
	opLogRecipe        = "log.recipe"
	opLogIngredient    = "log.ingredient"
	opLogDailySummary  = "log.daily_summary"
	opLogDelete        = "log.delete"
	opProfileGet       = "profile.get"
	opProfileUpdate    = "profile.update"
)

const (
	maxSearchLimit        = 50
	defaultSearchLimit    = 20
	defaultIngredientUnit = "g"
)

var _ domain.KitchenAPI = (*Client)(nil)

func idPath(prefix string, id int64) string {
	return fmt.Sprintf("%s/%d", prefix, id)
}

// --- pantry ---

func (c *Client) ListPantry(ctx context.Context) ([]domain.PantryItem, error) {
	var items []domain.PantryItem
	if err := c.do(ctx, opPantryList, http.MethodGet, "/pantry/", nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetPantryItem(ctx context.Context, id int64) (*domain.PantryItem, error) {
	var item domain.PantryItem
	if err := c.do(ctx, opPantryGet, http.MethodGet, idPath("/pantry", id), nil, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) CreatePantryItem(ctx context.Context, in domain.PantryItemCreate) (*domain.PantryItem, error) {
	var item domain.PantryItem
	if err := c.do(ctx, opPantryCreate, http.MethodPost, "/pantry/", nil, in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdatePantryItem(ctx context.Context, id int64, in domain.PantryItemUpdate) (*domain.PantryItem, error) {
	var item domain.PantryItem
	if err := c.do(ctx, opPantryUpdate, http.MethodPatch, idPath("/pantry", id), nil, in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeletePantryItem(ctx context.Context, id int64) error {
	return c.do(ctx, opPantryDelete, http.MethodDelete, idPath("/pantry", id), nil, nil, nil)
}

// --- ingredients ---

// SearchIngredients runs the free-text ingredient search. limit is clamped to 1..50.
func (c *Client) SearchIngredients(ctx context.Context, query string, limit int) ([]domain.IngredientSearchResult, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	var results []domain.IngredientSearchResult
	if err := c.do(ctx, opIngredientSearch, http.MethodGet, "/ingredients/search", params, nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// --- shopping list ---

func (c *Client) ListShopping(ctx context.Context, onlyPending bool) ([]domain.ShoppingListItem, error) {
	params := url.Values{}
	if onlyPending {
		params.Set("only_pending", "true")
	}
	var items []domain.ShoppingListItem
	if err := c.do(ctx, opShoppingList, http.MethodGet, "/shopping-list/", params, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) CreateShoppingItem(ctx context.Context, in domain.ShoppingListItemCreate) (*domain.ShoppingListItem, error) {
	var item domain.ShoppingListItem
	if err := c.do(ctx, opShoppingCreate, http.MethodPost, "/shopping-list/", nil, in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateShoppingItem(ctx context.Context, id int64, in domain.ShoppingListItemUpdate) (*domain.ShoppingListItem, error) {
	var item domain.ShoppingListItem
	if err := c.do(ctx, opShoppingUpdate, http.MethodPatch, idPath("/shopping-list", id), nil, in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteShoppingItem(ctx context.Context, id int64) error {
	return c.do(ctx, opShoppingDelete, http.MethodDelete, idPath("/shopping-list", id), nil, nil, nil)
}

// --- recipes ---

func (c *Client) ListRecipes(ctx context.Context, q domain.RecipeQuery) (*domain.RecipePage, error) {
	params := url.Values{}
	params.Set("skip", strconv.Itoa(q.Skip))
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.DietType != "" {
		params.Set("diet_type", q.DietType)
	}
	for _, tag := range q.ExcludeIntolerances {
		params.Add("exclude_intolerances", tag)
	}
	if q.UseUserProfile {
		params.Set("use_user_profile", "true")
	}

	var wire recipePageWire
	if err := c.do(ctx, opRecipeList, http.MethodGet, "/recipes/", params, nil, &wire); err != nil {
		return nil, err
	}
	page := &domain.RecipePage{TotalFiltered: wire.TotalFiltered, Recipes: make([]domain.Recipe, 0, len(wire.Recipes))}
	for _, r := range wire.Recipes {
		page.Recipes = append(page.Recipes, toRecipe(r))
	}
	return page, nil
}

func (c *Client) GetRecipe(ctx context.Context, id int64) (*domain.Recipe, error) {
	var wire recipeWire
	if err := c.do(ctx, opRecipeGet, http.MethodGet, idPath("/recipes", id), nil, nil, &wire); err != nil {
		return nil, err
	}
	recipe := toRecipe(wire)
	return &recipe, nil
}

func (c *Client) AddMissingToShoppingList(ctx context.Context, recipeID int64, includePartiallyAvailable bool) ([]domain.AddedItem, error) {
	body := map[string]bool{"include_partially_available": includePartiallyAvailable}
	var added []domain.AddedItem
	path := idPath("/recipes", recipeID) + "/shopping-list/add-missing"
	if err := c.do(ctx, opRecipeAddMissing, http.MethodPost, path, nil, body, &added); err != nil {
		return nil, err
	}
	return added, nil
}

func (c *Client) AddIngredientToShoppingList(ctx context.Context, recipeID, ingredientID int64) (*domain.AddedItem, error) {
	body := map[string]int64{"ingredient_id": ingredientID}
	var added domain.AddedItem
	path := idPath("/recipes", recipeID) + "/shopping-list/add-ingredient"
	if err := c.do(ctx, opRecipeAddOne, http.MethodPost, path, nil, body, &added); err != nil {
		return nil, err
	}
	return &added, nil
}

func (c *Client) ExpiringRecommendations(ctx context.Context, days, limit int) ([]domain.Recommendation, error) {
	params := url.Values{}
	params.Set("days", strconv.Itoa(days))
	params.Set("limit", strconv.Itoa(limit))

	var wire []recommendationWire
	if err := c.do(ctx, opRecipeExpiring, http.MethodGet, "/recipes/recommendations/expiring", params, nil, &wire); err != nil {
		return nil, err
	}
	recs := make([]domain.Recommendation, 0, len(wire))
	for _, w := range wire {
		recs = append(recs, toRecommendation(w))
	}
	return recs, nil
}

// --- food log ---

func (c *Client) LogRecipe(ctx context.Context, in domain.RecipeLogCreate) (*domain.LogEntry, error) {
	var wire logEntryWire
	if err := c.do(ctx, opLogRecipe, http.MethodPost, "/log/recipe", nil, in, &wire); err != nil {
		return nil, err
	}
	entry := toLogEntry(wire)
	return &entry, nil
}

func (c *Client) LogIngredient(ctx context.Context, in domain.IngredientLogCreate) (*domain.LogEntry, error) {
	if in.Unit == "" {
		in.Unit = defaultIngredientUnit
	}
	var wire logEntryWire
	if err := c.do(ctx, opLogIngredient, http.MethodPost, "/log/ingredient", nil, in, &wire); err != nil {
		return nil, err
	}
	entry := toLogEntry(wire)
	return &entry, nil
}

// DailySummary fetches the log entries of one date. The returned totals are the
// kitchen API's; callers that need trustworthy totals recompute them from Entries.
func (c *Client) DailySummary(ctx context.Context, date time.Time) (*domain.DailySummary, error) {
	params := url.Values{}
	params.Set("log_date", date.Format(domain.DateLayout))

	var wire dailySummaryWire
	if err := c.do(ctx, opLogDailySummary, http.MethodGet, "/log/daily-summary", params, nil, &wire); err != nil {
		return nil, err
	}
	summary := &domain.DailySummary{
		Date:    wire.Date,
		Totals:  NormalizeMacros(wire.Totals),
		Entries: make([]domain.LogEntry, 0, len(wire.Entries)),
	}
	for _, e := range wire.Entries {
		summary.Entries = append(summary.Entries, toLogEntry(e))
	}
	return summary, nil
}

func (c *Client) DeleteLogEntry(ctx context.Context, id int64) error {
	return c.do(ctx, opLogDelete, http.MethodDelete, idPath("/log", id), nil, nil, nil)
}

// --- profile ---

func (c *Client) GetProfile(ctx context.Context) (*domain.Profile, error) {
	var p domain.Profile
	if err := c.do(ctx, opProfileGet, http.MethodGet, "/profile/", nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProfile(ctx context.Context, in domain.ProfileUpdate) (*domain.Profile, error) {
	var p domain.Profile
	if err := c.do(ctx, opProfileUpdate, http.MethodPatch, "/profile/", nil, in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
