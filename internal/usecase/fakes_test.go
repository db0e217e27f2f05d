package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/pantrylens/kitchen/internal/domain"
)

// fakeKitchen is an in-memory stand-in for the kitchen API. Each field
// overrides one call; unset calls return zero values.
type fakeKitchen struct {
	mu    sync.Mutex
	calls []string

	listPantry   func() ([]domain.PantryItem, error)
	getPantry    func(id int64) (*domain.PantryItem, error)
	createPantry func(in domain.PantryItemCreate) (*domain.PantryItem, error)
	deletePantry func(id int64) error

	search func(ctx context.Context, q string, limit int) ([]domain.IngredientSearchResult, error)

	listShopping   func(onlyPending bool) ([]domain.ShoppingListItem, error)
	createShopping func(in domain.ShoppingListItemCreate) (*domain.ShoppingListItem, error)
	updateShopping func(id int64, in domain.ShoppingListItemUpdate) (*domain.ShoppingListItem, error)

	listRecipes func(q domain.RecipeQuery) (*domain.RecipePage, error)
	getRecipe   func(id int64) (*domain.Recipe, error)
	addMissing  func(recipeID int64, partial bool) ([]domain.AddedItem, error)
	addOne      func(recipeID, ingredientID int64) (*domain.AddedItem, error)
	expiring    func(days, limit int) ([]domain.Recommendation, error)

	logRecipe     func(in domain.RecipeLogCreate) (*domain.LogEntry, error)
	logIngredient func(in domain.IngredientLogCreate) (*domain.LogEntry, error)
	dailySummary  func(date time.Time) (*domain.DailySummary, error)
	deleteLog     func(id int64) error

	getProfile    func() (*domain.Profile, error)
	updateProfile func(in domain.ProfileUpdate) (*domain.Profile, error)
}

var _ domain.KitchenAPI = (*fakeKitchen)(nil)

func (f *fakeKitchen) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeKitchen) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeKitchen) ListPantry(ctx context.Context) ([]domain.PantryItem, error) {
	f.record("ListPantry")
	if f.listPantry == nil {
		return nil, nil
	}
	return f.listPantry()
}

func (f *fakeKitchen) GetPantryItem(ctx context.Context, id int64) (*domain.PantryItem, error) {
	f.record("GetPantryItem")
	if f.getPantry == nil {
		return nil, domain.ErrNotFound
	}
	return f.getPantry(id)
}

func (f *fakeKitchen) CreatePantryItem(ctx context.Context, in domain.PantryItemCreate) (*domain.PantryItem, error) {
	f.record("CreatePantryItem")
	if f.createPantry == nil {
		return &domain.PantryItem{ID: 1, IngredientID: in.IngredientID, Quantity: in.Quantity, Unit: in.Unit, ExpiresAt: in.ExpiresAt}, nil
	}
	return f.createPantry(in)
}

func (f *fakeKitchen) UpdatePantryItem(ctx context.Context, id int64, in domain.PantryItemUpdate) (*domain.PantryItem, error) {
	f.record("UpdatePantryItem")
	return &domain.PantryItem{ID: id}, nil
}

func (f *fakeKitchen) DeletePantryItem(ctx context.Context, id int64) error {
	f.record("DeletePantryItem")
	if f.deletePantry == nil {
		return nil
	}
	return f.deletePantry(id)
}

func (f *fakeKitchen) SearchIngredients(ctx context.Context, q string, limit int) ([]domain.IngredientSearchResult, error) {
	f.record("SearchIngredients")
	if f.search == nil {
		return nil, nil
	}
	return f.search(ctx, q, limit)
}

func (f *fakeKitchen) ListShopping(ctx context.Context, onlyPending bool) ([]domain.ShoppingListItem, error) {
	f.record("ListShopping")
	if f.listShopping == nil {
		return nil, nil
	}
	return f.listShopping(onlyPending)
}

func (f *fakeKitchen) CreateShoppingItem(ctx context.Context, in domain.ShoppingListItemCreate) (*domain.ShoppingListItem, error) {
	f.record("CreateShoppingItem")
	if f.createShopping == nil {
		return &domain.ShoppingListItem{ID: 1, IngredientID: in.IngredientID, Quantity: in.Quantity, Unit: in.Unit}, nil
	}
	return f.createShopping(in)
}

func (f *fakeKitchen) UpdateShoppingItem(ctx context.Context, id int64, in domain.ShoppingListItemUpdate) (*domain.ShoppingListItem, error) {
	f.record("UpdateShoppingItem")
	if f.updateShopping == nil {
		item := &domain.ShoppingListItem{ID: id}
		if in.IsDone != nil {
			item.IsDone = *in.IsDone
		}
		return item, nil
	}
	return f.updateShopping(id, in)
}

func (f *fakeKitchen) DeleteShoppingItem(ctx context.Context, id int64) error {
	f.record("DeleteShoppingItem")
	return nil
}

func (f *fakeKitchen) ListRecipes(ctx context.Context, q domain.RecipeQuery) (*domain.RecipePage, error) {
	f.record("ListRecipes")
	if f.listRecipes == nil {
		return &domain.RecipePage{}, nil
	}
	return f.listRecipes(q)
}

func (f *fakeKitchen) GetRecipe(ctx context.Context, id int64) (*domain.Recipe, error) {
	f.record("GetRecipe")
	if f.getRecipe == nil {
		return nil, domain.ErrNotFound
	}
	return f.getRecipe(id)
}

func (f *fakeKitchen) AddMissingToShoppingList(ctx context.Context, recipeID int64, partial bool) ([]domain.AddedItem, error) {
	f.record("AddMissingToShoppingList")
	if f.addMissing == nil {
		return nil, nil
	}
	return f.addMissing(recipeID, partial)
}

func (f *fakeKitchen) AddIngredientToShoppingList(ctx context.Context, recipeID, ingredientID int64) (*domain.AddedItem, error) {
	f.record("AddIngredientToShoppingList")
	if f.addOne == nil {
		return &domain.AddedItem{IngredientID: ingredientID, Quantity: 1}, nil
	}
	return f.addOne(recipeID, ingredientID)
}

func (f *fakeKitchen) ExpiringRecommendations(ctx context.Context, days, limit int) ([]domain.Recommendation, error) {
	f.record("ExpiringRecommendations")
	if f.expiring == nil {
		return nil, nil
	}
	return f.expiring(days, limit)
}

func (f *fakeKitchen) LogRecipe(ctx context.Context, in domain.RecipeLogCreate) (*domain.LogEntry, error) {
	f.record("LogRecipe")
	if f.logRecipe == nil {
		return &domain.LogEntry{ID: 1, Type: domain.LogTypeRecipe, RecipeID: &in.RecipeID, Quantity: in.Servings}, nil
	}
	return f.logRecipe(in)
}

func (f *fakeKitchen) LogIngredient(ctx context.Context, in domain.IngredientLogCreate) (*domain.LogEntry, error) {
	f.record("LogIngredient")
	if f.logIngredient == nil {
		return &domain.LogEntry{ID: 1, Type: domain.LogTypeIngredient, IngredientID: &in.IngredientID, Quantity: in.Quantity, Unit: in.Unit}, nil
	}
	return f.logIngredient(in)
}

func (f *fakeKitchen) DailySummary(ctx context.Context, date time.Time) (*domain.DailySummary, error) {
	f.record("DailySummary")
	if f.dailySummary == nil {
		return &domain.DailySummary{Date: date.Format(domain.DateLayout)}, nil
	}
	return f.dailySummary(date)
}

func (f *fakeKitchen) DeleteLogEntry(ctx context.Context, id int64) error {
	f.record("DeleteLogEntry")
	if f.deleteLog == nil {
		return nil
	}
	return f.deleteLog(id)
}

func (f *fakeKitchen) GetProfile(ctx context.Context) (*domain.Profile, error) {
	f.record("GetProfile")
	if f.getProfile == nil {
		return &domain.Profile{Intolerances: []string{}}, nil
	}
	return f.getProfile()
}

func (f *fakeKitchen) UpdateProfile(ctx context.Context, in domain.ProfileUpdate) (*domain.Profile, error) {
	f.record("UpdateProfile")
	if f.updateProfile == nil {
		p := &domain.Profile{Intolerances: in.Intolerances}
		if in.DietType != nil {
			p.DietType = *in.DietType
		}
		return p, nil
	}
	return f.updateProfile(in)
}
