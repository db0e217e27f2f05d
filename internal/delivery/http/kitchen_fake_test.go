package http

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pantrylens/kitchen/internal/domain"
)

// memKitchen is an in-memory kitchen API. Operations listed in fail return that error.
type memKitchen struct {
	mu       sync.Mutex
	nextID   int64
	pantry   []domain.PantryItem
	shopping []domain.ShoppingListItem
	recipes  map[int64]domain.Recipe
	recs     []domain.Recommendation
	entries  []domain.LogEntry
	totals   domain.Macros
	profile  domain.Profile
	search   []domain.IngredientSearchResult
	fail     map[string]error
}

func newMemKitchen() *memKitchen {
	return &memKitchen{
		nextID:  100,
		recipes: map[int64]domain.Recipe{},
		profile: domain.Profile{Intolerances: []string{}},
		fail:    map[string]error{},
	}
}

func (k *memKitchen) failing(op string) error {
	return k.fail[op]
}

func (k *memKitchen) id() int64 {
	k.nextID++
	return k.nextID
}

func (k *memKitchen) ListPantry(ctx context.Context) ([]domain.PantryItem, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if err := k.failing("pantry.list"); err != nil {
		return nil, err
	}
	return append([]domain.PantryItem(nil), k.pantry...), nil
}

func (k *memKitchen) GetPantryItem(ctx context.Context, id int64) (*domain.PantryItem, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, p := range k.pantry {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: pantry item %d", domain.ErrNotFound, id)
}

func (k *memKitchen) CreatePantryItem(ctx context.Context, in domain.PantryItemCreate) (*domain.PantryItem, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, p := range k.pantry {
		if p.IngredientID == in.IngredientID {
			return nil, fmt.Errorf("%w: ingredient %d", domain.ErrConflict, in.IngredientID)
		}
	}
	item := domain.PantryItem{ID: k.id(), IngredientID: in.IngredientID, Quantity: in.Quantity, Unit: in.Unit, ExpiresAt: in.ExpiresAt}
	k.pantry = append(k.pantry, item)
	return &item, nil
}

func (k *memKitchen) UpdatePantryItem(ctx context.Context, id int64, in domain.PantryItemUpdate) (*domain.PantryItem, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for i := range k.pantry {
		if k.pantry[i].ID != id {
			continue
		}
		if in.Quantity != nil {
			k.pantry[i].Quantity = *in.Quantity
		}
		if in.Unit != nil {
			k.pantry[i].Unit = *in.Unit
		}
		if in.ExpiresAt != nil {
			k.pantry[i].ExpiresAt = in.ExpiresAt
		}
		item := k.pantry[i]
		return &item, nil
	}
	return nil, fmt.Errorf("%w: pantry item %d", domain.ErrNotFound, id)
}

func (k *memKitchen) DeletePantryItem(ctx context.Context, id int64) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	for i, p := range k.pantry {
		if p.ID == id {
			k.pantry = append(k.pantry[:i], k.pantry[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: pantry item %d", domain.ErrNotFound, id)
}

func (k *memKitchen) SearchIngredients(ctx context.Context, query string, limit int) ([]domain.IngredientSearchResult, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if err := k.failing("ingredients.search"); err != nil {
		return nil, err
	}
	return k.search, nil
}

func (k *memKitchen) ListShopping(ctx context.Context, onlyPending bool) ([]domain.ShoppingListItem, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	out := []domain.ShoppingListItem{}
	for _, s := range k.shopping {
		if onlyPending && s.IsDone {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (k *memKitchen) CreateShoppingItem(ctx context.Context, in domain.ShoppingListItemCreate) (*domain.ShoppingListItem, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if err := k.failing("shopping.create"); err != nil {
		return nil, err
	}
	item := domain.ShoppingListItem{ID: k.id(), IngredientID: in.IngredientID, Quantity: in.Quantity, Unit: in.Unit}
	k.shopping = append(k.shopping, item)
	return &item, nil
}

func (k *memKitchen) UpdateShoppingItem(ctx context.Context, id int64, in domain.ShoppingListItemUpdate) (*domain.ShoppingListItem, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if err := k.failing("shopping.update"); err != nil {
		return nil, err
	}
	for i := range k.shopping {
		if k.shopping[i].ID != id {
			continue
		}
		if in.IsDone != nil {
			k.shopping[i].IsDone = *in.IsDone
		}
		item := k.shopping[i]
		return &item, nil
	}
	return nil, fmt.Errorf("%w: shopping item %d", domain.ErrNotFound, id)
}

func (k *memKitchen) DeleteShoppingItem(ctx context.Context, id int64) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	for i, s := range k.shopping {
		if s.ID == id {
			k.shopping = append(k.shopping[:i], k.shopping[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: shopping item %d", domain.ErrNotFound, id)
}

func (k *memKitchen) ListRecipes(ctx context.Context, q domain.RecipeQuery) (*domain.RecipePage, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	page := &domain.RecipePage{Recipes: []domain.Recipe{}}
	for _, r := range k.recipes {
		page.Recipes = append(page.Recipes, r)
	}
	page.TotalFiltered = len(page.Recipes)
	return page, nil
}

func (k *memKitchen) GetRecipe(ctx context.Context, id int64) (*domain.Recipe, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	r, ok := k.recipes[id]
	if !ok {
		return nil, fmt.Errorf("%w: recipe %d", domain.ErrNotFound, id)
	}
	return &r, nil
}

func (k *memKitchen) AddMissingToShoppingList(ctx context.Context, recipeID int64, partial bool) ([]domain.AddedItem, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	r, ok := k.recipes[recipeID]
	if !ok {
		return nil, fmt.Errorf("%w: recipe %d", domain.ErrNotFound, recipeID)
	}
	added := []domain.AddedItem{}
	for _, ing := range r.Ingredients {
		if ing.IsAvailable {
			continue
		}
		added = append(added, domain.AddedItem{IngredientID: ing.ID, IngredientName: ing.Name, Quantity: ing.Amount, Unit: ing.Unit})
	}
	return added, nil
}

func (k *memKitchen) AddIngredientToShoppingList(ctx context.Context, recipeID, ingredientID int64) (*domain.AddedItem, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	r, ok := k.recipes[recipeID]
	if !ok {
		return nil, fmt.Errorf("%w: recipe %d", domain.ErrNotFound, recipeID)
	}
	for _, ing := range r.Ingredients {
		if ing.ID == ingredientID {
			return &domain.AddedItem{IngredientID: ing.ID, IngredientName: ing.Name, Quantity: ing.Amount, Unit: ing.Unit}, nil
		}
	}
	return nil, fmt.Errorf("%w: ingredient %d", domain.ErrNotFound, ingredientID)
}

func (k *memKitchen) ExpiringRecommendations(ctx context.Context, days, limit int) ([]domain.Recommendation, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.recs, nil
}

func (k *memKitchen) LogRecipe(ctx context.Context, in domain.RecipeLogCreate) (*domain.LogEntry, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	id := in.RecipeID
	entry := domain.LogEntry{ID: k.id(), Type: domain.LogTypeRecipe, RecipeID: &id, Quantity: in.Servings, Unit: "serving"}
	k.entries = append(k.entries, entry)
	return &entry, nil
}

func (k *memKitchen) LogIngredient(ctx context.Context, in domain.IngredientLogCreate) (*domain.LogEntry, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	id := in.IngredientID
	entry := domain.LogEntry{ID: k.id(), Type: domain.LogTypeIngredient, IngredientID: &id, Quantity: in.Quantity, Unit: in.Unit}
	k.entries = append(k.entries, entry)
	return &entry, nil
}

func (k *memKitchen) DailySummary(ctx context.Context, date time.Time) (*domain.DailySummary, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return &domain.DailySummary{
		Date:    date.Format(domain.DateLayout),
		Totals:  k.totals,
		Entries: append([]domain.LogEntry(nil), k.entries...),
	}, nil
}

func (k *memKitchen) DeleteLogEntry(ctx context.Context, id int64) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	for i, e := range k.entries {
		if e.ID == id {
			k.entries = append(k.entries[:i], k.entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: log entry %d", domain.ErrNotFound, id)
}

func (k *memKitchen) GetProfile(ctx context.Context) (*domain.Profile, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	p := k.profile
	return &p, nil
}

func (k *memKitchen) UpdateProfile(ctx context.Context, in domain.ProfileUpdate) (*domain.Profile, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if in.DietType != nil {
		k.profile.DietType = *in.DietType
	}
	if in.Intolerances != nil {
		k.profile.Intolerances = in.Intolerances
	}
	if in.Name != nil {
		k.profile.Name = *in.Name
	}
	p := k.profile
	return &p, nil
}
