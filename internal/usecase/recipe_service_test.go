package usecase

import (
	"context"
	"testing"

	"github.com/pantrylens/kitchen/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeService_Detail(t *testing.T) {
	api := &fakeKitchen{
		getRecipe: func(id int64) (*domain.Recipe, error) {
			return &domain.Recipe{
				ID:    id,
				Diets: []string{"vegetarian"},
				Ingredients: []domain.RecipeIngredient{
					{ID: tomatoID, Name: "tomato", Amount: 3, Unit: "pcs", IsAvailable: true},
					{ID: 8, Name: "basil", Amount: 5, Unit: "g"},
				},
			}, nil
		},
		listPantry: func() ([]domain.PantryItem, error) {
			return []domain.PantryItem{
				{IngredientID: tomatoID, Quantity: 2, Unit: "pcs"},
				{IngredientID: 8, Quantity: 10, Unit: "g"},
			}, nil
		},
		getProfile: func() (*domain.Profile, error) {
			return &domain.Profile{DietType: "vegan"}, nil
		},
	}
	svc := NewRecipeService(api, NewValidator(), nil)

	recipe, err := svc.Detail(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, 1, recipe.MissingCount)
	assert.False(t, recipe.Ingredients[0].IsAvailable)
	assert.Equal(t, ptr(1.0), recipe.Ingredients[0].MissingQuantity)
	assert.True(t, recipe.Ingredients[1].IsAvailable)
	require.NotNil(t, recipe.IsCompatibleWithUser)
	assert.False(t, *recipe.IsCompatibleWithUser)
}

func TestRecipeService_DetailNotFound(t *testing.T) {
	svc := NewRecipeService(&fakeKitchen{}, NewValidator(), nil)

	_, err := svc.Detail(context.Background(), 404)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecipeService_List(t *testing.T) {
	api := &fakeKitchen{
		listRecipes: func(q domain.RecipeQuery) (*domain.RecipePage, error) {
			assert.Equal(t, 10, q.Limit)
			return &domain.RecipePage{
				TotalFiltered: 2,
				Recipes: []domain.Recipe{
					{ID: 1, Diets: []string{"vegan"}},
					{ID: 2},
				},
			}, nil
		},
		getProfile: func() (*domain.Profile, error) {
			return &domain.Profile{DietType: "vegetarian"}, nil
		},
	}
	svc := NewRecipeService(api, NewValidator(), nil)

	page, err := svc.List(context.Background(), domain.RecipeQuery{Limit: 10})

	require.NoError(t, err)
	require.Len(t, page.Recipes, 2)
	assert.True(t, *page.Recipes[0].IsCompatibleWithUser)
	assert.False(t, *page.Recipes[1].IsCompatibleWithUser)
}

func TestRecipeService_ListRejectsBadPaging(t *testing.T) {
	api := &fakeKitchen{}
	svc := NewRecipeService(api, NewValidator(), nil)

	_, err := svc.List(context.Background(), domain.RecipeQuery{Skip: -1})

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, api.Calls())
}

func TestRecipeService_PlanMissing(t *testing.T) {
	api := &fakeKitchen{
		getRecipe: func(id int64) (*domain.Recipe, error) {
			return &domain.Recipe{ID: id, Ingredients: []domain.RecipeIngredient{
				{ID: tomatoID, Name: "tomato", Amount: 3, Unit: "pcs"},
			}}, nil
		},
	}
	svc := NewRecipeService(api, NewValidator(), nil)

	planned, err := svc.PlanMissing(context.Background(), 4, false)

	require.NoError(t, err)
	assert.Equal(t, []domain.AddedItem{{IngredientID: tomatoID, IngredientName: "tomato", Quantity: 3, Unit: "pcs"}}, planned)
}
