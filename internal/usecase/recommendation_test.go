package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pantrylens/kitchen/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rankToday = date(2024, 3, 10)

func pantryItem(ingredientID int64, name string, expires *time.Time) domain.PantryItem {
	return domain.PantryItem{IngredientID: ingredientID, IngredientName: name, Quantity: 1, Unit: "pcs", ExpiresAt: expires}
}

func recipeWith(id int64, ingredientIDs ...int64) domain.Recipe {
	r := domain.Recipe{ID: id, Title: "recipe"}
	for _, ing := range ingredientIDs {
		r.Ingredients = append(r.Ingredients, domain.RecipeIngredient{ID: ing})
	}
	return r
}

func ids(recs []domain.Recommendation) []int64 {
	out := make([]int64, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.RecipeID)
	}
	return out
}

func TestRank(t *testing.T) {
	pantry := []domain.PantryItem{
		pantryItem(1, "spinach", ptr(date(2024, 3, 10))), // today
		pantryItem(2, "milk", ptr(date(2024, 3, 12))),    // 2 days
		pantryItem(3, "eggs", ptr(date(2024, 3, 12))),    // 2 days
		pantryItem(4, "rice", ptr(date(2024, 4, 20))),    // ok
		pantryItem(5, "yogurt", ptr(date(2024, 3, 8))),   // expired
		pantryItem(6, "flour", nil),
		pantryItem(2, "milk", ptr(date(2024, 3, 11))), // earlier milk wins
	}
	recipes := []domain.Recipe{
		recipeWith(10, 4, 6),       // nothing expiring
		recipeWith(11, 3, 2, 1, 4), // three expiring of four
		recipeWith(12, 2, 3),       // two of two
		recipeWith(13, 5),          // expired only
		recipeWith(14, 1, 2, 3),    // three of three
	}

	recs := Rank(pantry, recipes, rankToday, RankOptions{})

	assert.Equal(t, []int64{14, 11, 12}, ids(recs))

	top := recs[0]
	assert.Equal(t, 3, top.ExpiringIngredientsCount)
	assert.Equal(t, 3, top.TotalIngredientsCount)
	assert.Equal(t, 1.0, top.CoverageRatio)
	assert.Equal(t, 0.75, recs[1].CoverageRatio)

	want := []domain.ExpiringIngredient{
		{IngredientID: 1, IngredientName: "spinach", ExpiresAt: "2024-03-10", DaysUntilExpiry: 0},
		{IngredientID: 2, IngredientName: "milk", ExpiresAt: "2024-03-11", DaysUntilExpiry: 1},
		{IngredientID: 3, IngredientName: "eggs", ExpiresAt: "2024-03-12", DaysUntilExpiry: 2},
	}
	if diff := cmp.Diff(want, top.ExpiringIngredients); diff != "" {
		t.Errorf("expiring ingredients mismatch (-want +got):\n%s", diff)
	}
}

func TestRank_TiesBrokenByName(t *testing.T) {
	pantry := []domain.PantryItem{
		pantryItem(1, "zucchini", ptr(date(2024, 3, 12))),
		pantryItem(2, "apple", ptr(date(2024, 3, 12))),
	}

	recs := Rank(pantry, []domain.Recipe{recipeWith(1, 1, 2)}, rankToday, RankOptions{})

	require.Len(t, recs, 1)
	assert.Equal(t, "apple", recs[0].ExpiringIngredients[0].IngredientName)
	assert.Equal(t, "zucchini", recs[0].ExpiringIngredients[1].IngredientName)
}

func TestRank_Window(t *testing.T) {
	pantry := []domain.PantryItem{pantryItem(1, "milk", ptr(date(2024, 3, 16)))} // 6 days

	assert.Empty(t, Rank(pantry, []domain.Recipe{recipeWith(1, 1)}, rankToday, RankOptions{WindowDays: 5}))
	assert.Len(t, Rank(pantry, []domain.Recipe{recipeWith(1, 1)}, rankToday, RankOptions{WindowDays: 7}), 1)
}

func TestRank_OrderAndLimit(t *testing.T) {
	pantry := []domain.PantryItem{
		pantryItem(1, "a", ptr(date(2024, 3, 14))),
		pantryItem(2, "b", ptr(date(2024, 3, 11))),
	}
	recipes := []domain.Recipe{
		recipeWith(30, 1, 9),
		recipeWith(20, 2, 9),
		recipeWith(10, 1, 8),
	}

	recs := Rank(pantry, recipes, rankToday, RankOptions{})
	// equal count and coverage: earlier expiry first, then lower id
	assert.Equal(t, []int64{20, 10, 30}, ids(recs))

	limited := Rank(pantry, recipes, rankToday, RankOptions{Limit: 1})
	assert.Equal(t, []int64{20}, ids(limited))
}

func TestReconcile(t *testing.T) {
	pantry := []domain.PantryItem{
		pantryItem(1, "spinach", ptr(date(2024, 3, 11))),
		pantryItem(2, "milk", ptr(date(2024, 3, 20))), // moved out of the window
	}
	remote := []domain.Recommendation{
		{
			RecipeID: 1, TotalIngredientsCount: 4, ExpiringIngredientsCount: 2,
			ExpiringIngredients: []domain.ExpiringIngredient{
				{IngredientID: 2, IngredientName: "leche", DaysUntilExpiry: 1},
				{IngredientID: 1, IngredientName: "espinaca", DaysUntilExpiry: 3},
			},
		},
		{
			RecipeID: 2, TotalIngredientsCount: 2, ExpiringIngredientsCount: 1,
			ExpiringIngredients: []domain.ExpiringIngredient{{IngredientID: 2, IngredientName: "leche"}},
		},
		{
			RecipeID: 3, TotalIngredientsCount: 1, ExpiringIngredientsCount: 1,
			ExpiringIngredients: []domain.ExpiringIngredient{{IngredientID: 1, IngredientName: "espinaca"}},
		},
	}

	recs := Reconcile(remote, pantry, rankToday, RankOptions{WindowDays: 5})

	assert.Equal(t, []int64{3, 1}, ids(recs))
	assert.Equal(t, 1.0, recs[0].CoverageRatio)
	assert.Equal(t, 1, recs[1].ExpiringIngredientsCount)
	assert.Equal(t, 0.25, recs[1].CoverageRatio)
	assert.Equal(t, domain.ExpiringIngredient{IngredientID: 1, IngredientName: "espinaca", ExpiresAt: "2024-03-11", DaysUntilExpiry: 1}, recs[1].ExpiringIngredients[0])
}

func TestPreview(t *testing.T) {
	rec := domain.Recommendation{RecipeID: 1}
	for i := 0; i < 5; i++ {
		rec.ExpiringIngredients = append(rec.ExpiringIngredients, domain.ExpiringIngredient{IngredientID: int64(i)})
	}

	previews := Preview([]domain.Recommendation{rec, {RecipeID: 2, ExpiringIngredients: rec.ExpiringIngredients[:2]}}, 3)

	require.Len(t, previews, 2)
	assert.Len(t, previews[0].Shown, 3)
	assert.Equal(t, 2, previews[0].Overflow)
	assert.Len(t, previews[1].Shown, 2)
	assert.Equal(t, 0, previews[1].Overflow)
}

func TestRecommendationService_Expiring(t *testing.T) {
	api := &fakeKitchen{
		listPantry: func() ([]domain.PantryItem, error) {
			return []domain.PantryItem{pantryItem(1, "spinach", ptr(date(2024, 3, 11)))}, nil
		},
		expiring: func(days, limit int) ([]domain.Recommendation, error) {
			assert.Equal(t, 5, days)
			assert.Equal(t, 20, limit)
			return []domain.Recommendation{{
				RecipeID: 9, TotalIngredientsCount: 2,
				ExpiringIngredients: []domain.ExpiringIngredient{{IngredientID: 1}},
			}}, nil
		},
	}
	svc := NewRecommendationService(api, RecommendationConfig{}, nil)

	previews, err := svc.Expiring(context.Background(), rankToday, 0, 0)

	require.NoError(t, err)
	require.Len(t, previews, 1)
	assert.Equal(t, int64(9), previews[0].RecipeID)
	assert.Equal(t, 0.5, previews[0].CoverageRatio)
}

func TestRecommendationService_ExpiringError(t *testing.T) {
	api := &fakeKitchen{
		listPantry: func() ([]domain.PantryItem, error) { return nil, domain.ErrTransient },
	}
	svc := NewRecommendationService(api, RecommendationConfig{}, nil)

	_, err := svc.Expiring(context.Background(), rankToday, 0, 0)

	assert.ErrorIs(t, err, domain.ErrTransient)
}
