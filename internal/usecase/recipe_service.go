package usecase

import (
	"context"

	"github.com/pantrylens/kitchen/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RecipeService serves recipes annotated with pantry availability and profile compatibility
type RecipeService struct {
	api       domain.KitchenAPI
	validator *Validator
	logger    *zap.Logger
}

// NewRecipeService creates a new recipe service
func NewRecipeService(api domain.KitchenAPI, validator *Validator, logger *zap.Logger) *RecipeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecipeService{api: api, validator: validator, logger: logger.Named("recipes")}
}

// List returns one page of recipes annotated with the profile's compatibility.
func (s *RecipeService) List(ctx context.Context, q domain.RecipeQuery) (*domain.RecipePage, error) {
	if err := s.validator.Struct(q); err != nil {
		return nil, err
	}

	var (
		page    *domain.RecipePage
		profile *domain.Profile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, err = s.api.ListRecipes(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		profile, err = s.api.GetProfile(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range page.Recipes {
		page.Recipes[i] = ApplyProfile(page.Recipes[i], profile)
	}
	if page.Recipes == nil {
		page.Recipes = []domain.Recipe{}
	}
	return page, nil
}

// Detail fetches a recipe together with the pantry and profile, recomputes availability
// from the pantry snapshot and annotates compatibility.
func (s *RecipeService) Detail(ctx context.Context, id int64) (*domain.Recipe, error) {
	var (
		recipe  *domain.Recipe
		pantry  []domain.PantryItem
		profile *domain.Profile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		recipe, err = s.api.GetRecipe(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		pantry, err = s.api.ListPantry(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		profile, err = s.api.GetProfile(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	annotated := ApplyProfile(AnnotateRecipe(*recipe, pantry), profile)
	if annotated.MissingCount != recipe.MissingCount {
		s.logger.Debug("availability differs from remote annotation",
			zap.Int64("recipe_id", id),
			zap.Int("remote_missing", recipe.MissingCount),
			zap.Int("missing", annotated.MissingCount),
		)
	}
	return &annotated, nil
}

// PlanMissing previews the shopping-list lines AddMissing would create for a recipe
func (s *RecipeService) PlanMissing(ctx context.Context, id int64, includePartial bool) ([]domain.AddedItem, error) {
	recipe, err := s.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	planned := PlanMissing(recipe.Ingredients, includePartial)
	if planned == nil {
		planned = []domain.AddedItem{}
	}
	return planned, nil
}
