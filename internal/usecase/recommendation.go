package usecase

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/pantrylens/kitchen/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Recommendation defaults
const (
	DefaultWindowDays   = 5
	DefaultResultLimit  = 20
	DefaultDisplayLimit = 3
)

// RankOptions bounds a ranking run
type RankOptions struct {
	WindowDays int // freshness window in days, inclusive
	Limit      int // maximum number of recipes; 0 means no limit
}

// expiringCandidates collects the pantry ingredients inside the window, keeping the
// earliest expiry when several items share an ingredient.
func expiringCandidates(pantry []domain.PantryItem, today time.Time, window int) map[int64]domain.ExpiringIngredient {
	candidates := make(map[int64]domain.ExpiringIngredient)
	for _, item := range pantry {
		f := Classify(item.ExpiresAt, today)
		if !WithinWindow(f, window) {
			continue
		}
		if cur, ok := candidates[item.IngredientID]; ok && cur.DaysUntilExpiry <= f.Days {
			continue
		}
		candidates[item.IngredientID] = domain.ExpiringIngredient{
			IngredientID:    item.IngredientID,
			IngredientName:  item.IngredientName,
			ExpiresAt:       item.ExpiresAt.In(today.Location()).Format(domain.DateLayout),
			DaysUntilExpiry: f.Days,
		}
	}
	return candidates
}

func sortExpiring(list []domain.ExpiringIngredient) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].DaysUntilExpiry != list[j].DaysUntilExpiry {
			return list[i].DaysUntilExpiry < list[j].DaysUntilExpiry
		}
		return list[i].IngredientName < list[j].IngredientName
	})
}

func coverage(expiring, total int) float64 {
	if total <= 0 {
		return 0
	}
	return decimal.NewFromInt(int64(expiring)).
		Div(decimal.NewFromInt(int64(total))).
		Round(2).
		InexactFloat64()
}

// sortRecommendations orders by expiring count desc, coverage desc, earliest expiry asc, id asc.
// Each recommendation's ingredient list must already be sorted.
func sortRecommendations(recs []domain.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.ExpiringIngredientsCount != b.ExpiringIngredientsCount {
			return a.ExpiringIngredientsCount > b.ExpiringIngredientsCount
		}
		if a.CoverageRatio != b.CoverageRatio {
			return a.CoverageRatio > b.CoverageRatio
		}
		if da, db := minDays(a), minDays(b); da != db {
			return da < db
		}
		return a.RecipeID < b.RecipeID
	})
}

func minDays(r domain.Recommendation) int {
	if len(r.ExpiringIngredients) == 0 {
		return math.MaxInt
	}
	return r.ExpiringIngredients[0].DaysUntilExpiry
}

func truncate(recs []domain.Recommendation, limit int) []domain.Recommendation {
	if limit > 0 && len(recs) > limit {
		return recs[:limit]
	}
	return recs
}

// Rank selects the recipes that use pantry ingredients expiring within the window and
// orders them. Recipes using none of those ingredients are excluded.
func Rank(pantry []domain.PantryItem, recipes []domain.Recipe, today time.Time, opts RankOptions) []domain.Recommendation {
	if opts.WindowDays <= 0 {
		opts.WindowDays = DefaultWindowDays
	}
	candidates := expiringCandidates(pantry, today, opts.WindowDays)

	recs := []domain.Recommendation{}
	if len(candidates) == 0 {
		return recs
	}
	for _, recipe := range recipes {
		var expiring []domain.ExpiringIngredient
		seen := make(map[int64]bool)
		for _, ing := range recipe.Ingredients {
			c, ok := candidates[ing.ID]
			if !ok || seen[ing.ID] {
				continue
			}
			seen[ing.ID] = true
			if ing.Name != "" {
				c.IngredientName = ing.Name
			}
			expiring = append(expiring, c)
		}
		if len(expiring) == 0 {
			continue
		}
		sortExpiring(expiring)

		total := len(recipe.Ingredients)
		recs = append(recs, domain.Recommendation{
			RecipeID:                 recipe.ID,
			Title:                    recipe.Title,
			ImageURL:                 recipe.ImageURL,
			Servings:                 recipe.Servings,
			NutritionPerServing:      recipe.NutritionPerServing,
			ExpiringIngredientsCount: len(expiring),
			TotalIngredientsCount:    total,
			CoverageRatio:            coverage(len(expiring), total),
			ExpiringIngredients:      expiring,
		})
	}
	sortRecommendations(recs)
	return truncate(recs, opts.Limit)
}

// Reconcile re-derives remotely ranked recommendations from the current pantry: each
// expiring ingredient is re-classified against today, ingredients that left the window
// or the pantry are dropped, counts and coverage are recomputed and the list re-sorted.
func Reconcile(remote []domain.Recommendation, pantry []domain.PantryItem, today time.Time, opts RankOptions) []domain.Recommendation {
	if opts.WindowDays <= 0 {
		opts.WindowDays = DefaultWindowDays
	}
	candidates := expiringCandidates(pantry, today, opts.WindowDays)

	recs := []domain.Recommendation{}
	for _, rec := range remote {
		expiring := make([]domain.ExpiringIngredient, 0, len(rec.ExpiringIngredients))
		seen := make(map[int64]bool)
		for _, ei := range rec.ExpiringIngredients {
			c, ok := candidates[ei.IngredientID]
			if !ok || seen[ei.IngredientID] {
				continue
			}
			seen[ei.IngredientID] = true
			if ei.IngredientName != "" {
				c.IngredientName = ei.IngredientName
			}
			expiring = append(expiring, c)
		}
		if len(expiring) == 0 {
			continue
		}
		sortExpiring(expiring)

		rec.ExpiringIngredients = expiring
		rec.ExpiringIngredientsCount = len(expiring)
		if rec.TotalIngredientsCount < len(expiring) {
			rec.TotalIngredientsCount = len(expiring)
		}
		rec.CoverageRatio = coverage(len(expiring), rec.TotalIngredientsCount)
		recs = append(recs, rec)
	}
	sortRecommendations(recs)
	return truncate(recs, opts.Limit)
}

// RecommendationPreview is a recommendation with its ingredient list cut for display
type RecommendationPreview struct {
	domain.Recommendation
	Shown    []domain.ExpiringIngredient `json:"shown_ingredients"`
	Overflow int                         `json:"overflow"`
}

// Preview cuts each recommendation's ingredient list to displayLimit entries and
// reports how many were hidden.
func Preview(recs []domain.Recommendation, displayLimit int) []RecommendationPreview {
	if displayLimit <= 0 {
		displayLimit = DefaultDisplayLimit
	}
	out := make([]RecommendationPreview, 0, len(recs))
	for _, r := range recs {
		p := RecommendationPreview{Recommendation: r, Shown: r.ExpiringIngredients}
		if len(r.ExpiringIngredients) > displayLimit {
			p.Shown = r.ExpiringIngredients[:displayLimit]
			p.Overflow = len(r.ExpiringIngredients) - displayLimit
		}
		out = append(out, p)
	}
	return out
}

// RecommendationConfig holds the recommendation settings
type RecommendationConfig struct {
	WindowDays   int
	Limit        int
	DisplayLimit int
}

// RecommendationService ranks recipes by the expiring pantry ingredients they use
type RecommendationService struct {
	pantry  domain.PantryAPI
	recipes domain.RecipeAPI
	config  RecommendationConfig
	logger  *zap.Logger
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(api domain.KitchenAPI, config RecommendationConfig, logger *zap.Logger) *RecommendationService {
	if config.WindowDays <= 0 {
		config.WindowDays = DefaultWindowDays
	}
	if config.Limit <= 0 {
		config.Limit = DefaultResultLimit
	}
	if config.DisplayLimit <= 0 {
		config.DisplayLimit = DefaultDisplayLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecommendationService{pantry: api, recipes: api, config: config, logger: logger.Named("recommend")}
}

// Config returns the effective settings
func (s *RecommendationService) Config() RecommendationConfig {
	return s.config
}

// Expiring fetches the remote ranking and the pantry concurrently and reconciles them
// against today. windowDays and limit fall back to the configured values when zero.
func (s *RecommendationService) Expiring(ctx context.Context, today time.Time, windowDays, limit int) ([]RecommendationPreview, error) {
	if windowDays <= 0 {
		windowDays = s.config.WindowDays
	}
	if limit <= 0 {
		limit = s.config.Limit
	}

	var (
		pantry []domain.PantryItem
		remote []domain.Recommendation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pantry, err = s.pantry.ListPantry(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		remote, err = s.recipes.ExpiringRecommendations(gctx, windowDays, limit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	recs := Reconcile(remote, pantry, today, RankOptions{WindowDays: windowDays, Limit: limit})
	s.logger.Debug("expiring recommendations",
		zap.Int("remote", len(remote)),
		zap.Int("kept", len(recs)),
		zap.Int("window_days", windowDays),
	)
	return Preview(recs, s.config.DisplayLimit), nil
}
