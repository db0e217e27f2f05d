package usecase

import (
	"context"
	"time"

	"github.com/pantrylens/kitchen/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// macroPlaces is the rounding applied to daily totals
const macroPlaces = 1

// Aggregate sums the macros of entries. The sum is exact in decimal and rounded to one
// decimal place, so it does not depend on entry order.
func Aggregate(entries []domain.LogEntry) domain.Macros {
	var calories, protein, carbs, fat decimal.Decimal
	for _, e := range entries {
		calories = calories.Add(decimal.NewFromFloat(e.Macros.Calories))
		protein = protein.Add(decimal.NewFromFloat(e.Macros.Protein))
		carbs = carbs.Add(decimal.NewFromFloat(e.Macros.Carbs))
		fat = fat.Add(decimal.NewFromFloat(e.Macros.Fat))
	}
	return domain.Macros{
		Calories: calories.Round(macroPlaces).InexactFloat64(),
		Protein:  protein.Round(macroPlaces).InexactFloat64(),
		Carbs:    carbs.Round(macroPlaces).InexactFloat64(),
		Fat:      fat.Round(macroPlaces).InexactFloat64(),
	}
}

// Summarize builds the daily summary of one date from its entries.
func Summarize(date time.Time, entries []domain.LogEntry) domain.DailySummary {
	if entries == nil {
		entries = []domain.LogEntry{}
	}
	return domain.DailySummary{
		Date:    date.Format(domain.DateLayout),
		Totals:  Aggregate(entries),
		Entries: entries,
	}
}

// NutritionService logs food and builds daily summaries.
// Totals are always recomputed from the entries; totals reported by the kitchen API
// are ignored.
type NutritionService struct {
	api       domain.LogAPI
	validator *Validator
	logger    *zap.Logger
}

// NewNutritionService creates a new nutrition service
func NewNutritionService(api domain.LogAPI, validator *Validator, logger *zap.Logger) *NutritionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NutritionService{api: api, validator: validator, logger: logger.Named("nutrition")}
}

// DailySummary fetches the entries of date and recomputes their totals
func (s *NutritionService) DailySummary(ctx context.Context, date time.Time) (*domain.DailySummary, error) {
	remote, err := s.api.DailySummary(ctx, date)
	if err != nil {
		return nil, err
	}

	summary := Summarize(date, remote.Entries)
	if remote.Totals != summary.Totals {
		s.logger.Debug("remote totals differ from recomputed totals",
			zap.String("date", summary.Date),
			zap.Float64("remote_calories", remote.Totals.Calories),
			zap.Float64("calories", summary.Totals.Calories),
		)
	}
	return &summary, nil
}

// DeleteEntry removes a log entry and returns the recomputed summary of date
func (s *NutritionService) DeleteEntry(ctx context.Context, id int64, date time.Time) (*domain.DailySummary, error) {
	if err := s.api.DeleteLogEntry(ctx, id); err != nil {
		return nil, err
	}
	s.logger.Info("log entry deleted", zap.Int64("entry_id", id))
	return s.DailySummary(ctx, date)
}

// LogRecipe logs servings of a recipe
func (s *NutritionService) LogRecipe(ctx context.Context, in domain.RecipeLogCreate) (*domain.LogEntry, error) {
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}
	return s.api.LogRecipe(ctx, in)
}

// LogIngredient logs a raw ingredient quantity; the unit defaults to grams
func (s *NutritionService) LogIngredient(ctx context.Context, in domain.IngredientLogCreate) (*domain.LogEntry, error) {
	if in.Unit == "" {
		in.Unit = "g"
	}
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}
	return s.api.LogIngredient(ctx, in)
}
