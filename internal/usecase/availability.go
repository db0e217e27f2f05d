package usecase

import (
	"github.com/pantrylens/kitchen/internal/domain"
	"github.com/shopspring/decimal"
)

// pantryStock is the summed pantry quantity of one ingredient per unit.
// units keeps first-seen order so a unit mismatch reports a deterministic unit.
type pantryStock struct {
	units []string
	qty   map[string]decimal.Decimal
}

func stockByIngredient(pantry []domain.PantryItem) map[int64]*pantryStock {
	stock := make(map[int64]*pantryStock)
	for _, item := range pantry {
		s, ok := stock[item.IngredientID]
		if !ok {
			s = &pantryStock{qty: make(map[string]decimal.Decimal)}
			stock[item.IngredientID] = s
		}
		if _, seen := s.qty[item.Unit]; !seen {
			s.units = append(s.units, item.Unit)
		}
		s.qty[item.Unit] = s.qty[item.Unit].Add(decimal.NewFromFloat(item.Quantity))
	}
	return stock
}

func positive(d decimal.Decimal) *float64 {
	if !d.IsPositive() {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}

// Annotate computes availability for each recipe ingredient against the pantry snapshot.
// Ingredients are matched by ingredient id and units by exact string equality; no unit
// conversion happens. The input slice is not modified. It returns the annotated copy and
// the number of unavailable ingredients.
func Annotate(ingredients []domain.RecipeIngredient, pantry []domain.PantryItem) ([]domain.RecipeIngredient, int) {
	stock := stockByIngredient(pantry)
	out := make([]domain.RecipeIngredient, 0, len(ingredients))

	for _, ing := range ingredients {
		ing.IsAvailable = false
		ing.PantryQuantity = nil
		ing.PantryUnit = ""
		ing.MissingQuantity = nil

		amount := decimal.NewFromFloat(ing.Amount)
		s, ok := stock[ing.ID]

		switch {
		case !ok:
			ing.MissingQuantity = positive(amount)

		case hasUnit(s, ing.Unit):
			have := s.qty[ing.Unit]
			ing.PantryQuantity = positive(have)
			ing.PantryUnit = ing.Unit
			if have.GreaterThanOrEqual(amount) {
				ing.IsAvailable = true
			} else {
				ing.MissingQuantity = positive(amount.Sub(have))
			}

		default:
			first := s.units[0]
			ing.PantryQuantity = positive(s.qty[first])
			ing.PantryUnit = first
			ing.MissingQuantity = positive(amount)
		}
		out = append(out, ing)
	}
	return out, MissingCount(out)
}

func hasUnit(s *pantryStock, unit string) bool {
	_, ok := s.qty[unit]
	return ok
}

// MissingCount counts the ingredients that are not available.
func MissingCount(ingredients []domain.RecipeIngredient) int {
	n := 0
	for _, ing := range ingredients {
		if !ing.IsAvailable {
			n++
		}
	}
	return n
}

// AnnotateRecipe returns a copy of recipe with availability recomputed from pantry.
func AnnotateRecipe(recipe domain.Recipe, pantry []domain.PantryItem) domain.Recipe {
	recipe.Ingredients, recipe.MissingCount = Annotate(recipe.Ingredients, pantry)
	return recipe
}

// PlanMissing lists the shopping-list lines that adding a recipe's missing ingredients
// would create. Partially available ingredients are skipped unless includePartial is set.
// Each line asks for the missing quantity, else the recipe amount, else 1.
func PlanMissing(ingredients []domain.RecipeIngredient, includePartial bool) []domain.AddedItem {
	var planned []domain.AddedItem
	for _, ing := range ingredients {
		if ing.IsAvailable {
			continue
		}
		if !includePartial && ing.PantryQuantity != nil && *ing.PantryQuantity > 0 {
			continue
		}
		planned = append(planned, domain.AddedItem{
			IngredientID:   ing.ID,
			IngredientName: ing.Name,
			Quantity:       quantityToAdd(ing),
			Unit:           ing.Unit,
		})
	}
	return planned
}

func quantityToAdd(ing domain.RecipeIngredient) float64 {
	if ing.MissingQuantity != nil && *ing.MissingQuantity > 0 {
		return *ing.MissingQuantity
	}
	if ing.Amount > 0 {
		return ing.Amount
	}
	return 1
}
