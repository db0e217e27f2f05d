package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pantrylens/kitchen/internal/domain"
	"github.com/pantrylens/kitchen/internal/metrics"
	"go.uber.org/zap"
)

// TogglePolicy decides what happens to an optimistic done-toggle when the remote write fails
type TogglePolicy string

const (
	// ToggleKeep leaves the local toggle in place and reports the error
	ToggleKeep TogglePolicy = "keep"
	// ToggleRevert restores the previous done state and reports the error
	ToggleRevert TogglePolicy = "revert"
)

// ParseTogglePolicy validates a configured policy name; empty means keep.
func ParseTogglePolicy(s string) (TogglePolicy, error) {
	switch TogglePolicy(strings.ToLower(s)) {
	case "", ToggleKeep:
		return ToggleKeep, nil
	case ToggleRevert:
		return ToggleRevert, nil
	default:
		return "", fmt.Errorf("unknown toggle policy %q", s)
	}
}

// RestockQuantity is the quantity of the shopping-list line created by consume-and-restock
const RestockQuantity = 1.0

// Transition and outcome labels used for logging and metrics
const (
	transitionConsume  = "consume"
	transitionRestock  = "consume_restock"
	transitionToggle   = "toggle_done"
	transitionPurchase = "purchase_to_pantry"
	transitionAddMiss  = "add_missing"
	transitionAddOne   = "add_ingredient"

	outcomeOK       = "ok"
	outcomePartial  = "partial"
	outcomeConflict = "conflict"
	outcomeFailed   = "failed"
	outcomeRejected = "rejected"
)

// ConsumeResult reports both steps of a consume transition
type ConsumeResult struct {
	PantryItemID int64                    `json:"pantry_item_id"`
	Deleted      bool                     `json:"deleted"`
	Restocked    *domain.ShoppingListItem `json:"restocked,omitempty"`
}

// ToggleResult is the state of a shopping-list item after a done toggle.
// PantryOffer is set when the item became done and may be added to the pantry.
type ToggleResult struct {
	Item        domain.ShoppingListItem  `json:"item"`
	Reverted    bool                     `json:"reverted"`
	PantryOffer *domain.PantryItemCreate `json:"pantry_offer,omitempty"`
}

// PurchaseResult reports the outcome of adding a purchased item to the pantry.
// Conflict is set instead of an error when the ingredient is already stocked.
type PurchaseResult struct {
	PantryItem *domain.PantryItem `json:"pantry_item,omitempty"`
	Conflict   bool               `json:"conflict"`
	Message    string             `json:"message,omitempty"`
}

// AddMissingResult reports the shopping-list lines created for a recipe
type AddMissingResult struct {
	RecipeID int64              `json:"recipe_id"`
	Added    []domain.AddedItem `json:"added"`
	Count    int                `json:"count"`
}

// ReconciliationService drives the pantry and shopping-list transitions
type ReconciliationService struct {
	pantry    domain.PantryAPI
	shopping  domain.ShoppingListAPI
	recipes   domain.RecipeAPI
	validator *Validator
	policy    TogglePolicy
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// ReconciliationConfig holds the reconciliation settings
type ReconciliationConfig struct {
	TogglePolicy TogglePolicy
}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService(
	api domain.KitchenAPI,
	validator *Validator,
	config ReconciliationConfig,
	m *metrics.Metrics,
	logger *zap.Logger,
) *ReconciliationService {
	if config.TogglePolicy == "" {
		config.TogglePolicy = ToggleKeep
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReconciliationService{
		pantry:    api,
		shopping:  api,
		recipes:   api,
		validator: validator,
		policy:    config.TogglePolicy,
		metrics:   m,
		logger:    logger.Named("reconcile"),
	}
}

func (s *ReconciliationService) observe(transition, outcome string) {
	s.metrics.ObserveOutcome(transition, outcome)
}

// ConsumeOnly deletes a pantry item with no further effect.
func (s *ReconciliationService) ConsumeOnly(ctx context.Context, pantryItemID int64) (*ConsumeResult, error) {
	if err := s.pantry.DeletePantryItem(ctx, pantryItemID); err != nil {
		s.observe(transitionConsume, outcomeFailed)
		return nil, err
	}
	s.observe(transitionConsume, outcomeOK)
	s.logger.Info("pantry item consumed", zap.Int64("pantry_item_id", pantryItemID))
	return &ConsumeResult{PantryItemID: pantryItemID, Deleted: true}, nil
}

// ConsumeAndRestock deletes a pantry item and then queues the same ingredient for
// purchase with quantity 1 and the item's unit. The deletion is never rolled back:
// when the shopping-list write fails the result still reports Deleted and the error
// is a *domain.PartialSuccessError.
func (s *ReconciliationService) ConsumeAndRestock(ctx context.Context, item domain.PantryItem) (*ConsumeResult, error) {
	if err := s.pantry.DeletePantryItem(ctx, item.ID); err != nil {
		s.observe(transitionRestock, outcomeFailed)
		return nil, err
	}
	result := &ConsumeResult{PantryItemID: item.ID, Deleted: true}

	listItem, err := s.shopping.CreateShoppingItem(ctx, domain.ShoppingListItemCreate{
		IngredientID: item.IngredientID,
		Quantity:     RestockQuantity,
		Unit:         item.Unit,
	})
	if err != nil {
		s.observe(transitionRestock, outcomePartial)
		s.logger.Warn("restock failed after consume",
			zap.Int64("pantry_item_id", item.ID),
			zap.Int64("ingredient_id", item.IngredientID),
			zap.Error(err),
		)
		return result, &domain.PartialSuccessError{
			Completed: "pantry item deleted",
			Failed:    "shopping list item creation",
			Err:       err,
		}
	}

	result.Restocked = listItem
	s.observe(transitionRestock, outcomeOK)
	s.logger.Info("pantry item consumed and restocked",
		zap.Int64("pantry_item_id", item.ID),
		zap.Int64("shopping_item_id", listItem.ID),
	)
	return result, nil
}

// Consume resolves a pantry item by id and runs the requested consume transition.
func (s *ReconciliationService) Consume(ctx context.Context, pantryItemID int64, restock bool) (*ConsumeResult, error) {
	if !restock {
		return s.ConsumeOnly(ctx, pantryItemID)
	}
	item, err := s.pantry.GetPantryItem(ctx, pantryItemID)
	if err != nil {
		return nil, err
	}
	return s.ConsumeAndRestock(ctx, *item)
}

// ToggleDone flips the done flag of item optimistically. The returned item carries the
// new state before the remote write is confirmed; on failure the error is returned and,
// under the revert policy, the item is restored to its previous state.
func (s *ReconciliationService) ToggleDone(ctx context.Context, item domain.ShoppingListItem, done bool) (*ToggleResult, error) {
	previous := item.IsDone
	item.IsDone = done
	result := &ToggleResult{Item: item}

	updated, err := s.shopping.UpdateShoppingItem(ctx, item.ID, domain.ShoppingListItemUpdate{IsDone: &done})
	if err != nil {
		if s.policy == ToggleRevert {
			result.Item.IsDone = previous
			result.Reverted = true
		}
		s.observe(transitionToggle, outcomeFailed)
		s.logger.Warn("done toggle not confirmed",
			zap.Int64("shopping_item_id", item.ID),
			zap.String("policy", string(s.policy)),
			zap.Error(err),
		)
		return result, err
	}

	if updated != nil {
		result.Item.UpdatedAt = updated.UpdatedAt
	}
	if done && !previous {
		offer := PrefillPurchase(result.Item)
		result.PantryOffer = &offer
	}
	s.observe(transitionToggle, outcomeOK)
	return result, nil
}

// SetDone looks up a shopping-list item by id and toggles it.
func (s *ReconciliationService) SetDone(ctx context.Context, id int64, done bool) (*ToggleResult, error) {
	items, err := s.shopping.ListShopping(ctx, false)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.ID == id {
			return s.ToggleDone(ctx, item, done)
		}
	}
	return nil, fmt.Errorf("%w: shopping list item %d", domain.ErrNotFound, id)
}

// PrefillPurchase builds the pantry form offered after a shopping-list item is done.
func PrefillPurchase(item domain.ShoppingListItem) domain.PantryItemCreate {
	return domain.PantryItemCreate{
		IngredientID: item.IngredientID,
		Quantity:     item.Quantity,
		Unit:         item.Unit,
	}
}

// PurchaseToPantry adds a purchased ingredient to the pantry. The form is validated
// locally first. An ingredient that is already stocked is reported through
// PurchaseResult.Conflict rather than as an error.
func (s *ReconciliationService) PurchaseToPantry(ctx context.Context, in domain.PantryItemCreate) (*PurchaseResult, error) {
	in.Unit = strings.TrimSpace(in.Unit)
	if err := s.validator.Struct(in); err != nil {
		s.observe(transitionPurchase, outcomeRejected)
		return nil, err
	}

	item, err := s.pantry.CreatePantryItem(ctx, in)
	switch {
	case errors.Is(err, domain.ErrConflict):
		s.observe(transitionPurchase, outcomeConflict)
		s.logger.Info("ingredient already in pantry", zap.Int64("ingredient_id", in.IngredientID))
		return &PurchaseResult{Conflict: true, Message: "ingredient already in pantry"}, nil
	case err != nil:
		s.observe(transitionPurchase, outcomeFailed)
		return nil, err
	}

	s.observe(transitionPurchase, outcomeOK)
	return &PurchaseResult{PantryItem: item}, nil
}

// AddMissing queues every unavailable ingredient of a recipe through the bulk endpoint.
func (s *ReconciliationService) AddMissing(ctx context.Context, recipeID int64, includePartial bool) (*AddMissingResult, error) {
	added, err := s.recipes.AddMissingToShoppingList(ctx, recipeID, includePartial)
	if err != nil {
		s.observe(transitionAddMiss, outcomeFailed)
		return nil, err
	}
	if added == nil {
		added = []domain.AddedItem{}
	}
	s.observe(transitionAddMiss, outcomeOK)
	s.logger.Info("missing ingredients queued", zap.Int64("recipe_id", recipeID), zap.Int("count", len(added)))
	return &AddMissingResult{RecipeID: recipeID, Added: added, Count: len(added)}, nil
}

// AddIngredient queues one recipe ingredient for purchase.
func (s *ReconciliationService) AddIngredient(ctx context.Context, recipeID, ingredientID int64) (*domain.AddedItem, error) {
	added, err := s.recipes.AddIngredientToShoppingList(ctx, recipeID, ingredientID)
	if err != nil {
		s.observe(transitionAddOne, outcomeFailed)
		return nil, err
	}
	s.observe(transitionAddOne, outcomeOK)
	return added, nil
}

// CreatePantryItem validates and creates a pantry item. A duplicate ingredient
// surfaces as domain.ErrConflict.
func (s *ReconciliationService) CreatePantryItem(ctx context.Context, in domain.PantryItemCreate) (*domain.PantryItem, error) {
	in.Unit = strings.TrimSpace(in.Unit)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}
	return s.pantry.CreatePantryItem(ctx, in)
}

// UpdatePantryItem validates and applies a pantry edit
func (s *ReconciliationService) UpdatePantryItem(ctx context.Context, id int64, in domain.PantryItemUpdate) (*domain.PantryItem, error) {
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}
	return s.pantry.UpdatePantryItem(ctx, id, in)
}

// CreateShoppingItem validates and creates a shopping-list item
func (s *ReconciliationService) CreateShoppingItem(ctx context.Context, in domain.ShoppingListItemCreate) (*domain.ShoppingListItem, error) {
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}
	return s.shopping.CreateShoppingItem(ctx, in)
}

// PantryView lists the pantry annotated with freshness against today
func (s *ReconciliationService) PantryView(ctx context.Context, today time.Time) ([]domain.PantryItemView, error) {
	items, err := s.pantry.ListPantry(ctx)
	if err != nil {
		return nil, err
	}
	return AnnotatePantry(items, today), nil
}

// ShoppingList lists the shopping list, optionally only pending items
func (s *ReconciliationService) ShoppingList(ctx context.Context, onlyPending bool) ([]domain.ShoppingListItem, error) {
	return s.shopping.ListShopping(ctx, onlyPending)
}

// DeleteShoppingItem removes a shopping-list item
func (s *ReconciliationService) DeleteShoppingItem(ctx context.Context, id int64) error {
	return s.shopping.DeleteShoppingItem(ctx, id)
}
