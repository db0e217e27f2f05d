package domain

import "time"

// ShoppingListItem is a planned purchase
type ShoppingListItem struct {
	ID             int64     `json:"id"`
	IngredientID   int64     `json:"ingredient_id"`
	IngredientName string    `json:"ingredient_name_es"`
	Quantity       float64   `json:"quantity"`
	Unit           string    `json:"unit,omitempty"`
	IsDone         bool      `json:"is_done"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
	UpdatedAt      time.Time `json:"updated_at,omitempty"`
}

// ShoppingListItemCreate is the payload for adding a shopping-list item
type ShoppingListItemCreate struct {
	IngredientID int64   `json:"ingredient_id" validate:"required,gt=0"`
	Quantity     float64 `json:"quantity" validate:"gt=0"`
	Unit         string  `json:"unit,omitempty"`
}

// ShoppingListItemUpdate carries the fields to change; nil fields are left untouched
type ShoppingListItemUpdate struct {
	Quantity *float64 `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	Unit     *string  `json:"unit,omitempty"`
	IsDone   *bool    `json:"is_done,omitempty"`
}

// AddedItem is one shopping-list line created from a recipe ingredient
type AddedItem struct {
	IngredientID   int64   `json:"ingredient_id"`
	IngredientName string  `json:"ingredient_name"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit,omitempty"`
}
