package domain

import "time"

// PantryItem is a quantity of an ingredient currently on hand
type PantryItem struct {
	ID             int64      `json:"id"`
	IngredientID   int64      `json:"ingredient_id"`
	IngredientName string     `json:"ingredient_name"`
	Quantity       float64    `json:"quantity"`
	Unit           string     `json:"unit"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at,omitempty"`
}

// PantryItemCreate is the payload for adding an ingredient to the pantry
type PantryItemCreate struct {
	IngredientID int64      `json:"ingredient_id" validate:"required,gt=0"`
	Quantity     float64    `json:"quantity" validate:"gt=0"`
	Unit         string     `json:"unit" validate:"required"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

// PantryItemUpdate carries the fields to change; nil fields are left untouched
type PantryItemUpdate struct {
	Quantity  *float64   `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Unit      *string    `json:"unit,omitempty" validate:"omitempty,min=1"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// ExpirationStatus is the freshness category derived from an expiration date
type ExpirationStatus string

const (
	StatusExpired ExpirationStatus = "expired"
	StatusToday   ExpirationStatus = "today"
	StatusSoon    ExpirationStatus = "soon"
	StatusOK      ExpirationStatus = "ok"
	StatusNone    ExpirationStatus = "none"
)

// Freshness is the classification of one expiration date against a calendar day.
// Days is the overdue count for expired items and the days left otherwise.
type Freshness struct {
	Status ExpirationStatus `json:"status"`
	Days   int              `json:"days"`
}

// PantryItemView is a pantry item annotated with its freshness
type PantryItemView struct {
	PantryItem
	Freshness Freshness `json:"freshness"`
}
