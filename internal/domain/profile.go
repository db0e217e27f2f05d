package domain

// Diet types accepted by the profile
const (
	DietOmnivore    = "omnivore"
	DietVegetarian  = "vegetarian"
	DietVegan       = "vegan"
	DietPescatarian = "pescatarian"
	DietKeto        = "keto"
	DietPaleo       = "paleo"
)

// Intolerances lists the intolerance tags a profile may carry
var Intolerances = []string{"gluten", "dairy", "egg", "nut", "soy", "shellfish", "fish", "wheat", "sesame"}

// Profile holds the user's diet preferences
type Profile struct {
	DietType     string   `json:"diet_type,omitempty"`
	Intolerances []string `json:"intolerances"`
	Name         string   `json:"name,omitempty"`
	Email        string   `json:"email,omitempty"`
}

// ProfileUpdate carries the profile fields to change; nil fields are left untouched.
// An empty DietType clears the diet.
type ProfileUpdate struct {
	DietType     *string  `json:"diet_type,omitempty"`
	Intolerances []string `json:"intolerances,omitempty" validate:"omitempty,dive,oneof=gluten dairy egg nut soy shellfish fish wheat sesame"`
	Name         *string  `json:"name,omitempty"`
}
