// Package session models the navigation state of one user session as a pure
// reducer: Reduce(state, action) returns the next state and never mutates its input.
package session

import (
	"time"

	"github.com/pantrylens/kitchen/internal/domain"
)

// View is a top-level screen
type View string

const (
	ViewPantry       View = "pantry"
	ViewShoppingList View = "shopping_list"
	ViewRecipes      View = "recipes"
	ViewRecipeDetail View = "recipe_detail"
	ViewLog          View = "log"
	ViewProfile      View = "profile"
)

var topLevel = map[View]bool{
	ViewPantry:       true,
	ViewShoppingList: true,
	ViewRecipes:      true,
	ViewLog:          true,
	ViewProfile:      true,
}

// ValidView reports whether v can be navigated to directly
func ValidView(v View) bool {
	return topLevel[v]
}

// State is the explicit navigation state of a session
type State struct {
	View             View   `json:"view"`
	SelectedRecipeID *int64 `json:"selected_recipe_id,omitempty"`
	RecipeOrigin     View   `json:"recipe_origin,omitempty"`
	Date             string `json:"date"` // selected log date, YYYY-MM-DD
}

// Initial returns the starting state for a session opened on today
func Initial(today time.Time) State {
	return State{View: ViewPantry, Date: today.Format(domain.DateLayout)}
}

// ActionType names a navigation action
type ActionType string

const (
	ActionNavigate    ActionType = "navigate"
	ActionOpenRecipe  ActionType = "open_recipe"
	ActionCloseRecipe ActionType = "close_recipe"
	ActionSelectDate  ActionType = "select_date"
)

// Action is one navigation event. Only the fields relevant to Type are read.
type Action struct {
	Type     ActionType `json:"type" binding:"required"`
	View     View       `json:"view,omitempty"`
	RecipeID int64      `json:"recipe_id,omitempty"`
	Date     string     `json:"date,omitempty"`
}

// Navigate switches to a top-level view
func Navigate(v View) Action { return Action{Type: ActionNavigate, View: v} }

// OpenRecipe shows a recipe's detail, remembering the current view as its origin
func OpenRecipe(id int64) Action { return Action{Type: ActionOpenRecipe, RecipeID: id} }

// CloseRecipe returns from a recipe's detail to its origin view
func CloseRecipe() Action { return Action{Type: ActionCloseRecipe} }

// SelectDate picks the log date
func SelectDate(date string) Action { return Action{Type: ActionSelectDate, Date: date} }

// Reduce applies a to s. Invalid or unknown actions return s unchanged.
func Reduce(s State, a Action) State {
	switch a.Type {
	case ActionNavigate:
		if !ValidView(a.View) {
			return s
		}
		return State{View: a.View, Date: s.Date}

	case ActionOpenRecipe:
		if a.RecipeID <= 0 {
			return s
		}
		origin := s.View
		if origin == ViewRecipeDetail {
			origin = s.RecipeOrigin
		}
		id := a.RecipeID
		return State{View: ViewRecipeDetail, SelectedRecipeID: &id, RecipeOrigin: origin, Date: s.Date}

	case ActionCloseRecipe:
		if s.View != ViewRecipeDetail {
			return s
		}
		origin := s.RecipeOrigin
		if !ValidView(origin) {
			origin = ViewRecipes
		}
		return State{View: origin, Date: s.Date}

	case ActionSelectDate:
		if _, err := time.Parse(domain.DateLayout, a.Date); err != nil {
			return s
		}
		next := s
		next.Date = a.Date
		if s.SelectedRecipeID != nil {
			id := *s.SelectedRecipeID
			next.SelectedRecipeID = &id
		}
		return next

	default:
		return s
	}
}
