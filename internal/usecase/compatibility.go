package usecase

import (
	"sort"
	"strings"

	"github.com/pantrylens/kitchen/internal/domain"
)

// dietCompatibility lists the recipe diet labels acceptable for each profile diet.
// Diets absent from the table (omnivore included) accept every recipe.
var dietCompatibility = map[string][]string{
	domain.DietVegan:       {"vegan"},
	domain.DietVegetarian:  {"vegetarian", "vegan"},
	domain.DietPescatarian: {"pescatarian", "vegetarian", "vegan"},
	domain.DietKeto:        {"ketogenic", "keto"},
	domain.DietPaleo:       {"paleo", "whole30"},
}

// DietCompatible reports whether a recipe with the given diet labels suits userDiet.
// Unlabelled recipes only suit omnivores and users without a diet.
func DietCompatible(recipeDiets []string, userDiet string) bool {
	acceptable, ok := dietCompatibility[strings.ToLower(userDiet)]
	if !ok {
		return true
	}
	for _, d := range recipeDiets {
		d = strings.ToLower(d)
		for _, label := range acceptable {
			if d == label {
				return true
			}
		}
	}
	return false
}

// IntoleranceWarnings returns the profile intolerances present in the recipe's tags,
// compared case-insensitively and sorted.
func IntoleranceWarnings(recipeTags, userIntolerances []string) []string {
	warnings := []string{}
	if len(recipeTags) == 0 || len(userIntolerances) == 0 {
		return warnings
	}
	tags := make(map[string]struct{}, len(recipeTags))
	for _, t := range recipeTags {
		tags[strings.ToLower(t)] = struct{}{}
	}
	seen := make(map[string]struct{})
	for _, i := range userIntolerances {
		i = strings.ToLower(i)
		if _, hit := tags[i]; !hit {
			continue
		}
		if _, dup := seen[i]; dup {
			continue
		}
		seen[i] = struct{}{}
		warnings = append(warnings, i)
	}
	sort.Strings(warnings)
	return warnings
}

// ApplyProfile annotates a recipe with the profile's compatibility verdict and
// intolerance warnings. Profiles with neither a diet nor intolerances leave the
// recipe unannotated.
func ApplyProfile(recipe domain.Recipe, profile *domain.Profile) domain.Recipe {
	if profile == nil || (profile.DietType == "" && len(profile.Intolerances) == 0) {
		return recipe
	}
	tags := recipe.IntoleranceTags
	if len(tags) == 0 {
		// Listings without raw tags only carry the remote warnings.
		tags = recipe.IntoleranceWarnings
	}
	recipe.IntoleranceWarnings = IntoleranceWarnings(tags, profile.Intolerances)
	compatible := DietCompatible(recipe.Diets, profile.DietType) && len(recipe.IntoleranceWarnings) == 0
	recipe.IsCompatibleWithUser = &compatible
	return recipe
}
