package usecase

import (
	"testing"

	"github.com/pantrylens/kitchen/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDietCompatible(t *testing.T) {
	tests := []struct {
		name     string
		diets    []string
		userDiet string
		expected bool
	}{
		{"no diet accepts unlabelled", nil, "", true},
		{"omnivore accepts anything", []string{"vegan"}, "omnivore", true},
		{"unknown diet accepts anything", nil, "fruitarian", true},
		{"vegan needs vegan label", []string{"vegetarian"}, "vegan", false},
		{"vegan label", []string{"Vegan"}, "vegan", true},
		{"vegetarian accepts vegan", []string{"vegan"}, "vegetarian", true},
		{"pescatarian accepts vegetarian", []string{"vegetarian"}, "pescatarian", true},
		{"keto accepts ketogenic", []string{"ketogenic"}, "keto", true},
		{"paleo accepts whole30", []string{"whole30"}, "Paleo", true},
		{"restrictive diet rejects unlabelled", nil, "vegetarian", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DietCompatible(tt.diets, tt.userDiet))
		})
	}
}

func TestIntoleranceWarnings(t *testing.T) {
	assert.Equal(t, []string{}, IntoleranceWarnings(nil, []string{"gluten"}))
	assert.Equal(t, []string{}, IntoleranceWarnings([]string{"gluten"}, nil))
	assert.Equal(t,
		[]string{"dairy", "gluten"},
		IntoleranceWarnings([]string{"Gluten", "egg", "DAIRY"}, []string{"gluten", "dairy", "Gluten", "soy"}),
	)
}

func TestApplyProfile(t *testing.T) {
	recipe := domain.Recipe{ID: 1, Diets: []string{"vegetarian"}, IntoleranceTags: []string{"dairy"}, IntoleranceWarnings: []string{}}

	t.Run("empty profile leaves recipe alone", func(t *testing.T) {
		got := ApplyProfile(recipe, &domain.Profile{})
		assert.Nil(t, got.IsCompatibleWithUser)
	})

	t.Run("diet ok without intolerances", func(t *testing.T) {
		got := ApplyProfile(recipe, &domain.Profile{DietType: "vegetarian"})
		require.NotNil(t, got.IsCompatibleWithUser)
		assert.True(t, *got.IsCompatibleWithUser)
	})

	t.Run("intolerance makes recipe incompatible", func(t *testing.T) {
		got := ApplyProfile(recipe, &domain.Profile{DietType: "vegetarian", Intolerances: []string{"dairy"}})
		require.NotNil(t, got.IsCompatibleWithUser)
		assert.False(t, *got.IsCompatibleWithUser)
		assert.Equal(t, []string{"dairy"}, got.IntoleranceWarnings)
	})

	t.Run("falls back to remote warnings", func(t *testing.T) {
		listed := domain.Recipe{Diets: []string{"vegan"}, IntoleranceWarnings: []string{"nut"}}
		got := ApplyProfile(listed, &domain.Profile{Intolerances: []string{"nut"}})
		assert.Equal(t, []string{"nut"}, got.IntoleranceWarnings)
		assert.False(t, *got.IsCompatibleWithUser)
	})
}
