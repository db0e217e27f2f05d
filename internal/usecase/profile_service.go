package usecase

import (
	"context"
	"strings"

	"github.com/pantrylens/kitchen/internal/domain"
	"go.uber.org/zap"
)

var validDiets = map[string]bool{
	domain.DietOmnivore:    true,
	domain.DietVegetarian:  true,
	domain.DietVegan:       true,
	domain.DietPescatarian: true,
	domain.DietKeto:        true,
	domain.DietPaleo:       true,
}

// ProfileService reads and updates the user's diet preferences
type ProfileService struct {
	api       domain.ProfileAPI
	validator *Validator
	logger    *zap.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(api domain.ProfileAPI, validator *Validator, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{api: api, validator: validator, logger: logger.Named("profile")}
}

// Get returns the current profile
func (s *ProfileService) Get(ctx context.Context) (*domain.Profile, error) {
	return s.api.GetProfile(ctx)
}

// Update validates and applies a profile change. The diet must be one of the known
// diets or empty (which clears it); intolerances are lower-cased and de-duplicated.
func (s *ProfileService) Update(ctx context.Context, in domain.ProfileUpdate) (*domain.Profile, error) {
	if in.DietType != nil {
		diet := strings.ToLower(strings.TrimSpace(*in.DietType))
		if diet != "" && !validDiets[diet] {
			return nil, domain.NewValidationError("diet_type", "unknown diet")
		}
		in.DietType = &diet
	}
	if in.Intolerances != nil {
		in.Intolerances = normalizeTags(in.Intolerances)
	}
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	profile, err := s.api.UpdateProfile(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info("profile updated", zap.String("diet", profile.DietType), zap.Strings("intolerances", profile.Intolerances))
	return profile, nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
