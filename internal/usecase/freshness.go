package usecase

import (
	"time"

	"github.com/pantrylens/kitchen/internal/domain"
)

// SoonThresholdDays is the largest day count still classified as "soon"
const SoonThresholdDays = 7

// DaysUntil returns the number of calendar days from today to expiresAt.
// Both instants are read as calendar dates in today's location; time-of-day is ignored.
func DaysUntil(expiresAt, today time.Time) int {
	loc := today.Location()
	ey, em, ed := expiresAt.In(loc).Date()
	ty, tm, td := today.Date()

	// Civil dates are differenced in UTC so DST transitions cannot shorten a day.
	expiry := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	base := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(expiry.Sub(base).Hours() / 24)
}

// Classify maps an optional expiration date to its freshness against today.
func Classify(expiresAt *time.Time, today time.Time) domain.Freshness {
	if expiresAt == nil {
		return domain.Freshness{Status: domain.StatusNone}
	}

	days := DaysUntil(*expiresAt, today)
	switch {
	case days < 0:
		return domain.Freshness{Status: domain.StatusExpired, Days: -days}
	case days == 0:
		return domain.Freshness{Status: domain.StatusToday}
	case days <= SoonThresholdDays:
		return domain.Freshness{Status: domain.StatusSoon, Days: days}
	default:
		return domain.Freshness{Status: domain.StatusOK, Days: days}
	}
}

// WithinWindow reports whether f is today or soon and at most window days away.
func WithinWindow(f domain.Freshness, window int) bool {
	if f.Status != domain.StatusToday && f.Status != domain.StatusSoon {
		return false
	}
	return f.Days <= window
}

// AnnotatePantry attaches freshness to every pantry item, preserving order.
func AnnotatePantry(items []domain.PantryItem, today time.Time) []domain.PantryItemView {
	views := make([]domain.PantryItemView, 0, len(items))
	for _, item := range items {
		views = append(views, domain.PantryItemView{
			PantryItem: item,
			Freshness:  Classify(item.ExpiresAt, today),
		})
	}
	return views
}
