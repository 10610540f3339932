package services

import (
	"time"

	"github.com/cc1101027/credit-card/models"
)

// DefaultProfileMonths is the lookback window used when the caller does not
// ask for a specific one.
const DefaultProfileMonths = 3

// AnalysisWindow returns the trailing window for a lookback of `months`.
// A month is approximated as 30 days; calendar-month boundaries are not used.
func AnalysisWindow(now time.Time, months int) (start, end time.Time) {
	return now.AddDate(0, 0, -months*30), now
}

// BuildSpendingProfile converts per-category spend totals over the analysis
// window into average monthly amounts. Categories with no spend must simply be
// absent from `categoryTotals`; they are never written as explicit zeros.
// An empty input yields an empty profile, which callers treat as
// "insufficient data" rather than an error.
func BuildSpendingProfile(categoryTotals map[string]float64, months int) models.SpendingProfile {
	profile := make(models.SpendingProfile, len(categoryTotals))
	if months < 1 {
		return profile
	}
	for category, total := range categoryTotals {
		if total <= 0 {
			continue
		}
		profile[category] = total / float64(months)
	}
	return profile
}
