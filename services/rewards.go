package services

import (
	"github.com/cc1101027/credit-card/models"
)

const monthsPerYear = 12

// CalculateCardRewards projects the annual reward a single card would return
// against a spending profile. Pure: the card must arrive with its active
// rules already loaded.
//
// Per category: annualize the monthly amount, prefer the category-scoped rule
// with the highest rate, fall back to the card's general rules when no
// category rule exists, else the category earns nothing. A rule's monthly
// spend cap limits the annualized amount to cap*12 before the rate is applied.
func CalculateCardRewards(card models.CreditCard, profile models.SpendingProfile) models.RewardBreakdown {
	breakdown := models.RewardBreakdown{
		Categories: make(map[string]models.CategoryReward, len(profile)),
	}

	for category, monthlyAmount := range profile {
		annualAmount := monthlyAmount * monthsPerYear

		rule, found := bestRateRule(card.Rewards, models.ScopeCategory, category)
		if !found {
			rule, found = bestRateRule(card.Rewards, models.ScopeGeneral, "")
		}

		entry := models.CategoryReward{RewardType: models.RewardTypeCashback}
		if found {
			applicable := applyMonthlyCap(annualAmount, rule.MaximumSpend)
			entry = models.CategoryReward{
				Amount:     applicable * rule.RewardRate,
				Rate:       rule.RewardRate,
				RewardType: rule.RewardType,
			}
		}
		breakdown.Categories[category] = entry

		if entry.RewardType == models.RewardTypeCashback {
			breakdown.TotalCashback += entry.Amount
		} else {
			breakdown.TotalPoints += entry.Amount
		}
	}

	return breakdown
}

// bestRateRule picks the active rule at the given scope with the highest rate.
// `target` is the category name for ScopeCategory and ignored for ScopeGeneral.
// Strict > keeps the first-seen rule on ties; rules are fetched ordered by id,
// so ties resolve to the lowest rule id.
func bestRateRule(rules []models.CardReward, scope models.RewardScope, target string) (models.CardReward, bool) {
	var best models.CardReward
	found := false
	for _, rule := range rules {
		if !rule.IsActive || rule.Scope() != scope {
			continue
		}
		if scope == models.ScopeCategory && rule.CategoryName != target {
			continue
		}
		if !found || rule.RewardRate > best.RewardRate {
			best = rule
			found = true
		}
	}
	return best, found
}

// applyMonthlyCap limits an annualized spend amount by a monthly cap. The cap
// is monthly, so it is projected to a year before comparison; spend above it
// earns nothing extra.
func applyMonthlyCap(annualAmount float64, monthlyCap *float64) float64 {
	if monthlyCap == nil {
		return annualAmount
	}
	capped := *monthlyCap * monthsPerYear
	if annualAmount < capped {
		return annualAmount
	}
	return capped
}
