package services

import (
	"sort"

	"github.com/cc1101027/credit-card/models"
)

// Defaults for the combination search.
const (
	DefaultMaxCards   = 3
	DefaultTopN       = 5
	DefaultPointValue = 0.01 // RM cash value of one point, for ranking only
)

// OptimizeOptions tunes the combination search.
type OptimizeOptions struct {
	MaxCards   int     // Largest combination size to consider
	TopN       int     // How many combinations to return
	PointValue float64 // Cash value of one point when ranking by net benefit
}

func (o OptimizeOptions) withDefaults() OptimizeOptions {
	if o.MaxCards < 1 {
		o.MaxCards = DefaultMaxCards
	}
	if o.TopN < 1 {
		o.TopN = DefaultTopN
	}
	if o.PointValue <= 0 {
		o.PointValue = DefaultPointValue
	}
	return o
}

// OptimizeCombinations exhaustively scores every subset of the catalog of size
// 1..MaxCards against the spending profile and returns the TopN best, ranked
// by net benefit (cashback + points-as-cash - total annual fees).
//
// The search is deliberately brute force: O(sum C(len(catalog), n)) subsets.
// It is only viable for catalogs of tens of cards with MaxCards <= 3; callers
// are expected to bound the catalog rather than this function sampling it.
//
// Empty profile or empty catalog yields an empty result, not an error.
func OptimizeCombinations(catalog []models.CreditCard, profile models.SpendingProfile, opts OptimizeOptions) []models.CardCombination {
	if len(profile) == 0 || len(catalog) == 0 {
		return nil
	}
	opts = opts.withDefaults()

	maxSize := opts.MaxCards
	if len(catalog) < maxSize {
		maxSize = len(catalog)
	}

	var combinations []models.CardCombination
	for size := 1; size <= maxSize; size++ {
		forEachSubset(len(catalog), size, func(indexes []int) {
			subset := make([]models.CreditCard, len(indexes))
			totalFee := 0.0
			for i, idx := range indexes {
				subset[i] = catalog[idx]
				totalFee += catalog[idx].AnnualFee
			}

			cashback, points, allocation := combinationRewards(subset, profile)

			combinations = append(combinations, models.CardCombination{
				Cards:             subset,
				ProjectedCashback: cashback,
				ProjectedPoints:   points,
				TotalAnnualFee:    totalFee,
				NetBenefit:        cashback + points*opts.PointValue - totalFee,
				Allocation:        allocation,
			})
		})
	}

	sort.SliceStable(combinations, func(i, j int) bool {
		return combinations[i].NetBenefit > combinations[j].NetBenefit
	})

	if len(combinations) > opts.TopN {
		combinations = combinations[:opts.TopN]
	}
	return combinations
}

// combinationRewards allocates each profile category to the card in the subset
// paying the highest reward for it. Allocation is per-category greedy, not a
// joint optimization: categories do not interact, and a card's cap on one
// category never affects another.
//
// Matching keeps the calculator's precedence: cards holding a category-scoped
// rule are considered first, and only if no card in the subset has one does
// the general tier compete.
func combinationRewards(subset []models.CreditCard, profile models.SpendingProfile) (cashback, points float64, allocation map[string]models.CategoryAllocation) {
	allocation = make(map[string]models.CategoryAllocation, len(profile))

	for category, monthlyAmount := range profile {
		annualAmount := monthlyAmount * monthsPerYear

		best, found := bestCardAtScope(subset, models.ScopeCategory, category, annualAmount)
		if !found {
			best, found = bestCardAtScope(subset, models.ScopeGeneral, "", annualAmount)
		}
		if !found {
			continue
		}

		allocation[category] = best
		if best.RewardType == models.RewardTypeCashback {
			cashback += best.Reward
		} else {
			points += best.Reward
		}
	}
	return cashback, points, allocation
}

// bestCardAtScope scans every card's rules at one scope and returns the single
// best (card, reward) for the annualized amount, caps applied.
func bestCardAtScope(subset []models.CreditCard, scope models.RewardScope, category string, annualAmount float64) (models.CategoryAllocation, bool) {
	var best models.CategoryAllocation
	found := false
	for _, card := range subset {
		for _, rule := range card.Rewards {
			if !rule.IsActive || rule.Scope() != scope {
				continue
			}
			if scope == models.ScopeCategory && rule.CategoryName != category {
				continue
			}
			reward := applyMonthlyCap(annualAmount, rule.MaximumSpend) * rule.RewardRate
			if !found || reward > best.Reward {
				best = models.CategoryAllocation{
					CardID:     card.ID,
					CardName:   card.Name,
					Reward:     reward,
					RewardType: rule.RewardType,
				}
				found = true
			}
		}
	}
	return best, found
}

// forEachSubset enumerates every size-k index subset of 0..n-1 in
// lexicographic order and invokes fn with a reused index slice.
func forEachSubset(n, k int, fn func(indexes []int)) {
	indexes := make([]int, k)
	var walk func(start, depth int)
	walk = func(start, depth int) {
		if depth == k {
			fn(indexes)
			return
		}
		for i := start; i <= n-(k-depth); i++ {
			indexes[depth] = i
			walk(i+1, depth+1)
		}
	}
	walk(0, 0)
}
