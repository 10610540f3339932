package services

import (
	"github.com/cc1101027/credit-card/models"
)

// AdvisePurchase picks the single best card to pay for a pending purchase at a
// known merchant. Pure: operates on the user's already-loaded active cards.
//
// Precedence is merchant-specific > category-specific > general — the reverse
// of the profile-based calculators. A point-of-sale decision honors the most
// specific signal available, so a 1% merchant rule beats a 5% category rule.
// Within a tier, the highest reward across all owned cards wins.
func AdvisePurchase(ownedCards []models.CreditCard, merchant models.Merchant, amount float64) (models.PurchaseAdvice, error) {
	advice := models.PurchaseAdvice{
		Merchant: merchant.Name,
		Category: merchant.CategoryName,
	}

	if amount <= 0 {
		return advice, ErrInvalidInput
	}
	if len(ownedCards) == 0 {
		return advice, ErrNoActiveCards
	}

	for _, scope := range []models.RewardScope{models.ScopeMerchant, models.ScopeCategory, models.ScopeGeneral} {
		if card, rule, ok := bestOwnedCardAtScope(ownedCards, scope, merchant, amount); ok {
			advice.Card = card
			advice.RewardAmount = amount * rule.RewardRate
			advice.RewardType = rule.RewardType
			return advice, nil
		}
	}

	return advice, ErrNoSuitableCard
}

// bestOwnedCardAtScope finds the card whose rule at the given scope pays the
// most for this purchase. A tier only wins with a strictly positive reward;
// otherwise the caller falls through to the next tier.
func bestOwnedCardAtScope(ownedCards []models.CreditCard, scope models.RewardScope, merchant models.Merchant, amount float64) (*models.CreditCard, models.CardReward, bool) {
	var (
		bestCard *models.CreditCard
		bestRule models.CardReward
		bestPay  float64
	)

	for i := range ownedCards {
		card := &ownedCards[i]
		for _, rule := range card.Rewards {
			if !rule.IsActive || rule.Scope() != scope {
				continue
			}
			switch scope {
			case models.ScopeMerchant:
				if *rule.MerchantID != merchant.ID {
					continue
				}
			case models.ScopeCategory:
				if *rule.CategoryID != merchant.CategoryID {
					continue
				}
			}
			if pay := amount * rule.RewardRate; pay > bestPay {
				bestCard = card
				bestRule = rule
				bestPay = pay
			}
		}
	}

	return bestCard, bestRule, bestCard != nil
}
