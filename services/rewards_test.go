package services

import (
	"math"
	"testing"

	"github.com/cc1101027/credit-card/models"
)

func floatPtr(f float64) *float64 { return &f }

func strPtr(s string) *string { return &s }

func categoryRule(id, categoryID, categoryName string, rate float64, monthlyCap *float64) models.CardReward {
	return models.CardReward{
		ID:           id,
		CategoryID:   &categoryID,
		CategoryName: categoryName,
		RewardType:   models.RewardTypeCashback,
		RewardRate:   rate,
		MaximumSpend: monthlyCap,
		IsActive:     true,
	}
}

func generalRule(id string, rate float64) models.CardReward {
	return models.CardReward{
		ID:         id,
		RewardType: models.RewardTypeCashback,
		RewardRate: rate,
		IsActive:   true,
	}
}

func TestCalculateCardRewardsGeneralOnly(t *testing.T) {
	card := models.CreditCard{
		ID:      "card-1",
		Name:    "Flat Card",
		Rewards: []models.CardReward{generalRule("r1", 0.01)},
	}
	profile := models.SpendingProfile{"Dining": 500, "Petrol": 300}

	got := CalculateCardRewards(card, profile)

	// (500 + 300) * 12 * 1%
	want := 96.0
	if math.Abs(got.TotalCashback-want) > 1e-9 {
		t.Errorf("TotalCashback = %v, want %v", got.TotalCashback, want)
	}
	if got.TotalPoints != 0 {
		t.Errorf("TotalPoints = %v, want 0", got.TotalPoints)
	}
}

func TestCalculateCardRewardsCategoryBeatsGeneral(t *testing.T) {
	card := models.CreditCard{
		ID:   "card-1",
		Name: "Petrol Card",
		Rewards: []models.CardReward{
			categoryRule("r1", "cat-petrol", "Petrol", 0.008, nil),
			generalRule("r2", 0.02),
		},
	}
	profile := models.SpendingProfile{"Petrol": 100}

	got := CalculateCardRewards(card, profile)

	// The category rule applies even though the general rate is higher.
	want := 100 * 12 * 0.008
	if math.Abs(got.TotalCashback-want) > 1e-9 {
		t.Errorf("TotalCashback = %v, want %v", got.TotalCashback, want)
	}
	entry := got.Categories["Petrol"]
	if entry.Rate != 0.008 {
		t.Errorf("Petrol rate = %v, want 0.008", entry.Rate)
	}
}

func TestCalculateCardRewardsMonthlyCap(t *testing.T) {
	card := models.CreditCard{
		ID:   "card-1",
		Name: "Capped Card",
		Rewards: []models.CardReward{
			categoryRule("r1", "cat-groceries", "Groceries", 0.05, floatPtr(300)),
		},
	}
	// RM1000/month spend, but only RM300/month earns the 5%.
	profile := models.SpendingProfile{"Groceries": 1000}

	got := CalculateCardRewards(card, profile)

	want := 300 * 12 * 0.05
	if math.Abs(got.TotalCashback-want) > 1e-9 {
		t.Errorf("TotalCashback = %v, want %v", got.TotalCashback, want)
	}
}

func TestCalculateCardRewardsCapAboveSpendIsNoop(t *testing.T) {
	card := models.CreditCard{
		ID:   "card-1",
		Name: "Capped Card",
		Rewards: []models.CardReward{
			categoryRule("r1", "cat-groceries", "Groceries", 0.05, floatPtr(2000)),
		},
	}
	profile := models.SpendingProfile{"Groceries": 1000}

	got := CalculateCardRewards(card, profile)

	want := 1000 * 12 * 0.05
	if math.Abs(got.TotalCashback-want) > 1e-9 {
		t.Errorf("TotalCashback = %v, want %v", got.TotalCashback, want)
	}
}

func TestCalculateCardRewardsHighestCategoryRateWins(t *testing.T) {
	card := models.CreditCard{
		ID:   "card-1",
		Name: "Tiered Card",
		Rewards: []models.CardReward{
			categoryRule("r1", "cat-dining", "Dining", 0.02, nil),
			categoryRule("r2", "cat-dining", "Dining", 0.05, nil),
		},
	}
	profile := models.SpendingProfile{"Dining": 100}

	got := CalculateCardRewards(card, profile)

	if got.Categories["Dining"].Rate != 0.05 {
		t.Errorf("Dining rate = %v, want 0.05", got.Categories["Dining"].Rate)
	}
}

func TestCalculateCardRewardsPointsTrackedSeparately(t *testing.T) {
	card := models.CreditCard{
		ID:   "card-1",
		Name: "Points Card",
		Rewards: []models.CardReward{
			{
				ID:           "r1",
				CategoryID:   strPtr("cat-dining"),
				CategoryName: "Dining",
				RewardType:   models.RewardTypePoints,
				RewardRate:   5.0,
				IsActive:     true,
			},
		},
	}
	profile := models.SpendingProfile{"Dining": 100}

	got := CalculateCardRewards(card, profile)

	if got.TotalCashback != 0 {
		t.Errorf("TotalCashback = %v, want 0", got.TotalCashback)
	}
	want := 100 * 12 * 5.0
	if math.Abs(got.TotalPoints-want) > 1e-9 {
		t.Errorf("TotalPoints = %v, want %v", got.TotalPoints, want)
	}
}

func TestCalculateCardRewardsNoMatchingRule(t *testing.T) {
	card := models.CreditCard{
		ID:   "card-1",
		Name: "Petrol Only",
		Rewards: []models.CardReward{
			categoryRule("r1", "cat-petrol", "Petrol", 0.08, nil),
		},
	}
	profile := models.SpendingProfile{"Dining": 500}

	got := CalculateCardRewards(card, profile)

	if got.TotalCashback != 0 || got.TotalPoints != 0 {
		t.Errorf("totals = (%v, %v), want (0, 0)", got.TotalCashback, got.TotalPoints)
	}
	// The category still shows up in the breakdown with a zero amount.
	entry, ok := got.Categories["Dining"]
	if !ok {
		t.Fatal("Dining missing from breakdown")
	}
	if entry.Amount != 0 {
		t.Errorf("Dining amount = %v, want 0", entry.Amount)
	}
}

func TestCalculateCardRewardsInactiveRulesIgnored(t *testing.T) {
	inactive := categoryRule("r1", "cat-dining", "Dining", 0.10, nil)
	inactive.IsActive = false

	card := models.CreditCard{
		ID:   "card-1",
		Name: "Mixed Card",
		Rewards: []models.CardReward{
			inactive,
			generalRule("r2", 0.01),
		},
	}
	profile := models.SpendingProfile{"Dining": 100}

	got := CalculateCardRewards(card, profile)

	want := 100 * 12 * 0.01
	if math.Abs(got.TotalCashback-want) > 1e-9 {
		t.Errorf("TotalCashback = %v, want %v", got.TotalCashback, want)
	}
}
