package services

import (
	"errors"
	"math"
	"testing"

	"github.com/cc1101027/credit-card/models"
)

func merchantRule(id, merchantID, merchantName string, rate float64) models.CardReward {
	return models.CardReward{
		ID:           id,
		MerchantID:   &merchantID,
		MerchantName: merchantName,
		RewardType:   models.RewardTypeCashback,
		RewardRate:   rate,
		IsActive:     true,
	}
}

var shell = models.Merchant{
	ID:           "m-shell",
	Name:         "Shell",
	CategoryID:   "cat-petrol",
	CategoryName: "Petrol",
}

func TestAdvisePurchaseCategoryRule(t *testing.T) {
	wallet := []models.CreditCard{
		cashbackCard("a", "Petrol Card", 0,
			categoryRule("r1", "cat-petrol", "Petrol", 0.05, nil),
		),
		cashbackCard("b", "Flat Card", 0, generalRule("r2", 0.01)),
	}

	advice, err := AdvisePurchase(wallet, shell, 100)
	if err != nil {
		t.Fatalf("AdvisePurchase: %v", err)
	}

	if advice.Card == nil || advice.Card.ID != "a" {
		t.Fatalf("recommended card = %+v, want card a", advice.Card)
	}
	if math.Abs(advice.RewardAmount-5.0) > 1e-9 {
		t.Errorf("RewardAmount = %v, want 5", advice.RewardAmount)
	}
	if advice.Merchant != "Shell" || advice.Category != "Petrol" {
		t.Errorf("advice context = (%q, %q), want (Shell, Petrol)", advice.Merchant, advice.Category)
	}
}

func TestAdvisePurchaseMerchantBeatsCategory(t *testing.T) {
	// A low merchant-specific rate still outranks a higher category rate;
	// point-of-sale advice honors the most specific rule.
	wallet := []models.CreditCard{
		cashbackCard("a", "Category Card", 0,
			categoryRule("r1", "cat-petrol", "Petrol", 0.05, nil),
		),
		cashbackCard("b", "Merchant Card", 0,
			merchantRule("r2", "m-shell", "Shell", 0.01),
		),
	}

	advice, err := AdvisePurchase(wallet, shell, 100)
	if err != nil {
		t.Fatalf("AdvisePurchase: %v", err)
	}

	if advice.Card == nil || advice.Card.ID != "b" {
		t.Fatalf("recommended card = %+v, want merchant card b", advice.Card)
	}
	if math.Abs(advice.RewardAmount-1.0) > 1e-9 {
		t.Errorf("RewardAmount = %v, want 1", advice.RewardAmount)
	}
}

func TestAdvisePurchaseBestInTierWins(t *testing.T) {
	wallet := []models.CreditCard{
		cashbackCard("a", "Petrol 5%", 0,
			categoryRule("r1", "cat-petrol", "Petrol", 0.05, nil),
		),
		cashbackCard("b", "Petrol 8%", 0,
			categoryRule("r2", "cat-petrol", "Petrol", 0.08, nil),
		),
	}

	advice, err := AdvisePurchase(wallet, shell, 200)
	if err != nil {
		t.Fatalf("AdvisePurchase: %v", err)
	}

	if advice.Card == nil || advice.Card.ID != "b" {
		t.Fatalf("recommended card = %+v, want card b", advice.Card)
	}
	if math.Abs(advice.RewardAmount-16.0) > 1e-9 {
		t.Errorf("RewardAmount = %v, want 16", advice.RewardAmount)
	}
}

func TestAdvisePurchaseFallsBackToGeneral(t *testing.T) {
	wallet := []models.CreditCard{
		cashbackCard("a", "Groceries Card", 0,
			categoryRule("r1", "cat-groceries", "Groceries", 0.05, nil),
			generalRule("r2", 0.002),
		),
	}

	advice, err := AdvisePurchase(wallet, shell, 100)
	if err != nil {
		t.Fatalf("AdvisePurchase: %v", err)
	}

	if advice.Card == nil || advice.Card.ID != "a" {
		t.Fatalf("recommended card = %+v, want card a", advice.Card)
	}
	if math.Abs(advice.RewardAmount-0.2) > 1e-9 {
		t.Errorf("RewardAmount = %v, want 0.2", advice.RewardAmount)
	}
}

func TestAdvisePurchaseErrors(t *testing.T) {
	noRewardWallet := []models.CreditCard{
		cashbackCard("a", "Other Category", 0,
			categoryRule("r1", "cat-groceries", "Groceries", 0.05, nil),
		),
	}
	someWallet := []models.CreditCard{
		cashbackCard("a", "Flat Card", 0, generalRule("r1", 0.01)),
	}

	tests := []struct {
		name    string
		wallet  []models.CreditCard
		amount  float64
		wantErr error
	}{
		{"zero amount", someWallet, 0, ErrInvalidInput},
		{"negative amount", someWallet, -10, ErrInvalidInput},
		{"empty wallet", nil, 100, ErrNoActiveCards},
		{"no rule applies", noRewardWallet, 100, ErrNoSuitableCard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AdvisePurchase(tt.wallet, shell, tt.amount)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAdvisePurchaseIgnoresInactiveRules(t *testing.T) {
	inactive := categoryRule("r1", "cat-petrol", "Petrol", 0.08, nil)
	inactive.IsActive = false

	wallet := []models.CreditCard{
		cashbackCard("a", "Stale Card", 0, inactive),
		cashbackCard("b", "Flat Card", 0, generalRule("r2", 0.01)),
	}

	advice, err := AdvisePurchase(wallet, shell, 100)
	if err != nil {
		t.Fatalf("AdvisePurchase: %v", err)
	}
	if advice.Card == nil || advice.Card.ID != "b" {
		t.Fatalf("recommended card = %+v, want card b", advice.Card)
	}
}
