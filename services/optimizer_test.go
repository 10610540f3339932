package services

import (
	"math"
	"testing"

	"github.com/cc1101027/credit-card/models"
)

func cashbackCard(id, name string, annualFee float64, rules ...models.CardReward) models.CreditCard {
	return models.CreditCard{
		ID:        id,
		Name:      name,
		Bank:      "Test Bank",
		CardType:  models.CardTypeCashback,
		AnnualFee: annualFee,
		IsActive:  true,
		Rewards:   rules,
	}
}

func TestOptimizeCombinationsEmptyInputs(t *testing.T) {
	catalog := []models.CreditCard{cashbackCard("a", "A", 0, generalRule("r1", 0.01))}
	profile := models.SpendingProfile{"Dining": 100}

	if got := OptimizeCombinations(nil, profile, OptimizeOptions{}); got != nil {
		t.Errorf("empty catalog: got %d combinations, want none", len(got))
	}
	if got := OptimizeCombinations(catalog, models.SpendingProfile{}, OptimizeOptions{}); got != nil {
		t.Errorf("empty profile: got %d combinations, want none", len(got))
	}
}

func TestOptimizeCombinationsNoDuplicateCards(t *testing.T) {
	catalog := []models.CreditCard{
		cashbackCard("a", "A", 0, generalRule("r1", 0.01)),
		cashbackCard("b", "B", 0, generalRule("r2", 0.02)),
		cashbackCard("c", "C", 0, generalRule("r3", 0.03)),
	}
	profile := models.SpendingProfile{"Dining": 100}

	combos := OptimizeCombinations(catalog, profile, OptimizeOptions{MaxCards: 3, TopN: 100})

	for _, combo := range combos {
		seen := make(map[string]bool)
		for _, card := range combo.Cards {
			if seen[card.ID] {
				t.Fatalf("card %s appears twice in a combination", card.ID)
			}
			seen[card.ID] = true
		}
	}
}

func TestOptimizeCombinationsRespectsMaxCards(t *testing.T) {
	catalog := []models.CreditCard{
		cashbackCard("a", "A", 0, generalRule("r1", 0.01)),
		cashbackCard("b", "B", 0, generalRule("r2", 0.02)),
		cashbackCard("c", "C", 0, generalRule("r3", 0.03)),
		cashbackCard("d", "D", 0, generalRule("r4", 0.04)),
	}
	profile := models.SpendingProfile{"Dining": 100}

	combos := OptimizeCombinations(catalog, profile, OptimizeOptions{MaxCards: 2, TopN: 100})

	if len(combos) == 0 {
		t.Fatal("no combinations returned")
	}
	for _, combo := range combos {
		if len(combo.Cards) > 2 {
			t.Errorf("combination has %d cards, want <= 2", len(combo.Cards))
		}
	}
}

func TestOptimizeCombinationsSortedByNetBenefit(t *testing.T) {
	catalog := []models.CreditCard{
		cashbackCard("a", "A", 0, generalRule("r1", 0.01)),
		cashbackCard("b", "B", 100, generalRule("r2", 0.02)),
		cashbackCard("c", "C", 0, generalRule("r3", 0.005)),
	}
	profile := models.SpendingProfile{"Dining": 500}

	combos := OptimizeCombinations(catalog, profile, OptimizeOptions{MaxCards: 3, TopN: 100})

	for i := 1; i < len(combos); i++ {
		if combos[i].NetBenefit > combos[i-1].NetBenefit {
			t.Fatalf("combinations not sorted: [%d]=%v > [%d]=%v",
				i, combos[i].NetBenefit, i-1, combos[i-1].NetBenefit)
		}
	}
}

func TestOptimizeCombinationsTopNLimit(t *testing.T) {
	catalog := []models.CreditCard{
		cashbackCard("a", "A", 0, generalRule("r1", 0.01)),
		cashbackCard("b", "B", 0, generalRule("r2", 0.02)),
		cashbackCard("c", "C", 0, generalRule("r3", 0.03)),
		cashbackCard("d", "D", 0, generalRule("r4", 0.04)),
	}
	profile := models.SpendingProfile{"Dining": 100}

	// 4 singles + 6 pairs + 4 triples = 14 candidates
	combos := OptimizeCombinations(catalog, profile, OptimizeOptions{MaxCards: 3})

	if len(combos) != DefaultTopN {
		t.Errorf("got %d combinations, want %d", len(combos), DefaultTopN)
	}
}

func TestOptimizeCombinationsAllocation(t *testing.T) {
	// A is strong on Petrol, B on Groceries. Together they should split the
	// profile between them and each category should land on its best card.
	cardA := cashbackCard("a", "Petrol Card", 0,
		categoryRule("r1", "cat-petrol", "Petrol", 0.08, nil),
		generalRule("r2", 0.002),
	)
	cardB := cashbackCard("b", "Groceries Card", 0,
		categoryRule("r3", "cat-groceries", "Groceries", 0.05, nil),
		generalRule("r4", 0.005),
	)
	profile := models.SpendingProfile{"Petrol": 300, "Groceries": 200}

	combos := OptimizeCombinations([]models.CreditCard{cardA, cardB}, profile, OptimizeOptions{MaxCards: 2})

	if len(combos) == 0 {
		t.Fatal("no combinations returned")
	}
	best := combos[0]
	if len(best.Cards) != 2 {
		t.Fatalf("best combination has %d cards, want 2", len(best.Cards))
	}
	if got := best.Allocation["Petrol"].CardID; got != "a" {
		t.Errorf("Petrol allocated to %q, want %q", got, "a")
	}
	if got := best.Allocation["Groceries"].CardID; got != "b" {
		t.Errorf("Groceries allocated to %q, want %q", got, "b")
	}

	// 300*12*8% + 200*12*5%
	wantCashback := 288.0 + 120.0
	if math.Abs(best.ProjectedCashback-wantCashback) > 1e-9 {
		t.Errorf("ProjectedCashback = %v, want %v", best.ProjectedCashback, wantCashback)
	}
	if math.Abs(best.NetBenefit-wantCashback) > 1e-9 {
		t.Errorf("NetBenefit = %v, want %v (no fees)", best.NetBenefit, wantCashback)
	}
}

func TestOptimizeCombinationsEndToEnd(t *testing.T) {
	cardA := cashbackCard("a", "Petrol Card", 0,
		categoryRule("r1", "cat-petrol", "Petrol", 0.05, floatPtr(300)),
		generalRule("r2", 0.005),
	)
	cardB := cashbackCard("b", "Groceries Card", 0,
		categoryRule("r3", "cat-groceries", "Groceries", 0.05, floatPtr(500)),
		generalRule("r4", 0.01),
	)
	profile := models.SpendingProfile{"Petrol": 300, "Groceries": 200}

	combos := OptimizeCombinations([]models.CreditCard{cardA, cardB}, profile, OptimizeOptions{MaxCards: 2, TopN: 100})

	var pair *models.CardCombination
	for i := range combos {
		if len(combos[i].Cards) == 2 {
			pair = &combos[i]
			break
		}
	}
	if pair == nil {
		t.Fatal("no two-card combination returned")
	}

	if got := pair.Allocation["Petrol"].CardID; got != "a" {
		t.Errorf("Petrol allocated to %q, want %q", got, "a")
	}
	if got := pair.Allocation["Groceries"].CardID; got != "b" {
		t.Errorf("Groceries allocated to %q, want %q", got, "b")
	}
	// Petrol: 300*12*5% = 180 (cap RM300/mo not binding), Groceries: 200*12*5% = 120
	if math.Abs(pair.Allocation["Petrol"].Reward-180) > 1e-9 {
		t.Errorf("Petrol reward = %v, want 180", pair.Allocation["Petrol"].Reward)
	}
	if math.Abs(pair.Allocation["Groceries"].Reward-120) > 1e-9 {
		t.Errorf("Groceries reward = %v, want 120", pair.Allocation["Groceries"].Reward)
	}
	if math.Abs(pair.ProjectedCashback-300) > 1e-9 {
		t.Errorf("ProjectedCashback = %v, want 300", pair.ProjectedCashback)
	}
	if math.Abs(pair.NetBenefit-300) > 1e-9 {
		t.Errorf("NetBenefit = %v, want 300 (fee-free cards)", pair.NetBenefit)
	}
}

func TestOptimizeCombinationsCategoryTierBeatsGeneral(t *testing.T) {
	// B's general rate is higher than A's category rate, but the category
	// tier is exhausted before the general tier competes.
	cardA := cashbackCard("a", "Category Card", 0,
		categoryRule("r1", "cat-dining", "Dining", 0.01, nil),
	)
	cardB := cashbackCard("b", "General Card", 0,
		generalRule("r2", 0.03),
	)
	profile := models.SpendingProfile{"Dining": 100}

	combos := OptimizeCombinations([]models.CreditCard{cardA, cardB}, profile, OptimizeOptions{MaxCards: 2, TopN: 100})

	for _, combo := range combos {
		if len(combo.Cards) == 2 {
			if got := combo.Allocation["Dining"].CardID; got != "a" {
				t.Errorf("Dining allocated to %q, want %q (category rule wins the tier)", got, "a")
			}
		}
	}
}

func TestOptimizeCombinationsFeesReduceNetBenefit(t *testing.T) {
	card := cashbackCard("a", "Fee Card", 150, generalRule("r1", 0.01))
	profile := models.SpendingProfile{"Dining": 100}

	combos := OptimizeCombinations([]models.CreditCard{card}, profile, OptimizeOptions{MaxCards: 1})

	if len(combos) != 1 {
		t.Fatalf("got %d combinations, want 1", len(combos))
	}
	// 100*12*1% - 150
	want := 12.0 - 150.0
	if math.Abs(combos[0].NetBenefit-want) > 1e-9 {
		t.Errorf("NetBenefit = %v, want %v", combos[0].NetBenefit, want)
	}
}

func TestForEachSubsetCounts(t *testing.T) {
	tests := []struct {
		n, k, want int
	}{
		{4, 1, 4},
		{4, 2, 6},
		{4, 3, 4},
		{4, 4, 1},
		{5, 2, 10},
	}

	for _, tt := range tests {
		count := 0
		forEachSubset(tt.n, tt.k, func(indexes []int) {
			if len(indexes) != tt.k {
				t.Fatalf("subset size = %d, want %d", len(indexes), tt.k)
			}
			count++
		})
		if count != tt.want {
			t.Errorf("C(%d,%d): got %d subsets, want %d", tt.n, tt.k, count, tt.want)
		}
	}
}
