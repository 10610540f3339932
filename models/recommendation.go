package models

import "time"

// ============================================================================
// RECOMMENDATION ENGINE TYPES
// ============================================================================

// SpendingProfile maps a category name to the user's average monthly spend in
// that category over the analysis window. Categories without spend are absent,
// not zero.
type SpendingProfile map[string]float64

// CategoryReward explains what one category earns on one card.
type CategoryReward struct {
	Amount     float64 `json:"amount"` // Projected annual reward
	Rate       float64 `json:"rate"`
	RewardType string  `json:"reward_type"`
}

// RewardBreakdown is the projected annual return of a single card against a
// spending profile.
type RewardBreakdown struct {
	TotalCashback float64                   `json:"total_cashback"`
	TotalPoints   float64                   `json:"total_points"`
	Categories    map[string]CategoryReward `json:"category_breakdown"`
}

// CategoryAllocation records which card of a combination a category was
// assigned to, and what it earns there.
type CategoryAllocation struct {
	CardID     string  `json:"card_id"`
	CardName   string  `json:"card_name"`
	Reward     float64 `json:"reward"`
	RewardType string  `json:"reward_type"`
}

type CardCombination struct {
	Cards             []CreditCard                  `json:"cards"`
	ProjectedCashback float64                       `json:"projected_cashback"`
	ProjectedPoints   float64                       `json:"projected_points"`
	TotalAnnualFee    float64                       `json:"total_annual_fee"`
	NetBenefit        float64                       `json:"net_benefit"`
	Allocation        map[string]CategoryAllocation `json:"allocation"`
}

type OptimizeRequest struct {
	MaxCards       int    `json:"max_cards,omitempty" binding:"omitempty,min=1,max=5"`
	AnalysisPeriod string `json:"analysis_period,omitempty"` // e.g. "2024-01"
}

type RecommendationResponse struct {
	UserID           string            `json:"user_id"`
	AnalysisPeriod   string            `json:"analysis_period"`
	CurrentSpending  SpendingProfile   `json:"current_spending"`
	Recommendations  []CardCombination `json:"recommendations"`
	PotentialSavings float64           `json:"potential_savings"`
	GeneratedAt      time.Time         `json:"generated_at"`
}

// PurchaseAdvice is the answer to "which of my cards should pay for this".
type PurchaseAdvice struct {
	Card         *CreditCard `json:"recommended_card,omitempty"`
	RewardAmount float64     `json:"reward_amount"`
	RewardType   string      `json:"reward_type,omitempty"`
	Merchant     string      `json:"merchant"`
	Category     string      `json:"category"`
}
