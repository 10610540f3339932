package models

import "time"

// ============================================================================
// CREDIT CARD CATALOG
// ============================================================================

// Card types as issued by the banks
const (
	CardTypeCashback = "cashback"
	CardTypePoints   = "points"
	CardTypeMiles    = "miles"
	CardTypeIslamic  = "islamic"
)

// Reward kinds a rule can pay out in
const (
	RewardTypeCashback = "cashback"
	RewardTypePoints   = "points"
	RewardTypeMiles    = "miles"
)

// RewardScope is the explicit scope of a reward rule. A rule targets either a
// single merchant, a whole category, or everything (general/catch-all).
// Merchant and category scope are mutually exclusive.
type RewardScope int

const (
	ScopeGeneral RewardScope = iota
	ScopeCategory
	ScopeMerchant
)

func (s RewardScope) String() string {
	switch s {
	case ScopeCategory:
		return "category"
	case ScopeMerchant:
		return "merchant"
	default:
		return "general"
	}
}

type CardReward struct {
	ID           string   `json:"id"`
	CreditCardID string   `json:"credit_card_id"`
	CategoryID   *string  `json:"category_id,omitempty"`
	CategoryName string   `json:"category_name,omitempty"`
	MerchantID   *string  `json:"merchant_id,omitempty"`
	MerchantName string   `json:"merchant_name,omitempty"`
	RewardType   string   `json:"reward_type"`
	RewardRate   float64  `json:"reward_rate"` // e.g. 0.05 for 5% cashback
	MinimumSpend float64  `json:"minimum_spend"`
	MaximumSpend *float64 `json:"maximum_spend,omitempty"` // Monthly cap
	Conditions   string   `json:"conditions,omitempty"`
	IsActive     bool     `json:"is_active"`
}

// Scope resolves the rule's scope from its foreign keys. Merchant wins if a
// row somehow carries both, so a bad row can never be treated as general.
func (r CardReward) Scope() RewardScope {
	if r.MerchantID != nil && *r.MerchantID != "" {
		return ScopeMerchant
	}
	if r.CategoryID != nil && *r.CategoryID != "" {
		return ScopeCategory
	}
	return ScopeGeneral
}

type CreditCard struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Bank          string       `json:"bank"`
	CardType      string       `json:"card_type"`
	AnnualFee     float64      `json:"annual_fee"`
	MinimumIncome *float64     `json:"minimum_income,omitempty"` // Advisory only
	Description   string       `json:"description,omitempty"`
	ImageURL      string       `json:"image_url,omitempty"`
	IsActive      bool         `json:"is_active"`
	CreatedAt     time.Time    `json:"created_at"`
	Rewards       []CardReward `json:"rewards,omitempty"`
}

// ============================================================================
// USER WALLET
// ============================================================================

type UserCard struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	CreditCardID string      `json:"credit_card_id"`
	AddedAt      time.Time   `json:"added_at"`
	IsActive     bool        `json:"is_active"`
	Card         *CreditCard `json:"credit_card,omitempty"`
}

type AddUserCardRequest struct {
	CreditCardID string `json:"credit_card_id" binding:"required"`
}
