package models

import "time"

// ============================================================================
// CATEGORIES & MERCHANTS
// ============================================================================

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

type Merchant struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name,omitempty"`
	MCCCode      string `json:"mcc_code,omitempty"` // Merchant Category Code
	LogoURL      string `json:"logo_url,omitempty"`
}

// ============================================================================
// EXPENSES
// ============================================================================

type Expense struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	MerchantID   string    `json:"merchant_id"`
	MerchantName string    `json:"merchant_name,omitempty"`
	CategoryName string    `json:"category_name,omitempty"`
	Amount       float64   `json:"amount"`
	Description  string    `json:"description,omitempty"`
	ExpenseDate  time.Time `json:"expense_date"`
	CreditCardID *string   `json:"credit_card_id,omitempty"` // Card used, if tracked
	CreatedAt    time.Time `json:"created_at"`
}

type CreateExpenseRequest struct {
	MerchantID   string    `json:"merchant_id" binding:"required"`
	Amount       float64   `json:"amount" binding:"required,gt=0"`
	Description  string    `json:"description,omitempty"`
	ExpenseDate  time.Time `json:"expense_date" binding:"required"`
	CreditCardID *string   `json:"credit_card_id,omitempty"`
}

type UpdateExpenseRequest struct {
	MerchantID   *string    `json:"merchant_id,omitempty"`
	Amount       *float64   `json:"amount,omitempty" binding:"omitempty,gt=0"`
	Description  *string    `json:"description,omitempty"`
	ExpenseDate  *time.Time `json:"expense_date,omitempty"`
	CreditCardID *string    `json:"credit_card_id,omitempty"`
}
