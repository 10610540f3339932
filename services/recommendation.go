package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/cc1101027/credit-card/models"

	"github.com/google/uuid"
)

// RecommendationService is the thin adapter between the database and the pure
// engine functions. It fetches the catalog, profile and wallet up front so the
// combinatorial search runs entirely over in-memory data.
type RecommendationService struct {
	db *sql.DB
}

func NewRecommendationService(db *sql.DB) *RecommendationService {
	return &RecommendationService{db: db}
}

// GetSpendingProfile aggregates the user's expenses over the trailing window
// into an average-monthly-per-category profile. A user with no expenses gets
// an empty profile, not an error.
func (s *RecommendationService) GetSpendingProfile(ctx context.Context, userID string, months int) (models.SpendingProfile, error) {
	if months < 1 {
		return nil, fmt.Errorf("%w: months must be >= 1", ErrInvalidInput)
	}

	start, end := AnalysisWindow(time.Now(), months)

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.name, SUM(e.amount)
		FROM expenses e
		JOIN merchants m ON e.merchant_id = m.id
		JOIN categories c ON m.category_id = c.id
		WHERE e.user_id = $1 AND e.expense_date >= $2 AND e.expense_date <= $3
		GROUP BY c.id, c.name
	`, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("query spending by category: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var category string
		var total float64
		if err := rows.Scan(&category, &total); err != nil {
			return nil, fmt.Errorf("scan spending row: %w", err)
		}
		totals[category] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("spending rows: %w", err)
	}

	return BuildSpendingProfile(totals, months), nil
}

// ListActiveCards returns the full active catalog with nested active reward
// rules, fetched in two bulk queries.
func (s *RecommendationService) ListActiveCards(ctx context.Context) ([]models.CreditCard, error) {
	cards, err := s.queryCards(ctx, `
		SELECT id, name, bank, card_type, annual_fee, minimum_income,
		       COALESCE(description, ''), COALESCE(image_url, ''), is_active, created_at
		FROM credit_cards
		WHERE is_active = TRUE
		ORDER BY bank, name
	`)
	if err != nil {
		return nil, err
	}
	if err := s.attachRewards(ctx, cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// ListOwnedActiveCards returns the active catalog cards in the user's wallet,
// with nested active reward rules.
func (s *RecommendationService) ListOwnedActiveCards(ctx context.Context, userID string) ([]models.CreditCard, error) {
	cards, err := s.queryCards(ctx, `
		SELECT cc.id, cc.name, cc.bank, cc.card_type, cc.annual_fee, cc.minimum_income,
		       COALESCE(cc.description, ''), COALESCE(cc.image_url, ''), cc.is_active, cc.created_at
		FROM credit_cards cc
		INNER JOIN user_cards uc ON uc.credit_card_id = cc.id
		WHERE uc.user_id = $1 AND uc.is_active = TRUE AND cc.is_active = TRUE
		ORDER BY cc.bank, cc.name
	`, userID)
	if err != nil {
		return nil, err
	}
	if err := s.attachRewards(ctx, cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// GetActiveCard fetches one active card with its rules.
func (s *RecommendationService) GetActiveCard(ctx context.Context, cardID string) (*models.CreditCard, error) {
	cards, err := s.queryCards(ctx, `
		SELECT id, name, bank, card_type, annual_fee, minimum_income,
		       COALESCE(description, ''), COALESCE(image_url, ''), is_active, created_at
		FROM credit_cards
		WHERE id = $1 AND is_active = TRUE
	`, cardID)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, ErrCardNotFound
	}
	if err := s.attachRewards(ctx, cards); err != nil {
		return nil, err
	}
	return &cards[0], nil
}

// GetMerchant resolves a merchant and its category.
func (s *RecommendationService) GetMerchant(ctx context.Context, merchantID string) (*models.Merchant, error) {
	var m models.Merchant
	err := s.db.QueryRowContext(ctx, `
		SELECT m.id, m.name, m.category_id, c.name, COALESCE(m.mcc_code, ''), COALESCE(m.logo_url, '')
		FROM merchants m
		JOIN categories c ON m.category_id = c.id
		WHERE m.id = $1
	`, merchantID).Scan(&m.ID, &m.Name, &m.CategoryID, &m.CategoryName, &m.MCCCode, &m.LogoURL)
	if err == sql.ErrNoRows {
		return nil, ErrMerchantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query merchant: %w", err)
	}
	return &m, nil
}

// Optimize runs the full recommendation flow: profile, catalog, combinatorial
// search, and persistence of the resulting recommendation row. An empty
// profile or catalog produces a response with no recommendations so the
// handler can surface "insufficient data" distinctly from a failure.
func (s *RecommendationService) Optimize(ctx context.Context, userID string, maxCards int, period string) (*models.RecommendationResponse, error) {
	if maxCards < 1 {
		return nil, fmt.Errorf("%w: max_cards must be >= 1", ErrInvalidInput)
	}

	profile, err := s.GetSpendingProfile(ctx, userID, DefaultProfileMonths)
	if err != nil {
		return nil, err
	}

	response := &models.RecommendationResponse{
		UserID:          userID,
		AnalysisPeriod:  period,
		CurrentSpending: profile,
		GeneratedAt:     time.Now(),
	}
	if response.AnalysisPeriod == "" {
		response.AnalysisPeriod = time.Now().Format("2006-01")
	}
	if len(profile) == 0 {
		return response, nil
	}

	catalog, err := s.ListActiveCards(ctx)
	if err != nil {
		return nil, err
	}

	response.Recommendations = OptimizeCombinations(catalog, profile, OptimizeOptions{
		MaxCards:   maxCards,
		PointValue: pointValueFromEnv(),
	})
	if len(response.Recommendations) > 0 {
		response.PotentialSavings = response.Recommendations[0].NetBenefit
		if err := s.saveRecommendation(ctx, response); err != nil {
			return nil, err
		}
	}

	return response, nil
}

// AdviseForPurchase recommends which owned card to use for a single purchase.
func (s *RecommendationService) AdviseForPurchase(ctx context.Context, userID, merchantID string, amount float64) (models.PurchaseAdvice, error) {
	merchant, err := s.GetMerchant(ctx, merchantID)
	if err != nil {
		return models.PurchaseAdvice{}, err
	}

	ownedCards, err := s.ListOwnedActiveCards(ctx, userID)
	if err != nil {
		return models.PurchaseAdvice{}, err
	}

	return AdvisePurchase(ownedCards, *merchant, amount)
}

// pointValueFromEnv reads the configurable points-to-cash conversion used for
// ranking. Falls back to the default when unset or unparsable.
func pointValueFromEnv() float64 {
	raw := os.Getenv("POINTS_TO_CASH_RATE")
	if raw == "" {
		return DefaultPointValue
	}
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil || rate <= 0 {
		return DefaultPointValue
	}
	return rate
}

// saveRecommendation keeps a history row of what was recommended and when.
func (s *RecommendationService) saveRecommendation(ctx context.Context, rec *models.RecommendationResponse) error {
	payload, err := json.Marshal(rec.Recommendations)
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO recommendations (id, user_id, recommended_cards, projected_savings, analysis_period)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.New().String(), rec.UserID, payload, rec.PotentialSavings, rec.AnalysisPeriod)
	if err != nil {
		return fmt.Errorf("save recommendation: %w", err)
	}
	return nil
}

// queryCards runs a card SELECT whose column order matches scanCard.
func (s *RecommendationService) queryCards(ctx context.Context, query string, args ...any) ([]models.CreditCard, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var cards []models.CreditCard
	for rows.Next() {
		var card models.CreditCard
		var minIncome sql.NullFloat64
		if err := rows.Scan(
			&card.ID, &card.Name, &card.Bank, &card.CardType, &card.AnnualFee,
			&minIncome, &card.Description, &card.ImageURL, &card.IsActive, &card.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		if minIncome.Valid {
			card.MinimumIncome = &minIncome.Float64
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("card rows: %w", err)
	}
	return cards, nil
}

// attachRewards loads every active rule for the given cards in one query and
// nests them, ordered by rule id so rate ties resolve deterministically.
func (s *RecommendationService) attachRewards(ctx context.Context, cards []models.CreditCard) error {
	if len(cards) == 0 {
		return nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.credit_card_id, r.category_id, COALESCE(c.name, ''),
		       r.merchant_id, COALESCE(m.name, ''),
		       r.reward_type, r.reward_rate, r.minimum_spend, r.maximum_spend,
		       COALESCE(r.conditions, ''), r.is_active
		FROM card_rewards r
		LEFT JOIN categories c ON r.category_id = c.id
		LEFT JOIN merchants m ON r.merchant_id = m.id
		WHERE r.is_active = TRUE
		ORDER BY r.credit_card_id, r.id
	`)
	if err != nil {
		return fmt.Errorf("query card rewards: %w", err)
	}
	defer rows.Close()

	rewardsByCard := make(map[string][]models.CardReward)
	for rows.Next() {
		var reward models.CardReward
		var categoryID, merchantID sql.NullString
		var maxSpend sql.NullFloat64
		if err := rows.Scan(
			&reward.ID, &reward.CreditCardID, &categoryID, &reward.CategoryName,
			&merchantID, &reward.MerchantName,
			&reward.RewardType, &reward.RewardRate, &reward.MinimumSpend, &maxSpend,
			&reward.Conditions, &reward.IsActive,
		); err != nil {
			return fmt.Errorf("scan card reward: %w", err)
		}
		if categoryID.Valid {
			reward.CategoryID = &categoryID.String
		}
		if merchantID.Valid {
			reward.MerchantID = &merchantID.String
		}
		if maxSpend.Valid {
			reward.MaximumSpend = &maxSpend.Float64
		}
		rewardsByCard[reward.CreditCardID] = append(rewardsByCard[reward.CreditCardID], reward)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("card reward rows: %w", err)
	}

	for i := range cards {
		cards[i].Rewards = rewardsByCard[cards[i].ID]
	}
	return nil
}
