package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/cc1101027/credit-card/middleware"
	"github.com/cc1101027/credit-card/services"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	DB              *sql.DB
	Recommendations *services.RecommendationService
}

// baselineRewardRate approximates what an unoptimized card earns, for the
// savings-potential comparison.
const baselineRewardRate = 0.005

// ============================================================================
// SPENDING ANALYTICS
// ============================================================================

// SpendingTrends returns month-by-month totals for the trailing ?months=
// (default 6) months.
func (h *AnalyticsHandler) SpendingTrends(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	months := 6
	if raw := c.Query("months"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= 24 {
			months = n
		}
	}

	rows, err := h.DB.Query(`
		SELECT TO_CHAR(DATE_TRUNC('month', expense_date), 'YYYY-MM') AS month,
		       SUM(amount), COUNT(*)
		FROM expenses
		WHERE user_id = $1 AND expense_date >= $2
		GROUP BY month
		ORDER BY month
	`, userID, time.Now().AddDate(0, -months, 0))
	if err != nil {
		log.Printf("Error fetching spending trends: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch spending trends"})
		return
	}
	defer rows.Close()

	type monthTotal struct {
		Month string  `json:"month"`
		Total float64 `json:"total"`
		Count int     `json:"count"`
	}

	trends := []monthTotal{}
	for rows.Next() {
		var mt monthTotal
		if err := rows.Scan(&mt.Month, &mt.Total, &mt.Count); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read spending trends"})
			return
		}
		trends = append(trends, mt)
	}

	c.JSON(http.StatusOK, gin.H{"months": months, "trends": trends})
}

// CategoryBreakdown returns per-category totals and shares over the trailing
// ?months= (default 3) months.
func (h *AnalyticsHandler) CategoryBreakdown(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	months := services.DefaultProfileMonths
	if raw := c.Query("months"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= 24 {
			months = n
		}
	}
	start, end := services.AnalysisWindow(time.Now(), months)

	rows, err := h.DB.Query(`
		SELECT cat.name, COALESCE(cat.icon, ''), SUM(e.amount), COUNT(*)
		FROM expenses e
		JOIN merchants m ON e.merchant_id = m.id
		JOIN categories cat ON m.category_id = cat.id
		WHERE e.user_id = $1 AND e.expense_date >= $2 AND e.expense_date <= $3
		GROUP BY cat.id, cat.name, cat.icon
		ORDER BY SUM(e.amount) DESC
	`, userID, start, end)
	if err != nil {
		log.Printf("Error fetching category breakdown: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category breakdown"})
		return
	}
	defer rows.Close()

	type categoryTotal struct {
		Category   string  `json:"category"`
		Icon       string  `json:"icon,omitempty"`
		Total      float64 `json:"total"`
		Count      int     `json:"count"`
		Percentage float64 `json:"percentage"`
	}

	breakdown := []categoryTotal{}
	grandTotal := 0.0
	for rows.Next() {
		var ct categoryTotal
		if err := rows.Scan(&ct.Category, &ct.Icon, &ct.Total, &ct.Count); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read category breakdown"})
			return
		}
		grandTotal += ct.Total
		breakdown = append(breakdown, ct)
	}
	for i := range breakdown {
		if grandTotal > 0 {
			breakdown[i].Percentage = breakdown[i].Total / grandTotal * 100
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"months":      months,
		"total_spend": grandTotal,
		"breakdown":   breakdown,
	})
}

// MerchantAnalysis returns the user's top merchants by spend over the trailing
// ?months= (default 3) months.
func (h *AnalyticsHandler) MerchantAnalysis(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	months := services.DefaultProfileMonths
	if raw := c.Query("months"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= 24 {
			months = n
		}
	}
	start, end := services.AnalysisWindow(time.Now(), months)

	rows, err := h.DB.Query(`
		SELECT m.id, m.name, cat.name, SUM(e.amount), COUNT(*)
		FROM expenses e
		JOIN merchants m ON e.merchant_id = m.id
		JOIN categories cat ON m.category_id = cat.id
		WHERE e.user_id = $1 AND e.expense_date >= $2 AND e.expense_date <= $3
		GROUP BY m.id, m.name, cat.name
		ORDER BY SUM(e.amount) DESC
		LIMIT 10
	`, userID, start, end)
	if err != nil {
		log.Printf("Error fetching merchant analysis: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch merchant analysis"})
		return
	}
	defer rows.Close()

	type merchantTotal struct {
		MerchantID string  `json:"merchant_id"`
		Merchant   string  `json:"merchant"`
		Category   string  `json:"category"`
		Total      float64 `json:"total"`
		Count      int     `json:"count"`
	}

	merchants := []merchantTotal{}
	for rows.Next() {
		var mt merchantTotal
		if err := rows.Scan(&mt.MerchantID, &mt.Merchant, &mt.Category, &mt.Total, &mt.Count); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read merchant analysis"})
			return
		}
		merchants = append(merchants, mt)
	}

	c.JSON(http.StatusOK, gin.H{"months": months, "top_merchants": merchants})
}

// SavingsPotential compares what the best recommended combination would earn
// annually against a flat baseline rate on the same spending.
func (h *AnalyticsHandler) SavingsPotential(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	profile, err := h.Recommendations.GetSpendingProfile(c.Request.Context(), userID, services.DefaultProfileMonths)
	if err != nil {
		log.Printf("Error building spending profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze spending"})
		return
	}
	if len(profile) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No spending data found. Please add some expenses first."})
		return
	}

	annualSpend := 0.0
	for _, monthly := range profile {
		annualSpend += monthly * 12
	}
	baseline := annualSpend * baselineRewardRate

	catalog, err := h.Recommendations.ListActiveCards(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cards"})
		return
	}

	combos := services.OptimizeCombinations(catalog, profile, services.OptimizeOptions{})
	optimized := baseline
	if len(combos) > 0 && combos[0].NetBenefit > baseline {
		optimized = combos[0].NetBenefit
	}

	c.JSON(http.StatusOK, gin.H{
		"annual_spend":       annualSpend,
		"baseline_rewards":   baseline,
		"optimized_rewards":  optimized,
		"additional_savings": optimized - baseline,
	})
}

// DashboardSummary aggregates the numbers the dashboard shows on first load.
func (h *AnalyticsHandler) DashboardSummary(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	monthStart := time.Now().AddDate(0, 0, -30)

	var monthSpend float64
	var monthCount int
	err := h.DB.QueryRow(`
		SELECT COALESCE(SUM(amount), 0), COUNT(*)
		FROM expenses
		WHERE user_id = $1 AND expense_date >= $2
	`, userID, monthStart).Scan(&monthSpend, &monthCount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch summary"})
		return
	}

	var walletSize int
	err = h.DB.QueryRow(`
		SELECT COUNT(*) FROM user_cards WHERE user_id = $1 AND is_active = TRUE
	`, userID).Scan(&walletSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch summary"})
		return
	}

	var topCategory sql.NullString
	err = h.DB.QueryRow(`
		SELECT cat.name
		FROM expenses e
		JOIN merchants m ON e.merchant_id = m.id
		JOIN categories cat ON m.category_id = cat.id
		WHERE e.user_id = $1 AND e.expense_date >= $2
		GROUP BY cat.name
		ORDER BY SUM(e.amount) DESC
		LIMIT 1
	`, userID, monthStart).Scan(&topCategory)
	if err != nil && err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch summary"})
		return
	}

	var lastSavings sql.NullFloat64
	err = h.DB.QueryRow(`
		SELECT projected_savings
		FROM recommendations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, userID).Scan(&lastSavings)
	if err != nil && err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch summary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"month_spend":       monthSpend,
		"month_expenses":    monthCount,
		"wallet_size":       walletSize,
		"top_category":      topCategory.String,
		"projected_savings": lastSavings.Float64,
	})
}
