package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/cc1101027/credit-card/middleware"
	"github.com/cc1101027/credit-card/models"
	"github.com/cc1101027/credit-card/services"

	"github.com/gin-gonic/gin"
)

type RecommendationHandler struct {
	Recommendations *services.RecommendationService
}

// Optimize runs the combination search over the whole catalog against the
// user's trailing spending profile.
func (h *RecommendationHandler) Optimize(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	req := models.OptimizeRequest{MaxCards: services.DefaultMaxCards}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.MaxCards == 0 {
		req.MaxCards = services.DefaultMaxCards
	}

	response, err := h.Recommendations.Optimize(c.Request.Context(), userID, req.MaxCards, req.AnalysisPeriod)
	if errors.Is(err, services.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		log.Printf("Error generating recommendations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate recommendations"})
		return
	}

	if len(response.CurrentSpending) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No spending data found. Please add some expenses first."})
		return
	}

	c.JSON(http.StatusOK, response)
}

type PurchaseAdviceRequest struct {
	MerchantID string  `json:"merchant_id" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
}

// PurchaseAdvice answers "which of my cards should pay for this purchase".
func (h *RecommendationHandler) PurchaseAdvice(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req PurchaseAdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	advice, err := h.Recommendations.AdviseForPurchase(c.Request.Context(), userID, req.MerchantID, req.Amount)
	switch {
	case errors.Is(err, services.ErrMerchantNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Merchant not found"})
		return
	case errors.Is(err, services.ErrNoActiveCards):
		c.JSON(http.StatusBadRequest, gin.H{"error": "You have no active cards. Add cards to your wallet first."})
		return
	case errors.Is(err, services.ErrNoSuitableCard):
		c.JSON(http.StatusNotFound, gin.H{"error": "None of your cards earns rewards for this purchase"})
		return
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be positive"})
		return
	case err != nil:
		log.Printf("Error advising purchase: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate advice"})
		return
	}

	c.JSON(http.StatusOK, advice)
}

// SpendingAnalysis exposes the raw profile used by the optimizer. ?months=
// controls the lookback (default 3).
func (h *RecommendationHandler) SpendingAnalysis(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	months := services.DefaultProfileMonths
	if raw := c.Query("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 24 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "months must be between 1 and 24"})
			return
		}
		months = n
	}

	profile, err := h.Recommendations.GetSpendingProfile(c.Request.Context(), userID, months)
	if err != nil {
		log.Printf("Error building spending profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze spending"})
		return
	}

	total := 0.0
	for _, amount := range profile {
		total += amount
	}

	c.JSON(http.StatusOK, gin.H{
		"months":                months,
		"average_monthly_spend": total,
		"by_category":           profile,
	})
}

type SimulateCardRequest struct {
	CardID string `json:"card_id" binding:"required"`
}

// SimulateCard projects what a single catalog card would earn against the
// user's current profile, whether or not they own it.
func (h *RecommendationHandler) SimulateCard(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req SimulateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card, err := h.Recommendations.GetActiveCard(c.Request.Context(), req.CardID)
	if errors.Is(err, services.ErrCardNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Credit card not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch card"})
		return
	}

	profile, err := h.Recommendations.GetSpendingProfile(c.Request.Context(), userID, services.DefaultProfileMonths)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze spending"})
		return
	}
	if len(profile) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No spending data found. Please add some expenses first."})
		return
	}

	breakdown := services.CalculateCardRewards(*card, profile)

	c.JSON(http.StatusOK, gin.H{
		"card":               card,
		"projected_cashback": breakdown.TotalCashback,
		"projected_points":   breakdown.TotalPoints,
		"category_breakdown": breakdown.Categories,
		"annual_fee":         card.AnnualFee,
	})
}

type CompareCardsRequest struct {
	CardIDs []string `json:"card_ids" binding:"required,min=2,max=5"`
}

// CompareCards projects up to five catalog cards side by side against the
// user's profile.
func (h *RecommendationHandler) CompareCards(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CompareCardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.Recommendations.GetSpendingProfile(c.Request.Context(), userID, services.DefaultProfileMonths)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze spending"})
		return
	}
	if len(profile) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No spending data found. Please add some expenses first."})
		return
	}

	comparisons := make([]gin.H, 0, len(req.CardIDs))
	for _, cardID := range req.CardIDs {
		card, err := h.Recommendations.GetActiveCard(c.Request.Context(), cardID)
		if errors.Is(err, services.ErrCardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Credit card not found: " + cardID})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch card"})
			return
		}

		breakdown := services.CalculateCardRewards(*card, profile)
		comparisons = append(comparisons, gin.H{
			"card":               card,
			"projected_cashback": breakdown.TotalCashback,
			"projected_points":   breakdown.TotalPoints,
			"category_breakdown": breakdown.Categories,
			"annual_fee":         card.AnnualFee,
			"net_cashback":       breakdown.TotalCashback - card.AnnualFee,
		})
	}

	c.JSON(http.StatusOK, gin.H{"comparison": comparisons})
}
