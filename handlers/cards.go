package handlers

import (
	"errors"
	"net/http"

	"github.com/cc1101027/credit-card/services"

	"github.com/gin-gonic/gin"
)

type CardHandler struct {
	Recommendations *services.RecommendationService
}

// GetCards lists the active card catalog. Optional ?bank= and ?card_type=
// filters are applied in memory since the catalog is small.
func (h *CardHandler) GetCards(c *gin.Context) {
	cards, err := h.Recommendations.ListActiveCards(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cards"})
		return
	}

	bank := c.Query("bank")
	cardType := c.Query("card_type")
	if bank != "" || cardType != "" {
		filtered := cards[:0]
		for _, card := range cards {
			if bank != "" && card.Bank != bank {
				continue
			}
			if cardType != "" && card.CardType != cardType {
				continue
			}
			filtered = append(filtered, card)
		}
		cards = filtered
	}

	c.JSON(http.StatusOK, gin.H{"cards": cards, "count": len(cards)})
}

func (h *CardHandler) GetCard(c *gin.Context) {
	card, err := h.Recommendations.GetActiveCard(c.Request.Context(), c.Param("id"))
	if errors.Is(err, services.ErrCardNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Credit card not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch card"})
		return
	}

	c.JSON(http.StatusOK, card)
}

func (h *CardHandler) GetCardRewards(c *gin.Context) {
	card, err := h.Recommendations.GetActiveCard(c.Request.Context(), c.Param("id"))
	if errors.Is(err, services.ErrCardNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Credit card not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch card rewards"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"card_id":   card.ID,
		"card_name": card.Name,
		"rewards":   card.Rewards,
	})
}

// GetBanks lists the distinct banks in the catalog, for filter dropdowns.
func (h *CardHandler) GetBanks(c *gin.Context) {
	cards, err := h.Recommendations.ListActiveCards(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cards"})
		return
	}

	seen := make(map[string]bool)
	banks := []string{}
	for _, card := range cards {
		if !seen[card.Bank] {
			seen[card.Bank] = true
			banks = append(banks, card.Bank)
		}
	}

	c.JSON(http.StatusOK, gin.H{"banks": banks})
}
