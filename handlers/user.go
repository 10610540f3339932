package handlers

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/cc1101027/credit-card/middleware"
	"github.com/cc1101027/credit-card/models"
	"github.com/cc1101027/credit-card/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	DB *sql.DB
}

// ============================================================================
// PROFILE MANAGEMENT
// ============================================================================

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user models.User
	err := h.DB.QueryRow(`
		SELECT id, email, name, totp_enabled, is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`, userID).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.TOTPEnabled,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		log.Printf("Error fetching profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" && req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if req.Email != "" {
		var taken bool
		err := h.DB.QueryRow(
			"SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id != $2)",
			req.Email, userID,
		).Scan(&taken)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if taken {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
	}

	_, err := h.DB.Exec(`
		UPDATE users
		SET name = COALESCE(NULLIF($1, ''), name),
		    email = COALESCE(NULLIF($2, ''), email),
		    updated_at = NOW()
		WHERE id = $3
	`, req.Name, req.Email, userID)

	if err != nil {
		log.Printf("Error updating profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var currentHash string
	err := h.DB.QueryRow("SELECT password_hash FROM users WHERE id = $1", userID).Scan(&currentHash)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if !utils.CheckPassword(req.CurrentPassword, currentHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		return
	}

	newHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	_, err = h.DB.Exec(`
		UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2
	`, newHash, userID)
	if err != nil {
		log.Printf("Error changing password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// ============================================================================
// TWO-FACTOR AUTHENTICATION
// ============================================================================

func (h *UserHandler) SetupTOTP(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var email string
	var enabled bool
	err := h.DB.QueryRow("SELECT email, totp_enabled FROM users WHERE id = $1", userID).Scan(&email, &enabled)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if enabled {
		c.JSON(http.StatusConflict, gin.H{"error": "2FA is already enabled"})
		return
	}

	secret, url, err := utils.GenerateTOTPSecret(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate 2FA secret"})
		return
	}

	// Secret is stored now but 2FA only activates after a verified code
	_, err = h.DB.Exec(`
		UPDATE users SET totp_secret = $1, updated_at = NOW() WHERE id = $2
	`, secret, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store 2FA secret"})
		return
	}

	c.JSON(http.StatusOK, models.TOTPSetupResponse{
		Secret: secret,
		QRCode: url,
	})
}

func (h *UserHandler) VerifyTOTP(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.VerifyTOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var secret sql.NullString
	err := h.DB.QueryRow("SELECT totp_secret FROM users WHERE id = $1", userID).Scan(&secret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !secret.Valid || secret.String == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "2FA setup has not been started"})
		return
	}

	valid, err := utils.VerifyTOTP(secret.String, req.Code)
	if err != nil || !valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid 2FA code"})
		return
	}

	_, err = h.DB.Exec(`
		UPDATE users SET totp_enabled = TRUE, updated_at = NOW() WHERE id = $1
	`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enable 2FA"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "2FA enabled successfully"})
}

func (h *UserHandler) DisableTOTP(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.VerifyTOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var secret sql.NullString
	var enabled bool
	err := h.DB.QueryRow("SELECT totp_secret, totp_enabled FROM users WHERE id = $1", userID).Scan(&secret, &enabled)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !enabled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "2FA is not enabled"})
		return
	}

	valid, err := utils.VerifyTOTP(secret.String, req.Code)
	if err != nil || !valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid 2FA code"})
		return
	}

	_, err = h.DB.Exec(`
		UPDATE users SET totp_enabled = FALSE, totp_secret = NULL, updated_at = NOW() WHERE id = $1
	`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to disable 2FA"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "2FA disabled successfully"})
}

// ============================================================================
// WALLET (user's cards)
// ============================================================================

func (h *UserHandler) GetCards(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rows, err := h.DB.Query(`
		SELECT uc.id, uc.user_id, uc.credit_card_id, uc.added_at, uc.is_active,
		       cc.id, cc.name, cc.bank, cc.card_type, cc.annual_fee,
		       COALESCE(cc.description, ''), COALESCE(cc.image_url, ''), cc.is_active, cc.created_at
		FROM user_cards uc
		JOIN credit_cards cc ON uc.credit_card_id = cc.id
		WHERE uc.user_id = $1 AND uc.is_active = TRUE
		ORDER BY uc.added_at DESC
	`, userID)
	if err != nil {
		log.Printf("Error fetching wallet: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cards"})
		return
	}
	defer rows.Close()

	userCards := []models.UserCard{}
	for rows.Next() {
		var uc models.UserCard
		var card models.CreditCard
		if err := rows.Scan(
			&uc.ID, &uc.UserID, &uc.CreditCardID, &uc.AddedAt, &uc.IsActive,
			&card.ID, &card.Name, &card.Bank, &card.CardType, &card.AnnualFee,
			&card.Description, &card.ImageURL, &card.IsActive, &card.CreatedAt,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read cards"})
			return
		}
		uc.Card = &card
		userCards = append(userCards, uc)
	}

	c.JSON(http.StatusOK, gin.H{"cards": userCards})
}

func (h *UserHandler) AddCard(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.AddUserCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var cardExists bool
	err := h.DB.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM credit_cards WHERE id = $1 AND is_active = TRUE)",
		req.CreditCardID,
	).Scan(&cardExists)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !cardExists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Credit card not found"})
		return
	}

	var alreadyOwned bool
	err = h.DB.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM user_cards WHERE user_id = $1 AND credit_card_id = $2 AND is_active = TRUE)
	`, userID, req.CreditCardID).Scan(&alreadyOwned)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if alreadyOwned {
		c.JSON(http.StatusConflict, gin.H{"error": "Card is already in your wallet"})
		return
	}

	var userCardID string
	err = h.DB.QueryRow(`
		INSERT INTO user_cards (user_id, credit_card_id)
		VALUES ($1, $2)
		RETURNING id
	`, userID, req.CreditCardID).Scan(&userCardID)
	if err != nil {
		log.Printf("Error adding card to wallet: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add card"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Card added to wallet",
		"id":      userCardID,
	})
}

func (h *UserHandler) RemoveCard(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cardID := c.Param("id")

	result, err := h.DB.Exec(`
		UPDATE user_cards SET is_active = FALSE
		WHERE user_id = $1 AND credit_card_id = $2 AND is_active = TRUE
	`, userID, cardID)
	if err != nil {
		log.Printf("Error removing card from wallet: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove card"})
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found in your wallet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Card removed from wallet"})
}
