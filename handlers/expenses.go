package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/cc1101027/credit-card/middleware"
	"github.com/cc1101027/credit-card/models"

	"github.com/gin-gonic/gin"
)

type ExpenseHandler struct {
	DB *sql.DB
}

// ============================================================================
// EXPENSES CRUD
// ============================================================================

func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var merchantExists bool
	err := h.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM merchants WHERE id = $1)", req.MerchantID).Scan(&merchantExists)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !merchantExists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Merchant not found"})
		return
	}

	var expenseID string
	err = h.DB.QueryRow(`
		INSERT INTO expenses (user_id, merchant_id, amount, description, expense_date, credit_card_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, userID, req.MerchantID, req.Amount, req.Description, req.ExpenseDate, req.CreditCardID).Scan(&expenseID)
	if err != nil {
		log.Printf("Error creating expense: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create expense"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Expense recorded",
		"id":      expenseID,
	})
}

// GetExpenses lists the user's expenses, newest first. Supports ?category=,
// ?start_date=, ?end_date= (RFC 3339 date) and ?limit= query filters.
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	query := `
		SELECT e.id, e.user_id, e.merchant_id, m.name, cat.name,
		       e.amount, COALESCE(e.description, ''), e.expense_date, e.credit_card_id, e.created_at
		FROM expenses e
		JOIN merchants m ON e.merchant_id = m.id
		JOIN categories cat ON m.category_id = cat.id
		WHERE e.user_id = $1
	`
	args := []any{userID}

	if category := c.Query("category"); category != "" {
		args = append(args, category)
		query += " AND cat.name = $" + strconv.Itoa(len(args))
	}
	if startDate := c.Query("start_date"); startDate != "" {
		if t, err := time.Parse("2006-01-02", startDate); err == nil {
			args = append(args, t)
			query += " AND e.expense_date >= $" + strconv.Itoa(len(args))
		}
	}
	if endDate := c.Query("end_date"); endDate != "" {
		if t, err := time.Parse("2006-01-02", endDate); err == nil {
			args = append(args, t)
			query += " AND e.expense_date <= $" + strconv.Itoa(len(args))
		}
	}

	query += " ORDER BY e.expense_date DESC"

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	args = append(args, limit)
	query += " LIMIT $" + strconv.Itoa(len(args))

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		log.Printf("Error fetching expenses: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expenses"})
		return
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		var cardID sql.NullString
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.MerchantID, &e.MerchantName, &e.CategoryName,
			&e.Amount, &e.Description, &e.ExpenseDate, &cardID, &e.CreatedAt,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read expenses"})
			return
		}
		if cardID.Valid {
			e.CreditCardID = &cardID.String
		}
		expenses = append(expenses, e)
	}

	c.JSON(http.StatusOK, gin.H{"expenses": expenses, "count": len(expenses)})
}

func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var e models.Expense
	var cardID sql.NullString
	err := h.DB.QueryRow(`
		SELECT e.id, e.user_id, e.merchant_id, m.name, cat.name,
		       e.amount, COALESCE(e.description, ''), e.expense_date, e.credit_card_id, e.created_at
		FROM expenses e
		JOIN merchants m ON e.merchant_id = m.id
		JOIN categories cat ON m.category_id = cat.id
		WHERE e.id = $1 AND e.user_id = $2
	`, c.Param("id"), userID).Scan(
		&e.ID, &e.UserID, &e.MerchantID, &e.MerchantName, &e.CategoryName,
		&e.Amount, &e.Description, &e.ExpenseDate, &cardID, &e.CreatedAt,
	)

	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expense"})
		return
	}
	if cardID.Valid {
		e.CreditCardID = &cardID.String
	}

	c.JSON(http.StatusOK, e)
}

func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.MerchantID != nil {
		var merchantExists bool
		err := h.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM merchants WHERE id = $1)", *req.MerchantID).Scan(&merchantExists)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if !merchantExists {
			c.JSON(http.StatusNotFound, gin.H{"error": "Merchant not found"})
			return
		}
	}

	result, err := h.DB.Exec(`
		UPDATE expenses
		SET merchant_id = COALESCE($1, merchant_id),
		    amount = COALESCE($2, amount),
		    description = COALESCE($3, description),
		    expense_date = COALESCE($4, expense_date),
		    credit_card_id = COALESCE($5, credit_card_id)
		WHERE id = $6 AND user_id = $7
	`, req.MerchantID, req.Amount, req.Description, req.ExpenseDate, req.CreditCardID, c.Param("id"), userID)
	if err != nil {
		log.Printf("Error updating expense: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update expense"})
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense updated"})
}

func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.DB.Exec(`
		DELETE FROM expenses WHERE id = $1 AND user_id = $2
	`, c.Param("id"), userID)
	if err != nil {
		log.Printf("Error deleting expense: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense"})
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
}

// ============================================================================
// REFERENCE DATA (merchants & categories)
// ============================================================================

// GetMerchants lists merchants, optionally filtered by ?category= name.
func (h *ExpenseHandler) GetMerchants(c *gin.Context) {
	query := `
		SELECT m.id, m.name, m.category_id, cat.name, COALESCE(m.mcc_code, ''), COALESCE(m.logo_url, '')
		FROM merchants m
		JOIN categories cat ON m.category_id = cat.id
	`
	args := []any{}

	if category := c.Query("category"); category != "" {
		query += " WHERE cat.name = $1"
		args = append(args, category)
	}
	query += " ORDER BY cat.name, m.name"

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		log.Printf("Error fetching merchants: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch merchants"})
		return
	}
	defer rows.Close()

	merchants := []models.Merchant{}
	for rows.Next() {
		var m models.Merchant
		if err := rows.Scan(&m.ID, &m.Name, &m.CategoryID, &m.CategoryName, &m.MCCCode, &m.LogoURL); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read merchants"})
			return
		}
		merchants = append(merchants, m)
	}

	c.JSON(http.StatusOK, gin.H{"merchants": merchants, "count": len(merchants)})
}

func (h *ExpenseHandler) GetCategories(c *gin.Context) {
	rows, err := h.DB.Query(`
		SELECT id, name, COALESCE(description, ''), COALESCE(icon, '')
		FROM categories
		ORDER BY name
	`)
	if err != nil {
		log.Printf("Error fetching categories: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Description, &cat.Icon); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read categories"})
			return
		}
		categories = append(categories, cat)
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
