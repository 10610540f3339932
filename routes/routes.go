package routes

import (
	"database/sql"

	"github.com/cc1101027/credit-card/handlers"
	"github.com/cc1101027/credit-card/services"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up public authentication routes.
func SetupAuthRoutes(rg *gin.RouterGroup, db *sql.DB) {
	authHandler := &handlers.AuthHandler{DB: db}

	rg.POST("/auth/signup", authHandler.Signup)
	rg.POST("/auth/login", authHandler.Login)
}

// SetupUserRoutes sets up protected user profile, 2FA and wallet routes.
func SetupUserRoutes(rg *gin.RouterGroup, db *sql.DB) {
	userHandler := &handlers.UserHandler{DB: db}

	rg.GET("/user/profile", userHandler.GetProfile)
	rg.PUT("/user/profile", userHandler.UpdateProfile)
	rg.POST("/user/password", userHandler.ChangePassword)
	rg.POST("/user/2fa/setup", userHandler.SetupTOTP)
	rg.POST("/user/2fa/verify", userHandler.VerifyTOTP)
	rg.POST("/user/2fa/disable", userHandler.DisableTOTP)

	rg.GET("/user/cards", userHandler.GetCards)
	rg.POST("/user/cards", userHandler.AddCard)
	rg.DELETE("/user/cards/:id", userHandler.RemoveCard)
}

// SetupCardRoutes sets up the public card catalog routes.
func SetupCardRoutes(rg *gin.RouterGroup, db *sql.DB) {
	cardHandler := &handlers.CardHandler{
		Recommendations: services.NewRecommendationService(db),
	}

	rg.GET("/cards", cardHandler.GetCards)
	rg.GET("/cards/banks", cardHandler.GetBanks)
	rg.GET("/cards/:id", cardHandler.GetCard)
	rg.GET("/cards/:id/rewards", cardHandler.GetCardRewards)
}

// SetupExpenseRoutes sets up protected expense tracking routes.
func SetupExpenseRoutes(rg *gin.RouterGroup, db *sql.DB) {
	expenseHandler := &handlers.ExpenseHandler{DB: db}

	rg.GET("/expenses", expenseHandler.GetExpenses)
	rg.POST("/expenses", expenseHandler.CreateExpense)
	rg.GET("/expenses/:id", expenseHandler.GetExpense)
	rg.PUT("/expenses/:id", expenseHandler.UpdateExpense)
	rg.DELETE("/expenses/:id", expenseHandler.DeleteExpense)

	rg.GET("/merchants", expenseHandler.GetMerchants)
	rg.GET("/categories", expenseHandler.GetCategories)
}

// SetupRecommendationRoutes sets up the protected recommendation engine routes.
func SetupRecommendationRoutes(rg *gin.RouterGroup, db *sql.DB) {
	recHandler := &handlers.RecommendationHandler{
		Recommendations: services.NewRecommendationService(db),
	}

	rg.POST("/recommendations/optimize", recHandler.Optimize)
	rg.POST("/recommendations/purchase-advice", recHandler.PurchaseAdvice)
	rg.GET("/recommendations/spending-analysis", recHandler.SpendingAnalysis)
	rg.POST("/recommendations/simulate-card", recHandler.SimulateCard)
	rg.POST("/recommendations/compare-cards", recHandler.CompareCards)
}

// SetupAnalyticsRoutes sets up protected analytics routes.
func SetupAnalyticsRoutes(rg *gin.RouterGroup, db *sql.DB) {
	analyticsHandler := &handlers.AnalyticsHandler{
		DB:              db,
		Recommendations: services.NewRecommendationService(db),
	}

	rg.GET("/analytics/spending-trends", analyticsHandler.SpendingTrends)
	rg.GET("/analytics/category-breakdown", analyticsHandler.CategoryBreakdown)
	rg.GET("/analytics/merchant-analysis", analyticsHandler.MerchantAnalysis)
	rg.GET("/analytics/savings-potential", analyticsHandler.SavingsPotential)
	rg.GET("/analytics/dashboard-summary", analyticsHandler.DashboardSummary)
}
