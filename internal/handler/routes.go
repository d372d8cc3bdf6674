package handler

import (
	"github.com/dafibh/condo/condo-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// Handlers groups every API handler registered under /api/v1
type Handlers struct {
	Auth       *AuthHandler
	Profile    *ProfileHandler
	Unit       *UnitHandler
	Reading    *ReadingHandler
	Tariff     *TariffHandler
	Registry   *RegistryHandler
	Fee        *FeeHandler
	Ledger     *LedgerHandler
	Settlement *SettlementHandler
	Report     *ReportHandler
	Import     *ImportHandler
	Article    *ArticleHandler
}

// RegisterRoutes sets up all API routes. Heavy endpoints (reports, imports,
// settlement runs) draw on one per-caller rate limit, weighted by cost.
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter *middleware.RateLimiter, h Handlers) {
	// API version 1
	api := e.Group("/api/v1")

	// Auth routes work before the user is registered or activated
	auth := api.Group("/auth")
	auth.Use(authMiddleware.Authenticate())
	auth.POST("/callback", h.Auth.Callback)
	auth.GET("/me", h.Auth.Me)
	auth.POST("/logout", h.Auth.Logout)

	// The notice board is readable without signing in
	api.GET("/articles", h.Article.List)
	api.GET("/articles/:id", h.Article.Get)

	// Everything else needs an active principal
	protected := api.Group("", authMiddleware.Authenticate(), authMiddleware.LoadPrincipal())
	admin := middleware.RequireAdmin()

	profile := protected.Group("/profile")
	profile.GET("", h.Profile.GetProfile)
	profile.PUT("", h.Profile.UpdateProfile)

	users := protected.Group("/users", admin)
	users.GET("", h.Profile.ListUsers)
	users.PATCH("/:id", h.Profile.UpdateAccess)

	units := protected.Group("/units", admin)
	units.POST("", h.Unit.Create)
	units.GET("", h.Unit.List)
	units.GET("/:number", h.Unit.Get)
	units.PUT("/:number", h.Unit.Update)
	units.DELETE("/:number", h.Unit.Delete)

	readings := protected.Group("/readings")
	readings.POST("", h.Reading.Create)
	readings.GET("", h.Reading.List)
	readings.GET("/latest", h.Reading.Latest, admin)
	readings.GET("/years", h.Reading.Years)
	readings.GET("/:id", h.Reading.Get)
	readings.PUT("/:id", h.Reading.Update, admin)

	tariffs := protected.Group("/tariffs")
	tariffs.GET("/latest", h.Tariff.Latest)
	tariffs.GET("/defaults", h.Tariff.Defaults, admin)
	tariffs.GET("", h.Tariff.History, admin)
	tariffs.POST("", h.Tariff.Create, admin)
	tariffs.GET("/:id", h.Tariff.Get, admin)
	tariffs.DELETE("/:id", h.Tariff.Delete, admin)

	occupancies := protected.Group("/occupancies", admin)
	occupancies.POST("", h.Registry.CreateOccupancy)
	occupancies.GET("", h.Registry.ListOccupancies)
	occupancies.GET("/current", h.Registry.CurrentOccupancies)
	occupancies.PUT("/:id", h.Registry.UpdateOccupancy)

	surcharges := protected.Group("/surcharges", admin)

	heating := surcharges.Group("/heating")
	heating.POST("", h.Registry.CreateHeating)
	heating.GET("", h.Registry.ListHeating)
	heating.GET("/:id", h.Registry.GetHeating)
	heating.PUT("/:id", h.Registry.UpdateHeating)

	parking := surcharges.Group("/parking")
	parking.POST("", h.Registry.CreateParkingCard)
	parking.GET("", h.Registry.ListParkingCards)
	parking.PUT("/:id", h.Registry.UpdateParkingCard)

	discounts := surcharges.Group("/family")
	discounts.POST("", h.Registry.CreateFamilyDiscount)
	discounts.GET("", h.Registry.ListFamilyDiscounts)
	discounts.PUT("/:id", h.Registry.UpdateFamilyDiscount)

	protected.GET("/fees", h.Fee.Calculate)

	ledger := protected.Group("/ledger")
	ledger.GET("/entries", h.Ledger.List)
	ledger.GET("/entries/:id", h.Ledger.Get)
	ledger.GET("/balance", h.Ledger.Balance)
	ledger.POST("/entries", h.Ledger.Append, admin)
	ledger.POST("/entries/batch", h.Ledger.AppendBatch, admin)
	ledger.POST("/entries/:id/mirror", h.Ledger.Mirror, admin)
	ledger.GET("/balances", h.Ledger.Balances, admin)
	ledger.GET("/verify", h.Ledger.Verify, admin)

	settlements := protected.Group("/settlements", admin)
	settlements.GET("/preview/:unit", h.Fee.Preview)
	settlements.POST("", h.Settlement.Create, limiter.Limit(middleware.CostSettlement))

	reports := protected.Group("/reports")
	reports.GET("/summary", h.Report.Summary, limiter.Limit(middleware.CostReport))
	reports.POST("/summary/archive", h.Report.Archive, admin, limiter.Limit(middleware.CostArchive))
	reports.GET("/ledger", h.Report.LedgerExport, admin, limiter.Limit(middleware.CostReport))

	articles := protected.Group("/articles", admin)
	articles.POST("", h.Article.Create)
	articles.PUT("/:id", h.Article.Update)
	articles.DELETE("/:id", h.Article.Delete)

	protected.POST("/import/readings", h.Import.ImportReadings, admin, limiter.Limit(middleware.CostImport))
}
