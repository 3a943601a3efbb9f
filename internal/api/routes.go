package api

import (
	"github.com/gin-gonic/gin"
	"github.com/credipyme/risk-api/internal/auth"
	"github.com/credipyme/risk-api/internal/database"
	"github.com/credipyme/risk-api/internal/logger"
	"github.com/credipyme/risk-api/internal/services"
	"github.com/credipyme/risk-api/internal/social"
	"github.com/credipyme/risk-api/pkg/config"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, db *database.DB, cfg *config.Config, log logger.Logger) error {
	var fetcher social.Fetcher
	if cfg.SocialFetchEnabled {
		fetcher = social.NewWebFetcher(cfg.SocialFetchRPS)
	} else {
		fetcher = &social.StaticFetcher{}
	}

	svcs := services.NewServices(db.DB, cfg, log, fetcher)

	authHandler := NewAuthHandler(svcs.Auth)
	companyHandler := NewCompanyHandler(svcs.Company)
	assessmentHandler := NewAssessmentHandler(svcs.Assessment)
	scenarioHandler := NewScenarioHandler(svcs.Scenario)
	applicationHandler := NewApplicationHandler(svcs.Application)
	healthHandler := NewHealthHandler(db)

	// Public routes
	public := r.Group("/api/v1")
	{
		public.POST("/auth/login", authHandler.Login)
		public.POST("/auth/register", authHandler.Register)
		public.POST("/auth/refresh", authHandler.RefreshToken)
		public.POST("/auth/logout", authHandler.Logout)

		public.GET("/health", healthHandler.GetHealth)
	}

	// Protected routes
	protected := r.Group("/api/v1")
	protected.Use(auth.JWTMiddleware(cfg.JWTSecret))
	protected.Use(auth.CSRFMiddleware())
	{
		// Company registry
		protected.GET("/companies", companyHandler.ListCompanies)
		protected.POST("/companies", companyHandler.CreateCompany)
		protected.GET("/companies/:id", companyHandler.GetCompany)
		protected.PUT("/companies/:id", companyHandler.UpdateCompany)
		protected.DELETE("/companies/:id", companyHandler.DeleteCompany)
		protected.GET("/companies/ruc/:ruc", companyHandler.GetCompanyByRUC)

		// Financial statements and social snapshots
		protected.POST("/companies/:id/statements", companyHandler.SubmitStatement)
		protected.POST("/companies/:id/social/refresh", companyHandler.RefreshSocial)

		// Risk assessments
		protected.POST("/companies/:id/assess", assessmentHandler.AssessCompany)
		protected.GET("/companies/:id/assessment", assessmentHandler.GetLatestAssessment)
		protected.GET("/companies/:id/assessments", assessmentHandler.GetAssessmentHistory)
		protected.GET("/companies/:id/assessment/integrated", assessmentHandler.GetIntegratedAssessment)

		// What-if simulations
		protected.GET("/scenarios/families", scenarioHandler.ListFamilies)
		protected.POST("/companies/:id/simulate", scenarioHandler.SimulateChanges)
		protected.POST("/companies/:id/simulate/all", scenarioHandler.SimulateAll)
		protected.POST("/companies/:id/simulate/:family", scenarioHandler.SimulateFamily)
		protected.GET("/companies/:id/simulations", scenarioHandler.ListSimulations)

		// Credit applications
		protected.POST("/companies/:id/applications", applicationHandler.SubmitApplication)
		protected.GET("/companies/:id/applications", applicationHandler.ListCompanyApplications)
		protected.GET("/applications/pending", applicationHandler.ListPendingApplications)
		protected.GET("/applications/:id", applicationHandler.GetApplication)
		protected.POST("/applications/:id/decide", applicationHandler.DecideApplication)
	}

	return nil
}
