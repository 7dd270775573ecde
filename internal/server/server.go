// Package server assembles the gin router and its dependencies.
package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/planpay/planpay-api/internal/cache"
	"github.com/planpay/planpay-api/internal/client/dynamic"
	"github.com/planpay/planpay-api/internal/config"
	"github.com/planpay/planpay-api/internal/funding"
	"github.com/planpay/planpay-api/internal/handlers"
	"github.com/planpay/planpay-api/internal/planner"
)

// Dependencies carries everything the router needs.
type Dependencies struct {
	Config  *config.Config
	Store   *cache.Store
	Parser  *planner.Parser
	Wallets dynamic.WalletProvisioner
	Funding *funding.Service
}

// NewRouter builds the gin engine with CORS, metrics and all API
// routes.
func NewRouter(deps Dependencies) *gin.Engine {
	if deps.Config.Stage == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(corsMiddleware())

	planHandler := handlers.NewPlanHandler(deps.Parser, deps.Wallets, deps.Store)
	fundingHandler := handlers.NewFundingHandler(deps.Funding, deps.Store)
	chainHandler := handlers.NewChainHandler()
	systemHandler := handlers.NewSystemHandler(deps.Config, deps.Store)

	router.GET("/health", systemHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		// Plans
		v1.POST("/plans/parse", planHandler.ParsePlan)
		v1.POST("/plans", planHandler.CreatePlan)
		v1.GET("/plans", planHandler.ListPlans)
		v1.GET("/plans/:plan_id", planHandler.GetPlan)
		v1.PATCH("/plans/:plan_id", planHandler.UpdatePlan)
		v1.DELETE("/plans/:plan_id", planHandler.DeletePlan)

		// KYC and customers
		v1.POST("/kyc", fundingHandler.StartKyc)
		v1.GET("/customers/:customer_id", fundingHandler.GetCustomer)
		v1.POST("/bank-accounts", fundingHandler.CreateBankAccount)

		// Funding flows
		v1.POST("/onramp", fundingHandler.StartOnramp)
		v1.POST("/onramp/complete", fundingHandler.CompleteOnramp)
		v1.POST("/offramp", fundingHandler.StartOfframp)
		v1.GET("/transactions/:transaction_id", fundingHandler.GetTransaction)

		// Chains
		v1.GET("/chains", chainHandler.ListSupportedChains)
		v1.POST("/chains/validate", chainHandler.ValidateChains)

		// Testing and debug
		v1.GET("/testing-config", systemHandler.GetTestingConfig)
		if deps.Config.IsTestingMode() {
			v1.POST("/debug/clear-cache", systemHandler.ClearCache)
		}
	}

	return router
}

func corsMiddleware() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Correlation-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	return cors.New(corsConfig)
}
