package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/payflow/internal/config"
	"github.com/example/payflow/internal/gateway"
	"github.com/example/payflow/internal/handlers"
	"github.com/example/payflow/internal/metrics"
	"github.com/example/payflow/internal/middleware"
	"github.com/example/payflow/internal/services"
	"github.com/example/payflow/internal/store"
)

// Register wires up stores, services and HTTP routes, and seeds the
// analytics aggregator from the transaction store.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	merchantStore := store.NewMerchantStore(db)
	transactionStore := store.NewTransactionStore(db)

	gateways := gateway.NewRegistry(gateway.DefaultSet(gateway.Options{
		LatencyScale: cfg.LatencyScale,
		DeclineRate:  cfg.DeclineRate,
	})...)

	merchantService := services.NewMerchantService(merchantStore, log)
	analyticsService := services.NewAnalyticsService(transactionStore, services.VolumeScope(cfg.VolumeScope), log)
	transactionService := services.NewTransactionService(
		merchantService, transactionStore, gateways, analyticsService, cfg.ChargeTimeout, log,
	)

	if err := analyticsService.Seed(); err != nil {
		return err
	}

	merchantHandler := handlers.NewMerchantHandler(merchantService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	app.Get("/", handlers.Health)
	app.Get("/metrics", metrics.Handler())

	app.Get("/merchants", merchantHandler.ListMerchants)
	app.Post("/merchants", merchantHandler.CreateMerchant)
	app.Get("/merchants/:id", merchantHandler.GetMerchant)
	app.Delete("/merchants/:id", merchantHandler.DeactivateMerchant)

	app.Get("/transactions", transactionHandler.ListTransactions)
	app.Post("/transactions",
		middleware.APIKeyAuth(merchantService, cfg.RequireAPIKey),
		transactionHandler.CreateTransaction,
	)
	app.Get("/transactions/:id", transactionHandler.GetTransaction)

	app.Get("/analytics/stats", analyticsHandler.GetStats)
	app.Get("/analytics/gateway-performance", analyticsHandler.GetGatewayPerformance)

	return nil
}
