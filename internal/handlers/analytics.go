package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/payflow/internal/services"
	"github.com/example/payflow/internal/store"
)

// AnalyticsHandler serves aggregate statistics.
type AnalyticsHandler struct {
	analytics *services.AnalyticsService
}

// NewAnalyticsHandler constructs AnalyticsHandler.
func NewAnalyticsHandler(analytics *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// GetStats returns the live snapshot, or a replay-computed one when a
// merchant_id filter is given.
func (h *AnalyticsHandler) GetStats(c *fiber.Ctx) error {
	if merchantID := c.Query("merchant_id"); merchantID != "" {
		snap, err := h.analytics.Recompute(store.TransactionFilter{MerchantID: merchantID})
		if err != nil {
			return err
		}
		return c.JSON(snap)
	}
	return c.JSON(h.analytics.Stats())
}

// GetGatewayPerformance returns per-gateway totals and success rates.
func (h *AnalyticsHandler) GetGatewayPerformance(c *fiber.Ctx) error {
	stats, err := h.analytics.GatewayPerformance()
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
