package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/payflow/internal/services"
)

type merchantRef struct {
	MerchantID string `json:"merchant_id"`
}

// APIKeyAuth validates the Authorization header on transaction creation
// against the target merchant's API key. When required is false a missing
// header is allowed (the dashboard posts unauthenticated), but a header that
// is present must still match.
func APIKeyAuth(merchants *services.MerchantService, required bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			if required {
				return fiber.NewError(fiber.StatusUnauthorized, "missing API key")
			}
			return c.Next()
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}
		key := parts[1]

		var ref merchantRef
		_ = json.Unmarshal(c.Body(), &ref)
		if ref.MerchantID == "" {
			// Let the handler report the malformed body.
			return c.Next()
		}

		merchant, err := merchants.Get(ref.MerchantID)
		if err != nil {
			// Unknown merchant is the handler's 404 to report.
			return c.Next()
		}

		if subtle.ConstantTimeCompare([]byte(key), []byte(merchant.APIKey)) != 1 {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid API key")
		}
		return c.Next()
	}
}
