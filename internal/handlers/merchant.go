package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/payflow/internal/models"
	"github.com/example/payflow/internal/services"
	"github.com/example/payflow/internal/utils"
)

// MerchantHandler manages merchant endpoints.
type MerchantHandler struct {
	merchants *services.MerchantService
}

// NewMerchantHandler constructs MerchantHandler.
func NewMerchantHandler(merchants *services.MerchantService) *MerchantHandler {
	return &MerchantHandler{merchants: merchants}
}

type createMerchantRequest struct {
	MerchantName     string `json:"merchant_name"`
	Email            string `json:"email"`
	PreferredGateway string `json:"preferred_gateway"`
}

// CreateMerchant registers a new merchant account.
func (h *MerchantHandler) CreateMerchant(c *fiber.Ctx) error {
	var req createMerchantRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	merchant, err := h.merchants.Create(services.CreateMerchantInput{
		Name:             req.MerchantName,
		Email:            req.Email,
		PreferredGateway: req.PreferredGateway,
	})
	if err != nil {
		return mapError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(merchant)
}

// ListMerchants returns merchants in insertion order, windowed by the
// skip/limit query params.
func (h *MerchantHandler) ListMerchants(c *fiber.Ctx) error {
	window := utils.ParseListWindow(c)
	merchants, err := h.merchants.List(window.Limit, window.Offset)
	if err != nil {
		return err
	}
	if merchants == nil {
		merchants = []models.Merchant{}
	}
	return c.JSON(merchants)
}

// GetMerchant returns a single merchant by its public ID.
func (h *MerchantHandler) GetMerchant(c *fiber.Ctx) error {
	merchant, err := h.merchants.Get(c.Params("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(merchant)
}

// DeactivateMerchant suspends a merchant. History is preserved; the account
// is never hard-deleted.
func (h *MerchantHandler) DeactivateMerchant(c *fiber.Ctx) error {
	merchant, err := h.merchants.Deactivate(c.Params("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(merchant)
}
