package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/example/payflow/internal/models"
	"github.com/example/payflow/internal/services"
	"github.com/example/payflow/internal/store"
	"github.com/example/payflow/internal/utils"
)

// TransactionHandler manages transaction endpoints.
type TransactionHandler struct {
	transactions *services.TransactionService
}

// NewTransactionHandler constructs TransactionHandler.
func NewTransactionHandler(transactions *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

type createTransactionRequest struct {
	MerchantID    string          `json:"merchant_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Gateway       string          `json:"gateway"`
	CustomerEmail string          `json:"customer_email"`
	CustomerPhone string          `json:"customer_phone"`
}

// CreateTransaction processes a payment attempt. The response status code
// signals request validity only; the transaction's status field carries the
// payment outcome.
func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	var req createTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	txn, err := h.transactions.Create(c.Context(), services.CreateTransactionInput{
		MerchantID:    req.MerchantID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Gateway:       req.Gateway,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		return mapError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(txn)
}

// ListTransactions returns transactions newest first, with optional
// merchant_id and status filters.
func (h *TransactionHandler) ListTransactions(c *fiber.Ctx) error {
	filter := store.TransactionFilter{
		MerchantID: c.Query("merchant_id"),
		Status:     models.Status(c.Query("status")),
	}
	if filter.Status != "" && !models.IsKnownStatus(filter.Status) {
		return fiber.NewError(fiber.StatusBadRequest, "unknown status "+string(filter.Status))
	}

	window := utils.ParseListWindow(c)
	transactions, err := h.transactions.List(filter, window.Limit, window.Offset)
	if err != nil {
		return err
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	return c.JSON(transactions)
}

// GetTransaction returns a single transaction by its public ID.
func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	txn, err := h.transactions.Get(c.Params("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(txn)
}
