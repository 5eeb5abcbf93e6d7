package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/example/payflow/internal/apperr"
	"github.com/example/payflow/internal/gateway"
	"github.com/example/payflow/internal/identifier"
	"github.com/example/payflow/internal/metrics"
	"github.com/example/payflow/internal/models"
	"github.com/example/payflow/internal/store"
)

// TransactionService orchestrates a payment attempt end to end: validate,
// resolve the gateway, persist a pending record, charge, finalize exactly
// once and notify analytics.
type TransactionService struct {
	merchants     *MerchantService
	store         *store.TransactionStore
	gateways      *gateway.Registry
	analytics     *AnalyticsService
	chargeTimeout time.Duration
	log           *zap.Logger
}

// NewTransactionService constructs a TransactionService.
func NewTransactionService(
	merchants *MerchantService,
	st *store.TransactionStore,
	gateways *gateway.Registry,
	analytics *AnalyticsService,
	chargeTimeout time.Duration,
	log *zap.Logger,
) *TransactionService {
	if chargeTimeout <= 0 {
		chargeTimeout = 10 * time.Second
	}
	return &TransactionService{
		merchants:     merchants,
		store:         st,
		gateways:      gateways,
		analytics:     analytics,
		chargeTimeout: chargeTimeout,
		log:           log,
	}
}

// CreateTransactionInput carries the caller-supplied transaction fields.
type CreateTransactionInput struct {
	MerchantID    string
	Amount        decimal.Decimal
	Currency      string
	Gateway       string
	CustomerEmail string
	CustomerPhone string
}

type gatewayEcho struct {
	GatewayID string `json:"gateway_id"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

// Create processes one payment attempt. Declines and gateway timeouts are
// not errors: the caller always receives a finalized transaction whose
// status field carries the outcome. Errors are reserved for malformed input
// and missing or inactive merchants, none of which persist anything.
func (s *TransactionService) Create(ctx context.Context, in CreateTransactionInput) (*models.Transaction, error) {
	if !in.Amount.IsPositive() {
		return nil, apperr.Validation("amount", "must be greater than zero")
	}
	currency := strings.TrimSpace(in.Currency)
	if currency == "" {
		currency = models.DefaultCurrency
	}
	if !models.IsKnownCurrency(currency) {
		return nil, apperr.Validation("currency", "unknown currency "+currency)
	}
	if !emailPattern.MatchString(strings.TrimSpace(in.CustomerEmail)) {
		return nil, apperr.Validation("customer_email", "must be a valid email address")
	}

	merchant, err := s.merchants.Get(in.MerchantID)
	if err != nil {
		return nil, err
	}
	if !merchant.IsActive {
		return nil, apperr.ErrMerchantInactive
	}

	gatewayName := strings.TrimSpace(in.Gateway)
	if gatewayName == "" {
		gatewayName = merchant.PreferredGateway
	}
	adapter, ok := s.gateways.Resolve(gatewayName)
	if !ok {
		return nil, apperr.Validation("gateway", "unknown gateway "+gatewayName)
	}

	txn := &models.Transaction{
		TransactionID: identifier.NewTransactionID(),
		MerchantID:    merchant.MerchantID,
		Amount:        in.Amount,
		Currency:      currency,
		Gateway:       gatewayName,
		Status:        models.StatusPending,
		CustomerEmail: strings.TrimSpace(in.CustomerEmail),
		CustomerPhone: strings.TrimSpace(in.CustomerPhone),
	}
	if err := s.store.Append(txn); err != nil {
		return nil, err
	}
	s.analytics.Record("", models.StatusPending, txn.Amount)

	// The charge runs under its own deadline, detached from the request
	// context: a caller disconnect must not abort an in-flight charge, or
	// history could disagree with what happened at the gateway. No store or
	// registry lock is held across this call.
	chargeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.chargeTimeout)
	defer cancel()

	start := time.Now()
	result := adapter.Charge(chargeCtx, gateway.ChargeRequest{
		Amount:        txn.Amount,
		Currency:      txn.Currency,
		CustomerEmail: txn.CustomerEmail,
		CustomerPhone: txn.CustomerPhone,
	})
	metrics.ChargeDuration.WithLabelValues(gatewayName).Observe(time.Since(start).Seconds())

	next := models.StatusFailed
	if result.Approved {
		next = models.StatusSuccess
	}
	if result.Err != nil {
		s.log.Warn("gateway charge failed",
			zap.String("transaction_id", txn.TransactionID),
			zap.String("gateway", gatewayName),
			zap.Error(result.Err),
		)
	}

	echo, _ := json.Marshal(gatewayEcho{
		GatewayID: result.Reference,
		Status:    string(next),
		Message:   result.Message,
	})

	finalized, err := s.store.UpdateStatus(txn.TransactionID, next, string(echo))
	if err != nil {
		// A failed transition here is a bug, not a business outcome; the
		// pending row is left untouched for reconciliation.
		s.log.Error("status transition failed",
			zap.String("transaction_id", txn.TransactionID),
			zap.Error(err),
		)
		return nil, err
	}
	s.analytics.Record(models.StatusPending, next, txn.Amount)
	metrics.TransactionsTotal.WithLabelValues(gatewayName, string(next)).Inc()

	s.log.Info("transaction finalized",
		zap.String("transaction_id", txn.TransactionID),
		zap.String("merchant_id", merchant.MerchantID),
		zap.String("gateway", gatewayName),
		zap.String("status", string(next)),
	)
	return finalized, nil
}

// Get returns the transaction with the given public ID.
func (s *TransactionService) Get(transactionID string) (*models.Transaction, error) {
	return s.store.Get(transactionID)
}

// List returns transactions newest first with optional filters.
func (s *TransactionService) List(f store.TransactionFilter, limit, offset int) ([]models.Transaction, error) {
	return s.store.ListRecent(f, limit, offset)
}
