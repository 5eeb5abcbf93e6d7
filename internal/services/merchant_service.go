package services

import (
	"errors"
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/example/payflow/internal/apperr"
	"github.com/example/payflow/internal/identifier"
	"github.com/example/payflow/internal/metrics"
	"github.com/example/payflow/internal/models"
	"github.com/example/payflow/internal/store"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// MerchantService is the merchant registry. It owns merchant records,
// enforces email uniqueness and never hard-deletes, so transaction history
// keeps resolving to its merchant.
type MerchantService struct {
	store *store.MerchantStore
	log   *zap.Logger

	// mu serializes the uniqueness check and insert; two concurrent creates
	// for the same email can never both succeed.
	mu sync.Mutex
}

// NewMerchantService constructs a MerchantService.
func NewMerchantService(st *store.MerchantStore, log *zap.Logger) *MerchantService {
	return &MerchantService{store: st, log: log}
}

// CreateMerchantInput carries the caller-supplied merchant fields.
type CreateMerchantInput struct {
	Name             string
	Email            string
	PreferredGateway string
}

// Create validates the input, generates the merchant identity and inserts the
// record atomically with respect to concurrent creates.
func (s *MerchantService) Create(in CreateMerchantInput) (*models.Merchant, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	preferred := strings.TrimSpace(in.PreferredGateway)

	if name == "" {
		return nil, apperr.Validation("merchant_name", "must not be empty")
	}
	if !emailPattern.MatchString(email) {
		return nil, apperr.Validation("email", "must be a valid email address")
	}
	if preferred == "" {
		preferred = models.DefaultGateway
	}
	if !models.IsKnownGateway(preferred) {
		return nil, apperr.Validation("preferred_gateway", "unknown gateway "+preferred)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.GetByEmail(email); err == nil {
		return nil, apperr.ErrDuplicateEmail
	} else if !errors.Is(err, apperr.ErrMerchantNotFound) {
		return nil, err
	}

	m := &models.Merchant{
		MerchantID:       identifier.NewMerchantID(),
		MerchantName:     name,
		Email:            email,
		APIKey:           identifier.NewAPIKey(),
		PreferredGateway: preferred,
		IsActive:         true,
	}
	if err := s.store.Create(m); err != nil {
		return nil, err
	}

	metrics.MerchantsCreated.Inc()
	s.log.Info("merchant created",
		zap.String("merchant_id", m.MerchantID),
		zap.String("preferred_gateway", m.PreferredGateway),
	)
	return m, nil
}

// Get returns the merchant with the given public ID.
func (s *MerchantService) Get(merchantID string) (*models.Merchant, error) {
	return s.store.GetByID(merchantID)
}

// List returns a window of merchants in insertion order.
func (s *MerchantService) List(limit, offset int) ([]models.Merchant, error) {
	return s.store.List(limit, offset)
}

// Deactivate suspends a merchant without deleting it. Deactivating an
// already inactive merchant succeeds and keeps it inactive.
func (s *MerchantService) Deactivate(merchantID string) (*models.Merchant, error) {
	m, err := s.store.SetActive(merchantID, false)
	if err != nil {
		return nil, err
	}
	s.log.Info("merchant deactivated", zap.String("merchant_id", m.MerchantID))
	return m, nil
}
