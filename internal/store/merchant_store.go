// Package store wraps the database behind the narrow contracts the services
// rely on. The database is the single source of truth; the analytics
// aggregator is only a cache reconciled against it by replay.
package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/example/payflow/internal/apperr"
	"github.com/example/payflow/internal/models"
)

// MerchantStore owns the merchants table.
type MerchantStore struct {
	db *gorm.DB
}

// NewMerchantStore constructs a MerchantStore.
func NewMerchantStore(db *gorm.DB) *MerchantStore {
	return &MerchantStore{db: db}
}

// Create inserts a new merchant. The unique index on email is the backstop
// behind the registry's check-and-insert lock; a violation maps to
// ErrDuplicateEmail either way.
func (s *MerchantStore) Create(m *models.Merchant) error {
	if err := s.db.Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return apperr.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// GetByID looks a merchant up by its public merchant_id.
func (s *MerchantStore) GetByID(merchantID string) (*models.Merchant, error) {
	var m models.Merchant
	if err := s.db.First(&m, "merchant_id = ?", merchantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrMerchantNotFound
		}
		return nil, err
	}
	return &m, nil
}

// GetByEmail looks a merchant up by email, active or not.
func (s *MerchantStore) GetByEmail(email string) (*models.Merchant, error) {
	var m models.Merchant
	if err := s.db.First(&m, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrMerchantNotFound
		}
		return nil, err
	}
	return &m, nil
}

// List returns a window of merchants in stable insertion order.
func (s *MerchantStore) List(limit, offset int) ([]models.Merchant, error) {
	var merchants []models.Merchant
	if err := s.db.Order("id asc").Limit(limit).Offset(offset).Find(&merchants).Error; err != nil {
		return nil, err
	}
	return merchants, nil
}

// SetActive flips the is_active flag and returns the updated record.
// Setting the same value twice is a no-op, which makes deactivation
// idempotent.
func (s *MerchantStore) SetActive(merchantID string, active bool) (*models.Merchant, error) {
	m, err := s.GetByID(merchantID)
	if err != nil {
		return nil, err
	}
	if m.IsActive == active {
		return m, nil
	}
	if err := s.db.Model(m).Update("is_active", active).Error; err != nil {
		return nil, err
	}
	m.IsActive = active
	return m, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	// postgres and sqlite spell the constraint error differently.
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
