package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/example/payflow/internal/apperr"
	"github.com/example/payflow/internal/models"
)

// TransactionFilter narrows list and replay queries. Zero values mean no
// filtering on that field.
type TransactionFilter struct {
	MerchantID string
	Status     models.Status
}

// TransactionStore owns the transactions table. Appends are committed
// individually so a pending row is visible to concurrent readers the instant
// it exists.
type TransactionStore struct {
	db *gorm.DB
}

// NewTransactionStore constructs a TransactionStore.
func NewTransactionStore(db *gorm.DB) *TransactionStore {
	return &TransactionStore{db: db}
}

// Append persists a new transaction record.
func (s *TransactionStore) Append(t *models.Transaction) error {
	return s.db.Create(t).Error
}

// Get looks a transaction up by its public transaction_id.
func (s *TransactionStore) Get(transactionID string) (*models.Transaction, error) {
	var t models.Transaction
	if err := s.db.First(&t, "transaction_id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrTransactionNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListRecent returns transactions newest first, ties broken by insertion
// order.
func (s *TransactionStore) ListRecent(f TransactionFilter, limit, offset int) ([]models.Transaction, error) {
	query := s.db.Model(&models.Transaction{})
	if f.MerchantID != "" {
		query = query.Where("merchant_id = ?", f.MerchantID)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}

	var transactions []models.Transaction
	if err := query.Order("created_at desc, id desc").
		Limit(limit).Offset(offset).
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// Count returns the number of stored transactions.
func (s *TransactionStore) Count() (int64, error) {
	var total int64
	err := s.db.Model(&models.Transaction{}).Count(&total).Error
	return total, err
}

// UpdateStatus performs the single pending-to-terminal transition for a
// transaction and returns the updated record. The guarded update makes two
// transitions for the same ID impossible to interleave: the second one
// matches zero rows and is reported as an invariant violation without
// touching the store.
func (s *TransactionStore) UpdateStatus(transactionID string, next models.Status, gatewayResponse string) (*models.Transaction, error) {
	if !next.Terminal() {
		return nil, apperr.ErrInvariantViolation
	}

	res := s.db.Model(&models.Transaction{}).
		Where("transaction_id = ? AND status = ?", transactionID, models.StatusPending).
		Updates(map[string]any{
			"status":           next,
			"gateway_response": gatewayResponse,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := s.Get(transactionID); err != nil {
			return nil, err
		}
		return nil, apperr.ErrInvariantViolation
	}
	return s.Get(transactionID)
}

// Replay streams every transaction oldest first. The analytics aggregator
// uses it to rebuild its snapshot from an empty state.
func (s *TransactionStore) Replay(f TransactionFilter, fn func(models.Transaction) error) error {
	query := s.db.Model(&models.Transaction{})
	if f.MerchantID != "" {
		query = query.Where("merchant_id = ?", f.MerchantID)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}

	var batch []models.Transaction
	result := query.Order("id asc").FindInBatches(&batch, 200, func(tx *gorm.DB, _ int) error {
		for _, t := range batch {
			if err := fn(t); err != nil {
				return err
			}
		}
		return nil
	})
	return result.Error
}
