package models

import "github.com/shopspring/decimal"

// Status is the lifecycle state of a transaction. A transaction transitions
// exactly once from pending to a terminal status and is read-only afterwards.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Terminal reports whether the status will never change again.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// IsKnownStatus reports whether s is a valid transaction status.
func IsKnownStatus(s Status) bool {
	return s == StatusPending || s == StatusSuccess || s == StatusFailed
}

// Supported currency codes.
const (
	CurrencyINR = "INR"
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyGBP = "GBP"
)

// DefaultCurrency is applied when a transaction request omits the currency.
const DefaultCurrency = CurrencyINR

// IsKnownCurrency reports whether code is a supported currency.
func IsKnownCurrency(code string) bool {
	switch code {
	case CurrencyINR, CurrencyUSD, CurrencyEUR, CurrencyGBP:
		return true
	}
	return false
}

// Transaction is the authoritative record of a single payment attempt.
// Amount is stored as a decimal so monetary sums never drift.
type Transaction struct {
	BaseModel
	TransactionID   string          `gorm:"column:transaction_id;uniqueIndex" json:"transaction_id"`
	MerchantID      string          `gorm:"column:merchant_id;index" json:"merchant_id"`
	Amount          decimal.Decimal `gorm:"type:numeric(19,4)" json:"amount"`
	Currency        string          `json:"currency"`
	Gateway         string          `json:"gateway"`
	Status          Status          `gorm:"index" json:"status"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerPhone   string          `json:"customer_phone,omitempty"`
	GatewayResponse string          `json:"gateway_response,omitempty"`
}
