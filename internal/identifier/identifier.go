// Package identifier produces the opaque IDs and secrets used as uniqueness
// and lookup keys across the system. Values are derived from UUIDv4, which
// reads from the OS entropy source and panics if it is unavailable; there is
// deliberately no low-entropy fallback.
package identifier

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

const (
	merchantPrefix    = "MERCH_"
	transactionPrefix = "TXN_"
	apiKeyPrefix      = "sk_live_"
)

// NewMerchantID returns a merchant identifier such as MERCH_3F90AC17D2.
func NewMerchantID() string {
	return merchantPrefix + strings.ToUpper(randomHex(10))
}

// NewTransactionID returns a transaction identifier such as TXN_9C2B51E07A443D18.
func NewTransactionID() string {
	return transactionPrefix + strings.ToUpper(randomHex(16))
}

// NewAPIKey returns a merchant API key such as sk_live_<32 hex chars>.
// Keys are generated once at merchant creation and never regenerated.
func NewAPIKey() string {
	return apiKeyPrefix + randomHex(32)
}

// NewGatewayReference returns the 12-hex-char suffix of a gateway-side
// reference, e.g. the trailing part of razorpay_a1b2c3d4e5f6.
func NewGatewayReference() string {
	return randomHex(12)
}

func randomHex(n int) string {
	id := uuid.New()
	return hex.EncodeToString(id[:])[:n]
}
