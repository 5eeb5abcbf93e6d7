package models

// Known payment gateway variants. Adding a gateway means registering one more
// adapter in the gateway package; nothing here branches on the variant.
const (
	GatewayRazorpay = "razorpay"
	GatewayStripe   = "stripe"
	GatewayPaytm    = "paytm"
	GatewayPhonePe  = "phonepe"
)

// DefaultGateway is used when a merchant registers without a preference.
const DefaultGateway = GatewayRazorpay

// KnownGateways lists the supported variants in registration order.
var KnownGateways = []string{GatewayRazorpay, GatewayStripe, GatewayPaytm, GatewayPhonePe}

// IsKnownGateway reports whether name is one of the supported variants.
func IsKnownGateway(name string) bool {
	for _, g := range KnownGateways {
		if g == name {
			return true
		}
	}
	return false
}

// Merchant is a registered party on whose behalf transactions are processed.
// Merchants are never hard-deleted, only deactivated, so historical
// transactions always resolve to a merchant record.
type Merchant struct {
	BaseModel
	MerchantID       string `gorm:"column:merchant_id;uniqueIndex" json:"merchant_id"`
	MerchantName     string `gorm:"column:merchant_name" json:"merchant_name"`
	Email            string `gorm:"uniqueIndex" json:"email"`
	APIKey           string `gorm:"column:api_key;uniqueIndex" json:"api_key"`
	PreferredGateway string `gorm:"default:razorpay" json:"preferred_gateway"`
	IsActive         bool   `gorm:"default:true" json:"is_active"`
}
