package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The dashboard consumes amounts as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// BaseModel provides shared columns for all tables. The integer primary key
// doubles as insertion order, which list endpoints use as a tiebreaker.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
