package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxConfig holds the recurring obligation parameters for a business account.
// Guides cannot be materialized for an account until this record exists.
type TaxConfig struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AccountID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"account_id"`
	BaseValue decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"base_value"` // monthly obligation, > 0
	DueDay    int             `gorm:"not null" json:"due_day"`                       // 1..31, clamped to month length
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
