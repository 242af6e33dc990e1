package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Persisted payment states
const (
	GuideStatusPending = "PENDING"
	GuideStatusPaid    = "PAID"
)

// Display statuses, derived per render and never persisted
const (
	DisplayPaid       = "PAID"
	DisplayPaidVisual = "PAID_VISUAL"
	DisplayOverdue    = "OVERDUE"
	DisplayPending    = "PENDING"
	DisplayUpcoming   = "UPCOMING"
)

// Guide is one month's statutory payment obligation for a business account.
// BaseValue is snapshotted from the account's tax config at creation time and
// never changes when the config does. The only mutation a guide ever sees is
// the one-way PENDING -> PAID transition.
type Guide struct {
	ID             uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AccountID      uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_guides_account_period,priority:1" json:"account_id"`
	Year           int                 `gorm:"not null;uniqueIndex:idx_guides_account_period,priority:2" json:"year"`
	Month          int                 `gorm:"not null;uniqueIndex:idx_guides_account_period,priority:3" json:"month"` // 1..12
	BaseValue      decimal.Decimal     `gorm:"type:decimal(18,2);not null" json:"base_value"`
	DueDate        time.Time           `gorm:"type:date;not null" json:"due_date"` // due_day-th of the month following (year, month)
	Status         string              `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	FinalPaidValue decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"final_paid_value"` // set on PAID; may differ from BaseValue
	PaidAt         *time.Time          `json:"paid_at"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}
