package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerEntry records a single debit taken from a funding account. The entry
// id doubles as the debit reference handed back to the payment coordinator.
type LedgerEntry struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BankAccountID uuid.UUID       `gorm:"type:uuid;not null;index" json:"bank_account_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Memo          string          `gorm:"type:varchar(255)" json:"memo"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
}
