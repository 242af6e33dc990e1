package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionSetTaxConfig  = "SET_TAX_CONFIG"
	ActionPayGuide      = "PAY_GUIDE"
	ActionPayGuideBatch = "PAY_GUIDE_BATCH"
	ActionCreateAccount = "CREATE_BANK_ACCOUNT"
)

// AuditLog tracks Who, What, and When for money-moving and config changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable gracefully if automated caller
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // Reference string (uuid/code)
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable label
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
