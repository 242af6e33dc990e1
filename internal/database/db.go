package database

import (
	"log"

	"dascentral/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM. TranslateError
// keeps duplicate-key inserts recognizable as gorm.ErrDuplicatedKey, which the
// guide materializer depends on.
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.TaxConfig{},
		&model.Guide{},
		&model.BankAccount{},
		&model.LedgerEntry{},
		&model.AuditLog{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}
