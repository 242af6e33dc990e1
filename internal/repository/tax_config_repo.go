package repository

import (
	"context"
	"errors"

	"dascentral/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaxConfigRepository interface {
	// FindByAccount returns (nil, nil) when no config exists. Absence is an
	// expected precondition for materialization, not an error.
	FindByAccount(ctx context.Context, accountID uuid.UUID) (*model.TaxConfig, error)
	Upsert(ctx context.Context, config *model.TaxConfig) error
}

type taxConfigRepository struct {
	db *gorm.DB
}

func NewTaxConfigRepository(db *gorm.DB) TaxConfigRepository {
	return &taxConfigRepository{db: db}
}

func (r *taxConfigRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) (*model.TaxConfig, error) {
	var config model.TaxConfig
	err := GetDB(ctx, r.db).First(&config, "account_id = ?", accountID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (r *taxConfigRepository) Upsert(ctx context.Context, config *model.TaxConfig) error {
	db := GetDB(ctx, r.db)

	var existing model.TaxConfig
	err := db.First(&existing, "account_id = ?", config.AccountID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(config).Error
	}
	if err != nil {
		return err
	}

	existing.BaseValue = config.BaseValue
	existing.DueDay = config.DueDay
	if err := db.Save(&existing).Error; err != nil {
		return err
	}
	*config = existing
	return nil
}
