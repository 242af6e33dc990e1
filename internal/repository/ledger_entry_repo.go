package repository

import (
	"context"

	"dascentral/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LedgerEntryRepository interface {
	Create(ctx context.Context, entry *model.LedgerEntry) error
	ListByAccount(ctx context.Context, bankAccountID uuid.UUID, page, limit int) ([]model.LedgerEntry, int64, error)
}

type ledgerEntryRepository struct {
	db *gorm.DB
}

func NewLedgerEntryRepository(db *gorm.DB) LedgerEntryRepository {
	return &ledgerEntryRepository{db: db}
}

func (r *ledgerEntryRepository) Create(ctx context.Context, entry *model.LedgerEntry) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *ledgerEntryRepository) ListByAccount(ctx context.Context, bankAccountID uuid.UUID, page, limit int) ([]model.LedgerEntry, int64, error) {
	var entries []model.LedgerEntry
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.LedgerEntry{}).Where("bank_account_id = ?", bankAccountID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := db.Where("bank_account_id = ?", bankAccountID).
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
