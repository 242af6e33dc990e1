package repository

import (
	"context"

	"dascentral/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BankAccountRepository interface {
	Create(ctx context.Context, account *model.BankAccount) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.BankAccount, error)
	// FindByIDForUpdate takes a row lock so a debit observes the balance as
	// of the surrounding transaction. Must be called inside RunInTx.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.BankAccount, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.BankAccount, error)
	UpdateBalance(ctx context.Context, account *model.BankAccount) error
}

type bankAccountRepository struct {
	db *gorm.DB
}

func NewBankAccountRepository(db *gorm.DB) BankAccountRepository {
	return &bankAccountRepository{db: db}
}

func (r *bankAccountRepository) Create(ctx context.Context, account *model.BankAccount) error {
	return GetDB(ctx, r.db).Create(account).Error
}

func (r *bankAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.BankAccount, error) {
	var account model.BankAccount
	if err := GetDB(ctx, r.db).First(&account, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *bankAccountRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.BankAccount, error) {
	var account model.BankAccount
	err := GetDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&account, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *bankAccountRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.BankAccount, error) {
	var accounts []model.BankAccount
	err := GetDB(ctx, r.db).
		Where("owner_id = ?", ownerID).
		Order("created_at asc").
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *bankAccountRepository) UpdateBalance(ctx context.Context, account *model.BankAccount) error {
	return GetDB(ctx, r.db).Model(account).Update("balance", account.Balance).Error
}
