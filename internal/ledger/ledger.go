// Package ledger moves money out of funding accounts. It is the only part of
// the system that touches balances; guide state transitions are driven by the
// payment coordinator on top of it.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"dascentral/internal/model"
	"dascentral/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrAccountNotFound   = errors.New("funding account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("debit amount must be positive")
)

// Ledger debits a funding account and records the movement. Debit returns the
// ledger entry id as the reference for the payment that triggered it.
type Ledger interface {
	Debit(ctx context.Context, bankAccountID uuid.UUID, amount decimal.Decimal, memo string) (string, error)
}

type ledger struct {
	accountRepo repository.BankAccountRepository
	entryRepo   repository.LedgerEntryRepository
}

func New(accountRepo repository.BankAccountRepository, entryRepo repository.LedgerEntryRepository) Ledger {
	return &ledger{accountRepo: accountRepo, entryRepo: entryRepo}
}

// Debit locks the account row, verifies the balance covers the amount, then
// writes the new balance and a ledger entry. Callers run it inside a
// transaction so a failed guide transition rolls the debit back too.
func (l *ledger) Debit(ctx context.Context, bankAccountID uuid.UUID, amount decimal.Decimal, memo string) (string, error) {
	if !amount.IsPositive() {
		return "", ErrInvalidAmount
	}

	account, err := l.accountRepo.FindByIDForUpdate(ctx, bankAccountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrAccountNotFound
		}
		return "", fmt.Errorf("failed to load funding account: %w", err)
	}

	if account.Balance.LessThan(amount) {
		return "", ErrInsufficientFunds
	}

	account.Balance = account.Balance.Sub(amount)
	if err := l.accountRepo.UpdateBalance(ctx, account); err != nil {
		return "", fmt.Errorf("failed to update balance: %w", err)
	}

	entry := &model.LedgerEntry{
		ID:            uuid.New(),
		BankAccountID: account.ID,
		Amount:        amount,
		Memo:          memo,
	}
	if err := l.entryRepo.Create(ctx, entry); err != nil {
		return "", fmt.Errorf("failed to record ledger entry: %w", err)
	}

	return entry.ID.String(), nil
}
