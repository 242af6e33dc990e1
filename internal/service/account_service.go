package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dascentral/internal/model"
	"dascentral/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateBankAccountRequest struct {
	Name           string `json:"name" binding:"required,max=100"`
	InitialBalance string `json:"initial_balance"` // Optional, defaults to 0
}

type BankAccountResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Balance   string `json:"balance"`
	CreatedAt string `json:"created_at"`
}

type LedgerEntryResponse struct {
	ID            string `json:"id"`
	BankAccountID string `json:"bank_account_id"`
	Amount        string `json:"amount"`
	Memo          string `json:"memo"`
	CreatedAt     string `json:"created_at"`
}

// --- Interface ---

// BankAccountService covers funding-account lookup for the payer choice and
// the debit history behind it. No settlement rule lives here.
type BankAccountService interface {
	CreateAccount(ctx context.Context, ownerID uuid.UUID, req CreateBankAccountRequest) (BankAccountResponse, error)
	ListAccounts(ctx context.Context, ownerID uuid.UUID) ([]BankAccountResponse, error)
	ListPayments(ctx context.Context, bankAccountID string, page, limit int) ([]LedgerEntryResponse, int64, error)
}

type bankAccountService struct {
	accountRepo repository.BankAccountRepository
	entryRepo   repository.LedgerEntryRepository
	auditRepo   repository.AuditRepository
}

func NewBankAccountService(
	accountRepo repository.BankAccountRepository,
	entryRepo repository.LedgerEntryRepository,
	auditRepo repository.AuditRepository,
) BankAccountService {
	return &bankAccountService{accountRepo: accountRepo, entryRepo: entryRepo, auditRepo: auditRepo}
}

// --- Implementation ---

func (s *bankAccountService) CreateAccount(ctx context.Context, ownerID uuid.UUID, req CreateBankAccountRequest) (BankAccountResponse, error) {
	balance := decimal.Zero
	if req.InitialBalance != "" {
		parsed, err := decimal.NewFromString(req.InitialBalance)
		if err != nil {
			return BankAccountResponse{}, fmt.Errorf("invalid initial_balance: %w", err)
		}
		if parsed.IsNegative() {
			return BankAccountResponse{}, fmt.Errorf("initial_balance cannot be negative")
		}
		balance = parsed
	}

	account := model.BankAccount{
		OwnerID: ownerID,
		Name:    req.Name,
		Balance: balance,
	}
	if err := s.accountRepo.Create(ctx, &account); err != nil {
		return BankAccountResponse{}, fmt.Errorf("failed to create bank account: %w", err)
	}

	details, _ := json.Marshal(req)
	_ = s.auditRepo.Log(ctx, &model.AuditLog{
		UserID:     &ownerID,
		Action:     model.ActionCreateAccount,
		EntityID:   account.ID.String(),
		EntityName: account.Name,
		Details:    string(details),
	})

	return toBankAccountResponse(account), nil
}

func (s *bankAccountService) ListAccounts(ctx context.Context, ownerID uuid.UUID) ([]BankAccountResponse, error) {
	accounts, err := s.accountRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}

	res := make([]BankAccountResponse, 0, len(accounts))
	for _, a := range accounts {
		res = append(res, toBankAccountResponse(a))
	}
	return res, nil
}

func (s *bankAccountService) ListPayments(ctx context.Context, bankAccountID string, page, limit int) ([]LedgerEntryResponse, int64, error) {
	accountID, err := uuid.Parse(bankAccountID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid bank_account_id: %w", err)
	}

	entries, total, err := s.entryRepo.ListByAccount(ctx, accountID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	res := make([]LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, LedgerEntryResponse{
			ID:            e.ID.String(),
			BankAccountID: e.BankAccountID.String(),
			Amount:        e.Amount.StringFixed(2),
			Memo:          e.Memo,
			CreatedAt:     e.CreatedAt.Format(time.RFC3339),
		})
	}
	return res, total, nil
}

// --- Mapping ---

func toBankAccountResponse(a model.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		ID:        a.ID.String(),
		Name:      a.Name,
		Balance:   a.Balance.StringFixed(2),
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}
