package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dascentral/internal/ledger"
	"dascentral/internal/model"
	"dascentral/internal/repository"
	ws "dascentral/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrGuideNotFound    = errors.New("guide not found")
	ErrGuideAlreadyPaid = errors.New("guide already paid")
	ErrGuideNotPayable  = errors.New("guide is not payable")
)

// --- DTOs ---

type PayGuideRequest struct {
	BankAccountID string `json:"bank_account_id" binding:"required"`
	// FinalAmount is what actually leaves the funding account; the payer may
	// adjust it above the base value to cover interest or penalties.
	FinalAmount string `json:"final_amount" binding:"required"`
}

type PayBatchRequest struct {
	GuideIDs      []string `json:"guide_ids" binding:"required,min=1"`
	BankAccountID string   `json:"bank_account_id" binding:"required"`
}

type PaymentResponse struct {
	GuideID        string `json:"guide_id"`
	Year           int    `json:"year"`
	Month          int    `json:"month"`
	FinalPaidValue string `json:"final_paid_value"`
	PaidAt         string `json:"paid_at"`
	Reference      string `json:"reference"` // ledger debit reference
}

// BatchFailure pinpoints where a batch stopped. Position is 1-based in
// selection order; everything before it is settled, everything after it was
// never attempted.
type BatchFailure struct {
	GuideID  string `json:"guide_id"`
	Position int    `json:"position"`
	Error    string `json:"error"`
}

type BatchPaymentResponse struct {
	Paid      []PaymentResponse `json:"paid"`
	Skipped   []string          `json:"skipped"` // unknown, unmaterialized, already-paid or unpayable ids
	Failure   *BatchFailure     `json:"failure,omitempty"`
	TotalPaid string            `json:"total_paid"`
}

// --- Interface ---

// PaymentService settles guides against a funding account. Each settlement
// couples the ledger debit and the PENDING -> PAID transition in one database
// transaction, so a failed debit can never leave a guide marked paid.
type PaymentService interface {
	Pay(ctx context.Context, guideID string, req PayGuideRequest, userID string) (PaymentResponse, error)
	// PayBatch settles guides strictly one at a time in the given order, each
	// at its own base value. It stops at the first ledger failure and reports
	// the settled prefix; already-settled guides are not rolled back.
	PayBatch(ctx context.Context, req PayBatchRequest, userID string) (BatchPaymentResponse, error)
}

type paymentService struct {
	guideRepo repository.GuideRepository
	ledger    ledger.Ledger
	txManager repository.TransactionManager
	auditRepo repository.AuditRepository
	hub       *ws.Hub // optional, nil disables notifications
	now       func() time.Time
}

func NewPaymentService(
	guideRepo repository.GuideRepository,
	l ledger.Ledger,
	txManager repository.TransactionManager,
	auditRepo repository.AuditRepository,
	hub *ws.Hub,
) PaymentService {
	return &paymentService{
		guideRepo: guideRepo,
		ledger:    l,
		txManager: txManager,
		auditRepo: auditRepo,
		hub:       hub,
		now:       time.Now,
	}
}

// --- Implementation ---

func (s *paymentService) Pay(ctx context.Context, guideID string, req PayGuideRequest, userID string) (PaymentResponse, error) {
	gid, err := uuid.Parse(guideID)
	if err != nil {
		return PaymentResponse{}, fmt.Errorf("invalid guide id: %w", err)
	}
	bankAccountID, err := uuid.Parse(req.BankAccountID)
	if err != nil {
		return PaymentResponse{}, fmt.Errorf("invalid bank_account_id: %w", err)
	}
	finalAmount, err := decimal.NewFromString(req.FinalAmount)
	if err != nil {
		return PaymentResponse{}, fmt.Errorf("invalid final_amount: %w", err)
	}
	if !finalAmount.IsPositive() {
		return PaymentResponse{}, fmt.Errorf("final_amount must be greater than zero")
	}

	resp, err := s.settleOne(ctx, gid, bankAccountID, finalAmount)
	if err != nil {
		return PaymentResponse{}, err
	}

	s.writeAuditLog(ctx, userID, model.ActionPayGuide, resp.GuideID,
		fmt.Sprintf("DAS %04d-%02d", resp.Year, resp.Month), req)

	return resp, nil
}

func (s *paymentService) PayBatch(ctx context.Context, req PayBatchRequest, userID string) (BatchPaymentResponse, error) {
	bankAccountID, err := uuid.Parse(req.BankAccountID)
	if err != nil {
		return BatchPaymentResponse{}, fmt.Errorf("invalid bank_account_id: %w", err)
	}

	result := BatchPaymentResponse{
		Paid:    make([]PaymentResponse, 0, len(req.GuideIDs)),
		Skipped: make([]string, 0),
	}
	total := decimal.Zero

	for i, raw := range req.GuideIDs {
		gid, err := uuid.Parse(raw)
		if err != nil {
			result.Skipped = append(result.Skipped, raw)
			continue
		}

		// Batch mode charges the stored base value; per-item amount edits are
		// deliberately not supported here.
		resp, err := s.settleOne(ctx, gid, bankAccountID, decimal.Decimal{})
		if err != nil {
			if errors.Is(err, ErrGuideNotFound) || errors.Is(err, ErrGuideAlreadyPaid) || errors.Is(err, ErrGuideNotPayable) {
				result.Skipped = append(result.Skipped, raw)
				continue
			}
			// Ledger failure is terminal for the batch: report the settled
			// prefix and stop, no speculative continuation.
			result.Failure = &BatchFailure{
				GuideID:  raw,
				Position: i + 1,
				Error:    err.Error(),
			}
			break
		}

		result.Paid = append(result.Paid, resp)
		paid, _ := decimal.NewFromString(resp.FinalPaidValue)
		total = total.Add(paid)
	}

	result.TotalPaid = total.StringFixed(2)

	s.writeAuditLog(ctx, userID, model.ActionPayGuideBatch, bankAccountID.String(),
		fmt.Sprintf("%d paid, %d skipped", len(result.Paid), len(result.Skipped)), result)

	return result, nil
}

// settleOne pays a single guide. A zero amount means "charge the base value"
// (batch mode). The payability check runs on current wall-clock state and the
// terminal-state check is repeated inside the transaction, so two racing
// payers cannot both settle the same guide.
func (s *paymentService) settleOne(ctx context.Context, guideID, bankAccountID uuid.UUID, amount decimal.Decimal) (PaymentResponse, error) {
	guide, err := s.guideRepo.FindByID(ctx, guideID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PaymentResponse{}, ErrGuideNotFound
		}
		return PaymentResponse{}, fmt.Errorf("failed to load guide: %w", err)
	}

	if guide.Status == model.GuideStatusPaid {
		return PaymentResponse{}, ErrGuideAlreadyPaid
	}
	if derived := DeriveStatus(guide.Year, guide.Month, guide, s.now()); !derived.Payable {
		return PaymentResponse{}, ErrGuideNotPayable
	}

	if amount.IsZero() {
		amount = guide.BaseValue
	}

	paidAt := s.now()
	memo := fmt.Sprintf("DAS %04d-%02d", guide.Year, guide.Month)

	var reference string
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		current, findErr := s.guideRepo.FindByID(txCtx, guideID)
		if findErr != nil {
			return fmt.Errorf("failed to reload guide: %w", findErr)
		}
		if current.Status != model.GuideStatusPending {
			return ErrGuideAlreadyPaid
		}

		ref, debitErr := s.ledger.Debit(txCtx, bankAccountID, amount, memo)
		if debitErr != nil {
			return debitErr
		}
		reference = ref

		if markErr := s.guideRepo.MarkPaid(txCtx, guideID, amount, paidAt); markErr != nil {
			return fmt.Errorf("failed to mark guide paid: %w", markErr)
		}
		return nil
	})
	if err != nil {
		return PaymentResponse{}, err
	}

	resp := PaymentResponse{
		GuideID:        guideID.String(),
		Year:           guide.Year,
		Month:          guide.Month,
		FinalPaidValue: amount.StringFixed(2),
		PaidAt:         paidAt.Format(time.RFC3339),
		Reference:      reference,
	}

	s.notifyPaid(guide.AccountID, resp)

	return resp, nil
}

func (s *paymentService) notifyPaid(accountID uuid.UUID, payment PaymentResponse) {
	if s.hub == nil {
		return
	}
	event := map[string]interface{}{
		"type":       "guide.paid",
		"account_id": accountID.String(),
		"payment":    payment,
	}
	if b, err := json.Marshal(event); err == nil {
		s.hub.Broadcast <- b
	}
}

func (s *paymentService) writeAuditLog(ctx context.Context, userID, action, entityID, entityName string, payload interface{}) {
	var uid *uuid.UUID
	if parsed, err := uuid.Parse(userID); err == nil {
		uid = &parsed
	}

	details, _ := json.Marshal(payload)
	_ = s.auditRepo.Log(ctx, &model.AuditLog{
		UserID:     uid,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(details),
	})
}
