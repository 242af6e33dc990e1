package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dascentral/internal/model"
	"dascentral/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type GuideMonthResponse struct {
	GuideID       *string `json:"guide_id"` // nil for a month with no materialized row
	Year          int     `json:"year"`
	Month         int     `json:"month"`
	DisplayStatus string  `json:"display_status"`
	Payable       bool    `json:"payable"`
	FinalValue    string  `json:"final_value"`
	DueDate       *string `json:"due_date"`
	PaidAt        *string `json:"paid_at"`
}

type YearViewResponse struct {
	AccountID  string               `json:"account_id"`
	Year       int                  `json:"year"`
	Configured bool                 `json:"configured"`
	Months     []GuideMonthResponse `json:"months"`
}

// --- Interface ---

// GuideService materializes guide rows and renders the derived year view.
type GuideService interface {
	// EnsureYear creates the missing guide rows for every month of the year.
	// Idempotent: existing rows are never touched, paid or not, and a
	// concurrent creation race is absorbed as "already exists". Without a
	// tax config it does nothing.
	EnsureYear(ctx context.Context, accountID uuid.UUID, year int) error
	GetYearView(ctx context.Context, accountID uuid.UUID, year int) (YearViewResponse, error)
}

type guideService struct {
	guideRepo  repository.GuideRepository
	configRepo repository.TaxConfigRepository
	now        func() time.Time
}

func NewGuideService(guideRepo repository.GuideRepository, configRepo repository.TaxConfigRepository) GuideService {
	return &guideService{
		guideRepo:  guideRepo,
		configRepo: configRepo,
		now:        time.Now,
	}
}

// --- Implementation ---

func (s *guideService) EnsureYear(ctx context.Context, accountID uuid.UUID, year int) error {
	config, err := s.configRepo.FindByAccount(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to fetch tax config: %w", err)
	}
	if config == nil {
		// Nothing to snapshot from. The caller prompts for configuration.
		return nil
	}

	existing, err := s.guideRepo.ListYear(ctx, accountID, year)
	if err != nil {
		return fmt.Errorf("failed to list guides: %w", err)
	}
	present := make(map[int]bool, len(existing))
	for _, g := range existing {
		present[g.Month] = true
	}

	for month := 1; month <= 12; month++ {
		if present[month] {
			continue
		}

		guide := &model.Guide{
			AccountID: accountID,
			Year:      year,
			Month:     month,
			BaseValue: config.BaseValue,
			DueDate:   DueDateFor(year, month, config.DueDay),
			Status:    model.GuideStatusPending,
		}
		if err := s.guideRepo.Create(ctx, guide); err != nil {
			if errors.Is(err, repository.ErrGuideExists) {
				// A concurrent caller won the insert; same outcome.
				continue
			}
			return fmt.Errorf("failed to materialize guide %d/%d: %w", month, year, err)
		}
	}

	return nil
}

func (s *guideService) GetYearView(ctx context.Context, accountID uuid.UUID, year int) (YearViewResponse, error) {
	if err := s.EnsureYear(ctx, accountID, year); err != nil {
		return YearViewResponse{}, err
	}

	config, err := s.configRepo.FindByAccount(ctx, accountID)
	if err != nil {
		return YearViewResponse{}, fmt.Errorf("failed to fetch tax config: %w", err)
	}

	guides, err := s.guideRepo.ListYear(ctx, accountID, year)
	if err != nil {
		return YearViewResponse{}, fmt.Errorf("failed to list guides: %w", err)
	}
	byMonth := make(map[int]*model.Guide, len(guides))
	for i := range guides {
		byMonth[guides[i].Month] = &guides[i]
	}

	now := s.now()
	resp := YearViewResponse{
		AccountID:  accountID.String(),
		Year:       year,
		Configured: config != nil,
		Months:     make([]GuideMonthResponse, 0, 12),
	}
	for month := 1; month <= 12; month++ {
		derived := DeriveStatus(year, month, byMonth[month], now)
		if derived.Guide == nil && config != nil {
			// Display fallback for unmaterialized months, not a ledger fact.
			derived.FinalValue = config.BaseValue
		}
		resp.Months = append(resp.Months, toGuideMonthResponse(derived))
	}

	return resp, nil
}

// DueDateFor computes the due date of a guide: the configured day of the
// month following the reference month, clamped to that month's last day so a
// due day of 31 lands on Feb 28/29 rather than rolling over.
func DueDateFor(year, month, dueDay int) time.Time {
	first := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	lastDay := first.AddDate(0, 1, -1).Day()
	day := dueDay
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

// --- Mapping ---

func toGuideMonthResponse(d DisplayGuide) GuideMonthResponse {
	resp := GuideMonthResponse{
		Year:          d.Year,
		Month:         d.Month,
		DisplayStatus: d.DisplayStatus,
		Payable:       d.Payable,
		FinalValue:    d.FinalValue.StringFixed(2),
	}

	if d.Guide != nil {
		id := d.Guide.ID.String()
		resp.GuideID = &id
		due := d.Guide.DueDate.Format("2006-01-02")
		resp.DueDate = &due
		if d.Guide.PaidAt != nil {
			paid := d.Guide.PaidAt.Format(time.RFC3339)
			resp.PaidAt = &paid
		}
	}

	return resp
}
