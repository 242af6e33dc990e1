package service

import (
	"context"
	"fmt"

	"dascentral/internal/model"
	"dascentral/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type YearSummary struct {
	Year         int    `json:"year"`
	TotalPaid    string `json:"total_paid"`
	TotalPending string `json:"total_pending"`
	PaidCount    int    `json:"paid_count"`
	PendingCount int    `json:"pending_count"`
}

type SummaryResponse struct {
	AccountID    string        `json:"account_id"`
	TotalPaid    string        `json:"total_paid"`
	TotalPending string        `json:"total_pending"`
	ByYear       []YearSummary `json:"by_year"`
}

// --- Interface ---

// SummaryService reports lifetime and per-year totals over persisted guides
// only. Placeholder months never appear here: the summary states ledger-backed
// facts, not display fallbacks. Every call re-reads the store, so totals are
// correct immediately after a batch settles.
type SummaryService interface {
	Summarize(ctx context.Context, accountID uuid.UUID) (SummaryResponse, error)
}

type summaryService struct {
	guideRepo repository.GuideRepository
}

func NewSummaryService(guideRepo repository.GuideRepository) SummaryService {
	return &summaryService{guideRepo: guideRepo}
}

// --- Implementation ---

func (s *summaryService) Summarize(ctx context.Context, accountID uuid.UUID) (SummaryResponse, error) {
	guides, err := s.guideRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return SummaryResponse{}, fmt.Errorf("failed to list guides: %w", err)
	}

	type bucket struct {
		paid, pending           decimal.Decimal
		paidCount, pendingCount int
	}

	totalPaid := decimal.Zero
	totalPending := decimal.Zero
	buckets := make(map[int]*bucket)
	years := make([]int, 0)

	for _, g := range guides {
		b, ok := buckets[g.Year]
		if !ok {
			b = &bucket{paid: decimal.Zero, pending: decimal.Zero}
			buckets[g.Year] = b
			years = append(years, g.Year) // guides arrive year-ordered
		}

		if g.Status == model.GuideStatusPaid {
			amount := g.BaseValue
			if g.FinalPaidValue.Valid {
				amount = g.FinalPaidValue.Decimal
			}
			totalPaid = totalPaid.Add(amount)
			b.paid = b.paid.Add(amount)
			b.paidCount++
		} else {
			totalPending = totalPending.Add(g.BaseValue)
			b.pending = b.pending.Add(g.BaseValue)
			b.pendingCount++
		}
	}

	resp := SummaryResponse{
		AccountID:    accountID.String(),
		TotalPaid:    totalPaid.StringFixed(2),
		TotalPending: totalPending.StringFixed(2),
		ByYear:       make([]YearSummary, 0, len(years)),
	}
	for _, year := range years {
		b := buckets[year]
		resp.ByYear = append(resp.ByYear, YearSummary{
			Year:         year,
			TotalPaid:    b.paid.StringFixed(2),
			TotalPending: b.pending.StringFixed(2),
			PaidCount:    b.paidCount,
			PendingCount: b.pendingCount,
		})
	}

	return resp, nil
}
