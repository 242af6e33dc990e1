package service

import (
	"context"
	"testing"

	"dascentral/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_EmptyAccount(t *testing.T) {
	svc := NewSummaryService(newFakeGuideRepo())

	summary, err := svc.Summarize(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "0.00", summary.TotalPaid)
	assert.Equal(t, "0.00", summary.TotalPending)
	assert.Empty(t, summary.ByYear)
}

func TestSummarize_UsesFinalPaidValue(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	guides := newFakeGuideRepo()

	// Month 3 paid at 80.00 despite a 75.60 base; month 4 still pending.
	paid := &model.Guide{
		AccountID: accountID, Year: 2024, Month: 3,
		BaseValue: dec("75.60"),
		DueDate:   DueDateFor(2024, 3, 20),
		Status:    model.GuideStatusPending,
	}
	require.NoError(t, guides.Create(ctx, paid))
	require.NoError(t, guides.MarkPaid(ctx, paid.ID, dec("80.00"), date(2024, 4, 10)))

	pending := &model.Guide{
		AccountID: accountID, Year: 2024, Month: 4,
		BaseValue: dec("75.60"),
		DueDate:   DueDateFor(2024, 4, 20),
		Status:    model.GuideStatusPending,
	}
	require.NoError(t, guides.Create(ctx, pending))

	summary, err := NewSummaryService(guides).Summarize(ctx, accountID)
	require.NoError(t, err)

	assert.Equal(t, "80.00", summary.TotalPaid, "totals reflect what was actually paid")
	assert.Equal(t, "75.60", summary.TotalPending)

	require.Len(t, summary.ByYear, 1)
	assert.Equal(t, 2024, summary.ByYear[0].Year)
	assert.Equal(t, 1, summary.ByYear[0].PaidCount)
	assert.Equal(t, 1, summary.ByYear[0].PendingCount)
}

func TestSummarize_RollsUpAcrossYears(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	guides := newFakeGuideRepo()

	for year := 2023; year <= 2024; year++ {
		for month := 1; month <= 3; month++ {
			g := &model.Guide{
				AccountID: accountID, Year: year, Month: month,
				BaseValue: dec("70.00"),
				DueDate:   DueDateFor(year, month, 20),
				Status:    model.GuideStatusPending,
			}
			require.NoError(t, guides.Create(ctx, g))
			if year == 2023 {
				require.NoError(t, guides.MarkPaid(ctx, g.ID, dec("70.00"), date(year, month+1, 20)))
			}
		}
	}

	summary, err := NewSummaryService(guides).Summarize(ctx, accountID)
	require.NoError(t, err)

	assert.Equal(t, "210.00", summary.TotalPaid)
	assert.Equal(t, "210.00", summary.TotalPending)
	require.Len(t, summary.ByYear, 2)
	assert.Equal(t, 2023, summary.ByYear[0].Year)
	assert.Equal(t, "210.00", summary.ByYear[0].TotalPaid)
	assert.Equal(t, "0.00", summary.ByYear[0].TotalPending)
	assert.Equal(t, 2024, summary.ByYear[1].Year)
	assert.Equal(t, "0.00", summary.ByYear[1].TotalPaid)
	assert.Equal(t, "210.00", summary.ByYear[1].TotalPending)
}

func TestSummarize_IgnoresOtherAccounts(t *testing.T) {
	ctx := context.Background()
	guides := newFakeGuideRepo()
	mine := uuid.New()
	other := uuid.New()

	for _, acct := range []uuid.UUID{mine, other} {
		g := &model.Guide{
			AccountID: acct, Year: 2024, Month: 1,
			BaseValue: decimal.NewFromInt(50),
			DueDate:   DueDateFor(2024, 1, 20),
			Status:    model.GuideStatusPending,
		}
		require.NoError(t, guides.Create(ctx, g))
	}

	summary, err := NewSummaryService(guides).Summarize(ctx, mine)
	require.NoError(t, err)
	assert.Equal(t, "50.00", summary.TotalPending)
}
