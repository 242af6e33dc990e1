package service

import (
	"testing"
	"time"

	"dascentral/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingGuide(year, month int, baseValue string, dueDay int) *model.Guide {
	return &model.Guide{
		Year:      year,
		Month:     month,
		BaseValue: dec(baseValue),
		DueDate:   DueDateFor(year, month, dueDay),
		Status:    model.GuideStatusPending,
	}
}

func paidGuide(year, month int, baseValue, finalValue string, dueDay int) *model.Guide {
	g := pendingGuide(year, month, baseValue, dueDay)
	g.Status = model.GuideStatusPaid
	g.FinalPaidValue = decimal.NewNullDecimal(dec(finalValue))
	at := DueDateFor(year, month, dueDay)
	g.PaidAt = &at
	return g
}

func TestDeriveStatus_CurrentMonthBeforeDueDate(t *testing.T) {
	// Base 75.60 due day 20: month 6 falls due 2024-07-20.
	g := pendingGuide(2024, 6, "75.60", 20)
	require.Equal(t, date(2024, 7, 20), g.DueDate)

	d := DeriveStatus(2024, 6, g, date(2024, 6, 25))
	assert.Equal(t, model.DisplayPending, d.DisplayStatus)
	assert.True(t, d.Payable)
	assert.True(t, d.FinalValue.Equal(dec("75.60")))
}

func TestDeriveStatus_OverdueAfterDueDate(t *testing.T) {
	g := pendingGuide(2024, 6, "75.60", 20)

	d := DeriveStatus(2024, 6, g, date(2024, 7, 25))
	assert.Equal(t, model.DisplayOverdue, d.DisplayStatus)
	assert.True(t, d.Payable)
}

func TestDeriveStatus_DueDayBoundary(t *testing.T) {
	g := pendingGuide(2024, 6, "75.60", 20)

	// Still pending on the due day itself, whatever the time of day.
	onDueDay := time.Date(2024, 7, 20, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, model.DisplayPending, DeriveStatus(2024, 6, g, onDueDay).DisplayStatus)

	dayAfter := date(2024, 7, 21)
	assert.Equal(t, model.DisplayOverdue, DeriveStatus(2024, 6, g, dayAfter).DisplayStatus)
}

func TestDeriveStatus_PastDueMonthRendersSettled(t *testing.T) {
	g := pendingGuide(2024, 6, "75.60", 20)

	// August: the July due window is over, the month renders as settled even
	// though it was never paid, and it is no longer payable.
	d := DeriveStatus(2024, 6, g, date(2024, 8, 2))
	assert.Equal(t, model.DisplayPaidVisual, d.DisplayStatus)
	assert.False(t, d.Payable)
}

func TestDeriveStatus_PaidIsTerminal(t *testing.T) {
	g := paidGuide(2024, 3, "75.60", "80.00", 20)

	// Once paid, every later now keeps returning PAID.
	for _, now := range []time.Time{
		date(2024, 4, 1),
		date(2024, 12, 31),
		date(2030, 1, 1),
	} {
		d := DeriveStatus(2024, 3, g, now)
		assert.Equal(t, model.DisplayPaid, d.DisplayStatus, "now=%s", now)
		assert.False(t, d.Payable)
		assert.True(t, d.FinalValue.Equal(dec("80.00")), "displays the final paid value")
	}
}

func TestDeriveStatus_FutureMonthUpcoming(t *testing.T) {
	g := pendingGuide(2024, 11, "75.60", 20)

	d := DeriveStatus(2024, 11, g, date(2024, 6, 25))
	assert.Equal(t, model.DisplayUpcoming, d.DisplayStatus)
	assert.False(t, d.Payable)

	// Year boundary: January next year is upcoming too.
	d = DeriveStatus(2025, 1, nil, date(2024, 12, 15))
	assert.Equal(t, model.DisplayUpcoming, d.DisplayStatus)
}

func TestDeriveStatus_PlaceholderMonths(t *testing.T) {
	now := date(2024, 6, 25)

	// Past months with no row at all still render settled.
	past := DeriveStatus(2024, 2, nil, now)
	assert.Equal(t, model.DisplayPaidVisual, past.DisplayStatus)
	assert.False(t, past.Payable)

	// The current month without a row is pending but can never be paid
	// before it is materialized.
	current := DeriveStatus(2024, 6, nil, now)
	assert.Equal(t, model.DisplayPending, current.DisplayStatus)
	assert.False(t, current.Payable)
	assert.True(t, current.FinalValue.IsZero())
}

func TestDeriveStatus_PastPendingGuideNeverPayable(t *testing.T) {
	g := pendingGuide(2023, 9, "70.00", 10)

	d := DeriveStatus(2023, 9, g, date(2024, 6, 25))
	assert.Equal(t, model.DisplayPaidVisual, d.DisplayStatus)
	assert.False(t, d.Payable)
}
