package service

import (
	"time"

	"dascentral/internal/model"

	"github.com/shopspring/decimal"
)

// DisplayGuide is the derived, render-time view of one month. It is never
// persisted; Guide is nil for months that have no materialized row yet, and a
// nil-Guide month is never payable.
type DisplayGuide struct {
	Year          int
	Month         int
	Guide         *model.Guide
	DisplayStatus string
	Payable       bool
	FinalValue    decimal.Decimal
}

// DeriveStatus classifies one month of the year view. Pure: storage is never
// touched and the same inputs always produce the same output.
//
// Guides are settled in arrears: the guide for month M falls due on the
// configured day of month M+1, so a guide stays actionable through its due
// month, not just its reference month:
//
//	PAID         guide row exists and was paid (terminal, never reclassified)
//	PAID_VISUAL  due month already behind the current month; rendered as
//	             settled even when no row was ever created or paid
//	OVERDUE      due date passed and we are still inside the due month
//	PENDING      current reference month, or due month reached but the due
//	             day has not passed yet
//	UPCOMING     reference month after the current month
//
// Only OVERDUE and PENDING months with a real row are payable.
func DeriveStatus(year, month int, guide *model.Guide, now time.Time) DisplayGuide {
	d := DisplayGuide{Year: year, Month: month, Guide: guide}

	cur := periodIndex(now.Year(), int(now.Month()))
	ref := periodIndex(year, month)

	switch {
	case guide != nil && guide.Status == model.GuideStatusPaid:
		d.DisplayStatus = model.DisplayPaid
		d.FinalValue = guide.FinalPaidValue.Decimal

	case ref > cur:
		d.DisplayStatus = model.DisplayUpcoming

	case guide == nil:
		// Placeholder months: every past one renders settled, the current
		// one renders pending, neither can be paid until materialized.
		if ref < cur {
			d.DisplayStatus = model.DisplayPaidVisual
		} else {
			d.DisplayStatus = model.DisplayPending
		}

	case periodIndex(guide.DueDate.Year(), int(guide.DueDate.Month())) < cur:
		d.DisplayStatus = model.DisplayPaidVisual

	case dateOf(now).After(dateOf(guide.DueDate)):
		d.DisplayStatus = model.DisplayOverdue
		d.Payable = true

	default:
		d.DisplayStatus = model.DisplayPending
		d.Payable = true
	}

	if guide != nil && d.DisplayStatus != model.DisplayPaid {
		d.FinalValue = guide.BaseValue
	}

	return d
}

// periodIndex linearizes (year, month) so periods compare with plain ints.
func periodIndex(year, month int) int {
	return year*12 + (month - 1)
}

// dateOf strips the time of day so a guide is not overdue on its due day.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
