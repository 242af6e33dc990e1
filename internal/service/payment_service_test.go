package service

import (
	"context"
	"testing"
	"time"

	"dascentral/internal/ledger"
	"dascentral/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentFixture struct {
	svc       *paymentService
	guides    *fakeGuideRepo
	ledger    *fakeLedger
	audit     *fakeAuditRepo
	accountID uuid.UUID
	bankID    uuid.UUID
}

func newPaymentFixture(t *testing.T, balance string, now time.Time) *paymentFixture {
	t.Helper()
	f := &paymentFixture{
		guides:    newFakeGuideRepo(),
		ledger:    newFakeLedger(),
		audit:     &fakeAuditRepo{},
		accountID: uuid.New(),
		bankID:    uuid.New(),
	}
	f.ledger.balances[f.bankID] = dec(balance)
	f.svc = NewPaymentService(f.guides, f.ledger, fakeTxManager{}, f.audit, nil).(*paymentService)
	f.svc.now = func() time.Time { return now }
	return f
}

// addGuide materializes a pending guide directly into the fake store.
func (f *paymentFixture) addGuide(t *testing.T, year, month int, baseValue string, dueDay int) uuid.UUID {
	return f.addGuideForAccount(t, f.accountID, year, month, baseValue, dueDay)
}

func (f *paymentFixture) addGuideForAccount(t *testing.T, accountID uuid.UUID, year, month int, baseValue string, dueDay int) uuid.UUID {
	t.Helper()
	g := &model.Guide{
		AccountID: accountID,
		Year:      year,
		Month:     month,
		BaseValue: dec(baseValue),
		DueDate:   DueDateFor(year, month, dueDay),
		Status:    model.GuideStatusPending,
	}
	require.NoError(t, f.guides.Create(context.Background(), g))
	return g.ID
}

func TestPay_AdjustedFinalAmount(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(t, "500.00", date(2024, 3, 10))
	guideID := f.addGuide(t, 2024, 3, "75.60", 20)

	resp, err := f.svc.Pay(ctx, guideID.String(), PayGuideRequest{
		BankAccountID: f.bankID.String(),
		FinalAmount:   "80.00", // base plus manually added interest
	}, uuid.NewString())
	require.NoError(t, err)

	assert.Equal(t, "80.00", resp.FinalPaidValue)
	assert.NotEmpty(t, resp.Reference)

	stored, err := f.guides.FindByID(ctx, guideID)
	require.NoError(t, err)
	assert.Equal(t, model.GuideStatusPaid, stored.Status)
	require.True(t, stored.FinalPaidValue.Valid)
	assert.True(t, stored.FinalPaidValue.Decimal.Equal(dec("80.00")))
	require.NotNil(t, stored.PaidAt)

	// The debit matches the adjusted amount, not the base value.
	require.Len(t, f.ledger.debits, 1)
	assert.True(t, f.ledger.debits[0].amount.Equal(dec("80.00")))
	assert.Equal(t, "DAS 2024-03", f.ledger.debits[0].memo)
	assert.True(t, f.ledger.balances[f.bankID].Equal(dec("420.00")))
}

func TestPay_UnknownGuide(t *testing.T) {
	f := newPaymentFixture(t, "500.00", date(2024, 3, 10))

	_, err := f.svc.Pay(context.Background(), uuid.NewString(), PayGuideRequest{
		BankAccountID: f.bankID.String(),
		FinalAmount:   "75.60",
	}, "")
	assert.ErrorIs(t, err, ErrGuideNotFound)
	assert.Empty(t, f.ledger.debits)
}

func TestPay_AlreadyPaidIsRejected(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(t, "500.00", date(2024, 3, 10))
	guideID := f.addGuide(t, 2024, 3, "75.60", 20)

	_, err := f.svc.Pay(ctx, guideID.String(), PayGuideRequest{BankAccountID: f.bankID.String(), FinalAmount: "75.60"}, "")
	require.NoError(t, err)

	_, err = f.svc.Pay(ctx, guideID.String(), PayGuideRequest{BankAccountID: f.bankID.String(), FinalAmount: "75.60"}, "")
	assert.ErrorIs(t, err, ErrGuideAlreadyPaid)
	assert.Len(t, f.ledger.debits, 1, "no second debit")
}

func TestPay_UnpayableMonthIsRejected(t *testing.T) {
	f := newPaymentFixture(t, "500.00", date(2024, 6, 25))
	// September next year: UPCOMING, not payable.
	guideID := f.addGuide(t, 2025, 9, "75.60", 20)

	_, err := f.svc.Pay(context.Background(), guideID.String(), PayGuideRequest{
		BankAccountID: f.bankID.String(),
		FinalAmount:   "75.60",
	}, "")
	assert.ErrorIs(t, err, ErrGuideNotPayable)
	assert.Empty(t, f.ledger.debits)
}

func TestPay_InsufficientFundsKeepsGuidePending(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(t, "10.00", date(2024, 3, 10))
	guideID := f.addGuide(t, 2024, 3, "75.60", 20)

	_, err := f.svc.Pay(ctx, guideID.String(), PayGuideRequest{
		BankAccountID: f.bankID.String(),
		FinalAmount:   "75.60",
	}, "")
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)

	// A failed debit must never leave the guide marked paid.
	stored, findErr := f.guides.FindByID(ctx, guideID)
	require.NoError(t, findErr)
	assert.Equal(t, model.GuideStatusPending, stored.Status)
	assert.Nil(t, stored.PaidAt)
}

func TestPay_RejectsNonPositiveAmount(t *testing.T) {
	f := newPaymentFixture(t, "500.00", date(2024, 3, 10))
	guideID := f.addGuide(t, 2024, 3, "75.60", 20)

	for _, amount := range []string{"0", "-5.00", "abc"} {
		_, err := f.svc.Pay(context.Background(), guideID.String(), PayGuideRequest{
			BankAccountID: f.bankID.String(),
			FinalAmount:   amount,
		}, "")
		assert.Error(t, err, "amount %q", amount)
	}
	assert.Empty(t, f.ledger.debits)
}

func TestPayBatch_SettlesSequentiallyAtBaseValue(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(t, "500.00", date(2024, 4, 25))
	g1 := f.addGuide(t, 2024, 2, "75.60", 20) // due 2024-03-20, past window but re-dated below
	g2 := f.addGuide(t, 2024, 3, "75.60", 20) // due 2024-04-20: overdue at now
	g3 := f.addGuide(t, 2024, 4, "75.60", 20) // current month: pending

	// Month 2's due window is already closed; it gets skipped, not failed.
	result, err := f.svc.PayBatch(ctx, PayBatchRequest{
		GuideIDs:      []string{g1.String(), g2.String(), g3.String()},
		BankAccountID: f.bankID.String(),
	}, uuid.NewString())
	require.NoError(t, err)

	require.Len(t, result.Paid, 2)
	assert.Equal(t, g2.String(), result.Paid[0].GuideID)
	assert.Equal(t, g3.String(), result.Paid[1].GuideID)
	assert.Equal(t, []string{g1.String()}, result.Skipped)
	assert.Nil(t, result.Failure)
	assert.Equal(t, "151.20", result.TotalPaid)

	// Every batch item is charged its base value.
	for _, d := range f.ledger.debits {
		assert.True(t, d.amount.Equal(dec("75.60")))
	}
}

func TestPayBatch_StopsAtFirstLedgerFailure(t *testing.T) {
	ctx := context.Background()
	// Balance covers exactly one base value; the second debit fails. Three
	// business accounts share one funding account so all three guides are
	// payable at once.
	f := newPaymentFixture(t, "80.00", date(2024, 4, 25))
	g1 := f.addGuideForAccount(t, uuid.New(), 2024, 4, "75.60", 20)
	g2 := f.addGuideForAccount(t, uuid.New(), 2024, 4, "75.60", 20)
	g3 := f.addGuideForAccount(t, uuid.New(), 2024, 4, "75.60", 20)

	result, err := f.svc.PayBatch(ctx, PayBatchRequest{
		GuideIDs:      []string{g1.String(), g2.String(), g3.String()},
		BankAccountID: f.bankID.String(),
	}, "")
	require.NoError(t, err, "partial success is a result, not an error")

	require.Len(t, result.Paid, 1)
	assert.Equal(t, g1.String(), result.Paid[0].GuideID)
	require.NotNil(t, result.Failure)
	assert.Equal(t, g2.String(), result.Failure.GuideID)
	assert.Equal(t, 2, result.Failure.Position)
	assert.Equal(t, "75.60", result.TotalPaid)

	// The settled prefix stays settled, the rest stays untouched.
	s1, _ := f.guides.FindByID(ctx, g1)
	s2, _ := f.guides.FindByID(ctx, g2)
	s3, _ := f.guides.FindByID(ctx, g3)
	assert.Equal(t, model.GuideStatusPaid, s1.Status)
	assert.Equal(t, model.GuideStatusPending, s2.Status)
	assert.Equal(t, model.GuideStatusPending, s3.Status)
}

func TestPayBatch_SkipsUnknownAndPaidGuides(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(t, "500.00", date(2024, 4, 25))
	paid := f.addGuide(t, 2024, 3, "75.60", 20)
	pending := f.addGuide(t, 2024, 4, "75.60", 20)

	_, err := f.svc.Pay(ctx, paid.String(), PayGuideRequest{BankAccountID: f.bankID.String(), FinalAmount: "75.60"}, "")
	require.NoError(t, err)

	ghost := uuid.NewString()
	result, err := f.svc.PayBatch(ctx, PayBatchRequest{
		GuideIDs:      []string{ghost, paid.String(), pending.String()},
		BankAccountID: f.bankID.String(),
	}, "")
	require.NoError(t, err)

	require.Len(t, result.Paid, 1)
	assert.Equal(t, pending.String(), result.Paid[0].GuideID)
	assert.ElementsMatch(t, []string{ghost, paid.String()}, result.Skipped)
	assert.Nil(t, result.Failure)
}

func TestPay_WritesAuditEntry(t *testing.T) {
	f := newPaymentFixture(t, "500.00", date(2024, 3, 10))
	guideID := f.addGuide(t, 2024, 3, "75.60", 20)
	userID := uuid.New()

	_, err := f.svc.Pay(context.Background(), guideID.String(), PayGuideRequest{
		BankAccountID: f.bankID.String(),
		FinalAmount:   "75.60",
	}, userID.String())
	require.NoError(t, err)

	require.Len(t, f.audit.logs, 1)
	entry := f.audit.logs[0]
	assert.Equal(t, model.ActionPayGuide, entry.Action)
	assert.Equal(t, guideID.String(), entry.EntityID)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, userID, *entry.UserID)
}
