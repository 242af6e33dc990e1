package service

import (
	"context"
	"sort"
	"time"

	"dascentral/internal/ledger"
	"dascentral/internal/model"
	"dascentral/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

// --- fake guide repository ---

type periodKey struct {
	account uuid.UUID
	year    int
	month   int
}

type fakeGuideRepo struct {
	guides   map[uuid.UUID]*model.Guide
	byPeriod map[periodKey]uuid.UUID
	// raceMonths simulates a concurrent materializer: the month is missing
	// from listings but inserting it trips the uniqueness constraint.
	raceMonths map[int]bool
}

func newFakeGuideRepo() *fakeGuideRepo {
	return &fakeGuideRepo{
		guides:     make(map[uuid.UUID]*model.Guide),
		byPeriod:   make(map[periodKey]uuid.UUID),
		raceMonths: make(map[int]bool),
	}
}

func (r *fakeGuideRepo) Create(_ context.Context, guide *model.Guide) error {
	key := periodKey{guide.AccountID, guide.Year, guide.Month}
	if _, exists := r.byPeriod[key]; exists || r.raceMonths[guide.Month] {
		return repository.ErrGuideExists
	}
	if guide.ID == uuid.Nil {
		guide.ID = uuid.New()
	}
	stored := *guide
	r.guides[stored.ID] = &stored
	r.byPeriod[key] = stored.ID
	return nil
}

func (r *fakeGuideRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Guide, error) {
	guide, ok := r.guides[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *guide
	return &copied, nil
}

func (r *fakeGuideRepo) ListYear(_ context.Context, accountID uuid.UUID, year int) ([]model.Guide, error) {
	var out []model.Guide
	for _, g := range r.guides {
		if g.AccountID == accountID && g.Year == year && !r.raceMonths[g.Month] {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

func (r *fakeGuideRepo) ListByAccount(_ context.Context, accountID uuid.UUID) ([]model.Guide, error) {
	var out []model.Guide
	for _, g := range r.guides {
		if g.AccountID == accountID {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out, nil
}

func (r *fakeGuideRepo) MarkPaid(_ context.Context, id uuid.UUID, finalAmount decimal.Decimal, paidAt time.Time) error {
	guide, ok := r.guides[id]
	if !ok || guide.Status != model.GuideStatusPending {
		return gorm.ErrRecordNotFound
	}
	guide.Status = model.GuideStatusPaid
	guide.FinalPaidValue = decimal.NewNullDecimal(finalAmount)
	at := paidAt
	guide.PaidAt = &at
	return nil
}

// --- fake tax config repository ---

type fakeConfigRepo struct {
	configs map[uuid.UUID]*model.TaxConfig
}

func newFakeConfigRepo() *fakeConfigRepo {
	return &fakeConfigRepo{configs: make(map[uuid.UUID]*model.TaxConfig)}
}

func (r *fakeConfigRepo) FindByAccount(_ context.Context, accountID uuid.UUID) (*model.TaxConfig, error) {
	config, ok := r.configs[accountID]
	if !ok {
		return nil, nil
	}
	copied := *config
	return &copied, nil
}

func (r *fakeConfigRepo) Upsert(_ context.Context, config *model.TaxConfig) error {
	if config.ID == uuid.Nil {
		config.ID = uuid.New()
	}
	stored := *config
	r.configs[config.AccountID] = &stored
	return nil
}

func (r *fakeConfigRepo) set(accountID uuid.UUID, baseValue string, dueDay int) {
	r.configs[accountID] = &model.TaxConfig{
		ID:        uuid.New(),
		AccountID: accountID,
		BaseValue: dec(baseValue),
		DueDay:    dueDay,
	}
}

// --- fake ledger ---

type fakeDebit struct {
	account uuid.UUID
	amount  decimal.Decimal
	memo    string
}

type fakeLedger struct {
	balances map[uuid.UUID]decimal.Decimal
	debits   []fakeDebit
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{balances: make(map[uuid.UUID]decimal.Decimal)}
}

func (l *fakeLedger) Debit(_ context.Context, bankAccountID uuid.UUID, amount decimal.Decimal, memo string) (string, error) {
	balance, ok := l.balances[bankAccountID]
	if !ok {
		return "", ledger.ErrAccountNotFound
	}
	if balance.LessThan(amount) {
		return "", ledger.ErrInsufficientFunds
	}
	l.balances[bankAccountID] = balance.Sub(amount)
	l.debits = append(l.debits, fakeDebit{account: bankAccountID, amount: amount, memo: memo})
	return uuid.NewString(), nil
}

// --- fake transaction manager ---

type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

// --- fake audit repository ---

type fakeAuditRepo struct {
	logs []model.AuditLog
}

func (r *fakeAuditRepo) Log(_ context.Context, entry *model.AuditLog) error {
	r.logs = append(r.logs, *entry)
	return nil
}

func (r *fakeAuditRepo) List(_ context.Context, page, limit int) ([]model.AuditLog, int64, error) {
	return r.logs, int64(len(r.logs)), nil
}
