package repository

import (
	"context"
	"errors"
	"time"

	"dascentral/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrGuideExists signals that the (account_id, year, month) uniqueness
// constraint fired on insert. Concurrent materializers racing on the same
// month treat it as "already materialized", not a failure.
var ErrGuideExists = errors.New("guide already exists for this month")

type GuideRepository interface {
	Create(ctx context.Context, guide *model.Guide) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Guide, error)
	ListYear(ctx context.Context, accountID uuid.UUID, year int) ([]model.Guide, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]model.Guide, error)
	MarkPaid(ctx context.Context, id uuid.UUID, finalAmount decimal.Decimal, paidAt time.Time) error
}

type guideRepository struct {
	db *gorm.DB
}

func NewGuideRepository(db *gorm.DB) GuideRepository {
	return &guideRepository{db: db}
}

func (r *guideRepository) Create(ctx context.Context, guide *model.Guide) error {
	if err := GetDB(ctx, r.db).Create(guide).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrGuideExists
		}
		return err
	}
	return nil
}

func (r *guideRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Guide, error) {
	var guide model.Guide
	if err := GetDB(ctx, r.db).First(&guide, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &guide, nil
}

func (r *guideRepository) ListYear(ctx context.Context, accountID uuid.UUID, year int) ([]model.Guide, error) {
	var guides []model.Guide
	err := GetDB(ctx, r.db).
		Where("account_id = ? AND year = ?", accountID, year).
		Order("month asc").
		Find(&guides).Error
	if err != nil {
		return nil, err
	}
	return guides, nil
}

func (r *guideRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]model.Guide, error) {
	var guides []model.Guide
	err := GetDB(ctx, r.db).
		Where("account_id = ?", accountID).
		Order("year asc, month asc").
		Find(&guides).Error
	if err != nil {
		return nil, err
	}
	return guides, nil
}

// MarkPaid performs the one-way PENDING -> PAID transition. The status guard
// in the WHERE clause makes re-payment a no-op at the store level; callers
// must treat zero affected rows as a terminal-state violation.
func (r *guideRepository) MarkPaid(ctx context.Context, id uuid.UUID, finalAmount decimal.Decimal, paidAt time.Time) error {
	res := GetDB(ctx, r.db).Model(&model.Guide{}).
		Where("id = ? AND status = ?", id, model.GuideStatusPending).
		Updates(map[string]interface{}{
			"status":           model.GuideStatusPaid,
			"final_paid_value": finalAmount,
			"paid_at":          paidAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// isUniqueViolation matches both GORM's translated duplicate-key error and
// the raw Postgres 23505 code surfaced through the pgx driver.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
