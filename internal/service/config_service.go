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

type SetTaxConfigRequest struct {
	BaseValue string `json:"base_value" binding:"required"` // Decimal string, e.g. "75.60"
	DueDay    int    `json:"due_day" binding:"required,min=1,max=31"`
}

type TaxConfigResponse struct {
	AccountID string `json:"account_id"`
	BaseValue string `json:"base_value"`
	DueDay    int    `json:"due_day"`
	UpdatedAt string `json:"updated_at"`
}

// --- Interface ---

// TaxConfigService manages the per-account obligation parameters. Changing
// the base value never rewrites guides that already exist; only months
// materialized afterwards pick up the new snapshot.
type TaxConfigService interface {
	GetConfig(ctx context.Context, accountID uuid.UUID) (*TaxConfigResponse, error)
	SetConfig(ctx context.Context, accountID uuid.UUID, req SetTaxConfigRequest, userID string) (TaxConfigResponse, error)
}

type taxConfigService struct {
	configRepo repository.TaxConfigRepository
	auditRepo  repository.AuditRepository
}

func NewTaxConfigService(configRepo repository.TaxConfigRepository, auditRepo repository.AuditRepository) TaxConfigService {
	return &taxConfigService{configRepo: configRepo, auditRepo: auditRepo}
}

// --- Implementation ---

// GetConfig returns nil when the account has no config yet; callers use that
// to prompt for configuration before any guide can be materialized.
func (s *taxConfigService) GetConfig(ctx context.Context, accountID uuid.UUID) (*TaxConfigResponse, error) {
	config, err := s.configRepo.FindByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tax config: %w", err)
	}
	if config == nil {
		return nil, nil
	}
	resp := toTaxConfigResponse(*config)
	return &resp, nil
}

func (s *taxConfigService) SetConfig(ctx context.Context, accountID uuid.UUID, req SetTaxConfigRequest, userID string) (TaxConfigResponse, error) {
	baseValue, err := decimal.NewFromString(req.BaseValue)
	if err != nil {
		return TaxConfigResponse{}, fmt.Errorf("invalid base_value: %w", err)
	}
	if !baseValue.IsPositive() {
		return TaxConfigResponse{}, fmt.Errorf("base_value must be greater than zero")
	}
	if req.DueDay < 1 || req.DueDay > 31 {
		return TaxConfigResponse{}, fmt.Errorf("due_day must be between 1 and 31")
	}

	config := model.TaxConfig{
		AccountID: accountID,
		BaseValue: baseValue,
		DueDay:    req.DueDay,
	}
	if err := s.configRepo.Upsert(ctx, &config); err != nil {
		return TaxConfigResponse{}, fmt.Errorf("failed to save tax config: %w", err)
	}

	s.writeAuditLog(ctx, userID, model.ActionSetTaxConfig, accountID.String(), "base "+baseValue.StringFixed(2), req)

	return toTaxConfigResponse(config), nil
}

func (s *taxConfigService) writeAuditLog(ctx context.Context, userID, action, entityID, entityName string, payload interface{}) {
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

// --- Mapping ---

func toTaxConfigResponse(c model.TaxConfig) TaxConfigResponse {
	return TaxConfigResponse{
		AccountID: c.AccountID.String(),
		BaseValue: c.BaseValue.StringFixed(2),
		DueDay:    c.DueDay,
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}
