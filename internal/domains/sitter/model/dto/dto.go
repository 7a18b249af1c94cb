package dto

import (
	"sitterhub/internal/domains/sitter/model"
	"sitterhub/internal/pricing"
	"sitterhub/shared"
	gDto "sitterhub/shared/dto"

	"github.com/google/uuid"
)

type SitterResponse struct {
	ID            string `json:"id"`
	FullName      string `json:"full_name"`
	County        string `json:"county"`
	BaseRateCents int64  `json:"base_rate_cents"`
	Active        bool   `json:"active"`
	gDto.Metadata
}

func (r *SitterResponse) FromModel(mod model.Sitter) {
	r.ID = mod.ID
	r.FullName = mod.FullName
	r.County = mod.County
	r.BaseRateCents = mod.BaseRateCents
	r.Active = mod.Active
	r.Metadata.FromModel(mod.Metadata)
}

type GetSittersResponse struct {
	Sitters   []SitterResponse `json:"sitters"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetSittersResponse) FromModels(models []model.Sitter, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Sitters = make([]SitterResponse, len(models))
	for i, mod := range models {
		r.Sitters[i].FromModel(mod)
	}
}

type RateCardResponse struct {
	SitterID string `json:"sitter_id"`
	pricing.RateCard
}

type DiscountTierRequest struct {
	MinDays    int     `json:"min_days"   validate:"required,gte=1"`
	Percentage float64 `json:"percentage" validate:"gte=0,lte=100"`
}

// UpdateRateCardRequest changes pricing for future quotes and acceptances only.
// Tiers, when present, replace the existing set.
type UpdateRateCardRequest struct {
	BaseRateCents *int64                 `db:"base_rate_cents" json:"base_rate_cents" validate:"omitempty,gte=0"`
	DiscountTiers *[]DiscountTierRequest `json:"discount_tiers"  validate:"omitempty,unique=MinDays,dive"`
}

func (r *UpdateRateCardRequest) IsEmpty() bool {
	return r.BaseRateCents == nil && r.DiscountTiers == nil
}

// ToTierModels returns nil when the tiers are left unchanged.
func (r *UpdateRateCardRequest) ToTierModels(sitterID string) []model.DiscountTier {
	if r.DiscountTiers == nil {
		return nil
	}

	tiers := make([]model.DiscountTier, len(*r.DiscountTiers))
	for i, tier := range *r.DiscountTiers {
		tiers[i] = model.DiscountTier{
			ID:         uuid.NewString(),
			SitterID:   sitterID,
			MinDays:    tier.MinDays,
			Percentage: tier.Percentage,
		}
	}

	return tiers
}
