package model

import (
	"sitterhub/internal/pricing"
	"sitterhub/shared/model"
)

const (
	TableName  = "sitters"
	EntityName = "sitter"

	FieldID            = "id"
	FieldFullName      = "full_name"
	FieldEmail         = "email"
	FieldCounty        = "county"
	FieldBaseRateCents = "base_rate_cents"
	FieldActive        = "active"
)

const (
	AddonTableName  = "sitter_addons"
	AddonEntityName = "sitter_addon"

	FieldAddonSitterID = "sitter_id"
	FieldAddonPosition = "position"
)

const (
	TierTableName  = "sitter_discount_tiers"
	TierEntityName = "sitter_discount_tier"

	FieldTierSitterID = "sitter_id"
	FieldTierMinDays  = "min_days"
)

type Sitter struct {
	ID            string `db:"id"`
	FullName      string `db:"full_name"`
	Email         string `db:"email"`
	County        string `db:"county"`
	BaseRateCents int64  `db:"base_rate_cents"`
	Active        bool   `db:"active"`
	model.Metadata
}

type Addon struct {
	ID         string `db:"id"`
	SitterID   string `db:"sitter_id"`
	Name       string `db:"name"`
	PriceCents int64  `db:"price_cents"`
	Position   int    `db:"position"`
}

type DiscountTier struct {
	ID         string  `db:"id"`
	SitterID   string  `db:"sitter_id"`
	MinDays    int     `db:"min_days"`
	Percentage float64 `db:"percentage"`
}

// RateCard assembles the pricing input for a sitter.
func RateCard(sitter Sitter, addons []Addon, tiers []DiscountTier) pricing.RateCard {
	card := pricing.RateCard{
		BaseRateCents: sitter.BaseRateCents,
		Addons:        make([]pricing.Addon, len(addons)),
		DiscountTiers: make([]pricing.DiscountTier, len(tiers)),
	}

	for i, addon := range addons {
		card.Addons[i] = pricing.Addon{ID: addon.ID, Name: addon.Name, PriceCents: addon.PriceCents}
	}

	for i, tier := range tiers {
		card.DiscountTiers[i] = pricing.DiscountTier{MinDays: tier.MinDays, Percentage: tier.Percentage}
	}

	return card
}
