// Package pricing computes the cost of a stay from a sitter's rate card.
//
// All amounts are integer cents. ComputeCost is pure: it holds no state, performs no I/O and
// never fails on well formed input. Once a booking has been accepted its frozen cost fields are
// authoritative and callers must use Frozen instead of recomputing against a live rate card.
package pricing

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// Stay is the part of a booking the engine prices.
type Stay struct {
	StartDate time.Time
	EndDate   time.Time
	AddonIDs  []string
}

type Addon struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
}

type DiscountTier struct {
	MinDays    int     `json:"min_days"`
	Percentage float64 `json:"percentage"`
}

// RateCard is a sitter's pricing configuration.
type RateCard struct {
	BaseRateCents int64          `json:"base_rate_cents"`
	Addons        []Addon        `json:"addons"`
	DiscountTiers []DiscountTier `json:"discount_tiers"`
}

type CostBreakdown struct {
	BaseRate   int64 `json:"base_rate"`
	AddOnsCost int64 `json:"add_ons_cost"`
	Discount   int64 `json:"discount"`
	TotalCost  int64 `json:"total_cost"`
}

// Nights counts started days between start and end. A span that is not positive yields 0.
func Nights(start, end time.Time) int {
	span := end.Sub(start)
	if span <= 0 {
		return 0
	}

	return int(math.Ceil(float64(span) / float64(day)))
}

// ApplicableTier returns the tier with the greatest MinDays not exceeding nights.
func ApplicableTier(tiers []DiscountTier, nights int) (DiscountTier, bool) {
	var (
		best  DiscountTier
		found bool
	)

	for _, tier := range tiers {
		if tier.MinDays > nights {
			continue
		}

		if !found || tier.MinDays > best.MinDays {
			best = tier
			found = true
		}
	}

	return best, found
}

// AddonPrices resolves each distinct selected id against the rate card.
// Ids that do not resolve are priced at 0.
func AddonPrices(card RateCard, ids []string) map[string]int64 {
	catalog := make(map[string]int64, len(card.Addons))
	for _, addon := range card.Addons {
		catalog[addon.ID] = addon.PriceCents
	}

	prices := make(map[string]int64, len(ids))
	for _, id := range ids {
		prices[id] = catalog[id]
	}

	return prices
}

func ComputeCost(stay Stay, card RateCard) CostBreakdown {
	nights := Nights(stay.StartDate, stay.EndDate)
	base := card.BaseRateCents * int64(nights)

	var addons int64
	for _, price := range AddonPrices(card, stay.AddonIDs) {
		addons += price
	}

	var discount int64
	if tier, ok := ApplicableTier(card.DiscountTiers, nights); ok {
		discount = int64(math.Floor(float64(base) * tier.Percentage / 100))
	}

	return CostBreakdown{
		BaseRate:   base,
		AddOnsCost: addons,
		Discount:   discount,
		TotalCost:  max(base+addons-discount, 0),
	}
}

// FrozenCost is the snapshot written onto a booking at acceptance.
type FrozenCost struct {
	BaseRate   *int64
	AddOnsCost *int64
	Discount   *int64
	TotalCost  *int64
}

// Frozen returns the snapshot as a breakdown when every field is set.
func Frozen(snapshot FrozenCost) (CostBreakdown, bool) {
	if snapshot.BaseRate == nil || snapshot.AddOnsCost == nil || snapshot.Discount == nil || snapshot.TotalCost == nil {
		return CostBreakdown{}, false
	}

	return CostBreakdown{
		BaseRate:   *snapshot.BaseRate,
		AddOnsCost: *snapshot.AddOnsCost,
		Discount:   *snapshot.Discount,
		TotalCost:  *snapshot.TotalCost,
	}, true
}

// Snapshot converts a breakdown into the frozen representation.
func (c CostBreakdown) Snapshot() FrozenCost {
	return FrozenCost{
		BaseRate:   &c.BaseRate,
		AddOnsCost: &c.AddOnsCost,
		Discount:   &c.Discount,
		TotalCost:  &c.TotalCost,
	}
}
