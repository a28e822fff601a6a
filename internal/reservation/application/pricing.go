package application

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmehra2102/Room-Reservation-System/internal/reservation/domain"
)

// PricingPolicy computes the total amount due from the room segment and the
// stay length. Rates are per night and fixed at construction.
type PricingPolicy struct {
	rates map[domain.RoomSegment]decimal.Decimal
}

func NewPricingPolicy(small, medium, large, extraLarge decimal.Decimal) PricingPolicy {
	return PricingPolicy{rates: map[domain.RoomSegment]decimal.Decimal{
		domain.SegmentSmall:      small,
		domain.SegmentMedium:     medium,
		domain.SegmentLarge:      large,
		domain.SegmentExtraLarge: extraLarge,
	}}
}

// NightlyRate returns the per-night rate for the segment. An unrecognized
// segment falls back to the SMALL rate, matching the billing behavior the
// booking channels rely on.
func (p PricingPolicy) NightlyRate(segment domain.RoomSegment) decimal.Decimal {
	if rate, ok := p.rates[segment]; ok {
		return rate
	}
	return p.rates[domain.SegmentSmall]
}

func (p PricingPolicy) Price(segment domain.RoomSegment, start, end time.Time) decimal.Decimal {
	nights := domain.Nights(start, end)
	return p.NightlyRate(segment).Mul(decimal.NewFromInt(int64(nights)))
}
