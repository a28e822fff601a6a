package application

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dmehra2102/Room-Reservation-System/internal/reservation/domain"
)

func defaultPricing() PricingPolicy {
	return NewPricingPolicy(
		decimal.RequireFromString("100.00"),
		decimal.RequireFromString("150.00"),
		decimal.RequireFromString("200.00"),
		decimal.RequireFromString("300.00"),
	)
}

func TestPricingPerSegment(t *testing.T) {
	p := defaultPricing()
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 4) // 4 nights

	tests := []struct {
		segment domain.RoomSegment
		want    string
	}{
		{domain.SegmentSmall, "400.00"},
		{domain.SegmentMedium, "600.00"},
		{domain.SegmentLarge, "800.00"},
		{domain.SegmentExtraLarge, "1200.00"},
	}
	for _, tt := range tests {
		t.Run(string(tt.segment), func(t *testing.T) {
			got := p.Price(tt.segment, start, end)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestPricingUnknownSegmentFallsBackToSmall(t *testing.T) {
	p := defaultPricing()
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)

	got := p.Price(domain.RoomSegment("PENTHOUSE"), start, end)
	assert.True(t, got.Equal(decimal.RequireFromString("300.00")), "got %s", got)
}

func TestPricingKeepsDecimalPrecision(t *testing.T) {
	p := NewPricingPolicy(
		decimal.RequireFromString("99.99"),
		decimal.RequireFromString("150.00"),
		decimal.RequireFromString("200.00"),
		decimal.RequireFromString("300.00"),
	)
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	got := p.Price(domain.SegmentSmall, start, start.AddDate(0, 0, 30))
	assert.True(t, got.Equal(decimal.RequireFromString("2999.70")), "got %s", got)
}
