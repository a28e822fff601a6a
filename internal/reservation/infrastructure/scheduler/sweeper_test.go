package scheduler

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/Room-Reservation-System/internal/reservation/application"
	"github.com/dmehra2102/Room-Reservation-System/internal/reservation/domain"
	"github.com/dmehra2102/Room-Reservation-System/internal/reservation/infrastructure/memory"
)

type noopVerifier struct{}

func (noopVerifier) Verify(context.Context, string) error { return nil }

func TestSweeperCancelsOverdueReservation(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := memory.NewRepository()
	pricing := application.NewPricingPolicy(
		decimal.RequireFromString("100.00"),
		decimal.RequireFromString("150.00"),
		decimal.RequireFromString("200.00"),
		decimal.RequireFromString("300.00"),
	)
	svc := application.NewService(log, repo, noopVerifier{}, pricing)

	start := time.Now().UTC().Add(24 * time.Hour) // inside the 2-day window
	require.NoError(t, repo.Save(context.Background(), domain.Reservation{
		ID:             "P1234567",
		CustomerName:   "c",
		RoomNumber:     "1",
		StartDate:      start,
		EndDate:        start.AddDate(0, 0, 2),
		RoomSegment:    domain.SegmentSmall,
		PaymentMode:    domain.ModeBankTransfer,
		Status:         domain.StatusPendingPayment,
		TotalAmount:    decimal.RequireFromString("200.00"),
		AmountReceived: decimal.Zero,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	s := NewSweeper(log, svc, 10*time.Millisecond)
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	assert.Eventually(t, func() bool {
		r, err := repo.FindByID(context.Background(), "P1234567")
		return err == nil && r.Status == domain.StatusCancelled
	}, time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
