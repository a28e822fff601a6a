package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/Room-Reservation-System/internal/reservation/domain"
)

func seed(t *testing.T, repo *Repository, id string, mode domain.PaymentMode, status domain.Status, start time.Time) {
	t.Helper()
	require.NoError(t, repo.Save(context.Background(), domain.Reservation{
		ID:          id,
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 2),
		PaymentMode: mode,
		Status:      status,
		TotalAmount: decimal.RequireFromString("200.00"),
	}))
}

func TestUpdateNotFound(t *testing.T) {
	repo := NewRepository()
	err := repo.Update(context.Background(), "PXXXXXXX", func(*domain.Reservation) (bool, error) {
		t.Fatal("fn must not run for a missing id")
		return false, nil
	})
	assert.ErrorIs(t, err, domain.ErrReservationNotFound)
}

func TestUpdateSkipsWriteWhenFnDeclines(t *testing.T) {
	repo := NewRepository()
	start := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	seed(t, repo, "P0000001", domain.ModeBankTransfer, domain.StatusPendingPayment, start)

	require.NoError(t, repo.Update(context.Background(), "P0000001", func(r *domain.Reservation) (bool, error) {
		r.Status = domain.StatusCancelled
		return false, nil
	}))

	got, err := repo.FindByID(context.Background(), "P0000001")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingPayment, got.Status)
}

func TestFindPendingBankTransferBeforeFilters(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	cutoff := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)

	seed(t, repo, "P0000001", domain.ModeBankTransfer, domain.StatusPendingPayment, cutoff.AddDate(0, 0, -1))
	seed(t, repo, "P0000002", domain.ModeBankTransfer, domain.StatusConfirmed, cutoff.AddDate(0, 0, -1))
	seed(t, repo, "P0000003", domain.ModeCash, domain.StatusPendingPayment, cutoff.AddDate(0, 0, -1))
	seed(t, repo, "P0000004", domain.ModeBankTransfer, domain.StatusPendingPayment, cutoff.AddDate(0, 0, 1))

	got, err := repo.FindPendingBankTransferBefore(ctx, cutoff)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "P0000001", got[0].ID)
}
