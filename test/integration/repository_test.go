package integration

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmehra2102/Room-Reservation-System/internal/reservation/domain"
	pg "github.com/dmehra2102/Room-Reservation-System/internal/reservation/infrastructure/postgres"
	"github.com/dmehra2102/Room-Reservation-System/pkg/logging"
)

func TestPostgresRepository(t *testing.T) {
	if os.Getenv("INTEGRATION") == "" {
		t.Skip("set INTEGRATION=1 to run testcontainers-based tests")
	}

	ctx := context.Background()
	env, err := Setup(ctx)
	require.NoError(t, err)
	defer env.Teardown(ctx)

	pool, err := pg.NewPool(ctx, env.PGURL)
	require.NoError(t, err)
	defer pool.Close()
	require.NoError(t, pg.Migrate(ctx, pool))

	repo := pg.NewRepository(logging.New("test"), pool)

	res := domain.Reservation{
		ID:             domain.NewReservationID(),
		CustomerName:   "Ada Lovelace",
		RoomNumber:     "101",
		StartDate:      time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		RoomSegment:    domain.SegmentMedium,
		PaymentMode:    domain.ModeBankTransfer,
		Status:         domain.StatusPendingPayment,
		TotalAmount:    decimal.RequireFromString("600.00"),
		AmountReceived: decimal.Zero,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
	require.NoError(t, repo.Save(ctx, res))

	t.Run("find by id round trip", func(t *testing.T) {
		got, err := repo.FindByID(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, res.ID, got.ID)
		assert.True(t, got.TotalAmount.Equal(res.TotalAmount), "total %s", got.TotalAmount)
		assert.Equal(t, domain.StatusPendingPayment, got.Status)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "PXXXXXXX")
		assert.ErrorIs(t, err, domain.ErrReservationNotFound)
	})

	t.Run("pending bank transfer scan honors cutoff", func(t *testing.T) {
		got, err := repo.FindPendingBankTransferBefore(ctx, res.StartDate.Add(24*time.Hour))
		require.NoError(t, err)
		require.Len(t, got, 1)

		got, err = repo.FindPendingBankTransferBefore(ctx, res.StartDate.Add(-24*time.Hour))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("concurrent updates never drop an increment", func(t *testing.T) {
		const workers = 10
		installment := decimal.RequireFromString("10.00")

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := repo.Update(ctx, res.ID, func(r *domain.Reservation) (bool, error) {
					r.AmountReceived = r.AmountReceived.Add(installment)
					r.UpdatedAt = time.Now().UTC()
					return true, nil
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		got, err := repo.FindByID(ctx, res.ID)
		require.NoError(t, err)
		assert.True(t, got.AmountReceived.Equal(decimal.RequireFromString("100.00")),
			"received %s", got.AmountReceived)
	})
}
