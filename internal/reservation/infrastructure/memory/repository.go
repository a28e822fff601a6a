// Package memory holds an in-memory ReservationRepository used by unit tests
// and for running the service without postgres.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dmehra2102/Room-Reservation-System/internal/reservation/domain"
)

type Repository struct {
	mu   sync.Mutex
	byID map[string]domain.Reservation
}

func NewRepository() *Repository {
	return &Repository{byID: make(map[string]domain.Reservation)}
}

func (r *Repository) Save(_ context.Context, res domain.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[res.ID] = res
	return nil
}

func (r *Repository) FindByID(_ context.Context, id string) (domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.byID[id]
	if !ok {
		return domain.Reservation{}, domain.ErrReservationNotFound
	}
	return res, nil
}

func (r *Repository) FindPendingBankTransferBefore(_ context.Context, cutoff time.Time) ([]domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Reservation
	for _, res := range r.byID {
		if res.Status == domain.StatusPendingPayment &&
			res.PaymentMode == domain.ModeBankTransfer &&
			res.StartDate.Before(cutoff) {
			out = append(out, res)
		}
	}
	return out, nil
}

// Update serializes all read-modify-write cycles behind the store mutex,
// matching the per-id atomicity the postgres repository gets from row locks.
func (r *Repository) Update(_ context.Context, id string, fn func(res *domain.Reservation) (bool, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.byID[id]
	if !ok {
		return domain.ErrReservationNotFound
	}
	write, err := fn(&res)
	if err != nil {
		return err
	}
	if write {
		r.byID[id] = res
	}
	return nil
}
