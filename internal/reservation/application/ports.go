package application

import (
	"context"
	"time"

	"github.com/dmehra2102/Room-Reservation-System/internal/reservation/domain"
)

type ReservationRepository interface {
	// Save inserts or replaces the reservation by id.
	Save(ctx context.Context, r domain.Reservation) error

	// FindByID returns domain.ErrReservationNotFound when absent.
	FindByID(ctx context.Context, id string) (domain.Reservation, error)

	// FindPendingBankTransferBefore lists PENDING_PAYMENT bank-transfer
	// reservations whose stay starts before cutoff.
	FindPendingBankTransferBefore(ctx context.Context, cutoff time.Time) ([]domain.Reservation, error)

	// Update runs fn against the current row for id with that id's
	// read-modify-write serialized against concurrent updates. fn returns
	// false to leave the row untouched (no-op outcome). Returns
	// domain.ErrReservationNotFound when absent.
	Update(ctx context.Context, id string, fn func(r *domain.Reservation) (bool, error)) error
}

type PaymentVerifier interface {
	// Verify returns nil only for a confirmed payment reference.
	Verify(ctx context.Context, paymentReference string) error
}
