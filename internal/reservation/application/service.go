package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmehra2102/Room-Reservation-System/internal/reservation/domain"
	"github.com/dmehra2102/Room-Reservation-System/pkg/metrics"
)

// Service is the settlement engine: it owns reservation creation, payment
// application and the expiry sweep across the three payment modes.
type Service struct {
	log      *slog.Logger
	repo     ReservationRepository
	verifier PaymentVerifier
	pricing  PricingPolicy
}

func NewService(log *slog.Logger, repo ReservationRepository, verifier PaymentVerifier, pricing PricingPolicy) *Service {
	return &Service{log: log, repo: repo, verifier: verifier, pricing: pricing}
}

type CreateParams struct {
	CustomerName     string
	RoomNumber       string
	StartDate        time.Time
	EndDate          time.Time
	RoomSegment      domain.RoomSegment
	PaymentMode      domain.PaymentMode
	PaymentReference string
}

// Create builds and persists a reservation. Nothing is persisted on any
// failure path, including credit-card verification failures.
func (s *Service) Create(ctx context.Context, p CreateParams) (domain.Reservation, error) {
	if err := validateDuration(p.StartDate, p.EndDate); err != nil {
		return domain.Reservation{}, err
	}

	now := time.Now().UTC()
	r := domain.Reservation{
		ID:               domain.NewReservationID(),
		CustomerName:     p.CustomerName,
		RoomNumber:       p.RoomNumber,
		StartDate:        p.StartDate,
		EndDate:          p.EndDate,
		RoomSegment:      p.RoomSegment,
		PaymentMode:      p.PaymentMode,
		PaymentReference: p.PaymentReference,
		TotalAmount:      s.pricing.Price(p.RoomSegment, p.StartDate, p.EndDate),
		AmountReceived:   decimal.Zero,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	switch p.PaymentMode {
	case domain.ModeCash:
		r.Status = domain.StatusConfirmed
		r.AmountReceived = r.TotalAmount
		s.log.Info("cash payment, reservation confirmed immediately", "reservation_id", r.ID)

	case domain.ModeCreditCard:
		if p.PaymentReference == "" {
			return domain.Reservation{}, domain.ErrMissingReference
		}
		if err := s.verifier.Verify(ctx, p.PaymentReference); err != nil {
			s.log.Error("credit card verification failed", "reservation_id", r.ID, "err", err)
			return domain.Reservation{}, err
		}
		r.Status = domain.StatusConfirmed
		r.AmountReceived = r.TotalAmount
		s.log.Info("credit card payment confirmed", "reservation_id", r.ID)

	case domain.ModeBankTransfer:
		r.Status = domain.StatusPendingPayment
		s.log.Info("bank transfer, reservation pending payment", "reservation_id", r.ID)

	default:
		return domain.Reservation{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedMode, p.PaymentMode)
	}

	if err := s.repo.Save(ctx, r); err != nil {
		return domain.Reservation{}, err
	}
	metrics.ReservationsCreated.WithLabelValues(string(r.PaymentMode), string(r.Status)).Inc()
	return r, nil
}

// Get returns the reservation for id.
func (s *Service) Get(ctx context.Context, id string) (domain.Reservation, error) {
	return s.repo.FindByID(ctx, id)
}

// ApplyPayment accumulates a bank-transfer installment onto the reservation
// and confirms it once the total is covered. Unknown ids and reservations no
// longer pending are expected races (late or duplicate delivery) and are
// absorbed here: logged, not returned as errors.
func (s *Service) ApplyPayment(ctx context.Context, id string, amount decimal.Decimal) error {
	err := s.repo.Update(ctx, id, func(r *domain.Reservation) (bool, error) {
		if r.Status != domain.StatusPendingPayment {
			s.log.Warn("reservation not pending payment, ignoring payment update",
				"reservation_id", id, "status", string(r.Status))
			metrics.PaymentsApplied.WithLabelValues("ignored").Inc()
			return false, nil
		}

		r.AmountReceived = r.AmountReceived.Add(amount)
		r.UpdatedAt = time.Now().UTC()
		if r.FullyPaid() {
			r.Status = domain.StatusConfirmed
			s.log.Info("reservation confirmed, full payment received",
				"reservation_id", id, "received", r.AmountReceived.String())
			metrics.PaymentsApplied.WithLabelValues("confirmed").Inc()
		} else {
			s.log.Info("partial payment received",
				"reservation_id", id, "total", r.TotalAmount.String(), "received", r.AmountReceived.String())
			metrics.PaymentsApplied.WithLabelValues("partial").Inc()
		}
		return true, nil
	})
	if errors.Is(err, domain.ErrReservationNotFound) {
		s.log.Warn("reservation not found for payment update", "reservation_id", id)
		metrics.PaymentsApplied.WithLabelValues("not_found").Inc()
		return nil
	}
	return err
}

// ExpireUnpaid cancels bank-transfer reservations still short of full payment
// with a stay starting within two days of now. A failure on one reservation
// does not stop the sweep; re-running against the same data is a no-op.
func (s *Service) ExpireUnpaid(ctx context.Context, now time.Time) error {
	cutoff := now.Add(48 * time.Hour)
	pending, err := s.repo.FindPendingBankTransferBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("list pending bank transfers: %w", err)
	}

	for _, res := range pending {
		err := s.repo.Update(ctx, res.ID, func(r *domain.Reservation) (bool, error) {
			if r.Status != domain.StatusPendingPayment {
				return false, nil
			}
			// Re-checked under the row lock: a payment update may have landed
			// between the scan and here.
			if r.FullyPaid() {
				return false, nil
			}
			r.Status = domain.StatusCancelled
			r.UpdatedAt = time.Now().UTC()
			s.log.Info("cancelled reservation, payment not received 2 days before start date",
				"reservation_id", r.ID, "required", r.TotalAmount.String(), "received", r.AmountReceived.String())
			metrics.ReservationsCancelled.Inc()
			return true, nil
		})
		if err != nil {
			s.log.Error("expiry cancel failed", "reservation_id", res.ID, "err", err)
		}
	}
	return nil
}

func validateDuration(start, end time.Time) error {
	if !start.Before(end) {
		return fmt.Errorf("%w: start date must be before end date", domain.ErrInvalidDuration)
	}
	if days := domain.Nights(start, end); days > domain.MaxReservationDays {
		return fmt.Errorf("%w: cannot exceed %d days, requested %d",
			domain.ErrInvalidDuration, domain.MaxReservationDays, days)
	}
	return nil
}
