package paymentgw

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/dmehra2102/Room-Reservation-System/internal/reservation/application"
	"github.com/dmehra2102/Room-Reservation-System/internal/reservation/domain"
	"github.com/dmehra2102/Room-Reservation-System/pkg/metrics"
)

type BreakerSettings struct {
	// FailureRate trips the breaker once failures/requests reaches this
	// ratio within one counting interval (MinRequests observed first).
	FailureRate    float64
	MinRequests    uint32
	Interval       time.Duration
	RecoveryWait   time.Duration
	HalfOpenProbes uint32
}

// Breaker wraps a verifier with a closed/open/half-open circuit breaker.
// While open, calls fail with ErrPaymentServiceUnavailable without touching
// the network; after RecoveryWait a limited number of probe calls is let
// through.
type Breaker struct {
	inner application.PaymentVerifier
	cb    *gobreaker.CircuitBreaker[struct{}]
}

func NewBreaker(log *slog.Logger, inner application.PaymentVerifier, s BreakerSettings) *Breaker {
	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "credit-card-verifier",
		MaxRequests: s.HalfOpenProbes,
		Interval:    s.Interval,
		Timeout:     s.RecoveryWait,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.Requests >= s.MinRequests &&
				float64(c.TotalFailures)/float64(c.Requests) >= s.FailureRate
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
		},
	})
	return &Breaker{inner: inner, cb: cb}
}

func (b *Breaker) Verify(ctx context.Context, paymentReference string) error {
	_, err := b.cb.Execute(func() (struct{}, error) {
		return struct{}{}, b.inner.Verify(ctx, paymentReference)
	})
	switch {
	case err == nil:
		metrics.VerifierCalls.WithLabelValues("confirmed").Inc()
		return nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.VerifierCalls.WithLabelValues("short_circuited").Inc()
		return fmt.Errorf("%w: circuit breaker open", domain.ErrPaymentServiceUnavailable)
	default:
		metrics.VerifierCalls.WithLabelValues("failed").Inc()
		return err
	}
}
