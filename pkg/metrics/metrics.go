package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReservationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reservations_created_total",
		Help: "Reservations created, by payment mode and initial status.",
	}, []string{"payment_mode", "status"})

	ReservationsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reservations_cancelled_total",
		Help: "Reservations cancelled by the expiry sweep.",
	})

	PaymentsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bank_transfer_payments_applied_total",
		Help: "Bank transfer payment updates applied, by outcome.",
	}, []string{"outcome"})

	VerifierCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "credit_card_verifier_calls_total",
		Help: "Credit card verification attempts, by outcome.",
	}, []string{"outcome"})
)
