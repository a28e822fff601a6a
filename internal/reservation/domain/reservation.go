package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPendingPayment Status = "PENDING_PAYMENT"
	StatusConfirmed      Status = "CONFIRMED"
	StatusCancelled      Status = "CANCELLED"
)

// Terminal reports whether the status accepts no further transitions.
func (s Status) Terminal() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

type RoomSegment string

const (
	SegmentSmall      RoomSegment = "SMALL"
	SegmentMedium     RoomSegment = "MEDIUM"
	SegmentLarge      RoomSegment = "LARGE"
	SegmentExtraLarge RoomSegment = "EXTRA_LARGE"
)

type PaymentMode string

const (
	ModeCash         PaymentMode = "CASH"
	ModeBankTransfer PaymentMode = "BANK_TRANSFER"
	ModeCreditCard   PaymentMode = "CREDIT_CARD"
)

const MaxReservationDays = 30

type Reservation struct {
	ID               string
	CustomerName     string
	RoomNumber       string
	StartDate        time.Time
	EndDate          time.Time
	RoomSegment      RoomSegment
	PaymentMode      PaymentMode
	PaymentReference string
	Status           Status
	TotalAmount      decimal.Decimal
	AmountReceived   decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewReservationID generates an 8-character reservation id, e.g. "P4145478".
func NewReservationID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "P" + strings.ToUpper(raw[:7])
}

// Nights returns the whole days between start and end.
func Nights(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

// FullyPaid reports whether the received amount covers the total.
// Over-payment counts as paid; amounts are never capped.
func (r *Reservation) FullyPaid() bool {
	return r.AmountReceived.GreaterThanOrEqual(r.TotalAmount)
}
