package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// BankTransferPaymentEvent is the payment-update message consumed from the
// bank-transfer topic. The reservation id is embedded in the transaction
// description, not carried as its own field.
type BankTransferPaymentEvent struct {
	PaymentID              string          `json:"paymentId"`
	DebtorAccountNumber    string          `json:"debtorAccountNumber"`
	AmountReceived         decimal.Decimal `json:"amountReceived"`
	TransactionDescription string          `json:"transactionDescription"`
}

// ExtractReservationID pulls the reservation id out of a transaction
// description of the form `<10-char transaction token> <8-char id>`,
// e.g. "1401541457 P4145478". Returns "" when the description is too short
// or the id field is blank; the id's shape is not validated further.
func ExtractReservationID(description string) string {
	if len(description) < 19 {
		return ""
	}
	return strings.TrimSpace(description[11:19])
}

func (e BankTransferPaymentEvent) ReservationID() string {
	return ExtractReservationID(e.TransactionDescription)
}
