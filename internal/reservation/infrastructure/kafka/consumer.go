package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmehra2102/Room-Reservation-System/internal/reservation/application"
	"github.com/dmehra2102/Room-Reservation-System/internal/reservation/domain"
	"github.com/dmehra2102/Room-Reservation-System/pkg/idempotency"
	"github.com/dmehra2102/Room-Reservation-System/pkg/tracing"
)

// Consumer reads bank-transfer payment updates and feeds them into the
// settlement engine. Malformed payloads and messages without an extractable
// reservation id are dropped after logging; there is no dead-letter routing.
type Consumer struct {
	log    *slog.Logger
	reader *kafka.Reader
	svc    *application.Service
	idem   *idempotency.Store
	tracer trace.Tracer
}

func NewConsumer(log *slog.Logger, brokers []string, topic, group string, svc *application.Service, idem *idempotency.Store) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: group,
	})
	return &Consumer{
		log:    log,
		reader: r,
		svc:    svc,
		idem:   idem,
		tracer: otel.Tracer("bank-transfer-consumer"),
	}
}

func (c *Consumer) Run(ctx context.Context) error {
	defer c.reader.Close()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}

		key := c.idem.Key(msg.Topic, msg.Partition, msg.Offset)
		seen, err := c.idem.Seen(ctx, key)
		if err != nil {
			c.log.Error("idempotency check failed", "err", err)
			continue
		}
		if seen {
			c.log.Info("duplicate message skipped", "key", key)
			_ = c.reader.CommitMessages(ctx, msg)
			continue
		}

		c.handle(ctx, msg)
		_ = c.reader.CommitMessages(ctx, msg)
	}
}

// handle processes a single payment-update message. Every outcome commits:
// a message that cannot be applied is dropped, not retried.
func (c *Consumer) handle(ctx context.Context, msg kafka.Message) {
	msgCtx := tracing.ExtractKafkaHeaders(ctx, msg.Headers)
	msgCtx, span := c.tracer.Start(msgCtx, "ConsumeBankTransferPayment")
	defer span.End()

	var event domain.BankTransferPaymentEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.log.Error("unmarshal failed, dropping message", "err", err)
		return
	}

	reservationID := event.ReservationID()
	if reservationID == "" {
		c.log.Warn("could not extract reservation id from transaction description",
			"payment_id", event.PaymentID, "description", event.TransactionDescription)
		return
	}

	c.log.Info("processing bank transfer payment",
		"reservation_id", reservationID, "payment_id", event.PaymentID,
		"amount", event.AmountReceived.String())

	if err := c.svc.ApplyPayment(msgCtx, reservationID, event.AmountReceived); err != nil {
		c.log.Error("payment apply failed", "reservation_id", reservationID, "err", err)
	}
}
