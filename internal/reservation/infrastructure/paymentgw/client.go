package paymentgw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dmehra2102/Room-Reservation-System/internal/reservation/domain"
)

// Client verifies credit card payments against the external payment-status
// endpoint. One call is one synchronous round trip bounded by the request
// timeout; resilience lives in the Breaker wrapper.
type Client struct {
	log     *slog.Logger
	hc      *http.Client
	baseURL string
}

func NewClient(log *slog.Logger, baseURL string, timeout time.Duration) *Client {
	return &Client{
		log:     log,
		hc:      &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type statusRequest struct {
	PaymentReference string `json:"paymentReference"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func (c *Client) Verify(ctx context.Context, paymentReference string) error {
	body, err := json.Marshal(statusRequest{PaymentReference: paymentReference})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payment-status", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPaymentServiceUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", domain.ErrPaymentServiceUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		return fmt.Errorf("%w: status %d", domain.ErrPaymentReferenceNotFound, resp.StatusCode)
	}

	var out statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("%w: malformed response: %v", domain.ErrPaymentUnknownStatus, err)
	}

	c.log.Info("payment status received", "reference", paymentReference, "status", out.Status)

	switch out.Status {
	case "CONFIRMED":
		return nil
	case "REJECTED":
		return domain.ErrPaymentRejected
	default:
		return fmt.Errorf("%w: %q", domain.ErrPaymentUnknownStatus, out.Status)
	}
}
