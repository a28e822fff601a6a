package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmehra2102/Room-Reservation-System/internal/reservation/application"
	"github.com/dmehra2102/Room-Reservation-System/internal/reservation/domain"
)

const dateLayout = "2006-01-02"

type Handler struct {
	log     *slog.Logger
	service *application.Service
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		tracer:  otel.Tracer("reservation-http"),
	}
}

type createReservationReq struct {
	CustomerName     string `json:"customerName"`
	RoomNumber       string `json:"roomNumber"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	RoomSegment      string `json:"roomSegment"`
	ModeOfPayment    string `json:"modeOfPayment"`
	PaymentReference string `json:"paymentReference"`
}

type reservationResp struct {
	ReservationID string `json:"reservationId"`
	Status        string `json:"status"`
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Post("/reservations", h.createReservation)
	r.Get("/reservations/{id}", h.getReservation)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (h *Handler) createReservation(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CreateReservation")
	defer span.End()

	var req createReservationReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		http.Error(w, "invalid startDate, want YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		http.Error(w, "invalid endDate, want YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	h.log.Info("received reservation request",
		"customer", req.CustomerName, "room", req.RoomNumber, "payment_mode", req.ModeOfPayment)

	res, err := h.service.Create(ctx, application.CreateParams{
		CustomerName:     req.CustomerName,
		RoomNumber:       req.RoomNumber,
		StartDate:        start,
		EndDate:          end,
		RoomSegment:      domain.RoomSegment(req.RoomSegment),
		PaymentMode:      domain.PaymentMode(req.ModeOfPayment),
		PaymentReference: req.PaymentReference,
	})
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(reservationResp{ReservationID: res.ID, Status: string(res.Status)})
}

func (h *Handler) getReservation(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrReservationNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(reservationResp{ReservationID: res.ID, Status: string(res.Status)})
}

func statusFor(err error) int {
	switch {
	case domain.IsValidationError(err):
		return http.StatusBadRequest
	case domain.IsVerificationError(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
