package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmehra2102/Room-Reservation-System/internal/reservation/application"
)

// Sweeper periodically runs the unpaid-reservation expiry sweep. The sweep
// only needs to fire at least once per day; the default cadence is much
// tighter to stay ahead of clock drift.
type Sweeper struct {
	log      *slog.Logger
	svc      *application.Service
	interval time.Duration
}

func NewSweeper(log *slog.Logger, svc *application.Service, interval time.Duration) *Sweeper {
	return &Sweeper{log: log, svc: svc, interval: interval}
}

func (s *Sweeper) Run(ctx context.Context) error {
	t := time.NewTicker(s.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("sweeper stopping")
			return nil
		case <-t.C:
			s.log.Info("running unpaid reservation sweep")
			if err := s.svc.ExpireUnpaid(ctx, time.Now().UTC()); err != nil {
				s.log.Error("sweep failed", "err", err)
			}
		}
	}
}
