package main

import (
	"context"
	"net/http"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/dmehra2102/Room-Reservation-System/internal/config"
	"github.com/dmehra2102/Room-Reservation-System/internal/reservation/application"
	reshttp "github.com/dmehra2102/Room-Reservation-System/internal/reservation/infrastructure/http"
	reskafka "github.com/dmehra2102/Room-Reservation-System/internal/reservation/infrastructure/kafka"
	"github.com/dmehra2102/Room-Reservation-System/internal/reservation/infrastructure/paymentgw"
	pg "github.com/dmehra2102/Room-Reservation-System/internal/reservation/infrastructure/postgres"
	"github.com/dmehra2102/Room-Reservation-System/internal/reservation/infrastructure/scheduler"
	"github.com/dmehra2102/Room-Reservation-System/pkg/idempotency"
	"github.com/dmehra2102/Room-Reservation-System/pkg/logging"
	"github.com/dmehra2102/Room-Reservation-System/pkg/shutdown"
	"github.com/dmehra2102/Room-Reservation-System/pkg/tracing"
)

func main() {
	log := logging.New("reservation-service")
	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", "err", err)
		os.Exit(1)
	}

	tp, err := tracing.Init(ctx, "reservation-service", cfg.OTLPURL, log)
	if err != nil {
		log.Error("otel init failed", "err", err)
		os.Exit(1)
	}
	defer func() { _ = tp.Shutdown(ctx) }()

	pool, err := pg.NewPool(ctx, cfg.PGURL)
	if err != nil {
		log.Error("pg connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool); err != nil {
		log.Error("pg migrate failed", "err", err)
		os.Exit(1)
	}

	repo := pg.NewRepository(log, pool)
	pricing := application.NewPricingPolicy(cfg.PriceSmall, cfg.PriceMedium, cfg.PriceLarge, cfg.PriceExtraLarge)

	verifier := paymentgw.NewBreaker(log,
		paymentgw.NewClient(log, cfg.PaymentServiceURL, cfg.PaymentRequestTimeout),
		paymentgw.BreakerSettings{
			FailureRate:    cfg.BreakerFailureRate,
			MinRequests:    cfg.BreakerMinRequests,
			Interval:       cfg.BreakerInterval,
			RecoveryWait:   cfg.BreakerRecoveryWait,
			HalfOpenProbes: cfg.BreakerHalfOpenProbes,
		})

	svc := application.NewService(log, repo, verifier, pricing)

	redisDB := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	idem := idempotency.NewStore(redisDB, cfg.IdempotencyTTL)

	consumer := reskafka.NewConsumer(log, []string{cfg.KafkaAddr}, cfg.PaymentTopic, cfg.ConsumerGroup, svc, idem)
	go func() {
		if err := consumer.Run(ctx); err != nil {
			log.Error("consumer stopped", "err", err)
			cancel()
		}
	}()

	sweeper := scheduler.NewSweeper(log, svc, cfg.SweepInterval)
	go func() {
		if err := sweeper.Run(ctx); err != nil {
			log.Error("sweeper stopped", "err", err)
		}
	}()

	handler := reshttp.NewHandler(log, svc)
	srv := &http.Server{Addr: cfg.ListenAddr, Handler: handler.Routes()}
	go func() {
		log.Info("http listening", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server stopped", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	_ = srv.Shutdown(context.Background())
	log.Info("reservation-service shutdown")
}
