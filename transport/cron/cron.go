package cron

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sitterhub/config"
	"sitterhub/infras/kafka"
	"sitterhub/infras/otel"
	bookingService "sitterhub/internal/domains/booking/service"
	"sitterhub/shared/constant"
	"sitterhub/shared/timezone"
	"syscall"
	"time"

	robfig "github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const (
	jobExpire   = "expire_stale"
	jobComplete = "complete_finished"
)

// Scheduler runs the booking sweeps. Each sweep is a single conditional UPDATE,
// so overlapping runs across replicas are harmless.
type Scheduler struct {
	config    *config.Config
	bookings  bookingService.Booking
	publisher kafka.Publisher
	otel      otel.Otel
	cron      *robfig.Cron
}

func New(cfg *config.Config, bookings bookingService.Booking, publisher kafka.Publisher, otel otel.Otel) *Scheduler {
	return &Scheduler{
		config:    cfg,
		bookings:  bookings,
		publisher: publisher,
		otel:      otel,
		cron: robfig.New(
			robfig.WithLocation(timezone.GetLocation()),
			robfig.WithChain(robfig.SkipIfStillRunning(robfig.DiscardLogger)),
		),
	}
}

// Register adds both sweeps with the configured schedules.
func (s *Scheduler) Register() error {
	if _, err := s.cron.AddFunc(s.config.Booking.ExpireSchedule, func() { s.ExpireStale(context.Background()) }); err != nil {
		return fmt.Errorf("invalid expire schedule %q: %w", s.config.Booking.ExpireSchedule, err)
	}

	if _, err := s.cron.AddFunc(s.config.Booking.CompleteSchedule, func() { s.CompleteFinished(context.Background()) }); err != nil {
		return fmt.Errorf("invalid complete schedule %q: %w", s.config.Booking.CompleteSchedule, err)
	}

	return nil
}

// ExpireStale moves requests nobody accepted within the acceptance window to EXPIRED_UNCLAIMED.
func (s *Scheduler) ExpireStale(ctx context.Context) int {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelCronScopeName, constant.OtelCronScopeName+"."+jobExpire)
	defer scope.End()

	timeout := time.Duration(s.config.Booking.AcceptanceTimeoutHours) * time.Hour
	cutoff := timezone.Now().Add(-timeout)

	ids, err := s.bookings.ExpireStale(ctx, cutoff)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("job", jobExpire).Msg("sweep failed")

		return 0
	}

	scope.SetAttribute("expired", len(ids))
	log.Info().Str("job", jobExpire).Int("count", len(ids)).Time("cutoff", cutoff).Msg("sweep finished")

	return len(ids)
}

// CompleteFinished closes accepted bookings whose stay has ended.
func (s *Scheduler) CompleteFinished(ctx context.Context) int {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelCronScopeName, constant.OtelCronScopeName+"."+jobComplete)
	defer scope.End()

	ids, err := s.bookings.CompleteFinished(ctx, timezone.Today())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("job", jobComplete).Msg("sweep failed")

		return 0
	}

	scope.SetAttribute("completed", len(ids))
	log.Info().Str("job", jobComplete).Int("count", len(ids)).Msg("sweep finished")

	return len(ids)
}

// Run blocks until SIGINT or SIGTERM, then waits for running sweeps and flushes pending events.
func (s *Scheduler) Run() {
	if err := s.Register(); err != nil {
		log.Fatal().Err(err).Msg("Failed to register sweeps")
	}

	s.cron.Start()

	log.Info().
		Str("expire", s.config.Booking.ExpireSchedule).
		Str("complete", s.config.Booking.CompleteSchedule).
		Msg("Sweeper started.")

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info().Msg("Received SIGTERM. Waiting for running sweeps.")

	<-s.cron.Stop().Done()

	if err := s.publisher.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close event publisher")
	}

	log.Info().Msg("Sweeper stopped.")
}
