package reservation

import (
	"context"
	"time"

	"cinetix/internal/shared/config"
	"cinetix/pkg/logger"
)

// Sweeper is the background safety net for lapsed holds. Holds are also
// expired lazily when a request touches them; the sweeper guarantees seats
// of untouched holds return to the pool.
type Sweeper struct {
	service  Service
	interval time.Duration
	done     chan struct{}
	log      *logger.Logger
}

// NewSweeper creates a new expiry sweeper
func NewSweeper(service Service, cfg config.ReservationConfig) *Sweeper {
	return &Sweeper{
		service:  service,
		interval: cfg.SweepInterval,
		done:     make(chan struct{}),
		log:      logger.GetDefault(),
	}
}

// Start launches the sweep loop in a goroutine
func (sw *Sweeper) Start(ctx context.Context) {
	go sw.run(ctx)
	sw.log.Info("expiry sweeper started", "interval", sw.interval.String())
}

// Stop stops the sweep loop
func (sw *Sweeper) Stop() {
	close(sw.done)
	sw.log.Info("expiry sweeper stopped")
}

func (sw *Sweeper) run(ctx context.Context) {
	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sw.sweep(ctx)
		case <-sw.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (sw *Sweeper) sweep(ctx context.Context) {
	start := time.Now()
	expired, failed, err := sw.service.SweepExpiredHolds(ctx)
	if err != nil {
		sw.log.ErrorWithContext(ctx, "expiry sweep failed", err, nil)
		return
	}

	if expired > 0 || failed > 0 {
		sw.log.LogSweepCompleted(ctx, expired, failed, time.Since(start))
	}
}
