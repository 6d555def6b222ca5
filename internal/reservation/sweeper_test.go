package reservation

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"cinetix/internal/shared/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// countingService stubs the Service so the loop itself can be observed
type countingService struct {
	Service
	sweeps atomic.Int64
}

func (s *countingService) SweepExpiredHolds(ctx context.Context) (int, int, error) {
	s.sweeps.Add(1)
	return 0, 0, nil
}

func TestSweeperRunsPeriodically(t *testing.T) {
	svc := &countingService{}
	sweeper := NewSweeper(svc, config.ReservationConfig{SweepInterval: 10 * time.Millisecond})

	sweeper.Start(context.Background())
	defer sweeper.Stop()

	assert.Eventually(t, func() bool {
		return svc.sweeps.Load() >= 3
	}, time.Second, 5*time.Millisecond)
}

func TestSweeperStopHaltsTheLoop(t *testing.T) {
	svc := &countingService{}
	sweeper := NewSweeper(svc, config.ReservationConfig{SweepInterval: 10 * time.Millisecond})

	sweeper.Start(context.Background())
	time.Sleep(50 * time.Millisecond)
	sweeper.Stop()

	after := svc.sweeps.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, svc.sweeps.Load())
}

func TestSweeperHonorsContextCancellation(t *testing.T) {
	svc := &countingService{}
	sweeper := NewSweeper(svc, config.ReservationConfig{SweepInterval: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	sweeper.Start(ctx)
	time.Sleep(50 * time.Millisecond)
	cancel()

	after := svc.sweeps.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, svc.sweeps.Load())
}

func TestSweeperExpiresLapsedHoldsEndToEnd(t *testing.T) {
	env := newTestEnv(t, nil)
	hold := env.createHold(t, env.seatA)
	env.repo.setHoldExpiry(uuid.MustParse(hold.ID), time.Now().Add(-time.Minute))

	sweeper := NewSweeper(env.service, config.ReservationConfig{SweepInterval: 10 * time.Millisecond})
	sweeper.Start(context.Background())
	defer sweeper.Stop()

	assert.Eventually(t, func() bool {
		current, err := env.repo.GetByID(context.Background(), uuid.MustParse(hold.ID))
		return err == nil && current.Status == StatusExpired
	}, time.Second, 5*time.Millisecond)
}
