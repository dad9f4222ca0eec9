package watch

import (
	"context"
	"time"

	"github.com/entrhq/prioritywatch/pkg/logging"
)

// Poller is a single suspend-capable check.
type Poller interface {
	Run(ctx context.Context) bool
}

// Scheduler runs a Poller on a fixed interval until it reports success.
type Scheduler struct {
	poller   Poller
	interval time.Duration
	wait     func(ctx context.Context, d time.Duration) error
	log      *logging.Logger
	attempts int
}

// NewScheduler creates a scheduler that waits interval between failed polls.
func NewScheduler(poller Poller, interval time.Duration) *Scheduler {
	return &Scheduler{
		poller:   poller,
		interval: interval,
		wait:     sleep,
		log:      logging.MustNew("scheduler"),
	}
}

// Run polls until the poller reports success and then returns nil. There is
// no retry limit and no backoff. A cancelled context stops the loop between
// polls (never during one) and Run returns the context error.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.attempts++
		s.log.Infof("checking for super priority service (attempt %d)...", s.attempts)

		if s.poller.Run(ctx) {
			s.log.Infof("super priority service found after %d attempt(s)", s.attempts)
			return nil
		}

		s.log.Infof("waiting %s before next check...", s.interval)
		if err := s.wait(ctx, s.interval); err != nil {
			s.log.Infof("stopping before attempt %d: %v", s.attempts+1, err)
			return err
		}
	}
}

// Attempts returns how many polls have run.
func (s *Scheduler) Attempts() int {
	return s.attempts
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
