package session

import (
	"context"
	"time"

	"github.com/poshanai/khana-ai-platform/pkg/logging"
)

const defaultSweepInterval = 5 * time.Minute

// SweepObserver receives the count of sessions each sweep ended or
// evicted.
type SweepObserver interface {
	ObserveSwept(n int)
}

// Sweeper periodically runs session cleanup: force-ending idle sessions
// and evicting ended ones past their grace window.
type Sweeper struct {
	manager  *Manager
	logger   *logging.Logger
	interval time.Duration
	observer SweepObserver
	stop     chan struct{}
	done     chan struct{}
}

// NewSweeper creates a sweeper over the given manager.
func NewSweeper(manager *Manager, interval time.Duration, logger *logging.Logger) *Sweeper {
	if manager == nil {
		panic("session: manager cannot be nil")
	}
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Sweeper{
		manager:  manager,
		logger:   logger,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Observe registers a sweep observer. Call before Start.
func (s *Sweeper) Observe(obs SweepObserver) {
	s.observer = obs
}

// Start launches the sweep loop in a goroutine. The loop exits when the
// context is cancelled or Stop is called.
func (s *Sweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Sweeper) run(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("session sweeper started", "interval", s.interval.String())
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case <-ticker.C:
			swept, err := s.manager.CleanupExpiredSessions(ctx)
			if err != nil {
				s.logger.Error("session sweep failed", "error", err)
				continue
			}
			if s.observer != nil {
				s.observer.ObserveSwept(swept)
			}
			if swept > 0 {
				s.logger.Info("session sweep complete", "swept", swept)
			}
		}
	}
}

// Stop signals the loop to exit and waits for it to finish.
func (s *Sweeper) Stop() {
	close(s.stop)
	<-s.done
}
