package service

import (
	"context"
	"log"
	"sync"
	"time"
)

// SweeperConfig holds configuration for the pending-investment sweeper.
type SweeperConfig struct {
	// MaxPendingAge is the age past which a pending investment can no
	// longer complete (the processor's session lifetime).
	MaxPendingAge time.Duration

	// Interval is how often the sweep runs.
	Interval time.Duration
}

// DefaultSweeperConfig returns default sweeper configuration matching
// the processor's 24h checkout session lifetime.
func DefaultSweeperConfig() SweeperConfig {
	return SweeperConfig{
		MaxPendingAge: 24 * time.Hour,
		Interval:      1 * time.Hour,
	}
}

// PendingSweeper periodically expires pending investments whose
// checkout session can no longer complete. It covers the gap where the
// completion webhook never arrives.
type PendingSweeper struct {
	investments *InvestmentService
	config      SweeperConfig
	ticker      *time.Ticker
	stopCh      chan struct{}
	stopOnce    sync.Once
	isRunning   bool
	mu          sync.Mutex
}

// NewPendingSweeper creates a sweeper over the investment service.
func NewPendingSweeper(investments *InvestmentService, config SweeperConfig) *PendingSweeper {
	if config.MaxPendingAge == 0 {
		config.MaxPendingAge = 24 * time.Hour
	}
	if config.Interval == 0 {
		config.Interval = 1 * time.Hour
	}

	return &PendingSweeper{
		investments: investments,
		config:      config,
		stopCh:      make(chan struct{}),
	}
}

// Start begins the sweep loop.
func (s *PendingSweeper) Start() {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = true
	s.ticker = time.NewTicker(s.config.Interval)
	s.mu.Unlock()

	log.Printf("[PendingSweeper] Started - Interval: %v, MaxPendingAge: %v",
		s.config.Interval, s.config.MaxPendingAge)

	go s.run()
}

func (s *PendingSweeper) run() {
	for {
		select {
		case <-s.ticker.C:
			s.sweep()
		case <-s.stopCh:
			log.Printf("[PendingSweeper] Stopped")
			return
		}
	}
}

func (s *PendingSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	expired, err := s.investments.ExpireStale(ctx, s.config.MaxPendingAge)
	if err != nil {
		log.Printf("[PendingSweeper] Error during sweep: %v", err)
		return
	}

	if expired > 0 {
		log.Printf("[PendingSweeper] Expired %d stale pending investments", expired)
	}
}

// Stop stops the sweeper.
func (s *PendingSweeper) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.stopCh)
		s.isRunning = false
	})
}

// RunNow triggers an immediate sweep.
func (s *PendingSweeper) RunNow() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	return s.investments.ExpireStale(ctx, s.config.MaxPendingAge)
}
