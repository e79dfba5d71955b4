// Package worker holds the client's time-driven tasks. Each worker is a
// cancellable scheduled task owned by whoever starts it and torn down
// explicitly, never a loose timer.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/robaa12/mawid-client/internal/domain"
	"github.com/robaa12/mawid-client/pkg/logger"
)

// RecentEventsSource is the slice of the event API the worker needs
type RecentEventsSource interface {
	Recent(ctx context.Context, pageSize int) (domain.EventPage, error)
}

// RecentEventsConfig contains configuration for the recent-events refresher
type RecentEventsConfig struct {
	// Interval between refreshes.
	Interval time.Duration
	// PageSize requested per refresh.
	PageSize int
}

// DefaultRecentEventsConfig returns default configuration
func DefaultRecentEventsConfig() *RecentEventsConfig {
	return &RecentEventsConfig{
		Interval: 60 * time.Second,
		PageSize: 12,
	}
}

// RecentEventsWorker periodically refreshes the recent-events page and hands
// each result to the subscriber. A failed refresh keeps the previous data;
// the next tick tries again.
type RecentEventsWorker struct {
	events   RecentEventsSource
	config   *RecentEventsConfig
	onUpdate func(domain.EventPage)
	log      *logger.Logger

	stopCh  chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

// NewRecentEventsWorker creates a recent-events refresher
func NewRecentEventsWorker(events RecentEventsSource, config *RecentEventsConfig, onUpdate func(domain.EventPage)) *RecentEventsWorker {
	if config == nil {
		config = DefaultRecentEventsConfig()
	}
	return &RecentEventsWorker{
		events:   events,
		config:   config,
		onUpdate: onUpdate,
		log:      logger.Get(),
	}
}

// Start starts the refresh loop
func (w *RecentEventsWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New("recent events worker already running")
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.mu.Unlock()

	w.log.Debug("starting recent events worker",
		zap.Duration("interval", w.config.Interval),
		zap.Int("page_size", w.config.PageSize))

	w.wg.Add(1)
	go w.refreshLoop(ctx)
	return nil
}

// Stop stops the refresh loop; safe to call when not running
func (w *RecentEventsWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	w.mu.Unlock()
	w.wg.Wait()
}

func (w *RecentEventsWorker) refreshLoop(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	// Run immediately on start
	w.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *RecentEventsWorker) refresh(ctx context.Context) {
	page, err := w.events.Recent(ctx, w.config.PageSize)
	if err != nil {
		w.log.Warn("recent events refresh failed", zap.Error(err))
		return
	}
	if w.onUpdate != nil {
		w.onUpdate(page)
	}
}
