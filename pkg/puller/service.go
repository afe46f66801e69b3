package puller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// MinInterval keeps the polling loop under the API's per-key rate limit
const MinInterval = time.Second

// pullTimeout bounds one ListDevices call plus publishing
const pullTimeout = 2 * time.Minute

// Service periodically lists devices and hands each one to every publisher
type Service struct {
	source   DeviceLister
	registry *PublisherRegistry
	interval time.Duration
	logger   *slog.Logger

	started  atomic.Bool
	stopChan chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewService creates a new Service
func NewService(source DeviceLister, registry *PublisherRegistry, interval time.Duration, logger *slog.Logger) *Service {
	if interval < MinInterval {
		interval = MinInterval
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		source:   source,
		registry: registry,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Interval returns the effective polling interval
func (s *Service) Interval() time.Duration {
	return s.interval
}

// Start begins the periodic pulling service
func (s *Service) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	go s.run()
	s.logger.Info("puller service started", "interval", s.interval)
}

// Stop halts the pulling service and waits for an in-flight pull to finish
func (s *Service) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
	if !s.started.Load() {
		return
	}
	<-s.done
	s.logger.Info("puller service stopped")
}

// run executes the pulling loop
func (s *Service) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Pull immediately on start
	s.pullWithTimeout()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.pullWithTimeout()
		}
	}
}

func (s *Service) pullWithTimeout() {
	ctx, cancel := context.WithTimeout(context.Background(), pullTimeout)
	defer cancel()

	// cancel the pull when Stop is called
	go func() {
		select {
		case <-s.stopChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := s.PullOnce(ctx); err != nil {
		s.logger.Error("pull failed", "error", err)
	}
}

// PullOnce lists devices and publishes each to all registered publishers.
// Publisher failures are logged and counted; they do not stop the others.
func (s *Service) PullOnce(ctx context.Context) error {
	devices, err := s.source.ListDevices(ctx)
	if err != nil {
		return fmt.Errorf("failed to list devices: %w", err)
	}

	if len(devices) == 0 {
		s.logger.Warn("no devices returned by ambient weather")
		return nil
	}

	publishers := s.registry.All()
	failures := 0
	for _, device := range devices {
		for _, p := range publishers {
			if err := p.Publish(ctx, device); err != nil {
				failures++
				s.logger.Error("publish failed",
					"publisher", p.Name(),
					"mac", device.MacAddress,
					"error", err,
				)
			}
		}
	}

	s.logger.Info("pulled devices",
		"devices", len(devices),
		"publishers", len(publishers),
		"failures", failures,
	)

	return nil
}
