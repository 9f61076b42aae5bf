package notification

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Scheduler periodically sends a digest of unread active problems.
type Scheduler struct {
	service  *Service
	interval time.Duration
	log      *zap.Logger
	last     string
}

// NewScheduler creates a reminder scheduler. A non-positive interval disables it.
func NewScheduler(service *Service, interval time.Duration, log *zap.Logger) *Scheduler {
	return &Scheduler{service: service, interval: interval, log: log}
}

// StartScheduler runs the reminder loop for the lifetime of the app.
func (s *Scheduler) StartScheduler(lc fx.Lifecycle) {
	if s.interval <= 0 {
		s.log.Info("reminder scheduler disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			s.log.Info("starting reminder scheduler", zap.Duration("interval", s.interval))
			ticker := time.NewTicker(s.interval)
			go func() {
				defer close(done)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						s.Tick(ctx)
					case <-ctx.Done():
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			s.log.Info("stopping reminder scheduler")
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}

// Tick sends the current digest unless it matches the one sent last time.
// It reports whether a message went out.
func (s *Scheduler) Tick(ctx context.Context) bool {
	digest, err := s.service.Digest(ctx)
	if err != nil {
		s.log.Warn("build reminder digest", zap.Error(err))
		return false
	}
	if digest == s.last {
		return false
	}
	s.last = digest
	if digest == "" {
		return false
	}

	if _, err := s.service.SendAction(ctx, digest); err != nil {
		s.log.Warn("send reminder", zap.Error(err))
		s.last = ""
		return false
	}
	return true
}
