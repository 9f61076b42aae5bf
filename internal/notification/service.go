package notification

import (
	"context"
	"fmt"
	"strings"

	"WashroomMonitor/internal/clock"
	"WashroomMonitor/internal/metrics"
	"WashroomMonitor/internal/washroom"

	"go.uber.org/zap"
)

// Store is the part of the record store the notification feed reads and updates.
type Store interface {
	Problems(ctx context.Context, f washroom.Filter) ([]washroom.ProblemReport, error)
	MarkRead(ctx context.Context, id string) (bool, error)
}

// Service builds the problem feed and forwards action messages to the notifier.
type Service struct {
	store    Store
	notifier Notifier
	clock    *clock.Clock
	log      *zap.Logger
}

// NewService creates a new notification Service.
func NewService(store Store, notifier Notifier, clk *clock.Clock, log *zap.Logger) *Service {
	return &Service{store: store, notifier: notifier, clock: clk, log: log}
}

func (s *Service) active(ctx context.Context, newestFirst bool) ([]washroom.ProblemReport, error) {
	return s.store.Problems(ctx, washroom.Filter{
		Window:      s.clock.Today(),
		Unsolved:    true,
		NewestFirst: newestFirst,
	})
}

// ActiveProblems returns today's unsolved problems, one per description and washroom.
func (s *Service) ActiveProblems(ctx context.Context) ([]Problem, error) {
	reports, err := s.active(ctx, false)
	if err != nil {
		return nil, err
	}
	return Dedup(reports, s.clock), nil
}

// Notifications returns every unsolved problem reported today, newest first.
func (s *Service) Notifications(ctx context.Context) ([]Notification, error) {
	reports, err := s.active(ctx, true)
	if err != nil {
		return nil, err
	}
	return BuildNotifications(reports, s.clock), nil
}

// MarkRead flags each id as read and returns how many were unread before. Unknown ids are skipped.
// The first store error stops the loop; ids handled before it stay marked.
func (s *Service) MarkRead(ctx context.Context, ids []string) (int, error) {
	marked := 0
	defer func() { metrics.RecordMarkedRead(marked) }()

	for _, id := range ids {
		ok, err := s.store.MarkRead(ctx, id)
		if err != nil {
			return marked, fmt.Errorf("mark %s read: %w", id, err)
		}
		if ok {
			marked++
		}
	}
	return marked, nil
}

// SendAction delivers message to the maintenance contact.
func (s *Service) SendAction(ctx context.Context, message string) (string, error) {
	id, err := s.notifier.Send(ctx, message)
	metrics.RecordNotification(s.notifier.Channel(), err)
	if err != nil {
		return "", fmt.Errorf("send via %s: %w", s.notifier.Channel(), err)
	}
	s.log.Info("action message sent", zap.String("channel", s.notifier.Channel()), zap.String("id", id))
	return id, nil
}

// Digest summarises today's unread active problems. It is empty when there is nothing to report.
func (s *Service) Digest(ctx context.Context) (string, error) {
	reports, err := s.active(ctx, false)
	if err != nil {
		return "", err
	}
	problems := Dedup(Unread(reports), s.clock)
	if len(problems) == 0 {
		return "", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d unread washroom problem(s):", len(problems))
	for _, p := range problems {
		fmt.Fprintf(&b, "\n- %s %s: %s (%s)", p.Floor, p.ToiletType, p.Description, p.Timestamp)
	}
	return b.String(), nil
}
