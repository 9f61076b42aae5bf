package stats

import (
	"context"

	"WashroomMonitor/internal/clock"
	"WashroomMonitor/internal/washroom"
)

const (
	topUsageLimit  = 3
	latestFeedback = 4
)

// Source is the part of the record store the live rollups read.
type Source interface {
	Usages(ctx context.Context, f washroom.Filter) ([]washroom.UsageEvent, error)
	Feedbacks(ctx context.Context, f washroom.Filter) ([]washroom.FeedbackEvent, error)
}

// Service computes today's rollups on demand.
type Service struct {
	source Source
	clock  *clock.Clock
}

// NewService creates a new stats Service.
func NewService(source Source, clk *clock.Clock) *Service {
	return &Service{source: source, clock: clk}
}

func (s *Service) today() washroom.Filter {
	return washroom.Filter{Window: s.clock.Today()}
}

// AllUsages ranks every washroom used today.
func (s *Service) AllUsages(ctx context.Context) ([]UsageRank, error) {
	events, err := s.source.Usages(ctx, s.today())
	if err != nil {
		return nil, err
	}
	return RankUsage(events, 0), nil
}

// TopUsages returns the three most used washrooms today.
func (s *Service) TopUsages(ctx context.Context) ([]UsageRank, error) {
	events, err := s.source.Usages(ctx, s.today())
	if err != nil {
		return nil, err
	}
	return RankUsage(events, topUsageLimit), nil
}

// RecentFeedback returns today's four newest feedback entries.
func (s *Service) RecentFeedback(ctx context.Context) ([]FeedbackEntry, error) {
	f := s.today()
	f.NewestFirst = true
	f.Limit = latestFeedback
	events, err := s.source.Feedbacks(ctx, f)
	if err != nil {
		return nil, err
	}
	return LatestFeedback(events, latestFeedback, s.clock), nil
}

// WashroomStats summarises today's feedback per washroom.
func (s *Service) WashroomStats(ctx context.Context) ([]WashroomStat, error) {
	events, err := s.source.Feedbacks(ctx, s.today())
	if err != nil {
		return nil, err
	}
	return SummarizeFeedback(events), nil
}
