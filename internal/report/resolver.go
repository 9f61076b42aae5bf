package report

import (
	"context"
	"time"

	"WashroomMonitor/internal/clock"
	"WashroomMonitor/internal/metrics"
	"WashroomMonitor/internal/washroom"

	"go.uber.org/zap"
)

// Source is the part of the record store reports read from.
type Source interface {
	Usages(ctx context.Context, f washroom.Filter) ([]washroom.UsageEvent, error)
	Feedbacks(ctx context.Context, f washroom.Filter) ([]washroom.FeedbackEvent, error)
	Problems(ctx context.Context, f washroom.Filter) ([]washroom.ProblemReport, error)
}

// Cache stores finished report results.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
}

// NopCache never holds anything.
type NopCache struct{}

func (NopCache) Get(context.Context, string, any) (bool, error)        { return false, nil }
func (NopCache) Set(context.Context, string, any, time.Duration) error { return nil }

// Result is either a bucketed series or a chart.
type Result struct {
	Series []int  `json:"series,omitempty"`
	Chart  *Chart `json:"chart,omitempty"`
}

// Payload is the value written to the client.
func (r Result) Payload() any {
	if r.Chart != nil {
		return r.Chart
	}
	return r.Series
}

// Resolver answers report requests. It keeps no state between requests apart from the cache.
type Resolver struct {
	source Source
	clock  *clock.Clock
	cache  Cache
	ttl    time.Duration
	log    *zap.Logger
}

// NewResolver creates a Resolver. Results of windows that have already closed are cached for ttl.
func NewResolver(source Source, clk *clock.Clock, cache Cache, ttl time.Duration, log *zap.Logger) *Resolver {
	if cache == nil {
		cache = NopCache{}
	}
	return &Resolver{source: source, clock: clk, cache: cache, ttl: ttl, log: log}
}

// Resolve validates r and builds its report. An empty match returns ErrNoData.
func (r *Resolver) Resolve(ctx context.Context, req Request) (Result, error) {
	q, err := Parse(req, r.clock)
	if err != nil {
		return Result{}, err
	}

	cacheable := r.ttl > 0 && q.Window.ClosedBefore(r.clock.Now())
	key := q.CacheKey()
	if cacheable {
		var cached Result
		hit, err := r.cache.Get(ctx, key, &cached)
		if err != nil {
			r.log.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		}
		metrics.RecordCacheLookup("report", hit)
		if hit {
			return cached, nil
		}
	}

	res, err := r.build(ctx, q)
	if err != nil {
		return Result{}, err
	}

	if cacheable {
		if err := r.cache.Set(ctx, key, res, r.ttl); err != nil {
			r.log.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return res, nil
}

func (r *Resolver) build(ctx context.Context, q Query) (Result, error) {
	switch q.Kind {
	case Usage:
		events, err := r.source.Usages(ctx, q.Filter())
		if err != nil {
			return Result{}, err
		}
		series, err := UsageSeries(events, q, r.clock)
		return Result{Series: series}, err
	case Feedback:
		problems, err := r.source.Problems(ctx, q.Filter())
		if err != nil {
			return Result{}, err
		}
		chart, err := ProblemBreakdown(problems)
		return Result{Chart: chart}, err
	case Rating:
		events, err := r.source.Feedbacks(ctx, q.Filter())
		if err != nil {
			return Result{}, err
		}
		hist, err := RatingHistogram(events)
		return Result{Series: hist}, err
	}
	return Result{}, ErrUnsupportedReportType
}
