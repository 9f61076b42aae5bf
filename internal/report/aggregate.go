package report

import (
	"WashroomMonitor/internal/clock"
	"WashroomMonitor/internal/stats"
	"WashroomMonitor/internal/washroom"
)

const maxRating = 5

// Palette is the fixed chart palette; the client cycles through it.
var Palette = []string{"#FF6384", "#36A2EB", "#FFCE56", "#4BC0C0", "#9966FF", "#FF9F40"}

// Chart is the problem breakdown shape consumed by the dashboard.
type Chart struct {
	Labels          []string `json:"labels"`
	Data            []int    `json:"data"`
	Counts          []int    `json:"counts"`
	BackgroundColor []string `json:"backgroundColor"`
}

// UsageSeries buckets events by hour of day (24 slots) or day of month (one slot per day).
// Events whose timestamp cannot be read are skipped.
func UsageSeries(events []washroom.UsageEvent, q Query, c *clock.Clock) ([]int, error) {
	if len(events) == 0 {
		return nil, ErrNoData
	}

	size := 24
	if q.DateType == Month {
		size = q.Window.Days()
	}
	series := make([]int, size)
	for _, e := range events {
		t, err := e.Timestamp.Time(c)
		if err != nil {
			continue
		}
		bucket := t.Hour()
		if q.DateType == Month {
			bucket = t.Day() - 1
		}
		if bucket >= 0 && bucket < size {
			series[bucket]++
		}
	}
	return series, nil
}

// ProblemBreakdown counts problems per description, most frequent first.
func ProblemBreakdown(problems []washroom.ProblemReport) (*Chart, error) {
	if len(problems) == 0 {
		return nil, ErrNoData
	}

	tallies := stats.Count(problems, func(p washroom.ProblemReport) string { return p.Description })
	stats.RankDesc(tallies)

	chart := &Chart{
		Labels:          make([]string, 0, len(tallies)),
		Data:            make([]int, 0, len(tallies)),
		Counts:          make([]int, 0, len(tallies)),
		BackgroundColor: Palette,
	}
	for _, t := range tallies {
		chart.Labels = append(chart.Labels, t.Key)
		chart.Data = append(chart.Data, t.Count)
		chart.Counts = append(chart.Counts, t.Count)
	}
	return chart, nil
}

// RatingHistogram counts feedback per rating value 0..5. Missing or out-of-range ratings are ignored.
func RatingHistogram(events []washroom.FeedbackEvent) ([]int, error) {
	if len(events) == 0 {
		return nil, ErrNoData
	}

	hist := make([]int, maxRating+1)
	for _, e := range events {
		if e.Rating == nil || *e.Rating < 0 || *e.Rating > maxRating {
			continue
		}
		hist[*e.Rating]++
	}
	return hist, nil
}
