package stats

import (
	"slices"
	"time"

	"WashroomMonitor/internal/clock"
	"WashroomMonitor/internal/washroom"
)

// UsageRank is one row of the live usage ranking.
type UsageRank struct {
	Washroom   string `json:"washroom"`
	TotalUsage int    `json:"totalUsage"`
}

// WashroomStat summarises one washroom's feedback for the day.
type WashroomStat struct {
	Floor         string  `json:"floor"`
	ToiletType    string  `json:"toiletType"`
	TotalFeedback int     `json:"totalFeedback"`
	OverallRating float64 `json:"overallRating"`
}

// FeedbackEntry is one row of the latest-feedback list. Rating is "N/A" when absent.
type FeedbackEntry struct {
	Time     string `json:"time"`
	Washroom string `json:"washroom"`
	Rating   any    `json:"rating"`
}

// RankUsage counts events per washroom, most used first, keeping at most limit rows (0 = all).
func RankUsage(events []washroom.UsageEvent, limit int) []UsageRank {
	tallies := Count(events, washroom.UsageEvent.Identity)
	RankDesc(tallies)
	tallies = Top(tallies, limit)

	out := make([]UsageRank, 0, len(tallies))
	for _, t := range tallies {
		out = append(out, UsageRank{Washroom: t.Key.String(), TotalUsage: t.Count})
	}
	return out
}

// SummarizeFeedback counts feedback per washroom and averages the ratings that are present.
func SummarizeFeedback(events []washroom.FeedbackEvent) []WashroomStat {
	type ratingSum struct{ n, sum int }
	rated := make(map[washroom.Identity]ratingSum)
	for _, e := range events {
		if e.Rating == nil {
			continue
		}
		r := rated[e.Identity()]
		r.n++
		r.sum += *e.Rating
		rated[e.Identity()] = r
	}

	tallies := Count(events, washroom.FeedbackEvent.Identity)
	out := make([]WashroomStat, 0, len(tallies))
	for _, t := range tallies {
		var mean float64
		if r := rated[t.Key]; r.n > 0 {
			mean = float64(r.sum) / float64(r.n)
		}
		out = append(out, WashroomStat{
			Floor:         t.Key.Floor,
			ToiletType:    t.Key.ToiletType,
			TotalFeedback: t.Count,
			OverallRating: RoundRating(mean),
		})
	}
	return out
}

// LatestFeedback returns the n most recent feedback events, newest first.
func LatestFeedback(events []washroom.FeedbackEvent, n int, c *clock.Clock) []FeedbackEntry {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b washroom.FeedbackEvent) int {
		return instant(b.Timestamp, c).Compare(instant(a.Timestamp, c))
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}

	out := make([]FeedbackEntry, 0, len(sorted))
	for _, e := range sorted {
		var rating any = "N/A"
		if e.Rating != nil {
			rating = *e.Rating
		}
		out = append(out, FeedbackEntry{
			Time:     e.Timestamp.Display(c),
			Washroom: orDefault(e.Floor, "N/A") + " " + orDefault(e.ToiletType, "UNKNOWN"),
			Rating:   rating,
		})
	}
	return out
}

func instant(s washroom.Stamp, c *clock.Clock) time.Time {
	t, err := s.Time(c)
	if err != nil {
		return time.Time{}
	}
	return t
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
