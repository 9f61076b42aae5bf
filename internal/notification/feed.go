package notification

import (
	"slices"
	"time"

	"WashroomMonitor/internal/clock"
	"WashroomMonitor/internal/washroom"
)

const unknownToiletType = "UNKNOWN"

type problemKey struct {
	description string
	floor       string
	toiletType  string
}

// Dedup keeps the first report of every (description, floor, toiletType) triple in input order.
// Missing fields are defaulted before comparing, so a blank description equals "N/A".
func Dedup(reports []washroom.ProblemReport, c *clock.Clock) []Problem {
	seen := make(map[problemKey]struct{}, len(reports))
	out := make([]Problem, 0, len(reports))
	for _, p := range reports {
		k := problemKey{
			description: orDefault(p.Description, clock.NotAvailable),
			floor:       orDefault(p.Floor, clock.NotAvailable),
			toiletType:  orDefault(p.ToiletType, unknownToiletType),
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, Problem{
			ID:          p.ID.String(),
			Description: k.description,
			Floor:       k.floor,
			ToiletType:  k.toiletType,
			Timestamp:   p.Timestamp.Display(c),
			Solved:      p.Solved,
		})
	}
	return out
}

// BuildNotifications lists every report newest first. Reports with equal timestamps keep their input order.
func BuildNotifications(reports []washroom.ProblemReport, c *clock.Clock) []Notification {
	sorted := slices.Clone(reports)
	slices.SortStableFunc(sorted, func(a, b washroom.ProblemReport) int {
		return instant(b, c).Compare(instant(a, c))
	})

	out := make([]Notification, 0, len(sorted))
	for _, p := range sorted {
		out = append(out, Notification{
			ID:          p.ID.String(),
			Description: orDefault(p.Description, clock.NotAvailable),
			Floor:       orDefault(p.Floor, clock.NotAvailable),
			ToiletType:  orDefault(p.ToiletType, clock.NotAvailable),
			Timestamp:   p.Timestamp.Display(c),
			Read:        p.Read,
		})
	}
	return out
}

// Unread drops reports that have already been read.
func Unread(reports []washroom.ProblemReport) []washroom.ProblemReport {
	out := make([]washroom.ProblemReport, 0, len(reports))
	for _, p := range reports {
		if !p.Read {
			out = append(out, p)
		}
	}
	return out
}

// instant orders unparsable timestamps last.
func instant(p washroom.ProblemReport, c *clock.Clock) time.Time {
	t, err := p.Timestamp.Time(c)
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
