package clock

import "time"

// Window is the half-open interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// From is the inclusive lower bound in canonical form.
func (w Window) From() string { return w.Start.Format(Layout) }

// Until is the exclusive upper bound in canonical form.
func (w Window) Until() string { return w.End.Format(Layout) }

// Contains compares canonical timestamp strings against the bounds.
func (w Window) Contains(ts string) bool {
	return ts >= w.From() && ts < w.Until()
}

// Days counts the calendar days covered by the window.
func (w Window) Days() int {
	n := 0
	for d := w.Start; d.Before(w.End); d = d.AddDate(0, 0, 1) {
		n++
	}
	return n
}

// ClosedBefore reports whether the whole window lies before t.
func (w Window) ClosedBefore(t time.Time) bool {
	return !w.End.After(t)
}
