package clock

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

const (
	// Layout is the canonical stored timestamp format. Fixed width, so string order is time order.
	Layout      = "2006-01-02 15:04:05"
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"

	// NotAvailable replaces timestamps that are missing or unparsable.
	NotAvailable = "N/A"

	DefaultDisplayZone = "Asia/Kuala_Lumpur"
)

var ErrInvalidDate = errors.New("invalid date")

// naive layouts are read in the storage zone, zoned layouts carry their own offset.
var (
	naiveLayouts = []string{Layout, "2006-01-02T15:04:05", "2006-01-02 15:04:05.999999999", "2006-01-02T15:04:05.999999999"}
	zonedLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05Z07:00", "2006-01-02 15:04:05.999999999Z07:00"}
)

// Clock converts between the storage reference zone and the display zone.
type Clock struct {
	display *time.Location
	storage *time.Location
	now     func() time.Time
}

// New creates a Clock reading "now" from the system.
func New(display, storage *time.Location) *Clock {
	return &Clock{display: display, storage: storage, now: time.Now}
}

// LoadLocation resolves a zone name, treating "" and "Local" as the server zone.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

// WithNow returns a copy of c that reads the current time from now.
func (c *Clock) WithNow(now func() time.Time) *Clock {
	cp := *c
	cp.now = now
	return &cp
}

func (c *Clock) Display() *time.Location { return c.display }
func (c *Clock) Storage() *time.Location { return c.storage }

// Now is the current instant in the storage zone.
func (c *Clock) Now() time.Time {
	return c.now().In(c.storage)
}

// TodayPrefix is today's date as stored, e.g. "2024-03-01".
func (c *Clock) TodayPrefix() string {
	return c.Now().Format(DateLayout)
}

// Today is the window from today's midnight to tomorrow's midnight in the storage zone.
func (c *Clock) Today() Window {
	now := c.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.storage)
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}

// DayWindow parses "YYYY-MM-DD" and returns the 24 hours starting at its midnight.
func (c *Clock) DayWindow(date string) (Window, error) {
	start, err := time.ParseInLocation(DateLayout, strings.TrimSpace(date), c.storage)
	if err != nil {
		return Window{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, date)
	}
	return Window{Start: start, End: start.AddDate(0, 0, 1)}, nil
}

// MonthWindow parses "YYYY-MM" and returns the whole calendar month.
func (c *Clock) MonthWindow(month string) (Window, error) {
	start, err := time.ParseInLocation(MonthLayout, strings.TrimSpace(month), c.storage)
	if err != nil {
		return Window{}, fmt.Errorf("%w: %q is not YYYY-MM", ErrInvalidDate, month)
	}
	// Day 28 plus 4 days always lands in the next month; stepping back by that
	// day-of-month gives the last day of the target month.
	rollover := time.Date(start.Year(), start.Month(), 28, 0, 0, 0, 0, c.storage).AddDate(0, 0, 4)
	last := rollover.AddDate(0, 0, -rollover.Day())
	return Window{Start: start, End: last.AddDate(0, 0, 1)}, nil
}

// Parse reads a stored timestamp. Naive values are taken to be in the storage zone.
func (c *Clock) Parse(ts string) (time.Time, error) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return time.Time{}, fmt.Errorf("%w: empty timestamp", ErrInvalidDate)
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, ts, c.storage); err == nil {
			return t, nil
		}
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognised timestamp %q", ErrInvalidDate, ts)
}

// Format renders t in the display zone, or "N/A" for the zero time.
func (c *Clock) Format(t time.Time) string {
	if t.IsZero() {
		return NotAvailable
	}
	return t.In(c.display).Format(Layout)
}

// Normalize converts a stored timestamp string into its display form.
func (c *Clock) Normalize(ts string) string {
	t, err := c.Parse(ts)
	if err != nil {
		return NotAvailable
	}
	return c.Format(t)
}
