package report

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"WashroomMonitor/internal/clock"
	"WashroomMonitor/internal/washroom"
)

var (
	// ErrNoData means the query matched no records; it is answered with the "No data available" message.
	ErrNoData                = errors.New("no data available")
	ErrUnsupportedReportType = errors.New("unsupported report type")
)

type DateType string

const (
	Day   DateType = "day"
	Month DateType = "month"
)

type Kind string

const (
	Usage    Kind = "usage"
	Feedback Kind = "feedback"
	Rating   Kind = "rating"
)

// Request carries the raw /report query parameters.
type Request struct {
	DateType   string `query:"dateType"`
	DateValue  string `query:"dateValue"`
	Washroom   string `query:"washroom"`
	ReportType string `query:"reportType"`
}

// Query is a validated report request.
type Query struct {
	DateType DateType
	Identity washroom.Identity
	Window   clock.Window
	Kind     Kind
}

// Parse validates r against c and resolves its date window.
func Parse(r Request, c *clock.Clock) (Query, error) {
	id, err := washroom.ParseIdentity(r.Washroom)
	if err != nil {
		return Query{}, err
	}

	q := Query{DateType: DateType(r.DateType), Identity: id}
	switch q.DateType {
	case Day:
		q.Window, err = c.DayWindow(r.DateValue)
	case Month:
		q.Window, err = c.MonthWindow(r.DateValue)
	default:
		err = fmt.Errorf("%w: unknown date type %q", clock.ErrInvalidDate, r.DateType)
	}
	if err != nil {
		return Query{}, err
	}

	switch k := Kind(r.ReportType); k {
	case Usage, Feedback, Rating:
		q.Kind = k
	default:
		return Query{}, fmt.Errorf("%w: %q", ErrUnsupportedReportType, r.ReportType)
	}
	return q, nil
}

// Filter selects the records of the query's washroom inside its window.
func (q Query) Filter() washroom.Filter {
	id := q.Identity
	return washroom.Filter{Window: q.Window, Identity: &id}
}

// CacheKey is a stable key for the query's result.
func (q Query) CacheKey() string {
	raw := fmt.Sprintf("type=%s|from=%s|until=%s|floor=%s|toilet=%s|kind=%s",
		q.DateType, q.Window.From(), q.Window.Until(), q.Identity.Floor, q.Identity.ToiletType, q.Kind)
	hash := sha256.Sum256([]byte(raw))
	return "report:" + hex.EncodeToString(hash[:])
}
