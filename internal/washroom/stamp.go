package washroom

import (
	"time"

	"WashroomMonitor/internal/clock"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Stamp holds a stored timestamp, which is either a canonical string or a BSON date.
type Stamp struct {
	Text string
	At   time.Time
}

// TextStamp wraps a canonical timestamp string.
func TextStamp(s string) Stamp { return Stamp{Text: s} }

func (s *Stamp) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	*s = Stamp{}
	switch t {
	case bsontype.String:
		s.Text = rv.StringValue()
	case bsontype.DateTime:
		s.At = rv.Time()
	}
	return nil
}

func (s Stamp) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if !s.At.IsZero() {
		return bson.MarshalValue(s.At)
	}
	return bson.MarshalValue(s.Text)
}

func (s Stamp) IsZero() bool { return s.Text == "" && s.At.IsZero() }

// Time resolves the stamp to an instant, reading naive strings in the storage zone.
func (s Stamp) Time(c *clock.Clock) (time.Time, error) {
	if !s.At.IsZero() {
		return s.At.In(c.Storage()), nil
	}
	return c.Parse(s.Text)
}

// Display renders the stamp in the display zone, or "N/A".
func (s Stamp) Display(c *clock.Clock) string {
	if !s.At.IsZero() {
		return c.Format(s.At)
	}
	return c.Normalize(s.Text)
}
