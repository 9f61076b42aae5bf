package washroom

// UsageEvent is one recorded visit to a washroom.
type UsageEvent struct {
	Floor      string `bson:"floor"`
	ToiletType string `bson:"toiletType"`
	Timestamp  Stamp  `bson:"timestamp"`
}

// FeedbackEvent is a 0-5 rating left by a visitor. Rating is nil when the record has none.
type FeedbackEvent struct {
	Floor      string `bson:"floor"`
	ToiletType string `bson:"toiletType"`
	Rating     *int   `bson:"rating,omitempty"`
	Timestamp  Stamp  `bson:"timestamp"`
}

// ProblemReport is a detected or reported problem. Read only ever goes false -> true.
type ProblemReport struct {
	ID          DocID  `bson:"_id,omitempty"`
	Description string `bson:"description"`
	Floor       string `bson:"floor"`
	ToiletType  string `bson:"toiletType"`
	Timestamp   Stamp  `bson:"timestamp"`
	Solved      bool   `bson:"solved"`
	Read        bool   `bson:"read"`
}

// Config is one configured washroom.
type Config struct {
	ID         DocID  `bson:"_id,omitempty"`
	Floor      string `bson:"floor"`
	ToiletType string `bson:"toiletType"`
}

func (e UsageEvent) Identity() Identity    { return Identity{Floor: e.Floor, ToiletType: e.ToiletType} }
func (e FeedbackEvent) Identity() Identity { return Identity{Floor: e.Floor, ToiletType: e.ToiletType} }
func (p ProblemReport) Identity() Identity { return Identity{Floor: p.Floor, ToiletType: p.ToiletType} }
func (c Config) Identity() Identity        { return Identity{Floor: c.Floor, ToiletType: c.ToiletType} }

// ConfigResponse is the /configurations item.
type ConfigResponse struct {
	ID         string `json:"id"`
	ToiletType string `json:"toiletType"`
	Floor      string `json:"floor"`
}

// WashroomResponse is the /washrooms item.
type WashroomResponse struct {
	Floor      string `json:"floor"`
	ToiletType string `json:"toiletType"`
}
