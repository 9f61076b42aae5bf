package washroom

import (
	"WashroomMonitor/internal/clock"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Filter narrows a collection read to a time window and, optionally, one washroom.
type Filter struct {
	Window      clock.Window
	Identity    *Identity
	Unsolved    bool
	NewestFirst bool
	Limit       int64
}

// Query builds the BSON filter. Timestamps are compared as canonical strings.
func (f Filter) Query() bson.M {
	q := bson.M{
		"timestamp": bson.M{"$gte": f.Window.From(), "$lt": f.Window.Until()},
	}
	if f.Identity != nil {
		q["floor"] = f.Identity.Floor
		q["toiletType"] = f.Identity.ToiletType
	}
	if f.Unsolved {
		q["solved"] = false
	}
	return q
}

func (f Filter) findOptions() *options.FindOptions {
	opts := options.Find()
	if f.NewestFirst {
		opts.SetSort(bson.D{{Key: "timestamp", Value: -1}})
	}
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}
	return opts
}
