package washroom

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrStoreUnavailable wraps every error coming back from the database driver.
var ErrStoreUnavailable = errors.New("record store unavailable")

// Repository reads the usage, feedback, problems and configurations collections.
// It is safe for concurrent use; the driver pools connections.
type Repository struct {
	usage          *mongo.Collection
	feedback       *mongo.Collection
	problems       *mongo.Collection
	configurations *mongo.Collection
}

// NewRepository binds the repository to the washroom database.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		usage:          db.Collection("usage"),
		feedback:       db.Collection("feedback"),
		problems:       db.Collection("problems"),
		configurations: db.Collection("configurations"),
	}
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any, opts *options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	items := []T{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Usages returns usage events matching f.
func (r *Repository) Usages(ctx context.Context, f Filter) ([]UsageEvent, error) {
	items, err := findAll[UsageEvent](ctx, r.usage, f.Query(), f.findOptions())
	if err != nil {
		return nil, storeErr("find usages", err)
	}
	return items, nil
}

// Feedbacks returns feedback events matching f.
func (r *Repository) Feedbacks(ctx context.Context, f Filter) ([]FeedbackEvent, error) {
	items, err := findAll[FeedbackEvent](ctx, r.feedback, f.Query(), f.findOptions())
	if err != nil {
		return nil, storeErr("find feedbacks", err)
	}
	return items, nil
}

// Problems returns problem reports matching f, in natural order unless f.NewestFirst.
func (r *Repository) Problems(ctx context.Context, f Filter) ([]ProblemReport, error) {
	items, err := findAll[ProblemReport](ctx, r.problems, f.Query(), f.findOptions())
	if err != nil {
		return nil, storeErr("find problems", err)
	}
	return items, nil
}

// Configurations returns every configured washroom.
func (r *Repository) Configurations(ctx context.Context) ([]Config, error) {
	items, err := findAll[Config](ctx, r.configurations, bson.M{}, options.Find())
	if err != nil {
		return nil, storeErr("find configurations", err)
	}
	return items, nil
}

// MarkRead sets read=true on one problem and reports whether it was unread before.
// Unknown, malformed or already-read ids report false with no error.
func (r *Repository) MarkRead(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := r.problems.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return false, storeErr("mark problem read", err)
	}
	return res.ModifiedCount > 0, nil
}
