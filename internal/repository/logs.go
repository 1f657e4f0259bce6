package repository

import (
	"context"
	"time"

	"github.com/guttosm/picking-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LogsRepository stores request and audit log entries in the logs
// collection. model.LogEntry is stored as is.
type LogsRepository struct {
	collection *mongo.Collection
}

// NewLogsRepository creates a new logs repository.
func NewLogsRepository(db *MongoDB) *LogsRepository {
	return &LogsRepository{collection: db.Logs}
}

// stamp fills the id and timestamp of a new entry.
func stamp(entry *model.LogEntry, now time.Time) {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = now
	}
}

// Create inserts one entry.
func (r *LogsRepository) Create(ctx context.Context, entry *model.LogEntry) error {
	stamp(entry, time.Now())
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// CreateMany inserts entries in one unordered batch, so a bad entry does not
// drop the rest.
func (r *LogsRepository) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	now := time.Now()
	docs := make([]interface{}, len(entries))
	for i, entry := range entries {
		stamp(entry, now)
		docs[i] = entry
	}

	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	return err
}

// logFilter translates query options into a MongoDB filter.
func logFilter(o model.LogQueryOptions) bson.M {
	filter := bson.M{}
	for field, value := range map[string]string{
		"request_id":  o.RequestID,
		"level":       o.Level,
		"operator_id": o.OperatorID,
		"action_type": o.ActionType,
	} {
		if value != "" {
			filter[field] = value
		}
	}
	if o.PickingID != 0 {
		filter["picking_id"] = o.PickingID
	}

	window := bson.M{}
	if o.StartTime != nil {
		window["$gte"] = *o.StartTime
	}
	if o.EndTime != nil {
		window["$lte"] = *o.EndTime
	}
	if len(window) > 0 {
		filter["timestamp"] = window
	}
	return filter
}

// Query returns matching entries, newest first.
func (r *LogsRepository) Query(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	find := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}})
	if opts.Limit > 0 {
		find.SetLimit(int64(opts.Limit))
	}
	if opts.Skip > 0 {
		find.SetSkip(int64(opts.Skip))
	}

	cursor, err := r.collection.Find(ctx, logFilter(opts), find)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	entries := []model.LogEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the number of matching entries.
func (r *LogsRepository) Count(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	return r.collection.CountDocuments(ctx, logFilter(opts))
}
