package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/edis-imaging/client-portal/internal/core/domain"
)

const (
	collectionDeliverables = "deliverables"
	collectionAccessLogs   = "access_logs"
	collectionTimeline     = "project_timeline"
)

type DeliverableRepository struct {
	col *mongo.Collection
}

func NewDeliverableRepository(db *mongo.Database) *DeliverableRepository {
	return &DeliverableRepository{col: db.Collection(collectionDeliverables)}
}

// FindByID retrieves a deliverable by its document id.
func (r *DeliverableRepository) FindByID(ctx context.Context, id string) (*domain.Deliverable, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d domain.Deliverable
	err := r.col.FindOne(ctx, bson.M{"_id": idFilter(id)}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDeliverableNotFound
		}
		return nil, err
	}
	return &d, nil
}

// ListByProject returns the project's deliverables, newest upload first.
func (r *DeliverableRepository) ListByProject(ctx context.Context, projectID string) ([]*domain.Deliverable, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"project_id": projectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var deliverables []*domain.Deliverable
	if err := cur.All(ctx, &deliverables); err != nil {
		return nil, err
	}
	return deliverables, nil
}

// IncrementDownloadCount adds exactly one to the deliverable's counter using
// an atomic $inc, so concurrent downloads never lose updates.
func (r *DeliverableRepository) IncrementDownloadCount(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": idFilter(id)},
		bson.M{"$inc": bson.M{"download_count": 1}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrDeliverableNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes the repository depends on.
func (r *DeliverableRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "project_id", Value: 1}, {Key: "uploaded_at", Value: -1}}},
		{Keys: bson.D{{Key: "type", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// idFilter accepts both ObjectID hex strings and plain string ids, so seeded
// fixtures and driver-generated documents resolve through the same path.
func idFilter(id string) any {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return id
}

// AccessLogRepository appends audit entries to a write-once collection.
type AccessLogRepository struct {
	col *mongo.Collection
}

func NewAccessLogRepository(db *mongo.Database) *AccessLogRepository {
	return &AccessLogRepository{col: db.Collection(collectionAccessLogs)}
}

// Append inserts an audit entry. Entries are never updated or deleted.
func (r *AccessLogRepository) Append(ctx context.Context, entry *domain.AccessLogEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, entry)
	return err
}

// EnsureIndexes creates the indexes the repository depends on.
func (r *AccessLogRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "deliverable_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// TimelineRepository stores project milestones shown on the dashboard.
type TimelineRepository struct {
	col *mongo.Collection
}

func NewTimelineRepository(db *mongo.Database) *TimelineRepository {
	return &TimelineRepository{col: db.Collection(collectionTimeline)}
}

// ListByProject returns the project's milestones in chronological order.
func (r *TimelineRepository) ListByProject(ctx context.Context, projectID string) ([]*domain.TimelineEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "event_date", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"project_id": projectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []*domain.TimelineEvent
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Append inserts a new milestone.
func (r *TimelineRepository) Append(ctx context.Context, event *domain.TimelineEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, event)
	return err
}

// EnsureIndexes creates the indexes the repository depends on.
func (r *TimelineRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "project_id", Value: 1}, {Key: "event_date", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
