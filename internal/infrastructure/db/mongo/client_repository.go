package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/edis-imaging/client-portal/internal/core/domain"
)

const collectionClients = "clients"

type ClientRepository struct {
	col *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{col: db.Collection(collectionClients)}
}

// Create inserts a new client document. The unique index on email makes this
// the authoritative idempotency check: a repeated or concurrent insert for the
// same address fails with a duplicate-key error, surfaced as ErrClientExists.
func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, client)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrClientExists
		}
		return err
	}
	return nil
}

// FindByEmail retrieves a client by its normalized (lowercase) email.
func (r *ClientRepository) FindByEmail(ctx context.Context, email string) (*domain.Client, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByClientID retrieves a client by its portal identifier.
func (r *ClientRepository) FindByClientID(ctx context.Context, clientID string) (*domain.Client, error) {
	return r.findOne(ctx, bson.M{"client_id": clientID})
}

func (r *ClientRepository) findOne(ctx context.Context, filter bson.M) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Client
	err := r.col.FindOne(ctx, filter).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns all clients, newest first.
func (r *ClientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var clients []*domain.Client
	if err := cur.All(ctx, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// UpdateLastLogin stamps the client's last successful login.
func (r *ClientRepository) UpdateLastLogin(ctx context.Context, clientID string) error {
	return r.updateOne(ctx, clientID, bson.M{"$set": bson.M{"last_login": time.Now().UTC()}})
}

// UpdateAccessPolicy replaces the client's deliverable access flags.
func (r *ClientRepository) UpdateAccessPolicy(ctx context.Context, clientID string, policy domain.AccessPolicy) error {
	return r.updateOne(ctx, clientID, bson.M{"$set": bson.M{"deliverables_access": policy}})
}

// UpdateStatus transitions the client's account status. When depositReceived
// is non-nil the flag is updated in the same write, and a transition to active
// records the activation time.
func (r *ClientRepository) UpdateStatus(ctx context.Context, clientID string, status domain.ClientStatus, depositReceived *bool) error {
	set := bson.M{"status": status}
	if depositReceived != nil {
		set["deposit_received"] = *depositReceived
	}
	if status == domain.StatusActive {
		set["activated_at"] = time.Now().UTC()
	}
	return r.updateOne(ctx, clientID, bson.M{"$set": set})
}

func (r *ClientRepository) updateOne(ctx context.Context, clientID string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"client_id": clientID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes the repository depends on. The unique
// email index must exist before webhook traffic is served.
func (r *ClientRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "client_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
