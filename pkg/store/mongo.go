package store

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultCollection is the MongoDB collection plans are stored in.
const DefaultCollection = "plans"

const connectTimeout = 10 * time.Second

// MongoStore keeps plans in a MongoDB collection, one document per plan
// keyed by plan id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoOptions configures [DialMongo].
type MongoOptions struct {
	URI        string
	Database   string
	Collection string
}

// DialMongo connects to MongoDB and verifies the connection.
func DialMongo(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if opts.Collection == "" {
		opts.Collection = DefaultCollection
	}
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return NewMongoStore(client, opts.Database, opts.Collection), nil
}

// NewMongoStore wraps an existing client.
func NewMongoStore(client *mongo.Client, database, collection string) *MongoStore {
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}
}

func (s *MongoStore) Put(ctx context.Context, p *Plan) error {
	if err := ValidateID(p.ID); err != nil {
		return err
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("store plan %s: %w", p.ID, err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Plan, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	var p Plan
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("load plan %s: %w", id, err)
	}
	return &p, nil
}

func (s *MongoStore) List(ctx context.Context) ([]Summary, error) {
	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.M{"project.nodes": 1, "project.edges": 1, "name": 1, "created_at": 1,
			"report.total_cost": 1, "report.max_delay": 1, "warnings": 1})
	cur, err := s.coll.Find(ctx, bson.D{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer cur.Close(ctx)

	var plans []Plan
	if err := cur.All(ctx, &plans); err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	out := make([]Summary, len(plans))
	for i := range plans {
		out[i] = plans[i].Summary()
	}
	sortSummaries(out)
	return out, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete plan %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
