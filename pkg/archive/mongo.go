package archive

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperr "github.com/matzehuels/pagefit/pkg/errors"
	"github.com/matzehuels/pagefit/pkg/report"
)

const (
	// DefaultDatabase is the database used when none is configured.
	DefaultDatabase = "pagefit"

	// Collection holds one document per report, keyed by report ID.
	Collection = "reports"

	connectTimeout = 10 * time.Second
)

// MongoStore archives reports in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to the MongoDB deployment at uri and verifies the
// connection. An empty database selects DefaultDatabase.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if database == "" {
		database = DefaultDatabase
	}
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeStorage, err, "connect mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, apperr.Wrap(apperr.ErrCodeStorage, err, "ping mongodb")
	}
	return NewMongoStoreFromClient(client, database), nil
}

// NewMongoStoreFromClient wraps an existing client.
func NewMongoStoreFromClient(client *mongo.Client, database string) *MongoStore {
	if database == "" {
		database = DefaultDatabase
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(Collection),
	}
}

func (s *MongoStore) Save(ctx context.Context, r *report.Report) error {
	if err := checkSave(r); err != nil {
		return err
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": r.ID}, r, opts); err != nil {
		return apperr.Wrap(apperr.ErrCodeStorage, err, "save report %s", r.ID)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*report.Report, error) {
	if err := apperr.ValidateReportID(id); err != nil {
		return nil, err
	}
	var r report.Report
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeStorage, err, "load report %s", id)
	}
	return &r, nil
}

func (s *MongoStore) List(ctx context.Context, limit int) ([]*report.Report, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(listLimit(limit)))
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeStorage, err, "list reports")
	}
	var out []*report.Report
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode reports: %w", err)
	}
	return out, nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}
