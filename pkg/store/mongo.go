package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jverdier/coursemap/pkg/document"
)

// MongoStore persists documents in a MongoDB collection, one BSON document
// per graph document keyed by the "id" field. Saves are a single ReplaceOne
// with upsert, so create and update share one code path and no delete-then-
// insert dance is needed.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	// URI is the MongoDB connection string, e.g. "mongodb://localhost:27017".
	URI string

	// Database is the database name. Defaults to "coursemap".
	Database string

	// Collection is the collection name. Defaults to "documents".
	Collection string
}

// NewMongoStore connects to MongoDB and returns a document store.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "coursemap"
	}
	if cfg.Collection == "" {
		cfg.Collection = "documents"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, Transient(err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, Transient(err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Load retrieves a document by ID.
func (s *MongoStore) Load(ctx context.Context, id string) (document.Document, error) {
	var doc document.Document
	err := s.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return document.Document{}, ErrNotFound
	}
	if err != nil {
		return document.Document{}, mapMongoErr(err)
	}
	return doc, nil
}

// Save upserts the full document. An empty ID creates a new document.
func (s *MongoStore) Save(ctx context.Context, id string, doc document.Document) (SaveResult, error) {
	if id == "" {
		id = document.NewID()
	}
	stored := doc.Clone()
	stored.ID = id
	stored.UpdatedAt = time.Now().UTC()

	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"id": id}, stored, opts); err != nil {
		return SaveResult{}, mapMongoErr(err)
	}
	return SaveResult{ID: id, UpdatedAt: stored.UpdatedAt}, nil
}

// Duplicate stores an independent copy under a fresh ID.
func (s *MongoStore) Duplicate(ctx context.Context, doc document.Document) (string, error) {
	res, err := s.Save(ctx, document.NewID(), doc)
	if err != nil {
		return "", err
	}
	return res.ID, nil
}

// Delete removes a document.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return mapMongoErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// mapMongoErr translates driver failures into the store error taxonomy.
// Timeouts and network faults are transient; everything else passes through.
func mapMongoErr(err error) error {
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return Transient(err)
	}
	return err
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
