package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/netintel/netintel/pkg/graph"

	apperrors "github.com/netintel/netintel/pkg/errors"
)

// MongoStore keeps one graph document per named graph in a MongoDB
// collection, using the document types' bson tags. Suitable for deployments
// where several netintel instances share durable state; the single-writer
// discipline still applies per graph name.
type MongoStore struct {
	coll *mongo.Collection
	name string
}

// mongoDocument wraps the graph document with its collection key.
type mongoDocument struct {
	Name     string         `bson:"_id"`
	Document graph.Document `bson:"document"`
}

// NewMongoStore connects to MongoDB and returns a store bound to the named
// graph in database/collection.
func NewMongoStore(ctx context.Context, uri, database, collection, name string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodePersistence, err, "connect to mongodb %s", uri)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodePersistence, err, "ping mongodb %s", uri)
	}
	return &MongoStore{
		coll: client.Database(database).Collection(collection),
		name: name,
	}, nil
}

// Load fetches and rebuilds the named graph.
func (s *MongoStore) Load(ctx context.Context) (*graph.Graph, error) {
	var wrapped mongoDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": s.name}).Decode(&wrapped)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "graph %q not found", s.name)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodePersistence, err, "load graph %q", s.name)
	}

	g, err := graph.FromDocument(wrapped.Document)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeCorrupt, err, "rebuild graph %q", s.name)
	}
	return g, nil
}

// Save upserts the full document for the named graph.
func (s *MongoStore) Save(ctx context.Context, g *graph.Graph) error {
	wrapped := mongoDocument{
		Name:     s.name,
		Document: graph.ToDocument(g),
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": s.name}, wrapped, options.Replace().SetUpsert(true))
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodePersistence, err, "save graph %q", s.name)
	}
	return nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.coll.Database().Client().Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)

// String describes the store for logs.
func (s *MongoStore) String() string {
	return fmt.Sprintf("mongo(%s/%s)", s.coll.Database().Name(), s.coll.Name())
}
