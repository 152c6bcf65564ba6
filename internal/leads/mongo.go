package leads

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"marsa/pkg/config"
	"marsa/pkg/errors"
	"marsa/pkg/model"
)

const collectionName = "Leads"

// MongoWriter appends lead rows to a capped-free collection. Writes get
// a bounded timeout independent of the caller's context.
type MongoWriter struct {
	client     *mongo.Client
	collection *mongo.Collection
	timeout    time.Duration
}

func NewMongoWriter(ctx context.Context, cfg *config.Config) (*MongoWriter, error) {
	connCtx, cancel := context.WithTimeout(ctx, cfg.MongoConnTimeout)
	defer cancel()

	client, err := mongo.Connect(connCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, errors.Internal("mongo connect failed", err)
	}
	if err := client.Ping(connCtx, readpref.Primary()); err != nil {
		return nil, errors.Internal("mongo ping failed", err)
	}

	return &MongoWriter{
		client:     client,
		collection: client.Database(cfg.MongoDatabase).Collection(collectionName),
		timeout:    cfg.MongoConnTimeout,
	}, nil
}

func (w *MongoWriter) Write(ctx context.Context, record model.LeadRecord) error {
	opCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	if _, err := w.collection.InsertOne(opCtx, record); err != nil {
		return errors.Internal("lead insert failed", err)
	}
	return nil
}

// Ping reports sink health for the readiness endpoint.
func (w *MongoWriter) Ping(ctx context.Context) error {
	opCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	return w.client.Ping(opCtx, readpref.Primary())
}

func (w *MongoWriter) Close(ctx context.Context) error {
	return w.client.Disconnect(ctx)
}
