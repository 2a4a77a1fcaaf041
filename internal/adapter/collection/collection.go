// Package collection contains the MongoDB [domain.Collection]
// implementation.
package collection

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vinicius-lino-figueiredo/mofind/domain"
)

// Collection implements [domain.Collection] over a MongoDB collection.
type Collection struct {
	coll *mongo.Collection
}

// NewCollection returns a new implementation of [domain.Collection].
func NewCollection(coll *mongo.Collection) domain.Collection {
	return &Collection{coll: coll}
}

// Connect opens a client to uri, checks it is reachable and returns the
// named collection. The caller disconnects the client.
func Connect(ctx context.Context, uri, database, collection string) (*mongo.Client, domain.Collection, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("pinging MongoDB: %w", err)
	}
	return client, NewCollection(client.Database(database).Collection(collection)), nil
}

// Find implements [domain.Collection]. The returned cursor is a
// *mongo.Cursor.
func (c *Collection) Find(ctx context.Context, filter domain.Document, opts domain.FindOptions) (domain.Cursor, error) {
	cur, err := c.coll.Find(ctx, filter, FindOptions(opts))
	if err != nil {
		return nil, err
	}
	return cur, nil
}

// FindOne implements [domain.Collection].
func (c *Collection) FindOne(ctx context.Context, filter domain.Document, target any, opts domain.FindOptions) error {
	if target == nil {
		return &domain.ErrTargetNil{}
	}
	err := c.coll.FindOne(ctx, filter, FindOneOptions(opts)).Decode(target)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrNotFound
	}
	return err
}

// CountDocuments implements [domain.Collection].
func (c *Collection) CountDocuments(ctx context.Context, filter domain.Document) (int64, error) {
	return c.coll.CountDocuments(ctx, filter)
}

// FindOptions converts find options to the driver options.
func FindOptions(opts domain.FindOptions) *options.FindOptions {
	res := options.Find()
	if opts.Limit != nil {
		res.SetLimit(*opts.Limit)
	}
	if opts.Skip != nil {
		res.SetSkip(*opts.Skip)
	}
	if len(opts.Sort) > 0 {
		res.SetSort(sortDoc(opts.Sort))
	}
	if opts.Projection != nil {
		res.SetProjection(opts.Projection)
	}
	return res
}

// FindOneOptions converts find options to the driver options of a single
// document lookup. The limit does not apply.
func FindOneOptions(opts domain.FindOptions) *options.FindOneOptions {
	res := options.FindOne()
	if opts.Skip != nil {
		res.SetSkip(*opts.Skip)
	}
	if len(opts.Sort) > 0 {
		res.SetSort(sortDoc(opts.Sort))
	}
	if opts.Projection != nil {
		res.SetProjection(opts.Projection)
	}
	return res
}

func sortDoc(sort domain.Sort) bson.D {
	res := make(bson.D, len(sort))
	for n, sn := range sort {
		res[n] = bson.E{Key: sn.Key, Value: sn.Order}
	}
	return res
}
