package db

import (
	"context"
	"time"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const IdKey = "_id"

// Store wraps a single database handle. Every method issues exactly one
// operation against the server and blocks until it completes or the
// operation timeout expires.
type Store struct {
	database *mongo.Database
	timeout  time.Duration
}

// NewStore returns a Store over the given database. A zero timeout
// leaves deadlines to the caller's context.
func NewStore(database *mongo.Database, timeout time.Duration) *Store {
	return &Store{database: database, timeout: timeout}
}

// Name returns the name of the underlying database.
func (s *Store) Name() string { return s.database.Name() }

// C returns a handle for the named collection.
func (s *Store) C(collection string) *mongo.Collection {
	return s.database.Collection(collection)
}

func (s *Store) opContext(ctx context.Context, maxTime time.Duration) (context.Context, context.CancelFunc) {
	timeout := s.timeout
	if maxTime > 0 {
		timeout = maxTime
	}
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// FindAllQ runs a Q query against the given collection, applying the results to "out."
func (s *Store) FindAllQ(ctx context.Context, collection string, q Q, out any) error {
	ctx, cancel := s.opContext(ctx, q.maxTime)
	defer cancel()

	cur, err := s.C(collection).Find(ctx, q.filterDocument(), q.findOptions())
	if err != nil {
		return errors.Wrapf(err, "finding documents in '%s'", collection)
	}

	return errors.Wrapf(cur.All(ctx, out), "decoding documents from '%s'", collection)
}

// FindOneQ runs a Q query against the given collection, applying the result to "out."
// A query that matches nothing returns an error for which ResultsNotFound is true.
func (s *Store) FindOneQ(ctx context.Context, collection string, q Q, out any) error {
	ctx, cancel := s.opContext(ctx, q.maxTime)
	defer cancel()

	res := s.C(collection).FindOne(ctx, q.filterDocument(), q.findOneOptions())
	if err := res.Err(); err != nil {
		return errors.Wrapf(err, "finding document in '%s'", collection)
	}

	return errors.Wrapf(res.Decode(out), "decoding document from '%s'", collection)
}

// Insert inserts the specified item into the specified collection and
// returns the generated identifier.
func (s *Store) Insert(ctx context.Context, collection string, item any) (primitive.ObjectID, error) {
	ctx, cancel := s.opContext(ctx, 0)
	defer cancel()

	res, err := s.C(collection).InsertOne(ctx, item)
	if err != nil {
		return primitive.NilObjectID, errors.Wrapf(err, "inserting document into '%s'", collection)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.Errorf("unexpected identifier type %T from insert into '%s'", res.InsertedID, collection)
	}

	return id, nil
}

// Replace replaces the one document matching the query with the
// replacement. When nothing matches, Replace returns
// ErrConcurrentModification: callers always replace a document they
// have just read, so a miss means it changed or vanished in between.
func (s *Store) Replace(ctx context.Context, collection string, query any, replacement any) error {
	ctx, cancel := s.opContext(ctx, 0)
	defer cancel()

	res, err := s.C(collection).ReplaceOne(ctx, query, replacement)
	if err != nil {
		return errors.Wrapf(err, "replacing document in '%s'", collection)
	}
	if res.MatchedCount == 0 {
		return errors.WithStack(ErrConcurrentModification)
	}

	return nil
}

// FindOneAndDelete removes the first document matching the query and
// decodes the removed document into "out."
func (s *Store) FindOneAndDelete(ctx context.Context, collection string, query any, out any) error {
	ctx, cancel := s.opContext(ctx, 0)
	defer cancel()

	res := s.C(collection).FindOneAndDelete(ctx, query)
	if err := res.Err(); err != nil {
		return errors.Wrapf(err, "deleting document from '%s'", collection)
	}

	return errors.Wrapf(res.Decode(out), "decoding deleted document from '%s'", collection)
}

// Count returns the number of documents in the collection that match the query.
func (s *Store) Count(ctx context.Context, collection string, query any) (int, error) {
	ctx, cancel := s.opContext(ctx, 0)
	defer cancel()

	if query == nil {
		query = bson.M{}
	}
	n, err := s.C(collection).CountDocuments(ctx, query)
	return int(n), errors.Wrapf(err, "counting documents in '%s'", collection)
}

// Ping checks that the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.opContext(ctx, 0)
	defer cancel()

	return errors.Wrap(s.database.Client().Ping(ctx, readpref.Primary()), "pinging database")
}

// EnsureIndex creates the index if it does not already exist.
func (s *Store) EnsureIndex(ctx context.Context, collection string, keys bson.D) error {
	ctx, cancel := s.opContext(ctx, 0)
	defer cancel()

	name, err := s.C(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetBackground(true),
	})
	if err != nil {
		return errors.Wrapf(err, "creating index on '%s'", collection)
	}

	grip.Debug(message.Fields{
		"message":    "ensured index",
		"collection": collection,
		"index":      name,
	})

	return nil
}

// =============================================
// ============ Test only functions ============
// =============================================

// ClearCollections clears all documents from all the specified collections,
// returning an error immediately if clearing any one of them fails.
func (s *Store) ClearCollections(ctx context.Context, collections ...string) error {
	for _, collection := range collections {
		if _, err := s.C(collection).DeleteMany(ctx, bson.M{}); err != nil {
			return errors.Wrapf(err, "clearing collection '%s'", collection)
		}
	}
	return nil
}
