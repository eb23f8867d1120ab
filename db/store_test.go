package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const testCollection = "db_store_test"

type testDoc struct {
	Id       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Revision int                `bson:"revision"`
}

func newTestStore(ctx context.Context, t *testing.T) *Store {
	if os.Getenv("SKIP_INTEGRATION_TESTS") != "" {
		t.Skip("SKIP_INTEGRATION_TESTS is set")
	}

	url := os.Getenv("WEB420_MONGODB_URL")
	if url == "" {
		url = "mongodb://localhost:27017"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url).SetServerSelectionTimeout(2*time.Second))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, client.Disconnect(context.Background())) })

	s := NewStore(client.Database("web420_test"), 5*time.Second)
	if err = s.Ping(ctx); err != nil {
		t.Skipf("no database available: %s", err)
	}
	require.NoError(t, s.ClearCollections(ctx, testCollection))

	return s
}

func TestStore(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	s := newTestStore(ctx, t)

	for name, test := range map[string]func(*testing.T){
		"InsertAndFindById": func(t *testing.T) {
			id, err := s.Insert(ctx, testCollection, testDoc{Name: "Wildcats"})
			require.NoError(t, err)
			assert.False(t, id.IsZero())

			found, err := FindOneId[testDoc](ctx, s, testCollection, id.Hex())
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, "Wildcats", found.Name)
		},
		"FindOneIdMisses": func(t *testing.T) {
			found, err := FindOneId[testDoc](ctx, s, testCollection, primitive.NewObjectID().Hex())
			assert.NoError(t, err)
			assert.Nil(t, found)

			found, err = FindOneId[testDoc](ctx, s, testCollection, "not-an-id")
			assert.NoError(t, err)
			assert.Nil(t, found)
		},
		"FindAllKeepsInsertionOrder": func(t *testing.T) {
			for _, name := range []string{"a", "b", "c"} {
				_, err := s.Insert(ctx, testCollection, testDoc{Name: name})
				require.NoError(t, err)
			}

			docs, err := FindAll[testDoc](ctx, s, testCollection, Query(nil))
			require.NoError(t, err)
			require.Len(t, docs, 3)
			assert.Equal(t, "a", docs[0].Name)
			assert.Equal(t, "c", docs[2].Name)

			n, err := s.Count(ctx, testCollection, nil)
			require.NoError(t, err)
			assert.Equal(t, 3, n)
		},
		"FindAllEmptyIsNotNil": func(t *testing.T) {
			docs, err := FindAll[testDoc](ctx, s, testCollection, Query(bson.M{"name": "nobody"}))
			require.NoError(t, err)
			assert.NotNil(t, docs)
			assert.Empty(t, docs)
		},
		"ReplaceChecksRevision": func(t *testing.T) {
			id, err := s.Insert(ctx, testCollection, testDoc{Name: "before"})
			require.NoError(t, err)

			require.NoError(t, s.Replace(ctx, testCollection, ByIdAndRevision(id, "revision", 0),
				testDoc{Id: id, Name: "after", Revision: 1}))

			err = s.Replace(ctx, testCollection, ByIdAndRevision(id, "revision", 0),
				testDoc{Id: id, Name: "stale", Revision: 1})
			assert.True(t, IsConcurrentModification(err))

			found, err := FindOneId[testDoc](ctx, s, testCollection, id.Hex())
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, "after", found.Name)
		},
		"ReplaceAdoptsDocumentWithoutRevision": func(t *testing.T) {
			id, err := s.Insert(ctx, testCollection, bson.M{"name": "legacy"})
			require.NoError(t, err)

			found, err := FindOneId[testDoc](ctx, s, testCollection, id.Hex())
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Zero(t, found.Revision)

			found.Name = "adopted"
			found.Revision = 1
			require.NoError(t, s.Replace(ctx, testCollection, ByIdAndRevision(id, "revision", 0), found))

			err = s.Replace(ctx, testCollection, ByIdAndRevision(id, "revision", 0),
				testDoc{Id: id, Name: "stale", Revision: 1})
			assert.True(t, IsConcurrentModification(err))

			found, err = FindOneId[testDoc](ctx, s, testCollection, id.Hex())
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, "adopted", found.Name)
			assert.Equal(t, 1, found.Revision)
		},
		"DeleteOneIdReturnsDocumentOnce": func(t *testing.T) {
			id, err := s.Insert(ctx, testCollection, testDoc{Name: "gone"})
			require.NoError(t, err)

			removed, err := DeleteOneId[testDoc](ctx, s, testCollection, id.Hex())
			require.NoError(t, err)
			require.NotNil(t, removed)
			assert.Equal(t, "gone", removed.Name)

			removed, err = DeleteOneId[testDoc](ctx, s, testCollection, id.Hex())
			assert.NoError(t, err)
			assert.Nil(t, removed)
		},
		"EnsureIndexIsIdempotent": func(t *testing.T) {
			keys := bson.D{{Key: "name", Value: 1}}
			assert.NoError(t, s.EnsureIndex(ctx, testCollection, keys))
			assert.NoError(t, s.EnsureIndex(ctx, testCollection, keys))
		},
	} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.ClearCollections(ctx, testCollection))
			test(t)
		})
	}
}
