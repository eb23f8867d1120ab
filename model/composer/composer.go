package composer

import (
	"context"

	"github.com/mongodb/anser/bsonutil"
	"github.com/pkg/errors"
	"github.com/web420/web420/db"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const Collection = "composers"

type Composer struct {
	Id        primitive.ObjectID `bson:"_id,omitempty"`
	FirstName string             `bson:"firstName"`
	LastName  string             `bson:"lastName"`
	// CatalogNumber is the composer's numeric "id" field, unrelated to
	// the document's primary key.
	CatalogNumber *int `bson:"id,omitempty"`
	Revision      int  `bson:"revision"`
}

var (
	IdKey            = bsonutil.MustHaveTag(Composer{}, "Id")
	FirstNameKey     = bsonutil.MustHaveTag(Composer{}, "FirstName")
	LastNameKey      = bsonutil.MustHaveTag(Composer{}, "LastName")
	CatalogNumberKey = bsonutil.MustHaveTag(Composer{}, "CatalogNumber")
	RevisionKey      = bsonutil.MustHaveTag(Composer{}, "Revision")
)

// SetName overwrites the name fields in memory.
func (c *Composer) SetName(firstName, lastName string) {
	c.FirstName = firstName
	c.LastName = lastName
}

func (c *Composer) Insert(ctx context.Context, store *db.Store) error {
	c.Revision = 0
	id, err := store.Insert(ctx, Collection, c)
	if err != nil {
		return errors.Wrap(err, "inserting composer")
	}
	c.Id = id
	return nil
}

// Save rewrites the whole composer document, guarded by its revision.
func (c *Composer) Save(ctx context.Context, store *db.Store) error {
	prev := c.Revision
	c.Revision++
	if err := store.Replace(ctx, Collection, db.ByIdAndRevision(c.Id, RevisionKey, prev), c); err != nil {
		c.Revision = prev
		return errors.Wrapf(err, "saving composer '%s'", c.Id.Hex())
	}
	return nil
}

func All() db.Q {
	return db.Query(nil)
}

func FindAll(ctx context.Context, store *db.Store, q db.Q) ([]Composer, error) {
	composers, err := db.FindAll[Composer](ctx, store, Collection, q)
	return composers, errors.Wrap(err, "finding composers")
}

func FindOneId(ctx context.Context, store *db.Store, id string) (*Composer, error) {
	c, err := db.FindOneId[Composer](ctx, store, Collection, id)
	return c, errors.Wrapf(err, "finding composer '%s'", id)
}

func DeleteOneId(ctx context.Context, store *db.Store, id string) (*Composer, error) {
	c, err := db.DeleteOneId[Composer](ctx, store, Collection, id)
	return c, errors.Wrapf(err, "deleting composer '%s'", id)
}
