package customer

import (
	"context"

	"github.com/mongodb/anser/bsonutil"
	"github.com/pkg/errors"
	"github.com/web420/web420/db"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	IdKey        = bsonutil.MustHaveTag(Customer{}, "Id")
	FirstNameKey = bsonutil.MustHaveTag(Customer{}, "FirstName")
	LastNameKey  = bsonutil.MustHaveTag(Customer{}, "LastName")
	UserNameKey  = bsonutil.MustHaveTag(Customer{}, "UserName")
	InvoicesKey  = bsonutil.MustHaveTag(Customer{}, "Invoices")
	RevisionKey  = bsonutil.MustHaveTag(Customer{}, "Revision")

	InvoiceLineItemsKey = bsonutil.MustHaveTag(Invoice{}, "LineItems")
)

// All returns every customer.
func All() db.Q {
	return db.Query(nil)
}

// ByUserName matches customers by their user name.
func ByUserName(userName string) db.Q {
	return db.Query(bson.M{UserNameKey: userName})
}

func FindAll(ctx context.Context, store *db.Store, q db.Q) ([]Customer, error) {
	customers, err := db.FindAll[Customer](ctx, store, Collection, q)
	return customers, errors.Wrap(err, "finding customers")
}

func FindOneId(ctx context.Context, store *db.Store, id string) (*Customer, error) {
	c, err := db.FindOneId[Customer](ctx, store, Collection, id)
	return c, errors.Wrapf(err, "finding customer '%s'", id)
}

func DeleteOneId(ctx context.Context, store *db.Store, id string) (*Customer, error) {
	c, err := db.DeleteOneId[Customer](ctx, store, Collection, id)
	return c, errors.Wrapf(err, "deleting customer '%s'", id)
}

// EnsureIndexes creates the user name index used by ByUserName.
func EnsureIndexes(ctx context.Context, store *db.Store) error {
	return errors.Wrap(store.EnsureIndex(ctx, Collection, bson.D{{Key: UserNameKey, Value: 1}}), "ensuring customer indexes")
}
