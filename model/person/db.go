package person

import (
	"context"

	"github.com/mongodb/anser/bsonutil"
	"github.com/pkg/errors"
	"github.com/web420/web420/db"
)

var (
	IdKey         = bsonutil.MustHaveTag(Person{}, "Id")
	FirstNameKey  = bsonutil.MustHaveTag(Person{}, "FirstName")
	LastNameKey   = bsonutil.MustHaveTag(Person{}, "LastName")
	RolesKey      = bsonutil.MustHaveTag(Person{}, "Roles")
	DependentsKey = bsonutil.MustHaveTag(Person{}, "Dependents")
	BirthDateKey  = bsonutil.MustHaveTag(Person{}, "BirthDate")
	RevisionKey   = bsonutil.MustHaveTag(Person{}, "Revision")
)

// All returns every person.
func All() db.Q {
	return db.Query(nil)
}

func FindAll(ctx context.Context, store *db.Store, q db.Q) ([]Person, error) {
	people, err := db.FindAll[Person](ctx, store, Collection, q)
	return people, errors.Wrap(err, "finding people")
}

func FindOneId(ctx context.Context, store *db.Store, id string) (*Person, error) {
	p, err := db.FindOneId[Person](ctx, store, Collection, id)
	return p, errors.Wrapf(err, "finding person '%s'", id)
}

func DeleteOneId(ctx context.Context, store *db.Store, id string) (*Person, error) {
	p, err := db.DeleteOneId[Person](ctx, store, Collection, id)
	return p, errors.Wrapf(err, "deleting person '%s'", id)
}
