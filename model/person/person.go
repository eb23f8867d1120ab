package person

import (
	"context"

	"github.com/pkg/errors"
	"github.com/web420/web420/db"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const Collection = "people"

// Person embeds two independent collections: the roles the person
// holds and the person's dependents.
type Person struct {
	Id         primitive.ObjectID `bson:"_id,omitempty"`
	FirstName  string             `bson:"firstName"`
	LastName   string             `bson:"lastName"`
	Roles      []Role             `bson:"roles"`
	Dependents []Dependent        `bson:"dependents"`
	BirthDate  string             `bson:"birthDate,omitempty"`
	Revision   int                `bson:"revision"`
}

type Role struct {
	Text string `bson:"text"`
}

type Dependent struct {
	FirstName string `bson:"firstName"`
	LastName  string `bson:"lastName"`
}

func (p *Person) AddRole(r Role) {
	p.Roles = append(p.Roles, r)
}

func (p *Person) AddDependent(d Dependent) {
	p.Dependents = append(p.Dependents, d)
}

// Insert creates the person. Roles and dependents given at creation are
// kept; missing ones start out empty.
func (p *Person) Insert(ctx context.Context, store *db.Store) error {
	if p.Roles == nil {
		p.Roles = []Role{}
	}
	if p.Dependents == nil {
		p.Dependents = []Dependent{}
	}
	p.Revision = 0

	id, err := store.Insert(ctx, Collection, p)
	if err != nil {
		return errors.Wrap(err, "inserting person")
	}
	p.Id = id

	return nil
}

// Save rewrites the whole person document, guarded by its revision.
func (p *Person) Save(ctx context.Context, store *db.Store) error {
	prev := p.Revision
	p.Revision++

	if err := store.Replace(ctx, Collection, db.ByIdAndRevision(p.Id, RevisionKey, prev), p); err != nil {
		p.Revision = prev
		return errors.Wrapf(err, "saving person '%s'", p.Id.Hex())
	}

	return nil
}
