package team

import (
	"context"

	"github.com/pkg/errors"
	"github.com/web420/web420/db"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const Collection = "teams"

// Team is a roster with its players embedded in the team document.
type Team struct {
	Id       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Mascot   string             `bson:"mascot,omitempty"`
	Players  []Player           `bson:"players"`
	Revision int                `bson:"revision"`
}

// Player only exists inside a Team's player list.
type Player struct {
	FirstName string   `bson:"firstName"`
	LastName  string   `bson:"lastName"`
	Salary    *float64 `bson:"salary,omitempty"`
}

// AddPlayer appends the player in memory; Save persists it.
func (t *Team) AddPlayer(p Player) {
	t.Players = append(t.Players, p)
}

// Insert creates the team with an empty roster and records the
// generated identifier on the receiver.
func (t *Team) Insert(ctx context.Context, store *db.Store) error {
	if t.Players == nil {
		t.Players = []Player{}
	}
	t.Revision = 0

	id, err := store.Insert(ctx, Collection, t)
	if err != nil {
		return errors.Wrap(err, "inserting team")
	}
	t.Id = id

	return nil
}

// Save rewrites the whole team document. It fails with
// db.ErrConcurrentModification if another writer saved the team after
// it was read.
func (t *Team) Save(ctx context.Context, store *db.Store) error {
	prev := t.Revision
	t.Revision++

	if err := store.Replace(ctx, Collection, db.ByIdAndRevision(t.Id, RevisionKey, prev), t); err != nil {
		t.Revision = prev
		return errors.Wrapf(err, "saving team '%s'", t.Id.Hex())
	}

	return nil
}
