package team

import (
	"context"

	"github.com/mongodb/anser/bsonutil"
	"github.com/pkg/errors"
	"github.com/web420/web420/db"
)

var (
	IdKey       = bsonutil.MustHaveTag(Team{}, "Id")
	NameKey     = bsonutil.MustHaveTag(Team{}, "Name")
	MascotKey   = bsonutil.MustHaveTag(Team{}, "Mascot")
	PlayersKey  = bsonutil.MustHaveTag(Team{}, "Players")
	RevisionKey = bsonutil.MustHaveTag(Team{}, "Revision")

	PlayerFirstNameKey = bsonutil.MustHaveTag(Player{}, "FirstName")
	PlayerLastNameKey  = bsonutil.MustHaveTag(Player{}, "LastName")
	PlayerSalaryKey    = bsonutil.MustHaveTag(Player{}, "Salary")
)

// All returns every team.
func All() db.Q {
	return db.Query(nil)
}

// FindAll returns the teams matching the query.
func FindAll(ctx context.Context, store *db.Store, q db.Q) ([]Team, error) {
	teams, err := db.FindAll[Team](ctx, store, Collection, q)
	return teams, errors.Wrap(err, "finding teams")
}

// FindOneId returns the team with the given identifier, or nil if there
// is none.
func FindOneId(ctx context.Context, store *db.Store, id string) (*Team, error) {
	t, err := db.FindOneId[Team](ctx, store, Collection, id)
	return t, errors.Wrapf(err, "finding team '%s'", id)
}

// DeleteOneId removes the team (and with it the embedded roster) and
// returns what was removed, or nil if there was no such team.
func DeleteOneId(ctx context.Context, store *db.Store, id string) (*Team, error) {
	t, err := db.DeleteOneId[Team](ctx, store, Collection, id)
	return t, errors.Wrapf(err, "deleting team '%s'", id)
}
