package data

import (
	"context"

	"github.com/pkg/errors"
	"github.com/web420/web420"
	"github.com/web420/web420/db"
	"github.com/web420/web420/rest"
)

// DBConnector implements Connector against the store of a
// web420.Environment. It holds no request state and is safe for
// concurrent use.
type DBConnector struct {
	env web420.Environment
}

func NewDBConnector(env web420.Environment) *DBConnector {
	return &DBConnector{env: env}
}

func (c *DBConnector) store() *db.Store { return c.env.Store() }

func (c *DBConnector) Ping(ctx context.Context) error {
	return rest.NewStoreError(errors.WithStack(c.store().Ping(ctx)))
}
