package testutil

import (
	"net/http/httptest"

	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"github.com/web420/web420"
	"github.com/web420/web420/rest/data"
	"github.com/web420/web420/rest/route"
)

// NewTestServerFromEnvironment creates a database backed API test
// server.
func NewTestServerFromEnvironment(env web420.Environment) (*httptest.Server, error) {
	return NewTestServerFromConnector(data.NewDBConnector(env))
}

// NewTestServerFromConnector starts an API server over an already
// constructed Connector. This is very useful when testing, especially
// with a MockConnector whose StoredError simulates store failures.
func NewTestServerFromConnector(sc data.Connector) (*httptest.Server, error) {
	handler, err := route.GetHandler(sc)
	if err != nil {
		return nil, errors.Wrap(err, "building API handler")
	}

	server := httptest.NewServer(handler)
	grip.Infoln("started server:", server.URL)

	return server, nil
}
