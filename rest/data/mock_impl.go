package data

import (
	"context"

	"github.com/web420/web420/model/composer"
	"github.com/web420/web420/model/customer"
	"github.com/web420/web420/model/person"
	"github.com/web420/web420/model/team"
	"github.com/web420/web420/rest"
)

// MockConnector implements Connector in memory for route tests. Setting
// StoredError makes every store call fail with it, as if the database
// were unreachable.
type MockConnector struct {
	StoredError error

	teams     *mockCollection[team.Team]
	composers *mockCollection[composer.Composer]
	people    *mockCollection[person.Person]
	customers *mockCollection[customer.Customer]
}

func NewMockConnector() *MockConnector {
	return &MockConnector{
		teams:     newMockCollection[team.Team](),
		composers: newMockCollection[composer.Composer](),
		people:    newMockCollection[person.Person](),
		customers: newMockCollection[customer.Customer](),
	}
}

func (c *MockConnector) storeErr() error {
	return c.StoredError
}

func (c *MockConnector) Ping(context.Context) error {
	return rest.NewStoreError(c.storeErr())
}

// mockFinder adapts an in-memory lookup to the protocol, failing with
// StoredError when one is set.
func mockFinder[T any](c *MockConnector, find func(string) (*T, error)) finder[T] {
	return func(_ context.Context, id string) (*T, error) {
		if err := c.storeErr(); err != nil {
			return nil, err
		}
		return find(id)
	}
}

func mockSaver[T any](c *MockConnector, save func(*T) error) func(context.Context, *T) error {
	return func(_ context.Context, doc *T) error {
		if err := c.storeErr(); err != nil {
			return err
		}
		return save(doc)
	}
}

func mockAll[T any](c *MockConnector, coll *mockCollection[T]) ([]T, error) {
	if err := c.storeErr(); err != nil {
		return nil, rest.NewStoreError(err)
	}
	docs, err := coll.all()
	return docs, rest.NewStoreError(err)
}

func mockInsert[T any](c *MockConnector, coll *mockCollection[T], doc *T) error {
	if err := c.storeErr(); err != nil {
		return rest.NewStoreError(err)
	}
	return rest.NewStoreError(coll.insert(doc))
}
