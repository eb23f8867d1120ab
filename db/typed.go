package db

import (
	"context"

	"github.com/pkg/errors"
)

// FindAll returns every document in the collection matching the query,
// in the order the server returns them.
func FindAll[T any](ctx context.Context, s *Store, collection string, q Q) ([]T, error) {
	out := []T{}
	if err := s.FindAllQ(ctx, collection, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindOne returns the first document matching the query, or nil when
// nothing matches.
func FindOne[T any](ctx context.Context, s *Store, collection string, q Q) (*T, error) {
	out := new(T)
	err := s.FindOneQ(ctx, collection, q, out)
	if ResultsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FindOneId looks up a document by the string form of its primary key.
// Identifiers that cannot be parsed match nothing and return nil
// without contacting the server.
func FindOneId[T any](ctx context.Context, s *Store, collection, id string) (*T, error) {
	oid, ok := ParseID(id)
	if !ok {
		return nil, nil
	}
	return FindOne[T](ctx, s, collection, Query(ById(oid)))
}

// DeleteOneId removes a document by the string form of its primary key
// and returns the removed document, or nil when nothing matched.
func DeleteOneId[T any](ctx context.Context, s *Store, collection, id string) (*T, error) {
	oid, ok := ParseID(id)
	if !ok {
		return nil, nil
	}

	out := new(T)
	err := s.FindOneAndDelete(ctx, collection, ById(oid), out)
	if ResultsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return out, nil
}
