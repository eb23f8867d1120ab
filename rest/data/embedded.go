package data

import (
	"context"

	"github.com/web420/web420/rest"
)

type finder[T any] func(context.Context, string) (*T, error)

// resolve looks up the parent document named by a path identifier. A
// miss is a NotFoundError for the resource; a failed lookup is a
// StoreError.
func resolve[T any](ctx context.Context, resource, id string, find finder[T]) (*T, error) {
	doc, err := find(ctx, id)
	if err != nil {
		return nil, rest.NewStoreError(err)
	}
	if doc == nil {
		return nil, rest.NewNotFoundError(resource)
	}
	return doc, nil
}

// mutate resolves the parent, applies change to it in memory and
// persists the whole document with save. Nothing is written when change
// fails.
func mutate[T any](ctx context.Context, resource, id string, find finder[T], change func(*T) error, save func(context.Context, *T) error) (*T, error) {
	doc, err := resolve(ctx, resource, id, find)
	if err != nil {
		return nil, err
	}
	if err = change(doc); err != nil {
		return nil, err
	}
	if err = save(ctx, doc); err != nil {
		return nil, rest.NewStoreError(err)
	}
	return doc, nil
}

// remove deletes the parent (and its embedded collections) by identifier.
func remove[T any](ctx context.Context, resource, id string, del finder[T]) (*T, error) {
	return resolve(ctx, resource, id, del)
}
