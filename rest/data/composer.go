package data

import (
	"context"

	"github.com/web420/web420/model/composer"
	"github.com/web420/web420/rest"
)

const composerResource = "composer"

func (c *DBConnector) FindAllComposers(ctx context.Context) ([]composer.Composer, error) {
	composers, err := composer.FindAll(ctx, c.store(), composer.All())
	return composers, rest.NewStoreError(err)
}

func (c *DBConnector) findComposer(ctx context.Context, id string) (*composer.Composer, error) {
	return composer.FindOneId(ctx, c.store(), id)
}

func (c *DBConnector) FindComposerById(ctx context.Context, id string) (*composer.Composer, error) {
	return resolve(ctx, composerResource, id, c.findComposer)
}

func (c *DBConnector) CreateComposer(ctx context.Context, cmp *composer.Composer) error {
	return rest.NewStoreError(cmp.Insert(ctx, c.store()))
}

func (c *DBConnector) MutateComposer(ctx context.Context, id string, change func(*composer.Composer) error) (*composer.Composer, error) {
	return mutate(ctx, composerResource, id, c.findComposer, change, func(ctx context.Context, cmp *composer.Composer) error {
		return cmp.Save(ctx, c.store())
	})
}

func (c *DBConnector) DeleteComposerById(ctx context.Context, id string) (*composer.Composer, error) {
	return remove(ctx, composerResource, id, func(ctx context.Context, id string) (*composer.Composer, error) {
		return composer.DeleteOneId(ctx, c.store(), id)
	})
}

func (c *MockConnector) FindAllComposers(ctx context.Context) ([]composer.Composer, error) {
	return mockAll(c, c.composers)
}

func (c *MockConnector) FindComposerById(ctx context.Context, id string) (*composer.Composer, error) {
	return resolve(ctx, composerResource, id, mockFinder(c, c.composers.find))
}

func (c *MockConnector) CreateComposer(ctx context.Context, cmp *composer.Composer) error {
	return mockInsert(c, c.composers, cmp)
}

func (c *MockConnector) MutateComposer(ctx context.Context, id string, change func(*composer.Composer) error) (*composer.Composer, error) {
	return mutate(ctx, composerResource, id, mockFinder(c, c.composers.find), change, mockSaver(c, c.composers.save))
}

func (c *MockConnector) DeleteComposerById(ctx context.Context, id string) (*composer.Composer, error) {
	return remove(ctx, composerResource, id, mockFinder(c, c.composers.delete))
}
