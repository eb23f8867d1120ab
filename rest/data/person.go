package data

import (
	"context"

	"github.com/web420/web420/model/person"
	"github.com/web420/web420/rest"
)

const personResource = "person"

func (c *DBConnector) FindAllPeople(ctx context.Context) ([]person.Person, error) {
	people, err := person.FindAll(ctx, c.store(), person.All())
	return people, rest.NewStoreError(err)
}

func (c *DBConnector) findPerson(ctx context.Context, id string) (*person.Person, error) {
	return person.FindOneId(ctx, c.store(), id)
}

func (c *DBConnector) FindPersonById(ctx context.Context, id string) (*person.Person, error) {
	return resolve(ctx, personResource, id, c.findPerson)
}

func (c *DBConnector) CreatePerson(ctx context.Context, p *person.Person) error {
	return rest.NewStoreError(p.Insert(ctx, c.store()))
}

func (c *DBConnector) MutatePerson(ctx context.Context, id string, change func(*person.Person) error) (*person.Person, error) {
	return mutate(ctx, personResource, id, c.findPerson, change, func(ctx context.Context, p *person.Person) error {
		return p.Save(ctx, c.store())
	})
}

func (c *DBConnector) DeletePersonById(ctx context.Context, id string) (*person.Person, error) {
	return remove(ctx, personResource, id, func(ctx context.Context, id string) (*person.Person, error) {
		return person.DeleteOneId(ctx, c.store(), id)
	})
}

func (c *MockConnector) FindAllPeople(ctx context.Context) ([]person.Person, error) {
	return mockAll(c, c.people)
}

func (c *MockConnector) FindPersonById(ctx context.Context, id string) (*person.Person, error) {
	return resolve(ctx, personResource, id, mockFinder(c, c.people.find))
}

func (c *MockConnector) CreatePerson(ctx context.Context, p *person.Person) error {
	if p.Roles == nil {
		p.Roles = []person.Role{}
	}
	if p.Dependents == nil {
		p.Dependents = []person.Dependent{}
	}
	return mockInsert(c, c.people, p)
}

func (c *MockConnector) MutatePerson(ctx context.Context, id string, change func(*person.Person) error) (*person.Person, error) {
	return mutate(ctx, personResource, id, mockFinder(c, c.people.find), change, mockSaver(c, c.people.save))
}

func (c *MockConnector) DeletePersonById(ctx context.Context, id string) (*person.Person, error) {
	return remove(ctx, personResource, id, mockFinder(c, c.people.delete))
}
