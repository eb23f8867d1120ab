package data

import (
	"context"

	"github.com/web420/web420/model/composer"
	"github.com/web420/web420/model/customer"
	"github.com/web420/web420/model/person"
	"github.com/web420/web420/model/team"
)

// Connector is the interface route handlers use to reach the store.
//
// Find*ById, Mutate* and Delete*ById return a rest.NotFoundError when the
// identifier matches no document. Every failure of the store call itself
// comes back as a rest.StoreError. Errors returned by a mutation
// function are passed through unchanged.
type Connector interface {
	TeamConnector
	ComposerConnector
	PersonConnector
	CustomerConnector

	// Ping checks that the store is reachable.
	Ping(context.Context) error
}

type TeamConnector interface {
	FindAllTeams(context.Context) ([]team.Team, error)
	FindTeamById(context.Context, string) (*team.Team, error)
	CreateTeam(context.Context, *team.Team) error
	// MutateTeam resolves the team, applies the change in memory and
	// saves the whole document.
	MutateTeam(context.Context, string, func(*team.Team) error) (*team.Team, error)
	DeleteTeamById(context.Context, string) (*team.Team, error)
}

type ComposerConnector interface {
	FindAllComposers(context.Context) ([]composer.Composer, error)
	FindComposerById(context.Context, string) (*composer.Composer, error)
	CreateComposer(context.Context, *composer.Composer) error
	MutateComposer(context.Context, string, func(*composer.Composer) error) (*composer.Composer, error)
	DeleteComposerById(context.Context, string) (*composer.Composer, error)
}

type PersonConnector interface {
	FindAllPeople(context.Context) ([]person.Person, error)
	FindPersonById(context.Context, string) (*person.Person, error)
	CreatePerson(context.Context, *person.Person) error
	MutatePerson(context.Context, string, func(*person.Person) error) (*person.Person, error)
	DeletePersonById(context.Context, string) (*person.Person, error)
}

type CustomerConnector interface {
	// FindAllCustomers returns every customer, or only those with the
	// given user name when it is not empty.
	FindAllCustomers(context.Context, string) ([]customer.Customer, error)
	FindCustomerById(context.Context, string) (*customer.Customer, error)
	CreateCustomer(context.Context, *customer.Customer) error
	MutateCustomer(context.Context, string, func(*customer.Customer) error) (*customer.Customer, error)
	DeleteCustomerById(context.Context, string) (*customer.Customer, error)
}
