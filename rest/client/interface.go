package client

import (
	"context"
	"time"

	"github.com/web420/web420/rest/model"
)

// Communicator is an interface for communicating with the API server.
// Failed requests return an *APIError carrying the status and message
// the server answered with.
type Communicator interface {
	// SetTimeoutStart sets the initial timeout for a request.
	SetTimeoutStart(time.Duration)
	// SetTimeoutMax sets the maximum timeout for a request.
	SetTimeoutMax(time.Duration)
	// SetMaxAttempts sets the number of attempts a request will be made.
	SetMaxAttempts(int)

	// Close releases resources used by the communicator.
	Close()

	GetStatus(context.Context) (*model.APIStatus, error)

	GetTeams(context.Context) ([]model.APITeam, error)
	GetTeam(context.Context, string) (*model.APITeam, error)
	CreateTeam(context.Context, model.APITeamInput) (*model.APITeam, error)
	UpdateTeam(context.Context, string, model.APITeamInput) (*model.APITeam, error)
	DeleteTeam(context.Context, string) (*model.APITeam, error)
	AddPlayer(context.Context, string, model.APIPlayer) (*model.APITeam, error)
	GetPlayers(context.Context, string) ([]model.APIPlayer, error)

	GetComposers(context.Context) ([]model.APIComposer, error)
	GetComposer(context.Context, string) (*model.APIComposer, error)
	CreateComposer(context.Context, model.APIComposerInput) (*model.APIComposer, error)
	UpdateComposer(context.Context, string, model.APIComposerInput) (*model.APIComposer, error)
	DeleteComposer(context.Context, string) (*model.APIComposer, error)

	GetPeople(context.Context) ([]model.APIPerson, error)
	GetPerson(context.Context, string) (*model.APIPerson, error)
	CreatePerson(context.Context, model.APIPersonInput) (*model.APIPerson, error)
	UpdatePerson(context.Context, string, model.APIPersonInput) (*model.APIPerson, error)
	DeletePerson(context.Context, string) (*model.APIPerson, error)
	AddRole(context.Context, string, model.APIRole) (*model.APIPerson, error)
	GetRoles(context.Context, string) ([]model.APIRole, error)
	AddDependent(context.Context, string, model.APIDependent) (*model.APIPerson, error)
	GetDependents(context.Context, string) ([]model.APIDependent, error)

	// GetCustomers lists customers, only those with the user name when
	// it is not empty.
	GetCustomers(context.Context, string) ([]model.APICustomer, error)
	GetCustomer(context.Context, string) (*model.APICustomer, error)
	CreateCustomer(context.Context, model.APICustomerInput) (*model.APICustomer, error)
	UpdateCustomer(context.Context, string, model.APICustomerInput) (*model.APICustomer, error)
	DeleteCustomer(context.Context, string) (*model.APICustomer, error)
	AddInvoice(context.Context, string, model.APIInvoice) (*model.APICustomer, error)
	GetInvoices(context.Context, string) ([]model.APIInvoice, error)
	AddLineItem(context.Context, string, int, model.APILineItem) (*model.APICustomer, error)
	GetLineItems(context.Context, string, int) ([]model.APILineItem, error)
}
