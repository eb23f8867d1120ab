package route

import (
	"net/http"
	"path"

	"github.com/evergreen-ci/gimlet"
	"github.com/pkg/errors"
	"github.com/web420/web420"
	"github.com/web420/web420/rest/data"
	"github.com/web420/web420/rest/model"
)

// routeDef declares one API route. The same table registers the
// handlers and generates the API documentation.
type routeDef struct {
	method   string
	path     string
	tag      string
	summary  string
	query    []string
	body     any
	resource string
	make     func(data.Connector) gimlet.RouteHandler
}

// fullPath is the route as mounted under the API prefix.
func (r routeDef) fullPath() string {
	return path.Join("/", web420.RestRoutePrefix, r.path)
}

func routeTable() []routeDef {
	return []routeDef{
		{method: http.MethodGet, path: "/teams", tag: "Teams", summary: "List all teams.", make: makeGetTeams},
		{method: http.MethodPost, path: "/teams", tag: "Teams", summary: "Create a team.", body: model.APITeamInput{}, make: makePostTeam},
		{method: http.MethodGet, path: "/teams/{id}", tag: "Teams", summary: "Find a team by id.", resource: "team", make: makeGetTeam},
		{method: http.MethodPut, path: "/teams/{id}", tag: "Teams", summary: "Update a team.", body: model.APITeamInput{}, resource: "team", make: makePutTeam},
		{method: http.MethodDelete, path: "/teams/{id}", tag: "Teams", summary: "Delete a team and its players.", resource: "team", make: makeDeleteTeam},
		{method: http.MethodPost, path: "/teams/{id}/players", tag: "Players", summary: "Add a player to a team.", body: model.APIPlayer{}, resource: "team", make: makePostTeamPlayer},
		{method: http.MethodGet, path: "/teams/{id}/players", tag: "Players", summary: "List the players of a team.", resource: "team", make: makeGetTeamPlayers},

		{method: http.MethodGet, path: "/composers", tag: "Composers", summary: "List all composers.", make: makeGetComposers},
		{method: http.MethodPost, path: "/composers", tag: "Composers", summary: "Create a composer.", body: model.APIComposerInput{}, make: makePostComposer},
		{method: http.MethodGet, path: "/composers/{id}", tag: "Composers", summary: "Find a composer by id.", resource: "composer", make: makeGetComposer},
		{method: http.MethodPut, path: "/composers/{id}", tag: "Composers", summary: "Update a composer.", body: model.APIComposerInput{}, resource: "composer", make: makePutComposer},
		{method: http.MethodDelete, path: "/composers/{id}", tag: "Composers", summary: "Delete a composer.", resource: "composer", make: makeDeleteComposer},

		{method: http.MethodGet, path: "/people", tag: "People", summary: "List all people.", make: makeGetPeople},
		{method: http.MethodPost, path: "/people", tag: "People", summary: "Create a person.", body: model.APIPersonInput{}, make: makePostPerson},
		{method: http.MethodGet, path: "/people/{id}", tag: "People", summary: "Find a person by id.", resource: "person", make: makeGetPerson},
		{method: http.MethodPut, path: "/people/{id}", tag: "People", summary: "Update a person.", body: model.APIPersonInput{}, resource: "person", make: makePutPerson},
		{method: http.MethodDelete, path: "/people/{id}", tag: "People", summary: "Delete a person.", resource: "person", make: makeDeletePerson},
		{method: http.MethodPost, path: "/people/{id}/roles", tag: "Roles", summary: "Add a role to a person.", body: model.APIRole{}, resource: "person", make: makePostPersonRole},
		{method: http.MethodGet, path: "/people/{id}/roles", tag: "Roles", summary: "List the roles of a person.", resource: "person", make: makeGetPersonRoles},
		{method: http.MethodPost, path: "/people/{id}/dependents", tag: "Dependents", summary: "Add a dependent to a person.", body: model.APIDependent{}, resource: "person", make: makePostPersonDependent},
		{method: http.MethodGet, path: "/people/{id}/dependents", tag: "Dependents", summary: "List the dependents of a person.", resource: "person", make: makeGetPersonDependents},

		{method: http.MethodGet, path: "/customers", tag: "Customers", summary: "List customers, optionally by userName.", query: []string{"userName"}, make: makeGetCustomers},
		{method: http.MethodPost, path: "/customers", tag: "Customers", summary: "Create a customer.", body: model.APICustomerInput{}, make: makePostCustomer},
		{method: http.MethodPost, path: "/createCustomer", tag: "Customers", summary: "Create a customer (legacy path).", body: model.APICustomerInput{}, make: makePostCustomer},
		{method: http.MethodGet, path: "/customers/{id}", tag: "Customers", summary: "Find a customer by id.", resource: "customer", make: makeGetCustomer},
		{method: http.MethodPut, path: "/customers/{id}", tag: "Customers", summary: "Update a customer.", body: model.APICustomerInput{}, resource: "customer", make: makePutCustomer},
		{method: http.MethodDelete, path: "/customers/{id}", tag: "Customers", summary: "Delete a customer and its invoices.", resource: "customer", make: makeDeleteCustomer},
		{method: http.MethodPost, path: "/customers/{id}/invoices", tag: "Invoices", summary: "Add an invoice to a customer.", body: model.APIInvoice{}, resource: "customer", make: makePostCustomerInvoice},
		{method: http.MethodGet, path: "/customers/{id}/invoices", tag: "Invoices", summary: "List the invoices of a customer.", resource: "customer", make: makeGetCustomerInvoices},
		{method: http.MethodPost, path: "/customers/{id}/invoices/{index}/lineItems", tag: "Line items", summary: "Add a line item to the invoice at a position.", body: model.APILineItem{}, resource: "customer", make: makePostInvoiceLineItem},
		{method: http.MethodGet, path: "/customers/{id}/invoices/{index}/lineItems", tag: "Line items", summary: "List the line items of the invoice at a position.", resource: "customer", make: makeGetInvoiceLineItems},

		{method: http.MethodGet, path: "/status", tag: "Status", summary: "Report the build and store reachability.", make: makeGetStatus},
	}
}

// GetHandler builds the application: every route in the table mounted
// under the API prefix, plus the documentation routes.
func GetHandler(sc data.Connector) (http.Handler, error) {
	app := gimlet.NewApp()
	app.NoVersions = true
	app.ResetMiddleware()
	app.AddMiddleware(gimlet.NewAppLogger())
	app.AddMiddleware(newRecoveryMiddleware())

	routes := routeTable()
	for _, r := range routes {
		app.AddRoute(r.fullPath()).Method(r.method).RouteHandler(withMessages(r.make(sc)))
	}

	docs, err := newAPIDocs(routes)
	if err != nil {
		return nil, errors.Wrap(err, "generating API documentation")
	}
	app.AddRoute(web420.APIDocsRoute).Get().Handler(docs.serveUI)
	app.AddRoute(web420.APIDocsRoute + ".json").Get().Handler(docs.serveJSON)
	app.AddRoute(web420.APIDocsRoute + ".yaml").Get().Handler(docs.serveYAML)

	return app.Handler()
}
