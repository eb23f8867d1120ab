package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/web420/web420/rest/model"
)

func (c *communicatorImpl) get(ctx context.Context, path string, out any) error {
	return c.retryRequest(ctx, requestInfo{method: http.MethodGet, path: path}, out)
}

func (c *communicatorImpl) send(ctx context.Context, method, path string, data, out any) error {
	return c.request(ctx, requestInfo{method: method, path: path}, data, out)
}

func (c *communicatorImpl) GetStatus(ctx context.Context) (*model.APIStatus, error) {
	out := &model.APIStatus{}
	if err := c.get(ctx, "status", out); err != nil {
		return nil, err
	}
	return out, nil
}

func teamPath(id string) string { return "teams/" + url.PathEscape(id) }

func (c *communicatorImpl) GetTeams(ctx context.Context) ([]model.APITeam, error) {
	out := []model.APITeam{}
	if err := c.get(ctx, "teams", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *communicatorImpl) GetTeam(ctx context.Context, id string) (*model.APITeam, error) {
	out := &model.APITeam{}
	return resultOrNil(out, c.get(ctx, teamPath(id), out))
}

func (c *communicatorImpl) CreateTeam(ctx context.Context, in model.APITeamInput) (*model.APITeam, error) {
	out := &model.APITeam{}
	return resultOrNil(out, c.send(ctx, http.MethodPost, "teams", in, out))
}

func (c *communicatorImpl) UpdateTeam(ctx context.Context, id string, in model.APITeamInput) (*model.APITeam, error) {
	out := &model.APITeam{}
	return resultOrNil(out, c.send(ctx, http.MethodPut, teamPath(id), in, out))
}

func (c *communicatorImpl) DeleteTeam(ctx context.Context, id string) (*model.APITeam, error) {
	out := &model.APITeam{}
	return resultOrNil(out, c.send(ctx, http.MethodDelete, teamPath(id), nil, out))
}

func (c *communicatorImpl) AddPlayer(ctx context.Context, id string, player model.APIPlayer) (*model.APITeam, error) {
	out := &model.APITeam{}
	return resultOrNil(out, c.send(ctx, http.MethodPost, teamPath(id)+"/players", player, out))
}

func (c *communicatorImpl) GetPlayers(ctx context.Context, id string) ([]model.APIPlayer, error) {
	out := []model.APIPlayer{}
	if err := c.get(ctx, teamPath(id)+"/players", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func composerPath(id string) string { return "composers/" + url.PathEscape(id) }

func (c *communicatorImpl) GetComposers(ctx context.Context) ([]model.APIComposer, error) {
	out := []model.APIComposer{}
	if err := c.get(ctx, "composers", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *communicatorImpl) GetComposer(ctx context.Context, id string) (*model.APIComposer, error) {
	out := &model.APIComposer{}
	return resultOrNil(out, c.get(ctx, composerPath(id), out))
}

func (c *communicatorImpl) CreateComposer(ctx context.Context, in model.APIComposerInput) (*model.APIComposer, error) {
	out := &model.APIComposer{}
	return resultOrNil(out, c.send(ctx, http.MethodPost, "composers", in, out))
}

func (c *communicatorImpl) UpdateComposer(ctx context.Context, id string, in model.APIComposerInput) (*model.APIComposer, error) {
	out := &model.APIComposer{}
	return resultOrNil(out, c.send(ctx, http.MethodPut, composerPath(id), in, out))
}

func (c *communicatorImpl) DeleteComposer(ctx context.Context, id string) (*model.APIComposer, error) {
	out := &model.APIComposer{}
	return resultOrNil(out, c.send(ctx, http.MethodDelete, composerPath(id), nil, out))
}

func personPath(id string) string { return "people/" + url.PathEscape(id) }

func (c *communicatorImpl) GetPeople(ctx context.Context) ([]model.APIPerson, error) {
	out := []model.APIPerson{}
	if err := c.get(ctx, "people", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *communicatorImpl) GetPerson(ctx context.Context, id string) (*model.APIPerson, error) {
	out := &model.APIPerson{}
	return resultOrNil(out, c.get(ctx, personPath(id), out))
}

func (c *communicatorImpl) CreatePerson(ctx context.Context, in model.APIPersonInput) (*model.APIPerson, error) {
	out := &model.APIPerson{}
	return resultOrNil(out, c.send(ctx, http.MethodPost, "people", in, out))
}

func (c *communicatorImpl) UpdatePerson(ctx context.Context, id string, in model.APIPersonInput) (*model.APIPerson, error) {
	out := &model.APIPerson{}
	return resultOrNil(out, c.send(ctx, http.MethodPut, personPath(id), in, out))
}

func (c *communicatorImpl) DeletePerson(ctx context.Context, id string) (*model.APIPerson, error) {
	out := &model.APIPerson{}
	return resultOrNil(out, c.send(ctx, http.MethodDelete, personPath(id), nil, out))
}

func (c *communicatorImpl) AddRole(ctx context.Context, id string, role model.APIRole) (*model.APIPerson, error) {
	out := &model.APIPerson{}
	return resultOrNil(out, c.send(ctx, http.MethodPost, personPath(id)+"/roles", role, out))
}

func (c *communicatorImpl) GetRoles(ctx context.Context, id string) ([]model.APIRole, error) {
	out := []model.APIRole{}
	if err := c.get(ctx, personPath(id)+"/roles", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *communicatorImpl) AddDependent(ctx context.Context, id string, dependent model.APIDependent) (*model.APIPerson, error) {
	out := &model.APIPerson{}
	return resultOrNil(out, c.send(ctx, http.MethodPost, personPath(id)+"/dependents", dependent, out))
}

func (c *communicatorImpl) GetDependents(ctx context.Context, id string) ([]model.APIDependent, error) {
	out := []model.APIDependent{}
	if err := c.get(ctx, personPath(id)+"/dependents", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func customerPath(id string) string { return "customers/" + url.PathEscape(id) }

func lineItemsPath(id string, index int) string {
	return fmt.Sprintf("%s/invoices/%d/lineItems", customerPath(id), index)
}

func (c *communicatorImpl) GetCustomers(ctx context.Context, userName string) ([]model.APICustomer, error) {
	path := "customers"
	if userName != "" {
		path += "?" + url.Values{"userName": []string{userName}}.Encode()
	}
	out := []model.APICustomer{}
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *communicatorImpl) GetCustomer(ctx context.Context, id string) (*model.APICustomer, error) {
	out := &model.APICustomer{}
	return resultOrNil(out, c.get(ctx, customerPath(id), out))
}

func (c *communicatorImpl) CreateCustomer(ctx context.Context, in model.APICustomerInput) (*model.APICustomer, error) {
	out := &model.APICustomer{}
	return resultOrNil(out, c.send(ctx, http.MethodPost, "customers", in, out))
}

func (c *communicatorImpl) UpdateCustomer(ctx context.Context, id string, in model.APICustomerInput) (*model.APICustomer, error) {
	out := &model.APICustomer{}
	return resultOrNil(out, c.send(ctx, http.MethodPut, customerPath(id), in, out))
}

func (c *communicatorImpl) DeleteCustomer(ctx context.Context, id string) (*model.APICustomer, error) {
	out := &model.APICustomer{}
	return resultOrNil(out, c.send(ctx, http.MethodDelete, customerPath(id), nil, out))
}

func (c *communicatorImpl) AddInvoice(ctx context.Context, id string, invoice model.APIInvoice) (*model.APICustomer, error) {
	out := &model.APICustomer{}
	return resultOrNil(out, c.send(ctx, http.MethodPost, customerPath(id)+"/invoices", invoice, out))
}

func (c *communicatorImpl) GetInvoices(ctx context.Context, id string) ([]model.APIInvoice, error) {
	out := []model.APIInvoice{}
	if err := c.get(ctx, customerPath(id)+"/invoices", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *communicatorImpl) AddLineItem(ctx context.Context, id string, index int, item model.APILineItem) (*model.APICustomer, error) {
	out := &model.APICustomer{}
	return resultOrNil(out, c.send(ctx, http.MethodPost, lineItemsPath(id, index), item, out))
}

func (c *communicatorImpl) GetLineItems(ctx context.Context, id string, index int) ([]model.APILineItem, error) {
	out := []model.APILineItem{}
	if err := c.get(ctx, lineItemsPath(id, index), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func resultOrNil[T any](out *T, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	return out, nil
}
