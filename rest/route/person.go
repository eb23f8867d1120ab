package route

import (
	"context"
	"net/http"

	"github.com/evergreen-ci/gimlet"
	"github.com/web420/web420/model/person"
	"github.com/web420/web420/rest/data"
	"github.com/web420/web420/rest/model"
)

func personResponder(p *person.Person) gimlet.Responder {
	apiPerson := model.APIPerson{}
	apiPerson.BuildFromService(*p)
	return makeResponder(apiPerson)
}

////////////////////////////////////////////////
//
// GET /api/people

type peopleGetHandler struct {
	sc data.Connector
}

func makeGetPeople(sc data.Connector) gimlet.RouteHandler {
	return &peopleGetHandler{sc: sc}
}

func (h *peopleGetHandler) Factory() gimlet.RouteHandler {
	return &peopleGetHandler{sc: h.sc}
}

func (h *peopleGetHandler) Parse(ctx context.Context, r *http.Request) error { return nil }

func (h *peopleGetHandler) Run(ctx context.Context) gimlet.Responder {
	people, err := h.sc.FindAllPeople(ctx)
	if err != nil {
		return makeErrorResponder(ctx, err)
	}
	return makeResponder(model.BuildPeople(people))
}

////////////////////////////////////////////////
//
// GET /api/people/{id}

type personGetHandler struct {
	id string
	sc data.Connector
}

func makeGetPerson(sc data.Connector) gimlet.RouteHandler {
	return &personGetHandler{sc: sc}
}

func (h *personGetHandler) Factory() gimlet.RouteHandler {
	return &personGetHandler{sc: h.sc}
}

func (h *personGetHandler) Parse(ctx context.Context, r *http.Request) error {
	h.id = gimlet.GetVars(r)["id"]
	return nil
}

func (h *personGetHandler) Run(ctx context.Context) gimlet.Responder {
	p, err := h.sc.FindPersonById(ctx, h.id)
	if err != nil {
		return makeErrorResponder(ctx, err)
	}
	return personResponder(p)
}

////////////////////////////////////////////////
//
// POST /api/people

type personPostHandler struct {
	in model.APIPersonInput
	sc data.Connector
}

func makePostPerson(sc data.Connector) gimlet.RouteHandler {
	return &personPostHandler{sc: sc}
}

func (h *personPostHandler) Factory() gimlet.RouteHandler {
	return &personPostHandler{sc: h.sc}
}

func (h *personPostHandler) Parse(ctx context.Context, r *http.Request) error {
	return readInput(r, &h.in)
}

func (h *personPostHandler) Run(ctx context.Context) gimlet.Responder {
	p := h.in.ToService()
	if err := h.sc.CreatePerson(ctx, &p); err != nil {
		return makeErrorResponder(ctx, err)
	}
	return personResponder(&p)
}

////////////////////////////////////////////////
//
// PUT /api/people/{id}

type personPutHandler struct {
	id string
	in model.APIPersonInput
	sc data.Connector
}

func makePutPerson(sc data.Connector) gimlet.RouteHandler {
	return &personPutHandler{sc: sc}
}

func (h *personPutHandler) Factory() gimlet.RouteHandler {
	return &personPutHandler{sc: h.sc}
}

func (h *personPutHandler) Parse(ctx context.Context, r *http.Request) error {
	h.id = gimlet.GetVars(r)["id"]
	return readInput(r, &h.in)
}

func (h *personPutHandler) Run(ctx context.Context) gimlet.Responder {
	p, err := h.sc.MutatePerson(ctx, h.id, func(p *person.Person) error {
		h.in.Apply(p)
		return nil
	})
	if err != nil {
		return makeErrorResponder(ctx, err)
	}
	return personResponder(p)
}

////////////////////////////////////////////////
//
// DELETE /api/people/{id}

type personDeleteHandler struct {
	id string
	sc data.Connector
}

func makeDeletePerson(sc data.Connector) gimlet.RouteHandler {
	return &personDeleteHandler{sc: sc}
}

func (h *personDeleteHandler) Factory() gimlet.RouteHandler {
	return &personDeleteHandler{sc: h.sc}
}

func (h *personDeleteHandler) Parse(ctx context.Context, r *http.Request) error {
	h.id = gimlet.GetVars(r)["id"]
	return nil
}

func (h *personDeleteHandler) Run(ctx context.Context) gimlet.Responder {
	p, err := h.sc.DeletePersonById(ctx, h.id)
	if err != nil {
		return makeErrorResponder(ctx, err)
	}
	return personResponder(p)
}

////////////////////////////////////////////////
//
// POST /api/people/{id}/roles

type personRolesPostHandler struct {
	id   string
	role model.APIRole
	sc   data.Connector
}

func makePostPersonRole(sc data.Connector) gimlet.RouteHandler {
	return &personRolesPostHandler{sc: sc}
}

func (h *personRolesPostHandler) Factory() gimlet.RouteHandler {
	return &personRolesPostHandler{sc: h.sc}
}

func (h *personRolesPostHandler) Parse(ctx context.Context, r *http.Request) error {
	h.id = gimlet.GetVars(r)["id"]
	return readInput(r, &h.role)
}

func (h *personRolesPostHandler) Run(ctx context.Context) gimlet.Responder {
	p, err := h.sc.MutatePerson(ctx, h.id, func(p *person.Person) error {
		p.AddRole(h.role.ToService())
		return nil
	})
	if err != nil {
		return makeErrorResponder(ctx, err)
	}
	return personResponder(p)
}

////////////////////////////////////////////////
//
// GET /api/people/{id}/roles

type personRolesGetHandler struct {
	id string
	sc data.Connector
}

func makeGetPersonRoles(sc data.Connector) gimlet.RouteHandler {
	return &personRolesGetHandler{sc: sc}
}

func (h *personRolesGetHandler) Factory() gimlet.RouteHandler {
	return &personRolesGetHandler{sc: h.sc}
}

func (h *personRolesGetHandler) Parse(ctx context.Context, r *http.Request) error {
	h.id = gimlet.GetVars(r)["id"]
	return nil
}

func (h *personRolesGetHandler) Run(ctx context.Context) gimlet.Responder {
	p, err := h.sc.FindPersonById(ctx, h.id)
	if err != nil {
		return makeErrorResponder(ctx, err)
	}
	return makeResponder(model.BuildRoles(p.Roles))
}

////////////////////////////////////////////////
//
// POST /api/people/{id}/dependents

type personDependentsPostHandler struct {
	id        string
	dependent model.APIDependent
	sc        data.Connector
}

func makePostPersonDependent(sc data.Connector) gimlet.RouteHandler {
	return &personDependentsPostHandler{sc: sc}
}

func (h *personDependentsPostHandler) Factory() gimlet.RouteHandler {
	return &personDependentsPostHandler{sc: h.sc}
}

func (h *personDependentsPostHandler) Parse(ctx context.Context, r *http.Request) error {
	h.id = gimlet.GetVars(r)["id"]
	return readInput(r, &h.dependent)
}

func (h *personDependentsPostHandler) Run(ctx context.Context) gimlet.Responder {
	p, err := h.sc.MutatePerson(ctx, h.id, func(p *person.Person) error {
		p.AddDependent(h.dependent.ToService())
		return nil
	})
	if err != nil {
		return makeErrorResponder(ctx, err)
	}
	return personResponder(p)
}

////////////////////////////////////////////////
//
// GET /api/people/{id}/dependents

type personDependentsGetHandler struct {
	id string
	sc data.Connector
}

func makeGetPersonDependents(sc data.Connector) gimlet.RouteHandler {
	return &personDependentsGetHandler{sc: sc}
}

func (h *personDependentsGetHandler) Factory() gimlet.RouteHandler {
	return &personDependentsGetHandler{sc: h.sc}
}

func (h *personDependentsGetHandler) Parse(ctx context.Context, r *http.Request) error {
	h.id = gimlet.GetVars(r)["id"]
	return nil
}

func (h *personDependentsGetHandler) Run(ctx context.Context) gimlet.Responder {
	p, err := h.sc.FindPersonById(ctx, h.id)
	if err != nil {
		return makeErrorResponder(ctx, err)
	}
	return makeResponder(model.BuildDependents(p.Dependents))
}
