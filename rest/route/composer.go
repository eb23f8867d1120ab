package route

import (
	"context"
	"net/http"

	"github.com/evergreen-ci/gimlet"
	"github.com/web420/web420/model/composer"
	"github.com/web420/web420/rest/data"
	"github.com/web420/web420/rest/model"
)

////////////////////////////////////////////////
//
// GET /api/composers

type composersGetHandler struct {
	sc data.Connector
}

func makeGetComposers(sc data.Connector) gimlet.RouteHandler {
	return &composersGetHandler{sc: sc}
}

func (h *composersGetHandler) Factory() gimlet.RouteHandler {
	return &composersGetHandler{sc: h.sc}
}

func (h *composersGetHandler) Parse(ctx context.Context, r *http.Request) error { return nil }

func (h *composersGetHandler) Run(ctx context.Context) gimlet.Responder {
	composers, err := h.sc.FindAllComposers(ctx)
	if err != nil {
		return makeErrorResponder(ctx, err)
	}
	return makeResponder(model.BuildComposers(composers))
}

////////////////////////////////////////////////
//
// GET /api/composers/{id}

type composerGetHandler struct {
	id string
	sc data.Connector
}

func makeGetComposer(sc data.Connector) gimlet.RouteHandler {
	return &composerGetHandler{sc: sc}
}

func (h *composerGetHandler) Factory() gimlet.RouteHandler {
	return &composerGetHandler{sc: h.sc}
}

func (h *composerGetHandler) Parse(ctx context.Context, r *http.Request) error {
	h.id = gimlet.GetVars(r)["id"]
	return nil
}

func (h *composerGetHandler) Run(ctx context.Context) gimlet.Responder {
	c, err := h.sc.FindComposerById(ctx, h.id)
	if err != nil {
		return makeErrorResponder(ctx, err)
	}
	apiComposer := model.APIComposer{}
	apiComposer.BuildFromService(*c)
	return makeResponder(apiComposer)
}

////////////////////////////////////////////////
//
// POST /api/composers

type composerPostHandler struct {
	in model.APIComposerInput
	sc data.Connector
}

func makePostComposer(sc data.Connector) gimlet.RouteHandler {
	return &composerPostHandler{sc: sc}
}

func (h *composerPostHandler) Factory() gimlet.RouteHandler {
	return &composerPostHandler{sc: h.sc}
}

func (h *composerPostHandler) Parse(ctx context.Context, r *http.Request) error {
	return readInput(r, &h.in)
}

func (h *composerPostHandler) Run(ctx context.Context) gimlet.Responder {
	c := h.in.ToService()
	if err := h.sc.CreateComposer(ctx, &c); err != nil {
		return makeErrorResponder(ctx, err)
	}
	apiComposer := model.APIComposer{}
	apiComposer.BuildFromService(c)
	return makeResponder(apiComposer)
}

////////////////////////////////////////////////
//
// PUT /api/composers/{id}

type composerPutHandler struct {
	id string
	in model.APIComposerInput
	sc data.Connector
}

func makePutComposer(sc data.Connector) gimlet.RouteHandler {
	return &composerPutHandler{sc: sc}
}

func (h *composerPutHandler) Factory() gimlet.RouteHandler {
	return &composerPutHandler{sc: h.sc}
}

func (h *composerPutHandler) Parse(ctx context.Context, r *http.Request) error {
	h.id = gimlet.GetVars(r)["id"]
	return readInput(r, &h.in)
}

func (h *composerPutHandler) Run(ctx context.Context) gimlet.Responder {
	c, err := h.sc.MutateComposer(ctx, h.id, func(c *composer.Composer) error {
		h.in.Apply(c)
		return nil
	})
	if err != nil {
		return makeErrorResponder(ctx, err)
	}
	apiComposer := model.APIComposer{}
	apiComposer.BuildFromService(*c)
	return makeResponder(apiComposer)
}

////////////////////////////////////////////////
//
// DELETE /api/composers/{id}

type composerDeleteHandler struct {
	id string
	sc data.Connector
}

func makeDeleteComposer(sc data.Connector) gimlet.RouteHandler {
	return &composerDeleteHandler{sc: sc}
}

func (h *composerDeleteHandler) Factory() gimlet.RouteHandler {
	return &composerDeleteHandler{sc: h.sc}
}

func (h *composerDeleteHandler) Parse(ctx context.Context, r *http.Request) error {
	h.id = gimlet.GetVars(r)["id"]
	return nil
}

func (h *composerDeleteHandler) Run(ctx context.Context) gimlet.Responder {
	c, err := h.sc.DeleteComposerById(ctx, h.id)
	if err != nil {
		return makeErrorResponder(ctx, err)
	}
	apiComposer := model.APIComposer{}
	apiComposer.BuildFromService(*c)
	return makeResponder(apiComposer)
}
