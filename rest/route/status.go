package route

import (
	"context"
	"net/http"

	"github.com/evergreen-ci/gimlet"
	"github.com/web420/web420"
	"github.com/web420/web420/rest/data"
	"github.com/web420/web420/rest/model"
)

////////////////////////////////////////////////
//
// GET /api/status

type statusGetHandler struct {
	sc data.Connector
}

func makeGetStatus(sc data.Connector) gimlet.RouteHandler {
	return &statusGetHandler{sc: sc}
}

func (h *statusGetHandler) Factory() gimlet.RouteHandler {
	return &statusGetHandler{sc: h.sc}
}

func (h *statusGetHandler) Parse(ctx context.Context, r *http.Request) error { return nil }

// Run always answers 200; an unreachable store shows up in the body.
func (h *statusGetHandler) Run(ctx context.Context) gimlet.Responder {
	return makeResponder(model.NewAPIStatus(web420.BuildRevision, web420.ClientVersion, h.sc.Ping(ctx)))
}
