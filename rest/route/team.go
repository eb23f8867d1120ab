package route

import (
	"context"
	"net/http"

	"github.com/evergreen-ci/gimlet"
	"github.com/web420/web420/model/team"
	"github.com/web420/web420/rest/data"
	"github.com/web420/web420/rest/model"
)

////////////////////////////////////////////////
//
// GET /api/teams

type teamsGetHandler struct {
	sc data.Connector
}

func makeGetTeams(sc data.Connector) gimlet.RouteHandler {
	return &teamsGetHandler{sc: sc}
}

func (h *teamsGetHandler) Factory() gimlet.RouteHandler {
	return &teamsGetHandler{sc: h.sc}
}

func (h *teamsGetHandler) Parse(ctx context.Context, r *http.Request) error { return nil }

func (h *teamsGetHandler) Run(ctx context.Context) gimlet.Responder {
	teams, err := h.sc.FindAllTeams(ctx)
	if err != nil {
		return makeErrorResponder(ctx, err)
	}
	return makeResponder(model.BuildTeams(teams))
}

////////////////////////////////////////////////
//
// GET /api/teams/{id}

type teamGetHandler struct {
	id string
	sc data.Connector
}

func makeGetTeam(sc data.Connector) gimlet.RouteHandler {
	return &teamGetHandler{sc: sc}
}

func (h *teamGetHandler) Factory() gimlet.RouteHandler {
	return &teamGetHandler{sc: h.sc}
}

func (h *teamGetHandler) Parse(ctx context.Context, r *http.Request) error {
	h.id = gimlet.GetVars(r)["id"]
	return nil
}

func (h *teamGetHandler) Run(ctx context.Context) gimlet.Responder {
	t, err := h.sc.FindTeamById(ctx, h.id)
	if err != nil {
		return makeErrorResponder(ctx, err)
	}
	apiTeam := model.APITeam{}
	apiTeam.BuildFromService(*t)
	return makeResponder(apiTeam)
}

////////////////////////////////////////////////
//
// POST /api/teams

type teamPostHandler struct {
	in model.APITeamInput
	sc data.Connector
}

func makePostTeam(sc data.Connector) gimlet.RouteHandler {
	return &teamPostHandler{sc: sc}
}

func (h *teamPostHandler) Factory() gimlet.RouteHandler {
	return &teamPostHandler{sc: h.sc}
}

func (h *teamPostHandler) Parse(ctx context.Context, r *http.Request) error {
	return readInput(r, &h.in)
}

func (h *teamPostHandler) Run(ctx context.Context) gimlet.Responder {
	t := h.in.ToService()
	if err := h.sc.CreateTeam(ctx, &t); err != nil {
		return makeErrorResponder(ctx, err)
	}
	apiTeam := model.APITeam{}
	apiTeam.BuildFromService(t)
	return makeResponder(apiTeam)
}

////////////////////////////////////////////////
//
// PUT /api/teams/{id}

type teamPutHandler struct {
	id string
	in model.APITeamInput
	sc data.Connector
}

func makePutTeam(sc data.Connector) gimlet.RouteHandler {
	return &teamPutHandler{sc: sc}
}

func (h *teamPutHandler) Factory() gimlet.RouteHandler {
	return &teamPutHandler{sc: h.sc}
}

func (h *teamPutHandler) Parse(ctx context.Context, r *http.Request) error {
	h.id = gimlet.GetVars(r)["id"]
	return readInput(r, &h.in)
}

func (h *teamPutHandler) Run(ctx context.Context) gimlet.Responder {
	t, err := h.sc.MutateTeam(ctx, h.id, func(t *team.Team) error {
		h.in.Apply(t)
		return nil
	})
	if err != nil {
		return makeErrorResponder(ctx, err)
	}
	apiTeam := model.APITeam{}
	apiTeam.BuildFromService(*t)
	return makeResponder(apiTeam)
}

////////////////////////////////////////////////
//
// DELETE /api/teams/{id}

type teamDeleteHandler struct {
	id string
	sc data.Connector
}

func makeDeleteTeam(sc data.Connector) gimlet.RouteHandler {
	return &teamDeleteHandler{sc: sc}
}

func (h *teamDeleteHandler) Factory() gimlet.RouteHandler {
	return &teamDeleteHandler{sc: h.sc}
}

func (h *teamDeleteHandler) Parse(ctx context.Context, r *http.Request) error {
	h.id = gimlet.GetVars(r)["id"]
	return nil
}

func (h *teamDeleteHandler) Run(ctx context.Context) gimlet.Responder {
	t, err := h.sc.DeleteTeamById(ctx, h.id)
	if err != nil {
		return makeErrorResponder(ctx, err)
	}
	apiTeam := model.APITeam{}
	apiTeam.BuildFromService(*t)
	return makeResponder(apiTeam)
}

////////////////////////////////////////////////
//
// POST /api/teams/{id}/players

type teamPlayersPostHandler struct {
	id     string
	player model.APIPlayer
	sc     data.Connector
}

func makePostTeamPlayer(sc data.Connector) gimlet.RouteHandler {
	return &teamPlayersPostHandler{sc: sc}
}

func (h *teamPlayersPostHandler) Factory() gimlet.RouteHandler {
	return &teamPlayersPostHandler{sc: h.sc}
}

func (h *teamPlayersPostHandler) Parse(ctx context.Context, r *http.Request) error {
	h.id = gimlet.GetVars(r)["id"]
	return readInput(r, &h.player)
}

// Run appends the player to the team's roster and returns the team.
func (h *teamPlayersPostHandler) Run(ctx context.Context) gimlet.Responder {
	t, err := h.sc.MutateTeam(ctx, h.id, func(t *team.Team) error {
		t.AddPlayer(h.player.ToService())
		return nil
	})
	if err != nil {
		return makeErrorResponder(ctx, err)
	}
	apiTeam := model.APITeam{}
	apiTeam.BuildFromService(*t)
	return makeResponder(apiTeam)
}

////////////////////////////////////////////////
//
// GET /api/teams/{id}/players

type teamPlayersGetHandler struct {
	id string
	sc data.Connector
}

func makeGetTeamPlayers(sc data.Connector) gimlet.RouteHandler {
	return &teamPlayersGetHandler{sc: sc}
}

func (h *teamPlayersGetHandler) Factory() gimlet.RouteHandler {
	return &teamPlayersGetHandler{sc: h.sc}
}

func (h *teamPlayersGetHandler) Parse(ctx context.Context, r *http.Request) error {
	h.id = gimlet.GetVars(r)["id"]
	return nil
}

func (h *teamPlayersGetHandler) Run(ctx context.Context) gimlet.Responder {
	t, err := h.sc.FindTeamById(ctx, h.id)
	if err != nil {
		return makeErrorResponder(ctx, err)
	}
	return makeResponder(model.BuildPlayers(t.Players))
}
