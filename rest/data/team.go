package data

import (
	"context"

	"github.com/web420/web420/model/team"
	"github.com/web420/web420/rest"
)

const teamResource = "team"

func (c *DBConnector) FindAllTeams(ctx context.Context) ([]team.Team, error) {
	teams, err := team.FindAll(ctx, c.store(), team.All())
	return teams, rest.NewStoreError(err)
}

func (c *DBConnector) findTeam(ctx context.Context, id string) (*team.Team, error) {
	return team.FindOneId(ctx, c.store(), id)
}

func (c *DBConnector) FindTeamById(ctx context.Context, id string) (*team.Team, error) {
	return resolve(ctx, teamResource, id, c.findTeam)
}

func (c *DBConnector) CreateTeam(ctx context.Context, t *team.Team) error {
	return rest.NewStoreError(t.Insert(ctx, c.store()))
}

func (c *DBConnector) MutateTeam(ctx context.Context, id string, change func(*team.Team) error) (*team.Team, error) {
	return mutate(ctx, teamResource, id, c.findTeam, change, func(ctx context.Context, t *team.Team) error {
		return t.Save(ctx, c.store())
	})
}

func (c *DBConnector) DeleteTeamById(ctx context.Context, id string) (*team.Team, error) {
	return remove(ctx, teamResource, id, func(ctx context.Context, id string) (*team.Team, error) {
		return team.DeleteOneId(ctx, c.store(), id)
	})
}

func (c *MockConnector) FindAllTeams(ctx context.Context) ([]team.Team, error) {
	return mockAll(c, c.teams)
}

func (c *MockConnector) FindTeamById(ctx context.Context, id string) (*team.Team, error) {
	return resolve(ctx, teamResource, id, mockFinder(c, c.teams.find))
}

func (c *MockConnector) CreateTeam(ctx context.Context, t *team.Team) error {
	if t.Players == nil {
		t.Players = []team.Player{}
	}
	return mockInsert(c, c.teams, t)
}

func (c *MockConnector) MutateTeam(ctx context.Context, id string, change func(*team.Team) error) (*team.Team, error) {
	return mutate(ctx, teamResource, id, mockFinder(c, c.teams.find), change, mockSaver(c, c.teams.save))
}

func (c *MockConnector) DeleteTeamById(ctx context.Context, id string) (*team.Team, error) {
	return remove(ctx, teamResource, id, mockFinder(c, c.teams.delete))
}
