package model

import (
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"github.com/web420/web420/model/team"
)

// APITeam is the model returned for a team.
type APITeam struct {
	Id      *string     `json:"_id"`
	Name    *string     `json:"name"`
	Mascot  *string     `json:"mascot,omitempty"`
	Players []APIPlayer `json:"players"`
}

type APIPlayer struct {
	FirstName *string  `json:"firstName" required:"true"`
	LastName  *string  `json:"lastName" required:"true"`
	Salary    *float64 `json:"salary,omitempty"`
}

// BuildFromService converts from a service level team to an APITeam.
func (t *APITeam) BuildFromService(v team.Team) {
	t.Id = utility.ToStringPtr(v.Id.Hex())
	t.Name = utility.ToStringPtr(v.Name)
	t.Mascot = optionalString(v.Mascot)
	t.Players = make([]APIPlayer, 0, len(v.Players))
	for _, p := range v.Players {
		apiPlayer := APIPlayer{}
		apiPlayer.BuildFromService(p)
		t.Players = append(t.Players, apiPlayer)
	}
}

func (p *APIPlayer) BuildFromService(v team.Player) {
	p.FirstName = utility.ToStringPtr(v.FirstName)
	p.LastName = utility.ToStringPtr(v.LastName)
	p.Salary = copyPtr(v.Salary)
}

// ToService returns the player as stored in the team document.
func (p *APIPlayer) ToService() team.Player {
	return team.Player{
		FirstName: utility.FromStringPtr(p.FirstName),
		LastName:  utility.FromStringPtr(p.LastName),
		Salary:    copyPtr(p.Salary),
	}
}

// Validate rejects players missing a required name.
func (p *APIPlayer) Validate() error {
	catcher := grip.NewBasicCatcher()
	catcher.Add(required("firstName", p.FirstName))
	catcher.Add(required("lastName", p.LastName))
	return catcher.Resolve()
}

// APITeamInput is the body of team create and update requests.
type APITeamInput struct {
	Name   *string `json:"name" required:"true"`
	Mascot *string `json:"mascot"`
}

func (in *APITeamInput) Validate() error {
	return required("name", in.Name)
}

func (in *APITeamInput) ToService() team.Team {
	return team.Team{
		Name:    utility.FromStringPtr(in.Name),
		Mascot:  utility.FromStringPtr(in.Mascot),
		Players: []team.Player{},
	}
}

// Apply copies the scalar fields onto an existing team.
func (in *APITeamInput) Apply(t *team.Team) {
	t.Name = utility.FromStringPtr(in.Name)
	t.Mascot = utility.FromStringPtr(in.Mascot)
}

func BuildTeams(teams []team.Team) []APITeam {
	out := make([]APITeam, 0, len(teams))
	for _, t := range teams {
		apiTeam := APITeam{}
		apiTeam.BuildFromService(t)
		out = append(out, apiTeam)
	}
	return out
}

func BuildPlayers(players []team.Player) []APIPlayer {
	out := make([]APIPlayer, 0, len(players))
	for _, p := range players {
		apiPlayer := APIPlayer{}
		apiPlayer.BuildFromService(p)
		out = append(out, apiPlayer)
	}
	return out
}
