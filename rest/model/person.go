package model

import (
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"github.com/web420/web420/model/person"
)

type APIPerson struct {
	Id         *string        `json:"_id"`
	FirstName  *string        `json:"firstName"`
	LastName   *string        `json:"lastName"`
	Roles      []APIRole      `json:"roles"`
	Dependents []APIDependent `json:"dependents"`
	BirthDate  *string        `json:"birthDate,omitempty"`
}

type APIRole struct {
	Text *string `json:"text" required:"true"`
}

type APIDependent struct {
	FirstName *string `json:"firstName" required:"true"`
	LastName  *string `json:"lastName" required:"true"`
}

func (p *APIPerson) BuildFromService(v person.Person) {
	p.Id = utility.ToStringPtr(v.Id.Hex())
	p.FirstName = utility.ToStringPtr(v.FirstName)
	p.LastName = utility.ToStringPtr(v.LastName)
	p.BirthDate = optionalString(v.BirthDate)
	p.Roles = BuildRoles(v.Roles)
	p.Dependents = BuildDependents(v.Dependents)
}

func BuildPeople(people []person.Person) []APIPerson {
	out := make([]APIPerson, 0, len(people))
	for _, p := range people {
		apiPerson := APIPerson{}
		apiPerson.BuildFromService(p)
		out = append(out, apiPerson)
	}
	return out
}

func BuildRoles(roles []person.Role) []APIRole {
	out := make([]APIRole, 0, len(roles))
	for _, r := range roles {
		out = append(out, APIRole{Text: utility.ToStringPtr(r.Text)})
	}
	return out
}

func BuildDependents(dependents []person.Dependent) []APIDependent {
	out := make([]APIDependent, 0, len(dependents))
	for _, d := range dependents {
		out = append(out, APIDependent{
			FirstName: utility.ToStringPtr(d.FirstName),
			LastName:  utility.ToStringPtr(d.LastName),
		})
	}
	return out
}

func (r *APIRole) Validate() error {
	return required("text", r.Text)
}

func (r *APIRole) ToService() person.Role {
	return person.Role{Text: utility.FromStringPtr(r.Text)}
}

func (d *APIDependent) Validate() error {
	catcher := grip.NewBasicCatcher()
	catcher.Add(required("firstName", d.FirstName))
	catcher.Add(required("lastName", d.LastName))
	return catcher.Resolve()
}

func (d *APIDependent) ToService() person.Dependent {
	return person.Dependent{
		FirstName: utility.FromStringPtr(d.FirstName),
		LastName:  utility.FromStringPtr(d.LastName),
	}
}

// APIPersonInput is the body of person create and update requests.
// Roles and dependents are only read on create.
type APIPersonInput struct {
	FirstName  *string        `json:"firstName" required:"true"`
	LastName   *string        `json:"lastName" required:"true"`
	BirthDate  *string        `json:"birthDate"`
	Roles      []APIRole      `json:"roles"`
	Dependents []APIDependent `json:"dependents"`
}

func (in *APIPersonInput) Validate() error {
	catcher := grip.NewBasicCatcher()
	catcher.Add(required("firstName", in.FirstName))
	catcher.Add(required("lastName", in.LastName))
	for i := range in.Roles {
		catcher.Wrapf(in.Roles[i].Validate(), "role %d", i)
	}
	for i := range in.Dependents {
		catcher.Wrapf(in.Dependents[i].Validate(), "dependent %d", i)
	}
	return catcher.Resolve()
}

func (in *APIPersonInput) ToService() person.Person {
	p := person.Person{
		FirstName:  utility.FromStringPtr(in.FirstName),
		LastName:   utility.FromStringPtr(in.LastName),
		BirthDate:  utility.FromStringPtr(in.BirthDate),
		Roles:      []person.Role{},
		Dependents: []person.Dependent{},
	}
	for i := range in.Roles {
		p.AddRole(in.Roles[i].ToService())
	}
	for i := range in.Dependents {
		p.AddDependent(in.Dependents[i].ToService())
	}
	return p
}

func (in *APIPersonInput) Apply(p *person.Person) {
	p.FirstName = utility.FromStringPtr(in.FirstName)
	p.LastName = utility.FromStringPtr(in.LastName)
	if in.BirthDate != nil {
		p.BirthDate = *in.BirthDate
	}
}
