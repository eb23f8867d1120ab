package model

import (
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"github.com/web420/web420/model/composer"
)

type APIComposer struct {
	Id        *string `json:"_id"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	// CatalogNumber keeps the "id" name clients already send.
	CatalogNumber *int `json:"id,omitempty"`
}

func (c *APIComposer) BuildFromService(v composer.Composer) {
	c.Id = utility.ToStringPtr(v.Id.Hex())
	c.FirstName = utility.ToStringPtr(v.FirstName)
	c.LastName = utility.ToStringPtr(v.LastName)
	c.CatalogNumber = copyPtr(v.CatalogNumber)
}

func BuildComposers(composers []composer.Composer) []APIComposer {
	out := make([]APIComposer, 0, len(composers))
	for _, c := range composers {
		apiComposer := APIComposer{}
		apiComposer.BuildFromService(c)
		out = append(out, apiComposer)
	}
	return out
}

type APIComposerInput struct {
	FirstName     *string `json:"firstName" required:"true"`
	LastName      *string `json:"lastName" required:"true"`
	CatalogNumber *int    `json:"id"`
}

func (in *APIComposerInput) Validate() error {
	catcher := grip.NewBasicCatcher()
	catcher.Add(required("firstName", in.FirstName))
	catcher.Add(required("lastName", in.LastName))
	return catcher.Resolve()
}

func (in *APIComposerInput) ToService() composer.Composer {
	return composer.Composer{
		FirstName:     utility.FromStringPtr(in.FirstName),
		LastName:      utility.FromStringPtr(in.LastName),
		CatalogNumber: copyPtr(in.CatalogNumber),
	}
}

// Apply updates the names, and the catalog number only when one is given.
func (in *APIComposerInput) Apply(c *composer.Composer) {
	c.SetName(utility.FromStringPtr(in.FirstName), utility.FromStringPtr(in.LastName))
	if in.CatalogNumber != nil {
		c.CatalogNumber = copyPtr(in.CatalogNumber)
	}
}
