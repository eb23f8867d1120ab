package model

import (
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"github.com/web420/web420/model/customer"
)

type APICustomer struct {
	Id        *string      `json:"_id"`
	FirstName *string      `json:"firstName"`
	LastName  *string      `json:"lastName"`
	UserName  *string      `json:"userName"`
	Invoices  []APIInvoice `json:"invoices"`
}

type APIInvoice struct {
	Subtotal    *float64      `json:"subtotal" required:"true"`
	Tax         *float64      `json:"tax" required:"true"`
	DateCreated *string       `json:"dateCreated" required:"true"`
	DateShipped *string       `json:"dateShipped,omitempty"`
	LineItems   []APILineItem `json:"lineItems"`
}

type APILineItem struct {
	Name     *string  `json:"name" required:"true"`
	Price    *float64 `json:"price" required:"true"`
	Quantity *int     `json:"quantity" required:"true"`
}

func (c *APICustomer) BuildFromService(v customer.Customer) {
	c.Id = utility.ToStringPtr(v.Id.Hex())
	c.FirstName = utility.ToStringPtr(v.FirstName)
	c.LastName = utility.ToStringPtr(v.LastName)
	c.UserName = utility.ToStringPtr(v.UserName)
	c.Invoices = BuildInvoices(v.Invoices)
}

func BuildCustomers(customers []customer.Customer) []APICustomer {
	out := make([]APICustomer, 0, len(customers))
	for _, c := range customers {
		apiCustomer := APICustomer{}
		apiCustomer.BuildFromService(c)
		out = append(out, apiCustomer)
	}
	return out
}

func (i *APIInvoice) BuildFromService(v customer.Invoice) {
	i.Subtotal = utility.ToFloat64Ptr(v.Subtotal)
	i.Tax = utility.ToFloat64Ptr(v.Tax)
	i.DateCreated = utility.ToStringPtr(v.DateCreated)
	i.DateShipped = optionalString(v.DateShipped)
	i.LineItems = BuildLineItems(v.LineItems)
}

func BuildInvoices(invoices []customer.Invoice) []APIInvoice {
	out := make([]APIInvoice, 0, len(invoices))
	for _, inv := range invoices {
		apiInvoice := APIInvoice{}
		apiInvoice.BuildFromService(inv)
		out = append(out, apiInvoice)
	}
	return out
}

func BuildLineItems(items []customer.LineItem) []APILineItem {
	out := make([]APILineItem, 0, len(items))
	for _, item := range items {
		out = append(out, APILineItem{
			Name:     utility.ToStringPtr(item.Name),
			Price:    utility.ToFloat64Ptr(item.Price),
			Quantity: utility.ToIntPtr(item.Quantity),
		})
	}
	return out
}

func (i *APIInvoice) Validate() error {
	catcher := grip.NewBasicCatcher()
	catcher.Add(requiredNumber("subtotal", i.Subtotal))
	catcher.Add(requiredNumber("tax", i.Tax))
	catcher.Add(required("dateCreated", i.DateCreated))
	for idx := range i.LineItems {
		catcher.Wrapf(i.LineItems[idx].Validate(), "line item %d", idx)
	}
	return catcher.Resolve()
}

func (i *APIInvoice) ToService() customer.Invoice {
	inv := customer.Invoice{
		Subtotal:    utility.FromFloat64Ptr(i.Subtotal),
		Tax:         utility.FromFloat64Ptr(i.Tax),
		DateCreated: utility.FromStringPtr(i.DateCreated),
		DateShipped: utility.FromStringPtr(i.DateShipped),
		LineItems:   make([]customer.LineItem, 0, len(i.LineItems)),
	}
	for idx := range i.LineItems {
		inv.LineItems = append(inv.LineItems, i.LineItems[idx].ToService())
	}
	return inv
}

func (l *APILineItem) Validate() error {
	catcher := grip.NewBasicCatcher()
	catcher.Add(required("name", l.Name))
	catcher.Add(requiredNumber("price", l.Price))
	catcher.Add(requiredNumber("quantity", l.Quantity))
	return catcher.Resolve()
}

func (l *APILineItem) ToService() customer.LineItem {
	return customer.LineItem{
		Name:     utility.FromStringPtr(l.Name),
		Price:    utility.FromFloat64Ptr(l.Price),
		Quantity: utility.FromIntPtr(l.Quantity),
	}
}

// APICustomerInput is the body of customer create and update requests.
type APICustomerInput struct {
	FirstName *string `json:"firstName" required:"true"`
	LastName  *string `json:"lastName" required:"true"`
	UserName  *string `json:"userName" required:"true"`
}

func (in *APICustomerInput) Validate() error {
	catcher := grip.NewBasicCatcher()
	catcher.Add(required("firstName", in.FirstName))
	catcher.Add(required("lastName", in.LastName))
	catcher.Add(required("userName", in.UserName))
	return catcher.Resolve()
}

func (in *APICustomerInput) ToService() customer.Customer {
	return customer.Customer{
		FirstName: utility.FromStringPtr(in.FirstName),
		LastName:  utility.FromStringPtr(in.LastName),
		UserName:  utility.FromStringPtr(in.UserName),
		Invoices:  []customer.Invoice{},
	}
}

func (in *APICustomerInput) Apply(c *customer.Customer) {
	c.FirstName = utility.FromStringPtr(in.FirstName)
	c.LastName = utility.FromStringPtr(in.LastName)
	c.UserName = utility.FromStringPtr(in.UserName)
}
