package route

import (
	"context"
	"net/http"
	"strconv"

	"github.com/evergreen-ci/gimlet"
	"github.com/web420/web420/model/customer"
	"github.com/web420/web420/rest/data"
	"github.com/web420/web420/rest/model"
)

func customerResponder(c *customer.Customer) gimlet.Responder {
	apiCustomer := model.APICustomer{}
	apiCustomer.BuildFromService(*c)
	return makeResponder(apiCustomer)
}

// invoiceIndex reads the invoice position from the path. Anything that
// is not a number becomes -1, which no invoice has, so the customer is
// still resolved first.
func invoiceIndex(r *http.Request) int {
	idx, err := strconv.Atoi(gimlet.GetVars(r)["index"])
	if err != nil {
		return -1
	}
	return idx
}

////////////////////////////////////////////////
//
// GET /api/customers

type customersGetHandler struct {
	userName string
	sc       data.Connector
}

func makeGetCustomers(sc data.Connector) gimlet.RouteHandler {
	return &customersGetHandler{sc: sc}
}

func (h *customersGetHandler) Factory() gimlet.RouteHandler {
	return &customersGetHandler{sc: h.sc}
}

func (h *customersGetHandler) Parse(ctx context.Context, r *http.Request) error {
	h.userName = r.URL.Query().Get("userName")
	return nil
}

func (h *customersGetHandler) Run(ctx context.Context) gimlet.Responder {
	customers, err := h.sc.FindAllCustomers(ctx, h.userName)
	if err != nil {
		return makeErrorResponder(ctx, err)
	}
	return makeResponder(model.BuildCustomers(customers))
}

////////////////////////////////////////////////
//
// GET /api/customers/{id}

type customerGetHandler struct {
	id string
	sc data.Connector
}

func makeGetCustomer(sc data.Connector) gimlet.RouteHandler {
	return &customerGetHandler{sc: sc}
}

func (h *customerGetHandler) Factory() gimlet.RouteHandler {
	return &customerGetHandler{sc: h.sc}
}

func (h *customerGetHandler) Parse(ctx context.Context, r *http.Request) error {
	h.id = gimlet.GetVars(r)["id"]
	return nil
}

func (h *customerGetHandler) Run(ctx context.Context) gimlet.Responder {
	c, err := h.sc.FindCustomerById(ctx, h.id)
	if err != nil {
		return makeErrorResponder(ctx, err)
	}
	return customerResponder(c)
}

////////////////////////////////////////////////
//
// POST /api/customers
// POST /api/createCustomer

type customerPostHandler struct {
	in model.APICustomerInput
	sc data.Connector
}

func makePostCustomer(sc data.Connector) gimlet.RouteHandler {
	return &customerPostHandler{sc: sc}
}

func (h *customerPostHandler) Factory() gimlet.RouteHandler {
	return &customerPostHandler{sc: h.sc}
}

func (h *customerPostHandler) Parse(ctx context.Context, r *http.Request) error {
	return readInput(r, &h.in)
}

func (h *customerPostHandler) Run(ctx context.Context) gimlet.Responder {
	c := h.in.ToService()
	if err := h.sc.CreateCustomer(ctx, &c); err != nil {
		return makeErrorResponder(ctx, err)
	}
	return customerResponder(&c)
}

////////////////////////////////////////////////
//
// PUT /api/customers/{id}

type customerPutHandler struct {
	id string
	in model.APICustomerInput
	sc data.Connector
}

func makePutCustomer(sc data.Connector) gimlet.RouteHandler {
	return &customerPutHandler{sc: sc}
}

func (h *customerPutHandler) Factory() gimlet.RouteHandler {
	return &customerPutHandler{sc: h.sc}
}

func (h *customerPutHandler) Parse(ctx context.Context, r *http.Request) error {
	h.id = gimlet.GetVars(r)["id"]
	return readInput(r, &h.in)
}

func (h *customerPutHandler) Run(ctx context.Context) gimlet.Responder {
	c, err := h.sc.MutateCustomer(ctx, h.id, func(c *customer.Customer) error {
		h.in.Apply(c)
		return nil
	})
	if err != nil {
		return makeErrorResponder(ctx, err)
	}
	return customerResponder(c)
}

////////////////////////////////////////////////
//
// DELETE /api/customers/{id}

type customerDeleteHandler struct {
	id string
	sc data.Connector
}

func makeDeleteCustomer(sc data.Connector) gimlet.RouteHandler {
	return &customerDeleteHandler{sc: sc}
}

func (h *customerDeleteHandler) Factory() gimlet.RouteHandler {
	return &customerDeleteHandler{sc: h.sc}
}

func (h *customerDeleteHandler) Parse(ctx context.Context, r *http.Request) error {
	h.id = gimlet.GetVars(r)["id"]
	return nil
}

func (h *customerDeleteHandler) Run(ctx context.Context) gimlet.Responder {
	c, err := h.sc.DeleteCustomerById(ctx, h.id)
	if err != nil {
		return makeErrorResponder(ctx, err)
	}
	return customerResponder(c)
}

////////////////////////////////////////////////
//
// POST /api/customers/{id}/invoices

type customerInvoicesPostHandler struct {
	id      string
	invoice model.APIInvoice
	sc      data.Connector
}

func makePostCustomerInvoice(sc data.Connector) gimlet.RouteHandler {
	return &customerInvoicesPostHandler{sc: sc}
}

func (h *customerInvoicesPostHandler) Factory() gimlet.RouteHandler {
	return &customerInvoicesPostHandler{sc: h.sc}
}

func (h *customerInvoicesPostHandler) Parse(ctx context.Context, r *http.Request) error {
	h.id = gimlet.GetVars(r)["id"]
	return readInput(r, &h.invoice)
}

func (h *customerInvoicesPostHandler) Run(ctx context.Context) gimlet.Responder {
	c, err := h.sc.MutateCustomer(ctx, h.id, func(c *customer.Customer) error {
		c.AddInvoice(h.invoice.ToService())
		return nil
	})
	if err != nil {
		return makeErrorResponder(ctx, err)
	}
	return customerResponder(c)
}

////////////////////////////////////////////////
//
// GET /api/customers/{id}/invoices

type customerInvoicesGetHandler struct {
	id string
	sc data.Connector
}

func makeGetCustomerInvoices(sc data.Connector) gimlet.RouteHandler {
	return &customerInvoicesGetHandler{sc: sc}
}

func (h *customerInvoicesGetHandler) Factory() gimlet.RouteHandler {
	return &customerInvoicesGetHandler{sc: h.sc}
}

func (h *customerInvoicesGetHandler) Parse(ctx context.Context, r *http.Request) error {
	h.id = gimlet.GetVars(r)["id"]
	return nil
}

func (h *customerInvoicesGetHandler) Run(ctx context.Context) gimlet.Responder {
	c, err := h.sc.FindCustomerById(ctx, h.id)
	if err != nil {
		return makeErrorResponder(ctx, err)
	}
	return makeResponder(model.BuildInvoices(c.Invoices))
}

////////////////////////////////////////////////
//
// POST /api/customers/{id}/invoices/{index}/lineItems

type invoiceLineItemsPostHandler struct {
	id    string
	index int
	item  model.APILineItem
	sc    data.Connector
}

func makePostInvoiceLineItem(sc data.Connector) gimlet.RouteHandler {
	return &invoiceLineItemsPostHandler{sc: sc}
}

func (h *invoiceLineItemsPostHandler) Factory() gimlet.RouteHandler {
	return &invoiceLineItemsPostHandler{sc: h.sc}
}

func (h *invoiceLineItemsPostHandler) Parse(ctx context.Context, r *http.Request) error {
	h.id = gimlet.GetVars(r)["id"]
	h.index = invoiceIndex(r)
	return readInput(r, &h.item)
}

func (h *invoiceLineItemsPostHandler) Run(ctx context.Context) gimlet.Responder {
	c, err := h.sc.MutateCustomer(ctx, h.id, func(c *customer.Customer) error {
		return data.InvoiceNotFound(c.AddLineItem(h.index, h.item.ToService()))
	})
	if err != nil {
		return makeErrorResponder(ctx, err)
	}
	return customerResponder(c)
}

////////////////////////////////////////////////
//
// GET /api/customers/{id}/invoices/{index}/lineItems

type invoiceLineItemsGetHandler struct {
	id    string
	index int
	sc    data.Connector
}

func makeGetInvoiceLineItems(sc data.Connector) gimlet.RouteHandler {
	return &invoiceLineItemsGetHandler{sc: sc}
}

func (h *invoiceLineItemsGetHandler) Factory() gimlet.RouteHandler {
	return &invoiceLineItemsGetHandler{sc: h.sc}
}

func (h *invoiceLineItemsGetHandler) Parse(ctx context.Context, r *http.Request) error {
	h.id = gimlet.GetVars(r)["id"]
	h.index = invoiceIndex(r)
	return nil
}

func (h *invoiceLineItemsGetHandler) Run(ctx context.Context) gimlet.Responder {
	c, err := h.sc.FindCustomerById(ctx, h.id)
	if err != nil {
		return makeErrorResponder(ctx, err)
	}
	inv, err := c.Invoice(h.index)
	if err != nil {
		return makeErrorResponder(ctx, data.InvoiceNotFound(err))
	}
	return makeResponder(model.BuildLineItems(inv.LineItems))
}
