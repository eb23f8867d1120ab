package route

import (
	"context"
	"net/http"
	"testing"

	"github.com/evergreen-ci/utility"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/web420/web420/model/customer"
	"github.com/web420/web420/rest/data"
	"github.com/web420/web420/rest/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestInvoiceIndex(t *testing.T) {
	for raw, expected := range map[string]int{
		"0":    0,
		"3":    3,
		"-2":   -2,
		"x":    -1,
		"":     -1,
		"1.5":  -1,
		"0x01": -1,
	} {
		r := rawRequest(t, http.MethodGet, "", "", map[string]string{"index": raw})
		assert.Equal(t, expected, invoiceIndex(r), raw)
	}
}

func TestCustomerRoutes(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*data.MockConnector, map[string]string) {
		sc := data.NewMockConnector()
		c := &customer.Customer{FirstName: "Ada", LastName: "Byron", UserName: "ada"}
		c.AddInvoice(customer.Invoice{Subtotal: 10, Tax: 1, DateCreated: "2024-01-01"})
		require.NoError(t, sc.CreateCustomer(ctx, c))
		return sc, map[string]string{"id": c.Id.Hex()}
	}

	for name, test := range map[string]func(*testing.T){
		"CreateBothPaths": func(t *testing.T) {
			sc, _ := setup(t)
			body := map[string]any{"firstName": "Grace", "lastName": "Hopper", "userName": "grace"}

			resp := runHandler(ctx, t, makePostCustomer(sc), newRequest(t, http.MethodPost, "/api/customers", body, nil))
			require.Equal(t, http.StatusOK, resp.Status())
			created := resp.Data().(model.APICustomer)
			assert.Equal(t, "grace", utility.FromStringPtr(created.UserName))
			assert.NotNil(t, created.Invoices)
			assert.Empty(t, created.Invoices)

			resp = runHandler(ctx, t, makePostCustomer(sc), newRequest(t, http.MethodPost, "/api/createCustomer", body, nil))
			require.Equal(t, http.StatusOK, resp.Status())

			resp = runHandler(ctx, t, makeGetCustomers(sc), newRequest(t, http.MethodGet, "/api/customers?userName=grace", nil, nil))
			require.Equal(t, http.StatusOK, resp.Status())
			assert.Len(t, resp.Data().([]model.APICustomer), 2)

			resp = runHandler(ctx, t, makeGetCustomers(sc), newRequest(t, http.MethodGet, "/api/customers", nil, nil))
			assert.Len(t, resp.Data().([]model.APICustomer), 3)
		},
		"InvoiceAndLineItems": func(t *testing.T) {
			sc, vars := setup(t)

			resp := runHandler(ctx, t, makePostCustomerInvoice(sc), newRequest(t, http.MethodPost, "",
				map[string]any{"subtotal": 20, "tax": 0, "dateCreated": "2024-02-01"}, vars))
			require.Equal(t, http.StatusOK, resp.Status())
			assert.Len(t, resp.Data().(model.APICustomer).Invoices, 2)

			lineVars := map[string]string{"id": vars["id"], "index": "1"}
			resp = runHandler(ctx, t, makePostInvoiceLineItem(sc), newRequest(t, http.MethodPost, "",
				map[string]any{"name": "pen", "price": 2.5, "quantity": 4}, lineVars))
			require.Equal(t, http.StatusOK, resp.Status())

			resp = runHandler(ctx, t, makeGetInvoiceLineItems(sc), newRequest(t, http.MethodGet, "", nil, lineVars))
			require.Equal(t, http.StatusOK, resp.Status())
			items := resp.Data().([]model.APILineItem)
			require.Len(t, items, 1)
			assert.Equal(t, "pen", utility.FromStringPtr(items[0].Name))
			assert.Equal(t, 4, utility.FromIntPtr(items[0].Quantity))

			resp = runHandler(ctx, t, makeGetInvoiceLineItems(sc), newRequest(t, http.MethodGet, "", nil,
				map[string]string{"id": vars["id"], "index": "0"}))
			require.Equal(t, http.StatusOK, resp.Status())
			assert.Empty(t, resp.Data().([]model.APILineItem))

			resp = runHandler(ctx, t, makeGetCustomerInvoices(sc), newRequest(t, http.MethodGet, "", nil, vars))
			require.Equal(t, http.StatusOK, resp.Status())
			invoices := resp.Data().([]model.APIInvoice)
			require.Len(t, invoices, 2)
			assert.Equal(t, "2024-01-01", utility.FromStringPtr(invoices[0].DateCreated))
			assert.Len(t, invoices[1].LineItems, 1)
		},
		"BadInvoiceIndex": func(t *testing.T) {
			sc, vars := setup(t)

			for _, index := range []string{"1", "-1", "first"} {
				lineVars := map[string]string{"id": vars["id"], "index": index}

				resp := runHandler(ctx, t, makePostInvoiceLineItem(sc), newRequest(t, http.MethodPost, "",
					map[string]any{"name": "pen", "price": 1, "quantity": 1}, lineVars))
				assert.Equal(t, http.StatusUnauthorized, resp.Status(), index)
				assert.Equal(t, "Invalid invoiceId", errorMessage(t, resp))

				resp = runHandler(ctx, t, makeGetInvoiceLineItems(sc), newRequest(t, http.MethodGet, "", nil, lineVars))
				assert.Equal(t, http.StatusUnauthorized, resp.Status(), index)
				assert.Equal(t, "Invalid invoiceId", errorMessage(t, resp))
			}

			c, err := sc.FindCustomerById(ctx, vars["id"])
			require.NoError(t, err)
			assert.Empty(t, c.Invoices[0].LineItems)
			assert.Zero(t, c.Revision)
		},
		"MissingCustomerBeforeIndex": func(t *testing.T) {
			sc, _ := setup(t)
			vars := map[string]string{"id": primitive.NewObjectID().Hex(), "index": "7"}

			resp := runHandler(ctx, t, makeGetInvoiceLineItems(sc), newRequest(t, http.MethodGet, "", nil, vars))
			assert.Equal(t, http.StatusUnauthorized, resp.Status())
			assert.Equal(t, "Invalid customerId", errorMessage(t, resp))
		},
		"InvalidInvoice": func(t *testing.T) {
			sc, vars := setup(t)

			resp := runHandler(ctx, t, makePostCustomerInvoice(sc), newRequest(t, http.MethodPost, "",
				map[string]any{"subtotal": 20, "lineItems": []map[string]any{{"name": "pen"}}}, vars))
			assert.Equal(t, http.StatusBadRequest, resp.Status())
			msg := errorMessage(t, resp)
			assert.Contains(t, msg, "Validation Exception")
			assert.Contains(t, msg, "tax")
			assert.Contains(t, msg, "line item 0")
		},
		"UpdateKeepsInvoices": func(t *testing.T) {
			sc, vars := setup(t)

			resp := runHandler(ctx, t, makePutCustomer(sc), newRequest(t, http.MethodPut, "",
				map[string]any{"firstName": "Ada", "lastName": "Lovelace", "userName": "ada"}, vars))
			require.Equal(t, http.StatusOK, resp.Status())
			updated := resp.Data().(model.APICustomer)
			assert.Equal(t, "Lovelace", utility.FromStringPtr(updated.LastName))
			assert.Len(t, updated.Invoices, 1)
		},
		"DeleteTwice": func(t *testing.T) {
			sc, vars := setup(t)

			resp := runHandler(ctx, t, makeDeleteCustomer(sc), newRequest(t, http.MethodDelete, "", nil, vars))
			require.Equal(t, http.StatusOK, resp.Status())

			resp = runHandler(ctx, t, makeDeleteCustomer(sc), newRequest(t, http.MethodDelete, "", nil, vars))
			assert.Equal(t, http.StatusUnauthorized, resp.Status())
			assert.Equal(t, "Invalid customerId", errorMessage(t, resp))

			resp = runHandler(ctx, t, makeGetCustomerInvoices(sc), newRequest(t, http.MethodGet, "", nil, vars))
			assert.Equal(t, http.StatusUnauthorized, resp.Status())
		},
	} {
		t.Run(name, test)
	}
}
