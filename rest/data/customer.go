package data

import (
	"context"

	"github.com/pkg/errors"
	"github.com/web420/web420/model/customer"
	"github.com/web420/web420/rest"
)

const (
	customerResource = "customer"
	invoiceResource  = "invoice"
)

func (c *DBConnector) FindAllCustomers(ctx context.Context, userName string) ([]customer.Customer, error) {
	q := customer.All()
	if userName != "" {
		q = customer.ByUserName(userName)
	}
	customers, err := customer.FindAll(ctx, c.store(), q)
	return customers, rest.NewStoreError(err)
}

func (c *DBConnector) findCustomer(ctx context.Context, id string) (*customer.Customer, error) {
	return customer.FindOneId(ctx, c.store(), id)
}

func (c *DBConnector) FindCustomerById(ctx context.Context, id string) (*customer.Customer, error) {
	return resolve(ctx, customerResource, id, c.findCustomer)
}

func (c *DBConnector) CreateCustomer(ctx context.Context, cust *customer.Customer) error {
	return rest.NewStoreError(cust.Insert(ctx, c.store()))
}

func (c *DBConnector) MutateCustomer(ctx context.Context, id string, change func(*customer.Customer) error) (*customer.Customer, error) {
	return mutate(ctx, customerResource, id, c.findCustomer, change, func(ctx context.Context, cust *customer.Customer) error {
		return cust.Save(ctx, c.store())
	})
}

func (c *DBConnector) DeleteCustomerById(ctx context.Context, id string) (*customer.Customer, error) {
	return remove(ctx, customerResource, id, func(ctx context.Context, id string) (*customer.Customer, error) {
		return customer.DeleteOneId(ctx, c.store(), id)
	})
}

func (c *MockConnector) FindAllCustomers(ctx context.Context, userName string) ([]customer.Customer, error) {
	customers, err := mockAll(c, c.customers)
	if err != nil || userName == "" {
		return customers, err
	}

	matching := []customer.Customer{}
	for _, cust := range customers {
		if cust.UserName == userName {
			matching = append(matching, cust)
		}
	}
	return matching, nil
}

func (c *MockConnector) FindCustomerById(ctx context.Context, id string) (*customer.Customer, error) {
	return resolve(ctx, customerResource, id, mockFinder(c, c.customers.find))
}

func (c *MockConnector) CreateCustomer(ctx context.Context, cust *customer.Customer) error {
	if cust.Invoices == nil {
		cust.Invoices = []customer.Invoice{}
	}
	return mockInsert(c, c.customers, cust)
}

func (c *MockConnector) MutateCustomer(ctx context.Context, id string, change func(*customer.Customer) error) (*customer.Customer, error) {
	return mutate(ctx, customerResource, id, mockFinder(c, c.customers.find), change, mockSaver(c, c.customers.save))
}

func (c *MockConnector) DeleteCustomerById(ctx context.Context, id string) (*customer.Customer, error) {
	return remove(ctx, customerResource, id, mockFinder(c, c.customers.delete))
}

// InvoiceNotFound converts a bad invoice position into the not found
// error for invoices.
func InvoiceNotFound(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, customer.ErrNoSuchInvoice) {
		return rest.NewNotFoundError(invoiceResource)
	}
	return err
}
