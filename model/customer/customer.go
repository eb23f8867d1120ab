package customer

import (
	"context"

	"github.com/pkg/errors"
	"github.com/web420/web420/db"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const Collection = "customers"

// ErrNoSuchInvoice is returned when an invoice position does not exist.
var ErrNoSuchInvoice = errors.New("no invoice at that position")

type Customer struct {
	Id        primitive.ObjectID `bson:"_id,omitempty"`
	FirstName string             `bson:"firstName"`
	LastName  string             `bson:"lastName"`
	UserName  string             `bson:"userName"`
	Invoices  []Invoice          `bson:"invoices"`
	Revision  int                `bson:"revision"`
}

// Invoice has no identifier of its own; it is addressed by its position
// in the customer's invoice list.
type Invoice struct {
	Subtotal    float64    `bson:"subtotal"`
	Tax         float64    `bson:"tax"`
	DateCreated string     `bson:"dateCreated"`
	DateShipped string     `bson:"dateShipped,omitempty"`
	LineItems   []LineItem `bson:"lineItems"`
}

type LineItem struct {
	Name     string  `bson:"name"`
	Price    float64 `bson:"price"`
	Quantity int     `bson:"quantity"`
}

func (c *Customer) AddInvoice(inv Invoice) {
	if inv.LineItems == nil {
		inv.LineItems = []LineItem{}
	}
	c.Invoices = append(c.Invoices, inv)
}

// Invoice returns the invoice at the given position.
func (c *Customer) Invoice(index int) (*Invoice, error) {
	if index < 0 || index >= len(c.Invoices) {
		return nil, errors.Wrapf(ErrNoSuchInvoice, "index %d of %d", index, len(c.Invoices))
	}
	return &c.Invoices[index], nil
}

// AddLineItem appends the item to the invoice at the given position.
func (c *Customer) AddLineItem(index int, item LineItem) error {
	inv, err := c.Invoice(index)
	if err != nil {
		return err
	}
	inv.LineItems = append(inv.LineItems, item)
	return nil
}

func (c *Customer) Insert(ctx context.Context, store *db.Store) error {
	if c.Invoices == nil {
		c.Invoices = []Invoice{}
	}
	for i := range c.Invoices {
		if c.Invoices[i].LineItems == nil {
			c.Invoices[i].LineItems = []LineItem{}
		}
	}
	c.Revision = 0

	id, err := store.Insert(ctx, Collection, c)
	if err != nil {
		return errors.Wrap(err, "inserting customer")
	}
	c.Id = id

	return nil
}

// Save rewrites the whole customer document, guarded by its revision.
func (c *Customer) Save(ctx context.Context, store *db.Store) error {
	prev := c.Revision
	c.Revision++

	if err := store.Replace(ctx, Collection, db.ByIdAndRevision(c.Id, RevisionKey, prev), c); err != nil {
		c.Revision = prev
		return errors.Wrapf(err, "saving customer '%s'", c.Id.Hex())
	}

	return nil
}
