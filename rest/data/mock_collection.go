package data

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/web420/web420/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const mockRevisionKey = "revision"

// mockCollection keeps documents as marshalled bson so that callers
// never share memory with what is stored, as with a real store. Route
// tests serve requests concurrently, so every operation holds mu.
type mockCollection[T any] struct {
	mu    sync.RWMutex
	order []primitive.ObjectID
	docs  map[primitive.ObjectID][]byte
}

type mockMeta struct {
	Id       primitive.ObjectID `bson:"_id"`
	Revision int                `bson:"revision"`
}

func newMockCollection[T any]() *mockCollection[T] {
	return &mockCollection[T]{docs: map[primitive.ObjectID][]byte{}}
}

func (c *mockCollection[T]) all() ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		doc := new(T)
		if err := bson.Unmarshal(c.docs[id], doc); err != nil {
			return nil, errors.Wrapf(err, "decoding document '%s'", id.Hex())
		}
		out = append(out, *doc)
	}
	return out, nil
}

func (c *mockCollection[T]) find(id string) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.lookup(id)
}

func (c *mockCollection[T]) lookup(id string) (*T, error) {
	oid, ok := db.ParseID(id)
	if !ok {
		return nil, nil
	}
	raw, ok := c.docs[oid]
	if !ok {
		return nil, nil
	}

	doc := new(T)
	if err := bson.Unmarshal(raw, doc); err != nil {
		return nil, errors.Wrapf(err, "decoding document '%s'", id)
	}
	return doc, nil
}

// insert stores the document under a new identifier at revision 0 and
// writes both back into doc.
func (c *mockCollection[T]) insert(doc *T) error {
	id := primitive.NewObjectID()
	raw, err := withFields(doc, bson.E{Key: db.IdKey, Value: id}, bson.E{Key: mockRevisionKey, Value: 0})
	if err != nil {
		return errors.WithStack(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs[id] = raw
	c.order = append(c.order, id)

	return errors.Wrap(bson.Unmarshal(raw, doc), "decoding inserted document")
}

// save replaces the stored document when its revision still matches,
// bumping the revision in the store and in doc.
func (c *mockCollection[T]) save(doc *T) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "encoding document")
	}
	meta := mockMeta{}
	if err = bson.Unmarshal(raw, &meta); err != nil {
		return errors.Wrap(err, "decoding document identity")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	stored, ok := c.docs[meta.Id]
	if !ok {
		return errors.WithStack(db.ErrConcurrentModification)
	}
	current := mockMeta{}
	if err = bson.Unmarshal(stored, &current); err != nil {
		return errors.Wrap(err, "decoding stored document identity")
	}
	if current.Revision != meta.Revision {
		return errors.WithStack(db.ErrConcurrentModification)
	}

	raw, err = withFields(doc, bson.E{Key: mockRevisionKey, Value: meta.Revision + 1})
	if err != nil {
		return errors.WithStack(err)
	}
	c.docs[meta.Id] = raw

	return errors.Wrap(bson.Unmarshal(raw, doc), "decoding saved document")
}

func (c *mockCollection[T]) delete(id string) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc, err := c.lookup(id)
	if err != nil || doc == nil {
		return nil, err
	}

	oid, _ := db.ParseID(id)
	delete(c.docs, oid)
	for i := range c.order {
		if c.order[i] == oid {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}

	return doc, nil
}

// withFields marshals doc with the given top-level fields set.
func withFields(doc any, fields ...bson.E) ([]byte, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "encoding document")
	}
	d := bson.D{}
	if err = bson.Unmarshal(raw, &d); err != nil {
		return nil, errors.Wrap(err, "decoding document")
	}

	for _, f := range fields {
		replaced := false
		for i := range d {
			if d[i].Key == f.Key {
				d[i].Value = f.Value
				replaced = true
			}
		}
		if !replaced {
			d = append(d, f)
		}
	}

	return bson.Marshal(d)
}
