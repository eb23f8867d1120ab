package data

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/web420/web420/db"
	"github.com/web420/web420/model/customer"
	"github.com/web420/web420/model/person"
	"github.com/web420/web420/model/team"
	"github.com/web420/web420/rest"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMockCollection(t *testing.T) {
	coll := newMockCollection[team.Team]()

	first := &team.Team{Name: "Wildcats", Players: []team.Player{}}
	require.NoError(t, coll.insert(first))
	assert.False(t, first.Id.IsZero())
	assert.Zero(t, first.Revision)

	second := &team.Team{Name: "Bears", Players: []team.Player{}}
	require.NoError(t, coll.insert(second))

	t.Run("FindReturnsCopies", func(t *testing.T) {
		found, err := coll.find(first.Id.Hex())
		require.NoError(t, err)
		found.Name = "changed"

		again, err := coll.find(first.Id.Hex())
		require.NoError(t, err)
		assert.Equal(t, "Wildcats", again.Name)
	})
	t.Run("FindMisses", func(t *testing.T) {
		found, err := coll.find(primitive.NewObjectID().Hex())
		assert.NoError(t, err)
		assert.Nil(t, found)

		found, err = coll.find("garbage")
		assert.NoError(t, err)
		assert.Nil(t, found)
	})
	t.Run("SaveBumpsRevision", func(t *testing.T) {
		found, err := coll.find(second.Id.Hex())
		require.NoError(t, err)
		stale := *found

		found.AddPlayer(team.Player{FirstName: "Sam", LastName: "Lee"})
		require.NoError(t, coll.save(found))
		assert.Equal(t, 1, found.Revision)

		assert.True(t, db.IsConcurrentModification(coll.save(&stale)))
	})
	t.Run("AllKeepsOrder", func(t *testing.T) {
		all, err := coll.all()
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "Wildcats", all[0].Name)
		assert.Equal(t, "Bears", all[1].Name)
	})
	t.Run("DeleteOnce", func(t *testing.T) {
		removed, err := coll.delete(first.Id.Hex())
		require.NoError(t, err)
		require.NotNil(t, removed)

		removed, err = coll.delete(first.Id.Hex())
		assert.NoError(t, err)
		assert.Nil(t, removed)

		all, err := coll.all()
		require.NoError(t, err)
		assert.Len(t, all, 1)

		assert.True(t, db.IsConcurrentModification(coll.save(first)))
	})
}

func TestMockCollectionConcurrentAccess(t *testing.T) {
	const workers = 16
	coll := newMockCollection[team.Team]()

	base := &team.Team{Name: "Wildcats", Players: []team.Player{}}
	require.NoError(t, coll.insert(base))

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		saved int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, coll.insert(&team.Team{Name: "Bears", Players: []team.Player{}}))

			_, err := coll.all()
			assert.NoError(t, err)

			found, err := coll.find(base.Id.Hex())
			if !assert.NoError(t, err) || !assert.NotNil(t, found) {
				return
			}
			stale := *found
			stale.Revision = 0
			stale.Mascot = "Cat"
			if err = coll.save(&stale); err == nil {
				mu.Lock()
				saved++
				mu.Unlock()
				return
			}
			assert.True(t, db.IsConcurrentModification(err))
		}()
	}
	wg.Wait()

	all, err := coll.all()
	require.NoError(t, err)
	assert.Len(t, all, workers+1)
	assert.Equal(t, 1, saved)

	found, err := coll.find(base.Id.Hex())
	require.NoError(t, err)
	assert.Equal(t, 1, found.Revision)
	assert.Equal(t, "Cat", found.Mascot)
}

func TestMockConnectorStoredError(t *testing.T) {
	ctx := context.Background()
	sc := NewMockConnector()

	created := &team.Team{Name: "Wildcats"}
	require.NoError(t, sc.CreateTeam(ctx, created))

	sc.StoredError = errors.New("connection refused")

	_, err := sc.FindAllTeams(ctx)
	assert.True(t, rest.IsStoreError(err))
	_, err = sc.FindTeamById(ctx, created.Id.Hex())
	assert.True(t, rest.IsStoreError(err))
	assert.True(t, rest.IsStoreError(sc.CreateTeam(ctx, &team.Team{Name: "Bears"})))
	_, err = sc.DeleteTeamById(ctx, created.Id.Hex())
	assert.True(t, rest.IsStoreError(err))
	assert.True(t, rest.IsStoreError(sc.Ping(ctx)))

	sc.StoredError = nil
	assert.NoError(t, sc.Ping(ctx))
	teams, err := sc.FindAllTeams(ctx)
	require.NoError(t, err)
	assert.Len(t, teams, 1)
}

func TestMockConnectorPeople(t *testing.T) {
	ctx := context.Background()
	sc := NewMockConnector()

	p := &person.Person{FirstName: "Ada", LastName: "Byron"}
	require.NoError(t, sc.CreatePerson(ctx, p))
	assert.NotNil(t, p.Roles)
	assert.NotNil(t, p.Dependents)

	updated, err := sc.MutatePerson(ctx, p.Id.Hex(), func(p *person.Person) error {
		p.AddRole(person.Role{Text: "engineer"})
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, updated.Roles, 1)
	assert.Empty(t, updated.Dependents)

	found, err := sc.FindPersonById(ctx, p.Id.Hex())
	require.NoError(t, err)
	assert.Equal(t, []person.Role{{Text: "engineer"}}, found.Roles)
}

func TestMockConnectorCustomers(t *testing.T) {
	ctx := context.Background()
	sc := NewMockConnector()

	for _, userName := range []string{"ada", "grace", "ada"} {
		require.NoError(t, sc.CreateCustomer(ctx, &customer.Customer{FirstName: "x", LastName: "y", UserName: userName}))
	}

	all, err := sc.FindAllCustomers(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	ada, err := sc.FindAllCustomers(ctx, "ada")
	require.NoError(t, err)
	assert.Len(t, ada, 2)

	nobody, err := sc.FindAllCustomers(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, nobody)
	assert.Empty(t, nobody)

	_, err = sc.MutateCustomer(ctx, all[0].Id.Hex(), func(c *customer.Customer) error {
		return InvoiceNotFound(c.AddLineItem(0, customer.LineItem{Name: "pen"}))
	})
	assert.EqualError(t, err, "Invalid invoiceId")
}

func TestInvoiceNotFound(t *testing.T) {
	assert.NoError(t, InvoiceNotFound(nil))
	assert.True(t, rest.IsNotFound(InvoiceNotFound(errors.Wrap(customer.ErrNoSuchInvoice, "index 3"))))

	other := errors.New("other")
	assert.Equal(t, other, InvoiceNotFound(other))
}
