package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/utility"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/web420/web420/rest/data"
	"github.com/web420/web420/rest/model"
	resttestutil "github.com/web420/web420/rest/testutil"
)

type ClientSuite struct {
	sc     *data.MockConnector
	server *httptest.Server
	comm   Communicator
	ctx    context.Context
	cancel context.CancelFunc

	suite.Suite
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	var err error
	s.sc = data.NewMockConnector()
	s.server, err = resttestutil.NewTestServerFromConnector(s.sc)
	s.Require().NoError(err)

	s.comm = NewCommunicator(s.server.URL)
	s.comm.SetTimeoutStart(time.Millisecond)
	s.comm.SetTimeoutMax(5 * time.Millisecond)
	s.comm.SetMaxAttempts(3)
	s.ctx, s.cancel = context.WithTimeout(context.Background(), 10*time.Second)
}

func (s *ClientSuite) TearDownTest() {
	s.cancel()
	s.comm.Close()
	s.server.Close()
}

func (s *ClientSuite) TestTeamRoundTrip() {
	created, err := s.comm.CreateTeam(s.ctx, model.APITeamInput{Name: utility.ToStringPtr("Wildcats")})
	s.Require().NoError(err)
	s.Require().NotNil(created.Id)
	s.Empty(created.Players)
	id := utility.FromStringPtr(created.Id)

	for _, name := range []string{"Ann", "Ben"} {
		_, err = s.comm.AddPlayer(s.ctx, id, model.APIPlayer{
			FirstName: utility.ToStringPtr(name),
			LastName:  utility.ToStringPtr("Smith"),
		})
		s.Require().NoError(err)
	}

	players, err := s.comm.GetPlayers(s.ctx, id)
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal("Ann", utility.FromStringPtr(players[0].FirstName))
	s.Equal("Ben", utility.FromStringPtr(players[1].FirstName))

	updated, err := s.comm.UpdateTeam(s.ctx, id, model.APITeamInput{Name: utility.ToStringPtr("Tigers")})
	s.Require().NoError(err)
	s.Equal("Tigers", utility.FromStringPtr(updated.Name))
	s.Len(updated.Players, 2)

	teams, err := s.comm.GetTeams(s.ctx)
	s.Require().NoError(err)
	s.Len(teams, 1)

	deleted, err := s.comm.DeleteTeam(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(id, utility.FromStringPtr(deleted.Id))

	_, err = s.comm.GetTeam(s.ctx, id)
	s.Require().Error(err)
	s.Equal(http.StatusUnauthorized, StatusCode(err))
	s.Contains(err.Error(), "Invalid teamId")
}

func (s *ClientSuite) TestCustomerInvoices() {
	created, err := s.comm.CreateCustomer(s.ctx, model.APICustomerInput{
		FirstName: utility.ToStringPtr("Cal"),
		LastName:  utility.ToStringPtr("Jones"),
		UserName:  utility.ToStringPtr("cjones"),
	})
	s.Require().NoError(err)
	id := utility.FromStringPtr(created.Id)

	_, err = s.comm.AddInvoice(s.ctx, id, model.APIInvoice{
		Subtotal:    utility.ToFloat64Ptr(10),
		Tax:         utility.ToFloat64Ptr(1),
		DateCreated: utility.ToStringPtr("2022-10-01"),
	})
	s.Require().NoError(err)

	_, err = s.comm.AddLineItem(s.ctx, id, 0, model.APILineItem{
		Name:     utility.ToStringPtr("pen"),
		Price:    utility.ToFloat64Ptr(2.5),
		Quantity: utility.ToIntPtr(4),
	})
	s.Require().NoError(err)

	items, err := s.comm.GetLineItems(s.ctx, id, 0)
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal("pen", utility.FromStringPtr(items[0].Name))

	_, err = s.comm.GetLineItems(s.ctx, id, 3)
	s.Equal(http.StatusUnauthorized, StatusCode(err))

	found, err := s.comm.GetCustomers(s.ctx, "cjones")
	s.Require().NoError(err)
	s.Len(found, 1)
	found, err = s.comm.GetCustomers(s.ctx, "nobody")
	s.Require().NoError(err)
	s.Empty(found)
}

func (s *ClientSuite) TestValidationIsNotRetried() {
	_, err := s.comm.CreateComposer(s.ctx, model.APIComposerInput{})
	s.Require().Error(err)
	s.Equal(http.StatusBadRequest, StatusCode(err))
	s.Contains(err.Error(), "Validation Exception")
}

func (s *ClientSuite) TestStoreFailure() {
	s.sc.StoredError = errors.New("connection refused")

	_, err := s.comm.GetPeople(s.ctx)
	s.Require().Error(err)
	s.Equal(http.StatusNotImplemented, StatusCode(err))
	s.Contains(err.Error(), "MongoDB Exception")
	s.Contains(err.Error(), "3 attempts")

	status, err := s.comm.GetStatus(s.ctx)
	s.Require().NoError(err)
	s.False(status.DatabaseOK)
}

func countingServer(t *testing.T, codes ...int) (*httptest.Server, *int32) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&hits, 1)
		code := codes[len(codes)-1]
		if int(n) <= len(codes) {
			code = codes[n-1]
		}
		if code == http.StatusOK {
			gimlet.WriteJSON(rw, []model.APITeam{})
			return
		}
		gimlet.WriteJSONResponse(rw, code, map[string]string{"message": http.StatusText(code)})
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func fastCommunicator(url string) Communicator {
	comm := NewCommunicator(url)
	comm.SetTimeoutStart(time.Millisecond)
	comm.SetTimeoutMax(2 * time.Millisecond)
	comm.SetMaxAttempts(4)
	return comm
}

func TestRetryRequest(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	t.Run("RecoversFromServerErrors", func(t *testing.T) {
		server, hits := countingServer(t, http.StatusNotImplemented, http.StatusInternalServerError, http.StatusOK)
		teams, err := fastCommunicator(server.URL).GetTeams(ctx)
		require.NoError(t, err)
		assert.NotNil(t, teams)
		assert.EqualValues(t, 3, atomic.LoadInt32(hits))
	})
	t.Run("GivesUpAfterMaxAttempts", func(t *testing.T) {
		server, hits := countingServer(t, http.StatusInternalServerError)
		_, err := fastCommunicator(server.URL).GetTeams(ctx)
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
		assert.EqualValues(t, 4, atomic.LoadInt32(hits))
	})
	t.Run("NonPositiveAttemptsStillSendOnce", func(t *testing.T) {
		for _, attempts := range []int{0, -2} {
			server, hits := countingServer(t, http.StatusInternalServerError)
			comm := fastCommunicator(server.URL)
			comm.SetMaxAttempts(attempts)
			_, err := comm.GetTeams(ctx)
			require.Error(t, err)
			assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
			assert.EqualValues(t, 1, atomic.LoadInt32(hits))
		}
	})
	t.Run("ClientErrorsReturnAtOnce", func(t *testing.T) {
		server, hits := countingServer(t, http.StatusUnauthorized)
		_, err := fastCommunicator(server.URL).GetTeams(ctx)
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, StatusCode(err))
		assert.EqualValues(t, 1, atomic.LoadInt32(hits))
	})
	t.Run("WritesAreSingleAttempt", func(t *testing.T) {
		server, hits := countingServer(t, http.StatusInternalServerError)
		_, err := fastCommunicator(server.URL).CreateTeam(ctx, model.APITeamInput{Name: utility.ToStringPtr("x")})
		require.Error(t, err)
		assert.EqualValues(t, 1, atomic.LoadInt32(hits))
	})
	t.Run("CanceledContext", func(t *testing.T) {
		server, _ := countingServer(t, http.StatusInternalServerError)
		canceled, stop := context.WithCancel(ctx)
		stop()
		_, err := fastCommunicator(server.URL).GetTeams(canceled)
		require.Error(t, err)
		assert.Zero(t, StatusCode(err))
	})
}

func TestAPIErrorMessage(t *testing.T) {
	assert.Equal(t, "server returned 418", (&APIError{StatusCode: 418}).Error())
	assert.Equal(t, "server returned 401 (Invalid teamId)", (&APIError{StatusCode: 401, Message: "Invalid teamId"}).Error())
	assert.Zero(t, StatusCode(errors.New("dial tcp: refused")))
	assert.Equal(t, 501, StatusCode(errors.Wrap(&APIError{StatusCode: 501}, "context")))
}

func TestGetPath(t *testing.T) {
	c := NewCommunicator("http://example.com/").(*communicatorImpl)
	assert.Equal(t, "http://example.com/api/teams/abc/players", c.getPath("/teams/abc/players"))
	assert.Equal(t, "http://example.com/api/customers/x/invoices/2/lineItems", c.getPath(lineItemsPath("x", 2)))
}
