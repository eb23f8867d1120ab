package route

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/evergreen-ci/gimlet"
	"github.com/stretchr/testify/require"
	"github.com/web420/web420/rest"
)

// runHandler parses and runs a handler the way the router does,
// including the shared error body for parse failures.
func runHandler(ctx context.Context, t *testing.T, h gimlet.RouteHandler, r *http.Request) gimlet.Responder {
	rh := withMessages(h).Factory()
	require.NoError(t, rh.Parse(ctx, r))
	return rh.Run(ctx)
}

func newRequest(t *testing.T, method, url string, body any, vars map[string]string) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	r, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if vars != nil {
		r = gimlet.SetURLVars(r, vars)
	}
	return r
}

func rawRequest(t *testing.T, method, url, body string, vars map[string]string) *http.Request {
	r, err := http.NewRequest(method, url, bytes.NewBufferString(body))
	require.NoError(t, err)
	if vars != nil {
		r = gimlet.SetURLVars(r, vars)
	}
	return r
}

func errorMessage(t *testing.T, resp gimlet.Responder) string {
	body, ok := resp.Data().(rest.MessageResponse)
	require.True(t, ok, "unexpected response body %T", resp.Data())
	return body.Message
}

// serve sends a request through the full application handler.
func serve(t *testing.T, handler http.Handler, method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rw := httptest.NewRecorder()
	handler.ServeHTTP(rw, httptest.NewRequest(method, url, &buf))
	return rw
}

func decode[T any](t *testing.T, rw *httptest.ResponseRecorder) T {
	var out T
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &out), rw.Body.String())
	return out
}
