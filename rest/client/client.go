package client

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/web420/web420"
)

const (
	defaultMaxAttempts  = 5
	defaultTimeoutStart = 500 * time.Millisecond
	defaultTimeoutMax   = 30 * time.Second
)

// communicatorImpl implements Communicator and makes requests to the
// web420 API.
type communicatorImpl struct {
	serverURL    string
	maxAttempts  int
	timeoutStart time.Duration
	timeoutMax   time.Duration

	mutex      sync.RWMutex
	httpClient *http.Client
}

// NewCommunicator returns a Communicator for the API server at
// serverURL. Reads are retried with backoff; to change the retry
// behavior, use the SetTimeoutStart, SetTimeoutMax, and SetMaxAttempts
// methods.
func NewCommunicator(serverURL string) Communicator {
	return &communicatorImpl{
		serverURL:    strings.TrimSuffix(serverURL, "/"),
		maxAttempts:  defaultMaxAttempts,
		timeoutStart: defaultTimeoutStart,
		timeoutMax:   defaultTimeoutMax,
		httpClient:   &http.Client{},
	}
}

// SetTimeoutStart sets the initial timeout for a request.
func (c *communicatorImpl) SetTimeoutStart(timeoutStart time.Duration) {
	c.timeoutStart = timeoutStart
}

// SetTimeoutMax sets the maximum timeout for a request.
func (c *communicatorImpl) SetTimeoutMax(timeoutMax time.Duration) {
	c.timeoutMax = timeoutMax
}

// SetMaxAttempts sets the number of attempts a request will be made.
func (c *communicatorImpl) SetMaxAttempts(attempts int) {
	if attempts < 1 {
		attempts = 1
	}
	c.maxAttempts = attempts
}

func (c *communicatorImpl) Close() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.httpClient.CloseIdleConnections()
}

func (c *communicatorImpl) resetClient() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.httpClient.CloseIdleConnections()
	c.httpClient = &http.Client{}
}

func (c *communicatorImpl) getPath(path string) string {
	return c.serverURL + "/" + web420.RestRoutePrefix + "/" + strings.TrimPrefix(path, "/")
}
