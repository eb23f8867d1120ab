package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jpillora/backoff"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// requestInfo holds metadata about a request
type requestInfo struct {
	method string
	path   string
}

// APIError is a non-200 answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned %d (%s)", e.StatusCode, e.Message)
}

// StatusCode returns the HTTP status carried by err, or 0 when err did
// not come from a server response.
func StatusCode(err error) int {
	if apiErr, ok := errors.Cause(err).(*APIError); ok {
		return apiErr.StatusCode
	}
	return 0
}

func (c *communicatorImpl) newRequest(info requestInfo, body []byte) (*http.Request, error) {
	r, err := http.NewRequest(info.method, c.getPath(info.path), nil)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	if body != nil {
		r.Body = io.NopCloser(bytes.NewReader(body))
		r.ContentLength = int64(len(body))
		r.Header.Add("Content-Type", "application/json")
	}

	return r, nil
}

func (c *communicatorImpl) doRequest(ctx context.Context, r *http.Request) (*http.Response, error) {
	var (
		response *http.Response
		err      error
	)

	r = r.WithContext(ctx)

	func() {
		c.mutex.RLock()
		defer c.mutex.RUnlock()
		response, err = c.httpClient.Do(r)
	}()

	if err != nil {
		c.resetClient()
		return nil, errors.WithStack(err)
	}

	if response == nil {
		return nil, errors.New("received nil response")
	}

	return response, nil
}

// request makes a single attempt. Writes go through here so a failed
// insert is never repeated behind the caller's back.
func (c *communicatorImpl) request(ctx context.Context, info requestInfo, data, out any) error {
	body, err := marshalBody(data)
	if err != nil {
		return err
	}
	r, err := c.newRequest(info, body)
	if err != nil {
		return err
	}
	resp, err := c.doRequest(ctx, r)
	if err != nil {
		return errors.Wrapf(err, "%s %s", info.method, info.path)
	}
	return parseResponse(resp, out)
}

// retryRequest makes up to maxAttempts attempts, backing off between
// them. Transport errors and 5xx answers are retried; 4xx answers are
// returned at once.
func (c *communicatorImpl) retryRequest(ctx context.Context, info requestInfo, out any) error {
	r, err := c.newRequest(info, nil)
	if err != nil {
		return err
	}

	var lastErr error
	timer := time.NewTimer(0)
	defer timer.Stop()
	backoff := c.getBackoff()
	for i := 1; i <= c.maxAttempts; i++ {
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "request canceled")
		case <-timer.C:
			resp, err := c.doRequest(ctx, r)
			if err != nil {
				lastErr = err
				grip.Warning(message.WrapError(err, message.Fields{
					"message":   "error response from api server",
					"attempt":   i,
					"max":       c.maxAttempts,
					"path":      info.path,
					"wait_secs": backoff.ForAttempt(float64(i)).Seconds(),
				}))
			} else {
				err = parseResponse(resp, out)
				if code := StatusCode(err); err == nil || code < http.StatusInternalServerError {
					return err
				}
				lastErr = err
				grip.Warningf("unexpected status code: %d (attempt %d of %d)", StatusCode(err), i, c.maxAttempts)
			}

			timer.Reset(backoff.Duration())
		}
	}
	return errors.Wrapf(lastErr, "failed to make request after %d attempts", c.maxAttempts)
}

func (c *communicatorImpl) getBackoff() *backoff.Backoff {
	return &backoff.Backoff{
		Min:    c.timeoutStart,
		Max:    c.timeoutMax,
		Factor: 2,
		Jitter: true,
	}
}

func marshalBody(data any) ([]byte, error) {
	if data == nil {
		return nil, nil
	}
	out, err := json.Marshal(data)
	return out, errors.Wrap(err, "marshalling request body")
}

// parseResponse decodes a 200 body into out and turns anything else
// into an *APIError. The body is always closed.
func parseResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		payload := struct {
			Message string `json:"message"`
		}{}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Message = payload.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return errors.Wrap(json.NewDecoder(resp.Body).Decode(out), "decoding response body")
}
