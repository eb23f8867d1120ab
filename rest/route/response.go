package route

import (
	"context"
	"fmt"
	"mime"
	"net/http"

	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/utility"
	"github.com/mitchellh/mapstructure"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/level"
	"github.com/mongodb/grip/message"
	"github.com/mongodb/grip/recovery"
	"github.com/pkg/errors"
	"github.com/web420/web420/rest"
)

const formContentType = "application/x-www-form-urlencoded"

type validator interface {
	Validate() error
}

// readInput decodes the JSON or form-encoded body into in and checks
// its required fields. Both failures are validation errors.
func readInput(r *http.Request, in validator) error {
	var err error
	if isFormBody(r) {
		err = readForm(r, in)
	} else {
		err = errors.Wrap(utility.ReadJSON(r.Body, in), "reading request body")
	}
	if err != nil {
		return rest.NewValidationError(err)
	}
	return rest.NewValidationError(in.Validate())
}

func isFormBody(r *http.Request) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mediaType == formContentType
}

// readForm decodes url-encoded fields by their json names. Values are
// weakly typed so "50000" fills a numeric field.
func readForm(r *http.Request, in any) error {
	if err := r.ParseForm(); err != nil {
		return errors.Wrap(err, "parsing form body")
	}

	fields := map[string]any{}
	for key := range r.PostForm {
		fields[key] = r.PostForm.Get(key)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           in,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.Wrap(decoder.Decode(fields), "decoding form body")
}

// makeResponder returns a 200 JSON response for data.
func makeResponder(data any) gimlet.Responder {
	resp, err := gimlet.NewBasicResponder(http.StatusOK, gimlet.JSON, data)
	if err != nil {
		return makeErrorResponder(context.Background(), errors.Wrap(err, "constructing response"))
	}
	return resp
}

// makeErrorResponder maps err onto its status and {"message"} body.
func makeErrorResponder(ctx context.Context, err error) gimlet.Responder {
	status, body := rest.ErrorResponse(err)

	grip.Log(levelForStatus(status), message.WrapError(err, message.Fields{
		"message": "request failed",
		"status":  status,
		"request": gimlet.GetRequestID(ctx),
	}))

	resp, rerr := gimlet.NewBasicResponder(status, gimlet.JSON, body)
	if rerr != nil {
		return gimlet.MakeJSONInternalErrorResponder(rerr)
	}
	return resp
}

func levelForStatus(status int) level.Priority {
	if status >= http.StatusInternalServerError {
		return level.Error
	}
	return level.Debug
}

// messageHandler makes parse failures use the same {"message"} body as
// every other failure instead of gimlet's default error shape.
type messageHandler struct {
	gimlet.RouteHandler
	parseErr error
}

func withMessages(h gimlet.RouteHandler) gimlet.RouteHandler {
	return &messageHandler{RouteHandler: h}
}

func (h *messageHandler) Factory() gimlet.RouteHandler {
	return &messageHandler{RouteHandler: h.RouteHandler.Factory()}
}

func (h *messageHandler) Parse(ctx context.Context, r *http.Request) error {
	h.parseErr = h.RouteHandler.Parse(ctx, r)
	return nil
}

func (h *messageHandler) Run(ctx context.Context) gimlet.Responder {
	if h.parseErr != nil {
		return makeErrorResponder(ctx, h.parseErr)
	}
	return h.RouteHandler.Run(ctx)
}

// recoveryMiddleware turns a panic in a handler into a 500 Server
// Exception response.
type recoveryMiddleware struct{}

func newRecoveryMiddleware() gimlet.Middleware { return &recoveryMiddleware{} }

func (m *recoveryMiddleware) ServeHTTP(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	defer func() {
		if p := recover(); p != nil {
			_ = recovery.HandlePanicWithError(p, nil, "handling request")
			grip.Error(message.Fields{
				"message": "recovered from panic in request handler",
				"panic":   fmt.Sprint(p),
				"path":    r.URL.Path,
				"method":  r.Method,
				"request": gimlet.GetRequestID(r.Context()),
			})
			gimlet.WriteJSONResponse(rw, http.StatusInternalServerError, rest.ServerException(errors.Errorf("%v", p)))
		}
	}()

	next(rw, r)
}
