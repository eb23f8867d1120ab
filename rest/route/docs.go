package route

import (
	"encoding/json"
	"net/http"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-openapi/runtime/middleware"
	"github.com/pkg/errors"
	"github.com/web420/web420"
	"github.com/web420/web420/rest"
	"gopkg.in/yaml.v2"
)

const openAPIVersion = "3.0.3"

var pathParamPattern = regexp.MustCompile(`\{([^}]+)\}`)

// apiDocs holds the generated document, its JSON and YAML renderings,
// and the Swagger UI page that loads the JSON one. All are built once
// when the handler is assembled.
type apiDocs struct {
	doc  *openapi3.T
	json []byte
	yaml []byte
	ui   http.Handler
}

func newAPIDocs(routes []routeDef) (*apiDocs, error) {
	doc, err := buildOpenAPIDocument(routes)
	if err != nil {
		return nil, err
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "rendering API documentation as JSON")
	}

	// JSON is a subset of YAML, so re-reading it as a MapSlice keeps the
	// document's key order in the YAML rendering.
	ordered := yaml.MapSlice{}
	if err = yaml.Unmarshal(out, &ordered); err != nil {
		return nil, errors.Wrap(err, "reading API documentation for YAML")
	}
	yamlOut, err := yaml.Marshal(ordered)
	if err != nil {
		return nil, errors.Wrap(err, "rendering API documentation as YAML")
	}

	ui := middleware.SwaggerUI(middleware.SwaggerUIOpts{
		BasePath: "/",
		Path:     strings.TrimPrefix(web420.APIDocsRoute, "/"),
		SpecURL:  web420.APIDocsRoute + ".json",
		Title:    doc.Info.Title,
	}, http.NotFoundHandler())

	return &apiDocs{doc: doc, json: out, yaml: yamlOut, ui: ui}, nil
}

func (d *apiDocs) serveUI(w http.ResponseWriter, r *http.Request) {
	d.ui.ServeHTTP(w, r)
}

func (d *apiDocs) serveJSON(w http.ResponseWriter, r *http.Request) {
	writeDocument(w, "application/json; charset=utf-8", d.json)
}

func (d *apiDocs) serveYAML(w http.ResponseWriter, r *http.Request) {
	writeDocument(w, "application/yaml; charset=utf-8", d.yaml)
}

func writeDocument(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func buildOpenAPIDocument(routes []routeDef) (*openapi3.T, error) {
	doc := &openapi3.T{
		OpenAPI: openAPIVersion,
		Info: &openapi3.Info{
			Title:   "web420 API",
			Version: web420.ClientVersion,
		},
		Paths: openapi3.Paths{},
	}

	for _, r := range routes {
		p := r.fullPath()
		item := doc.Paths[p]
		if item == nil {
			item = &openapi3.PathItem{}
			doc.Paths[p] = item
		}
		op, err := buildOperation(r)
		if err != nil {
			return nil, errors.Wrapf(err, "documenting %s %s", r.method, p)
		}
		item.SetOperation(r.method, op)
	}

	return doc, nil
}

func response(description string) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription(description)}
}

func buildOperation(r routeDef) (*openapi3.Operation, error) {
	op := &openapi3.Operation{
		Tags:      []string{r.tag},
		Summary:   r.summary,
		Responses: openapi3.Responses{},
	}

	for _, match := range pathParamPattern.FindAllStringSubmatch(r.path, -1) {
		op.Parameters = append(op.Parameters, &openapi3.ParameterRef{
			Value: openapi3.NewPathParameter(match[1]).WithSchema(openapi3.NewStringSchema()),
		})
	}
	for _, name := range r.query {
		op.Parameters = append(op.Parameters, &openapi3.ParameterRef{
			Value: openapi3.NewQueryParameter(name).WithSchema(openapi3.NewStringSchema()),
		})
	}

	op.Responses["200"] = response("Success.")
	if r.body != nil {
		schema, err := schemaFor(reflect.TypeOf(r.body))
		if err != nil {
			return nil, err
		}
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().
				WithRequired(true).
				WithContent(openapi3.NewContentWithSchema(schema, []string{"application/json", formContentType})),
		}
		op.Responses["400"] = response("Validation Exception.")
	}
	if r.resource != "" {
		op.Responses["401"] = response(rest.NotFoundError{Resource: r.resource}.Error() + ".")
	}
	op.Responses["500"] = response("Server Exception.")
	op.Responses["501"] = response("MongoDB Exception.")

	return op, nil
}

// schemaFor describes a request type from its json tags. Fields tagged
// required:"true" are listed as required.
func schemaFor(t reflect.Type) (*openapi3.Schema, error) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return openapi3.NewStringSchema(), nil
	case reflect.Float32, reflect.Float64:
		return openapi3.NewFloat64Schema(), nil
	case reflect.Int, reflect.Int32, reflect.Int64:
		return openapi3.NewIntegerSchema(), nil
	case reflect.Bool:
		return openapi3.NewBoolSchema(), nil
	case reflect.Slice, reflect.Array:
		items, err := schemaFor(t.Elem())
		if err != nil {
			return nil, err
		}
		return openapi3.NewArraySchema().WithItems(items), nil
	case reflect.Struct:
		s := openapi3.NewObjectSchema()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := jsonName(f)
			if name == "" {
				continue
			}
			prop, err := schemaFor(f.Type)
			if err != nil {
				return nil, errors.Wrapf(err, "field '%s'", name)
			}
			s.WithProperty(name, prop)
			if f.Tag.Get("required") == "true" {
				s.Required = append(s.Required, name)
			}
		}
		sort.Strings(s.Required)
		return s, nil
	default:
		return nil, errors.Errorf("no schema for request field type %s", t)
	}
}

func jsonName(f reflect.StructField) string {
	if !f.IsExported() {
		return ""
	}
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}
