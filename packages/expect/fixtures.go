package expect

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/expectspec/packages/core/env"
	"github.com/abdul-hamid-achik/expectspec/packages/http"
)

//go:embed expectation.schema.json
var expectationSchema []byte

// Expectation pairs the request a client is expected to issue with the
// response it gets back.
type Expectation struct {
	Name     string
	Request  *http.Request
	Response *http.Response
}

func NewExpectation(req *http.Request, resp *http.Response) *Expectation {
	return &Expectation{Request: req, Response: resp}
}

// PayloadFromResource returns a single-use payload over the named file of
// fsys. The file is opened when the payload is first read, so a missing file
// shows up as a *ResourceError from Render.
func PayloadFromResource(fsys fs.FS, name string) http.Payload {
	return http.NewFilePayload(fsys, name)
}

type expectationFile struct {
	Name     string        `yaml:"name"`
	Request  requestFile   `yaml:"request"`
	Response *responseFile `yaml:"response"`
}

type requestFile struct {
	Method  string       `yaml:"method"`
	Target  string       `yaml:"target"`
	Proto   string       `yaml:"proto"`
	Headers []string     `yaml:"headers"`
	Payload *payloadFile `yaml:"payload"`
}

type responseFile struct {
	Status  int          `yaml:"status"`
	Message string       `yaml:"message"`
	Headers []string     `yaml:"headers"`
	Payload *payloadFile `yaml:"payload"`
}

type payloadFile struct {
	Text               *string `yaml:"text"`
	Resource           string  `yaml:"resource"`
	ContentType        string  `yaml:"contentType"`
	ContentLength      *int64  `yaml:"contentLength"`
	ContentEncoding    string  `yaml:"contentEncoding"`
	ContentLanguage    string  `yaml:"contentLanguage"`
	ContentDisposition string  `yaml:"contentDisposition"`
}

// LoadExpectation reads a YAML expectation from fsys. Placeholders such as
// {{endpoint}}, {{$HOME}} or {{basicAuth(user, pass)}} in string values are
// resolved against vars after parsing, so values are taken verbatim; an
// unresolved placeholder is an error. Payload resources are looked up next
// to the fixture. The response is nil when the fixture has none.
func LoadExpectation(fsys fs.FS, name string, vars map[string]any) (*Expectation, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, &ResourceError{Op: "reading fixture " + name, Err: err}
	}

	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("fixture %s: %w", name, err)
	}
	if root.Kind == 0 {
		return nil, fmt.Errorf("fixture %s: empty document", name)
	}

	resolver := env.NewResolver()
	resolver.SetVariables(vars)
	if err := resolveScalars(resolver, &root); err != nil {
		return nil, fmt.Errorf("fixture %s: %w", name, err)
	}

	if err := validateFixture(&root); err != nil {
		return nil, fmt.Errorf("fixture %s: %w", name, err)
	}

	var f expectationFile
	if err := root.Decode(&f); err != nil {
		return nil, fmt.Errorf("fixture %s: %w", name, err)
	}

	dir := path.Dir(name)
	e := &Expectation{Name: f.Name}

	e.Request = http.NewRequest(f.Request.Method, f.Request.Target)
	if f.Request.Proto != "" {
		e.Request.Proto = f.Request.Proto
	}
	for _, h := range f.Request.Headers {
		k, v := splitHeader(h)
		e.Request.AddHeader(k, v)
	}
	if f.Request.Payload != nil {
		e.Request.Payload = f.Request.Payload.build(fsys, dir)
	}

	if f.Response != nil {
		e.Response = http.NewResponse(f.Response.Status, f.Response.Message)
		for _, h := range f.Response.Headers {
			k, v := splitHeader(h)
			e.Response.Headers.Add(k, v)
		}
		if f.Response.Payload != nil {
			e.Response.Payload = f.Response.Payload.build(fsys, dir)
		}
	}

	return e, nil
}

// resolveScalars resolves placeholders in every string value under n.
// Mapping keys are left alone. All unresolved placeholders are reported
// together.
func resolveScalars(r *env.Resolver, n *yaml.Node) error {
	missing := make(map[string]bool)
	var walk func(n *yaml.Node)
	walk = func(n *yaml.Node) {
		switch n.Kind {
		case yaml.ScalarNode:
			if n.Tag != "!!str" {
				return
			}
			v, err := r.ResolveStrict(n.Value)
			if err != nil {
				var ue *env.UnresolvedError
				if errors.As(err, &ue) {
					for _, p := range ue.Placeholders {
						missing[p] = true
					}
				}
				return
			}
			if v != n.Value {
				// a resolved plain scalar must not be reinterpreted as a bool or number
				n.Value = v
				n.Style |= yaml.DoubleQuotedStyle
			}
		case yaml.MappingNode:
			for i := 1; i < len(n.Content); i += 2 {
				walk(n.Content[i])
			}
		default:
			for _, c := range n.Content {
				walk(c)
			}
		}
	}
	walk(n)

	if len(missing) == 0 {
		return nil
	}
	placeholders := make([]string, 0, len(missing))
	for p := range missing {
		placeholders = append(placeholders, p)
	}
	sort.Strings(placeholders)
	return &env.UnresolvedError{Placeholders: placeholders}
}

func validateFixture(root *yaml.Node) error {
	var doc any
	if err := root.Decode(&doc); err != nil {
		return err
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(expectationSchema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(errs, "; "))
}

func (p *payloadFile) build(fsys fs.FS, dir string) http.Payload {
	var payload http.Payload
	if p.Text != nil {
		payload = http.NewStringPayload(*p.Text)
	} else {
		payload = PayloadFromResource(fsys, path.Join(dir, p.Resource))
	}

	md := payload.ContentMetadata()
	md.ContentType = p.ContentType
	if p.ContentLength != nil {
		md.ContentLength = p.ContentLength
	}
	md.ContentEncoding = p.ContentEncoding
	md.ContentLanguage = p.ContentLanguage
	md.ContentDisposition = p.ContentDisposition
	return payload
}

// splitHeader splits "Name: value". The schema guarantees the colon.
func splitHeader(h string) (string, string) {
	k, v, _ := strings.Cut(h, ":")
	return k, strings.TrimPrefix(v, " ")
}
