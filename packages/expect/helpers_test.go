package expect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/abdul-hamid-achik/expectspec/packages/http"
	"github.com/abdul-hamid-achik/expectspec/packages/rest"
)

// recordingT records failures instead of stopping the goroutine.
type recordingT struct {
	errors []string
	failed bool
}

func (r *recordingT) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recordingT) FailNow() {
	r.failed = true
}

// goexitT stops the goroutine on FailNow like *testing.T.
type goexitT struct {
	recordingT
}

func (g *goexitT) FailNow() {
	g.failed = true
	runtime.Goexit()
}

type countingReadCloser struct {
	io.Reader
	closes int
}

func (c *countingReadCloser) Close() error {
	c.closes++
	return nil
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

// testAPI sends whatever request it is given.
type testAPI struct {
	env *rest.Env
}

func newTestAPI(env *rest.Env) (*testAPI, error) {
	return &testAPI{env: env}, nil
}

func wrapTestAPI(_ *rest.Env, a *testAPI) (*testAPI, error) {
	return a, nil
}

func (a *testAPI) Do(req *http.Request) (*http.Response, error) {
	return a.env.Execute(context.Background(), req)
}

var testTypes = rest.Types{Binding: rest.Bind(newTestAPI, wrapTestAPI)}
