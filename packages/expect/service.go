package expect

import (
	"context"

	"github.com/abdul-hamid-achik/expectspec/packages/http"
)

// Func answers a request. Errors are returned to the client as they are.
type Func func(req *http.Request) (*http.Response, error)

// ExecutionService is the transport that calls a Func instead of the network.
// The native request is the request itself.
type ExecutionService struct {
	fn Func
}

var _ http.Transport[*http.Request] = (*ExecutionService)(nil)

func NewExecutionService(fn Func) *ExecutionService {
	return &ExecutionService{fn: fn}
}

func (s *ExecutionService) Convert(_ context.Context, req *http.Request) (*http.Request, error) {
	return req, nil
}

func (s *ExecutionService) Invoke(_ context.Context, req *http.Request) (*http.Response, error) {
	return s.fn(req)
}

// Cleanup releases the request payload.
func (s *ExecutionService) Cleanup(req *http.Request) {
	if req.Payload != nil {
		_ = req.Payload.Release()
	}
}
