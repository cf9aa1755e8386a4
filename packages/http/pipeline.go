package http

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/abdul-hamid-achik/expectspec/packages/executor"
)

//go:generate mockgen -source=pipeline.go -destination=mock_transport_test.go -package=http

// ExecutionService turns a request into a response.
type ExecutionService interface {
	Execute(ctx context.Context, req *Request) (*Response, error)
}

// Transport is the execution role. Convert builds the native request N that
// Invoke sends; Cleanup releases whatever the native request holds once the
// attempt is over, whether Invoke succeeded or not.
type Transport[N any] interface {
	Convert(ctx context.Context, req *Request) (N, error)
	Invoke(ctx context.Context, native N) (*Response, error)
	Cleanup(native N)
}

// Command is one request travelling through the pipeline.
type Command struct {
	ID       string
	Request  *Request
	Attempts int
}

// Pipeline drives a Transport with retry and error handling.
type Pipeline[N any] struct {
	transport    Transport[N]
	ioExecutor   executor.Executor
	errorHandler ErrorHandler
	retryHandler RetryHandler
	ioRetry      IORetryHandler
	wire         *Wire
}

type PipelineOption func(*pipelineOptions)

type pipelineOptions struct {
	errorHandler ErrorHandler
	retryHandler RetryHandler
	ioRetry      IORetryHandler
	wire         *Wire
}

func WithErrorHandler(h ErrorHandler) PipelineOption {
	return func(o *pipelineOptions) {
		o.errorHandler = h
	}
}

func WithRetryHandler(h RetryHandler) PipelineOption {
	return func(o *pipelineOptions) {
		o.retryHandler = h
	}
}

func WithIORetryHandler(h IORetryHandler) PipelineOption {
	return func(o *pipelineOptions) {
		o.ioRetry = h
	}
}

func WithWire(w *Wire) PipelineOption {
	return func(o *pipelineOptions) {
		o.wire = w
	}
}

// NewExecutionPipeline returns an ExecutionService running every attempt of
// t on ioExecutor. Without options it does not retry and turns status codes
// of 300 and above into *ResponseError.
func NewExecutionPipeline[N any](t Transport[N], ioExecutor executor.Executor, opts ...PipelineOption) *Pipeline[N] {
	o := &pipelineOptions{
		errorHandler: DefaultErrorHandler{},
		retryHandler: NoRetry{},
		ioRetry:      NoRetry{},
	}
	for _, opt := range opts {
		opt(o)
	}
	if ioExecutor == nil {
		ioExecutor = executor.SameThread()
	}
	return &Pipeline[N]{
		transport:    t,
		ioExecutor:   ioExecutor,
		errorHandler: o.errorHandler,
		retryHandler: o.retryHandler,
		ioRetry:      o.ioRetry,
		wire:         o.wire,
	}
}

func (p *Pipeline[N]) Execute(ctx context.Context, req *Request) (*Response, error) {
	cmd := &Command{ID: uuid.NewString(), Request: req}
	for {
		cmd.Attempts++
		res, err := executor.Submit(p.ioExecutor, func() (attemptResult, error) {
			return p.attempt(ctx, cmd)
		}).Get(ctx)
		if err != nil {
			return nil, err
		}
		if !res.retry {
			return res.resp, nil
		}
		if err := sleep(ctx, res.delay); err != nil {
			return nil, err
		}
	}
}

type attemptResult struct {
	resp  *Response
	retry bool
	delay time.Duration
}

func (p *Pipeline[N]) attempt(ctx context.Context, cmd *Command) (attemptResult, error) {
	native, err := p.transport.Convert(ctx, cmd.Request)
	if err != nil {
		return attemptResult{}, err
	}
	defer p.transport.Cleanup(native)

	p.wire.Output(cmd)
	resp, err := p.transport.Invoke(ctx, native)
	if err != nil {
		if delay, ok := p.ioRetry.ShouldRetryError(cmd, err); ok && replayable(cmd.Request) {
			return attemptResult{retry: true, delay: delay}, nil
		}
		return attemptResult{}, err
	}
	p.wire.Input(cmd, resp)

	if resp.StatusCode >= 300 {
		if delay, ok := p.retryHandler.ShouldRetryResponse(cmd, resp); ok && replayable(cmd.Request) {
			if resp.Payload != nil {
				_ = resp.Payload.Release()
			}
			return attemptResult{retry: true, delay: delay}, nil
		}
		if err := p.errorHandler.Handle(cmd, resp); err != nil {
			return attemptResult{}, err
		}
	}
	return attemptResult{resp: resp}, nil
}

// replayable reports whether the request can be sent again.
func replayable(req *Request) bool {
	return req.Payload == nil || req.Payload.Repeatable()
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
