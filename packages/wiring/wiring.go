package wiring

import (
	"os"
	"time"

	"github.com/abdul-hamid-achik/expectspec/packages/core/config"
	"github.com/abdul-hamid-achik/expectspec/packages/executor"
	"github.com/abdul-hamid-achik/expectspec/packages/http"
	"github.com/abdul-hamid-achik/expectspec/packages/logging"
)

// ExecutionServiceProvider builds the execution service from the resolved
// roles, so it can use the executors, handlers and logger that won.
type ExecutionServiceProvider func(r *Roles) http.ExecutionService

// Roles is a complete, resolved set of roles.
type Roles struct {
	UserExecutor     executor.Executor
	IOExecutor       executor.Executor
	ExecutionService ExecutionServiceProvider
	Logger           logging.Logger
	ErrorHandler     http.ErrorHandler
	RetryHandler     http.RetryHandler
	IORetryHandler   http.IORetryHandler
}

// Overlay replaces some roles. Nil fields leave the role as it is.
type Overlay struct {
	Name             string
	UserExecutor     executor.Executor
	IOExecutor       executor.Executor
	ExecutionService ExecutionServiceProvider
	Logger           logging.Logger
	ErrorHandler     http.ErrorHandler
	RetryHandler     http.RetryHandler
	IORetryHandler   http.IORetryHandler
}

// IsZero reports whether o replaces no role.
func (o Overlay) IsZero() bool {
	return o.Name == "" && o.UserExecutor == nil && o.IOExecutor == nil &&
		o.ExecutionService == nil && o.Logger == nil && o.ErrorHandler == nil &&
		o.RetryHandler == nil && o.IORetryHandler == nil
}

func (o Overlay) apply(r *Roles) {
	if o.UserExecutor != nil {
		r.UserExecutor = o.UserExecutor
	}
	if o.IOExecutor != nil {
		r.IOExecutor = o.IOExecutor
	}
	if o.ExecutionService != nil {
		r.ExecutionService = o.ExecutionService
	}
	if o.Logger != nil {
		r.Logger = o.Logger
	}
	if o.ErrorHandler != nil {
		r.ErrorHandler = o.ErrorHandler
	}
	if o.RetryHandler != nil {
		r.RetryHandler = o.RetryHandler
	}
	if o.IORetryHandler != nil {
		r.IORetryHandler = o.IORetryHandler
	}
}

// Compose applies overlays to base in order.
func Compose(base Roles, overlays ...Overlay) Roles {
	r := base
	for _, o := range overlays {
		o.apply(&r)
	}
	return r
}

// Build returns the execution service of the resolved roles.
func (r *Roles) Build() http.ExecutionService {
	return r.ExecutionService(r)
}

// Shutdown stops the executors that are pools.
func (r *Roles) Shutdown() {
	for _, e := range []executor.Executor{r.UserExecutor, r.IOExecutor} {
		if p, ok := e.(*executor.Pool); ok {
			p.Shutdown()
		}
	}
}

// Defaults returns the real stack for cfg: goroutine pools, the net/http
// transport, backoff retries and a stderr logger.
func Defaults(cfg *config.Config) Roles {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	delay := time.Duration(cfg.RetryDelay) * time.Millisecond

	return Roles{
		UserExecutor:     executor.NewPool(cfg.UserThreads),
		IOExecutor:       executor.NewPool(cfg.IOWorkerThreads),
		ExecutionService: NetExecutionService(cfg),
		Logger:           logging.New(os.Stderr, "expectspec: "),
		ErrorHandler:     http.DefaultErrorHandler{},
		RetryHandler:     http.BackoffRetryHandler{Max: cfg.Retries, Delay: delay},
		IORetryHandler:   http.TimeoutRetryHandler{Max: cfg.Retries, Delay: delay},
	}
}

// NetExecutionService provides the net/http transport configured from cfg.
func NetExecutionService(cfg *config.Config) ExecutionServiceProvider {
	return func(r *Roles) http.ExecutionService {
		transport := http.NewNetTransport(
			http.WithTimeout(time.Duration(cfg.Timeout)*time.Millisecond),
			http.WithFollowRedirects(cfg.GetFollowRedirects()),
			http.WithMaxRedirects(cfg.MaxRedirects),
			http.WithValidateSSL(cfg.GetValidateSSL()),
			http.WithProxy(cfg.Proxy),
			http.WithDefaultHeaders(cfg.Headers),
			http.WithRateLimit(cfg.RateLimit, 1),
		)
		return http.NewNetPipeline(transport, r.IOExecutor, r.PipelineOptions(cfg.GetVerbose())...)
	}
}

// PipelineOptions returns the handler options of the resolved roles. The
// wire log is added when verbose is set.
func (r *Roles) PipelineOptions(verbose bool) []http.PipelineOption {
	opts := []http.PipelineOption{
		http.WithErrorHandler(r.ErrorHandler),
		http.WithRetryHandler(r.RetryHandler),
		http.WithIORetryHandler(r.IORetryHandler),
	}
	if verbose {
		opts = append(opts, http.WithWire(http.NewWire(r.Logger)))
	}
	return opts
}
