package expect

import (
	"github.com/abdul-hamid-achik/expectspec/packages/executor"
	"github.com/abdul-hamid-achik/expectspec/packages/http"
	"github.com/abdul-hamid-achik/expectspec/packages/logging"
	"github.com/abdul-hamid-achik/expectspec/packages/wiring"
)

// Overlay routes every request through fn on the calling goroutine. It
// replaces the executors and the execution service and leaves every other
// role to the wiring beneath it.
func Overlay(fn Func) wiring.Overlay {
	return wiring.Overlay{
		Name:         "expect",
		UserExecutor: executor.SameThread(),
		IOExecutor:   executor.SameThread(),
		ExecutionService: func(r *wiring.Roles) http.ExecutionService {
			return http.NewExecutionPipeline[*http.Request](
				NewExecutionService(fn),
				r.IOExecutor,
				http.WithErrorHandler(r.ErrorHandler),
				http.WithRetryHandler(http.NoRetry{}),
				http.WithIORetryHandler(http.NoRetry{}),
			)
		},
	}
}

// NullLogging discards everything clients log.
func NullLogging() wiring.Overlay {
	return wiring.Overlay{Name: "null-logging", Logger: logging.Null()}
}
