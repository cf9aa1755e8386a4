package http

import (
	"errors"
	"fmt"
	"net"
	"time"
)

// ErrorHandler turns a response with a status code of 300 or above into an
// error. Returning nil hands the response to the caller.
type ErrorHandler interface {
	Handle(cmd *Command, resp *Response) error
}

// RetryHandler decides whether a response with a status code of 300 or above
// is retried, and after how long.
type RetryHandler interface {
	ShouldRetryResponse(cmd *Command, resp *Response) (time.Duration, bool)
}

// IORetryHandler decides whether a transport error is retried.
type IORetryHandler interface {
	ShouldRetryError(cmd *Command, err error) (time.Duration, bool)
}

// ResponseError is returned by DefaultErrorHandler.
type ResponseError struct {
	RequestLine string
	StatusCode  int
	StatusLine  string
	Body        string
}

func (e *ResponseError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("command: %s failed with response: %s", e.RequestLine, e.StatusLine)
	}
	return fmt.Sprintf("command: %s failed with response: %s; content: [%s]", e.RequestLine, e.StatusLine, e.Body)
}

// IsNotFound reports whether err is a *ResponseError with status 404.
func IsNotFound(err error) bool {
	var re *ResponseError
	return errors.As(err, &re) && re.StatusCode == 404
}

// DefaultErrorHandler fails every response it is given, draining and releasing
// the response payload into the error.
type DefaultErrorHandler struct{}

func (DefaultErrorHandler) Handle(cmd *Command, resp *Response) error {
	e := &ResponseError{
		RequestLine: cmd.Request.RequestLine(),
		StatusCode:  resp.StatusCode,
		StatusLine:  resp.StatusLine(),
	}
	if resp.Payload != nil {
		if body, err := ReadAll(resp.Payload); err == nil {
			e.Body = body
		}
		_ = resp.Payload.Release()
	}
	return e
}

// NoRetry never retries.
type NoRetry struct{}

func (NoRetry) ShouldRetryResponse(*Command, *Response) (time.Duration, bool) { return 0, false }
func (NoRetry) ShouldRetryError(*Command, error) (time.Duration, bool)        { return 0, false }

// BackoffRetryHandler retries 429 and 5xx responses up to Max attempts,
// waiting Delay times the attempt number in between.
type BackoffRetryHandler struct {
	Max   int
	Delay time.Duration
}

func (h BackoffRetryHandler) ShouldRetryResponse(cmd *Command, resp *Response) (time.Duration, bool) {
	if cmd.Attempts >= h.Max {
		return 0, false
	}
	if resp.StatusCode != 429 && resp.StatusCode < 500 {
		return 0, false
	}
	return h.Delay * time.Duration(cmd.Attempts), true
}

// TimeoutRetryHandler retries transport timeouts up to Max attempts.
type TimeoutRetryHandler struct {
	Max   int
	Delay time.Duration
}

func (h TimeoutRetryHandler) ShouldRetryError(cmd *Command, err error) (time.Duration, bool) {
	if cmd.Attempts >= h.Max {
		return 0, false
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return h.Delay, true
	}
	return 0, false
}
