package http

import (
	"strconv"
	"strings"
	"time"
)

type Response struct {
	StatusCode int
	Message    string
	Headers    Header
	Payload    Payload
	Duration   time.Duration
}

func NewResponse(statusCode int, message string) *Response {
	return &Response{StatusCode: statusCode, Message: message}
}

func (r *Response) SetHeader(key, value string) *Response {
	r.Headers.Set(key, value)
	return r
}

func (r *Response) SetPayload(p Payload) *Response {
	r.Payload = p
	return r
}

// StatusLine returns "HTTP/1.1 CODE MESSAGE".
func (r *Response) StatusLine() string {
	line := DefaultProto + " " + strconv.Itoa(r.StatusCode)
	if r.Message != "" {
		line += " " + r.Message
	}
	return line
}

// Body drains the payload. A response without payload has an empty body.
func (r *Response) Body() ([]byte, error) {
	if r.Payload == nil {
		return nil, nil
	}
	s, err := ReadAll(r.Payload)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// Header looks a header up case-insensitively, falling back to the payload's
// content headers.
func (r *Response) Header(key string) string {
	if v := r.Headers.Get(key); v != "" {
		return v
	}
	if r.Payload != nil {
		return r.Payload.ContentMetadata().Headers().Get(key)
	}
	return ""
}

func (r *Response) ContentType() string {
	return r.Header("Content-Type")
}

func (r *Response) IsJSON() bool {
	return strings.Contains(r.ContentType(), "application/json")
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400
}

func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500
}

func (r *Response) DurationMs() int64 {
	return r.Duration.Milliseconds()
}
