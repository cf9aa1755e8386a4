package http

import (
	"net/url"
)

// DefaultProto is the protocol version used when a request does not set one.
const DefaultProto = "HTTP/1.1"

type Request struct {
	Method  string
	Target  string
	Proto   string
	Headers Header
	Payload Payload
}

func NewRequest(method, target string) *Request {
	return &Request{
		Method: method,
		Target: target,
		Proto:  DefaultProto,
	}
}

// RequestLine returns "METHOD TARGET PROTO".
func (r *Request) RequestLine() string {
	proto := r.Proto
	if proto == "" {
		proto = DefaultProto
	}
	return r.Method + " " + r.Target + " " + proto
}

func (r *Request) SetHeader(key, value string) *Request {
	r.Headers.Set(key, value)
	return r
}

func (r *Request) AddHeader(key, value string) *Request {
	r.Headers.Add(key, value)
	return r
}

func (r *Request) SetPayload(p Payload) *Request {
	r.Payload = p
	return r
}

// SetQueryParam sets a query parameter on the target. Targets that do not
// parse are left untouched.
func (r *Request) SetQueryParam(key, value string) *Request {
	u, err := url.Parse(r.Target)
	if err != nil {
		return r
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	r.Target = u.String()
	return r
}
