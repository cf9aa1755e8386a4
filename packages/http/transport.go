package http

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"github.com/abdul-hamid-achik/expectspec/packages/executor"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 30 * time.Second
	// DefaultMaxRedirects is the maximum number of redirects to follow
	DefaultMaxRedirects = 10
	// DefaultMaxIdleConns is the maximum number of idle connections in the pool
	DefaultMaxIdleConns = 100
	// DefaultMaxIdleConnsPerHost is the maximum number of idle connections per host
	DefaultMaxIdleConnsPerHost = 10
	// DefaultIdleConnTimeout is how long idle connections stay in the pool
	DefaultIdleConnTimeout = 90 * time.Second
)

// NetTransport sends requests over the network with net/http.
type NetTransport struct {
	httpClient     *http.Client
	timeout        time.Duration
	followRedirect bool
	maxRedirects   int
	validateSSL    bool
	proxyURL       string
	defaultHeaders Header
	limiter        *rate.Limiter
}

var _ Transport[*http.Request] = (*NetTransport)(nil)

type TransportOption func(*NetTransport)

func NewNetTransport(opts ...TransportOption) *NetTransport {
	t := &NetTransport{
		timeout:        DefaultTimeout,
		followRedirect: true,
		maxRedirects:   DefaultMaxRedirects,
		validateSSL:    true,
	}

	for _, opt := range opts {
		opt(t)
	}

	transport := &http.Transport{
		MaxIdleConns:        DefaultMaxIdleConns,
		MaxIdleConnsPerHost: DefaultMaxIdleConnsPerHost,
		IdleConnTimeout:     DefaultIdleConnTimeout,
	}

	if !t.validateSSL {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	if t.proxyURL != "" {
		proxyURL, err := neturl.Parse(t.proxyURL)
		if err == nil {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	redirectPolicy := func(req *http.Request, via []*http.Request) error {
		if !t.followRedirect {
			return http.ErrUseLastResponse
		}
		if len(via) >= t.maxRedirects {
			return http.ErrUseLastResponse
		}
		return nil
	}

	t.httpClient = &http.Client{
		Transport:     transport,
		Timeout:       t.timeout,
		CheckRedirect: redirectPolicy,
	}

	return t
}

func WithTimeout(d time.Duration) TransportOption {
	return func(t *NetTransport) {
		t.timeout = d
	}
}

func WithFollowRedirects(follow bool) TransportOption {
	return func(t *NetTransport) {
		t.followRedirect = follow
	}
}

func WithMaxRedirects(max int) TransportOption {
	return func(t *NetTransport) {
		t.maxRedirects = max
	}
}

// WithValidateSSL enables or disables SSL certificate validation
func WithValidateSSL(validate bool) TransportOption {
	return func(t *NetTransport) {
		t.validateSSL = validate
	}
}

// WithProxy sets the proxy URL for all requests
func WithProxy(proxyURL string) TransportOption {
	return func(t *NetTransport) {
		t.proxyURL = proxyURL
	}
}

// WithDefaultHeaders sets headers added to every request that does not carry
// them already
func WithDefaultHeaders(headers map[string]string) TransportOption {
	return func(t *NetTransport) {
		keys := make([]string, 0, len(headers))
		for k := range headers {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			t.defaultHeaders.Set(k, headers[k])
		}
	}
}

// WithRateLimit caps outgoing requests to perSecond with the given burst.
// A non-positive rate disables limiting.
func WithRateLimit(perSecond float64, burst int) TransportOption {
	return func(t *NetTransport) {
		if perSecond <= 0 {
			t.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// Convert builds the net/http request. Closing its body releases the payload.
func (t *NetTransport) Convert(ctx context.Context, req *Request) (*http.Request, error) {
	if err := ValidateURL(req.Target); err != nil {
		return nil, err
	}

	var body io.Reader
	if req.Payload != nil {
		r, err := req.Payload.Reader()
		if err != nil {
			return nil, fmt.Errorf("reading payload: %w", err)
		}
		body = &payloadBody{Reader: r, payload: req.Payload}
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.Target, body)
	if err != nil {
		return nil, err
	}

	for _, e := range t.defaultHeaders.Entries() {
		httpReq.Header.Set(e.Name, e.Value)
	}
	set := make(map[string]bool)
	for _, e := range req.Headers.Entries() {
		if !set[e.Name] {
			httpReq.Header.Del(e.Name)
			set[e.Name] = true
		}
		httpReq.Header.Add(e.Name, e.Value)
	}

	if req.Payload != nil {
		md := req.Payload.ContentMetadata()
		for _, e := range md.Headers().Entries() {
			httpReq.Header.Set(e.Name, e.Value)
		}
		if md.ContentLength != nil {
			httpReq.ContentLength = *md.ContentLength
		}
	}

	return httpReq, nil
}

// Invoke sends the request and reads the whole response body.
func (t *NetTransport) Invoke(ctx context.Context, httpReq *http.Request) (*Response, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}
	duration := time.Since(start)

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Message:    http.StatusText(httpResp.StatusCode),
		Duration:   duration,
	}

	keys := make([]string, 0, len(httpResp.Header))
	for k := range httpResp.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range httpResp.Header[k] {
			resp.Headers.Add(k, v)
		}
	}

	if len(respBody) > 0 {
		payload := NewBytesPayload(respBody)
		payload.ContentMetadata().ContentType = httpResp.Header.Get("Content-Type")
		resp.Payload = payload
	}

	return resp, nil
}

// Cleanup closes the request body, which releases the payload.
func (t *NetTransport) Cleanup(httpReq *http.Request) {
	if httpReq.Body != nil {
		_ = httpReq.Body.Close()
	}
}

// payloadBody releases its payload when net/http closes the request body.
type payloadBody struct {
	io.Reader
	payload Payload
}

func (b *payloadBody) Close() error {
	return b.payload.Release()
}

// ValidateURL checks that a URL is well-formed and uses an allowed scheme
func ValidateURL(rawURL string) error {
	u, err := neturl.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %v", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme: %s (only http and https are allowed)", u.Scheme)
	}

	if u.Host == "" {
		return fmt.Errorf("URL must have a host")
	}

	return nil
}

// NewNetPipeline runs t through an execution pipeline.
func NewNetPipeline(t *NetTransport, ioExecutor executor.Executor, opts ...PipelineOption) ExecutionService {
	return NewExecutionPipeline[*http.Request](t, ioExecutor, opts...)
}
