package compute

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/abdul-hamid-achik/expectspec/packages/executor"
	"github.com/abdul-hamid-achik/expectspec/packages/http"
	"github.com/abdul-hamid-achik/expectspec/packages/rest"
)

// ProviderID is the id the client is registered under.
const ProviderID = "compute"

// ErrMissingArgument is returned, without a request being sent, when a
// required id or name is blank.
var ErrMissingArgument = errors.New("compute: missing argument")

type Server struct {
	ID        string
	Name      string
	Status    string
	ImageRef  string
	FlavorRef string
}

// AsyncClient issues requests on the user executor.
type AsyncClient struct {
	env *rest.Env
}

func NewAsyncClient(env *rest.Env) (*AsyncClient, error) {
	if env.Endpoint == "" {
		return nil, fmt.Errorf("compute: no endpoint")
	}
	if _, err := url.Parse(env.Endpoint); err != nil {
		return nil, fmt.Errorf("compute: invalid endpoint: %w", err)
	}
	return &AsyncClient{env: env}, nil
}

// Client is the blocking view of an AsyncClient.
type Client struct {
	async *AsyncClient
}

func NewClient(_ *rest.Env, async *AsyncClient) (*Client, error) {
	return &Client{async: async}, nil
}

// Register adds the compute provider to r.
func Register(r *rest.Registry) {
	r.Register(rest.Registration{
		ID:      ProviderID,
		Binding: rest.Bind(NewAsyncClient, NewClient),
	})
}

func (c *AsyncClient) newRequest(method, path string) *http.Request {
	req := http.NewRequest(method, c.env.Endpoint+path).
		SetHeader("Accept", "application/json")
	if c.env.Credential != "" {
		auth := base64.StdEncoding.EncodeToString([]byte(c.env.Identity + ":" + c.env.Credential))
		req.SetHeader("Authorization", "Basic "+auth)
	}
	return req
}

func (c *AsyncClient) ListServers(ctx context.Context) *executor.Future[[]Server] {
	return executor.Submit(c.env.UserExecutor, func() ([]Server, error) {
		resp, err := c.env.Execute(ctx, c.newRequest("GET", "/servers"))
		if err != nil {
			return nil, err
		}
		body, err := resp.Body()
		if err != nil {
			return nil, err
		}

		servers := []Server{}
		for _, s := range gjson.GetBytes(body, "servers").Array() {
			servers = append(servers, parseServer(s))
		}
		return servers, nil
	})
}

// GetServer resolves to nil when the server does not exist.
func (c *AsyncClient) GetServer(ctx context.Context, id string) *executor.Future[*Server] {
	if id == "" {
		return executor.Completed[*Server](nil, fmt.Errorf("%w: server id", ErrMissingArgument))
	}
	return executor.Submit(c.env.UserExecutor, func() (*Server, error) {
		resp, err := c.env.Execute(ctx, c.newRequest("GET", "/servers/"+url.PathEscape(id)))
		if http.IsNotFound(err) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return serverFromResponse(resp)
	})
}

type createServerRequest struct {
	Server createServer `json:"server"`
}

type createServer struct {
	Name      string `json:"name"`
	ImageRef  string `json:"imageRef"`
	FlavorRef string `json:"flavorRef"`
}

func (c *AsyncClient) CreateServer(ctx context.Context, name, imageRef, flavorRef string) *executor.Future[*Server] {
	if name == "" {
		return executor.Completed[*Server](nil, fmt.Errorf("%w: server name", ErrMissingArgument))
	}
	return executor.Submit(c.env.UserExecutor, func() (*Server, error) {
		data, err := json.Marshal(createServerRequest{Server: createServer{
			Name:      name,
			ImageRef:  imageRef,
			FlavorRef: flavorRef,
		}})
		if err != nil {
			return nil, err
		}
		payload := http.NewBytesPayload(data)
		payload.ContentMetadata().ContentType = "application/json"

		resp, err := c.env.Execute(ctx, c.newRequest("POST", "/servers").SetPayload(payload))
		if err != nil {
			return nil, err
		}
		return serverFromResponse(resp)
	})
}

// DeleteServer resolves to false when the server does not exist.
func (c *AsyncClient) DeleteServer(ctx context.Context, id string) *executor.Future[bool] {
	if id == "" {
		return executor.Completed(false, fmt.Errorf("%w: server id", ErrMissingArgument))
	}
	return executor.Submit(c.env.UserExecutor, func() (bool, error) {
		resp, err := c.env.Execute(ctx, c.newRequest("DELETE", "/servers/"+url.PathEscape(id)))
		if http.IsNotFound(err) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if resp.Payload != nil {
			_ = resp.Payload.Release()
		}
		return true, nil
	})
}

func (c *Client) ListServers(ctx context.Context) ([]Server, error) {
	return c.async.ListServers(ctx).Get(ctx)
}

func (c *Client) GetServer(ctx context.Context, id string) (*Server, error) {
	return c.async.GetServer(ctx, id).Get(ctx)
}

func (c *Client) CreateServer(ctx context.Context, name, imageRef, flavorRef string) (*Server, error) {
	return c.async.CreateServer(ctx, name, imageRef, flavorRef).Get(ctx)
}

func (c *Client) DeleteServer(ctx context.Context, id string) (bool, error) {
	return c.async.DeleteServer(ctx, id).Get(ctx)
}

func serverFromResponse(resp *http.Response) (*Server, error) {
	body, err := resp.Body()
	if err != nil {
		return nil, err
	}
	s := gjson.GetBytes(body, "server")
	if !s.Exists() {
		return nil, fmt.Errorf("compute: response has no server")
	}
	server := parseServer(s)
	return &server, nil
}

func parseServer(s gjson.Result) Server {
	return Server{
		ID:        s.Get("id").String(),
		Name:      s.Get("name").String(),
		Status:    s.Get("status").String(),
		ImageRef:  s.Get("imageRef").String(),
		FlavorRef: s.Get("flavorRef").String(),
	}
}
