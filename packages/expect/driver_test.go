package expect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/expectspec/packages/core/config"
	"github.com/abdul-hamid-achik/expectspec/packages/executor"
	"github.com/abdul-hamid-achik/expectspec/packages/http"
	"github.com/abdul-hamid-achik/expectspec/packages/logging"
	"github.com/abdul-hamid-achik/expectspec/packages/rest"
	"github.com/abdul-hamid-achik/expectspec/packages/wiring"
)

func serversRequest() *http.Request {
	return http.NewRequest("GET", "http://mock/servers").SetHeader("Accept", "application/json")
}

func TestDriver_RoundTrip(t *testing.T) {
	canned := http.NewResponse(200, "OK").SetPayload(http.NewStringPayload(`{"servers":[]}`))
	d := NewDriver[*testAPI](t, testTypes)

	api, err := d.CreateClient(serversRequest(), canned)
	require.NoError(t, err)

	resp, err := api.Do(serversRequest())
	require.NoError(t, err)
	assert.Same(t, canned, resp)
}

func TestDriver_Mismatch(t *testing.T) {
	rec := &recordingT{}
	d := NewDriver[*testAPI](rec, testTypes)

	api, err := d.CreateClient(serversRequest(), http.NewResponse(200, "OK"))
	require.NoError(t, err)

	actual := http.NewRequest("GET", "http://mock/servers").SetHeader("Accept", "application/xml")
	resp, err := api.Do(actual)

	assert.Nil(t, resp)
	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "GET http://mock/servers HTTP/1.1\nAccept: application/xml\n\n", mismatch.Actual)
	assert.Equal(t, "GET http://mock/servers HTTP/1.1\nAccept: application/json\n\n", mismatch.Expected)
	assert.Contains(t, err.Error(), mismatch.Actual)
	assert.Contains(t, err.Error(), mismatch.Expected)

	assert.True(t, rec.failed)
	require.Len(t, rec.errors, 1)
	assert.Contains(t, rec.errors[0], "request does not match expectation")
}

func TestDriver_MismatchWithoutT(t *testing.T) {
	d := NewDriver[*testAPI](nil, testTypes)

	api, err := d.CreateClient(serversRequest(), http.NewResponse(200, "OK"))
	require.NoError(t, err)

	_, err = api.Do(http.NewRequest("DELETE", "http://mock/servers"))

	var mismatch *MismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestDriver_PayloadMismatch(t *testing.T) {
	rec := &recordingT{}
	d := NewDriver[*testAPI](rec, testTypes)

	api, err := d.CreateClient(http.NewRequest("POST", "http://mock/servers"), http.NewResponse(200, "OK"))
	require.NoError(t, err)

	_, err = api.Do(http.NewRequest("POST", "http://mock/servers").SetPayload(http.NewStringPayload("{}")))

	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Contains(t, mismatch.Actual, "Content-Length: 2")
	assert.True(t, rec.failed)
}

func TestDriver_ReleasesActualPayloadOnce(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "match", body: "hello"},
		{name: "mismatch", body: "goodbye", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expected := http.NewRequest("PUT", "http://mock/blob").
				SetPayload(http.NewStreamPayload(&countingReadCloser{Reader: strings.NewReader("hello")}))
			d := NewDriver[*testAPI](&recordingT{}, testTypes)
			api, err := d.CreateClient(expected, http.NewResponse(200, "OK"))
			require.NoError(t, err)

			body := &countingReadCloser{Reader: strings.NewReader(tt.body)}
			_, err = api.Do(http.NewRequest("PUT", "http://mock/blob").SetPayload(http.NewStreamPayload(body)))

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, 1, body.closes)
		})
	}
}

func TestDriver_FailNowStillReleasesPayload(t *testing.T) {
	ft := &goexitT{}
	body := &countingReadCloser{Reader: strings.NewReader("actual")}
	returned := false
	done := make(chan struct{})

	go func() {
		defer close(done)
		d := NewDriver[*testAPI](ft, testTypes)
		api, err := d.CreateClient(http.NewRequest("PUT", "http://mock/blob"), http.NewResponse(200, "OK"))
		if err != nil {
			return
		}
		_, _ = api.Do(http.NewRequest("PUT", "http://mock/blob").SetPayload(http.NewStreamPayload(body)))
		returned = true
	}()
	<-done

	assert.True(t, ft.failed)
	assert.False(t, returned)
	assert.Equal(t, 1, body.closes)
}

func TestDriver_ExpectedResourceFault(t *testing.T) {
	rec := &recordingT{}
	d := NewDriver[*testAPI](rec, testTypes)
	expected := http.NewRequest("POST", "http://mock/upload").
		SetPayload(http.NewStreamPayload(&countingReadCloser{Reader: failingReader{}}))

	api, err := d.CreateClient(expected, http.NewResponse(200, "OK"))
	require.NoError(t, err)

	_, err = api.Do(http.NewRequest("POST", "http://mock/upload"))

	var re *ResourceError
	require.ErrorAs(t, err, &re)
	assert.True(t, rec.failed)
}

func TestDriver_UnusedClientReleasesExpectedPayload(t *testing.T) {
	body := &countingReadCloser{Reader: strings.NewReader("chunk")}

	t.Run("client never called", func(t *testing.T) {
		d := NewDriver[*testAPI](t, testTypes)
		expected := http.NewRequest("PUT", "http://mock/blob").SetPayload(http.NewStreamPayload(body))

		_, err := d.CreateClient(expected, http.NewResponse(204, "No Content"))
		require.NoError(t, err)
		assert.Equal(t, 0, body.closes)
	})

	assert.Equal(t, 1, body.closes)
}

func TestDriver_ErrorStatusGoesThroughErrorHandler(t *testing.T) {
	d := NewDriver[*testAPI](t, testTypes)
	canned := http.NewResponse(404, "Not Found").SetPayload(http.NewStringPayload("no such server"))

	api, err := d.CreateClient(serversRequest(), canned)
	require.NoError(t, err)

	_, err = api.Do(serversRequest())

	require.Error(t, err)
	assert.True(t, http.IsNotFound(err))
	assert.Contains(t, err.Error(), "no such server")
}

type passThrough struct{}

func (passThrough) Handle(*http.Command, *http.Response) error { return nil }

func TestDriver_CreateClientWithWiring(t *testing.T) {
	d := NewDriver[*testAPI](t, testTypes)
	canned := http.NewResponse(404, "Not Found")

	api, err := d.CreateClientWithWiring(serversRequest(), canned, wiring.Overlay{ErrorHandler: passThrough{}})
	require.NoError(t, err)

	resp, err := api.Do(serversRequest())
	require.NoError(t, err)
	assert.Same(t, canned, resp)
}

func TestDriver_WithWiringAppliesToEveryClient(t *testing.T) {
	logger := &logging.CapturingLogger{}
	calls := 0
	d := NewDriver[*testAPI](t, testTypes, WithWiring(func() wiring.Overlay {
		calls++
		return wiring.Overlay{Logger: logger}
	}))

	for i := 0; i < 2; i++ {
		api, err := d.CreateClient(serversRequest(), http.NewResponse(200, "OK"))
		require.NoError(t, err)
		assert.Same(t, logger, api.env.Logger)
	}
	assert.Equal(t, 2, calls)
}

func TestDriver_LoggingIsDiscarded(t *testing.T) {
	d := NewDriver[*testAPI](t, testTypes)

	api, err := d.CreateClient(serversRequest(), http.NewResponse(200, "OK"))
	require.NoError(t, err)

	assert.Equal(t, logging.Null(), api.env.Logger)
	assert.Equal(t, executor.SameThread(), api.env.UserExecutor)
}

func TestDriver_CreateClientWithProperties(t *testing.T) {
	d := NewDriver[*testAPI](t, testTypes, WithProperties(func() *config.Config {
		return &config.Config{Credential: "secret"}
	}))

	api, err := d.CreateClientWithProperties(
		http.NewRequest("GET", "http://other/servers"),
		http.NewResponse(200, "OK"),
		&config.Config{Endpoint: "http://other"},
	)
	require.NoError(t, err)

	assert.Equal(t, "http://other", api.env.Endpoint)
	assert.Equal(t, rest.MockIdentity, api.env.Identity)
	assert.Empty(t, api.env.Credential, "driver properties are replaced, not merged")

	_, err = api.Do(http.NewRequest("GET", "http://other/servers"))
	assert.NoError(t, err)
}

func TestDriver_WithPropertiesAppliesWithoutOwnSettings(t *testing.T) {
	d := NewDriver[*testAPI](t, testTypes, WithProperties(func() *config.Config {
		return &config.Config{Credential: "secret"}
	}))

	api, err := d.CreateClient(serversRequest(), http.NewResponse(200, "OK"))
	require.NoError(t, err)

	assert.Equal(t, "secret", api.env.Credential)
	assert.Equal(t, rest.MockEndpoint, api.env.Endpoint)
}

func TestDriver_CreateClientWithWiringReplacesDriverWiring(t *testing.T) {
	logger := &logging.CapturingLogger{}
	d := NewDriver[*testAPI](t, testTypes, WithWiring(func() wiring.Overlay {
		return wiring.Overlay{Logger: logger}
	}))
	canned := http.NewResponse(404, "Not Found")

	api, err := d.CreateClientWithWiring(serversRequest(), canned, wiring.Overlay{ErrorHandler: passThrough{}})
	require.NoError(t, err)

	assert.Equal(t, logging.Null(), api.env.Logger)
	resp, err := api.Do(serversRequest())
	require.NoError(t, err)
	assert.Same(t, canned, resp)
}

func TestDriver_TypesDefaults(t *testing.T) {
	d := NewDriver[*testAPI](t, testTypes)

	api, err := d.CreateClient(serversRequest(), http.NewResponse(200, "OK"))
	require.NoError(t, err)

	assert.Equal(t, rest.MockProvider, api.env.Provider)
	assert.Equal(t, rest.MockEndpoint, api.env.Endpoint)
	assert.Equal(t, rest.MockAPIVersion, api.env.APIVersion)
	assert.Equal(t, rest.MockIdentity, api.env.Identity)
	assert.Empty(t, api.env.Credential)
}

func TestDriver_IndependentClients(t *testing.T) {
	d := NewDriver[*testAPI](t, testTypes)

	first, err := d.CreateClient(serversRequest(), http.NewResponse(200, "OK"))
	require.NoError(t, err)
	second, err := d.CreateClient(serversRequest(), http.NewResponse(201, "Created"))
	require.NoError(t, err)

	assert.NotSame(t, first, second)

	resp, err := second.Do(serversRequest())
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)
	resp, err = first.Do(serversRequest())
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestDriver_ClientFor(t *testing.T) {
	var seen []string
	d := NewDriver[*testAPI](t, testTypes)

	api, err := d.ClientFor(func(req *http.Request) (*http.Response, error) {
		seen = append(seen, req.RequestLine())
		return http.NewResponse(200, "OK"), nil
	}, wiring.Overlay{}, nil)
	require.NoError(t, err)

	_, err = api.Do(http.NewRequest("GET", "http://mock/a"))
	require.NoError(t, err)
	_, err = api.Do(http.NewRequest("GET", "http://mock/b"))
	require.NoError(t, err)

	assert.Equal(t, []string{"GET http://mock/a HTTP/1.1", "GET http://mock/b HTTP/1.1"}, seen)
}

func TestDriver_UnknownProvider(t *testing.T) {
	rec := &recordingT{}
	d := NewDriver[*testAPI](rec, rest.Provider{ID: "nope"}, WithRegistry(rest.NewRegistry()))

	_, err := d.CreateClient(serversRequest(), http.NewResponse(200, "OK"))

	var unknown *rest.UnknownProviderError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "nope", unknown.Provider)
	assert.False(t, rec.failed)
}

func TestDriver_WrongClientType(t *testing.T) {
	d := NewDriver[*strings.Builder](t, testTypes)

	_, err := d.CreateClient(serversRequest(), http.NewResponse(200, "OK"))

	assert.Error(t, err)
}

func TestDriver_RegisteredProvider(t *testing.T) {
	registry := rest.NewRegistry()
	registry.Register(rest.Registration{ID: "blob", Binding: testTypes.Binding})
	providers := &config.Providers{Providers: map[string]config.Provider{
		"blob": {Endpoint: "http://blob.example", APIVersion: "2"},
	}}
	d := NewDriver[*testAPI](t, rest.Provider{ID: "blob"}, WithRegistry(registry), WithProviders(providers))

	expected := http.NewRequest("GET", "http://blob.example/containers")
	api, err := d.CreateClient(expected, http.NewResponse(200, "OK"))
	require.NoError(t, err)

	assert.Equal(t, "http://blob.example", api.env.Endpoint)
	assert.Equal(t, "2", api.env.APIVersion)
	assert.Equal(t, rest.DefaultIdentity, api.env.Identity)
	assert.Equal(t, rest.DefaultCredential, api.env.Credential)

	_, err = api.Do(http.NewRequest("GET", "http://blob.example/containers"))
	assert.NoError(t, err)
}
