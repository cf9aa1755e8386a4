package expect

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/expectspec/packages/executor"
	"github.com/abdul-hamid-achik/expectspec/packages/http"
)

func TestExecutionService_ConvertIsIdentity(t *testing.T) {
	s := NewExecutionService(nil)
	req := http.NewRequest("GET", "/")

	native, err := s.Convert(context.Background(), req)

	require.NoError(t, err)
	assert.Same(t, req, native)
}

func TestExecutionService_InvokeReturnsFuncResult(t *testing.T) {
	canned := http.NewResponse(204, "No Content")
	s := NewExecutionService(func(*http.Request) (*http.Response, error) {
		return canned, nil
	})

	resp, err := s.Invoke(context.Background(), http.NewRequest("GET", "/"))

	require.NoError(t, err)
	assert.Same(t, canned, resp)
}

func TestExecutionService_InvokePropagatesError(t *testing.T) {
	boom := errors.New("boom")
	s := NewExecutionService(func(*http.Request) (*http.Response, error) {
		return nil, boom
	})

	_, err := s.Invoke(context.Background(), http.NewRequest("GET", "/"))

	assert.Same(t, boom, err)
}

func TestExecutionService_CleanupReleasesOnce(t *testing.T) {
	body := &countingReadCloser{Reader: strings.NewReader("x")}
	req := http.NewRequest("POST", "/").SetPayload(http.NewStreamPayload(body))
	s := NewExecutionService(nil)

	s.Cleanup(req)
	s.Cleanup(req)

	assert.Equal(t, 1, body.closes)
}

func TestExecutionService_CleanupWithoutPayload(t *testing.T) {
	s := NewExecutionService(nil)
	assert.NotPanics(t, func() {
		s.Cleanup(http.NewRequest("GET", "/"))
	})
}

func TestExecutionService_PipelineReleasesOnEveryPath(t *testing.T) {
	tests := []struct {
		name    string
		fn      Func
		wantErr bool
	}{
		{
			name: "success",
			fn: func(*http.Request) (*http.Response, error) {
				return http.NewResponse(200, "OK"), nil
			},
		},
		{
			name: "error",
			fn: func(*http.Request) (*http.Response, error) {
				return nil, errors.New("mismatch")
			},
			wantErr: true,
		},
		{
			name: "error status",
			fn: func(*http.Request) (*http.Response, error) {
				return http.NewResponse(500, "Internal Server Error"), nil
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := &countingReadCloser{Reader: strings.NewReader("x")}
			req := http.NewRequest("POST", "http://mock/").SetPayload(http.NewStreamPayload(body))
			p := http.NewExecutionPipeline[*http.Request](NewExecutionService(tt.fn), executor.SameThread())

			_, err := p.Execute(context.Background(), req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, 1, body.closes)
		})
	}
}
