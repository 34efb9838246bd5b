package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-contraction/internal/history"
	"github.com/lwmacct/251207-go-pkg-contraction/internal/server"
	"github.com/lwmacct/251207-go-pkg-contraction/pkg/contraction"
)

func newExpandServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := server.NewHandler(contraction.New(contraction.DefaultTable()), history.Nop{}, 1<<20)
	srv := httptest.NewServer(server.NewEngine(h, []string{"*"}))
	t.Cleanup(srv.Close)

	return srv
}

func TestClient_Expand(t *testing.T) {
	srv := newExpandServer(t)
	c := New(srv.URL, WithTimeout(5*time.Second))

	inputs := []string{
		"",
		"I can't believe you're here! Won't you stay for dinner?",
		"We've been waiting for you. It's time to go.",
		"no contractions here",
		"I'd",
	}
	for _, input := range inputs {
		resp, err := c.Expand(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, contraction.Expand(input), resp.Expanded, "remote result must match local Expand for %q", input)
	}

	resp, err := c.Expand(context.Background(), "It's time to go.")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Replacements)
	assert.Equal(t, 17, resp.Characters)
	assert.Equal(t, 5, resp.Words)
}

func TestClient_HealthAndContractions(t *testing.T) {
	srv := newExpandServer(t)
	c := New(srv.URL)

	require.NoError(t, c.Health(context.Background()))

	entries, err := c.Contractions(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, contraction.DefaultTable().Len())
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"expanded":"do not","replacements":1,"characters":6,"words":2}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, WithRetries(3), WithBackoff(time.Millisecond))
	resp, err := c.Expand(context.Background(), "don't")

	require.NoError(t, err)
	assert.Equal(t, "do not", resp.Expanded)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_RetriesExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"overloaded"}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, WithRetries(2), WithBackoff(time.Millisecond))
	_, err := c.Expand(context.Background(), "don't")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
	assert.Equal(t, "overloaded", statusErr.Message)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_NoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"bad input"}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, WithRetries(3), WithBackoff(time.Millisecond))
	_, err := c.Expand(context.Background(), "x")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.Code)
	assert.Contains(t, err.Error(), "bad input")
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, WithRetries(1), WithBackoff(time.Millisecond), WithTimeout(time.Second))
	_, err := c.Expand(context.Background(), "can't")

	require.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_BadResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, WithRetries(3))
	_, err := c.Expand(context.Background(), "can't")
	require.ErrorIs(t, err, ErrBadResponse)

	err = c.Health(context.Background())
	require.ErrorIs(t, err, ErrBadResponse)
}

func TestClient_ContextCanceledDuringBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := New(srv.URL, WithRetries(5), WithBackoff(time.Second))
	start := time.Now()
	_, err := c.Expand(ctx, "can't")

	require.ErrorIs(t, err, ErrUnavailable)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), time.Second)
}

func TestNew_NormalizesBaseURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8000", New("localhost:8000/").baseURL)
	assert.Equal(t, "https://api.example", New("https://api.example").baseURL)
}

type countingTransport struct {
	calls atomic.Int32
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return http.DefaultTransport.RoundTrip(req)
}

func TestWithHTTPClient(t *testing.T) {
	srv := newExpandServer(t)
	rt := &countingTransport{}
	hc := &http.Client{Transport: rt}

	c := New(srv.URL, WithHTTPClient(hc), WithTimeout(5*time.Second))
	require.NoError(t, c.Health(context.Background()))

	assert.Equal(t, int32(1), rt.calls.Load())
	assert.Equal(t, 5*time.Second, hc.Timeout)
}
