package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientFetchJSON(t *testing.T) {
	var gotPath, gotAccept, gotAgent, gotQuery string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAccept = r.Header.Get("Accept")
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[1,2,3]`))
	}))
	defer upstream.Close()

	client, err := NewClient(upstream.URL+"/", Options{UserAgent: "catalog-test"})
	require.NoError(t, err)

	values, err := FetchJSON[[]int](context.Background(), client, "/api/game-items?sort=name")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, values)
	assert.Equal(t, "/api/game-items", gotPath)
	assert.Equal(t, "sort=name", gotQuery)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "catalog-test", gotAgent)
}

func TestClientResolvesAgainstBasePath(t *testing.T) {
	client, err := NewClient("https://games.example.com/v1/", Options{})
	require.NoError(t, err)

	endpoint, err := client.resolve("api/game-items")
	require.NoError(t, err)
	assert.Equal(t, "https://games.example.com/v1/api/game-items", endpoint)

	_, err = client.resolve("https://elsewhere.example.com/api")
	assert.Error(t, err)
}

func TestNewClientRejectsBadBaseURL(t *testing.T) {
	_, err := NewClient("ftp://games.example.com", Options{})
	assert.Error(t, err)

	_, err = NewClient("", Options{})
	assert.Error(t, err)
}

func TestFetchJSONStatusError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "catalog offline", http.StatusBadGateway)
	}))
	defer upstream.Close()

	client, err := NewClient(upstream.URL, Options{})
	require.NoError(t, err)

	_, err = FetchJSON[[]int](context.Background(), client, "/api/game-items")
	require.Error(t, err)
	assert.True(t, IsUpstreamError(err))

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, "/api/game-items", statusErr.Path)
	assert.Equal(t, "catalog offline", statusErr.Body)
}

func TestFetchJSONDecodeErrors(t *testing.T) {
	cases := map[string]string{
		"invalid json":  `[{"id":`,
		"not an array":  `{"id":1}`,
		"trailing data": `[] []`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer upstream.Close()

			client, err := NewClient(upstream.URL, Options{})
			require.NoError(t, err)

			_, err = FetchJSON[[]map[string]interface{}](context.Background(), client, "/api/game-items")
			require.Error(t, err)
			assert.True(t, IsUpstreamError(err))
		})
	}
}

type fetcherFunc func(ctx context.Context, resourcePath string) (*http.Response, error)

func (f fetcherFunc) Fetch(ctx context.Context, resourcePath string) (*http.Response, error) {
	return f(ctx, resourcePath)
}

func TestFetchJSONWrapsForeignFetcherErrors(t *testing.T) {
	errDial := errors.New("dial tcp: refused")
	fetcher := fetcherFunc(func(context.Context, string) (*http.Response, error) {
		return nil, errDial
	})

	_, err := FetchJSON[[]int](context.Background(), fetcher, "/api/game-items")
	assert.True(t, IsUpstreamError(err))
	assert.True(t, errors.Is(err, errDial))

	_, err = FetchJSON[[]int](context.Background(), nil, "/api/game-items")
	assert.True(t, IsUpstreamError(err))
}

func TestClientFetchTransportError(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	base := upstream.URL
	upstream.Close()

	client, err := NewClient(base, Options{})
	require.NoError(t, err)

	_, err = client.Fetch(context.Background(), "/api/game-items")
	require.Error(t, err)
	assert.True(t, IsUpstreamError(err))
}
