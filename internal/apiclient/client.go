package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "gamecatalog"
	errorBodyLimit   = 512
)

// ErrUpstream marks every failure to fetch or decode an upstream resource.
var ErrUpstream = errors.New("upstream request failed")

// Fetcher performs a GET for a resource path relative to the API origin.
type Fetcher interface {
	Fetch(ctx context.Context, resourcePath string) (*http.Response, error)
}

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("GET %s: status %d", e.Path, e.StatusCode)
	}
	return fmt.Sprintf("GET %s: status %d: %s", e.Path, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrUpstream
}

type Client struct {
	baseURL *url.URL
	http    *http.Client
}

var _ Fetcher = (*Client)(nil)

type Options struct {
	Timeout   time.Duration
	UserAgent string
	Transport http.RoundTripper
}

func NewClient(baseURL string, opts Options) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("api base url %q must be http or https", baseURL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	return &Client{
		baseURL: parsed,
		http: &http.Client{
			Timeout: timeout,
			Transport: &headerTransport{
				base:      base,
				userAgent: userAgent,
			},
		},
	}, nil
}

func (c *Client) Fetch(ctx context.Context, resourcePath string) (*http.Response, error) {
	endpoint, err := c.resolve(resourcePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request for %s: %w", ErrUpstream, resourcePath, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", ErrUpstream, resourcePath, err)
	}
	return resp, nil
}

func (c *Client) resolve(resourcePath string) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(resourcePath))
	if err != nil {
		return "", fmt.Errorf("parse resource path %q: %w", resourcePath, err)
	}
	if ref.IsAbs() || ref.Host != "" {
		return "", fmt.Errorf("resource path %q must be relative to the api origin", resourcePath)
	}

	resolved := *c.baseURL
	resolved.Path = strings.TrimRight(c.baseURL.Path, "/") + "/" + strings.TrimLeft(ref.Path, "/")
	resolved.RawQuery = ref.RawQuery
	return resolved.String(), nil
}

// DecodeJSON reads resp into T and always closes the body.
func DecodeJSON[T interface{}](resp *http.Response) (T, error) {
	var out T
	if resp == nil || resp.Body == nil {
		return out, fmt.Errorf("%w: empty response", ErrUpstream)
	}
	defer resp.Body.Close()

	path := ""
	if resp.Request != nil && resp.Request.URL != nil {
		path = resp.Request.URL.Path
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, &StatusError{
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       drainError(resp.Body),
		}
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, fmt.Errorf("%w: read %s: %w", ErrUpstream, path, err)
	}
	if err := json.Unmarshal(content, &out); err != nil {
		return out, fmt.Errorf("%w: decode %s: %w", ErrUpstream, path, err)
	}
	return out, nil
}

// FetchJSON fetches resourcePath and decodes its JSON body.
func FetchJSON[T interface{}](ctx context.Context, fetcher Fetcher, resourcePath string) (T, error) {
	var zero T
	if fetcher == nil {
		return zero, fmt.Errorf("%w: no fetcher configured", ErrUpstream)
	}

	resp, err := fetcher.Fetch(ctx, resourcePath)
	if err != nil {
		if !errors.Is(err, ErrUpstream) {
			err = fmt.Errorf("%w: %w", ErrUpstream, err)
		}
		return zero, err
	}
	return DecodeJSON[T](resp)
}

func IsUpstreamError(err error) bool {
	return errors.Is(err, ErrUpstream)
}

func drainError(body io.Reader) string {
	content, _ := io.ReadAll(io.LimitReader(body, errorBodyLimit))
	return strings.TrimSpace(string(content))
}

type headerTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("Accept", "application/json")
	if clone.Header.Get("User-Agent") == "" {
		clone.Header.Set("User-Agent", t.userAgent)
	}
	return t.base.RoundTrip(clone)
}
