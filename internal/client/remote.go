package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/animkit-dev/animkit/internal/branding"
	"github.com/animkit-dev/animkit/internal/registry"
)

// RemoteClient fetches artifacts from <baseURL>/<framework>/<name>.json.
type RemoteClient struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// Option configures a RemoteClient.
type Option func(*RemoteClient)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(r *RemoteClient) {
		r.httpClient = c
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(r *RemoteClient) {
		r.userAgent = ua
	}
}

// NewRemote creates a RemoteClient for baseURL.
func NewRemote(baseURL string, opts ...Option) *RemoteClient {
	r := &RemoteClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		userAgent:  branding.CLIName(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// BaseURL returns the normalized base URL.
func (r *RemoteClient) BaseURL() string { return r.baseURL }

func (r *RemoteClient) itemURL(name, framework string) string {
	return fmt.Sprintf("%s/%s/%s.json", r.baseURL, url.PathEscape(framework), url.PathEscape(name))
}

// FetchItem downloads and decodes one item. A 404 becomes *NotFoundError;
// any other failure is a *FetchError.
func (r *RemoteClient) FetchItem(ctx context.Context, name, framework string) (*registry.Item, error) {
	if !validName(name) {
		return nil, &NotFoundError{Name: name, Framework: framework}
	}
	u := r.itemURL(name, framework)
	body, status, err := r.get(ctx, u)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, &NotFoundError{Name: name, Framework: framework}
	}
	if status != http.StatusOK {
		return nil, &FetchError{URL: u, StatusCode: status}
	}

	item, err := registry.ParseItem(body)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", u, err)
	}
	return item, nil
}

// FetchIndex downloads index.json and checks its version.
func (r *RemoteClient) FetchIndex(ctx context.Context) (*registry.Index, error) {
	u := r.baseURL + "/" + registry.IndexFile
	body, status, err := r.get(ctx, u)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &FetchError{URL: u, StatusCode: status}
	}
	return decodeIndex(body)
}

// Exists probes for an item with HEAD, falling back to GET for hosts that
// do not allow HEAD.
func (r *RemoteClient) Exists(ctx context.Context, name, framework string) (bool, error) {
	if !validName(name) {
		return false, nil
	}
	u := r.itemURL(name, framework)
	status, err := r.do(ctx, http.MethodHead, u)
	if err != nil {
		return false, err
	}
	if status == http.StatusMethodNotAllowed {
		_, status, err = r.get(ctx, u)
		if err != nil {
			return false, err
		}
	}

	switch {
	case status == http.StatusNotFound:
		return false, nil
	case status >= 200 && status < 300:
		return true, nil
	default:
		return false, &FetchError{URL: u, StatusCode: status}
	}
}

func (r *RemoteClient) newRequest(ctx context.Context, method, u string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", r.userAgent)
	return req, nil
}

// get returns the body of a 200 response, or the status of any other.
func (r *RemoteClient) get(ctx context.Context, u string) ([]byte, int, error) {
	req, err := r.newRequest(ctx, http.MethodGet, u)
	if err != nil {
		return nil, 0, err
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, 0, &FetchError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, &FetchError{URL: u, Err: fmt.Errorf("reading response body: %w", err)}
	}
	return body, resp.StatusCode, nil
}

func (r *RemoteClient) do(ctx context.Context, method, u string) (int, error) {
	req, err := r.newRequest(ctx, method, u)
	if err != nil {
		return 0, err
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return 0, &FetchError{URL: u, Err: err}
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

func decodeIndex(data []byte) (*registry.Index, error) {
	var probe struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parsing index: %w", err)
	}
	if err := CheckIndexVersion(probe.Version); err != nil {
		return nil, err
	}
	return registry.ParseIndex(data)
}
