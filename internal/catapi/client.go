package catapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// API is the set of backend operations the UI and CLI depend on.
// It is implemented by *Client and can be faked in tests.
type API interface {
	FetchCats(ctx context.Context) ([]Cat, error)
	SubmitVote(ctx context.Context, req VoteRequest) error
	FetchBreeds(ctx context.Context) ([]BreedSummary, error)
	FetchBreedDetail(ctx context.Context, id string) (*Breed, error)
	FetchFavorites(ctx context.Context) ([]Favorite, error)
	DeleteFavorite(ctx context.Context, id string) error
	ProbeImage(ctx context.Context, imageURL string) (ImageInfo, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the cat-voting HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	apiKey    string
}

const (
	defaultAPIBase   = "127.0.0.1:8080"
	defaultUserAgent = "catvote/0.1"
	requestTimeout   = 5 * time.Second
	maxEnvelopeBytes = 8 << 20
)

// Option customizes a Client.
type Option func(*Client)

// WithAPIKey sends key in the x-api-key header on every API request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = strings.TrimSpace(key) }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if strings.TrimSpace(ua) != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client for the backend at apiBase (host:port or URL).
func NewClient(apiBase string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the resolved backend root.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// FetchCats retrieves a fresh batch of vote candidates.
func (c *Client) FetchCats(ctx context.Context) ([]Cat, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var cats []Cat
	if err := c.do(ctx, http.MethodGet, &url.URL{Path: "/api/cats"}, nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// SubmitVote posts a decision. A non-success envelope is returned as *StatusError.
func (c *Client) SubmitVote(ctx context.Context, req VoteRequest) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(req.ImageID) == "" {
		return ErrMissingID
	}
	if !req.Vote.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidVote, req.Vote)
	}
	return c.do(ctx, http.MethodPost, &url.URL{Path: "/api/vote"}, req, nil)
}

// FetchBreeds retrieves the breed summary list in backend order.
func (c *Client) FetchBreeds(ctx context.Context) ([]BreedSummary, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var breeds []BreedSummary
	if err := c.do(ctx, http.MethodGet, &url.URL{Path: "/api/breeds"}, nil, &breeds); err != nil {
		return nil, err
	}
	return breeds, nil
}

// FetchBreedDetail retrieves one breed with its image set.
func (c *Client) FetchBreedDetail(ctx context.Context, id string) (*Breed, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrMissingID
	}
	values := url.Values{}
	values.Set("id", id)
	rel := &url.URL{Path: "/api/breed", RawQuery: values.Encode()}

	var breed Breed
	if err := c.do(ctx, http.MethodGet, rel, nil, &breed); err != nil {
		return nil, err
	}
	return &breed, nil
}

// FetchFavorites retrieves the full favorites list.
func (c *Client) FetchFavorites(ctx context.Context) ([]Favorite, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var favs []Favorite
	if err := c.do(ctx, http.MethodGet, &url.URL{Path: "/api/favorites"}, nil, &favs); err != nil {
		return nil, err
	}
	return favs, nil
}

// DeleteFavorite removes a favorite by image id.
func (c *Client) DeleteFavorite(ctx context.Context, id string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return ErrMissingID
	}
	rel := &url.URL{Path: "/api/favorites/" + id, RawPath: "/api/favorites/" + url.PathEscape(id)}
	return c.do(ctx, http.MethodDelete, rel, nil, nil)
}

// do issues one request and unwraps the envelope into dest. dest may be nil
// for operations that only report a status.
func (c *Client) do(ctx context.Context, method string, rel *url.URL, body any, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var env Envelope
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxEnvelopeBytes)).Decode(&env)
	if resp.StatusCode >= 400 && (decodeErr != nil || env.Status == "") {
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if !env.OK() {
		return &StatusError{Endpoint: rel.Path, Status: env.Status, Message: env.Message}
	}
	if dest == nil {
		return nil
	}
	if !env.hasData() {
		return fmt.Errorf("api %s: %w", rel.Path, ErrMissingData)
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		trimmed = defaultAPIBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", apiBase, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_base %q: missing host", apiBase)
	}
	u.Path = ""
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
