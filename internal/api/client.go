package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/gradehub/internal/metrics"
)

const requestIDHeader = "X-Request-ID"

// Resource is one of the backend collections. Creation endpoints are not
// uniform across resources, so each carries its own create path.
type Resource struct {
	Name       string
	createPath []string
}

var (
	Students      = Resource{Name: "students", createPath: []string{"students"}}
	Modules       = Resource{Name: "modules", createPath: []string{"modules", "add"}}
	Grades        = Resource{Name: "grades", createPath: []string{"grades", "addGrade"}}
	Registrations = Resource{Name: "registrations", createPath: []string{"registrations"}}
)

type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

type Option func(*Client)

// WithHTTPClient replaces the default transport, mostly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("api base URL is not specified")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base URL %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("api base URL %q must be http or https", cfg.BaseURL)
	}

	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) List(ctx context.Context, res Resource, out any) error {
	return c.do(ctx, res, "list", http.MethodGet, []string{res.Name}, nil, out)
}

func (c *Client) Get(ctx context.Context, res Resource, id string, out any) error {
	return c.do(ctx, res, "get", http.MethodGet, []string{res.Name, id}, nil, out)
}

func (c *Client) Create(ctx context.Context, res Resource, body, out any) error {
	return c.do(ctx, res, "create", http.MethodPost, res.createPath, body, out)
}

func (c *Client) Update(ctx context.Context, res Resource, id string, patch, out any) error {
	return c.do(ctx, res, "update", http.MethodPut, []string{res.Name, id}, patch, out)
}

func (c *Client) Delete(ctx context.Context, res Resource, id string) error {
	return c.do(ctx, res, "delete", http.MethodDelete, []string{res.Name, id}, nil, nil)
}

func (c *Client) do(ctx context.Context, res Resource, verb, method string, path []string, body, out any) error {
	start := time.Now()
	status := "network_error"
	defer func() {
		metrics.APIRequestDuration.WithLabelValues(res.Name, verb).Observe(time.Since(start).Seconds())
		metrics.APIRequestsTotal.WithLabelValues(res.Name, verb, status).Inc()
	}()

	target := c.baseURL.JoinPath(path...).String()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s body: %w", verb, res.Name, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &NetworkError{Op: method, URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)

	logger.Debug.Printf("[%s] %s %s", requestID, method, target)

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	status = strconv.Itoa(resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: method, URL: target, Err: fmt.Errorf("failed to read response: %w", err)}
	}
	logger.Debug.Printf("[%s] %s %s -> %d (%d bytes)", requestID, method, target, resp.StatusCode, len(data))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newTransportError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &NetworkError{Op: method, URL: target, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}
