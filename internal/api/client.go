package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goliatone/go-layout-editor/internal/domain"
	"github.com/goliatone/go-layout-editor/internal/logging"
	"github.com/goliatone/go-layout-editor/internal/schema"
	"github.com/goliatone/go-layout-editor/pkg/interfaces"
)

// DefaultTimeout bounds every backend round-trip.
const DefaultTimeout = 30 * time.Second

// Doer abstracts *http.Client for tests.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the HTTP persistence adapter over the backend API. It also
// satisfies the media browser contract consumed by the picker.
type Client struct {
	httpClient Doer
	routes     *Routes
	timeout    time.Duration
	logger     interfaces.Logger
}

// ClientOption customises a Client.
type ClientOption func(*Client)

// WithHTTPClient swaps the underlying transport.
func WithHTTPClient(doer Doer) ClientOption {
	return func(c *Client) {
		if doer != nil {
			c.httpClient = doer
		}
	}
}

// WithTimeout overrides the per-request deadline.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger attaches a module logger.
func WithLogger(logger interfaces.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient constructs the adapter rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{},
		routes:     NewRoutes(baseURL),
		timeout:    DefaultTimeout,
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewInstanceInput is the create payload for a page instance.
type NewInstanceInput struct {
	Title  string        `json:"title"`
	Slug   string        `json:"slug"`
	Status domain.Status `json:"status"`
}

// ListInstances returns the instances of a page.
func (c *Client) ListInstances(ctx context.Context, pageID string) ([]domain.Instance, error) {
	var out []domain.Instance
	err := c.call(ctx, http.MethodGet, RouteInstanceList, map[string]any{"pageId": pageID}, nil, nil, &out)
	return out, err
}

// CreateInstance creates a page instance.
func (c *Client) CreateInstance(ctx context.Context, pageID string, input NewInstanceInput) (*domain.Instance, error) {
	var out domain.Instance
	if err := c.call(ctx, http.MethodPost, RouteInstanceCreate, map[string]any{"pageId": pageID}, nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateInstance persists instance content.
func (c *Client) UpdateInstance(ctx context.Context, instance *domain.Instance) (*domain.Instance, error) {
	if instance == nil {
		return nil, errors.New("api: instance is required")
	}
	params := map[string]any{"pageId": instance.PageID, "id": instance.ID}
	var out domain.Instance
	if err := c.call(ctx, http.MethodPut, RouteInstanceUpdate, params, nil, instance, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteInstance removes a page instance.
func (c *Client) DeleteInstance(ctx context.Context, pageID, instanceID string) error {
	params := map[string]any{"pageId": pageID, "id": instanceID}
	return c.call(ctx, http.MethodDelete, RouteInstanceDelete, params, nil, nil, nil)
}

// GetLayout fetches a layout with its full component schemas.
func (c *Client) GetLayout(ctx context.Context, layoutID string) (*domain.Layout, error) {
	var out domain.Layout
	if err := c.call(ctx, http.MethodGet, RouteLayoutGet, map[string]any{"id": layoutID}, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateLayout persists a layout, including each component's data.
func (c *Client) UpdateLayout(ctx context.Context, layout *domain.Layout) (*domain.Layout, error) {
	if layout == nil {
		return nil, errors.New("api: layout is required")
	}
	var out domain.Layout
	if err := c.call(ctx, http.MethodPut, RouteLayoutUpdate, map[string]any{"id": layout.ID}, nil, layout, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListComponents returns the authored component catalogue.
func (c *Client) ListComponents(ctx context.Context) ([]domain.Component, error) {
	var out []domain.Component
	err := c.call(ctx, http.MethodGet, RouteComponentList, nil, nil, nil, &out)
	return out, err
}

// CreateComponent persists a newly built component.
func (c *Client) CreateComponent(ctx context.Context, component domain.Component) (*domain.Component, error) {
	var out domain.Component
	if err := c.call(ctx, http.MethodPost, RouteComponentNew, nil, nil, component, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateComponent persists edits to an existing component.
func (c *Client) UpdateComponent(ctx context.Context, component domain.Component) (*domain.Component, error) {
	var out domain.Component
	if err := c.call(ctx, http.MethodPut, RouteComponentSave, map[string]any{"id": component.ID}, nil, component, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListFolders lists the media library folders.
func (c *Client) ListFolders(ctx context.Context) ([]domain.MediaFolder, error) {
	var out []domain.MediaFolder
	err := c.call(ctx, http.MethodGet, RouteMediaFolders, nil, nil, nil, &out)
	return out, err
}

// ListFiles lists media files, optionally scoped to a folder.
func (c *Client) ListFiles(ctx context.Context, folderID string) ([]domain.MediaAsset, error) {
	var query map[string]string
	if folderID != "" {
		query = map[string]string{"folder": folderID}
	}
	var out []domain.MediaAsset
	err := c.call(ctx, http.MethodGet, RouteMediaFiles, nil, query, nil, &out)
	return out, err
}

// ValidateComponentPayload checks an outbound component value map against
// the generated wire schema before sending it.
func (c *Client) ValidateComponentPayload(fields []schema.Field, payload schema.FieldValues) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("api: encode payload: %w", err)
	}
	var generic map[string]any
	if err := json.Unmarshal(encoded, &generic); err != nil {
		return fmt.Errorf("api: decode payload: %w", err)
	}
	return schema.ValidateWirePayload(fields, generic)
}

func (c *Client) call(ctx context.Context, method, route string, params map[string]any, query map[string]string, body, out any) error {
	url, err := c.routes.URL(route, params, query)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return ErrTimeout
		}
		return fmt.Errorf("api: %s %s: %w", method, route, err)
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		c.logger.Warn("api.request.failed", "route", route, "status", res.StatusCode)
		return mapStatus(res.StatusCode, payload)
	}
	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}
