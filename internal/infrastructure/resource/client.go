// Package resource is the HTTP client for the remote resource API that stores
// users and products.
package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tokobarang/inventory-dashboard/internal/core/domain"
	"github.com/tokobarang/inventory-dashboard/internal/pkg/metrics"
)

// DefaultBaseURL is where the resource API listens unless configured otherwise.
const DefaultBaseURL = "http://localhost:5000"

// Client issues requests against /users and /products. It applies no retry and
// no timeout of its own; a failed call surfaces immediately to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient returns a Client for baseURL. A nil httpClient falls back to a
// client without a timeout.
func NewClient(baseURL string, httpClient *http.Client, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        log,
	}
}

// ListProducts handles GET /products.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, call{
		op:      "list_products",
		method:  http.MethodGet,
		path:    "/products",
		failMsg: "failed to fetch products",
		out:     &products,
	}); err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// CreateProduct handles POST /products. The id is assigned by the remote store.
func (c *Client) CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	var created domain.Product
	if err := c.do(ctx, call{
		op:      "create_product",
		method:  http.MethodPost,
		path:    "/products",
		failMsg: "failed to create product",
		body:    in,
		out:     &created,
	}); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct handles PUT /products/{id}. The id is not checked before the call.
func (c *Client) UpdateProduct(ctx context.Context, id int64, in domain.ProductInput) (*domain.Product, error) {
	var updated domain.Product
	if err := c.do(ctx, call{
		op:      "update_product",
		method:  http.MethodPut,
		path:    productPath(id),
		failMsg: "failed to update product",
		body:    in,
		out:     &updated,
	}); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct handles DELETE /products/{id}. The response body is discarded.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, call{
		op:      "delete_product",
		method:  http.MethodDelete,
		path:    productPath(id),
		failMsg: "failed to delete product",
	})
}

// ListUsers handles GET /users. Records include plaintext passwords.
func (c *Client) ListUsers(ctx context.Context) ([]domain.RemoteUser, error) {
	var users []domain.RemoteUser
	if err := c.do(ctx, call{
		op:      "list_users",
		method:  http.MethodGet,
		path:    "/users",
		failMsg: "failed to fetch users",
		out:     &users,
	}); err != nil {
		return nil, err
	}
	return users, nil
}

// Ping issues GET /products and discards the result. Used by readiness probes.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, call{
		op:      "ping",
		method:  http.MethodGet,
		path:    "/products",
		failMsg: "resource API unreachable",
	})
}

type call struct {
	op      string
	method  string
	path    string
	failMsg string
	body    any
	out     any // nil discards the response body
}

func (c *Client) do(ctx context.Context, k call) error {
	started := time.Now()

	var reader io.Reader
	if k.body != nil {
		payload, err := json.Marshal(k.body)
		if err != nil {
			return &domain.FetchError{Op: k.op, Message: "encode request", Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, k.method, c.baseURL+k.path, reader)
	if err != nil {
		return &domain.FetchError{Op: k.op, Message: "create request", Err: err}
	}
	if k.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveResource(k.op, "transport_error", started)
		return &domain.FetchError{Op: k.op, Message: k.failMsg, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		metrics.ObserveResource(k.op, "http_error", started)
		return &domain.FetchError{Op: k.op, StatusCode: resp.StatusCode, Message: k.failMsg}
	}

	if k.out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
	} else if err := json.NewDecoder(resp.Body).Decode(k.out); err != nil {
		metrics.ObserveResource(k.op, "transport_error", started)
		return &domain.FetchError{Op: k.op, Message: "decode response", Err: fmt.Errorf("%s %s: %w", k.method, k.path, err)}
	}

	metrics.ObserveResource(k.op, "ok", started)
	c.log.Debug().
		Str("operation", k.op).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(started)).
		Msg("resource call")
	return nil
}

func productPath(id int64) string {
	return "/products/" + strconv.FormatInt(id, 10)
}
