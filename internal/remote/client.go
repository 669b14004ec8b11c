// Package remote is the HTTP client for the product catalog API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"product-catalog/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds every request when no timeout is configured.
const DefaultTimeout = 5 * time.Second

const (
	requestIDHeader = "X-Request-ID"
	maxResponseSize = 10 << 20
)

// Product is a product as returned by the API. Price keeps the wire
// representation, which may be a JSON number or a numeric string.
type Product struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       json.Number `json:"price"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type envelope struct {
	Success        *bool           `json:"success"`
	Data           json.RawMessage `json:"data"`
	Count          *int            `json:"count"`
	Message        string          `json:"message"`
	Code           string          `json:"error"`
	RequiredFields []string        `json:"required_fields"`
}

// Client calls the product catalog API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// New creates a client for baseURL. A non-positive timeout uses DefaultTimeout.
func New(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With().Str("component", "remote").Logger(),
	}
}

// List fetches every product, newest first.
func (c *Client) List(ctx context.Context) ([]Product, error) {
	const op = "list products"

	env, err := c.do(ctx, op, http.MethodGet, "/api/products", nil)
	if err != nil {
		return nil, readError(err)
	}

	var products []Product
	if err := json.Unmarshal(env.Data, &products); err != nil {
		return nil, &Error{Kind: KindProtocol, Op: op, Message: "malformed product list", Err: err}
	}
	if products == nil {
		products = []Product{}
	}

	return products, nil
}

// Get fetches a single product.
func (c *Client) Get(ctx context.Context, id int64) (*Product, error) {
	const op = "get product"

	env, err := c.do(ctx, op, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil)
	if err != nil {
		return nil, err
	}

	return decodeProduct(op, env.Data)
}

// Create submits a draft and returns the stored product.
func (c *Client) Create(ctx context.Context, draft model.CreateProductRequest) (*Product, error) {
	const op = "create product"

	body, err := json.Marshal(draft)
	if err != nil {
		// Only non-finite prices fail to encode.
		return nil, &Error{Kind: KindValidation, Op: op, Message: "price must be a valid number greater than 0", Err: err}
	}

	env, err := c.do(ctx, op, http.MethodPost, "/api/products", body)
	if err != nil {
		return nil, collectionError(err)
	}

	return decodeProduct(op, env.Data)
}

// Delete removes a product and returns its id and name.
func (c *Client) Delete(ctx context.Context, id int64) (*model.DeletedProduct, error) {
	const op = "delete product"

	env, err := c.do(ctx, op, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil)
	if err != nil {
		return nil, err
	}

	var deleted model.DeletedProduct
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &deleted); err != nil {
			return nil, &Error{Kind: KindProtocol, Op: op, Message: "malformed delete result", Err: err}
		}
	}
	if deleted.ID == 0 {
		deleted.ID = id
	}

	return &deleted, nil
}

// Health calls the health endpoint.
func (c *Client) Health(ctx context.Context) (*model.HealthResponse, error) {
	const op = "health check"

	raw, status, err := c.send(ctx, op, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, readError(classifyStatus(op, status, raw))
	}

	var health model.HealthResponse
	if err := json.Unmarshal(raw, &health); err != nil || !health.Success {
		return nil, &Error{Kind: KindProtocol, Op: op, Status: status, Message: "unexpected health response", Err: err}
	}

	return &health, nil
}

// do sends a request and unwraps the success envelope.
func (c *Client) do(ctx context.Context, op, method, path string, body []byte) (*envelope, error) {
	raw, status, err := c.send(ctx, op, method, path, body)
	if err != nil {
		return nil, err
	}

	if status < 200 || status > 299 {
		return nil, classifyStatus(op, status, raw)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &Error{Kind: KindProtocol, Op: op, Status: status, Message: "response is not a JSON envelope", Err: err}
	}
	if env.Success == nil || !*env.Success {
		return nil, &Error{Kind: KindProtocol, Op: op, Status: status, Message: "response envelope does not report success"}
	}

	return &env, nil
}

// send performs the round trip and returns the raw body and status code.
func (c *Client) send(ctx context.Context, op, method, path string, body []byte) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: failed to build request: %w", op, err)
	}

	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The caller gave up; this says nothing about the API.
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, context.DeadlineExceeded) {
			return nil, 0, ctxErr
		}
		c.logger.Debug().Err(err).Str("op", op).Str("request_id", requestID).Msg("request failed")
		return nil, 0, &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, 0, &Error{Kind: KindNetwork, Op: op, Status: resp.StatusCode, Err: err}
	}

	c.logger.Debug().
		Str("op", op).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Str("request_id", requestID).
		Msg("api call")

	return raw, resp.StatusCode, nil
}

// classifyStatus maps a non-2xx response onto an Error, keeping the server's
// message and required fields when the body is an error envelope.
func classifyStatus(op string, status int, raw []byte) error {
	var env envelope
	_ = json.Unmarshal(raw, &env)

	e := &Error{Op: op, Status: status, Code: env.Code, Message: env.Message, RequiredFields: env.RequiredFields}
	switch {
	case status >= 500:
		e.Kind = KindServer
	case status == http.StatusNotFound:
		e.Kind = KindNotFound
	case status >= 400:
		e.Kind = KindValidation
	default:
		e.Kind = KindProtocol
		e.Message = fmt.Sprintf("unexpected status %d", status)
	}

	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

// collectionError reclassifies a 404 on the collection endpoint as a protocol
// error: the route must exist, so there is no product to be missing.
func collectionError(err error) error {
	var re *Error
	if errors.As(err, &re) && re.Kind == KindNotFound {
		re.Kind = KindProtocol
	}
	return err
}

// readError reclassifies any 4xx on an endpoint that takes no input as a
// protocol error: there is nothing the caller could have sent wrong.
func readError(err error) error {
	var re *Error
	if errors.As(err, &re) && (re.Kind == KindValidation || re.Kind == KindNotFound) {
		re.Kind = KindProtocol
	}
	return err
}

func decodeProduct(op string, data json.RawMessage) (*Product, error) {
	var p Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &Error{Kind: KindProtocol, Op: op, Message: "malformed product", Err: err}
	}
	if p.ID <= 0 {
		return nil, &Error{Kind: KindProtocol, Op: op, Message: "product without id"}
	}
	return &p, nil
}
