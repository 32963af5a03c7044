// Package apiclient wraps the remote rental API. All business logic lives on
// the other side of this client: pricing, availability, persistence, and
// authorization decisions. The portal only shapes requests and renders
// responses.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/velocar/rental-portal/internal/api/metrics"
	"github.com/velocar/rental-portal/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// Client is the typed gateway over the remote rental API. A bearer token
// travelling in the request context (ports.WithToken) is attached to every
// outbound call; without one the request goes out unauthenticated.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// New builds a Client for the given base URL (e.g. http://localhost:5003/api).
func New(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        log,
	}
}

// doRequest performs a JSON request and decodes the response into result.
func (c *Client) doRequest(ctx context.Context, method, path, operation string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", operation, err)
		}
		bodyReader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", operation, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, operation, result)
}

// send attaches credentials, executes the request, and decodes the outcome.
// multipart callers build their own *http.Request and come in here directly.
func (c *Client) send(req *http.Request, operation string, result any) error {
	if token := ports.TokenFromContext(req.Context()); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues(operation, "transport_error").Inc()
		return fmt.Errorf("%s: %w", operation, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues(operation, "read_error").Inc()
		return fmt.Errorf("%s: read response: %w", operation, err)
	}

	if resp.StatusCode >= 400 {
		metrics.GatewayRequestsTotal.WithLabelValues(operation, "api_error").Inc()
		apiErr := parseError(resp.StatusCode, respBody)
		c.log.Debug().Str("operation", operation).Int("status", resp.StatusCode).Str("message", apiErr.Message).Msg("api error")
		return apiErr
	}

	metrics.GatewayRequestsTotal.WithLabelValues(operation, "ok").Inc()

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("%s: decode response: %w", operation, err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path, operation string, result any) error {
	return c.doRequest(ctx, http.MethodGet, path, operation, nil, result)
}

func (c *Client) post(ctx context.Context, path, operation string, body, result any) error {
	return c.doRequest(ctx, http.MethodPost, path, operation, body, result)
}

func (c *Client) put(ctx context.Context, path, operation string, body, result any) error {
	return c.doRequest(ctx, http.MethodPut, path, operation, body, result)
}

func (c *Client) delete(ctx context.Context, path, operation string) error {
	return c.doRequest(ctx, http.MethodDelete, path, operation, nil, nil)
}

// Ping checks remote API reachability for the readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/cars", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api ping: %w", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("api ping: status %d", resp.StatusCode)
	}
	return nil
}
