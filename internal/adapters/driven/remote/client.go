// Package remote implements driving.ContractService against a running
// `ensaio serve` HTTP API, so one-shot CLI commands share the server's
// in-memory contracts.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/ensaio/internal/core/domain"
	"github.com/custodia-labs/ensaio/internal/core/ports/driving"
	"github.com/custodia-labs/ensaio/internal/logger"
)

// Ensure Client implements the interface.
var _ driving.ContractService = (*Client)(nil)

const contractsPath = "/api/contracts"

// RetryConfig defines retry behaviour for idempotent requests.
type RetryConfig struct {
	MaxRetries        int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	RetryableStatuses []int
}

// DefaultRetryConfig returns the retry policy used by NewClient.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     2,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     time.Second,
		RetryableStatuses: []int{
			http.StatusTooManyRequests,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout,
		},
	}
}

// Client talks to the contracts HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      RetryConfig
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		retry:      DefaultRetryConfig(),
	}
}

// WithRetry replaces the retry policy.
func (c *Client) WithRetry(cfg RetryConfig) *Client {
	c.retry = cfg
	return c
}

// BaseURL returns the server address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HTTPError is a non-2xx response the client could not map to a domain error.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

type listResponse struct {
	Contracts []domain.Contract `json:"contracts"`
	Count     int               `json:"count"`
}

type deleteResponse struct {
	Deleted bool `json:"deleted"`
}

type errorResponse struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

// List returns every contract.
func (c *Client) List(ctx context.Context) ([]domain.Contract, error) {
	return c.list(ctx, nil)
}

// Get retrieves a contract by ID.
func (c *Client) Get(ctx context.Context, id string) (*domain.Contract, error) {
	var contract domain.Contract
	if err := c.do(ctx, http.MethodGet, contractPath(id), nil, nil, &contract); err != nil {
		return nil, err
	}
	return &contract, nil
}

// Create stores a new contract on the server.
func (c *Client) Create(ctx context.Context, input domain.ContractInput) (*domain.Contract, error) {
	var contract domain.Contract
	if err := c.do(ctx, http.MethodPost, contractsPath, nil, input, &contract); err != nil {
		return nil, err
	}
	return &contract, nil
}

// Update patches a contract on the server.
func (c *Client) Update(ctx context.Context, id string, patch domain.ContractPatch) (*domain.Contract, error) {
	var contract domain.Contract
	if err := c.do(ctx, http.MethodPatch, contractPath(id), nil, patch, &contract); err != nil {
		return nil, err
	}
	return &contract, nil
}

// Delete removes a contract on the server.
func (c *Client) Delete(ctx context.Context, id string) (bool, error) {
	var resp deleteResponse
	if err := c.do(ctx, http.MethodDelete, contractPath(id), nil, nil, &resp); err != nil {
		return false, err
	}
	return resp.Deleted, nil
}

// Search lists contracts matching query.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Contract, error) {
	return c.list(ctx, url.Values{"q": {query}})
}

// FilterByStatus lists contracts with the given status.
func (c *Client) FilterByStatus(ctx context.Context, status domain.ContractStatus) ([]domain.Contract, error) {
	return c.list(ctx, url.Values{"status": {string(status)}})
}

// FilterByPaymentStatus lists contracts with the given payment status.
func (c *Client) FilterByPaymentStatus(ctx context.Context, status domain.PaymentStatus) ([]domain.Contract, error) {
	return c.list(ctx, url.Values{"payment": {string(status)}})
}

func (c *Client) list(ctx context.Context, query url.Values) ([]domain.Contract, error) {
	var resp listResponse
	if err := c.do(ctx, http.MethodGet, contractsPath, query, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Contracts == nil {
		return []domain.Contract{}, nil
	}
	return resp.Contracts, nil
}

func contractPath(id string) string {
	return contractsPath + "/" + url.PathEscape(id)
}

// do sends a request and decodes a JSON response into result.
// GET and DELETE are retried with exponential backoff.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, result any) error {
	var encoded []byte
	if body != nil {
		var err error
		encoded, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	retries := 0
	if method == http.MethodGet || method == http.MethodDelete {
		retries = c.retry.MaxRetries
	}
	backoff := c.retry.InitialBackoff

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			logger.Debug("retrying %s %s (attempt %d, backoff %s)", method, u, attempt, backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			backoff *= 2
			if backoff > c.retry.MaxBackoff {
				backoff = c.retry.MaxBackoff
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, u, bytes.NewReader(encoded))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = fmt.Errorf("request %s %s: %w", method, u, err)
			continue
		}

		if c.isRetryableStatus(resp.StatusCode) && attempt < retries {
			_ = resp.Body.Close()
			lastErr = &HTTPError{StatusCode: resp.StatusCode}
			continue
		}

		return decodeResponse(resp, result)
	}

	return lastErr
}

func (c *Client) isRetryableStatus(code int) bool {
	for _, s := range c.retry.RetryableStatuses {
		if s == code {
			return true
		}
	}
	return false
}

func decodeResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return statusError(resp)
	}
	if result == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// statusError maps an error response back onto domain errors.
func statusError(resp *http.Response) error {
	var body errorResponse
	data, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(data, &body); err != nil || body.Error == "" {
		body.Error = strings.TrimSpace(string(data))
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", body.Error, domain.ErrNotFound)
	case http.StatusConflict:
		return fmt.Errorf("%s: %w", body.Error, domain.ErrAlreadyExists)
	case http.StatusBadRequest:
		if len(body.Fields) > 0 {
			return &domain.ValidationError{Fields: body.Fields}
		}
		return fmt.Errorf("%s: %w", body.Error, domain.ErrInvalidInput)
	default:
		return &HTTPError{StatusCode: resp.StatusCode, Message: body.Error}
	}
}

// IsUnavailable reports whether err means the server could not be reached.
func IsUnavailable(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusServiceUnavailable
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
