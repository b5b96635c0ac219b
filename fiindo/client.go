// Package fiindo provides a client for the Fiindo financial data API.
// It centralizes all provider interactions: symbol discovery, company
// profiles, end-of-day prices, financial statements and the speed-boost
// activation.
package fiindo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/nordalpha/fiindostats/models"
)

const (
	// DefaultBaseURL is the base URL for the Fiindo API.
	DefaultBaseURL = "https://api.test.fiindo.com/api/v1"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 5

	// DefaultBurst is the default rate limiter burst size.
	DefaultBurst = 10
)

// Client is a Fiindo API client. The provider authenticates callers by
// account holder name: every request carries "Bearer <first>.<last>".
type Client struct {
	baseURL    string
	firstName  string
	lastName   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRateLimit sets a custom rate limit.
func WithRateLimit(requestsPerSecond float64, burst int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

// NewClient creates a new Fiindo API client.
func NewClient(firstName, lastName string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		firstName: firstName,
		lastName:  lastName,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultBurst),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) token() string {
	return c.firstName + "." + c.lastName
}

// get performs a GET request and decodes the JSON response into result.
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// post performs a POST request with a JSON body. When result is nil the
// response body is discarded after the status check.
func (c *Client) post(ctx context.Context, path string, payload interface{}, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
			Endpoint:   path,
		}
	}

	if result == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// Symbols retrieves the list of all available stock symbols.
func (c *Client) Symbols(ctx context.Context) ([]string, error) {
	var result symbolsResponse
	if err := c.get(ctx, "/symbols", &result); err != nil {
		return nil, err
	}
	return result.Symbols, nil
}

// Industry resolves the industry label for a symbol from its general
// profile. Returns "" when the profile carries no industry.
func (c *Client) Industry(ctx context.Context, symbol string) (string, error) {
	var result generalResponse
	if err := c.get(ctx, "/general/"+symbol, &result); err != nil {
		return "", err
	}
	data := result.Fundamentals.Profile.Data
	if len(data) == 0 {
		return "", nil
	}
	return data[0].Industry, nil
}

// EOD retrieves the end-of-day price series for a symbol in provider order
// (oldest first).
func (c *Client) EOD(ctx context.Context, symbol string) ([]models.PriceBar, error) {
	var result eodResponse
	if err := c.get(ctx, "/eod/"+symbol, &result); err != nil {
		return nil, err
	}
	return result.Stockprice.Data, nil
}

// IncomeStatements retrieves the reported income statement periods for a
// symbol, normalized to StatementRecords in provider order.
func (c *Client) IncomeStatements(ctx context.Context, symbol string) ([]models.StatementRecord, error) {
	var result incomeStatementResponse
	if err := c.get(ctx, "/financials/"+symbol+"/income_statement", &result); err != nil {
		return nil, err
	}
	return toStatementRecords(symbol, result.Fundamentals.Financials.IncomeStatement.Data), nil
}

// BalanceSheets retrieves the reported balance sheet periods for a symbol,
// normalized to StatementRecords in provider order.
func (c *Client) BalanceSheets(ctx context.Context, symbol string) ([]models.StatementRecord, error) {
	var result balanceSheetResponse
	if err := c.get(ctx, "/financials/"+symbol+"/balance_sheet_statement", &result); err != nil {
		return nil, err
	}
	return toStatementRecords(symbol, result.Fundamentals.Financials.BalanceSheet.Data), nil
}

// ActivateSpeedBoost raises the per-caller request throughput for this
// session. The response body carries only an acknowledgement and is
// discarded.
func (c *Client) ActivateSpeedBoost(ctx context.Context) error {
	payload := speedBoostRequest{
		FirstName: c.firstName,
		LastName:  c.lastName,
	}
	return c.post(ctx, "/speedboost", payload, nil)
}
