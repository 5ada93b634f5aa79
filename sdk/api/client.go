package api

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

// Client is the subtrack API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// WithToken sets an authentication token obtained earlier, so the client can
// skip Register/Login.
func WithToken(token string) Option {
	return func(client *Client) {
		client.token = token
	}
}

// NewClient creates a new subtrack API client.
//
// Parameters:
//   - baseURL: The API base URL (e.g., "https://subtrack.example.com/api")
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the token the client currently authenticates with.
func (c *Client) Token() string {
	return c.token
}

// Register creates an account and stores the issued token on the client.
func (c *Client) Register(ctx context.Context, creds Credentials) (*AuthResult, error) {
	var result AuthResult
	if err := c.doRequest(ctx, http.MethodPost, c.baseURL+"/auth/register", creds, &result); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	c.token = result.Token
	return &result, nil
}

// Login authenticates and stores the issued token on the client.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResult, error) {
	var result AuthResult
	if err := c.doRequest(ctx, http.MethodPost, c.baseURL+"/auth/login", creds, &result); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	c.token = result.Token
	return &result, nil
}

// CreateSubscription creates a subscription.
func (c *Client) CreateSubscription(ctx context.Context, input SubscriptionInput) (*Subscription, error) {
	var result struct {
		Subscription Subscription `json:"subscription"`
	}
	if err := c.doRequest(ctx, http.MethodPost, c.baseURL+"/subscriptions", input, &result); err != nil {
		return nil, fmt.Errorf("create subscription: %w", err)
	}
	return &result.Subscription, nil
}

// ListSubscriptions retrieves the caller's active subscriptions, ordered by
// next payment date.
func (c *Client) ListSubscriptions(ctx context.Context) ([]Subscription, error) {
	var result struct {
		Subscriptions []Subscription `json:"subscriptions"`
	}
	if err := c.doRequest(ctx, http.MethodGet, c.baseURL+"/subscriptions", nil, &result); err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return result.Subscriptions, nil
}

// UpdateSubscription applies a partial update; only the non-nil fields of
// input change.
func (c *Client) UpdateSubscription(ctx context.Context, id uint, input SubscriptionInput) (*Subscription, error) {
	var result struct {
		Subscription Subscription `json:"subscription"`
	}
	endpoint := fmt.Sprintf("%s/subscriptions/%d", c.baseURL, id)
	if err := c.doRequest(ctx, http.MethodPut, endpoint, input, &result); err != nil {
		return nil, fmt.Errorf("update subscription: %w", err)
	}
	return &result.Subscription, nil
}

// DeleteSubscription soft-deletes a subscription. Deleting an already
// deleted subscription succeeds.
func (c *Client) DeleteSubscription(ctx context.Context, id uint) error {
	endpoint := fmt.Sprintf("%s/subscriptions/%d", c.baseURL, id)
	if err := c.doRequest(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	return nil
}

// AdvanceNextPayment rolls the subscription's next payment date forward by
// its periodicity.
func (c *Client) AdvanceNextPayment(ctx context.Context, id uint) (*Subscription, error) {
	var result struct {
		Subscription Subscription `json:"subscription"`
	}
	endpoint := fmt.Sprintf("%s/subscriptions/%d/advance", c.baseURL, id)
	if err := c.doRequest(ctx, http.MethodPost, endpoint, nil, &result); err != nil {
		return nil, fmt.Errorf("advance next payment: %w", err)
	}
	return &result.Subscription, nil
}

// UpcomingPayments retrieves payments due within the next `days` days. Zero
// uses the server default of 30.
func (c *Client) UpcomingPayments(ctx context.Context, days int) (*UpcomingPaymentsResult, error) {
	endpoint := c.baseURL + "/subscriptions/upcoming"
	if days > 0 {
		endpoint += "?days=" + url.QueryEscape(fmt.Sprint(days))
	}

	var result UpcomingPaymentsResult
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &result); err != nil {
		return nil, fmt.Errorf("upcoming payments: %w", err)
	}
	return &result, nil
}

// GetMonthlySummary retrieves the summary for a given year and month. Zero
// values use the server's current date.
func (c *Client) GetMonthlySummary(ctx context.Context, year, month int) (*MonthlySummary, error) {
	endpoint := c.baseURL + "/subscriptions/summary"
	query := url.Values{}
	if year > 0 {
		query.Set("year", fmt.Sprint(year))
	}
	if month > 0 {
		query.Set("month", fmt.Sprint(month))
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var result MonthlySummary
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &result); err != nil {
		return nil, fmt.Errorf("monthly summary: %w", err)
	}
	return &result, nil
}

// doRequest performs an HTTP request and decodes the response.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return fmt.Errorf("api error: status=%d body=%s", resp.StatusCode, string(respBody))
	}

	if !apiResp.Success {
		if apiResp.Error != nil {
			return &APIError{
				StatusCode: resp.StatusCode,
				Type:       apiResp.Error.Type,
				Message:    apiResp.Error.Message,
				Fields:     apiResp.Error.Fields,
			}
		}
		return fmt.Errorf("api error: status=%d body=%s", resp.StatusCode, string(respBody))
	}

	if result == nil || apiResp.Data == nil {
		return nil
	}

	// Re-marshal and unmarshal to convert Data to the target type
	dataBytes, err := json.Marshal(apiResp.Data)
	if err != nil {
		return fmt.Errorf("marshal data: %w", err)
	}

	if err := json.Unmarshal(dataBytes, result); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}

	return nil
}

// APIError is a structured error response from the server. Fields carries
// per-field validation messages when present.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for field, msg := range e.Fields {
			parts = append(parts, field+": "+msg)
		}
		return fmt.Sprintf("%s (%d): %s", e.Message, e.StatusCode, strings.Join(parts, "; "))
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.StatusCode)
}
