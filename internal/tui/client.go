package tui

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

	"zombieland/internal/calendar"
	"zombieland/internal/periods"
	"zombieland/internal/pricing"
)

// ErrNoToken is returned when booking without credentials
var ErrNoToken = errors.New("an access token is required to book")

// Client talks to the ZombieLand API
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// APIError is returned for non-2xx responses
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// NewClient creates a client for baseURL (e.g. http://localhost:8080/api/v1).
// If httpClient is nil, a default client is used.
func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

func (c *Client) HasToken() bool { return c.token != "" }

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Reservation is the part of a booking the client shows back
type Reservation struct {
	ID         string  `json:"id"`
	BookingRef string  `json:"booking_ref"`
	TotalPrice float64 `json:"total_price"`
}

// Periods fetches the pricing seasons
func (c *Client) Periods(ctx context.Context) ([]pricing.Period, error) {
	var list []periods.PeriodResponse
	if err := c.do(ctx, http.MethodGet, "/periods", nil, &list); err != nil {
		return nil, err
	}

	out := make([]pricing.Period, len(list))
	for i, p := range list {
		out[i] = p.Pricing()
	}
	return out, nil
}

// Reserve books tickets for the selected window
func (c *Client) Reserve(ctx context.Context, sel calendar.Selection, tickets int) (*Reservation, error) {
	if !c.HasToken() {
		return nil, ErrNoToken
	}
	start, end, ok := sel.Bounds()
	if !ok {
		return nil, errors.New("no dates selected")
	}

	body := map[string]any{
		"date_start":     start,
		"date_end":       end,
		"number_tickets": tickets,
	}
	var r Reservation
	if err := c.do(ctx, http.MethodPost, "/bookings", body, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 300 {
			return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
		}
		return fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}
