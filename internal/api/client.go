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

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Lo-programmeur/BY-LocationAuto/internal/booking"
	"github.com/Lo-programmeur/BY-LocationAuto/internal/session"
)

const (
	defaultTimeout = 10 * time.Second
	listLimit      = 100
)

// Client talks to the backend table API. Every call is attempted exactly
// once; retry policy belongs to the user pressing the button again.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New builds a client for baseURL, e.g. "https://api.example.ga".
func New(baseURL string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		log:     log,
	}
}

type listResponse struct {
	Data []booking.Booking `json:"data"`
}

// ListBookings fetches the whole booking table (backend caps the page at
// 100); ownership filtering happens client side.
func (c *Client) ListBookings(ctx context.Context) ([]booking.Booking, error) {
	endpoint := fmt.Sprintf("%s/tables/bookings?limit=%d", c.baseURL, listLimit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-Id", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("list bookings failed", zap.String("request_id", reqID), zap.Error(err))
		return nil, fmt.Errorf("api: list bookings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error("list bookings bad status", zap.String("request_id", reqID), zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("api: list bookings: status %d", resp.StatusCode)
	}

	var out listResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.log.Error("list bookings decode failed", zap.String("request_id", reqID), zap.Error(err))
		return nil, fmt.Errorf("api: decode bookings: %w", err)
	}
	c.log.Info("bookings loaded", zap.String("request_id", reqID), zap.Int("count", len(out.Data)))
	return out.Data, nil
}

// UpdateUser PUTs the full user record. The backend has no partial user
// update; the record always travels whole.
func (c *Client) UpdateUser(ctx context.Context, u session.User) error {
	endpoint := fmt.Sprintf("%s/tables/users/%s", c.baseURL, url.PathEscape(u.ID))
	return c.send(ctx, http.MethodPut, endpoint, u)
}

// SetBookingStatus PATCHes only the status field.
func (c *Client) SetBookingStatus(ctx context.Context, id string, status booking.Status) error {
	endpoint := fmt.Sprintf("%s/tables/bookings/%s", c.baseURL, url.PathEscape(id))
	return c.send(ctx, http.MethodPatch, endpoint, map[string]booking.Status{"status": status})
}

func (c *Client) send(ctx context.Context, method, endpoint string, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("api: marshal: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	reqID := uuid.NewString()
	req.Header.Set("X-Request-Id", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("write request failed",
			zap.String("request_id", reqID), zap.String("method", method), zap.Error(err))
		return fmt.Errorf("api: %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error("write request bad status",
			zap.String("request_id", reqID), zap.String("method", method), zap.Int("status", resp.StatusCode))
		return fmt.Errorf("api: %s: status %d", method, resp.StatusCode)
	}
	return nil
}
