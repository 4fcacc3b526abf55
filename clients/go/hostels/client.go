// Package hostels provides a client for the ChukaHostels JSON API.
package hostels

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/meshackowase-commits/HOSTESserch/internal/booking"
	"github.com/meshackowase-commits/HOSTESserch/internal/listing"
	"github.com/meshackowase-commits/HOSTESserch/internal/models"
)

// DefaultURL is used when no base URL is given.
const DefaultURL = "http://localhost:8080"

// ProfileHeader carries the caller's profile id.
const ProfileHeader = "X-Profile-ID"

// Client is a ChukaHostels API client.
type Client struct {
	http      *resty.Client
	ProfileID string
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status    int               `json:"-"`
	Message   string            `json:"error"`
	Fields    map[string]string `json:"fields,omitempty"`
	Retryable bool              `json:"retryable,omitempty"`
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("hostels error %d: %s", e.Status, e.Message)
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+" "+msg)
	}
	return fmt.Sprintf("hostels error %d: %s (%s)", e.Status, e.Message, strings.Join(parts, "; "))
}

// NewClient creates a client for baseURL. The profile id defaults to
// HOSTELS_PROFILE.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Accept", "application/json")

	// Retry only what the server marks as safe to retry. A failed POST may
	// still have reached the server, so only reads are resent after a
	// transport error.
	rc.AddRetryCondition(func(r *resty.Response, err error) bool {
		if err != nil {
			return r != nil && r.Request != nil && r.Request.Method == http.MethodGet
		}
		return r.StatusCode() == 503 || r.StatusCode() == 429
	})

	return &Client{http: rc, ProfileID: os.Getenv("HOSTELS_PROFILE")}
}

func (c *Client) request(ctx context.Context, result any) *resty.Request {
	req := c.http.R().SetContext(ctx).SetError(&APIError{})
	if result != nil {
		req.SetResult(result)
	}
	if c.ProfileID != "" {
		req.SetHeader(ProfileHeader, c.ProfileID)
	}
	return req
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if !resp.IsError() {
		return nil
	}
	apiErr, ok := resp.Error().(*APIError)
	if !ok || apiErr == nil {
		apiErr = &APIError{Message: resp.Status()}
	}
	apiErr.Status = resp.StatusCode()
	return apiErr
}

// HealthResponse is the health check result.
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	Checks    map[string]struct {
		Status  string `json:"status"`
		Latency string `json:"latency,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"checks"`
}

// Health checks server health.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := check(c.request(ctx, &out).Get("/health")); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search lists hostels matching query and the filter chips.
func (c *Client) Search(ctx context.Context, query string, filters ...string) (*listing.Result, error) {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	for _, f := range filters {
		params.Add("filter", f)
	}

	var out listing.Result
	if err := check(c.request(ctx, &out).SetQueryParamsFromValues(params).Get("/api/hostels")); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetHostel returns one hostel's detail.
func (c *Client) GetHostel(ctx context.Context, id string) (*booking.Detail, error) {
	var out booking.Detail
	resp, err := c.request(ctx, &out).SetPathParam("id", id).Get("/api/hostels/{id}")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// Book submits a booking request for the hostel as the client's profile.
func (c *Client) Book(ctx context.Context, hostelID string, form booking.Form) (*models.Booking, error) {
	var out models.Booking
	resp, err := c.request(ctx, &out).
		SetPathParam("id", hostelID).
		SetBody(form).
		Post("/api/hostels/{id}/bookings")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetStatus moves a booking to status.
func (c *Client) SetStatus(ctx context.Context, bookingID string, status models.BookingStatus) (*models.Booking, error) {
	var out models.Booking
	resp, err := c.request(ctx, &out).
		SetPathParam("id", bookingID).
		SetBody(map[string]models.BookingStatus{"status": status}).
		Post("/api/bookings/{id}/status")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// BookingList is a page of bookings.
type BookingList struct {
	Bookings []models.Booking `json:"bookings"`
	Total    int              `json:"total"`
}

// ListBookings lists the bookings visible to the client's profile,
// optionally narrowed to one status.
func (c *Client) ListBookings(ctx context.Context, status models.BookingStatus) (*BookingList, error) {
	var out BookingList
	req := c.request(ctx, &out)
	if status != "" {
		req.SetQueryParam("status", string(status))
	}
	if err := check(req.Get("/api/bookings")); err != nil {
		return nil, err
	}
	return &out, nil
}
