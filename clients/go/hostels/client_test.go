package hostels

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/meshackowase-commits/HOSTESserch/internal/api"
	"github.com/meshackowase-commits/HOSTESserch/internal/booking"
	"github.com/meshackowase-commits/HOSTESserch/internal/models"
	"github.com/meshackowase-commits/HOSTESserch/internal/seed"
	"github.com/meshackowase-commits/HOSTESserch/internal/store"
	"github.com/meshackowase-commits/HOSTESserch/internal/web"
)

func newTestServer(t *testing.T) (*httptest.Server, store.DataStore) {
	t.Helper()
	mem := store.NewMemoryStore()
	if _, err := seed.Seed(context.Background(), mem, zerolog.Nop()); err != nil {
		t.Fatal(err)
	}
	pages, err := web.NewRenderer()
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(api.NewRouter(zerolog.Nop(), mem, nil, pages, api.Options{}))
	t.Cleanup(srv.Close)
	return srv, mem
}

func TestClientBookingFlow(t *testing.T) {
	srv, mem := newTestServer(t)
	ctx := context.Background()
	c := NewClient(srv.URL)

	health, err := c.Health(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if health.Status != "healthy" {
		t.Fatalf("expected healthy, got %q", health.Status)
	}

	res, err := c.Search(ctx, "", "cctv")
	if err != nil {
		t.Fatal(err)
	}
	if res.Count != 2 {
		t.Fatalf("expected 2 hostels with CCTV, got %d", res.Count)
	}
	hostelID := res.Cards[0].ID

	detail, err := c.GetHostel(ctx, hostelID)
	if err != nil {
		t.Fatal(err)
	}
	if len(detail.RoomTypes) == 0 {
		t.Fatal("expected room types in detail")
	}

	role := models.RoleStudent
	if _, err := mem.InsertProfile(ctx, models.ProfileInsert{UserID: "s1", FullName: "Jane", Role: &role}); err != nil {
		t.Fatal(err)
	}
	c.ProfileID = "s1"

	b, err := c.Book(ctx, hostelID, booking.Form{
		RoomType:        detail.RoomTypes[0].Name,
		CheckInDate:     time.Now().AddDate(0, 0, 14).Format("2006-01-02"),
		FullName:        "Jane Wanjiku",
		Phone:           "+254 712 345 678",
		AdmissionNumber: "EB1/12345/24",
	})
	if err != nil {
		t.Fatal(err)
	}
	if b.Status != models.BookingPending {
		t.Fatalf("expected pending, got %s", b.Status)
	}

	c.ProfileID = seed.LandlordID
	if _, err := c.SetStatus(ctx, b.ID, models.BookingConfirmed); err != nil {
		t.Fatal(err)
	}
	list, err := c.ListBookings(ctx, models.BookingConfirmed)
	if err != nil {
		t.Fatal(err)
	}
	if list.Total != 1 || list.Bookings[0].ID != b.ID {
		t.Fatalf("expected the confirmed booking, got %+v", list)
	}
}

func TestClientValidationError(t *testing.T) {
	srv, mem := newTestServer(t)
	ctx := context.Background()

	role := models.RoleStudent
	if _, err := mem.InsertProfile(ctx, models.ProfileInsert{UserID: "s1", FullName: "Jane", Role: &role}); err != nil {
		t.Fatal(err)
	}
	c := NewClient(srv.URL)
	c.ProfileID = "s1"

	res, err := c.Search(ctx, "paradise")
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.Book(ctx, res.Cards[0].ID, booking.Form{FullName: "Jane"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", apiErr.Status)
	}
	if _, ok := apiErr.Fields["phone"]; !ok {
		t.Fatalf("expected a phone field error, got %v", apiErr.Fields)
	}
}

func TestClientRetriesUnavailable(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"store unavailable","retryable":true}`))
			return
		}
		w.Write([]byte(`{"status":"healthy","version":"test","checks":{}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.http.SetRetryWaitTime(time.Millisecond).SetRetryMaxWaitTime(5 * time.Millisecond)

	health, err := c.Health(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if health.Status != "healthy" || hits.Load() != 3 {
		t.Fatalf("expected success on third attempt, got %q after %d", health.Status, hits.Load())
	}
}

func TestClientGivesUpWithRetryableError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"store unavailable","retryable":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.http.SetRetryWaitTime(time.Millisecond).SetRetryMaxWaitTime(5 * time.Millisecond)

	_, err := c.Health(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || !apiErr.Retryable {
		t.Fatalf("expected retryable APIError, got %v", err)
	}
}

func TestClientResendsOnlyReadsAfterConnectionDrop(t *testing.T) {
	var gets, posts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			gets.Add(1)
		} else {
			posts.Add(1)
		}
		panic(http.ErrAbortHandler)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.http.SetRetryWaitTime(time.Millisecond).SetRetryMaxWaitTime(5 * time.Millisecond)

	if _, err := c.Book(context.Background(), "h1", booking.Form{RoomType: "Single Room"}); err == nil {
		t.Fatal("expected an error from a dropped connection")
	}
	if posts.Load() != 1 {
		t.Fatalf("booking sent %d times, want 1", posts.Load())
	}

	if _, err := c.Health(context.Background()); err == nil {
		t.Fatal("expected an error from a dropped connection")
	}
	if gets.Load() < 2 {
		t.Fatalf("health check sent %d times, want retries", gets.Load())
	}
}

func TestClientRetriesUnavailableBooking(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if hits.Add(1) < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"store unavailable","retryable":true}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"b1","status":"pending"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.http.SetRetryWaitTime(time.Millisecond).SetRetryMaxWaitTime(5 * time.Millisecond)

	b, err := c.Book(context.Background(), "h1", booking.Form{RoomType: "Single Room"})
	if err != nil {
		t.Fatal(err)
	}
	if b.ID != "b1" || hits.Load() != 2 {
		t.Fatalf("expected booking b1 on second attempt, got %q after %d", b.ID, hits.Load())
	}
}
