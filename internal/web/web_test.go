package web

import (
	"bytes"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshackowase-commits/HOSTESserch/internal/booking"
	"github.com/meshackowase-commits/HOSTESserch/internal/listing"
	"github.com/meshackowase-commits/HOSTESserch/internal/models"
)

func render(t *testing.T, page string, data any) string {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, page, data))
	return buf.String()
}

func hostel() *models.Hostel {
	desc := "Modern hostel with excellent facilities"
	return &models.Hostel{
		ID: "h1", Name: "Chuka View Hostel", Address: "123 University Road, Chuka",
		Description: &desc, RentAmount: 8000, TotalRooms: 10, RoomsAvailable: 10,
		Status: models.HostelAvailable, Amenities: []string{"Wi-Fi", "CCTV"}, Images: []string{},
	}
}

func TestRenderListing(t *testing.T) {
	v, err := listing.ViewFromQuery(url.Values{"q": {"wifi"}, "filter": {"cctv"}})
	require.NoError(t, err)
	cards := listing.Cards([]listing.Item{{Hostel: *hostel()}})
	res := &listing.Result{Query: "wifi", Filters: []string{"cctv"}, Total: 3, Count: 1, Cards: cards}

	out := render(t, PageListing, NewListing(v, res))
	assert.Contains(t, out, "Chuka View Hostel")
	assert.Contains(t, out, "KSh 8,000")
	assert.Contains(t, out, "Showing 1 of 3 hostels")
	assert.Contains(t, out, `href="/hostel/h1"`)
	assert.Contains(t, out, `class="badge chip active"`)
	assert.Contains(t, out, `value="wifi"`)
}

func TestRenderDetailWithErrors(t *testing.T) {
	d := booking.NewDetail(hostel(), nil)
	out := render(t, PageDetail, Detail{
		Title:  d.Hostel.Name,
		Detail: d,
		Form:   booking.Form{FullName: "Jane <b>"},
		Errors: models.ValidationErrors{"room_type": "is required", "phone": "is required"},
		Notice: "We could not reach the server. Please try again.",
		Today:  "2026-01-05",
	})
	assert.Contains(t, out, "Room type is required")
	assert.Contains(t, out, "Phone number is required")
	assert.NotContains(t, out, "Full name is")
	assert.Contains(t, out, "Please try again.")
	assert.Contains(t, out, "Double Room - KSh 6,000")
	assert.Contains(t, out, "Jane &lt;b&gt;")
	assert.Contains(t, out, `action="/hostel/h1/book"`)
}

func TestRenderDetailBooked(t *testing.T) {
	out := render(t, PageDetail, Detail{
		Title:  "Chuka View Hostel",
		Detail: booking.NewDetail(hostel(), nil),
		Booked: &models.Booking{ID: "b1", Status: models.BookingPending},
	})
	assert.Contains(t, out, "Reference: b1")
	assert.NotContains(t, out, "<form action=\"/hostel/h1/book\"")
}

func TestRenderLandingAndNotFound(t *testing.T) {
	out := render(t, PageLanding, Landing{Title: "Home", Stats: Stats{Hostels: 3}})
	assert.Contains(t, out, "No hostels are listed yet.")

	out = render(t, PageNotFound, NotFound{Title: "Hostel not found", Message: "It may have been removed."})
	assert.Contains(t, out, "Hostel not found")

	r, err := NewRenderer()
	require.NoError(t, err)
	assert.Error(t, r.Render(&bytes.Buffer{}, "missing", nil))
}

func TestRenderDetailOffline(t *testing.T) {
	out := render(t, PageDetail, Detail{
		Title:   "Book This Hostel",
		Detail:  &booking.Detail{Hostel: models.Hostel{ID: "h1"}},
		Form:    booking.Form{RoomType: "Double Room", FullName: "Jane Wanjiku", Phone: "0712345678"},
		Notice:  "please try again",
		Offline: true,
	})

	assert.Contains(t, out, `action="/hostel/h1/book"`)
	assert.Contains(t, out, `name="room_type" value="Double Room"`)
	assert.Contains(t, out, `value="Jane Wanjiku"`)
	assert.Contains(t, out, "please try again")
	assert.NotContains(t, out, "Amenities")
	assert.NotContains(t, out, "not accepting bookings")
}
