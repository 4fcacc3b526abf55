package booking

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/meshackowase-commits/HOSTESserch/internal/listing"
	"github.com/meshackowase-commits/HOSTESserch/internal/models"
	"github.com/meshackowase-commits/HOSTESserch/internal/store"
)

// Detail is everything the hostel page shows about one hostel.
type Detail struct {
	Hostel      models.Hostel     `json:"hostel"`
	Location    *models.Location  `json:"location,omitempty"`
	RoomTypes   []models.RoomType `json:"room_types"`
	Price       string            `json:"price"`
	Period      string            `json:"period"`
	Distance    string            `json:"distance,omitempty"`
	Coordinates string            `json:"coordinates,omitempty"`
	Available   bool              `json:"available"`
}

// LocationLabel is the location name, or the street address when the
// hostel has no location.
func (d *Detail) LocationLabel() string {
	it := listing.Item{Hostel: d.Hostel, Location: d.Location}
	return it.LocationLabel()
}

// DetailService loads hostel details.
type DetailService struct {
	store store.DataStore
}

// NewDetailService creates a detail service over s.
func NewDetailService(s store.DataStore) *DetailService {
	return &DetailService{store: s}
}

// Get returns the detail of hostel id, or ErrHostelNotFound.
func (s *DetailService) Get(ctx context.Context, id string) (*Detail, error) {
	h, err := s.store.GetHostel(ctx, id)
	if err != nil {
		return nil, &TransmissionError{Op: "load hostel", Err: err}
	}
	if h == nil {
		return nil, ErrHostelNotFound
	}

	var loc *models.Location
	if h.LocationID != nil {
		loc, err = s.store.GetLocation(ctx, *h.LocationID)
		if err != nil {
			return nil, &TransmissionError{Op: "load location", Err: err}
		}
	}
	return NewDetail(h, loc), nil
}

// NewDetail derives the page data for h.
func NewDetail(h *models.Hostel, loc *models.Location) *Detail {
	d := &Detail{
		Hostel:    *h,
		Location:  loc,
		RoomTypes: models.RoomTypes(h),
		Price:     models.FormatKSh(h.RentAmount),
		Period:    listing.Period,
		Distance:  listing.DistanceLabel(loc),
		Available: h.HasVacancy(),
	}
	if loc != nil && loc.Latitude != nil && loc.Longitude != nil {
		d.Coordinates = FormatCoordinates(*loc.Latitude, *loc.Longitude)
	}
	return d
}

// FormatCoordinates renders a position as "0.3365° S, 37.6490° E".
func FormatCoordinates(lat, lng float64) string {
	ns, ew := "N", "E"
	if lat < 0 {
		ns = "S"
	}
	if lng < 0 {
		ew = "W"
	}
	return fmt.Sprintf("%.4f° %s, %.4f° %s", math.Abs(lat), ns, math.Abs(lng), ew)
}

// Loader runs loads keyed by id where only the latest one matters. Opening
// a new id cancels the load in flight, and a superseded load returns
// ErrStaleLoad instead of its result.
type Loader[T any] struct {
	fetch func(ctx context.Context, id string) (T, error)

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// NewLoader creates a loader around fetch.
func NewLoader[T any](fetch func(ctx context.Context, id string) (T, error)) *Loader[T] {
	return &Loader[T]{fetch: fetch}
}

// Open loads id, superseding any earlier Open that has not returned.
func (l *Loader[T]) Open(ctx context.Context, id string) (T, error) {
	var zero T

	ctx, cancel := context.WithCancel(ctx)
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	gen := l.gen
	l.cancel = cancel
	l.mu.Unlock()

	v, err := l.fetch(ctx, id)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		cancel()
		return zero, ErrStaleLoad
	}
	l.cancel = nil
	cancel()
	if err != nil {
		return zero, err
	}
	return v, nil
}

// Close cancels the load in flight, if any. Its result is dropped.
func (l *Loader[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
}

// NewDetailLoader creates a loader over the detail service.
func NewDetailLoader(s *DetailService) *Loader[*Detail] {
	return NewLoader(s.Get)
}
