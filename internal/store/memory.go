package store

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/meshackowase-commits/HOSTESserch/internal/ids"
	"github.com/meshackowase-commits/HOSTESserch/internal/models"
)

// MemoryStore keeps every table in process memory. It enforces the same
// foreign key and uniqueness rules as the SQL schemas, which makes it a
// faithful stand-in for tests and demos.
type MemoryStore struct {
	mu        sync.RWMutex
	now       func() time.Time
	hostels   []*models.Hostel
	bookings  []*models.Booking
	profiles  []*models.Profile
	locations []*models.Location
	rooms     []*models.ChatRoom
	messages  []*models.Message
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) Close() {}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func constraint(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConstraint, fmt.Sprintf(format, args...))
}

func find[T any](rows []*T, match func(*T) bool) *T {
	for _, r := range rows {
		if match(r) {
			return r
		}
	}
	return nil
}

func page[T any](rows []T, limit, offset int) []T {
	offset = max(offset, 0)
	if offset >= len(rows) {
		return []T{}
	}
	rows = rows[offset:]
	if limit = clampLimit(limit); len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

func (s *MemoryStore) profileExists(userID string) bool {
	return find(s.profiles, func(p *models.Profile) bool { return p.UserID == userID }) != nil
}

func (s *MemoryStore) hostelByID(id string) *models.Hostel {
	return find(s.hostels, func(h *models.Hostel) bool { return h.ID == id })
}

// Hostels

func cloneHostel(h *models.Hostel) models.Hostel {
	c := *h
	c.Amenities = slices.Clone(h.Amenities)
	c.Images = slices.Clone(h.Images)
	return c
}

func (s *MemoryStore) checkHostelRefs(h *models.Hostel) error {
	if !s.profileExists(h.LandlordID) {
		return constraint("landlord %q does not exist", h.LandlordID)
	}
	if h.LocationID != nil && find(s.locations, func(l *models.Location) bool { return l.ID == *h.LocationID }) == nil {
		return constraint("location %q does not exist", *h.LocationID)
	}
	return nil
}

func (s *MemoryStore) ListHostels(ctx context.Context, f HostelFilter) ([]models.Hostel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Hostel{}
	for _, h := range s.hostels {
		if f.Status != "" && h.Status != f.Status {
			continue
		}
		if f.LandlordID != "" && h.LandlordID != f.LandlordID {
			continue
		}
		if f.LocationID != "" && (h.LocationID == nil || *h.LocationID != f.LocationID) {
			continue
		}
		out = append(out, cloneHostel(h))
	}
	return page(out, f.Limit, f.Offset), nil
}

func (s *MemoryStore) GetHostel(ctx context.Context, id string) (*models.Hostel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h := s.hostelByID(id)
	if h == nil {
		return nil, nil
	}
	c := cloneHostel(h)
	return &c, nil
}

func (s *MemoryStore) InsertHostel(ctx context.Context, in models.HostelInsert) (*models.Hostel, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	h := in.Row(ids.NewID(), s.now())
	if err := s.checkHostelRefs(h); err != nil {
		return nil, err
	}
	s.hostels = append(s.hostels, h)
	c := cloneHostel(h)
	return &c, nil
}

func (s *MemoryStore) UpdateHostel(ctx context.Context, id string, u models.HostelUpdate) (*models.Hostel, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.hostelByID(id)
	if h == nil {
		return nil, nil
	}
	next := cloneHostel(h)
	u.Apply(&next)
	if err := next.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkHostelRefs(&next); err != nil {
		return nil, err
	}
	next.UpdatedAt = s.now()
	*h = next
	c := cloneHostel(h)
	return &c, nil
}

func (s *MemoryStore) CountHostels(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.hostels)), nil
}

// Bookings

func (s *MemoryStore) checkBookingRefs(b *models.Booking) error {
	if s.hostelByID(b.HostelID) == nil {
		return constraint("hostel %q does not exist", b.HostelID)
	}
	if !s.profileExists(b.StudentID) {
		return constraint("student %q does not exist", b.StudentID)
	}
	return nil
}

func (s *MemoryStore) ListBookings(ctx context.Context, f BookingFilter) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Booking{}
	for i := len(s.bookings) - 1; i >= 0; i-- {
		b := s.bookings[i]
		if f.HostelID != "" && b.HostelID != f.HostelID {
			continue
		}
		if f.StudentID != "" && b.StudentID != f.StudentID {
			continue
		}
		if f.LandlordID != "" {
			h := s.hostelByID(b.HostelID)
			if h == nil || h.LandlordID != f.LandlordID {
				continue
			}
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		out = append(out, *b)
	}
	return page(out, f.Limit, 0), nil
}

func (s *MemoryStore) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b := find(s.bookings, func(b *models.Booking) bool { return b.ID == id })
	if b == nil {
		return nil, nil
	}
	c := *b
	return &c, nil
}

func (s *MemoryStore) InsertBooking(ctx context.Context, in models.BookingInsert) (*models.Booking, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b := in.Row(ids.NewID(), s.now())
	if err := s.checkBookingRefs(b); err != nil {
		return nil, err
	}
	s.bookings = append(s.bookings, b)
	c := *b
	return &c, nil
}

func (s *MemoryStore) UpdateBooking(ctx context.Context, id string, u models.BookingUpdate) (*models.Booking, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b := find(s.bookings, func(b *models.Booking) bool { return b.ID == id })
	if b == nil {
		return nil, nil
	}
	next := *b
	u.Apply(&next)
	if err := next.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkBookingRefs(&next); err != nil {
		return nil, err
	}
	next.UpdatedAt = s.now()
	*b = next
	c := *b
	return &c, nil
}

func (s *MemoryStore) UpdateBookingStatus(ctx context.Context, id string, from, to models.BookingStatus) (*models.Booking, error) {
	if !to.Valid() {
		return nil, constraint("invalid booking status %q", to)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b := find(s.bookings, func(b *models.Booking) bool { return b.ID == id })
	if b == nil || b.Status != from {
		return nil, nil
	}
	b.Status = to
	b.UpdatedAt = s.now()
	c := *b
	return &c, nil
}

func (s *MemoryStore) CountBookings(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.bookings)), nil
}

// Profiles

func (s *MemoryStore) GetProfileByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := find(s.profiles, func(p *models.Profile) bool { return p.UserID == userID })
	if p == nil {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (s *MemoryStore) InsertProfile(ctx context.Context, in models.ProfileInsert) (*models.Profile, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profileExists(in.UserID) {
		return nil, constraint("profile for user %q already exists", in.UserID)
	}
	p := in.Row(ids.NewID(), s.now())
	s.profiles = append(s.profiles, p)
	c := *p
	return &c, nil
}

func (s *MemoryStore) UpdateProfile(ctx context.Context, userID string, u models.ProfileUpdate) (*models.Profile, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := find(s.profiles, func(p *models.Profile) bool { return p.UserID == userID })
	if p == nil {
		return nil, nil
	}
	next := *p
	u.Apply(&next)
	if err := next.Validate(); err != nil {
		return nil, err
	}
	next.UpdatedAt = s.now()
	*p = next
	c := *p
	return &c, nil
}

func (s *MemoryStore) CountProfiles(ctx context.Context, role models.UserRole) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, p := range s.profiles {
		if role == "" || p.Role == role {
			n++
		}
	}
	return n, nil
}

// Locations

func (s *MemoryStore) ListLocations(ctx context.Context) ([]models.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Location, 0, len(s.locations))
	for _, l := range s.locations {
		out = append(out, *l)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) GetLocation(ctx context.Context, id string) (*models.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l := find(s.locations, func(l *models.Location) bool { return l.ID == id })
	if l == nil {
		return nil, nil
	}
	c := *l
	return &c, nil
}

func (s *MemoryStore) InsertLocation(ctx context.Context, in models.LocationInsert) (*models.Location, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l := in.Row(ids.NewID(), s.now())
	s.locations = append(s.locations, l)
	c := *l
	return &c, nil
}

func (s *MemoryStore) UpdateLocation(ctx context.Context, id string, u models.LocationUpdate) (*models.Location, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	l := find(s.locations, func(l *models.Location) bool { return l.ID == id })
	if l == nil {
		return nil, nil
	}
	next := *l
	u.Apply(&next)
	if err := next.Validate(); err != nil {
		return nil, err
	}
	*l = next
	c := *l
	return &c, nil
}

// Chat

func (s *MemoryStore) checkRoomRefs(r *models.ChatRoom) error {
	if !s.profileExists(r.StudentID) {
		return constraint("student %q does not exist", r.StudentID)
	}
	if !s.profileExists(r.LandlordID) {
		return constraint("landlord %q does not exist", r.LandlordID)
	}
	if r.HostelID != nil && s.hostelByID(*r.HostelID) == nil {
		return constraint("hostel %q does not exist", *r.HostelID)
	}
	return nil
}

func (s *MemoryStore) ListChatRooms(ctx context.Context, participantID string) ([]models.ChatRoom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.ChatRoom{}
	for i := len(s.rooms) - 1; i >= 0; i-- {
		r := s.rooms[i]
		if participantID != "" && !r.HasParticipant(participantID) {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (s *MemoryStore) GetChatRoom(ctx context.Context, id string) (*models.ChatRoom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r := find(s.rooms, func(r *models.ChatRoom) bool { return r.ID == id })
	if r == nil {
		return nil, nil
	}
	c := *r
	return &c, nil
}

func (s *MemoryStore) InsertChatRoom(ctx context.Context, in models.ChatRoomInsert) (*models.ChatRoom, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r := in.Row(ids.NewID(), s.now())
	if err := s.checkRoomRefs(r); err != nil {
		return nil, err
	}
	s.rooms = append(s.rooms, r)
	c := *r
	return &c, nil
}

func (s *MemoryStore) UpdateChatRoom(ctx context.Context, id string, u models.ChatRoomUpdate) (*models.ChatRoom, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r := find(s.rooms, func(r *models.ChatRoom) bool { return r.ID == id })
	if r == nil {
		return nil, nil
	}
	next := *r
	u.Apply(&next)
	if err := next.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkRoomRefs(&next); err != nil {
		return nil, err
	}
	*r = next
	c := *r
	return &c, nil
}

func (s *MemoryStore) ListMessages(ctx context.Context, roomID string, limit int, before string) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Message{}
	for i := len(s.messages) - 1; i >= 0; i-- {
		m := s.messages[i]
		if m.RoomID != roomID {
			continue
		}
		if before != "" && m.ID >= before {
			continue
		}
		out = append(out, *m)
	}
	return page(out, limit, 0), nil
}

func (s *MemoryStore) InsertMessage(ctx context.Context, in models.MessageInsert) (*models.Message, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := in.Row(ids.NewMessageID(), s.now())
	if find(s.rooms, func(r *models.ChatRoom) bool { return r.ID == m.RoomID }) == nil {
		return nil, constraint("chat room %q does not exist", m.RoomID)
	}
	if !s.profileExists(m.SenderID) {
		return nil, constraint("sender %q does not exist", m.SenderID)
	}
	s.messages = append(s.messages, m)
	c := *m
	return &c, nil
}

func (s *MemoryStore) UpdateMessage(ctx context.Context, id string, u models.MessageUpdate) (*models.Message, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := find(s.messages, func(m *models.Message) bool { return m.ID == id })
	if m == nil {
		return nil, nil
	}
	next := *m
	u.Apply(&next)
	if err := next.Validate(); err != nil {
		return nil, err
	}
	*m = next
	c := *m
	return &c, nil
}
