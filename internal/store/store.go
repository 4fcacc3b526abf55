package store

import (
	"context"
	"errors"

	"github.com/meshackowase-commits/HOSTESserch/internal/models"
)

// ErrConstraint is returned when a write violates a foreign key, unique or
// check constraint in the backing database.
var ErrConstraint = errors.New("constraint violation")

// HostelFilter narrows ListHostels. Zero values mean no restriction.
type HostelFilter struct {
	Status     models.HostelStatus
	LandlordID string
	LocationID string
	Limit      int
	Offset     int
}

// BookingFilter narrows ListBookings. LandlordID matches bookings of any
// hostel owned by that landlord.
type BookingFilter struct {
	HostelID   string
	StudentID  string
	LandlordID string
	Status     models.BookingStatus
	Limit      int
}

// DataStore defines the interface for persistent storage of hostels,
// bookings, profiles, locations and chat.
// PostgresStore, SQLiteStore and MemoryStore implement this interface.
//
// Get and Update operations return nil, nil when the row does not exist.
// Hostels list oldest first, bookings and messages newest first.
type DataStore interface {
	// Connection management
	Close()
	Ping(ctx context.Context) error

	// Hostel operations
	ListHostels(ctx context.Context, f HostelFilter) ([]models.Hostel, error)
	GetHostel(ctx context.Context, id string) (*models.Hostel, error)
	InsertHostel(ctx context.Context, in models.HostelInsert) (*models.Hostel, error)
	UpdateHostel(ctx context.Context, id string, u models.HostelUpdate) (*models.Hostel, error)
	CountHostels(ctx context.Context) (int64, error)

	// Booking operations
	ListBookings(ctx context.Context, f BookingFilter) ([]models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	InsertBooking(ctx context.Context, in models.BookingInsert) (*models.Booking, error)
	UpdateBooking(ctx context.Context, id string, u models.BookingUpdate) (*models.Booking, error)
	// UpdateBookingStatus moves a booking to status to only if it is still
	// in status from. It returns nil, nil when no row matched.
	UpdateBookingStatus(ctx context.Context, id string, from, to models.BookingStatus) (*models.Booking, error)
	CountBookings(ctx context.Context) (int64, error)

	// Profile operations, keyed by user_id
	GetProfileByUserID(ctx context.Context, userID string) (*models.Profile, error)
	InsertProfile(ctx context.Context, in models.ProfileInsert) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, u models.ProfileUpdate) (*models.Profile, error)
	CountProfiles(ctx context.Context, role models.UserRole) (int64, error)

	// Location operations
	ListLocations(ctx context.Context) ([]models.Location, error)
	GetLocation(ctx context.Context, id string) (*models.Location, error)
	InsertLocation(ctx context.Context, in models.LocationInsert) (*models.Location, error)
	UpdateLocation(ctx context.Context, id string, u models.LocationUpdate) (*models.Location, error)

	// Chat operations
	ListChatRooms(ctx context.Context, participantID string) ([]models.ChatRoom, error)
	GetChatRoom(ctx context.Context, id string) (*models.ChatRoom, error)
	InsertChatRoom(ctx context.Context, in models.ChatRoomInsert) (*models.ChatRoom, error)
	UpdateChatRoom(ctx context.Context, id string, u models.ChatRoomUpdate) (*models.ChatRoom, error)
	// ListMessages returns up to limit messages of a room, newest first,
	// strictly older than the message id before when it is set.
	ListMessages(ctx context.Context, roomID string, limit int, before string) ([]models.Message, error)
	InsertMessage(ctx context.Context, in models.MessageInsert) (*models.Message, error)
	UpdateMessage(ctx context.Context, id string, u models.MessageUpdate) (*models.Message, error)
}

const (
	defaultListLimit = 100
	// MaxListLimit is the largest page any List call returns.
	MaxListLimit     = 500
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

var (
	_ DataStore = (*PostgresStore)(nil)
	_ DataStore = (*SQLiteStore)(nil)
	_ DataStore = (*MemoryStore)(nil)
	_ DataStore = (*CachedStore)(nil)
)
