package store

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/meshackowase-commits/HOSTESserch/internal/ids"
	"github.com/meshackowase-commits/HOSTESserch/internal/metrics"
	"github.com/meshackowase-commits/HOSTESserch/internal/models"
)

// dialect captures the differences between the SQL backends.
type dialect struct {
	name       string
	numbered   bool // $1 placeholders instead of ?
	forUpdate  string
	arrayValue func(v []string) any
	arrayDest  func(dst *[]string) any
	translate  func(err error) error
}

// sqlStore implements DataStore over database/sql. PostgresStore and
// SQLiteStore embed it and supply their dialect.
type sqlStore struct {
	db      *sql.DB
	dialect dialect
	now     func() time.Time
}

func newSQLStore(db *sql.DB, d dialect) *sqlStore {
	return &sqlStore{
		db:      db,
		dialect: d,
		now:     func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// Close closes the database connection.
func (s *sqlStore) Close() {
	s.db.Close()
}

// Ping checks the database connection.
func (s *sqlStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// q rewrites ? placeholders for dialects that number them.
func (s *sqlStore) q(query string) string {
	if !s.dialect.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *sqlStore) observe(start time.Time) {
	metrics.StoreLatency.WithLabelValues(s.dialect.name).Observe(time.Since(start).Seconds())
}

func (s *sqlStore) fail(err error) error {
	if err == nil {
		return nil
	}
	var verrs models.ValidationErrors
	if errors.As(err, &verrs) {
		return err
	}
	return s.dialect.translate(err)
}

func (s *sqlStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return s.fail(err)
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

// Hostels

const hostelColumns = `id, name, address, description, landlord_id, location_id, rent_amount,
	total_rooms, rooms_available, status, amenities, images, contact_email, contact_phone,
	created_at, updated_at`

func (s *sqlStore) scanHostel(row rowScanner) (*models.Hostel, error) {
	h := &models.Hostel{}
	err := row.Scan(
		&h.ID,
		&h.Name,
		&h.Address,
		&h.Description,
		&h.LandlordID,
		&h.LocationID,
		&h.RentAmount,
		&h.TotalRooms,
		&h.RoomsAvailable,
		&h.Status,
		s.dialect.arrayDest(&h.Amenities),
		s.dialect.arrayDest(&h.Images),
		&h.ContactEmail,
		&h.ContactPhone,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if h.Amenities == nil {
		h.Amenities = []string{}
	}
	if h.Images == nil {
		h.Images = []string{}
	}
	return h, nil
}

// ListHostels retrieves hostels oldest first, narrowed by f.
func (s *sqlStore) ListHostels(ctx context.Context, f HostelFilter) ([]models.Hostel, error) {
	defer s.observe(time.Now())

	var where []string
	var args []any
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(f.Status))
	}
	if f.LandlordID != "" {
		where = append(where, "landlord_id = ?")
		args = append(args, f.LandlordID)
	}
	if f.LocationID != "" {
		where = append(where, "location_id = ?")
		args = append(args, f.LocationID)
	}

	query := "SELECT " + hostelColumns + " FROM hostels"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at ASC, id ASC LIMIT ? OFFSET ?"
	args = append(args, clampLimit(f.Limit), max(f.Offset, 0))

	rows, err := s.db.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hostels := []models.Hostel{}
	for rows.Next() {
		h, err := s.scanHostel(rows)
		if err != nil {
			return nil, err
		}
		hostels = append(hostels, *h)
	}
	return hostels, rows.Err()
}

// GetHostel retrieves a hostel by ID.
func (s *sqlStore) GetHostel(ctx context.Context, id string) (*models.Hostel, error) {
	defer s.observe(time.Now())

	h, err := s.scanHostel(s.db.QueryRowContext(ctx, s.q("SELECT "+hostelColumns+" FROM hostels WHERE id = ?"), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return h, nil
}

// InsertHostel validates in, applies defaults and stores the new hostel.
func (s *sqlStore) InsertHostel(ctx context.Context, in models.HostelInsert) (*models.Hostel, error) {
	defer s.observe(time.Now())

	if err := in.Validate(); err != nil {
		return nil, err
	}
	h := in.Row(ids.NewID(), s.now())

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO hostels (`+hostelColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`),
		h.ID, h.Name, h.Address, h.Description, h.LandlordID, h.LocationID, h.RentAmount,
		h.TotalRooms, h.RoomsAvailable, string(h.Status),
		s.dialect.arrayValue(h.Amenities), s.dialect.arrayValue(h.Images),
		h.ContactEmail, h.ContactPhone, h.CreatedAt, h.UpdatedAt,
	)
	if err != nil {
		return nil, s.fail(err)
	}
	return h, nil
}

// UpdateHostel applies a partial update and re-checks the merged row.
func (s *sqlStore) UpdateHostel(ctx context.Context, id string, u models.HostelUpdate) (*models.Hostel, error) {
	defer s.observe(time.Now())

	if err := u.Validate(); err != nil {
		return nil, err
	}

	var out *models.Hostel
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		h, err := s.scanHostel(tx.QueryRowContext(ctx,
			s.q("SELECT "+hostelColumns+" FROM hostels WHERE id = ?"+s.dialect.forUpdate), id))
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}

		u.Apply(h)
		if err := h.Validate(); err != nil {
			return err
		}
		h.UpdatedAt = s.now()

		_, err = tx.ExecContext(ctx, s.q(`
			UPDATE hostels SET name = ?, address = ?, description = ?, landlord_id = ?,
				location_id = ?, rent_amount = ?, total_rooms = ?, rooms_available = ?,
				status = ?, amenities = ?, images = ?, contact_email = ?, contact_phone = ?,
				updated_at = ?
			WHERE id = ?
		`),
			h.Name, h.Address, h.Description, h.LandlordID, h.LocationID, h.RentAmount,
			h.TotalRooms, h.RoomsAvailable, string(h.Status),
			s.dialect.arrayValue(h.Amenities), s.dialect.arrayValue(h.Images),
			h.ContactEmail, h.ContactPhone, h.UpdatedAt, h.ID,
		)
		if err != nil {
			return err
		}
		out = h
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CountHostels returns the total number of hostels.
func (s *sqlStore) CountHostels(ctx context.Context) (int64, error) {
	return s.count(ctx, "SELECT COUNT(*) FROM hostels")
}

func (s *sqlStore) count(ctx context.Context, query string, args ...any) (int64, error) {
	defer s.observe(time.Now())

	var n int64
	if err := s.db.QueryRowContext(ctx, s.q(query), args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Bookings

const bookingColumns = `id, hostel_id, student_id, check_in_date, check_out_date, status,
	total_amount, notes, created_at, updated_at`

func scanBooking(row rowScanner) (*models.Booking, error) {
	b := &models.Booking{}
	err := row.Scan(
		&b.ID,
		&b.HostelID,
		&b.StudentID,
		&b.CheckInDate,
		&b.CheckOutDate,
		&b.Status,
		&b.TotalAmount,
		&b.Notes,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListBookings retrieves bookings newest first, narrowed by f.
func (s *sqlStore) ListBookings(ctx context.Context, f BookingFilter) ([]models.Booking, error) {
	defer s.observe(time.Now())

	var where []string
	var args []any
	if f.HostelID != "" {
		where = append(where, "hostel_id = ?")
		args = append(args, f.HostelID)
	}
	if f.StudentID != "" {
		where = append(where, "student_id = ?")
		args = append(args, f.StudentID)
	}
	if f.LandlordID != "" {
		where = append(where, "hostel_id IN (SELECT id FROM hostels WHERE landlord_id = ?)")
		args = append(args, f.LandlordID)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(f.Status))
	}

	query := "SELECT " + bookingColumns + " FROM bookings"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, clampLimit(f.Limit))

	rows, err := s.db.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// GetBooking retrieves a booking by ID.
func (s *sqlStore) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	defer s.observe(time.Now())

	b, err := scanBooking(s.db.QueryRowContext(ctx, s.q("SELECT "+bookingColumns+" FROM bookings WHERE id = ?"), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

// InsertBooking validates in and stores a new booking, pending by default.
func (s *sqlStore) InsertBooking(ctx context.Context, in models.BookingInsert) (*models.Booking, error) {
	defer s.observe(time.Now())

	if err := in.Validate(); err != nil {
		return nil, err
	}
	b := in.Row(ids.NewID(), s.now())

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO bookings (`+bookingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`),
		b.ID, b.HostelID, b.StudentID, b.CheckInDate, b.CheckOutDate, string(b.Status),
		b.TotalAmount, b.Notes, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return nil, s.fail(err)
	}
	return b, nil
}

// UpdateBooking applies a partial update and re-checks the merged row.
func (s *sqlStore) UpdateBooking(ctx context.Context, id string, u models.BookingUpdate) (*models.Booking, error) {
	defer s.observe(time.Now())

	if err := u.Validate(); err != nil {
		return nil, err
	}

	var out *models.Booking
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		b, err := scanBooking(tx.QueryRowContext(ctx,
			s.q("SELECT "+bookingColumns+" FROM bookings WHERE id = ?"+s.dialect.forUpdate), id))
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}

		u.Apply(b)
		if err := b.Validate(); err != nil {
			return err
		}
		b.UpdatedAt = s.now()

		_, err = tx.ExecContext(ctx, s.q(`
			UPDATE bookings SET hostel_id = ?, student_id = ?, check_in_date = ?,
				check_out_date = ?, status = ?, total_amount = ?, notes = ?, updated_at = ?
			WHERE id = ?
		`),
			b.HostelID, b.StudentID, b.CheckInDate, b.CheckOutDate, string(b.Status),
			b.TotalAmount, b.Notes, b.UpdatedAt, b.ID,
		)
		if err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateBookingStatus performs a compare-and-set on the booking status.
func (s *sqlStore) UpdateBookingStatus(ctx context.Context, id string, from, to models.BookingStatus) (*models.Booking, error) {
	defer s.observe(time.Now())

	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE bookings SET status = ?, updated_at = ?
		WHERE id = ? AND status = ?
	`), string(to), s.now(), id, string(from))
	if err != nil {
		return nil, s.fail(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return s.GetBooking(ctx, id)
}

// CountBookings returns the total number of bookings.
func (s *sqlStore) CountBookings(ctx context.Context) (int64, error) {
	return s.count(ctx, "SELECT COUNT(*) FROM bookings")
}

// Profiles

const profileColumns = `id, user_id, full_name, role, avatar_url, phone_number, created_at, updated_at`

func scanProfile(row rowScanner) (*models.Profile, error) {
	p := &models.Profile{}
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.FullName,
		&p.Role,
		&p.AvatarURL,
		&p.PhoneNumber,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetProfileByUserID retrieves a profile by its user_id.
func (s *sqlStore) GetProfileByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	defer s.observe(time.Now())

	p, err := scanProfile(s.db.QueryRowContext(ctx, s.q("SELECT "+profileColumns+" FROM profiles WHERE user_id = ?"), userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// InsertProfile validates in and stores a new profile.
func (s *sqlStore) InsertProfile(ctx context.Context, in models.ProfileInsert) (*models.Profile, error) {
	defer s.observe(time.Now())

	if err := in.Validate(); err != nil {
		return nil, err
	}
	p := in.Row(ids.NewID(), s.now())

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO profiles (`+profileColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`), p.ID, p.UserID, p.FullName, string(p.Role), p.AvatarURL, p.PhoneNumber, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, s.fail(err)
	}
	return p, nil
}

// UpdateProfile applies a partial update to the profile owned by userID.
func (s *sqlStore) UpdateProfile(ctx context.Context, userID string, u models.ProfileUpdate) (*models.Profile, error) {
	defer s.observe(time.Now())

	if err := u.Validate(); err != nil {
		return nil, err
	}

	var out *models.Profile
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		p, err := scanProfile(tx.QueryRowContext(ctx,
			s.q("SELECT "+profileColumns+" FROM profiles WHERE user_id = ?"+s.dialect.forUpdate), userID))
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}

		u.Apply(p)
		if err := p.Validate(); err != nil {
			return err
		}
		p.UpdatedAt = s.now()

		_, err = tx.ExecContext(ctx, s.q(`
			UPDATE profiles SET full_name = ?, role = ?, avatar_url = ?, phone_number = ?, updated_at = ?
			WHERE id = ?
		`), p.FullName, string(p.Role), p.AvatarURL, p.PhoneNumber, p.UpdatedAt, p.ID)
		if err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CountProfiles counts profiles with role, or all profiles when role is empty.
func (s *sqlStore) CountProfiles(ctx context.Context, role models.UserRole) (int64, error) {
	if role == "" {
		return s.count(ctx, "SELECT COUNT(*) FROM profiles")
	}
	return s.count(ctx, "SELECT COUNT(*) FROM profiles WHERE role = ?", string(role))
}

// Locations

const locationColumns = `id, name, description, latitude, longitude, distance_to_university, created_at`

func scanLocation(row rowScanner) (*models.Location, error) {
	l := &models.Location{}
	err := row.Scan(
		&l.ID,
		&l.Name,
		&l.Description,
		&l.Latitude,
		&l.Longitude,
		&l.DistanceToUniversity,
		&l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// ListLocations retrieves all locations ordered by name.
func (s *sqlStore) ListLocations(ctx context.Context) ([]models.Location, error) {
	defer s.observe(time.Now())

	rows, err := s.db.QueryContext(ctx, "SELECT "+locationColumns+" FROM locations ORDER BY name ASC, id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := []models.Location{}
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, *l)
	}
	return locations, rows.Err()
}

// GetLocation retrieves a location by ID.
func (s *sqlStore) GetLocation(ctx context.Context, id string) (*models.Location, error) {
	defer s.observe(time.Now())

	l, err := scanLocation(s.db.QueryRowContext(ctx, s.q("SELECT "+locationColumns+" FROM locations WHERE id = ?"), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return l, nil
}

// InsertLocation validates in and stores a new location.
func (s *sqlStore) InsertLocation(ctx context.Context, in models.LocationInsert) (*models.Location, error) {
	defer s.observe(time.Now())

	if err := in.Validate(); err != nil {
		return nil, err
	}
	l := in.Row(ids.NewID(), s.now())

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO locations (`+locationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), l.ID, l.Name, l.Description, l.Latitude, l.Longitude, l.DistanceToUniversity, l.CreatedAt)
	if err != nil {
		return nil, s.fail(err)
	}
	return l, nil
}

// UpdateLocation applies a partial update to a location.
func (s *sqlStore) UpdateLocation(ctx context.Context, id string, u models.LocationUpdate) (*models.Location, error) {
	defer s.observe(time.Now())

	if err := u.Validate(); err != nil {
		return nil, err
	}

	var out *models.Location
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		l, err := scanLocation(tx.QueryRowContext(ctx,
			s.q("SELECT "+locationColumns+" FROM locations WHERE id = ?"+s.dialect.forUpdate), id))
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}

		u.Apply(l)
		if err := l.Validate(); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, s.q(`
			UPDATE locations SET name = ?, description = ?, latitude = ?, longitude = ?,
				distance_to_university = ?
			WHERE id = ?
		`), l.Name, l.Description, l.Latitude, l.Longitude, l.DistanceToUniversity, l.ID)
		if err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Chat

const chatRoomColumns = `id, student_id, landlord_id, hostel_id, created_at`

func scanChatRoom(row rowScanner) (*models.ChatRoom, error) {
	r := &models.ChatRoom{}
	if err := row.Scan(&r.ID, &r.StudentID, &r.LandlordID, &r.HostelID, &r.CreatedAt); err != nil {
		return nil, err
	}
	return r, nil
}

// ListChatRooms retrieves the rooms participantID takes part in, newest
// first. An empty participantID lists every room.
func (s *sqlStore) ListChatRooms(ctx context.Context, participantID string) ([]models.ChatRoom, error) {
	defer s.observe(time.Now())

	query := "SELECT " + chatRoomColumns + " FROM chat_rooms"
	var args []any
	if participantID != "" {
		query += " WHERE student_id = ? OR landlord_id = ?"
		args = append(args, participantID, participantID)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := []models.ChatRoom{}
	for rows.Next() {
		r, err := scanChatRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, *r)
	}
	return rooms, rows.Err()
}

// GetChatRoom retrieves a chat room by ID.
func (s *sqlStore) GetChatRoom(ctx context.Context, id string) (*models.ChatRoom, error) {
	defer s.observe(time.Now())

	r, err := scanChatRoom(s.db.QueryRowContext(ctx, s.q("SELECT "+chatRoomColumns+" FROM chat_rooms WHERE id = ?"), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return r, nil
}

// InsertChatRoom validates in and stores a new chat room.
func (s *sqlStore) InsertChatRoom(ctx context.Context, in models.ChatRoomInsert) (*models.ChatRoom, error) {
	defer s.observe(time.Now())

	if err := in.Validate(); err != nil {
		return nil, err
	}
	r := in.Row(ids.NewID(), s.now())

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO chat_rooms (`+chatRoomColumns+`)
		VALUES (?, ?, ?, ?, ?)
	`), r.ID, r.StudentID, r.LandlordID, r.HostelID, r.CreatedAt)
	if err != nil {
		return nil, s.fail(err)
	}
	return r, nil
}

// UpdateChatRoom applies a partial update to a chat room.
func (s *sqlStore) UpdateChatRoom(ctx context.Context, id string, u models.ChatRoomUpdate) (*models.ChatRoom, error) {
	defer s.observe(time.Now())

	if err := u.Validate(); err != nil {
		return nil, err
	}

	var out *models.ChatRoom
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		r, err := scanChatRoom(tx.QueryRowContext(ctx,
			s.q("SELECT "+chatRoomColumns+" FROM chat_rooms WHERE id = ?"+s.dialect.forUpdate), id))
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}

		u.Apply(r)
		if err := r.Validate(); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, s.q(`
			UPDATE chat_rooms SET student_id = ?, landlord_id = ?, hostel_id = ? WHERE id = ?
		`), r.StudentID, r.LandlordID, r.HostelID, r.ID)
		if err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

const messageColumns = `id, room_id, sender_id, content, message_type, created_at`

func scanMessage(row rowScanner) (*models.Message, error) {
	m := &models.Message{}
	var messageType sql.NullString
	if err := row.Scan(&m.ID, &m.RoomID, &m.SenderID, &m.Content, &messageType, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.MessageType = models.MessageTypeText
	if messageType.Valid && messageType.String != "" {
		m.MessageType = messageType.String
	}
	return m, nil
}

// ListMessages retrieves a page of a room's messages, newest first.
func (s *sqlStore) ListMessages(ctx context.Context, roomID string, limit int, before string) ([]models.Message, error) {
	defer s.observe(time.Now())

	query := "SELECT " + messageColumns + " FROM messages WHERE room_id = ?"
	args := []any{roomID}
	if before != "" {
		query += " AND id < ?"
		args = append(args, before)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, clampLimit(limit))

	rows, err := s.db.QueryContext(ctx, s.q(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *m)
	}
	return messages, rows.Err()
}

// InsertMessage validates in and stores a new message with a ULID id.
func (s *sqlStore) InsertMessage(ctx context.Context, in models.MessageInsert) (*models.Message, error) {
	defer s.observe(time.Now())

	if err := in.Validate(); err != nil {
		return nil, err
	}
	m := in.Row(ids.NewMessageID(), s.now())

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO messages (`+messageColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`), m.ID, m.RoomID, m.SenderID, m.Content, m.MessageType, m.CreatedAt)
	if err != nil {
		return nil, s.fail(err)
	}
	return m, nil
}

// UpdateMessage applies a partial update to a message.
func (s *sqlStore) UpdateMessage(ctx context.Context, id string, u models.MessageUpdate) (*models.Message, error) {
	defer s.observe(time.Now())

	if err := u.Validate(); err != nil {
		return nil, err
	}

	var out *models.Message
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		m, err := scanMessage(tx.QueryRowContext(ctx,
			s.q("SELECT "+messageColumns+" FROM messages WHERE id = ?"+s.dialect.forUpdate), id))
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}

		u.Apply(m)
		if err := m.Validate(); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, s.q(`
			UPDATE messages SET content = ?, message_type = ? WHERE id = ?
		`), m.Content, m.MessageType, m.ID)
		if err != nil {
			return err
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
