package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"
)

// SQLiteStore handles SQLite database operations.
type SQLiteStore struct {
	*sqlStore
}

var sqliteDialect = dialect{
	name:       "sqlite",
	arrayValue: func(v []string) any { return jsonArray(v) },
	arrayDest:  func(dst *[]string) any { return &jsonArrayDest{dst: dst} },
	translate: func(err error) error {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("%w: %s", ErrConstraint, sqliteErr.Error())
		}
		return err
	},
}

// NewSQLiteStore creates a new SQLite store.
// If dbPath is empty, defaults to "./data/hostels.db". The special path
// ":memory:" opens a private in-memory database.
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		dbPath = "./data/hostels.db"
	}

	dsn := dbPath + "?_journal_mode=WAL&_foreign_keys=on"
	if dbPath == ":memory:" {
		dsn = "file::memory:?_foreign_keys=on"
	} else {
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	// A single connection keeps in-memory databases shared and serialises
	// writers the way SQLite expects.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	store := &SQLiteStore{sqlStore: newSQLStore(db, sqliteDialect)}

	// Initialize schema
	if err := store.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// initSchema creates tables if they don't exist.
func (s *SQLiteStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		user_id TEXT UNIQUE NOT NULL,
		full_name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'student' CHECK (role IN ('student', 'landlord', 'admin')),
		avatar_url TEXT,
		phone_number TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS locations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		latitude REAL,
		longitude REAL,
		distance_to_university REAL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS hostels (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL,
		description TEXT,
		landlord_id TEXT NOT NULL REFERENCES profiles(user_id),
		location_id TEXT REFERENCES locations(id),
		rent_amount REAL NOT NULL CHECK (rent_amount > 0),
		total_rooms INTEGER NOT NULL CHECK (total_rooms > 0),
		rooms_available INTEGER NOT NULL CHECK (rooms_available >= 0 AND rooms_available <= total_rooms),
		status TEXT NOT NULL DEFAULT 'available' CHECK (status IN ('available', 'occupied', 'maintenance')),
		amenities TEXT NOT NULL DEFAULT '[]',
		images TEXT NOT NULL DEFAULT '[]',
		contact_email TEXT,
		contact_phone TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS bookings (
		id TEXT PRIMARY KEY,
		hostel_id TEXT NOT NULL REFERENCES hostels(id),
		student_id TEXT NOT NULL REFERENCES profiles(user_id),
		check_in_date DATE,
		check_out_date DATE,
		status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'confirmed', 'cancelled', 'completed')),
		total_amount REAL,
		notes TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS chat_rooms (
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL REFERENCES profiles(user_id),
		landlord_id TEXT NOT NULL REFERENCES profiles(user_id),
		hostel_id TEXT REFERENCES hostels(id),
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS messages (
		id TEXT PRIMARY KEY,
		room_id TEXT NOT NULL REFERENCES chat_rooms(id),
		sender_id TEXT NOT NULL REFERENCES profiles(user_id),
		content TEXT NOT NULL,
		message_type TEXT DEFAULT 'text',
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_hostels_landlord ON hostels(landlord_id);
	CREATE INDEX IF NOT EXISTS idx_hostels_created ON hostels(created_at, id);
	CREATE INDEX IF NOT EXISTS idx_bookings_hostel ON bookings(hostel_id);
	CREATE INDEX IF NOT EXISTS idx_bookings_student ON bookings(student_id);
	CREATE INDEX IF NOT EXISTS idx_messages_room ON messages(room_id, id);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// jsonArray stores a string slice as a JSON text column.
type jsonArray []string

func (a jsonArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

type jsonArrayDest struct {
	dst *[]string
}

func (d *jsonArrayDest) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d.dst = []string{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("cannot scan %T into string array", src)
	}
	out := []string{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return err
		}
	}
	*d.dst = out
	return nil
}
