package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore handles PostgreSQL database operations.
type PostgresStore struct {
	*sqlStore
}

var postgresDialect = dialect{
	name:       "postgres",
	numbered:   true,
	forUpdate:  " FOR UPDATE",
	arrayValue: func(v []string) any { return textArray(v) },
	arrayDest:  func(dst *[]string) any { return &textArrayDest{dst: dst} },
	translate: func(err error) error {
		var pgErr *pgconn.PgError
		// class 23 covers integrity constraint violations
		if errors.As(err, &pgErr) && len(pgErr.Code) == 5 && pgErr.Code[:2] == "23" {
			return fmt.Errorf("%w: %s", ErrConstraint, pgErr.Message)
		}
		return err
	},
}

// NewPostgresStore opens a connection pool to databaseURL and checks it.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return newPostgresStore(db), nil
}

func newPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{sqlStore: newSQLStore(db, postgresDialect)}
}

// A pgtype.Map caches encode and scan plans and is not safe for concurrent use.
var typeMaps = sync.Pool{New: func() any { return pgtype.NewMap() }}

// textArray sends a string slice as a text[] literal.
type textArray []string

func (a textArray) Value() (driver.Value, error) {
	if a == nil {
		a = textArray{}
	}
	m := typeMaps.Get().(*pgtype.Map)
	defer typeMaps.Put(m)
	buf, err := m.Encode(pgtype.TextArrayOID, pgtype.TextFormatCode, []string(a), nil)
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}

// textArrayDest scans a text[] column. NULL reads as an empty slice.
type textArrayDest struct {
	dst *[]string
}

func (d *textArrayDest) Scan(src any) error {
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
	m := typeMaps.Get().(*pgtype.Map)
	defer typeMaps.Put(m)
	var out []string
	if err := m.Scan(pgtype.TextArrayOID, pgtype.TextFormatCode, raw, &out); err != nil {
		return err
	}
	if out == nil {
		out = []string{}
	}
	*d.dst = out
	return nil
}
