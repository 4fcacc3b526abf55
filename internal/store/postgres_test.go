package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshackowase-commits/HOSTESserch/internal/models"
)

var hostelRowColumns = []string{
	"id", "name", "address", "description", "landlord_id", "location_id", "rent_amount",
	"total_rooms", "rooms_available", "status", "amenities", "images", "contact_email",
	"contact_phone", "created_at", "updated_at",
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresStore) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	return db, mock, newPostgresStore(db)
}

func TestPostgresGetHostel_Success(t *testing.T) {
	db, mock, s := setupMockDB(t)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows(hostelRowColumns).
		AddRow("h1", "Chuka View Hostel", "123 University Road, Chuka", nil, "landlord-1", nil, 8000.0,
			int64(15), int64(10), "available", "{Wi-Fi,CCTV}", "{}", nil, nil, now, now)

	mock.ExpectQuery(`FROM hostels WHERE id = \$1`).
		WithArgs("h1").
		WillReturnRows(rows)

	h, err := s.GetHostel(context.Background(), "h1")

	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, "Chuka View Hostel", h.Name)
	assert.Equal(t, models.HostelAvailable, h.Status)
	assert.Equal(t, []string{"Wi-Fi", "CCTV"}, h.Amenities)
	assert.Equal(t, []string{}, h.Images)
	assert.Nil(t, h.Description)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetHostel_NotFound(t *testing.T) {
	db, mock, s := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`FROM hostels WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(hostelRowColumns))

	h, err := s.GetHostel(context.Background(), "missing")

	require.NoError(t, err)
	assert.Nil(t, h)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListHostels_NumbersPlaceholders(t *testing.T) {
	db, mock, s := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`WHERE status = \$1 AND landlord_id = \$2 ORDER BY created_at ASC, id ASC LIMIT \$3 OFFSET \$4`).
		WithArgs("available", "landlord-1", 20, 40).
		WillReturnRows(sqlmock.NewRows(hostelRowColumns))

	list, err := s.ListHostels(context.Background(), HostelFilter{
		Status: models.HostelAvailable, LandlordID: "landlord-1", Limit: 20, Offset: 40,
	})

	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresInsertHostel_ValidationSkipsDatabase(t *testing.T) {
	db, mock, s := setupMockDB(t)
	defer db.Close()

	_, err := s.InsertHostel(context.Background(), models.HostelInsert{Name: "No address"})

	var verrs models.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("address"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresInsertBooking_ForeignKeyViolation(t *testing.T) {
	db, mock, s := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO bookings`).
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"})

	_, err := s.InsertBooking(context.Background(), models.BookingInsert{HostelID: "missing", StudentID: "student-1"})

	assert.ErrorIs(t, err, ErrConstraint)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdateBookingStatus_StaleStatus(t *testing.T) {
	db, mock, s := setupMockDB(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE bookings SET status = \$1, updated_at = \$2`).
		WithArgs("confirmed", sqlmock.AnyArg(), "b1", "pending").
		WillReturnResult(sqlmock.NewResult(0, 0))

	b, err := s.UpdateBookingStatus(context.Background(), "b1", models.BookingPending, models.BookingConfirmed)

	require.NoError(t, err)
	assert.Nil(t, b)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdateHostel_RollsBackInvalidMerge(t *testing.T) {
	db, mock, s := setupMockDB(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM hostels WHERE id = \$1 FOR UPDATE`).
		WithArgs("h1").
		WillReturnRows(sqlmock.NewRows(hostelRowColumns).
			AddRow("h1", "Campus Lodge", "Campus Road", nil, "landlord-1", nil, 9500.0,
				int64(8), int64(6), "available", "{}", "{}", nil, nil, now, now))
	mock.ExpectRollback()

	total := 4
	_, err := s.UpdateHostel(context.Background(), "h1", models.HostelUpdate{TotalRooms: &total})

	var verrs models.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("rooms_available"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdateHostel_Success(t *testing.T) {
	db, mock, s := setupMockDB(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM hostels WHERE id = \$1 FOR UPDATE`).
		WithArgs("h1").
		WillReturnRows(sqlmock.NewRows(hostelRowColumns).
			AddRow("h1", "Campus Lodge", "Campus Road", nil, "landlord-1", nil, 9500.0,
				int64(8), int64(6), "available", "{Wi-Fi}", "{}", nil, nil, now, now))
	mock.ExpectExec(`UPDATE hostels SET name = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	status := models.HostelMaintenance
	h, err := s.UpdateHostel(context.Background(), "h1", models.HostelUpdate{Status: &status})

	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, models.HostelMaintenance, h.Status)
	assert.Equal(t, []string{"Wi-Fi"}, h.Amenities)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRebind(t *testing.T) {
	s := newSQLStore(nil, postgresDialect)
	assert.Equal(t, "SELECT 1 WHERE a = $1 AND b = $2", s.q("SELECT 1 WHERE a = ? AND b = ?"))

	lite := newSQLStore(nil, sqliteDialect)
	assert.Equal(t, "WHERE a = ?", lite.q("WHERE a = ?"))
}

func TestTextArrayRoundTrip(t *testing.T) {
	v, err := textArray{"Wi-Fi", "Hot Water", `Mama's "Kitchen"`}.Value()
	require.NoError(t, err)

	var got []string
	require.NoError(t, (&textArrayDest{dst: &got}).Scan(v))
	assert.Equal(t, []string{"Wi-Fi", "Hot Water", `Mama's "Kitchen"`}, got)

	empty, err := textArray(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", empty)

	require.NoError(t, (&textArrayDest{dst: &got}).Scan(nil))
	assert.Equal(t, []string{}, got)
}
