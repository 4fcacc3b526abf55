package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshackowase-commits/HOSTESserch/internal/models"
)

func strPtr(s string) *string { return &s }

// seedLandlord inserts the profiles most tests need.
func seedProfiles(t *testing.T, s DataStore) {
	t.Helper()
	ctx := context.Background()
	landlord := models.RoleLandlord
	_, err := s.InsertProfile(ctx, models.ProfileInsert{UserID: "landlord-1", FullName: "Peter Mwangi", Role: &landlord})
	require.NoError(t, err)
	_, err = s.InsertProfile(ctx, models.ProfileInsert{UserID: "student-1", FullName: "Jane Wanjiru"})
	require.NoError(t, err)
}

func fullHostelInsert(locationID string) models.HostelInsert {
	status := models.HostelAvailable
	rooms := 10
	return models.HostelInsert{
		Name:           "Chuka View Hostel",
		Address:        "123 University Road, Chuka",
		Description:    strPtr("Modern hostel close to campus"),
		LandlordID:     "landlord-1",
		LocationID:     &locationID,
		RentAmount:     8000,
		TotalRooms:     15,
		RoomsAvailable: &rooms,
		Status:         &status,
		Amenities:      []string{"Wi-Fi", "CCTV", "Water", "Electricity"},
		Images:         []string{"https://example.com/chuka-view.jpg"},
		ContactEmail:   strPtr("bookings@chukaview.com"),
		ContactPhone:   strPtr("+254 712 345 678"),
	}
}

// testDataStore runs the behaviour every DataStore implementation shares.
func testDataStore(t *testing.T, newStore func(t *testing.T) DataStore) {
	ctx := context.Background()

	t.Run("hostel round trip", func(t *testing.T) {
		s := newStore(t)
		seedProfiles(t, s)
		loc, err := s.InsertLocation(ctx, models.LocationInsert{Name: "Ndagani"})
		require.NoError(t, err)

		in := fullHostelInsert(loc.ID)
		created, err := s.InsertHostel(ctx, in)
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)

		got, err := s.GetHostel(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, in, got.ToInsert())
		assert.WithinDuration(t, created.CreatedAt, got.CreatedAt, time.Millisecond)
	})

	t.Run("hostel defaults and missing rows", func(t *testing.T) {
		s := newStore(t)
		seedProfiles(t, s)

		h, err := s.InsertHostel(ctx, models.HostelInsert{
			Name: "Campus Lodge", Address: "Campus Road", LandlordID: "landlord-1",
			RentAmount: 9500, TotalRooms: 8,
		})
		require.NoError(t, err)
		assert.Equal(t, models.HostelAvailable, h.Status)
		assert.Equal(t, 8, h.RoomsAvailable)
		assert.Equal(t, []string{}, h.Amenities)

		missing, err := s.GetHostel(ctx, "does-not-exist")
		require.NoError(t, err)
		assert.Nil(t, missing)

		rent := 1.0
		updated, err := s.UpdateHostel(ctx, "does-not-exist", models.HostelUpdate{RentAmount: &rent})
		require.NoError(t, err)
		assert.Nil(t, updated)
	})

	t.Run("hostel insert rejects unknown landlord", func(t *testing.T) {
		s := newStore(t)
		_, err := s.InsertHostel(ctx, models.HostelInsert{
			Name: "Ghost", Address: "Nowhere", LandlordID: "nobody", RentAmount: 1, TotalRooms: 1,
		})
		assert.ErrorIs(t, err, ErrConstraint)
	})

	t.Run("hostel update is partial and checked", func(t *testing.T) {
		s := newStore(t)
		seedProfiles(t, s)
		h, err := s.InsertHostel(ctx, models.HostelInsert{
			Name: "Student Paradise", Address: "Ndagani", LandlordID: "landlord-1",
			RentAmount: 6500, TotalRooms: 10, Amenities: []string{"Wi-Fi"},
		})
		require.NoError(t, err)

		rent := 7000.0
		updated, err := s.UpdateHostel(ctx, h.ID, models.HostelUpdate{RentAmount: &rent})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, 7000.0, updated.RentAmount)
		assert.Equal(t, "Student Paradise", updated.Name)
		assert.Equal(t, []string{"Wi-Fi"}, updated.Amenities)

		total := 4
		_, err = s.UpdateHostel(ctx, h.ID, models.HostelUpdate{TotalRooms: &total})
		var verrs models.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.True(t, verrs.Has("rooms_available"))

		got, err := s.GetHostel(ctx, h.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, got.TotalRooms)
	})

	t.Run("hostel listing order and filters", func(t *testing.T) {
		s := newStore(t)
		seedProfiles(t, s)
		names := []string{"A", "B", "C"}
		for _, n := range names {
			_, err := s.InsertHostel(ctx, models.HostelInsert{
				Name: n, Address: "addr", LandlordID: "landlord-1", RentAmount: 5000, TotalRooms: 2,
			})
			require.NoError(t, err)
		}
		occupied := models.HostelOccupied
		list, err := s.ListHostels(ctx, HostelFilter{})
		require.NoError(t, err)
		require.Len(t, list, 3)
		_, err = s.UpdateHostel(ctx, list[1].ID, models.HostelUpdate{Status: &occupied})
		require.NoError(t, err)

		for i, h := range list {
			assert.Equal(t, names[i], h.Name)
		}

		avail, err := s.ListHostels(ctx, HostelFilter{Status: models.HostelAvailable})
		require.NoError(t, err)
		require.Len(t, avail, 2)
		assert.Equal(t, "A", avail[0].Name)
		assert.Equal(t, "C", avail[1].Name)

		paged, err := s.ListHostels(ctx, HostelFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, paged, 1)
		assert.Equal(t, "B", paged[0].Name)

		n, err := s.CountHostels(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 3, n)
	})

	t.Run("booking lifecycle", func(t *testing.T) {
		s := newStore(t)
		seedProfiles(t, s)
		h, err := s.InsertHostel(ctx, models.HostelInsert{
			Name: "Campus Lodge", Address: "addr", LandlordID: "landlord-1", RentAmount: 9500, TotalRooms: 5,
		})
		require.NoError(t, err)

		checkIn := models.NewDate(2025, time.January, 6)
		amount := 9500.0
		b, err := s.InsertBooking(ctx, models.BookingInsert{
			HostelID: h.ID, StudentID: "student-1", CheckInDate: &checkIn, TotalAmount: &amount,
			Notes: strPtr("Room type: Single Room"),
		})
		require.NoError(t, err)
		assert.Equal(t, models.BookingPending, b.Status)

		got, err := s.GetBooking(ctx, b.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.NotNil(t, got.CheckInDate)
		assert.Equal(t, "2025-01-06", got.CheckInDate.String())
		assert.Nil(t, got.CheckOutDate)
		assert.Equal(t, 9500.0, *got.TotalAmount)

		// compare-and-set misses when the expected status is stale
		none, err := s.UpdateBookingStatus(ctx, b.ID, models.BookingConfirmed, models.BookingCompleted)
		require.NoError(t, err)
		assert.Nil(t, none)

		confirmed, err := s.UpdateBookingStatus(ctx, b.ID, models.BookingPending, models.BookingConfirmed)
		require.NoError(t, err)
		require.NotNil(t, confirmed)
		assert.Equal(t, models.BookingConfirmed, confirmed.Status)

		byLandlord, err := s.ListBookings(ctx, BookingFilter{LandlordID: "landlord-1"})
		require.NoError(t, err)
		assert.Len(t, byLandlord, 1)

		byOther, err := s.ListBookings(ctx, BookingFilter{LandlordID: "someone-else"})
		require.NoError(t, err)
		assert.Empty(t, byOther)

		notes := "Arriving late"
		updated, err := s.UpdateBooking(ctx, b.ID, models.BookingUpdate{Notes: &notes})
		require.NoError(t, err)
		assert.Equal(t, "Arriving late", *updated.Notes)
		assert.Equal(t, models.BookingConfirmed, updated.Status)

		_, err = s.InsertBooking(ctx, models.BookingInsert{HostelID: "missing", StudentID: "student-1"})
		assert.ErrorIs(t, err, ErrConstraint)
	})

	t.Run("profiles", func(t *testing.T) {
		s := newStore(t)
		seedProfiles(t, s)

		_, err := s.InsertProfile(ctx, models.ProfileInsert{UserID: "student-1", FullName: "Duplicate"})
		assert.ErrorIs(t, err, ErrConstraint)

		phone := "+254 700 000 001"
		p, err := s.UpdateProfile(ctx, "student-1", models.ProfileUpdate{PhoneNumber: &phone})
		require.NoError(t, err)
		assert.Equal(t, "Jane Wanjiru", p.FullName)
		assert.Equal(t, phone, *p.PhoneNumber)

		students, err := s.CountProfiles(ctx, models.RoleStudent)
		require.NoError(t, err)
		assert.EqualValues(t, 1, students)
		all, err := s.CountProfiles(ctx, "")
		require.NoError(t, err)
		assert.EqualValues(t, 2, all)
	})

	t.Run("locations", func(t *testing.T) {
		s := newStore(t)
		dist := 0.5
		_, err := s.InsertLocation(ctx, models.LocationInsert{Name: "Ndagani", DistanceToUniversity: &dist})
		require.NoError(t, err)
		l, err := s.InsertLocation(ctx, models.LocationInsert{Name: "Chuka Town"})
		require.NoError(t, err)

		list, err := s.ListLocations(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Chuka Town", list[0].Name)
		assert.Equal(t, 0.5, *list[1].DistanceToUniversity)

		desc := "Town centre"
		updated, err := s.UpdateLocation(ctx, l.ID, models.LocationUpdate{Description: &desc})
		require.NoError(t, err)
		assert.Equal(t, "Town centre", *updated.Description)
	})

	t.Run("chat rooms and messages", func(t *testing.T) {
		s := newStore(t)
		seedProfiles(t, s)

		room, err := s.InsertChatRoom(ctx, models.ChatRoomInsert{StudentID: "student-1", LandlordID: "landlord-1"})
		require.NoError(t, err)

		rooms, err := s.ListChatRooms(ctx, "landlord-1")
		require.NoError(t, err)
		require.Len(t, rooms, 1)
		none, err := s.ListChatRooms(ctx, "stranger")
		require.NoError(t, err)
		assert.Empty(t, none)

		var sent []*models.Message
		for _, text := range []string{"Hello", "Is a single room free?", "Yes, from January"} {
			m, err := s.InsertMessage(ctx, models.MessageInsert{RoomID: room.ID, SenderID: "student-1", Content: text})
			require.NoError(t, err)
			sent = append(sent, m)
		}

		latest, err := s.ListMessages(ctx, room.ID, 2, "")
		require.NoError(t, err)
		require.Len(t, latest, 2)
		assert.Equal(t, "Yes, from January", latest[0].Content)
		assert.Equal(t, models.MessageTypeText, latest[0].MessageType)

		older, err := s.ListMessages(ctx, room.ID, 10, latest[1].ID)
		require.NoError(t, err)
		require.Len(t, older, 1)
		assert.Equal(t, sent[0].ID, older[0].ID)

		content := "Hello there"
		edited, err := s.UpdateMessage(ctx, sent[0].ID, models.MessageUpdate{Content: &content})
		require.NoError(t, err)
		assert.Equal(t, "Hello there", edited.Content)

		_, err = s.InsertMessage(ctx, models.MessageInsert{RoomID: "missing", SenderID: "student-1", Content: "hi"})
		assert.ErrorIs(t, err, ErrConstraint)
	})
}
