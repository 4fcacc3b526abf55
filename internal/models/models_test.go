package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func validHostelInsert() HostelInsert {
	return HostelInsert{
		Name:       "Chuka View Hostel",
		Address:    "123 University Road, Chuka",
		LandlordID: "landlord-1",
		RentAmount: 8000,
		TotalRooms: 10,
		Amenities:  []string{"Wi-Fi", "CCTV"},
	}
}

func TestEnumerationsAreClosed(t *testing.T) {
	for _, s := range HostelStatusValues() {
		assert.True(t, s.Valid())
	}
	for _, s := range BookingStatusValues() {
		assert.True(t, s.Valid())
	}
	for _, r := range UserRoleValues() {
		assert.True(t, r.Valid())
	}
	assert.False(t, HostelStatus("closed").Valid())
	assert.False(t, BookingStatus("rejected").Valid())
	assert.False(t, UserRole("guest").Valid())
}

func TestHostelInsertRequiredFields(t *testing.T) {
	in := HostelInsert{}
	err := in.Validate()
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	for _, field := range []string{"name", "address", "landlord_id", "rent_amount", "total_rooms"} {
		assert.True(t, verrs.Has(field), "expected error for %s", field)
	}
}

func TestHostelInsertRejectsBadValues(t *testing.T) {
	in := validHostelInsert()
	status := HostelStatus("closed")
	in.Status = &status
	in.RoomsAvailable = intPtr(11)
	in.ContactEmail = strPtr("not-an-email")

	var verrs ValidationErrors
	require.ErrorAs(t, in.Validate(), &verrs)
	assert.Contains(t, verrs["status"], "available")
	assert.Equal(t, "must not exceed total_rooms", verrs["rooms_available"])
	assert.Equal(t, "must be a valid email address", verrs["contact_email"])
}

func TestHostelInsertDefaults(t *testing.T) {
	in := validHostelInsert()
	require.NoError(t, in.Validate())

	now := time.Now().UTC()
	h := in.Row("h1", now)
	assert.Equal(t, HostelAvailable, h.Status)
	assert.Equal(t, 10, h.RoomsAvailable)
	assert.Equal(t, []string{}, h.Images)
	assert.Equal(t, now, h.CreatedAt)
	assert.Equal(t, now, h.UpdatedAt)
}

func TestHostelToInsertRoundTrip(t *testing.T) {
	status := HostelMaintenance
	in := validHostelInsert()
	in.Description = strPtr("Close to campus")
	in.LocationID = strPtr("loc-1")
	in.RoomsAvailable = intPtr(4)
	in.Status = &status
	in.Images = []string{"https://example.com/a.jpg"}
	in.ContactEmail = strPtr("bookings@chukaview.com")
	in.ContactPhone = strPtr("+254 712 345 678")

	first := in.Row("h1", time.Now())
	again := first.ToInsert()
	second := again.Row("h2", time.Now().Add(time.Hour))

	second.ID = first.ID
	second.CreatedAt = first.CreatedAt
	second.UpdatedAt = first.UpdatedAt
	assert.Equal(t, first, second)
}

func TestHostelUpdateApply(t *testing.T) {
	in := validHostelInsert()
	h := in.Row("h1", time.Now())

	rent := 9500.0
	amenities := []string{"Kitchen"}
	u := HostelUpdate{RentAmount: &rent, Amenities: &amenities}
	require.NoError(t, u.Validate())
	assert.False(t, u.IsEmpty())

	u.Apply(h)
	assert.Equal(t, 9500.0, h.RentAmount)
	assert.Equal(t, []string{"Kitchen"}, h.Amenities)
	assert.Equal(t, "Chuka View Hostel", h.Name)

	assert.True(t, (&HostelUpdate{}).IsEmpty())
}

func TestHostelUpdateMergedRowInvariant(t *testing.T) {
	in := validHostelInsert()
	h := in.Row("h1", time.Now())

	u := HostelUpdate{TotalRooms: intPtr(5)}
	require.NoError(t, u.Validate())
	u.Apply(h)

	var verrs ValidationErrors
	require.ErrorAs(t, h.Validate(), &verrs)
	assert.True(t, verrs.Has("rooms_available"))
}

func TestHostelUpdateRejectsBlankName(t *testing.T) {
	u := HostelUpdate{Name: strPtr("   ")}
	var verrs ValidationErrors
	require.ErrorAs(t, u.Validate(), &verrs)
	assert.Equal(t, "is required", verrs["name"])
}

func TestBookingInsert(t *testing.T) {
	var verrs ValidationErrors
	require.ErrorAs(t, (&BookingInsert{}).Validate(), &verrs)
	assert.True(t, verrs.Has("hostel_id"))
	assert.True(t, verrs.Has("student_id"))

	in := BookingInsert{HostelID: "h1", StudentID: "s1"}
	require.NoError(t, in.Validate())
	b := in.Row("b1", time.Now())
	assert.Equal(t, BookingPending, b.Status)

	checkIn := NewDate(2025, time.January, 10)
	checkOut := NewDate(2025, time.January, 9)
	in.CheckInDate = &checkIn
	in.CheckOutDate = &checkOut
	require.ErrorAs(t, in.Validate(), &verrs)
	assert.True(t, verrs.Has("check_out_date"))
}

func TestProfileInsertDefaultsToStudent(t *testing.T) {
	in := ProfileInsert{UserID: "u1", FullName: "Jane Wanjiru"}
	require.NoError(t, in.Validate())
	assert.Equal(t, RoleStudent, in.Row("p1", time.Now()).Role)

	role := UserRole("guest")
	in.Role = &role
	assert.Error(t, in.Validate())
}

func TestLocationInsert(t *testing.T) {
	lat := 95.0
	in := LocationInsert{Name: "Ndagani", Latitude: &lat}
	var verrs ValidationErrors
	require.ErrorAs(t, in.Validate(), &verrs)
	assert.Equal(t, "must be a valid latitude", verrs["latitude"])

	lat = -0.3365
	require.NoError(t, in.Validate())
}

func TestChatRoomParticipantsDiffer(t *testing.T) {
	in := ChatRoomInsert{StudentID: "u1", LandlordID: "u1"}
	var verrs ValidationErrors
	require.ErrorAs(t, in.Validate(), &verrs)
	assert.True(t, verrs.Has("landlord_id"))
}

func TestMessageInsert(t *testing.T) {
	in := MessageInsert{RoomID: "r1", SenderID: "u1", Content: "   "}
	var verrs ValidationErrors
	require.ErrorAs(t, in.Validate(), &verrs)
	assert.Equal(t, "is required", verrs["content"])

	in.Content = "  Is the room still free?  "
	require.NoError(t, in.Validate())
	m := in.Row("m1", time.Now())
	assert.Equal(t, "Is the room still free?", m.Content)
	assert.Equal(t, MessageTypeText, m.MessageType)
}

func TestValidationErrorsMessage(t *testing.T) {
	errs := ValidationErrors{}
	assert.NoError(t, errs.OrNil())

	errs.Add("phone", "is required")
	errs.Add("full_name", "is required")
	errs.Add("phone", "ignored")
	assert.Equal(t, "validation failed: full_name: is required; phone: is required", errs.Error())
}

func TestDateJSONAndScan(t *testing.T) {
	d, err := ParseDate("2025-01-15")
	require.NoError(t, err)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-01-15"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, d.Equal(back.Time))

	var scanned Date
	require.NoError(t, scanned.Scan(time.Date(2025, 1, 15, 13, 30, 0, 0, time.UTC)))
	assert.Equal(t, "2025-01-15", scanned.String())
	require.NoError(t, scanned.Scan([]byte("2025-02-01T00:00:00Z")))
	assert.Equal(t, "2025-02-01", scanned.String())

	_, err = ParseDate("15/01/2025")
	assert.Error(t, err)
}

func TestRoomTypes(t *testing.T) {
	h := &Hostel{RentAmount: 8000, TotalRooms: 12, RoomsAvailable: 10}
	types := RoomTypes(h)
	require.Len(t, types, 3)

	assert.Equal(t, RoomType{Key: "single", Name: "Single Room", Price: 8000, Available: 5}, types[0])
	assert.Equal(t, RoomType{Key: "double", Name: "Double Room", Price: 6000, Available: 3}, types[1])
	assert.Equal(t, RoomType{Key: "shared", Name: "Shared Room (4 people)", Price: 4500, Available: 2}, types[2])

	h.RoomsAvailable = 7
	total := 0
	for _, rt := range RoomTypes(h) {
		total += rt.Available
	}
	assert.Equal(t, 7, total)

	rt, ok := FindRoomType(h, "double room")
	require.True(t, ok)
	assert.Equal(t, "double", rt.Key)
	_, ok = FindRoomType(h, "penthouse")
	assert.False(t, ok)
}

func TestFormatKSh(t *testing.T) {
	assert.Equal(t, "KSh 8,000", FormatKSh(8000))
	assert.Equal(t, "KSh 950", FormatKSh(950))
	assert.Equal(t, "KSh 1,234,567", FormatKSh(1234567))
	assert.Equal(t, "KSh 0", FormatKSh(0))
}
