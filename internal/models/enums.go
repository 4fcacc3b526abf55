package models

// HostelStatus is the occupancy state of a hostel listing.
type HostelStatus string

const (
	HostelAvailable   HostelStatus = "available"
	HostelOccupied    HostelStatus = "occupied"
	HostelMaintenance HostelStatus = "maintenance"
)

// HostelStatusValues lists every hostel status in declaration order.
func HostelStatusValues() []HostelStatus {
	return []HostelStatus{HostelAvailable, HostelOccupied, HostelMaintenance}
}

// Valid reports whether s is one of the declared hostel statuses.
func (s HostelStatus) Valid() bool {
	switch s {
	case HostelAvailable, HostelOccupied, HostelMaintenance:
		return true
	}
	return false
}

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// BookingStatusValues lists every booking status in declaration order.
func BookingStatusValues() []BookingStatus {
	return []BookingStatus{BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted}
}

// Valid reports whether s is one of the declared booking statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// UserRole is the role carried by a profile.
type UserRole string

const (
	RoleStudent  UserRole = "student"
	RoleLandlord UserRole = "landlord"
	RoleAdmin    UserRole = "admin"
)

// UserRoleValues lists every user role in declaration order.
func UserRoleValues() []UserRole {
	return []UserRole{RoleStudent, RoleLandlord, RoleAdmin}
}

// Valid reports whether r is one of the declared roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleLandlord, RoleAdmin:
		return true
	}
	return false
}

// MessageTypeText is the default kind of a chat message.
const MessageTypeText = "text"
