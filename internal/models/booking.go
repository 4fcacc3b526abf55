package models

import "time"

// Booking is a reservation request linking a student profile to a hostel.
type Booking struct {
	ID           string        `json:"id"`
	HostelID     string        `json:"hostel_id"`
	StudentID    string        `json:"student_id"`
	CheckInDate  *Date         `json:"check_in_date,omitempty"`
	CheckOutDate *Date         `json:"check_out_date,omitempty"`
	Status       BookingStatus `json:"status"`
	TotalAmount  *float64      `json:"total_amount,omitempty"`
	Notes        *string       `json:"notes,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Validate checks the row-level invariants that must hold after any write.
func (b *Booking) Validate() error {
	errs := ValidationErrors{}
	checkNotBlank(errs, "hostel_id", &b.HostelID)
	checkNotBlank(errs, "student_id", &b.StudentID)
	if !b.Status.Valid() {
		errs.Add("status", "must be one of: pending, confirmed, cancelled, completed")
	}
	checkDateOrder(errs, b.CheckInDate, b.CheckOutDate)
	if b.TotalAmount != nil && *b.TotalAmount < 0 {
		errs.Add("total_amount", "must be at least 0")
	}
	return errs.OrNil()
}

// BookingInsert carries the fields accepted when creating a booking.
type BookingInsert struct {
	HostelID     string         `json:"hostel_id" validate:"notblank"`
	StudentID    string         `json:"student_id" validate:"notblank"`
	CheckInDate  *Date          `json:"check_in_date,omitempty"`
	CheckOutDate *Date          `json:"check_out_date,omitempty"`
	Status       *BookingStatus `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	TotalAmount  *float64       `json:"total_amount,omitempty" validate:"omitempty,gte=0"`
	Notes        *string        `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// Validate checks required references, the status enumeration and that
// check-out does not precede check-in.
func (in *BookingInsert) Validate() error {
	errs := ValidateStruct(in)
	checkDateOrder(errs, in.CheckInDate, in.CheckOutDate)
	return errs.OrNil()
}

// Row applies the insert defaults and returns the row to persist.
func (in *BookingInsert) Row(id string, now time.Time) *Booking {
	b := &Booking{
		ID:           id,
		HostelID:     in.HostelID,
		StudentID:    in.StudentID,
		CheckInDate:  cloneDate(in.CheckInDate),
		CheckOutDate: cloneDate(in.CheckOutDate),
		Status:       BookingPending,
		TotalAmount:  cloneFloat(in.TotalAmount),
		Notes:        cloneString(in.Notes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.Status != nil {
		b.Status = *in.Status
	}
	return b
}

// BookingUpdate is a partial update: nil fields are left unchanged.
type BookingUpdate struct {
	HostelID     *string        `json:"hostel_id,omitempty"`
	StudentID    *string        `json:"student_id,omitempty"`
	CheckInDate  *Date          `json:"check_in_date,omitempty"`
	CheckOutDate *Date          `json:"check_out_date,omitempty"`
	Status       *BookingStatus `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	TotalAmount  *float64       `json:"total_amount,omitempty" validate:"omitempty,gte=0"`
	Notes        *string        `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

func (u *BookingUpdate) Validate() error {
	errs := ValidateStruct(u)
	checkNotBlank(errs, "hostel_id", u.HostelID)
	checkNotBlank(errs, "student_id", u.StudentID)
	return errs.OrNil()
}

func (u *BookingUpdate) IsEmpty() bool {
	return *u == BookingUpdate{}
}

func (u *BookingUpdate) Apply(b *Booking) {
	setIf(&b.HostelID, u.HostelID)
	setIf(&b.StudentID, u.StudentID)
	if u.CheckInDate != nil {
		b.CheckInDate = cloneDate(u.CheckInDate)
	}
	if u.CheckOutDate != nil {
		b.CheckOutDate = cloneDate(u.CheckOutDate)
	}
	setIf(&b.Status, u.Status)
	setPtrIf(&b.TotalAmount, u.TotalAmount)
	setPtrIf(&b.Notes, u.Notes)
}

func checkDateOrder(errs ValidationErrors, in, out *Date) {
	if in != nil && out != nil && !in.IsZero() && !out.IsZero() && out.Before(*in) {
		errs.Add("check_out_date", "must not be before check_in_date")
	}
}

func cloneDate(d *Date) *Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}
