package models

import (
	"slices"
	"strings"
	"time"
)

// Hostel is a rentable student accommodation listing.
type Hostel struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Address        string       `json:"address"`
	Description    *string      `json:"description,omitempty"`
	LandlordID     string       `json:"landlord_id"`
	LocationID     *string      `json:"location_id,omitempty"`
	RentAmount     float64      `json:"rent_amount"`
	TotalRooms     int          `json:"total_rooms"`
	RoomsAvailable int          `json:"rooms_available"`
	Status         HostelStatus `json:"status"`
	Amenities      []string     `json:"amenities"`
	Images         []string     `json:"images"`
	ContactEmail   *string      `json:"contact_email,omitempty"`
	ContactPhone   *string      `json:"contact_phone,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Validate checks the row-level invariants that must hold after any write.
func (h *Hostel) Validate() error {
	errs := ValidationErrors{}
	checkNotBlank(errs, "name", &h.Name)
	checkNotBlank(errs, "address", &h.Address)
	checkNotBlank(errs, "landlord_id", &h.LandlordID)
	if h.RentAmount <= 0 {
		errs.Add("rent_amount", "must be greater than 0")
	}
	if h.TotalRooms <= 0 {
		errs.Add("total_rooms", "must be greater than 0")
	}
	if h.RoomsAvailable < 0 {
		errs.Add("rooms_available", "must be at least 0")
	} else if h.RoomsAvailable > h.TotalRooms {
		errs.Add("rooms_available", "must not exceed total_rooms")
	}
	if !h.Status.Valid() {
		errs.Add("status", "must be one of: available, occupied, maintenance")
	}
	return errs.OrNil()
}

// HasVacancy reports whether the hostel can take a booking right now.
func (h *Hostel) HasVacancy() bool {
	return h.Status == HostelAvailable && h.RoomsAvailable > 0
}

// ToInsert builds the insert payload that would recreate h, leaving the
// server-managed id and timestamps out.
func (h *Hostel) ToInsert() HostelInsert {
	status := h.Status
	rooms := h.RoomsAvailable
	return HostelInsert{
		Name:           h.Name,
		Address:        h.Address,
		Description:    cloneString(h.Description),
		LandlordID:     h.LandlordID,
		LocationID:     cloneString(h.LocationID),
		RentAmount:     h.RentAmount,
		TotalRooms:     h.TotalRooms,
		RoomsAvailable: &rooms,
		Status:         &status,
		Amenities:      slices.Clone(h.Amenities),
		Images:         slices.Clone(h.Images),
		ContactEmail:   cloneString(h.ContactEmail),
		ContactPhone:   cloneString(h.ContactPhone),
	}
}

// HostelInsert carries the fields accepted when creating a hostel.
type HostelInsert struct {
	Name           string        `json:"name" validate:"notblank,max=200"`
	Address        string        `json:"address" validate:"notblank,max=300"`
	Description    *string       `json:"description,omitempty" validate:"omitempty,max=5000"`
	LandlordID     string        `json:"landlord_id" validate:"notblank"`
	LocationID     *string       `json:"location_id,omitempty"`
	RentAmount     float64       `json:"rent_amount" validate:"gt=0"`
	TotalRooms     int           `json:"total_rooms" validate:"gt=0"`
	RoomsAvailable *int          `json:"rooms_available,omitempty" validate:"omitempty,gte=0"`
	Status         *HostelStatus `json:"status,omitempty" validate:"omitempty,oneof=available occupied maintenance"`
	Amenities      []string      `json:"amenities,omitempty" validate:"omitempty,dive,notblank"`
	Images         []string      `json:"images,omitempty" validate:"omitempty,dive,url"`
	ContactEmail   *string       `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone   *string       `json:"contact_phone,omitempty" validate:"omitempty,max=32"`
}

// Validate checks required fields, enumerations and the room bounds.
func (in *HostelInsert) Validate() error {
	errs := ValidateStruct(in)
	if in.RoomsAvailable != nil && in.TotalRooms > 0 && *in.RoomsAvailable > in.TotalRooms {
		errs.Add("rooms_available", "must not exceed total_rooms")
	}
	return errs.OrNil()
}

// Row applies the insert defaults and returns the row to persist.
// Status defaults to available and rooms_available to total_rooms.
func (in *HostelInsert) Row(id string, now time.Time) *Hostel {
	h := &Hostel{
		ID:             id,
		Name:           in.Name,
		Address:        in.Address,
		Description:    cloneString(in.Description),
		LandlordID:     in.LandlordID,
		LocationID:     cloneString(in.LocationID),
		RentAmount:     in.RentAmount,
		TotalRooms:     in.TotalRooms,
		RoomsAvailable: in.TotalRooms,
		Status:         HostelAvailable,
		Amenities:      nonNil(in.Amenities),
		Images:         nonNil(in.Images),
		ContactEmail:   cloneString(in.ContactEmail),
		ContactPhone:   cloneString(in.ContactPhone),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.RoomsAvailable != nil {
		h.RoomsAvailable = *in.RoomsAvailable
	}
	if in.Status != nil {
		h.Status = *in.Status
	}
	return h
}

// HostelUpdate is a partial update: nil fields are left unchanged.
type HostelUpdate struct {
	Name           *string       `json:"name,omitempty" validate:"omitempty,notblank,max=200"`
	Address        *string       `json:"address,omitempty" validate:"omitempty,notblank,max=300"`
	Description    *string       `json:"description,omitempty" validate:"omitempty,max=5000"`
	LandlordID     *string       `json:"landlord_id,omitempty" validate:"omitempty,notblank"`
	LocationID     *string       `json:"location_id,omitempty"`
	RentAmount     *float64      `json:"rent_amount,omitempty" validate:"omitempty,gt=0"`
	TotalRooms     *int          `json:"total_rooms,omitempty" validate:"omitempty,gt=0"`
	RoomsAvailable *int          `json:"rooms_available,omitempty" validate:"omitempty,gte=0"`
	Status         *HostelStatus `json:"status,omitempty" validate:"omitempty,oneof=available occupied maintenance"`
	Amenities      *[]string     `json:"amenities,omitempty"`
	Images         *[]string     `json:"images,omitempty"`
	ContactEmail   *string       `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone   *string       `json:"contact_phone,omitempty" validate:"omitempty,max=32"`
}

// Validate checks the supplied fields in isolation. Cross-field bounds are
// checked against the merged row by Hostel.Validate.
func (u *HostelUpdate) Validate() error {
	errs := ValidateStruct(u)
	checkNotBlank(errs, "name", u.Name)
	checkNotBlank(errs, "address", u.Address)
	checkNotBlank(errs, "landlord_id", u.LandlordID)
	if u.Images != nil {
		for _, img := range *u.Images {
			if instance().Var(img, "url") != nil {
				errs.Add("images", "must be a valid URL")
				break
			}
		}
	}
	return errs.OrNil()
}

// IsEmpty reports whether the update changes nothing.
func (u *HostelUpdate) IsEmpty() bool {
	return *u == HostelUpdate{}
}

// Apply copies every supplied field onto h.
func (u *HostelUpdate) Apply(h *Hostel) {
	setIf(&h.Name, u.Name)
	setIf(&h.Address, u.Address)
	setPtrIf(&h.Description, u.Description)
	setIf(&h.LandlordID, u.LandlordID)
	setPtrIf(&h.LocationID, u.LocationID)
	setIf(&h.RentAmount, u.RentAmount)
	setIf(&h.TotalRooms, u.TotalRooms)
	setIf(&h.RoomsAvailable, u.RoomsAvailable)
	setIf(&h.Status, u.Status)
	if u.Amenities != nil {
		h.Amenities = nonNil(*u.Amenities)
	}
	if u.Images != nil {
		h.Images = nonNil(*u.Images)
	}
	setPtrIf(&h.ContactEmail, u.ContactEmail)
	setPtrIf(&h.ContactPhone, u.ContactPhone)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setPtrIf[T any](dst **T, v *T) {
	if v != nil {
		c := *v
		*dst = &c
	}
}

func checkNotBlank(errs ValidationErrors, field string, v *string) {
	if v != nil && strings.TrimSpace(*v) == "" {
		errs.Add(field, "is required")
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
