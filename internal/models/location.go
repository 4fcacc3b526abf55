package models

import "time"

// Location is a named area near the university that hostels sit in.
type Location struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Description          *string   `json:"description,omitempty"`
	Latitude             *float64  `json:"latitude,omitempty"`
	Longitude            *float64  `json:"longitude,omitempty"`
	DistanceToUniversity *float64  `json:"distance_to_university,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

func (l *Location) Validate() error {
	errs := ValidationErrors{}
	checkNotBlank(errs, "name", &l.Name)
	if l.DistanceToUniversity != nil && *l.DistanceToUniversity < 0 {
		errs.Add("distance_to_university", "must be at least 0")
	}
	return errs.OrNil()
}

type LocationInsert struct {
	Name                 string   `json:"name" validate:"notblank,max=200"`
	Description          *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Latitude             *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude            *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	DistanceToUniversity *float64 `json:"distance_to_university,omitempty" validate:"omitempty,gte=0"`
}

func (in *LocationInsert) Validate() error {
	return ValidateStruct(in).OrNil()
}

func (in *LocationInsert) Row(id string, now time.Time) *Location {
	return &Location{
		ID:                   id,
		Name:                 in.Name,
		Description:          cloneString(in.Description),
		Latitude:             cloneFloat(in.Latitude),
		Longitude:            cloneFloat(in.Longitude),
		DistanceToUniversity: cloneFloat(in.DistanceToUniversity),
		CreatedAt:            now,
	}
}

type LocationUpdate struct {
	Name                 *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	Description          *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Latitude             *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude            *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	DistanceToUniversity *float64 `json:"distance_to_university,omitempty" validate:"omitempty,gte=0"`
}

func (u *LocationUpdate) Validate() error {
	errs := ValidateStruct(u)
	checkNotBlank(errs, "name", u.Name)
	return errs.OrNil()
}

func (u *LocationUpdate) IsEmpty() bool {
	return *u == LocationUpdate{}
}

func (u *LocationUpdate) Apply(l *Location) {
	setIf(&l.Name, u.Name)
	setPtrIf(&l.Description, u.Description)
	setPtrIf(&l.Latitude, u.Latitude)
	setPtrIf(&l.Longitude, u.Longitude)
	setPtrIf(&l.DistanceToUniversity, u.DistanceToUniversity)
}
