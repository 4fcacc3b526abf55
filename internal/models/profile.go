package models

import "time"

// Profile is an identity record carrying a role. UserID references the
// external authentication identity and is what other tables point at.
type Profile struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	FullName    string    `json:"full_name"`
	Role        UserRole  `json:"role"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Profile) Validate() error {
	errs := ValidationErrors{}
	checkNotBlank(errs, "user_id", &p.UserID)
	checkNotBlank(errs, "full_name", &p.FullName)
	if !p.Role.Valid() {
		errs.Add("role", "must be one of: student, landlord, admin")
	}
	return errs.OrNil()
}

type ProfileInsert struct {
	UserID      string    `json:"user_id" validate:"notblank,max=128"`
	FullName    string    `json:"full_name" validate:"notblank,max=200"`
	Role        *UserRole `json:"role,omitempty" validate:"omitempty,oneof=student landlord admin"`
	AvatarURL   *string   `json:"avatar_url,omitempty" validate:"omitempty,url"`
	PhoneNumber *string   `json:"phone_number,omitempty" validate:"omitempty,max=32"`
}

func (in *ProfileInsert) Validate() error {
	return ValidateStruct(in).OrNil()
}

// Row applies the insert defaults. Role defaults to student.
func (in *ProfileInsert) Row(id string, now time.Time) *Profile {
	p := &Profile{
		ID:          id,
		UserID:      in.UserID,
		FullName:    in.FullName,
		Role:        RoleStudent,
		AvatarURL:   cloneString(in.AvatarURL),
		PhoneNumber: cloneString(in.PhoneNumber),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Role != nil {
		p.Role = *in.Role
	}
	return p
}

type ProfileUpdate struct {
	FullName    *string   `json:"full_name,omitempty" validate:"omitempty,max=200"`
	Role        *UserRole `json:"role,omitempty" validate:"omitempty,oneof=student landlord admin"`
	AvatarURL   *string   `json:"avatar_url,omitempty" validate:"omitempty,url"`
	PhoneNumber *string   `json:"phone_number,omitempty" validate:"omitempty,max=32"`
}

func (u *ProfileUpdate) Validate() error {
	errs := ValidateStruct(u)
	checkNotBlank(errs, "full_name", u.FullName)
	return errs.OrNil()
}

func (u *ProfileUpdate) IsEmpty() bool {
	return *u == ProfileUpdate{}
}

func (u *ProfileUpdate) Apply(p *Profile) {
	setIf(&p.FullName, u.FullName)
	setIf(&p.Role, u.Role)
	setPtrIf(&p.AvatarURL, u.AvatarURL)
	setPtrIf(&p.PhoneNumber, u.PhoneNumber)
}
