package booking

import (
	"regexp"
	"strings"

	"github.com/meshackowase-commits/HOSTESserch/internal/models"
)

// Form is the booking request a student fills in on the hostel page.
type Form struct {
	RoomType        string `json:"room_type" validate:"notblank"`
	CheckInDate     string `json:"check_in_date" validate:"notblank"`
	FullName        string `json:"full_name" validate:"notblank,max=200"`
	Phone           string `json:"phone" validate:"notblank,max=32"`
	AdmissionNumber string `json:"admission_number" validate:"notblank,max=64"`
	Notes           string `json:"notes" validate:"max=1000"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (f Form) Trimmed() Form {
	return Form{
		RoomType:        strings.TrimSpace(f.RoomType),
		CheckInDate:     strings.TrimSpace(f.CheckInDate),
		FullName:        strings.TrimSpace(f.FullName),
		Phone:           strings.TrimSpace(f.Phone),
		AdmissionNumber: strings.TrimSpace(f.AdmissionNumber),
		Notes:           strings.TrimSpace(f.Notes),
	}
}

// Validate checks the form without touching the store. Check-in may not
// fall before today.
func (f Form) Validate(today models.Date) error {
	f = f.Trimmed()
	errs := models.ValidateStruct(f)
	if !errs.Has("check_in_date") {
		d, err := models.ParseDate(f.CheckInDate)
		switch {
		case err != nil:
			errs.Add("check_in_date", "must be a date in the form YYYY-MM-DD")
		case !today.IsZero() && d.Before(today):
			errs.Add("check_in_date", "must not be in the past")
		}
	}
	if !errs.Has("phone") && !ValidPhone(f.Phone) {
		errs.Add("phone", "must be a valid Kenyan phone number")
	}
	return errs.OrNil()
}

// CheckIn parses the check-in date. Call after Validate.
func (f Form) CheckIn() (models.Date, error) {
	return models.ParseDate(f.CheckInDate)
}

// BookingNotes renders the fields that have no column of their own into the
// booking notes.
func (f Form) BookingNotes(rt models.RoomType) string {
	f = f.Trimmed()
	var b strings.Builder
	b.WriteString("Room type: ")
	b.WriteString(rt.Name)
	b.WriteString("\nAdmission number: ")
	b.WriteString(f.AdmissionNumber)
	if f.Notes != "" {
		b.WriteString("\n")
		b.WriteString(f.Notes)
	}
	return b.String()
}

var nonDigit = regexp.MustCompile(`\D`)

// NormalizePhone reduces a Kenyan mobile number to its 254XXXXXXXXX form.
// Numbers it does not recognise are returned as bare digits.
func NormalizePhone(phone string) string {
	digits := nonDigit.ReplaceAllString(phone, "")
	switch {
	case len(digits) == 10 && strings.HasPrefix(digits, "0"):
		return "254" + digits[1:]
	case len(digits) == 9 && (digits[0] == '7' || digits[0] == '1'):
		return "254" + digits
	}
	return digits
}

// ValidPhone accepts Safaricom/Airtel style numbers written as 07.., 01..,
// +2547.. or +2541.., with any spacing.
func ValidPhone(phone string) bool {
	n := NormalizePhone(phone)
	return len(n) == 12 && (strings.HasPrefix(n, "2547") || strings.HasPrefix(n, "2541"))
}

// DisplayPhone formats a number as +254 712 345 678.
func DisplayPhone(phone string) string {
	n := NormalizePhone(phone)
	if len(n) != 12 {
		return phone
	}
	return "+" + n[:3] + " " + n[3:6] + " " + n[6:9] + " " + n[9:]
}
