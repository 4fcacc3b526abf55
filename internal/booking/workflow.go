// Package booking implements the hostel detail view and the booking
// workflow: form validation, submission and the booking status lifecycle.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/meshackowase-commits/HOSTESserch/internal/metrics"
	"github.com/meshackowase-commits/HOSTESserch/internal/models"
	"github.com/meshackowase-commits/HOSTESserch/internal/store"
)

// Submission is a booking form posted for one hostel by one student.
type Submission struct {
	HostelID  string
	StudentID string
	Form      Form
}

// Service runs booking submissions and status changes against a store.
type Service struct {
	store  store.DataStore
	logger zerolog.Logger
	now    func() time.Time
}

// NewService creates a booking service.
func NewService(s store.DataStore, logger zerolog.Logger) *Service {
	return &Service{
		store:  s,
		logger: logger.With().Str("component", "booking").Logger(),
		now:    time.Now,
	}
}

// Submit validates the form, checks the hostel can take the booking and
// persists a pending booking priced at the chosen room type.
//
// Validation problems are returned as models.ValidationErrors before any
// store call. Store failures come back as *TransmissionError.
func (s *Service) Submit(ctx context.Context, sub Submission) (*models.Booking, error) {
	form := sub.Form.Trimmed()

	errs := models.ValidationErrors{}
	if ferr := form.Validate(models.DateOf(s.now())); ferr != nil {
		errs = ferr.(models.ValidationErrors)
	}
	if sub.HostelID == "" {
		errs.Add("hostel_id", "is required")
	}
	if sub.StudentID == "" {
		errs.Add("student_id", "is required")
	}
	if len(errs) > 0 {
		metrics.BookingsSubmitted.WithLabelValues("invalid").Inc()
		return nil, errs
	}

	hostel, err := s.store.GetHostel(ctx, sub.HostelID)
	if err != nil {
		return nil, s.transmission("load hostel", err, sub)
	}
	if hostel == nil {
		metrics.BookingsSubmitted.WithLabelValues("not_found").Inc()
		return nil, ErrHostelNotFound
	}
	if !hostel.HasVacancy() {
		metrics.BookingsSubmitted.WithLabelValues("unavailable").Inc()
		return nil, ErrUnavailable
	}

	rt, ok := models.FindRoomType(hostel, form.RoomType)
	if !ok {
		metrics.BookingsSubmitted.WithLabelValues("invalid").Inc()
		return nil, models.ValidationErrors{"room_type": "is not offered by this hostel"}
	}
	if rt.Available == 0 {
		metrics.BookingsSubmitted.WithLabelValues("unavailable").Inc()
		return nil, models.ValidationErrors{"room_type": "has no rooms available"}
	}

	if err := s.ensureStudent(ctx, sub.StudentID, form); err != nil {
		return nil, err
	}

	checkIn, _ := form.CheckIn()
	price := rt.Price
	notes := form.BookingNotes(rt)
	b, err := s.store.InsertBooking(ctx, models.BookingInsert{
		HostelID:    hostel.ID,
		StudentID:   sub.StudentID,
		CheckInDate: &checkIn,
		TotalAmount: &price,
		Notes:       &notes,
	})
	if err != nil {
		var verrs models.ValidationErrors
		if errors.As(err, &verrs) {
			metrics.BookingsSubmitted.WithLabelValues("invalid").Inc()
			return nil, verrs
		}
		if errors.Is(err, store.ErrConstraint) {
			metrics.BookingsSubmitted.WithLabelValues("failed").Inc()
			return nil, fmt.Errorf("create booking: %w", err)
		}
		return nil, s.transmission("create booking", err, sub)
	}

	metrics.BookingsSubmitted.WithLabelValues("created").Inc()
	s.logger.Info().
		Str("booking_id", b.ID).
		Str("hostel_id", b.HostelID).
		Str("student_id", b.StudentID).
		Str("room_type", rt.Key).
		Msg("Booking submitted")
	return b, nil
}

// ensureStudent creates the student's profile on first booking and keeps
// the name and phone current afterwards. Only students may book.
func (s *Service) ensureStudent(ctx context.Context, userID string, form Form) error {
	phone := DisplayPhone(form.Phone)

	p, err := s.store.GetProfileByUserID(ctx, userID)
	if err != nil {
		return s.transmission("load profile", err, Submission{StudentID: userID})
	}
	if p == nil {
		_, err = s.store.InsertProfile(ctx, models.ProfileInsert{
			UserID:      userID,
			FullName:    form.FullName,
			PhoneNumber: &phone,
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, store.ErrConstraint) {
			return s.transmission("create profile", err, Submission{StudentID: userID})
		}
		// created by a concurrent request
		p, err = s.store.GetProfileByUserID(ctx, userID)
		if err != nil {
			return s.transmission("load profile", err, Submission{StudentID: userID})
		}
		if p == nil {
			return fmt.Errorf("create profile %s: %w", userID, store.ErrConstraint)
		}
	}

	if p.Role != models.RoleStudent {
		metrics.BookingsSubmitted.WithLabelValues("forbidden").Inc()
		return ErrForbidden
	}

	var u models.ProfileUpdate
	if p.FullName != form.FullName {
		u.FullName = &form.FullName
	}
	if p.PhoneNumber == nil || *p.PhoneNumber != phone {
		u.PhoneNumber = &phone
	}
	if u.IsEmpty() {
		return nil
	}
	if _, err := s.store.UpdateProfile(ctx, userID, u); err != nil {
		return s.transmission("update profile", err, Submission{StudentID: userID})
	}
	return nil
}

// Transition moves a booking to status to on behalf of actor.
func (s *Service) Transition(ctx context.Context, bookingID string, to models.BookingStatus, actor *models.Profile) (*models.Booking, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	if !to.Valid() {
		return nil, models.ValidationErrors{"status": "must be one of: pending, confirmed, cancelled, completed"}
	}

	b, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, &TransmissionError{Op: "load booking", Err: err}
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	if err := s.authorize(ctx, b, actor); err != nil {
		return nil, err
	}
	if err := CheckTransition(b.Status, to, actor.Role); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateBookingStatus(ctx, b.ID, b.Status, to)
	if err != nil {
		s.logger.Error().Err(err).Str("booking_id", b.ID).Msg("Failed to update booking status")
		return nil, &TransmissionError{Op: "update booking", Err: err}
	}
	if updated == nil {
		// the booking moved on between the read and the write
		return nil, &TransitionError{From: b.Status, To: to}
	}

	metrics.BookingTransitions.WithLabelValues(string(b.Status), string(to)).Inc()
	s.logger.Info().
		Str("booking_id", b.ID).
		Str("from", string(b.Status)).
		Str("to", string(to)).
		Str("actor", actor.UserID).
		Msg("Booking status changed")
	return updated, nil
}

// authorize checks that actor is a party to b: the student who made it or
// the landlord of its hostel. Admins may act on any booking.
func (s *Service) authorize(ctx context.Context, b *models.Booking, actor *models.Profile) error {
	switch actor.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleStudent:
		if b.StudentID != actor.UserID {
			return ErrForbidden
		}
		return nil
	case models.RoleLandlord:
		h, err := s.store.GetHostel(ctx, b.HostelID)
		if err != nil {
			return &TransmissionError{Op: "load hostel", Err: err}
		}
		if h == nil || h.LandlordID != actor.UserID {
			return ErrForbidden
		}
		return nil
	}
	return ErrForbidden
}

// Get returns one booking if actor may see it.
func (s *Service) Get(ctx context.Context, bookingID string, actor *models.Profile) (*models.Booking, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	b, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, &TransmissionError{Op: "load booking", Err: err}
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	if err := s.authorize(ctx, b, actor); err != nil {
		return nil, err
	}
	return b, nil
}

// List returns the bookings visible to actor: a student's own, those of a
// landlord's hostels, or all of them for admins. status narrows the result
// when set.
func (s *Service) List(ctx context.Context, actor *models.Profile, status models.BookingStatus) ([]models.Booking, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	f := store.BookingFilter{Status: status, Limit: 500}
	switch actor.Role {
	case models.RoleStudent:
		f.StudentID = actor.UserID
	case models.RoleLandlord:
		f.LandlordID = actor.UserID
	case models.RoleAdmin:
	default:
		return nil, ErrForbidden
	}

	bookings, err := s.store.ListBookings(ctx, f)
	if err != nil {
		return nil, &TransmissionError{Op: "list bookings", Err: err}
	}
	return bookings, nil
}

func (s *Service) transmission(op string, err error, sub Submission) error {
	metrics.BookingsSubmitted.WithLabelValues("failed").Inc()
	s.logger.Error().
		Err(err).
		Str("op", op).
		Str("hostel_id", sub.HostelID).
		Str("student_id", sub.StudentID).
		Msg("Booking submission failed")
	return &TransmissionError{Op: op, Err: err}
}
