package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/meshackowase-commits/HOSTESserch/internal/api/middleware"
	"github.com/meshackowase-commits/HOSTESserch/internal/booking"
	"github.com/meshackowase-commits/HOSTESserch/internal/export"
	"github.com/meshackowase-commits/HOSTESserch/internal/metrics"
	"github.com/meshackowase-commits/HOSTESserch/internal/models"
)

// BookingListResponse represents the bookings list response.
type BookingListResponse struct {
	Bookings []models.Booking `json:"bookings"`
	Total    int              `json:"total"`
}

// StatusRequest asks for a booking status change.
type StatusRequest struct {
	Status models.BookingStatus `json:"status"`
}

// CreateBooking submits a booking form for a hostel as the calling student.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetProfileFromContext(r.Context())

	var form booking.Form
	if !h.decode(w, r, &form) {
		return
	}
	form.FullName = sanitizeName(form.FullName)

	b, err := h.bookings.Submit(r.Context(), booking.Submission{
		HostelID:  chi.URLParam(r, "id"),
		StudentID: actor.UserID,
		Form:      form,
	})
	if err != nil {
		h.Fail(w, err)
		return
	}
	h.JSON(w, http.StatusCreated, b)
}

// ListBookings lists the bookings visible to the caller, optionally by status.
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	status, ok := h.statusParam(w, r)
	if !ok {
		return
	}
	bookings, err := h.bookings.List(r.Context(), middleware.GetProfileFromContext(r.Context()), status)
	if err != nil {
		h.Fail(w, err)
		return
	}
	h.JSON(w, http.StatusOK, BookingListResponse{Bookings: bookings, Total: len(bookings)})
}

// GetBooking returns one booking the caller is a party to.
func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.bookings.Get(r.Context(), chi.URLParam(r, "id"), middleware.GetProfileFromContext(r.Context()))
	if err != nil {
		h.Fail(w, err)
		return
	}
	h.JSON(w, http.StatusOK, b)
}

// UpdateBookingStatus moves a booking along its lifecycle.
func (h *Handler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if !h.decode(w, r, &req) {
		return
	}
	b, err := h.bookings.Transition(r.Context(), chi.URLParam(r, "id"), req.Status, middleware.GetProfileFromContext(r.Context()))
	if err != nil {
		h.Fail(w, err)
		return
	}
	h.JSON(w, http.StatusOK, b)
}

// ExportBookings downloads the caller's bookings as a spreadsheet.
// Students have nothing to export.
func (h *Handler) ExportBookings(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetProfileFromContext(r.Context())
	if actor.Role == models.RoleStudent {
		h.Fail(w, booking.ErrForbidden)
		return
	}
	status, ok := h.statusParam(w, r)
	if !ok {
		return
	}

	bookings, err := h.bookings.List(r.Context(), actor, status)
	if err != nil {
		h.Fail(w, err)
		return
	}
	rows, err := export.Resolve(r.Context(), h.store, bookings)
	if err != nil {
		h.Fail(w, storeErr("resolve bookings", err))
		return
	}
	data, err := export.BookingsXLSX(rows)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to build bookings export")
		h.Error(w, http.StatusInternalServerError, "failed to build export")
		return
	}
	metrics.BookingExports.Inc()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handler) statusParam(w http.ResponseWriter, r *http.Request) (models.BookingStatus, bool) {
	status := models.BookingStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		h.Fail(w, models.ValidationErrors{"status": "must be one of: pending, confirmed, cancelled, completed"})
		return "", false
	}
	return status, true
}
