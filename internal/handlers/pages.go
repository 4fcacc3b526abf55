package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/meshackowase-commits/HOSTESserch/internal/api/middleware"
	"github.com/meshackowase-commits/HOSTESserch/internal/booking"
	"github.com/meshackowase-commits/HOSTESserch/internal/ids"
	"github.com/meshackowase-commits/HOSTESserch/internal/listing"
	"github.com/meshackowase-commits/HOSTESserch/internal/models"
	"github.com/meshackowase-commits/HOSTESserch/internal/web"
)

const retryNotice = "We could not submit your booking just now. Your details are kept below, please try again."

// render writes an HTML page, falling back to a plain error if the
// template fails.
func (h *Handler) render(w http.ResponseWriter, status int, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.pages.Render(w, page, data); err != nil {
		h.logger.Error().Err(err).Str("page", page).Msg("failed to render page")
	}
}

// renderError shows err on the not found page with a matching status.
func (h *Handler) renderError(w http.ResponseWriter, err error) {
	status, _ := h.describe(err)
	data := web.NotFound{Title: "Something went wrong", Message: "Please try again in a moment."}
	switch status {
	case http.StatusNotFound:
		data = web.NotFound{
			Title:   "Hostel not found",
			Message: "The hostel you are looking for does not exist or is no longer listed.",
		}
	case http.StatusBadRequest:
		data = web.NotFound{Title: "Invalid request", Message: err.Error()}
	case http.StatusServiceUnavailable:
		data = web.NotFound{Title: "Temporarily unavailable", Message: "We could not load this page. Please try again."}
	}
	h.render(w, status, web.PageNotFound, data)
}

// LandingPage serves the home page with featured hostels and stats.
func (h *Handler) LandingPage(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats(r.Context())
	if err != nil {
		h.renderError(w, err)
		return
	}
	h.render(w, http.StatusOK, web.PageLanding, web.Landing{
		Title:    "Find the Perfect Hostel Near Chuka University",
		Featured: stats.Featured,
		Stats:    stats.Stats,
	})
}

// ListingPage serves the searchable hostel listing.
func (h *Handler) ListingPage(w http.ResponseWriter, r *http.Request) {
	v, err := listing.ViewFromQuery(r.URL.Query())
	if err != nil {
		h.renderError(w, err)
		return
	}
	res, err := h.listing.Search(r.Context(), v)
	if err != nil {
		h.renderError(w, storeErr("search hostels", err))
		return
	}
	h.render(w, http.StatusOK, web.PageListing, web.NewListing(v, res))
}

// HostelPage serves one hostel's detail and booking form.
func (h *Handler) HostelPage(w http.ResponseWriter, r *http.Request) {
	d, err := h.details.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.renderError(w, err)
		return
	}
	h.render(w, http.StatusOK, web.PageDetail, h.detailPage(d))
}

func (h *Handler) detailPage(d *booking.Detail) web.Detail {
	return web.Detail{
		Title:  d.Hostel.Name,
		Detail: d,
		Today:  models.DateOf(time.Now()).String(),
	}
}

// SubmitBookingPage handles the booking form. Field problems re-render the
// form with messages; a failed submission keeps the input and asks the
// student to retry.
func (h *Handler) SubmitBookingPage(w http.ResponseWriter, r *http.Request) {
	hostelID := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		h.renderError(w, models.ValidationErrors{"form": "could not be read"})
		return
	}
	form := booking.Form{
		RoomType:        r.PostForm.Get("room_type"),
		CheckInDate:     r.PostForm.Get("check_in_date"),
		FullName:        sanitizeName(r.PostForm.Get("full_name")),
		Phone:           r.PostForm.Get("phone"),
		AdmissionNumber: r.PostForm.Get("admission_number"),
		Notes:           r.PostForm.Get("notes"),
	}

	studentID := h.studentID(w, r)
	b, submitErr := h.bookings.Submit(r.Context(), booking.Submission{
		HostelID:  hostelID,
		StudentID: studentID,
		Form:      form,
	})
	if errors.Is(submitErr, booking.ErrHostelNotFound) {
		h.renderError(w, submitErr)
		return
	}

	var page web.Detail
	d, err := h.details.Get(r.Context(), hostelID)
	switch {
	case err == nil:
		page = h.detailPage(d)
	case booking.IsRetryable(err):
		page = web.Detail{
			Title:   "Book This Hostel",
			Detail:  &booking.Detail{Hostel: models.Hostel{ID: hostelID}},
			Today:   models.DateOf(time.Now()).String(),
			Offline: true,
		}
	default:
		h.renderError(w, err)
		return
	}
	page.Form = form

	status := http.StatusOK
	var verrs models.ValidationErrors
	switch {
	case submitErr == nil:
		page.Booked = b
		status = http.StatusCreated
	case errors.As(submitErr, &verrs):
		page.Errors = verrs
		status = http.StatusBadRequest
	case booking.IsRetryable(submitErr):
		page.Notice = retryNotice
		status = http.StatusServiceUnavailable
	case errors.Is(submitErr, booking.ErrUnavailable):
		page.Notice = "This hostel is not accepting bookings right now."
		status = http.StatusConflict
	case errors.Is(submitErr, booking.ErrForbidden):
		page.Notice = "Only student profiles can book hostels."
		status = http.StatusForbidden
	default:
		status, _ = h.describe(submitErr)
		page.Notice = retryNotice
	}
	h.render(w, status, web.PageDetail, page)
}

// studentID picks the id to book as: the resolved profile, the claimed id,
// or a fresh one remembered in a cookie so a retry books as the same
// student.
func (h *Handler) studentID(w http.ResponseWriter, r *http.Request) string {
	if p := middleware.GetProfileFromContext(r.Context()); p != nil {
		return p.UserID
	}
	if id := middleware.ClaimedProfileID(r); id != "" {
		return id
	}
	id := ids.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.ProfileCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// NotFoundPage serves unknown paths.
func (h *Handler) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusNotFound, web.PageNotFound, web.NotFound{
		Title:   "Page not found",
		Message: "The page you are looking for does not exist.",
	})
}
