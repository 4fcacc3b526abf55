package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meshackowase-commits/HOSTESserch/internal/api/middleware"
	"github.com/meshackowase-commits/HOSTESserch/internal/booking"
	"github.com/meshackowase-commits/HOSTESserch/internal/listing"
	"github.com/meshackowase-commits/HOSTESserch/internal/models"
)

// ListHostels searches the listing with the q and filter query parameters.
func (h *Handler) ListHostels(w http.ResponseWriter, r *http.Request) {
	v, err := listing.ViewFromQuery(r.URL.Query())
	if err != nil {
		h.Fail(w, err)
		return
	}
	res, err := h.listing.Search(r.Context(), v)
	if err != nil {
		h.Fail(w, storeErr("search hostels", err))
		return
	}
	h.JSON(w, http.StatusOK, res)
}

// ListFilters returns the filter chips the listing accepts.
func (h *Handler) ListFilters(w http.ResponseWriter, r *http.Request) {
	h.JSON(w, http.StatusOK, map[string]any{"filters": listing.Chips()})
}

// GetHostel returns the detail of one hostel.
func (h *Handler) GetHostel(w http.ResponseWriter, r *http.Request) {
	d, err := h.details.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.Fail(w, err)
		return
	}
	h.JSON(w, http.StatusOK, d)
}

// CreateHostel lists a new hostel. Landlords list their own hostels; admins
// may list one for any landlord.
func (h *Handler) CreateHostel(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetProfileFromContext(r.Context())

	var in models.HostelInsert
	if !h.decode(w, r, &in) {
		return
	}

	switch actor.Role {
	case models.RoleLandlord:
		if in.LandlordID == "" {
			in.LandlordID = actor.UserID
		}
		if in.LandlordID != actor.UserID {
			h.Fail(w, booking.ErrForbidden)
			return
		}
	case models.RoleAdmin:
	default:
		h.Fail(w, booking.ErrForbidden)
		return
	}
	in.Name = sanitizeName(in.Name)

	hostel, err := h.store.InsertHostel(r.Context(), in)
	if err != nil {
		h.Fail(w, storeErr("create hostel", err))
		return
	}
	h.logger.Info().Str("hostel_id", hostel.ID).Str("landlord_id", hostel.LandlordID).Msg("Hostel listed")
	h.JSON(w, http.StatusCreated, hostel)
}

// UpdateHostel applies a partial update. Only the hostel's landlord or an
// admin may change it, and only an admin may hand it to another landlord.
func (h *Handler) UpdateHostel(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetProfileFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var u models.HostelUpdate
	if !h.decode(w, r, &u) {
		return
	}
	if u.IsEmpty() {
		h.Error(w, http.StatusBadRequest, "no fields to update")
		return
	}

	current, err := h.store.GetHostel(r.Context(), id)
	if err != nil {
		h.Fail(w, storeErr("load hostel", err))
		return
	}
	if current == nil {
		h.Fail(w, booking.ErrHostelNotFound)
		return
	}
	if actor.Role != models.RoleAdmin {
		if current.LandlordID != actor.UserID || (u.LandlordID != nil && *u.LandlordID != actor.UserID) {
			h.Fail(w, booking.ErrForbidden)
			return
		}
	}
	if u.Name != nil {
		name := sanitizeName(*u.Name)
		u.Name = &name
	}

	hostel, err := h.store.UpdateHostel(r.Context(), id, u)
	if err != nil {
		h.Fail(w, storeErr("update hostel", err))
		return
	}
	if hostel == nil {
		h.Fail(w, booking.ErrHostelNotFound)
		return
	}
	h.JSON(w, http.StatusOK, hostel)
}
