package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meshackowase-commits/HOSTESserch/internal/api/middleware"
	"github.com/meshackowase-commits/HOSTESserch/internal/booking"
	"github.com/meshackowase-commits/HOSTESserch/internal/models"
)

// ListLocations returns every location.
func (h *Handler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.store.ListLocations(r.Context())
	if err != nil {
		h.Fail(w, storeErr("list locations", err))
		return
	}
	h.JSON(w, http.StatusOK, map[string]any{"locations": locations, "total": len(locations)})
}

// CreateLocation adds a location. Landlords and admins only.
func (h *Handler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	if !canEditLocations(middleware.GetProfileFromContext(r.Context())) {
		h.Fail(w, booking.ErrForbidden)
		return
	}
	var in models.LocationInsert
	if !h.decode(w, r, &in) {
		return
	}
	in.Name = sanitizeName(in.Name)

	loc, err := h.store.InsertLocation(r.Context(), in)
	if err != nil {
		h.Fail(w, storeErr("create location", err))
		return
	}
	h.JSON(w, http.StatusCreated, loc)
}

// UpdateLocation applies a partial update. Landlords and admins only.
func (h *Handler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	if !canEditLocations(middleware.GetProfileFromContext(r.Context())) {
		h.Fail(w, booking.ErrForbidden)
		return
	}
	var u models.LocationUpdate
	if !h.decode(w, r, &u) {
		return
	}
	if u.IsEmpty() {
		h.Error(w, http.StatusBadRequest, "no fields to update")
		return
	}

	loc, err := h.store.UpdateLocation(r.Context(), chi.URLParam(r, "id"), u)
	if err != nil {
		h.Fail(w, storeErr("update location", err))
		return
	}
	if loc == nil {
		h.Fail(w, errNotFound)
		return
	}
	h.JSON(w, http.StatusOK, loc)
}

func canEditLocations(actor *models.Profile) bool {
	return actor != nil && (actor.Role == models.RoleLandlord || actor.Role == models.RoleAdmin)
}
