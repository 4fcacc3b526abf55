package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meshackowase-commits/HOSTESserch/internal/api/middleware"
	"github.com/meshackowase-commits/HOSTESserch/internal/booking"
	"github.com/meshackowase-commits/HOSTESserch/internal/models"
)

// CreateProfile registers a profile. Anyone may register as a student or
// landlord; only admins may create admins.
func (h *Handler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetProfileFromContext(r.Context())

	var in models.ProfileInsert
	if !h.decode(w, r, &in) {
		return
	}
	if in.Role != nil && *in.Role == models.RoleAdmin && (actor == nil || actor.Role != models.RoleAdmin) {
		h.Fail(w, booking.ErrForbidden)
		return
	}
	in.FullName = sanitizeName(in.FullName)
	if in.PhoneNumber != nil && booking.ValidPhone(*in.PhoneNumber) {
		phone := booking.DisplayPhone(*in.PhoneNumber)
		in.PhoneNumber = &phone
	}

	p, err := h.store.InsertProfile(r.Context(), in)
	if err != nil {
		h.Fail(w, storeErr("create profile", err))
		return
	}
	h.logger.Info().Str("user_id", p.UserID).Str("role", string(p.Role)).Msg("Profile registered")
	h.JSON(w, http.StatusCreated, p)
}

// GetProfile returns a profile to its owner or an admin.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if !canManageProfile(middleware.GetProfileFromContext(r.Context()), userID) {
		h.Fail(w, booking.ErrForbidden)
		return
	}

	p, err := h.store.GetProfileByUserID(r.Context(), userID)
	if err != nil {
		h.Fail(w, storeErr("load profile", err))
		return
	}
	if p == nil {
		h.Fail(w, errNotFound)
		return
	}
	h.JSON(w, http.StatusOK, p)
}

// UpdateProfile applies a partial update. Only admins may change roles.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetProfileFromContext(r.Context())
	userID := chi.URLParam(r, "userID")
	if !canManageProfile(actor, userID) {
		h.Fail(w, booking.ErrForbidden)
		return
	}

	var u models.ProfileUpdate
	if !h.decode(w, r, &u) {
		return
	}
	if u.IsEmpty() {
		h.Error(w, http.StatusBadRequest, "no fields to update")
		return
	}
	if u.Role != nil && actor.Role != models.RoleAdmin {
		h.Fail(w, booking.ErrForbidden)
		return
	}
	if u.FullName != nil {
		name := sanitizeName(*u.FullName)
		u.FullName = &name
	}

	p, err := h.store.UpdateProfile(r.Context(), userID, u)
	if err != nil {
		h.Fail(w, storeErr("update profile", err))
		return
	}
	if p == nil {
		h.Fail(w, errNotFound)
		return
	}
	h.JSON(w, http.StatusOK, p)
}

func canManageProfile(actor *models.Profile, userID string) bool {
	return actor != nil && (actor.UserID == userID || actor.Role == models.RoleAdmin)
}
