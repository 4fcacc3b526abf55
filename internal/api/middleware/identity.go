package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/meshackowase-commits/HOSTESserch/internal/models"
)

type contextKey string

const ProfileContextKey contextKey = "profile"

// Where callers name the profile they act as. The value is a
// profiles.user_id; there is no sign-in.
const (
	ProfileHeader = "X-Profile-ID"
	ProfileCookie = "profile_id"
)

// ProfileLookup resolves a user id to its profile, returning nil, nil when
// there is none.
type ProfileLookup interface {
	GetProfileByUserID(ctx context.Context, userID string) (*models.Profile, error)
}

// Identity resolves the caller's profile into the request context.
type Identity struct {
	profiles ProfileLookup
	logger   zerolog.Logger
}

// NewIdentity creates the identity middleware.
func NewIdentity(profiles ProfileLookup, logger zerolog.Logger) *Identity {
	return &Identity{profiles: profiles, logger: logger}
}

// profileIDFromRequest returns the claimed user id, header first.
func profileIDFromRequest(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(ProfileHeader)); id != "" {
		return id
	}
	if c, err := r.Cookie(ProfileCookie); err == nil {
		return strings.TrimSpace(c.Value)
	}
	return ""
}

// ClaimedProfileID returns the user id the caller claims, whether or not a
// profile exists for it yet.
func ClaimedProfileID(r *http.Request) string {
	return profileIDFromRequest(r)
}

// Resolve loads the claimed profile, if any, into the context. API
// requests naming an unknown profile are rejected with 401; pages carry on
// anonymously since a student's profile is only created by their first
// booking.
func (m *Identity) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := profileIDFromRequest(r)
		if id == "" {
			next.ServeHTTP(w, r)
			return
		}

		p, err := m.profiles.GetProfileByUserID(r.Context(), id)
		if err != nil {
			m.logger.Error().Err(err).Str("profile", id).Msg("failed to resolve profile")
			jsonError(w, http.StatusServiceUnavailable, "profile lookup failed")
			return
		}
		if p == nil {
			if isPage(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			jsonError(w, http.StatusUnauthorized, "unknown profile")
			return
		}

		ctx := context.WithValue(r.Context(), ProfileContextKey, p)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireProfile rejects requests without a resolved profile.
func RequireProfile(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetProfileFromContext(r.Context()) == nil {
			jsonError(w, http.StatusUnauthorized, "missing "+ProfileHeader+" header")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func jsonError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// GetProfileFromContext retrieves the caller's profile from the request context.
func GetProfileFromContext(ctx context.Context) *models.Profile {
	p, ok := ctx.Value(ProfileContextKey).(*models.Profile)
	if !ok {
		return nil
	}
	return p
}

// WithProfile returns a copy of ctx carrying p.
func WithProfile(ctx context.Context, p *models.Profile) context.Context {
	return context.WithValue(ctx, ProfileContextKey, p)
}
