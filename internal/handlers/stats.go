package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/meshackowase-commits/HOSTESserch/internal/listing"
	"github.com/meshackowase-commits/HOSTESserch/internal/models"
	"github.com/meshackowase-commits/HOSTESserch/internal/store"
	"github.com/meshackowase-commits/HOSTESserch/internal/web"
)

// featuredCount is how many hostels the landing page features.
const featuredCount = 3

// StatsResponse represents the response from the stats endpoint.
type StatsResponse struct {
	web.Stats
	Landlords    int64          `json:"landlords"`
	LastActivity string         `json:"last_activity"`
	Featured     []listing.Card `json:"featured"`
}

// Stats returns platform statistics for the landing page.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	resp, err := h.stats(r.Context())
	if err != nil {
		h.Fail(w, err)
		return
	}
	h.JSON(w, http.StatusOK, resp)
}

func (h *Handler) stats(ctx context.Context) (*StatsResponse, error) {
	var resp StatsResponse
	var err error

	if resp.Hostels, err = h.store.CountHostels(ctx); err != nil {
		return nil, storeErr("count hostels", err)
	}
	if resp.Students, err = h.store.CountProfiles(ctx, models.RoleStudent); err != nil {
		return nil, storeErr("count students", err)
	}
	if resp.Landlords, err = h.store.CountProfiles(ctx, models.RoleLandlord); err != nil {
		return nil, storeErr("count landlords", err)
	}
	if resp.Bookings, err = h.store.CountBookings(ctx); err != nil {
		return nil, storeErr("count bookings", err)
	}

	// Most recent booking
	resp.LastActivity = "no activity yet"
	latest, err := h.store.ListBookings(ctx, store.BookingFilter{Limit: 1})
	if err != nil {
		return nil, storeErr("latest booking", err)
	}
	if len(latest) > 0 {
		resp.LastActivity = formatTimeAgo(latest[0].CreatedAt)
	}

	items, err := h.listing.Load(ctx, store.HostelFilter{Status: models.HostelAvailable, Limit: featuredCount})
	if err != nil {
		return nil, storeErr("featured hostels", err)
	}
	resp.Featured = listing.Cards(items)
	return &resp, nil
}

// formatTimeAgo formats a time as a human-readable "X ago" string.
func formatTimeAgo(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute") + " ago"
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour") + " ago"
	default:
		return plural(int(diff.Hours()/24), "day") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}
