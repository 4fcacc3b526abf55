package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/meshackowase-commits/HOSTESserch/internal/booking"
	"github.com/meshackowase-commits/HOSTESserch/internal/listing"
	"github.com/meshackowase-commits/HOSTESserch/internal/models"
	"github.com/meshackowase-commits/HOSTESserch/internal/store"
)

func TestDescribe(t *testing.T) {
	h := &Handler{logger: zerolog.Nop()}

	tests := []struct {
		name      string
		err       error
		status    int
		retryable bool
	}{
		{"validation", models.ValidationErrors{"phone": "is required"}, http.StatusBadRequest, false},
		{"unknown filter", &listing.UnknownFilterError{Value: "bedsitter"}, http.StatusBadRequest, false},
		{"transmission", &booking.TransmissionError{Op: "insert booking", Err: errors.New("timeout")}, http.StatusServiceUnavailable, true},
		{"hostel missing", booking.ErrHostelNotFound, http.StatusNotFound, false},
		{"booking missing", fmt.Errorf("load: %w", booking.ErrBookingNotFound), http.StatusNotFound, false},
		{"not found", errNotFound, http.StatusNotFound, false},
		{"transition", &booking.TransitionError{From: models.BookingCompleted, To: models.BookingPending}, http.StatusConflict, false},
		{"unavailable", booking.ErrUnavailable, http.StatusConflict, false},
		{"constraint", fmt.Errorf("insert: %w", store.ErrConstraint), http.StatusConflict, false},
		{"forbidden", booking.ErrForbidden, http.StatusForbidden, false},
		{"other", errors.New("boom"), http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := h.describe(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.retryable, resp.Retryable)
		})
	}
}

func TestStoreErr(t *testing.T) {
	verrs := models.ValidationErrors{"name": "is required"}
	assert.Equal(t, error(verrs), storeErr("insert", verrs))

	constraint := fmt.Errorf("dup: %w", store.ErrConstraint)
	assert.ErrorIs(t, storeErr("insert", constraint), store.ErrConstraint)
	assert.False(t, booking.IsRetryable(storeErr("insert", constraint)))

	assert.True(t, booking.IsRetryable(storeErr("insert", errors.New("connection refused"))))
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "Jane Wanjiku", sanitizeName("  Jane Wanjiku \n"))
	assert.Len(t, []rune(sanitizeName(strings.Repeat("ä", 300))), 200)
}

func TestFormatTimeAgo(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "just now", formatTimeAgo(now))
	assert.Equal(t, "1 minute ago", formatTimeAgo(now.Add(-90*time.Second)))
	assert.Equal(t, "3 hours ago", formatTimeAgo(now.Add(-3*time.Hour-time.Minute)))
	assert.Equal(t, "2 days ago", formatTimeAgo(now.Add(-49*time.Hour)))
}
