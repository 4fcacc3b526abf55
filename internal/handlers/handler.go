package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/meshackowase-commits/HOSTESserch/internal/booking"
	"github.com/meshackowase-commits/HOSTESserch/internal/listing"
	"github.com/meshackowase-commits/HOSTESserch/internal/models"
	"github.com/meshackowase-commits/HOSTESserch/internal/store"
	"github.com/meshackowase-commits/HOSTESserch/internal/web"
)

// errNotFound is returned by handlers for rows other than hostels and
// bookings that do not exist.
var errNotFound = errors.New("not found")

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	store    store.DataStore
	redis    *store.RedisStore
	listing  *listing.Service
	bookings *booking.Service
	details  *booking.DetailService
	pages    *web.Renderer
	logger   zerolog.Logger
}

// NewHandler creates a new Handler. redis may be nil when no cache is
// configured.
func NewHandler(s store.DataStore, redis *store.RedisStore, pages *web.Renderer, logger zerolog.Logger) *Handler {
	return &Handler{
		store:    s,
		redis:    redis,
		listing:  listing.NewService(s),
		bookings: booking.NewService(s, logger),
		details:  booking.NewDetailService(s),
		pages:    pages,
		logger:   logger,
	}
}

// ErrorResponse is the body of every JSON error.
type ErrorResponse struct {
	Error     string            `json:"error"`
	Fields    map[string]string `json:"fields,omitempty"`
	Retryable bool              `json:"retryable,omitempty"`
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, ErrorResponse{Error: message})
}

// Fail maps err to a status code and writes it as a JSON error.
func (h *Handler) Fail(w http.ResponseWriter, err error) {
	status, body := h.describe(err)
	h.JSON(w, status, body)
}

func (h *Handler) describe(err error) (int, ErrorResponse) {
	var verrs models.ValidationErrors
	var unknown *listing.UnknownFilterError
	switch {
	case errors.As(err, &verrs):
		return http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: verrs}
	case errors.As(err, &unknown):
		return http.StatusBadRequest, ErrorResponse{Error: unknown.Error()}
	case booking.IsRetryable(err):
		h.logger.Warn().Err(err).Msg("store unavailable")
		return http.StatusServiceUnavailable, ErrorResponse{Error: "service temporarily unavailable, please retry", Retryable: true}
	case errors.Is(err, booking.ErrHostelNotFound), errors.Is(err, booking.ErrBookingNotFound):
		return http.StatusNotFound, ErrorResponse{Error: err.Error()}
	case errors.Is(err, errNotFound):
		return http.StatusNotFound, ErrorResponse{Error: "not found"}
	case errors.Is(err, booking.ErrInvalidTransition), errors.Is(err, booking.ErrUnavailable):
		return http.StatusConflict, ErrorResponse{Error: err.Error()}
	case errors.Is(err, store.ErrConstraint):
		return http.StatusConflict, ErrorResponse{Error: "conflicts with existing data"}
	case errors.Is(err, booking.ErrForbidden):
		return http.StatusForbidden, ErrorResponse{Error: "forbidden"}
	}
	h.logger.Error().Err(err).Msg("unhandled error")
	return http.StatusInternalServerError, ErrorResponse{Error: "internal error"}
}

// storeErr classifies an error from a direct store call. Validation and
// constraint failures pass through; anything else means the store could
// not be reached.
func storeErr(op string, err error) error {
	var verrs models.ValidationErrors
	if errors.As(err, &verrs) || errors.Is(err, store.ErrConstraint) {
		return err
	}
	return &booking.TransmissionError{Op: op, Err: err}
}

// decode reads a JSON body into v, writing a 400 on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// queryInt parses a positive integer query parameter, clamped to max.
func queryInt(r *http.Request, key string, def, max int) int {
	n := def
	if s := r.URL.Query().Get(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			n = v
		}
	}
	if n > max {
		n = max
	}
	return n
}

// sanitizeName trims and limits name to 200 characters, removing control characters.
func sanitizeName(name string) string {
	name = strings.TrimSpace(name)

	// Remove control characters
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)

	if r := []rune(name); len(r) > 200 {
		name = string(r[:200])
	}
	return name
}
