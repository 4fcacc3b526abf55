package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/meshackowase-commits/HOSTESserch/internal/metrics"
)

// statusWriter wraps http.ResponseWriter to capture status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

// Metrics returns middleware that records Prometheus metrics.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap response writer to capture status
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)

		metrics.HTTPRequestsTotal.WithLabelValues(
			r.Method, path, strconv.Itoa(wrapped.status),
		).Inc()

		metrics.HTTPRequestDuration.WithLabelValues(
			r.Method, path,
		).Observe(duration)
	})
}

// idPrefixes are the routes whose next path segment is an identifier.
var idPrefixes = []string{
	"/hostel/",
	"/api/hostels/",
	"/api/bookings/",
	"/api/profiles/",
	"/api/locations/",
	"/api/chat/rooms/",
}

// normalizePath replaces identifiers with :id to avoid high cardinality
// in metrics. /hostel/abc/book becomes /hostel/:id/book.
func normalizePath(path string) string {
	for _, prefix := range idPrefixes {
		rest, ok := strings.CutPrefix(path, prefix)
		if !ok || rest == "" {
			continue
		}
		id, tail, _ := strings.Cut(rest, "/")
		if strings.Contains(id, ".") {
			// a file such as export.xlsx, not an id
			return path
		}
		out := prefix + ":id"
		if tail != "" {
			out += "/" + tail
		}
		return out
	}
	return path
}
