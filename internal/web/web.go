// Package web renders the HTML pages: landing, listing, hostel detail with
// its booking form, and not found.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/meshackowase-commits/HOSTESserch/internal/booking"
	"github.com/meshackowase-commits/HOSTESserch/internal/listing"
	"github.com/meshackowase-commits/HOSTESserch/internal/models"
)

//go:embed templates/*.html
var files embed.FS

// Page names accepted by Render.
const (
	PageLanding  = "landing"
	PageListing  = "listing"
	PageDetail   = "detail"
	PageNotFound = "notfound"
)

var funcs = template.FuncMap{
	"ksh":   models.FormatKSh,
	"join":  strings.Join,
	"lower": strings.ToLower,
}

// Renderer holds the parsed page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page against the shared layout.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: map[string]*template.Template{}}
	for _, page := range []string{PageLanding, PageListing, PageDetail, PageNotFound} {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// Render executes page with data into w. The page is rendered to a buffer
// first so a template error never leaves a half-written response.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Stats are the platform counts shown on the landing page.
type Stats struct {
	Hostels  int64 `json:"hostels"`
	Students int64 `json:"students"`
	Bookings int64 `json:"bookings"`
}

// Landing is the data for the landing page.
type Landing struct {
	Title    string
	Featured []listing.Card
	Stats    Stats
}

// ChipLink is one filter chip with its toggle link.
type ChipLink struct {
	listing.Chip
	Active bool
	URL    string
}

// Listing is the data for the hostel listing page.
type Listing struct {
	Title  string
	Result *listing.Result
	Chips  []ChipLink
	Clear  string
}

// NewListing lays out the chips of v around its result.
func NewListing(v listing.View, res *listing.Result) Listing {
	l := Listing{Title: "Browse Hostels", Result: res}
	for _, c := range listing.Chips() {
		l.Chips = append(l.Chips, ChipLink{
			Chip:   c,
			Active: v.Filters().Has(c.Value),
			URL:    v.ToggleURL(c.Value),
		})
	}
	cleared := v
	cleared.ClearFilters()
	cleared.SetSearchTerm("")
	l.Clear = cleared.URL()
	return l
}

// Detail is the data for the hostel page and its booking form.
type Detail struct {
	Title   string
	Detail  *booking.Detail
	Form    booking.Form
	Errors  models.ValidationErrors
	// Notice is shown above the form: a retry prompt after a transmission
	// failure, or why the hostel cannot be booked.
	Notice  string
	Booked  *models.Booking
	Today   string
	// Offline is set when the hostel could not be loaded. Only the form
	// is shown, filled with what the student entered.
	Offline bool
}

// NotFound is the data for the not found page.
type NotFound struct {
	Title   string
	Message string
}
