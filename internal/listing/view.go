package listing

import (
	"net/url"
	"strings"
)

// View is the listing page state: the search term and active filters.
// It round-trips through the URL query as q and repeated filter values.
type View struct {
	term    string
	filters Filters
}

// SetSearchTerm replaces the search term.
func (v *View) SetSearchTerm(term string) {
	v.term = strings.TrimSpace(term)
}

// SearchTerm returns the current search term.
func (v *View) SearchTerm() string {
	return v.term
}

// ToggleFilter switches a filter chip on or off.
func (v *View) ToggleFilter(value string) error {
	next, err := v.filters.Toggle(value)
	if err != nil {
		return err
	}
	v.filters = next
	return nil
}

// ClearFilters switches every chip off.
func (v *View) ClearFilters() {
	v.filters = Filters{}
}

// Filters returns the active filters.
func (v *View) Filters() Filters {
	return v.filters
}

// Results applies the view to items.
func (v *View) Results(items []Item) []Item {
	return Apply(items, v.term, v.filters)
}

// Query encodes the view as URL query parameters.
func (v *View) Query() url.Values {
	q := url.Values{}
	if v.term != "" {
		q.Set("q", v.term)
	}
	for _, f := range v.filters.Values() {
		q.Add("filter", f)
	}
	return q
}

// URL returns the listing path for the view.
func (v *View) URL() string {
	if enc := v.Query().Encode(); enc != "" {
		return "/hostels?" + enc
	}
	return "/hostels"
}

// ToggleURL returns the listing path with value toggled, for chip links.
func (v *View) ToggleURL(value string) string {
	next := *v
	if err := next.ToggleFilter(value); err != nil {
		return v.URL()
	}
	return next.URL()
}

// ViewFromQuery rebuilds a view from URL query parameters. Unknown
// filter values are rejected.
func ViewFromQuery(q url.Values) (View, error) {
	f, err := ParseFilters(q["filter"]...)
	if err != nil {
		return View{}, err
	}
	v := View{filters: f}
	v.SetSearchTerm(q.Get("q"))
	return v, nil
}
