// Package listing implements the searchable hostel listing: free-text
// search, filter chips and the cards rendered for each result.
package listing

import (
	"context"
	"fmt"
	"strings"

	"github.com/meshackowase-commits/HOSTESserch/internal/metrics"
	"github.com/meshackowase-commits/HOSTESserch/internal/models"
	"github.com/meshackowase-commits/HOSTESserch/internal/store"
)

// Item is a hostel joined with its location, when it has one.
type Item struct {
	Hostel   models.Hostel
	Location *models.Location
}

// LocationLabel is the location name, falling back to the street address.
func (it *Item) LocationLabel() string {
	if it.Location != nil && strings.TrimSpace(it.Location.Name) != "" {
		return it.Location.Name
	}
	return it.Hostel.Address
}

// MatchesSearch reports whether the folded term occurs in the name, the
// location label or any amenity. An empty term matches everything. A term
// made only of punctuation folds to nothing, so it is matched
// case-insensitively as typed.
func (it *Item) MatchesSearch(term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	norm := Fold
	if Fold(term) == "" {
		norm = strings.ToLower
	}
	t := norm(term)
	if strings.Contains(norm(it.Hostel.Name), t) || strings.Contains(norm(it.LocationLabel()), t) {
		return true
	}
	for _, a := range it.Hostel.Amenities {
		if strings.Contains(norm(a), t) {
			return true
		}
	}
	return false
}

// Apply narrows items by term and filters, keeping their order. It never
// modifies items.
func Apply(items []Item, term string, f Filters) []Item {
	out := make([]Item, 0, len(items))
	for i := range items {
		if items[i].MatchesSearch(term) && f.Matches(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}

// Card is the summary rendered for one hostel in the listing.
type Card struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Price       string   `json:"price"`
	Period      string   `json:"period"`
	Distance    string   `json:"distance,omitempty"`
	Amenities   []string `json:"amenities"`
	Description string   `json:"description,omitempty"`
	RoomTypes   []string `json:"room_types"`
	Status      string   `json:"status"`
	Available   bool     `json:"available"`
	Image       string   `json:"image,omitempty"`
	Link        string   `json:"link"`
}

// Period is the billing period rents are quoted for.
const Period = "per semester"

// DetailPath returns the path of a hostel's detail page.
func DetailPath(id string) string {
	return "/hostel/" + id
}

// DistanceLabel formats the location's distance to campus, or "" when it
// is unknown.
func DistanceLabel(loc *models.Location) string {
	if loc == nil || loc.DistanceToUniversity == nil {
		return ""
	}
	return fmt.Sprintf("%skm from campus", formatKm(*loc.DistanceToUniversity))
}

func formatKm(km float64) string {
	s := fmt.Sprintf("%.1f", km)
	return strings.TrimSuffix(s, ".0")
}

// NewCard builds the card for it.
func NewCard(it *Item) Card {
	h := &it.Hostel
	c := Card{
		ID:        h.ID,
		Name:      h.Name,
		Location:  it.LocationLabel(),
		Price:     models.FormatKSh(h.RentAmount),
		Period:    Period,
		Distance:  DistanceLabel(it.Location),
		Amenities: h.Amenities,
		Status:    string(h.Status),
		Available: h.HasVacancy(),
		Link:      DetailPath(h.ID),
	}
	if h.Description != nil {
		c.Description = *h.Description
	}
	if len(h.Images) > 0 {
		c.Image = h.Images[0]
	}
	for _, rt := range models.RoomTypes(h) {
		if rt.Available > 0 {
			c.RoomTypes = append(c.RoomTypes, rt.Name)
		}
	}
	if c.RoomTypes == nil {
		c.RoomTypes = []string{}
	}
	return c
}

// Cards builds one card per item, in order.
func Cards(items []Item) []Card {
	out := make([]Card, len(items))
	for i := range items {
		out[i] = NewCard(&items[i])
	}
	return out
}

// Service loads listing items from the store.
type Service struct {
	store store.DataStore
}

// NewService creates a listing service over s.
func NewService(s store.DataStore) *Service {
	return &Service{store: s}
}

// Load fetches hostels, oldest first, and joins their locations. A zero
// f.Limit pages through every hostel.
func (s *Service) Load(ctx context.Context, f store.HostelFilter) ([]Item, error) {
	hostels, err := s.listHostels(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list hostels: %w", err)
	}
	locations, err := s.store.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}

	byID := make(map[string]*models.Location, len(locations))
	for i := range locations {
		byID[locations[i].ID] = &locations[i]
	}

	items := make([]Item, len(hostels))
	for i, h := range hostels {
		items[i] = Item{Hostel: h}
		if h.LocationID != nil {
			items[i].Location = byID[*h.LocationID]
		}
	}
	return items, nil
}

func (s *Service) listHostels(ctx context.Context, f store.HostelFilter) ([]models.Hostel, error) {
	if f.Limit > 0 {
		return s.store.ListHostels(ctx, f)
	}
	f.Limit = store.MaxListLimit
	var all []models.Hostel
	for {
		page, err := s.store.ListHostels(ctx, f)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < f.Limit {
			return all, nil
		}
		f.Offset += len(page)
	}
}

// Result is one evaluated listing view.
type Result struct {
	Query   string   `json:"q"`
	Filters []string `json:"filters"`
	Total   int      `json:"total"`
	Count   int      `json:"count"`
	Cards   []Card   `json:"hostels"`
}

// Search loads every hostel and applies the view's search and filters.
func (s *Service) Search(ctx context.Context, v View) (*Result, error) {
	items, err := s.Load(ctx, store.HostelFilter{})
	if err != nil {
		return nil, err
	}
	metrics.ListingSearches.Inc()

	matched := v.Results(items)
	return &Result{
		Query:   v.SearchTerm(),
		Filters: v.Filters().Values(),
		Total:   len(items),
		Count:   len(matched),
		Cards:   Cards(matched),
	}, nil
}
