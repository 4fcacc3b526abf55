package listing

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/meshackowase-commits/HOSTESserch/internal/models"
)

// Category groups filter chips. Chips in the same category are OR'ed,
// categories are AND'ed.
type Category string

const (
	CategoryPrice    Category = "price"
	CategoryRoomType Category = "room_type"
	CategoryAmenity  Category = "amenity"
)

// Chip is one toggleable filter as shown above the listing.
type Chip struct {
	Value    string   `json:"value"`
	Label    string   `json:"label"`
	Category Category `json:"category"`
	match    func(it *Item) bool
}

func priceChip(value, label string, match func(rent float64) bool) Chip {
	return Chip{Value: value, Label: label, Category: CategoryPrice, match: func(it *Item) bool {
		return match(it.Hostel.RentAmount)
	}}
}

func roomChip(key, label string) Chip {
	return Chip{Value: key, Label: label, Category: CategoryRoomType, match: func(it *Item) bool {
		for _, rt := range models.RoomTypes(&it.Hostel) {
			if rt.Key == key {
				return rt.Available > 0
			}
		}
		return false
	}}
}

func amenityChip(value, label string) Chip {
	want := Fold(value)
	return Chip{Value: value, Label: label, Category: CategoryAmenity, match: func(it *Item) bool {
		for _, a := range it.Hostel.Amenities {
			if Fold(a) == want {
				return true
			}
		}
		return false
	}}
}

var chips = []Chip{
	priceChip("under-7000", "Under KSh 7,000", func(r float64) bool { return r < 7000 }),
	priceChip("7000-9000", "KSh 7,000 - 9,000", func(r float64) bool { return r >= 7000 && r <= 9000 }),
	priceChip("above-9000", "Above KSh 9,000", func(r float64) bool { return r > 9000 }),
	roomChip("single", "Single Room"),
	roomChip("double", "Double Room"),
	roomChip("shared", "Shared Room"),
	amenityChip("wifi", "Wi-Fi"),
	amenityChip("cctv", "CCTV"),
	amenityChip("water", "Water"),
	amenityChip("electricity", "Electricity"),
	amenityChip("kitchen", "Kitchen"),
}

// Chips returns the available filters in display order.
func Chips() []Chip {
	return slices.Clone(chips)
}

func lookupChip(value string) (Chip, bool) {
	for _, c := range chips {
		if c.Value == value {
			return c, true
		}
	}
	return Chip{}, false
}

// UnknownFilterError reports a filter value that is not a known chip.
type UnknownFilterError struct {
	Value string
}

func (e *UnknownFilterError) Error() string {
	return fmt.Sprintf("unknown filter %q", e.Value)
}

// Filters is a set of active chip values.
type Filters struct {
	active []string
}

// ParseFilters validates values and returns them as a set. Duplicates are
// collapsed and the chip display order is kept.
func ParseFilters(values ...string) (Filters, error) {
	var f Filters
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := lookupChip(v); !ok {
			return Filters{}, &UnknownFilterError{Value: v}
		}
		if !f.Has(v) {
			f.active = append(f.active, v)
		}
	}
	f.sort()
	return f, nil
}

func (f *Filters) sort() {
	order := func(v string) int {
		return slices.IndexFunc(chips, func(c Chip) bool { return c.Value == v })
	}
	slices.SortFunc(f.active, func(a, b string) int { return order(a) - order(b) })
}

// Has reports whether value is active.
func (f Filters) Has(value string) bool {
	return slices.Contains(f.active, value)
}

// Values returns the active chip values.
func (f Filters) Values() []string {
	return slices.Clone(f.active)
}

// Len returns the number of active chips.
func (f Filters) Len() int {
	return len(f.active)
}

// Toggle returns a copy of f with value switched on or off.
func (f Filters) Toggle(value string) (Filters, error) {
	if _, ok := lookupChip(value); !ok {
		return f, &UnknownFilterError{Value: value}
	}
	next := Filters{active: slices.Clone(f.active)}
	if i := slices.Index(next.active, value); i >= 0 {
		next.active = slices.Delete(next.active, i, i+1)
		return next, nil
	}
	next.active = append(next.active, value)
	next.sort()
	return next, nil
}

// Matches reports whether it passes every active category.
func (f Filters) Matches(it *Item) bool {
	byCategory := map[Category][]Chip{}
	for _, v := range f.active {
		c, _ := lookupChip(v)
		byCategory[c.Category] = append(byCategory[c.Category], c)
	}
	for _, group := range byCategory {
		if !slices.ContainsFunc(group, func(c Chip) bool { return c.match(it) }) {
			return false
		}
	}
	return true
}

// Fold lower-cases s and keeps only letters and digits, so "Wi-Fi",
// "wifi" and "WIFI" compare equal.
func Fold(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
