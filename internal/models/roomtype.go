package models

import (
	"math"
	"strings"
)

// RoomType is a named pricing and availability tier within a hostel. Tiers
// are derived from the hostel row and are never persisted.
type RoomType struct {
	Key       string  `json:"key"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Available int     `json:"available"`
}

type roomTier struct {
	key   string
	name  string
	price float64 // multiplier on rent_amount
	share float64 // share of rooms_available
}

var roomTiers = []roomTier{
	{"single", "Single Room", 1, 0.5},
	{"double", "Double Room", 0.75, 0.3},
	{"shared", "Shared Room (4 people)", 0.5625, 0.2},
}

// RoomTypeKeys lists the tier keys in display order.
func RoomTypeKeys() []string {
	keys := make([]string, len(roomTiers))
	for i, t := range roomTiers {
		keys[i] = t.key
	}
	return keys
}

// RoomTypes derives the tiers offered by h. Rooms are split between tiers
// by share, rounding down, with the remainder going to the single tier so
// the counts always add up to rooms_available.
func RoomTypes(h *Hostel) []RoomType {
	out := make([]RoomType, len(roomTiers))
	assigned := 0
	for i, t := range roomTiers {
		n := int(math.Floor(float64(h.RoomsAvailable) * t.share))
		assigned += n
		out[i] = RoomType{
			Key:       t.key,
			Name:      t.name,
			Price:     math.Round(h.RentAmount * t.price),
			Available: n,
		}
	}
	if rest := h.RoomsAvailable - assigned; rest > 0 {
		out[0].Available += rest
	}
	return out
}

// FindRoomType looks a tier up by key or display name, ignoring case.
func FindRoomType(h *Hostel, key string) (RoomType, bool) {
	key = strings.TrimSpace(key)
	for _, rt := range RoomTypes(h) {
		if strings.EqualFold(rt.Key, key) || strings.EqualFold(rt.Name, key) {
			return rt, true
		}
	}
	return RoomType{}, false
}
