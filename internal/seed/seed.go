// Package seed loads the demo hostels shown on a fresh install.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/meshackowase-commits/HOSTESserch/internal/models"
	"github.com/meshackowase-commits/HOSTESserch/internal/store"
)

// LandlordID owns every demo hostel.
const LandlordID = "demo-landlord"

type demoHostel struct {
	name        string
	description string
	address     string
	rent        float64
	rooms       int
	amenities   []string
	email       string
	phone       string

	place    string
	distance float64
	lat, lng float64
}

var demo = []demoHostel{
	{
		name:        "Chuka View Hostel",
		description: "Modern hostel with excellent facilities and a welcoming environment for students. Located just minutes from Chuka University campus with 24/7 security.",
		address:     "123 University Road, Chuka",
		rent:        8000,
		rooms:       24,
		amenities:   []string{"Wi-Fi", "CCTV", "Water", "Electricity"},
		email:       "bookings@chukaview.com",
		phone:       "+254 712 345 678",
		place:       "University Road",
		distance:    0.5,
		lat:         -0.3365,
		lng:         37.6490,
	},
	{
		name:        "Student Paradise",
		description: "Safe and comfortable accommodation for ladies",
		address:     "Ndagani, Chuka",
		rent:        6500,
		rooms:       18,
		amenities:   []string{"Wi-Fi", "Water", "Kitchen"},
		email:       "hello@studentparadise.co.ke",
		phone:       "+254 722 100 200",
		place:       "Ndagani",
		distance:    1.2,
		lat:         -0.3290,
		lng:         37.6551,
	},
	{
		name:        "Campus Lodge",
		description: "Premium accommodation very close to campus",
		address:     "Campus Gate, Chuka",
		rent:        9500,
		rooms:       12,
		amenities:   []string{"Wi-Fi", "CCTV", "Water", "Electricity", "Kitchen"},
		email:       "stay@campuslodge.co.ke",
		phone:       "+254 733 300 400",
		place:       "Campus Gate",
		distance:    0.3,
		lat:         -0.3342,
		lng:         37.6478,
	},
}

// Seed inserts the demo landlord, locations and hostels. It does nothing
// when any hostel already exists and returns the number of hostels added.
func Seed(ctx context.Context, s store.DataStore, logger zerolog.Logger) (int, error) {
	n, err := s.CountHostels(ctx)
	if err != nil {
		return 0, fmt.Errorf("count hostels: %w", err)
	}
	if n > 0 {
		logger.Debug().Int64("hostels", n).Msg("Demo data skipped, hostels already listed")
		return 0, nil
	}

	if err := ensureLandlord(ctx, s); err != nil {
		return 0, err
	}

	for _, d := range demo {
		loc, err := s.InsertLocation(ctx, models.LocationInsert{
			Name:                 d.place,
			Latitude:             &d.lat,
			Longitude:            &d.lng,
			DistanceToUniversity: &d.distance,
		})
		if err != nil {
			return 0, fmt.Errorf("insert location %q: %w", d.place, err)
		}

		_, err = s.InsertHostel(ctx, models.HostelInsert{
			Name:         d.name,
			Address:      d.address,
			Description:  &d.description,
			LandlordID:   LandlordID,
			LocationID:   &loc.ID,
			RentAmount:   d.rent,
			TotalRooms:   d.rooms,
			Amenities:    d.amenities,
			ContactEmail: &d.email,
			ContactPhone: &d.phone,
		})
		if err != nil {
			return 0, fmt.Errorf("insert hostel %q: %w", d.name, err)
		}
	}

	logger.Info().Int("hostels", len(demo)).Msg("Demo data seeded")
	return len(demo), nil
}

func ensureLandlord(ctx context.Context, s store.DataStore) error {
	p, err := s.GetProfileByUserID(ctx, LandlordID)
	if err != nil {
		return fmt.Errorf("load demo landlord: %w", err)
	}
	if p != nil {
		return nil
	}
	role := models.RoleLandlord
	phone := "+254 712 345 678"
	_, err = s.InsertProfile(ctx, models.ProfileInsert{
		UserID:      LandlordID,
		FullName:    "Demo Landlord",
		Role:        &role,
		PhoneNumber: &phone,
	})
	if err != nil && !errors.Is(err, store.ErrConstraint) {
		return fmt.Errorf("insert demo landlord: %w", err)
	}
	return nil
}
