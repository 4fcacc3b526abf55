package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshackowase-commits/HOSTESserch/internal/store"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	n, err := Seed(ctx, s, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	hostels, err := s.ListHostels(ctx, store.HostelFilter{})
	require.NoError(t, err)
	require.Len(t, hostels, 3)
	for _, h := range hostels {
		assert.Equal(t, LandlordID, h.LandlordID)
		require.NotNil(t, h.LocationID)
		assert.Equal(t, h.TotalRooms, h.RoomsAvailable)
	}

	locations, err := s.ListLocations(ctx)
	require.NoError(t, err)
	assert.Len(t, locations, 3)

	n, err = Seed(ctx, s, zerolog.Nop())
	require.NoError(t, err)
	assert.Zero(t, n)

	count, err := s.CountHostels(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}
