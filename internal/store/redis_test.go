package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshackowase-commits/HOSTESserch/internal/models"
)

// countingStore records how often hostel lookups reach the backing store.
type countingStore struct {
	DataStore
	gets int
}

func (c *countingStore) GetHostel(ctx context.Context, id string) (*models.Hostel, error) {
	c.gets++
	return c.DataStore.GetHostel(ctx, id)
}

func setupCachedStore(t *testing.T) (*miniredis.Miniredis, *countingStore, *CachedStore) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	backing := &countingStore{DataStore: NewMemoryStore()}
	seedProfiles(t, backing)
	cached := NewCachedStore(backing, NewRedisStoreFromClient(client), time.Minute, zerolog.Nop())
	return mr, backing, cached
}

func TestCachedStore_ReadThrough(t *testing.T) {
	mr, backing, s := setupCachedStore(t)
	ctx := context.Background()

	h, err := s.InsertHostel(ctx, models.HostelInsert{
		Name: "Chuka View Hostel", Address: "123 University Road", LandlordID: "landlord-1",
		RentAmount: 8000, TotalRooms: 10, Amenities: []string{"Wi-Fi"},
	})
	require.NoError(t, err)

	first, err := s.GetHostel(ctx, h.ID)
	require.NoError(t, err)
	second, err := s.GetHostel(ctx, h.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, backing.gets)
	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, []string{"Wi-Fi"}, second.Amenities)
	assert.True(t, mr.Exists(hostelKey(h.ID)))

	ttl := mr.TTL(hostelKey(h.ID))
	assert.Equal(t, time.Minute, ttl)
}

func TestCachedStore_UpdateInvalidates(t *testing.T) {
	mr, backing, s := setupCachedStore(t)
	ctx := context.Background()

	h, err := s.InsertHostel(ctx, models.HostelInsert{
		Name: "Campus Lodge", Address: "Campus Road", LandlordID: "landlord-1",
		RentAmount: 9500, TotalRooms: 8,
	})
	require.NoError(t, err)
	_, err = s.GetHostel(ctx, h.ID)
	require.NoError(t, err)

	rent := 9000.0
	_, err = s.UpdateHostel(ctx, h.ID, models.HostelUpdate{RentAmount: &rent})
	require.NoError(t, err)
	assert.False(t, mr.Exists(hostelKey(h.ID)))

	got, err := s.GetHostel(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, 9000.0, got.RentAmount)
	assert.Equal(t, 2, backing.gets)
}

func TestCachedStore_MissingHostelNotCached(t *testing.T) {
	mr, _, s := setupCachedStore(t)

	h, err := s.GetHostel(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, h)
	assert.False(t, mr.Exists(hostelKey("missing")))
}

func TestCachedStore_FallsThroughWhenRedisDown(t *testing.T) {
	mr, backing, s := setupCachedStore(t)
	ctx := context.Background()

	h, err := s.InsertHostel(ctx, models.HostelInsert{
		Name: "Student Paradise", Address: "Ndagani", LandlordID: "landlord-1",
		RentAmount: 6500, TotalRooms: 6,
	})
	require.NoError(t, err)

	mr.Close()
	got, err := s.GetHostel(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, "Student Paradise", got.Name)
	assert.Equal(t, 1, backing.gets)
}
