package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSQLiteStore(t *testing.T) {
	testDataStore(t, func(t *testing.T) DataStore {
		s, err := NewSQLiteStore(context.Background(), ":memory:")
		require.NoError(t, err)
		t.Cleanup(s.Close)
		return s
	})
}
