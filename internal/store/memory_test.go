package store

import "testing"

func TestMemoryStore(t *testing.T) {
	testDataStore(t, func(t *testing.T) DataStore {
		return NewMemoryStore()
	})
}
