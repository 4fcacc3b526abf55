package ids

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDIsTimeOrdered(t *testing.T) {
	a := NewID()
	b := NewID()
	assert.True(t, Valid(a))
	assert.True(t, Valid(b))
	assert.NotEqual(t, a, b)
	assert.Less(t, a, b)
}

func TestNewMessageID(t *testing.T) {
	id := NewMessageID()
	_, err := ulid.Parse(id)
	require.NoError(t, err)
	assert.False(t, Valid("not-a-uuid"))
}
