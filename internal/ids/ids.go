package ids

import (
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// NewID generates a time-ordered UUID v7 string for entity rows.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// NewMessageID generates a ULID for chat messages. ULIDs sort lexically by
// creation time, which the message pagination cursor relies on.
func NewMessageID() string {
	return ulid.Make().String()
}

// Valid reports whether s parses as a UUID.
func Valid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
