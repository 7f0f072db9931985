package timeline

import "github.com/google/uuid"

// IDGenerator produces identifiers for new tracks and media.
type IDGenerator func() string

// UUIDGenerator returns random version 4 UUIDs.
func UUIDGenerator() string {
	return uuid.NewString()
}
