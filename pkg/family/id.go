package family

import "github.com/google/uuid"

// NewID returns a fresh random member identifier.
//
// Only members get random IDs. Junction and edge identifiers in the layout
// package are derived from member IDs so that repeated layouts diff cleanly.
func NewID() string {
	return uuid.NewString()
}
