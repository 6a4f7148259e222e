package board

import "github.com/google/uuid"

// newBlockID mints a fresh block identifier, independent of booking ids.
func newBlockID() string { return uuid.NewString() }
