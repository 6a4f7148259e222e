package model

import "strings"

// DefaultBlockName is applied when a block is created with a blank name.
const DefaultBlockName = "Untitled run"

// Block is a persistent, user-named grouping of bookings that share one
// resource and overlapping time. Unlike clusters, blocks survive across
// render cycles and reassignments until explicitly dissolved.
type Block struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	BookingIDs []string `json:"booking_ids"`
}

// Contains reports whether the booking is a member of the block.
func (b Block) Contains(bookingID string) bool {
	for _, id := range b.BookingIDs {
		if id == bookingID {
			return true
		}
	}
	return false
}

// Without returns the membership list with the booking removed.
func (b Block) Without(bookingID string) []string {
	out := make([]string, 0, len(b.BookingIDs))
	for _, id := range b.BookingIDs {
		if id != bookingID {
			out = append(out, id)
		}
	}
	return out
}

// NormalizeBlockName trims the name and substitutes the default for a
// blank result.
func NormalizeBlockName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultBlockName
	}
	return name
}
