// Package store defines the engine's narrow contract with the booking
// store that owns persistence. The engine only ever reads immutable
// snapshots and submits atomic replacement mutations; it never mutates
// shared state in place.
package store

import (
	"context"
	"errors"

	"github.com/kvernberg/planboard/core/model"
)

// ErrNotFound is returned when a referenced booking or block is unknown.
var ErrNotFound = errors.New("store: not found")

// Snapshot is one consistent view of the planning data. Slices are owned
// by the receiver; implementations hand out copies.
type Snapshot struct {
	Bookings []model.Booking
	Blocks   []model.Block
	Vehicles []model.Vehicle
	Drivers  []model.Driver
}

// Booking returns the booking with the given id.
func (s Snapshot) Booking(id string) (model.Booking, bool) {
	for _, b := range s.Bookings {
		if b.ID == id {
			return b, true
		}
	}
	return model.Booking{}, false
}

// Block returns the block with the given id.
func (s Snapshot) Block(id string) (model.Block, bool) {
	for _, b := range s.Blocks {
		if b.ID == id {
			return b, true
		}
	}
	return model.Block{}, false
}

// Vehicle returns the vehicle with the given id.
func (s Snapshot) Vehicle(id string) (model.Vehicle, bool) {
	for _, v := range s.Vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return model.Vehicle{}, false
}

// Driver returns the driver with the given id.
func (s Snapshot) Driver(id string) (model.Driver, bool) {
	for _, d := range s.Drivers {
		if d.ID == id {
			return d, true
		}
	}
	return model.Driver{}, false
}

// Mutation is one atomic replacement of the affected bookings and
// blocks. Bookings and blocks are upserted by id; DeleteBlockIDs removes
// blocks whose membership reached zero.
type Mutation struct {
	Bookings       []model.Booking
	Blocks         []model.Block
	DeleteBlockIDs []string
}

// Empty reports whether the mutation changes nothing.
func (m Mutation) Empty() bool {
	return len(m.Bookings) == 0 && len(m.Blocks) == 0 && len(m.DeleteBlockIDs) == 0
}

// Store is the persistence boundary of the engine. Apply either commits
// the whole mutation and returns the resulting snapshot, or commits
// nothing and returns an error; there are no partial writes.
type Store interface {
	Load(ctx context.Context) (Snapshot, error)
	Apply(ctx context.Context, m Mutation) (Snapshot, error)
}
