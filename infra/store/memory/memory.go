// Package memory provides the in-memory reference implementation of the
// booking store contract. It is the store used by tests and by the board
// when no database is configured.
package memory

import (
	"context"
	"sync"

	"github.com/kvernberg/planboard/core/model"
	"github.com/kvernberg/planboard/core/store"
)

// Store holds the planning data behind a mutex. Load and Apply hand out
// deep copies so callers never share slices with the store.
type Store struct {
	mu   sync.Mutex
	snap store.Snapshot
}

// New creates a store seeded with the given snapshot.
func New(seed store.Snapshot) *Store {
	s := &Store{}
	s.snap = clone(seed)
	for i, b := range s.snap.Bookings {
		s.snap.Bookings[i].Window = b.Window.Normalized()
	}
	return s
}

// Load returns a copy of the current snapshot.
func (s *Store) Load(_ context.Context) (store.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.snap), nil
}

// Apply commits the mutation atomically and returns the new snapshot.
func (s *Store) Apply(_ context.Context, m store.Mutation) (store.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range m.Bookings {
		b.Window = b.Window.Normalized()
		upsertBooking(&s.snap, b)
	}
	for _, blk := range m.Blocks {
		upsertBlock(&s.snap, blk)
	}
	for _, id := range m.DeleteBlockIDs {
		deleteBlock(&s.snap, id)
	}
	return clone(s.snap), nil
}

func upsertBooking(snap *store.Snapshot, b model.Booking) {
	for i := range snap.Bookings {
		if snap.Bookings[i].ID == b.ID {
			snap.Bookings[i] = b
			return
		}
	}
	snap.Bookings = append(snap.Bookings, b)
}

func upsertBlock(snap *store.Snapshot, blk model.Block) {
	for i := range snap.Blocks {
		if snap.Blocks[i].ID == blk.ID {
			snap.Blocks[i] = blk
			return
		}
	}
	snap.Blocks = append(snap.Blocks, blk)
}

func deleteBlock(snap *store.Snapshot, id string) {
	for i := range snap.Blocks {
		if snap.Blocks[i].ID == id {
			snap.Blocks = append(snap.Blocks[:i], snap.Blocks[i+1:]...)
			return
		}
	}
}

func clone(s store.Snapshot) store.Snapshot {
	out := store.Snapshot{
		Bookings: make([]model.Booking, len(s.Bookings)),
		Blocks:   make([]model.Block, len(s.Blocks)),
		Vehicles: make([]model.Vehicle, len(s.Vehicles)),
		Drivers:  make([]model.Driver, len(s.Drivers)),
	}
	copy(out.Bookings, s.Bookings)
	for i, b := range s.Blocks {
		b.BookingIDs = append([]string(nil), b.BookingIDs...)
		out.Blocks[i] = b
	}
	for i, v := range s.Vehicles {
		v.AuthorizedDrivers = append([]string(nil), v.AuthorizedDrivers...)
		out.Vehicles[i] = v
	}
	copy(out.Drivers, s.Drivers)
	return out
}
