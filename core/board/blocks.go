package board

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kvernberg/planboard/core/events"
	"github.com/kvernberg/planboard/core/model"
	"github.com/kvernberg/planboard/core/store"
)

// detachFromBlock extends the mutation with the block shrink caused by
// removing one member. A block whose membership reaches zero is deleted,
// never kept empty.
func (e *Engine) detachFromBlock(m *store.Mutation, bookingID, blockID string) {
	blk, ok := e.snap.Block(blockID)
	if !ok {
		return
	}
	remaining := blk.Without(bookingID)
	if len(remaining) == 0 {
		m.DeleteBlockIDs = append(m.DeleteBlockIDs, blk.ID)
		return
	}
	blk.BookingIDs = remaining
	m.Blocks = append(m.Blocks, blk)
}

// shrinkBlocks extends the mutation with the shrink or deletion of each
// block losing the listed members. The returned rows carry the surviving
// membership (empty for deleted blocks) for event publication.
func (e *Engine) shrinkBlocks(m *store.Mutation, removed map[string][]string) []model.Block {
	ids := make([]string, 0, len(removed))
	for id := range removed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var out []model.Block
	for _, id := range ids {
		blk, ok := e.snap.Block(id)
		if !ok {
			continue
		}
		drop := make(map[string]bool, len(removed[id]))
		for _, bid := range removed[id] {
			drop[bid] = true
		}
		var remaining []string
		for _, bid := range blk.BookingIDs {
			if !drop[bid] {
				remaining = append(remaining, bid)
			}
		}
		blk.BookingIDs = remaining
		if len(remaining) == 0 {
			m.DeleteBlockIDs = append(m.DeleteBlockIDs, blk.ID)
		} else {
			m.Blocks = append(m.Blocks, blk)
		}
		out = append(out, blk)
	}
	return out
}

// announceShrunk publishes the membership change for each block touched
// by shrinkBlocks.
func (e *Engine) announceShrunk(blocks []model.Block) {
	for _, blk := range blocks {
		if len(blk.BookingIDs) == 0 {
			e.publish(events.BlockChanged{BlockID: blk.ID, Op: events.BlockDissolved, Name: blk.Name})
		} else {
			e.publish(events.BlockChanged{BlockID: blk.ID, Op: events.BlockShrunk, Name: blk.Name, Members: blk.BookingIDs})
		}
	}
}

// RemoveFromBlock explicitly detaches a booking from its block. The
// block shrinks, or is deleted when the last member leaves.
func (e *Engine) RemoveFromBlock(ctx context.Context, bookingID string) error {
	b, ok := e.snap.Booking(bookingID)
	if !ok {
		return fmt.Errorf("remove from block: %w", store.ErrNotFound)
	}
	if b.BlockID == "" {
		return nil
	}
	blockID := b.BlockID
	blk, hadBlock := e.snap.Block(blockID)
	b.BlockID = ""
	m := store.Mutation{Bookings: []model.Booking{b}}
	e.detachFromBlock(&m, b.ID, blockID)
	if err := e.apply(ctx, m); err != nil {
		return fmt.Errorf("remove from block: %w", err)
	}
	if hadBlock {
		if remaining := blk.Without(b.ID); len(remaining) == 0 {
			e.publish(events.BlockChanged{BlockID: blockID, Op: events.BlockDissolved, Name: blk.Name})
		} else {
			e.publish(events.BlockChanged{BlockID: blockID, Op: events.BlockShrunk, Name: blk.Name, Members: remaining})
		}
	}
	e.recheckPending()
	return nil
}

// RenameBlock sets a new display name. A name that trims to empty is a
// no-op, keeping the previous label.
func (e *Engine) RenameBlock(ctx context.Context, blockID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	blk, ok := e.snap.Block(blockID)
	if !ok {
		return fmt.Errorf("rename block: %w", store.ErrNotFound)
	}
	if blk.Name == name {
		return nil
	}
	blk.Name = name
	if err := e.apply(ctx, store.Mutation{Blocks: []model.Block{blk}}); err != nil {
		return fmt.Errorf("rename block: %w", err)
	}
	e.publish(events.BlockChanged{BlockID: blk.ID, Op: events.BlockRenamed, Name: blk.Name, Members: blk.BookingIDs})
	return nil
}

// DissolveBlock deletes the block and detaches every member. The member
// bookings keep their assignments; only the grouping goes away.
func (e *Engine) DissolveBlock(ctx context.Context, blockID string) error {
	blk, ok := e.snap.Block(blockID)
	if !ok {
		return fmt.Errorf("dissolve block: %w", store.ErrNotFound)
	}
	m := store.Mutation{DeleteBlockIDs: []string{blk.ID}}
	for _, id := range blk.BookingIDs {
		b, ok := e.snap.Booking(id)
		if !ok {
			continue
		}
		b.BlockID = ""
		m.Bookings = append(m.Bookings, b)
	}
	if err := e.apply(ctx, m); err != nil {
		return fmt.Errorf("dissolve block: %w", err)
	}
	e.publish(events.BlockChanged{BlockID: blk.ID, Op: events.BlockDissolved, Name: blk.Name})
	e.recheckPending()
	return nil
}
