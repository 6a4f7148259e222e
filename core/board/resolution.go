package board

import (
	"context"
	"errors"
	"fmt"

	"github.com/kvernberg/planboard/core/events"
	"github.com/kvernberg/planboard/core/metrics"
	"github.com/kvernberg/planboard/core/model"
	"github.com/kvernberg/planboard/core/store"
)

// ErrNoPendingOverlap is returned when a resolution method is called
// while the workflow is idle.
var ErrNoPendingOverlap = errors.New("board: no pending overlap")

// Resolution is the state of the overlap resolution workflow. While
// Active, the drop that triggered it has already been applied
// optimistically and must be settled by one of the three outcomes. The
// cluster is re-evaluated on every snapshot change; if it shrinks below
// two members the dialog dismisses itself.
type Resolution struct {
	Active     bool
	BookingID  string
	Target     DropTarget
	ClusterIDs []string

	// OfferBlockID is set when the other cluster members share exactly
	// one existing block: the dialog offers attaching the dropped
	// booking to it. Otherwise the dialog offers creating a new block
	// from the whole cluster.
	OfferBlockID   string
	OfferBlockName string

	prior priorState
}

// Pending returns the current resolution state; the second return is
// false while the workflow is idle.
func (e *Engine) Pending() (Resolution, bool) {
	return e.res, e.res.Active
}

func (e *Engine) enterPendingOverlap(bookingID string, t DropTarget, prior priorState, cluster []string) {
	// A newer drop supersedes an open dialog. The earlier optimistic
	// assignment stands; only the dialog is dismissed, same as the
	// stale-cluster cleanup.
	if e.res.Active {
		superseded := e.res
		e.res = Resolution{}
		e.publish(events.ResolutionSettled{
			BookingID: superseded.BookingID,
			Outcome:   events.OutcomeDismissed,
		})
		e.log.Debugf("overlap dialog for %s dismissed: superseded", superseded.BookingID)
	}
	e.res = Resolution{
		Active:     true,
		BookingID:  bookingID,
		Target:     t,
		ClusterIDs: cluster,
		prior:      prior,
	}
	e.refreshOffer()
	e.publish(events.OverlapDetected{
		BookingID:  bookingID,
		Target:     t.Kind,
		ResourceID: t.ResourceID,
		ClusterIDs: cluster,
	})
	e.log.Infof("overlap on %s/%s: cluster of %d", t.Kind, t.ResourceID, len(cluster))
}

// refreshOffer recomputes which outcome is offered from the current
// cluster membership.
func (e *Engine) refreshOffer() {
	e.res.OfferBlockID = ""
	e.res.OfferBlockName = ""
	var common string
	for _, id := range e.res.ClusterIDs {
		if id == e.res.BookingID {
			continue
		}
		b, ok := e.snap.Booking(id)
		if !ok || b.BlockID == "" {
			continue
		}
		if common == "" {
			common = b.BlockID
		} else if common != b.BlockID {
			return // several distinct blocks: offer a new one instead
		}
	}
	if common == "" {
		return
	}
	if blk, ok := e.snap.Block(common); ok {
		e.res.OfferBlockID = blk.ID
		e.res.OfferBlockName = blk.Name
	}
}

// recheckPending re-evaluates the pending dialog after any snapshot or
// window change. A cluster that dissolved underneath the dialog (the
// booking moved elsewhere, a member was dragged away) dismisses it
// silently; this is cleanup, not an error.
func (e *Engine) recheckPending() {
	if !e.res.Active {
		return
	}
	cluster := e.clusterOf(e.res.BookingID, e.res.Target)
	if len(cluster) < 2 {
		settled := e.res
		e.res = Resolution{}
		e.publish(events.ResolutionSettled{
			BookingID: settled.BookingID,
			Outcome:   events.OutcomeDismissed,
		})
		e.log.Debugf("overlap dialog for %s dismissed: cluster dissolved", settled.BookingID)
		return
	}
	e.res.ClusterIDs = cluster
	e.refreshOffer()
}

// ConfirmAddToBlock settles the dialog by attaching the dropped booking
// to the offered existing block. Only the dropped booking is attached;
// cluster members outside the block stay untouched.
func (e *Engine) ConfirmAddToBlock(ctx context.Context) error {
	if !e.res.Active {
		return ErrNoPendingOverlap
	}
	if e.res.OfferBlockID == "" {
		return fmt.Errorf("confirm add: no existing block offered")
	}
	blk, ok := e.snap.Block(e.res.OfferBlockID)
	if !ok {
		return fmt.Errorf("confirm add: %w", store.ErrNotFound)
	}
	b, ok := e.snap.Booking(e.res.BookingID)
	if !ok {
		return fmt.Errorf("confirm add: %w", store.ErrNotFound)
	}
	prior := b.BlockID
	b.BlockID = blk.ID
	if !blk.Contains(b.ID) {
		blk.BookingIDs = append(blk.BookingIDs, b.ID)
	}
	m := store.Mutation{
		Bookings: []model.Booking{b},
		Blocks:   []model.Block{blk},
	}
	// A booking that kept its blockID through the drop (driver-lane
	// drops do) leaves its old block here; the old row must shrink or
	// the membership list goes stale.
	var detached []model.Block
	if prior != "" && prior != blk.ID {
		detached = e.shrinkBlocks(&m, map[string][]string{prior: {b.ID}})
	}
	if err := e.apply(ctx, m); err != nil {
		return fmt.Errorf("confirm add: %w", err)
	}
	e.settle(events.OutcomeAddedToBlock, blk.ID)
	e.publish(events.BlockChanged{BlockID: blk.ID, Op: events.BlockExtended, Name: blk.Name, Members: blk.BookingIDs})
	e.announceShrunk(detached)
	return nil
}

// ConfirmNewBlock settles the dialog by creating a named block whose
// membership is the entire current cluster. A blank name gets the
// default label.
func (e *Engine) ConfirmNewBlock(ctx context.Context, name string) error {
	if !e.res.Active {
		return ErrNoPendingOverlap
	}
	blk := model.Block{
		ID:   e.newID(),
		Name: model.NormalizeBlockName(name),
	}
	var members []model.Booking
	removed := make(map[string][]string)
	for _, id := range e.res.ClusterIDs {
		b, ok := e.snap.Booking(id)
		if !ok {
			continue
		}
		if b.BlockID != "" && b.BlockID != blk.ID {
			removed[b.BlockID] = append(removed[b.BlockID], b.ID)
		}
		b.BlockID = blk.ID
		blk.BookingIDs = append(blk.BookingIDs, b.ID)
		members = append(members, b)
	}
	m := store.Mutation{Bookings: members, Blocks: []model.Block{blk}}
	// Members pulled out of existing blocks shrink those blocks in the
	// same mutation, keeping membership lists consistent.
	detached := e.shrinkBlocks(&m, removed)
	if err := e.apply(ctx, m); err != nil {
		return fmt.Errorf("confirm new block: %w", err)
	}
	e.settle(events.OutcomeNewBlock, blk.ID)
	e.publish(events.BlockChanged{BlockID: blk.ID, Op: events.BlockCreated, Name: blk.Name, Members: blk.BookingIDs})
	e.announceShrunk(detached)
	return nil
}

// Decline settles the dialog by reverting the drop: the dropped booking
// returns to its exact pre-drop assignment, status and block membership.
func (e *Engine) Decline(ctx context.Context) error {
	if !e.res.Active {
		return ErrNoPendingOverlap
	}
	b, ok := e.snap.Booking(e.res.BookingID)
	if !ok {
		return fmt.Errorf("decline: %w", store.ErrNotFound)
	}
	prior := e.res.prior
	b.Assignment = prior.assignment
	b.Status = prior.status
	b.BlockID = prior.blockID
	m := store.Mutation{Bookings: []model.Booking{b}}
	if prior.prevBlock != nil {
		m.Blocks = []model.Block{*prior.prevBlock}
	}
	if err := e.apply(ctx, m); err != nil {
		return fmt.Errorf("decline: %w", err)
	}
	e.settle(events.OutcomeReverted, "")
	return nil
}

// settle returns the workflow to idle and records the outcome.
func (e *Engine) settle(outcome events.ResolutionOutcome, blockID string) {
	settled := e.res
	e.res = Resolution{}
	e.publish(events.ResolutionSettled{BookingID: settled.BookingID, Outcome: outcome, BlockID: blockID})
	if err := e.sink.RecordResolution(metrics.Resolution{
		BookingID: settled.BookingID,
		Outcome:   string(outcome),
		BlockID:   blockID,
	}); err != nil {
		e.log.Errorf("record resolution: %v", err)
	}
}
