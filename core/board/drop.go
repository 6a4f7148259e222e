package board

import (
	"context"
	"fmt"
	"time"

	"github.com/kvernberg/planboard/core/events"
	"github.com/kvernberg/planboard/core/metrics"
	"github.com/kvernberg/planboard/core/model"
	"github.com/kvernberg/planboard/core/store"
)

// DropTarget identifies where a booking bar was released: the unassigned
// tray, a vehicle lane or a driver lane.
type DropTarget struct {
	Kind       events.TargetKind
	ResourceID string
}

// UnassignedTarget is the tray drop target.
func UnassignedTarget() DropTarget {
	return DropTarget{Kind: events.TargetUnassigned}
}

// VehicleTarget is the drop target for one vehicle lane.
func VehicleTarget(vehicleID string) DropTarget {
	return DropTarget{Kind: events.TargetVehicle, ResourceID: vehicleID}
}

// DriverTarget is the drop target for one driver lane.
func DriverTarget(driverID string) DropTarget {
	return DropTarget{Kind: events.TargetDriver, ResourceID: driverID}
}

// priorState is the exact pre-drop state needed for reversion. prevBlock
// holds the block row as it was before the drop detached the booking, so
// declining restores membership too.
type priorState struct {
	assignment model.ResourceAssignment
	status     model.Status
	blockID    string
	prevBlock  *model.Block
}

// Drop applies a drag-and-drop reassignment. The assignment is applied
// optimistically; when it creates a cluster of two or more bookings on
// the destination resource the engine enters the overlap resolution
// workflow and the caller must settle it through ConfirmAddToBlock,
// ConfirmNewBlock or Decline.
//
// A drop onto an unknown or deactivated resource is a no-op. Dropping an
// unassigned booking back onto the tray is a no-op.
func (e *Engine) Drop(ctx context.Context, bookingID string, t DropTarget) error {
	started := time.Now()
	b, ok := e.snap.Booking(bookingID)
	if !ok {
		return fmt.Errorf("drop %s: %w", bookingID, store.ErrNotFound)
	}
	if !e.validTarget(t) {
		e.log.Warnf("drop %s onto stale target %s/%s ignored", bookingID, t.Kind, t.ResourceID)
		return nil
	}

	prior := priorState{assignment: b.Assignment, status: b.Status, blockID: b.BlockID}
	if b.BlockID != "" {
		if blk, ok := e.snap.Block(b.BlockID); ok {
			prev := blk
			prior.prevBlock = &prev
		}
	}

	next, changed := e.reassigned(b, t)
	if !changed {
		return nil
	}

	m := store.Mutation{Bookings: []model.Booking{next}}
	if next.BlockID == "" && b.BlockID != "" {
		e.detachFromBlock(&m, b.ID, b.BlockID)
	}
	if err := e.apply(ctx, m); err != nil {
		return fmt.Errorf("drop %s: %w", bookingID, err)
	}
	// A drop that lands while an earlier dialog is still open supersedes
	// it; the stale-cleanup rule dismisses the old one if its cluster
	// dissolved.
	e.recheckPending()
	e.publish(events.BookingMoved{
		BookingID:  b.ID,
		Target:     t.Kind,
		ResourceID: t.ResourceID,
		VehicleID:  next.Assignment.VehicleID,
		DriverID:   next.Assignment.DriverID,
	})

	if b.BlockID != "" && next.BlockID == "" && prior.prevBlock != nil {
		blk := *prior.prevBlock
		if remaining := blk.Without(b.ID); len(remaining) == 0 {
			e.publish(events.BlockChanged{BlockID: blk.ID, Op: events.BlockDissolved, Name: blk.Name})
		} else {
			e.publish(events.BlockChanged{BlockID: blk.ID, Op: events.BlockShrunk, Name: blk.Name, Members: remaining})
		}
	}

	overlap := false
	if t.Kind != events.TargetUnassigned {
		if cluster := e.clusterOf(b.ID, t); len(cluster) >= 2 {
			overlap = true
			e.enterPendingOverlap(b.ID, t, prior, cluster)
		}
	}
	if err := e.sink.RecordMove(metrics.Move{
		BookingID:  b.ID,
		Target:     string(t.Kind),
		ResourceID: t.ResourceID,
		Overlap:    overlap,
		Duration:   time.Since(started),
	}); err != nil {
		e.log.Errorf("record move: %v", err)
	}
	return nil
}

// reassigned computes the booking state after the drop. The second
// return is false when the drop changes nothing.
func (e *Engine) reassigned(b model.Booking, t DropTarget) (model.Booking, bool) {
	next := b
	switch t.Kind {
	case events.TargetUnassigned:
		if b.Assignment.Unassigned() {
			return b, false
		}
		next.Assignment = model.ResourceAssignment{}
		next.BlockID = ""
		if next.Status == model.StatusPlanned {
			next.Status = model.StatusBooked
		}
	case events.TargetVehicle:
		next.Assignment.VehicleID = t.ResourceID
		if next.Assignment.VehicleID != b.Assignment.VehicleID {
			// Block membership is lane scoped; a vehicle change detaches.
			next.BlockID = ""
		}
		if v, ok := e.snap.Vehicle(t.ResourceID); ok && next.Assignment.DriverID == "" {
			next.Assignment.DriverID = v.SoleDriver()
		}
		if next.Status == model.StatusBooked {
			next.Status = model.StatusPlanned
		}
	case events.TargetDriver:
		next.Assignment.DriverID = t.ResourceID
		if next.Assignment.VehicleID != "" && next.Status == model.StatusBooked {
			next.Status = model.StatusPlanned
		}
	}
	return next, next != b
}

// validTarget rejects drops onto unknown or deactivated resources.
func (e *Engine) validTarget(t DropTarget) bool {
	switch t.Kind {
	case events.TargetVehicle:
		v, ok := e.snap.Vehicle(t.ResourceID)
		return ok && v.Active
	case events.TargetDriver:
		d, ok := e.snap.Driver(t.ResourceID)
		return ok && d.Active
	case events.TargetUnassigned:
		return true
	default:
		return false
	}
}
