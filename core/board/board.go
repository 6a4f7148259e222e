// Package board implements the interactive schedule engine: the
// drag-and-drop reassignment protocol, the overlap resolution workflow
// and the block lifecycle. All derived state (clusters, lanes) is
// recomputed in full from the current snapshot on every change; input
// sizes are bounded by fleet size and a five day window, so there is no
// incremental bookkeeping.
package board

import (
	"context"

	"github.com/kvernberg/planboard/core/events"
	"github.com/kvernberg/planboard/core/grid"
	"github.com/kvernberg/planboard/core/logger"
	"github.com/kvernberg/planboard/core/metrics"
	"github.com/kvernberg/planboard/core/model"
	"github.com/kvernberg/planboard/core/schedule"
	"github.com/kvernberg/planboard/core/store"
	"github.com/kvernberg/planboard/internal/eventbus"
)

// Engine drives the schedule board over one booking store. It is single
// threaded by design: every operation runs synchronously on the caller's
// goroutine and ends with the engine holding the store's last returned
// snapshot.
type Engine struct {
	store store.Store
	snap  store.Snapshot
	rng   grid.DayRange
	res   Resolution
	log   logger.Logger
	bus   eventbus.EventBus
	sink  metrics.MetricsSink
	newID func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithBus attaches an event bus receiving schedule events.
func WithBus(bus eventbus.EventBus) Option {
	return func(e *Engine) { e.bus = bus }
}

// WithMetrics attaches a metrics sink.
func WithMetrics(sink metrics.MetricsSink) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithIDGenerator overrides block id generation, used by tests.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) { e.newID = gen }
}

// New loads the initial snapshot and returns a ready engine.
func New(ctx context.Context, st store.Store, rng grid.DayRange, log logger.Logger, opts ...Option) (*Engine, error) {
	snap, err := st.Load(ctx)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		store: st,
		snap:  snap,
		rng:   rng,
		log:   log,
		sink:  metrics.NopSink{},
		newID: newBlockID,
	}
	if e.log == nil {
		e.log = nopLogger{}
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Snapshot returns the engine's current view of the planning data.
func (e *Engine) Snapshot() store.Snapshot { return e.snap }

// Range returns the displayed day range.
func (e *Engine) Range() grid.DayRange { return e.rng }

// SetRange changes the displayed day range and re-evaluates any pending
// overlap dialog against the new window.
func (e *Engine) SetRange(rng grid.DayRange) {
	e.rng = rng
	e.recheckPending()
}

// Refresh reloads the snapshot from the store, picking up external
// changes, and re-evaluates any pending overlap dialog.
func (e *Engine) Refresh(ctx context.Context) error {
	snap, err := e.store.Load(ctx)
	if err != nil {
		return err
	}
	e.snap = snap
	e.recheckPending()
	return nil
}

// VehicleLane derives the packed render lane for one vehicle.
func (e *Engine) VehicleLane(vehicleID string) schedule.Lane {
	return e.lane(schedule.ForVehicle(e.snap.Bookings, vehicleID))
}

// DriverLane derives the packed render lane for one driver.
func (e *Engine) DriverLane(driverID string) schedule.Lane {
	return e.lane(schedule.ForDriver(e.snap.Bookings, driverID))
}

// UnassignedLane derives the packed render lane for the unassigned tray.
func (e *Engine) UnassignedLane() schedule.Lane {
	return e.lane(schedule.Unassigned(e.snap.Bookings))
}

func (e *Engine) lane(bookings []model.Booking) schedule.Lane {
	return schedule.BuildLane(bookings, schedule.BlockIndex(e.snap.Blocks), e.rng.Days())
}

// apply submits one atomic mutation and adopts the resulting snapshot.
// On failure the engine keeps its previous snapshot; reconciliation is
// the caller's concern, not a rollback performed here.
func (e *Engine) apply(ctx context.Context, m store.Mutation) error {
	snap, err := e.store.Apply(ctx, m)
	if err != nil {
		return err
	}
	e.snap = snap
	return nil
}

func (e *Engine) publish(ev eventbus.Event) {
	if e.bus != nil {
		e.bus.Publish(ev)
	}
}

// resourceBookings returns the non-cancelled bookings on the lane the
// target points at.
func (e *Engine) resourceBookings(t DropTarget) []model.Booking {
	switch t.Kind {
	case events.TargetVehicle:
		return schedule.ForVehicle(e.snap.Bookings, t.ResourceID)
	case events.TargetDriver:
		return schedule.ForDriver(e.snap.Bookings, t.ResourceID)
	default:
		return schedule.Unassigned(e.snap.Bookings)
	}
}

// clusterOf returns the ids of the cluster containing the booking on the
// target lane within the displayed window, or nil when the booking is no
// longer part of one.
func (e *Engine) clusterOf(bookingID string, t DropTarget) []string {
	placed := schedule.Place(e.resourceBookings(t), e.rng.Days())
	for _, c := range schedule.Clusters(placed) {
		if !c.Contains(bookingID) {
			continue
		}
		ids := make([]string, 0, c.Size())
		for _, p := range c.Bookings {
			ids = append(ids, p.Booking.ID)
		}
		return ids
	}
	return nil
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
