// Package events defines the schedule related events emitted on the
// event bus.
//
// Available event types:
//   - BookingMoved: a drag-and-drop reassignment was applied
//   - OverlapDetected: a drop produced a cluster of two or more bookings
//   - ResolutionSettled: the overlap dialog reached a terminal outcome
//   - BlockChanged: a block was created, renamed, shrunk or dissolved
package events
