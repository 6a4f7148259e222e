package events

// TargetKind names the lane kind a booking was dropped onto.
type TargetKind string

const (
	TargetUnassigned TargetKind = "unassigned"
	TargetVehicle    TargetKind = "vehicle"
	TargetDriver     TargetKind = "driver"
)

// BookingMoved is published when a reassignment is applied to the store.
type BookingMoved struct {
	BookingID  string
	Target     TargetKind
	ResourceID string
	VehicleID  string // resulting assignment
	DriverID   string
}

// OverlapDetected is published when a drop produces a cluster of two or
// more bookings on the destination resource.
type OverlapDetected struct {
	BookingID  string
	Target     TargetKind
	ResourceID string
	ClusterIDs []string
}

// ResolutionOutcome names the terminal state of an overlap dialog.
type ResolutionOutcome string

const (
	OutcomeAddedToBlock ResolutionOutcome = "added_to_block"
	OutcomeNewBlock     ResolutionOutcome = "new_block"
	OutcomeReverted     ResolutionOutcome = "reverted"
	OutcomeDismissed    ResolutionOutcome = "dismissed"
)

// ResolutionSettled is published when the overlap workflow returns to
// idle, including the silent stale-dialog dismissal.
type ResolutionSettled struct {
	BookingID string
	Outcome   ResolutionOutcome
	BlockID   string
}

// BlockOp names a block lifecycle operation.
type BlockOp string

const (
	BlockCreated   BlockOp = "created"
	BlockExtended  BlockOp = "extended"
	BlockShrunk    BlockOp = "shrunk"
	BlockRenamed   BlockOp = "renamed"
	BlockDissolved BlockOp = "dissolved"
)

// BlockChanged is published for every block lifecycle operation.
type BlockChanged struct {
	BlockID string
	Op      BlockOp
	Name    string
	Members []string
}
