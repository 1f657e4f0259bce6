package model

// PickingKind is the direction of a transfer.
type PickingKind string

const (
	PickingIncoming PickingKind = "incoming"
	PickingOutgoing PickingKind = "outgoing"
	PickingInternal PickingKind = "internal"
	// PickingInventory is a stock count: lines have a location but no destination.
	PickingInventory PickingKind = "inventory"
)

// PickingState is the lifecycle state of a transfer.
type PickingState string

const (
	StateDraft    PickingState = "draft"
	StateAssigned PickingState = "assigned"
	StateDone     PickingState = "done"
	StateCancel   PickingState = "cancel"
)

// Picking is a warehouse transfer processed by scanning.
type Picking struct {
	ID             int64        `bson:"_id" json:"id"`
	Name           string       `bson:"name" json:"name"`
	Kind           PickingKind  `bson:"kind" json:"kind"`
	State          PickingState `bson:"state" json:"state"`
	LocationID     int64        `bson:"location_id" json:"location_id"`
	LocationDestID int64        `bson:"location_dest_id" json:"location_dest_id"`

	UsePackages             bool `bson:"use_packages" json:"use_packages"`
	UseCreateLots           bool `bson:"use_create_lots" json:"use_create_lots"`
	UseExistingLots         bool `bson:"use_existing_lots" json:"use_existing_lots"`
	PromptPackageType       bool `bson:"prompt_package_type" json:"prompt_package_type"`
	RestrictScanDestination bool `bson:"restrict_scan_destination" json:"restrict_scan_destination"`
}

// IsClosed reports whether the transfer can no longer be edited.
func (p Picking) IsClosed() bool {
	return p.State == StateDone || p.State == StateCancel
}
