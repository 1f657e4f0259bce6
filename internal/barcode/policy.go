package barcode

import (
	"github.com/guttosm/picking-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// LocationRole is what a scanned location means in the current context.
type LocationRole int

const (
	RoleSource LocationRole = iota
	RoleDestination
)

// LinePolicy supplies the transfer-kind specific behaviour of the engine.
type LinePolicy interface {
	// DefaultSource and DefaultDestination seed the location context.
	DefaultSource(p model.Picking) int64
	DefaultDestination(p model.Picking) int64
	// Demand returns the reservation target of a line.
	Demand(l model.Line) decimal.NullDecimal
	// IsComplete reports whether a line has reached its demand.
	IsComplete(l model.Line) bool
	// Less orders lines within a page.
	Less(a, b model.Line) bool
	// PageKey returns the page a line belongs to.
	PageKey(l model.Line) PageKey
	// LocationRole maps a location scan made without pending product scans.
	LocationRole(p model.Picking, sourceScanned bool) LocationRole
	// AllowsDestinationChange reports whether scanned lines may be retargeted
	// by a location scan.
	AllowsDestinationChange(p model.Picking) bool
	// SupportsPackages reports whether put-in-pack and package scans apply.
	SupportsPackages(p model.Picking) bool
}

// PolicyFor returns the policy matching the transfer kind.
func PolicyFor(p model.Picking, groupByPackage bool) LinePolicy {
	if p.Kind == model.PickingInventory {
		return InventoryPolicy{GroupByPackage: groupByPackage}
	}
	return PickingPolicy{GroupByPackage: groupByPackage}
}

// PickingPolicy drives receipts, deliveries and internal transfers.
type PickingPolicy struct {
	GroupByPackage bool
}

// DefaultSource implements LinePolicy.
func (PickingPolicy) DefaultSource(p model.Picking) int64 { return p.LocationID }

// DefaultDestination implements LinePolicy.
func (PickingPolicy) DefaultDestination(p model.Picking) int64 { return p.LocationDestID }

// Demand implements LinePolicy.
func (PickingPolicy) Demand(l model.Line) decimal.NullDecimal { return l.QtyDemand }

// IsComplete implements LinePolicy.
func (PickingPolicy) IsComplete(l model.Line) bool { return l.IsComplete() }

// Less implements LinePolicy: incomplete lines first.
func (PickingPolicy) Less(a, b model.Line) bool {
	return !a.IsComplete() && b.IsComplete()
}

// PageKey implements LinePolicy.
func (pp PickingPolicy) PageKey(l model.Line) PageKey {
	k := PageKey{LocationID: l.LocationID, LocationDestID: l.LocationDestID}
	if pp.GroupByPackage {
		k.Group = GroupByPackage(l)
	}
	return k
}

// LocationRole implements LinePolicy. Deliveries scan where they pick from,
// receipts where they put, internal transfers first the source then the
// destination.
func (PickingPolicy) LocationRole(p model.Picking, sourceScanned bool) LocationRole {
	switch p.Kind {
	case model.PickingIncoming:
		return RoleDestination
	case model.PickingInternal:
		if sourceScanned {
			return RoleDestination
		}
		return RoleSource
	default:
		return RoleSource
	}
}

// AllowsDestinationChange implements LinePolicy.
func (PickingPolicy) AllowsDestinationChange(p model.Picking) bool {
	return p.Kind != model.PickingOutgoing
}

// SupportsPackages implements LinePolicy.
func (PickingPolicy) SupportsPackages(p model.Picking) bool { return p.UsePackages }

// InventoryPolicy drives stock counts: lines only have a counted location.
type InventoryPolicy struct {
	GroupByPackage bool
}

// DefaultSource implements LinePolicy.
func (InventoryPolicy) DefaultSource(p model.Picking) int64 { return p.LocationID }

// DefaultDestination implements LinePolicy.
func (InventoryPolicy) DefaultDestination(model.Picking) int64 { return 0 }

// Demand implements LinePolicy. Counted quantities have no target.
func (InventoryPolicy) Demand(model.Line) decimal.NullDecimal { return decimal.NullDecimal{} }

// IsComplete implements LinePolicy. A count line is complete once counted.
func (InventoryPolicy) IsComplete(l model.Line) bool { return l.QtyDone.IsPositive() }

// Less implements LinePolicy: uncounted lines first.
func (ip InventoryPolicy) Less(a, b model.Line) bool {
	return !ip.IsComplete(a) && ip.IsComplete(b)
}

// PageKey implements LinePolicy.
func (ip InventoryPolicy) PageKey(l model.Line) PageKey {
	k := PageKey{LocationID: l.LocationID}
	if ip.GroupByPackage {
		k.Group = GroupByPackage(l)
	}
	return k
}

// LocationRole implements LinePolicy.
func (InventoryPolicy) LocationRole(model.Picking, bool) LocationRole { return RoleSource }

// AllowsDestinationChange implements LinePolicy.
func (InventoryPolicy) AllowsDestinationChange(model.Picking) bool { return false }

// SupportsPackages implements LinePolicy.
func (InventoryPolicy) SupportsPackages(p model.Picking) bool { return p.UsePackages }
