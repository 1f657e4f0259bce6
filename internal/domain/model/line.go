package model

import "github.com/shopspring/decimal"

// Save projection field names.
const (
	FieldLocationID      = "location_id"
	FieldLocationDestID  = "location_dest_id"
	FieldLotID           = "lot_id"
	FieldLotName         = "lot_name"
	FieldPackageID       = "package_id"
	FieldResultPackageID = "result_package_id"
	FieldOwnerID         = "owner_id"
	FieldQtyDone         = "qty_done"

	// Create-only fields.
	FieldProductID = "product_id"
	FieldUoMID     = "product_uom_id"
	FieldPickingID = "picking_id"
	FieldVirtualID = "virtual_id"
)

// Line is one operation line of a transfer: a quantity of a product,
// optionally lot and package qualified, moving between two locations.
// Zero ids mean "not set".
type Line struct {
	VirtualID       string              `bson:"virtual_id" json:"virtual_id"`
	ID              int64               `bson:"_id" json:"id,omitempty"`
	PickingID       int64               `bson:"picking_id" json:"picking_id"`
	ProductID       int64               `bson:"product_id" json:"product_id"`
	UoMID           int64               `bson:"product_uom_id" json:"product_uom_id"`
	LotID           int64               `bson:"lot_id,omitempty" json:"lot_id,omitempty"`
	LotName         string              `bson:"lot_name,omitempty" json:"lot_name,omitempty"`
	PackageID       int64               `bson:"package_id,omitempty" json:"package_id,omitempty"`
	ResultPackageID int64               `bson:"result_package_id,omitempty" json:"result_package_id,omitempty"`
	OwnerID         int64               `bson:"owner_id,omitempty" json:"owner_id,omitempty"`
	LocationID      int64               `bson:"location_id" json:"location_id"`
	LocationDestID  int64               `bson:"location_dest_id" json:"location_dest_id"`
	QtyDone         decimal.Decimal     `bson:"qty_done" json:"qty_done"`
	QtyDemand       decimal.NullDecimal `bson:"qty_demand" json:"qty_demand"`
}

// HasDemand reports whether the line carries a reservation target.
func (l Line) HasDemand() bool {
	return l.QtyDemand.Valid
}

// IsComplete reports whether a line with demand has reached it.
// Lines without demand are never complete.
func (l Line) IsComplete() bool {
	return l.QtyDemand.Valid && l.QtyDone.GreaterThanOrEqual(l.QtyDemand.Decimal)
}

// HasLot reports whether the line carries a lot, existing or to be created.
func (l Line) HasLot() bool {
	return l.LotID != 0 || l.LotName != ""
}

// Values returns the line's save projection.
func (l Line) Values() LineValues {
	return LineValues{
		LocationID:      l.LocationID,
		LocationDestID:  l.LocationDestID,
		LotID:           l.LotID,
		LotName:         l.LotName,
		PackageID:       l.PackageID,
		ResultPackageID: l.ResultPackageID,
		OwnerID:         l.OwnerID,
		QtyDone:         l.QtyDone,
	}
}

// LineValues is the fixed set of line fields sent to the backing store.
type LineValues struct {
	LocationID      int64
	LocationDestID  int64
	LotID           int64
	LotName         string
	PackageID       int64
	ResultPackageID int64
	OwnerID         int64
	QtyDone         decimal.Decimal
}

// Equal compares two projections field by field, quantities by value.
func (v LineValues) Equal(o LineValues) bool {
	return len(v.Diff(o)) == 0
}

// Map returns every projected field.
func (v LineValues) Map() map[string]interface{} {
	return map[string]interface{}{
		FieldLocationID:      v.LocationID,
		FieldLocationDestID:  v.LocationDestID,
		FieldLotID:           v.LotID,
		FieldLotName:         v.LotName,
		FieldPackageID:       v.PackageID,
		FieldResultPackageID: v.ResultPackageID,
		FieldOwnerID:         v.OwnerID,
		FieldQtyDone:         v.QtyDone,
	}
}

// Diff returns the fields of v that differ from prev.
func (v LineValues) Diff(prev LineValues) map[string]interface{} {
	changed := make(map[string]interface{})
	diffID := func(field string, cur, old int64) {
		if cur != old {
			changed[field] = cur
		}
	}
	diffID(FieldLocationID, v.LocationID, prev.LocationID)
	diffID(FieldLocationDestID, v.LocationDestID, prev.LocationDestID)
	diffID(FieldLotID, v.LotID, prev.LotID)
	if v.LotName != prev.LotName {
		changed[FieldLotName] = v.LotName
	}
	diffID(FieldPackageID, v.PackageID, prev.PackageID)
	diffID(FieldResultPackageID, v.ResultPackageID, prev.ResultPackageID)
	diffID(FieldOwnerID, v.OwnerID, prev.OwnerID)
	if !v.QtyDone.Equal(prev.QtyDone) {
		changed[FieldQtyDone] = v.QtyDone
	}
	return changed
}
