package model

import "github.com/shopspring/decimal"

// Location is a physical or virtual stock location.
type Location struct {
	ID           int64  `bson:"_id" json:"id"`
	Name         string `bson:"name" json:"name"`
	CompleteName string `bson:"complete_name" json:"complete_name"`
	Barcode      string `bson:"barcode,omitempty" json:"barcode,omitempty"`
	// ParentPath lists ancestor ids as "1/7/12/".
	ParentPath string `bson:"parent_path,omitempty" json:"parent_path,omitempty"`
}

// Key implements Record.
func (l Location) Key() Key { return Key{Kind: KindLocation, ID: l.ID} }

// BarcodeValue implements Barcoded.
func (l Location) BarcodeValue() string { return l.Barcode }

// Lot is a lot or serial number of a given product.
type Lot struct {
	ID        int64  `bson:"_id" json:"id"`
	Name      string `bson:"name" json:"name"`
	ProductID int64  `bson:"product_id" json:"product_id"`
}

// Key implements Record.
func (l Lot) Key() Key { return Key{Kind: KindLot, ID: l.ID} }

// BarcodeValue implements Barcoded.
func (l Lot) BarcodeValue() string { return l.Name }

// PackageType describes a kind of container (pallet, box).
type PackageType struct {
	ID      int64  `bson:"_id" json:"id"`
	Name    string `bson:"name" json:"name"`
	Barcode string `bson:"barcode,omitempty" json:"barcode,omitempty"`
}

// Key implements Record.
func (t PackageType) Key() Key { return Key{Kind: KindPackageType, ID: t.ID} }

// BarcodeValue implements Barcoded.
func (t PackageType) BarcodeValue() string { return t.Barcode }

// Package is a physical container holding quants.
// Type is only populated on enriched snapshots and is never stored.
type Package struct {
	ID            int64       `bson:"_id" json:"id"`
	Name          string      `bson:"name" json:"name"`
	PackageTypeID int64       `bson:"package_type_id,omitempty" json:"package_type_id,omitempty"`
	LocationID    int64       `bson:"location_id,omitempty" json:"location_id,omitempty"`
	Type          PackageType `bson:"-" json:"package_type"`
}

// Key implements Record.
func (p Package) Key() Key { return Key{Kind: KindPackage, ID: p.ID} }

// BarcodeValue implements Barcoded.
func (p Package) BarcodeValue() string { return p.Name }

// WithType returns a copy of the package carrying its resolved type.
func (p Package) WithType(t PackageType) Package {
	p.Type = t
	return p
}

// Quant is a quantity of a product (optionally lot, package and owner
// qualified) sitting in a location.
type Quant struct {
	ID         int64           `bson:"_id" json:"id"`
	ProductID  int64           `bson:"product_id" json:"product_id"`
	LotID      int64           `bson:"lot_id,omitempty" json:"lot_id,omitempty"`
	PackageID  int64           `bson:"package_id,omitempty" json:"package_id,omitempty"`
	OwnerID    int64           `bson:"owner_id,omitempty" json:"owner_id,omitempty"`
	LocationID int64           `bson:"location_id" json:"location_id"`
	Quantity   decimal.Decimal `bson:"quantity" json:"quantity"`
}
