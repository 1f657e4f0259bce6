// Package model defines the core domain entities for the picking service.
package model

import "strconv"

// Kind identifies the type of a referenced record.
type Kind string

const (
	KindProduct     Kind = "product"
	KindPackaging   Kind = "packaging"
	KindUoM         Kind = "uom"
	KindLocation    Kind = "location"
	KindLot         Kind = "lot"
	KindPackage     Kind = "package"
	KindPackageType Kind = "package_type"
)

// Kinds lists every cacheable record kind in load order.
// Package types come before packages so the enrich pass can resolve them.
var Kinds = []Kind{
	KindUoM,
	KindProduct,
	KindPackaging,
	KindLocation,
	KindLot,
	KindPackageType,
	KindPackage,
}

// Key addresses a single record by kind and id.
type Key struct {
	Kind Kind
	ID   int64
}

// String returns the key as "kind:id".
func (k Key) String() string {
	return string(k.Kind) + ":" + strconv.FormatInt(k.ID, 10)
}

// Record is implemented by every record the entity cache can hold.
// Records are read-only snapshots: a changed record is a new value.
type Record interface {
	Key() Key
}

// Barcoded is implemented by records that can be found by scanning.
type Barcoded interface {
	Record
	BarcodeValue() string
}
