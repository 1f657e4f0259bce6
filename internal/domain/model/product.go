package model

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrIncompatibleUoM is returned when converting between units of different categories.
var ErrIncompatibleUoM = errors.New("units of measure belong to different categories")

// Tracking describes how a product is traced through the warehouse.
type Tracking string

const (
	TrackingNone   Tracking = "none"
	TrackingLot    Tracking = "lot"
	TrackingSerial Tracking = "serial"
)

// Product is a storable item that can be scanned by barcode.
type Product struct {
	ID          int64    `bson:"_id" json:"id"`
	Name        string   `bson:"name" json:"name"`
	DefaultCode string   `bson:"default_code,omitempty" json:"default_code,omitempty"`
	Barcode     string   `bson:"barcode,omitempty" json:"barcode,omitempty"`
	Tracking    Tracking `bson:"tracking" json:"tracking"`
	UoMID       int64    `bson:"uom_id" json:"uom_id"`
}

// Key implements Record.
func (p Product) Key() Key { return Key{Kind: KindProduct, ID: p.ID} }

// BarcodeValue implements Barcoded.
func (p Product) BarcodeValue() string { return p.Barcode }

// IsTracked reports whether the product needs a lot or serial number.
func (p Product) IsTracked() bool {
	return p.Tracking == TrackingLot || p.Tracking == TrackingSerial
}

// Packaging is a barcoded multiple of a product (a box of 12, a pallet of 40).
type Packaging struct {
	ID        int64           `bson:"_id" json:"id"`
	Name      string          `bson:"name" json:"name"`
	Barcode   string          `bson:"barcode" json:"barcode"`
	ProductID int64           `bson:"product_id" json:"product_id"`
	Qty       decimal.Decimal `bson:"qty" json:"qty"`
	UoMID     int64           `bson:"uom_id" json:"uom_id"`
}

// Key implements Record.
func (p Packaging) Key() Key { return Key{Kind: KindPackaging, ID: p.ID} }

// BarcodeValue implements Barcoded.
func (p Packaging) BarcodeValue() string { return p.Barcode }

// UoM is a unit of measure. Factor is the number of this unit in one
// reference unit of its category (a dozen has factor 1/12).
type UoM struct {
	ID         int64           `bson:"_id" json:"id"`
	Name       string          `bson:"name" json:"name"`
	CategoryID int64           `bson:"category_id" json:"category_id"`
	Factor     decimal.Decimal `bson:"factor" json:"factor"`
	Rounding   decimal.Decimal `bson:"rounding" json:"rounding"`
}

// Key implements Record.
func (u UoM) Key() Key { return Key{Kind: KindUoM, ID: u.ID} }

// ConvertQuantity converts qty expressed in from into the unit to, rounded to
// the target unit's rounding precision.
func ConvertQuantity(qty decimal.Decimal, from, to UoM) (decimal.Decimal, error) {
	if from.ID == to.ID {
		return qty, nil
	}
	if from.CategoryID != to.CategoryID {
		return decimal.Zero, ErrIncompatibleUoM
	}
	if from.Factor.IsZero() {
		return decimal.Zero, ErrIncompatibleUoM
	}
	converted := qty.Div(from.Factor).Mul(to.Factor)
	return to.Round(converted), nil
}

// Round rounds qty to the nearest multiple of the unit's rounding.
func (u UoM) Round(qty decimal.Decimal) decimal.Decimal {
	if !u.Rounding.IsPositive() {
		return qty
	}
	return qty.Div(u.Rounding).Round(0).Mul(u.Rounding)
}
