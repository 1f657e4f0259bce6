package barcodetest

import (
	"github.com/guttosm/picking-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// Reference records shared by engine tests.
var (
	Units  = model.UoM{ID: 1, Name: "Units", CategoryID: 1, Factor: decimal.NewFromInt(1), Rounding: decimal.RequireFromString("0.01")}
	Dozens = model.UoM{ID: 2, Name: "Dozens", CategoryID: 1, Factor: decimal.NewFromInt(1).Div(decimal.NewFromInt(12)), Rounding: decimal.RequireFromString("0.01")}
	Kg     = model.UoM{ID: 3, Name: "kg", CategoryID: 2, Factor: decimal.NewFromInt(1), Rounding: decimal.RequireFromString("0.001")}

	Stock     = model.Location{ID: 10, Name: "Stock", CompleteName: "WH/Stock", Barcode: "LOC-STOCK", ParentPath: "10/"}
	Shelf1    = model.Location{ID: 11, Name: "Shelf 1", CompleteName: "WH/Stock/Shelf 1", Barcode: "LOC1", ParentPath: "10/11/"}
	Shelf2    = model.Location{ID: 12, Name: "Shelf 2", CompleteName: "WH/Stock/Shelf 2", Barcode: "LOC2", ParentPath: "10/12/"}
	Customers = model.Location{ID: 20, Name: "Customers", CompleteName: "Partners/Customers", Barcode: "LOC-CUST", ParentPath: "20/"}
	Vendors   = model.Location{ID: 30, Name: "Vendors", CompleteName: "Partners/Vendors", ParentPath: "30/"}

	ProductX = model.Product{ID: 100, Name: "Product X", Barcode: "X", Tracking: model.TrackingNone, UoMID: Units.ID}
	ProductY = model.Product{ID: 101, Name: "Product Y", Barcode: "Y", Tracking: model.TrackingNone, UoMID: Units.ID}
	ProductZ = model.Product{ID: 102, Name: "Product Z", Barcode: "Z", Tracking: model.TrackingLot, UoMID: Units.ID}
	ProductS = model.Product{ID: 103, Name: "Serial S", Barcode: "S", Tracking: model.TrackingSerial, UoMID: Units.ID}
	Flour    = model.Product{ID: 104, Name: "Flour", Barcode: "FLOUR", Tracking: model.TrackingNone, UoMID: Kg.ID}

	BoxOfX   = model.Packaging{ID: 200, Name: "Box of 12", Barcode: "X-BOX12", ProductID: ProductX.ID, Qty: decimal.NewFromInt(12), UoMID: Units.ID}
	DozenOfX = model.Packaging{ID: 201, Name: "Dozen", Barcode: "X-DOZ", ProductID: ProductX.ID, Qty: decimal.NewFromInt(2), UoMID: Dozens.ID}
	FlourBag = model.Packaging{ID: 202, Name: "Bag", Barcode: "FLOUR-BAG", ProductID: Flour.ID, Qty: decimal.NewFromInt(1), UoMID: Units.ID}

	Pallet = model.PackageType{ID: 300, Name: "Pallet", Barcode: "PT-PALLET"}
	Box    = model.PackageType{ID: 301, Name: "Box", Barcode: "PT-BOX"}

	LotZ1 = model.Lot{ID: 400, Name: "LZ1", ProductID: ProductZ.ID}
	LotZ2 = model.Lot{ID: 401, Name: "LZ2", ProductID: ProductZ.ID}
	SN1   = model.Lot{ID: 402, Name: "SN1", ProductID: ProductS.ID}
	SN2   = model.Lot{ID: 403, Name: "SN2", ProductID: ProductS.ID}
)

// Records returns every shared reference record.
func Records() []model.Record {
	return []model.Record{
		Units, Dozens, Kg,
		Stock, Shelf1, Shelf2, Customers, Vendors,
		ProductX, ProductY, ProductZ, ProductS, Flour,
		BoxOfX, DozenOfX, FlourBag,
		Pallet, Box,
		LotZ1, LotZ2, SN1, SN2,
	}
}

// Qty returns an integral quantity.
func Qty(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

// Demand returns an integral demand.
func Demand(n int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(n))
}

// NewWithRecords creates a backend holding p and every shared record.
func NewWithRecords(p model.Picking) *Backend {
	return New(p).AddRecords(Records()...)
}
