package barcode

import (
	"context"
	"fmt"
	"strings"

	"github.com/guttosm/picking-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// EventKind classifies a scan.
type EventKind string

const (
	EventProduct      EventKind = "product"
	EventLot          EventKind = "lot_or_serial"
	EventPackage      EventKind = "package"
	EventLocation     EventKind = "location"
	EventPackageType  EventKind = "package_type"
	EventUnrecognized EventKind = "unrecognized"
)

// ScanEvent is a classified scan. Only the references matching Kind are set.
// Qty is expressed in UoM.
type ScanEvent struct {
	Raw  string
	Kind EventKind

	Product   *model.Product
	Packaging *model.Packaging
	UoM       *model.UoM
	Qty       decimal.Decimal

	Lot     *model.Lot
	LotName string

	Package     *model.Package
	PackageName string
	PackageType *model.PackageType
	Location    *model.Location

	// Stopped is set once a rule consumed the event.
	Stopped bool
	// Err is the reason key of an unrecognized scan.
	Err string
}

// ScanContext is the transfer state the interpreter resolves against.
type ScanContext struct {
	Picking model.Picking
	// CurrentProductID is the product of the selected line, else of the last
	// scanned one. Lots are only searched for it.
	CurrentProductID int64
}

// Interpreter classifies raw scans.
type Interpreter struct {
	cache         *EntityCache
	packagePrefix string
}

// NewInterpreter creates an interpreter. Unknown barcodes starting with
// packagePrefix name new packages on transfers using packages.
func NewInterpreter(cache *EntityCache, packagePrefix string) *Interpreter {
	return &Interpreter{cache: cache, packagePrefix: packagePrefix}
}

// Classify resolves raw into an event. Location, package, package type,
// product or packaging, lot of the current product and new lot name are
// tried in that order. An unresolved scan is an unrecognized event; an error
// means a backend lookup failed.
func (in *Interpreter) Classify(ctx context.Context, raw string, sc ScanContext) (ScanEvent, error) {
	raw = strings.TrimSpace(raw)
	ev := ScanEvent{Raw: raw}
	if raw == "" {
		return unrecognized(ev, MsgEmptyBarcode), nil
	}

	records := in.candidates(raw, sc)
	if len(records) == 0 {
		if _, err := in.cache.Lookup(ctx, BarcodeQuery{Barcode: raw, ProductID: sc.CurrentProductID}); err != nil {
			return ev, err
		}
		records = in.candidates(raw, sc)
	}

	if loc, ok := firstOf[model.Location](records); ok {
		ev.Kind = EventLocation
		ev.Location = &loc
		return ev, nil
	}
	if pkg, ok := firstOf[model.Package](records); ok {
		ev.Kind = EventPackage
		ev.Package = &pkg
		ev.PackageName = pkg.Name
		return ev, nil
	}
	if sc.Picking.UsePackages && in.packagePrefix != "" && strings.HasPrefix(raw, in.packagePrefix) {
		ev.Kind = EventPackage
		ev.PackageName = raw
		return ev, nil
	}
	if pt, ok := firstOf[model.PackageType](records); ok {
		ev.Kind = EventPackageType
		ev.PackageType = &pt
		return ev, nil
	}
	if p, ok := firstOf[model.Product](records); ok {
		return in.productEvent(ctx, ev, p, nil)
	}
	if pk, ok := firstOf[model.Packaging](records); ok {
		if err := in.cache.Ensure(ctx, model.KindProduct, []int64{pk.ProductID}); err != nil {
			return ev, err
		}
		p, ok := in.cache.Product(pk.ProductID)
		if !ok {
			return ev, fmt.Errorf("%w: product %d of packaging %s", ErrMissingReference, pk.ProductID, pk.Barcode)
		}
		return in.productEvent(ctx, ev, p, &pk)
	}

	return in.lotEvent(ctx, ev, records, sc)
}

// candidates returns the cached records for raw usable in this context.
func (in *Interpreter) candidates(raw string, sc ScanContext) []model.Record {
	var out []model.Record
	for _, r := range in.cache.ByBarcode(raw) {
		if lot, ok := r.(model.Lot); ok && lot.ProductID != sc.CurrentProductID {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (in *Interpreter) productEvent(ctx context.Context, ev ScanEvent, p model.Product, pk *model.Packaging) (ScanEvent, error) {
	uomID, qty := p.UoMID, decimal.NewFromInt(1)
	if pk != nil {
		uomID, qty = pk.UoMID, pk.Qty
	}
	if err := in.cache.Ensure(ctx, model.KindUoM, []int64{uomID}); err != nil {
		return ev, err
	}
	uom, ok := in.cache.UoM(uomID)
	if !ok {
		return ev, fmt.Errorf("%w: uom %d of product %d", ErrMissingReference, uomID, p.ID)
	}
	ev.Kind = EventProduct
	ev.Product = &p
	ev.Packaging = pk
	ev.UoM = &uom
	ev.Qty = qty
	return ev, nil
}

// lotEvent resolves raw as a lot of the current product, existing or new.
// Lots of untracked products are not recognized.
func (in *Interpreter) lotEvent(ctx context.Context, ev ScanEvent, records []model.Record, sc ScanContext) (ScanEvent, error) {
	if sc.CurrentProductID == 0 {
		return unrecognized(ev, MsgBarcodeNotFound), nil
	}
	if err := in.cache.Ensure(ctx, model.KindProduct, []int64{sc.CurrentProductID}); err != nil {
		return ev, err
	}
	p, ok := in.cache.Product(sc.CurrentProductID)
	if !ok {
		return ev, fmt.Errorf("%w: current product %d", ErrMissingReference, sc.CurrentProductID)
	}
	if !p.IsTracked() {
		return unrecognized(ev, MsgBarcodeNotFound), nil
	}

	lot, found := firstOf[model.Lot](records)
	if !found && !sc.Picking.UseCreateLots {
		return unrecognized(ev, MsgBarcodeNotFound), nil
	}

	ev, err := in.productEvent(ctx, ev, p, nil)
	if err != nil {
		return ev, err
	}
	ev.Kind = EventLot
	if found {
		ev.Lot = &lot
		ev.LotName = lot.Name
	} else {
		ev.LotName = ev.Raw
	}
	return ev, nil
}

func unrecognized(ev ScanEvent, reason string) ScanEvent {
	ev.Kind = EventUnrecognized
	ev.Err = reason
	return ev
}

func firstOf[T model.Record](records []model.Record) (T, bool) {
	for _, r := range records {
		if v, ok := r.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
