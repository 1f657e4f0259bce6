package barcode

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/guttosm/picking-service/internal/domain/model"
	"github.com/guttosm/picking-service/internal/metrics"
	"github.com/shopspring/decimal"
)

type scanRule func(ctx context.Context, ev *ScanEvent) error

// ProcessBarcode classifies a raw scan and applies it. Recoverable outcomes
// are notified; only fatal conditions are returned.
func (e *Engine) ProcessBarcode(ctx context.Context, raw string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.begin(); err != nil {
		return err
	}

	ev, err := e.interp.Classify(ctx, raw, ScanContext{
		Picking:          e.picking,
		CurrentProductID: e.currentProductID(),
	})
	if err != nil {
		if IsFatal(err) {
			return err
		}
		e.notify(NotifyDanger, MsgLookupFailed, "error", err.Error())
		metrics.RecordScan("lookup", "error")
		return nil
	}
	if err := ev.validate(); err != nil {
		return err
	}

	e.log.Debug().
		Str("barcode", ev.Raw).
		Str("event", string(ev.Kind)).
		Int64("picking_id", e.picking.ID).
		Msg("scan classified")

	rules := []scanRule{
		e.applyUnrecognized,
		e.applyLocation,
		e.applyBlankPackage,
		e.applyNewPackage,
		e.applyPackage,
		e.applyPackageType,
		e.applyProduct,
	}
	for _, rule := range rules {
		if ev.Stopped {
			break
		}
		if err := rule(ctx, &ev); err != nil {
			metrics.RecordScan(string(ev.Kind), "error")
			return err
		}
	}
	if !ev.Stopped {
		return fmt.Errorf("%w: no rule consumed %s event", ErrCorruptEvent, ev.Kind)
	}

	outcome := "applied"
	switch {
	case ev.Kind == EventUnrecognized:
		outcome = "unrecognized"
	case e.rejected:
		outcome = "rejected"
	}
	metrics.RecordScan(string(ev.Kind), outcome)
	return nil
}

// validate checks that the references required by the event kind are set.
func (ev ScanEvent) validate() error {
	var missing string
	switch ev.Kind {
	case EventUnrecognized, EventPackage:
	case EventLocation:
		if ev.Location == nil {
			missing = "location"
		}
	case EventPackageType:
		if ev.PackageType == nil {
			missing = "package type"
		}
	case EventProduct, EventLot:
		if ev.Product == nil || ev.UoM == nil {
			missing = "product"
		} else if ev.Kind == EventLot && ev.Lot == nil && ev.LotName == "" {
			missing = "lot"
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrCorruptEvent, ev.Kind)
	}
	if missing != "" {
		return fmt.Errorf("%w: %s event without %s", ErrCorruptEvent, ev.Kind, missing)
	}
	return nil
}

func (e *Engine) applyUnrecognized(_ context.Context, ev *ScanEvent) error {
	if ev.Kind != EventUnrecognized {
		return nil
	}
	ev.Stopped = true
	e.notify(NotifyWarning, ev.Err, "barcode", ev.Raw)
	return nil
}

func (e *Engine) applyLocation(ctx context.Context, ev *ScanEvent) error {
	if ev.Kind != EventLocation {
		return nil
	}
	ev.Stopped = true
	loc := *ev.Location

	if len(e.scanned) > 0 && e.policy.AllowsDestinationChange(e.picking) {
		if !e.destinationAllowed(loc) {
			e.notify(NotifyDanger, MsgLocationNotAllowed, "location", loc.CompleteName)
			return nil
		}
		_, err := e.changeDestination(ctx, loc, e.cfg.MoveScannedLineOnly)
		return err
	}

	switch e.policy.LocationRole(e.picking, e.sourceScanned) {
	case RoleDestination:
		if !e.destinationAllowed(loc) {
			e.notify(NotifyDanger, MsgLocationNotAllowed, "location", loc.CompleteName)
			return nil
		}
		e.destID = loc.ID
	default:
		e.sourceID = loc.ID
		e.sourceScanned = true
	}
	e.scanned = nil
	e.alignPage()
	return nil
}

// destinationAllowed enforces that restricted transfers only put stock below
// their default destination.
func (e *Engine) destinationAllowed(loc model.Location) bool {
	if !e.picking.RestrictScanDestination {
		return true
	}
	return isChildOf(loc, e.picking.LocationDestID)
}

func isChildOf(loc model.Location, parentID int64) bool {
	if loc.ID == parentID {
		return true
	}
	id := strconv.FormatInt(parentID, 10)
	return strings.Contains("/"+loc.ParentPath, "/"+id+"/")
}

func (e *Engine) applyBlankPackage(_ context.Context, ev *ScanEvent) error {
	if ev.Kind == EventPackage && ev.Package == nil && ev.PackageName == "" {
		ev.Stopped = true
	}
	return nil
}

func (e *Engine) applyNewPackage(ctx context.Context, ev *ScanEvent) error {
	if ev.Kind != EventPackage || ev.Package != nil {
		return nil
	}
	ev.Stopped = true
	_, err := e.putInPack(ctx, PutInPackOptions{PackageName: ev.PackageName})
	return err
}

func (e *Engine) applyPackage(ctx context.Context, ev *ScanEvent) error {
	if ev.Kind != EventPackage || ev.Package == nil {
		return nil
	}
	ev.Stopped = true
	return e.explodePackage(ctx, *ev.Package)
}

// explodePackage turns the quants of a scanned package into lines. All
// lookups happen before the first mutation.
func (e *Engine) explodePackage(ctx context.Context, pkg model.Package) error {
	if !e.policy.SupportsPackages(e.picking) {
		e.notify(NotifyWarning, MsgPackagesDisabled)
		return nil
	}
	quants, err := e.cache.Quants(ctx, pkg.ID)
	if err != nil {
		e.notify(NotifyDanger, MsgLookupFailed, "error", err.Error())
		return nil
	}

	if len(quants) == 0 {
		if _, ok := e.store.Get(e.lastTouched); !ok {
			e.notify(NotifyWarning, MsgEmptyPackageNoLine, "package", pkg.Name)
			return nil
		}
		e.store.Update(e.lastTouched, func(l *model.Line) { l.ResultPackageID = pkg.ID })
		e.notify(NotifySuccess, MsgPackageAttached, "package", pkg.Name)
		return nil
	}

	productIDs := make([]int64, 0, len(quants))
	for _, q := range quants {
		productIDs = append(productIDs, q.ProductID)
	}
	if err := e.cache.Ensure(ctx, model.KindProduct, productIDs); err != nil {
		e.notify(NotifyDanger, MsgLookupFailed, "error", err.Error())
		return nil
	}
	products := make(map[int64]model.Product, len(quants))
	for _, id := range productIDs {
		p, ok := e.cache.Product(id)
		if !ok {
			return fmt.Errorf("%w: product %d in package %s", ErrMissingReference, id, pkg.Name)
		}
		products[id] = p
	}

	if e.packageScanned(pkg.ID, quants) {
		e.notify(NotifyDanger, MsgPackageAlreadyScanned, "package", pkg.Name)
		return nil
	}

	for _, q := range quants {
		p := products[q.ProductID]
		if vid, ok := e.untouchedLineFor(q, p, pkg.ID); ok {
			e.store.Update(vid, func(l *model.Line) {
				l.QtyDone = l.QtyDone.Add(q.Quantity)
				l.PackageID = pkg.ID
				l.ResultPackageID = pkg.ID
				l.LotID = q.LotID
				l.OwnerID = q.OwnerID
			})
			e.touch(vid)
			continue
		}
		src := q.LocationID
		if src == 0 {
			src = e.sourceID
		}
		l := e.store.Add(model.Line{
			PickingID:       e.picking.ID,
			ProductID:       q.ProductID,
			UoMID:           p.UoMID,
			LotID:           q.LotID,
			OwnerID:         q.OwnerID,
			PackageID:       pkg.ID,
			ResultPackageID: pkg.ID,
			LocationID:      src,
			LocationDestID:  e.destID,
			QtyDone:         q.Quantity,
		})
		e.touch(l.VirtualID)
	}
	e.lastProductID = quants[len(quants)-1].ProductID
	e.showLine(e.lastTouched)
	return nil
}

// packageScanned reports whether every quant of the package is already
// covered by lines taken from it.
func (e *Engine) packageScanned(packageID int64, quants []model.Quant) bool {
	lines := e.store.Lines()
	for _, q := range quants {
		done := decimal.Zero
		for _, l := range lines {
			if l.PackageID == packageID && l.ProductID == q.ProductID && l.LotID == q.LotID && l.OwnerID == q.OwnerID {
				done = done.Add(l.QtyDone)
			}
		}
		if !done.IsPositive() || done.LessThan(q.Quantity) {
			return false
		}
	}
	return true
}

// untouchedLineFor finds the first line with nothing done that can take the
// quant: same product, compatible lot and owner, no other source package.
func (e *Engine) untouchedLineFor(q model.Quant, p model.Product, packageID int64) (string, bool) {
	for _, l := range e.store.Lines() {
		if l.ProductID != q.ProductID || !l.QtyDone.IsZero() || l.UoMID != p.UoMID {
			continue
		}
		if l.PackageID != 0 && l.PackageID != packageID {
			continue
		}
		if l.ResultPackageID != 0 && l.ResultPackageID != packageID {
			continue
		}
		if l.HasLot() && l.LotID != q.LotID {
			continue
		}
		if l.OwnerID != 0 && l.OwnerID != q.OwnerID {
			continue
		}
		return l.VirtualID, true
	}
	return "", false
}

func (e *Engine) applyPackageType(ctx context.Context, ev *ScanEvent) error {
	if ev.Kind != EventPackageType {
		return nil
	}
	ev.Stopped = true
	pt := *ev.PackageType

	line, ok := e.store.Get(e.selected)
	if !ok || !line.QtyDone.IsPositive() {
		e.notify(NotifyDanger, MsgScanProductFirst)
		return nil
	}
	if !e.policy.SupportsPackages(e.picking) {
		e.notify(NotifyWarning, MsgPackagesDisabled)
		return nil
	}
	if line.ResultPackageID == 0 {
		_, err := e.putInPack(ctx, PutInPackOptions{PackageTypeID: pt.ID})
		return err
	}

	if err := e.cache.Ensure(ctx, model.KindPackage, []int64{line.ResultPackageID}); err != nil {
		e.notify(NotifyDanger, MsgLookupFailed, "error", err.Error())
		return nil
	}
	pkg, ok := e.cache.Package(line.ResultPackageID)
	if !ok {
		return fmt.Errorf("%w: result package %d", ErrMissingReference, line.ResultPackageID)
	}
	if pkg.PackageTypeID == pt.ID {
		e.notify(NotifyWarning, MsgPackageTypeUnsupported, "package", pkg.Name, "package_type", pt.Name)
		return nil
	}
	_, err := e.setPackageType(ctx, pkg, pt)
	return err
}

func (e *Engine) applyProduct(ctx context.Context, ev *ScanEvent) error {
	if ev.Kind != EventProduct && ev.Kind != EventLot {
		return nil
	}
	ev.Stopped = true
	p := *ev.Product
	e.lastProductID = p.ID

	if ev.Kind == EventLot {
		if p.Tracking == model.TrackingSerial && e.serialRecorded(p.ID, ev) {
			e.notify(NotifyDanger, MsgSerialAlreadyScanned, "serial", ev.LotName)
			return nil
		}
		if sel, ok := e.store.Get(e.selected); ok && sel.ProductID == p.ID && !sel.HasLot() && sel.QtyDone.IsPositive() {
			e.store.Update(sel.VirtualID, func(l *model.Line) { setLot(l, ev) })
			e.touch(sel.VirtualID)
			return nil
		}
	}

	if target, ok := e.matchLine(p, ev); ok {
		qty, ok, err := e.convert(ctx, ev, target.UoMID)
		if err != nil || !ok {
			return err
		}
		e.store.Update(target.VirtualID, func(l *model.Line) {
			l.QtyDone = l.QtyDone.Add(qty)
			if ev.Kind == EventLot && !l.HasLot() {
				setLot(l, ev)
			}
		})
		e.touch(target.VirtualID)
		return nil
	}

	qty, ok, err := e.convert(ctx, ev, p.UoMID)
	if err != nil || !ok {
		return err
	}
	nl := model.Line{
		PickingID:      e.picking.ID,
		ProductID:      p.ID,
		UoMID:          p.UoMID,
		LocationID:     e.sourceID,
		LocationDestID: e.destID,
		QtyDone:        qty,
	}
	if ev.Kind == EventLot {
		setLot(&nl, ev)
	}
	nl = e.store.Add(nl)
	e.touch(nl.VirtualID)
	e.showLine(nl.VirtualID)
	return nil
}

func setLot(l *model.Line, ev *ScanEvent) {
	if ev.Lot != nil {
		l.LotID = ev.Lot.ID
		l.LotName = ev.Lot.Name
		return
	}
	l.LotName = ev.LotName
}

// serialRecorded reports whether the scanned serial is already on the transfer.
func (e *Engine) serialRecorded(productID int64, ev *ScanEvent) bool {
	for _, l := range e.store.Lines() {
		if l.ProductID != productID || !l.QtyDone.IsPositive() {
			continue
		}
		if ev.Lot != nil && l.LotID == ev.Lot.ID {
			return true
		}
		if l.LotName != "" && l.LotName == ev.LotName {
			return true
		}
	}
	return false
}

// matchLine picks the line of the current page a product scan increments:
// the selected line while it is not complete, else the first incomplete one,
// else the first without demand, else the selected or last candidate.
func (e *Engine) matchLine(p model.Product, ev *ScanEvent) (model.Line, bool) {
	var candidates []model.Line
	for _, l := range e.currentPage().Lines {
		if l.ProductID != p.ID {
			continue
		}
		if p.Tracking == model.TrackingSerial && l.QtyDone.IsPositive() {
			continue
		}
		if l.ResultPackageID != 0 && l.ResultPackageID != l.PackageID {
			continue
		}
		if ev.Kind == EventLot && l.HasLot() && !sameLot(l, ev) {
			continue
		}
		if ev.Kind == EventLot && !l.HasLot() && l.QtyDone.IsPositive() && p.IsTracked() {
			continue
		}
		candidates = append(candidates, l)
	}
	if len(candidates) == 0 {
		return model.Line{}, false
	}

	var selected *model.Line
	for i, l := range candidates {
		if l.VirtualID == e.selected {
			selected = &candidates[i]
		}
	}
	if selected != nil && !e.policy.IsComplete(*selected) {
		return *selected, true
	}
	for _, l := range candidates {
		if e.policy.Demand(l).Valid && !e.policy.IsComplete(l) {
			return l, true
		}
	}
	for _, l := range candidates {
		if !e.policy.Demand(l).Valid {
			return l, true
		}
	}
	if selected != nil {
		return *selected, true
	}
	return candidates[len(candidates)-1], true
}

func sameLot(l model.Line, ev *ScanEvent) bool {
	if ev.Lot != nil {
		return l.LotID == ev.Lot.ID || (l.LotID == 0 && l.LotName == ev.Lot.Name)
	}
	return l.LotID == 0 && l.LotName == ev.LotName
}

// convert expresses the scanned quantity in the unit uomID. An incompatible
// unit is notified and reported as false.
func (e *Engine) convert(ctx context.Context, ev *ScanEvent, uomID int64) (decimal.Decimal, bool, error) {
	if ev.UoM.ID == uomID {
		return ev.Qty, true, nil
	}
	if err := e.cache.Ensure(ctx, model.KindUoM, []int64{uomID}); err != nil {
		e.notify(NotifyDanger, MsgLookupFailed, "error", err.Error())
		return decimal.Zero, false, nil
	}
	to, ok := e.cache.UoM(uomID)
	if !ok {
		return decimal.Zero, false, fmt.Errorf("%w: uom %d", ErrMissingReference, uomID)
	}
	qty, err := model.ConvertQuantity(ev.Qty, *ev.UoM, to)
	if errors.Is(err, model.ErrIncompatibleUoM) {
		e.notify(NotifyDanger, MsgIncompatibleUoM, "from", ev.UoM.Name, "to", to.Name)
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}
	return qty, true, nil
}
