package barcode

import (
	"context"
	"fmt"
	"strconv"

	"github.com/guttosm/picking-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// PutInPackOptions describes the package lines are put into.
type PutInPackOptions struct {
	// PackageName names the new package; the backend generates one when empty.
	PackageName string
	// PackageTypeID is the default type of the new package.
	PackageTypeID int64
}

// runAction saves the pending edits, performs call and reloads the transfer.
// A failed save rolls the store back to cp. An action descriptor returned by
// call is handed back without reloading.
// The returned flag reports whether the save went through.
func (e *Engine) runAction(ctx context.Context, cp Checkpoint, method string, call func(ctx context.Context) (ActionResult, error), success string, kv ...string) (*ActionDescriptor, bool, error) {
	ok, err := e.save(ctx)
	if err != nil || !ok {
		e.store.Restore(cp)
		return nil, false, err
	}

	if call != nil {
		res, err := call(ctx)
		if err != nil {
			if IsFatal(err) {
				return nil, true, err
			}
			e.log.Warn().Err(err).Str("method", method).Int64("picking_id", e.picking.ID).Msg("action failed")
			e.notify(NotifyDanger, MsgActionFailed, "action", method, "error", err.Error())
			return nil, true, nil
		}
		if res.IsAction() {
			e.action = res.Action
			e.log.Debug().Str("method", method).Str("action", res.Action.Name).Msg("action descriptor returned")
			return res.Action, true, nil
		}
	}

	if err := e.load(ctx, e.picking.ID); err != nil {
		if IsFatal(err) {
			return nil, true, err
		}
		e.notify(NotifyDanger, MsgLookupFailed, "error", err.Error())
		return nil, true, nil
	}
	e.notify(NotifySuccess, success, kv...)
	return nil, true, nil
}

func (e *Engine) callAction(method string, args ActionArgs) func(ctx context.Context) (ActionResult, error) {
	return func(ctx context.Context) (ActionResult, error) {
		return e.backend.CallAction(ctx, e.picking.ID, method, args)
	}
}

// location returns a location, fetching it when needed. Unknown or
// unreachable locations are notified and reported as false.
func (e *Engine) location(ctx context.Context, id int64) (model.Location, bool) {
	if err := e.cache.Ensure(ctx, model.KindLocation, []int64{id}); err != nil {
		e.notify(NotifyDanger, MsgLookupFailed, "error", err.Error())
		return model.Location{}, false
	}
	loc, ok := e.cache.Location(id)
	if !ok {
		e.notify(NotifyWarning, MsgBarcodeNotFound, "barcode", strconv.FormatInt(id, 10))
	}
	return loc, ok
}

// ChangeDestinationLocation retargets lines to another destination. With
// moveScannedOnly only the lines scanned since the last location change move;
// otherwise every line of the current page does.
func (e *Engine) ChangeDestinationLocation(ctx context.Context, locationID int64, moveScannedOnly bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.begin(); err != nil {
		return err
	}
	loc, ok := e.location(ctx, locationID)
	if !ok {
		return nil
	}
	if !e.destinationAllowed(loc) {
		e.notify(NotifyDanger, MsgLocationNotAllowed, "location", loc.CompleteName)
		return nil
	}
	_, err := e.changeDestination(ctx, loc, moveScannedOnly)
	return err
}

// changeDestination moves complete lines and splits incomplete ones: the
// split-off line carries the done quantity to the new destination without
// demand, the original keeps its demand with nothing done.
func (e *Engine) changeDestination(ctx context.Context, loc model.Location, moveScannedOnly bool) (*ActionDescriptor, error) {
	cp := e.store.Checkpoint()

	var targets []string
	if moveScannedOnly {
		targets = append(targets, e.scanned...)
	} else {
		for _, l := range e.currentPage().Lines {
			targets = append(targets, l.VirtualID)
		}
	}

	for _, vid := range targets {
		l, ok := e.store.Get(vid)
		if !ok || l.LocationDestID == loc.ID {
			continue
		}
		switch {
		case e.policy.IsComplete(l) || !e.policy.Demand(l).Valid:
			e.store.Update(vid, func(l *model.Line) { l.LocationDestID = loc.ID })
		case l.QtyDone.IsPositive():
			split := l
			split.VirtualID = ""
			split.ID = 0
			split.QtyDemand = decimal.NullDecimal{}
			split.LocationDestID = loc.ID
			e.store.Add(split)
			e.store.Update(vid, func(l *model.Line) { l.QtyDone = decimal.Zero })
		case !moveScannedOnly:
			e.store.Update(vid, func(l *model.Line) { l.LocationDestID = loc.ID })
		}
	}
	scanned := e.scanned
	e.scanned = nil

	desc, saved, err := e.runAction(ctx, cp, "change_destination", nil, MsgDestinationChanged, "location", loc.CompleteName)
	if !saved {
		e.scanned = scanned
		return desc, err
	}
	e.destID = loc.ID
	e.alignPage()
	if e.page < 0 && len(targets) > 0 {
		e.showLine(targets[0])
	}
	return desc, err
}

// ChangeSourceLocation sets the source of the selected line, or of every line
// of the current page when applyToAllPageLines is set, and makes it the
// current source.
func (e *Engine) ChangeSourceLocation(ctx context.Context, locationID int64, applyToAllPageLines bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.begin(); err != nil {
		return err
	}
	loc, ok := e.location(ctx, locationID)
	if !ok {
		return nil
	}

	cp := e.store.Checkpoint()
	var targets []string
	if applyToAllPageLines {
		for _, l := range e.currentPage().Lines {
			targets = append(targets, l.VirtualID)
		}
	} else if _, ok := e.store.Get(e.selected); ok {
		targets = []string{e.selected}
	}
	for _, vid := range targets {
		e.store.Update(vid, func(l *model.Line) { l.LocationID = loc.ID })
	}

	_, saved, err := e.runAction(ctx, cp, "change_source", nil, MsgSourceChanged, "location", loc.CompleteName)
	if err != nil || !saved {
		return err
	}
	e.sourceID = loc.ID
	e.sourceScanned = true
	e.alignPage()
	return nil
}

// PutInPack puts the lines of the current page that have something done and
// no destination package into a new package.
func (e *Engine) PutInPack(ctx context.Context, opts PutInPackOptions) (*ActionDescriptor, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.begin(); err != nil {
		return nil, err
	}
	return e.putInPack(ctx, opts)
}

func (e *Engine) putInPack(ctx context.Context, opts PutInPackOptions) (*ActionDescriptor, error) {
	if !e.policy.SupportsPackages(e.picking) {
		e.notify(NotifyWarning, MsgPackagesDisabled)
		return nil, nil
	}

	var vids []string
	for _, l := range e.currentPage().Lines {
		if l.QtyDone.IsPositive() && l.ResultPackageID == 0 {
			vids = append(vids, l.VirtualID)
		}
	}
	if len(vids) == 0 {
		e.notify(NotifyDanger, MsgNothingToPack)
		return nil, nil
	}

	cp := e.store.Checkpoint()
	call := func(ctx context.Context) (ActionResult, error) {
		args := ActionArgs{PackageName: opts.PackageName, PackageTypeID: opts.PackageTypeID}
		for _, vid := range vids {
			l, ok := e.store.Get(vid)
			if !ok || l.ID == 0 {
				return ActionResult{}, fmt.Errorf("%w: line %s has no id after save", ErrMalformedResponse, vid)
			}
			args.LineIDs = append(args.LineIDs, l.ID)
		}
		return e.backend.CallAction(ctx, e.picking.ID, MethodPutInPack, args)
	}
	desc, _, err := e.runAction(ctx, cp, MethodPutInPack, call, MsgPackageCreated, "package", opts.PackageName)
	return desc, err
}

// setPackageType changes the type of an existing package.
func (e *Engine) setPackageType(ctx context.Context, pkg model.Package, pt model.PackageType) (*ActionDescriptor, error) {
	cp := e.store.Checkpoint()
	call := e.callAction(MethodSetPackageType, ActionArgs{PackageID: pkg.ID, PackageTypeID: pt.ID})
	desc, _, err := e.runAction(ctx, cp, MethodSetPackageType, call, MsgPackageTypeChanged, "package", pkg.Name, "package_type", pt.Name)
	return desc, err
}

// Validate saves and validates the transfer. When demand is left and no
// backorder choice was given the backend answers with a confirmation wizard,
// which is returned.
func (e *Engine) Validate(ctx context.Context, backorder string) (*ActionDescriptor, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.begin(); err != nil {
		return nil, err
	}
	cp := e.store.Checkpoint()
	call := e.callAction(MethodValidate, ActionArgs{Backorder: backorder})
	desc, _, err := e.runAction(ctx, cp, MethodValidate, call, MsgPickingValidated, "picking", e.picking.Name)
	return desc, err
}

// Cancel saves and cancels the transfer.
func (e *Engine) Cancel(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.begin(); err != nil {
		return err
	}
	cp := e.store.Checkpoint()
	_, _, err := e.runAction(ctx, cp, MethodCancel, e.callAction(MethodCancel, ActionArgs{}), MsgPickingCancelled, "picking", e.picking.Name)
	return err
}
