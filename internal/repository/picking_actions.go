package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/guttosm/picking-service/internal/barcode"
	"github.com/guttosm/picking-service/internal/domain/model"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CallAction implements barcode.Backend.
func (r *PickingRepository) CallAction(ctx context.Context, pickingID int64, method string, args barcode.ActionArgs) (barcode.ActionResult, error) {
	p, err := r.GetPicking(ctx, pickingID)
	if err != nil {
		return barcode.ActionResult{}, err
	}

	switch method {
	case barcode.MethodPutInPack:
		return r.putInPack(ctx, p, args)
	case barcode.MethodSetPackageType:
		return r.setPackageType(ctx, args)
	case barcode.MethodValidate:
		return r.validate(ctx, p, args.Backorder)
	case barcode.MethodCancel:
		return r.cancel(ctx, p)
	}
	return barcode.ActionResult{}, fmt.Errorf("%w: unknown method %q", ErrInvalidAction, method)
}

func (r *PickingRepository) putInPack(ctx context.Context, p model.Picking, args barcode.ActionArgs) (barcode.ActionResult, error) {
	if p.IsClosed() {
		return barcode.ActionResult{}, fmt.Errorf("%w: picking %s is %s", ErrInvalidAction, p.Name, p.State)
	}
	if len(args.LineIDs) == 0 {
		return barcode.ActionResult{}, fmt.Errorf("%w: no line to pack", ErrInvalidAction)
	}
	if p.PromptPackageType && args.PackageTypeID == 0 {
		return barcode.ActionResult{Action: &barcode.ActionDescriptor{
			Type:    "wizard",
			Name:    barcode.WizardPackageType,
			Context: map[string]interface{}{"line_ids": args.LineIDs},
		}}, nil
	}

	id, err := r.db.nextIDs(ctx, seqPackages, 1)
	if err != nil {
		return barcode.ActionResult{}, fmt.Errorf("reserve package id: %w", err)
	}
	pkg := model.Package{
		ID:            id,
		Name:          args.PackageName,
		PackageTypeID: args.PackageTypeID,
		LocationID:    p.LocationDestID,
	}
	if pkg.Name == "" {
		pkg.Name = fmt.Sprintf("PACK%07d", id)
	}

	err = r.db.withTransaction(ctx, func(ctx context.Context) error {
		if _, err := r.db.Packages.InsertOne(ctx, pkg); err != nil {
			return err
		}
		_, err := r.db.MoveLines.UpdateMany(ctx,
			bson.M{"picking_id": p.ID, "_id": bson.M{"$in": args.LineIDs}},
			bson.M{"$set": bson.M{model.FieldResultPackageID: id}})
		return err
	})
	if err != nil {
		return barcode.ActionResult{}, err
	}
	return barcode.ActionResult{Value: id}, nil
}

func (r *PickingRepository) setPackageType(ctx context.Context, args barcode.ActionArgs) (barcode.ActionResult, error) {
	res, err := r.db.Packages.UpdateOne(ctx,
		bson.M{"_id": args.PackageID},
		bson.M{"$set": bson.M{"package_type_id": args.PackageTypeID}})
	if err != nil {
		return barcode.ActionResult{}, err
	}
	if res.MatchedCount == 0 {
		return barcode.ActionResult{}, fmt.Errorf("package %d: %w", args.PackageID, ErrNotFound)
	}
	return barcode.ActionResult{Value: true}, nil
}

// validate marks the transfer done. Unmet demand asks for a backorder
// decision first; "create" moves the remaining demand to a new transfer.
// Lines with nothing done are dropped from the validated transfer.
func (r *PickingRepository) validate(ctx context.Context, p model.Picking, backorder string) (barcode.ActionResult, error) {
	if p.IsClosed() {
		return barcode.ActionResult{}, fmt.Errorf("%w: picking %s is %s", ErrInvalidAction, p.Name, p.State)
	}
	lines, err := r.lines(ctx, p.ID)
	if err != nil {
		return barcode.ActionResult{}, err
	}

	var done bool
	var remaining []model.Line
	for _, l := range lines {
		if l.QtyDone.IsPositive() {
			done = true
		}
		if l.HasDemand() && !l.IsComplete() {
			rest := l.QtyDemand.Decimal.Sub(decimal.Max(l.QtyDone, decimal.Zero))
			remaining = append(remaining, model.Line{
				ProductID:      l.ProductID,
				UoMID:          l.UoMID,
				LotID:          l.LotID,
				LotName:        l.LotName,
				PackageID:      l.PackageID,
				OwnerID:        l.OwnerID,
				LocationID:     l.LocationID,
				LocationDestID: l.LocationDestID,
				QtyDone:        decimal.Zero,
				QtyDemand:      decimal.NewNullDecimal(rest),
			})
		}
	}
	if !done {
		return barcode.ActionResult{}, fmt.Errorf("%w: nothing done on picking %s", ErrInvalidAction, p.Name)
	}

	switch backorder {
	case "":
		if len(remaining) > 0 {
			return barcode.ActionResult{Action: &barcode.ActionDescriptor{
				Type:    "wizard",
				Name:    barcode.WizardBackorder,
				Context: map[string]interface{}{"picking_id": p.ID, "lines": len(remaining)},
			}}, nil
		}
	case barcode.BackorderCreate, barcode.BackorderDiscard:
	default:
		return barcode.ActionResult{}, fmt.Errorf("%w: unknown backorder choice %q", ErrInvalidAction, backorder)
	}

	var bo model.Picking
	var firstLineID int64
	if backorder == barcode.BackorderCreate && len(remaining) > 0 {
		if bo.ID, err = r.db.nextIDs(ctx, seqPickings, 1); err != nil {
			return barcode.ActionResult{}, fmt.Errorf("reserve picking id: %w", err)
		}
		if firstLineID, err = r.db.nextIDs(ctx, seqMoveLines, len(remaining)); err != nil {
			return barcode.ActionResult{}, fmt.Errorf("reserve line ids: %w", err)
		}
		bo = backorderOf(p, bo.ID)
	}

	err = r.db.withTransaction(ctx, func(ctx context.Context) error {
		if bo.ID != 0 {
			if _, err := r.db.Pickings.InsertOne(ctx, bo); err != nil {
				return err
			}
			docs := make([]interface{}, len(remaining))
			for i, l := range remaining {
				l.ID = firstLineID + int64(i)
				l.VirtualID = uuid.NewString()
				l.PickingID = bo.ID
				docs[i] = l
			}
			if _, err := r.db.MoveLines.InsertMany(ctx, docs); err != nil {
				return err
			}
		}
		if _, err := r.db.MoveLines.DeleteMany(ctx, bson.M{
			"picking_id": p.ID,
			"qty_done":   bson.M{"$lte": 0},
		}); err != nil {
			return err
		}
		return r.setState(ctx, p.ID, model.StateDone)
	})
	if err != nil {
		return barcode.ActionResult{}, err
	}

	if bo.ID != 0 {
		return barcode.ActionResult{Value: map[string]interface{}{"backorder_id": bo.ID}}, nil
	}
	return barcode.ActionResult{Value: true}, nil
}

func backorderOf(p model.Picking, id int64) model.Picking {
	bo := p
	bo.ID = id
	bo.Name = p.Name + "/BO"
	bo.State = model.StateAssigned
	return bo
}

func (r *PickingRepository) cancel(ctx context.Context, p model.Picking) (barcode.ActionResult, error) {
	if p.State == model.StateDone {
		return barcode.ActionResult{}, fmt.Errorf("%w: picking %s is done", ErrInvalidAction, p.Name)
	}
	if err := r.setState(ctx, p.ID, model.StateCancel); err != nil {
		return barcode.ActionResult{}, err
	}
	return barcode.ActionResult{Value: true}, nil
}

func (r *PickingRepository) setState(ctx context.Context, pickingID int64, state model.PickingState) error {
	res, err := r.db.Pickings.UpdateOne(ctx, bson.M{"_id": pickingID}, bson.M{"$set": bson.M{"state": state}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("picking %d: %w", pickingID, ErrNotFound)
	}
	return nil
}

// Dataset is a batch of reference data and transfers to import.
type Dataset struct {
	UoMs         []model.UoM         `json:"uoms"`
	Products     []model.Product     `json:"products"`
	Packagings   []model.Packaging   `json:"packagings"`
	Locations    []model.Location    `json:"locations"`
	Lots         []model.Lot         `json:"lots"`
	PackageTypes []model.PackageType `json:"package_types"`
	Packages     []model.Package     `json:"packages"`
	Quants       []model.Quant       `json:"quants"`
	Pickings     []model.Picking     `json:"pickings"`
	Lines        []model.Line        `json:"lines"`
}

// Import upserts every document of ds by id and moves the id counters past
// the imported ids. Lines without a virtual id get one.
func (r *PickingRepository) Import(ctx context.Context, ds Dataset) error {
	for i := range ds.Lines {
		if ds.Lines[i].VirtualID == "" {
			ds.Lines[i].VirtualID = uuid.NewString()
		}
	}

	db := r.db
	err := errors.Join(
		upsertAll(ctx, db.UoMs, ds.UoMs, func(u model.UoM) int64 { return u.ID }),
		upsertAll(ctx, db.Products, ds.Products, func(p model.Product) int64 { return p.ID }),
		upsertAll(ctx, db.Packagings, ds.Packagings, func(p model.Packaging) int64 { return p.ID }),
		upsertAll(ctx, db.Locations, ds.Locations, func(l model.Location) int64 { return l.ID }),
		upsertAll(ctx, db.Lots, ds.Lots, func(l model.Lot) int64 { return l.ID }),
		upsertAll(ctx, db.PackageTypes, ds.PackageTypes, func(t model.PackageType) int64 { return t.ID }),
		upsertAll(ctx, db.Packages, ds.Packages, func(p model.Package) int64 { return p.ID }),
		upsertAll(ctx, db.Quants, ds.Quants, func(q model.Quant) int64 { return q.ID }),
		upsertAll(ctx, db.Pickings, ds.Pickings, func(p model.Picking) int64 { return p.ID }),
		upsertAll(ctx, db.MoveLines, ds.Lines, func(l model.Line) int64 { return l.ID }),
	)
	if err != nil {
		return err
	}

	counters := map[string]int64{seqMoveLines: 0, seqPackages: 0, seqPickings: 0}
	for _, l := range ds.Lines {
		counters[seqMoveLines] = max(counters[seqMoveLines], l.ID)
	}
	for _, p := range ds.Packages {
		counters[seqPackages] = max(counters[seqPackages], p.ID)
	}
	for _, p := range ds.Pickings {
		counters[seqPickings] = max(counters[seqPickings], p.ID)
	}
	for seq, top := range counters {
		_, err := r.db.Counters.UpdateOne(ctx,
			bson.M{"_id": seq},
			bson.M{"$max": bson.M{"value": top}},
			options.Update().SetUpsert(true))
		if err != nil {
			return fmt.Errorf("bump counter %s: %w", seq, err)
		}
	}
	return nil
}

func upsertAll[T any](ctx context.Context, coll *mongo.Collection, docs []T, id func(T) int64) error {
	for _, d := range docs {
		_, err := coll.ReplaceOne(ctx, bson.M{"_id": id(d)}, d, options.Replace().SetUpsert(true))
		if err != nil {
			return fmt.Errorf("import %s %d: %w", coll.Name(), id(d), err)
		}
	}
	return nil
}
