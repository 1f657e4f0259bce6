package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/guttosm/picking-service/internal/barcode"
	"github.com/guttosm/picking-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when a referenced document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidAction is returned when an action cannot run on a transfer.
	ErrInvalidAction = errors.New("invalid action")
)

// Sequence names of the id counters.
const (
	seqMoveLines = "move_lines"
	seqPackages  = "packages"
	seqPickings  = "pickings"
)

// PickingRepository stores transfers, their lines and the reference data
// they point to. It implements barcode.Backend.
type PickingRepository struct {
	db *MongoDB
}

// NewPickingRepository creates a new picking repository.
func NewPickingRepository(db *MongoDB) *PickingRepository {
	return &PickingRepository{db: db}
}

var _ barcode.Backend = (*PickingRepository)(nil)

func (r *PickingRepository) collection(kind model.Kind) (*mongo.Collection, error) {
	switch kind {
	case model.KindProduct:
		return r.db.Products, nil
	case model.KindPackaging:
		return r.db.Packagings, nil
	case model.KindUoM:
		return r.db.UoMs, nil
	case model.KindLocation:
		return r.db.Locations, nil
	case model.KindLot:
		return r.db.Lots, nil
	case model.KindPackage:
		return r.db.Packages, nil
	case model.KindPackageType:
		return r.db.PackageTypes, nil
	}
	return nil, fmt.Errorf("unknown record kind %q", kind)
}

func findAll[T model.Record](ctx context.Context, coll *mongo.Collection, filter interface{}) ([]model.Record, error) {
	cursor, err := coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []T
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]model.Record, len(docs))
	for i, d := range docs {
		out[i] = d
	}
	return out, nil
}

func (r *PickingRepository) find(ctx context.Context, kind model.Kind, filter interface{}) ([]model.Record, error) {
	coll, err := r.collection(kind)
	if err != nil {
		return nil, err
	}
	switch kind {
	case model.KindProduct:
		return findAll[model.Product](ctx, coll, filter)
	case model.KindPackaging:
		return findAll[model.Packaging](ctx, coll, filter)
	case model.KindUoM:
		return findAll[model.UoM](ctx, coll, filter)
	case model.KindLocation:
		return findAll[model.Location](ctx, coll, filter)
	case model.KindLot:
		return findAll[model.Lot](ctx, coll, filter)
	case model.KindPackage:
		return findAll[model.Package](ctx, coll, filter)
	default:
		return findAll[model.PackageType](ctx, coll, filter)
	}
}

// GetPicking returns one transfer.
func (r *PickingRepository) GetPicking(ctx context.Context, pickingID int64) (model.Picking, error) {
	var p model.Picking
	err := r.db.Pickings.FindOne(ctx, bson.M{"_id": pickingID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Picking{}, fmt.Errorf("picking %d: %w", pickingID, ErrNotFound)
	}
	return p, err
}

// ListPickings returns transfers, most recent first. An empty state lists
// every open transfer.
func (r *PickingRepository) ListPickings(ctx context.Context, state model.PickingState, limit int) ([]model.Picking, error) {
	filter := bson.M{"state": bson.M{"$in": []model.PickingState{model.StateDraft, model.StateAssigned}}}
	if state != "" {
		filter = bson.M{"state": state}
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.db.Pickings.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var pickings []model.Picking
	if err := cursor.All(ctx, &pickings); err != nil {
		return nil, err
	}
	return pickings, nil
}

func (r *PickingRepository) lines(ctx context.Context, pickingID int64) ([]model.Line, error) {
	cursor, err := r.db.MoveLines.Find(ctx, bson.M{"picking_id": pickingID},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	lines := []model.Line{}
	if err := cursor.All(ctx, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// LoadPicking implements barcode.Backend. Records holds every location,
// product, unit, lot and package the transfer and its lines reference.
func (r *PickingRepository) LoadPicking(ctx context.Context, pickingID int64) (barcode.PickingData, error) {
	p, err := r.GetPicking(ctx, pickingID)
	if err != nil {
		return barcode.PickingData{}, err
	}
	lines, err := r.lines(ctx, pickingID)
	if err != nil {
		return barcode.PickingData{}, fmt.Errorf("load lines of picking %d: %w", pickingID, err)
	}

	refs := newRefSet()
	refs.add(model.KindLocation, p.LocationID, p.LocationDestID)
	for _, l := range lines {
		refs.add(model.KindProduct, l.ProductID)
		refs.add(model.KindUoM, l.UoMID)
		refs.add(model.KindLocation, l.LocationID, l.LocationDestID)
		refs.add(model.KindLot, l.LotID)
		refs.add(model.KindPackage, l.PackageID, l.ResultPackageID)
	}

	var records []model.Record
	for _, kind := range model.Kinds {
		ids := refs.ids(kind)
		if len(ids) == 0 {
			continue
		}
		recs, err := r.FetchEntities(ctx, kind, ids)
		if err != nil {
			return barcode.PickingData{}, err
		}
		records = append(records, recs...)
	}

	return barcode.PickingData{Picking: p, Lines: lines, Records: records}, nil
}

// FetchEntities implements barcode.Backend.
func (r *PickingRepository) FetchEntities(ctx context.Context, kind model.Kind, ids []int64) ([]model.Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	recs, err := r.find(ctx, kind, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", kind, err)
	}
	return recs, nil
}

// LookupBarcode implements barcode.Backend. Lots are only searched for
// q.ProductID.
func (r *PickingRepository) LookupBarcode(ctx context.Context, q barcode.BarcodeQuery) ([]model.Record, error) {
	searches := []struct {
		kind   model.Kind
		filter bson.M
	}{
		{model.KindLocation, bson.M{"barcode": q.Barcode}},
		{model.KindPackage, bson.M{"name": q.Barcode}},
		{model.KindPackageType, bson.M{"barcode": q.Barcode}},
		{model.KindProduct, bson.M{"barcode": q.Barcode}},
		{model.KindPackaging, bson.M{"barcode": q.Barcode}},
	}
	if q.ProductID != 0 {
		searches = append(searches, struct {
			kind   model.Kind
			filter bson.M
		}{model.KindLot, bson.M{"name": q.Barcode, "product_id": q.ProductID}})
	}

	var out []model.Record
	for _, s := range searches {
		recs, err := r.find(ctx, s.kind, s.filter)
		if err != nil {
			return nil, fmt.Errorf("lookup %s %q: %w", s.kind, q.Barcode, err)
		}
		out = append(out, recs...)
	}
	return out, nil
}

// FetchQuants implements barcode.Backend.
func (r *PickingRepository) FetchQuants(ctx context.Context, packageID int64) ([]model.Quant, error) {
	cursor, err := r.db.Quants.Find(ctx, bson.M{"package_id": packageID},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	quants := []model.Quant{}
	if err := cursor.All(ctx, &quants); err != nil {
		return nil, err
	}
	return quants, nil
}

// Save implements barcode.Backend. The commands apply in order inside one
// transaction; ids of created lines are reserved up front.
func (r *PickingRepository) Save(ctx context.Context, cmd barcode.SaveCommand) (barcode.SaveResult, error) {
	res := barcode.SaveResult{NewIDs: make(map[string]int64)}
	if cmd.IsEmpty() {
		return res, nil
	}

	p, err := r.GetPicking(ctx, cmd.PickingID)
	if err != nil {
		return res, err
	}
	if p.IsClosed() {
		return res, fmt.Errorf("%w: picking %s is %s", ErrInvalidAction, p.Name, p.State)
	}

	var next int64
	if n := cmd.Count(barcode.CommandCreate); n > 0 {
		if next, err = r.db.nextIDs(ctx, seqMoveLines, n); err != nil {
			return res, fmt.Errorf("reserve line ids: %w", err)
		}
	}

	err = r.db.withTransaction(ctx, func(ctx context.Context) error {
		id := next
		for _, c := range cmd.Commands {
			if err := r.apply(ctx, cmd.PickingID, c, id); err != nil {
				return err
			}
			if c.Kind == barcode.CommandCreate {
				res.NewIDs[c.VirtualID] = id
				id++
			}
		}
		return nil
	})
	if err != nil {
		return barcode.SaveResult{}, err
	}
	return res, nil
}

func (r *PickingRepository) apply(ctx context.Context, pickingID int64, c barcode.Command, newID int64) error {
	filter := bson.M{"_id": c.ID, "picking_id": pickingID}
	switch c.Kind {
	case barcode.CommandCreate:
		var l model.Line
		c.Apply(&l)
		l.ID = newID
		l.VirtualID = c.VirtualID
		l.PickingID = pickingID
		_, err := r.db.MoveLines.InsertOne(ctx, l)
		return err

	case barcode.CommandUpdate:
		set := bson.M{}
		for field, v := range c.Values {
			set[field] = v
		}
		ur, err := r.db.MoveLines.UpdateOne(ctx, filter, bson.M{"$set": set})
		if err != nil {
			return err
		}
		if ur.MatchedCount == 0 {
			return fmt.Errorf("update line %d: %w", c.ID, ErrNotFound)
		}
		return nil

	case barcode.CommandDelete:
		dr, err := r.db.MoveLines.DeleteOne(ctx, filter)
		if err != nil {
			return err
		}
		if dr.DeletedCount == 0 {
			return fmt.Errorf("delete line %d: %w", c.ID, ErrNotFound)
		}
		return nil
	}
	return fmt.Errorf("%w: command kind %q", ErrInvalidAction, c.Kind)
}

// refSet collects referenced ids per kind, in first-seen order.
type refSet struct {
	seen  map[model.Key]bool
	byKey map[model.Kind][]int64
}

func newRefSet() *refSet {
	return &refSet{seen: make(map[model.Key]bool), byKey: make(map[model.Kind][]int64)}
}

func (s *refSet) add(kind model.Kind, ids ...int64) {
	for _, id := range ids {
		k := model.Key{Kind: kind, ID: id}
		if id == 0 || s.seen[k] {
			continue
		}
		s.seen[k] = true
		s.byKey[kind] = append(s.byKey[kind], id)
	}
}

func (s *refSet) ids(kind model.Kind) []int64 {
	return s.byKey[kind]
}
