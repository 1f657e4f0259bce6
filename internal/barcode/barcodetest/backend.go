// Package barcodetest provides an in-memory barcode.Backend for tests.
package barcodetest

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/guttosm/picking-service/internal/barcode"
	"github.com/guttosm/picking-service/internal/domain/model"
)

// Call records a server action.
type Call struct {
	Method string
	Args   barcode.ActionArgs
}

// Backend is an in-memory transfer store. The exported error fields make the
// matching operation fail without side effects.
type Backend struct {
	mu sync.Mutex

	picking model.Picking
	lines   []model.Line
	records map[model.Key]model.Record
	quants  map[int64][]model.Quant
	nextID  int64

	LoadErr   error
	FetchErr  error
	LookupErr error
	QuantsErr error
	SaveErr   error
	ActionErr error

	Saves       []barcode.SaveCommand
	Calls       []Call
	LoadCalls   int
	LookupCalls int
	FetchCalls  map[model.Kind]int
	QuantCalls  map[int64]int
}

// New creates a backend holding one transfer.
func New(p model.Picking) *Backend {
	return &Backend{
		picking:    p,
		records:    make(map[model.Key]model.Record),
		quants:     make(map[int64][]model.Quant),
		nextID:     1000,
		FetchCalls: make(map[model.Kind]int),
		QuantCalls: make(map[int64]int),
	}
}

// AddRecords stores referenced records.
func (b *Backend) AddRecords(recs ...model.Record) *Backend {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range recs {
		b.records[r.Key()] = r
	}
	return b
}

// AddLines stores persisted lines, assigning ids where missing.
func (b *Backend) AddLines(lines ...model.Line) *Backend {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, l := range lines {
		if l.ID == 0 {
			l.ID = b.newID()
		}
		if l.VirtualID == "" {
			l.VirtualID = uuid.NewString()
		}
		l.PickingID = b.picking.ID
		b.lines = append(b.lines, l)
	}
	return b
}

// SetQuants sets the content of a package.
func (b *Backend) SetQuants(packageID int64, quants ...model.Quant) *Backend {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.quants[packageID] = quants
	return b
}

// StoredLines returns the persisted lines.
func (b *Backend) StoredLines() []model.Line {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.Line(nil), b.lines...)
}

// StoredPicking returns the persisted transfer.
func (b *Backend) StoredPicking() model.Picking {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.picking
}

// Record returns a stored record.
func (b *Backend) Record(key model.Key) (model.Record, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.records[key]
	return r, ok
}

func (b *Backend) newID() int64 {
	b.nextID++
	return b.nextID
}

// LoadPicking implements barcode.Backend.
func (b *Backend) LoadPicking(_ context.Context, pickingID int64) (barcode.PickingData, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.LoadCalls++
	if b.LoadErr != nil {
		return barcode.PickingData{}, b.LoadErr
	}
	if pickingID != b.picking.ID {
		return barcode.PickingData{}, fmt.Errorf("picking %d not found", pickingID)
	}

	keys := []model.Key{
		{Kind: model.KindLocation, ID: b.picking.LocationID},
		{Kind: model.KindLocation, ID: b.picking.LocationDestID},
	}
	for _, l := range b.lines {
		keys = append(keys,
			model.Key{Kind: model.KindProduct, ID: l.ProductID},
			model.Key{Kind: model.KindUoM, ID: l.UoMID},
			model.Key{Kind: model.KindLocation, ID: l.LocationID},
			model.Key{Kind: model.KindLocation, ID: l.LocationDestID},
			model.Key{Kind: model.KindLot, ID: l.LotID},
			model.Key{Kind: model.KindPackage, ID: l.PackageID},
			model.Key{Kind: model.KindPackage, ID: l.ResultPackageID},
		)
	}
	seen := make(map[model.Key]bool)
	var recs []model.Record
	for _, k := range keys {
		if k.ID == 0 || seen[k] {
			continue
		}
		seen[k] = true
		if r, ok := b.records[k]; ok {
			recs = append(recs, r)
		}
	}

	return barcode.PickingData{
		Picking: b.picking,
		Lines:   append([]model.Line(nil), b.lines...),
		Records: recs,
	}, nil
}

// FetchEntities implements barcode.Backend.
func (b *Backend) FetchEntities(_ context.Context, kind model.Kind, ids []int64) ([]model.Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.FetchCalls[kind]++
	if b.FetchErr != nil {
		return nil, b.FetchErr
	}
	var out []model.Record
	for _, id := range ids {
		if r, ok := b.records[model.Key{Kind: kind, ID: id}]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// LookupBarcode implements barcode.Backend.
func (b *Backend) LookupBarcode(_ context.Context, q barcode.BarcodeQuery) ([]model.Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.LookupCalls++
	if b.LookupErr != nil {
		return nil, b.LookupErr
	}
	var out []model.Record
	for _, r := range b.records {
		bc, ok := r.(model.Barcoded)
		if !ok || bc.BarcodeValue() != q.Barcode {
			continue
		}
		if lot, ok := r.(model.Lot); ok && lot.ProductID != q.ProductID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// FetchQuants implements barcode.Backend.
func (b *Backend) FetchQuants(_ context.Context, packageID int64) ([]model.Quant, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.QuantCalls[packageID]++
	if b.QuantsErr != nil {
		return nil, b.QuantsErr
	}
	return append([]model.Quant(nil), b.quants[packageID]...), nil
}

// Save implements barcode.Backend. The whole command applies or nothing does.
func (b *Backend) Save(_ context.Context, cmd barcode.SaveCommand) (barcode.SaveResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.SaveErr != nil {
		return barcode.SaveResult{}, b.SaveErr
	}

	lines := append([]model.Line(nil), b.lines...)
	res := barcode.SaveResult{NewIDs: make(map[string]int64)}
	for _, c := range cmd.Commands {
		switch c.Kind {
		case barcode.CommandCreate:
			var l model.Line
			c.Apply(&l)
			l.ID = b.newID()
			l.VirtualID = c.VirtualID
			lines = append(lines, l)
			res.NewIDs[c.VirtualID] = l.ID
		case barcode.CommandUpdate:
			i := indexOf(lines, c.ID)
			if i < 0 {
				return barcode.SaveResult{}, fmt.Errorf("line %d does not exist", c.ID)
			}
			c.Apply(&lines[i])
		case barcode.CommandDelete:
			i := indexOf(lines, c.ID)
			if i < 0 {
				return barcode.SaveResult{}, fmt.Errorf("line %d does not exist", c.ID)
			}
			lines = append(lines[:i:i], lines[i+1:]...)
		}
	}
	b.lines = lines
	b.Saves = append(b.Saves, cmd)
	return res, nil
}

func indexOf(lines []model.Line, id int64) int {
	for i, l := range lines {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// CallAction implements barcode.Backend.
func (b *Backend) CallAction(_ context.Context, pickingID int64, method string, args barcode.ActionArgs) (barcode.ActionResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Calls = append(b.Calls, Call{Method: method, Args: args})
	if b.ActionErr != nil {
		return barcode.ActionResult{}, b.ActionErr
	}
	if pickingID != b.picking.ID {
		return barcode.ActionResult{}, fmt.Errorf("picking %d not found", pickingID)
	}

	switch method {
	case barcode.MethodPutInPack:
		if b.picking.PromptPackageType && args.PackageTypeID == 0 {
			return barcode.ActionResult{Action: &barcode.ActionDescriptor{
				Type: "wizard",
				Name: barcode.WizardPackageType,
				Context: map[string]interface{}{"line_ids": args.LineIDs},
			}}, nil
		}
		id := b.newID()
		name := args.PackageName
		if name == "" {
			name = fmt.Sprintf("PACK%07d", id)
		}
		pkg := model.Package{ID: id, Name: name, PackageTypeID: args.PackageTypeID, LocationID: b.picking.LocationDestID}
		b.records[pkg.Key()] = pkg
		for _, lid := range args.LineIDs {
			if i := indexOf(b.lines, lid); i >= 0 {
				b.lines[i].ResultPackageID = id
			}
		}
		return barcode.ActionResult{Value: id}, nil

	case barcode.MethodSetPackageType:
		r, ok := b.records[model.Key{Kind: model.KindPackage, ID: args.PackageID}]
		if !ok {
			return barcode.ActionResult{}, fmt.Errorf("package %d not found", args.PackageID)
		}
		pkg := r.(model.Package)
		pkg.PackageTypeID = args.PackageTypeID
		b.records[pkg.Key()] = pkg
		return barcode.ActionResult{Value: true}, nil

	case barcode.MethodValidate:
		if args.Backorder == "" {
			for _, l := range b.lines {
				if l.HasDemand() && !l.IsComplete() {
					return barcode.ActionResult{Action: &barcode.ActionDescriptor{
						Type: "wizard",
						Name: barcode.WizardBackorder,
					}}, nil
				}
			}
		}
		b.picking.State = model.StateDone
		return barcode.ActionResult{Value: true}, nil

	case barcode.MethodCancel:
		b.picking.State = model.StateCancel
		return barcode.ActionResult{Value: true}, nil
	}
	return barcode.ActionResult{}, fmt.Errorf("unknown method %q", method)
}
