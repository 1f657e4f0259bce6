package barcode

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/guttosm/picking-service/internal/domain/model"
	"github.com/guttosm/picking-service/internal/metrics"
	"golang.org/x/sync/singleflight"
)

// EntityCache holds read-only snapshots of referenced records keyed by
// (kind, id), indexed by barcode. It is safe for concurrent use and may be
// shared by every session of a process; concurrent fetches of the same ids
// are collapsed into one backend call.
//
// Loading is two-phase: raw records are stored as fetched, then packages are
// enriched into new snapshots carrying their resolved package type.
type EntityCache struct {
	backend Backend
	group   singleflight.Group

	mu          sync.RWMutex
	records     map[model.Key]model.Record
	rawPackages map[int64]model.Package
	byBarcode   map[string][]model.Key
	barcodeOf   map[model.Key]string
	quants      map[int64][]model.Quant
}

// NewEntityCache creates an empty cache backed by backend.
func NewEntityCache(backend Backend) *EntityCache {
	return &EntityCache{
		backend:     backend,
		records:     make(map[model.Key]model.Record),
		rawPackages: make(map[int64]model.Package),
		byBarcode:   make(map[string][]model.Key),
		barcodeOf:   make(map[model.Key]string),
		quants:      make(map[int64][]model.Quant),
	}
}

// Load stores records, fetching the package types their packages reference
// before enriching them.
func (c *EntityCache) Load(ctx context.Context, records []model.Record) error {
	var typeIDs []int64
	for _, r := range records {
		if p, ok := r.(model.Package); ok && p.PackageTypeID != 0 {
			typeIDs = append(typeIDs, p.PackageTypeID)
		}
	}
	if err := c.Ensure(ctx, model.KindPackageType, typeIDs); err != nil {
		return err
	}
	c.put(records)
	return nil
}

// put stores raw records and runs the enrich pass over affected packages.
func (c *EntityCache) put(records []model.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	touchedTypes := make(map[int64]bool)
	touchedPackages := make(map[int64]bool)
	for _, r := range records {
		switch rec := r.(type) {
		case model.Package:
			rec.Type = model.PackageType{}
			c.rawPackages[rec.ID] = rec
			touchedPackages[rec.ID] = true
			c.index(rec)
		case model.PackageType:
			c.records[rec.Key()] = rec
			touchedTypes[rec.ID] = true
			c.index(rec)
		default:
			c.records[r.Key()] = r
			if b, ok := r.(model.Barcoded); ok {
				c.index(b)
			}
		}
	}

	for id, raw := range c.rawPackages {
		if touchedPackages[id] || touchedTypes[raw.PackageTypeID] {
			c.records[raw.Key()] = c.enrich(raw)
		}
	}
}

// enrich returns a new package snapshot carrying its package type.
// Callers hold the write lock.
func (c *EntityCache) enrich(p model.Package) model.Package {
	if p.PackageTypeID == 0 {
		return p
	}
	if t, ok := c.records[model.Key{Kind: model.KindPackageType, ID: p.PackageTypeID}].(model.PackageType); ok {
		return p.WithType(t)
	}
	return p
}

// index maps the record's barcode to its key, dropping a stale mapping.
// Callers hold the write lock.
func (c *EntityCache) index(r model.Barcoded) {
	key := r.Key()
	code := r.BarcodeValue()
	if old, ok := c.barcodeOf[key]; ok {
		if old == code {
			return
		}
		c.byBarcode[old] = removeKey(c.byBarcode[old], key)
		if len(c.byBarcode[old]) == 0 {
			delete(c.byBarcode, old)
		}
		delete(c.barcodeOf, key)
	}
	if code == "" {
		return
	}
	c.byBarcode[code] = append(c.byBarcode[code], key)
	c.barcodeOf[key] = code
}

func removeKey(keys []model.Key, key model.Key) []model.Key {
	out := keys[:0]
	for _, k := range keys {
		if k != key {
			out = append(out, k)
		}
	}
	return out
}

// Ensure fetches every id of kind not yet cached in one backend call.
func (c *EntityCache) Ensure(ctx context.Context, kind model.Kind, ids []int64) error {
	missing := c.missing(kind, ids)
	if len(missing) == 0 {
		return nil
	}

	flightKey := "fetch:" + string(kind) + ":" + joinIDs(missing)
	v, err, _ := c.group.Do(flightKey, func() (interface{}, error) {
		recs, err := c.backend.FetchEntities(ctx, kind, missing)
		if err != nil {
			metrics.RecordEntityFetch(string(kind), "error")
			return nil, err
		}
		metrics.RecordEntityFetch(string(kind), "success")
		return recs, nil
	})
	if err != nil {
		return fmt.Errorf("fetch %s %v: %w", kind, missing, err)
	}
	return c.Load(ctx, v.([]model.Record))
}

func (c *EntityCache) missing(kind model.Kind, ids []int64) []int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[int64]bool, len(ids))
	var out []int64
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		if kind == model.KindPackage {
			if _, ok := c.rawPackages[id]; ok {
				continue
			}
		} else if _, ok := c.records[model.Key{Kind: kind, ID: id}]; ok {
			continue
		}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// Get returns the cached snapshot for key.
func (c *EntityCache) Get(key model.Key) (model.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.records[key]
	return r, ok
}

// ByBarcode returns the cached records carrying barcode.
func (c *EntityCache) ByBarcode(barcode string) []model.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := c.byBarcode[barcode]
	out := make([]model.Record, 0, len(keys))
	for _, k := range keys {
		if r, ok := c.records[k]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Lookup asks the backend for the records carrying q.Barcode and caches them.
func (c *EntityCache) Lookup(ctx context.Context, q BarcodeQuery) ([]model.Record, error) {
	flightKey := "lookup:" + q.Barcode + ":" + strconv.FormatInt(q.ProductID, 10)
	v, err, _ := c.group.Do(flightKey, func() (interface{}, error) {
		return c.backend.LookupBarcode(ctx, q)
	})
	if err != nil {
		metrics.RecordEntityFetch("barcode", "error")
		return nil, fmt.Errorf("lookup barcode %q: %w", q.Barcode, err)
	}
	metrics.RecordEntityFetch("barcode", "success")

	found := v.([]model.Record)
	if err := c.Load(ctx, found); err != nil {
		return nil, err
	}
	out := make([]model.Record, 0, len(found))
	for _, r := range found {
		if cached, ok := c.Get(r.Key()); ok {
			out = append(out, cached)
		}
	}
	return out, nil
}

// Quants returns the quants of a package, fetching them once.
func (c *EntityCache) Quants(ctx context.Context, packageID int64) ([]model.Quant, error) {
	c.mu.RLock()
	q, ok := c.quants[packageID]
	c.mu.RUnlock()
	if ok {
		return append([]model.Quant(nil), q...), nil
	}

	v, err, _ := c.group.Do("quants:"+strconv.FormatInt(packageID, 10), func() (interface{}, error) {
		return c.backend.FetchQuants(ctx, packageID)
	})
	if err != nil {
		metrics.RecordEntityFetch("quant", "error")
		return nil, fmt.Errorf("fetch quants of package %d: %w", packageID, err)
	}
	metrics.RecordEntityFetch("quant", "success")

	quants := v.([]model.Quant)
	c.mu.Lock()
	c.quants[packageID] = quants
	c.mu.Unlock()
	return append([]model.Quant(nil), quants...), nil
}

// ForgetQuants drops cached quants so the next read refetches them.
func (c *EntityCache) ForgetQuants(packageIDs ...int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range packageIDs {
		delete(c.quants, id)
	}
}

func getAs[T model.Record](c *EntityCache, kind model.Kind, id int64) (T, bool) {
	var zero T
	r, ok := c.Get(model.Key{Kind: kind, ID: id})
	if !ok {
		return zero, false
	}
	v, ok := r.(T)
	return v, ok
}

// Product returns a cached product.
func (c *EntityCache) Product(id int64) (model.Product, bool) {
	return getAs[model.Product](c, model.KindProduct, id)
}

// Packaging returns a cached packaging.
func (c *EntityCache) Packaging(id int64) (model.Packaging, bool) {
	return getAs[model.Packaging](c, model.KindPackaging, id)
}

// UoM returns a cached unit of measure.
func (c *EntityCache) UoM(id int64) (model.UoM, bool) {
	return getAs[model.UoM](c, model.KindUoM, id)
}

// Location returns a cached location.
func (c *EntityCache) Location(id int64) (model.Location, bool) {
	return getAs[model.Location](c, model.KindLocation, id)
}

// Lot returns a cached lot.
func (c *EntityCache) Lot(id int64) (model.Lot, bool) {
	return getAs[model.Lot](c, model.KindLot, id)
}

// Package returns a cached, enriched package.
func (c *EntityCache) Package(id int64) (model.Package, bool) {
	return getAs[model.Package](c, model.KindPackage, id)
}

// PackageType returns a cached package type.
func (c *EntityCache) PackageType(id int64) (model.PackageType, bool) {
	return getAs[model.PackageType](c, model.KindPackageType, id)
}

// Len returns the number of cached records.
func (c *EntityCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}
