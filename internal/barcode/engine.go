package barcode

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/guttosm/picking-service/internal/domain/model"
	"github.com/guttosm/picking-service/internal/metrics"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Config tunes the engine.
type Config struct {
	// MoveScannedLineOnly restricts a destination scan to the lines scanned
	// since the last location change.
	MoveScannedLineOnly bool
	// PackagePrefix marks unknown barcodes that name a new package.
	PackagePrefix string
	// GroupByPackage splits pages by source package.
	GroupByPackage bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithPolicy overrides the policy chosen from the transfer kind.
func WithPolicy(p LinePolicy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithNotifier sets the sink of recoverable outcomes.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithCache shares an entity cache between engines.
func WithCache(c *EntityCache) Option {
	return func(e *Engine) { e.cache = c }
}

// WithLogger sets the engine logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithConfig sets the engine configuration.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// Engine reconciles scans and user edits against the lines of one transfer.
// Every public method holds the engine mutex, so operations on a transfer are
// strictly sequential.
type Engine struct {
	mu sync.Mutex

	backend  Backend
	cache    *EntityCache
	interp   *Interpreter
	policy   LinePolicy
	notifier Notifier
	log      zerolog.Logger
	cfg      Config

	picking model.Picking
	store   *LineStore
	loaded  bool
	exited  bool

	sourceID      int64
	destID        int64
	sourceScanned bool
	// scanned holds the lines touched by scans since the last location change.
	scanned       []string
	selected      string
	lastTouched   string
	lastProductID int64
	page          int

	action   *ActionDescriptor
	rejected bool
}

// Open loads a transfer and returns an engine ready to process scans.
func Open(ctx context.Context, backend Backend, pickingID int64, opts ...Option) (*Engine, error) {
	e := &Engine{
		backend:  backend,
		notifier: discard{},
		log:      zerolog.Nop(),
		store:    NewLineStore(nil),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.cache == nil {
		e.cache = NewEntityCache(backend)
	}
	e.interp = NewInterpreter(e.cache, e.cfg.PackagePrefix)

	if err := e.load(ctx, pickingID); err != nil {
		return nil, err
	}
	return e, nil
}

// load (re)reads the transfer. The scan context survives a reload.
func (e *Engine) load(ctx context.Context, pickingID int64) error {
	data, err := e.backend.LoadPicking(ctx, pickingID)
	if err != nil {
		return fmt.Errorf("load picking %d: %w", pickingID, err)
	}
	if err := e.cache.Load(ctx, data.Records); err != nil {
		return err
	}

	productIDs := make([]int64, 0, len(data.Lines))
	uomIDs := make([]int64, 0, len(data.Lines))
	packageIDs := make([]int64, 0)
	for _, l := range data.Lines {
		productIDs = append(productIDs, l.ProductID)
		uomIDs = append(uomIDs, l.UoMID)
		if l.PackageID != 0 {
			packageIDs = append(packageIDs, l.PackageID)
		}
	}
	if err := e.cache.Ensure(ctx, model.KindProduct, productIDs); err != nil {
		return err
	}
	if err := e.cache.Ensure(ctx, model.KindUoM, uomIDs); err != nil {
		return err
	}
	e.cache.ForgetQuants(packageIDs...)

	e.picking = data.Picking
	e.store.Replace(data.Lines)
	if e.policy == nil {
		e.policy = PolicyFor(e.picking, e.cfg.GroupByPackage)
	}

	if !e.loaded {
		e.loaded = true
		e.sourceID = e.policy.DefaultSource(e.picking)
		e.destID = e.policy.DefaultDestination(e.picking)
		if pages := e.pages(); len(pages) > 0 {
			e.setPage(pages, 0)
		}
	} else {
		e.dropStaleRefs()
		e.alignPage()
	}

	e.log.Debug().
		Int64("picking_id", e.picking.ID).
		Int("lines", e.store.Len()).
		Msg("picking loaded")
	return nil
}

func (e *Engine) dropStaleRefs() {
	if _, ok := e.store.Get(e.selected); !ok {
		e.selected = ""
	}
	if _, ok := e.store.Get(e.lastTouched); !ok {
		e.lastTouched = ""
	}
	kept := e.scanned[:0]
	for _, vid := range e.scanned {
		if _, ok := e.store.Get(vid); ok {
			kept = append(kept, vid)
		}
	}
	e.scanned = kept
}

// begin starts a mutating operation.
func (e *Engine) begin() error {
	e.action = nil
	e.rejected = false
	if e.exited || e.picking.IsClosed() {
		return ErrClosed
	}
	return nil
}

func (e *Engine) notify(t NotificationType, key string, kv ...string) {
	if t != NotifySuccess {
		e.rejected = true
	}
	n := Notification{Type: t, Key: key}
	if len(kv) > 1 {
		n.Args = make(map[string]string, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			n.Args[kv[i]] = kv[i+1]
		}
	}
	e.log.Debug().Str("type", string(t)).Str("key", key).Msg("notify")
	e.notifier.Notify(n)
}

func (e *Engine) pages() []Page {
	return e.store.Pages(e.policy.PageKey, e.policy.Less)
}

func (e *Engine) setPage(pages []Page, i int) {
	e.page = i
	if i >= 0 && i < len(pages) {
		e.sourceID = pages[i].Key.LocationID
		e.destID = pages[i].Key.LocationDestID
	}
}

// alignPage moves to the first page matching the location context, or to no
// page when there is none yet.
func (e *Engine) alignPage() {
	want := e.policy.PageKey(model.Line{LocationID: e.sourceID, LocationDestID: e.destID})
	pages := e.pages()
	if e.page >= 0 && e.page < len(pages) {
		k := pages[e.page].Key
		if k.LocationID == want.LocationID && k.LocationDestID == want.LocationDestID {
			return
		}
	}
	for i, p := range pages {
		if p.Key.LocationID == want.LocationID && p.Key.LocationDestID == want.LocationDestID {
			e.page = i
			return
		}
	}
	e.page = -1
}

// showLine moves to the page holding vid.
func (e *Engine) showLine(vid string) {
	for i, p := range e.pages() {
		for _, l := range p.Lines {
			if l.VirtualID == vid {
				e.page = i
				return
			}
		}
	}
}

func (e *Engine) currentPage() Page {
	pages := e.pages()
	if e.page >= 0 && e.page < len(pages) {
		return pages[e.page]
	}
	return Page{Key: e.policy.PageKey(model.Line{LocationID: e.sourceID, LocationDestID: e.destID})}
}

// touch records a line as the target of the latest scan or edit.
func (e *Engine) touch(vid string) {
	e.selected = vid
	e.lastTouched = vid
	for _, s := range e.scanned {
		if s == vid {
			return
		}
	}
	e.scanned = append(e.scanned, vid)
}

func (e *Engine) currentProductID() int64 {
	if l, ok := e.store.Get(e.selected); ok {
		return l.ProductID
	}
	return e.lastProductID
}

// save sends the pending edits. It reports false after a transport failure,
// which is notified and leaves the store untouched.
func (e *Engine) save(ctx context.Context) (bool, error) {
	cmd := Compile(e.picking.ID, e.store)
	if cmd.IsEmpty() {
		return true, nil
	}

	start := time.Now()
	res, err := e.backend.Save(ctx, cmd)
	if err != nil {
		metrics.RecordSave(time.Since(start), "error")
		e.log.Warn().Err(err).Int64("picking_id", e.picking.ID).Msg("save failed")
		e.notify(NotifyDanger, MsgSaveFailed, "error", err.Error())
		return false, nil
	}
	if err := e.store.Commit(cmd, res); err != nil {
		metrics.RecordSave(time.Since(start), "error")
		return false, err
	}
	metrics.RecordSave(time.Since(start), "success")
	for _, kind := range []CommandKind{CommandCreate, CommandUpdate, CommandDelete} {
		metrics.RecordSaveCommands(string(kind), cmd.Count(kind))
	}
	e.log.Debug().
		Int64("picking_id", e.picking.ID).
		Int("commands", len(cmd.Commands)).
		Msg("lines saved")
	return true, nil
}

// ensureQty validates a manual quantity for a product.
func (e *Engine) ensureQty(p model.Product, qty decimal.Decimal) bool {
	if qty.IsNegative() {
		e.notify(NotifyDanger, MsgInvalidQuantity, "quantity", qty.String())
		return false
	}
	if p.Tracking == model.TrackingSerial && qty.GreaterThan(decimal.NewFromInt(1)) {
		e.notify(NotifyDanger, MsgSerialQuantity, "product", p.Name)
		return false
	}
	return true
}

// product returns a product, fetching it when needed. A fetch failure is
// notified and reported as false.
func (e *Engine) product(ctx context.Context, id int64) (model.Product, bool, error) {
	if err := e.cache.Ensure(ctx, model.KindProduct, []int64{id}); err != nil {
		e.notify(NotifyDanger, MsgLookupFailed, "error", err.Error())
		return model.Product{}, false, nil
	}
	p, ok := e.cache.Product(id)
	if !ok {
		e.notify(NotifyWarning, MsgProductNotInPicking)
		return model.Product{}, false, nil
	}
	if err := e.cache.Ensure(ctx, model.KindUoM, []int64{p.UoMID}); err != nil {
		e.notify(NotifyDanger, MsgLookupFailed, "error", err.Error())
		return model.Product{}, false, nil
	}
	if _, ok := e.cache.UoM(p.UoMID); !ok {
		return model.Product{}, false, fmt.Errorf("%w: uom %d of product %d", ErrMissingReference, p.UoMID, p.ID)
	}
	return p, true, nil
}

// LineInput describes a line added by hand.
type LineInput struct {
	ProductID int64
	Qty       decimal.Decimal
	LotName   string
	OwnerID   int64
}

// AddLine adds a line for a product at the current locations and selects it.
// It returns the new virtual id, or "" when the input was rejected.
func (e *Engine) AddLine(ctx context.Context, in LineInput) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.begin(); err != nil {
		return "", err
	}

	p, ok, err := e.product(ctx, in.ProductID)
	if err != nil || !ok {
		return "", err
	}
	qty := in.Qty
	if qty.IsZero() {
		qty = decimal.NewFromInt(1)
	}
	if !e.ensureQty(p, qty) {
		return "", nil
	}
	if in.LotName != "" && !p.IsTracked() {
		e.notify(NotifyWarning, MsgLotsDisabled, "product", p.Name)
		return "", nil
	}

	l := e.store.Add(model.Line{
		PickingID:      e.picking.ID,
		ProductID:      p.ID,
		UoMID:          p.UoMID,
		LotName:        in.LotName,
		OwnerID:        in.OwnerID,
		LocationID:     e.sourceID,
		LocationDestID: e.destID,
		QtyDone:        qty,
	})
	e.touch(l.VirtualID)
	e.lastProductID = p.ID
	e.showLine(l.VirtualID)
	return l.VirtualID, nil
}

// SetQuantity overwrites the done quantity of a line.
func (e *Engine) SetQuantity(ctx context.Context, vid string, qty decimal.Decimal) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.begin(); err != nil {
		return err
	}

	l, ok := e.store.Get(vid)
	if !ok {
		return ErrLineNotFound
	}
	p, ok, err := e.product(ctx, l.ProductID)
	if err != nil || !ok {
		return err
	}
	if !e.ensureQty(p, qty) {
		return nil
	}
	e.store.Update(vid, func(l *model.Line) { l.QtyDone = qty })
	e.touch(vid)
	return nil
}

// RemoveLine drops a line; a persisted one is deleted on the next save.
func (e *Engine) RemoveLine(vid string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.begin(); err != nil {
		return err
	}
	if !e.store.Remove(vid) {
		return ErrLineNotFound
	}
	e.dropStaleRefs()
	e.notify(NotifySuccess, MsgLineRemoved)
	return nil
}

// SelectLine selects a line and moves to its page.
func (e *Engine) SelectLine(vid string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.store.Get(vid)
	if !ok {
		return ErrLineNotFound
	}
	e.selected = vid
	e.lastProductID = l.ProductID
	e.showLine(vid)
	e.setPage(e.pages(), e.page)
	return nil
}

// NextPage saves and moves to the next page, wrapping around.
func (e *Engine) NextPage(ctx context.Context) error {
	return e.turnPage(ctx, 1)
}

// PreviousPage saves and moves to the previous page, wrapping around.
func (e *Engine) PreviousPage(ctx context.Context) error {
	return e.turnPage(ctx, -1)
}

func (e *Engine) turnPage(ctx context.Context, step int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.begin(); err != nil {
		return err
	}
	if ok, err := e.save(ctx); err != nil || !ok {
		return err
	}
	pages := e.pages()
	if len(pages) == 0 {
		return nil
	}
	next := 0
	if e.page >= 0 {
		next = ((e.page+step)%len(pages) + len(pages)) % len(pages)
	}
	e.setPage(pages, next)
	e.scanned = nil
	e.sourceScanned = false
	return nil
}

// Save sends the pending edits in one round-trip.
func (e *Engine) Save(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.begin(); err != nil {
		return err
	}
	changed := e.store.HasChanges()
	ok, err := e.save(ctx)
	if err != nil {
		return err
	}
	if ok && changed {
		e.notify(NotifySuccess, MsgSaved)
	}
	return nil
}

// Exit saves and closes the engine. It stays open when the save failed.
func (e *Engine) Exit(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.exited {
		return nil
	}
	if e.picking.IsClosed() {
		e.exited = true
		return nil
	}
	ok, err := e.save(ctx)
	if err != nil {
		return err
	}
	e.exited = ok
	return nil
}

// Refresh reloads the transfer, discarding nothing that was saved.
func (e *Engine) Refresh(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.load(ctx, e.picking.ID)
}

// Exited reports whether Exit completed.
func (e *Engine) Exited() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.exited
}

// Picking returns the transfer.
func (e *Engine) Picking() model.Picking {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.picking
}

// Lines returns every line in insertion order.
func (e *Engine) Lines() []model.Line {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Lines()
}

// PendingCommand compiles the current edits without sending them.
func (e *Engine) PendingCommand() SaveCommand {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Compile(e.picking.ID, e.store)
}

// View is a consistent snapshot of the engine state for display.
type View struct {
	Picking           model.Picking
	Pages             []Page
	PageIndex         int
	Lines             []model.Line
	PackageGroups     []PackageGroup
	Selected          string
	SourceID          int64
	DestinationID     int64
	HighlightValidate bool
	HighlightNext     bool
	Dirty             bool
	Action            *ActionDescriptor
}

// View returns the current state.
func (e *Engine) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()

	pages := e.pages()
	v := View{
		Picking:       e.picking,
		Pages:         pages,
		PageIndex:     e.page,
		Selected:      e.selected,
		SourceID:      e.sourceID,
		DestinationID: e.destID,
		Dirty:         e.store.HasChanges(),
		Action:        e.action,
	}
	if e.page >= 0 && e.page < len(pages) {
		v.Lines = pages[e.page].Lines
	}
	for _, g := range e.store.PackageGroups() {
		if pkg, ok := e.cache.Package(g.PackageID); ok {
			g.Name = pkg.Name
		}
		v.PackageGroups = append(v.PackageGroups, g)
	}
	v.HighlightValidate, v.HighlightNext = e.highlights(pages)
	return v
}

// HighlightValidate reports whether the transfer looks ready to validate.
func (e *Engine) HighlightValidate() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, _ := e.highlights(e.pages())
	return v
}

// HighlightNext reports whether the current page is done and another follows.
func (e *Engine) HighlightNext() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, n := e.highlights(e.pages())
	return n
}

func (e *Engine) highlights(pages []Page) (validate, next bool) {
	if e.page < 0 || e.page >= len(pages) || len(pages[e.page].Lines) == 0 {
		return false, false
	}
	done := false
	for _, l := range pages[e.page].Lines {
		if e.policy.Demand(l).Valid && !e.policy.IsComplete(l) {
			return false, false
		}
		if l.QtyDone.IsPositive() {
			done = true
		}
	}
	last := e.page == len(pages)-1
	return done && last, !last
}

// IsFatal reports whether err must abort the caller instead of being shown
// as a recoverable condition.
func IsFatal(err error) bool {
	return errors.Is(err, ErrMissingReference) ||
		errors.Is(err, ErrCorruptEvent) ||
		errors.Is(err, ErrMalformedResponse)
}
