package barcode

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/guttosm/picking-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// PageKey identifies a page: a location pair and an optional group.
type PageKey struct {
	LocationID     int64  `json:"location_id"`
	LocationDestID int64  `json:"location_dest_id"`
	Group          string `json:"group,omitempty"`
}

// Page is one screen of work. Lines are in page order.
type Page struct {
	Key   PageKey
	Lines []model.Line
}

// PackageGroup gathers the lines taken from one source package.
type PackageGroup struct {
	PackageID    int64
	Name         string
	Lines        []model.Line
	QtyDone      decimal.Decimal
	FullyScanned bool
}

// LineStore is the working set of operation lines of one transfer.
// Lines keep their insertion order; readers get copies.
type LineStore struct {
	lines   []model.Line
	index   map[string]int
	saved   map[string]model.LineValues
	removed []model.Line
}

// NewLineStore creates a store from persisted lines, all considered clean.
func NewLineStore(lines []model.Line) *LineStore {
	s := &LineStore{}
	s.Replace(lines)
	return s
}

// Replace swaps the whole working set for lines freshly loaded from the
// backing store.
func (s *LineStore) Replace(lines []model.Line) {
	s.lines = make([]model.Line, 0, len(lines))
	s.saved = make(map[string]model.LineValues, len(lines))
	s.removed = nil
	for _, l := range lines {
		if l.VirtualID == "" {
			l.VirtualID = uuid.NewString()
		}
		s.lines = append(s.lines, l)
		if l.ID != 0 {
			s.saved[l.VirtualID] = l.Values()
		}
	}
	s.reindex()
}

func (s *LineStore) reindex() {
	s.index = make(map[string]int, len(s.lines))
	for i, l := range s.lines {
		s.index[l.VirtualID] = i
	}
}

// Len returns the number of lines.
func (s *LineStore) Len() int { return len(s.lines) }

// Lines returns the lines in insertion order.
func (s *LineStore) Lines() []model.Line {
	return append([]model.Line(nil), s.lines...)
}

// Get returns the line with the given virtual id.
func (s *LineStore) Get(vid string) (model.Line, bool) {
	i, ok := s.index[vid]
	if !ok {
		return model.Line{}, false
	}
	return s.lines[i], true
}

// Add appends a line, assigning a virtual id when it has none, and returns it.
func (s *LineStore) Add(l model.Line) model.Line {
	if l.VirtualID == "" {
		l.VirtualID = uuid.NewString()
	}
	s.lines = append(s.lines, l)
	s.index[l.VirtualID] = len(s.lines) - 1
	return l
}

// Update applies fn to the line with the given virtual id.
// The virtual and server ids cannot be changed through it.
func (s *LineStore) Update(vid string, fn func(l *model.Line)) bool {
	i, ok := s.index[vid]
	if !ok {
		return false
	}
	l := s.lines[i]
	fn(&l)
	l.VirtualID, l.ID = s.lines[i].VirtualID, s.lines[i].ID
	s.lines[i] = l
	return true
}

// Remove drops a line. A persisted line is kept aside for a delete command.
func (s *LineStore) Remove(vid string) bool {
	i, ok := s.index[vid]
	if !ok {
		return false
	}
	if l := s.lines[i]; l.ID != 0 {
		s.removed = append(s.removed, l)
	}
	s.lines = append(s.lines[:i:i], s.lines[i+1:]...)
	delete(s.saved, vid)
	s.reindex()
	return true
}

// IsDirty reports whether a line differs from its last saved state.
func (s *LineStore) IsDirty(vid string) bool {
	l, ok := s.Get(vid)
	if !ok {
		return false
	}
	return s.isDirty(l)
}

func (s *LineStore) isDirty(l model.Line) bool {
	if l.ID == 0 {
		return true
	}
	snap, ok := s.saved[l.VirtualID]
	return !ok || !snap.Equal(l.Values())
}

// HasChanges reports whether a save would send anything.
func (s *LineStore) HasChanges() bool {
	if len(s.removed) > 0 {
		return true
	}
	for _, l := range s.lines {
		if s.isDirty(l) {
			return true
		}
	}
	return false
}

// Snapshot returns the last saved projection of a line.
func (s *LineStore) Snapshot(vid string) (model.LineValues, bool) {
	v, ok := s.saved[vid]
	return v, ok
}

// Removed returns the persisted lines awaiting deletion, in removal order.
func (s *LineStore) Removed() []model.Line {
	return append([]model.Line(nil), s.removed...)
}

// Checkpoint is an opaque copy of the store state.
type Checkpoint struct {
	lines   []model.Line
	saved   map[string]model.LineValues
	removed []model.Line
}

// Checkpoint captures the current state for a later Restore.
func (s *LineStore) Checkpoint() Checkpoint {
	saved := make(map[string]model.LineValues, len(s.saved))
	for k, v := range s.saved {
		saved[k] = v
	}
	return Checkpoint{
		lines:   append([]model.Line(nil), s.lines...),
		saved:   saved,
		removed: append([]model.Line(nil), s.removed...),
	}
}

// Restore rolls the store back to a checkpoint.
func (s *LineStore) Restore(cp Checkpoint) {
	s.lines = append([]model.Line(nil), cp.lines...)
	s.saved = make(map[string]model.LineValues, len(cp.saved))
	for k, v := range cp.saved {
		s.saved[k] = v
	}
	s.removed = append([]model.Line(nil), cp.removed...)
	s.reindex()
}

// Commit records a successful save: created lines get their server ids and
// every saved line its new snapshot, which clears its dirtiness.
func (s *LineStore) Commit(cmd SaveCommand, res SaveResult) error {
	for _, c := range cmd.Commands {
		if c.Kind != CommandCreate {
			continue
		}
		if _, ok := res.NewIDs[c.VirtualID]; !ok {
			return fmt.Errorf("%w: no id returned for line %s", ErrMalformedResponse, c.VirtualID)
		}
	}

	deleted := make(map[int64]bool)
	for _, c := range cmd.Commands {
		switch c.Kind {
		case CommandCreate:
			if i, ok := s.index[c.VirtualID]; ok {
				s.lines[i].ID = res.NewIDs[c.VirtualID]
				s.saved[c.VirtualID] = c.projection
			}
		case CommandUpdate:
			if _, ok := s.index[c.VirtualID]; ok {
				s.saved[c.VirtualID] = c.projection
			}
		case CommandDelete:
			deleted[c.ID] = true
		}
	}

	if len(deleted) > 0 {
		kept := s.removed[:0]
		for _, l := range s.removed {
			if !deleted[l.ID] {
				kept = append(kept, l)
			}
		}
		s.removed = kept
	}
	return nil
}

// Pages partitions the lines by key. Pages appear in the order their first
// line was inserted; within a page lines are ordered by less, stably.
func (s *LineStore) Pages(key func(model.Line) PageKey, less func(a, b model.Line) bool) []Page {
	var pages []Page
	pos := make(map[PageKey]int)
	for _, l := range s.lines {
		k := key(l)
		i, ok := pos[k]
		if !ok {
			i = len(pages)
			pos[k] = i
			pages = append(pages, Page{Key: k})
		}
		pages[i].Lines = append(pages[i].Lines, l)
	}
	for i := range pages {
		lines := pages[i].Lines
		sort.SliceStable(lines, func(a, b int) bool { return less(lines[a], lines[b]) })
	}
	return pages
}

// PackageGroups groups lines by source package, in insertion order.
func (s *LineStore) PackageGroups() []PackageGroup {
	var groups []PackageGroup
	pos := make(map[int64]int)
	for _, l := range s.lines {
		if l.PackageID == 0 {
			continue
		}
		i, ok := pos[l.PackageID]
		if !ok {
			i = len(groups)
			pos[l.PackageID] = i
			groups = append(groups, PackageGroup{PackageID: l.PackageID, QtyDone: decimal.Zero, FullyScanned: true})
		}
		g := &groups[i]
		g.Lines = append(g.Lines, l)
		g.QtyDone = g.QtyDone.Add(l.QtyDone)
		if !l.QtyDone.IsPositive() || (l.HasDemand() && !l.IsComplete()) {
			g.FullyScanned = false
		}
	}
	return groups
}

// GroupByPackage is a page group function splitting pages by source package.
func GroupByPackage(l model.Line) string {
	if l.PackageID == 0 {
		return ""
	}
	return "package:" + strconv.FormatInt(l.PackageID, 10)
}
