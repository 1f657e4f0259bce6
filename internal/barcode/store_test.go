package barcode_test

import (
	"testing"

	"github.com/guttosm/picking-service/internal/barcode"
	bt "github.com/guttosm/picking-service/internal/barcode/barcodetest"
	"github.com/guttosm/picking-service/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func persistedLine(id int64, vid string, product model.Product, demand int64) model.Line {
	return model.Line{
		ID:             id,
		VirtualID:      vid,
		PickingID:      1,
		ProductID:      product.ID,
		UoMID:          product.UoMID,
		LocationID:     bt.Stock.ID,
		LocationDestID: bt.Shelf1.ID,
		QtyDone:        decimal.Zero,
		QtyDemand:      bt.Demand(demand),
	}
}

func commitAll(t *testing.T, s *barcode.LineStore) barcode.SaveCommand {
	t.Helper()
	cmd := barcode.Compile(1, s)
	res := barcode.SaveResult{NewIDs: map[string]int64{}}
	next := int64(5000)
	for _, c := range cmd.Commands {
		if c.Kind == barcode.CommandCreate {
			next++
			res.NewIDs[c.VirtualID] = next
		}
	}
	require.NoError(t, s.Commit(cmd, res))
	return cmd
}

func TestLineStore_LoadedLinesAreClean(t *testing.T) {
	s := barcode.NewLineStore([]model.Line{persistedLine(1, "a", bt.ProductX, 2)})

	assert.False(t, s.HasChanges())
	assert.False(t, s.IsDirty("a"))
	assert.True(t, barcode.Compile(1, s).IsEmpty())
}

func TestLineStore_UpdateProtectsIdentity(t *testing.T) {
	s := barcode.NewLineStore([]model.Line{persistedLine(1, "a", bt.ProductX, 2)})

	ok := s.Update("a", func(l *model.Line) {
		l.ID = 99
		l.VirtualID = "b"
		l.QtyDone = bt.Qty(1)
	})
	require.True(t, ok)

	l, found := s.Get("a")
	require.True(t, found)
	assert.Equal(t, int64(1), l.ID)
	assert.True(t, s.IsDirty("a"))
	assert.False(t, s.Update("missing", func(*model.Line) {}))
}

func TestLineStore_RevertedEditIsClean(t *testing.T) {
	s := barcode.NewLineStore([]model.Line{persistedLine(1, "a", bt.ProductX, 2)})

	s.Update("a", func(l *model.Line) { l.QtyDone = bt.Qty(1) })
	s.Update("a", func(l *model.Line) { l.QtyDone = decimal.RequireFromString("0.000") })

	assert.False(t, s.HasChanges())
}

func TestCompile_Ordering(t *testing.T) {
	s := barcode.NewLineStore([]model.Line{
		persistedLine(1, "a", bt.ProductX, 2),
		persistedLine(2, "b", bt.ProductY, 1),
		persistedLine(3, "c", bt.ProductZ, 1),
	})

	s.Remove("a")
	created := s.Add(model.Line{ProductID: bt.ProductY.ID, UoMID: bt.Units.ID, QtyDone: bt.Qty(1)})
	s.Update("c", func(l *model.Line) { l.QtyDone = bt.Qty(1) })
	s.Update("b", func(l *model.Line) { l.LocationDestID = bt.Shelf2.ID })
	s.Remove("c")

	cmd := barcode.Compile(7, s)
	require.Len(t, cmd.Commands, 4)
	assert.Equal(t, int64(7), cmd.PickingID)

	assert.Equal(t, barcode.CommandUpdate, cmd.Commands[0].Kind)
	assert.Equal(t, "b", cmd.Commands[0].VirtualID)
	assert.Equal(t, map[string]interface{}{model.FieldLocationDestID: bt.Shelf2.ID}, cmd.Commands[0].Values)

	assert.Equal(t, barcode.CommandCreate, cmd.Commands[1].Kind)
	assert.Equal(t, created.VirtualID, cmd.Commands[1].VirtualID)
	assert.Equal(t, bt.ProductY.ID, cmd.Commands[1].Values[model.FieldProductID])
	assert.Equal(t, int64(7), cmd.Commands[1].Values[model.FieldPickingID])

	assert.Equal(t, barcode.CommandDelete, cmd.Commands[2].Kind)
	assert.Equal(t, int64(1), cmd.Commands[2].ID)
	assert.Equal(t, barcode.CommandDelete, cmd.Commands[3].Kind)
	assert.Equal(t, int64(3), cmd.Commands[3].ID)
	assert.Nil(t, cmd.Commands[3].Values)

	assert.Equal(t, 2, cmd.Count(barcode.CommandDelete))
}

func TestCompile_EmptyAfterCommit(t *testing.T) {
	s := barcode.NewLineStore([]model.Line{
		persistedLine(1, "a", bt.ProductX, 2),
		persistedLine(2, "b", bt.ProductY, 1),
	})
	s.Update("a", func(l *model.Line) { l.QtyDone = bt.Qty(2) })
	s.Remove("b")
	added := s.Add(model.Line{ProductID: bt.ProductZ.ID, UoMID: bt.Units.ID, LotName: "NEW", QtyDone: bt.Qty(1)})

	sent := commitAll(t, s)
	require.Len(t, sent.Commands, 3)

	assert.True(t, barcode.Compile(1, s).IsEmpty())
	assert.False(t, s.HasChanges())
	assert.Empty(t, s.Removed())
	l, ok := s.Get(added.VirtualID)
	require.True(t, ok)
	assert.Equal(t, int64(5001), l.ID)
}

func TestCommit_EditsAfterCompileStayDirty(t *testing.T) {
	s := barcode.NewLineStore([]model.Line{persistedLine(1, "a", bt.ProductX, 3)})
	s.Update("a", func(l *model.Line) { l.QtyDone = bt.Qty(1) })

	cmd := barcode.Compile(1, s)
	s.Update("a", func(l *model.Line) { l.QtyDone = bt.Qty(2) })
	require.NoError(t, s.Commit(cmd, barcode.SaveResult{}))

	next := barcode.Compile(1, s)
	require.Len(t, next.Commands, 1)
	assert.True(t, bt.Qty(2).Equal(next.Commands[0].Values[model.FieldQtyDone].(decimal.Decimal)))
}

func TestCommit_MissingIDIsMalformed(t *testing.T) {
	s := barcode.NewLineStore(nil)
	added := s.Add(model.Line{ProductID: bt.ProductX.ID, UoMID: bt.Units.ID, QtyDone: bt.Qty(1)})

	cmd := barcode.Compile(1, s)
	err := s.Commit(cmd, barcode.SaveResult{NewIDs: map[string]int64{}})

	assert.ErrorIs(t, err, barcode.ErrMalformedResponse)
	assert.True(t, barcode.IsFatal(err))
	l, _ := s.Get(added.VirtualID)
	assert.Zero(t, l.ID)
	assert.True(t, s.HasChanges())
}

func TestLineStore_CheckpointRestore(t *testing.T) {
	s := barcode.NewLineStore([]model.Line{persistedLine(1, "a", bt.ProductX, 2)})
	cp := s.Checkpoint()

	s.Update("a", func(l *model.Line) { l.QtyDone = bt.Qty(2) })
	s.Add(model.Line{ProductID: bt.ProductY.ID, QtyDone: bt.Qty(1)})
	s.Remove("a")
	require.True(t, s.HasChanges())

	s.Restore(cp)
	assert.False(t, s.HasChanges())
	assert.Equal(t, 1, s.Len())
	l, ok := s.Get("a")
	require.True(t, ok)
	assert.True(t, l.QtyDone.IsZero())
}

func TestLineStore_Pages(t *testing.T) {
	done := persistedLine(1, "done", bt.ProductX, 1)
	done.QtyDone = bt.Qty(1)
	open := persistedLine(2, "open", bt.ProductY, 1)
	other := persistedLine(3, "other", bt.ProductZ, 1)
	other.LocationDestID = bt.Shelf2.ID
	free := persistedLine(4, "free", bt.ProductX, 0)
	free.QtyDemand = decimal.NullDecimal{}

	s := barcode.NewLineStore([]model.Line{done, other, open, free})
	policy := barcode.PickingPolicy{}
	pages := s.Pages(policy.PageKey, policy.Less)

	require.Len(t, pages, 2)
	assert.Equal(t, barcode.PageKey{LocationID: bt.Stock.ID, LocationDestID: bt.Shelf1.ID}, pages[0].Key)
	var order []string
	for _, l := range pages[0].Lines {
		order = append(order, l.VirtualID)
	}
	assert.Equal(t, []string{"open", "free", "done"}, order)
	assert.Equal(t, bt.Shelf2.ID, pages[1].Key.LocationDestID)
}

func TestLineStore_PackageGroups(t *testing.T) {
	a := persistedLine(1, "a", bt.ProductX, 0)
	a.QtyDemand = decimal.NullDecimal{}
	a.PackageID, a.QtyDone = 500, bt.Qty(2)
	b := persistedLine(2, "b", bt.ProductY, 4)
	b.PackageID, b.QtyDone = 500, bt.Qty(1)
	c := persistedLine(3, "c", bt.ProductZ, 1)
	c.PackageID, c.QtyDone = 501, bt.Qty(1)
	loose := persistedLine(4, "loose", bt.ProductX, 1)

	groups := barcode.NewLineStore([]model.Line{a, loose, b, c}).PackageGroups()

	require.Len(t, groups, 2)
	assert.Equal(t, int64(500), groups[0].PackageID)
	assert.Len(t, groups[0].Lines, 2)
	assert.True(t, bt.Qty(3).Equal(groups[0].QtyDone))
	assert.False(t, groups[0].FullyScanned)
	assert.Equal(t, int64(501), groups[1].PackageID)
	assert.True(t, groups[1].FullyScanned)
}

func TestGroupByPackage(t *testing.T) {
	assert.Equal(t, "", barcode.GroupByPackage(model.Line{}))
	assert.Equal(t, "package:42", barcode.GroupByPackage(model.Line{PackageID: 42}))
}

func TestCommand_Apply(t *testing.T) {
	s := barcode.NewLineStore(nil)
	added := s.Add(model.Line{
		ProductID: bt.ProductZ.ID, UoMID: bt.Units.ID, LotName: "L7",
		LocationID: bt.Stock.ID, LocationDestID: bt.Shelf1.ID, QtyDone: bt.Qty(4),
	})
	cmd := barcode.Compile(9, s)
	require.Len(t, cmd.Commands, 1)

	var l model.Line
	cmd.Commands[0].Apply(&l)

	assert.Equal(t, bt.ProductZ.ID, l.ProductID)
	assert.Equal(t, bt.Units.ID, l.UoMID)
	assert.Equal(t, int64(9), l.PickingID)
	assert.Equal(t, added.VirtualID, l.VirtualID)
	assert.Equal(t, "L7", l.LotName)
	assert.Equal(t, bt.Shelf1.ID, l.LocationDestID)
	assert.True(t, bt.Qty(4).Equal(l.QtyDone))
}
