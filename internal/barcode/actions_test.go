package barcode_test

import (
	"context"
	"errors"
	"testing"

	"github.com/guttosm/picking-service/internal/barcode"
	bt "github.com/guttosm/picking-service/internal/barcode/barcodetest"
	"github.com/guttosm/picking-service/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedPackage(t *testing.T, b *bt.Backend, id int64) model.Package {
	t.Helper()
	r, ok := b.Record(model.Key{Kind: model.KindPackage, ID: id})
	require.True(t, ok, "package %d not stored", id)
	return r.(model.Package)
}

func TestPutInPack_NewPackageNameScan(t *testing.T) {
	b := bt.NewWithRecords(outgoingPicking(30))
	e, rec := openEngine(t, b, barcode.Config{PackagePrefix: "PACK"})

	scan(t, e, "X", "PACK-NEW-1")

	require.Len(t, b.Calls, 1)
	assert.Equal(t, barcode.MethodPutInPack, b.Calls[0].Method)
	assert.Equal(t, "PACK-NEW-1", b.Calls[0].Args.PackageName)
	require.Len(t, b.Calls[0].Args.LineIDs, 1)

	lines := e.Lines()
	require.Len(t, lines, 1)
	require.NotZero(t, lines[0].ResultPackageID)
	assert.Equal(t, "PACK-NEW-1", storedPackage(t, b, lines[0].ResultPackageID).Name)
	assert.Equal(t, barcode.MsgPackageCreated, lastNotice(t, rec).Key)
	assert.True(t, e.PendingCommand().IsEmpty())
}

func TestPutInPack_PackageTypeScans(t *testing.T) {
	b := bt.NewWithRecords(outgoingPicking(31))
	e, rec := openEngine(t, b, barcode.Config{})

	scan(t, e, "X", "PT-BOX")
	require.Len(t, b.Calls, 1)
	assert.Equal(t, barcode.MethodPutInPack, b.Calls[0].Method)
	assert.Equal(t, bt.Box.ID, b.Calls[0].Args.PackageTypeID)
	pkgID := e.Lines()[0].ResultPackageID
	require.NotZero(t, pkgID)

	scan(t, e, "PT-PALLET")
	require.Len(t, b.Calls, 2)
	assert.Equal(t, barcode.MethodSetPackageType, b.Calls[1].Method)
	assert.Equal(t, pkgID, b.Calls[1].Args.PackageID)
	assert.Equal(t, bt.Pallet.ID, storedPackage(t, b, pkgID).PackageTypeID)
	assert.Equal(t, barcode.MsgPackageTypeChanged, lastNotice(t, rec).Key)

	scan(t, e, "PT-PALLET")
	assert.Len(t, b.Calls, 2)
	n := lastNotice(t, rec)
	assert.Equal(t, barcode.NotifyWarning, n.Type)
	assert.Equal(t, barcode.MsgPackageTypeUnsupported, n.Key)
}

func TestPutInPack_PackageTypeWizard(t *testing.T) {
	p := outgoingPicking(32)
	p.PromptPackageType = true
	b := bt.NewWithRecords(p)
	e, _ := openEngine(t, b, barcode.Config{})

	scan(t, e, "X")
	desc, err := e.PutInPack(context.Background(), barcode.PutInPackOptions{})
	require.NoError(t, err)
	require.NotNil(t, desc)
	assert.Equal(t, barcode.WizardPackageType, desc.Name)
	assert.Equal(t, desc, e.View().Action)

	lines := e.Lines()
	require.Len(t, lines, 1)
	assert.NotZero(t, lines[0].ID, "lines are saved before the wizard opens")
	assert.Zero(t, lines[0].ResultPackageID)
}

func TestPutInPack_Rejections(t *testing.T) {
	tests := []struct {
		name        string
		usePackages bool
		scans       []string
		wantType    barcode.NotificationType
		wantKey     string
	}{
		{name: "packages disabled", usePackages: false, scans: []string{"X"}, wantType: barcode.NotifyWarning, wantKey: barcode.MsgPackagesDisabled},
		{name: "nothing done", usePackages: true, wantType: barcode.NotifyDanger, wantKey: barcode.MsgNothingToPack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := outgoingPicking(33)
			p.UsePackages = tt.usePackages
			b := bt.NewWithRecords(p)
			e, rec := openEngine(t, b, barcode.Config{})
			scan(t, e, tt.scans...)

			desc, err := e.PutInPack(context.Background(), barcode.PutInPackOptions{})
			require.NoError(t, err)
			assert.Nil(t, desc)
			assert.Empty(t, b.Calls)
			n := lastNotice(t, rec)
			assert.Equal(t, tt.wantType, n.Type)
			assert.Equal(t, tt.wantKey, n.Key)
		})
	}
}

func TestPackageScan_EmptyPackage(t *testing.T) {
	empty := model.Package{ID: 501, Name: "PACK-EMPTY", LocationID: bt.Stock.ID}

	t.Run("attaches to the last touched line", func(t *testing.T) {
		b := bt.NewWithRecords(outgoingPicking(34)).AddRecords(empty)
		e, rec := openEngine(t, b, barcode.Config{})

		scan(t, e, "X", "PACK-EMPTY")

		lines := e.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, empty.ID, lines[0].ResultPackageID)
		assert.Equal(t, barcode.MsgPackageAttached, lastNotice(t, rec).Key)
	})

	t.Run("warns without a line", func(t *testing.T) {
		b := bt.NewWithRecords(outgoingPicking(35)).AddRecords(empty)
		e, rec := openEngine(t, b, barcode.Config{})

		scan(t, e, "PACK-EMPTY")

		assert.Empty(t, e.Lines())
		n := lastNotice(t, rec)
		assert.Equal(t, barcode.NotifyWarning, n.Type)
		assert.Equal(t, barcode.MsgEmptyPackageNoLine, n.Key)
	})
}

func TestPackageScan_FillsUntouchedDemandLine(t *testing.T) {
	pack := model.Package{ID: 500, Name: "PACK1", LocationID: bt.Stock.ID}
	b := bt.NewWithRecords(outgoingPicking(36)).
		AddRecords(pack).
		AddLines(demandLine(bt.ProductZ, bt.Stock, bt.Customers, 3)).
		SetQuants(pack.ID, model.Quant{ID: 1, ProductID: bt.ProductZ.ID, LotID: bt.LotZ1.ID, PackageID: pack.ID, LocationID: bt.Stock.ID, Quantity: bt.Qty(3)})
	e, _ := openEngine(t, b, barcode.Config{})

	scan(t, e, "PACK1")

	lines := e.Lines()
	require.Len(t, lines, 1)
	assertQty(t, 3, lines[0].QtyDone)
	assert.Equal(t, bt.LotZ1.ID, lines[0].LotID)
	assert.Equal(t, pack.ID, lines[0].PackageID)
	assert.True(t, e.HighlightValidate())
}

func TestPackageScan_PackagesDisabled(t *testing.T) {
	p := outgoingPicking(37)
	p.UsePackages = false
	pack := model.Package{ID: 500, Name: "PACK1"}
	b := bt.NewWithRecords(p).AddRecords(pack)
	e, rec := openEngine(t, b, barcode.Config{})

	scan(t, e, "PACK1")

	assert.Empty(t, e.Lines())
	assert.Equal(t, barcode.MsgPackagesDisabled, lastNotice(t, rec).Key)
	assert.Zero(t, b.QuantCalls[pack.ID])
}

func TestValidate_Backorder(t *testing.T) {
	ctx := context.Background()
	b := bt.NewWithRecords(internalPicking(40)).
		AddLines(demandLine(bt.ProductX, bt.Stock, bt.Shelf1, 2))
	e, rec := openEngine(t, b, barcode.Config{})
	scan(t, e, "X")

	desc, err := e.Validate(ctx, "")
	require.NoError(t, err)
	require.NotNil(t, desc)
	assert.Equal(t, barcode.WizardBackorder, desc.Name)
	assert.Equal(t, model.StateAssigned, e.Picking().State)
	assert.Len(t, b.Saves, 1)

	desc, err = e.Validate(ctx, barcode.BackorderDiscard)
	require.NoError(t, err)
	assert.Nil(t, desc)
	assert.Equal(t, model.StateDone, e.Picking().State)
	assert.Equal(t, barcode.MsgPickingValidated, lastNotice(t, rec).Key)

	assert.ErrorIs(t, e.ProcessBarcode(ctx, "X"), barcode.ErrClosed)
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	b := bt.NewWithRecords(outgoingPicking(41))
	e, rec := openEngine(t, b, barcode.Config{})

	require.NoError(t, e.Cancel(ctx))

	assert.Equal(t, model.StateCancel, e.Picking().State)
	assert.Equal(t, barcode.MsgPickingCancelled, lastNotice(t, rec).Key)
	assert.ErrorIs(t, e.Cancel(ctx), barcode.ErrClosed)
}

func TestActionFailure_KeepsSavedLines(t *testing.T) {
	b := bt.NewWithRecords(outgoingPicking(42))
	b.ActionErr = errors.New("server busy")
	e, rec := openEngine(t, b, barcode.Config{})
	scan(t, e, "X")

	desc, err := e.Validate(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, desc)

	assert.Len(t, b.Saves, 1)
	assert.True(t, e.PendingCommand().IsEmpty(), "saved lines are not resent")
	n := lastNotice(t, rec)
	assert.Equal(t, barcode.NotifyDanger, n.Type)
	assert.Equal(t, barcode.MsgActionFailed, n.Key)
}

func TestSave_TransportFailure(t *testing.T) {
	ctx := context.Background()
	b := bt.NewWithRecords(outgoingPicking(43))
	b.SaveErr = errors.New("network unreachable")
	e, rec := openEngine(t, b, barcode.Config{})
	scan(t, e, "X")

	require.NoError(t, e.Save(ctx))
	n := lastNotice(t, rec)
	assert.Equal(t, barcode.NotifyDanger, n.Type)
	assert.Equal(t, barcode.MsgSaveFailed, n.Key)
	assert.Equal(t, 1, e.PendingCommand().Count(barcode.CommandCreate))
	assert.True(t, e.View().Dirty)

	b.SaveErr = nil
	require.NoError(t, e.Save(ctx))
	assert.Len(t, b.Saves, 1)
	assert.True(t, e.PendingCommand().IsEmpty())
	assert.Equal(t, barcode.MsgSaved, lastNotice(t, rec).Key)
}

func TestChangeDestination_RollsBackOnSaveFailure(t *testing.T) {
	b := bt.NewWithRecords(internalPicking(44)).
		AddLines(
			demandLine(bt.ProductX, bt.Stock, bt.Shelf1, 1),
			demandLine(bt.ProductY, bt.Stock, bt.Shelf1, 3),
		)
	e, rec := openEngine(t, b, barcode.Config{MoveScannedLineOnly: true})
	scan(t, e, "X", "Y")
	before := e.Lines()

	b.SaveErr = errors.New("timeout")
	scan(t, e, "LOC2")

	assert.Equal(t, before, e.Lines())
	assert.Equal(t, barcode.MsgSaveFailed, lastNotice(t, rec).Key)
	assert.Empty(t, b.Saves)

	b.SaveErr = nil
	scan(t, e, "LOC2")

	assert.Equal(t, barcode.MsgDestinationChanged, lastNotice(t, rec).Key)
	view := e.View()
	assert.Equal(t, bt.Stock.ID, view.SourceID)
	assert.Equal(t, bt.Shelf2.ID, view.DestinationID)

	x := linesOf(e.Lines(), bt.ProductX.ID)
	require.Len(t, x, 1)
	assert.Equal(t, bt.Shelf2.ID, x[0].LocationDestID)
	y := linesOf(e.Lines(), bt.ProductY.ID)
	require.Len(t, y, 2, "retried scan splits the incomplete line")
}

func TestChangeDestinationLocation_WholePage(t *testing.T) {
	b := bt.NewWithRecords(internalPicking(45)).
		AddLines(
			demandLine(bt.ProductX, bt.Stock, bt.Shelf1, 1),
			demandLine(bt.ProductY, bt.Stock, bt.Shelf1, 2),
		)
	e, _ := openEngine(t, b, barcode.Config{})
	scan(t, e, "X")

	require.NoError(t, e.ChangeDestinationLocation(context.Background(), bt.Shelf2.ID, false))

	lines := e.Lines()
	require.Len(t, lines, 2)
	for _, l := range lines {
		assert.Equal(t, bt.Shelf2.ID, l.LocationDestID)
	}
}

func TestChangeSourceLocation_SelectedLine(t *testing.T) {
	b := bt.NewWithRecords(internalPicking(46)).
		AddLines(
			demandLine(bt.ProductX, bt.Stock, bt.Shelf1, 1),
			demandLine(bt.ProductY, bt.Stock, bt.Shelf1, 1),
		)
	e, rec := openEngine(t, b, barcode.Config{})
	scan(t, e, "X")

	require.NoError(t, e.ChangeSourceLocation(context.Background(), bt.Shelf2.ID, false))

	x := linesOf(e.Lines(), bt.ProductX.ID)
	y := linesOf(e.Lines(), bt.ProductY.ID)
	assert.Equal(t, bt.Shelf2.ID, x[0].LocationID)
	assert.Equal(t, bt.Stock.ID, y[0].LocationID)
	assert.Equal(t, bt.Shelf2.ID, e.View().SourceID)
	assert.Equal(t, barcode.MsgSourceChanged, lastNotice(t, rec).Key)
}

func TestRemoveLine(t *testing.T) {
	ctx := context.Background()
	b := bt.NewWithRecords(internalPicking(47)).
		AddLines(demandLine(bt.ProductX, bt.Stock, bt.Shelf1, 2))
	e, _ := openEngine(t, b, barcode.Config{})
	persisted := b.StoredLines()[0]

	added, err := e.AddLine(ctx, barcode.LineInput{ProductID: bt.ProductY.ID})
	require.NoError(t, err)
	require.NoError(t, e.RemoveLine(persisted.VirtualID))

	cmd := e.PendingCommand()
	require.Len(t, cmd.Commands, 2)
	assert.Equal(t, barcode.CommandCreate, cmd.Commands[0].Kind)
	assert.Equal(t, barcode.CommandDelete, cmd.Commands[1].Kind)
	assert.Equal(t, persisted.ID, cmd.Commands[1].ID)

	require.NoError(t, e.RemoveLine(added))
	cmd = e.PendingCommand()
	require.Len(t, cmd.Commands, 1)
	assert.Equal(t, barcode.CommandDelete, cmd.Commands[0].Kind)

	assert.ErrorIs(t, e.RemoveLine("missing"), barcode.ErrLineNotFound)

	require.NoError(t, e.Save(ctx))
	assert.Empty(t, b.StoredLines())
	assert.True(t, e.PendingCommand().IsEmpty())
}

func TestSetQuantity(t *testing.T) {
	tests := []struct {
		name    string
		product model.Product
		qty     decimal.Decimal
		wantKey string
		wantQty int64
	}{
		{name: "overwrites the done quantity", product: bt.ProductX, qty: bt.Qty(5), wantQty: 5},
		{name: "rejects negative quantities", product: bt.ProductX, qty: bt.Qty(-1), wantKey: barcode.MsgInvalidQuantity, wantQty: 1},
		{name: "keeps serials at one", product: bt.ProductS, qty: bt.Qty(2), wantKey: barcode.MsgSerialQuantity, wantQty: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			b := bt.NewWithRecords(outgoingPicking(48))
			e, rec := openEngine(t, b, barcode.Config{})
			vid, err := e.AddLine(ctx, barcode.LineInput{ProductID: tt.product.ID})
			require.NoError(t, err)
			require.NotEmpty(t, vid)
			rec.Drain()

			require.NoError(t, e.SetQuantity(ctx, vid, tt.qty))

			assertQty(t, tt.wantQty, e.Lines()[0].QtyDone)
			if tt.wantKey == "" {
				assert.Empty(t, rec.All())
			} else {
				assert.Equal(t, tt.wantKey, lastNotice(t, rec).Key)
			}
		})
	}
}

func TestAddLine(t *testing.T) {
	ctx := context.Background()

	t.Run("adds and selects a line", func(t *testing.T) {
		b := bt.NewWithRecords(outgoingPicking(49))
		e, _ := openEngine(t, b, barcode.Config{})

		vid, err := e.AddLine(ctx, barcode.LineInput{ProductID: bt.ProductY.ID, Qty: bt.Qty(3)})
		require.NoError(t, err)

		lines := e.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, vid, lines[0].VirtualID)
		assertQty(t, 3, lines[0].QtyDone)
		assert.Equal(t, bt.Stock.ID, lines[0].LocationID)
		assert.Equal(t, bt.Customers.ID, lines[0].LocationDestID)
		assert.Equal(t, vid, e.View().Selected)
	})

	rejections := []struct {
		name    string
		in      barcode.LineInput
		wantKey string
	}{
		{name: "unknown product", in: barcode.LineInput{ProductID: 9999}, wantKey: barcode.MsgProductNotInPicking},
		{name: "lot on untracked product", in: barcode.LineInput{ProductID: bt.ProductX.ID, LotName: "L-1"}, wantKey: barcode.MsgLotsDisabled},
	}
	for _, tt := range rejections {
		t.Run(tt.name, func(t *testing.T) {
			b := bt.NewWithRecords(outgoingPicking(50))
			e, rec := openEngine(t, b, barcode.Config{})

			vid, err := e.AddLine(ctx, tt.in)
			require.NoError(t, err)
			assert.Empty(t, vid)
			assert.Empty(t, e.Lines())
			assert.Equal(t, tt.wantKey, lastNotice(t, rec).Key)
		})
	}
}

func TestPages_Navigation(t *testing.T) {
	ctx := context.Background()
	b := bt.NewWithRecords(internalPicking(51)).
		AddLines(
			demandLine(bt.ProductX, bt.Stock, bt.Shelf1, 1),
			demandLine(bt.ProductY, bt.Stock, bt.Shelf2, 1),
		)
	e, _ := openEngine(t, b, barcode.Config{})

	view := e.View()
	require.Len(t, view.Pages, 2)
	assert.Equal(t, 0, view.PageIndex)
	assert.False(t, view.HighlightNext)

	scan(t, e, "X")
	assert.True(t, e.HighlightNext())
	assert.False(t, e.HighlightValidate())

	require.NoError(t, e.NextPage(ctx))
	view = e.View()
	assert.Equal(t, 1, view.PageIndex)
	assert.Equal(t, bt.Shelf2.ID, view.DestinationID)
	assert.Len(t, b.Saves, 1, "turning the page saves")

	scan(t, e, "Y")
	assert.True(t, e.HighlightValidate())

	require.NoError(t, e.NextPage(ctx))
	assert.Equal(t, 0, e.View().PageIndex)
	require.NoError(t, e.PreviousPage(ctx))
	assert.Equal(t, 1, e.View().PageIndex)
}

func TestExit(t *testing.T) {
	ctx := context.Background()

	t.Run("saves and closes", func(t *testing.T) {
		b := bt.NewWithRecords(outgoingPicking(52))
		e, _ := openEngine(t, b, barcode.Config{})
		scan(t, e, "X")

		require.NoError(t, e.Exit(ctx))
		assert.True(t, e.Exited())
		assert.Len(t, b.Saves, 1)
		assert.ErrorIs(t, e.ProcessBarcode(ctx, "X"), barcode.ErrClosed)
	})

	t.Run("stays open when the save fails", func(t *testing.T) {
		b := bt.NewWithRecords(outgoingPicking(53))
		e, _ := openEngine(t, b, barcode.Config{})
		scan(t, e, "X")
		b.SaveErr = errors.New("offline")

		require.NoError(t, e.Exit(ctx))
		assert.False(t, e.Exited())
	})
}

func TestRefresh_KeepsSelection(t *testing.T) {
	ctx := context.Background()
	b := bt.NewWithRecords(outgoingPicking(54))
	e, _ := openEngine(t, b, barcode.Config{})
	scan(t, e, "X")
	vid := e.View().Selected
	require.NotEmpty(t, vid)

	require.NoError(t, e.Save(ctx))
	require.NoError(t, e.Refresh(ctx))

	assert.Equal(t, vid, e.View().Selected)
	assert.Equal(t, 2, b.LoadCalls)
}

func TestInventoryPolicy_CountsPerLocation(t *testing.T) {
	p := model.Picking{ID: 55, Kind: model.PickingInventory, State: model.StateAssigned, LocationID: bt.Stock.ID}
	b := bt.NewWithRecords(p)
	e, _ := openEngine(t, b, barcode.Config{})

	scan(t, e, "X", "LOC1", "X", "X")

	lines := e.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, bt.Stock.ID, lines[0].LocationID)
	assertQty(t, 1, lines[0].QtyDone)
	assert.Equal(t, bt.Shelf1.ID, lines[1].LocationID)
	assertQty(t, 2, lines[1].QtyDone)
	for _, l := range lines {
		assert.Zero(t, l.LocationDestID)
	}
}

func TestSharedCache_AvoidsRepeatedLookups(t *testing.T) {
	b := bt.NewWithRecords(outgoingPicking(56))
	shared := barcode.NewEntityCache(b)

	for i := 0; i < 2; i++ {
		e, err := barcode.Open(context.Background(), b, 56, barcode.WithCache(shared))
		require.NoError(t, err)
		scan(t, e, "Y")
	}

	assert.Equal(t, 1, b.LookupCalls)
}

func TestChangeDestination_FollowsMovedLines(t *testing.T) {
	b := bt.NewWithRecords(internalPicking(47)).
		AddLines(demandLine(bt.ProductX, bt.Stock, bt.Shelf1, 1))
	e, _ := openEngine(t, b, barcode.Config{})

	scan(t, e, "X")
	require.True(t, e.HighlightValidate())

	scan(t, e, "LOC2")

	view := e.View()
	assert.GreaterOrEqual(t, view.PageIndex, 0)
	assert.Equal(t, bt.Shelf2.ID, view.DestinationID)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, bt.Shelf2.ID, view.Lines[0].LocationDestID)
	assert.True(t, e.HighlightValidate())

	scan(t, e, "Y")

	y := linesOf(e.Lines(), bt.ProductY.ID)
	require.Len(t, y, 1)
	assert.Equal(t, bt.Shelf2.ID, y[0].LocationDestID)
}
