package barcode

import (
	"github.com/guttosm/picking-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// CommandKind is the kind of a line command.
type CommandKind string

const (
	CommandCreate CommandKind = "create"
	CommandUpdate CommandKind = "update"
	CommandDelete CommandKind = "delete"
)

// Command is one create, update or delete of a line.
// Values holds the full projection for creates and only the changed fields
// for updates; deletes carry none.
type Command struct {
	Kind      CommandKind            `json:"kind"`
	VirtualID string                 `json:"virtual_id"`
	ID        int64                  `json:"id,omitempty"`
	Values    map[string]interface{} `json:"values,omitempty"`

	projection model.LineValues
}

// SaveCommand is the ordered payload of one save round-trip.
type SaveCommand struct {
	PickingID int64     `json:"picking_id"`
	Commands  []Command `json:"commands"`
}

// IsEmpty reports whether there is nothing to save.
func (c SaveCommand) IsEmpty() bool {
	return len(c.Commands) == 0
}

// Count returns the number of commands of kind.
func (c SaveCommand) Count(kind CommandKind) int {
	n := 0
	for _, cmd := range c.Commands {
		if cmd.Kind == kind {
			n++
		}
	}
	return n
}

// Compile turns the dirty lines of the store into a save command: creates and
// updates in line insertion order, then deletes in removal order. It does not
// mutate the store; Commit does once the save succeeded.
func Compile(pickingID int64, store *LineStore) SaveCommand {
	cmd := SaveCommand{PickingID: pickingID, Commands: []Command{}}

	for _, l := range store.lines {
		values := l.Values()
		if l.ID == 0 {
			full := values.Map()
			full[model.FieldProductID] = l.ProductID
			full[model.FieldUoMID] = l.UoMID
			full[model.FieldPickingID] = pickingID
			full[model.FieldVirtualID] = l.VirtualID
			cmd.Commands = append(cmd.Commands, Command{
				Kind:       CommandCreate,
				VirtualID:  l.VirtualID,
				Values:     full,
				projection: values,
			})
			continue
		}

		prev, ok := store.saved[l.VirtualID]
		var changed map[string]interface{}
		if ok {
			changed = values.Diff(prev)
		} else {
			changed = values.Map()
		}
		if len(changed) == 0 {
			continue
		}
		cmd.Commands = append(cmd.Commands, Command{
			Kind:       CommandUpdate,
			VirtualID:  l.VirtualID,
			ID:         l.ID,
			Values:     changed,
			projection: values,
		})
	}

	for _, l := range store.removed {
		cmd.Commands = append(cmd.Commands, Command{
			Kind:      CommandDelete,
			VirtualID: l.VirtualID,
			ID:        l.ID,
		})
	}
	return cmd
}

// Apply copies the command values onto l. Unknown fields are ignored.
func (c Command) Apply(l *model.Line) {
	for field, v := range c.Values {
		switch field {
		case model.FieldLocationID:
			l.LocationID = asInt64(v)
		case model.FieldLocationDestID:
			l.LocationDestID = asInt64(v)
		case model.FieldLotID:
			l.LotID = asInt64(v)
		case model.FieldLotName:
			l.LotName, _ = v.(string)
		case model.FieldPackageID:
			l.PackageID = asInt64(v)
		case model.FieldResultPackageID:
			l.ResultPackageID = asInt64(v)
		case model.FieldOwnerID:
			l.OwnerID = asInt64(v)
		case model.FieldQtyDone:
			if d, ok := v.(decimal.Decimal); ok {
				l.QtyDone = d
			}
		case model.FieldProductID:
			l.ProductID = asInt64(v)
		case model.FieldUoMID:
			l.UoMID = asInt64(v)
		case model.FieldPickingID:
			l.PickingID = asInt64(v)
		case model.FieldVirtualID:
			l.VirtualID, _ = v.(string)
		}
	}
}

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}
