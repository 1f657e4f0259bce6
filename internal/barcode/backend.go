package barcode

import (
	"context"

	"github.com/guttosm/picking-service/internal/domain/model"
)

// Server action method names.
const (
	MethodPutInPack      = "put_in_pack"
	MethodCancel         = "action_cancel"
	MethodValidate       = "action_validate"
	MethodSetPackageType = "set_package_type"
)

// PickingData is a transfer as loaded from the backing store, with every
// record its lines reference.
type PickingData struct {
	Picking model.Picking
	Lines   []model.Line
	Records []model.Record
}

// BarcodeQuery asks the backend for every record carrying a barcode.
// Lots are only returned for ProductID.
type BarcodeQuery struct {
	Barcode   string
	ProductID int64
}

// ActionArgs are the arguments of a server action.
type ActionArgs struct {
	LineIDs       []int64 `json:"line_ids,omitempty"`
	PackageID     int64   `json:"package_id,omitempty"`
	PackageName   string  `json:"package_name,omitempty"`
	PackageTypeID int64   `json:"package_type_id,omitempty"`
	// Backorder answers a backorder confirmation: "" asks, "create" or "discard".
	Backorder string `json:"backorder,omitempty"`
}

// Backorder choices for action_validate.
const (
	BackorderCreate  = "create"
	BackorderDiscard = "discard"
)

// ActionDescriptor is a further client-side action requested by the server,
// such as a confirmation wizard.
type ActionDescriptor struct {
	Type    string                 `json:"type"`
	Name    string                 `json:"name"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Wizard names returned by the backend.
const (
	WizardBackorder   = "backorder_confirmation"
	WizardPackageType = "package_type_selection"
)

// ActionResult is either a plain value or an action descriptor.
type ActionResult struct {
	Action *ActionDescriptor
	Value  interface{}
}

// IsAction reports whether the result asks the client to do something more.
func (r ActionResult) IsAction() bool {
	return r.Action != nil
}

// SaveResult maps the virtual id of every created line to its new server id.
type SaveResult struct {
	NewIDs map[string]int64
}

// Backend is the backing store of transfers and their referenced records.
type Backend interface {
	LoadPicking(ctx context.Context, pickingID int64) (PickingData, error)
	FetchEntities(ctx context.Context, kind model.Kind, ids []int64) ([]model.Record, error)
	LookupBarcode(ctx context.Context, q BarcodeQuery) ([]model.Record, error)
	FetchQuants(ctx context.Context, packageID int64) ([]model.Quant, error)
	Save(ctx context.Context, cmd SaveCommand) (SaveResult, error)
	CallAction(ctx context.Context, pickingID int64, method string, args ActionArgs) (ActionResult, error)
}
