package barcode

import "sync"

// NotificationType is the severity of a notification.
type NotificationType string

const (
	NotifySuccess NotificationType = "success"
	NotifyWarning NotificationType = "warning"
	NotifyDanger  NotificationType = "danger"
)

// Notification message keys. The HTTP layer translates them.
const (
	MsgBarcodeNotFound        = "barcode.not_found"
	MsgEmptyBarcode           = "barcode.empty"
	MsgScanProductFirst       = "barcode.scan_product_first"
	MsgPackageAlreadyScanned  = "barcode.package_already_scanned"
	MsgEmptyPackageNoLine     = "barcode.empty_package_no_line"
	MsgPackagesDisabled       = "barcode.packages_disabled"
	MsgNothingToPack          = "barcode.nothing_to_pack"
	MsgIncompatibleUoM        = "barcode.incompatible_uom"
	MsgSerialAlreadyScanned   = "barcode.serial_already_scanned"
	MsgSerialQuantity         = "barcode.serial_quantity"
	MsgInvalidQuantity        = "barcode.invalid_quantity"
	MsgLocationNotAllowed     = "barcode.location_not_allowed"
	MsgLotsDisabled           = "barcode.lots_disabled"
	MsgSaveFailed             = "barcode.save_failed"
	MsgActionFailed           = "barcode.action_failed"
	MsgLookupFailed           = "barcode.lookup_failed"
	MsgSaved                  = "barcode.saved"
	MsgPackageCreated         = "barcode.package_created"
	MsgPackageTypeChanged     = "barcode.package_type_changed"
	MsgPackageAttached        = "barcode.package_attached"
	MsgDestinationChanged     = "barcode.destination_changed"
	MsgSourceChanged          = "barcode.source_changed"
	MsgPickingValidated       = "barcode.picking_validated"
	MsgPickingCancelled       = "barcode.picking_cancelled"
	MsgLineRemoved            = "barcode.line_removed"
	MsgProductNotInPicking    = "barcode.product_unknown"
	MsgPackageTypeUnsupported = "barcode.package_type_unchanged"
)

// MessageKeys lists every key the engine can emit.
var MessageKeys = []string{
	MsgBarcodeNotFound, MsgEmptyBarcode, MsgScanProductFirst, MsgPackageAlreadyScanned,
	MsgEmptyPackageNoLine, MsgPackagesDisabled, MsgNothingToPack, MsgIncompatibleUoM,
	MsgSerialAlreadyScanned, MsgSerialQuantity, MsgInvalidQuantity, MsgLocationNotAllowed,
	MsgLotsDisabled, MsgSaveFailed, MsgActionFailed, MsgLookupFailed, MsgSaved,
	MsgPackageCreated, MsgPackageTypeChanged, MsgPackageAttached, MsgDestinationChanged,
	MsgSourceChanged, MsgPickingValidated, MsgPickingCancelled, MsgLineRemoved,
	MsgProductNotInPicking, MsgPackageTypeUnsupported,
}

// Notification is a user-facing message about a recoverable outcome.
// Args fill the {name} placeholders of the translated message.
type Notification struct {
	Type NotificationType  `json:"type"`
	Key  string            `json:"key"`
	Args map[string]string `json:"args,omitempty"`
}

// Notifier receives every recoverable outcome of the engine.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notification)

// Notify implements Notifier.
func (f NotifierFunc) Notify(n Notification) { f(n) }

// Recorder is a Notifier that keeps notifications until drained.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

// Notify implements Notifier.
func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	r.items = append(r.items, n)
	r.mu.Unlock()
}

// Drain returns and clears the recorded notifications.
func (r *Recorder) Drain() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.items
	r.items = nil
	return out
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

type discard struct{}

func (discard) Notify(Notification) {}
