package dto

import (
	"github.com/guttosm/picking-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// NotificationView is a translated engine notification.
type NotificationView struct {
	// Type is success, warning or danger.
	Type    string            `json:"type" example:"warning"`
	Key     string            `json:"key" example:"barcode.not_found"`
	Message string            `json:"message" example:"Barcode XYZ was not recognized"`
	Args    map[string]string `json:"args,omitempty"`
} // @name NotificationView

// PageView is one page of work.
type PageView struct {
	LocationID     int64  `json:"location_id" example:"10"`
	LocationDestID int64  `json:"location_dest_id" example:"11"`
	Group          string `json:"group,omitempty"`
	LineCount      int    `json:"line_count" example:"3"`
} // @name PageView

// PackageGroupView sums the lines taken from one source package.
type PackageGroupView struct {
	PackageID    int64           `json:"package_id" example:"300"`
	Name         string          `json:"name" example:"PACK0000300"`
	LineCount    int             `json:"line_count" example:"2"`
	QtyDone      decimal.Decimal `json:"qty_done" swaggertype:"string" example:"12"`
	FullyScanned bool            `json:"fully_scanned"`
} // @name PackageGroupView

// ActionView is a further client action requested by the backend, such as a
// backorder confirmation wizard.
type ActionView struct {
	Type    string                 `json:"type" example:"wizard"`
	Name    string                 `json:"name" example:"backorder_confirmation"`
	Context map[string]interface{} `json:"context,omitempty"`
} // @name ActionView

// PickingView is the state of a scanning session.
//
// @Description Scanning session state with the notifications of the last operation
type PickingView struct {
	Picking       model.Picking      `json:"picking"`
	Pages         []PageView         `json:"pages"`
	PageIndex     int                `json:"page_index" example:"0"`
	Lines         []model.Line       `json:"lines"`
	PackageGroups []PackageGroupView `json:"package_groups,omitempty"`
	// Selected is the virtual id of the selected line.
	Selected          string             `json:"selected,omitempty"`
	SourceID          int64              `json:"source_id" example:"10"`
	DestinationID     int64              `json:"destination_id" example:"11"`
	HighlightValidate bool               `json:"highlight_validate"`
	HighlightNext     bool               `json:"highlight_next"`
	Dirty             bool               `json:"dirty"`
	Action            *ActionView        `json:"action,omitempty"`
	Notifications     []NotificationView `json:"notifications"`
	// LineID is the virtual id of a line created by the request.
	LineID string `json:"line_id,omitempty"`
} // @name PickingView

// PickingListResponse lists transfers.
type PickingListResponse struct {
	Pickings []model.Picking `json:"pickings"`
	Count    int             `json:"count" example:"1"`
} // @name PickingListResponse
