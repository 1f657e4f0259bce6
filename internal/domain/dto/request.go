// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var (
	// ErrEmptyBarcode is returned when a scan carries no barcode.
	ErrEmptyBarcode = &ValidationError{Field: "barcode", Message: "must not be empty"}
	// ErrInvalidQuantity is returned when a quantity is not a non-negative decimal.
	ErrInvalidQuantity = &ValidationError{Field: "quantity", Message: "must be a non-negative decimal"}
	// ErrInvalidLocation is returned when a location id is missing.
	ErrInvalidLocation = &ValidationError{Field: "location_id", Message: "must be a positive id"}
	// ErrInvalidProduct is returned when a product id is missing.
	ErrInvalidProduct = &ValidationError{Field: "product_id", Message: "must be a positive id"}
	// ErrInvalidBackorder is returned for an unknown backorder choice.
	ErrInvalidBackorder = &ValidationError{Field: "backorder", Message: "must be create or discard"}
	// ErrInvalidState is returned for an unknown transfer state filter.
	ErrInvalidState = &ValidationError{Field: "state", Message: "must be draft, assigned, done or cancel"}
	// ErrInvalidLimit is returned when a page size is not a positive integer.
	ErrInvalidLimit = &ValidationError{Field: "limit", Message: "must be a positive integer"}
)

// ScanRequest is the JSON request body of the scan endpoint.
//
// @Description A raw barcode read by the scanner
// @Example {"barcode": "X-BOX12"}
type ScanRequest struct {
	// Barcode is the raw scanned text.
	Barcode string `json:"barcode" binding:"required" example:"X-BOX12"`
} // @name ScanRequest

// Validate performs custom validation on the request.
func (r *ScanRequest) Validate() error {
	if strings.TrimSpace(r.Barcode) == "" {
		return ErrEmptyBarcode
	}
	return nil
}

// parseQuantity parses a decimal string; empty means zero.
func parseQuantity(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	q, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || q.IsNegative() {
		return decimal.Zero, ErrInvalidQuantity
	}
	return q, nil
}

// AddLineRequest is the JSON request body for adding a line by hand.
//
// @Description A line added without scanning
// @Example {"product_id": 100, "quantity": "2.5", "lot_name": "LOT-7"}
type AddLineRequest struct {
	ProductID int64 `json:"product_id" binding:"required" example:"100"`
	// Quantity is a decimal string in the product unit; empty means one.
	Quantity string `json:"quantity,omitempty" example:"2.5"`
	LotName  string `json:"lot_name,omitempty" example:"LOT-7"`
	OwnerID  int64  `json:"owner_id,omitempty"`
} // @name AddLineRequest

// Validate performs custom validation and returns the parsed quantity.
func (r *AddLineRequest) Validate() (decimal.Decimal, error) {
	if r.ProductID <= 0 {
		return decimal.Zero, ErrInvalidProduct
	}
	return parseQuantity(r.Quantity)
}

// SetQuantityRequest is the JSON request body for editing a line quantity.
//
// @Description The new done quantity of a line
// @Example {"quantity": "4"}
type SetQuantityRequest struct {
	Quantity string `json:"quantity" binding:"required" example:"4"`
} // @name SetQuantityRequest

// Validate performs custom validation and returns the parsed quantity.
func (r *SetQuantityRequest) Validate() (decimal.Decimal, error) {
	if strings.TrimSpace(r.Quantity) == "" {
		return decimal.Zero, ErrInvalidQuantity
	}
	return parseQuantity(r.Quantity)
}

// DestinationRequest is the JSON request body for a destination change.
//
// @Description Retarget lines to another destination location
// @Example {"location_id": 12, "move_scanned_only": true}
type DestinationRequest struct {
	LocationID int64 `json:"location_id" binding:"required" example:"12"`
	// MoveScannedOnly overrides the server default when present.
	MoveScannedOnly *bool `json:"move_scanned_only,omitempty" example:"true"`
} // @name DestinationRequest

// Validate performs custom validation on the request.
func (r *DestinationRequest) Validate() error {
	if r.LocationID <= 0 {
		return ErrInvalidLocation
	}
	return nil
}

// SourceRequest is the JSON request body for a source change.
//
// @Description Change the source location of the selected or page lines
// @Example {"location_id": 11, "all_page_lines": false}
type SourceRequest struct {
	LocationID   int64 `json:"location_id" binding:"required" example:"11"`
	AllPageLines bool  `json:"all_page_lines,omitempty"`
} // @name SourceRequest

// Validate performs custom validation on the request.
func (r *SourceRequest) Validate() error {
	if r.LocationID <= 0 {
		return ErrInvalidLocation
	}
	return nil
}

// PutInPackRequest is the JSON request body of the put-in-pack endpoint.
//
// @Description Put the done lines of the current page in a new package
// @Example {"package_name": "PACK0000042", "package_type_id": 70}
type PutInPackRequest struct {
	PackageName   string `json:"package_name,omitempty" example:"PACK0000042"`
	PackageTypeID int64  `json:"package_type_id,omitempty" example:"70"`
} // @name PutInPackRequest

// ValidateRequest is the JSON request body of the validate endpoint.
//
// @Description Validate the transfer, answering the backorder question when asked
// @Example {"backorder": "create"}
type ValidateRequest struct {
	// Backorder is "create", "discard" or empty.
	Backorder string `json:"backorder,omitempty" example:"create"`
} // @name ValidateRequest

// Validate performs custom validation on the request.
func (r *ValidateRequest) Validate() error {
	switch r.Backorder {
	case "", "create", "discard":
		return nil
	}
	return ErrInvalidBackorder
}
