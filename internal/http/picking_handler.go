package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/picking-service/internal/barcode"
	"github.com/guttosm/picking-service/internal/domain/dto"
	"github.com/guttosm/picking-service/internal/domain/model"
	"github.com/guttosm/picking-service/internal/i18n"
	"github.com/guttosm/picking-service/internal/middleware"
	"github.com/guttosm/picking-service/internal/service"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// PickingHandler provides HTTP handlers for scanning sessions.
type PickingHandler struct {
	pickings service.PickingService
}

// NewPickingHandler creates a new PickingHandler.
func NewPickingHandler(pickings service.PickingService) *PickingHandler {
	return &PickingHandler{pickings: pickings}
}

type pickingOp func(ctx context.Context, pickingID int64) (*service.PickingResult, error)

// run parses the transfer id, runs op and writes the session view. Every
// outcome is audited under action.
func (h *PickingHandler) run(c *gin.Context, action, message string, fields map[string]any, op pickingOp) {
	builder := NewResponseBuilder(c)

	pickingID, ok := pickingIDParam(c, builder)
	if !ok {
		return
	}

	res, err := op(c.Request.Context(), pickingID)
	if err != nil {
		middleware.Audit(c, action, message+" failed", err, fields)
		writeError(builder, err)
		return
	}

	middleware.Audit(c, action, message, nil, withNotifications(fields, res.Notifications))
	builder.SuccessOK(newPickingView(c, res))
}

// pickingIDParam reads the :id path parameter and records it for the request
// and audit logs.
func pickingIDParam(c *gin.Context, builder *ResponseBuilder) (int64, bool) {
	pickingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || pickingID <= 0 {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return 0, false
	}
	middleware.SetPickingID(c, pickingID)
	return pickingID, true
}

func withNotifications(fields map[string]any, notes []barcode.Notification) map[string]any {
	if len(notes) == 0 {
		return fields
	}
	out := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	keys := make([]string, 0, len(notes))
	for _, n := range notes {
		keys = append(keys, n.Key)
	}
	out["notifications"] = keys
	return out
}

// ListPickings handles GET /api/pickings requests.
//
// @Summary      List transfers
// @Description  Lists transfers in a state. Without a state the open (draft and assigned) transfers are listed.
// @Tags         Pickings
// @Produce      json
// @Param        state query string false "Transfer state" Enums(draft, assigned, done, cancel)
// @Param        limit query int false "Maximum number of transfers (default 50, max 200)"
// @Success      200 {object} dto.SuccessResponse{data=dto.PickingListResponse}
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid state or limit"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      503 {object} dto.ErrorResponse "Backend unavailable"
// @Security     BearerAuth
// @Router       /api/pickings [get]
func (h *PickingHandler) ListPickings(c *gin.Context) {
	builder := NewResponseBuilder(c)

	state := model.PickingState(strings.ToLower(c.Query("state")))
	switch state {
	case "", model.StateDraft, model.StateAssigned, model.StateDone, model.StateCancel:
	default:
		builder.Invalid(dto.ErrInvalidState)
		return
	}

	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			builder.Invalid(dto.ErrInvalidLimit)
			return
		}
		limit = min(n, maxListLimit)
	}

	pickings, err := h.pickings.ListPickings(c.Request.Context(), state, limit)
	if err != nil {
		writeError(builder, err)
		return
	}
	if pickings == nil {
		pickings = []model.Picking{}
	}

	builder.SuccessOK(dto.PickingListResponse{Pickings: pickings, Count: len(pickings)})
}

// Open handles POST /api/pickings/{id}/session requests.
//
// @Summary      Open a scanning session
// @Description  Loads a transfer with its lines and reference data and opens a scanning session on it. Opening an already open session returns its current state.
// @Tags         Pickings
// @Produce      json
// @Param        id path int true "Transfer id"
// @Success      200 {object} dto.SuccessResponse{data=dto.PickingView}
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid id"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "Transfer not found"
// @Failure      503 {object} dto.ErrorResponse "Backend unavailable"
// @Security     BearerAuth
// @Router       /api/pickings/{id}/session [post]
func (h *PickingHandler) Open(c *gin.Context) {
	h.run(c, middleware.ActionOpen, "Scanning session opened", nil, h.pickings.Open)
}

// View handles GET /api/pickings/{id} requests.
//
// @Summary      Get session state
// @Description  Returns the current state of an open scanning session.
// @Tags         Pickings
// @Produce      json
// @Param        id path int true "Transfer id"
// @Success      200 {object} dto.SuccessResponse{data=dto.PickingView}
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "No open session"
// @Security     BearerAuth
// @Router       /api/pickings/{id} [get]
func (h *PickingHandler) View(c *gin.Context) {
	builder := NewResponseBuilder(c)
	pickingID, ok := pickingIDParam(c, builder)
	if !ok {
		return
	}
	res, err := h.pickings.View(c.Request.Context(), pickingID)
	if err != nil {
		writeError(builder, err)
		return
	}
	builder.SuccessOK(newPickingView(c, res))
}

// Scan handles POST /api/pickings/{id}/scan requests.
//
// @Summary      Process a barcode
// @Description  Interprets a raw scanned barcode and reconciles it with the lines of the transfer. Unrecognized or rejected scans are reported as notifications, not errors.
// @Tags         Pickings
// @Accept       json
// @Produce      json
// @Param        id path int true "Transfer id"
// @Param        request body dto.ScanRequest true "Scanned barcode"
// @Success      200 {object} dto.SuccessResponse{data=dto.PickingView}
// @Failure      400 {object} dto.ErrorResponse "Bad request - empty barcode"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "No open session"
// @Failure      409 {object} dto.ErrorResponse "Transfer is done or cancelled"
// @Failure      500 {object} dto.ErrorResponse "Missing reference data"
// @Security     BearerAuth
// @Router       /api/pickings/{id}/scan [post]
func (h *PickingHandler) Scan(c *gin.Context) {
	req, err := BuildRequestAndValidate[dto.ScanRequest](c)
	if err != nil {
		writeRequestError(c, err)
		return
	}
	code := strings.TrimSpace(req.Barcode)
	h.run(c, middleware.ActionScan, "Barcode processed", map[string]any{"barcode": code},
		func(ctx context.Context, id int64) (*service.PickingResult, error) {
			return h.pickings.Scan(ctx, id, code)
		})
}

// AddLine handles POST /api/pickings/{id}/lines requests.
//
// @Summary      Add a line
// @Description  Adds a line for a product at the current source and destination and selects it. The response carries the virtual id of the new line.
// @Tags         Pickings
// @Accept       json
// @Produce      json
// @Param        id path int true "Transfer id"
// @Param        request body dto.AddLineRequest true "New line"
// @Success      200 {object} dto.SuccessResponse{data=dto.PickingView}
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid product or quantity"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "No open session"
// @Failure      409 {object} dto.ErrorResponse "Transfer is done or cancelled"
// @Security     BearerAuth
// @Router       /api/pickings/{id}/lines [post]
func (h *PickingHandler) AddLine(c *gin.Context) {
	req, err := BuildRequest[dto.AddLineRequest](c)
	if err != nil {
		writeRequestError(c, err)
		return
	}
	qty, err := req.Validate()
	if err != nil {
		writeRequestError(c, err)
		return
	}
	in := barcode.LineInput{
		ProductID: req.ProductID,
		Qty:       qty,
		LotName:   strings.TrimSpace(req.LotName),
		OwnerID:   req.OwnerID,
	}
	h.run(c, middleware.ActionAddLine, "Line added", map[string]any{
		"product_id": req.ProductID,
		"quantity":   qty.String(),
	}, func(ctx context.Context, id int64) (*service.PickingResult, error) {
		return h.pickings.AddLine(ctx, id, in)
	})
}

// SetQuantity handles PATCH /api/pickings/{id}/lines/{vid} requests.
//
// @Summary      Set a line quantity
// @Description  Overwrites the done quantity of a line.
// @Tags         Pickings
// @Accept       json
// @Produce      json
// @Param        id path int true "Transfer id"
// @Param        vid path string true "Line virtual id"
// @Param        request body dto.SetQuantityRequest true "Done quantity"
// @Success      200 {object} dto.SuccessResponse{data=dto.PickingView}
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid quantity"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "No open session or unknown line"
// @Failure      409 {object} dto.ErrorResponse "Transfer is done or cancelled"
// @Security     BearerAuth
// @Router       /api/pickings/{id}/lines/{vid} [patch]
func (h *PickingHandler) SetQuantity(c *gin.Context) {
	req, err := BuildRequest[dto.SetQuantityRequest](c)
	if err != nil {
		writeRequestError(c, err)
		return
	}
	qty, err := req.Validate()
	if err != nil {
		writeRequestError(c, err)
		return
	}
	vid := c.Param("vid")
	h.run(c, middleware.ActionSetQuantity, "Line quantity set", map[string]any{
		"line": vid, "quantity": qty.String(),
	}, func(ctx context.Context, id int64) (*service.PickingResult, error) {
		return h.pickings.SetQuantity(ctx, id, vid, qty)
	})
}

// RemoveLine handles DELETE /api/pickings/{id}/lines/{vid} requests.
//
// @Summary      Remove a line
// @Description  Removes a line that is not saved yet, or marks a saved line for deletion on the next save.
// @Tags         Pickings
// @Produce      json
// @Param        id path int true "Transfer id"
// @Param        vid path string true "Line virtual id"
// @Success      200 {object} dto.SuccessResponse{data=dto.PickingView}
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "No open session or unknown line"
// @Failure      409 {object} dto.ErrorResponse "Transfer is done or cancelled"
// @Security     BearerAuth
// @Router       /api/pickings/{id}/lines/{vid} [delete]
func (h *PickingHandler) RemoveLine(c *gin.Context) {
	vid := c.Param("vid")
	h.run(c, middleware.ActionRemoveLine, "Line removed", map[string]any{"line": vid},
		func(ctx context.Context, id int64) (*service.PickingResult, error) {
			return h.pickings.RemoveLine(ctx, id, vid)
		})
}

// SelectLine handles POST /api/pickings/{id}/select/{vid} requests.
//
// @Summary      Select a line
// @Description  Selects a line; the next scans are matched against it first.
// @Tags         Pickings
// @Produce      json
// @Param        id path int true "Transfer id"
// @Param        vid path string true "Line virtual id"
// @Success      200 {object} dto.SuccessResponse{data=dto.PickingView}
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "No open session or unknown line"
// @Security     BearerAuth
// @Router       /api/pickings/{id}/select/{vid} [post]
func (h *PickingHandler) SelectLine(c *gin.Context) {
	builder := NewResponseBuilder(c)
	pickingID, ok := pickingIDParam(c, builder)
	if !ok {
		return
	}
	res, err := h.pickings.SelectLine(c.Request.Context(), pickingID, c.Param("vid"))
	if err != nil {
		writeError(builder, err)
		return
	}
	builder.SuccessOK(newPickingView(c, res))
}

// Save handles POST /api/pickings/{id}/save requests.
//
// @Summary      Save pending edits
// @Description  Sends the pending line edits to the backend as one batch. A failed save keeps the edits and is reported as a danger notification.
// @Tags         Pickings
// @Produce      json
// @Param        id path int true "Transfer id"
// @Success      200 {object} dto.SuccessResponse{data=dto.PickingView}
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "No open session"
// @Failure      409 {object} dto.ErrorResponse "Transfer is done or cancelled"
// @Security     BearerAuth
// @Router       /api/pickings/{id}/save [post]
func (h *PickingHandler) Save(c *gin.Context) {
	h.run(c, middleware.ActionSave, "Edits saved", nil, h.pickings.Save)
}

// ChangeDestination handles POST /api/pickings/{id}/destination requests.
//
// @Summary      Change the destination location
// @Description  Moves the scanned quantities of the current page, or all its lines, to another destination. Partially done lines are split.
// @Tags         Pickings
// @Accept       json
// @Produce      json
// @Param        id path int true "Transfer id"
// @Param        request body dto.DestinationRequest true "Destination"
// @Success      200 {object} dto.SuccessResponse{data=dto.PickingView}
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid location"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "No open session"
// @Failure      409 {object} dto.ErrorResponse "Transfer is done or cancelled"
// @Security     BearerAuth
// @Router       /api/pickings/{id}/destination [post]
func (h *PickingHandler) ChangeDestination(c *gin.Context) {
	req, err := BuildRequestAndValidate[dto.DestinationRequest](c)
	if err != nil {
		writeRequestError(c, err)
		return
	}
	change := service.DestinationChange{LocationID: req.LocationID, MoveScannedOnly: req.MoveScannedOnly}
	h.run(c, middleware.ActionDestination, "Destination changed", map[string]any{"location_id": req.LocationID},
		func(ctx context.Context, id int64) (*service.PickingResult, error) {
			return h.pickings.ChangeDestination(ctx, id, change)
		})
}

// ChangeSource handles POST /api/pickings/{id}/source requests.
//
// @Summary      Change the source location
// @Description  Changes the source of the selected line, or of every line of the current page.
// @Tags         Pickings
// @Accept       json
// @Produce      json
// @Param        id path int true "Transfer id"
// @Param        request body dto.SourceRequest true "Source"
// @Success      200 {object} dto.SuccessResponse{data=dto.PickingView}
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid location"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "No open session"
// @Failure      409 {object} dto.ErrorResponse "Transfer is done or cancelled"
// @Security     BearerAuth
// @Router       /api/pickings/{id}/source [post]
func (h *PickingHandler) ChangeSource(c *gin.Context) {
	req, err := BuildRequestAndValidate[dto.SourceRequest](c)
	if err != nil {
		writeRequestError(c, err)
		return
	}
	change := service.SourceChange{LocationID: req.LocationID, AllPageLines: req.AllPageLines}
	h.run(c, middleware.ActionSource, "Source changed", map[string]any{"location_id": req.LocationID},
		func(ctx context.Context, id int64) (*service.PickingResult, error) {
			return h.pickings.ChangeSource(ctx, id, change)
		})
}

// PutInPack handles POST /api/pickings/{id}/put-in-pack requests.
//
// @Summary      Put in pack
// @Description  Saves the pending edits and puts the done quantities without a destination package in a new package. The backend may answer with a package type selection wizard.
// @Tags         Pickings
// @Accept       json
// @Produce      json
// @Param        id path int true "Transfer id"
// @Param        request body dto.PutInPackRequest false "Package options"
// @Success      200 {object} dto.SuccessResponse{data=dto.PickingView}
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "No open session"
// @Failure      409 {object} dto.ErrorResponse "Transfer is done or cancelled"
// @Security     BearerAuth
// @Router       /api/pickings/{id}/put-in-pack [post]
func (h *PickingHandler) PutInPack(c *gin.Context) {
	req, err := BuildOptionalRequest[dto.PutInPackRequest](c)
	if err != nil {
		writeRequestError(c, err)
		return
	}
	opts := barcode.PutInPackOptions{
		PackageName:   strings.TrimSpace(req.PackageName),
		PackageTypeID: req.PackageTypeID,
	}
	h.run(c, middleware.ActionPutInPack, "Put in pack", map[string]any{"package_type_id": req.PackageTypeID},
		func(ctx context.Context, id int64) (*service.PickingResult, error) {
			return h.pickings.PutInPack(ctx, id, opts)
		})
}

// Validate handles POST /api/pickings/{id}/validate requests.
//
// @Summary      Validate the transfer
// @Description  Saves the pending edits and validates the transfer. When quantities are left the backend answers with a backorder wizard; repeat the call with backorder set to create or discard.
// @Tags         Pickings
// @Accept       json
// @Produce      json
// @Param        id path int true "Transfer id"
// @Param        request body dto.ValidateRequest false "Backorder choice"
// @Success      200 {object} dto.SuccessResponse{data=dto.PickingView}
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid backorder choice"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "No open session"
// @Failure      409 {object} dto.ErrorResponse "Transfer is done or cancelled"
// @Security     BearerAuth
// @Router       /api/pickings/{id}/validate [post]
func (h *PickingHandler) Validate(c *gin.Context) {
	req, err := BuildOptionalRequest[dto.ValidateRequest](c)
	if err != nil {
		writeRequestError(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeRequestError(c, err)
		return
	}
	h.run(c, middleware.ActionValidate, "Transfer validated", map[string]any{"backorder": req.Backorder},
		func(ctx context.Context, id int64) (*service.PickingResult, error) {
			return h.pickings.Validate(ctx, id, req.Backorder)
		})
}

// Cancel handles POST /api/pickings/{id}/cancel requests.
//
// @Summary      Cancel the transfer
// @Description  Saves the pending edits and cancels the transfer. Requires the supervisor role when authentication is enabled.
// @Tags         Pickings
// @Produce      json
// @Param        id path int true "Transfer id"
// @Success      200 {object} dto.SuccessResponse{data=dto.PickingView}
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - supervisor role required"
// @Failure      404 {object} dto.ErrorResponse "No open session"
// @Failure      409 {object} dto.ErrorResponse "Transfer is done or cancelled"
// @Security     BearerAuth
// @Router       /api/pickings/{id}/cancel [post]
func (h *PickingHandler) Cancel(c *gin.Context) {
	h.run(c, middleware.ActionCancel, "Transfer cancelled", nil, h.pickings.Cancel)
}

// Exit handles POST /api/pickings/{id}/exit requests.
//
// @Summary      Leave the session
// @Description  Saves the pending edits and closes the session. When the save fails the session stays open and the failure is reported as a notification.
// @Tags         Pickings
// @Produce      json
// @Param        id path int true "Transfer id"
// @Success      200 {object} dto.SuccessResponse{data=dto.PickingView}
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "No open session"
// @Security     BearerAuth
// @Router       /api/pickings/{id}/exit [post]
func (h *PickingHandler) Exit(c *gin.Context) {
	h.run(c, middleware.ActionExit, "Scanning session left", nil, h.pickings.Exit)
}

// NextPage handles POST /api/pickings/{id}/page/next requests.
//
// @Summary      Next page
// @Description  Moves to the next page of work, wrapping around after the last one.
// @Tags         Pickings
// @Produce      json
// @Param        id path int true "Transfer id"
// @Success      200 {object} dto.SuccessResponse{data=dto.PickingView}
// @Failure      404 {object} dto.ErrorResponse "No open session"
// @Security     BearerAuth
// @Router       /api/pickings/{id}/page/next [post]
func (h *PickingHandler) NextPage(c *gin.Context) {
	h.page(c, h.pickings.NextPage)
}

// PreviousPage handles POST /api/pickings/{id}/page/previous requests.
//
// @Summary      Previous page
// @Description  Moves to the previous page of work, wrapping around before the first one.
// @Tags         Pickings
// @Produce      json
// @Param        id path int true "Transfer id"
// @Success      200 {object} dto.SuccessResponse{data=dto.PickingView}
// @Failure      404 {object} dto.ErrorResponse "No open session"
// @Security     BearerAuth
// @Router       /api/pickings/{id}/page/previous [post]
func (h *PickingHandler) PreviousPage(c *gin.Context) {
	h.page(c, h.pickings.PreviousPage)
}

func (h *PickingHandler) page(c *gin.Context, op pickingOp) {
	builder := NewResponseBuilder(c)
	pickingID, ok := pickingIDParam(c, builder)
	if !ok {
		return
	}
	res, err := op(c.Request.Context(), pickingID)
	if err != nil {
		writeError(builder, err)
		return
	}
	builder.SuccessOK(newPickingView(c, res))
}

// writeRequestError answers a request that could not be bound or validated.
func writeRequestError(c *gin.Context, err error) {
	builder := NewResponseBuilder(c)
	if _, ok := err.(*dto.ValidationError); ok {
		writeError(builder, err)
		return
	}
	builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
}
