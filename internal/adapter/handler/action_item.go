package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/errors"
	"github.com/johnquangdev/meeting-notes/internal/adapter/dto/actionitem"
	"github.com/johnquangdev/meeting-notes/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	actionItemUsecase "github.com/johnquangdev/meeting-notes/internal/usecase/actionitem"
)

// ActionItem handles action item HTTP requests
type ActionItem struct {
	svc    actionItemUsecase.Service
	logger *zap.Logger
}

// NewActionItemHandler creates a new action item handler
func NewActionItemHandler(svc actionItemUsecase.Service, logger *zap.Logger) *ActionItem {
	return &ActionItem{svc: svc, logger: logger}
}

// ListActionItems handles GET /action-items
// @Summary      List action items
// @Tags         ActionItems
// @Produce      json
// @Param        priority       query     string  false  "High, Medium or Low"
// @Param        status         query     string  false  "To Do, Pending or Completed"
// @Param        meetingId      query     string  false  "Meeting ID (UUID)"
// @Param        dueDateBefore  query     string  false  "Due strictly before (RFC 3339 or YYYY-MM-DD)"
// @Param        dueDateAfter   query     string  false  "Due strictly after (RFC 3339 or YYYY-MM-DD)"
// @Success      200  {object}  common.Response{data=[]actionitem.ActionItemResponse}
// @Failure      400  {object}  common.ErrorResponse
// @Router       /action-items [get]
func (h *ActionItem) ListActionItems(c echo.Context) error {
	var req actionitem.ListActionItemsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	var filters entities.ActionItemFilters
	if req.Priority != "" {
		p := entities.ActionItemPriority(req.Priority)
		filters.Priority = &p
	}
	if req.Status != "" {
		s := entities.ActionItemStatus(req.Status)
		filters.Status = &s
	}
	if req.MeetingID != "" {
		id := uuid.MustParse(req.MeetingID) // validated above
		filters.MeetingID = &id
	}
	var err error
	if filters.DueDateBefore, err = parseDateParam("dueDateBefore", req.DueDateBefore); err != nil {
		return HandleError(h.logger, c, err)
	}
	if filters.DueDateAfter, err = parseDateParam("dueDateAfter", req.DueDateAfter); err != nil {
		return HandleError(h.logger, c, err)
	}

	items, err := h.svc.ListActionItems(c.Request().Context(), filters)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleList(h.logger, c, presenter.ToActionItemListResponse(items), len(items))
}

// GetStats handles GET /action-items/stats
// @Summary      Action item statistics
// @Tags         ActionItems
// @Produce      json
// @Param        meetingId  query     string  false  "Meeting ID (UUID)"
// @Success      200  {object}  common.Response{data=entities.ActionItemStats}
// @Failure      400  {object}  common.ErrorResponse
// @Router       /action-items/stats [get]
func (h *ActionItem) GetStats(c echo.Context) error {
	var req actionitem.StatsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	var meetingID *uuid.UUID
	if req.MeetingID != "" {
		id := uuid.MustParse(req.MeetingID)
		meetingID = &id
	}

	stats, err := h.svc.GetStats(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, stats)
}

// ListMeetingActionItems handles GET /action-items/meeting/:meetingId
// @Summary      List the action items of a meeting
// @Tags         ActionItems
// @Produce      json
// @Param        meetingId  path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  common.Response{data=[]actionitem.ActionItemResponse}
// @Failure      404  {object}  common.ErrorResponse
// @Router       /action-items/meeting/{meetingId} [get]
func (h *ActionItem) ListMeetingActionItems(c echo.Context) error {
	meetingID, err := parseUUIDParam(c, "meetingId", errors.ErrMeetingNotFound)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	items, err := h.svc.ListMeetingActionItems(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleList(h.logger, c, presenter.ToActionItemListResponse(items), len(items))
}

// GetActionItem handles GET /action-items/:id
// @Summary      Get an action item
// @Tags         ActionItems
// @Produce      json
// @Param        id   path      string  true  "Action item ID (UUID)"
// @Success      200  {object}  common.Response{data=actionitem.ActionItemResponse}
// @Failure      404  {object}  common.ErrorResponse
// @Router       /action-items/{id} [get]
func (h *ActionItem) GetActionItem(c echo.Context) error {
	id, err := parseUUIDParam(c, "id", errors.ErrActionItemNotFound)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	item, err := h.svc.GetActionItem(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToActionItemResponse(item))
}

// CreateActionItem handles POST /action-items
// @Summary      Create an action item
// @Description  Adds an item and appends its ID to the owning meeting
// @Tags         ActionItems
// @Accept       json
// @Produce      json
// @Param        request  body      actionitem.CreateActionItemRequest  true  "Action item"
// @Success      201      {object}  common.Response{data=actionitem.ActionItemResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse
// @Router       /action-items [post]
func (h *ActionItem) CreateActionItem(c echo.Context) error {
	var req actionitem.CreateActionItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	item, err := h.svc.CreateActionItem(c.Request().Context(), actionItemUsecase.CreateInput{
		MeetingID: uuid.MustParse(req.MeetingID),
		Text:      req.Text,
		Priority:  entities.ActionItemPriority(req.Priority),
		Status:    entities.ActionItemStatus(req.Status),
		DueDate:   req.DueDate,
		Assignee:  req.Assignee,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToActionItemResponse(item))
}

// UpdateActionItem handles PATCH /action-items/:id
// @Summary      Update an action item
// @Tags         ActionItems
// @Accept       json
// @Produce      json
// @Param        id       path      string                              true  "Action item ID (UUID)"
// @Param        request  body      actionitem.UpdateActionItemRequest  true  "Fields to change"
// @Success      200      {object}  common.Response{data=actionitem.ActionItemResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse
// @Router       /action-items/{id} [patch]
func (h *ActionItem) UpdateActionItem(c echo.Context) error {
	id, err := parseUUIDParam(c, "id", errors.ErrActionItemNotFound)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req actionitem.UpdateActionItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	input := actionItemUsecase.UpdateInput{
		Text:         req.Text,
		DueDate:      req.DueDate,
		ClearDueDate: req.ClearDueDate,
		Assignee:     req.Assignee,
	}
	if req.Priority != nil {
		p := entities.ActionItemPriority(*req.Priority)
		input.Priority = &p
	}
	if req.Status != nil {
		s := entities.ActionItemStatus(*req.Status)
		input.Status = &s
	}

	item, err := h.svc.UpdateActionItem(c.Request().Context(), id, input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToActionItemResponse(item))
}

// DeleteActionItem handles DELETE /action-items/:id
// @Summary      Delete an action item
// @Description  Deletes the item and removes its ID from the owning meeting
// @Tags         ActionItems
// @Produce      json
// @Param        id   path      string  true  "Action item ID (UUID)"
// @Success      200  {object}  common.Response
// @Failure      404  {object}  common.ErrorResponse
// @Router       /action-items/{id} [delete]
func (h *ActionItem) DeleteActionItem(c echo.Context) error {
	id, err := parseUUIDParam(c, "id", errors.ErrActionItemNotFound)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.svc.DeleteActionItem(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleMessage(h.logger, c, "Action item deleted")
}
