package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/errors"
	"github.com/johnquangdev/meeting-notes/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-notes/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
	meetingUsecase "github.com/johnquangdev/meeting-notes/internal/usecase/meeting"
)

// Meeting handles meeting (transcript) HTTP requests
type Meeting struct {
	svc    meetingUsecase.Service
	logger *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(svc meetingUsecase.Service, logger *zap.Logger) *Meeting {
	return &Meeting{svc: svc, logger: logger}
}

// ListMeetings handles GET /meetings
// @Summary      List meetings
// @Description  Returns meetings newest first, optionally filtered by status and creation date
// @Tags         Meetings
// @Produce      json
// @Param        status     query     string  false  "pending, processing, completed or failed"
// @Param        startDate  query     string  false  "Created at or after (RFC 3339 or YYYY-MM-DD)"
// @Param        endDate    query     string  false  "Created at or before (RFC 3339 or YYYY-MM-DD)"
// @Success      200  {object}  common.Response{data=[]meeting.MeetingResponse}
// @Failure      400  {object}  common.ErrorResponse
// @Failure      500  {object}  common.ErrorResponse
// @Router       /meetings [get]
func (h *Meeting) ListMeetings(c echo.Context) error {
	var req meeting.ListMeetingsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	var filters repositories.TranscriptFilters
	if req.Status != "" {
		status := entities.TranscriptStatus(req.Status)
		filters.Status = &status
	}
	var err error
	if filters.StartDate, err = parseDateParam("startDate", req.StartDate); err != nil {
		return HandleError(h.logger, c, err)
	}
	if filters.EndDate, err = parseDateParam("endDate", req.EndDate); err != nil {
		return HandleError(h.logger, c, err)
	}

	transcripts, err := h.svc.ListMeetings(c.Request().Context(), filters)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleList(h.logger, c, presenter.ToMeetingListResponse(transcripts), len(transcripts))
}

// GetStats handles GET /meetings/stats
// @Summary      Meeting statistics
// @Tags         Meetings
// @Produce      json
// @Success      200  {object}  common.Response{data=entities.MeetingStats}
// @Failure      500  {object}  common.ErrorResponse
// @Router       /meetings/stats [get]
func (h *Meeting) GetStats(c echo.Context) error {
	stats, err := h.svc.GetStats(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, stats)
}

// GetMeeting handles GET /meetings/:id
// @Summary      Get a meeting
// @Description  Returns one meeting with its action items
// @Tags         Meetings
// @Produce      json
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  common.Response{data=meeting.MeetingResponse}
// @Failure      404  {object}  common.ErrorResponse
// @Router       /meetings/{id} [get]
func (h *Meeting) GetMeeting(c echo.Context) error {
	id, err := parseUUIDParam(c, "id", errors.ErrMeetingNotFound)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	m, err := h.svc.GetMeeting(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingDetailResponse(m))
}

// CreateMeeting handles POST /meetings
// @Summary      Create a meeting
// @Description  Stores a transcript. A meeting created as completed is summarized by the watcher.
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        request  body      meeting.CreateMeetingRequest  true  "Meeting"
// @Success      201      {object}  common.Response{data=meeting.MeetingResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Router       /meetings [post]
func (h *Meeting) CreateMeeting(c echo.Context) error {
	var req meeting.CreateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	t, err := h.svc.CreateMeeting(c.Request().Context(), meetingUsecase.CreateMeetingInput{
		SessionID:      req.SessionID,
		Title:          req.Title,
		TranscriptText: req.TranscriptText,
		TranscriptURL:  req.TranscriptURL,
		Status:         entities.TranscriptStatus(req.Status),
		Participants:   req.Participants,
		Duration:       req.Duration,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleCreated(h.logger, c, presenter.ToMeetingResponse(t))
}

// UpdateMeeting handles PATCH /meetings/:id
// @Summary      Update a meeting
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Meeting ID (UUID)"
// @Param        request  body      meeting.UpdateMeetingRequest  true  "Fields to change"
// @Success      200      {object}  common.Response{data=meeting.MeetingResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse
// @Router       /meetings/{id} [patch]
func (h *Meeting) UpdateMeeting(c echo.Context) error {
	id, err := parseUUIDParam(c, "id", errors.ErrMeetingNotFound)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	var req meeting.UpdateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	input := meetingUsecase.UpdateMeetingInput{
		SessionID:      req.SessionID,
		Title:          req.Title,
		TranscriptText: req.TranscriptText,
		TranscriptURL:  req.TranscriptURL,
		Participants:   req.Participants,
		Duration:       req.Duration,
	}
	if req.Status != nil {
		status := entities.TranscriptStatus(*req.Status)
		input.Status = &status
	}

	t, err := h.svc.UpdateMeeting(c.Request().Context(), id, input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(t))
}

// DeleteMeeting handles DELETE /meetings/:id
// @Summary      Delete a meeting
// @Description  Deletes the meeting and all of its action items
// @Tags         Meetings
// @Produce      json
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  common.Response
// @Failure      404  {object}  common.ErrorResponse
// @Router       /meetings/{id} [delete]
func (h *Meeting) DeleteMeeting(c echo.Context) error {
	id, err := parseUUIDParam(c, "id", errors.ErrMeetingNotFound)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.svc.DeleteMeeting(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleMessage(h.logger, c, "Meeting deleted")
}

// ProcessMeeting handles POST /meetings/:id/process
// @Summary      Process a meeting now
// @Description  Runs summarization and action item extraction synchronously
// @Tags         Meetings
// @Produce      json
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  common.Response{data=meeting.ProcessMeetingResponse}
// @Failure      404  {object}  common.ErrorResponse
// @Failure      409  {object}  common.ErrorResponse  "Already being processed"
// @Failure      422  {object}  common.ErrorResponse  "No transcript text"
// @Failure      502  {object}  common.ErrorResponse
// @Router       /meetings/{id}/process [post]
func (h *Meeting) ProcessMeeting(c echo.Context) error {
	id, err := parseUUIDParam(c, "id", errors.ErrMeetingNotFound)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	out, err := h.svc.ProcessMeeting(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToProcessMeetingResponse(out))
}
