package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/internal/adapter/dto/chat"
	chatUsecase "github.com/johnquangdev/meeting-notes/internal/usecase/chat"
	"github.com/johnquangdev/meeting-notes/pkg/ai"
)

// Chat handles the meeting chatbot
type Chat struct {
	svc    chatUsecase.Service
	logger *zap.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(svc chatUsecase.Service, logger *zap.Logger) *Chat {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chat{svc: svc, logger: logger}
}

// StreamChat handles POST /chat/stream
// @Summary      Chat about a meeting
// @Description  Streams the assistant reply as plain text chunks. The meeting is looked up by ID, then by session ID.
// @Tags         Chat
// @Accept       json
// @Produce      plain
// @Param        request  body      chat.StreamChatRequest  true  "Conversation"
// @Success      200      {string}  string  "Streamed reply"
// @Failure      400      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse
// @Failure      502      {object}  common.ErrorResponse
// @Router       /chat/stream [post]
func (h *Chat) StreamChat(c echo.Context) error {
	var req chat.StreamChatRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	input := chatUsecase.StreamInput{
		MeetingID: req.MeetingID,
		Messages:  make([]ai.Message, 0, len(req.Messages)),
	}
	for _, m := range req.Messages {
		input.Messages = append(input.Messages, ai.Message{Role: m.Role, Content: m.Content})
	}

	ctx := c.Request().Context()
	messages, err := h.svc.Prepare(ctx, input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	res := c.Response()
	commit := func() {
		if res.Committed {
			return
		}
		res.Header().Set(echo.HeaderContentType, echo.MIMETextPlainCharsetUTF8)
		res.Header().Set("Cache-Control", "no-cache")
		res.Header().Set("Connection", "keep-alive")
		res.WriteHeader(http.StatusOK)
	}

	err = h.svc.Stream(ctx, messages, func(delta string) error {
		commit()
		if _, err := res.Write([]byte(delta)); err != nil {
			return err
		}
		res.Flush()
		return nil
	})
	if err != nil {
		if !res.Committed {
			return HandleError(h.logger, c, err)
		}
		// Reply already partially sent; the client sees a truncated body.
		h.logger.Warn("⚠️ Chat stream ended early",
			zap.String("request_id", getRequestID(c)),
			zap.Error(err))
		return nil
	}
	commit()
	return nil
}
