package handler

import (
	stdErrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/errors"
	"github.com/johnquangdev/meeting-notes/internal/adapter/dto/common"
)

// getRequestID reads the request id set by the RequestID middleware or the client
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return respond(logger, c, http.StatusOK, common.Response{Success: true, Data: data})
}

// HandleCreated writes a 201 success response
func HandleCreated(logger *zap.Logger, c echo.Context, data interface{}) error {
	return respond(logger, c, http.StatusCreated, common.Response{Success: true, Data: data})
}

// HandleList writes a success response carrying the number of returned records
func HandleList(logger *zap.Logger, c echo.Context, data interface{}, count int) error {
	return respond(logger, c, http.StatusOK, common.Response{Success: true, Data: data, Count: &count})
}

// HandleMessage writes a success response with a message and no data
func HandleMessage(logger *zap.Logger, c echo.Context, message string) error {
	return respond(logger, c, http.StatusOK, common.Response{Success: true, Message: message})
}

func respond(logger *zap.Logger, c echo.Context, status int, body common.Response) error {
	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Int("status", status),
		)
	}
	return c.JSON(status, body)
}

// HandleError centralizes error handling and logging using provided logger.
// Errors that are not an AppError are reported as INTERNAL.
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	var appErr errors.AppError
	if !stdErrors.As(err, &appErr) {
		appErr = errors.ErrInternal(err)
	}

	if logger != nil {
		log := logger.Warn
		if appErr.HTTPCode >= http.StatusInternalServerError {
			log = logger.Error
		}
		log("http.response.error",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.String("app_code", appErr.Code.String()),
			zap.Error(err),
		)
	}

	return c.JSON(appErr.HTTPCode, common.ErrorResponse{
		Success: false,
		Error:   appErr.Message,
		Code:    appErr.Code.String(),
		Details: appErr.Details,
	})
}

// bindAndValidate binds the request into req and runs the registered validator
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload()
	}
	if err := c.Validate(req); err != nil {
		return errors.ErrInvalidArgument(err.Error())
	}
	return nil
}

// parseUUIDParam reads a path parameter as a UUID. A malformed id is reported as notFound.
func parseUUIDParam(c echo.Context, name string, notFound func(string) errors.AppError) (uuid.UUID, error) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, notFound(raw)
	}
	return id, nil
}

// parseDateParam parses an optional RFC 3339 or YYYY-MM-DD query value
func parseDateParam(name, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, errors.ErrInvalidArgument(name + " must be RFC 3339 or YYYY-MM-DD")
}
