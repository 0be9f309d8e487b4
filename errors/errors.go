package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode is the machine readable code carried in error responses
type ErrorCode string

const (
	ErrorCode_INTERNAL         ErrorCode = "INTERNAL"
	ErrorCode_INVALID_ARGUMENT ErrorCode = "INVALID_ARGUMENT"
	ErrorCode_INVALID_PAYLOAD  ErrorCode = "INVALID_PAYLOAD"
	ErrorCode_NOT_FOUND        ErrorCode = "NOT_FOUND"

	ErrorCode_MEETING_NOT_FOUND         ErrorCode = "MEETING_NOT_FOUND"
	ErrorCode_MEETING_EMPTY_TRANSCRIPT  ErrorCode = "MEETING_EMPTY_TRANSCRIPT"
	ErrorCode_MEETING_PROCESSING_FAILED ErrorCode = "MEETING_PROCESSING_FAILED"
	ErrorCode_MEETING_IN_FLIGHT         ErrorCode = "MEETING_IN_FLIGHT"

	ErrorCode_ACTION_ITEM_NOT_FOUND ErrorCode = "ACTION_ITEM_NOT_FOUND"

	ErrorCode_LLM_REQUEST_FAILED  ErrorCode = "LLM_REQUEST_FAILED"
	ErrorCode_LLM_SERVICE_UNAVAIL ErrorCode = "LLM_SERVICE_UNAVAILABLE"

	ErrorCode_DB_QUERY_FAILED ErrorCode = "DB_QUERY_FAILED"
)

// String returns the wire form of the code
func (c ErrorCode) String() string {
	return string(c)
}

// AppError is the error type rendered by HTTP handlers
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the underlying cause
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid payload",
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

// Meeting Errors
func ErrMeetingNotFound(meetingID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_MEETING_NOT_FOUND,
		Message:  "Meeting not found",
	}.WithDetail("meeting_id", meetingID)
}

func ErrMeetingEmptyTranscript(meetingID string) AppError {
	return AppError{
		HTTPCode: http.StatusUnprocessableEntity,
		Code:     ErrorCode_MEETING_EMPTY_TRANSCRIPT,
		Message:  "Meeting has no transcript text",
	}.WithDetail("meeting_id", meetingID)
}

func ErrMeetingInFlight(meetingID string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_MEETING_IN_FLIGHT,
		Message:  "Meeting is already being processed",
	}.WithDetail("meeting_id", meetingID)
}

func ErrMeetingProcessingFailed(meetingID string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_MEETING_PROCESSING_FAILED,
		Message:  "Failed to process meeting",
	}.WithDetail("meeting_id", meetingID)
}

// Action Item Errors
func ErrActionItemNotFound(itemID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_ACTION_ITEM_NOT_FOUND,
		Message:  "Action item not found",
	}.WithDetail("action_item_id", itemID)
}

// Language model Errors
func ErrLLMRequestFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_LLM_REQUEST_FAILED,
		Message:  "Language model request failed",
	}
}

func ErrLLMServiceUnavailable(service string) AppError {
	return AppError{
		HTTPCode: http.StatusServiceUnavailable,
		Code:     ErrorCode_LLM_SERVICE_UNAVAIL,
		Message:  "Language model temporarily unavailable",
	}.WithDetail("service", service)
}

// Database Errors
func ErrDBQueryFailed(query string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_QUERY_FAILED,
		Message:  "Database query failed",
	}.WithDetail("query", query)
}
