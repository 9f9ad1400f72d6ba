package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Error codes returned in the error envelope.
const (
	CodeInvalidJSON          = "INVALID_JSON"
	CodeMissingText          = "MISSING_TEXT"
	CodeMissingSignature     = "MISSING_SIGNATURE"
	CodeInvalidSignature     = "INVALID_SIGNATURE"
	CodeInvalidLineSignature = "INVALID_LINE_SIGNATURE"
	CodeTextTooShort         = "TEXT_TOO_SHORT"
	CodeAIError              = "AI_ERROR"
	CodeScrapeFailed         = "SCRAPE_FAILED"
	CodeInternalError        = "INTERNAL_ERROR"
)

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type errorResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorCode string `json:"error_code,omitempty"`
	Details   string `json:"details,omitempty"`
}

func respondSuccess(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusOK, successResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondError(c echo.Context, status int, message, code, details string) error {
	return c.JSON(status, errorResponse{
		Success:   false,
		Message:   message,
		ErrorCode: code,
		Details:   details,
	})
}
