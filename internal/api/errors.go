package api

import (
	"encoding/json"
	"fmt"

	"github.com/roomdesk/dashboard-client/internal/apierror"
)

// RequestError is any non-2xx backend response that is not a session expiry.
// Message is already normalized into user-facing text.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return e.Message
}

func normalizeErrorBody(body []byte, statusCode int) string {
	var payload apierror.ResponseBody
	_ = json.Unmarshal(body, &payload)

	if payload.Message == "" && payload.Error == "" {
		payload.Message = fmt.Sprintf("Request failed (%d)", statusCode)
	}

	return apierror.NormalizeResponse(payload)
}

func normalizeAuthErrorBody(body []byte, fallback string) string {
	var payload apierror.ResponseBody
	_ = json.Unmarshal(body, &payload)

	message := payload.Message
	if message == "" {
		message = payload.Error
	}
	if message == "" {
		message = fallback
	}

	return apierror.Normalize(message)
}
