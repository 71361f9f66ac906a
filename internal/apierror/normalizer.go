package apierror

import (
	"encoding/json"
	"strings"
)

// Known backend phrases mapped to user-facing text. Unknown messages pass
// through unchanged, so normalizing an already-friendly string is a no-op.
var messageMap = map[string]string{
	"All fields are required: fullname, username, email, password.": "Please fill in all fields: full name, username, email, and password.",
	"Email and password are required.":                              "Please enter your email and password.",
	"limit and offset must be valid numbers.":                      "Invalid list parameters. Please refresh the page.",
	"Room name is required":                                        "Please enter a room name.",
	"Room id is required":                                          "Please select a room.",
	"Valid userId is required":                                     "Session issue. Please log in again.",
	"Start date must be before end date":                           "The start time must be before the end time.",
	"Booking id is required":                                       "Booking could not be identified. Please try again.",
	"Validation error on parameters.":                              "Invalid request. Please check the link or try again.",
	"Validation error on request body.":                            "Please check your input and try again.",
	"Validation error on query parameters.":                        "Invalid filters. Please adjust and try again.",
	"Authorization header is missing. Please log in to continue.":  "Please log in to continue.",
	"Token not found. Use format: Bearer <token>.":                 "Session invalid. Please log in again.",
	"Invalid or expired token. Please log in again.":               "Your session has expired. Please log in again.",
	"Invalid credentials. User not found.":                         "No account found with this email.",
	"Invalid credentials. Invalid password.":                       "Incorrect password. Please try again.",
	"User not provided. Please log in or send a valid token.":      "Please log in to continue.",
	"You are not authorized to delete this booking":                "You can only delete your own bookings.",
	"Room not found":                                               "This room no longer exists or was removed.",
	"User not found":                                               "User not found. Please try again.",
	"Booking not found":                                            "This booking no longer exists or was already removed.",
	"A user with this email already exists.":                       "An account with this email already exists. Try logging in or use another email.",
	"A room with this name already exists":                         "A room with this name already exists. Please choose a different name.",
	"Room has bookings. Delete them before deleting the room":      "This room has existing bookings. Delete or move them first, then delete the room.",
	"The requested booking overlaps with one or more existing bookings.": "This time slot is already booked. Please choose another time.",
	"Booking is active. Deactivate it before deleting":             "This booking is still active. Deactivate it before deleting.",
	"Internal server error. Registration could not be completed.":  "We couldn’t complete registration. Please try again later.",
	"Internal server error. Login could not be completed.":         "We couldn’t sign you in. Please try again later.",
	"Internal server error":                                        "Something went wrong. Please try again later.",
	"Internal server error while validating the request.":          "We couldn’t process your request. Please try again later.",
}

const (
	invalidBodyKeysPrefix  = "Invalid keys in body:"
	invalidQueryKeysPrefix = "Invalid query parameters:"

	overlapHint = "Choose a time that doesn’t overlap with existing bookings."

	DefaultMessage = "Something went wrong. Please try again."
)

type (
	// Extras carries the optional error-body fields that refine the main message.
	Extras struct {
		Errors            []string
		ConflictingRanges json.RawMessage
	}

	// ResponseBody is the error payload shape the backend returns on non-2xx.
	ResponseBody struct {
		Message           string          `json:"message"`
		Error             string          `json:"error"`
		Errors            []string        `json:"errors"`
		ConflictingRanges json.RawMessage `json:"conflictingRanges"`
	}
)

func Normalize(message string) string {
	return NormalizeWith(message, Extras{})
}

func NormalizeWith(message string, extras Extras) string {
	main := mapKnownMessage(message)
	parts := []string{main}

	if len(extras.Errors) > 0 {
		first := extras.Errors[0]
		if first != "" && first != message {
			friendly := mapKnownMessage(first)
			if friendly != main {
				parts = append(parts, friendly)
			}
		}
	}

	if hasConflictingRanges(extras.ConflictingRanges) {
		parts = append(parts, overlapHint)
	}

	return strings.Join(parts, " ")
}

func NormalizeResponse(body ResponseBody) string {
	message := body.Message
	if message == "" {
		message = body.Error
	}
	if message == "" {
		message = DefaultMessage
	}

	return NormalizeWith(message, Extras{
		Errors:            body.Errors,
		ConflictingRanges: body.ConflictingRanges,
	})
}

func mapKnownMessage(message string) string {
	trimmed := strings.TrimSpace(message)
	if friendly, ok := messageMap[trimmed]; ok {
		return friendly
	}

	switch {
	case strings.HasPrefix(trimmed, invalidBodyKeysPrefix):
		return "Some fields are not allowed. Please only fill in the requested fields."
	case strings.HasPrefix(trimmed, invalidQueryKeysPrefix):
		return "Invalid filters. Please use only the allowed options."
	case strings.Contains(trimmed, "Path parameter id is required"), strings.Contains(trimmed, "is required"):
		return "Required information is missing. Please check the form and try again."
	case strings.Contains(trimmed, "Title must be between 3 and 80 characters"):
		return "Title must be between 3 and 80 characters."
	case strings.Contains(trimmed, "Start date is required"), strings.Contains(trimmed, "start_at"):
		return "Please enter a valid start date and time."
	case strings.Contains(trimmed, "End date is required"), strings.Contains(trimmed, "end_at"):
		return "Please enter a valid end date and time."
	case strings.Contains(trimmed, "ISO 8601"):
		return "Please use a valid date and time format."
	case strings.Contains(trimmed, "limit must be"), strings.Contains(trimmed, "offset must be"):
		return "Invalid list options. Please refresh and try again."
	case strings.Contains(trimmed, "from is required"), strings.Contains(trimmed, "to is required"):
		return "Please set a valid date range."
	case strings.Contains(trimmed, "userId"):
		return "Session issue. Please log in again."
	}

	return trimmed
}

func hasConflictingRanges(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}

	var ranges []json.RawMessage
	if err := json.Unmarshal(raw, &ranges); err != nil {
		return false
	}

	return len(ranges) > 0
}
