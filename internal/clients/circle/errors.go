package circle

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Canonical sentinels for the two platform replies callers branch on.
// The platform's own error contract is loose (404 sometimes, a descriptive
// message on another status other times), so classification lives here and
// nowhere else.
var (
	ErrMemberNotFound = errors.New("circle: member not found")
	ErrAlreadyMember  = errors.New("circle: already a space member")
)

type APIError struct {
	Status   int
	Messages []string
	Body     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("circle api: status=%d body=%s", e.Status, e.Body)
}

func newAPIError(status int, body []byte) *APIError {
	type errorBody struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Errors  []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}

	apiErr := &APIError{Status: status, Body: string(body)}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			apiErr.Messages = append(apiErr.Messages, parsed.Message)
		}
		if parsed.Error != "" {
			apiErr.Messages = append(apiErr.Messages, parsed.Error)
		}
		for _, nested := range parsed.Errors {
			if nested.Message != "" {
				apiErr.Messages = append(apiErr.Messages, nested.Message)
			}
		}
	}
	return apiErr
}

func (e *APIError) isNotFound() bool {
	return e.Status == 404 || e.containsAny("not found")
}

func (e *APIError) isAlreadyMember() bool {
	return e.containsAny("already a member", "already been taken")
}

func (e *APIError) containsAny(needles ...string) bool {
	for _, msg := range e.Messages {
		lower := strings.ToLower(msg)
		for _, needle := range needles {
			if strings.Contains(lower, needle) {
				return true
			}
		}
	}
	return false
}
