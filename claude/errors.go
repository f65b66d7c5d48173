package claude

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyContent is returned when a 200 response carries no text.
	ErrEmptyContent = errors.New("claude: response has no text content")
	// ErrRateLimited is returned when the local request budget is exhausted
	// before the context deadline.
	ErrRateLimited = errors.New("claude: local rate limit exceeded")
	// ErrMalformedResponse wraps decode failures of a 200 response.
	ErrMalformedResponse = errors.New("claude: malformed response")
)

// StatusError reports a non-200 answer from the API.
type StatusError struct {
	StatusCode int
	// Type and Message come from the API error envelope when present.
	Type    string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("claude error %d (%s): %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("claude error %d", e.StatusCode)
}
