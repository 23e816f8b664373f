package api

import "fmt"

// Error is returned by Chat when the server answers with a non-2xx status.
type Error struct {
	StatusCode int
	StatusText string
	Detail     string
}

// Error prefers the server-provided detail and falls back to the status text.
func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.StatusText != "" {
		return e.StatusText
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}
