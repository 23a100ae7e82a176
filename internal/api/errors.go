package api

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrUnavailable means the request never completed: DNS, dial, TLS or
	// timeout failures. Callers may retry at their own discretion; the
	// client itself never does.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized means the server rejected the bearer credential.
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is a server-side rejection: the request completed but the server
// answered with a non-2xx status. Message carries the server-supplied text
// and Fields the per-field validation messages, when present.
type Error struct {
	StatusCode int
	Message    string
	Fields     map[string][]string
}

// Error aggregates per-field validation messages when present, otherwise
// returns the server message, otherwise a generic fallback. Field messages
// are joined in key order so the output is stable.
func (e *Error) Error() string {
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var msgs []string
		for _, k := range keys {
			msgs = append(msgs, e.Fields[k]...)
		}
		return strings.Join(msgs, "\n")
	}
	if e.Message != "" {
		return e.Message
	}
	return "request rejected by server"
}
