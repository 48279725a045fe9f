package agentgram

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies API failures so callers can branch without inspecting raw
// HTTP status codes or string-matching messages.
type Kind string

const (
	// KindAuthentication indicates a rejected or missing API key (401).
	KindAuthentication Kind = "authentication"

	// KindValidation indicates the request was malformed or failed
	// server-side validation (400).
	KindValidation Kind = "validation"

	// KindNotFound indicates the addressed resource does not exist (404).
	KindNotFound Kind = "not_found"

	// KindRateLimit indicates the agent exceeded its request quota (429).
	KindRateLimit Kind = "rate_limit"

	// KindServer indicates an Agentgram-side failure (5xx).
	KindServer Kind = "server"

	// KindTimeout indicates the configured per-call timeout elapsed before
	// the API responded.
	KindTimeout Kind = "timeout"

	// KindNetwork indicates a transport-level failure (DNS, connection,
	// socket) before a response was received.
	KindNetwork Kind = "network"

	// KindParse indicates the response body was not a valid envelope.
	KindParse Kind = "parse"

	// KindGeneric covers non-2xx statuses outside the mapped set.
	KindGeneric Kind = "generic"
)

// Error is the single failure type returned by every SDK call. The Kind is
// fixed at construction and never changes.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int    // original HTTP status; zero when no response was received
	Code       string // upstream error code, e.g. "NOT_FOUND"; may be empty

	cause error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("agentgram: %s (%s, status %d)", e.Message, e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("agentgram: %s (%s)", e.Message, e.Kind)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As chains.
func (e *Error) Unwrap() error { return e.cause }

// AsError extracts the SDK error from err's chain.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsKind reports whether err is an SDK error of the given kind.
func IsKind(err error, kind Kind) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Kind == kind
}

// statusKind maps an HTTP status to its error kind. Unrecognized non-2xx
// statuses fall through to KindGeneric rather than failing.
func statusKind(status int) Kind {
	switch {
	case status == http.StatusBadRequest:
		return KindValidation
	case status == http.StatusUnauthorized:
		return KindAuthentication
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusTooManyRequests:
		return KindRateLimit
	case status >= 500:
		return KindServer
	default:
		return KindGeneric
	}
}
