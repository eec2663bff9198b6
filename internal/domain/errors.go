package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind categorizes every failure the pipeline can surface.
type Kind string

const (
	// Client-side, resolved before any network call.
	KindEmptyInput   Kind = "empty_input"
	KindMalformedURL Kind = "malformed_url"

	// Classified from upstream API responses.
	KindDuplicateRecord Kind = "duplicate_record" // 409, url already bookmarked
	KindInvalidRequest  Kind = "invalid_request"  // 400
	KindUnauthorized    Kind = "unauthorized"     // 401
	KindServerError     Kind = "server_error"     // >= 500
	KindTimeout         Kind = "timeout"          // local abandonment
	KindNetworkFailure  Kind = "network_failure"  // request never reached the server

	// Store-level. NotFound on patch/remove is treated as already satisfied
	// by the coordinator and never surfaces to the user.
	KindNotFound    Kind = "not_found"
	KindDuplicateID Kind = "duplicate_id"
)

// Error is the single error type crossing package boundaries in the pipeline.
type Error struct {
	Kind   Kind
	Detail string // human-readable, shown as-is to the user
	cause  error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.cause }

// Is lets errors.Is match on the Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func NewError(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

func WrapError(kind Kind, detail string, cause error) *Error {
	return &Error{Kind: kind, Detail: detail, cause: cause}
}

// KindOf extracts the Kind from any error, defaulting to server_error so an
// unclassified failure still maps to a user-facing category.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindServerError
}

// ErrorFromStatus classifies an upstream HTTP status plus its optional
// detail string into the taxonomy.
func ErrorFromStatus(status int, detail string) *Error {
	switch {
	case status == http.StatusConflict:
		if detail == "" {
			detail = "already bookmarked"
		}
		return NewError(KindDuplicateRecord, detail)
	case status == http.StatusBadRequest:
		return NewError(KindInvalidRequest, detail)
	case status == http.StatusUnauthorized:
		return NewError(KindUnauthorized, detail)
	case status == http.StatusNotFound:
		return NewError(KindNotFound, detail)
	case status >= 500:
		return NewError(KindServerError, detail)
	default:
		return NewError(KindInvalidRequest, fmt.Sprintf("unexpected status %d", status))
	}
}
