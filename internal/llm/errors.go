package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a generation failure.
type ErrorKind int

const (
	// EmptyResponse means the service answered but no text could be
	// extracted from the reply.
	EmptyResponse ErrorKind = iota

	// ServiceFailure covers transport errors and error statuses.
	ServiceFailure
)

func (k ErrorKind) String() string {
	switch k {
	case EmptyResponse:
		return "empty response"
	case ServiceFailure:
		return "service failure"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// GenerationError is the only error type that leaves the generation
// boundary.
type GenerationError struct {
	Kind ErrorKind

	// Detail is a short human-readable description.
	Detail string

	// StatusCode is the HTTP status reported by the service, if any.
	StatusCode int

	Err error
}

func (e *GenerationError) Error() string {
	msg := "generation failed: " + e.Kind.String()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *GenerationError) Unwrap() error { return e.Err }

// IsKind reports whether err is a GenerationError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ge *GenerationError
	return errors.As(err, &ge) && ge.Kind == kind
}

func emptyResponse(detail string) *GenerationError {
	return &GenerationError{Kind: EmptyResponse, Detail: detail}
}

// serviceFailure builds a ServiceFailure from an SDK error and the HTTP
// status it carried (0 when unknown).
func serviceFailure(status int, err error) *GenerationError {
	detail := "request failed"
	switch {
	case status == http.StatusTooManyRequests:
		detail = "rate limited"
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		detail = "credential rejected"
	case status >= 500:
		detail = "provider unavailable"
	}
	return &GenerationError{Kind: ServiceFailure, Detail: detail, StatusCode: status, Err: err}
}

// asGenerationError passes a GenerationError through and wraps anything
// else as a ServiceFailure.
func asGenerationError(err error) *GenerationError {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge
	}
	return serviceFailure(0, err)
}
