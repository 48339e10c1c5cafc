package domain

import (
	"context"
	"errors"
	"net"
)

// UnavailableReason tags why a provider section is missing from a report.
type UnavailableReason string

const (
	ReasonNotConfigured UnavailableReason = "not-configured"
	ReasonUpstreamError UnavailableReason = "upstream-error"
	ReasonTimeout       UnavailableReason = "timeout"
	ReasonNoData        UnavailableReason = "no-data"
)

// Result is the tagged outcome of a single provider query: either a present
// payload or a typed unavailability reason. The zero value is
// Unavailable(upstream-error).
type Result[T any] struct {
	value     T
	reason    UnavailableReason
	available bool
}

// Present wraps a payload in an available Result.
func Present[T any](v T) Result[T] {
	return Result[T]{value: v, available: true}
}

// Unavailable builds a Result carrying only a reason.
func Unavailable[T any](reason UnavailableReason) Result[T] {
	return Result[T]{reason: reason}
}

// Available reports whether the provider returned a payload.
func (r Result[T]) Available() bool { return r.available }

// Value returns the payload and whether it is present.
func (r Result[T]) Value() (T, bool) { return r.value, r.available }

// Reason returns the unavailability reason, or "" when the result is present.
func (r Result[T]) Reason() UnavailableReason {
	if r.available {
		return ""
	}
	if r.reason == "" {
		return ReasonUpstreamError
	}
	return r.reason
}

// ClassifyTransportError maps an outbound HTTP failure to an unavailability
// reason: deadline or client timeouts become ReasonTimeout, everything else
// ReasonUpstreamError.
func ClassifyTransportError(err error) UnavailableReason {
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ReasonTimeout
	}
	return ReasonUpstreamError
}
