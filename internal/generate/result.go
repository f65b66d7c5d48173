package generate

import (
	"context"
	"errors"

	"github.com/yourorg/listing-api/claude"
)

// Source tells whether content came from the model or from local templates.
type Source string

const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

// Reason explains why fallback content (or partial fallback content) was used.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonAIDisabled        Reason = "ai_disabled"
	ReasonUpstreamStatus    Reason = "upstream_status"
	ReasonUpstreamError     Reason = "upstream_error"
	ReasonTimeout           Reason = "timeout"
	ReasonCanceled          Reason = "canceled"
	ReasonRateLimited       Reason = "rate_limited"
	ReasonMalformedResponse Reason = "malformed_response"
	ReasonEmptyContent      Reason = "empty_content"
	ReasonNoJSONObject      Reason = "no_json_object"
	ReasonInvalidJSON       Reason = "invalid_json"
	ReasonIncompletePosts   Reason = "incomplete_posts"
	ReasonPartialPosts      Reason = "partial_posts"
)

// Result is the outcome of one generation. Value is always usable.
type Result[T any] struct {
	Value  T
	Source Source
	Reason Reason
	// Err is the underlying failure, if any.
	Err error
}

func (r Result[T]) UsedAI() bool { return r.Source == SourceAI }

func aiResult[T any](v T) Result[T] {
	return Result[T]{Value: v, Source: SourceAI}
}

func fallbackResult[T any](v T, reason Reason, err error) Result[T] {
	return Result[T]{Value: v, Source: SourceFallback, Reason: reason, Err: err}
}

// classify maps an upstream error to a Reason.
func classify(err error) Reason {
	var se *claude.StatusError
	switch {
	case errors.Is(err, context.Canceled):
		return ReasonCanceled
	case errors.As(err, &se):
		return ReasonUpstreamStatus
	case errors.Is(err, claude.ErrRateLimited):
		return ReasonRateLimited
	case errors.Is(err, claude.ErrEmptyContent):
		return ReasonEmptyContent
	case errors.Is(err, claude.ErrMalformedResponse):
		return ReasonMalformedResponse
	case errors.Is(err, context.DeadlineExceeded), isTimeout(err):
		return ReasonTimeout
	default:
		return ReasonUpstreamError
	}
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
