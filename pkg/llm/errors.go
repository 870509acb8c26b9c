package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrorClass tells the retry layer how to treat a provider failure.
type ErrorClass string

const (
	// ClassTransient covers network errors, timeouts and provider-side
	// throttling. Safe to retry.
	ClassTransient ErrorClass = "transient"

	// ClassInvalidResponse means the provider answered but the output failed
	// structural validation. Retrying with the same prompt is pointless, so
	// callers get exactly one retry with stricter formatting instructions.
	ClassInvalidResponse ErrorClass = "invalid_response"

	// ClassFatal covers authentication and configuration failures. Never
	// retried.
	ClassFatal ErrorClass = "fatal"
)

// ProviderError wraps a failure from an LLM backend with its retry class.
type ProviderError struct {
	Class ErrorClass
	Op    string // e.g. "gemini.chat", "ollama.chat"
	Err   error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Class, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func Transient(op string, err error) *ProviderError {
	return &ProviderError{Class: ClassTransient, Op: op, Err: err}
}

func InvalidResponse(op string, err error) *ProviderError {
	return &ProviderError{Class: ClassInvalidResponse, Op: op, Err: err}
}

func Fatal(op string, err error) *ProviderError {
	return &ProviderError{Class: ClassFatal, Op: op, Err: err}
}

// Classify returns the retry class of an error.
// Context timeouts count as transient: a per-call deadline expiring is the
// same as the provider not answering in time. Anything unrecognized is fatal
// so an unexpected fault is surfaced once instead of being hammered.
func Classify(err error) ErrorClass {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Class
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ClassTransient
	}
	return ClassFatal
}

// ClassifyStatus maps an HTTP status from a vendor API to a retry class.
// Shared by the HTTP-based providers.
func ClassifyStatus(status int) ErrorClass {
	switch {
	case status == 401 || status == 403:
		return ClassFatal
	case status == 408 || status == 429:
		return ClassTransient
	case status >= 500:
		return ClassTransient
	default:
		// 400s other than auth/throttle mean we built a bad request, which
		// is a configuration problem on our side.
		return ClassFatal
	}
}
