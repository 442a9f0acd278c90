package llm

import (
	"errors"
	"fmt"
)

// ErrEmptyCompletion is returned by transports when the model produced no text
// (for example when the answer was blocked by a safety filter).
var ErrEmptyCompletion = errors.New("model returned an empty completion")

// ConfigurationError means the call cannot be attempted, e.g. no API key was supplied.
// It is returned immediately and never retried.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// CompletionFailedError is returned when every attempt failed. Err is the last cause.
type CompletionFailedError struct {
	Attempts int
	Err      error
}

func (e *CompletionFailedError) Error() string {
	return fmt.Sprintf("completion failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *CompletionFailedError) Unwrap() error {
	return e.Err
}
