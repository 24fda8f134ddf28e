// Package matching turns one background-free image into a validated animal
// label. It owns the reply contract with the vision model: parsing free text,
// validating against the vocabulary, and the retry/fallback policy around
// inference calls.
package matching

import "errors"

// Sentinel errors for matching operations.
var (
	// ErrTransport marks an inference call that never produced a reply:
	// unreachable service, bad credentials, or an unusable upstream response.
	// It is never retried.
	ErrTransport = errors.New("inference transport failed")

	// ErrInvalidReply marks a reply that failed validation. It drives retries
	// and never leaves the orchestrator.
	ErrInvalidReply = errors.New("reply failed validation")
)
