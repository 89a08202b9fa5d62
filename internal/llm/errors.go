package llm

import "errors"

// Sentinel errors for the two external call sites. Both the forecaster and
// the classifier report a missing credential the same way, so callers can
// distinguish "no key configured" from a service failure with errors.Is.
var (
	// ErrNoCredentials means the configured provider has no API key.
	ErrNoCredentials = errors.New("no API key configured for LLM provider")

	// ErrBadResponse means the service answered but the reply did not match
	// the expected schema.
	ErrBadResponse = errors.New("unparseable LLM response")
)
