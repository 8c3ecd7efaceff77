package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classifying failures across the publish flow. Only
// ErrTagTransient is ever retried; everything else is surfaced immediately.
var (
	// ErrTagMalformedPayload marks event payloads missing required fields
	ErrTagMalformedPayload = goerr.NewTag("malformed_payload")

	// ErrTagInvalidFormat marks release versions that fail format validation
	ErrTagInvalidFormat = goerr.NewTag("invalid_format")

	// ErrTagConflict marks publish attempts against an already existing tag
	ErrTagConflict = goerr.NewTag("conflict")

	// ErrTagTransient marks failures worth a bounded retry (network, 5xx, 429)
	ErrTagTransient = goerr.NewTag("transient")

	// ErrTagFatal marks permanent rejections such as bad credentials
	ErrTagFatal = goerr.NewTag("fatal")
)
