package llm

import "errors"

// Sentinel errors surfaced by ChatCompleter implementations. Stages switch on
// these to decide whether to step down the fallback ladder: ErrTimeout
// short-circuits, ErrSchemaRejected steps down, ErrTransport may be retried
// once.
var (
	// ErrTimeout means the wall-clock deadline elapsed before a response.
	ErrTimeout = errors.New("llm: request timed out")
	// ErrTransport means the request failed before a usable response arrived.
	ErrTransport = errors.New("llm: transport failure")
	// ErrSchemaRejected means the backend does not support the requested
	// response format.
	ErrSchemaRejected = errors.New("llm: response format rejected")
)
