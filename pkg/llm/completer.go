// Package llm provides the single-turn chat completion port used by the
// analysis stages, plus an OpenAI-compatible HTTP implementation.
package llm

import (
	"context"
	"time"
)

// FormatKind selects how the completer must shape its response.
type FormatKind string

const (
	// FormatFreeText requests an unconstrained text response.
	FormatFreeText FormatKind = "free_text"
	// FormatJSONObject requests any valid JSON object.
	FormatJSONObject FormatKind = "json_object"
	// FormatJSONSchema requests a response conforming to a strict schema.
	FormatJSONSchema FormatKind = "json_schema"
)

// ResponseFormat describes the expected response shape. Schema and SchemaName
// are only consulted for FormatJSONSchema.
type ResponseFormat struct {
	Kind       FormatKind
	SchemaName string
	Schema     map[string]any
}

// FreeText returns the unconstrained format.
func FreeText() ResponseFormat {
	return ResponseFormat{Kind: FormatFreeText}
}

// JSONObject returns the generic JSON object format.
func JSONObject() ResponseFormat {
	return ResponseFormat{Kind: FormatJSONObject}
}

// JSONSchema returns a strict schema-constrained format.
func JSONSchema(name string, schema map[string]any) ResponseFormat {
	return ResponseFormat{Kind: FormatJSONSchema, SchemaName: name, Schema: schema}
}

// Request is a single-turn completion call.
type Request struct {
	Model       string
	System      string
	User        string
	Temperature float64
	MaxTokens   int
	Format      ResponseFormat

	// Timeout bounds the wall-clock duration of the call. Zero means the
	// client default.
	Timeout time.Duration
}

// ChatCompleter performs stateless single-turn completions. Implementations
// must honor Request.Timeout as a hard deadline and surface ErrTimeout when it
// is exceeded.
type ChatCompleter interface {
	Complete(ctx context.Context, req Request) (string, error)
}
