package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", FormatValue(nil))
	assert.Equal(t, "plain text", FormatValue("plain text"))
	assert.Equal(t, "42", FormatValue(42))
	assert.Equal(t, "true", FormatValue(true))

	// Composite values render as indented JSON.
	formatted := FormatValue(map[string]any{"status": "ok"})
	assert.Contains(t, formatted, `"status": "ok"`)

	formatted = FormatValue([]any{"a", "b"})
	assert.Contains(t, formatted, `"a"`)
	assert.Contains(t, formatted, "\n")
}
