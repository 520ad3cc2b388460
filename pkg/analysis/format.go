// Package analysis implements the scoring stages of the pipeline: the
// classifier-backed input analysis, the policy analyst, and the two-phase
// quarantine probe.
package analysis

import (
	"encoding/json"
	"fmt"
)

// FormatValue renders a function result or argument payload as the text the
// scoring stages analyze. Strings pass through unchanged; composite values
// are rendered as indented JSON so structure survives into the prompt.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case map[string]any, []any:
		raw, err := json.MarshalIndent(val, "", "  ")
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(raw)
	default:
		return fmt.Sprint(val)
	}
}
