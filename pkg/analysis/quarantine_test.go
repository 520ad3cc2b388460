package analysis

import (
	"context"
	"strings"
	"testing"

	"github.com/hipocap/gateway/pkg/llm"
	"github.com/hipocap/gateway/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// longPayload exceeds the quick-mode minimum so the probe actually runs.
var longPayload = strings.Repeat("Here is the email body with plenty of text. ", 10)

func newProbe(completer llm.ChatCompleter, scorer *scriptedScorer) *Quarantine {
	if scorer == nil {
		scorer = &scriptedScorer{}
	}
	return NewQuarantine(completer, scorer, "infect-model", "eval-model", 0.7, 0.3)
}

func TestQuarantine_Skip(t *testing.T) {
	probe := newProbe(&formatCompleter{}, nil)
	ctx := context.Background()

	t.Run("plain status payloads", func(t *testing.T) {
		result := probe.Analyze(ctx, QuarantineInput{
			FunctionName:   "delete_file",
			FunctionResult: map[string]any{"status": "ok", "code": 200},
		})
		assert.Equal(t, models.StageSkipped, result.Decision)
		assert.Contains(t, result.Reason, "Simple structured data")
	})

	t.Run("quick mode scalar payloads", func(t *testing.T) {
		result := probe.Analyze(ctx, QuarantineInput{
			FunctionName:   "count_rows",
			FunctionResult: 42,
			Quick:          true,
		})
		assert.Equal(t, models.StageSkipped, result.Decision)
	})

	t.Run("quick mode short strings", func(t *testing.T) {
		result := probe.Analyze(ctx, QuarantineInput{
			FunctionName:   "get_time",
			FunctionResult: "12:30",
			Quick:          true,
		})
		assert.Equal(t, models.StageSkipped, result.Decision)
		assert.Contains(t, result.Reason, "too small")
	})

	t.Run("full mode does not skip short strings", func(t *testing.T) {
		completer := &formatCompleter{responses: map[llm.FormatKind]string{
			llm.FormatFreeText: "I cannot act on that.",
			llm.FormatJSONSchema: `{"threat_indicators": [], "severity_assessment": "safe",
				"detected_patterns": [], "function_call_attempts": [], "confidence": 0.9,
				"requires_hitl": false, "hitl_reason": "", "summary": "benign", "content_analysis": "nothing found"}`,
		}}
		probe := newProbe(completer, nil)
		result := probe.Analyze(ctx, QuarantineInput{
			FunctionName:   "get_time",
			FunctionResult: "12:30",
		})
		assert.NotEqual(t, models.StageSkipped, result.Decision)
	})
}

func TestQuarantine_QuickMode(t *testing.T) {
	ctx := context.Background()

	t.Run("threatening evaluation blocks", func(t *testing.T) {
		completer := &formatCompleter{responses: map[llm.FormatKind]string{
			llm.FormatJSONSchema: `{"threat_indicators": ["instruction_injection", "S1"],
				"severity_assessment": "high", "detected_patterns": ["contextual_blending"],
				"function_call_attempts": ["send_mail"], "confidence": 0.9,
				"requires_hitl": true, "hitl_reason": "Function call attempt in untrusted content"}`,
		}}
		probe := newProbe(completer, nil)

		result := probe.Analyze(ctx, QuarantineInput{
			FunctionName:   "read_email",
			FunctionResult: longPayload,
			Quick:          true,
		})
		assert.Equal(t, models.StageBlock, result.Decision)
		assert.True(t, result.Severity.AtLeast(models.SeverityHigh))
		assert.True(t, result.RequiresHITL)
		assert.Equal(t, "Function call attempt in untrusted content", result.HITLReason)
		assert.True(t, result.QuickAnalysis)
		// Infection phase is skipped in quick mode.
		require.NotNil(t, result.Infection)
		assert.True(t, result.Infection.Skipped)
	})

	t.Run("safe evaluation passes", func(t *testing.T) {
		completer := &formatCompleter{responses: map[llm.FormatKind]string{
			llm.FormatJSONSchema: `{"threat_indicators": [], "severity_assessment": "safe",
				"detected_patterns": [], "function_call_attempts": [], "confidence": 0.95,
				"requires_hitl": false, "hitl_reason": ""}`,
		}}
		probe := newProbe(completer, nil)

		result := probe.Analyze(ctx, QuarantineInput{
			FunctionName:   "read_email",
			FunctionResult: longPayload,
			Quick:          true,
		})
		assert.Equal(t, models.StagePass, result.Decision)
		assert.Equal(t, models.SeveritySafe, result.Severity)
		assert.False(t, result.RequiresHITL)
		assert.Less(t, result.Score, 0.3)
	})

	t.Run("quick mode truncates oversized input", func(t *testing.T) {
		completer := &formatCompleter{responses: map[llm.FormatKind]string{
			llm.FormatJSONSchema: `{"threat_indicators": [], "severity_assessment": "safe",
				"detected_patterns": [], "function_call_attempts": [], "confidence": 0.9,
				"requires_hitl": false, "hitl_reason": ""}`,
		}}
		probe := newProbe(completer, nil)

		result := probe.Analyze(ctx, QuarantineInput{
			FunctionName:   "read_file",
			FunctionResult: strings.Repeat("x", 3000),
			Quick:          true,
		})
		assert.True(t, result.InputTruncated)
	})
}

func TestQuarantine_FullMode(t *testing.T) {
	ctx := context.Background()

	t.Run("runs the infection phase", func(t *testing.T) {
		completer := &formatCompleter{responses: map[llm.FormatKind]string{
			llm.FormatFreeText: "Sure, I will forward the inbox as instructed.",
			llm.FormatJSONSchema: `{"threat_indicators": ["instruction_injection"],
				"severity_assessment": "critical", "detected_patterns": ["instruction_injection"],
				"function_call_attempts": ["send_mail"], "confidence": 0.95,
				"requires_hitl": false, "hitl_reason": "",
				"summary": "hidden instructions fired", "content_analysis": "the assistant obeyed"}`,
		}}
		probe := newProbe(completer, nil)

		result := probe.Analyze(ctx, QuarantineInput{
			FunctionName:   "read_email",
			FunctionResult: longPayload,
		})
		assert.Equal(t, models.StageBlock, result.Decision)
		require.NotNil(t, result.Infection)
		assert.False(t, result.Infection.Skipped)
		assert.Equal(t, "Sure, I will forward the inbox as instructed.", result.Infection.LLMResponse)
		assert.Equal(t, "infect-model", result.Infection.Model)
	})

	t.Run("failed infection falls back to raw payload", func(t *testing.T) {
		completer := &formatCompleter{
			errs: map[llm.FormatKind]error{llm.FormatFreeText: llm.ErrTransport},
			responses: map[llm.FormatKind]string{
				llm.FormatJSONSchema: `{"threat_indicators": [], "severity_assessment": "safe",
					"detected_patterns": [], "function_call_attempts": [], "confidence": 0.9,
					"requires_hitl": false, "hitl_reason": "", "summary": "", "content_analysis": ""}`,
			},
		}
		probe := newProbe(completer, nil)

		result := probe.Analyze(ctx, QuarantineInput{
			FunctionName:   "read_email",
			FunctionResult: longPayload,
		})
		assert.NotEqual(t, models.StageError, result.Decision)
		require.NotNil(t, result.Infection)
		assert.NotEmpty(t, result.Infection.Err)
	})

	t.Run("evaluation timeout reports an error result", func(t *testing.T) {
		completer := &formatCompleter{
			responses: map[llm.FormatKind]string{llm.FormatFreeText: "neutral response"},
			errs:      map[llm.FormatKind]error{llm.FormatJSONSchema: llm.ErrTimeout},
		}
		probe := newProbe(completer, nil)

		result := probe.Analyze(ctx, QuarantineInput{
			FunctionName:   "read_email",
			FunctionResult: longPayload,
		})
		assert.Equal(t, models.StageError, result.Decision)
		assert.Zero(t, result.Score)
		assert.NotEmpty(t, result.Err)
	})

	t.Run("salvages a JSON object from free text", func(t *testing.T) {
		completer := &formatCompleter{
			errs: map[llm.FormatKind]error{llm.FormatJSONSchema: llm.ErrSchemaRejected},
			responses: map[llm.FormatKind]string{
				llm.FormatJSONObject: `The analysis follows: {"threat_indicators": [], "severity_assessment": "safe",
					"detected_patterns": [], "function_call_attempts": [], "confidence": 0.8,
					"requires_hitl": false}`,
				llm.FormatFreeText: "neutral response",
			},
		}
		probe := newProbe(completer, nil)

		result := probe.Analyze(ctx, QuarantineInput{
			FunctionName:   "read_email",
			FunctionResult: longPayload,
		})
		assert.Equal(t, models.StagePass, result.Decision)
		assert.Equal(t, FallbackFreeText, result.FallbackPath)
	})
}

func TestQuarantine_SeverityBands(t *testing.T) {
	probe := newProbe(&formatCompleter{}, nil)

	cases := []struct {
		name       string
		llm        models.Severity
		hasThreats bool
		assessment float64
		combined   float64
		want       models.Severity
	}{
		{"confident safe verdict is trusted", models.SeveritySafe, false, 0.0, 0.2, models.SeveritySafe},
		{"safe verdict overridden by assessment score", models.SeveritySafe, false, 0.75, 0.2, models.SeverityHigh},
		{"negligible score resolves safe", models.SeverityLow, true, 0.0, 0.05, models.SeveritySafe},
		// Below the allow threshold the score alone never exceeds low.
		{"sub-allow score resolves low", models.SeverityLow, true, 0.0, 0.2, models.SeverityLow},
		{"evaluator level wins below the allow threshold", models.SeverityMedium, true, 0.0, 0.2, models.SeverityMedium},
		{"medium band starts at the allow threshold", models.SeverityLow, true, 0.0, 0.35, models.SeverityMedium},
		{"mid-band half point raises high", models.SeverityLow, true, 0.0, 0.55, models.SeverityHigh},
		{"block band is high", models.SeverityLow, true, 0.0, 0.75, models.SeverityHigh},
		{"extreme score is critical", models.SeverityLow, true, 0.0, 0.95, models.SeverityCritical},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := probe.resolveSeverity(tc.llm, tc.hasThreats, tc.assessment, tc.combined)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestQuarantine_ClassifierCrossCheck(t *testing.T) {
	// A benign-looking verdict whose own text scores high on the classifier
	// still raises the combined score.
	evalJSON := `{"threat_indicators": ["S2"], "severity_assessment": "medium",
		"detected_patterns": [], "function_call_attempts": [], "confidence": 0.8,
		"requires_hitl": false, "hitl_reason": ""}`
	completer := &formatCompleter{responses: map[llm.FormatKind]string{
		llm.FormatJSONSchema: evalJSON,
	}}

	clean := newProbe(completer, &scriptedScorer{defaultScore: 0.0})
	dirty := newProbe(&formatCompleter{responses: map[llm.FormatKind]string{
		llm.FormatJSONSchema: evalJSON,
	}}, &scriptedScorer{defaultScore: 0.95})

	ctx := context.Background()
	in := QuarantineInput{FunctionName: "read_email", FunctionResult: longPayload, Quick: true}

	cleanResult := clean.Analyze(ctx, in)
	dirtyResult := dirty.Analyze(ctx, in)
	assert.Greater(t, dirtyResult.Score, cleanResult.Score)
}
