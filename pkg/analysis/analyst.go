package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hipocap/gateway/pkg/llm"
	"github.com/hipocap/gateway/pkg/models"
	"github.com/hipocap/gateway/pkg/prompt"
)

// Completer format fallback paths recorded on stage results.
const (
	FallbackJSONSchema = "json_schema"
	FallbackJSONObject = "json_object"
	FallbackFreeText   = "free_text"
)

// Analyst is the deterministic policy analysis stage. It asks the completer
// for a structured verdict at temperature zero and degrades through a
// response-format ladder when the backend rejects structured outputs.
type Analyst struct {
	completer llm.ChatCompleter
	model     string
}

// NewAnalyst creates the analyst stage bound to a completion model.
func NewAnalyst(completer llm.ChatCompleter, model string) *Analyst {
	return &Analyst{completer: completer, model: model}
}

// AnalystInput carries one analysis request.
type AnalystInput struct {
	FunctionName   string
	FunctionResult any
	FunctionArgs   any
	UserQuery      string
	Quick          bool
	Policy         *prompt.FunctionPolicy

	// SystemPrompt overrides the default analyst system prompt when the
	// policy configures a custom one.
	SystemPrompt string
}

// analystVerdict mirrors the structured-output schema.
type analystVerdict struct {
	Score    float64 `json:"score"`
	Decision string  `json:"decision"`
	Reason   string  `json:"reason"`

	ThreatsFound         []string `json:"threats_found"`
	ThreatIndicators     []string `json:"threat_indicators"`
	DetectedPatterns     []string `json:"detected_patterns"`
	FunctionCallAttempts []string `json:"function_call_attempts"`
	PolicyViolations     []string `json:"policy_violations"`
	Severity             string   `json:"severity"`
	Summary              string   `json:"summary"`
	Details              string   `json:"details"`
}

// Analyze runs the analyst and never returns an error: failures are encoded
// in the result's Decision and Err fields so the pipeline can fuse them.
// Timeouts short-circuit the fallback ladder and score 0.0 (do not block on
// a slow backend); a hard failure of both the ladder and the free-text
// fallback scores 1.0.
func (a *Analyst) Analyze(ctx context.Context, in AnalystInput) *models.LLMAnalysisResult {
	systemPrompt := in.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = prompt.AnalystSystemPrompt
	}

	userMessage := prompt.AnalystUserPrompt(in.FunctionName, FormatValue(in.FunctionResult), in.UserQuery, in.Quick, in.Policy)
	schema := analystSchema(in.Quick)

	maxTokens := 600
	if in.Quick {
		maxTokens = 300
	}
	base := llm.Request{
		Model:       a.model,
		System:      systemPrompt,
		User:        userMessage,
		Temperature: 0,
		MaxTokens:   maxTokens,
	}

	// First rung: strict json_schema response format.
	req := base
	req.Format = llm.JSONSchema("security_analysis", schema)
	content, err := a.completer.Complete(ctx, req)
	var verdict analystVerdict
	if err == nil {
		err = json.Unmarshal([]byte(content), &verdict)
	}
	if err == nil {
		return a.result(verdict, in.Quick, FallbackJSONSchema)
	}
	if errors.Is(err, llm.ErrTimeout) {
		return timeoutResult("LLM analysis timed out", err)
	}
	slog.Debug("analyst structured outputs unavailable, falling back to JSON mode", "error", err)

	// Second rung: json_object mode with the schema spelled out in the prompt.
	req = base
	req.User = prompt.WithSchema(userMessage, schema)
	req.Format = llm.JSONObject()
	content, jsonErr := a.completer.Complete(ctx, req)
	if jsonErr == nil {
		jsonErr = json.Unmarshal([]byte(content), &verdict)
	}
	if jsonErr == nil {
		return a.result(verdict, in.Quick, FallbackJSONObject)
	}
	if errors.Is(jsonErr, llm.ErrTimeout) {
		return timeoutResult("LLM analysis timed out", jsonErr)
	}
	slog.Debug("analyst JSON mode failed, falling back to free text", "error", jsonErr)

	// Last rung: plain completion. The text cannot be trusted as a verdict,
	// so the stage reports a neutral ALLOW and surfaces the degradation.
	req = base
	req.Format = llm.FreeText()
	content, textErr := a.completer.Complete(ctx, req)
	if textErr != nil {
		if errors.Is(textErr, llm.ErrTimeout) {
			return timeoutResult("LLM analysis timed out (fallback also timed out)", textErr)
		}
		msg := fmt.Sprintf("LLM analysis failed: %v (fallback also failed: %v)", err, textErr)
		return &models.LLMAnalysisResult{
			Decision: models.StageError,
			Score:    1.0,
			Reason:   msg,
			Err:      msg,
		}
	}

	result := &models.LLMAnalysisResult{
		Decision:     models.StageAllow,
		Score:        0.0,
		Reason:       "Fallback analysis - structured outputs not supported",
		Err:          "Structured outputs not supported, used fallback",
		FallbackPath: FallbackFreeText,
	}
	if !in.Quick {
		result.Severity = models.SeveritySafe
		result.Summary = headOf(content, 200)
		result.Details = content
		if content == "" {
			result.Summary = "Fallback analysis"
			result.Details = "Fallback analysis"
		}
	}
	return result
}

func (a *Analyst) result(v analystVerdict, quick bool, fallbackPath string) *models.LLMAnalysisResult {
	decision := models.StageDecision(v.Decision)
	if decision != models.StageBlock {
		decision = models.StageAllow
	}
	result := &models.LLMAnalysisResult{
		Decision:     decision,
		Score:        v.Score,
		Reason:       v.Reason,
		FallbackPath: fallbackPath,
	}
	if !quick {
		result.ThreatsFound = v.ThreatsFound
		result.ThreatIndicators = v.ThreatIndicators
		result.DetectedPatterns = v.DetectedPatterns
		result.FunctionCallAttempts = v.FunctionCallAttempts
		result.PolicyViolations = v.PolicyViolations
		result.Severity = models.Severity(v.Severity)
		if !result.Severity.IsValid() {
			result.Severity = models.SeveritySafe
		}
		result.Summary = v.Summary
		result.Details = v.Details
	}
	return result
}

func timeoutResult(reason string, err error) *models.LLMAnalysisResult {
	return &models.LLMAnalysisResult{
		Decision: models.StageError,
		Score:    0.0,
		Reason:   reason,
		Err:      err.Error(),
	}
}

func headOf(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
