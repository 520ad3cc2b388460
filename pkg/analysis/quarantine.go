package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"github.com/hipocap/gateway/pkg/classifier"
	"github.com/hipocap/gateway/pkg/llm"
	"github.com/hipocap/gateway/pkg/models"
	"github.com/hipocap/gateway/pkg/prompt"
)

// quickTruncateLimit caps the payload fed to the probe in quick mode.
const quickTruncateLimit = 2000

// statusKeys mark a small flat dict as a plain status payload that the probe
// skips. Such payloads cause false positives and carry no room for hidden
// instructions.
var statusKeys = []string{"status", "message", "success", "error", "code", "result"}

// embeddedJSONPattern extracts the first JSON object from free text during
// the last-resort evaluation fallback. Handles one level of nesting.
var embeddedJSONPattern = regexp.MustCompile(`\{[^{}]*(?:\{[^{}]*\}[^{}]*)*\}`)

// Quarantine is the two-phase probe: phase one feeds the payload to a
// neutral assistant so hidden instructions fire, phase two has an evaluator
// model judge the infected response, cross-checked by the classifier.
type Quarantine struct {
	completer      llm.ChatCompleter
	scorer         classifier.Scorer
	infectionModel string
	analysisModel  string
	blockThreshold float64
	safeThreshold  float64
}

// NewQuarantine creates the probe. blockThreshold and safeThreshold carry
// the policy's decision thresholds into the probe's scoring.
func NewQuarantine(completer llm.ChatCompleter, scorer classifier.Scorer, infectionModel, analysisModel string, blockThreshold, safeThreshold float64) *Quarantine {
	return &Quarantine{
		completer:      completer,
		scorer:         scorer,
		infectionModel: infectionModel,
		analysisModel:  analysisModel,
		blockThreshold: blockThreshold,
		safeThreshold:  safeThreshold,
	}
}

// QuarantineInput carries one probe request.
type QuarantineInput struct {
	FunctionName   string
	FunctionResult any
	FunctionArgs   any
	UserQuery      string
	Quick          bool
	Chaining       *models.FunctionChainingInfo
	HITLRules      string

	// CustomPrompts holds per-policy prompt overrides keyed by the
	// prompt.Key* constants.
	CustomPrompts map[string]string
}

// evaluation mirrors the quarantine structured-output schema.
type evaluation struct {
	ThreatIndicators     []string `json:"threat_indicators"`
	SeverityAssessment   string   `json:"severity_assessment"`
	DetectedPatterns     []string `json:"detected_patterns"`
	FunctionCallAttempts []string `json:"function_call_attempts"`
	Confidence           *float64 `json:"confidence"`
	RequiresHITL         bool     `json:"requires_hitl"`
	HITLReason           string   `json:"hitl_reason"`
	Summary              string   `json:"summary"`
	ContentAnalysis      string   `json:"content_analysis"`
}

// Analyze runs the probe. Like the analyst it never returns an error; a
// failed probe reports Decision ERROR with score 0.0 so the pipeline can
// degrade to ALLOWED_WITH_WARNING instead of blocking on infrastructure.
func (q *Quarantine) Analyze(ctx context.Context, in QuarantineInput) *models.QuarantineAnalysisResult {
	if skipped := q.skip(in); skipped != nil {
		return skipped
	}

	formatted := FormatValue(in.FunctionResult)
	inputTruncated := false
	if in.Quick && len(formatted) > quickTruncateLimit {
		formatted = formatted[:quickTruncateLimit] + "\n[Input truncated for quick analysis]"
		inputTruncated = true
	}

	content, infection := q.infect(ctx, in, formatted)

	eval, rawResponse, fallbackPath, err := q.evaluate(ctx, in, content)
	if err != nil {
		return &models.QuarantineAnalysisResult{
			Decision:       models.StageError,
			Score:          0.0,
			Severity:       models.SeveritySafe,
			Err:            err.Error(),
			QuickAnalysis:  in.Quick,
			InputTruncated: inputTruncated,
			Infection:      infection,
		}
	}

	result := q.scoreEvaluation(ctx, eval, rawResponse, in.Quick)
	result.QuickAnalysis = in.Quick
	result.InputTruncated = inputTruncated
	result.Infection = infection
	result.FallbackPath = fallbackPath
	return result
}

// skip applies the cheap structural predicates that make a probe pointless.
func (q *Quarantine) skip(in QuarantineInput) *models.QuarantineAnalysisResult {
	skipped := func(reason string) *models.QuarantineAnalysisResult {
		return &models.QuarantineAnalysisResult{
			Decision:      models.StageSkipped,
			Score:         0.0,
			Severity:      models.SeveritySafe,
			Reason:        reason,
			QuickAnalysis: in.Quick,
		}
	}

	if dict, ok := in.FunctionResult.(map[string]any); ok {
		if len(dict) <= 3 && allScalar(dict) && hasStatusKey(dict) {
			return skipped("Simple structured data - unlikely to contain hidden instructions")
		}
	}

	if !in.Quick {
		return nil
	}
	switch v := in.FunctionResult.(type) {
	case nil, bool, float64, int, int64:
		return skipped("Quick mode: Simple data type")
	case string:
		if v == "" {
			return skipped("Quick mode: Empty input")
		}
	case []any:
		if len(v) == 0 {
			return skipped("Quick mode: Empty input")
		}
	}
	if len(FormatValue(in.FunctionResult)) < 100 {
		return skipped("Quick mode: Input too small for analysis")
	}
	return nil
}

func allScalar(dict map[string]any) bool {
	for _, v := range dict {
		switch v.(type) {
		case string, bool, float64, int, int64, nil:
		default:
			return false
		}
	}
	return true
}

func hasStatusKey(dict map[string]any) bool {
	for k := range dict {
		lower := strings.ToLower(k)
		for _, statusKey := range statusKeys {
			if lower == statusKey {
				return true
			}
		}
	}
	return false
}

// infect runs phase one against a neutral assistant. Quick mode skips it and
// evaluates the raw payload directly; a failed infection likewise falls back
// to the raw payload.
func (q *Quarantine) infect(ctx context.Context, in QuarantineInput, formatted string) (string, *models.InfectionSimulation) {
	if in.Quick {
		return formatted, &models.InfectionSimulation{
			Skipped: true,
			Reason:  "Quick analysis mode - infection phase skipped for speed",
		}
	}

	systemPrompt := in.CustomPrompts[prompt.KeyInfectionSystem]
	if systemPrompt == "" {
		systemPrompt = prompt.InfectionSystemPrompt
	}

	response, err := q.completer.Complete(ctx, llm.Request{
		Model:       q.infectionModel,
		System:      systemPrompt,
		User:        prompt.InfectionUserPrompt(in.UserQuery, formatted),
		Temperature: 0.7,
		MaxTokens:   600,
	})
	if err != nil {
		slog.Warn("quarantine infection phase failed, evaluating raw payload",
			"function", in.FunctionName, "error", err)
		return formatted, &models.InfectionSimulation{Err: err.Error()}
	}
	return response, &models.InfectionSimulation{
		LLMResponse: response,
		Model:       q.infectionModel,
	}
}

// evaluate runs phase two through the same format ladder as the analyst,
// with a final rung that salvages a JSON object out of free text or builds a
// minimal verdict from the classifier score of the raw response.
func (q *Quarantine) evaluate(ctx context.Context, in QuarantineInput, content string) (*evaluation, string, string, error) {
	schema := quarantineSchema(in.Quick)
	userMessage := prompt.EvaluationUserPrompt(prompt.EvaluationParams{
		FunctionName: in.FunctionName,
		Content:      content,
		UserQuery:    in.UserQuery,
		Quick:        in.Quick,
		Chaining:     in.Chaining,
		HITLRules:    in.HITLRules,
		FunctionArgs: formatArgs(in.FunctionArgs),
	})

	systemPrompt := q.systemPrompt(in)
	temperature := 0.3
	maxTokens := 600
	if in.Quick {
		temperature = 0.1
		maxTokens = 200
	}
	base := llm.Request{
		Model:       q.analysisModel,
		System:      systemPrompt,
		User:        userMessage,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	req := base
	req.Format = llm.JSONSchema("quarantine_security_analysis", schema)
	raw, err := q.completer.Complete(ctx, req)
	var eval evaluation
	if err == nil {
		err = json.Unmarshal([]byte(raw), &eval)
	}
	if err == nil {
		return &eval, raw, FallbackJSONSchema, nil
	}
	if errors.Is(err, llm.ErrTimeout) {
		return nil, "", "", err
	}
	slog.Debug("quarantine structured outputs unavailable, falling back to JSON mode", "error", err)

	req = base
	req.User = prompt.WithSchema(userMessage, schema)
	req.Format = llm.JSONObject()
	raw, jsonErr := q.completer.Complete(ctx, req)
	if jsonErr == nil {
		jsonErr = json.Unmarshal([]byte(raw), &eval)
	}
	if jsonErr == nil {
		return &eval, raw, FallbackJSONObject, nil
	}
	slog.Debug("quarantine JSON mode failed, attempting salvage", "error", jsonErr)

	// Last rung. If the backend produced text at all, try to dig a JSON
	// object out of it; otherwise build a minimal verdict by scoring the
	// text with the classifier.
	salvageSource := raw
	if salvageSource == "" {
		salvageSource = jsonErr.Error()
	}
	if match := embeddedJSONPattern.FindString(salvageSource); match != "" {
		if salvageErr := json.Unmarshal([]byte(match), &eval); salvageErr == nil {
			return &eval, salvageSource, FallbackFreeText, nil
		}
	}

	rawScore := q.scoreOrZero(ctx, salvageSource)
	severity := "safe"
	if rawScore >= 0.3 {
		severity = "medium"
	}
	confidence := 0.5
	eval = evaluation{
		ThreatIndicators:     []string{},
		SeverityAssessment:   severity,
		DetectedPatterns:     []string{},
		FunctionCallAttempts: []string{},
		Confidence:           &confidence,
	}
	if !in.Quick {
		eval.Summary = headOf(salvageSource, 500)
		eval.ContentAnalysis = salvageSource
	}
	return &eval, salvageSource, FallbackFreeText, nil
}

func (q *Quarantine) systemPrompt(in QuarantineInput) string {
	key := prompt.KeyQuarantineSystemFull
	if in.Quick {
		key = prompt.KeyQuarantineSystemQuick
	}
	if custom := in.CustomPrompts[key]; custom != "" {
		return custom
	}
	return prompt.QuarantineSystemPrompt(in.Quick)
}

// scoreEvaluation fuses the evaluator's verdict with classifier scores over
// the evaluator's own output, resolving a severity and a PASS/BLOCK decision.
func (q *Quarantine) scoreEvaluation(ctx context.Context, eval *evaluation, rawResponse string, quick bool) *models.QuarantineAnalysisResult {
	llmSeverity := models.Severity(strings.ToLower(eval.SeverityAssessment))
	if !llmSeverity.IsValid() {
		llmSeverity = models.SeveritySafe
	}
	confidence := 0.5
	if eval.Confidence != nil {
		confidence = *eval.Confidence
	}

	hasThreats := len(eval.ThreatIndicators) > 0 ||
		len(eval.DetectedPatterns) > 0 ||
		len(eval.FunctionCallAttempts) > 0 ||
		(llmSeverity != models.SeveritySafe && llmSeverity != models.SeverityLow)

	// Confidence pulls the severity base score toward its halfway point.
	baseScore := llmSeverity.Score()
	assessmentScore := baseScore*confidence + (1-confidence)*baseScore*0.5

	threatMultiplier := 1.0
	if len(eval.ThreatIndicators) > 3 {
		threatMultiplier = 1.1
	}
	if len(eval.FunctionCallAttempts) > 0 && threatMultiplier < 1.15 {
		threatMultiplier = 1.15
	}
	if len(eval.DetectedPatterns) > 2 && threatMultiplier < 1.05 {
		threatMultiplier = 1.05
	}
	assessmentScore = min(assessmentScore*threatMultiplier, 0.99)

	// Classifier cross-check over the evaluator's own output catches
	// injection that made it into the evaluation itself.
	var llmOutputScore float64
	if rawResponse != "" {
		llmOutputScore = q.scoreOrZero(ctx, rawResponse)
	} else if encoded, err := json.MarshalIndent(eval, "", "  "); err == nil {
		llmOutputScore = q.scoreOrZero(ctx, string(encoded))
	}

	var summaryScore, contentScore *float64
	if hasThreats && !quick {
		s := q.scoreOrZero(ctx, eval.Summary)
		c := q.scoreOrZero(ctx, eval.ContentAnalysis)
		summaryScore, contentScore = &s, &c
	}

	var combined float64
	highTextThreat := false
	switch {
	case summaryScore != nil && contentScore != nil:
		if *summaryScore >= 0.9 || *contentScore >= 0.9 {
			highTextThreat = true
			combined = assessmentScore*0.5 + max(*summaryScore, *contentScore)*0.3 + llmOutputScore*0.2
		} else {
			combined = assessmentScore*0.6 + *summaryScore*0.15 + *contentScore*0.15 + llmOutputScore*0.1
		}
	case hasThreats:
		combined = assessmentScore*0.8 + llmOutputScore*0.2
	default:
		combined = assessmentScore*0.9 + llmOutputScore*0.1
	}

	severity := q.resolveSeverity(llmSeverity, hasThreats, assessmentScore, combined)

	decision := models.StagePass
	if severity.AtLeast(models.SeverityHigh) || highTextThreat || combined >= q.blockThreshold {
		decision = models.StageBlock
	}

	return &models.QuarantineAnalysisResult{
		Decision:             decision,
		Score:                combined,
		Severity:             severity,
		AnalysisScore:        assessmentScore,
		LLMOutputScore:       llmOutputScore,
		ThreatIndicators:     eval.ThreatIndicators,
		DetectedPatterns:     eval.DetectedPatterns,
		FunctionCallAttempts: eval.FunctionCallAttempts,
		Confidence:           confidence,
		RequiresHITL:         eval.RequiresHITL,
		HITLReason:           eval.HITLReason,
		Summary:              eval.Summary,
		ContentAnalysis:      eval.ContentAnalysis,
		SummaryScore:         summaryScore,
		ContentAnalysisScore: contentScore,
	}
}

// resolveSeverity trusts a confident safe/low verdict, otherwise derives the
// level from the combined score and keeps the evaluator's level when higher.
// The medium band starts at the policy allow threshold, not a fixed cutoff:
// scores the policy already treats as allowable stay low unless the evaluator
// itself says otherwise.
func (q *Quarantine) resolveSeverity(llmSeverity models.Severity, hasThreats bool, assessmentScore, combined float64) models.Severity {
	if !hasThreats && (llmSeverity == models.SeveritySafe || llmSeverity == models.SeverityLow) {
		if assessmentScore >= q.blockThreshold {
			if assessmentScore < 0.7 {
				return models.SeverityMedium
			}
			return models.SeverityHigh
		}
		return llmSeverity
	}

	switch {
	case combined >= q.blockThreshold:
		severity := models.SeverityHigh
		if combined >= 0.9 {
			severity = models.SeverityCritical
		}
		return models.MaxSeverity(severity, llmSeverity)
	case combined >= q.safeThreshold:
		severity := models.SeverityMedium
		if combined >= 0.5 {
			severity = models.SeverityHigh
		}
		return models.MaxSeverity(severity, llmSeverity)
	default:
		if llmSeverity.AtLeast(models.SeverityMedium) {
			return llmSeverity
		}
		if combined < 0.1 {
			return models.SeveritySafe
		}
		return models.SeverityLow
	}
}

func (q *Quarantine) scoreOrZero(ctx context.Context, text string) float64 {
	score, err := q.scorer.Score(ctx, text)
	if err != nil {
		slog.Warn("classifier scoring failed, treating as zero", "error", err)
		return 0
	}
	return score
}

func formatArgs(args any) string {
	if args == nil {
		return ""
	}
	return FormatValue(args)
}
