// Package pipeline orchestrates the analysis gates: RBAC, chaining, keyword
// detection, input classification, the policy analyst, the quarantine probe,
// and the final threshold+severity fusion. Gates run in order and the first
// one that blocks names the response's blocked_at label.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hipocap/gateway/pkg/analysis"
	"github.com/hipocap/gateway/pkg/classifier"
	"github.com/hipocap/gateway/pkg/keyword"
	"github.com/hipocap/gateway/pkg/llm"
	"github.com/hipocap/gateway/pkg/models"
	"github.com/hipocap/gateway/pkg/policy"
	"github.com/hipocap/gateway/pkg/prompt"
)

// Models names the completion models used by the LLM-backed stages.
type Models struct {
	Analyst   string
	Infection string
	Analysis  string
}

// Engine holds the shared, request-independent ports. Policies are supplied
// per request; the engine itself carries no mutable state.
type Engine struct {
	scorer    classifier.Scorer
	completer llm.ChatCompleter
	models    Models
}

// New creates an engine. Either port may be nil; the corresponding stages
// then report themselves unavailable instead of failing the request.
func New(scorer classifier.Scorer, completer llm.ChatCompleter, m Models) *Engine {
	return &Engine{scorer: scorer, completer: completer, models: m}
}

// evaluation is the per-request state: the loaded policy plus the stage
// results accumulated so far.
type evaluation struct {
	engine *Engine
	doc    *policy.Document
	req    *models.AnalyzeRequest

	chaining  *models.FunctionChainingInfo
	hitlRules string

	input      *models.InputAnalysisResult
	keywords   *models.KeywordDetectionResult
	llmResult  *models.LLMAnalysisResult
	quarantine *models.QuarantineAnalysisResult
}

// Analyze runs the full gate sequence for one request against one policy.
func (e *Engine) Analyze(ctx context.Context, doc *policy.Document, req *models.AnalyzeRequest) *models.AnalyzeResponse {
	ev := &evaluation{
		engine:    e,
		doc:       doc,
		req:       req,
		chaining:  doc.ChainingInfo(req.FunctionName),
		hitlRules: doc.HITLRulesFor(req.FunctionName),
	}
	return ev.run(ctx)
}

func (ev *evaluation) run(ctx context.Context) *models.AnalyzeResponse {
	req := ev.req

	if req.UserRole != "" && !ev.doc.RolePermits(req.UserRole, req.FunctionName) {
		return ev.blocked(models.BlockedAtRBAC, nil,
			fmt.Sprintf("Role '%s' does not have permission to call '%s'", req.UserRole, req.FunctionName))
	}

	if req.TargetFunction != "" && !ev.doc.ChainingPermits(req.FunctionName, req.TargetFunction) {
		return ev.blocked(models.BlockedAtFunctionChaining, nil,
			fmt.Sprintf("Function '%s' is not allowed to call '%s'", req.FunctionName, req.TargetFunction))
	}

	if req.EnableKeywordDetection {
		ev.keywords = keyword.Detect(analysis.FormatValue(req.FunctionResult), req.Keywords)
	}

	if resp := ev.runInputGates(ctx); resp != nil {
		return resp
	}

	if resp := ev.keywordGate(); resp != nil {
		return resp
	}

	if req.LLMAnalysis {
		if resp := ev.runAnalyst(ctx); resp != nil {
			return resp
		}
	}

	// Analyst-only requests resolve here; quarantine-backed requests fall
	// through so the probe can confirm or overturn a soft verdict.
	if req.LLMAnalysis && !req.QuarantineAnalysis {
		return ev.analystOnlyDecision()
	}

	if ev.input != nil && ev.input.Decision == models.StageBlock && !req.LLMAnalysis && !req.QuarantineAnalysis {
		rule := ev.doc.SeverityRuleFor(ev.input.Severity)
		if rule.Block {
			return ev.blocked(models.BlockedAtInputAnalysis, nil,
				fmt.Sprintf("Input analysis detected %s risk (score: %.4f)", ev.input.Severity, ev.input.Score))
		}
	}

	ev.runQuarantine(ctx)

	if ev.quarantine.Decision == models.StageSkipped {
		if !req.LLMAnalysis || (ev.llmResult != nil && ev.llmResult.Err == "") {
			resp := ev.allowed(ev.quarantine.Reason)
			if ev.input != nil && !ev.input.Skipped {
				resp.FinalScore = models.Float64Ptr(ev.input.Score)
			}
			return resp
		}
	}

	if ev.quarantine.Decision != models.StageSkipped || ev.quarantine.Severity != "" {
		rule := ev.doc.SeverityRuleFor(ev.quarantine.Severity)
		if rule.Block {
			return ev.blocked(models.BlockedAtSeverityRuleQuarantine, nil,
				fmt.Sprintf("Severity rule for '%s' requires blocking", ev.quarantine.Severity))
		}
		if !rule.AllowOutputUse {
			return ev.blocked(models.BlockedAtSeverityRuleQuarantine, nil,
				fmt.Sprintf("Severity '%s' does not allow output use", ev.quarantine.Severity))
		}
	}

	if ev.quarantine.Decision == models.StageError {
		resp := ev.allowed("Input analysis passed, quarantine analysis error occurred")
		resp.FinalDecision = models.DecisionAllowedWithWarning
		resp.Warning = "Quarantine analysis failed"
		return resp
	}

	if ev.llmResult != nil && ev.llmResult.Decision == models.StageBlock {
		resp := ev.blocked(models.BlockedAtLLMAnalysis, models.Float64Ptr(ev.llmResult.Score),
			fmt.Sprintf("LLM analysis agent detected %s risk (score: %.4f)", severityOrUnknown(ev.llmResult.Severity), ev.llmResult.Score))
		return resp
	}

	if ev.quarantine.Decision == models.StageBlock {
		return ev.blocked(models.BlockedAtQuarantineAnalysis, models.Float64Ptr(ev.quarantine.Score),
			fmt.Sprintf("Quarantine analysis detected %s risk in LLM output (score: %.4f)", severityOrUnknown(ev.quarantine.Severity), ev.quarantine.Score))
	}

	return ev.fuse()
}

// runInputGates runs the classifier stage and the policy gates keyed off its
// severity. A nil return means the request survived all of them.
func (ev *evaluation) runInputGates(ctx context.Context) *models.AnalyzeResponse {
	req := ev.req

	if !req.InputAnalysisEnabled() {
		ev.input = &models.InputAnalysisResult{
			Decision: models.StagePass,
			Severity: models.SeveritySafe,
			Skipped:  true,
			Reason:   "Input analysis disabled",
		}
		return nil
	}

	if ev.engine.scorer == nil {
		ev.input = &models.InputAnalysisResult{
			Decision: models.StagePass,
			Severity: models.SeveritySafe,
			Skipped:  true,
			Reason:   "Classifier not available",
		}
		return nil
	}

	analyzer := analysis.NewInputAnalyzer(ev.engine.scorer, ev.doc.DecisionThresholds.BlockThreshold)
	input, err := analyzer.Analyze(ctx, req.FunctionName, req.FunctionResult, req.FunctionArgs)
	if err != nil {
		slog.Warn("input analysis failed, continuing without an input score",
			"function", req.FunctionName, "error", err)
		ev.input = &models.InputAnalysisResult{
			Decision: models.StagePass,
			Severity: models.SeveritySafe,
			Skipped:  true,
			Reason:   "Classifier error: " + err.Error(),
		}
		return nil
	}
	ev.input = input

	rule := ev.doc.SeverityRuleFor(input.Severity)
	if rule.Block {
		return ev.blocked(models.BlockedAtSeverityRuleInput, nil,
			fmt.Sprintf("Severity rule for '%s' requires blocking", input.Severity))
	}

	restriction := ev.doc.OutputRestrictionFor(req.FunctionName)
	if restriction.MaxSeverityAllowed != "" && input.Severity.Rank() > restriction.MaxSeverityAllowed.Rank() {
		return ev.blocked(models.BlockedAtOutputRestriction, nil,
			fmt.Sprintf("Function '%s' output severity '%s' exceeds allowed maximum '%s'",
				req.FunctionName, input.Severity, restriction.MaxSeverityAllowed))
	}

	if action := ev.doc.ContextRuleAction(req.FunctionName, analysis.FormatValue(req.FunctionResult), input.Severity); action != nil && action.Block {
		reason := action.Reason
		if reason == "" {
			reason = "Context rule triggered"
		}
		return ev.blocked(models.BlockedAtContextRule, nil, reason)
	}

	if input.Decision == models.StageBlock {
		return ev.blocked(models.BlockedAtInputAnalysis, nil,
			fmt.Sprintf("Input analysis detected %s risk (score: %.4f)", input.Severity, input.Score))
	}
	return nil
}

func (ev *evaluation) keywordGate() *models.AnalyzeResponse {
	kw := ev.keywords
	if kw == nil || !kw.Detected {
		return nil
	}
	if kw.Severity.AtLeast(models.SeverityHigh) || kw.RiskScore >= 0.7 {
		return ev.blocked(models.BlockedAtKeywordDetection, nil,
			fmt.Sprintf("Keyword detection identified %d sensitive keywords with %s severity (risk score: %.4f)",
				kw.KeywordCount, kw.Severity, kw.RiskScore))
	}
	return nil
}

// runAnalyst executes the policy analyst and its hard gates. A nil return
// means the pipeline continues.
func (ev *evaluation) runAnalyst(ctx context.Context) *models.AnalyzeResponse {
	req := ev.req

	if ev.engine.completer == nil {
		ev.llmResult = &models.LLMAnalysisResult{
			Decision: models.StageError,
			Reason:   "LLM analysis requested but no completer is configured",
			Err:      "completer not available",
		}
		return nil
	}

	analyst := analysis.NewAnalyst(ev.engine.completer, ev.engine.models.Analyst)
	ev.llmResult = analyst.Analyze(ctx, analysis.AnalystInput{
		FunctionName:   req.FunctionName,
		FunctionResult: req.FunctionResult,
		FunctionArgs:   req.FunctionArgs,
		UserQuery:      req.UserQuery,
		Quick:          req.QuickAnalysis,
		Policy:         ev.functionPolicy(),
		SystemPrompt:   ev.doc.CustomPrompts[prompt.KeyAnalystSystem],
	})

	if len(ev.llmResult.PolicyViolations) > 0 {
		return ev.blocked(models.BlockedAtLLMAnalysis, models.Float64Ptr(ev.llmResult.Score),
			"LLM analysis detected policy violations: "+strings.Join(ev.llmResult.PolicyViolations, ", "))
	}

	if ev.llmResult.Decision == models.StageBlock && ev.llmResult.Severity != "" {
		rule := ev.doc.SeverityRuleFor(ev.llmResult.Severity)
		if rule.Block {
			return ev.blocked(models.BlockedAtSeverityRuleLLM, nil,
				fmt.Sprintf("Severity rule for '%s' requires blocking (from LLM analysis)", ev.llmResult.Severity))
		}
	}
	return nil
}

// analystOnlyDecision resolves a request that enabled the analyst but not
// the quarantine probe.
func (ev *evaluation) analystOnlyDecision() *models.AnalyzeResponse {
	lr := ev.llmResult

	if lr.Err != "" && lr.Decision == models.StageError {
		resp := ev.allowed(lr.Reason)
		resp.Warning = "LLM analysis failed, proceeding with input analysis only"
		return resp
	}

	switch {
	case lr.Decision == models.StageBlock:
		reason := lr.Reason
		if reason == "" {
			reason = fmt.Sprintf("LLM analysis detected %s risk (score: %.2f)", severityOrUnknown(lr.Severity), lr.Score)
			if len(lr.ThreatsFound) > 0 {
				reason += " with threats: " + strings.Join(lr.ThreatsFound, ", ")
			}
		}
		return ev.blocked(models.BlockedAtLLMAnalysis, models.Float64Ptr(lr.Score), reason)

	case len(lr.ThreatsFound) > 0:
		rule := ev.doc.SeverityRuleFor(lr.Severity)
		if rule.Block {
			return ev.blocked(models.BlockedAtLLMAnalysis, models.Float64Ptr(lr.Score),
				fmt.Sprintf("LLM analysis detected %s risk (score: %.2f) with threats: %s",
					lr.Severity, lr.Score, strings.Join(lr.ThreatsFound, ", ")))
		}
		resp := ev.allowed(fmt.Sprintf("LLM analysis detected %s risk (score: %.2f) but severity rules allow it", lr.Severity, lr.Score))
		resp.FinalScore = models.Float64Ptr(lr.Score)
		return resp

	default:
		reason := lr.Reason
		if reason == "" {
			reason = "LLM analysis: Safe"
		}
		resp := ev.allowed(reason)
		resp.FinalScore = models.Float64Ptr(lr.Score)
		return resp
	}
}

func (ev *evaluation) runQuarantine(ctx context.Context) {
	req := ev.req

	if !req.QuarantineAnalysis {
		ev.quarantine = &models.QuarantineAnalysisResult{
			Decision: models.StageSkipped,
			Reason:   "Quarantine analysis disabled (quarantine_analysis=false)",
		}
		return
	}
	if ev.engine.completer == nil {
		ev.quarantine = &models.QuarantineAnalysisResult{
			Decision: models.StageSkipped,
			Reason:   "Quarantine analysis requested but no completer is configured",
		}
		return
	}

	probe := analysis.NewQuarantine(
		ev.engine.completer,
		ev.engine.scorer,
		ev.engine.models.Infection,
		ev.engine.models.Analysis,
		ev.doc.DecisionThresholds.BlockThreshold,
		ev.doc.DecisionThresholds.AllowThreshold,
	)
	ev.quarantine = probe.Analyze(ctx, analysis.QuarantineInput{
		FunctionName:   req.FunctionName,
		FunctionResult: req.FunctionResult,
		FunctionArgs:   req.FunctionArgs,
		UserQuery:      req.UserQuery,
		Quick:          req.QuickAnalysis,
		Chaining:       ev.chaining,
		HITLRules:      ev.hitlRules,
		CustomPrompts:  ev.doc.CustomPrompts,
	})
}

// fuse applies the threshold+severity decision over the stage scores once
// every hard gate has passed.
func (ev *evaluation) fuse() *models.AnalyzeResponse {
	t := ev.doc.DecisionThresholds

	finalScore := 0.0
	switch {
	case ev.llmResult != nil && ev.llmResult.Decision != models.StageError:
		finalScore = ev.llmResult.Score
	case ev.quarantine != nil && ev.quarantine.Decision != models.StageSkipped && ev.quarantine.Decision != models.StageError:
		finalScore = ev.quarantine.Score
	case ev.input != nil && !ev.input.Skipped:
		finalScore = ev.input.Score
	}

	decision := models.DecisionAllowed
	blockedAt := ""
	reason := "All phases passed"

	quarantineRan := ev.quarantine != nil && ev.quarantine.Decision != models.StageSkipped && ev.quarantine.Decision != models.StageError
	analystRan := ev.llmResult != nil && ev.llmResult.Decision != models.StageError

	if analystRan || quarantineRan {
		maxSeverity := models.SeveritySafe
		combined := 0.0
		if analystRan {
			maxSeverity = models.MaxSeverity(maxSeverity, ev.llmResult.Severity)
			combined = max(combined, ev.llmResult.Score)
			finalScore = max(finalScore, ev.llmResult.Score)
		}
		if quarantineRan {
			maxSeverity = models.MaxSeverity(maxSeverity, ev.quarantine.Severity)
			combined = max(combined, ev.quarantine.Score)
			finalScore = max(finalScore, ev.quarantine.Score)
		}

		switch {
		case combined >= t.BlockThreshold:
			decision = models.DecisionBlocked
			blockedAt = models.BlockedAtQuarantineAnalysis
			if analystRan {
				blockedAt = models.BlockedAtLLMAnalysis
			}
			reason = fmt.Sprintf("Combined score %.4f exceeds block threshold %v", combined, t.BlockThreshold)
		case combined < t.AllowThreshold:
			reason = fmt.Sprintf("Combined score %.4f below allow threshold %v", combined, t.AllowThreshold)
		case t.UseSeverityFallback:
			rule := ev.doc.SeverityRuleFor(maxSeverity)
			if rule.Block {
				decision = models.DecisionBlocked
				blockedAt = models.BlockedAtSeverityRule
				reason = fmt.Sprintf("Severity rule for '%s' requires blocking (score: %.4f)", maxSeverity, combined)
			} else {
				reason = fmt.Sprintf("Score %.4f between thresholds, severity '%s' allows it", combined, maxSeverity)
			}
		default:
			midpoint := (t.BlockThreshold + t.AllowThreshold) / 2
			if combined >= midpoint {
				decision = models.DecisionBlocked
				blockedAt = models.BlockedAtThreshold
			}
			reason = fmt.Sprintf("Score %.4f between thresholds, no severity fallback", combined)
		}
	}

	// Output restrictions are absolute: an otherwise-allowed result still
	// cannot chain into another function when the policy forbids it.
	restriction := ev.doc.OutputRestrictionFor(ev.req.FunctionName)
	if restriction.CannotTriggerFunctions && ev.req.TargetFunction != "" {
		decision = models.DecisionBlocked
		blockedAt = models.BlockedAtOutputRestriction
		reason = fmt.Sprintf("Function '%s' output cannot trigger other functions", ev.req.FunctionName)
	}

	resp := ev.response(decision, reason)
	resp.FinalScore = models.Float64Ptr(finalScore)
	resp.BlockedAt = blockedAt
	return resp
}

// functionPolicy flattens the per-function policy facts for prompt rendering.
func (ev *evaluation) functionPolicy() *prompt.FunctionPolicy {
	fn := ev.doc.Functions[ev.req.FunctionName]
	restriction := ev.doc.OutputRestrictionFor(ev.req.FunctionName)
	chaining := ev.doc.FunctionChaining[ev.req.FunctionName]
	return &prompt.FunctionPolicy{
		AllowedRoles:           fn.AllowedRoles,
		CannotTriggerFunctions: restriction.CannotTriggerFunctions,
		MaxSeverityForUse:      string(restriction.MaxSeverityForUse),
		AllowedTargets:         chaining.AllowedTargets,
		BlockedTargets:         chaining.BlockedTargets,
		HITLRules:              ev.hitlRules,
	}
}

func (ev *evaluation) response(decision models.Decision, reason string) *models.AnalyzeResponse {
	resp := &models.AnalyzeResponse{
		FinalDecision:        decision,
		SafeToUse:            decision != models.DecisionBlocked,
		Reason:               reason,
		InputAnalysis:        ev.input,
		LLMAnalysis:          ev.llmResult,
		QuarantineAnalysis:   ev.quarantine,
		KeywordDetection:     ev.keywords,
		FunctionChainingInfo: ev.chaining,
	}
	if ev.quarantine != nil && ev.quarantine.RequiresHITL {
		resp.ReviewRequired = true
		resp.HITLReason = ev.quarantine.HITLReason
	}
	return resp
}

func (ev *evaluation) blocked(blockedAt string, score *float64, reason string) *models.AnalyzeResponse {
	resp := ev.response(models.DecisionBlocked, reason)
	resp.BlockedAt = blockedAt
	resp.FinalScore = score
	return resp
}

func (ev *evaluation) allowed(reason string) *models.AnalyzeResponse {
	return ev.response(models.DecisionAllowed, reason)
}

func severityOrUnknown(s models.Severity) string {
	if s == "" {
		return "unknown"
	}
	return string(s)
}
