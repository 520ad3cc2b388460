package shield

import (
	"context"
	"fmt"

	"github.com/hipocap/gateway/pkg/models"
	"github.com/hipocap/gateway/pkg/pipeline"
	"github.com/hipocap/gateway/pkg/policy"
	"github.com/hipocap/gateway/pkg/prompt"
)

// Decision is the shield verdict over a piece of content.
type Decision string

const (
	DecisionBlock Decision = "BLOCK"
	DecisionAllow Decision = "ALLOW"
)

// Result is the outcome of one shield evaluation. Reason is only populated
// when the caller asked for one.
type Result struct {
	Decision Decision `json:"decision"`
	Reason   string   `json:"reason,omitempty"`
}

// Evaluator runs shield analyses through the pipeline's analyst stage with
// the shield's synthesized system prompt.
type Evaluator struct {
	engine *pipeline.Engine
}

// NewEvaluator creates an evaluator on top of an analysis engine.
func NewEvaluator(engine *pipeline.Engine) *Evaluator {
	return &Evaluator{engine: engine}
}

// shieldFunctionName labels shield content in the analyst prompt. Shields
// analyze arbitrary text, not a real function call.
const shieldFunctionName = "user_input"

// Evaluate judges content against one shield. The analyst runs alone and in
// quick mode: shields want a one-shot verdict, not the full probe.
func (e *Evaluator) Evaluate(ctx context.Context, s *Shield, content, userQuery string, requireReason bool) (*Result, error) {
	doc, err := policy.Load(map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("failed to build shield policy: %w", err)
	}
	doc.CustomPrompts = map[string]string{
		prompt.KeyAnalystSystem: s.SystemPrompt(),
	}

	disabled := false
	resp := e.engine.Analyze(ctx, doc, &models.AnalyzeRequest{
		FunctionName:   shieldFunctionName,
		FunctionResult: content,
		UserQuery:      userQuery,
		InputAnalysis:  &disabled,
		LLMAnalysis:    true,
		QuickAnalysis:  true,
	})

	result := &Result{Decision: DecisionAllow}
	if resp.FinalDecision == models.DecisionBlocked || !resp.SafeToUse {
		result.Decision = DecisionBlock
	}

	if requireReason {
		result.Reason = resp.Reason
		if result.Reason == "" && resp.LLMAnalysis != nil {
			result.Reason = resp.LLMAnalysis.Summary
		}
		if result.Reason == "" {
			if result.Decision == DecisionBlock {
				result.Reason = "Content matches blocking criteria defined in shield"
			} else {
				result.Reason = "Content does not match blocking criteria"
			}
		}
	}
	return result, nil
}
