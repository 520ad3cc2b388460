package models

// Decision is the final verdict produced by the pipeline.
type Decision string

const (
	// DecisionAllowed means the function result is safe to feed back to the model.
	DecisionAllowed Decision = "ALLOWED"
	// DecisionBlocked means the result must not be used.
	DecisionBlocked Decision = "BLOCKED"
	// DecisionAllowedWithWarning means a stage failed transiently but every
	// gate that completed passed; the caller should proceed with caution.
	DecisionAllowedWithWarning Decision = "ALLOWED_WITH_WARNING"
)

// IsValid returns true for the three known final decisions.
func (d Decision) IsValid() bool {
	switch d {
	case DecisionAllowed, DecisionBlocked, DecisionAllowedWithWarning:
		return true
	}
	return false
}

// StageDecision is the verdict of an individual pipeline stage.
type StageDecision string

const (
	StageAllow   StageDecision = "ALLOW"
	StageBlock   StageDecision = "BLOCK"
	StagePass    StageDecision = "PASS"
	StageSkipped StageDecision = "SKIPPED"
	StageError   StageDecision = "ERROR"
)

// Gate labels reported in the blocked_at field of a response. The label names
// the first gate that produced a BLOCKED outcome.
const (
	BlockedAtRBAC                   = "rbac"
	BlockedAtFunctionChaining       = "function_chaining"
	BlockedAtInputAnalysis          = "input_analysis"
	BlockedAtSeverityRuleInput      = "severity_rule_input"
	BlockedAtSeverityRuleLLM        = "severity_rule_llm_analysis"
	BlockedAtSeverityRuleQuarantine = "severity_rule_quarantine"
	BlockedAtSeverityRule           = "severity_rule"
	BlockedAtOutputRestriction      = "output_restriction"
	BlockedAtContextRule            = "context_rule"
	BlockedAtKeywordDetection       = "keyword_detection"
	BlockedAtLLMAnalysis            = "llm_analysis"
	BlockedAtQuarantineAnalysis     = "quarantine_analysis"
	BlockedAtThreshold              = "threshold"
)

// ReviewStatus tracks the human-review lifecycle of a persisted trace.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
	ReviewReviewed ReviewStatus = "reviewed"
)

// IsValid returns true for known review statuses.
func (r ReviewStatus) IsValid() bool {
	switch r {
	case ReviewPending, ReviewApproved, ReviewRejected, ReviewReviewed:
		return true
	}
	return false
}

// IsTerminal reports whether the status is a valid transition target from pending.
func (r ReviewStatus) IsTerminal() bool {
	switch r {
	case ReviewApproved, ReviewRejected, ReviewReviewed:
		return true
	}
	return false
}
