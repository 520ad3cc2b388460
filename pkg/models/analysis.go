package models

// AnalyzeRequest is a single function call submitted for inspection.
// FunctionResult and FunctionArgs carry arbitrary JSON.
type AnalyzeRequest struct {
	FunctionName   string `json:"function_name" binding:"required"`
	FunctionResult any    `json:"function_result"`
	FunctionArgs   any    `json:"function_args,omitempty"`
	UserQuery      string `json:"user_query,omitempty"`
	UserRole       string `json:"user_role,omitempty"`
	TargetFunction string `json:"target_function,omitempty"`

	// Stage toggles. InputAnalysis defaults to true when omitted.
	InputAnalysis          *bool `json:"input_analysis,omitempty"`
	LLMAnalysis            bool  `json:"llm_analysis,omitempty"`
	QuarantineAnalysis     bool  `json:"quarantine_analysis,omitempty"`
	QuickAnalysis          bool  `json:"quick_analysis,omitempty"`
	EnableKeywordDetection bool  `json:"enable_keyword_detection,omitempty"`

	// Keywords overrides the default sensitive keyword list.
	Keywords []string `json:"keywords,omitempty"`

	// PolicyKey selects a named policy; empty means the owner's default.
	PolicyKey string `json:"policy_key,omitempty"`
}

// InputAnalysisEnabled resolves the tri-state toggle.
func (r *AnalyzeRequest) InputAnalysisEnabled() bool {
	if r.InputAnalysis == nil {
		return true
	}
	return *r.InputAnalysis
}

// InputAnalysisResult is the classifier stage output.
type InputAnalysisResult struct {
	Decision    StageDecision `json:"decision"`
	Score       float64       `json:"score"`
	Severity    Severity      `json:"severity"`
	NameScore   float64       `json:"function_name_score"`
	ArgsScore   *float64      `json:"function_args_score,omitempty"`
	ResultScore float64       `json:"function_result_score"`
	Skipped     bool          `json:"skipped,omitempty"`
	Reason      string        `json:"reason,omitempty"`
}

// KeywordDetectionResult is the keyword gate output.
type KeywordDetectionResult struct {
	Detected     bool                `json:"detected"`
	Keywords     []string            `json:"detected_keywords"`
	KeywordCount int                 `json:"keyword_count"`
	Occurrences  map[string]int      `json:"keyword_positions"`
	Categories   map[string][]string `json:"categories"`
	RiskScore    float64             `json:"risk_score"`
	Severity     Severity            `json:"severity"`
}

// LLMAnalysisResult is the structured verdict from the policy analyst stage.
// The detail fields are only populated in full mode.
type LLMAnalysisResult struct {
	Decision StageDecision `json:"decision"`
	Score    float64       `json:"score"`
	Reason   string        `json:"reason,omitempty"`
	Err      string        `json:"error,omitempty"`

	ThreatsFound         []string `json:"threats_found,omitempty"`
	ThreatIndicators     []string `json:"threat_indicators,omitempty"`
	DetectedPatterns     []string `json:"detected_patterns,omitempty"`
	FunctionCallAttempts []string `json:"function_call_attempts,omitempty"`
	PolicyViolations     []string `json:"policy_violations,omitempty"`
	Severity             Severity `json:"severity,omitempty"`
	Summary              string   `json:"summary,omitempty"`
	Details              string   `json:"details,omitempty"`

	// FallbackPath records which completer format ultimately served the call
	// (json_schema, json_object, free_text). Recorded for operators.
	FallbackPath string `json:"fallback_path,omitempty"`
}

// InfectionSimulation records the quarantine probe's phase-1 outcome.
type InfectionSimulation struct {
	LLMResponse string `json:"llm_response,omitempty"`
	Model       string `json:"model,omitempty"`
	Skipped     bool   `json:"skipped,omitempty"`
	Reason      string `json:"reason,omitempty"`
	Err         string `json:"error,omitempty"`
}

// QuarantineAnalysisResult is the quarantine probe output.
type QuarantineAnalysisResult struct {
	Decision StageDecision `json:"decision"`
	Score    float64       `json:"score"`
	Severity Severity      `json:"severity"`
	Reason   string        `json:"reason,omitempty"`
	Err      string        `json:"error,omitempty"`

	AnalysisScore  float64 `json:"analysis_score,omitempty"`
	LLMOutputScore float64 `json:"llm_output_score,omitempty"`

	ThreatIndicators     []string `json:"threat_indicators,omitempty"`
	DetectedPatterns     []string `json:"detected_patterns,omitempty"`
	FunctionCallAttempts []string `json:"function_call_attempts,omitempty"`
	Confidence           float64  `json:"confidence,omitempty"`

	RequiresHITL bool   `json:"requires_hitl,omitempty"`
	HITLReason   string `json:"hitl_reason,omitempty"`

	Summary              string   `json:"summary,omitempty"`
	ContentAnalysis      string   `json:"content_analysis,omitempty"`
	SummaryScore         *float64 `json:"summary_score,omitempty"`
	ContentAnalysisScore *float64 `json:"content_analysis_score,omitempty"`

	QuickAnalysis  bool                 `json:"quick_analysis,omitempty"`
	InputTruncated bool                 `json:"input_truncated,omitempty"`
	Infection      *InfectionSimulation `json:"infection_simulation,omitempty"`
	FallbackPath   string               `json:"fallback_path,omitempty"`
}

// FunctionChainingInfo echoes the policy's configured chaining targets for the
// analyzed function. Included on every response for observability.
type FunctionChainingInfo struct {
	AllowedTargets []string `json:"allowed_targets"`
	BlockedTargets []string `json:"blocked_targets"`
	Description    string   `json:"description,omitempty"`
}

// Empty reports whether the chaining config carries no targets at all.
func (f *FunctionChainingInfo) Empty() bool {
	return f == nil || (len(f.AllowedTargets) == 0 && len(f.BlockedTargets) == 0)
}

// AnalyzeResponse is the pipeline's final verdict plus per-stage detail.
type AnalyzeResponse struct {
	FinalDecision Decision `json:"final_decision"`
	FinalScore    *float64 `json:"final_score"`
	SafeToUse     bool     `json:"safe_to_use"`
	BlockedAt     string   `json:"blocked_at,omitempty"`
	Reason        string   `json:"reason,omitempty"`
	Warning       string   `json:"warning,omitempty"`

	InputAnalysis        *InputAnalysisResult      `json:"input_analysis"`
	LLMAnalysis          *LLMAnalysisResult        `json:"llm_analysis"`
	QuarantineAnalysis   *QuarantineAnalysisResult `json:"quarantine_analysis"`
	KeywordDetection     *KeywordDetectionResult   `json:"keyword_detection,omitempty"`
	FunctionChainingInfo *FunctionChainingInfo     `json:"function_chaining_info,omitempty"`

	ReviewRequired bool   `json:"review_required"`
	HITLReason     string `json:"hitl_reason,omitempty"`
}

// Float64Ptr returns a pointer to v. Convenience for optional score fields.
func Float64Ptr(v float64) *float64 {
	return &v
}
