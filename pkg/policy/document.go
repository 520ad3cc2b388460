// Package policy holds the governance policy document, its evaluation
// primitives, and the deep-merge update semantics used by the policy store.
package policy

import (
	"encoding/json"
	"fmt"

	"github.com/hipocap/gateway/pkg/models"
)

// RoleRule grants a role permission to call functions. "*" grants all.
type RoleRule struct {
	Permissions []string `json:"permissions"`
	Description string   `json:"description,omitempty"`
}

// OutputRestriction limits how a function's output may be used downstream.
type OutputRestriction struct {
	CannotTriggerFunctions bool            `json:"cannot_trigger_functions,omitempty"`
	MaxSeverityForUse      models.Severity `json:"max_severity_for_use,omitempty"`
	MaxSeverityAllowed     models.Severity `json:"max_severity_allowed,omitempty"`
}

// FunctionRule configures per-function policy.
type FunctionRule struct {
	AllowedRoles       []string           `json:"allowed_roles,omitempty"`
	OutputRestrictions *OutputRestriction `json:"output_restrictions,omitempty"`
	HITLRules          string             `json:"hitl_rules,omitempty"`
	QuarantineExclude  string             `json:"quarantine_exclude,omitempty"`
	Description        string             `json:"description,omitempty"`
}

// SeverityRule says what a given severity level permits.
type SeverityRule struct {
	AllowFunctionCalls bool `json:"allow_function_calls"`
	AllowOutputUse     bool `json:"allow_output_use"`
	Block              bool `json:"block"`
}

// ChainingRule restricts which functions a source function's output may trigger.
// Block list wins over allow list; "*" matches everything.
type ChainingRule struct {
	AllowedTargets []string `json:"allowed_targets,omitempty"`
	BlockedTargets []string `json:"blocked_targets,omitempty"`
	Description    string   `json:"description,omitempty"`
}

// ContextCondition is matched against an analyzed result. Every present
// sub-condition must match for the rule to fire.
type ContextCondition struct {
	// Severity is a comparator expression over the severity ordering,
	// e.g. ">=high", "<medium", "=critical". Bare level means equality.
	Severity         string   `json:"severity,omitempty"`
	ContainsKeywords []string `json:"contains_keywords,omitempty"`
	ContainsPatterns []string `json:"contains_patterns,omitempty"`
	ContainsURLs     bool     `json:"contains_urls,omitempty"`
}

// ContextAction is the outcome of a matched context rule.
type ContextAction struct {
	Block  bool   `json:"block"`
	Reason string `json:"reason,omitempty"`
}

// ContextRule binds a condition to an action for one function. Rules are
// evaluated in order; the first match wins.
type ContextRule struct {
	Function  string           `json:"function"`
	Condition ContextCondition `json:"condition"`
	Action    ContextAction    `json:"action"`
}

// Thresholds drive the final fusion step.
type Thresholds struct {
	BlockThreshold      float64 `json:"block_threshold"`
	AllowThreshold      float64 `json:"allow_threshold"`
	UseSeverityFallback bool    `json:"use_severity_fallback"`
}

// UnmarshalJSON defaults each field individually, so a partial
// decision_thresholds section keeps the documented defaults for the fields
// it does not mention.
func (t *Thresholds) UnmarshalJSON(data []byte) error {
	var raw struct {
		BlockThreshold      *float64 `json:"block_threshold"`
		AllowThreshold      *float64 `json:"allow_threshold"`
		UseSeverityFallback *bool    `json:"use_severity_fallback"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = DefaultThresholds()
	if raw.BlockThreshold != nil {
		t.BlockThreshold = *raw.BlockThreshold
	}
	if raw.AllowThreshold != nil {
		t.AllowThreshold = *raw.AllowThreshold
	}
	if raw.UseSeverityFallback != nil {
		t.UseSeverityFallback = *raw.UseSeverityFallback
	}
	return nil
}

// Document is a fully-parsed governance policy.
type Document struct {
	Roles              map[string]RoleRule               `json:"roles,omitempty"`
	Functions          map[string]FunctionRule           `json:"functions,omitempty"`
	SeverityRules      map[models.Severity]SeverityRule  `json:"severity_rules,omitempty"`
	OutputRestrictions map[string]OutputRestriction      `json:"output_restrictions,omitempty"`
	FunctionChaining   map[string]ChainingRule           `json:"function_chaining,omitempty"`
	ContextRules       []ContextRule                     `json:"context_rules,omitempty"`
	DecisionThresholds Thresholds                        `json:"decision_thresholds"`
	CustomPrompts      map[string]string                 `json:"custom_prompts,omitempty"`
}

// defaultSeverityRules covers every level so lookups never miss. Medium
// suppresses function calls; high and critical block outright.
func defaultSeverityRules() map[models.Severity]SeverityRule {
	return map[models.Severity]SeverityRule{
		models.SeveritySafe:     {AllowFunctionCalls: true, AllowOutputUse: true, Block: false},
		models.SeverityLow:      {AllowFunctionCalls: true, AllowOutputUse: true, Block: false},
		models.SeverityMedium:   {AllowFunctionCalls: false, AllowOutputUse: true, Block: false},
		models.SeverityHigh:     {AllowFunctionCalls: false, AllowOutputUse: false, Block: true},
		models.SeverityCritical: {AllowFunctionCalls: false, AllowOutputUse: false, Block: true},
	}
}

// DefaultThresholds returns the fusion defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{BlockThreshold: 0.7, AllowThreshold: 0.3, UseSeverityFallback: true}
}

// Load decodes a raw policy config (as stored in the database JSON columns)
// into a Document, defaulting missing severity levels and thresholds, then
// validates it.
func Load(config map[string]any) (*Document, error) {
	raw, err := json.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to encode policy config: %w", err)
	}
	doc := &Document{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("failed to decode policy config: %w", err)
	}
	// Unmarshal only runs the per-field threshold defaulting when the section
	// is present at all.
	if _, ok := config["decision_thresholds"]; !ok {
		doc.DecisionThresholds = DefaultThresholds()
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// applyDefaults fills the pieces a partial config may omit. Every severity
// level is always present afterwards.
func (d *Document) applyDefaults() {
	if d.SeverityRules == nil {
		d.SeverityRules = map[models.Severity]SeverityRule{}
	}
	for level, rule := range defaultSeverityRules() {
		if _, ok := d.SeverityRules[level]; !ok {
			d.SeverityRules[level] = rule
		}
	}
}

// Validate enforces the structural invariants a policy must satisfy before it
// can be evaluated.
func (d *Document) Validate() error {
	t := d.DecisionThresholds
	if t.BlockThreshold < 0 || t.BlockThreshold > 1 {
		return NewValidationError("decision_thresholds.block_threshold", "must be within [0, 1]")
	}
	if t.AllowThreshold < 0 || t.AllowThreshold > 1 {
		return NewValidationError("decision_thresholds.allow_threshold", "must be within [0, 1]")
	}
	if t.AllowThreshold > t.BlockThreshold {
		return NewValidationError("decision_thresholds", "allow_threshold must not exceed block_threshold")
	}
	for level := range d.SeverityRules {
		if !level.IsValid() {
			return NewValidationError("severity_rules", fmt.Sprintf("unknown severity level %q", level))
		}
	}
	for i, rule := range d.ContextRules {
		if rule.Function == "" {
			return NewValidationError(fmt.Sprintf("context_rules[%d].function", i), "must not be empty")
		}
		if rule.Condition.Severity != "" {
			if _, _, err := parseSeverityCondition(rule.Condition.Severity); err != nil {
				return NewValidationError(fmt.Sprintf("context_rules[%d].condition.severity", i), err.Error())
			}
		}
	}
	return nil
}

// ToConfig renders the document back into the generic map form used by the
// store and the deep-merge machinery.
func (d *Document) ToConfig() (map[string]any, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode policy document: %w", err)
	}
	var config map[string]any
	if err := json.Unmarshal(raw, &config); err != nil {
		return nil, fmt.Errorf("failed to decode policy document: %w", err)
	}
	return config, nil
}
