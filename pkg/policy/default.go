package policy

import "github.com/hipocap/gateway/pkg/models"

// DefaultConfig builds the policy config materialized for owners that have no
// policy yet. It grants broad access to admin and assistant roles, keeps
// command execution away from plain users, and uses the stock severity rules
// and thresholds.
func DefaultConfig() map[string]any {
	return map[string]any{
		"roles": map[string]any{
			"admin": map[string]any{
				"permissions": []any{"*"},
				"description": "Full system access",
			},
			"assistant": map[string]any{
				"permissions": []any{"*"},
				"description": "AI assistant with execution capabilities",
			},
			"user": map[string]any{
				"permissions": []any{"web_search", "web_fetch", "read", "message"},
				"description": "Standard user permissions, no execution",
			},
		},
		"functions": map[string]any{
			"exec": map[string]any{
				"allowed_roles": []any{"assistant", "admin"},
				"description":   "Execute system commands",
			},
			"bash": map[string]any{
				"allowed_roles": []any{"assistant", "admin"},
				"description":   "Execute bash commands",
			},
		},
		"severity_rules": map[string]any{
			string(models.SeveritySafe):     map[string]any{"allow_function_calls": true, "allow_output_use": true, "block": false},
			string(models.SeverityLow):      map[string]any{"allow_function_calls": true, "allow_output_use": true, "block": false},
			string(models.SeverityMedium):   map[string]any{"allow_function_calls": false, "allow_output_use": true, "block": false},
			string(models.SeverityHigh):     map[string]any{"allow_function_calls": false, "allow_output_use": false, "block": true},
			string(models.SeverityCritical): map[string]any{"allow_function_calls": false, "allow_output_use": false, "block": true},
		},
		"output_restrictions": map[string]any{},
		"function_chaining":   map[string]any{},
		"context_rules":       []any{},
		"decision_thresholds": map[string]any{
			"block_threshold":       0.7,
			"allow_threshold":       0.3,
			"use_severity_fallback": true,
		},
	}
}
