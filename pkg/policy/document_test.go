package policy

import (
	"testing"

	"github.com/hipocap/gateway/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("empty config gets defaults", func(t *testing.T) {
		doc, err := Load(map[string]any{})
		require.NoError(t, err)

		assert.Equal(t, DefaultThresholds(), doc.DecisionThresholds)
		// Every severity level is always present.
		for _, level := range []models.Severity{
			models.SeveritySafe, models.SeverityLow, models.SeverityMedium,
			models.SeverityHigh, models.SeverityCritical,
		} {
			_, ok := doc.SeverityRules[level]
			assert.True(t, ok, "missing severity rule for %s", level)
		}
		assert.True(t, doc.SeverityRules[models.SeverityCritical].Block)
		assert.False(t, doc.SeverityRules[models.SeveritySafe].Block)
	})

	t.Run("partial severity rules are filled in", func(t *testing.T) {
		doc, err := Load(map[string]any{
			"severity_rules": map[string]any{
				"medium": map[string]any{"allow_function_calls": true, "allow_output_use": true, "block": false},
			},
		})
		require.NoError(t, err)
		assert.True(t, doc.SeverityRules[models.SeverityMedium].AllowFunctionCalls)
		assert.True(t, doc.SeverityRules[models.SeverityHigh].Block)
	})

	t.Run("partial thresholds keep per-field defaults", func(t *testing.T) {
		doc, err := Load(map[string]any{
			"decision_thresholds": map[string]any{"block_threshold": 0.5},
		})
		require.NoError(t, err)
		assert.InDelta(t, 0.5, doc.DecisionThresholds.BlockThreshold, 0.0001)
		assert.InDelta(t, 0.3, doc.DecisionThresholds.AllowThreshold, 0.0001)
		assert.True(t, doc.DecisionThresholds.UseSeverityFallback)

		doc, err = Load(map[string]any{
			"decision_thresholds": map[string]any{"use_severity_fallback": false},
		})
		require.NoError(t, err)
		assert.InDelta(t, 0.7, doc.DecisionThresholds.BlockThreshold, 0.0001)
		assert.False(t, doc.DecisionThresholds.UseSeverityFallback)
	})

	t.Run("explicit zero thresholds are preserved", func(t *testing.T) {
		doc, err := Load(map[string]any{
			"decision_thresholds": map[string]any{
				"block_threshold":       0.0,
				"allow_threshold":       0.0,
				"use_severity_fallback": false,
			},
		})
		require.NoError(t, err)
		assert.Zero(t, doc.DecisionThresholds.BlockThreshold)
		assert.Zero(t, doc.DecisionThresholds.AllowThreshold)
		assert.False(t, doc.DecisionThresholds.UseSeverityFallback)
	})

	t.Run("rejects out-of-range thresholds", func(t *testing.T) {
		_, err := Load(map[string]any{
			"decision_thresholds": map[string]any{"block_threshold": 1.5},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidPolicy)
	})

	t.Run("rejects allow above block", func(t *testing.T) {
		_, err := Load(map[string]any{
			"decision_thresholds": map[string]any{"block_threshold": 0.3, "allow_threshold": 0.6},
		})
		require.Error(t, err)
	})

	t.Run("rejects context rule without function", func(t *testing.T) {
		_, err := Load(map[string]any{
			"context_rules": []any{
				map[string]any{"condition": map[string]any{"severity": ">=high"}},
			},
		})
		require.Error(t, err)
	})

	t.Run("rejects bad severity condition", func(t *testing.T) {
		_, err := Load(map[string]any{
			"context_rules": []any{
				map[string]any{
					"function":  "read_email",
					"condition": map[string]any{"severity": ">=enormous"},
				},
			},
		})
		require.Error(t, err)
	})

	t.Run("round-trips through ToConfig", func(t *testing.T) {
		doc, err := Load(DefaultConfig())
		require.NoError(t, err)
		config, err := doc.ToConfig()
		require.NoError(t, err)
		again, err := Load(config)
		require.NoError(t, err)
		assert.Equal(t, doc.DecisionThresholds, again.DecisionThresholds)
		assert.Equal(t, len(doc.Roles), len(again.Roles))
	})
}

func TestRolePermits(t *testing.T) {
	doc, err := Load(map[string]any{
		"roles": map[string]any{
			"admin":  map[string]any{"permissions": []any{"*"}},
			"viewer": map[string]any{"permissions": []any{"read_email"}},
			"bot":    map[string]any{"permissions": []any{}},
		},
		"functions": map[string]any{
			"send_report": map[string]any{"allowed_roles": []any{"bot"}},
		},
	})
	require.NoError(t, err)

	assert.True(t, doc.RolePermits("admin", "anything"))
	assert.True(t, doc.RolePermits("viewer", "read_email"))
	assert.False(t, doc.RolePermits("viewer", "send_mail"))
	// Function-level allowed_roles also grant access.
	assert.True(t, doc.RolePermits("bot", "send_report"))
	assert.False(t, doc.RolePermits("bot", "read_email"))
	// Unknown roles are denied.
	assert.False(t, doc.RolePermits("ghost", "read_email"))
}

func TestChainingPermits(t *testing.T) {
	doc, err := Load(map[string]any{
		"function_chaining": map[string]any{
			"read_email": map[string]any{
				"allowed_targets": []any{"summarize"},
				"blocked_targets": []any{"send_mail"},
			},
			"fetch_url": map[string]any{
				"blocked_targets": []any{"*"},
			},
		},
	})
	require.NoError(t, err)

	assert.True(t, doc.ChainingPermits("read_email", "summarize"))
	assert.False(t, doc.ChainingPermits("read_email", "send_mail"))
	// Not on either list: permissive.
	assert.True(t, doc.ChainingPermits("read_email", "translate"))
	// Wildcard block.
	assert.False(t, doc.ChainingPermits("fetch_url", "anything"))
	// Unconfigured source is permissive.
	assert.True(t, doc.ChainingPermits("unlisted", "send_mail"))
}

func TestOutputRestrictionFor(t *testing.T) {
	doc, err := Load(map[string]any{
		"output_restrictions": map[string]any{
			"read_email": map[string]any{"max_severity_allowed": "medium"},
		},
		"functions": map[string]any{
			"read_email": map[string]any{
				"output_restrictions": map[string]any{"max_severity_allowed": "high"},
			},
			"fetch_url": map[string]any{
				"output_restrictions": map[string]any{"cannot_trigger_functions": true},
			},
		},
	})
	require.NoError(t, err)

	// Top-level section wins over the function entry.
	assert.Equal(t, models.SeverityMedium, doc.OutputRestrictionFor("read_email").MaxSeverityAllowed)
	assert.True(t, doc.OutputRestrictionFor("fetch_url").CannotTriggerFunctions)
	assert.Equal(t, OutputRestriction{}, doc.OutputRestrictionFor("unlisted"))
}

func TestContextRuleAction(t *testing.T) {
	doc, err := Load(map[string]any{
		"context_rules": []any{
			map[string]any{
				"function":  "read_email",
				"condition": map[string]any{"severity": ">=high", "contains_keywords": []any{"password"}},
				"action":    map[string]any{"block": true, "reason": "credential phishing"},
			},
			map[string]any{
				"function":  "read_email",
				"condition": map[string]any{"contains_urls": true},
				"action":    map[string]any{"block": true, "reason": "embedded link"},
			},
		},
	})
	require.NoError(t, err)

	t.Run("all sub-conditions must match", func(t *testing.T) {
		action := doc.ContextRuleAction("read_email", "reset your PASSWORD now", models.SeverityHigh)
		require.NotNil(t, action)
		assert.Equal(t, "credential phishing", action.Reason)

		// Severity too low for the first rule, no URL for the second.
		action = doc.ContextRuleAction("read_email", "reset your password now", models.SeverityLow)
		assert.Nil(t, action)
	})

	t.Run("first matching rule wins", func(t *testing.T) {
		action := doc.ContextRuleAction("read_email", "password reset at https://evil.example", models.SeverityCritical)
		require.NotNil(t, action)
		assert.Equal(t, "credential phishing", action.Reason)
	})

	t.Run("url condition", func(t *testing.T) {
		action := doc.ContextRuleAction("read_email", "visit https://evil.example", models.SeveritySafe)
		require.NotNil(t, action)
		assert.Equal(t, "embedded link", action.Reason)
	})

	t.Run("other functions are unaffected", func(t *testing.T) {
		action := doc.ContextRuleAction("web_search", "visit https://evil.example", models.SeverityCritical)
		assert.Nil(t, action)
	})
}

func TestSeverityConditionParsing(t *testing.T) {
	cases := []struct {
		expr    string
		current models.Severity
		want    bool
	}{
		{">=high", models.SeverityHigh, true},
		{">=high", models.SeverityCritical, true},
		{">=high", models.SeverityMedium, false},
		{">medium", models.SeverityMedium, false},
		{">medium", models.SeverityHigh, true},
		{"<=low", models.SeverityLow, true},
		{"<medium", models.SeverityMedium, false},
		{"=critical", models.SeverityCritical, true},
		{"critical", models.SeverityCritical, true},
		{"critical", models.SeverityHigh, false},
	}
	for _, tc := range cases {
		op, level, err := parseSeverityCondition(tc.expr)
		require.NoError(t, err, tc.expr)
		assert.Equal(t, tc.want, compareSeverity(tc.current, op, level), "%s vs %s", tc.expr, tc.current)
	}

	_, _, err := parseSeverityCondition(">=enormous")
	require.Error(t, err)
}

func TestDefaultConfigLoads(t *testing.T) {
	doc, err := Load(DefaultConfig())
	require.NoError(t, err)
	assert.NotEmpty(t, doc.Roles)
	assert.True(t, doc.RolePermits("admin", "anything"))
}
