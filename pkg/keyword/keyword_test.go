package keyword

import (
	"testing"

	"github.com/hipocap/gateway/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	t.Run("clean content", func(t *testing.T) {
		result := Detect("The weather in Berlin is sunny with a high of 24C.", nil)
		assert.False(t, result.Detected)
		assert.Zero(t, result.KeywordCount)
		assert.Zero(t, result.RiskScore)
		assert.Equal(t, models.SeveritySafe, result.Severity)
	})

	t.Run("matching is case-insensitive", func(t *testing.T) {
		result := Detect("This document is CONFIDENTIAL.", nil)
		require.True(t, result.Detected)
		assert.Contains(t, result.Keywords, "confidential")
		assert.Contains(t, result.Categories["security"], "confidential")
	})

	t.Run("counts repeated occurrences", func(t *testing.T) {
		result := Detect("confidential data. more confidential data.", nil)
		assert.Equal(t, 2, result.Occurrences["confidential"])
		assert.Equal(t, 1, result.KeywordCount)
	})

	t.Run("action-triggering keywords raise the risk multiplier", func(t *testing.T) {
		security := Detect("confidential", nil)
		action := Detect("urgent action required", nil)
		assert.Greater(t, action.RiskScore, security.RiskScore)
	})

	t.Run("many keywords reach high severity", func(t *testing.T) {
		content := "URGENT ACTION REQUIRED: click here to verify now. " +
			"Suspicious activity detected on your credit card. " +
			"Wire transfer pending, payment required. Provide your ssn " +
			"and social security number for account verification."
		result := Detect(content, nil)
		require.True(t, result.Detected)
		assert.GreaterOrEqual(t, result.RiskScore, 0.7)
		assert.Equal(t, models.SeverityHigh, result.Severity)
		assert.NotEmpty(t, result.Categories["action_triggering"])
		assert.NotEmpty(t, result.Categories["pii"])
	})

	t.Run("risk score is capped", func(t *testing.T) {
		var content string
		for _, kw := range DefaultKeywords() {
			content += kw + " "
		}
		result := Detect(content, nil)
		assert.LessOrEqual(t, result.RiskScore, 0.95)
	})

	t.Run("custom keyword list replaces the default", func(t *testing.T) {
		result := Detect("the launch codes are hidden", []string{"launch codes"})
		require.True(t, result.Detected)
		assert.Equal(t, []string{"launch codes"}, result.Keywords)

		// Default keywords are not consulted.
		result = Detect("this is confidential", []string{"launch codes"})
		assert.False(t, result.Detected)
	})

	t.Run("empty custom list detects nothing", func(t *testing.T) {
		result := Detect("this is confidential", []string{})
		assert.False(t, result.Detected)
	})
}
