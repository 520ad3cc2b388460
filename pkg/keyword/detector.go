// Package keyword implements the sensitive-keyword gate: case-insensitive
// substring detection over the serialized function result with category-based
// risk scoring.
package keyword

import (
	"strings"

	"github.com/hipocap/gateway/pkg/models"
)

// DefaultKeywords is the bundled sensitive keyword list used when the caller
// does not supply one.
func DefaultKeywords() []string {
	return []string{
		// Security classifications
		"confidential", "classified", "top secret", "restricted", "sensitive",
		"for internal use only", "do not distribute", "need-to-know",
		// Business sensitivity
		"proprietary", "trade secret", "internal use only",
		"do not share", "confidential business information",
		// Action-triggering
		"password reset", "account verification", "urgent action required",
		"click here", "verify now", "immediate action needed",
		"your account will be closed", "suspicious activity detected",
		// Financial
		"wire transfer", "payment required", "refund processing",
		"account suspended", "payment failed",
		// Personal information indicators
		"ssn", "social security number", "credit card",
		"date of birth", "mother's maiden name",
	}
}

// Category assignment patterns. A detected keyword lands in the first
// category whose pattern list matches it.
var (
	securityPatterns  = []string{"confidential", "classified", "top secret", "restricted", "sensitive", "internal use only", "do not distribute", "need-to-know"}
	businessPatterns  = []string{"proprietary", "trade secret", "do not share", "confidential business"}
	actionPatterns    = []string{"password reset", "account verification", "urgent action", "click here", "verify now", "immediate action", "account will be closed", "suspicious activity"}
	financialPatterns = []string{"wire transfer", "payment required", "refund", "account suspended", "payment failed"}
	piiPatterns       = []string{"ssn", "social security", "credit card", "date of birth", "mother's maiden name"}
)

// Detect scans serialized content for the given keywords (or the default list
// when keywords is nil) and scores the findings. Matching is case-insensitive
// substring over the serialized form.
func Detect(serialized string, keywords []string) *models.KeywordDetectionResult {
	if keywords == nil {
		keywords = DefaultKeywords()
	}
	content := strings.ToLower(serialized)

	var detected []string
	occurrences := map[string]int{}
	for _, kw := range keywords {
		count := strings.Count(content, strings.ToLower(kw))
		if count > 0 {
			detected = append(detected, kw)
			occurrences[kw] = count
		}
	}

	categories := map[string][]string{
		"security":          {},
		"business":          {},
		"action_triggering": {},
		"financial":         {},
		"pii":               {},
	}
	for _, kw := range detected {
		lower := strings.ToLower(kw)
		switch {
		case matchesAny(lower, securityPatterns):
			categories["security"] = append(categories["security"], kw)
		case matchesAny(lower, businessPatterns):
			categories["business"] = append(categories["business"], kw)
		case matchesAny(lower, actionPatterns):
			categories["action_triggering"] = append(categories["action_triggering"], kw)
		case matchesAny(lower, financialPatterns):
			categories["financial"] = append(categories["financial"], kw)
		case matchesAny(lower, piiPatterns):
			categories["pii"] = append(categories["pii"], kw)
		}
	}

	// Base score grows with keyword count; category multipliers capture that
	// action-triggering and PII keywords are the strongest signals.
	baseScore := min(float64(len(detected))*0.1, 0.7)
	multiplier := 1.0
	if len(categories["security"]) > 0 {
		multiplier = max(multiplier, 1.2)
	}
	if len(categories["action_triggering"]) > 0 {
		multiplier = max(multiplier, 1.3)
	}
	if len(categories["financial"]) > 0 {
		multiplier = max(multiplier, 1.2)
	}
	if len(categories["pii"]) > 0 {
		multiplier = max(multiplier, 1.3)
	}
	riskScore := min(baseScore*multiplier, 0.95)

	var severity models.Severity
	switch {
	case riskScore >= 0.7:
		severity = models.SeverityHigh
	case riskScore >= 0.4:
		severity = models.SeverityMedium
	case riskScore >= 0.2:
		severity = models.SeverityLow
	default:
		severity = models.SeveritySafe
	}

	return &models.KeywordDetectionResult{
		Detected:     len(detected) > 0,
		Keywords:     detected,
		KeywordCount: len(detected),
		Occurrences:  occurrences,
		Categories:   categories,
		RiskScore:    riskScore,
		Severity:     severity,
	}
}

func matchesAny(keyword string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(keyword, pattern) {
			return true
		}
	}
	return false
}
