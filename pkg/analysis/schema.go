package analysis

// analystSchema is the structured-output schema for the policy analyst.
// Quick mode carries only the verdict triple; full mode adds the detailed
// breakdown fields, all of which the backend must populate.
func analystSchema(quick bool) map[string]any {
	properties := map[string]any{
		"score": map[string]any{
			"type":        "number",
			"minimum":     0.0,
			"maximum":     1.0,
			"description": "Risk score: 0.0 = safe, 1.0 = critical",
		},
		"decision": map[string]any{
			"type":        "string",
			"enum":        []string{"ALLOW", "BLOCK"},
			"description": "Decision: ALLOW or BLOCK",
		},
		"reason": map[string]any{
			"type":        "string",
			"description": "Brief reason for the decision",
		},
	}
	required := []string{"score", "decision", "reason"}

	if !quick {
		properties["threats_found"] = map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "List of threats detected",
		}
		properties["threat_indicators"] = map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "S1-S14 threat categories + technical indicators (instruction_injection, contextual_blending, function_call_attempt, hidden_instructions)",
		}
		properties["detected_patterns"] = map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "Attack patterns detected (contextual_blending, instruction_injection, function_call_attempt)",
		}
		properties["function_call_attempts"] = map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "Detected function call attempts (e.g., search_web, send_mail, get_weather)",
		}
		properties["policy_violations"] = map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "List of policy violations found",
		}
		properties["severity"] = map[string]any{
			"type":        "string",
			"enum":        []string{"safe", "low", "medium", "high", "critical"},
			"description": "Severity level",
		}
		properties["summary"] = map[string]any{
			"type":        "string",
			"description": "Summary of findings",
		}
		properties["details"] = map[string]any{
			"type":        "string",
			"description": "Detailed analysis explanation",
		}
		required = []string{
			"score", "decision", "reason", "threats_found", "threat_indicators",
			"detected_patterns", "function_call_attempts", "policy_violations",
			"severity", "summary", "details",
		}
	}

	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}

// quarantineSchema is the structured-output schema for the quarantine
// evaluation phase. Quick mode drops the free-text fields to keep token
// usage down.
func quarantineSchema(quick bool) map[string]any {
	var properties map[string]any
	var required []string

	if quick {
		properties = map[string]any{
			"threat_indicators": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "S1-S14 threats + technical indicators",
			},
			"severity_assessment": map[string]any{
				"type":        "string",
				"enum":        []string{"safe", "low", "medium", "high", "critical"},
				"description": "Security severity level",
			},
			"detected_patterns": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Attack patterns detected",
			},
			"function_call_attempts": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Detected function calls",
			},
			"confidence": map[string]any{
				"type":        "number",
				"minimum":     0,
				"maximum":     1,
				"description": "Confidence 0-1",
			},
			"requires_hitl": map[string]any{
				"type":        "boolean",
				"description": "Whether human review (HITL) is recommended",
			},
			"hitl_reason": map[string]any{
				"type":        "string",
				"description": "Reason for HITL recommendation (if requires_hitl is true)",
			},
		}
		required = []string{"threat_indicators", "severity_assessment", "detected_patterns", "confidence", "requires_hitl"}
	} else {
		properties = map[string]any{
			"threat_indicators": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "S1-S14 threat categories + technical indicators (instruction_injection, contextual_blending, function_call_attempt, hidden_instructions)",
			},
			"severity_assessment": map[string]any{
				"type":        "string",
				"enum":        []string{"safe", "low", "medium", "high", "critical"},
				"description": "Security severity: safe/low/medium/high/critical",
			},
			"detected_patterns": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Attack patterns: contextual_blending, instruction_injection, function_call_attempt",
			},
			"function_call_attempts": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Detected function call attempts (e.g., search_web, send_mail, get_weather)",
			},
			"confidence": map[string]any{
				"type":        "number",
				"minimum":     0,
				"maximum":     1,
				"description": "Confidence level 0-1",
			},
			"requires_hitl": map[string]any{
				"type":        "boolean",
				"description": "Whether human review (HITL) is recommended based on HITL rules and content analysis",
			},
			"hitl_reason": map[string]any{
				"type":        "string",
				"description": "Reason why HITL is recommended (if requires_hitl is true). Should reference specific HITL rules that were triggered.",
			},
			"summary": map[string]any{
				"type":        "string",
				"description": "Brief summary of content and security concerns. Mention policy violations if function calls are blocked. If HITL is recommended, mention why.",
			},
			"content_analysis": map[string]any{
				"type":        "string",
				"description": "Content analysis. Explain policy violations if function call attempts are blocked. If HITL is recommended, explain which HITL rules were triggered.",
			},
		}
		required = []string{"threat_indicators", "severity_assessment", "detected_patterns", "summary", "content_analysis", "requires_hitl"}
	}

	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}
