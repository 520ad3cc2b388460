package policy

import (
	"fmt"
	"strings"

	"github.com/hipocap/gateway/pkg/models"
)

// urlIndicators are the substrings that satisfy a contains_urls condition.
var urlIndicators = []string{"http://", "https://", "www.", ".com", ".org", ".net"}

// RolePermits reports whether a role may call a function. A role qualifies
// through its own permission list ("*" or an explicit entry) or by appearing
// in the function's allowed_roles. Unknown roles are denied.
func (d *Document) RolePermits(role, functionName string) bool {
	roleRule, ok := d.Roles[role]
	if !ok {
		return false
	}
	for _, perm := range roleRule.Permissions {
		if perm == "*" || perm == functionName {
			return true
		}
	}
	if fn, ok := d.Functions[functionName]; ok {
		for _, allowed := range fn.AllowedRoles {
			if allowed == role {
				return true
			}
		}
	}
	return false
}

// ChainingPermits reports whether the output of source may trigger target.
// The block list wins over the allow list; an unconfigured source is
// permissive.
func (d *Document) ChainingPermits(source, target string) bool {
	rule, ok := d.FunctionChaining[source]
	if !ok {
		return true
	}
	for _, blocked := range rule.BlockedTargets {
		if blocked == "*" || blocked == target {
			return false
		}
	}
	for _, allowed := range rule.AllowedTargets {
		if allowed == "*" || allowed == target {
			return true
		}
	}
	return true
}

// ChainingInfo returns the configured chaining targets for a function, or nil
// when nothing meaningful is configured.
func (d *Document) ChainingInfo(functionName string) *models.FunctionChainingInfo {
	rule, ok := d.FunctionChaining[functionName]
	if !ok {
		return nil
	}
	info := &models.FunctionChainingInfo{
		AllowedTargets: rule.AllowedTargets,
		BlockedTargets: rule.BlockedTargets,
		Description:    rule.Description,
	}
	if info.Empty() {
		return nil
	}
	return info
}

// SeverityRuleFor returns the rule for a level, falling back to the safe rule
// for unknown levels.
func (d *Document) SeverityRuleFor(level models.Severity) SeverityRule {
	if rule, ok := d.SeverityRules[level]; ok {
		return rule
	}
	return d.SeverityRules[models.SeveritySafe]
}

// OutputRestrictionFor resolves a function's output restriction, preferring
// the top-level output_restrictions section over the function entry.
func (d *Document) OutputRestrictionFor(functionName string) OutputRestriction {
	if r, ok := d.OutputRestrictions[functionName]; ok {
		return r
	}
	if fn, ok := d.Functions[functionName]; ok && fn.OutputRestrictions != nil {
		return *fn.OutputRestrictions
	}
	return OutputRestriction{}
}

// HITLRulesFor returns the human-review rules configured for a function.
func (d *Document) HITLRulesFor(functionName string) string {
	if fn, ok := d.Functions[functionName]; ok {
		return fn.HITLRules
	}
	return ""
}

// QuarantineExcludeFor returns the quarantine exclusion note for a function.
func (d *Document) QuarantineExcludeFor(functionName string) string {
	if fn, ok := d.Functions[functionName]; ok {
		return fn.QuarantineExclude
	}
	return ""
}

// ContextRuleAction evaluates the ordered context rules for a function result
// and returns the action of the first matching rule, or nil when none match.
// serializedResult must be the JSON-rendered result text.
func (d *Document) ContextRuleAction(functionName, serializedResult string, severity models.Severity) *ContextAction {
	resultLower := strings.ToLower(serializedResult)

	for _, rule := range d.ContextRules {
		if rule.Function != functionName {
			continue
		}
		if !matchesCondition(rule.Condition, serializedResult, resultLower, severity) {
			continue
		}
		action := rule.Action
		return &action
	}
	return nil
}

func matchesCondition(cond ContextCondition, result, resultLower string, severity models.Severity) bool {
	if cond.Severity != "" {
		op, level, err := parseSeverityCondition(cond.Severity)
		if err != nil {
			return false
		}
		if !compareSeverity(severity, op, level) {
			return false
		}
	}
	if len(cond.ContainsKeywords) > 0 && !anySubstring(resultLower, cond.ContainsKeywords) {
		return false
	}
	if len(cond.ContainsPatterns) > 0 && !anySubstring(resultLower, cond.ContainsPatterns) {
		return false
	}
	if cond.ContainsURLs {
		found := false
		for _, indicator := range urlIndicators {
			if strings.Contains(result, indicator) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func anySubstring(haystackLower string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystackLower, strings.ToLower(needle)) {
			return true
		}
	}
	return false
}

// parseSeverityCondition splits a comparator expression like ">=high" into
// its operator and severity level. A bare level means equality.
func parseSeverityCondition(expr string) (string, models.Severity, error) {
	op := "="
	rest := expr
	switch {
	case strings.HasPrefix(expr, ">="):
		op, rest = ">=", expr[2:]
	case strings.HasPrefix(expr, "<="):
		op, rest = "<=", expr[2:]
	case strings.HasPrefix(expr, ">"):
		op, rest = ">", expr[1:]
	case strings.HasPrefix(expr, "<"):
		op, rest = "<", expr[1:]
	case strings.HasPrefix(expr, "="):
		op, rest = "=", expr[1:]
	}
	level := models.Severity(strings.ToLower(strings.TrimSpace(rest)))
	if !level.IsValid() {
		return "", "", fmt.Errorf("unknown severity %q in condition %q", rest, expr)
	}
	return op, level, nil
}

func compareSeverity(current models.Severity, op string, required models.Severity) bool {
	cur, req := current.Rank(), required.Rank()
	switch op {
	case ">=":
		return cur >= req
	case ">":
		return cur > req
	case "<=":
		return cur <= req
	case "<":
		return cur < req
	default:
		return cur == req
	}
}
