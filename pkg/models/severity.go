// Package models defines the core domain types shared across the gateway:
// severity and decision enums, the analyze request/response shapes, and the
// per-stage analysis results.
package models

// Severity classifies how dangerous an analyzed payload is.
type Severity string

const (
	// SeveritySafe indicates no detected risk.
	SeveritySafe Severity = "safe"
	// SeverityLow indicates minor indicators that do not warrant action.
	SeverityLow Severity = "low"
	// SeverityMedium indicates suspicious content that restricts function calls.
	SeverityMedium Severity = "medium"
	// SeverityHigh indicates likely injection; output must not be used.
	SeverityHigh Severity = "high"
	// SeverityCritical indicates confirmed hostile content.
	SeverityCritical Severity = "critical"
)

// severityRank orders severities from safe (0) to critical (4).
var severityRank = map[Severity]int{
	SeveritySafe:     0,
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// severityScore maps a severity level to its base risk score used by the
// quarantine probe when blending with classifier output.
var severityScore = map[Severity]float64{
	SeveritySafe:     0.0,
	SeverityLow:      0.2,
	SeverityMedium:   0.5,
	SeverityHigh:     0.8,
	SeverityCritical: 0.95,
}

// IsValid returns true if the severity is one of the five known levels.
func (s Severity) IsValid() bool {
	_, ok := severityRank[s]
	return ok
}

// Rank returns the integer ordering of the severity (safe=0 .. critical=4).
// Unknown values rank as safe.
func (s Severity) Rank() int {
	return severityRank[s]
}

// Score returns the base risk score associated with the severity level.
func (s Severity) Score() float64 {
	return severityScore[s]
}

// AtLeast reports whether s is at least as severe as other.
func (s Severity) AtLeast(other Severity) bool {
	return s.Rank() >= other.Rank()
}

// MaxSeverity returns the more severe of the two levels.
func MaxSeverity(a, b Severity) Severity {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// AllSeverities lists the five levels in ascending order.
func AllSeverities() []Severity {
	return []Severity{SeveritySafe, SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
}

// SeverityFromScore bands a classifier score into a severity level.
// Thresholds follow the input analyzer defaults: <0.1 safe, <0.3 low,
// <0.5 medium, <0.9 high, otherwise critical.
func SeverityFromScore(score float64) Severity {
	switch {
	case score < 0.1:
		return SeveritySafe
	case score < 0.3:
		return SeverityLow
	case score < 0.5:
		return SeverityMedium
	case score < 0.9:
		return SeverityHigh
	default:
		return SeverityCritical
	}
}
