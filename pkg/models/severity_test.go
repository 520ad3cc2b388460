package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityOrdering(t *testing.T) {
	assert.True(t, SeverityCritical.AtLeast(SeverityHigh))
	assert.True(t, SeverityHigh.AtLeast(SeverityHigh))
	assert.False(t, SeverityLow.AtLeast(SeverityMedium))

	// Unknown values rank as safe.
	assert.Equal(t, 0, Severity("bogus").Rank())
	assert.False(t, Severity("bogus").IsValid())

	assert.Equal(t, SeverityHigh, MaxSeverity(SeverityLow, SeverityHigh))
	assert.Equal(t, SeverityHigh, MaxSeverity(SeverityHigh, SeveritySafe))
	assert.Equal(t, SeveritySafe, MaxSeverity(SeveritySafe, Severity("")))
}

func TestSeverityFromScore(t *testing.T) {
	cases := []struct {
		score float64
		want  Severity
	}{
		{0.0, SeveritySafe},
		{0.09, SeveritySafe},
		{0.1, SeverityLow},
		{0.29, SeverityLow},
		{0.3, SeverityMedium},
		{0.49, SeverityMedium},
		{0.5, SeverityHigh},
		{0.89, SeverityHigh},
		{0.9, SeverityCritical},
		{1.0, SeverityCritical},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SeverityFromScore(tc.score), "score %v", tc.score)
	}
}

func TestSeverityScore(t *testing.T) {
	assert.Equal(t, 0.0, SeveritySafe.Score())
	assert.Equal(t, 0.95, SeverityCritical.Score())
	// Scores are monotone in rank.
	levels := AllSeverities()
	for i := 1; i < len(levels); i++ {
		assert.Greater(t, levels[i].Score(), levels[i-1].Score())
	}
}

func TestDecisionValidity(t *testing.T) {
	assert.True(t, DecisionAllowed.IsValid())
	assert.True(t, DecisionBlocked.IsValid())
	assert.True(t, DecisionAllowedWithWarning.IsValid())
	assert.False(t, Decision("MAYBE").IsValid())
}

func TestReviewStatus(t *testing.T) {
	assert.True(t, ReviewPending.IsValid())
	assert.False(t, ReviewStatus("escalated").IsValid())

	assert.False(t, ReviewPending.IsTerminal())
	assert.True(t, ReviewApproved.IsTerminal())
	assert.True(t, ReviewRejected.IsTerminal())
	assert.True(t, ReviewReviewed.IsTerminal())
}
