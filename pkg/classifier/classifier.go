// Package classifier provides the injection-probability scoring port and an
// HTTP adapter for sequence classification model servers.
package classifier

import (
	"context"
	"errors"
)

// ErrClassifier indicates an unrecoverable classifier failure. The pipeline
// treats it as "stage provides no score" rather than blocking the request.
var ErrClassifier = errors.New("classifier: scoring failed")

// Scorer produces an injection probability in [0, 1] for arbitrary text,
// where 1 means "likely injected / malicious". Implementations must be total
// over any string: over-long inputs are truncated, never rejected.
type Scorer interface {
	Score(ctx context.Context, text string) (float64, error)
}

// ScoreFromProbabilities converts raw class probabilities into an injection
// score. Models with three or more classes report class 1 (malicious) plus
// class 2 (embedded instructions); binary models report class 1 alone.
func ScoreFromProbabilities(probabilities []float64) (float64, error) {
	if len(probabilities) < 2 {
		return 0, errors.New("classifier: need at least two class probabilities")
	}
	if len(probabilities) >= 3 {
		return probabilities[1] + probabilities[2], nil
	}
	return probabilities[1], nil
}
