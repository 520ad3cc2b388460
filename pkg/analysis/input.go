package analysis

import (
	"context"

	"github.com/hipocap/gateway/pkg/classifier"
	"github.com/hipocap/gateway/pkg/models"
)

// InputAnalyzer scores a function call's surface with the injection
// classifier before any LLM is involved.
type InputAnalyzer struct {
	scorer         classifier.Scorer
	blockThreshold float64
}

// NewInputAnalyzer creates the classifier stage. blockThreshold is the score
// at which the stage decides BLOCK outright; scores below it PASS and are
// left to severity rules downstream.
func NewInputAnalyzer(scorer classifier.Scorer, blockThreshold float64) *InputAnalyzer {
	return &InputAnalyzer{scorer: scorer, blockThreshold: blockThreshold}
}

// Analyze blends classifier scores over the function name, arguments, and
// result. With arguments present the weights are 20/30/50; without them the
// name takes 30 and the result 70.
func (a *InputAnalyzer) Analyze(ctx context.Context, functionName string, functionResult, functionArgs any) (*models.InputAnalysisResult, error) {
	nameScore, err := a.scorer.Score(ctx, functionName)
	if err != nil {
		return nil, err
	}
	resultScore, err := a.scorer.Score(ctx, FormatValue(functionResult))
	if err != nil {
		return nil, err
	}

	var combined float64
	var argsScore *float64
	if functionArgs != nil {
		score, err := a.scorer.Score(ctx, FormatValue(functionArgs))
		if err != nil {
			return nil, err
		}
		argsScore = &score
		combined = nameScore*0.2 + score*0.3 + resultScore*0.5
	} else {
		combined = nameScore*0.3 + resultScore*0.7
	}

	decision := models.StagePass
	if combined >= a.blockThreshold {
		decision = models.StageBlock
	}

	return &models.InputAnalysisResult{
		Decision:    decision,
		Score:       combined,
		Severity:    models.SeverityFromScore(combined),
		NameScore:   nameScore,
		ArgsScore:   argsScore,
		ResultScore: resultScore,
	}, nil
}
