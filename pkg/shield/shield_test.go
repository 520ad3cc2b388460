package shield

import (
	"context"
	"testing"

	"github.com/hipocap/gateway/pkg/llm"
	"github.com/hipocap/gateway/pkg/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContent(t *testing.T) {
	t.Run("valid blob", func(t *testing.T) {
		content, err := ParseContent([]byte(`{
			"prompt_description": "Block profanity in support chats",
			"what_to_block": "Profanity, slurs",
			"what_not_to_block": "Quoted customer messages"
		}`))
		require.NoError(t, err)
		assert.Equal(t, "Profanity, slurs", content.WhatToBlock)
	})

	t.Run("reports every missing field", func(t *testing.T) {
		_, err := ParseContent([]byte(`{"prompt_description": "only this"}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "what_to_block")
		assert.Contains(t, err.Error(), "what_not_to_block")
		assert.NotContains(t, err.Error(), "prompt_description")
	})

	t.Run("whitespace-only fields count as missing", func(t *testing.T) {
		_, err := ParseContent([]byte(`{
			"prompt_description": "d", "what_to_block": "   ", "what_not_to_block": "n"
		}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "what_to_block")
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := ParseContent([]byte(`{"prompt_description": `))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid shield content")
	})
}

func TestSystemPrompt(t *testing.T) {
	s := &Shield{
		PromptDescription: "Block leaked credentials",
		WhatToBlock:       "API keys, passwords",
		WhatNotToBlock:    "Documentation placeholders",
	}
	rendered := s.SystemPrompt()
	assert.Contains(t, rendered, "Block leaked credentials")
	assert.Contains(t, rendered, "API keys, passwords")
	assert.Contains(t, rendered, "Documentation placeholders")
	assert.Contains(t, rendered, `"BLOCK"`)
}

// verdictCompleter returns a canned analyst verdict regardless of prompt,
// recording the system prompt it was handed.
type verdictCompleter struct {
	verdict       string
	systemPrompts []string
}

func (v *verdictCompleter) Complete(_ context.Context, req llm.Request) (string, error) {
	v.systemPrompts = append(v.systemPrompts, req.System)
	return v.verdict, nil
}

func TestEvaluator(t *testing.T) {
	ctx := context.Background()
	engineModels := pipeline.Models{Analyst: "analyst-model", Infection: "i", Analysis: "a"}
	s := &Shield{
		ShieldKey:         "no-profanity",
		PromptDescription: "Block profanity",
		WhatToBlock:       "Swear words",
		WhatNotToBlock:    "Medical terminology",
	}

	t.Run("block verdict maps to BLOCK with the analyst reason", func(t *testing.T) {
		completer := &verdictCompleter{
			verdict: `{"score": 0.9, "decision": "BLOCK", "reason": "contains profanity"}`,
		}
		evaluator := NewEvaluator(pipeline.New(nil, completer, engineModels))

		result, err := evaluator.Evaluate(ctx, s, "some foul text", "", true)
		require.NoError(t, err)
		assert.Equal(t, DecisionBlock, result.Decision)
		assert.Equal(t, "contains profanity", result.Reason)

		// The shield rules reached the analyst.
		require.NotEmpty(t, completer.systemPrompts)
		assert.Contains(t, completer.systemPrompts[0], "Block profanity")
	})

	t.Run("allow verdict maps to ALLOW", func(t *testing.T) {
		completer := &verdictCompleter{
			verdict: `{"score": 0.05, "decision": "ALLOW", "reason": ""}`,
		}
		evaluator := NewEvaluator(pipeline.New(nil, completer, engineModels))

		result, err := evaluator.Evaluate(ctx, s, "perfectly polite text", "", false)
		require.NoError(t, err)
		assert.Equal(t, DecisionAllow, result.Decision)
		assert.Empty(t, result.Reason)
	})

	t.Run("a reason is always produced when asked for", func(t *testing.T) {
		completer := &verdictCompleter{
			verdict: `{"score": 0.05, "decision": "ALLOW", "reason": ""}`,
		}
		evaluator := NewEvaluator(pipeline.New(nil, completer, engineModels))

		result, err := evaluator.Evaluate(ctx, s, "clean text", "", true)
		require.NoError(t, err)
		assert.Equal(t, DecisionAllow, result.Decision)
		assert.NotEmpty(t, result.Reason)
	})
}
