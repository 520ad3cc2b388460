// Package shield implements user-defined one-shot BLOCK/ALLOW policies over
// arbitrary text, evaluated through the analyst stage with a synthesized
// system prompt.
package shield

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Shield is a named blocking rule set owned by a single user.
type Shield struct {
	ID          int64  `json:"id"`
	ShieldKey   string `json:"shield_key"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	PromptDescription string `json:"prompt_description"`
	WhatToBlock       string `json:"what_to_block"`
	WhatNotToBlock    string `json:"what_not_to_block"`

	OwnerID   string     `json:"owner_id"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Content is the JSON blob a shield is created from.
type Content struct {
	PromptDescription string `json:"prompt_description"`
	WhatToBlock       string `json:"what_to_block"`
	WhatNotToBlock    string `json:"what_not_to_block"`
}

// ParseContent decodes and validates a shield content blob. All three fields
// are required.
func ParseContent(raw []byte) (*Content, error) {
	var content Content
	if err := json.Unmarshal(raw, &content); err != nil {
		return nil, fmt.Errorf("invalid shield content: %w", err)
	}
	var missing []string
	if strings.TrimSpace(content.PromptDescription) == "" {
		missing = append(missing, "prompt_description")
	}
	if strings.TrimSpace(content.WhatToBlock) == "" {
		missing = append(missing, "what_to_block")
	}
	if strings.TrimSpace(content.WhatNotToBlock) == "" {
		missing = append(missing, "what_not_to_block")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("shield content missing required fields: %s", strings.Join(missing, ", "))
	}
	return &content, nil
}

// SystemPrompt renders the analyst system prompt carrying the shield's
// custom blocking rules.
func (s *Shield) SystemPrompt() string {
	return fmt.Sprintf(`You are a security analysis agent. Analyze the provided content based on the following custom rules.

PROMPT DESCRIPTION:
%s

WHAT TO BLOCK:
%s

WHAT NOT TO BLOCK:
%s

Your task:
1. Analyze the provided content against the blocking rules above
2. Determine if the content matches anything in "WHAT TO BLOCK" (excluding items in "WHAT NOT TO BLOCK")
3. Return a decision: "BLOCK" if content should be blocked, "ALLOW" if content is safe
4. If blocking, provide a brief one-line reason explaining why

Be precise and only block content that clearly matches the blocking criteria while respecting the exceptions.`,
		s.PromptDescription, s.WhatToBlock, s.WhatNotToBlock)
}
