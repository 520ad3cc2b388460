package models

import "time"

// CreatePolicyRequest creates a named governance policy for an owner.
type CreatePolicyRequest struct {
	PolicyKey   string         `json:"policy_key" binding:"required"`
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description,omitempty"`
	Config      map[string]any `json:"config,omitempty"`
	IsDefault   bool           `json:"is_default,omitempty"`
	IsActive    *bool          `json:"is_active,omitempty"`
}

// UpdatePolicyRequest patches a policy. Config sections are deep-merged;
// context_rules is replaced wholesale. Nil pointers leave fields untouched.
type UpdatePolicyRequest struct {
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Config      map[string]any `json:"config,omitempty"`
	IsDefault   *bool          `json:"is_default,omitempty"`
	IsActive    *bool          `json:"is_active,omitempty"`
}

// CreateShieldRequest creates a user-defined shield.
type CreateShieldRequest struct {
	ShieldKey         string `json:"shield_key" binding:"required"`
	Name              string `json:"name" binding:"required"`
	Description       string `json:"description,omitempty"`
	PromptDescription string `json:"prompt_description" binding:"required"`
	WhatToBlock       string `json:"what_to_block" binding:"required"`
	WhatNotToBlock    string `json:"what_not_to_block" binding:"required"`
	IsActive          *bool  `json:"is_active,omitempty"`
}

// UpdateShieldRequest patches a shield. Nil pointers leave fields untouched.
type UpdateShieldRequest struct {
	Name              *string `json:"name,omitempty"`
	Description       *string `json:"description,omitempty"`
	PromptDescription *string `json:"prompt_description,omitempty"`
	WhatToBlock       *string `json:"what_to_block,omitempty"`
	WhatNotToBlock    *string `json:"what_not_to_block,omitempty"`
	IsActive          *bool   `json:"is_active,omitempty"`
}

// ShieldEvaluateRequest submits content to a shield for a one-shot verdict.
type ShieldEvaluateRequest struct {
	Content       string `json:"content" binding:"required"`
	UserQuery     string `json:"user_query,omitempty"`
	RequireReason bool   `json:"require_reason,omitempty"`
}

// ReviewTraceRequest resolves a pending human review on a trace.
type ReviewTraceRequest struct {
	Status     string `json:"status" binding:"required"`
	ReviewedBy string `json:"reviewed_by,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// TraceFilter narrows trace listings. Zero values mean "no filter".
type TraceFilter struct {
	FunctionName   string     `json:"function_name,omitempty" form:"function_name"`
	FinalDecision  string     `json:"final_decision,omitempty" form:"final_decision"`
	PolicyKey      string     `json:"policy_key,omitempty" form:"policy_key"`
	ReviewRequired *bool      `json:"review_required,omitempty" form:"review_required"`
	ReviewStatus   string     `json:"review_status,omitempty" form:"review_status"`
	Since          *time.Time `json:"since,omitempty" form:"since" time_format:"2006-01-02T15:04:05Z07:00"`
	Until          *time.Time `json:"until,omitempty" form:"until" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit          int        `json:"limit,omitempty" form:"limit"`
	Offset         int        `json:"offset,omitempty" form:"offset"`
}
