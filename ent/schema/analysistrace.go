package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnalysisTrace holds the schema definition for the AnalysisTrace entity.
// One row per analyzed function call; append-only except for the review
// fields.
type AnalysisTrace struct {
	ent.Schema
}

// Fields of the AnalysisTrace.
func (AnalysisTrace) Fields() []ent.Field {
	return []ent.Field{
		field.String("user_id").
			MaxLen(36).
			NotEmpty().
			Immutable(),
		field.String("api_key_id").
			MaxLen(255).
			Optional().
			Nillable(),
		field.String("function_name").
			MaxLen(255).
			NotEmpty().
			Immutable(),
		field.Text("user_query").
			Optional().
			Nillable(),
		field.String("user_role").
			MaxLen(100).
			Optional().
			Nillable(),
		field.String("target_function").
			MaxLen(255).
			Optional().
			Nillable(),
		field.Bool("quarantine_requested").
			Default(false),
		field.Bool("quick_analysis").
			Default(false),
		field.String("policy_key").
			MaxLen(255).
			Optional().
			Nillable(),
		field.JSON("analysis_response", map[string]interface{}{}).
			Comment("Full pipeline response as returned to the caller"),
		field.String("final_decision").
			MaxLen(50).
			NotEmpty(),
		field.Bool("safe_to_use"),
		field.String("blocked_at").
			MaxLen(100).
			Optional().
			Nillable(),
		field.Text("reason").
			Optional().
			Nillable(),
		field.Bool("review_required").
			Default(false),
		field.Text("hitl_reason").
			Optional().
			Nillable(),
		field.Float("input_score").
			Optional().
			Nillable(),
		field.Float("quarantine_score").
			Optional().
			Nillable(),
		field.Float("llm_score").
			Optional().
			Nillable(),
		field.Enum("review_status").
			Values("pending", "approved", "rejected", "reviewed").
			Default("pending"),
		field.String("reviewed_by").
			MaxLen(36).
			Optional().
			Nillable(),
		field.Time("reviewed_at").
			Optional().
			Nillable(),
		field.Text("review_notes").
			Optional().
			Nillable(),
		field.String("ip_address").
			MaxLen(45).
			Optional().
			Nillable(),
		field.String("user_agent").
			MaxLen(500).
			Optional().
			Nillable(),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Time("updated_at").
			Optional().
			Nillable().
			UpdateDefault(time.Now),
	}
}

// Indexes of the AnalysisTrace.
func (AnalysisTrace) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id"),
		index.Fields("function_name"),
		index.Fields("final_decision"),
		index.Fields("policy_key"),
		index.Fields("review_required"),
		index.Fields("review_status"),
		index.Fields("reviewed_by"),
		index.Fields("created_at"),

		// Composite indexes for the aggregation views
		index.Fields("user_id", "created_at"),
		index.Fields("user_id", "final_decision"),
	}
}
