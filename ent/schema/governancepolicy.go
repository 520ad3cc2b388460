package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// GovernancePolicy holds the schema definition for the GovernancePolicy
// entity. Each owner has at most one default policy.
type GovernancePolicy struct {
	ent.Schema
}

// Fields of the GovernancePolicy.
func (GovernancePolicy) Fields() []ent.Field {
	return []ent.Field{
		field.String("policy_key").
			MaxLen(255).
			NotEmpty().
			Comment("Owner-scoped policy identifier"),
		field.String("name").
			MaxLen(255).
			NotEmpty(),
		field.Text("description").
			Optional().
			Nillable(),
		field.String("owner_id").
			MaxLen(36).
			NotEmpty().
			Comment("Owning user id"),
		field.JSON("roles", map[string]interface{}{}).
			Optional().
			Comment("RBAC role permissions"),
		field.JSON("functions", map[string]interface{}{}).
			Optional().
			Comment("Per-function rules"),
		field.JSON("severity_rules", map[string]interface{}{}).
			Optional(),
		field.JSON("output_restrictions", map[string]interface{}{}).
			Optional(),
		field.JSON("function_chaining", map[string]interface{}{}).
			Optional(),
		field.JSON("context_rules", []interface{}{}).
			Optional().
			Comment("Ordered rules, replaced wholesale on update"),
		field.JSON("decision_thresholds", map[string]interface{}{}).
			Optional(),
		field.JSON("custom_prompts", map[string]interface{}{}).
			Optional(),
		field.Bool("is_active").
			Default(true),
		field.Bool("is_default").
			Default(false).
			Comment("At most one per owner"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Time("updated_at").
			Optional().
			Nillable().
			UpdateDefault(time.Now),
	}
}

// Indexes of the GovernancePolicy.
func (GovernancePolicy) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("owner_id"),
		index.Fields("policy_key", "owner_id").
			Unique(),
		// Partial unique index backing the single-default invariant
		index.Fields("owner_id").
			Annotations(entsql.IndexWhere("is_default")).
			StorageKey("governance_policies_owner_default").
			Unique(),
	}
}
