package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Shield holds the schema definition for the Shield entity: a user-defined
// one-shot blocking rule set over arbitrary text.
type Shield struct {
	ent.Schema
}

// Fields of the Shield.
func (Shield) Fields() []ent.Field {
	return []ent.Field{
		field.String("shield_key").
			MaxLen(255).
			NotEmpty(),
		field.String("name").
			MaxLen(255).
			NotEmpty(),
		field.Text("description").
			Optional().
			Nillable(),
		field.Text("prompt_description").
			NotEmpty().
			Comment("What the shield protects, rendered into the analyst prompt"),
		field.Text("what_to_block").
			NotEmpty(),
		field.Text("what_not_to_block").
			NotEmpty().
			Comment("Exceptions to the blocking criteria"),
		field.String("owner_id").
			MaxLen(36).
			NotEmpty(),
		field.Bool("is_active").
			Default(true),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Time("updated_at").
			Optional().
			Nillable().
			UpdateDefault(time.Now),
	}
}

// Indexes of the Shield.
func (Shield) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("owner_id"),
		index.Fields("shield_key", "owner_id").
			Unique(),
	}
}
