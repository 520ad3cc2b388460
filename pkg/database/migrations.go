package database

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect/sql"
)

// CreateGINIndexes creates full-text search GIN indexes for PostgreSQL.
// These back the trace search filters on user_query and reason.
func CreateGINIndexes(ctx context.Context, driver *sql.Driver) error {
	db := driver.DB()

	// GIN index for user_query full-text search
	_, err := db.ExecContext(ctx,
		`CREATE INDEX IF NOT EXISTS idx_analysis_traces_user_query_gin
		ON analysis_traces USING gin(to_tsvector('english', COALESCE(user_query, '')))`)
	if err != nil {
		return fmt.Errorf("failed to create user_query GIN index: %w", err)
	}

	// GIN index for reason full-text search
	_, err = db.ExecContext(ctx,
		`CREATE INDEX IF NOT EXISTS idx_analysis_traces_reason_gin
		ON analysis_traces USING gin(to_tsvector('english', COALESCE(reason, '')))`)
	if err != nil {
		return fmt.Errorf("failed to create reason GIN index: %w", err)
	}

	return nil
}

// CreatePartialUniqueIndexes creates PostgreSQL partial unique indexes that
// Ent auto-migration cannot express. The owner-default index enforces at most
// one default policy per owner.
func CreatePartialUniqueIndexes(ctx context.Context, driver *sql.Driver) error {
	db := driver.DB()

	_, err := db.ExecContext(ctx,
		`CREATE UNIQUE INDEX IF NOT EXISTS governance_policies_owner_default
		ON governance_policies (owner_id)
		WHERE is_default`)
	if err != nil {
		return fmt.Errorf("failed to create owner default policy index: %w", err)
	}

	return nil
}
