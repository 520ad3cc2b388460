package services

import (
	"context"
	"errors"
	"testing"

	"github.com/hipocap/gateway/pkg/models"
	testdb "github.com/hipocap/gateway/test/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyService_Create(t *testing.T) {
	client := testdb.NewTestClient(t)
	svc := NewPolicyService(client.Client)
	ctx := context.Background()

	t.Run("creates policy with config", func(t *testing.T) {
		created, err := svc.Create(ctx, "owner-1", models.CreatePolicyRequest{
			PolicyKey:   "strict",
			Name:        "Strict Policy",
			Description: "Blocks aggressively",
			Config: map[string]any{
				"decision_thresholds": map[string]any{"block_threshold": 0.5, "allow_threshold": 0.2},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "strict", created.PolicyKey)
		assert.Equal(t, "Strict Policy", created.Name)
		assert.Equal(t, "owner-1", created.OwnerID)
		assert.True(t, created.IsActive)
		assert.False(t, created.IsDefault)
		require.NotNil(t, created.DecisionThresholds)
	})

	t.Run("rejects duplicate key for same owner", func(t *testing.T) {
		_, err := svc.Create(ctx, "owner-1", models.CreatePolicyRequest{
			PolicyKey: "strict",
			Name:      "Another Strict",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("allows same key for different owner", func(t *testing.T) {
		_, err := svc.Create(ctx, "owner-2", models.CreatePolicyRequest{
			PolicyKey: "strict",
			Name:      "Strict Policy",
		})
		require.NoError(t, err)
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		_, err := svc.Create(ctx, "owner-1", models.CreatePolicyRequest{
			PolicyKey: "broken",
			Name:      "Broken",
			Config: map[string]any{
				"decision_thresholds": map[string]any{"block_threshold": 2.5},
			},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		_, err := svc.Create(ctx, "owner-1", models.CreatePolicyRequest{Name: "No Key"})
		require.Error(t, err)
		assert.True(t, IsValidationError(err))

		_, err = svc.Create(ctx, "", models.CreatePolicyRequest{PolicyKey: "x", Name: "X"})
		require.Error(t, err)
		assert.True(t, IsValidationError(err))
	})
}

func TestPolicyService_GetDefault(t *testing.T) {
	client := testdb.NewTestClient(t)
	svc := NewPolicyService(client.Client)
	ctx := context.Background()

	t.Run("materializes default on first use", func(t *testing.T) {
		row, err := svc.GetDefault(ctx, "fresh-owner")
		require.NoError(t, err)
		assert.Equal(t, DefaultPolicyKey, row.PolicyKey)
		assert.True(t, row.IsDefault)
		assert.True(t, row.IsActive)
		require.NotNil(t, row.Roles)
		require.NotNil(t, row.DecisionThresholds)
	})

	t.Run("returns the same row on subsequent calls", func(t *testing.T) {
		first, err := svc.GetDefault(ctx, "stable-owner")
		require.NoError(t, err)
		second, err := svc.GetDefault(ctx, "stable-owner")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})
}

func TestPolicyService_DefaultPromotion(t *testing.T) {
	client := testdb.NewTestClient(t)
	svc := NewPolicyService(client.Client)
	ctx := context.Background()
	ownerID := "promo-owner"

	// Materialize the stock default, then promote a custom policy over it.
	stock, err := svc.GetDefault(ctx, ownerID)
	require.NoError(t, err)
	require.True(t, stock.IsDefault)

	custom, err := svc.Create(ctx, ownerID, models.CreatePolicyRequest{
		PolicyKey: "custom",
		Name:      "Custom Policy",
		IsDefault: true,
	})
	require.NoError(t, err)
	assert.True(t, custom.IsDefault)

	// The old default was demoted.
	demoted, err := svc.GetByKey(ctx, ownerID, DefaultPolicyKey)
	require.NoError(t, err)
	assert.False(t, demoted.IsDefault)

	// Resolution now lands on the custom policy.
	resolved, err := svc.GetDefault(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, "custom", resolved.PolicyKey)
}

func TestPolicyService_List(t *testing.T) {
	client := testdb.NewTestClient(t)
	svc := NewPolicyService(client.Client)
	ctx := context.Background()

	t.Run("new owner sees the materialized default", func(t *testing.T) {
		rows, err := svc.List(ctx, "list-owner")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, DefaultPolicyKey, rows[0].PolicyKey)
	})

	t.Run("lists newest first", func(t *testing.T) {
		_, err := svc.Create(ctx, "list-owner", models.CreatePolicyRequest{
			PolicyKey: "second",
			Name:      "Second",
		})
		require.NoError(t, err)

		rows, err := svc.List(ctx, "list-owner")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "second", rows[0].PolicyKey)
	})

	t.Run("owners are isolated", func(t *testing.T) {
		rows, err := svc.List(ctx, "other-list-owner")
		require.NoError(t, err)
		require.Len(t, rows, 1)
	})
}

func TestPolicyService_Update(t *testing.T) {
	client := testdb.NewTestClient(t)
	svc := NewPolicyService(client.Client)
	ctx := context.Background()
	ownerID := "update-owner"

	_, err := svc.Create(ctx, ownerID, models.CreatePolicyRequest{
		PolicyKey: "tunable",
		Name:      "Tunable",
		Config: map[string]any{
			"decision_thresholds": map[string]any{"block_threshold": 0.85, "allow_threshold": 0.25},
		},
	})
	require.NoError(t, err)

	t.Run("deep-merges config sections and reports diff", func(t *testing.T) {
		updated, diff, err := svc.Update(ctx, ownerID, "tunable", models.UpdatePolicyRequest{
			Config: map[string]any{
				"decision_thresholds": map[string]any{"block_threshold": 0.6},
			},
		})
		require.NoError(t, err)
		require.Contains(t, diff, "decision_thresholds")

		thresholds := updated.DecisionThresholds
		require.NotNil(t, thresholds)
		assert.InDelta(t, 0.6, thresholds["block_threshold"], 0.001)
		// Untouched sibling keys survive the merge.
		assert.InDelta(t, 0.25, thresholds["allow_threshold"], 0.001)
	})

	t.Run("rejects merge that produces invalid config", func(t *testing.T) {
		_, _, err := svc.Update(ctx, ownerID, "tunable", models.UpdatePolicyRequest{
			Config: map[string]any{
				"decision_thresholds": map[string]any{"block_threshold": -1.0},
			},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("updates metadata fields", func(t *testing.T) {
		name := "Renamed"
		inactive := false
		updated, _, err := svc.Update(ctx, ownerID, "tunable", models.UpdatePolicyRequest{
			Name:     &name,
			IsActive: &inactive,
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Name)
		assert.False(t, updated.IsActive)
	})

	t.Run("not found", func(t *testing.T) {
		_, _, err := svc.Update(ctx, ownerID, "missing", models.UpdatePolicyRequest{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPolicyService_Delete(t *testing.T) {
	client := testdb.NewTestClient(t)
	svc := NewPolicyService(client.Client)
	ctx := context.Background()
	ownerID := "delete-owner"

	t.Run("deletes a non-default policy", func(t *testing.T) {
		_, err := svc.Create(ctx, ownerID, models.CreatePolicyRequest{
			PolicyKey: "disposable",
			Name:      "Disposable",
		})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, ownerID, "disposable"))

		_, err = svc.GetByKey(ctx, ownerID, "disposable")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("refuses to delete the default policy", func(t *testing.T) {
		_, err := svc.GetDefault(ctx, ownerID)
		require.NoError(t, err)

		err = svc.Delete(ctx, ownerID, DefaultPolicyKey)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("not found", func(t *testing.T) {
		err := svc.Delete(ctx, ownerID, "never-existed")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPolicyService_Document(t *testing.T) {
	client := testdb.NewTestClient(t)
	svc := NewPolicyService(client.Client)
	ctx := context.Background()
	ownerID := "doc-owner"

	t.Run("empty key resolves to the default policy", func(t *testing.T) {
		doc, key, err := svc.Document(ctx, ownerID, "")
		require.NoError(t, err)
		assert.Equal(t, DefaultPolicyKey, key)
		require.NotNil(t, doc)
		assert.NotEmpty(t, doc.Roles)
	})

	t.Run("named key resolves that policy", func(t *testing.T) {
		_, err := svc.Create(ctx, ownerID, models.CreatePolicyRequest{
			PolicyKey: "named",
			Name:      "Named",
			Config: map[string]any{
				"decision_thresholds": map[string]any{"block_threshold": 0.4, "allow_threshold": 0.1},
			},
		})
		require.NoError(t, err)

		doc, key, err := svc.Document(ctx, ownerID, "named")
		require.NoError(t, err)
		assert.Equal(t, "named", key)
		assert.InDelta(t, 0.4, doc.DecisionThresholds.BlockThreshold, 0.001)
	})

	t.Run("rejects inactive policy", func(t *testing.T) {
		inactive := false
		_, _, err := svc.Update(ctx, ownerID, "named", models.UpdatePolicyRequest{IsActive: &inactive})
		require.NoError(t, err)

		_, _, err = svc.Document(ctx, ownerID, "named")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, _, err := svc.Document(ctx, ownerID, "ghost")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}
