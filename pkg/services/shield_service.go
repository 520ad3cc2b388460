package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hipocap/gateway/ent"
	entshield "github.com/hipocap/gateway/ent/shield"
	"github.com/hipocap/gateway/pkg/models"
	"github.com/hipocap/gateway/pkg/shield"
)

// ShieldService manages user-defined shields.
type ShieldService struct {
	client *ent.Client
}

// NewShieldService creates a new ShieldService
func NewShieldService(client *ent.Client) *ShieldService {
	return &ShieldService{client: client}
}

// Create stores a new shield for the owner. All three content fields are
// required; they feed directly into the analyst prompt.
func (s *ShieldService) Create(ctx context.Context, ownerID string, req models.CreateShieldRequest) (*ent.Shield, error) {
	if ownerID == "" {
		return nil, NewValidationError("owner_id", "required")
	}
	if req.ShieldKey == "" {
		return nil, NewValidationError("shield_key", "required")
	}
	if req.Name == "" {
		return nil, NewValidationError("name", "required")
	}
	if err := validateShieldContent(req.PromptDescription, req.WhatToBlock, req.WhatNotToBlock); err != nil {
		return nil, err
	}

	builder := s.client.Shield.Create().
		SetShieldKey(req.ShieldKey).
		SetName(req.Name).
		SetPromptDescription(req.PromptDescription).
		SetWhatToBlock(req.WhatToBlock).
		SetWhatNotToBlock(req.WhatNotToBlock).
		SetOwnerID(ownerID)
	if req.Description != "" {
		builder.SetDescription(req.Description)
	}
	if req.IsActive != nil {
		builder.SetIsActive(*req.IsActive)
	}

	created, err := builder.Save(ctx)
	if err != nil {
		if ent.IsConstraintError(err) {
			return nil, fmt.Errorf("%w: shield %q for owner %q", ErrAlreadyExists, req.ShieldKey, ownerID)
		}
		return nil, fmt.Errorf("failed to create shield: %w", err)
	}
	return created, nil
}

// GetByKey fetches an owner's shield by key.
func (s *ShieldService) GetByKey(ctx context.Context, ownerID, shieldKey string) (*ent.Shield, error) {
	row, err := s.client.Shield.Query().
		Where(
			entshield.OwnerID(ownerID),
			entshield.ShieldKey(shieldKey),
		).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, fmt.Errorf("%w: shield %q for owner %q", ErrNotFound, shieldKey, ownerID)
		}
		return nil, fmt.Errorf("failed to get shield: %w", err)
	}
	return row, nil
}

// List returns all shields owned by ownerID, newest first.
func (s *ShieldService) List(ctx context.Context, ownerID string) ([]*ent.Shield, error) {
	rows, err := s.client.Shield.Query().
		Where(entshield.OwnerID(ownerID)).
		Order(ent.Desc(entshield.FieldCreatedAt)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shields: %w", err)
	}
	return rows, nil
}

// Update patches a shield. Nil request fields are left untouched; content
// fields, when present, must remain non-empty.
func (s *ShieldService) Update(ctx context.Context, ownerID, shieldKey string, req models.UpdateShieldRequest) (*ent.Shield, error) {
	row, err := s.GetByKey(ctx, ownerID, shieldKey)
	if err != nil {
		return nil, err
	}

	promptDescription := row.PromptDescription
	whatToBlock := row.WhatToBlock
	whatNotToBlock := row.WhatNotToBlock
	if req.PromptDescription != nil {
		promptDescription = *req.PromptDescription
	}
	if req.WhatToBlock != nil {
		whatToBlock = *req.WhatToBlock
	}
	if req.WhatNotToBlock != nil {
		whatNotToBlock = *req.WhatNotToBlock
	}
	if err := validateShieldContent(promptDescription, whatToBlock, whatNotToBlock); err != nil {
		return nil, err
	}

	builder := s.client.Shield.UpdateOneID(row.ID)
	if req.Name != nil {
		builder.SetName(*req.Name)
	}
	if req.Description != nil {
		builder.SetDescription(*req.Description)
	}
	if req.PromptDescription != nil {
		builder.SetPromptDescription(*req.PromptDescription)
	}
	if req.WhatToBlock != nil {
		builder.SetWhatToBlock(*req.WhatToBlock)
	}
	if req.WhatNotToBlock != nil {
		builder.SetWhatNotToBlock(*req.WhatNotToBlock)
	}
	if req.IsActive != nil {
		builder.SetIsActive(*req.IsActive)
	}

	updated, err := builder.Save(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update shield: %w", err)
	}
	return updated, nil
}

// Delete removes an owner's shield.
func (s *ShieldService) Delete(ctx context.Context, ownerID, shieldKey string) error {
	row, err := s.GetByKey(ctx, ownerID, shieldKey)
	if err != nil {
		return err
	}
	n, err := s.client.Shield.Delete().
		Where(entshield.ID(row.ID)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete shield: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: shield %q for owner %q", ErrNotFound, shieldKey, ownerID)
	}
	return nil
}

// Domain converts a stored shield row into the evaluator's domain type.
func Domain(row *ent.Shield) *shield.Shield {
	d := &shield.Shield{
		ID:                int64(row.ID),
		ShieldKey:         row.ShieldKey,
		Name:              row.Name,
		PromptDescription: row.PromptDescription,
		WhatToBlock:       row.WhatToBlock,
		WhatNotToBlock:    row.WhatNotToBlock,
		OwnerID:           row.OwnerID,
		IsActive:          row.IsActive,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
	if row.Description != nil {
		d.Description = *row.Description
	}
	return d
}

func validateShieldContent(promptDescription, whatToBlock, whatNotToBlock string) error {
	raw, err := json.Marshal(shield.Content{
		PromptDescription: promptDescription,
		WhatToBlock:       whatToBlock,
		WhatNotToBlock:    whatNotToBlock,
	})
	if err != nil {
		return fmt.Errorf("failed to encode shield content: %w", err)
	}
	if _, err := shield.ParseContent(raw); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}
