package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hipocap/gateway/ent"
	"github.com/hipocap/gateway/ent/governancepolicy"
	"github.com/hipocap/gateway/pkg/models"
	"github.com/hipocap/gateway/pkg/policy"
)

// DefaultPolicyKey names the policy materialized for owners with no policy.
const DefaultPolicyKey = "default"

// PolicyService manages governance policy storage and resolution.
type PolicyService struct {
	client *ent.Client
}

// NewPolicyService creates a new PolicyService
func NewPolicyService(client *ent.Client) *PolicyService {
	return &PolicyService{client: client}
}

// Create stores a new policy for the owner. The config is validated before
// anything is written. When the new policy is marked default, any existing
// default for the owner is demoted first.
func (s *PolicyService) Create(ctx context.Context, ownerID string, req models.CreatePolicyRequest) (*ent.GovernancePolicy, error) {
	if ownerID == "" {
		return nil, NewValidationError("owner_id", "required")
	}
	if req.PolicyKey == "" {
		return nil, NewValidationError("policy_key", "required")
	}
	if req.Name == "" {
		return nil, NewValidationError("name", "required")
	}
	config := req.Config
	if config == nil {
		config = map[string]any{}
	}
	if _, err := policy.Load(config); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if req.IsDefault {
		if err := s.clearDefault(ctx, ownerID); err != nil {
			return nil, err
		}
	}

	builder := s.client.GovernancePolicy.Create().
		SetPolicyKey(req.PolicyKey).
		SetName(req.Name).
		SetOwnerID(ownerID).
		SetIsDefault(req.IsDefault)
	if req.Description != "" {
		builder.SetDescription(req.Description)
	}
	if req.IsActive != nil {
		builder.SetIsActive(*req.IsActive)
	}
	applyConfigColumns(builder, config)

	created, err := builder.Save(ctx)
	if err != nil {
		if ent.IsConstraintError(err) {
			return nil, fmt.Errorf("%w: policy %q for owner %q", ErrAlreadyExists, req.PolicyKey, ownerID)
		}
		return nil, fmt.Errorf("failed to create policy: %w", err)
	}
	return created, nil
}

// GetByKey fetches an owner's policy by key.
func (s *PolicyService) GetByKey(ctx context.Context, ownerID, policyKey string) (*ent.GovernancePolicy, error) {
	row, err := s.client.GovernancePolicy.Query().
		Where(
			governancepolicy.OwnerID(ownerID),
			governancepolicy.PolicyKey(policyKey),
		).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, fmt.Errorf("%w: policy %q for owner %q", ErrNotFound, policyKey, ownerID)
		}
		return nil, fmt.Errorf("failed to get policy: %w", err)
	}
	return row, nil
}

// GetDefault returns the owner's default policy, materializing the stock
// default on first use.
func (s *PolicyService) GetDefault(ctx context.Context, ownerID string) (*ent.GovernancePolicy, error) {
	row, err := s.client.GovernancePolicy.Query().
		Where(
			governancepolicy.OwnerID(ownerID),
			governancepolicy.IsDefault(true),
		).
		Only(ctx)
	if err == nil {
		return row, nil
	}
	if !ent.IsNotFound(err) {
		return nil, fmt.Errorf("failed to get default policy: %w", err)
	}

	slog.Info("Materializing default policy", "owner_id", ownerID)
	builder := s.client.GovernancePolicy.Create().
		SetPolicyKey(DefaultPolicyKey).
		SetName("Default Policy").
		SetDescription("Auto-generated default governance policy").
		SetOwnerID(ownerID).
		SetIsDefault(true)
	applyConfigColumns(builder, policy.DefaultConfig())

	created, err := builder.Save(ctx)
	if err != nil {
		// Concurrent first requests race on the partial unique index.
		// Whoever lost re-reads the winner's row.
		if ent.IsConstraintError(err) {
			return s.client.GovernancePolicy.Query().
				Where(
					governancepolicy.OwnerID(ownerID),
					governancepolicy.IsDefault(true),
				).
				Only(ctx)
		}
		return nil, fmt.Errorf("failed to materialize default policy: %w", err)
	}
	return created, nil
}

// List returns all policies owned by ownerID, newest first.
func (s *PolicyService) List(ctx context.Context, ownerID string) ([]*ent.GovernancePolicy, error) {
	// Listing materializes the default so new owners never see an empty set.
	if _, err := s.GetDefault(ctx, ownerID); err != nil {
		return nil, err
	}
	rows, err := s.client.GovernancePolicy.Query().
		Where(governancepolicy.OwnerID(ownerID)).
		Order(ent.Desc(governancepolicy.FieldCreatedAt)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}
	return rows, nil
}

// Update patches a policy. Config sections are deep-merged (context_rules
// replaced wholesale) and the merged result re-validated before persisting.
// The returned diff describes what changed per section.
func (s *PolicyService) Update(ctx context.Context, ownerID, policyKey string, req models.UpdatePolicyRequest) (*ent.GovernancePolicy, policy.Diff, error) {
	row, err := s.GetByKey(ctx, ownerID, policyKey)
	if err != nil {
		return nil, nil, err
	}

	diff := policy.Diff{}
	merged := configFromRow(row)
	if req.Config != nil {
		merged, diff = policy.MergeConfig(merged, req.Config)
		if _, err := policy.Load(merged); err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}

	if req.IsDefault != nil && *req.IsDefault && !row.IsDefault {
		if err := s.clearDefault(ctx, ownerID); err != nil {
			return nil, nil, err
		}
	}

	builder := s.client.GovernancePolicy.UpdateOneID(row.ID)
	if req.Name != nil {
		builder.SetName(*req.Name)
	}
	if req.Description != nil {
		builder.SetDescription(*req.Description)
	}
	if req.IsActive != nil {
		builder.SetIsActive(*req.IsActive)
	}
	if req.IsDefault != nil {
		builder.SetIsDefault(*req.IsDefault)
	}
	if req.Config != nil {
		applyConfigUpdate(builder, merged)
	}

	updated, err := builder.Save(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil, fmt.Errorf("%w: policy %q for owner %q", ErrNotFound, policyKey, ownerID)
		}
		return nil, nil, fmt.Errorf("failed to update policy: %w", err)
	}
	return updated, diff, nil
}

// Delete removes an owner's policy. The default policy cannot be deleted;
// demote it first.
func (s *PolicyService) Delete(ctx context.Context, ownerID, policyKey string) error {
	row, err := s.GetByKey(ctx, ownerID, policyKey)
	if err != nil {
		return err
	}
	if row.IsDefault {
		return fmt.Errorf("%w: cannot delete the default policy", ErrInvalidInput)
	}
	n, err := s.client.GovernancePolicy.Delete().
		Where(governancepolicy.ID(row.ID)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete policy: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: policy %q for owner %q", ErrNotFound, policyKey, ownerID)
	}
	return nil
}

// Document resolves the policy to evaluate a request under. An empty key
// selects the owner's default, materializing it on first use. Returns the
// parsed document and the key of the policy that served it.
func (s *PolicyService) Document(ctx context.Context, ownerID, policyKey string) (*policy.Document, string, error) {
	var (
		row *ent.GovernancePolicy
		err error
	)
	if policyKey == "" {
		row, err = s.GetDefault(ctx, ownerID)
	} else {
		row, err = s.GetByKey(ctx, ownerID, policyKey)
	}
	if err != nil {
		return nil, "", err
	}
	if !row.IsActive {
		return nil, "", fmt.Errorf("%w: policy %q is not active", ErrInvalidInput, row.PolicyKey)
	}
	doc, err := policy.Load(configFromRow(row))
	if err != nil {
		return nil, "", fmt.Errorf("stored policy %q failed to load: %w", row.PolicyKey, err)
	}
	return doc, row.PolicyKey, nil
}

func (s *PolicyService) clearDefault(ctx context.Context, ownerID string) error {
	_, err := s.client.GovernancePolicy.Update().
		Where(
			governancepolicy.OwnerID(ownerID),
			governancepolicy.IsDefault(true),
		).
		SetIsDefault(false).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("failed to demote existing default policy: %w", err)
	}
	return nil
}

// configFromRow reassembles the generic config map from the row's JSON columns.
func configFromRow(row *ent.GovernancePolicy) map[string]any {
	config := map[string]any{}
	if row.Roles != nil {
		config["roles"] = row.Roles
	}
	if row.Functions != nil {
		config["functions"] = row.Functions
	}
	if row.SeverityRules != nil {
		config["severity_rules"] = row.SeverityRules
	}
	if row.OutputRestrictions != nil {
		config["output_restrictions"] = row.OutputRestrictions
	}
	if row.FunctionChaining != nil {
		config["function_chaining"] = row.FunctionChaining
	}
	if row.ContextRules != nil {
		config["context_rules"] = row.ContextRules
	}
	if row.DecisionThresholds != nil {
		config["decision_thresholds"] = row.DecisionThresholds
	}
	if row.CustomPrompts != nil {
		config["custom_prompts"] = row.CustomPrompts
	}
	return config
}

func sectionMap(config map[string]any, key string) map[string]any {
	if v, ok := config[key].(map[string]any); ok {
		return v
	}
	return nil
}

func sectionList(config map[string]any, key string) []any {
	if v, ok := config[key].([]any); ok {
		return v
	}
	return nil
}

func applyConfigColumns(builder *ent.GovernancePolicyCreate, config map[string]any) {
	if v := sectionMap(config, "roles"); v != nil {
		builder.SetRoles(v)
	}
	if v := sectionMap(config, "functions"); v != nil {
		builder.SetFunctions(v)
	}
	if v := sectionMap(config, "severity_rules"); v != nil {
		builder.SetSeverityRules(v)
	}
	if v := sectionMap(config, "output_restrictions"); v != nil {
		builder.SetOutputRestrictions(v)
	}
	if v := sectionMap(config, "function_chaining"); v != nil {
		builder.SetFunctionChaining(v)
	}
	if v := sectionList(config, "context_rules"); v != nil {
		builder.SetContextRules(v)
	}
	if v := sectionMap(config, "decision_thresholds"); v != nil {
		builder.SetDecisionThresholds(v)
	}
	if v := sectionMap(config, "custom_prompts"); v != nil {
		builder.SetCustomPrompts(v)
	}
}

func applyConfigUpdate(builder *ent.GovernancePolicyUpdateOne, config map[string]any) {
	if v := sectionMap(config, "roles"); v != nil {
		builder.SetRoles(v)
	}
	if v := sectionMap(config, "functions"); v != nil {
		builder.SetFunctions(v)
	}
	if v := sectionMap(config, "severity_rules"); v != nil {
		builder.SetSeverityRules(v)
	}
	if v := sectionMap(config, "output_restrictions"); v != nil {
		builder.SetOutputRestrictions(v)
	}
	if v := sectionMap(config, "function_chaining"); v != nil {
		builder.SetFunctionChaining(v)
	}
	if v := sectionList(config, "context_rules"); v != nil {
		builder.SetContextRules(v)
	}
	if v := sectionMap(config, "decision_thresholds"); v != nil {
		builder.SetDecisionThresholds(v)
	}
	if v := sectionMap(config, "custom_prompts"); v != nil {
		builder.SetCustomPrompts(v)
	}
}
