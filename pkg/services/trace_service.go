package services

import (
	"context"
	stdsql "database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hipocap/gateway/ent"
	"github.com/hipocap/gateway/ent/analysistrace"
	"github.com/hipocap/gateway/ent/predicate"
	"github.com/hipocap/gateway/pkg/models"
)

// TraceService records and serves analysis traces. Aggregation queries go
// through the raw connection; row access goes through ent.
type TraceService struct {
	client *ent.Client
	db     *stdsql.DB
}

// NewTraceService creates a new TraceService
func NewTraceService(client *ent.Client, db *stdsql.DB) *TraceService {
	return &TraceService{client: client, db: db}
}

// RecordTraceInput carries everything persisted for one analysis call.
type RecordTraceInput struct {
	UserID    string
	APIKeyID  string
	PolicyKey string
	IPAddress string
	UserAgent string
	Request   *models.AnalyzeRequest
	Response  *models.AnalyzeResponse
}

// Record persists one trace row. Callers treat failures as non-fatal: the
// analysis verdict has already been computed and must still reach the caller.
func (s *TraceService) Record(ctx context.Context, in RecordTraceInput) (*ent.AnalysisTrace, error) {
	if in.UserID == "" {
		return nil, NewValidationError("user_id", "required")
	}
	if in.Request == nil || in.Response == nil {
		return nil, NewValidationError("trace", "request and response required")
	}

	responseMap, err := toMap(in.Response)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis response: %w", err)
	}

	builder := s.client.AnalysisTrace.Create().
		SetUserID(in.UserID).
		SetFunctionName(in.Request.FunctionName).
		SetQuarantineRequested(in.Request.QuarantineAnalysis).
		SetQuickAnalysis(in.Request.QuickAnalysis).
		SetAnalysisResponse(responseMap).
		SetFinalDecision(string(in.Response.FinalDecision)).
		SetSafeToUse(in.Response.SafeToUse).
		SetReviewRequired(in.Response.ReviewRequired)

	if in.APIKeyID != "" {
		builder.SetAPIKeyID(in.APIKeyID)
	}
	if in.Request.UserQuery != "" {
		builder.SetUserQuery(in.Request.UserQuery)
	}
	if in.Request.UserRole != "" {
		builder.SetUserRole(in.Request.UserRole)
	}
	if in.Request.TargetFunction != "" {
		builder.SetTargetFunction(in.Request.TargetFunction)
	}
	if in.PolicyKey != "" {
		builder.SetPolicyKey(in.PolicyKey)
	}
	if in.Response.BlockedAt != "" {
		builder.SetBlockedAt(in.Response.BlockedAt)
	}
	if in.Response.Reason != "" {
		builder.SetReason(in.Response.Reason)
	}
	if in.Response.HITLReason != "" {
		builder.SetHitlReason(in.Response.HITLReason)
	}
	if in.IPAddress != "" {
		builder.SetIPAddress(in.IPAddress)
	}
	if in.UserAgent != "" {
		builder.SetUserAgent(in.UserAgent)
	}
	if in.Response.InputAnalysis != nil && !in.Response.InputAnalysis.Skipped {
		builder.SetInputScore(in.Response.InputAnalysis.Score)
	}
	if in.Response.QuarantineAnalysis != nil {
		builder.SetQuarantineScore(in.Response.QuarantineAnalysis.Score)
	}
	if in.Response.LLMAnalysis != nil {
		builder.SetLlmScore(in.Response.LLMAnalysis.Score)
	}

	trace, err := builder.Save(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to record trace: %w", err)
	}
	return trace, nil
}

// List returns the owner's traces matching the filter, newest first, plus the
// total match count for pagination.
func (s *TraceService) List(ctx context.Context, ownerID string, filter models.TraceFilter) ([]*ent.AnalysisTrace, int, error) {
	if ownerID == "" {
		return nil, 0, NewValidationError("owner_id", "required")
	}

	predicates := []predicate.AnalysisTrace{analysistrace.UserID(ownerID)}
	if filter.FunctionName != "" {
		predicates = append(predicates, analysistrace.FunctionName(filter.FunctionName))
	}
	if filter.FinalDecision != "" {
		predicates = append(predicates, analysistrace.FinalDecision(filter.FinalDecision))
	}
	if filter.PolicyKey != "" {
		predicates = append(predicates, analysistrace.PolicyKey(filter.PolicyKey))
	}
	if filter.ReviewRequired != nil {
		predicates = append(predicates, analysistrace.ReviewRequired(*filter.ReviewRequired))
	}
	if filter.ReviewStatus != "" {
		if !models.ReviewStatus(filter.ReviewStatus).IsValid() {
			return nil, 0, NewValidationError("review_status", fmt.Sprintf("unknown review status %q", filter.ReviewStatus))
		}
		predicates = append(predicates, analysistrace.ReviewStatusEQ(analysistrace.ReviewStatus(filter.ReviewStatus)))
	}
	if filter.Since != nil {
		predicates = append(predicates, analysistrace.CreatedAtGTE(*filter.Since))
	}
	if filter.Until != nil {
		predicates = append(predicates, analysistrace.CreatedAtLTE(*filter.Until))
	}

	total, err := s.client.AnalysisTrace.Query().Where(predicates...).Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count traces: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := s.client.AnalysisTrace.Query().
		Where(predicates...).
		Order(ent.Desc(analysistrace.FieldCreatedAt)).
		Limit(limit).
		Offset(offset).
		All(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list traces: %w", err)
	}
	return rows, total, nil
}

// Get fetches one of the owner's traces by id.
func (s *TraceService) Get(ctx context.Context, ownerID string, id int) (*ent.AnalysisTrace, error) {
	row, err := s.client.AnalysisTrace.Query().
		Where(
			analysistrace.ID(id),
			analysistrace.UserID(ownerID),
		).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, fmt.Errorf("%w: trace %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get trace: %w", err)
	}
	return row, nil
}

// Review resolves a pending human review. Only pending traces can transition,
// and only to a terminal status.
func (s *TraceService) Review(ctx context.Context, ownerID string, id int, req models.ReviewTraceRequest) (*ent.AnalysisTrace, error) {
	status := models.ReviewStatus(req.Status)
	if !status.IsValid() {
		return nil, NewValidationError("status", fmt.Sprintf("unknown review status %q", req.Status))
	}
	if !status.IsTerminal() {
		return nil, NewValidationError("status", "cannot transition back to pending")
	}

	row, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if row.ReviewStatus != analysistrace.ReviewStatusPending {
		return nil, fmt.Errorf("%w: trace %d already reviewed (%s)", ErrInvalidInput, id, row.ReviewStatus)
	}

	builder := s.client.AnalysisTrace.UpdateOneID(row.ID).
		SetReviewStatus(analysistrace.ReviewStatus(status)).
		SetReviewedAt(time.Now())
	if req.ReviewedBy != "" {
		builder.SetReviewedBy(req.ReviewedBy)
	}
	if req.Notes != "" {
		builder.SetReviewNotes(req.Notes)
	}

	updated, err := builder.Save(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update review status: %w", err)
	}
	slog.Info("Trace review resolved",
		"trace_id", id,
		"status", status,
		"reviewed_by", req.ReviewedBy)
	return updated, nil
}

// DecisionCount is one row of the per-decision aggregate.
type DecisionCount struct {
	Decision string `json:"decision"`
	Count    int    `json:"count"`
}

// CountsByDecision aggregates the owner's traces by final decision since the
// given time.
func (s *TraceService) CountsByDecision(ctx context.Context, ownerID string, since time.Time) ([]DecisionCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT final_decision, COUNT(*) FROM analysis_traces
		WHERE user_id = $1 AND created_at >= $2
		GROUP BY final_decision
		ORDER BY COUNT(*) DESC`,
		ownerID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate decisions: %w", err)
	}
	defer rows.Close()

	var counts []DecisionCount
	for rows.Next() {
		var dc DecisionCount
		if err := rows.Scan(&dc.Decision, &dc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, dc)
	}
	return counts, rows.Err()
}

// FunctionCount is one row of the per-function aggregate.
type FunctionCount struct {
	FunctionName string `json:"function_name"`
	Count        int    `json:"count"`
	Blocked      int    `json:"blocked"`
}

// CountsByFunction aggregates the owner's traces by analyzed function since
// the given time, most analyzed first.
func (s *TraceService) CountsByFunction(ctx context.Context, ownerID string, since time.Time, limit int) ([]FunctionCount, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT function_name, COUNT(*),
			COUNT(*) FILTER (WHERE final_decision = 'BLOCKED')
		FROM analysis_traces
		WHERE user_id = $1 AND created_at >= $2
		GROUP BY function_name
		ORDER BY COUNT(*) DESC
		LIMIT $3`,
		ownerID, since, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate functions: %w", err)
	}
	defer rows.Close()

	var counts []FunctionCount
	for rows.Next() {
		var fc FunctionCount
		if err := rows.Scan(&fc.FunctionName, &fc.Count, &fc.Blocked); err != nil {
			return nil, err
		}
		counts = append(counts, fc)
	}
	return counts, rows.Err()
}

// TimeBucket is one point of the trace time series.
type TimeBucket struct {
	Bucket  time.Time `json:"bucket"`
	Count   int       `json:"count"`
	Blocked int       `json:"blocked"`
}

// TimeSeries buckets the owner's traces by the given interval ("minute",
// "hour" or "day") since the given time.
func (s *TraceService) TimeSeries(ctx context.Context, ownerID, interval string, since time.Time) ([]TimeBucket, error) {
	switch interval {
	case "minute", "hour", "day":
	default:
		return nil, NewValidationError("interval", "must be one of minute, hour, day")
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT date_trunc($1, created_at) AS bucket, COUNT(*),
			COUNT(*) FILTER (WHERE final_decision = 'BLOCKED')
		FROM analysis_traces
		WHERE user_id = $2 AND created_at >= $3
		GROUP BY bucket
		ORDER BY bucket`,
		interval, ownerID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build time series: %w", err)
	}
	defer rows.Close()

	var buckets []TimeBucket
	for rows.Next() {
		var tb TimeBucket
		if err := rows.Scan(&tb.Bucket, &tb.Count, &tb.Blocked); err != nil {
			return nil, err
		}
		buckets = append(buckets, tb)
	}
	return buckets, rows.Err()
}

func toMap(v any) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
