package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/logiscareer/candidate-engine/internal/types"
)

// EvaluationRecord is a stored evaluation with its assigned ID.
type EvaluationRecord struct {
	ID     uuid.UUID               `json:"id"`
	Result *types.EvaluationResult `json:"result"`
}

// SaveEvaluation stores a completed evaluation result and returns its ID.
// The full result is stored as JSONB; decision and score are promoted to
// columns for filtering.
func (db *DB) SaveEvaluation(ctx context.Context, result *types.EvaluationResult) (uuid.UUID, error) {
	content, err := json.Marshal(result)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal evaluation: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO evaluations (job_id, candidate_id, decision, total_score, result, evaluated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		result.JobID, result.CandidateID, result.Decision, result.TotalScore,
		content, result.EvaluatedAt,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save evaluation: %w", err)
	}
	return id, nil
}

// GetEvaluation retrieves a stored evaluation by ID. Returns nil without
// error when no record exists.
func (db *DB) GetEvaluation(ctx context.Context, id uuid.UUID) (*EvaluationRecord, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT result FROM evaluations WHERE id = $1`, id,
	).Scan(&content)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get evaluation %s: %w", id, err)
	}

	var result types.EvaluationResult
	if err := json.Unmarshal(content, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal evaluation %s: %w", id, err)
	}
	return &EvaluationRecord{ID: id, Result: &result}, nil
}

// ListEvaluationsByJob retrieves stored evaluations for a job, newest
// first, up to limit.
func (db *DB) ListEvaluationsByJob(ctx context.Context, jobID string, limit int) ([]EvaluationRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, result FROM evaluations
		 WHERE job_id = $1
		 ORDER BY evaluated_at DESC
		 LIMIT $2`,
		jobID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations for job %s: %w", jobID, err)
	}
	defer rows.Close()

	var records []EvaluationRecord
	for rows.Next() {
		var rec EvaluationRecord
		var content []byte
		if err := rows.Scan(&rec.ID, &content); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation row: %w", err)
		}
		var result types.EvaluationResult
		if err := json.Unmarshal(content, &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal evaluation %s: %w", rec.ID, err)
		}
		rec.Result = &result
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate evaluation rows: %w", err)
	}

	return records, nil
}
