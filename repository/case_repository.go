package repository

import (
	"context"
	"fmt"

	"parkappeal-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CaseRepository handles database operations for appeal cases
type CaseRepository struct {
	db *pgxpool.Pool
}

// NewCaseRepository creates a new case repository
func NewCaseRepository(db *pgxpool.Pool) *CaseRepository {
	return &CaseRepository{db: db}
}

// Create creates a new appeal case
func (r *CaseRepository) Create(ctx context.Context, appealCase *models.AppealCase) error {
	query := `
		INSERT INTO appeal_cases (
			user_id, status, citation_number, violation_type, city, state,
			facts, evidence, selected_angles, generated_content, refine_instructions
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		appealCase.UserID,
		appealCase.Status,
		appealCase.CitationNumber,
		appealCase.ViolationType,
		appealCase.City,
		appealCase.State,
		appealCase.Facts,
		appealCase.Evidence,
		appealCase.SelectedAngles,
		appealCase.GeneratedContent,
		appealCase.RefineInstructions,
	).Scan(&appealCase.ID, &appealCase.CreatedAt, &appealCase.UpdatedAt)

	return err
}

// GetByID retrieves an appeal case by ID
func (r *CaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AppealCase, error) {
	appealCase := &models.AppealCase{}
	query := `
		SELECT id, user_id, status, citation_number, violation_type, city, state,
			facts, evidence, selected_angles, generated_content, refine_instructions,
			created_at, updated_at, completed_at
		FROM appeal_cases
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&appealCase.ID,
		&appealCase.UserID,
		&appealCase.Status,
		&appealCase.CitationNumber,
		&appealCase.ViolationType,
		&appealCase.City,
		&appealCase.State,
		&appealCase.Facts,
		&appealCase.Evidence,
		&appealCase.SelectedAngles,
		&appealCase.GeneratedContent,
		&appealCase.RefineInstructions,
		&appealCase.CreatedAt,
		&appealCase.UpdatedAt,
		&appealCase.CompletedAt,
	)

	if err != nil {
		return nil, err
	}

	return appealCase, nil
}

// Update updates an appeal case
func (r *CaseRepository) Update(ctx context.Context, appealCase *models.AppealCase) error {
	query := `
		UPDATE appeal_cases SET
			status = $2,
			citation_number = $3,
			violation_type = $4,
			city = $5,
			state = $6,
			facts = $7,
			evidence = $8,
			selected_angles = $9,
			generated_content = $10,
			refine_instructions = $11,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(
		ctx, query,
		appealCase.ID,
		appealCase.Status,
		appealCase.CitationNumber,
		appealCase.ViolationType,
		appealCase.City,
		appealCase.State,
		appealCase.Facts,
		appealCase.Evidence,
		appealCase.SelectedAngles,
		appealCase.GeneratedContent,
		appealCase.RefineInstructions,
	).Scan(&appealCase.UpdatedAt)

	return err
}

// UpdateGeneratedContent stores the assembled appeal document and marks the
// case completed
func (r *CaseRepository) UpdateGeneratedContent(ctx context.Context, id uuid.UUID, content string) error {
	query := `
		UPDATE appeal_cases SET
			generated_content = $2,
			status = $3,
			completed_at = NOW(),
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, content, models.CaseStatusCompleted)
	return err
}

// ListByUserID retrieves all appeal cases for a user
func (r *CaseRepository) ListByUserID(ctx context.Context, userID uuid.UUID, status *models.CaseStatus, limit, offset int) ([]*models.AppealCase, error) {
	query := `
		SELECT id, user_id, status, citation_number, violation_type, city, state,
			facts, evidence, selected_angles, generated_content, refine_instructions,
			created_at, updated_at, completed_at
		FROM appeal_cases
		WHERE user_id = $1`

	args := []interface{}{userID}
	argIndex := 2

	if status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, *status)
		argIndex++
	}

	query += " ORDER BY created_at DESC"

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, limit)
		argIndex++
		if offset > 0 {
			query += fmt.Sprintf(" OFFSET $%d", argIndex)
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cases []*models.AppealCase
	for rows.Next() {
		appealCase := &models.AppealCase{}
		err := rows.Scan(
			&appealCase.ID,
			&appealCase.UserID,
			&appealCase.Status,
			&appealCase.CitationNumber,
			&appealCase.ViolationType,
			&appealCase.City,
			&appealCase.State,
			&appealCase.Facts,
			&appealCase.Evidence,
			&appealCase.SelectedAngles,
			&appealCase.GeneratedContent,
			&appealCase.RefineInstructions,
			&appealCase.CreatedAt,
			&appealCase.UpdatedAt,
			&appealCase.CompletedAt,
		)
		if err != nil {
			return nil, err
		}
		cases = append(cases, appealCase)
	}

	return cases, rows.Err()
}

// Delete deletes an appeal case
func (r *CaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM appeal_cases WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
