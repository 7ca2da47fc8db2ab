package repository

import (
	"context"
	"time"

	"parkappeal-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AppealJobRepository handles database operations for appeal jobs
type AppealJobRepository struct {
	db *pgxpool.Pool
}

// NewAppealJobRepository creates a new appeal job repository
func NewAppealJobRepository(db *pgxpool.Pool) *AppealJobRepository {
	return &AppealJobRepository{db: db}
}

// Create creates a new appeal job
func (r *AppealJobRepository) Create(ctx context.Context, job *models.AppealJob) error {
	query := `
		INSERT INTO appeal_jobs (
			case_id, status, current_step, steps, error_message
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		job.CaseID,
		job.Status,
		job.CurrentStep,
		job.Steps,
		job.ErrorMessage,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)

	return err
}

// GetByID retrieves an appeal job by ID
func (r *AppealJobRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AppealJob, error) {
	job := &models.AppealJob{}
	query := `
		SELECT id, case_id, status, current_step, steps, error_message,
			created_at, updated_at, completed_at
		FROM appeal_jobs
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID,
		&job.CaseID,
		&job.Status,
		&job.CurrentStep,
		&job.Steps,
		&job.ErrorMessage,
		&job.CreatedAt,
		&job.UpdatedAt,
		&job.CompletedAt,
	)

	if err != nil {
		return nil, err
	}

	if job.Steps == nil {
		job.Steps = make(models.AppealSteps, 0)
	}

	return job, nil
}

// GetByCaseID retrieves the latest appeal job for a case
func (r *AppealJobRepository) GetByCaseID(ctx context.Context, caseID uuid.UUID) (*models.AppealJob, error) {
	job := &models.AppealJob{}
	query := `
		SELECT id, case_id, status, current_step, steps, error_message,
			created_at, updated_at, completed_at
		FROM appeal_jobs
		WHERE case_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	err := r.db.QueryRow(ctx, query, caseID).Scan(
		&job.ID,
		&job.CaseID,
		&job.Status,
		&job.CurrentStep,
		&job.Steps,
		&job.ErrorMessage,
		&job.CreatedAt,
		&job.UpdatedAt,
		&job.CompletedAt,
	)

	if err != nil {
		return nil, err
	}

	if job.Steps == nil {
		job.Steps = make(models.AppealSteps, 0)
	}

	return job, nil
}

// UpdateStatus updates the status of an appeal job
func (r *AppealJobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.AppealJobStatus) error {
	query := `
		UPDATE appeal_jobs SET
			status = $2,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, status)
	return err
}

// UpdateProgress updates the progress of an appeal job
func (r *AppealJobRepository) UpdateProgress(ctx context.Context, id uuid.UUID, currentStep string, steps models.AppealSteps) error {
	query := `
		UPDATE appeal_jobs SET
			current_step = $2,
			steps = $3,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, currentStep, steps)
	return err
}

// Complete marks an appeal job as completed
func (r *AppealJobRepository) Complete(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	query := `
		UPDATE appeal_jobs SET
			status = $2,
			completed_at = $3,
			updated_at = $3
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, models.JobStatusCompleted, now)
	return err
}

// Fail marks an appeal job as failed
func (r *AppealJobRepository) Fail(ctx context.Context, id uuid.UUID, errorMessage string) error {
	query := `
		UPDATE appeal_jobs SET
			status = $2,
			error_message = $3,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, models.JobStatusFailed, errorMessage)
	return err
}
