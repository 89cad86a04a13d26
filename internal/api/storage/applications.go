package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hirenow/hirenow-server/internal/api/domain"
	"github.com/hirenow/hirenow-server/internal/api/model"
)

const applicationColumns = `
	application_id, job_id, job_seeker_email, status, applied_at, details`

// ApplicationStorage persists job applications.
type ApplicationStorage struct {
	db *sqlx.DB
}

func NewApplicationStorage(db *sqlx.DB) *ApplicationStorage {
	return &ApplicationStorage{db: db}
}

func (s *ApplicationStorage) Create(ctx context.Context, app *model.Application) error {
	query := `
		INSERT INTO applications (
			application_id, job_id, job_seeker_email, status, applied_at, details
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		app.ApplicationID,
		app.JobID,
		app.JobSeekerEmail,
		app.Status,
		app.AppliedAt,
		app.Details,
	)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

// ListByEmail returns the applications submitted under the given email,
// newest first. Callers pass the verified claim email, never client input.
func (s *ApplicationStorage) ListByEmail(ctx context.Context, jobSeekerEmail string) ([]model.Application, error) {
	query := "SELECT " + applicationColumns + ` FROM applications
		WHERE job_seeker_email = $1
		ORDER BY applied_at DESC, application_id DESC`

	apps := []model.Application{}
	if err := s.db.SelectContext(ctx, &apps, query, jobSeekerEmail); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	return apps, nil
}

func (s *ApplicationStorage) GetByID(ctx context.Context, applicationID string) (*model.Application, error) {
	var app model.Application
	query := "SELECT " + applicationColumns + " FROM applications WHERE application_id = $1"

	err := s.db.GetContext(ctx, &app, query, applicationID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrApplicationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	return &app, nil
}
