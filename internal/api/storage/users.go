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

// UserStorage persists accounts.
type UserStorage struct {
	db *sqlx.DB
}

func NewUserStorage(db *sqlx.DB) *UserStorage {
	return &UserStorage{db: db}
}

// GetByEmail returns the account for the email, or ErrUserNotFound.
// Uniqueness per email is enforced by the registration pre-check that
// calls this first, not by a store constraint.
func (s *UserStorage) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	query := `
		SELECT user_id, email, role, name, company_name, created_at
		FROM users
		WHERE email = $1
	`

	err := s.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (s *UserStorage) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (user_id, email, role, name, company_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		user.UserID,
		user.Email,
		user.Role,
		user.Name,
		user.CompanyName,
		user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// CompanyNames returns the distinct company names across all employer
// accounts. The list is independent of any listing filters.
func (s *UserStorage) CompanyNames(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT company_name
		FROM users
		WHERE role = $1 AND company_name <> ''
		ORDER BY company_name
	`

	names := []string{}
	if err := s.db.SelectContext(ctx, &names, query, domain.RoleEmployer); err != nil {
		return nil, fmt.Errorf("failed to list company names: %w", err)
	}

	return names, nil
}
