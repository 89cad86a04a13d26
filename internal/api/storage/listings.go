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

const listingColumns = `
	listing_id, title, salary, location, description,
	company_name, employer_email, posted_at, applied, job_status`

// ListingStorage persists job listings.
type ListingStorage struct {
	db *sqlx.DB
}

func NewListingStorage(db *sqlx.DB) *ListingStorage {
	return &ListingStorage{db: db}
}

// List returns the page of listings matching the query together with the
// unpaginated count of matches.
func (s *ListingStorage) List(ctx context.Context, q ListingQuery) ([]model.JobListing, int64, error) {
	where, args := buildListingWhere(q)

	var total int64
	countQuery := "SELECT COUNT(*) FROM job_listings" + where
	if err := s.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	query := "SELECT " + listingColumns + " FROM job_listings" + where

	// Stable order for pagination; the "sort" parameter filters by
	// location and never reorders.
	query += " ORDER BY posted_at DESC, listing_id DESC"

	argIdx := len(args) + 1
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, q.Limit, q.Offset)
	}

	listings := []model.JobListing{}
	if err := s.db.SelectContext(ctx, &listings, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list listings: %w", err)
	}

	return listings, total, nil
}

func (s *ListingStorage) GetByID(ctx context.Context, listingID string) (*model.JobListing, error) {
	var listing model.JobListing
	query := "SELECT " + listingColumns + " FROM job_listings WHERE listing_id = $1"

	err := s.db.GetContext(ctx, &listing, query, listingID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrListingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	return &listing, nil
}

func (s *ListingStorage) Create(ctx context.Context, listing *model.JobListing) error {
	query := `
		INSERT INTO job_listings (
			listing_id, title, salary, location, description,
			company_name, employer_email, posted_at, applied, job_status
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		listing.ListingID,
		listing.Title,
		listing.Salary,
		listing.Location,
		listing.Description,
		listing.CompanyName,
		listing.EmployerEmail,
		listing.PostedAt,
		listing.Applied,
		listing.JobStatus,
	)
	if err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}

	return nil
}

// ListingUpdate holds the fields of a partial update; nil fields are left
// untouched.
type ListingUpdate struct {
	Title       *string
	Salary      *int64
	Location    *string
	Description *string
	JobStatus   *string
	CompanyName *string
	// EmployerEmail follows the nested profile when one is supplied.
	EmployerEmail *string
}

// UpdateCounts mirrors the store's native update descriptor. PostgreSQL
// reports one count for an UPDATE, so both fields carry the same value.
type UpdateCounts struct {
	Matched  int64
	Modified int64
}

// Update merges the supplied fields over the stored listing. Updating a
// missing id yields zero counts, not an error.
func (s *ListingStorage) Update(ctx context.Context, listingID string, upd ListingUpdate) (UpdateCounts, error) {
	set := ""
	args := []interface{}{}
	argIdx := 1

	add := func(column string, value interface{}) {
		if set != "" {
			set += ", "
		}
		set += fmt.Sprintf("%s = $%d", column, argIdx)
		args = append(args, value)
		argIdx++
	}

	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Salary != nil {
		add("salary", *upd.Salary)
	}
	if upd.Location != nil {
		add("location", *upd.Location)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.JobStatus != nil {
		add("job_status", *upd.JobStatus)
	}
	if upd.CompanyName != nil {
		add("company_name", *upd.CompanyName)
	}
	if upd.EmployerEmail != nil {
		add("employer_email", *upd.EmployerEmail)
	}

	if set == "" {
		// Nothing to merge; report whether the listing exists.
		var exists int64
		err := s.db.GetContext(ctx, &exists, "SELECT COUNT(*) FROM job_listings WHERE listing_id = $1", listingID)
		if err != nil {
			return UpdateCounts{}, fmt.Errorf("failed to check listing: %w", err)
		}
		return UpdateCounts{Matched: exists, Modified: 0}, nil
	}

	query := fmt.Sprintf("UPDATE job_listings SET %s WHERE listing_id = $%d", set, argIdx)
	args = append(args, listingID)

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return UpdateCounts{}, fmt.Errorf("failed to update listing: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return UpdateCounts{}, fmt.Errorf("failed to read update result: %w", err)
	}

	return UpdateCounts{Matched: affected, Modified: affected}, nil
}

// Delete removes a listing and returns the deleted count; deleting a
// missing id returns zero, not an error.
func (s *ListingStorage) Delete(ctx context.Context, listingID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM job_listings WHERE listing_id = $1", listingID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete listing: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read delete result: %w", err)
	}

	return deleted, nil
}

// IncrementApplied bumps the applied counter by one in a single UPDATE so
// concurrent submissions cannot lose updates.
func (s *ListingStorage) IncrementApplied(ctx context.Context, listingID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, "UPDATE job_listings SET applied = applied + 1 WHERE listing_id = $1", listingID)
	if err != nil {
		return 0, fmt.Errorf("failed to increment applied count: %w", err)
	}

	matched, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read increment result: %w", err)
	}

	return matched, nil
}

// ListByEmployer returns the listings posted under the given employer
// email, newest first.
func (s *ListingStorage) ListByEmployer(ctx context.Context, employerEmail string) ([]model.JobListing, error) {
	query := "SELECT " + listingColumns + ` FROM job_listings
		WHERE employer_email = $1
		ORDER BY posted_at DESC, listing_id DESC`

	listings := []model.JobListing{}
	if err := s.db.SelectContext(ctx, &listings, query, employerEmail); err != nil {
		return nil, fmt.Errorf("failed to list posted jobs: %w", err)
	}

	return listings, nil
}
