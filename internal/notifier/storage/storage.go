package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrListingNotFound = errors.New("job listing not found")

// Listing is the slice of a job listing the notifier needs.
type Listing struct {
	ListingID     string `db:"listing_id"`
	Title         string `db:"title"`
	EmployerEmail string `db:"employer_email"`
}

// Notification is one employer notification row.
type Notification struct {
	NotificationID string    `db:"notification_id"`
	ApplicationID  string    `db:"application_id"`
	JobID          string    `db:"job_id"`
	EmployerEmail  string    `db:"employer_email"`
	JobTitle       string    `db:"job_title"`
	JobSeekerEmail string    `db:"job_seeker_email"`
	CreatedAt      time.Time `db:"created_at"`
}

type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) GetListing(ctx context.Context, listingID string) (*Listing, error) {
	var listing Listing
	query := `
		SELECT listing_id, title, employer_email
		FROM job_listings
		WHERE listing_id = $1
	`

	err := s.db.GetContext(ctx, &listing, query, listingID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrListingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	return &listing, nil
}

// InsertNotification records a notification. One notification per
// application: redelivered events hit the unique application_id and are
// ignored.
func (s *Storage) InsertNotification(ctx context.Context, n *Notification) error {
	query := `
		INSERT INTO employer_notifications (
			notification_id, application_id, job_id,
			employer_email, job_title, job_seeker_email, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (application_id) DO NOTHING
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		n.NotificationID,
		n.ApplicationID,
		n.JobID,
		n.EmployerEmail,
		n.JobTitle,
		n.JobSeekerEmail,
		n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	return nil
}
