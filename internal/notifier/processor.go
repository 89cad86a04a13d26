package notifier

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hirenow/hirenow-server/internal/notifier/storage"
)

// process records an employer notification for one submitted application.
func (s *Service) process(ctx context.Context, event Event) error {
	s.logger.Info("Processing application event",
		slog.String("application_id", event.ApplicationID),
		slog.String("job_id", event.JobID),
	)

	listing, err := s.storage.GetListing(ctx, event.JobID)
	if errors.Is(err, storage.ErrListingNotFound) {
		// The listing was deleted between submission and delivery;
		// nothing to notify.
		s.logger.Warn("Listing gone, skipping notification",
			slog.String("application_id", event.ApplicationID),
			slog.String("job_id", event.JobID),
		)
		return nil
	}
	if err != nil {
		return NewRetryableError(err)
	}

	notification := storage.Notification{
		NotificationID: uuid.New().String(),
		ApplicationID:  event.ApplicationID,
		JobID:          event.JobID,
		EmployerEmail:  listing.EmployerEmail,
		JobTitle:       listing.Title,
		JobSeekerEmail: event.JobSeekerEmail,
		CreatedAt:      time.Now(),
	}

	if err := s.storage.InsertNotification(ctx, &notification); err != nil {
		return NewRetryableError(err)
	}

	s.logger.Info("Employer notified",
		slog.String("application_id", event.ApplicationID),
		slog.String("employer_email", listing.EmployerEmail),
		slog.String("job_title", listing.Title),
	)

	return nil
}
