package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hirenow/hirenow-server/internal/api/model"
	"github.com/hirenow/hirenow-server/internal/api/storage"
	"github.com/hirenow/hirenow-server/internal/auth"
)

// ListingStore is the listing persistence surface handlers depend on.
type ListingStore interface {
	List(ctx context.Context, q storage.ListingQuery) ([]model.JobListing, int64, error)
	GetByID(ctx context.Context, listingID string) (*model.JobListing, error)
	Create(ctx context.Context, listing *model.JobListing) error
	Update(ctx context.Context, listingID string, upd storage.ListingUpdate) (storage.UpdateCounts, error)
	Delete(ctx context.Context, listingID string) (int64, error)
	IncrementApplied(ctx context.Context, listingID string) (int64, error)
	ListByEmployer(ctx context.Context, employerEmail string) ([]model.JobListing, error)
}

// UserStore is the account persistence surface handlers depend on.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	CompanyNames(ctx context.Context) ([]string, error)
}

// ApplicationStore is the application persistence surface handlers depend on.
type ApplicationStore interface {
	Create(ctx context.Context, app *model.Application) error
	ListByEmail(ctx context.Context, jobSeekerEmail string) ([]model.Application, error)
	GetByID(ctx context.Context, applicationID string) (*model.Application, error)
}

// EventPublisher publishes application-submitted events. A nil publisher
// disables publishing.
type EventPublisher interface {
	PublishWithRetry(ctx context.Context, body []byte, contentType string) error
}

// Dependencies holds everything the handlers need.
type Dependencies struct {
	Logger       *slog.Logger
	Tokens       *auth.TokenService
	Listings     ListingStore
	Users        UserStore
	Applications ApplicationStore
	Events       EventPublisher
}

// claimEmail returns the verified email the access guard attached to the
// request context.
func claimEmail(c *gin.Context) string {
	return c.GetString(auth.ContextEmailKey)
}

// requireSelf enforces the ownership assertion and writes the 403 response
// on mismatch. It reports whether the request may proceed.
func requireSelf(c *gin.Context, suppliedEmail string) bool {
	if err := auth.RequireSelf(claimEmail(c), suppliedEmail); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
		return false
	}
	return true
}
