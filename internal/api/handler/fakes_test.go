package handler

import (
	"context"
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/hirenow/hirenow-server/internal/api/domain"
	"github.com/hirenow/hirenow-server/internal/api/model"
	"github.com/hirenow/hirenow-server/internal/api/storage"
	"github.com/hirenow/hirenow-server/internal/auth"
)

// fakeListingStore is an in-memory ListingStore for handler tests.
type fakeListingStore struct {
	listings map[string]model.JobListing

	lastQuery         storage.ListingQuery
	lastEmployerEmail string
	err               error
}

func newFakeListingStore() *fakeListingStore {
	return &fakeListingStore{listings: make(map[string]model.JobListing)}
}

func (f *fakeListingStore) List(_ context.Context, q storage.ListingQuery) ([]model.JobListing, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	f.lastQuery = q
	var out []model.JobListing
	for _, listing := range f.listings {
		out = append(out, listing)
	}
	return out, int64(len(out)), nil
}

func (f *fakeListingStore) GetByID(_ context.Context, listingID string) (*model.JobListing, error) {
	if f.err != nil {
		return nil, f.err
	}
	listing, ok := f.listings[listingID]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	return &listing, nil
}

func (f *fakeListingStore) Create(_ context.Context, listing *model.JobListing) error {
	if f.err != nil {
		return f.err
	}
	f.listings[listing.ListingID] = *listing
	return nil
}

func (f *fakeListingStore) Update(_ context.Context, listingID string, upd storage.ListingUpdate) (storage.UpdateCounts, error) {
	if f.err != nil {
		return storage.UpdateCounts{}, f.err
	}
	listing, ok := f.listings[listingID]
	if !ok {
		return storage.UpdateCounts{}, nil
	}
	modified := int64(0)
	if upd.Title != nil && *upd.Title != listing.Title {
		listing.Title = *upd.Title
		modified = 1
	}
	if upd.Salary != nil && *upd.Salary != listing.Salary {
		listing.Salary = *upd.Salary
		modified = 1
	}
	if upd.JobStatus != nil && *upd.JobStatus != listing.JobStatus {
		listing.JobStatus = *upd.JobStatus
		modified = 1
	}
	f.listings[listingID] = listing
	return storage.UpdateCounts{Matched: 1, Modified: modified}, nil
}

func (f *fakeListingStore) Delete(_ context.Context, listingID string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if _, ok := f.listings[listingID]; !ok {
		return 0, nil
	}
	delete(f.listings, listingID)
	return 1, nil
}

func (f *fakeListingStore) IncrementApplied(_ context.Context, listingID string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	listing, ok := f.listings[listingID]
	if !ok {
		return 0, nil
	}
	listing.Applied++
	f.listings[listingID] = listing
	return 1, nil
}

func (f *fakeListingStore) ListByEmployer(_ context.Context, employerEmail string) ([]model.JobListing, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastEmployerEmail = employerEmail
	var out []model.JobListing
	for _, listing := range f.listings {
		if listing.EmployerEmail == employerEmail {
			out = append(out, listing)
		}
	}
	return out, nil
}

// fakeUserStore is an in-memory UserStore keyed by email.
type fakeUserStore struct {
	users        map[string]model.User
	companyNames []string
	err          error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]model.User)}
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func (f *fakeUserStore) Create(_ context.Context, user *model.User) error {
	if f.err != nil {
		return f.err
	}
	f.users[user.Email] = *user
	return nil
}

func (f *fakeUserStore) CompanyNames(_ context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.companyNames, nil
}

// fakeApplicationStore is an in-memory ApplicationStore.
type fakeApplicationStore struct {
	apps map[string]model.Application

	lastListedEmail string
	err             error
}

func newFakeApplicationStore() *fakeApplicationStore {
	return &fakeApplicationStore{apps: make(map[string]model.Application)}
}

func (f *fakeApplicationStore) Create(_ context.Context, app *model.Application) error {
	if f.err != nil {
		return f.err
	}
	f.apps[app.ApplicationID] = *app
	return nil
}

func (f *fakeApplicationStore) ListByEmail(_ context.Context, jobSeekerEmail string) ([]model.Application, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastListedEmail = jobSeekerEmail
	var out []model.Application
	for _, app := range f.apps {
		if app.JobSeekerEmail == jobSeekerEmail {
			out = append(out, app)
		}
	}
	return out, nil
}

func (f *fakeApplicationStore) GetByID(_ context.Context, applicationID string) (*model.Application, error) {
	if f.err != nil {
		return nil, f.err
	}
	app, ok := f.apps[applicationID]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	return &app, nil
}

// fakePublisher records published event bodies.
type fakePublisher struct {
	published [][]byte
	err       error
}

func (f *fakePublisher) PublishWithRetry(_ context.Context, body []byte, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, body)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// withClaim returns a middleware that attaches a verified claim email,
// standing in for the access guard.
func withClaim(email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(auth.ContextEmailKey, email)
		c.Next()
	}
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}
