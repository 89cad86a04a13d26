package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirenow/hirenow-server/internal/api/domain"
	"github.com/hirenow/hirenow-server/internal/api/dto"
	"github.com/hirenow/hirenow-server/internal/api/model"
)

func seedListing(store *fakeListingStore, title, employerEmail string) model.JobListing {
	listing := model.JobListing{
		ListingID:     uuid.New().String(),
		Title:         title,
		Salary:        60000,
		Location:      domain.LocationRemote,
		Description:   "desc",
		CompanyName:   "Acme",
		EmployerEmail: employerEmail,
		PostedAt:      time.Now().Add(-time.Hour),
		Applied:       3,
		JobStatus:     domain.ListingStatusOpen,
	}
	store.listings[listing.ListingID] = listing
	return listing
}

func newListingHandler(listings *fakeListingStore, users *fakeUserStore) *ListingHandler {
	return NewListingHandler(&Dependencies{
		Logger:   discardLogger(),
		Listings: listings,
		Users:    users,
	})
}

func TestListingHandler_List(t *testing.T) {
	listings := newFakeListingStore()
	users := newFakeUserStore()
	users.companyNames = []string{"Acme", "Globex"}
	seedListing(listings, "Backend Engineer", "boss@acme.dev")

	h := newListingHandler(listings, users)
	r := newTestEngine()
	r.GET("/jobs", h.List)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/jobs?search=engineer&salaryRange=40000-90000&sort=Remote&page=0&size=10", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ListListingsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.TotalCount)
	require.Len(t, resp.Jobs, 1)
	assert.Equal(t, "Backend Engineer", resp.Jobs[0].Title)
	assert.Equal(t, "Acme", resp.Jobs[0].Profile.CompanyName)
	assert.Equal(t, []string{"Acme", "Globex"}, resp.CompanyNames)

	// The raw parameters reach the store as a structured predicate.
	assert.Equal(t, "engineer", listings.lastQuery.Search)
	require.NotNil(t, listings.lastQuery.MinSalary)
	assert.Equal(t, int64(40000), *listings.lastQuery.MinSalary)
	assert.Equal(t, domain.LocationRemote, listings.lastQuery.Location)
	assert.Equal(t, 10, listings.lastQuery.Limit)
	assert.Equal(t, 0, listings.lastQuery.Offset)
}

func TestListingHandler_Get(t *testing.T) {
	listings := newFakeListingStore()
	listing := seedListing(listings, "Backend Engineer", "boss@acme.dev")

	h := newListingHandler(listings, newFakeUserStore())
	r := newTestEngine()
	r.GET("/jobs/:id", h.Get)

	t.Run("found", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jobs/"+listing.ListingID, nil))

		require.Equal(t, http.StatusOK, w.Code)
		var got dto.ListingDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, listing.ListingID, got.ID)
		assert.Equal(t, dto.Salary(60000), got.Salary)
	})

	t.Run("absent id is 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jobs/"+uuid.New().String(), nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id is 400 before store access", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jobs/not-a-uuid", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListingHandler_Create(t *testing.T) {
	listings := newFakeListingStore()
	h := newListingHandler(listings, newFakeUserStore())
	r := newTestEngine()
	r.POST("/jobs", h.Create)

	body := `{
		"title": "Backend Engineer",
		"salary": "70000",
		"location": "Remote",
		"description": "Build things",
		"profile": {"companyName": "Acme", "email": "boss@acme.dev"},
		"applied": 99,
		"jobStatus": "Closed"
	}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/jobs", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.InsertResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.InsertedID)

	stored, ok := listings.listings[resp.InsertedID]
	require.True(t, ok)
	// Server-assigned fields win over anything the client sent.
	assert.Equal(t, 0, stored.Applied)
	assert.Equal(t, domain.ListingStatusOpen, stored.JobStatus)
	assert.False(t, stored.PostedAt.IsZero())
	// The string salary is coerced to a number.
	assert.Equal(t, int64(70000), stored.Salary)
	assert.Equal(t, "boss@acme.dev", stored.EmployerEmail)
}

func TestListingHandler_Create_MissingTitle(t *testing.T) {
	h := newListingHandler(newFakeListingStore(), newFakeUserStore())
	r := newTestEngine()
	r.POST("/jobs", h.Create)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/jobs", bytes.NewBufferString(`{"salary": 100}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListingHandler_Update(t *testing.T) {
	listings := newFakeListingStore()
	listing := seedListing(listings, "Backend Engineer", "boss@acme.dev")

	h := newListingHandler(listings, newFakeUserStore())
	r := newTestEngine()
	r.PUT("/jobs/:id", h.Update)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/jobs/"+listing.ListingID, bytes.NewBufferString(`{"jobStatus": "Closed"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.UpdateResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.MatchedCount)
	assert.Equal(t, int64(1), resp.ModifiedCount)

	// Only the supplied field changed.
	stored := listings.listings[listing.ListingID]
	assert.Equal(t, "Closed", stored.JobStatus)
	assert.Equal(t, "Backend Engineer", stored.Title)
}

func TestListingHandler_Update_AbsentID(t *testing.T) {
	h := newListingHandler(newFakeListingStore(), newFakeUserStore())
	r := newTestEngine()
	r.PUT("/jobs/:id", h.Update)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/jobs/"+uuid.New().String(), bytes.NewBufferString(`{"title": "x"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.UpdateResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(0), resp.MatchedCount)
	assert.Equal(t, int64(0), resp.ModifiedCount)
}

func TestListingHandler_Delete(t *testing.T) {
	listings := newFakeListingStore()
	listing := seedListing(listings, "Backend Engineer", "boss@acme.dev")

	h := newListingHandler(listings, newFakeUserStore())
	r := newTestEngine()
	r.DELETE("/jobs/:id", h.Delete)

	t.Run("existing", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/jobs/"+listing.ListingID, nil))

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.DeleteResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(1), resp.DeletedCount)
	})

	t.Run("absent id reports zero count", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/jobs/"+uuid.New().String(), nil))

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.DeleteResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(0), resp.DeletedCount)
	})
}

func TestListingHandler_IncrementApplied(t *testing.T) {
	listings := newFakeListingStore()
	listing := seedListing(listings, "Backend Engineer", "boss@acme.dev")

	h := newListingHandler(listings, newFakeUserStore())
	r := newTestEngine()
	r.PATCH("/count-application-number/:id", h.IncrementApplied)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/count-application-number/"+listing.ListingID, nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4, listings.listings[listing.ListingID].Applied)
}

func TestListingHandler_PostedJobs(t *testing.T) {
	listings := newFakeListingStore()
	seedListing(listings, "Backend Engineer", "boss@acme.dev")
	seedListing(listings, "Frontend Engineer", "other@corp.dev")

	h := newListingHandler(listings, newFakeUserStore())

	t.Run("scoped to the claim email", func(t *testing.T) {
		r := newTestEngine()
		r.GET("/posted-jobs", withClaim("boss@acme.dev"), h.PostedJobs)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/posted-jobs", nil)
		req.Header.Set("email", "boss@acme.dev")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "boss@acme.dev", listings.lastEmployerEmail)

		var resp struct {
			Jobs []dto.ListingDTO `json:"jobs"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Jobs, 1)
		assert.Equal(t, "Backend Engineer", resp.Jobs[0].Title)
	})

	t.Run("mismatched header is forbidden", func(t *testing.T) {
		r := newTestEngine()
		r.GET("/posted-jobs", withClaim("boss@acme.dev"), h.PostedJobs)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/posted-jobs", nil)
		req.Header.Set("email", "other@corp.dev")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "forbidden access")
	})
}
