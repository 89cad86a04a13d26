package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hirenow/hirenow-server/internal/api/domain"
	"github.com/hirenow/hirenow-server/internal/api/dto"
	"github.com/hirenow/hirenow-server/internal/api/model"
	"github.com/hirenow/hirenow-server/internal/api/storage"
)

// ListingHandler handles job-listing HTTP requests.
type ListingHandler struct {
	logger   *slog.Logger
	listings ListingStore
	users    UserStore
}

func NewListingHandler(deps *Dependencies) *ListingHandler {
	return &ListingHandler{
		logger:   deps.Logger,
		listings: deps.Listings,
		users:    deps.Users,
	}
}

// List handles GET /jobs
// Searches, filters and paginates listings. The response carries the
// unpaginated match count and the distinct employer company names
// alongside the page of jobs.
func (h *ListingHandler) List(c *gin.Context) {
	var req dto.ListListingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Error("Invalid query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	query := buildListingQuery(req)

	listings, total, err := h.listings.List(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("Failed to list jobs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list jobs"})
		return
	}

	companyNames, err := h.users.CompanyNames(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list company names", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list jobs"})
		return
	}

	jobs := make([]dto.ListingDTO, len(listings))
	for i, listing := range listings {
		jobs[i] = listingToDTO(listing)
	}

	c.JSON(http.StatusOK, dto.ListListingsResponse{
		Jobs:         jobs,
		TotalCount:   total,
		CompanyNames: companyNames,
	})
}

// Get handles GET /jobs/:id
func (h *ListingHandler) Get(c *gin.Context) {
	listingID, ok := h.listingID(c)
	if !ok {
		return
	}

	listing, err := h.listings.GetByID(c.Request.Context(), listingID)
	if errors.Is(err, domain.ErrListingNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to get job", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get job"})
		return
	}

	c.JSON(http.StatusOK, listingToDTO(*listing))
}

// Create handles POST /jobs
// Stamps the server-assigned fields: postedAt, applied and jobStatus are
// never taken from the client.
func (h *ListingHandler) Create(c *gin.Context) {
	var req dto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	listing := model.JobListing{
		ListingID:     uuid.New().String(),
		Title:         req.Title,
		Salary:        int64(req.Salary),
		Location:      req.Location,
		Description:   req.Description,
		CompanyName:   req.Profile.CompanyName,
		EmployerEmail: req.Profile.Email,
		PostedAt:      time.Now(),
		Applied:       0,
		JobStatus:     domain.ListingStatusOpen,
	}

	if err := h.listings.Create(c.Request.Context(), &listing); err != nil {
		h.logger.Error("Failed to create job", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job"})
		return
	}

	h.logger.Info("Job listing created",
		slog.String("listing_id", listing.ListingID),
		slog.String("company", listing.CompanyName),
	)

	c.JSON(http.StatusOK, dto.InsertResult{InsertedID: listing.ListingID})
}

// Update handles PUT /jobs/:id
// Merges the supplied fields over the stored listing and reports the
// store's native matched/modified counts.
func (h *ListingHandler) Update(c *gin.Context) {
	listingID, ok := h.listingID(c)
	if !ok {
		return
	}

	var req dto.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	upd := storage.ListingUpdate{
		Title:       req.Title,
		Location:    req.Location,
		Description: req.Description,
		JobStatus:   req.JobStatus,
	}
	if req.Salary != nil {
		salary := int64(*req.Salary)
		upd.Salary = &salary
	}
	if req.Profile != nil {
		upd.CompanyName = &req.Profile.CompanyName
		upd.EmployerEmail = &req.Profile.Email
	}

	counts, err := h.listings.Update(c.Request.Context(), listingID, upd)
	if err != nil {
		h.logger.Error("Failed to update job", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update job"})
		return
	}

	c.JSON(http.StatusOK, dto.UpdateResult{
		MatchedCount:  counts.Matched,
		ModifiedCount: counts.Modified,
	})
}

// Delete handles DELETE /jobs/:id
// Deleting a missing id reports a zero deleted count, not an error.
func (h *ListingHandler) Delete(c *gin.Context) {
	listingID, ok := h.listingID(c)
	if !ok {
		return
	}

	deleted, err := h.listings.Delete(c.Request.Context(), listingID)
	if err != nil {
		h.logger.Error("Failed to delete job", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete job"})
		return
	}

	c.JSON(http.StatusOK, dto.DeleteResult{DeletedCount: deleted})
}

// IncrementApplied handles PATCH /count-application-number/:id
func (h *ListingHandler) IncrementApplied(c *gin.Context) {
	listingID, ok := h.listingID(c)
	if !ok {
		return
	}

	matched, err := h.listings.IncrementApplied(c.Request.Context(), listingID)
	if err != nil {
		h.logger.Error("Failed to increment applied count", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to increment applied count"})
		return
	}

	c.JSON(http.StatusOK, dto.UpdateResult{MatchedCount: matched, ModifiedCount: matched})
}

// PostedJobs handles GET /posted-jobs
// The owner email arrives in the "email" header; the listing query itself
// is always scoped by the verified claim email.
func (h *ListingHandler) PostedJobs(c *gin.Context) {
	if !requireSelf(c, c.GetHeader("email")) {
		return
	}

	listings, err := h.listings.ListByEmployer(c.Request.Context(), claimEmail(c))
	if err != nil {
		h.logger.Error("Failed to list posted jobs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list posted jobs"})
		return
	}

	jobs := make([]dto.ListingDTO, len(listings))
	for i, listing := range listings {
		jobs[i] = listingToDTO(listing)
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// listingID validates the :id path parameter; a malformed id fails with
// 400 before any store access.
func (h *ListingHandler) listingID(c *gin.Context) (string, bool) {
	listingID := c.Param("id")
	if _, err := uuid.Parse(listingID); err != nil {
		h.logger.Error("Invalid listing id", slog.String("id", listingID), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return "", false
	}
	return listingID, true
}

func listingToDTO(listing model.JobListing) dto.ListingDTO {
	return dto.ListingDTO{
		ID:          listing.ListingID,
		Title:       listing.Title,
		Salary:      dto.Salary(listing.Salary),
		Location:    listing.Location,
		Description: listing.Description,
		Profile: dto.EmployerProfileDTO{
			CompanyName: listing.CompanyName,
			Email:       listing.EmployerEmail,
		},
		PostedAt:  listing.PostedAt.Format(time.RFC3339),
		Applied:   listing.Applied,
		JobStatus: listing.JobStatus,
	}
}
