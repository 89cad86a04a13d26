package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hirenow/hirenow-server/internal/api/domain"
	"github.com/hirenow/hirenow-server/internal/api/dto"
	"github.com/hirenow/hirenow-server/internal/api/model"
)

// ApplicationHandler handles job-application HTTP requests. Lookups are
// always scoped to the verified caller identity.
type ApplicationHandler struct {
	logger       *slog.Logger
	applications ApplicationStore
	events       EventPublisher
}

func NewApplicationHandler(deps *Dependencies) *ApplicationHandler {
	return &ApplicationHandler{
		logger:       deps.Logger,
		applications: deps.Applications,
		events:       deps.Events,
	}
}

// SubmittedEvent is the message published for each accepted application.
type SubmittedEvent struct {
	ApplicationID  string    `json:"application_id"`
	JobID          string    `json:"job_id"`
	JobSeekerEmail string    `json:"job_seeker_email"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// Create handles POST /applications
// The applicant email always comes from the verified token; a
// client-supplied value is discarded. Status and date are server-assigned.
func (h *ApplicationHandler) Create(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	jobID, _ := payload["jobId"].(string)

	// Strip fields the server owns before storing the rest verbatim.
	delete(payload, "jobId")
	delete(payload, "jobSeekerEmail")
	delete(payload, "status")
	delete(payload, "date")

	details, err := json.Marshal(payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	app := model.Application{
		ApplicationID:  uuid.New().String(),
		JobID:          jobID,
		JobSeekerEmail: claimEmail(c),
		Status:         domain.ApplicationStatusApplied,
		AppliedAt:      time.Now(),
		Details:        details,
	}

	if err := h.applications.Create(c.Request.Context(), &app); err != nil {
		h.logger.Error("Failed to create application", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create application"})
		return
	}

	h.publishSubmitted(c, &app)

	c.JSON(http.StatusOK, dto.InsertResult{InsertedID: app.ApplicationID})
}

// publishSubmitted emits the application-submitted event. Publishing is
// best effort; a broker failure never fails the submission.
func (h *ApplicationHandler) publishSubmitted(c *gin.Context, app *model.Application) {
	if h.events == nil {
		return
	}

	event := SubmittedEvent{
		ApplicationID:  app.ApplicationID,
		JobID:          app.JobID,
		JobSeekerEmail: app.JobSeekerEmail,
		SubmittedAt:    app.AppliedAt,
	}

	body, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Failed to encode application event", slog.String("error", err.Error()))
		return
	}

	if err := h.events.PublishWithRetry(c.Request.Context(), body, "application/json"); err != nil {
		h.logger.Error("Failed to publish application event",
			slog.String("application_id", app.ApplicationID),
			slog.String("error", err.Error()),
		)
	}
}

// List handles GET /applications
// Queries by the verified claim email directly; the optional "email"
// header only feeds the ownership assertion.
func (h *ApplicationHandler) List(c *gin.Context) {
	if supplied := c.GetHeader("email"); supplied != "" {
		if !requireSelf(c, supplied) {
			return
		}
	}

	apps, err := h.applications.ListByEmail(c.Request.Context(), claimEmail(c))
	if err != nil {
		h.logger.Error("Failed to list applications", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list applications"})
		return
	}

	result := make([]dto.ApplicationDTO, len(apps))
	for i, app := range apps {
		result[i] = applicationToDTO(app)
	}

	c.JSON(http.StatusOK, dto.ListApplicationsResponse{Applications: result})
}

// Get handles GET /applications/:id
// The ownership check runs before the application is returned.
func (h *ApplicationHandler) Get(c *gin.Context) {
	applicationID := c.Param("id")
	if _, err := uuid.Parse(applicationID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid UUID"})
		return
	}

	app, err := h.applications.GetByID(c.Request.Context(), applicationID)
	if errors.Is(err, domain.ErrApplicationNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to get application", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get application"})
		return
	}

	if !requireSelf(c, app.JobSeekerEmail) {
		return
	}

	c.JSON(http.StatusOK, applicationToDTO(*app))
}

func applicationToDTO(app model.Application) dto.ApplicationDTO {
	return dto.ApplicationDTO{
		ID:             app.ApplicationID,
		JobID:          app.JobID,
		JobSeekerEmail: app.JobSeekerEmail,
		Status:         app.Status,
		Date:           app.AppliedAt.Format(time.RFC3339),
		Details:        json.RawMessage(app.Details),
	}
}
