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
	"github.com/hirenow/hirenow-server/internal/auth"
)

// AccountHandler handles registration, self-profile lookup and token
// issuance.
type AccountHandler struct {
	logger *slog.Logger
	tokens *auth.TokenService
	users  UserStore
}

func NewAccountHandler(deps *Dependencies) *AccountHandler {
	return &AccountHandler{
		logger: deps.Logger,
		tokens: deps.Tokens,
		users:  deps.Users,
	}
}

// IssueToken handles POST /token
func (h *AccountHandler) IssueToken(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	token, err := h.tokens.Issue(req.Email)
	if err != nil {
		h.logger.Error("Failed to issue token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// Register handles POST /auth/register
// Registration is idempotent by email: an existing account yields a
// success response with a message, never an error and never a duplicate.
func (h *AccountHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	_, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err == nil {
		c.JSON(http.StatusOK, dto.RegisterResponse{
			Created: false,
			Message: "user already registered",
		})
		return
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		h.logger.Error("Failed to check existing user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	user := model.User{
		UserID:      uuid.New().String(),
		Email:       req.Email,
		Role:        req.Role,
		Name:        req.Name,
		CompanyName: req.CompanyName,
		CreatedAt:   time.Now(),
	}

	if err := h.users.Create(c.Request.Context(), &user); err != nil {
		h.logger.Error("Failed to create user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	h.logger.Info("User registered",
		slog.String("user_id", user.UserID),
		slog.String("role", user.Role),
	)

	c.JSON(http.StatusOK, dto.RegisterResponse{
		Created:    true,
		InsertedID: user.UserID,
	})
}

// Me handles POST /auth/me
// The owner email arrives in the body; the lookup itself uses the verified
// claim email. The internal identifier is excluded from the response.
func (h *AccountHandler) Me(c *gin.Context) {
	var req dto.MeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if !requireSelf(c, req.Email) {
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), claimEmail(c))
	if errors.Is(err, domain.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		h.logger.Error("Failed to get user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user"})
		return
	}

	c.JSON(http.StatusOK, dto.UserDTO{
		Email:       user.Email,
		Role:        user.Role,
		Name:        user.Name,
		CompanyName: user.CompanyName,
		CreatedAt:   user.CreatedAt.Format(time.RFC3339),
	})
}
