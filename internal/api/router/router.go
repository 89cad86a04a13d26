package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hirenow/hirenow-server/internal/api/handler"
)

// Options carries router-level settings.
type Options struct {
	AllowedOrigins []string
}

// SetupRouter configures and returns the Gin router with all routes.
func SetupRouter(deps *handler.Dependencies, opts Options) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(RequestLogger(deps.Logger))
	r.Use(corsMiddleware(opts.AllowedOrigins))

	guard := AccessGuard(deps.Tokens)

	accountHandler := handler.NewAccountHandler(deps)
	listingHandler := handler.NewListingHandler(deps)
	applicationHandler := handler.NewApplicationHandler(deps)

	// Health string
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to HireNow server")
	})

	r.POST("/token", accountHandler.IssueToken)

	jobs := r.Group("/jobs")
	{
		jobs.GET("", listingHandler.List)
		jobs.GET("/:id", listingHandler.Get)
		jobs.POST("", guard, listingHandler.Create)
		jobs.PUT("/:id", listingHandler.Update)
		jobs.DELETE("/:id", listingHandler.Delete)
	}

	r.GET("/posted-jobs", guard, listingHandler.PostedJobs)
	r.PATCH("/count-application-number/:id", listingHandler.IncrementApplied)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", accountHandler.Register)
		authGroup.POST("/me", guard, accountHandler.Me)
	}

	applications := r.Group("/applications", guard)
	{
		applications.GET("", applicationHandler.List)
		applications.GET("/:id", applicationHandler.Get)
		applications.POST("", applicationHandler.Create)
	}

	return r
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(allowedOrigins) > 0 {
		cfg.AllowOrigins = allowedOrigins
		// Credentialed requests require an explicit origin list.
		cfg.AllowCredentials = true
	} else {
		cfg.AllowAllOrigins = true
	}
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "email"}
	cfg.MaxAge = 12 * time.Hour

	return cors.New(cfg)
}
