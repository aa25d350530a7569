package v1

import (
	"net/http"
	"time"

	"go-matching-backend/config"
	"go-matching-backend/internal/delivery/http/middleware"
	"go-matching-backend/internal/delivery/http/response"
	"go-matching-backend/internal/domain"
	"go-matching-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	MatchUC      domain.MatchUsecase
	HealthUC     domain.HealthUsecase // optional, health reports only the process when nil
	JWKSProvider *auth.Provider
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		if deps.HealthUC == nil {
			response.Success(c, http.StatusOK, "System operational", nil)
			return
		}
		status, err := deps.HealthUC.Check(c.Request.Context())
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, "Dependency unavailable", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, deps.Config))
	protected.Use(middleware.RateLimitMiddleware(middleware.MatchRateLimitConfig(deps.Config.RateLimitThreshold, window, deps.Config.RateLimitFailClosed)))
	{
		NewMatchHandler(protected, deps.MatchUC)
	}

	return r
}
