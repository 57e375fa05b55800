package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"claims-backend/internal/appeals"
	googleauth "claims-backend/internal/auth"
	"claims-backend/internal/claims"
	"claims-backend/internal/leads"
	"claims-backend/internal/risk"
	"claims-backend/internal/shared/config"
	"claims-backend/internal/shared/metrics"
	"claims-backend/internal/shared/server/middleware"
	"claims-backend/internal/shared/server/respond"
	"claims-backend/internal/users"
)

// RouterDeps carries the handlers wired into the HTTP surface. RateLimiter
// may be nil; the middleware then uses a wall-clock limiter.
type RouterDeps struct {
	Config         config.Config
	ClaimsHandler  *claims.Handler
	RiskHandler    *risk.Handler
	AppealsHandler *appeals.Handler
	LeadsHandler   *leads.Handler
	UsersHandler   *users.Handler
	GoogleAuth     *googleauth.GoogleService
	RateLimiter    *middleware.RateLimiter
}

const rateLimitAnalysisGroup = "ANALYSIS"

// LLM-backed routes get a tighter bucket than plain CRUD.
var rateLimitRules = map[string]middleware.RateLimitRule{
	"DEFAULT":              {Rate: 10, Burst: 20},
	rateLimitAnalysisGroup: {Rate: 0.5, Burst: 5},
}

func rateLimitGroupFor(c *gin.Context) string {
	if c.Request.Method == http.MethodPost {
		switch c.FullPath() {
		case "/api/v1/claims/:id/analyze", "/api/v1/claims/:id/appeal-letter":
			return rateLimitAnalysisGroup
		}
	}
	return "DEFAULT"
}

// NewRouter constructs the gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules:    rateLimitRules,
			GroupFor: rateLimitGroupFor,
			Limiter:  deps.RateLimiter,
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(api)
	}
	if deps.RiskHandler != nil {
		deps.RiskHandler.RegisterRoutes(api)
	}
	if deps.ClaimsHandler != nil {
		deps.ClaimsHandler.RegisterRoutes(api)
	}
	if deps.AppealsHandler != nil {
		deps.AppealsHandler.RegisterRoutes(api)
	}
	if deps.LeadsHandler != nil {
		deps.LeadsHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
