package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invoice-assistant/internal/agentcontrol"
	"invoice-assistant/internal/agentlogs"
	"invoice-assistant/internal/agents"
	"invoice-assistant/internal/categorization"
	"invoice-assistant/internal/feedback"
	"invoice-assistant/internal/incidents"
	"invoice-assistant/internal/invoices"
	"invoice-assistant/internal/payments"
	"invoice-assistant/internal/prompts"
	"invoice-assistant/internal/regions"
	"invoice-assistant/internal/sessions"
	"invoice-assistant/internal/shared/config"
	"invoice-assistant/internal/shared/metrics"
	"invoice-assistant/internal/shared/server/middleware"
	"invoice-assistant/internal/shared/server/respond"
)

// Endpoints reachable without a session. The websocket path stays open
// because browsers cannot attach custom headers to the upgrade request.
var publicPrefixes = []string{
	"/auth/login",
	"/health",
	"/metrics",
	"/categorization/ws",
}

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config         config.Config
	Resolver       middleware.SessionResolver
	Sessions       *sessions.Handler
	Regions        *regions.Handler
	Invoices       *invoices.Handler
	Incidents      *incidents.Handler
	Categorization *categorization.Handler
	Agents         *agents.Handler
	Prompts        *prompts.Handler
	AgentControl   *agentcontrol.Handler
	Feedback       *feedback.Handler
	Payments       *payments.Handler
	AgentLogs      *agentlogs.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Session(deps.Resolver, publicPrefixes...),
	)

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("")
	deps.Sessions.RegisterRoutes(api)
	deps.Regions.RegisterRoutes(api)
	deps.Invoices.RegisterRoutes(api)
	deps.Incidents.RegisterRoutes(api)
	deps.Categorization.RegisterRoutes(api)
	deps.Prompts.RegisterRoutes(api)
	deps.AgentControl.RegisterRoutes(api)
	deps.Feedback.RegisterRoutes(api)
	deps.Payments.RegisterRoutes(api)
	deps.AgentLogs.RegisterRoutes(api)

	// LLM-backed agents get their own token bucket.
	agentAPI := r.Group("")
	agentAPI.Use(middleware.RateLimit(middleware.RateLimitConfig{
		DefaultGroup: "AGENT",
		Rules: map[string]middleware.RateLimitRule{
			"AGENT": {Rate: 0.5, Burst: 5},
		},
	}))
	deps.Agents.RegisterRoutes(agentAPI)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8088"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
