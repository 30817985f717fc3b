package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/event-ticket-reservation/internal/config"
	"github.com/iliyamo/event-ticket-reservation/internal/handler"
	"github.com/iliyamo/event-ticket-reservation/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication and
// carry no middleware.  Currently it exposes only a health check used by
// load balancers and monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the attendee-facing endpoints: registering
// for an event and looking up an issued ticket by code.  The register
// route is shielded by a Redis token bucket so a registration rush
// degrades into 429s instead of piling onto the database; the lookup
// route is fronted by a short-TTL response cache.  Both middlewares
// degrade to pass-through when Redis is unavailable.
func RegisterPublic(e *echo.Echo, reg *handler.RegistrationHandler, lookup *handler.LookupHandler, rdb *redis.Client, rlCfg config.RateLimitConfig, cacheCfg config.CacheConfig) {
	e.POST("/events/:id/register", reg.Register, middleware.NewTokenBucket(rlCfg, rdb))
	e.GET("/tickets/:code", lookup.GetTicket, middleware.NewRedisCache(cacheCfg, rdb))
}

// RegisterAdmin registers the lifecycle endpoints used by the
// administrative collaborator: listing an event's registrations,
// patching status/check-in/notes and hard-deleting a registration.
// Tokens are issued by an external service; this API only verifies the
// signature and requires the ADMIN role claim.
func RegisterAdmin(e *echo.Echo, a *handler.AdminRegistrationHandler, jwtSecret string) {
	g := e.Group(
		"/events/:id/registrations",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)
	g.GET("", a.ListRegistrations)
	g.PATCH("/:regId", a.UpdateRegistration)
	g.DELETE("/:regId", a.DeleteRegistration)
}
