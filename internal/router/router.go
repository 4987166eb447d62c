package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/exam-room-planner/internal/config"
	"github.com/iliyamo/exam-room-planner/internal/handler"
	"github.com/iliyamo/exam-room-planner/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check, used by load balancers and
// monitoring to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints.  Login and register
// are rate limited per client IP; /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, rdb *redis.Client) {
	g := e.Group("/v1/auth")
	g.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(a.Cfg.JWTSecret))
	auth.GET("/me", a.Me)
}

// RegisterExamRooms registers the room administration and distribution
// endpoints.  Room data management is ADMIN only; the read projections and
// the distribution itself are open to ADMIN and INSTRUCTOR.
func RegisterExamRooms(e *echo.Echo, jwtSecret string, rooms *handler.ExamRoomHandler, dist *handler.DistributionHandler, rdb *redis.Client) {
	cacheCfg := config.LoadCacheConfig()

	admin := e.Group("/v1/admin")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole("ADMIN"))
	admin.POST("/exam-rooms/upload", rooms.Upload)
	admin.GET("/exam-rooms/admin-overview", rooms.AdminOverview, middleware.CacheGET(cacheCfg, rdb))
	admin.DELETE("/exam-rooms/outdated-and-unused", rooms.DeleteOutdatedAndUnused)

	v1 := e.Group("/v1")
	v1.Use(middleware.JWTAuth(jwtSecret))
	v1.Use(middleware.RequireRole("ADMIN", "INSTRUCTOR"))
	v1.GET("/exam-rooms/for-distribution", rooms.RoomsForDistribution, middleware.CacheGET(cacheCfg, rdb))
	v1.GET("/exam-rooms/:roomId/seats", rooms.SeatsOfRoom)
	v1.GET("/exam-rooms/distribution-capacities", dist.Capacities)
	v1.POST("/exams/:examId/distribute-registered-students", dist.Distribute)
}
