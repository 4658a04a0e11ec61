package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/teamcal/calendar-api/internal/config"
	"github.com/teamcal/calendar-api/internal/handler"
	"github.com/teamcal/calendar-api/internal/middleware"
)

// Paths that skip the authentication filter entirely. Everything else
// under /api runs through token resolution; enforcement happens per
// operation, never in the filter.
var authSkipPaths = []string{
	"/api/users/register",
	"/api/users/login",
	"/api/users/logout",
}

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI wires the authentication filter plus all /api endpoints.
// The rate limiter covers the whole group; the response cache covers only
// the schedule list endpoints, whose payloads are the ones worth caching.
func RegisterAPI(e *echo.Echo, auth *middleware.TokenAuthenticator, rdb *redis.Client,
	a *handler.AuthHandler, cal *handler.CalendarHandler, sched *handler.ScheduleHandler) {

	e.Use(middleware.AuthFilter(auth, "/api", authSkipPaths...))

	api := e.Group("/api")
	api.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	users := api.Group("/users")
	users.POST("/register", a.Register)
	users.POST("/login", a.Login)
	users.POST("/logout", a.Logout)
	users.GET("/me", a.Me)
	users.POST("/api-key/rotate", a.RotateAPIKey)
	users.DELETE("/:id", a.DeleteUser)

	calendars := api.Group("/calendars")
	calendars.POST("", cal.CreateCalendar)
	calendars.GET("", cal.ListCalendars)
	calendars.GET("/:calendarId", cal.GetCalendar)
	calendars.PUT("/:calendarId", cal.UpdateCalendar)
	calendars.DELETE("/:calendarId", cal.DeleteCalendar)

	schedules := calendars.Group("/:calendarId/schedules")
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	schedules.POST("", sched.CreateSchedule)
	schedules.GET("", sched.ListSchedules, cache)
	schedules.GET("/daily", sched.ListDailySchedules, cache)
	schedules.GET("/weekly", sched.ListWeeklySchedules, cache)
	schedules.GET("/monthly", sched.ListMonthlySchedules, cache)
	schedules.GET("/:scheduleId", sched.GetSchedule)
	schedules.PUT("/:scheduleId", sched.UpdateSchedule)
	schedules.DELETE("/:scheduleId", sched.DeleteSchedule)
}
