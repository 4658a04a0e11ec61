package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"             // .env loader for local development
	"github.com/labstack/echo/v4"          // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware" // Echo built-in middleware

	"github.com/teamcal/calendar-api/internal/config"     // Internal config loader
	"github.com/teamcal/calendar-api/internal/database"   // MySQL connection
	"github.com/teamcal/calendar-api/internal/handler"    // HTTP handlers
	"github.com/teamcal/calendar-api/internal/middleware" // auth filter
	"github.com/teamcal/calendar-api/internal/queue"      // broker consumer
	"github.com/teamcal/calendar-api/internal/repository" // DB repositories
	"github.com/teamcal/calendar-api/internal/router"     // route registration
	"github.com/teamcal/calendar-api/internal/service"    // business logic
)

func main() {
	// Missing .env is fine in environments that set real variables.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	rdb := config.NewRedisClient() // nil disables cache and rate limiting
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}

	userRepo := repository.NewUserRepo(db)
	calendarRepo := repository.NewCalendarRepo(db)
	scheduleRepo := repository.NewScheduleRepo(db)

	calendarSvc := service.NewCalendarService(calendarRepo)
	scheduleSvc := service.NewScheduleService(calendarRepo, scheduleRepo)

	authn := middleware.NewTokenAuthenticator(userRepo, cfg.JWTSecret, cfg.AccessTTLMin)

	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	router.RegisterRoutes(e)
	router.RegisterAPI(e, authn, rdb,
		handler.NewAuthHandler(cfg, userRepo),
		handler.NewCalendarHandler(calendarSvc),
		handler.NewScheduleHandler(scheduleSvc))

	// Consume schedule events in the background; the loop reconnects on
	// broker failures and never stops the server.
	go func() {
		if err := queue.StartScheduleConsumer(); err != nil {
			log.Printf("schedule consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
