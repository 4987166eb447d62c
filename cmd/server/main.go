package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/exam-room-planner/internal/config"     // Internal config loader
	"github.com/iliyamo/exam-room-planner/internal/database"   // MySQL connection pool
	"github.com/iliyamo/exam-room-planner/internal/handler"    // HTTP handlers
	"github.com/iliyamo/exam-room-planner/internal/planner"    // Seat distribution planner
	"github.com/iliyamo/exam-room-planner/internal/queue"      // Planning event consumer
	"github.com/iliyamo/exam-room-planner/internal/repository" // Data access layer
	"github.com/iliyamo/exam-room-planner/internal/router"     // Route registration
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly

	cfg := config.Load() // Load environment config

	db, err := database.Open(&cfg) // Connect to MySQL
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil when Redis is unavailable; caching and rate limiting degrade

	// Repositories
	users := repository.NewUserRepo(db)
	rooms := repository.NewExamRoomRepo(db)
	exams := repository.NewExamRepo(db)
	examUsers := repository.NewExamUserRepo(db)
	assignments := repository.NewAssignmentRepo(db)
	distributions := repository.NewDistributionRepo(db, assignments, examUsers)

	// Planner and handlers
	p := planner.New(exams, examUsers, rooms, distributions)
	authH := handler.NewAuthHandler(cfg, users)
	roomH := handler.NewExamRoomHandler(rooms)
	distH := handler.NewDistributionHandler(p, exams, examUsers)

	// Background consumer writes planning events to the audit log.  A broker
	// outage must not take the API down, so failures only log.
	go func() {
		if err := queue.StartPlanningConsumer(); err != nil {
			log.Printf("planning consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, rdb)
	router.RegisterExamRooms(e, cfg.JWTSecret, roomH, distH, rdb)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err)
	}
}
