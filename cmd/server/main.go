package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/academic-records-api/internal/config"
	"github.com/iliyamo/academic-records-api/internal/database"
	"github.com/iliyamo/academic-records-api/internal/handler"
	"github.com/iliyamo/academic-records-api/internal/middleware"
	"github.com/iliyamo/academic-records-api/internal/queue"
	"github.com/iliyamo/academic-records-api/internal/repository"
	"github.com/iliyamo/academic-records-api/internal/router"
	queue_publisher "github.com/iliyamo/academic-records-api/internal/service"
)

func main() {
	// A local .env is a convenience for development; in production the
	// variables come from the real environment.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil when Redis is unreachable
	if rdb == nil {
		log.Println("redis unavailable: response cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	students := repository.NewStudentRepo(db)
	items := repository.NewItemRepo(db)

	auth := handler.NewAuthHandler(cfg, users)
	auth.Publish = queue_publisher.PublishUserRegistered

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterStudents(e, handler.NewStudentHandler(students), cache)
	router.RegisterItems(e, handler.NewItemHandler(items), cache)

	// Background consumer logs registration events; it reconnects on its
	// own and never stops the server.
	go func() {
		if err := queue.StartRegistrationConsumer(); err != nil {
			log.Printf("registration consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
