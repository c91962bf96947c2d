package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/kcnotes/kcnotes/internal/config"
	"github.com/kcnotes/kcnotes/internal/database"
	"github.com/kcnotes/kcnotes/internal/handler"
	"github.com/kcnotes/kcnotes/internal/queue"
	"github.com/kcnotes/kcnotes/internal/repository"
	"github.com/kcnotes/kcnotes/internal/router"
)

func main() {
	// Load a local .env when present; real deployments set the variables
	// directly and the file is absent.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database open failed: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("database migrate failed: %v", err)
	}
	cancel()

	users := repository.NewUserRepo(db)
	notes := repository.NewNoteRepo(db)

	authHandler := handler.NewAuthHandler(cfg, users)
	noteHandler := handler.NewNoteHandler(notes)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterNotes(e, noteHandler, cfg.JWTSecret)

	// Background consumer: appends activity events to logs/activity.log.
	// It reconnects on its own; a missing broker never blocks the API.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
