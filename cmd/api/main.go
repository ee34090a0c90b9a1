package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloudnotes/cmd/internal/config"
	"cloudnotes/cmd/internal/domain/sqlite"
	"cloudnotes/cmd/internal/domain/sqlite/repository"
	"cloudnotes/cmd/internal/http/router"
	"cloudnotes/cmd/internal/service"
	"cloudnotes/cmd/internal/utils"
	"cloudnotes/cmd/internal/utils/uid"
	"cloudnotes/cmd/internal/utils/validators"

	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	log.SetLevel(cfg.LogLevel)
	uid.Init(cfg.NodeID)

	// Init SQLite
	db, err := sqlite.Init(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer func() {
		if err := sqlite.Close(db); err != nil {
			log.Errorf("failed to close database: %v", err)
		}
	}()

	validate := validators.New()
	tokens := utils.NewTokenSigner(cfg.JWTSecret, cfg.TokenTTL)

	// Getting repos
	accountRepo := repository.NewAccountRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	shareRepo := repository.NewShareRepository(db)

	// Getting services
	authService := service.NewAuthService(accountRepo, validate, tokens, cfg.BcryptCost)
	noteService := service.NewNoteService(noteRepo, validate)
	shareService := service.NewShareService(shareRepo, noteRepo, validate)

	e := router.New(&router.Config{
		AuthService:        authService,
		NoteService:        noteService,
		ShareService:       shareService,
		Tokens:             tokens,
		AllowedOrigins:     cfg.ClientURLs,
		BodyLimit:          cfg.BodyLimit,
		AuthRateLimitRPS:   cfg.AuthRateLimitRPS,
		AuthRateLimitBurst: cfg.AuthRateLimitBurst,
	})
	e.Logger.SetLevel(cfg.LogLevel)

	go func() {
		log.Infof("API listening on %s", cfg.Addr())
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("graceful shutdown failed: %v", err)
	}
}
