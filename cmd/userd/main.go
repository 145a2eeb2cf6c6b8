package main

import (
	"context"
	"os"

	"github.com/codeOfTheFuture/mern-stack-authentication/config"
	"github.com/codeOfTheFuture/mern-stack-authentication/db"
	"github.com/codeOfTheFuture/mern-stack-authentication/internal/logging"
	"github.com/codeOfTheFuture/mern-stack-authentication/internal/user/handler"
	repo "github.com/codeOfTheFuture/mern-stack-authentication/internal/user/repository/postgres"
	"github.com/codeOfTheFuture/mern-stack-authentication/internal/user/service"
)

func main() {
	cfg := config.Load()
	log := logging.NewDefault()
	ctx := context.Background()

	if err := db.RunMigrations(ctx, cfg.DBURL); err != nil {
		log.Error(ctx, "migrations failed", "error", err)
		os.Exit(1)
	}

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Error(ctx, "database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	userRepo := repo.NewPostgresRepository(dbPool)
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.SessionExpiryDays)
	userService := service.NewUserService(userRepo, cfg)
	userHandler := handler.NewUserHandler(userService, tokenService, cfg)

	app := handler.NewApp(cfg, userHandler, log)

	log.Info(ctx, "server listening", "port", cfg.Port, "env", cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error(ctx, "server stopped", "error", err)
		os.Exit(1)
	}
}
