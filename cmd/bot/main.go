package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/phoenixpbx/pbxbot/internal/auth"
	"github.com/phoenixpbx/pbxbot/internal/bot"
	"github.com/phoenixpbx/pbxbot/internal/config"
	"github.com/phoenixpbx/pbxbot/internal/database"
	"github.com/phoenixpbx/pbxbot/internal/logger"
	"github.com/phoenixpbx/pbxbot/internal/pbx"
	"github.com/phoenixpbx/pbxbot/internal/repository"
	"github.com/phoenixpbx/pbxbot/internal/session"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFile)
	defer func() { _ = log.Sync() }()

	if cfg.BotToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN must be set")
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	// One session store for the process lifetime; contents are volatile.
	sessions := session.NewStore()
	authSvc := auth.NewService(repository.NewUserRepo(db), sessions,
		time.Duration(cfg.SessionTimeout)*time.Second)
	pbxSvc := pbx.NewService(repository.NewGateway(db), log)

	b, err := bot.New(cfg, authSvc, pbxSvc, log)
	if err != nil {
		log.Fatal("bot init failed", zap.Error(err))
	}

	log.Info("starting bot",
		zap.String("bot", cfg.BotName),
		zap.String("version", cfg.BotVersion),
		zap.String("database", cfg.DBHost+":"+cfg.DBPort))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("bot stopped unexpectedly", zap.Error(err))
	}
	log.Info("shutting down")
}
