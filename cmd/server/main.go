package main

import (
	"go.uber.org/zap"

	"github.com/labstack/echo/v4"

	"github.com/phoenixpbx/pbxbot/internal/config"
	"github.com/phoenixpbx/pbxbot/internal/database"
	"github.com/phoenixpbx/pbxbot/internal/handler"
	"github.com/phoenixpbx/pbxbot/internal/logger"
	"github.com/phoenixpbx/pbxbot/internal/pbx"
	"github.com/phoenixpbx/pbxbot/internal/queue"
	"github.com/phoenixpbx/pbxbot/internal/repository"
	"github.com/phoenixpbx/pbxbot/internal/router"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFile)
	defer func() { _ = log.Sync() }()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	h := handler.NewBotAPIHandler(cfg,
		repository.NewUserRepo(db),
		pbx.NewService(repository.NewGateway(db), log),
		log)

	// Nil when Redis is unreachable; the rate limiter then disables itself.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable, rate limiting disabled")
	}

	go queue.StartLoginAuditConsumer(log)

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterBotAPI(e, h, cfg, rdb)

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr))
	if err := e.Start(addr); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
