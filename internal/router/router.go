// Package router wires the reporting API routes onto an Echo instance.
package router

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/phoenixpbx/pbxbot/internal/config"
	"github.com/phoenixpbx/pbxbot/internal/handler"
	"github.com/phoenixpbx/pbxbot/internal/middleware"
)

// RegisterRoutes registers routes that take no dependencies.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterBotAPI mounts the action endpoint. The legacy PHP deployment lived
// at bot-api/index.php, so both paths answer; GET is accepted because the
// action selector may arrive in the query string alone.
func RegisterBotAPI(e *echo.Echo, h *handler.BotAPIHandler, cfg config.Config, rdb *redis.Client) {
	mws := []echo.MiddlewareFunc{
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
	}
	// Bearer enforcement is opt-in; the default keeps the legacy open
	// behavior where only login itself checks credentials.
	if cfg.APIAuthRequired && cfg.JWTSecret != "" {
		mws = append(mws, requireTokenExceptLogin(cfg.JWTSecret))
	}

	for _, path := range []string{"/bot-api", "/bot-api/", "/bot-api/index.php"} {
		e.POST(path, h.Handle, mws...)
		e.GET(path, h.Handle, mws...)
	}
}

// requireTokenExceptLogin applies JWTAuth to every action except login, which
// must stay reachable so clients can obtain a token in the first place.
func requireTokenExceptLogin(secret string) echo.MiddlewareFunc {
	check := middleware.JWTAuth(secret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if requestAction(c) == "login" {
				return next(c)
			}
			return check(next)(c)
		}
	}
}

// maxSniffBytes caps how much of a body the action sniff will buffer.
const maxSniffBytes = 1 << 20

// requestAction resolves the action selector the same way the handler does:
// query string first, then the JSON body. The body is buffered and restored so
// the handler can still read it.
func requestAction(c echo.Context) string {
	if a := c.QueryParam("action"); a != "" {
		return a
	}
	req := c.Request()
	if req.Body == nil {
		return ""
	}
	buf, err := io.ReadAll(io.LimitReader(req.Body, maxSniffBytes))
	req.Body = io.NopCloser(bytes.NewReader(buf))
	if err != nil {
		return ""
	}
	var probe struct {
		Action string `json:"action"`
	}
	_ = json.Unmarshal(buf, &probe)
	return probe.Action
}
