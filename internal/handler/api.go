// Package handler implements the bot-api HTTP surface: one action-dispatch
// endpoint speaking the legacy JSON envelope {success, message, data}.
package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/phoenixpbx/pbxbot/internal/config"
	"github.com/phoenixpbx/pbxbot/internal/model"
	q "github.com/phoenixpbx/pbxbot/internal/queue"
	queue_publisher "github.com/phoenixpbx/pbxbot/internal/service"
	"github.com/phoenixpbx/pbxbot/internal/utils"
)

// queryTimeout bounds every data-layer call made on behalf of one request.
const queryTimeout = 10 * time.Second

// apiTokenTTL is how long a minted bearer token stays valid.
const apiTokenTTL = time.Hour

// UserFinder is the slice of the query gateway login needs.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (model.User, error)
}

// Reporter is the reporting facade as the handler sees it.
type Reporter interface {
	DashboardStats(ctx context.Context) model.DashboardStats
	RecentCalls(ctx context.Context, limit int) []model.Call
	Customers(ctx context.Context, limit, offset int) []model.Customer
	SearchCalls(ctx context.Context, f model.CallFilter, limit int) []model.Call
}

// BotAPIHandler bundles dependencies for the action endpoint.
type BotAPIHandler struct {
	Cfg   config.Config
	Users UserFinder
	PBX   Reporter
	Log   *zap.Logger
}

func NewBotAPIHandler(cfg config.Config, users UserFinder, pbx Reporter, log *zap.Logger) *BotAPIHandler {
	return &BotAPIHandler{Cfg: cfg, Users: users, PBX: pbx, Log: log}
}

// flexInt accepts a JSON number or a numeric string; legacy clients send both.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		*f = 0
		return nil // coerce garbage to zero rather than failing the request
	}
	*f = flexInt(n)
	return nil
}

// apiRequest is the union of all action parameters.
type apiRequest struct {
	Action   string  `json:"action"`
	Username string  `json:"username"`
	Password string  `json:"password"`
	Limit    flexInt `json:"limit"`
	Offset   flexInt `json:"offset"`
	CallerID string  `json:"callerid"`
	Dst      string  `json:"dst"`
	DateFrom string  `json:"dateFrom"`
	DateTo   string  `json:"dateTo"`
}

type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func respond(c echo.Context, success bool, message string, data any) error {
	return c.JSON(http.StatusOK, apiResponse{Success: success, Message: message, Data: data})
}

// Handle dispatches on the action selector, taken from the query string or
// the JSON body (query string wins, matching the legacy endpoint).
func (h *BotAPIHandler) Handle(c echo.Context) error {
	var req apiRequest
	if c.Request().Body != nil {
		// Malformed bodies leave req zeroed; the query-string action may
		// still identify a parameterless action like dashboard.
		_ = json.NewDecoder(c.Request().Body).Decode(&req)
	}
	action := c.QueryParam("action")
	if action == "" {
		action = req.Action
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), queryTimeout)
	defer cancel()

	switch action {
	case "login":
		return h.login(ctx, c, req)
	case "dashboard":
		return respond(c, true, "Dashboard stats retrieved", h.PBX.DashboardStats(ctx))
	case "recentCalls":
		return respond(c, true, "Recent calls retrieved", h.PBX.RecentCalls(ctx, int(req.Limit)))
	case "customers":
		return respond(c, true, "Customers retrieved",
			h.PBX.Customers(ctx, int(req.Limit), int(req.Offset)))
	case "searchCalls":
		filter := model.CallFilter{
			CallerID:    req.CallerID,
			Destination: req.Dst,
			DateFrom:    req.DateFrom,
			DateTo:      req.DateTo,
		}
		return respond(c, true, "Calls retrieved", h.PBX.SearchCalls(ctx, filter, int(req.Limit)))
	default:
		return respond(c, false, "Invalid action", nil)
	}
}

// loginData is the user record returned on a successful login, digest
// stripped, plus an optional bearer token.
type loginData struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	FirstName string  `json:"firstname"`
	LastName  string  `json:"lastname"`
	Email     string  `json:"email"`
	Credit    float64 `json:"credit"`
	Active    int     `json:"active"`
	Token     string  `json:"token,omitempty"`
}

// login re-verifies the credential digest on every call; the endpoint tracks
// no sessions.
func (h *BotAPIHandler) login(ctx context.Context, c echo.Context, req apiRequest) error {
	if req.Username == "" || req.Password == "" {
		return respond(c, false, "Username and password required", nil)
	}

	u, err := h.Users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.audit(c, req.Username, false, "user not found")
			return respond(c, false, "Invalid username or password", nil)
		}
		h.Log.Warn("login lookup failed", zap.Error(err))
		return respond(c, false, "Login temporarily unavailable", nil)
	}
	if u.Active != 1 {
		h.audit(c, req.Username, false, "account inactive")
		return respond(c, false, "Account is inactive", nil)
	}
	if !utils.VerifyPassword(u.Password, req.Password) {
		h.audit(c, req.Username, false, "bad credentials")
		return respond(c, false, "Invalid username or password", nil)
	}

	data := loginData{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Credit:    u.Credit,
		Active:    u.Active,
	}
	if h.Cfg.JWTSecret != "" {
		tok, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Username, apiTokenTTL)
		if err != nil {
			h.Log.Warn("token mint failed", zap.Error(err))
		} else {
			data.Token = tok.Token
		}
	}

	h.audit(c, req.Username, true, "login successful")
	return respond(c, true, "Login successful", data)
}

// audit publishes a login event in the background; failures only cost a log line.
func (h *BotAPIHandler) audit(c echo.Context, username string, success bool, msg string) {
	ev := q.LoginEvent{
		Source:    "api",
		Username:  username,
		Success:   success,
		Message:   msg,
		RemoteIP:  c.RealIP(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		_ = queue_publisher.PublishLoginEvent(context.Background(), h.Log, ev)
	}()
}
