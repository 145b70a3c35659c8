package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/phoenixpbx/pbxbot/internal/config"
	"github.com/phoenixpbx/pbxbot/internal/model"
	"github.com/phoenixpbx/pbxbot/internal/utils"
)

type stubUsers struct {
	users map[string]model.User
}

func (s *stubUsers) FindByUsername(_ context.Context, username string) (model.User, error) {
	u, ok := s.users[username]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

// stubReporter records the arguments of the last call made to it.
type stubReporter struct {
	stats      model.DashboardStats
	calls      []model.Call
	customers  []model.Customer
	lastLimit  int
	lastOffset int
	lastFilter model.CallFilter
}

func (s *stubReporter) DashboardStats(_ context.Context) model.DashboardStats { return s.stats }

func (s *stubReporter) RecentCalls(_ context.Context, limit int) []model.Call {
	s.lastLimit = limit
	return s.calls
}

func (s *stubReporter) Customers(_ context.Context, limit, offset int) []model.Customer {
	s.lastLimit = limit
	s.lastOffset = offset
	return s.customers
}

func (s *stubReporter) SearchCalls(_ context.Context, f model.CallFilter, limit int) []model.Call {
	s.lastFilter = f
	s.lastLimit = limit
	return s.calls
}

func newTestHandler(cfg config.Config) (*BotAPIHandler, *stubReporter) {
	rep := &stubReporter{calls: []model.Call{}, customers: []model.Customer{}}
	users := &stubUsers{users: map[string]model.User{
		"admin": {
			ID:        7,
			Username:  "admin",
			Password:  utils.HashPassword("s3cret"),
			FirstName: "Ada",
			Email:     "ada@example.com",
			Credit:    12.5,
			Active:    1,
		},
		"disabled": {
			ID:       8,
			Username: "disabled",
			Password: utils.HashPassword("s3cret"),
			Active:   0,
		},
	}}
	return NewBotAPIHandler(cfg, users, rep, zap.NewNop()), rep
}

// do runs one request through the handler and decodes the envelope.
func do(t *testing.T, h *BotAPIHandler, target, body string) apiResponse {
	t.Helper()

	var reader *strings.Reader
	method := http.MethodGet
	if body != "" {
		method = http.MethodPost
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.Handle(c))
	require.Equal(t, http.StatusOK, rec.Code, "envelope always rides on 200")

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandleInvalidAction(t *testing.T) {
	h, _ := newTestHandler(config.Config{})

	for _, target := range []string{"/bot-api", "/bot-api?action=nope"} {
		resp := do(t, h, target, "")
		require.False(t, resp.Success)
		require.Equal(t, "Invalid action", resp.Message)
		require.Nil(t, resp.Data)
	}
}

func TestHandleQueryParamWinsOverBody(t *testing.T) {
	h, _ := newTestHandler(config.Config{})

	resp := do(t, h, "/bot-api?action=dashboard", `{"action":"nope"}`)
	require.True(t, resp.Success)
	require.Equal(t, "Dashboard stats retrieved", resp.Message)
}

func TestHandleDashboard(t *testing.T) {
	h, rep := newTestHandler(config.Config{})
	rep.stats = model.DashboardStats{TotalCalls: 42, RevenueToday: 9.99, ActiveTrunks: 2}

	resp := do(t, h, "/bot-api", `{"action":"dashboard"}`)
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, float64(42), data["totalCalls"])
	require.Equal(t, 9.99, data["revenueToday"])
	require.Equal(t, float64(2), data["activeTrunks"])
}

func TestHandleMalformedBodyWithQueryAction(t *testing.T) {
	h, _ := newTestHandler(config.Config{})

	resp := do(t, h, "/bot-api?action=dashboard", `{not json`)
	require.True(t, resp.Success, "query-string action survives an unreadable body")
}

func TestHandleRecentCallsLimitCoercion(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "numeric limit", body: `{"action":"recentCalls","limit":7}`, want: 7},
		{name: "string limit", body: `{"action":"recentCalls","limit":"7"}`, want: 7},
		{name: "garbage limit", body: `{"action":"recentCalls","limit":"lots"}`, want: 0},
		{name: "missing limit", body: `{"action":"recentCalls"}`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, rep := newTestHandler(config.Config{})
			resp := do(t, h, "/bot-api", tt.body)
			require.True(t, resp.Success)
			require.Equal(t, tt.want, rep.lastLimit)
		})
	}
}

func TestHandleSearchCallsFilter(t *testing.T) {
	h, rep := newTestHandler(config.Config{})

	resp := do(t, h, "/bot-api",
		`{"action":"searchCalls","callerid":"555","dst":"4420","dateFrom":"2026-01-01","dateTo":"2026-01-31","limit":5}`)
	require.True(t, resp.Success)
	require.Equal(t, model.CallFilter{
		CallerID:    "555",
		Destination: "4420",
		DateFrom:    "2026-01-01",
		DateTo:      "2026-01-31",
	}, rep.lastFilter)
	require.Equal(t, 5, rep.lastLimit)
}

func TestHandleCustomersPaging(t *testing.T) {
	h, rep := newTestHandler(config.Config{})

	resp := do(t, h, "/bot-api", `{"action":"customers","limit":20,"offset":40}`)
	require.True(t, resp.Success)
	require.Equal(t, 20, rep.lastLimit)
	require.Equal(t, 40, rep.lastOffset)
}

func TestLoginMissingCredentials(t *testing.T) {
	h, _ := newTestHandler(config.Config{})

	for _, body := range []string{
		`{"action":"login"}`,
		`{"action":"login","username":"admin"}`,
		`{"action":"login","password":"s3cret"}`,
	} {
		resp := do(t, h, "/bot-api", body)
		require.False(t, resp.Success)
		require.Equal(t, "Username and password required", resp.Message)
	}
}

func TestLoginSuccess(t *testing.T) {
	h, _ := newTestHandler(config.Config{})

	resp := do(t, h, "/bot-api", `{"action":"login","username":"admin","password":"s3cret"}`)
	require.True(t, resp.Success)
	require.Equal(t, "Login successful", resp.Message)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, float64(7), data["id"])
	require.Equal(t, "admin", data["username"])
	require.Equal(t, "Ada", data["firstname"])
	require.Equal(t, 12.5, data["credit"])
	require.NotContains(t, data, "password")
	require.NotContains(t, data, "token", "no token without a configured secret")
}

func TestLoginMintsTokenWhenConfigured(t *testing.T) {
	h, _ := newTestHandler(config.Config{JWTSecret: "test-secret"})

	resp := do(t, h, "/bot-api", `{"action":"login","username":"admin","password":"s3cret"}`)
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	tok, ok := data["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, tok)
}

func TestLoginFailures(t *testing.T) {
	h, _ := newTestHandler(config.Config{})

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "unknown user",
			body:    `{"action":"login","username":"ghost","password":"s3cret"}`,
			message: "Invalid username or password",
		},
		{
			name:    "wrong password",
			body:    `{"action":"login","username":"admin","password":"wrong"}`,
			message: "Invalid username or password",
		},
		{
			name:    "inactive account",
			body:    `{"action":"login","username":"disabled","password":"s3cret"}`,
			message: "Account is inactive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, h, "/bot-api", tt.body)
			require.False(t, resp.Success)
			require.Equal(t, tt.message, resp.Message)
			require.Nil(t, resp.Data)
		})
	}
}
