package router

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"healthtrack-backend/config"
	"healthtrack-backend/database"
	"healthtrack-backend/middleware"
	"healthtrack-backend/realtime"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "router-secret"

func testConfig() *config.Config {
	return &config.Config{
		SupabaseJWTSecret:   secret,
		SupabaseJWTAudience: "authenticated",
		CreemAPIURL:         "http://127.0.0.1:1",
		RateLimitRPS:        100,
		RateLimitBurst:      100,
		HTTPTimeout:         time.Second,
	}
}

func token(t *testing.T, sub string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   sub,
		"email": sub + "@example.com",
		"aud":   "authenticated",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func setup(t *testing.T, cfg *config.Config, deps Deps) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, database.Connect(filepath.Join(t.TempDir(), "router.db")))
	srv := httptest.NewServer(SetupRouter(cfg, deps))
	t.Cleanup(func() {
		srv.Close()
		_ = database.Close()
	})
	return srv
}

func call(t *testing.T, method, url, tok, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewBufferString(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestRoutesRequireAuth(t *testing.T) {
	srv := setup(t, testConfig(), Deps{})

	for _, path := range []string{"/api/auth/me", "/api/measurements", "/api/diseases", "/api/payment"} {
		assert.Equal(t, http.StatusUnauthorized, call(t, "GET", srv.URL+path, "", "").StatusCode, path)
	}
	assert.Equal(t, http.StatusOK, call(t, "GET", srv.URL+"/healthz", "", "").StatusCode)

	resp := call(t, "GET", srv.URL+"/api/auth/me", token(t, "u1"), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
}

func TestCheckoutWithoutProvider(t *testing.T) {
	srv := setup(t, testConfig(), Deps{})
	resp := call(t, "POST", srv.URL+"/api/payment/checkout", token(t, "u1"), "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRPS = 1
	cfg.RateLimitBurst = 2
	srv := setup(t, cfg, Deps{})
	tok := token(t, "u1")

	assert.Equal(t, http.StatusOK, call(t, "GET", srv.URL+"/api/diseases", tok, "").StatusCode)
	assert.Equal(t, http.StatusOK, call(t, "GET", srv.URL+"/api/diseases", tok, "").StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, call(t, "GET", srv.URL+"/api/diseases", tok, "").StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := setup(t, testConfig(), Deps{})
	call(t, "GET", srv.URL+"/healthz", "", "")

	resp := call(t, "GET", srv.URL+"/metrics", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `healthtrack_http_requests_total{method="GET",path="/healthz",status="200"}`)
}

func TestRealtimeReceivesOwnEvents(t *testing.T) {
	hub := realtime.NewHub(nil)
	srv := setup(t, testConfig(), Deps{Hub: hub})
	tok := token(t, "ws-user")

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/realtime"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?token="+tok, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Connections("ws-user") == 1 }, 2*time.Second, 10*time.Millisecond)

	// Another user's write must not reach this socket.
	call(t, "POST", srv.URL+"/api/measurements", token(t, "someone-else"), `{"weight":60}`)
	created := call(t, "POST", srv.URL+"/api/measurements", tok, `{"weight":70,"height":175}`)
	require.Equal(t, http.StatusCreated, created.StatusCode)

	var ev struct {
		Type string                 `json:"type"`
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "measurement.created", ev.Type)
	assert.Equal(t, "ws-user", ev.Data["userId"])
	assert.Equal(t, 22.9, ev.Data["bmi"])
}
