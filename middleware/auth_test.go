package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "mw-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "user-42",
		"email": "u@example.com",
		"aud":   "authenticated",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
}

// whoami echoes what the middleware put on the request.
func whoami(opts AuthOptions) *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthMiddleware(opts), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ctx":    CurrentUserID(c),
			"header": c.GetHeader(UserIDHeader),
			"email":  c.GetString(EmailKey),
		})
	})
	return r
}

func get(r http.Handler, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set(UserIDHeader, "spoofed")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	r := whoami(AuthOptions{Secret: secret, Audience: "authenticated"})
	w := get(r, "/me", sign(t, jwt.SigningMethodHS256, []byte(secret), validClaims()))
	require.Equal(t, 200, w.Code, w.Body.String())
	assert.JSONEq(t, `{"ctx":"user-42","header":"user-42","email":"u@example.com"}`, w.Body.String())
}

func TestAuthMiddlewareRejects(t *testing.T) {
	r := whoami(AuthOptions{Secret: secret, Audience: "authenticated"})

	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Minute).Unix()
	wrongAud := validClaims()
	wrongAud["aud"] = "anon"
	noSub := validClaims()
	delete(noSub, "sub")

	cases := map[string]string{
		"missing":    "",
		"garbage":    "not.a.jwt",
		"wrong key":  sign(t, jwt.SigningMethodHS256, []byte("other"), validClaims()),
		"expired":    sign(t, jwt.SigningMethodHS256, []byte(secret), expired),
		"audience":   sign(t, jwt.SigningMethodHS256, []byte(secret), wrongAud),
		"no subject": sign(t, jwt.SigningMethodHS256, []byte(secret), noSub),
		"alg none":   sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, validClaims()),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			w := get(r, "/me", token)
			assert.Equal(t, 401, w.Code)
			assert.Contains(t, w.Body.String(), "token")
		})
	}
}

func TestAuthMiddlewareMissingSecret(t *testing.T) {
	r := whoami(AuthOptions{})
	w := get(r, "/me", sign(t, jwt.SigningMethodHS256, []byte(secret), validClaims()))
	assert.Equal(t, 500, w.Code)
	assert.Contains(t, w.Body.String(), "server misconfigured")
}

func TestAuthMiddlewareQueryToken(t *testing.T) {
	token := sign(t, jwt.SigningMethodHS256, []byte(secret), validClaims())

	w := get(whoami(AuthOptions{Secret: secret}), "/me?token="+token, "")
	assert.Equal(t, 401, w.Code)

	w = get(whoami(AuthOptions{Secret: secret, AllowQueryToken: true}), "/me?token="+token, "")
	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "user-42")
}

func TestCurrentUserIDIgnoresHeader(t *testing.T) {
	r := gin.New()
	r.GET("/open", func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUserID(c))
	})
	w := get(r, "/open", "")
	assert.Equal(t, 200, w.Code)
	assert.Empty(t, w.Body.String())
}
