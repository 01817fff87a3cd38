// auth.go - Supabase JWT authentication middleware
//
// Authentication flow:
// 1. Extract the bearer token (Authorization header, or ?token= when allowed)
// 2. Verify the HMAC signature with the Supabase JWT secret
// 3. Require a subject; check the audience when one is configured
// 4. Overwrite the x-user-id request header and store identity in the context

package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	UserIDHeader = "x-user-id" // identity header handlers read
	UserIDKey    = "user_id"   // gin context keys
	EmailKey     = "email"
)

// Claims is the subset of a Supabase access token the service relies on.
type Claims struct {
	Email string `json:"email"` // empty for anonymous and phone sign-ins
	jwt.RegisteredClaims
}

type AuthOptions struct {
	Secret          string
	Audience        string // empty skips the aud check
	AllowQueryToken bool   // browsers cannot set headers on WebSocket upgrades
}

var errNoToken = errors.New("missing or invalid token")

// ParseToken verifies tokenStr and returns its claims.
func ParseToken(secret, audience, tokenStr string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

func bearerToken(c *gin.Context, allowQuery bool) (string, error) {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		if tok := strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")); tok != "" {
			return tok, nil
		}
	}
	if allowQuery {
		if tok := c.Query("token"); tok != "" {
			return tok, nil
		}
	}
	return "", errNoToken
}

// AuthMiddleware returns a Gin middleware that admits only requests carrying
// a valid Supabase access token.
func AuthMiddleware(opts AuthOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Never trust a client-supplied identity header.
		c.Request.Header.Del(UserIDHeader)

		if opts.Secret == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured: JWT secret not set"})
			return
		}
		tokenStr, err := bearerToken(c, opts.AllowQueryToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		claims, err := ParseToken(opts.Secret, opts.Audience, tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Request.Header.Set(UserIDHeader, claims.Subject)
		c.Set(UserIDKey, claims.Subject)
		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}

// CurrentUserID returns the verified user id, or "" outside AuthMiddleware.
// The x-user-id header carries the same value for anything reading the raw
// request, but only the context value is trusted here.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
