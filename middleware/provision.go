// provision.go - Creates the local user row the first time a token is seen

package middleware

import (
	"net/http"
	"sync"

	"healthtrack-backend/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Provisioner remembers which user ids already have a row so the upsert only
// runs once per id per process.
type Provisioner struct {
	known sync.Map // user id -> email
	log   *zap.Logger
}

func NewProvisioner(log *zap.Logger) *Provisioner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Provisioner{log: log}
}

// Handler must run after AuthMiddleware.
func (p *Provisioner) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := CurrentUserID(c)
		email := c.GetString(EmailKey)
		if seen, ok := p.known.Load(id); ok && seen == email {
			c.Next()
			return
		}
		if _, err := services.EnsureUser(c.Request.Context(), id, email); err != nil {
			p.log.Error("provision user", zap.String("user_id", id), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "could not load user"})
			return
		}
		p.known.Store(id, email)
		c.Next()
	}
}

// Forget drops id from the cache, e.g. after the row was deleted.
func (p *Provisioner) Forget(id string) {
	p.known.Delete(id)
}
