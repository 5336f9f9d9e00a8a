package http

import (
	"net/http"
	"strings"

	"github.com/JJ00428/market-api/internal/domain"
	"github.com/JJ00428/market-api/internal/guard"
	"github.com/JJ00428/market-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxPrincipal = "principal"
	ctxUser      = "user"
)

// RequestID tags every request for log correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// Protect resolves the bearer token to a fresh account and stores the
// principal in the context. Everything behind it can rely on role and active
// state being current.
func Protect(auth *services.AuthService, r *responder) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "fail",
				"message": "you are not logged in, please log in",
			})
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			r.err(c, err)
			c.Abort()
			return
		}

		c.Set(ctxUser, user)
		c.Set(ctxPrincipal, guard.Principal{
			UserID: user.ID,
			Role:   user.Role,
			Active: user.Active,
		})
		c.Next()
	}
}

// Guards runs the named access checks against the resolved principal.
func Guards(r *responder, guards ...guard.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := principalFrom(c)
		if err := guard.CheckAll(p, guards...); err != nil {
			r.err(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

func principalFrom(c *gin.Context) guard.Principal {
	if v, ok := c.Get(ctxPrincipal); ok {
		if p, ok := v.(guard.Principal); ok {
			return p
		}
	}
	return guard.Principal{}
}

func userFrom(c *gin.Context) *domain.User {
	if v, ok := c.Get(ctxUser); ok {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}
