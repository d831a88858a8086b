package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rvc-001/planning-sub000/internal/domain/entity"
)

const contextUserKey = "authUser"

// authMiddleware resolves the session token from the Authorization bearer
// header or X-Session-Token and stores the user on the request context.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token = strings.TrimSpace(c.GetHeader("X-Session-Token"))
		}

		user, ok, err := s.auth.Resolve(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody("session lookup failed"))
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody("not logged in"))
			return
		}
		c.Set(contextUserKey, user)
		c.Next()
	}
}

// requirePage gates a route on the page permission. Admins pass every
// gate.
func (s *Server) requirePage(pageID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if !user.CanAccess(pageID) {
			c.AbortWithStatusJSON(http.StatusForbidden, errorBody("no permission for "+pageID))
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) entity.User {
	if v, ok := c.Get(contextUserKey); ok {
		if user, ok := v.(entity.User); ok {
			return user
		}
	}
	return entity.User{}
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return header
}
