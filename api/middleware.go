package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/openarcade/arcade-server/game"
	"github.com/openarcade/arcade-server/tokens"
)

type contextkey string

const authContextKey contextkey = "auth_payload"

// AuthMiddleware resolves the caller's wallet identity from the bearer
// token. Every failure mode surfaces as NotAuthenticated so clients see
// the same taxonomy the operations use.
func (s *Server) AuthMiddleware(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, errorResponse(game.ErrNotAuthenticated.Error()))
		c.Abort()
		return
	}

	payload, err := tokens.ParseJWTToken(token, []byte(s.config.JWTSecret))
	if err != nil {
		c.JSON(http.StatusUnauthorized, errorResponse(game.ErrNotAuthenticated.Error()))
		c.Abort()
		return
	}

	c.Set(string(authContextKey), payload)

	c.Next()
}

// bearerToken extracts the credential from an "Authorization: Bearer x"
// header, "" when the header is absent or malformed.
func bearerToken(c *gin.Context) string {
	parts := strings.Fields(c.Request.Header.Get("authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
