package middleware

import (
	"net/http"
	"strings"

	"aptbooking/internal/domain"
	"aptbooking/internal/pkg/jwt"
	"aptbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Identity is the verified caller, built once per request from the token.
type Identity struct {
	ID    string
	Phone string
	Name  string
	Role  domain.UserRole
}

// JWTAuth verifies the bearer token and attaches the caller's Identity.
// Every failure is a 401 with message "Unauthorized".
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Unauthorized")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Unauthorized")
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Unauthorized")
			return
		}

		c.Set(identityKey, Identity{
			ID:    claims.ID,
			Phone: claims.Phone,
			Name:  claims.Name,
			Role:  domain.UserRole(claims.Role),
		})
		c.Next()
	}
}

// IdentityFrom returns the identity set by JWTAuth.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// SetIdentity attaches id to the context. Used by tests that bypass JWTAuth.
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}
