package middleware

import (
	"net/http"

	"aptbooking/internal/domain"
	"aptbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole allows the request only when the verified identity holds one of
// roles. It must run after JWTAuth; without an identity it answers 401.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	allowed := make(map[domain.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
			return
		}

		if _, ok := allowed[id.Role]; !ok {
			response.Abort(c, http.StatusForbidden, "FORBIDDEN", "Forbidden resource")
			return
		}

		c.Next()
	}
}

// AdminOnly middleware requires admin role
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}
