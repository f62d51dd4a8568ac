package httpapi

import (
	"net/http"
	"strings"

	"report-backend/auth"
	"report-backend/orm"
	"report-backend/report"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// AuthMiddleware resolves the caller from the bearer token and stores the
// identity for the handlers, which thread it into the services as an
// explicit parameter.
func AuthMiddleware(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"message": "missing or malformed authorization header"},
			)

			return
		}

		identity, err := authService.ResolveCaller(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"message": "invalid or expired token"},
			)

			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireRoles guards a route group to the given roles.
func RequireRoles(roles ...orm.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := callerIdentity(c)
		for _, role := range roles {
			if identity.Role == role {
				c.Next()

				return
			}
		}

		c.AbortWithStatusJSON(
			http.StatusForbidden,
			gin.H{"message": "insufficient permissions"},
		)
	}
}

func callerIdentity(c *gin.Context) report.Identity {
	value, ok := c.Get(identityKey)
	if !ok {
		return report.Identity{}
	}

	identity, _ := value.(report.Identity)

	return identity
}

func extractToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}

// CORSMiddleware allows the dashboard frontend to call the API from
// another origin.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)

			return
		}

		c.Next()
	}
}
