package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/baotran/docqa-be/types"
	"github.com/baotran/docqa-be/utils"
)

// ContextUserID is the gin context key holding the authenticated user's id.
const ContextUserID = "userID"

// AuthMiddleware validates the Bearer token and stores the caller's identity
// on the request context. Websocket clients cannot set headers, so a "token"
// query parameter is accepted as a fallback.
func AuthMiddleware(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		token = c.Query("token")
	}
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, types.DataResponse{
			Status:  false,
			Message: "Missing or invalid authorization header",
		})
		return
	}

	claims, err := utils.ParseUserToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, types.DataResponse{
			Status:  false,
			Message: "Invalid or expired token",
		})
		return
	}

	c.Set(ContextUserID, claims.UserID)
	c.Next()
}

// UserID returns the authenticated user id set by AuthMiddleware.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
