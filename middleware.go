package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const identityKey = "identity"

// Identity is the decoded session credential attached to the request
// context by AuthMiddleware.
type Identity struct {
	UserID   uuid.UUID
	Username string
	Roles    RoleSet
}

// AuthMiddleware verifies the bearer token and attaches the caller's
// identity to the context. Every protected handler runs behind this;
// a missing or invalid credential stops the request before any store
// access happens.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			jsonError(c, http.StatusUnauthorized, "Missing Authorization header")
			c.Abort()
			return
		}

		// Expect: "Bearer token"
		if !strings.HasPrefix(authHeader, "Bearer ") {
			jsonError(c, http.StatusUnauthorized, "Invalid token format")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			jsonError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			jsonError(c, http.StatusUnauthorized, "Invalid token claims")
			c.Abort()
			return
		}

		ident, err := identityFromClaims(claims)
		if err != nil {
			jsonError(c, http.StatusUnauthorized, "Invalid token claims")
			c.Abort()
			return
		}

		c.Set(identityKey, ident)
		c.Next()
	}
}

func identityFromClaims(claims jwt.MapClaims) (Identity, error) {
	rawID, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return Identity{}, err
	}

	username, _ := claims["username"].(string)

	var names []string
	if rawRoles, ok := claims["roles"].([]interface{}); ok {
		for _, r := range rawRoles {
			if s, ok := r.(string); ok {
				names = append(names, s)
			}
		}
	}

	return Identity{
		UserID:   userID,
		Username: username,
		Roles:    RoleSetFromStrings(names),
	}, nil
}

// getIdentity reads what AuthMiddleware attached. The second return is
// false only when a route was wired without the middleware.
func getIdentity(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	ident, ok := v.(Identity)
	return ident, ok
}

// RequireRoles gates a route on an any-of role check: the caller needs
// at least one of the listed roles, not all of them. Must be chained
// after AuthMiddleware.
func RequireRoles(allowed ...Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := getIdentity(c)
		if !ok {
			jsonError(c, http.StatusUnauthorized, "unauthorized")
			c.Abort()
			return
		}
		if !ident.Roles.HasAny(allowed...) {
			jsonError(c, http.StatusForbidden, "You do not have permission to perform this action")
			c.Abort()
			return
		}
		c.Next()
	}
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
