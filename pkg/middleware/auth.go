package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"foodtook_backoffice/pkg/logger"
	"foodtook_backoffice/pkg/models"
	"foodtook_backoffice/pkg/utils"
)

// ClaimsKey is the gin context key holding the verified *utils.TokenClaims
const ClaimsKey = "claims"

// TokenCookie is the cookie carrying the back-office token
const TokenCookie = "token"

func tokenFromRequest(c *gin.Context) string {
	if cookieToken, err := c.Cookie(TokenCookie); err == nil && cookieToken != "" {
		return cookieToken
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// authenticate verifies the request token and stores its claims. It aborts on failure and
// never advances the chain.
func authenticate(c *gin.Context) (*utils.TokenClaims, bool) {
	token := tokenFromRequest(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access denied. No token provided."})
		return nil, false
	}

	claims, err := utils.VerifyToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token expired."})
			return nil, false
		}
		logger.FromGin(c).Debug("token rejected", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token."})
		return nil, false
	}

	c.Set(ClaimsKey, claims)
	return claims, true
}

// authorize aborts with 403 unless claims carry one of roles
func authorize(c *gin.Context, claims *utils.TokenClaims, roles ...models.Role) bool {
	for _, role := range roles {
		if claims.Role == role {
			return true
		}
	}
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied. Insufficient permissions."})
	return false
}

// AuthenticateToken verifies the token from the cookie or the Authorization header and
// stores its claims in the context
func AuthenticateToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authenticate(c); !ok {
			return
		}
		c.Next()
	}
}

// GetClaims returns the claims stored by AuthenticateToken
func GetClaims(c *gin.Context) (*utils.TokenClaims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.TokenClaims)
	return claims, ok
}

// AuthorizeRoles lets the request through when the token role is one of roles. It expects
// AuthenticateToken earlier in the chain.
func AuthorizeRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required."})
			return
		}
		if !authorize(c, claims, roles...) {
			return
		}
		c.Next()
	}
}

// RestrictToAdmin - admin only
func RestrictToAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c)
		if !ok || !authorize(c, claims, models.RoleAdmin) {
			return
		}
		c.Next()
	}
}

// RestrictToStaff - staff of any sub-role, or admin
func RestrictToStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c)
		if !ok || !authorize(c, claims, models.RoleStaff, models.RoleAdmin) {
			return
		}
		c.Next()
	}
}

// RestrictToStaffRole lets admins and staff with sub-role r through
func RestrictToStaffRole(r models.StaffRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c)
		if !ok || !authorize(c, claims, models.RoleStaff, models.RoleAdmin) {
			return
		}
		if claims.Role != models.RoleAdmin && (claims.StaffRole == nil || *claims.StaffRole != r) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Unauthorized: " + string(r) + " staff role required."})
			return
		}
		c.Next()
	}
}
