package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/redcell/readiness-backend/internal/logger"
	"github.com/redcell/readiness-backend/internal/repos"
	"github.com/redcell/readiness-backend/internal/services"
	"github.com/redcell/readiness-backend/internal/types"
)

// ContextOperatorKey is where RequireAuth stores the authenticated operator.
const ContextOperatorKey = "operator"

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
	rosterRepo  repos.RosterRepo
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService, rosterRepo repos.RosterRepo) *AuthMiddleware {
	middlewareLogger := log.With("Middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLogger, authService: authService, rosterRepo: rosterRepo}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}
		handle, err := am.authService.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		operator, err := am.rosterRepo.GetByHandle(c.Request.Context(), nil, handle)
		if err != nil || !operator.Active {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Set(ContextOperatorKey, operator)
		c.Next()
	}
}

// AdminRequired must run after RequireAuth.
func (am *AuthMiddleware) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		operator := OperatorFromContext(c)
		if operator == nil || !strings.Contains(strings.ToUpper(operator.TeamRole), "ADMIN") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}

func OperatorFromContext(c *gin.Context) *types.Operator {
	value, ok := c.Get(ContextOperatorKey)
	if !ok {
		return nil
	}
	operator, ok := value.(*types.Operator)
	if !ok {
		return nil
	}
	return operator
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	if qToken := c.Query("token"); qToken != "" {
		return qToken
	}
	return ""
}
