package middleware

import (
	"errors"

	"github.com/casemedia/casemedia-backend/internal/auth"
	apperrors "github.com/casemedia/casemedia-backend/internal/pkg/errors"
	"github.com/casemedia/casemedia-backend/internal/pkg/logger"
	"github.com/casemedia/casemedia-backend/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWTAuth JWT 认证中间件
func JWTAuth(jwtSecret string, log *logger.Logger) gin.HandlerFunc {
	jwtManager := auth.NewJWTManager(jwtSecret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization")
			c.Abort()
			return
		}

		token, err := auth.ExtractTokenFromHeader(authHeader)
		if err != nil {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.VerifyAccessToken(token)
		if err != nil {
			log.Warn("invalid access token",
				zap.Error(err),
				zap.String("ip", c.ClientIP()))
			if errors.Is(err, auth.ErrTokenExpired) {
				response.ErrorWithCode(c, apperrors.ErrAuthTokenExpired)
			} else {
				response.ErrorWithCode(c, apperrors.ErrAuthInvalidToken)
			}
			c.Abort()
			return
		}

		role, err := auth.ParseRole(claims.Role)
		if err != nil {
			log.Warn("token carries unknown role",
				zap.String("role", claims.Role),
				zap.String("user_id", claims.UserID))
			response.Forbidden(c, "unknown role")
			c.Abort()
			return
		}

		// 将用户信息注入到上下文
		c.Set("user_id", claims.UserID)
		c.Set("role", role)

		c.Next()
	}
}

// GetUserID 从上下文获取用户 ID
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	return userID.(string), true
}

// GetRole 从上下文获取用户角色
func GetRole(c *gin.Context) (auth.Role, bool) {
	role, exists := c.Get("role")
	if !exists {
		return auth.RoleUser, false
	}
	return role.(auth.Role), true
}
