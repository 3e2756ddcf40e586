package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// AuthMiddleware JWT认证中间件
// 设计说明:
// 1. 从Header提取并验证Token,检查黑名单,把调用方身份注入Context
// 2. 中间件只做"你是谁"(认证),"你能不能写目录"(授权)由领域层的
//    授权门基于数据库中的角色判定,claim中的role不作为授权依据
type AuthMiddleware struct {
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, sessionStore *redis.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// RequireAuth 要求登录
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractBearerToken(c)
		if !ok {
			response.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		// 已登出的Token在黑名单中,过期前也不得继续使用
		if m.sessionStore != nil {
			blacklisted, err := m.sessionStore.IsInBlacklist(c.Request.Context(), tokenString)
			if err != nil {
				response.Error(c, apperrors.Wrap(err, "验证Token失败"))
				c.Abort()
				return
			}
			if blacklisted {
				response.Error(c, apperrors.ErrTokenExpired)
				c.Abort()
				return
			}
		}

		claims, err := m.jwtManager.ParseToken(tokenString)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		injectIdentity(c, claims, tokenString)
		c.Next()
	}
}

// OptionalAuth 可选登录
// 有合法Token则注入身份,没有或无效则按匿名继续
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractBearerToken(c)
		if !ok {
			c.Next()
			return
		}

		if claims, err := m.jwtManager.ParseToken(tokenString); err == nil {
			injectIdentity(c, claims, tokenString)
		}
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

func injectIdentity(c *gin.Context, claims *jwt.Claims, token string) {
	c.Set("user_id", claims.UserID)
	c.Set("email", claims.Email)
	c.Set("access_token", token)
}

// =========================================
// Context辅助函数(供Handler使用)
// =========================================

// GetUserID 获取当前登录用户ID,未登录返回0
func GetUserID(c *gin.Context) uint {
	if v, exists := c.Get("user_id"); exists {
		if uid, ok := v.(uint); ok {
			return uid
		}
	}
	return 0
}

// GetEmail 获取当前登录用户邮箱
func GetEmail(c *gin.Context) string {
	if v, exists := c.Get("email"); exists {
		if e, ok := v.(string); ok {
			return e
		}
	}
	return ""
}

// GetAccessToken 获取当前请求携带的Access Token
func GetAccessToken(c *gin.Context) string {
	if v, exists := c.Get("access_token"); exists {
		if t, ok := v.(string); ok {
			return t
		}
	}
	return ""
}
