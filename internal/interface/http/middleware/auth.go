package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/grocery/internal/domain/user"
	"github.com/xiebiao/grocery/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/grocery/pkg/errors"
	"github.com/xiebiao/grocery/pkg/jwt"
	"github.com/xiebiao/grocery/pkg/response"
)

const (
	claimsKey = "auth_claims"
	tokenKey  = "auth_token"
)

// AuthMiddleware JWT认证中间件
// 设计说明：
// 1. 从Header提取Bearer Token
// 2. 验证签名、有效期与Token类型（Refresh Token不能访问API）
// 3. 检查黑名单（登出后的Token在过期前一直在黑名单中）
// 4. 将Claims写入gin.Context供Handler使用
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
//
//	authorized := v1.Group("")
//	authorized.Use(authMiddleware.RequireAuth())
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, apperrors.ErrUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			abort(c, apperrors.ErrInvalidToken.WithMessage("Token格式错误"))
			return
		}
		tokenString := strings.TrimSpace(parts[1])

		// 先验签再查黑名单，伪造的Token不会打到Redis
		claims, err := m.jwtManager.ParseToken(tokenString)
		if err != nil {
			abort(c, err)
			return
		}

		revoked, err := m.sessionStore.IsInBlacklist(c.Request.Context(), tokenString)
		if err != nil {
			abort(c, err)
			return
		}
		if revoked {
			abort(c, apperrors.ErrInvalidToken.WithMessage("Token已失效，请重新登录"))
			return
		}

		c.Set(claimsKey, claims)
		c.Set(tokenKey, tokenString)
		c.Next()
	}
}

// RequireAdmin 要求管理员角色，必须放在RequireAuth之后
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			abort(c, apperrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

func abort(c *gin.Context, err error) {
	response.Error(c, err)
	c.Abort()
}

// =========================================
// Context辅助函数（供Handler使用）
// =========================================

// GetClaims 当前请求的Claims，未登录返回nil
func GetClaims(c *gin.Context) *jwt.Claims {
	if v, ok := c.Get(claimsKey); ok {
		if claims, ok := v.(*jwt.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetUserID 从Context获取当前登录用户ID，未登录返回0
func GetUserID(c *gin.Context) uint {
	if claims := GetClaims(c); claims != nil {
		return claims.UserID
	}
	return 0
}

// GetToken 当前请求携带的Access Token
func GetToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}

// IsAdmin 当前用户是否管理员
func IsAdmin(c *gin.Context) bool {
	claims := GetClaims(c)
	return claims != nil && claims.Role == string(user.RoleAdmin)
}
