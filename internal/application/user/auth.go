package user

import (
	"context"
	"log/slog"

	"github.com/xiebiao/grocery/internal/domain/user"
	"github.com/xiebiao/grocery/internal/infrastructure/config"
	"github.com/xiebiao/grocery/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/grocery/pkg/clock"
	"github.com/xiebiao/grocery/pkg/jwt"
)

// AuthUseCase 注册/登录/刷新/登出
// 设计说明：
// 1. 密码校验等规则在领域服务中，这里只负责编排
// 2. 会话保存在Redis，有效期与Refresh Token一致
// 3. 登出后Access Token进入黑名单直到自然过期
type AuthUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
	authCfg      config.AuthConfig
	jwtCfg       config.JWTConfig
	clock        clock.Clock
}

// NewAuthUseCase 创建认证用例
func NewAuthUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
	cfg *config.Config,
	clk clock.Clock,
) *AuthUseCase {
	return &AuthUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
		authCfg:      cfg.Auth,
		jwtCfg:       cfg.JWT,
		clock:        clk,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string
	Password string
}

// AuthResult 注册/登录结果
type AuthResult struct {
	User   *user.User
	Tokens *jwt.TokenPair
}

// Register 注册并直接登录
// 配置在auth.admin_emails中的邮箱注册为管理员
func (uc *AuthUseCase) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	role := user.RoleCustomer
	if uc.authCfg.IsAdminEmail(req.Email) {
		role = user.RoleAdmin
	}

	u, err := uc.userService.Register(ctx, req.Email, req.Password, req.Name, req.Phone, role)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "用户注册成功", "user_id", u.ID, "role", u.Role)

	return uc.issue(ctx, u)
}

// Login 登录
func (uc *AuthUseCase) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	u, err := uc.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return uc.issue(ctx, u)
}

// Refresh 用Refresh Token换取新的Token对
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	return uc.jwtManager.RefreshAccessToken(refreshToken)
}

// Logout 删除会话，并把当前Access Token拉黑到其过期为止
func (uc *AuthUseCase) Logout(ctx context.Context, claims *jwt.Claims, accessToken string) error {
	if err := uc.sessionStore.DeleteSession(ctx, claims.UserID); err != nil {
		return err
	}
	return uc.sessionStore.AddToBlacklist(ctx, accessToken, jwt.RemainingTTL(claims))
}

func (uc *AuthUseCase) issue(ctx context.Context, u *user.User) (*AuthResult, error) {
	tokens, err := uc.jwtManager.GenerateToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, err
	}

	session := map[string]interface{}{
		"user_id":  u.ID,
		"email":    u.Email,
		"role":     string(u.Role),
		"login_at": uc.clock.Now().Unix(),
	}
	// 会话写入失败不影响登录，Token本身仍然有效
	if err := uc.sessionStore.SaveSession(ctx, u.ID, session, uc.jwtCfg.RefreshTokenExpire); err != nil {
		slog.WarnContext(ctx, "保存会话失败", "user_id", u.ID, "error", err)
	}

	return &AuthResult{User: u, Tokens: tokens}, nil
}
