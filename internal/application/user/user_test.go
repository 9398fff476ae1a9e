package user_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appuser "github.com/xiebiao/grocery/internal/application/user"
	"github.com/xiebiao/grocery/internal/domain/user"
	"github.com/xiebiao/grocery/internal/infrastructure/config"
	"github.com/xiebiao/grocery/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/grocery/internal/infrastructure/persistence/mysql/testdb"
	"github.com/xiebiao/grocery/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/grocery/pkg/clock"
	apperrors "github.com/xiebiao/grocery/pkg/errors"
	"github.com/xiebiao/grocery/pkg/jwt"
)

type fixture struct {
	mr       *miniredis.Miniredis
	sessions *redis.SessionStore
	jwt      *jwt.Manager
	auth     *appuser.AuthUseCase
	profile  *appuser.ProfileUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testdb.New(t)
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:             "test-secret",
			AccessTokenExpire:  time.Hour,
			RefreshTokenExpire: 24 * time.Hour,
		},
		Auth: config.AuthConfig{AdminEmails: []string{"boss@grocery.local"}},
	}

	users := mysql.NewUserRepository(db)
	svc := user.NewServiceWithCost(users, bcrypt.MinCost)
	f := &fixture{
		mr:       mr,
		sessions: redis.NewSessionStore(client),
		jwt:      jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire),
	}
	f.auth = appuser.NewAuthUseCase(svc, f.jwt, f.sessions, cfg, clock.New())
	f.profile = appuser.NewProfileUseCase(svc, users)
	return f
}

func TestAuthUseCase_Register(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("普通邮箱注册为顾客并签发Token", func(t *testing.T) {
		res, err := f.auth.Register(ctx, appuser.RegisterRequest{
			Email: "Ann@Example.com", Password: "secret123", Name: "Ann Lee",
		})
		require.NoError(t, err)
		assert.Equal(t, "ann@example.com", res.User.Email)
		assert.Equal(t, user.RoleCustomer, res.User.Role)
		assert.NotEmpty(t, res.Tokens.AccessToken)

		claims, err := f.jwt.ParseToken(res.Tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, res.User.ID, claims.UserID)

		session, err := f.sessions.GetSession(ctx, res.User.ID)
		require.NoError(t, err)
		assert.Equal(t, "ann@example.com", session["email"])
		assert.Equal(t, 24*time.Hour, f.mr.TTL("session:1"))
	})

	t.Run("配置中的邮箱注册为管理员", func(t *testing.T) {
		res, err := f.auth.Register(ctx, appuser.RegisterRequest{
			Email: "BOSS@grocery.local", Password: "secret123", Name: "Boss",
		})
		require.NoError(t, err)
		assert.True(t, res.User.IsAdmin())
	})

	t.Run("重复邮箱", func(t *testing.T) {
		_, err := f.auth.Register(ctx, appuser.RegisterRequest{
			Email: "ann@example.com", Password: "secret123", Name: "Ann Two",
		})
		assert.True(t, errors.Is(err, apperrors.ErrEmailDuplicate))
	})

	t.Run("弱密码", func(t *testing.T) {
		_, err := f.auth.Register(ctx, appuser.RegisterRequest{
			Email: "weak@example.com", Password: "short", Name: "Weak",
		})
		assert.True(t, errors.Is(err, apperrors.ErrWeakPassword))
	})
}

func TestAuthUseCase_LoginRefreshLogout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.auth.Register(ctx, appuser.RegisterRequest{
		Email: "ann@example.com", Password: "secret123", Name: "Ann Lee",
	})
	require.NoError(t, err)

	t.Run("密码错误", func(t *testing.T) {
		_, err := f.auth.Login(ctx, appuser.LoginRequest{Email: "ann@example.com", Password: "wrong1234"})
		assert.True(t, errors.Is(err, apperrors.ErrInvalidPassword))
	})

	t.Run("邮箱不存在", func(t *testing.T) {
		_, err := f.auth.Login(ctx, appuser.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
		assert.True(t, errors.Is(err, apperrors.ErrInvalidPassword))
	})

	res, err := f.auth.Login(ctx, appuser.LoginRequest{Email: "ann@example.com", Password: "secret123"})
	require.NoError(t, err)

	t.Run("Refresh Token换取新Token对", func(t *testing.T) {
		pair, err := f.auth.Refresh(ctx, res.Tokens.RefreshToken)
		require.NoError(t, err)
		claims, err := f.jwt.ParseToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, res.User.ID, claims.UserID)
	})

	t.Run("Access Token不能用于刷新", func(t *testing.T) {
		_, err := f.auth.Refresh(ctx, res.Tokens.AccessToken)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidToken))
	})

	t.Run("登出删除会话并拉黑Access Token", func(t *testing.T) {
		claims, err := f.jwt.ParseToken(res.Tokens.AccessToken)
		require.NoError(t, err)
		require.NoError(t, f.auth.Logout(ctx, claims, res.Tokens.AccessToken))

		_, err = f.sessions.GetSession(ctx, res.User.ID)
		assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))

		revoked, err := f.sessions.IsInBlacklist(ctx, res.Tokens.AccessToken)
		require.NoError(t, err)
		assert.True(t, revoked)

		ttl := f.mr.TTL("blacklist:" + res.Tokens.AccessToken)
		assert.True(t, ttl > 0 && ttl <= time.Hour)
	})
}

func TestProfileUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ann, err := f.auth.Register(ctx, appuser.RegisterRequest{
		Email: "ann@example.com", Password: "secret123", Name: "Ann Lee",
	})
	require.NoError(t, err)
	_, err = f.auth.Register(ctx, appuser.RegisterRequest{
		Email: "bob@example.com", Password: "secret123", Name: "Bob Ray",
	})
	require.NoError(t, err)

	t.Run("查询个人资料", func(t *testing.T) {
		u, err := f.profile.Get(ctx, ann.User.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ann Lee", u.Name)
	})

	t.Run("空字段不修改", func(t *testing.T) {
		u, err := f.profile.Update(ctx, ann.User.ID, appuser.UpdateProfileRequest{Phone: "9876543210"})
		require.NoError(t, err)
		assert.Equal(t, "Ann Lee", u.Name)
		assert.Equal(t, "9876543210", u.Phone)

		reloaded, err := f.profile.Get(ctx, ann.User.ID)
		require.NoError(t, err)
		assert.Equal(t, "9876543210", reloaded.Phone)
	})

	t.Run("邮箱与他人冲突", func(t *testing.T) {
		_, err := f.profile.Update(ctx, ann.User.ID, appuser.UpdateProfileRequest{Email: "bob@example.com"})
		assert.True(t, errors.Is(err, apperrors.ErrEmailDuplicate))
	})

	t.Run("用户不存在", func(t *testing.T) {
		_, err := f.profile.Get(ctx, 999)
		assert.True(t, errors.Is(err, user.ErrUserNotFound))
	})
}
