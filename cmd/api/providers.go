package main

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	apporder "github.com/xiebiao/grocery/internal/application/order"
	"github.com/xiebiao/grocery/internal/domain/cart"
	"github.com/xiebiao/grocery/internal/infrastructure/config"
	"github.com/xiebiao/grocery/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/grocery/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/grocery/internal/interface/grpc"
	"github.com/xiebiao/grocery/pkg/jwt"
)

// App 进程内需要启动的服务
type App struct {
	Engine *gin.Engine
	Health *grpc.HealthServer
}

// 有些构造函数的参数需要从Config中提取，Wire无法自动推导，
// 这里编写自定义Provider

func provideDB(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := mysql.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Error("关闭数据库连接失败", "error", err)
			}
		}
	}
	return db, cleanup, nil
}

func provideRedisClient(cfg *config.Config) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := client.Close(); err != nil {
			slog.Error("关闭Redis连接失败", "error", err)
		}
	}
	return client, cleanup, nil
}

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

func provideProductCache(client *goredis.Client, cfg *config.Config) *redis.ProductCache {
	return redis.NewProductCache(client, cfg.Cache.ProductTTL)
}

func provideCheckoutUseCase(
	cfg *config.Config,
	cartRepo cart.Repository,
	createOrder *apporder.CreateOrderUseCase,
	cancelOrder *apporder.CancelOrderUseCase,
) *apporder.CheckoutUseCase {
	return apporder.NewCheckoutUseCase(cartRepo, createOrder, cancelOrder, cfg.Order.CheckoutTimeout)
}
