//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 修改Provider后执行 `make wire` 重新生成wire_gen.go

package main

import (
	"github.com/google/wire"

	appaddress "github.com/xiebiao/grocery/internal/application/address"
	"github.com/xiebiao/grocery/internal/application/admin"
	appcart "github.com/xiebiao/grocery/internal/application/cart"
	appcatalog "github.com/xiebiao/grocery/internal/application/catalog"
	apporder "github.com/xiebiao/grocery/internal/application/order"
	appproduct "github.com/xiebiao/grocery/internal/application/product"
	appuser "github.com/xiebiao/grocery/internal/application/user"
	"github.com/xiebiao/grocery/internal/domain/order"
	"github.com/xiebiao/grocery/internal/domain/product"
	"github.com/xiebiao/grocery/internal/domain/user"
	"github.com/xiebiao/grocery/internal/infrastructure/config"
	"github.com/xiebiao/grocery/internal/infrastructure/messaging"
	"github.com/xiebiao/grocery/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/grocery/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/grocery/internal/interface/grpc"
	"github.com/xiebiao/grocery/internal/interface/http/handler"
	"github.com/xiebiao/grocery/internal/interface/http/middleware"
	"github.com/xiebiao/grocery/internal/interface/http/router"
	"github.com/xiebiao/grocery/pkg/clock"
)

// infrastructureSet 数据库、Redis、消息队列、时钟
var infrastructureSet = wire.NewSet(
	provideDB,
	provideRedisClient,
	messaging.NewEventPublisher,
	clock.New,
)

// repositorySet 仓储与事务管理器
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewCatalogRepository,
	mysql.NewProductRepository,
	mysql.NewOrderRepository,
	mysql.NewCartRepository,
	mysql.NewAddressRepository,
	mysql.NewTxManager,
)

// cacheSet 商品缓存同时满足查询缓存和下单后的失效接口
var cacheSet = wire.NewSet(
	provideProductCache,
	wire.Bind(new(appproduct.Cache), new(*redis.ProductCache)),
	wire.Bind(new(apporder.CacheInvalidator), new(*redis.ProductCache)),
	redis.NewSessionStore,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	user.NewService,
	product.NewLedger,
	order.NewNumberGenerator,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appuser.NewAuthUseCase,
	appuser.NewProfileUseCase,
	appcatalog.NewUseCase,
	appproduct.NewQueryProductUseCase,
	appproduct.NewManageProductUseCase,
	appcart.NewUseCase,
	appaddress.NewUseCase,
	apporder.NewCreateOrderUseCase,
	apporder.NewQueryOrderUseCase,
	apporder.NewCancelOrderUseCase,
	apporder.NewUpdateStatusUseCase,
	provideCheckoutUseCase,
	admin.NewUseCase,
)

// interfaceSet 中间件、处理器、路由与gRPC健康检查
var interfaceSet = wire.NewSet(
	provideJWTManager,
	middleware.NewAuthMiddleware,
	handler.NewAuthHandler,
	handler.NewUserHandler,
	handler.NewProductHandler,
	handler.NewCatalogHandler,
	handler.NewCartHandler,
	handler.NewAddressHandler,
	handler.NewOrderHandler,
	handler.NewAdminHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
	grpc.NewHealthServer,
)

// InitializeApp 组装整个应用
// 返回的cleanup按创建的逆序关闭消息队列、Redis、数据库连接
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		cacheSet,
		domainSet,
		applicationSet,
		interfaceSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
