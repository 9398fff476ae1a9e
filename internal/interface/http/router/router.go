// Package router HTTP路由注册
package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiebiao/grocery/docs"
	"github.com/xiebiao/grocery/internal/infrastructure/config"
	"github.com/xiebiao/grocery/internal/interface/http/dto"
	"github.com/xiebiao/grocery/internal/interface/http/handler"
	"github.com/xiebiao/grocery/internal/interface/http/middleware"
	"github.com/xiebiao/grocery/pkg/metrics"
	"github.com/xiebiao/grocery/pkg/response"
)

// Handlers 所有HTTP处理器
type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Product *handler.ProductHandler
	Catalog *handler.CatalogHandler
	Cart    *handler.CartHandler
	Address *handler.AddressHandler
	Order   *handler.OrderHandler
	Admin   *handler.AdminHandler
}

// New 创建Gin引擎并注册全部路由
// 中间件顺序：Recovery → Tracing → RequestLogger → Metrics → CORS
// Tracing在RequestLogger之前，访问日志才能带上trace_id
func New(cfg *config.Config, h *Handlers, auth *middleware.AuthMiddleware) (*gin.Engine, error) {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	if err := dto.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(),
		middleware.Tracing(),
		middleware.RequestLogger(),
	)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
		r.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
	}
	r.Use(middleware.CORS(cfg.CORS))

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong", "status": "healthy"})
	})

	if cfg.Server.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	registerPublic(v1, h)

	authorized := v1.Group("")
	authorized.Use(auth.RequireAuth())
	registerAuthorized(authorized, h)

	admin := v1.Group("/admin")
	admin.Use(auth.RequireAuth(), auth.RequireAdmin())
	registerAdmin(admin, h)

	return r, nil
}

func registerPublic(v1 *gin.RouterGroup, h *Handlers) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
	}

	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/featured", h.Product.Featured)
		products.GET("/:id", h.Product.Get)
	}

	// :category 在products路由中是slug，在subcategories路由中是分类ID
	categories := v1.Group("/categories")
	{
		categories.GET("", h.Catalog.ListCategories)
		categories.GET("/names", h.Catalog.ListCategoryNames)
		categories.GET("/:category/products", h.Product.ByCategory)
		categories.GET("/:category/subcategories", h.Catalog.ListSubcategories)
	}

	v1.GET("/brands", h.Catalog.ListBrands)
}

func registerAuthorized(g *gin.RouterGroup, h *Handlers) {
	g.POST("/auth/logout", h.Auth.Logout)

	g.GET("/users/me", h.User.Me)
	g.PUT("/users/me", h.User.UpdateMe)

	cart := g.Group("/cart")
	{
		cart.GET("", h.Cart.Get)
		cart.DELETE("", h.Cart.Clear)
		cart.POST("/items", h.Cart.AddItem)
		cart.PUT("/items/:id", h.Cart.UpdateItem)
		cart.DELETE("/items/:id", h.Cart.RemoveItem)
		cart.POST("/checkout", h.Cart.Checkout)
	}

	addresses := g.Group("/addresses")
	{
		addresses.POST("", h.Address.Create)
		addresses.GET("", h.Address.List)
		addresses.GET("/:id", h.Address.Get)
		addresses.PUT("/:id", h.Address.Update)
		addresses.DELETE("/:id", h.Address.Delete)
		addresses.PUT("/:id/default", h.Address.SetDefault)
	}

	orders := g.Group("/orders")
	{
		orders.POST("", h.Order.Create)
		orders.GET("", h.Order.List)
		orders.GET("/number/:orderNo", h.Order.GetByNumber)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/cancel", h.Order.Cancel)
	}
}

func registerAdmin(admin *gin.RouterGroup, h *Handlers) {
	admin.POST("/products", h.Product.Create)
	admin.PUT("/products/:id", h.Product.Update)
	admin.DELETE("/products/:id", h.Product.Delete)
	admin.POST("/products/:id/restock", h.Product.Restock)
	admin.GET("/products/:id/stock-logs", h.Product.StockLogs)

	admin.POST("/categories", h.Catalog.CreateCategory)
	admin.POST("/subcategories", h.Catalog.CreateSubcategory)
	admin.POST("/brands", h.Catalog.CreateBrand)

	admin.PATCH("/orders/:id/status", h.Order.UpdateStatus)

	admin.GET("/product-stats", h.Admin.ProductStats)
	admin.GET("/users", h.Admin.ListUsers)
}
