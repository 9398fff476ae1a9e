package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appaddress "github.com/xiebiao/grocery/internal/application/address"
	"github.com/xiebiao/grocery/internal/application/admin"
	appcart "github.com/xiebiao/grocery/internal/application/cart"
	appcatalog "github.com/xiebiao/grocery/internal/application/catalog"
	"github.com/xiebiao/grocery/internal/application/event"
	apporder "github.com/xiebiao/grocery/internal/application/order"
	appproduct "github.com/xiebiao/grocery/internal/application/product"
	appuser "github.com/xiebiao/grocery/internal/application/user"
	"github.com/xiebiao/grocery/internal/domain/order"
	"github.com/xiebiao/grocery/internal/domain/product"
	"github.com/xiebiao/grocery/internal/domain/user"
	"github.com/xiebiao/grocery/internal/infrastructure/config"
	"github.com/xiebiao/grocery/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/grocery/internal/infrastructure/persistence/mysql/testdb"
	"github.com/xiebiao/grocery/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/grocery/internal/interface/http/dto"
	"github.com/xiebiao/grocery/internal/interface/http/handler"
	"github.com/xiebiao/grocery/internal/interface/http/middleware"
	"github.com/xiebiao/grocery/internal/interface/http/router"
	"github.com/xiebiao/grocery/pkg/clock"
	apperrors "github.com/xiebiao/grocery/pkg/errors"
	"github.com/xiebiao/grocery/pkg/jwt"
)

const adminEmail = "boss@grocery.local"

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	events *event.Recorder
}

// newTestServer 按cmd/api的装配顺序组装完整应用，数据库与Redis换成内存实现
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: gin.TestMode},
		JWT:     config.JWTConfig{Secret: "test-secret", AccessTokenExpire: time.Hour, RefreshTokenExpire: 24 * time.Hour},
		Auth:    config.AuthConfig{AdminEmails: []string{adminEmail}},
		Metrics: config.MetricsConfig{Enabled: false},
		CORS:    config.CORSConfig{Enabled: false},
	}

	db := testdb.New(t)
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	events := &event.Recorder{}
	clk := clock.New()

	users := mysql.NewUserRepository(db)
	catalogs := mysql.NewCatalogRepository(db)
	products := mysql.NewProductRepository(db)
	orders := mysql.NewOrderRepository(db)
	carts := mysql.NewCartRepository(db)
	addresses := mysql.NewAddressRepository(db)
	tx := mysql.NewTxManager(db)

	userService := user.NewServiceWithCost(users, bcrypt.MinCost)
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)
	sessions := redis.NewSessionStore(rdb)
	cache := redis.NewProductCache(rdb, time.Minute)
	ledger := product.NewLedger(products)
	numbers := order.NewNumberGenerator(clk)

	createOrder := apporder.NewCreateOrderUseCase(orders, products, addresses, ledger, tx, numbers, clk, events, cache)
	cancelOrder := apporder.NewCancelOrderUseCase(orders, ledger, tx, clk, events, cache)

	h := &router.Handlers{
		Auth:    handler.NewAuthHandler(appuser.NewAuthUseCase(userService, jwtManager, sessions, cfg, clk)),
		User:    handler.NewUserHandler(appuser.NewProfileUseCase(userService, users)),
		Product: handler.NewProductHandler(appproduct.NewQueryProductUseCase(products, cache), appproduct.NewManageProductUseCase(products, catalogs, ledger, cache, events)),
		Catalog: handler.NewCatalogHandler(appcatalog.NewUseCase(catalogs)),
		Cart: handler.NewCartHandler(
			appcart.NewUseCase(carts, products, clk),
			apporder.NewCheckoutUseCase(carts, createOrder, cancelOrder, 5*time.Second),
		),
		Address: handler.NewAddressHandler(appaddress.NewUseCase(addresses, tx)),
		Order: handler.NewOrderHandler(
			createOrder,
			apporder.NewQueryOrderUseCase(orders),
			cancelOrder,
			apporder.NewUpdateStatusUseCase(orders, clk, events),
		),
		Admin: handler.NewAdminHandler(admin.NewUseCase(products, users)),
	}

	engine, err := router.New(cfg, h, middleware.NewAuthMiddleware(jwtManager, sessions))
	require.NoError(t, err)

	return &testServer{t: t, engine: engine, events: events}
}

func (s *testServer) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v), string(env.Data))
	return v
}

// register 注册并返回access token
func (s *testServer) register(email string) string {
	s.t.Helper()
	w, env := s.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    email,
		"password": "secret123",
		"name":     "Tester",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[dto.AuthResponse](s.t, env).AccessToken
}

// seedProduct 管理员创建分类和商品，返回商品ID
func (s *testServer) seedProduct(adminToken, name string, price string, stock int) uint {
	s.t.Helper()
	w, env := s.do(http.MethodPost, "/api/v1/admin/categories", adminToken, gin.H{"name": "Dairy " + name})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	category := decode[dto.CategoryResponse](s.t, env)

	w, env = s.do(http.MethodPost, "/api/v1/admin/products", adminToken, gin.H{
		"name":        name,
		"category_id": category.ID,
		"price":       price,
		"mrp":         price,
		"stock":       stock,
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[dto.ProductResponse](s.t, env).ID
}

func (s *testServer) seedAddress(token string) uint {
	s.t.Helper()
	w, env := s.do(http.MethodPost, "/api/v1/addresses", token, gin.H{
		"full_name":     "Asha",
		"phone":         "9876543210",
		"address_line1": "12 Market Road",
		"city":          "Pune",
		"state":         "MH",
		"pincode":       "411001",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[dto.AddressResponse](s.t, env).ID
}

func (s *testServer) stockOf(id uint) int {
	s.t.Helper()
	w, env := s.do(http.MethodGet, fmt.Sprintf("/api/v1/products/%d", id), "", nil)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	return decode[dto.ProductResponse](s.t, env).Stock
}

func TestRouter_Ping(t *testing.T) {
	s := newTestServer(t)

	t.Run("健康检查并生成请求ID", func(t *testing.T) {
		w, env := s.do(http.MethodGet, "/ping", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, env.Code)
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("沿用客户端请求ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-abc")
		w := httptest.NewRecorder()
		s.engine.ServeHTTP(w, req)
		assert.Equal(t, "req-abc", w.Header().Get(middleware.RequestIDHeader))
	})
}

func TestRouter_Auth(t *testing.T) {
	s := newTestServer(t)
	token := s.register("asha@example.com")

	t.Run("未登录访问个人信息", func(t *testing.T) {
		w, env := s.do(http.MethodGet, "/api/v1/users/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, apperrors.ErrCodeUnauthorized, env.Code)
	})

	t.Run("伪造Token", func(t *testing.T) {
		w, env := s.do(http.MethodGet, "/api/v1/users/me", "not-a-jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, apperrors.ErrCodeInvalidToken, env.Code)
	})

	t.Run("登录后访问个人信息", func(t *testing.T) {
		w, env := s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "asha@example.com", "password": "secret123"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		login := decode[dto.AuthResponse](t, env)

		w, env = s.do(http.MethodGet, "/api/v1/users/me", login.AccessToken, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		me := decode[dto.UserResponse](t, env)
		assert.Equal(t, "asha@example.com", me.Email)
		assert.Equal(t, "CUSTOMER", me.Role)
	})

	t.Run("密码错误", func(t *testing.T) {
		w, env := s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "asha@example.com", "password": "wrong-pass1"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, apperrors.ErrCodeInvalidPassword, env.Code)
	})

	t.Run("普通用户访问管理接口", func(t *testing.T) {
		w, env := s.do(http.MethodGet, "/api/v1/admin/users", token, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, apperrors.ErrCodeForbidden, env.Code)
	})

	t.Run("登出后Token失效", func(t *testing.T) {
		other := s.register("ravi@example.com")
		w, _ := s.do(http.MethodPost, "/api/v1/auth/logout", other, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w, env := s.do(http.MethodGet, "/api/v1/users/me", other, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, apperrors.ErrCodeInvalidToken, env.Code)
	})

	t.Run("参数校验失败", func(t *testing.T) {
		w, env := s.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{"email": "bad", "password": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeBindError, env.Code)
	})
}

func TestRouter_OrderFlow(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.register(adminEmail)
	customer := s.register("asha@example.com")

	productID := s.seedProduct(adminToken, "Milk", "2.50", 5)
	addressID := s.seedAddress(customer)

	var orderID uint

	t.Run("下单扣减库存", func(t *testing.T) {
		w, env := s.do(http.MethodPost, "/api/v1/orders", customer, gin.H{
			"items":          []gin.H{{"product_id": productID, "quantity": 2}},
			"payment_method": "COD",
			"address_id":     addressID,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		o := decode[dto.OrderResponse](t, env)
		orderID = o.ID
		assert.Equal(t, "PENDING", o.Status)
		assert.True(t, o.TotalAmount.Equal(decimal.RequireFromString("5.00")))
		assert.Equal(t, "Pune", o.Delivery.City)
		assert.Equal(t, 3, s.stockOf(productID))
	})

	t.Run("库存不足返回商品与可用量", func(t *testing.T) {
		w, env := s.do(http.MethodPost, "/api/v1/orders", customer, gin.H{
			"items":          []gin.H{{"product_id": productID, "quantity": 10}},
			"payment_method": "UPI",
			"address_id":     addressID,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeInsufficientStock, env.Code)

		details := decode[map[string]interface{}](t, env)
		assert.Equal(t, "Milk", details["product_name"])
		assert.EqualValues(t, 10, details["requested"])
		assert.EqualValues(t, 3, details["available"])
		assert.Equal(t, 3, s.stockOf(productID))
	})

	t.Run("无效的支付方式", func(t *testing.T) {
		w, env := s.do(http.MethodPost, "/api/v1/orders", customer, gin.H{
			"items":          []gin.H{{"product_id": productID, "quantity": 1}},
			"payment_method": "<script>",
			"address_id":     addressID,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeBindError, env.Code)
	})

	t.Run("其他用户看不到订单", func(t *testing.T) {
		other := s.register("ravi@example.com")
		w, env := s.do(http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", orderID), other, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, apperrors.ErrCodeOrderNotFound, env.Code)
	})

	t.Run("管理员可以查看任意订单", func(t *testing.T) {
		w, _ := s.do(http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", orderID), adminToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("取消订单归还库存", func(t *testing.T) {
		w, env := s.do(http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/cancel", orderID), customer, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "CANCELLED", decode[dto.OrderResponse](t, env).Status)
		assert.Equal(t, 5, s.stockOf(productID))
	})

	t.Run("重复取消", func(t *testing.T) {
		w, env := s.do(http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/cancel", orderID), customer, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, apperrors.ErrCodeInvalidState, env.Code)
		assert.Equal(t, 5, s.stockOf(productID))
	})

	t.Run("管理员修改订单状态", func(t *testing.T) {
		w, env := s.do(http.MethodPost, "/api/v1/orders", customer, gin.H{
			"items":          []gin.H{{"product_id": productID, "quantity": 1}},
			"payment_method": "Credit Card",
			"address_id":     addressID,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		id := decode[dto.OrderResponse](t, env).ID

		w, env = s.do(http.MethodPatch, fmt.Sprintf("/api/v1/admin/orders/%d/status", id), adminToken, gin.H{"status": "delivered"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		o := decode[dto.OrderResponse](t, env)
		assert.Equal(t, "DELIVERED", o.Status)
		assert.NotNil(t, o.DeliveredAt)

		w, env = s.do(http.MethodPatch, fmt.Sprintf("/api/v1/admin/orders/%d/status", id), adminToken, gin.H{"status": "LOST"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeInvalidParams, env.Code)
	})

	t.Run("订单事件", func(t *testing.T) {
		assert.Contains(t, s.events.Keys(), event.OrderCreated)
		assert.Contains(t, s.events.Keys(), event.OrderCancelled)
		assert.Contains(t, s.events.Keys(), event.OrderStatusChanged)
	})
}

func TestRouter_CartCheckout(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.register(adminEmail)
	customer := s.register("asha@example.com")

	bread := s.seedProduct(adminToken, "Bread", "1.20", 10)
	addressID := s.seedAddress(customer)

	w, _ := s.do(http.MethodPost, "/api/v1/cart/items", customer, gin.H{"product_id": bread, "quantity": 3})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	t.Run("结算生成订单并清空购物车", func(t *testing.T) {
		w, env := s.do(http.MethodPost, "/api/v1/cart/checkout", customer, gin.H{"payment_method": "upi", "address_id": addressID})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		o := decode[dto.OrderResponse](t, env)
		require.Len(t, o.Items, 1)
		assert.Equal(t, 3, o.Items[0].Quantity)
		assert.True(t, o.TotalAmount.Equal(decimal.RequireFromString("3.60")))
		assert.Equal(t, 7, s.stockOf(bread))

		w, env = s.do(http.MethodGet, "/api/v1/cart", customer, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decode[dto.CartResponse](t, env).Items)
	})

	t.Run("空购物车不能结算", func(t *testing.T) {
		w, _ := s.do(http.MethodPost, "/api/v1/cart/checkout", customer, gin.H{"payment_method": "upi", "address_id": addressID})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("不能使用他人地址", func(t *testing.T) {
		other := s.register("ravi@example.com")
		w, _ := s.do(http.MethodPost, "/api/v1/cart/items", other, gin.H{"product_id": bread, "quantity": 1})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w, env := s.do(http.MethodPost, "/api/v1/cart/checkout", other, gin.H{"payment_method": "COD", "address_id": addressID})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, apperrors.ErrCodeAddressNotFound, env.Code)
		assert.Equal(t, 7, s.stockOf(bread))
	})
}

func TestRouter_Catalog(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.register(adminEmail)
	s.seedProduct(adminToken, "Eggs", "4.00", 12)

	t.Run("按分类slug查询商品", func(t *testing.T) {
		w, env := s.do(http.MethodGet, "/api/v1/categories/dairy-eggs/products", "", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, string(env.Data), `"Eggs"`)
	})

	t.Run("分类名称列表", func(t *testing.T) {
		w, env := s.do(http.MethodGet, "/api/v1/categories/names", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(env.Data), "Dairy Eggs")
	})

	t.Run("商品ID格式错误", func(t *testing.T) {
		w, env := s.do(http.MethodGet, "/api/v1/products/abc", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeInvalidParams, env.Code)
	})

	t.Run("商品不存在", func(t *testing.T) {
		w, env := s.do(http.MethodGet, "/api/v1/products/999", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, apperrors.ErrCodeProductNotFound, env.Code)
	})
}
