//go:build integration

// Package integration 针对运行中服务的集成测试
//
// 需要先启动MySQL、Redis和API服务(make run)，再执行：
//
//	go test -tags integration ./test/integration/...
//
// 环境变量：
//   - GROCERY_BASE_URL  默认 http://localhost:8080/api/v1
//   - GROCERY_ADMIN_EMAIL / GROCERY_ADMIN_PASSWORD  需在auth.admin_emails中
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Timeout HTTP请求超时时间
const Timeout = 10 * time.Second

var (
	BaseURL       = envOr("GROCERY_BASE_URL", "http://localhost:8080/api/v1")
	AdminEmail    = envOr("GROCERY_ADMIN_EMAIL", "admin@grocery.local")
	AdminPassword = envOr("GROCERY_ADMIN_PASSWORD", "Admin1234")

	client = &http.Client{Timeout: Timeout}
	seq    atomic.Int64
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Response 统一响应结构
type Response struct {
	Status  int             `json:"-"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Decode 解析data字段
func (r *Response) Decode(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Data, v), "解析响应数据失败: %s", string(r.Data))
}

type authData struct {
	AccessToken string `json:"access_token"`
}

// ProductData 商品响应中测试关心的字段
type ProductData struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

// OrderData 订单响应中测试关心的字段
type OrderData struct {
	ID          uint   `json:"id"`
	OrderNumber string `json:"order_number"`
	TotalAmount string `json:"total_amount"`
	Status      string `json:"status"`
}

// Do 发送请求并解析统一响应
// 不调用t.FailNow，可以在并发的goroutine中使用
func Do(method, path string, body interface{}, token string) (*Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequest(method, BaseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	result := &Response{Status: resp.StatusCode}
	if err := json.Unmarshal(raw, result); err != nil {
		return nil, fmt.Errorf("解析JSON响应失败: %s", string(raw))
	}
	return result, nil
}

// MustDo Do的测试版本，出错立即终止
func MustDo(t *testing.T, method, path string, body interface{}, token string) *Response {
	t.Helper()
	resp, err := Do(method, path, body, token)
	require.NoError(t, err)
	return resp
}

// UniqueName 生成唯一的测试名称，避免重复运行时冲突
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s%d%d", prefix, time.Now().UnixNano(), seq.Add(1))
}

// RegisterCustomer 注册顾客并返回Access Token
func RegisterCustomer(t *testing.T, prefix string) string {
	t.Helper()
	resp := MustDo(t, http.MethodPost, "/auth/register", map[string]string{
		"email":    UniqueName(prefix) + "@test.com",
		"password": "Test1234",
		"name":     "Tester",
	}, "")
	require.Equal(t, 0, resp.Code, "注册失败: %s", resp.Message)

	var data authData
	resp.Decode(t, &data)
	return data.AccessToken
}

// AdminToken 管理员首次运行时注册，之后直接登录
func AdminToken(t *testing.T) string {
	t.Helper()
	resp := MustDo(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    AdminEmail,
		"password": AdminPassword,
	}, "")
	if resp.Code != 0 {
		resp = MustDo(t, http.MethodPost, "/auth/register", map[string]string{
			"email":    AdminEmail,
			"password": AdminPassword,
			"name":     "Admin",
		}, "")
	}
	require.Equal(t, 0, resp.Code, "管理员登录失败: %s", resp.Message)

	var data authData
	resp.Decode(t, &data)
	return data.AccessToken
}

// SeedProduct 创建分类和商品，返回商品ID
func SeedProduct(t *testing.T, adminToken, price string, stock int) uint {
	t.Helper()
	resp := MustDo(t, http.MethodPost, "/admin/categories", map[string]string{"name": UniqueName("Cat")}, adminToken)
	require.Equal(t, 0, resp.Code, "创建分类失败: %s", resp.Message)
	var category struct {
		ID uint `json:"id"`
	}
	resp.Decode(t, &category)

	resp = MustDo(t, http.MethodPost, "/admin/products", map[string]interface{}{
		"name":        UniqueName("Product"),
		"category_id": category.ID,
		"price":       price,
		"mrp":         price,
		"stock":       stock,
	}, adminToken)
	require.Equal(t, 0, resp.Code, "创建商品失败: %s", resp.Message)

	var p ProductData
	resp.Decode(t, &p)
	return p.ID
}

// SeedAddress 为当前用户创建收货地址
func SeedAddress(t *testing.T, token string) uint {
	t.Helper()
	resp := MustDo(t, http.MethodPost, "/addresses", map[string]interface{}{
		"full_name":     "Asha",
		"phone":         "9876543210",
		"address_line1": "12 Market Road",
		"city":          "Pune",
		"state":         "MH",
		"pincode":       "411001",
	}, token)
	require.Equal(t, 0, resp.Code, "创建地址失败: %s", resp.Message)

	var addr struct {
		ID uint `json:"id"`
	}
	resp.Decode(t, &addr)
	return addr.ID
}

// StockOf 查询商品当前库存
func StockOf(t *testing.T, productID uint) int {
	t.Helper()
	resp := MustDo(t, http.MethodGet, fmt.Sprintf("/products/%d", productID), nil, "")
	require.Equal(t, 0, resp.Code, resp.Message)

	var p ProductData
	resp.Decode(t, &p)
	return p.Stock
}

// OrderBody 单商品下单请求
func OrderBody(productID uint, quantity int, addressID uint) map[string]interface{} {
	return map[string]interface{}{
		"items":          []map[string]interface{}{{"product_id": productID, "quantity": quantity}},
		"payment_method": "COD",
		"address_id":     addressID,
	}
}
