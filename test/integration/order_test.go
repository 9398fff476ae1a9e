//go:build integration

package integration

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOrderConcurrency 并发下单不超卖
// 库存扣减是带条件的原子UPDATE，成功订单数必须恰好等于库存数
func TestOrderConcurrency(t *testing.T) {
	admin := AdminToken(t)

	t.Run("同一用户并发下单(10库存,20请求)", func(t *testing.T) {
		productID := SeedProduct(t, admin, "1.00", 10)
		token := RegisterCustomer(t, "concurrent")
		addressID := SeedAddress(t, token)

		const concurrency = 20
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
			rejected  int
			failures  []error
		)

		for i := 0; i < concurrency; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				resp, err := Do(http.MethodPost, "/orders", OrderBody(productID, 1, addressID), token)

				mu.Lock()
				defer mu.Unlock()
				switch {
				case err != nil:
					failures = append(failures, err)
				case resp.Status == http.StatusCreated:
					succeeded++
				case resp.Status == http.StatusBadRequest:
					rejected++
				default:
					failures = append(failures, fmt.Errorf("unexpected status %d: %s", resp.Status, resp.Message))
				}
			}()
		}
		wg.Wait()

		require.Empty(t, failures)
		assert.Equal(t, 10, succeeded)
		assert.Equal(t, 10, rejected)
		assert.Equal(t, 0, StockOf(t, productID))
	})

	t.Run("多个买家抢购(5库存,10买家)", func(t *testing.T) {
		productID := SeedProduct(t, admin, "3.00", 5)

		type buyer struct {
			token     string
			addressID uint
		}
		buyers := make([]buyer, 10)
		for i := range buyers {
			token := RegisterCustomer(t, "buyer")
			buyers[i] = buyer{token: token, addressID: SeedAddress(t, token)}
		}

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
		)
		for _, b := range buyers {
			wg.Add(1)
			go func(b buyer) {
				defer wg.Done()
				resp, err := Do(http.MethodPost, "/orders", OrderBody(productID, 1, b.addressID), b.token)
				if err == nil && resp.Status == http.StatusCreated {
					mu.Lock()
					succeeded++
					mu.Unlock()
				}
			}(b)
		}
		wg.Wait()

		assert.Equal(t, 5, succeeded)
		assert.Equal(t, 0, StockOf(t, productID))
	})
}

// TestOrderCancelFlow 下单→取消→库存恢复→重复取消被拒绝
func TestOrderCancelFlow(t *testing.T) {
	admin := AdminToken(t)
	productID := SeedProduct(t, admin, "2.50", 8)
	token := RegisterCustomer(t, "cancel")
	addressID := SeedAddress(t, token)

	resp := MustDo(t, http.MethodPost, "/orders", OrderBody(productID, 3, addressID), token)
	require.Equal(t, http.StatusCreated, resp.Status, resp.Message)

	var o OrderData
	resp.Decode(t, &o)
	assert.Equal(t, "PENDING", o.Status)
	assert.Equal(t, 5, StockOf(t, productID))

	resp = MustDo(t, http.MethodGet, "/orders/number/"+o.OrderNumber, nil, token)
	assert.Equal(t, http.StatusOK, resp.Status)

	resp = MustDo(t, http.MethodPost, fmt.Sprintf("/orders/%d/cancel", o.ID), nil, token)
	require.Equal(t, http.StatusOK, resp.Status, resp.Message)
	assert.Equal(t, 8, StockOf(t, productID))

	resp = MustDo(t, http.MethodPost, fmt.Sprintf("/orders/%d/cancel", o.ID), nil, token)
	assert.Equal(t, http.StatusConflict, resp.Status)
	assert.Equal(t, 8, StockOf(t, productID))
}

// TestCheckoutFlow 购物车结算
func TestCheckoutFlow(t *testing.T) {
	admin := AdminToken(t)
	productID := SeedProduct(t, admin, "1.20", 10)
	token := RegisterCustomer(t, "checkout")
	addressID := SeedAddress(t, token)

	resp := MustDo(t, http.MethodPost, "/cart/items", map[string]interface{}{"product_id": productID, "quantity": 4}, token)
	require.Equal(t, 0, resp.Code, resp.Message)

	resp = MustDo(t, http.MethodPost, "/cart/checkout", map[string]interface{}{"payment_method": "UPI", "address_id": addressID}, token)
	require.Equal(t, http.StatusCreated, resp.Status, resp.Message)
	assert.Equal(t, 6, StockOf(t, productID))

	var cart struct {
		Items []interface{} `json:"items"`
	}
	MustDo(t, http.MethodGet, "/cart", nil, token).Decode(t, &cart)
	assert.Empty(t, cart.Items)
}
