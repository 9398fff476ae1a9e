package address_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appaddress "github.com/xiebiao/grocery/internal/application/address"
	"github.com/xiebiao/grocery/internal/domain/address"
	"github.com/xiebiao/grocery/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/grocery/internal/infrastructure/persistence/mysql/testdb"
)

func fields(name string, isDefault bool) address.Fields {
	return address.Fields{
		FullName:     name,
		Phone:        "9876543210",
		AddressLine1: "12 Market Road",
		City:         "Pune",
		State:        "MH",
		Pincode:      "411001",
		Type:         "home",
		IsDefault:    isDefault,
	}
}

func defaults(list []*address.Address) []uint {
	var ids []uint
	for _, a := range list {
		if a.IsDefault {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

func TestAddressUseCase(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	uc := appaddress.NewUseCase(mysql.NewAddressRepository(db), mysql.NewTxManager(db))

	first, err := uc.Create(ctx, 1, fields("Ann Home", false))
	require.NoError(t, err)

	t.Run("第一个地址自动成为默认", func(t *testing.T) {
		assert.True(t, first.IsDefault)
		assert.Equal(t, address.TypeHome, first.Type)
	})

	second, err := uc.Create(ctx, 1, fields("Ann Work", true))
	require.NoError(t, err)

	t.Run("新默认地址取消旧默认", func(t *testing.T) {
		list, err := uc.List(ctx, 1)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, []uint{second.ID}, defaults(list))
		assert.Equal(t, second.ID, list[0].ID)
	})

	t.Run("设为默认", func(t *testing.T) {
		a, err := uc.SetDefault(ctx, 1, first.ID)
		require.NoError(t, err)
		assert.True(t, a.IsDefault)

		list, err := uc.List(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, []uint{first.ID}, defaults(list))
	})

	t.Run("更新字段", func(t *testing.T) {
		f := fields("Ann Office", false)
		f.Type = "WORK"
		a, err := uc.Update(ctx, 1, second.ID, f)
		require.NoError(t, err)
		assert.Equal(t, "Ann Office", a.FullName)

		reloaded, err := uc.Get(ctx, 1, second.ID)
		require.NoError(t, err)
		assert.Equal(t, address.TypeWork, reloaded.Type)
	})

	t.Run("缺少必填字段", func(t *testing.T) {
		f := fields("Ann", false)
		f.City = " "
		_, err := uc.Create(ctx, 1, f)
		assert.True(t, errors.Is(err, address.ErrMissingField))
	})

	t.Run("地址类型非法", func(t *testing.T) {
		f := fields("Ann", false)
		f.Type = "BEACH"
		_, err := uc.Create(ctx, 1, f)
		assert.True(t, errors.Is(err, address.ErrInvalidType))
	})

	t.Run("他人地址视为不存在", func(t *testing.T) {
		_, err := uc.Get(ctx, 2, first.ID)
		assert.True(t, errors.Is(err, address.ErrAddressNotFound))
		assert.True(t, errors.Is(uc.Delete(ctx, 2, first.ID), address.ErrAddressNotFound))
	})

	t.Run("删除地址", func(t *testing.T) {
		require.NoError(t, uc.Delete(ctx, 1, second.ID))
		list, err := uc.List(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})
}
