package address

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields() Fields {
	return Fields{
		FullName:     "张三",
		Phone:        "13800000000",
		AddressLine1: "幸福路1号",
		City:         "杭州",
		State:        "浙江",
		Pincode:      "310000",
	}
}

func TestNew(t *testing.T) {
	a, err := New(7, fields())
	require.NoError(t, err)
	assert.Equal(t, TypeHome, a.Type)
	assert.True(t, a.IsOwnedBy(7))
	assert.False(t, a.IsOwnedBy(8))

	f := fields()
	f.Type = "work"
	a, err = New(7, f)
	require.NoError(t, err)
	assert.Equal(t, TypeWork, a.Type)

	f.Type = "school"
	_, err = New(7, f)
	assert.True(t, errors.Is(err, ErrInvalidType))

	f = fields()
	f.City = " "
	_, err = New(7, f)
	assert.True(t, errors.Is(err, ErrMissingField))
}
