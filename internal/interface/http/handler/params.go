package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/grocery/pkg/errors"
	"github.com/xiebiao/grocery/pkg/response"
)

// pathID 解析路径中的正整数ID,失败时直接写入400响应
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, apperrors.ErrInvalidParams.WithMessagef("无效的%s", name))
		return 0, false
	}
	return uint(id), true
}

// queryInt 读取整数查询参数,缺省或非法时返回def
func queryInt(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return v
}
