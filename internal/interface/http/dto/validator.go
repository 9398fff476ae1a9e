package dto

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var paymentMethodPattern = regexp.MustCompile(`^[A-Za-z0-9 _-]{1,30}$`)

// RegisterValidators 注册自定义校验规则,需在路由初始化前调用
//
//	payment_method: 支付方式为自由文本(COD、UPI、Credit Card...),只校验字符集与长度
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("payment_method", validatePaymentMethod)
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	return paymentMethodPattern.MatchString(strings.TrimSpace(fl.Field().String()))
}
