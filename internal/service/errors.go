package service

import (
	"errors"
	"fmt"
	"strings"
)

// 服务层业务错误，处理器据此映射响应码。
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrProductInactive     = errors.New("product inactive")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrBrandNotFound       = errors.New("brand not found")
	ErrBannerNotFound      = errors.New("banner not found")
	ErrReviewNotFound      = errors.New("review not found")
	ErrSlugExists          = errors.New("slug already exists")
	ErrOrderNotFound       = errors.New("order not found")
	ErrIllegalTransition   = errors.New("illegal order status transition")
	ErrCartEmpty           = errors.New("cart is empty")
	ErrStaleCart           = errors.New("cart changed concurrently")
	ErrQuantityInvalid     = errors.New("quantity invalid")
	ErrInvalidDiscountCode = errors.New("invalid discount code")
	ErrDiscountExists      = errors.New("discount code already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserDisabled        = errors.New("user disabled")
	ErrEmailExists         = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrCaptchaInvalid      = errors.New("captcha invalid")
	ErrStockInsufficient   = errors.New("stock insufficient")
)

// ValidationError 表单字段校验错误，携带逐字段信息。
type ValidationError struct {
	Fields map[string]string
}

// Error 实现 error 接口
func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for field, message := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError 创建字段校验错误
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// AsValidationError 提取字段校验错误
func AsValidationError(err error) (*ValidationError, bool) {
	var target *ValidationError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
