package public

import (
	"errors"

	"github.com/gin-gonic/gin"

	handlershared "github.com/marketnest/internal/http/handlers/shared"
	"github.com/marketnest/internal/http/response"
	"github.com/marketnest/internal/service"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	if verr, ok := service.AsValidationError(err); ok {
		handlershared.RespondErrorWithData(c, response.CodeUnprocessable, "validation failed", gin.H{"fields": verr.Fields}, nil)
		return
	}
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrProductInactive, code: response.CodeBadRequest, msg: "product not available"},
	{target: service.ErrStockInsufficient, code: response.CodeBadRequest, msg: "insufficient stock"},
	{target: service.ErrQuantityInvalid, code: response.CodeBadRequest, msg: "invalid quantity"},
	{target: service.ErrInvalidDiscountCode, code: response.CodeBadRequest, msg: "invalid discount code"},
	{target: service.ErrStaleCart, code: response.CodeConflict, msg: "cart was modified, retry"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrStockInsufficient, code: response.CodeBadRequest, msg: "insufficient stock"},
	{target: service.ErrStaleCart, code: response.CodeConflict, msg: "cart was modified, retry"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrIllegalTransition, code: response.CodeBadRequest, msg: "order status does not allow this action"},
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart operation failed")
}

func respondCheckoutError(c *gin.Context, err error) {
	respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "checkout failed")
}

func respondOrderError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "order operation failed")
}
