package public

import (
	"github.com/gin-gonic/gin"

	"github.com/marketnest/internal/http/response"
	"github.com/marketnest/internal/service"
)

// CartItemRequest 购物车项请求
type CartItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// CartQuantityRequest 调整数量请求
type CartQuantityRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// CartDiscountRequest 应用折扣码请求
type CartDiscountRequest struct {
	Code string `json:"code" binding:"required"`
}

// GetCart 获取购物车（含汇总金额）
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	view, err := h.CartService.Get(uid)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// AddCartItem 添加购物车项
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	view, err := h.CartService.AddItem(uid, service.AddItemInput{
		ProductID: req.ProductID,
		Quantity:  quantity,
		Size:      req.Size,
		Color:     req.Color,
	})
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// UpdateCartItemQuantity 设置购物车项数量，0 表示移除
func (h *Handler) UpdateCartItemQuantity(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	view, err := h.CartService.UpdateQuantity(uid, req.ProductID, req.Size, req.Color, req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// IncrementCartItem 购物车项数量加一
func (h *Handler) IncrementCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	view, err := h.CartService.IncrementItem(uid, req.ProductID, req.Size, req.Color)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// DecrementCartItem 购物车项数量减一，下限为一
func (h *Handler) DecrementCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	view, err := h.CartService.DecrementItem(uid, req.ProductID, req.Size, req.Color)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// DeleteCartItem 删除购物车项
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "product_id")
	if !ok {
		return
	}

	view, err := h.CartService.RemoveItem(uid, productID, c.Query("size"), c.Query("color"))
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// ApplyCartDiscount 应用折扣码
func (h *Handler) ApplyCartDiscount(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	view, previous, err := h.CartService.ApplyDiscount(uid, req.Code)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{
		"cart":          view.Cart,
		"totals":        view.Totals,
		"replaced_code": previous,
	})
}

// RemoveCartDiscount 移除折扣码
func (h *Handler) RemoveCartDiscount(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	view, err := h.CartService.RemoveDiscount(uid)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	view, err := h.CartService.Clear(uid)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}
