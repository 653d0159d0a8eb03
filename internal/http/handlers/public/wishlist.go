package public

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/marketnest/internal/http/response"
	"github.com/marketnest/internal/service"
)

// WishlistToggleRequest 心愿单开关请求
type WishlistToggleRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GetWishlist 获取心愿单
func (h *Handler) GetWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	items, err := h.WishlistService.List(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch wishlist", err)
		return
	}
	response.Success(c, gin.H{"items": items})
}

// ToggleWishlistItem 收藏/取消收藏商品
func (h *Handler) ToggleWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req WishlistToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	saved, err := h.WishlistService.Toggle(uid, req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to update wishlist", err)
		return
	}
	response.Success(c, gin.H{"saved": saved})
}

// DeleteWishlistItem 从心愿单移除商品
func (h *Handler) DeleteWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseUintParam(c, "product_id")
	if !ok {
		return
	}

	if err := h.WishlistService.Remove(uid, productID); err != nil {
		respondError(c, response.CodeInternal, "failed to update wishlist", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ClearWishlist 清空心愿单
func (h *Handler) ClearWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	if err := h.WishlistService.Clear(uid); err != nil {
		respondError(c, response.CodeInternal, "failed to update wishlist", err)
		return
	}
	response.Success(c, gin.H{"cleared": true})
}
