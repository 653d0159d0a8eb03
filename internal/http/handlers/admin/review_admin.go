package admin

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/marketnest/internal/http/response"
	"github.com/marketnest/internal/repository"
)

// GetAdminProductReviews 获取商品评价列表 (Admin)
func (h *Handler) GetAdminProductReviews(c *gin.Context) {
	productID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	reviews, total, err := h.ReviewService.ListByProduct(repository.ReviewListFilter{
		Page:      page,
		PageSize:  pageSize,
		ProductID: productID,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to fetch reviews", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, reviews, pagination)
}

// DeleteReview 删除评价并同步商品评分
func (h *Handler) DeleteReview(c *gin.Context) {
	productID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	reviewID, ok := parseUintParam(c, "review_id")
	if !ok {
		return
	}

	if err := h.ReviewService.Delete(reviewID, productID); err != nil {
		respondError(c, response.CodeInternal, "failed to delete review", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
